package models

import "time"

// Cooperative is a tenant organisation whose production data is tracked.
type Cooperative struct {
	ID        string            `bson:"_id" json:"id"`
	Name      string            `bson:"name" json:"name"`
	Country   string            `bson:"country" json:"country"`
	Product   string            `bson:"product" json:"product"`
	Status    CooperativeStatus `bson:"status" json:"status"`
	CreatedAt time.Time         `bson:"created_at" json:"created_at"`
}

// CooperativeInput is the payload for creating a cooperative.
type CooperativeInput struct {
	Name    string            `json:"name" binding:"required"`
	Country string            `json:"country" binding:"required"`
	Product string            `json:"product" binding:"required"`
	Status  CooperativeStatus `json:"status"`
}
