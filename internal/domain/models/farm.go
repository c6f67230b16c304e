package models

import "time"

// Farm captures the latest field telemetry and yield forecast of a member farm.
type Farm struct {
	ID             string    `bson:"_id" json:"id"`
	FarmName       string    `bson:"farm_name" json:"farm_name"`
	Location       string    `bson:"location" json:"location"`
	AreaHectares   float64   `bson:"area_hectares" json:"area_hectares"`
	CropType       string    `bson:"crop_type" json:"crop_type"`
	GrowthStage    string    `bson:"growth_stage" json:"growth_stage"`
	HealthStatus   string    `bson:"health_status" json:"health_status"`
	Temperature    float64   `bson:"temperature" json:"temperature"`
	Humidity       float64   `bson:"humidity" json:"humidity"`
	SoilMoisture   float64   `bson:"soil_moisture" json:"soil_moisture"`
	PredictedYield float64   `bson:"predicted_yield" json:"predicted_yield"`
	Timestamp      time.Time `bson:"timestamp" json:"timestamp"`
}

// FarmInput is the payload for registering farm metrics.
type FarmInput struct {
	FarmName       string  `json:"farm_name" binding:"required"`
	Location       string  `json:"location" binding:"required"`
	AreaHectares   float64 `json:"area_hectares" binding:"gte=0"`
	CropType       string  `json:"crop_type" binding:"required"`
	GrowthStage    string  `json:"growth_stage"`
	HealthStatus   string  `json:"health_status"`
	Temperature    float64 `json:"temperature"`
	Humidity       float64 `json:"humidity"`
	SoilMoisture   float64 `json:"soil_moisture"`
	PredictedYield float64 `json:"predicted_yield"`
}
