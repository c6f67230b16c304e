package models

import "time"

// Nonconformity is a recorded quality, safety or environmental issue.
// ClosedDate is set if and only if Status is StatusClosed.
type Nonconformity struct {
	ID               string                `bson:"_id" json:"id"`
	CooperativeID    string                `bson:"cooperative_id" json:"cooperative_id"`
	ProductionLogID  string                `bson:"production_log_id,omitempty" json:"production_log_id,omitempty"`
	Date             time.Time             `bson:"date" json:"date"`
	Category         NonconformityCategory `bson:"category" json:"category"`
	Severity         Severity              `bson:"severity" json:"severity"`
	Description      string                `bson:"description" json:"description"`
	CorrectiveAction string                `bson:"corrective_action" json:"corrective_action"`
	Status           NonconformityStatus   `bson:"status" json:"status"`
	AssignedTo       string                `bson:"assigned_to,omitempty" json:"assigned_to,omitempty"`
	ClosedDate       *time.Time            `bson:"closed_date,omitempty" json:"closed_date,omitempty"`
	CreatedAt        time.Time             `bson:"created_at" json:"created_at"`
}

// NonconformityInput is the payload for recording an issue explicitly.
type NonconformityInput struct {
	CooperativeID    string                `json:"cooperative_id" binding:"required"`
	ProductionLogID  string                `json:"production_log_id"`
	Date             time.Time             `json:"date"`
	Category         NonconformityCategory `json:"category" binding:"required"`
	Severity         Severity              `json:"severity" binding:"required"`
	Description      string                `json:"description" binding:"required"`
	CorrectiveAction string                `json:"corrective_action"`
	AssignedTo       string                `json:"assigned_to"`
}

// NonconformityFilter narrows listings and counts. Empty fields do not filter.
type NonconformityFilter struct {
	CooperativeID string
	Statuses      []NonconformityStatus
	Limit         int64
}
