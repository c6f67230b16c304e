package models

import "time"

// UpdateResult reports whether an update matched a record and whether it changed anything.
type UpdateResult struct {
	Matched  bool
	Modified bool
}

// ProductionLogUpdate lists every mutable production log field. Nil slots are left untouched.
type ProductionLogUpdate struct {
	Date                     *time.Time `json:"date,omitempty"`
	BatchPeriod              *string    `json:"batch_period,omitempty"`
	TotalProduction          *float64   `json:"total_production,omitempty"`
	GradeAPercent            *float64   `json:"grade_a_percent,omitempty"`
	GradeBPercent            *float64   `json:"grade_b_percent,omitempty"`
	LossPercent              *float64   `json:"post_harvest_loss_percent,omitempty"`
	LossKg                   *float64   `json:"post_harvest_loss_kg,omitempty"`
	EnergyUse                *EnergyUse `json:"energy_use,omitempty"`
	HasNonconformity         *bool      `json:"has_nonconformity,omitempty"`
	NonconformityDescription *string    `json:"nonconformity_description,omitempty"`
	CorrectiveAction         *string    `json:"corrective_action,omitempty"`
}

// IsEmpty reports whether no field is set.
func (u ProductionLogUpdate) IsEmpty() bool {
	return u.Date == nil && u.BatchPeriod == nil && u.TotalProduction == nil &&
		u.GradeAPercent == nil && u.GradeBPercent == nil && u.LossPercent == nil &&
		u.LossKg == nil && u.EnergyUse == nil && u.HasNonconformity == nil &&
		u.NonconformityDescription == nil && u.CorrectiveAction == nil
}

// Apply copies the set fields onto log.
func (u ProductionLogUpdate) Apply(log *ProductionLog) {
	if u.Date != nil {
		log.Date = *u.Date
	}
	if u.BatchPeriod != nil {
		log.BatchPeriod = *u.BatchPeriod
	}
	if u.TotalProduction != nil {
		log.TotalProduction = *u.TotalProduction
	}
	if u.GradeAPercent != nil {
		log.GradeAPercent = *u.GradeAPercent
	}
	if u.GradeBPercent != nil {
		log.GradeBPercent = *u.GradeBPercent
	}
	if u.LossPercent != nil {
		log.LossPercent = *u.LossPercent
	}
	if u.LossKg != nil {
		log.LossKg = *u.LossKg
	}
	if u.EnergyUse != nil {
		log.EnergyUse = *u.EnergyUse
	}
	if u.HasNonconformity != nil {
		log.HasNonconformity = *u.HasNonconformity
	}
	if u.NonconformityDescription != nil {
		log.NonconformityDescription = *u.NonconformityDescription
	}
	if u.CorrectiveAction != nil {
		log.CorrectiveAction = *u.CorrectiveAction
	}
}

// NonconformityUpdate lists every mutable nonconformity field.
// ClosedDate and ClearClosedDate are derived from Status by the service layer.
type NonconformityUpdate struct {
	Category         *NonconformityCategory `json:"category,omitempty"`
	Severity         *Severity              `json:"severity,omitempty"`
	Description      *string                `json:"description,omitempty"`
	CorrectiveAction *string                `json:"corrective_action,omitempty"`
	Status           *NonconformityStatus   `json:"status,omitempty"`
	AssignedTo       *string                `json:"assigned_to,omitempty"`

	ClosedDate      *time.Time `json:"-"`
	ClearClosedDate bool       `json:"-"`
}

// IsEmpty reports whether no caller-settable field is present.
func (u NonconformityUpdate) IsEmpty() bool {
	return u.Category == nil && u.Severity == nil && u.Description == nil &&
		u.CorrectiveAction == nil && u.Status == nil && u.AssignedTo == nil
}

// Apply copies the set fields onto nc.
func (u NonconformityUpdate) Apply(nc *Nonconformity) {
	if u.Category != nil {
		nc.Category = *u.Category
	}
	if u.Severity != nil {
		nc.Severity = *u.Severity
	}
	if u.Description != nil {
		nc.Description = *u.Description
	}
	if u.CorrectiveAction != nil {
		nc.CorrectiveAction = *u.CorrectiveAction
	}
	if u.Status != nil {
		nc.Status = *u.Status
	}
	if u.AssignedTo != nil {
		nc.AssignedTo = *u.AssignedTo
	}
	if u.ClosedDate != nil {
		closed := *u.ClosedDate
		nc.ClosedDate = &closed
	}
	if u.ClearClosedDate {
		nc.ClosedDate = nil
	}
}

// UserUpdateRequest is the payload accepted by the user update endpoint.
type UserUpdateRequest struct {
	Email         *string `json:"email,omitempty" binding:"omitempty,email"`
	Name          *string `json:"name,omitempty"`
	Role          *Role   `json:"role,omitempty"`
	CooperativeID *string `json:"cooperative_id,omitempty"`
	Password      *string `json:"password,omitempty" binding:"omitempty,min=6"`
}

// IsEmpty reports whether no field is set.
func (r UserUpdateRequest) IsEmpty() bool {
	return r.Email == nil && r.Name == nil && r.Role == nil && r.CooperativeID == nil && r.Password == nil
}

// UserUpdate is the store-level user mutation. An empty CooperativeID clears the affiliation.
type UserUpdate struct {
	Email         *string
	Name          *string
	Role          *Role
	CooperativeID *string
	PasswordHash  *string
}

// IsEmpty reports whether no field is set.
func (u UserUpdate) IsEmpty() bool {
	return u.Email == nil && u.Name == nil && u.Role == nil && u.CooperativeID == nil && u.PasswordHash == nil
}

// Apply copies the set fields onto user.
func (u UserUpdate) Apply(user *User) {
	if u.Email != nil {
		user.Email = *u.Email
	}
	if u.Name != nil {
		user.Name = *u.Name
	}
	if u.Role != nil {
		user.Role = *u.Role
	}
	if u.CooperativeID != nil {
		user.CooperativeID = *u.CooperativeID
	}
	if u.PasswordHash != nil {
		user.PasswordHash = *u.PasswordHash
	}
}
