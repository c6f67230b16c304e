package models

import "fmt"

// Role enumerates the caller roles recognised by the access policy.
type Role string

const (
	// RoleManager is scoped to a single cooperative.
	RoleManager Role = "manager"
	// RoleOfficer sees every cooperative and may run maintenance operations.
	RoleOfficer Role = "officer"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleManager, RoleOfficer:
		return true
	default:
		return false
	}
}

// UnmarshalText rejects unknown roles when decoding request payloads.
func (r *Role) UnmarshalText(text []byte) error {
	v := Role(text)
	if !v.Valid() {
		return fmt.Errorf("invalid role %q", string(text))
	}
	*r = v
	return nil
}

// CooperativeStatus enumerates the lifecycle states of a cooperative.
type CooperativeStatus string

const (
	CooperativeActive   CooperativeStatus = "active"
	CooperativePending  CooperativeStatus = "pending"
	CooperativeInactive CooperativeStatus = "inactive"
)

// Valid reports whether s is a known cooperative status.
func (s CooperativeStatus) Valid() bool {
	switch s {
	case CooperativeActive, CooperativePending, CooperativeInactive:
		return true
	default:
		return false
	}
}

func (s *CooperativeStatus) UnmarshalText(text []byte) error {
	v := CooperativeStatus(text)
	if !v.Valid() {
		return fmt.Errorf("invalid cooperative status %q", string(text))
	}
	*s = v
	return nil
}

// EnergyUse is the coarse energy consumption bucket reported with a batch.
type EnergyUse string

const (
	EnergyLow    EnergyUse = "Low"
	EnergyMedium EnergyUse = "Medium"
	EnergyHigh   EnergyUse = "High"
)

// Valid reports whether e is a known energy bucket.
func (e EnergyUse) Valid() bool {
	switch e {
	case EnergyLow, EnergyMedium, EnergyHigh:
		return true
	default:
		return false
	}
}

func (e *EnergyUse) UnmarshalText(text []byte) error {
	v := EnergyUse(text)
	if !v.Valid() {
		return fmt.Errorf("invalid energy use %q", string(text))
	}
	*e = v
	return nil
}

// NonconformityCategory classifies an issue.
type NonconformityCategory string

const (
	CategoryQuality       NonconformityCategory = "quality"
	CategorySafety        NonconformityCategory = "safety"
	CategoryEnvironmental NonconformityCategory = "environmental"
)

// Valid reports whether c is a known category.
func (c NonconformityCategory) Valid() bool {
	switch c {
	case CategoryQuality, CategorySafety, CategoryEnvironmental:
		return true
	default:
		return false
	}
}

func (c *NonconformityCategory) UnmarshalText(text []byte) error {
	v := NonconformityCategory(text)
	if !v.Valid() {
		return fmt.Errorf("invalid category %q", string(text))
	}
	*c = v
	return nil
}

// Severity ranks the impact of an issue.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	default:
		return false
	}
}

func (s *Severity) UnmarshalText(text []byte) error {
	v := Severity(text)
	if !v.Valid() {
		return fmt.Errorf("invalid severity %q", string(text))
	}
	*s = v
	return nil
}

// NonconformityStatus is the remediation workflow state.
type NonconformityStatus string

const (
	StatusOpen       NonconformityStatus = "open"
	StatusInProgress NonconformityStatus = "in_progress"
	StatusClosed     NonconformityStatus = "closed"
)

// Valid reports whether s is a known status.
func (s NonconformityStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusClosed:
		return true
	default:
		return false
	}
}

// Active reports whether the issue still counts as open work.
func (s NonconformityStatus) Active() bool {
	switch s {
	case StatusOpen, StatusInProgress:
		return true
	case StatusClosed:
		return false
	default:
		return false
	}
}

func (s *NonconformityStatus) UnmarshalText(text []byte) error {
	v, err := ParseNonconformityStatus(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseNonconformityStatus validates a raw status value, typically from a query string.
func ParseNonconformityStatus(raw string) (NonconformityStatus, error) {
	v := NonconformityStatus(raw)
	if !v.Valid() {
		return "", fmt.Errorf("invalid status %q", raw)
	}
	return v, nil
}

// ActiveStatuses lists the statuses counted as open issues.
func ActiveStatuses() []NonconformityStatus {
	return []NonconformityStatus{StatusOpen, StatusInProgress}
}
