package models

// SeedResult reports what a seed operation inserted. Skipped is set when data already existed.
type SeedResult struct {
	Message         string `json:"message"`
	Skipped         bool   `json:"skipped"`
	Cooperatives    int    `json:"cooperatives"`
	ProductionLogs  int    `json:"production_logs"`
	Nonconformities int    `json:"nonconformities"`
	Farms           int    `json:"farms"`
	ESGPeriods      int    `json:"esg_periods"`
}

// ReinitResult reports the wipe counts and the reseed that followed.
type ReinitResult struct {
	DeletedCooperatives    int64      `json:"deleted_cooperatives"`
	DeletedProductionLogs  int64      `json:"deleted_production_logs"`
	DeletedNonconformities int64      `json:"deleted_nonconformities"`
	Seed                   SeedResult `json:"seed"`
}

// FixManagersRequest optionally names the cooperative to assign.
type FixManagersRequest struct {
	CooperativeID string `json:"cooperative_id"`
}

// FixManagersResult reports how many managers were reassigned.
type FixManagersResult struct {
	CooperativeID string `json:"cooperative_id"`
	Scanned       int    `json:"scanned"`
	Updated       int    `json:"updated"`
}

// EmailDomainRequest names the domain to rewrite and its replacement.
type EmailDomainRequest struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

// EmailDomainResult reports the outcome of an email domain rewrite.
type EmailDomainResult struct {
	Scanned int `json:"scanned"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// ExportResult reports how many rows were written to the export sheet.
type ExportResult struct {
	Rows int `json:"rows"`
}
