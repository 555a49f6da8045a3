package entity

import "github.com/shopspring/decimal"

// Specialty is a read-only catalog entry used to resolve a veterinarian's
// derived type and to display the specialty name.
type Specialty struct {
	ID          int64  `json:"specialty_id"`
	Description string `json:"description"`
}

// ClinicService is a read-only catalog entry for a billable clinic service.
type ClinicService struct {
	ID          int64           `json:"service_id"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Duration    int             `json:"duration_minutes"`
}
