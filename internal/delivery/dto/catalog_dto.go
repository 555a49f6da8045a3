package dto

import "github.com/shopspring/decimal"

type SpecialtyResponse struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

type ClinicServiceResponse struct {
	ID              int64           `json:"id"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"duration_minutes"`
}
