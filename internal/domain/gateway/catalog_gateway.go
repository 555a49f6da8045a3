package gateway

import (
	"context"

	"vetadmin/internal/domain/entity"
)

// CatalogGateway exposes the clinic API's read-only reference data.
type CatalogGateway interface {
	Specialties(ctx context.Context) ([]entity.Specialty, error)
	Services(ctx context.Context) ([]entity.ClinicService, error)
}
