package memory

import (
	"context"

	"vetadmin/internal/domain/entity"
	"vetadmin/internal/domain/gateway"
)

type catalogGateway struct {
	store *Store
}

func NewCatalogGateway(store *Store) gateway.CatalogGateway {
	return &catalogGateway{store: store}
}

func (g *catalogGateway) Specialties(ctx context.Context) ([]entity.Specialty, error) {
	s := g.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.Specialty, len(s.specialties))
	copy(out, s.specialties)
	return out, nil
}

func (g *catalogGateway) Services(ctx context.Context) ([]entity.ClinicService, error) {
	s := g.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.ClinicService, len(s.services))
	copy(out, s.services)
	return out, nil
}
