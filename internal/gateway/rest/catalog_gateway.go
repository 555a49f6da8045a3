package rest

import (
	"context"
	"net/http"

	"vetadmin/internal/domain/entity"
	"vetadmin/internal/domain/gateway"
)

type catalogGateway struct {
	client *Client
}

func NewCatalogGateway(client *Client) gateway.CatalogGateway {
	return &catalogGateway{client: client}
}

func (g *catalogGateway) Specialties(ctx context.Context) ([]entity.Specialty, error) {
	var specialties []entity.Specialty
	if err := g.client.do(ctx, http.MethodGet, "/specialties", nil, nil, &specialties); err != nil {
		return nil, err
	}
	return specialties, nil
}

func (g *catalogGateway) Services(ctx context.Context) ([]entity.ClinicService, error) {
	var services []entity.ClinicService
	if err := g.client.do(ctx, http.MethodGet, "/services", nil, nil, &services); err != nil {
		return nil, err
	}
	return services, nil
}
