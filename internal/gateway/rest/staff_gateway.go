package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"vetadmin/internal/domain/entity"
	"vetadmin/internal/domain/gateway"
)

var profilePaths = map[entity.Role]string{
	entity.RoleVeterinarian:  "/veterinarian-profiles",
	entity.RoleReceptionist:  "/receptionist-profiles",
	entity.RoleAdministrator: "/administrator-profiles",
}

type staffGateway struct {
	client *Client
}

func NewStaffGateway(client *Client) gateway.StaffGateway {
	return &staffGateway{client: client}
}

func (g *staffGateway) Create(ctx context.Context, role entity.Role, profile *entity.StaffProfile) (*entity.StaffProfile, error) {
	var created entity.StaffProfile
	if err := g.client.do(ctx, http.MethodPost, profilePaths[role], nil, profile, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (g *staffGateway) Update(ctx context.Context, role entity.Role, id int64, profile *entity.StaffProfile) (*entity.StaffProfile, error) {
	path := fmt.Sprintf("%s/%d", profilePaths[role], id)

	var updated entity.StaffProfile
	if err := g.client.do(ctx, http.MethodPut, path, nil, profile, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (g *staffGateway) FindByID(ctx context.Context, role entity.Role, id int64) (*entity.StaffProfile, error) {
	path := fmt.Sprintf("%s/%d", profilePaths[role], id)

	var profile entity.StaffProfile
	if err := g.client.do(ctx, http.MethodGet, path, nil, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (g *staffGateway) List(ctx context.Context, role entity.Role, q gateway.ListQuery) (*gateway.ListResult, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("per_page", strconv.Itoa(q.PerPage))
	if q.Shift != "" {
		query.Set("shift", q.Shift)
	}

	var page struct {
		Items      []entity.StaffProfile `json:"items"`
		Total      int64                 `json:"total"`
		TotalPages int                   `json:"total_pages"`
	}
	if err := g.client.do(ctx, http.MethodGet, profilePaths[role], query, nil, &page); err != nil {
		return nil, err
	}

	return &gateway.ListResult{
		Items:      page.Items,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	}, nil
}

func (g *staffGateway) Delete(ctx context.Context, id int64) error {
	return g.client.do(ctx, http.MethodDelete, fmt.Sprintf("/administrators/%d", id), nil, nil, nil)
}
