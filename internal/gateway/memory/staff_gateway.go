package memory

import (
	"context"
	"fmt"
	"sort"

	"vetadmin/internal/domain/entity"
	"vetadmin/internal/domain/gateway"
)

var ErrProfileNotFound = fmt.Errorf("profile %w", gateway.ErrNotFound)

type staffGateway struct {
	store *Store
}

func NewStaffGateway(store *Store) gateway.StaffGateway {
	return &staffGateway{store: store}
}

func (g *staffGateway) Create(ctx context.Context, role entity.Role, profile *entity.StaffProfile) (*entity.StaffProfile, error) {
	s := g.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[profile.AccountID]; !ok {
		return nil, ErrAccountNotFound
	}

	created := s.addProfile(role, *profile)
	out := *created
	return &out, nil
}

func (g *staffGateway) Update(ctx context.Context, role entity.Role, id int64, profile *entity.StaffProfile) (*entity.StaffProfile, error) {
	s := g.store
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.profiles[role][id]
	if !ok {
		return nil, ErrProfileNotFound
	}

	// National ID and account linkage are immutable after creation.
	updated := *profile
	updated.ID = existing.ID
	updated.AccountID = existing.AccountID
	updated.NationalID = existing.NationalID
	updated.HireDate = existing.HireDate
	*existing = updated

	out := *existing
	return &out, nil
}

func (g *staffGateway) FindByID(ctx context.Context, role entity.Role, id int64) (*entity.StaffProfile, error) {
	s := g.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[role][id]
	if !ok {
		return nil, ErrProfileNotFound
	}
	out := *profile
	return &out, nil
}

func (g *staffGateway) List(ctx context.Context, role entity.Role, q gateway.ListQuery) (*gateway.ListResult, error) {
	s := g.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []entity.StaffProfile
	for _, profile := range s.profiles[role] {
		if q.Shift != "" && profile.Shift != q.Shift {
			continue
		}
		all = append(all, *profile)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	perPage := q.PerPage
	if perPage <= 0 {
		perPage = 10
	}
	page := q.Page
	if page <= 0 {
		page = 1
	}

	total := int64(len(all))
	totalPages := (len(all) + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}

	start := (page - 1) * perPage
	if start > len(all) {
		start = len(all)
	}
	end := start + perPage
	if end > len(all) {
		end = len(all)
	}

	return &gateway.ListResult{
		Items:      all[start:end],
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

func (g *staffGateway) Delete(ctx context.Context, id int64) error {
	s := g.store
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[entity.RoleAdministrator][id]
	if !ok {
		return ErrProfileNotFound
	}

	// Hard delete removes the credential record along with the profile.
	delete(s.accounts, profile.AccountID)
	delete(s.secrets, profile.AccountID)
	delete(s.profiles[entity.RoleAdministrator], id)
	return nil
}
