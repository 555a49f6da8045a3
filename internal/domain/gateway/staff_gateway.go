package gateway

import (
	"context"

	"vetadmin/internal/domain/entity"
)

// ListQuery is the server-side portion of a staff listing request. Free-text
// search is applied client-side and never reaches the clinic API.
type ListQuery struct {
	Page    int
	PerPage int
	Shift   string
}

// ListResult is one page of raw profiles plus the server-reported totals.
type ListResult struct {
	Items      []entity.StaffProfile
	Total      int64
	TotalPages int
}

// StaffGateway is the clinic API surface for role-specific profile resources
// (/{role}-profiles). One implementation serves all three roles.
type StaffGateway interface {
	Create(ctx context.Context, role entity.Role, profile *entity.StaffProfile) (*entity.StaffProfile, error)
	Update(ctx context.Context, role entity.Role, id int64, profile *entity.StaffProfile) (*entity.StaffProfile, error)
	FindByID(ctx context.Context, role entity.Role, id int64) (*entity.StaffProfile, error)
	List(ctx context.Context, role entity.Role, q ListQuery) (*ListResult, error)
	// Delete permanently removes an administrator record. The clinic API only
	// exposes hard deletion for administrators.
	Delete(ctx context.Context, id int64) error
}
