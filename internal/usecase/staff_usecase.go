package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vetadmin/internal/converter"
	"vetadmin/internal/delivery/dto"
	"vetadmin/internal/delivery/http/middleware"
	"vetadmin/internal/domain/entity"
	"vetadmin/internal/domain/gateway"
	"vetadmin/internal/service"
	"vetadmin/pkg/validator"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	ErrUnknownRole   = errors.New("unknown staff role")
	ErrStaffNotFound = errors.New("staff member not found")
)

// ValidationError is the result of a failed validation gate. When it is
// returned, no clinic API call has been made.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// Step identifies which half of the two-phase protocol failed.
type Step string

const (
	StepAccount Step = "account"
	StepProfile Step = "profile"
)

// StepError is a clinic API failure attributed to one protocol step. For a
// create flow that failed at the profile step, OrphanAccountID names the
// account that was already created and deliberately left in place.
type StepError struct {
	Step            Step
	OrphanAccountID int64
	Err             error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s step failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// roleSpec parameterizes the shared protocol for the three staff roles.
type roleSpec struct {
	role         entity.Role
	hasShift     bool
	hasVetFields bool
	hardDelete   bool
}

var roleSpecs = map[entity.Role]roleSpec{
	entity.RoleVeterinarian:  {role: entity.RoleVeterinarian, hasShift: true, hasVetFields: true},
	entity.RoleReceptionist:  {role: entity.RoleReceptionist, hasShift: true},
	entity.RoleAdministrator: {role: entity.RoleAdministrator, hardDelete: true},
}

// StaffListQuery carries both the server-side filters (page, per_page, shift)
// and the client-side search term.
type StaffListQuery struct {
	Page    int
	PerPage int
	Shift   string
	Search  string
}

type StaffUsecase interface {
	Provision(ctx context.Context, role entity.Role, req *dto.CreateStaffRequest) (*dto.StaffResponse, error)
	Update(ctx context.Context, role entity.Role, id int64, req *dto.UpdateStaffRequest) (*dto.UpdateStaffResponse, error)
	Remove(ctx context.Context, role entity.Role, id int64) error
	Get(ctx context.Context, role entity.Role, id int64) (*dto.StaffResponse, error)
	List(ctx context.Context, role entity.Role, q StaffListQuery) (*entity.StaffPage, error)
}

type staffUsecase struct {
	log       *logrus.Logger
	validator *validator.CustomValidator
	accounts  gateway.AccountGateway
	staff     gateway.StaffGateway
	catalog   gateway.CatalogGateway
	audit     service.AuditService
}

func NewStaffUsecase(
	log *logrus.Logger,
	customValidator *validator.CustomValidator,
	accounts gateway.AccountGateway,
	staff gateway.StaffGateway,
	catalog gateway.CatalogGateway,
	audit service.AuditService,
) StaffUsecase {
	return &staffUsecase{
		log:       log,
		validator: customValidator,
		accounts:  accounts,
		staff:     staff,
		catalog:   catalog,
		audit:     audit,
	}
}

// Provision runs the two-phase create: account first, then profile. The two
// calls are strictly sequential because the profile payload needs the
// server-assigned account ID. A profile-step failure does not roll back the
// account; the orphan is recorded and reported as a named outcome.
func (u *staffUsecase) Provision(ctx context.Context, role entity.Role, req *dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	spec, ok := roleSpecs[role]
	if !ok {
		return nil, ErrUnknownRole
	}

	req.Normalize()
	if verr := u.validateCreate(spec, req); verr != nil {
		return nil, verr
	}

	loginName := entity.DeriveUsername(role, req.GivenName)

	account, err := u.accounts.Create(ctx, &entity.Account{
		LoginName: loginName,
		Secret:    req.Secret,
		Role:      role,
		Status:    entity.AccountStatusActive,
	})
	if err != nil {
		u.log.Warnf("Failed to create account for new %s: %+v", role, err)
		return nil, &StepError{Step: StepAccount, Err: err}
	}

	profile := u.buildProfile(ctx, spec, account.ID, req)

	created, err := u.staff.Create(ctx, role, profile)
	if err != nil {
		u.log.Warnf("Profile creation failed after account %d was created: %+v", account.ID, err)
		actorID, _ := middleware.GetAccountIDFromContext(ctx)
		u.audit.Record(ctx, &actorID, entity.AuditActionStaffOrphan, entity.JSON{
			"role":       string(role),
			"account_id": account.ID,
			"login_name": account.LoginName,
			"error":      err.Error(),
		})
		return nil, &StepError{Step: StepProfile, OrphanAccountID: account.ID, Err: err}
	}

	actorID, _ := middleware.GetAccountIDFromContext(ctx)
	u.audit.Record(ctx, &actorID, entity.AuditActionStaffProvision, entity.JSON{
		"role":       string(role),
		"account_id": account.ID,
		"profile_id": created.ID,
		"login_name": account.LoginName,
	})

	return converter.EnrichedStaffToResponse(&entity.EnrichedStaff{
		StaffProfile:  *created,
		LoginName:     account.LoginName,
		AccountStatus: account.Status,
	}), nil
}

// Update applies the profile update, then the two optional account sub-steps.
// Sub-step failures after the profile update are collected into the message
// list instead of aborting: partial success is communicated, not swallowed.
func (u *staffUsecase) Update(ctx context.Context, role entity.Role, id int64, req *dto.UpdateStaffRequest) (*dto.UpdateStaffResponse, error) {
	spec, ok := roleSpecs[role]
	if !ok {
		return nil, ErrUnknownRole
	}

	req.Normalize()
	if verr := u.validateUpdate(spec, req); verr != nil {
		return nil, verr
	}

	current, err := u.staff.FindByID(ctx, role, id)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, &StepError{Step: StepProfile, Err: err}
	}

	updated := u.buildProfile(ctx, spec, current.AccountID, &dto.CreateStaffRequest{
		NationalID:      current.NationalID, // immutable post-creation
		GivenName:       req.GivenName,
		PaternalSurname: req.PaternalSurname,
		MaternalSurname: req.MaternalSurname,
		Phone:           req.Phone,
		Email:           req.Email,
		Gender:          req.Gender,
		Shift:           req.Shift,
		LicenseCode:     req.LicenseCode,
		BirthDate:       req.BirthDate,
		SpecialtyID:     req.SpecialtyID,
	})
	updated.ID = current.ID
	updated.HireDate = current.HireDate
	updated.Availability = current.Availability

	saved, err := u.staff.Update(ctx, role, id, updated)
	if err != nil {
		return nil, &StepError{Step: StepProfile, Err: err}
	}

	messages := []string{"Profile updated"}
	loginName := entity.StatusUnknown
	accountStatus := entity.StatusUnknown

	account, err := u.accounts.FindByID(ctx, current.AccountID)
	if err != nil {
		u.log.Warnf("Failed to load account %d during staff update: %+v", current.AccountID, err)
		if req.LoginName != "" {
			messages = append(messages, "Login name not updated: "+err.Error())
		}
	} else {
		loginName = account.LoginName
		accountStatus = account.Status
		if req.LoginName != "" && req.LoginName != account.LoginName {
			if err := u.accounts.Update(ctx, account.ID, req.LoginName); err != nil {
				u.log.Warnf("Failed to update login name for account %d: %+v", account.ID, err)
				messages = append(messages, "Login name not updated: "+err.Error())
			} else {
				loginName = req.LoginName
				messages = append(messages, "Login name updated")
			}
		}
	}

	if req.Secret != "" {
		if err := u.accounts.ResetSecret(ctx, current.AccountID, req.Secret); err != nil {
			u.log.Warnf("Failed to reset secret for account %d: %+v", current.AccountID, err)
			messages = append(messages, "Secret not reset: "+err.Error())
		} else {
			messages = append(messages, "Secret reset")
		}
	}

	actorID, _ := middleware.GetAccountIDFromContext(ctx)
	u.audit.Record(ctx, &actorID, entity.AuditActionStaffUpdate, entity.JSON{
		"role":       string(role),
		"profile_id": id,
		"messages":   messages,
	})

	return &dto.UpdateStaffResponse{
		Staff: converter.EnrichedStaffToResponse(&entity.EnrichedStaff{
			StaffProfile:  *saved,
			LoginName:     loginName,
			AccountStatus: accountStatus,
		}),
		Messages: messages,
	}, nil
}

// Remove applies the role-specific delete policy: administrators are hard
// deleted, everyone else has their account deactivated and keeps the profile
// row, which the listing status filter then hides.
func (u *staffUsecase) Remove(ctx context.Context, role entity.Role, id int64) error {
	spec, ok := roleSpecs[role]
	if !ok {
		return ErrUnknownRole
	}

	current, err := u.staff.FindByID(ctx, role, id)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return ErrStaffNotFound
		}
		return &StepError{Step: StepProfile, Err: err}
	}

	actorID, _ := middleware.GetAccountIDFromContext(ctx)

	if spec.hardDelete {
		if err := u.staff.Delete(ctx, id); err != nil {
			return &StepError{Step: StepProfile, Err: err}
		}
		u.audit.Record(ctx, &actorID, entity.AuditActionStaffDelete, entity.JSON{
			"role":       string(role),
			"profile_id": id,
			"account_id": current.AccountID,
		})
		return nil
	}

	if err := u.accounts.Deactivate(ctx, current.AccountID); err != nil {
		return &StepError{Step: StepAccount, Err: err}
	}
	u.audit.Record(ctx, &actorID, entity.AuditActionStaffDeactivate, entity.JSON{
		"role":       string(role),
		"profile_id": id,
		"account_id": current.AccountID,
	})
	return nil
}

func (u *staffUsecase) Get(ctx context.Context, role entity.Role, id int64) (*dto.StaffResponse, error) {
	if _, ok := roleSpecs[role]; !ok {
		return nil, ErrUnknownRole
	}

	profile, err := u.staff.FindByID(ctx, role, id)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, &StepError{Step: StepProfile, Err: err}
	}

	row := u.enrich(ctx, *profile)
	return converter.EnrichedStaffToResponse(&row), nil
}

// List fetches one server page, narrows it with the client-side search term,
// enriches the surviving rows concurrently and drops rows whose account is
// known to be inactive. The server totals are passed through untouched even
// though narrowing and dropping can shrink the page below them.
func (u *staffUsecase) List(ctx context.Context, role entity.Role, q StaffListQuery) (*entity.StaffPage, error) {
	if _, ok := roleSpecs[role]; !ok {
		return nil, ErrUnknownRole
	}

	if q.Page <= 0 {
		q.Page = 1
	}
	if q.PerPage <= 0 {
		q.PerPage = 10
	}

	result, err := u.staff.List(ctx, role, gateway.ListQuery{
		Page:    q.Page,
		PerPage: q.PerPage,
		Shift:   q.Shift,
	})
	if err != nil {
		return nil, &StepError{Step: StepProfile, Err: err}
	}

	filtered := filterBySearch(result.Items, q.Search)

	rows := make([]entity.EnrichedStaff, len(filtered))
	g, gctx := errgroup.WithContext(ctx)
	for i := range filtered {
		g.Go(func() error {
			rows[i] = u.enrich(gctx, filtered[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Unknown status must not hide a row; only a known-inactive account does.
	visible := make([]entity.EnrichedStaff, 0, len(rows))
	for _, row := range rows {
		if row.AccountStatus == entity.AccountStatusActive || row.AccountStatus == entity.StatusUnknown {
			visible = append(visible, row)
		}
	}

	return &entity.StaffPage{
		Items:      visible,
		Total:      result.Total,
		TotalPages: result.TotalPages,
	}, nil
}

// enrich joins one profile with its account's display fields. A failed lookup
// degrades the row to placeholders instead of failing the page.
func (u *staffUsecase) enrich(ctx context.Context, profile entity.StaffProfile) entity.EnrichedStaff {
	row := entity.EnrichedStaff{
		StaffProfile:  profile,
		LoginName:     entity.StatusUnknown,
		AccountStatus: entity.StatusUnknown,
	}

	account, err := u.accounts.FindByID(ctx, profile.AccountID)
	if err != nil {
		u.log.Warnf("Failed to enrich profile %d with account %d: %+v", profile.ID, profile.AccountID, err)
		return row
	}

	row.LoginName = account.LoginName
	row.AccountStatus = account.Status
	return row
}

func filterBySearch(items []entity.StaffProfile, search string) []entity.StaffProfile {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return items
	}

	matches := func(p *entity.StaffProfile) bool {
		for _, field := range []string{p.NationalID, p.GivenName, p.PaternalSurname, p.MaternalSurname, p.LicenseCode} {
			if strings.Contains(strings.ToLower(field), search) {
				return true
			}
		}
		return false
	}

	var filtered []entity.StaffProfile
	for i := range items {
		if matches(&items[i]) {
			filtered = append(filtered, items[i])
		}
	}
	return filtered
}

// buildProfile assembles the role-specific profile payload. Fields that do
// not apply to the role are left zero even when the request carries them. The
// vet type is always re-derived from the selected specialty, never accepted
// from the caller.
func (u *staffUsecase) buildProfile(ctx context.Context, spec roleSpec, accountID int64, req *dto.CreateStaffRequest) *entity.StaffProfile {
	profile := &entity.StaffProfile{
		AccountID:       accountID,
		NationalID:      req.NationalID,
		GivenName:       req.GivenName,
		PaternalSurname: req.PaternalSurname,
		MaternalSurname: req.MaternalSurname,
		Phone:           req.Phone,
		Email:           req.Email,
		Gender:          req.Gender,
		HireDate:        time.Now().Format("2006-01-02"),
	}

	if spec.hasShift {
		profile.Shift = req.Shift
	}

	if spec.hasVetFields {
		specialtyID := req.SpecialtyID
		if specialtyID == 0 {
			specialtyID = entity.DefaultSpecialtyID
		}
		profile.LicenseCode = req.LicenseCode
		profile.BirthDate = req.BirthDate
		profile.SpecialtyID = specialtyID
		profile.VetKind = entity.DeriveVetKind(u.lookupSpecialty(ctx, specialtyID))
		profile.Availability = entity.AvailabilityFree
	}

	return profile
}

// lookupSpecialty resolves a specialty for type derivation. A failed catalog
// fetch or an unknown ID degrades to nil, which derives the general default.
func (u *staffUsecase) lookupSpecialty(ctx context.Context, id int64) *entity.Specialty {
	specialties, err := u.catalog.Specialties(ctx)
	if err != nil {
		u.log.Warnf("Failed to load specialties: %+v", err)
		return nil
	}
	for i := range specialties {
		if specialties[i].ID == id {
			return &specialties[i]
		}
	}
	return nil
}

func (u *staffUsecase) validateCreate(spec roleSpec, req *dto.CreateStaffRequest) *ValidationError {
	fields := map[string]string{}
	if err := u.validator.Validate(req); err != nil {
		fields = u.validator.FormatValidationErrors(err)
	}

	if spec.hasShift && req.Shift == "" {
		fields["Shift"] = "Shift is required"
	}
	if spec.hasVetFields {
		if req.LicenseCode == "" {
			fields["LicenseCode"] = "LicenseCode is required"
		}
		if req.BirthDate == "" {
			fields["BirthDate"] = "BirthDate is required"
		}
		if req.SpecialtyID == 0 {
			fields["SpecialtyID"] = "SpecialtyID is required"
		}
	}
	if req.Secret == "" {
		fields["Secret"] = "Secret is required"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (u *staffUsecase) validateUpdate(spec roleSpec, req *dto.UpdateStaffRequest) *ValidationError {
	fields := map[string]string{}
	if err := u.validator.Validate(req); err != nil {
		fields = u.validator.FormatValidationErrors(err)
	}

	if spec.hasShift && req.Shift == "" {
		fields["Shift"] = "Shift is required"
	}
	if spec.hasVetFields {
		if req.LicenseCode == "" {
			fields["LicenseCode"] = "LicenseCode is required"
		}
		if req.BirthDate == "" {
			fields["BirthDate"] = "BirthDate is required"
		}
		if req.SpecialtyID == 0 {
			fields["SpecialtyID"] = "SpecialtyID is required"
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
