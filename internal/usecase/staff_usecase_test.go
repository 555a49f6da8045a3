package usecase_test

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"vetadmin/internal/delivery/dto"
	"vetadmin/internal/domain/entity"
	"vetadmin/internal/domain/gateway"
	"vetadmin/internal/usecase"
	"vetadmin/pkg/validator"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Hand-written recording fakes. Every call that would reach the clinic API is
// captured so tests can assert exactly which calls were (not) made.

type loginNameCall struct {
	id        int64
	loginName string
}

type secretCall struct {
	id     int64
	secret string
}

type fakeAccountGateway struct {
	nextID   int64
	accounts map[int64]entity.Account

	createErr error
	updateErr error
	resetErr  error

	createCalls []entity.Account
	updateCalls []loginNameCall
	resetCalls  []secretCall
	deactivated []int64
}

func newFakeAccountGateway() *fakeAccountGateway {
	return &fakeAccountGateway{nextID: 100, accounts: map[int64]entity.Account{}}
}

func (g *fakeAccountGateway) Create(ctx context.Context, account *entity.Account) (*entity.Account, error) {
	g.createCalls = append(g.createCalls, *account)
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.nextID++
	created := *account
	created.ID = g.nextID
	g.accounts[created.ID] = created
	return &created, nil
}

func (g *fakeAccountGateway) Update(ctx context.Context, id int64, loginName string) error {
	g.updateCalls = append(g.updateCalls, loginNameCall{id: id, loginName: loginName})
	if g.updateErr != nil {
		return g.updateErr
	}
	account := g.accounts[id]
	account.LoginName = loginName
	g.accounts[id] = account
	return nil
}

func (g *fakeAccountGateway) ResetSecret(ctx context.Context, id int64, secret string) error {
	g.resetCalls = append(g.resetCalls, secretCall{id: id, secret: secret})
	return g.resetErr
}

func (g *fakeAccountGateway) Deactivate(ctx context.Context, id int64) error {
	g.deactivated = append(g.deactivated, id)
	account := g.accounts[id]
	account.Status = entity.AccountStatusInactive
	g.accounts[id] = account
	return nil
}

func (g *fakeAccountGateway) FindByID(ctx context.Context, id int64) (*entity.Account, error) {
	account, ok := g.accounts[id]
	if !ok {
		return nil, fmt.Errorf("account %d: %w", id, gateway.ErrNotFound)
	}
	return &account, nil
}

func (g *fakeAccountGateway) Login(ctx context.Context, loginName, secret string) (*entity.Account, error) {
	return nil, fmt.Errorf("login: %w", gateway.ErrNotFound)
}

type fakeStaffGateway struct {
	nextID   int64
	profiles map[int64]entity.StaffProfile

	createErr error
	updateErr error
	listErr   error

	listResult  *gateway.ListResult
	listQueries []gateway.ListQuery
	created     []entity.StaffProfile
	updated     []entity.StaffProfile
	deleted     []int64
}

func newFakeStaffGateway() *fakeStaffGateway {
	return &fakeStaffGateway{nextID: 500, profiles: map[int64]entity.StaffProfile{}}
}

func (g *fakeStaffGateway) Create(ctx context.Context, role entity.Role, profile *entity.StaffProfile) (*entity.StaffProfile, error) {
	g.created = append(g.created, *profile)
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.nextID++
	created := *profile
	created.ID = g.nextID
	g.profiles[created.ID] = created
	return &created, nil
}

func (g *fakeStaffGateway) Update(ctx context.Context, role entity.Role, id int64, profile *entity.StaffProfile) (*entity.StaffProfile, error) {
	g.updated = append(g.updated, *profile)
	if g.updateErr != nil {
		return nil, g.updateErr
	}
	saved := *profile
	saved.ID = id
	g.profiles[id] = saved
	return &saved, nil
}

func (g *fakeStaffGateway) FindByID(ctx context.Context, role entity.Role, id int64) (*entity.StaffProfile, error) {
	profile, ok := g.profiles[id]
	if !ok {
		return nil, fmt.Errorf("profile %d: %w", id, gateway.ErrNotFound)
	}
	return &profile, nil
}

func (g *fakeStaffGateway) List(ctx context.Context, role entity.Role, q gateway.ListQuery) (*gateway.ListResult, error) {
	g.listQueries = append(g.listQueries, q)
	if g.listErr != nil {
		return nil, g.listErr
	}
	if g.listResult != nil {
		return g.listResult, nil
	}
	return &gateway.ListResult{}, nil
}

func (g *fakeStaffGateway) Delete(ctx context.Context, id int64) error {
	g.deleted = append(g.deleted, id)
	delete(g.profiles, id)
	return nil
}

type fakeCatalogGateway struct {
	specialties []entity.Specialty
	err         error
}

func (g *fakeCatalogGateway) Specialties(ctx context.Context) ([]entity.Specialty, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.specialties, nil
}

func (g *fakeCatalogGateway) Services(ctx context.Context) ([]entity.ClinicService, error) {
	return nil, nil
}

type fakeAuditService struct {
	actions []string
}

func (s *fakeAuditService) Record(ctx context.Context, actorID *int64, action string, metadata entity.JSON) {
	s.actions = append(s.actions, action)
}

type staffFixture struct {
	usecase  usecase.StaffUsecase
	accounts *fakeAccountGateway
	staff    *fakeStaffGateway
	catalog  *fakeCatalogGateway
	audit    *fakeAuditService
}

func newStaffFixture() *staffFixture {
	log := logrus.New()
	log.SetOutput(io.Discard)

	f := &staffFixture{
		accounts: newFakeAccountGateway(),
		staff:    newFakeStaffGateway(),
		catalog: &fakeCatalogGateway{specialties: []entity.Specialty{
			{ID: 1, Description: "Medicina General"},
			{ID: 2, Description: "Cirugia"},
			{ID: 3, Description: "Dermatologia"},
		}},
		audit: &fakeAuditService{},
	}
	f.usecase = usecase.NewStaffUsecase(log, validator.NewValidator(), f.accounts, f.staff, f.catalog, f.audit)
	return f
}

func validCreateRequest() *dto.CreateStaffRequest {
	return &dto.CreateStaffRequest{
		NationalID:      "12345678",
		GivenName:       "Carlos",
		PaternalSurname: "Ramos",
		MaternalSurname: "Diaz",
		Phone:           "987654321",
		Email:           "carlos@vetclinic.pe",
		Gender:          "M",
		Shift:           entity.ShiftMorning,
		LicenseCode:     "CVP-1001",
		BirthDate:       "1990-05-04",
		SpecialtyID:     1,
		Secret:          "secret123",
	}
}

func TestProvisionVeterinarian(t *testing.T) {
	f := newStaffFixture()

	staff, err := f.usecase.Provision(context.Background(), entity.RoleVeterinarian, validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, "vet_carlos", staff.LoginName)
	assert.Equal(t, entity.AccountStatusActive, staff.AccountStatus)
	assert.Equal(t, entity.VetKindGeneral, staff.VetKind)
	assert.Equal(t, entity.AvailabilityFree, staff.Availability)
	assert.Equal(t, time.Now().Format("2006-01-02"), staff.HireDate)

	// Account first, then profile, linked by the server-assigned account ID.
	require.Len(t, f.accounts.createCalls, 1)
	require.Len(t, f.staff.created, 1)
	assert.Equal(t, entity.RoleVeterinarian, f.accounts.createCalls[0].Role)
	assert.Equal(t, f.staff.created[0].AccountID, staff.AccountID)
	assert.Equal(t, []string{entity.AuditActionStaffProvision}, f.audit.actions)
}

func TestProvisionSpecialistKind(t *testing.T) {
	f := newStaffFixture()
	req := validCreateRequest()
	req.SpecialtyID = 2

	staff, err := f.usecase.Provision(context.Background(), entity.RoleVeterinarian, req)
	require.NoError(t, err)
	assert.Equal(t, entity.VetKindSpecialist, staff.VetKind)
}

func TestProvisionCatalogFailureDerivesGeneral(t *testing.T) {
	f := newStaffFixture()
	f.catalog.err = fmt.Errorf("catalog unavailable")
	req := validCreateRequest()
	req.SpecialtyID = 2

	staff, err := f.usecase.Provision(context.Background(), entity.RoleVeterinarian, req)
	require.NoError(t, err)
	assert.Equal(t, entity.VetKindGeneral, staff.VetKind)
}

func TestProvisionReceptionistOmitsVetFields(t *testing.T) {
	f := newStaffFixture()
	req := validCreateRequest()
	req.GivenName = "Ana Maria"
	req.LicenseCode = ""
	req.BirthDate = ""
	req.SpecialtyID = 0

	staff, err := f.usecase.Provision(context.Background(), entity.RoleReceptionist, req)
	require.NoError(t, err)

	assert.Equal(t, "recep_ana", staff.LoginName)
	assert.Equal(t, entity.ShiftMorning, staff.Shift)
	assert.Empty(t, staff.VetKind)
	assert.Empty(t, staff.Availability)
	assert.Zero(t, staff.SpecialtyID)
}

func TestProvisionAdministratorOmitsShift(t *testing.T) {
	f := newStaffFixture()
	req := validCreateRequest()
	req.GivenName = "Pedro"
	req.Shift = ""
	req.LicenseCode = ""
	req.BirthDate = ""
	req.SpecialtyID = 0

	staff, err := f.usecase.Provision(context.Background(), entity.RoleAdministrator, req)
	require.NoError(t, err)

	assert.Equal(t, "admin_pedro", staff.LoginName)
	assert.Empty(t, staff.Shift)
}

func TestProvisionValidationGateBlocksAllCalls(t *testing.T) {
	f := newStaffFixture()
	req := validCreateRequest()
	req.NationalID = "123" // too short
	req.Email = "not-an-email"
	req.Secret = ""

	_, err := f.usecase.Provision(context.Background(), entity.RoleVeterinarian, req)

	var verr *usecase.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "NationalID")
	assert.Contains(t, verr.Fields, "Email")
	assert.Contains(t, verr.Fields, "Secret")

	// Failing the gate must not reach the clinic API at all.
	assert.Empty(t, f.accounts.createCalls)
	assert.Empty(t, f.staff.created)
}

func TestProvisionRoleSpecificValidation(t *testing.T) {
	f := newStaffFixture()
	req := validCreateRequest()
	req.Shift = ""
	req.LicenseCode = ""
	req.BirthDate = ""
	req.SpecialtyID = 0

	_, err := f.usecase.Provision(context.Background(), entity.RoleVeterinarian, req)

	var verr *usecase.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "Shift")
	assert.Contains(t, verr.Fields, "LicenseCode")
	assert.Contains(t, verr.Fields, "BirthDate")
	assert.Contains(t, verr.Fields, "SpecialtyID")
}

func TestProvisionAccountStepFailure(t *testing.T) {
	f := newStaffFixture()
	f.accounts.createErr = fmt.Errorf("login name already taken")

	_, err := f.usecase.Provision(context.Background(), entity.RoleVeterinarian, validCreateRequest())

	var serr *usecase.StepError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, usecase.StepAccount, serr.Step)
	assert.Zero(t, serr.OrphanAccountID)

	// The profile step must never start after a failed account step.
	assert.Empty(t, f.staff.created)
}

func TestProvisionProfileStepFailureLeavesOrphan(t *testing.T) {
	f := newStaffFixture()
	f.staff.createErr = fmt.Errorf("duplicate national_id")

	_, err := f.usecase.Provision(context.Background(), entity.RoleVeterinarian, validCreateRequest())

	var serr *usecase.StepError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, usecase.StepProfile, serr.Step)
	assert.Equal(t, int64(101), serr.OrphanAccountID)

	// No compensating delete or deactivate: the account stays in place.
	assert.Empty(t, f.accounts.deactivated)
	_, found := f.accounts.accounts[serr.OrphanAccountID]
	assert.True(t, found)
	assert.Equal(t, []string{entity.AuditActionStaffOrphan}, f.audit.actions)
}

func TestProvisionUnknownRole(t *testing.T) {
	f := newStaffFixture()

	_, err := f.usecase.Provision(context.Background(), entity.Role("Janitor"), validCreateRequest())
	assert.ErrorIs(t, err, usecase.ErrUnknownRole)
}

func seedVeterinarian(f *staffFixture) (int64, int64) {
	account, _ := f.accounts.Create(context.Background(), &entity.Account{
		LoginName: "vet_luis",
		Role:      entity.RoleVeterinarian,
		Status:    entity.AccountStatusActive,
	})
	profile, _ := f.staff.Create(context.Background(), entity.RoleVeterinarian, &entity.StaffProfile{
		AccountID:    account.ID,
		NationalID:   "11112222",
		GivenName:    "Luis",
		HireDate:     "2023-01-15",
		Availability: entity.AvailabilityBusy,
	})
	return profile.ID, account.ID
}

func validUpdateRequest() *dto.UpdateStaffRequest {
	return &dto.UpdateStaffRequest{
		NationalID:      "99990000",
		GivenName:       "Luis",
		PaternalSurname: "Torres",
		Phone:           "912345678",
		Email:           "luis@vetclinic.pe",
		Gender:          "M",
		Shift:           entity.ShiftNight,
		LicenseCode:     "CVP-2002",
		BirthDate:       "1988-11-20",
		SpecialtyID:     2,
	}
}

func TestUpdateLoginNameChangedSecretEmpty(t *testing.T) {
	f := newStaffFixture()
	profileID, accountID := seedVeterinarian(f)

	req := validUpdateRequest()
	req.LoginName = "vet_luisito"

	result, err := f.usecase.Update(context.Background(), entity.RoleVeterinarian, profileID, req)
	require.NoError(t, err)

	require.Len(t, f.accounts.updateCalls, 1)
	assert.Equal(t, loginNameCall{id: accountID, loginName: "vet_luisito"}, f.accounts.updateCalls[0])
	assert.Empty(t, f.accounts.resetCalls)
	assert.Equal(t, []string{"Profile updated", "Login name updated"}, result.Messages)
	assert.Equal(t, "vet_luisito", result.Staff.LoginName)
}

func TestUpdateLoginNameUnchangedSecretProvided(t *testing.T) {
	f := newStaffFixture()
	profileID, accountID := seedVeterinarian(f)

	req := validUpdateRequest()
	req.LoginName = "vet_luis" // same as current
	req.Secret = "newsecret"

	result, err := f.usecase.Update(context.Background(), entity.RoleVeterinarian, profileID, req)
	require.NoError(t, err)

	assert.Empty(t, f.accounts.updateCalls)
	require.Len(t, f.accounts.resetCalls, 1)
	assert.Equal(t, secretCall{id: accountID, secret: "newsecret"}, f.accounts.resetCalls[0])
	assert.Equal(t, []string{"Profile updated", "Secret reset"}, result.Messages)
}

func TestUpdatePreservesImmutableFields(t *testing.T) {
	f := newStaffFixture()
	profileID, _ := seedVeterinarian(f)

	req := validUpdateRequest() // carries a different national_id

	_, err := f.usecase.Update(context.Background(), entity.RoleVeterinarian, profileID, req)
	require.NoError(t, err)

	require.Len(t, f.staff.updated, 1)
	sent := f.staff.updated[0]
	assert.Equal(t, "11112222", sent.NationalID)
	assert.Equal(t, "2023-01-15", sent.HireDate)
	assert.Equal(t, entity.AvailabilityBusy, sent.Availability)
	// The vet type is re-derived from the newly selected specialty.
	assert.Equal(t, entity.VetKindSpecialist, sent.VetKind)
}

func TestUpdateProfileStepFailureAborts(t *testing.T) {
	f := newStaffFixture()
	profileID, _ := seedVeterinarian(f)
	f.staff.updateErr = fmt.Errorf("clinic API down")

	req := validUpdateRequest()
	req.LoginName = "vet_luisito"
	req.Secret = "newsecret"

	_, err := f.usecase.Update(context.Background(), entity.RoleVeterinarian, profileID, req)

	var serr *usecase.StepError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, usecase.StepProfile, serr.Step)

	// A failed profile step stops the flow before any account sub-step.
	assert.Empty(t, f.accounts.updateCalls)
	assert.Empty(t, f.accounts.resetCalls)
}

func TestUpdateAccountSubStepFailureIsReported(t *testing.T) {
	f := newStaffFixture()
	profileID, _ := seedVeterinarian(f)
	f.accounts.updateErr = fmt.Errorf("login name already taken")

	req := validUpdateRequest()
	req.LoginName = "vet_luisito"
	req.Secret = "newsecret"

	result, err := f.usecase.Update(context.Background(), entity.RoleVeterinarian, profileID, req)
	require.NoError(t, err)

	// The failed login-name sub-step does not abort the secret reset.
	require.Len(t, f.accounts.resetCalls, 1)
	require.Len(t, result.Messages, 3)
	assert.Equal(t, "Profile updated", result.Messages[0])
	assert.Contains(t, result.Messages[1], "Login name not updated")
	assert.Equal(t, "Secret reset", result.Messages[2])
}

func TestUpdateStaffNotFound(t *testing.T) {
	f := newStaffFixture()

	_, err := f.usecase.Update(context.Background(), entity.RoleVeterinarian, 9999, validUpdateRequest())
	assert.ErrorIs(t, err, usecase.ErrStaffNotFound)
}

func TestRemoveVeterinarianDeactivates(t *testing.T) {
	f := newStaffFixture()
	profileID, accountID := seedVeterinarian(f)

	err := f.usecase.Remove(context.Background(), entity.RoleVeterinarian, profileID)
	require.NoError(t, err)

	assert.Equal(t, []int64{accountID}, f.accounts.deactivated)
	assert.Empty(t, f.staff.deleted)
	// The profile row survives; only the account status changed.
	_, found := f.staff.profiles[profileID]
	assert.True(t, found)
	assert.Equal(t, []string{entity.AuditActionStaffDeactivate}, f.audit.actions)
}

func TestRemoveAdministratorHardDeletes(t *testing.T) {
	f := newStaffFixture()
	account, _ := f.accounts.Create(context.Background(), &entity.Account{
		LoginName: "admin_rosa",
		Role:      entity.RoleAdministrator,
		Status:    entity.AccountStatusActive,
	})
	profile, _ := f.staff.Create(context.Background(), entity.RoleAdministrator, &entity.StaffProfile{
		AccountID:  account.ID,
		NationalID: "33334444",
		GivenName:  "Rosa",
	})

	err := f.usecase.Remove(context.Background(), entity.RoleAdministrator, profile.ID)
	require.NoError(t, err)

	assert.Equal(t, []int64{profile.ID}, f.staff.deleted)
	assert.Empty(t, f.accounts.deactivated)
	assert.Equal(t, []string{entity.AuditActionStaffDelete}, f.audit.actions)
}

func TestListEnrichesAndFilters(t *testing.T) {
	f := newStaffFixture()

	active, _ := f.accounts.Create(context.Background(), &entity.Account{
		LoginName: "vet_carla", Role: entity.RoleVeterinarian, Status: entity.AccountStatusActive,
	})
	inactive, _ := f.accounts.Create(context.Background(), &entity.Account{
		LoginName: "vet_mario", Role: entity.RoleVeterinarian, Status: entity.AccountStatusInactive,
	})

	f.staff.listResult = &gateway.ListResult{
		Items: []entity.StaffProfile{
			{ID: 1, AccountID: active.ID, GivenName: "Carla", NationalID: "10000001"},
			{ID: 2, AccountID: inactive.ID, GivenName: "Mario", NationalID: "10000002"},
			{ID: 3, AccountID: 777, GivenName: "Sofia", NationalID: "10000003"}, // no such account
		},
		Total:      3,
		TotalPages: 1,
	}

	page, err := f.usecase.List(context.Background(), entity.RoleVeterinarian, usecase.StaffListQuery{})
	require.NoError(t, err)

	// Inactive dropped; the failed lookup degrades to N/A but keeps the row.
	require.Len(t, page.Items, 2)
	assert.Equal(t, "vet_carla", page.Items[0].LoginName)
	assert.Equal(t, entity.StatusUnknown, page.Items[1].LoginName)
	assert.Equal(t, entity.StatusUnknown, page.Items[1].AccountStatus)

	// Server totals are passed through even though rows were dropped.
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 1, page.TotalPages)

	// Defaults applied to the server query.
	require.Len(t, f.staff.listQueries, 1)
	assert.Equal(t, gateway.ListQuery{Page: 1, PerPage: 10}, f.staff.listQueries[0])
}

func TestListSearchNarrowsClientSide(t *testing.T) {
	f := newStaffFixture()

	account, _ := f.accounts.Create(context.Background(), &entity.Account{
		LoginName: "vet_carla", Role: entity.RoleVeterinarian, Status: entity.AccountStatusActive,
	})
	f.staff.listResult = &gateway.ListResult{
		Items: []entity.StaffProfile{
			{ID: 1, AccountID: account.ID, GivenName: "Carla", PaternalSurname: "Mendoza", NationalID: "10000001"},
			{ID: 2, AccountID: account.ID, GivenName: "Mario", PaternalSurname: "Quispe", NationalID: "10000002"},
		},
		Total:      2,
		TotalPages: 1,
	}

	page, err := f.usecase.List(context.Background(), entity.RoleVeterinarian, usecase.StaffListQuery{
		Search: "mendo",
		Shift:  entity.ShiftMorning,
	})
	require.NoError(t, err)

	require.Len(t, page.Items, 1)
	assert.Equal(t, "Carla", page.Items[0].GivenName)

	// The search term never reaches the server; shift does.
	require.Len(t, f.staff.listQueries, 1)
	assert.Equal(t, entity.ShiftMorning, f.staff.listQueries[0].Shift)
	assert.Equal(t, int64(2), page.Total)
}

func TestGetReturnsEnrichedStaff(t *testing.T) {
	f := newStaffFixture()
	profileID, _ := seedVeterinarian(f)

	staff, err := f.usecase.Get(context.Background(), entity.RoleVeterinarian, profileID)
	require.NoError(t, err)

	assert.Equal(t, "vet_luis", staff.LoginName)
	assert.Equal(t, entity.AccountStatusActive, staff.AccountStatus)
}

func TestGetNotFound(t *testing.T) {
	f := newStaffFixture()

	_, err := f.usecase.Get(context.Background(), entity.RoleVeterinarian, 42)
	assert.ErrorIs(t, err, usecase.ErrStaffNotFound)
}
