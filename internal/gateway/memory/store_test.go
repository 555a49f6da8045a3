package memory_test

import (
	"context"
	"testing"

	"vetadmin/internal/domain/entity"
	"vetadmin/internal/domain/gateway"
	"vetadmin/internal/gateway/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeededLogin(t *testing.T) {
	store := memory.NewStore()
	accounts := memory.NewAccountGateway(store)

	account, err := accounts.Login(context.Background(), "vet_maria", "demo123")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVeterinarian, account.Role)
	assert.Equal(t, entity.AccountStatusActive, account.Status)

	_, err = accounts.Login(context.Background(), "vet_maria", "wrong")
	assert.ErrorIs(t, err, memory.ErrInvalidCredentials)
}

func TestAccountCreateRejectsDuplicateLoginName(t *testing.T) {
	store := memory.NewStore()
	accounts := memory.NewAccountGateway(store)

	_, err := accounts.Create(context.Background(), &entity.Account{
		LoginName: "vet_maria",
		Secret:    "secret123",
		Role:      entity.RoleVeterinarian,
		Status:    entity.AccountStatusActive,
	})
	assert.ErrorIs(t, err, memory.ErrLoginNameTaken)
}

func TestAccountDeactivate(t *testing.T) {
	store := memory.NewStore()
	accounts := memory.NewAccountGateway(store)

	seeded, err := accounts.Login(context.Background(), "recep_lucia", "demo123")
	require.NoError(t, err)

	require.NoError(t, accounts.Deactivate(context.Background(), seeded.ID))

	account, err := accounts.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AccountStatusInactive, account.Status)
}

func TestAccountNotFoundWrapsSentinel(t *testing.T) {
	store := memory.NewStore()
	accounts := memory.NewAccountGateway(store)

	_, err := accounts.FindByID(context.Background(), 9999)
	assert.ErrorIs(t, err, gateway.ErrNotFound)
}

func TestStaffCreateRequiresAccount(t *testing.T) {
	store := memory.NewStore()
	staff := memory.NewStaffGateway(store)

	_, err := staff.Create(context.Background(), entity.RoleVeterinarian, &entity.StaffProfile{
		AccountID:  9999,
		NationalID: "12345678",
	})
	assert.ErrorIs(t, err, gateway.ErrNotFound)
}

func TestStaffUpdateKeepsImmutableFields(t *testing.T) {
	store := memory.NewStore()
	staff := memory.NewStaffGateway(store)

	current, err := staff.FindByID(context.Background(), entity.RoleVeterinarian, 1)
	require.NoError(t, err)

	changed := *current
	changed.NationalID = "00000000"
	changed.AccountID = 555
	changed.GivenName = "Mariana"

	updated, err := staff.Update(context.Background(), entity.RoleVeterinarian, current.ID, &changed)
	require.NoError(t, err)

	assert.Equal(t, "Mariana", updated.GivenName)
	assert.Equal(t, current.NationalID, updated.NationalID)
	assert.Equal(t, current.AccountID, updated.AccountID)
	assert.Equal(t, current.HireDate, updated.HireDate)
}

func TestStaffListPaginatesAndFiltersByShift(t *testing.T) {
	store := memory.NewStore()
	staff := memory.NewStaffGateway(store)
	accounts := memory.NewAccountGateway(store)

	for _, name := range []string{"vet_ana", "vet_jose", "vet_rosa"} {
		account, err := accounts.Create(context.Background(), &entity.Account{
			LoginName: name,
			Secret:    "secret123",
			Role:      entity.RoleVeterinarian,
			Status:    entity.AccountStatusActive,
		})
		require.NoError(t, err)
		_, err = staff.Create(context.Background(), entity.RoleVeterinarian, &entity.StaffProfile{
			AccountID: account.ID,
			Shift:     entity.ShiftNight,
		})
		require.NoError(t, err)
	}

	page, err := staff.List(context.Background(), entity.RoleVeterinarian, gateway.ListQuery{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(4), page.Total) // seeded vet + three created
	assert.Equal(t, 2, page.TotalPages)

	night, err := staff.List(context.Background(), entity.RoleVeterinarian, gateway.ListQuery{Page: 1, PerPage: 10, Shift: entity.ShiftNight})
	require.NoError(t, err)
	assert.Len(t, night.Items, 3)
}

func TestAdministratorDeleteCascadesToAccount(t *testing.T) {
	store := memory.NewStore()
	staff := memory.NewStaffGateway(store)
	accounts := memory.NewAccountGateway(store)

	admin, err := staff.FindByID(context.Background(), entity.RoleAdministrator, 3)
	require.NoError(t, err)

	require.NoError(t, staff.Delete(context.Background(), admin.ID))

	_, err = staff.FindByID(context.Background(), entity.RoleAdministrator, admin.ID)
	assert.ErrorIs(t, err, gateway.ErrNotFound)
	_, err = accounts.FindByID(context.Background(), admin.AccountID)
	assert.ErrorIs(t, err, gateway.ErrNotFound)
}
