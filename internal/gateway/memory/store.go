// Package memory backs the demo/offline mode with a seeded in-memory copy of
// the clinic API. It mirrors the remote contract closely enough that the
// provisioning protocol runs unchanged against it, including the possibility
// of orphaned accounts.
package memory

import (
	"sync"
	"time"

	"vetadmin/internal/domain/entity"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// Store holds the demo dataset. All gateways created from one Store share it.
type Store struct {
	mu sync.RWMutex

	accounts map[int64]*entity.Account
	secrets  map[int64][]byte
	profiles map[entity.Role]map[int64]*entity.StaffProfile

	specialties []entity.Specialty
	services    []entity.ClinicService

	nextAccountID int64
	nextProfileID int64
}

func NewStore() *Store {
	s := &Store{
		accounts:      make(map[int64]*entity.Account),
		secrets:       make(map[int64][]byte),
		profiles:      make(map[entity.Role]map[int64]*entity.StaffProfile),
		nextAccountID: 1,
		nextProfileID: 1,
	}
	for _, role := range []entity.Role{entity.RoleVeterinarian, entity.RoleReceptionist, entity.RoleAdministrator} {
		s.profiles[role] = make(map[int64]*entity.StaffProfile)
	}
	s.seed()
	return s
}

func (s *Store) addAccount(loginName, secret string, role entity.Role) *entity.Account {
	hash, _ := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	account := &entity.Account{
		ID:        s.nextAccountID,
		LoginName: loginName,
		Role:      role,
		Status:    entity.AccountStatusActive,
	}
	s.accounts[account.ID] = account
	s.secrets[account.ID] = hash
	s.nextAccountID++
	return account
}

func (s *Store) addProfile(role entity.Role, p entity.StaffProfile) *entity.StaffProfile {
	p.ID = s.nextProfileID
	s.nextProfileID++
	s.profiles[role][p.ID] = &p
	return s.profiles[role][p.ID]
}

func (s *Store) seed() {
	today := time.Now().Format("2006-01-02")

	s.specialties = []entity.Specialty{
		{ID: 1, Description: "Medicina General"},
		{ID: 2, Description: "Cirugia"},
		{ID: 3, Description: "Dermatologia"},
	}
	s.services = []entity.ClinicService{
		{ID: 1, Description: "Consulta general", Price: dec("35.00"), Duration: 30},
		{ID: 2, Description: "Vacunacion", Price: dec("25.50"), Duration: 15},
		{ID: 3, Description: "Cirugia menor", Price: dec("180.00"), Duration: 90},
	}

	vet := s.addAccount("vet_maria", "demo123", entity.RoleVeterinarian)
	s.addProfile(entity.RoleVeterinarian, entity.StaffProfile{
		AccountID:       vet.ID,
		NationalID:      "45781236",
		GivenName:       "Maria",
		PaternalSurname: "Torres",
		MaternalSurname: "Quispe",
		Phone:           "987612345",
		Email:           "maria.torres@clinic.test",
		Gender:          "F",
		Shift:           entity.ShiftMorning,
		HireDate:        today,
		LicenseCode:     "CMVP-2231",
		BirthDate:       "1988-04-12",
		SpecialtyID:     1,
		VetKind:         entity.VetKindGeneral,
		Availability:    entity.AvailabilityFree,
	})

	recep := s.addAccount("recep_lucia", "demo123", entity.RoleReceptionist)
	s.addProfile(entity.RoleReceptionist, entity.StaffProfile{
		AccountID:       recep.ID,
		NationalID:      "41236578",
		GivenName:       "Lucia",
		PaternalSurname: "Ramos",
		Phone:           "912345678",
		Email:           "lucia.ramos@clinic.test",
		Gender:          "F",
		Shift:           entity.ShiftAfternoon,
		HireDate:        today,
	})

	admin := s.addAccount("admin_jorge", "demo123", entity.RoleAdministrator)
	s.addProfile(entity.RoleAdministrator, entity.StaffProfile{
		AccountID:       admin.ID,
		NationalID:      "40125879",
		GivenName:       "Jorge",
		PaternalSurname: "Salazar",
		Phone:           "998765432",
		Email:           "jorge.salazar@clinic.test",
		Gender:          "M",
		HireDate:        today,
	})
}
