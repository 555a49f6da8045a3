package dto

import "strings"

// Request DTOs

// CreateStaffRequest is the submission for onboarding a new staff member. The
// login name is never part of it: creation always derives it from the given
// name. Vet-only and shift fields are validated per role by the usecase gate
// on top of the struct tags below.
type CreateStaffRequest struct {
	NationalID      string `json:"national_id" validate:"required,len=8,numeric"`
	GivenName       string `json:"given_name" validate:"required"`
	PaternalSurname string `json:"paternal_surname" validate:"required"`
	MaternalSurname string `json:"maternal_surname" validate:"omitempty"`
	Phone           string `json:"phone" validate:"required,len=9,numeric"`
	Email           string `json:"email" validate:"required,email"`
	Gender          string `json:"gender" validate:"required,oneof=M F"`
	Shift           string `json:"shift" validate:"omitempty,oneof=Morning Afternoon Night"`
	LicenseCode     string `json:"license_code" validate:"omitempty"`
	BirthDate       string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	SpecialtyID     int64  `json:"specialty_id" validate:"omitempty"`
	Secret          string `json:"secret" validate:"omitempty,min=3"`
}

// UpdateStaffRequest is the submission for editing a staff member. The
// national ID is accepted but immutable: it never reaches the update payload.
// An empty secret means "leave unchanged"; an empty login name means "not
// edited".
type UpdateStaffRequest struct {
	NationalID      string `json:"national_id" validate:"omitempty,len=8,numeric"`
	GivenName       string `json:"given_name" validate:"required"`
	PaternalSurname string `json:"paternal_surname" validate:"required"`
	MaternalSurname string `json:"maternal_surname" validate:"omitempty"`
	Phone           string `json:"phone" validate:"required,len=9,numeric"`
	Email           string `json:"email" validate:"required,email"`
	Gender          string `json:"gender" validate:"required,oneof=M F"`
	Shift           string `json:"shift" validate:"omitempty,oneof=Morning Afternoon Night"`
	LicenseCode     string `json:"license_code" validate:"omitempty"`
	BirthDate       string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	SpecialtyID     int64  `json:"specialty_id" validate:"omitempty"`
	LoginName       string `json:"login_name" validate:"omitempty"`
	Secret          string `json:"secret" validate:"omitempty,min=3"`
}

// Normalize trims every string field before validation and transmission.
func (r *CreateStaffRequest) Normalize() {
	r.NationalID = strings.TrimSpace(r.NationalID)
	r.GivenName = strings.TrimSpace(r.GivenName)
	r.PaternalSurname = strings.TrimSpace(r.PaternalSurname)
	r.MaternalSurname = strings.TrimSpace(r.MaternalSurname)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Email = strings.TrimSpace(r.Email)
	r.LicenseCode = strings.TrimSpace(r.LicenseCode)
	r.Secret = strings.TrimSpace(r.Secret)
}

// Normalize trims every string field before validation and transmission.
func (r *UpdateStaffRequest) Normalize() {
	r.NationalID = strings.TrimSpace(r.NationalID)
	r.GivenName = strings.TrimSpace(r.GivenName)
	r.PaternalSurname = strings.TrimSpace(r.PaternalSurname)
	r.MaternalSurname = strings.TrimSpace(r.MaternalSurname)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Email = strings.TrimSpace(r.Email)
	r.LicenseCode = strings.TrimSpace(r.LicenseCode)
	r.LoginName = strings.TrimSpace(r.LoginName)
	r.Secret = strings.TrimSpace(r.Secret)
}

// Response DTOs

type StaffResponse struct {
	ID              int64  `json:"id"`
	AccountID       int64  `json:"account_id"`
	NationalID      string `json:"national_id"`
	GivenName       string `json:"given_name"`
	PaternalSurname string `json:"paternal_surname"`
	MaternalSurname string `json:"maternal_surname,omitempty"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Gender          string `json:"gender"`
	Shift           string `json:"shift,omitempty"`
	HireDate        string `json:"hire_date"`
	LicenseCode     string `json:"license_code,omitempty"`
	BirthDate       string `json:"birth_date,omitempty"`
	SpecialtyID     int64  `json:"specialty_id,omitempty"`
	VetKind         string `json:"vet_kind,omitempty"`
	Availability    string `json:"availability,omitempty"`
	LoginName       string `json:"login_name"`
	AccountStatus   string `json:"account_status"`
}

// UpdateStaffResponse reports partial success: each attempted sub-step of the
// update contributes one message, failures included.
type UpdateStaffResponse struct {
	Staff    *StaffResponse `json:"staff"`
	Messages []string       `json:"messages"`
}

type StaffListResponse struct {
	Staff []StaffResponse `json:"staff"`
}
