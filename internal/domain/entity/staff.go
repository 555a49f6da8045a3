package entity

import "strings"

// Work shifts used by veterinarian and receptionist profiles.
const (
	ShiftMorning   = "Morning"
	ShiftAfternoon = "Afternoon"
	ShiftNight     = "Night"
)

// Veterinarian availability values.
const (
	AvailabilityFree = "Libre"
	AvailabilityBusy = "Ocupado"
)

// Veterinarian types derived from the selected specialty. The wire values are
// the ones the clinic API stores; they are never set directly by a user.
const (
	VetKindGeneral    = "Medico General"
	VetKindSpecialist = "Especializado"
)

// DefaultSpecialtyID is assigned when a veterinarian is created without an
// explicit specialty selection.
const DefaultSpecialtyID = 1

// StaffProfile is the role-specific personal/professional record owned by
// exactly one Account. The three role variants share the same core; the
// vet-only fields stay zero for receptionists and administrators, and Shift
// stays zero for administrators.
type StaffProfile struct {
	ID              int64  `json:"profile_id"`
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

	// Veterinarian-only professional data.
	LicenseCode  string `json:"license_code,omitempty"`
	BirthDate    string `json:"birth_date,omitempty"`
	SpecialtyID  int64  `json:"specialty_id,omitempty"`
	VetKind      string `json:"tipo_veterinario,omitempty"`
	Availability string `json:"disposicion,omitempty"`
}

// EnrichedStaff is a StaffProfile joined with display fields fetched live from
// its linked Account. The join happens at read time; login name and account
// status are never stored on the profile.
type EnrichedStaff struct {
	StaffProfile
	LoginName     string `json:"login_name"`
	AccountStatus string `json:"account_status"`
}

// StaffPage is one page of profiles plus the totals reported by the clinic
// API. The totals are not adjusted for client-side narrowing or for rows
// dropped by the status filter.
type StaffPage struct {
	Items      []EnrichedStaff
	Total      int64
	TotalPages int
}

// DeriveVetKind classifies a veterinarian from the specialty description. A
// missing specialty or one whose description mentions "general" (any case)
// means a general practitioner; everything else is a specialist. Re-applied on
// every create and update.
func DeriveVetKind(specialty *Specialty) string {
	if specialty == nil {
		return VetKindGeneral
	}
	if strings.Contains(strings.ToLower(specialty.Description), "general") {
		return VetKindGeneral
	}
	return VetKindSpecialist
}
