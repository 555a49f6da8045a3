package entity

import "strings"

// Role is the closed set of staff roles managed by the admin panel.
type Role string

const (
	RoleVeterinarian  Role = "Veterinarian"
	RoleReceptionist  Role = "Receptionist"
	RoleAdministrator Role = "Administrator"
)

// Account status values as reported by the clinic API.
const (
	AccountStatusActive   = "Active"
	AccountStatusInactive = "Inactive"
)

// StatusUnknown is the placeholder used when an account lookup fails during
// listing enrichment. It passes the active-or-unknown listing filter.
const StatusUnknown = "N/A"

// Account is the credential record held by the clinic API, independent of the
// role-specific profile that references it. The secret is write-only: the
// clinic API never returns it and it is reset only through the dedicated
// reset endpoint.
type Account struct {
	ID        int64  `json:"account_id"`
	LoginName string `json:"login_name"`
	Secret    string `json:"secret,omitempty"`
	Role      Role   `json:"role"`
	Status    string `json:"status"`
}

var usernamePrefixes = map[Role]string{
	RoleVeterinarian:  "vet_",
	RoleReceptionist:  "recep_",
	RoleAdministrator: "admin_",
}

// DeriveUsername builds the generated-only login name for a new staff member:
// the role tag followed by the lowercased first whitespace-delimited token of
// the given name. A blank name yields "".
func DeriveUsername(role Role, givenName string) string {
	givenName = strings.TrimSpace(givenName)
	if givenName == "" {
		return ""
	}
	first := strings.Fields(givenName)[0]
	return usernamePrefixes[role] + strings.ToLower(first)
}
