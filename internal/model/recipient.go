// internal/model/recipient.go
package model

// Role is the directory-assigned role of a recipient.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleStaff      Role = "staff"
	RoleTechnician Role = "technician"
)

// ManagerClass reports whether the role belongs to the manager tier
// targeted by scheduled campaigns.
func (r Role) ManagerClass() bool {
	return r == RoleAdmin || r == RoleManager
}

// Recipient is a read-only snapshot row from the external directory.
// The engine never mutates or persists recipient state.
type Recipient struct {
	ID                 string `db:"id" json:"id"`
	FullName           string `db:"full_name" json:"fullName"`
	PhoneNumber        string `db:"phone" json:"phoneNumber"`
	Role               Role   `db:"role" json:"role"`
	CompanyID          *int   `db:"company_id" json:"-"`
	CompanyName        string `db:"company_name" json:"companyName"`
	UseCompanyBranding bool   `db:"use_branding" json:"useCompanyBranding"`
}

func (r Recipient) IsManager() bool {
	return r.Role.ManagerClass()
}
