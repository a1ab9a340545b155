package domain

// UserRole is the application-wide role supplied by the identity provider.
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleEngineer UserRole = "engineer"
	RoleApprover UserRole = "approver"
	RoleViewer   UserRole = "viewer"
)

// IsValid reports whether r is one of the known roles.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEngineer, RoleApprover, RoleViewer:
		return true
	}
	return false
}

// Actor is the authenticated caller of a core operation.
type Actor struct {
	UserID string
	Role   UserRole
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// UserProfile is a read-only row of the user directory used to enrich responses.
type UserProfile struct {
	UserID string   `json:"userID"`
	Name   *string  `json:"name"`
	Email  *string  `json:"email"`
	Role   UserRole `json:"role"`
}
