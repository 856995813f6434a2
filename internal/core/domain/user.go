package domain

// UserRole is stored per user. It is reserved for future authorization logic
// and does not currently differentiate permissions anywhere.
type UserRole string

const (
	RoleSuperuser       UserRole = "superuser"
	RoleExchangeAdmin   UserRole = "exchange_admin"
	RoleExchangeManager UserRole = "exchange_manager"
)

// IsValid reports whether the role is one of the known values.
func (r UserRole) IsValid() bool {
	return r == RoleSuperuser || r == RoleExchangeAdmin || r == RoleExchangeManager
}

// User represents a staff identity. Every service operation requires an
// existing, active user as its actor.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	Username     string   `json:"username"`
	Name         string   `json:"name"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	IsActive     bool     `json:"isActive"`
	AuditFields
}
