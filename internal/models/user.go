package models

// User is the storage representation of a staff identity.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"` // superuser | exchange_admin | exchange_manager
	IsActive     bool   `json:"isActive"`
	AuditFields
}
