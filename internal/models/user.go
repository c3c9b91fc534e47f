package models

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string `json:"id" mapstructure:"id"`
	Username     string `json:"username" mapstructure:"username"`
	PasswordHash string `json:"-" mapstructure:"password_hash"`
	Role         string `json:"role" mapstructure:"role"` // "user" or "admin"
}
