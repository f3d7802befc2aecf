package entities

// UserRole determines what a user manages
type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleNGO        UserRole = "ong"
	RoleTechnician UserRole = "technicien"
	RoleCommunity  UserRole = "communaute"
)

// User is an account managed from the administration screen
type User struct {
	ID           string   `json:"id" yaml:"id"`
	Email        string   `json:"email" yaml:"email"`
	FullName     string   `json:"full_name" yaml:"full_name"`
	Role         UserRole `json:"role" yaml:"role"`
	Organization string   `json:"organization" yaml:"organization"`
	Region       string   `json:"region" yaml:"region"`
	IsActive     bool     `json:"is_active" yaml:"is_active"`
}

// GetID returns the identifier of the user
func (u User) GetID() string { return u.ID }
