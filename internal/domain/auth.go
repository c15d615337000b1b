package domain

// User is the authenticated operator.
type User struct {
	Username    string   `json:"username"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	IsActive    bool     `json:"is_active"`
}

// AuthToken is the /auth/login response.
type AuthToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// Permissions granted by the backend.
const (
	PermissionTickets     = "tickets"
	PermissionConciliator = "conciliator"
	PermissionConfig      = "config"
)

// Can reports whether the user holds a permission.
func (u User) Can(permission string) bool {
	for _, p := range u.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}
