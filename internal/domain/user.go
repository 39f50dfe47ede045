package domain

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt,omitempty"`
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// Session is what gets persisted under the "user" storage key: the user
// fields plus the bearer token, flat.
type Session struct {
	User
	Token string `json:"token"`
}

// Valid reports whether a rehydrated session is usable.
func (s Session) Valid() bool {
	return s.ID != "" && s.Name != "" && s.Email != ""
}
