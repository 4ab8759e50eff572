package entity

// Role represents an authorization role.
// The model is flat: no role implies another.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleClient
}

func (r Role) String() string { return string(r) }
