package auth

// Role define los roles soportados por la plataforma.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Claims representa la información extraída del token.
type Claims struct {
	UserID string
	Email  string
	Role   Role
}

// IsAdmin es un helper chico para no repetir la comparación en cada handler.
func (c Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
