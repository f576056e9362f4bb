package users

import (
	"time"

	"eventhorizon/internal/ports/auth"
)

// User es una cuenta registrada. Email se guarda en minúsculas y es único.
type User struct {
	ID    string
	Name  string
	Email string

	// Hash bcrypt; el password plano no se persiste nunca.
	PasswordHash []byte

	Role auth.Role

	CreatedAt time.Time
}
