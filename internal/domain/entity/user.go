package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleTesorero = "tesorero"
	RoleAuxiliar = "auxiliar"
)

// User representa un usuario del área de tesorería.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, tesorero, auxiliar
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
