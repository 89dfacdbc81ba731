package entity

import "time"

// Roles válidos para el personal del hotel.
const (
	RoleAdmin        = "admin"
	RoleManager      = "manager"
	RoleReceptionist = "receptionist"
	RoleStaff        = "staff"
)

// ValidRole indica si r es un rol conocido.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleReceptionist, RoleStaff:
		return true
	}
	return false
}

// User representa un usuario del personal (staff). No tiene relación de
// propiedad con reservas ni habitaciones más allá de auditoría.
type User struct {
	ID           string
	Name         string
	Email        string // único
	Phone        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, manager, receptionist, staff
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
