package entity

import "time"

// Roles válidos para User.
const (
	RoleOwner  = "OWNER"
	RoleMember = "MEMBER"
)

// User representa la identidad local de un usuario autenticado por el proveedor externo.
// El email es la clave; el registro se crea en el primer acceso y nunca se elimina.
type User struct {
	ID           string
	Email        string
	Name         string
	Role         string // OWNER, MEMBER
	MemberShopID string // vacío si no es miembro de ninguna tienda
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
