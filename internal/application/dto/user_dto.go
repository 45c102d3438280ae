package dto

import "time"

// EnsureUserRequest cuerpo opcional de POST /api/users/ensure.
// Si Name viene vacío se usa el nombre del token.
type EnsureUserRequest struct {
	Name string `json:"name" validate:"omitempty,max=120"`
}

// UserResponse salida de un usuario.
type UserResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	MemberShopID string    `json:"member_shop_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
