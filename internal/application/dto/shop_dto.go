package dto

import "time"

// ShopRequest cuerpo para crear o actualizar una tienda (la actualización reemplaza los campos).
type ShopRequest struct {
	Name    string `json:"name" validate:"required,max=120"`
	Address string `json:"address" validate:"required,max=255"`
	Phone   string `json:"phone" validate:"required,len=10,number"`
	Ninea   string `json:"ninea" validate:"required,max=50"`
}

// AddMemberRequest cuerpo de POST /api/shops/:shopId/members.
type AddMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ShopResponse tienda en respuestas.
type ShopResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Ninea     string    `json:"ninea"`
	OwnerID   string    `json:"owner_id"`
	IsOwner   bool      `json:"is_owner"`
	CreatedAt time.Time `json:"created_at"`
}

// ShopListResponse tiendas del usuario.
type ShopListResponse struct {
	Items []ShopResponse `json:"items"`
}

// MemberListResponse miembros de una tienda.
type MemberListResponse struct {
	Items []UserResponse `json:"items"`
}
