package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/facturapp-api/internal/application/dto"
	"github.com/jhoicas/facturapp-api/internal/domain"
	"github.com/jhoicas/facturapp-api/internal/domain/entity"
	"github.com/jhoicas/facturapp-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// EnsureUser devuelve el usuario con ese email y lo crea si no existe.
// Llamarlo varias veces con el mismo email deja un único registro.
func (uc *UserUseCase) EnsureUser(ctx context.Context, email, name string) (*dto.UserResponse, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, domain.NewValidationError("email", "es requerido")
	}
	user, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return entityToUserResponse(user), nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name", "es requerido")
	}

	now := time.Now()
	user = &entity.User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		// Otra petición lo creó entre la lectura y el INSERT.
		if errors.Is(err, domain.ErrDuplicate) {
			existing, gerr := uc.repo.GetByEmail(ctx, email)
			if gerr != nil {
				return nil, gerr
			}
			if existing != nil {
				return entityToUserResponse(existing), nil
			}
		}
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// Me obtiene el usuario local del principal. ErrNotFound si aún no se llamó a EnsureUser.
func (uc *UserUseCase) Me(ctx context.Context, email string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return entityToUserResponse(user), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		MemberShopID: u.MemberShopID,
		CreatedAt:    u.CreatedAt,
	}
}
