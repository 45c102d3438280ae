package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/facturapp-api/internal/application/dto"
	"github.com/jhoicas/facturapp-api/internal/domain"
	"github.com/jhoicas/facturapp-api/internal/domain/entity"
	"github.com/jhoicas/facturapp-api/internal/domain/repository"
)

// ShopUseCase tiendas, su dueño y sus miembros.
type ShopUseCase struct {
	repo     repository.ShopRepository
	userRepo repository.UserRepository
	log      zerolog.Logger
}

// NewShopUseCase construye el caso de uso.
func NewShopUseCase(repo repository.ShopRepository, userRepo repository.UserRepository, log zerolog.Logger) *ShopUseCase {
	return &ShopUseCase{repo: repo, userRepo: userRepo, log: log}
}

// Create crea una tienda cuyo dueño es userID. El usuario pasa a rol OWNER.
func (uc *ShopUseCase) Create(ctx context.Context, userID string, in dto.ShopRequest) (*dto.ShopResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	owner, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now()
	shop := &entity.Shop{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		Address:   strings.TrimSpace(in.Address),
		Phone:     in.Phone,
		Ninea:     strings.TrimSpace(in.Ninea),
		OwnerID:   owner.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, shop); err != nil {
		return nil, err
	}
	if owner.Role != entity.RoleOwner {
		owner.Role = entity.RoleOwner
		owner.UpdatedAt = now
		if err := uc.userRepo.Update(ctx, owner); err != nil {
			return nil, err
		}
	}
	uc.log.Info().Str("shop_id", shop.ID).Str("owner_id", owner.ID).Msg("tienda creada")
	return toShopResponse(shop, userID), nil
}

// Get obtiene una tienda. El acceso (dueño o miembro) lo valida CanAccess antes.
func (uc *ShopUseCase) Get(ctx context.Context, userID, shopID string) (*dto.ShopResponse, error) {
	shop, err := uc.load(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return toShopResponse(shop, userID), nil
}

// ListForUser tiendas de las que el usuario es dueño o miembro.
func (uc *ShopUseCase) ListForUser(ctx context.Context, userID string) (*dto.ShopListResponse, error) {
	list, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ShopResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toShopResponse(s, userID))
	}
	return &dto.ShopListResponse{Items: items}, nil
}

// Update reemplaza los datos de la tienda. Solo el dueño.
func (uc *ShopUseCase) Update(ctx context.Context, userID, shopID string, in dto.ShopRequest) (*dto.ShopResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	shop, err := uc.ownedBy(ctx, shopID, userID)
	if err != nil {
		return nil, err
	}
	shop.Name = strings.TrimSpace(in.Name)
	shop.Address = strings.TrimSpace(in.Address)
	shop.Phone = in.Phone
	shop.Ninea = strings.TrimSpace(in.Ninea)
	shop.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, shop); err != nil {
		return nil, err
	}
	return toShopResponse(shop, userID), nil
}

// Delete elimina la tienda y, en cascada, su catálogo, movimientos y facturas. Solo el dueño.
func (uc *ShopUseCase) Delete(ctx context.Context, userID, shopID string) error {
	if _, err := uc.ownedBy(ctx, shopID, userID); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, shopID); err != nil {
		return err
	}
	uc.log.Info().Str("shop_id", shopID).Msg("tienda eliminada")
	return nil
}

// AddMember agrega como miembro al usuario con ese email. Solo el dueño.
// El usuario debe existir (haber iniciado sesión al menos una vez).
func (uc *ShopUseCase) AddMember(ctx context.Context, userID, shopID string, in dto.AddMemberRequest) (*dto.UserResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	shop, err := uc.ownedBy(ctx, shopID, userID)
	if err != nil {
		return nil, err
	}
	member, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, domain.ErrNotFound
	}
	if member.ID == shop.OwnerID {
		return nil, domain.NewValidationError("email", "el dueño ya tiene acceso a la tienda")
	}
	if err := uc.repo.AddMember(ctx, shop.ID, member.ID); err != nil {
		return nil, err
	}
	member.MemberShopID = shop.ID
	if member.Role == "" {
		member.Role = entity.RoleMember
		member.UpdatedAt = time.Now()
		if err := uc.userRepo.Update(ctx, member); err != nil {
			return nil, err
		}
	}
	uc.log.Info().Str("shop_id", shop.ID).Str("member_id", member.ID).Msg("miembro agregado")
	return entityToUserResponse(member), nil
}

// ListMembers miembros de la tienda (sin el dueño).
func (uc *ShopUseCase) ListMembers(ctx context.Context, shopID string) (*dto.MemberListResponse, error) {
	list, err := uc.repo.ListMembers(ctx, shopID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *entityToUserResponse(u))
	}
	return &dto.MemberListResponse{Items: items}, nil
}

// CanAccess ErrNotFound si la tienda no existe, ErrForbidden si el usuario no es dueño ni miembro.
func (uc *ShopUseCase) CanAccess(ctx context.Context, shopID, userID string) error {
	if _, err := uc.load(ctx, shopID); err != nil {
		return err
	}
	ok, err := uc.repo.IsMemberOrOwner(ctx, shopID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrForbidden
	}
	return nil
}

func (uc *ShopUseCase) load(ctx context.Context, shopID string) (*entity.Shop, error) {
	shop, err := uc.repo.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, domain.ErrNotFound
	}
	return shop, nil
}

func (uc *ShopUseCase) ownedBy(ctx context.Context, shopID, userID string) (*entity.Shop, error) {
	shop, err := uc.load(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop.OwnerID != userID {
		return nil, domain.ErrForbidden
	}
	return shop, nil
}

func toShopResponse(s *entity.Shop, userID string) *dto.ShopResponse {
	return &dto.ShopResponse{
		ID:        s.ID,
		Name:      s.Name,
		Address:   s.Address,
		Phone:     s.Phone,
		Ninea:     s.Ninea,
		OwnerID:   s.OwnerID,
		IsOwner:   s.OwnerID == userID,
		CreatedAt: s.CreatedAt,
	}
}
