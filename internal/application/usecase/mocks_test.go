package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/facturapp-api/internal/domain/entity"
	"github.com/jhoicas/facturapp-api/internal/domain/repository"
)

// --- UserRepository ---

type mockUserRepo struct{ mock.Mock }

var _ repository.UserRepository = (*mockUserRepo)(nil)

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

// --- ShopRepository ---

type mockShopRepo struct{ mock.Mock }

var _ repository.ShopRepository = (*mockShopRepo)(nil)

func (m *mockShopRepo) Create(ctx context.Context, s *entity.Shop) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockShopRepo) GetByID(ctx context.Context, id string) (*entity.Shop, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*entity.Shop)
	return s, args.Error(1)
}

func (m *mockShopRepo) Update(ctx context.Context, s *entity.Shop) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockShopRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockShopRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Shop, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]*entity.Shop)
	return list, args.Error(1)
}

func (m *mockShopRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	args := m.Called(ctx, ownerID)
	return args.Int(0), args.Error(1)
}

func (m *mockShopRepo) AddMember(ctx context.Context, shopID, userID string) error {
	return m.Called(ctx, shopID, userID).Error(0)
}

func (m *mockShopRepo) ListMembers(ctx context.Context, shopID string) ([]*entity.User, error) {
	args := m.Called(ctx, shopID)
	list, _ := args.Get(0).([]*entity.User)
	return list, args.Error(1)
}

func (m *mockShopRepo) IsMemberOrOwner(ctx context.Context, shopID, userID string) (bool, error) {
	args := m.Called(ctx, shopID, userID)
	return args.Bool(0), args.Error(1)
}

// --- CategoryRepository ---

type mockCategoryRepo struct{ mock.Mock }

var _ repository.CategoryRepository = (*mockCategoryRepo)(nil)

func (m *mockCategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*entity.Category)
	return c, args.Error(1)
}

func (m *mockCategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCategoryRepo) ListByShop(ctx context.Context, shopID string) ([]*entity.Category, error) {
	args := m.Called(ctx, shopID)
	list, _ := args.Get(0).([]*entity.Category)
	return list, args.Error(1)
}

// --- ProductRepository ---

type mockProductRepo struct{ mock.Mock }

var _ repository.ProductRepository = (*mockProductRepo)(nil)

func (m *mockProductRepo) Create(ctx context.Context, p *entity.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*entity.Product)
	return p, args.Error(1)
}

func (m *mockProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*entity.Product)
	return p, args.Error(1)
}

func (m *mockProductRepo) GetByBarcode(ctx context.Context, shopID, barcode string) (*entity.Product, error) {
	args := m.Called(ctx, shopID, barcode)
	p, _ := args.Get(0).(*entity.Product)
	return p, args.Error(1)
}

func (m *mockProductRepo) Update(ctx context.Context, p *entity.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProductRepo) UpdateQuantity(ctx context.Context, id string, qty int64) error {
	return m.Called(ctx, id, qty).Error(0)
}

func (m *mockProductRepo) ListByShop(ctx context.Context, shopID string, limit, offset int) ([]*entity.Product, error) {
	args := m.Called(ctx, shopID, limit, offset)
	list, _ := args.Get(0).([]*entity.Product)
	return list, args.Error(1)
}

func (m *mockProductRepo) CountReferences(ctx context.Context, id string) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *mockProductRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
