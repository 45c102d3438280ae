package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/facturapp-api/internal/domain"
	"github.com/jhoicas/facturapp-api/internal/domain/entity"
	"github.com/jhoicas/facturapp-api/internal/domain/repository"
)

var _ repository.ShopRepository = (*ShopRepo)(nil)

// ShopRepo implementación del puerto ShopRepository sobre PostgreSQL.
// La membresía se guarda en users.member_shop_id.
type ShopRepo struct {
	q Querier
}

// NewShopRepository construye el adaptador de persistencia para tiendas.
func NewShopRepository(q Querier) *ShopRepo {
	return &ShopRepo{q: q}
}

const shopColumns = `s.id, s.name, s.address, s.phone, s.ninea, s.owner_id, s.created_at, s.updated_at`

func scanShop(row pgx.Row) (*entity.Shop, error) {
	var s entity.Shop
	if err := row.Scan(&s.ID, &s.Name, &s.Address, &s.Phone, &s.Ninea, &s.OwnerID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste una tienda.
func (r *ShopRepo) Create(ctx context.Context, s *entity.Shop) error {
	query := `
		INSERT INTO shops (id, name, address, phone, ninea, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, s.ID, s.Name, s.Address, s.Phone, s.Ninea, s.OwnerID, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert shop: %w", err)
	}
	return nil
}

// GetByID obtiene una tienda por ID.
func (r *ShopRepo) GetByID(ctx context.Context, id string) (*entity.Shop, error) {
	s, err := scanShop(r.q.QueryRow(ctx, `SELECT `+shopColumns+` FROM shops s WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shop: %w", err)
	}
	return s, nil
}

// Update actualiza los datos descriptivos (el dueño no cambia).
func (r *ShopRepo) Update(ctx context.Context, s *entity.Shop) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE shops SET name = $2, address = $3, phone = $4, ninea = $5, updated_at = $6 WHERE id = $1`,
		s.ID, s.Name, s.Address, s.Phone, s.Ninea, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update shop: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la tienda en una sola sentencia. Antes de la cascada sobre products se borran
// sus movimientos y se desvinculan todas las líneas que apuntan a sus productos.
// Las facturas de la tienda se conservan con shop_id en NULL (ON DELETE SET NULL).
func (r *ShopRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, shopDeleteQuery, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete shop: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const shopDeleteQuery = `
		WITH movements AS (
			DELETE FROM stock_movements WHERE shop_id = $1
		), detached AS (
			UPDATE invoice_lines SET product_id = NULL
			WHERE product_id IN (SELECT id FROM products WHERE shop_id = $1)
		)
		DELETE FROM shops WHERE id = $1`

// ListByUser tiendas de las que el usuario es dueño o miembro, más recientes primero.
func (r *ShopRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Shop, error) {
	query := `
		SELECT ` + shopColumns + `
		FROM shops s
		WHERE s.owner_id = $1
		   OR s.id = (SELECT member_shop_id FROM users WHERE id = $1)
		ORDER BY s.created_at DESC`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	defer rows.Close()

	var list []*entity.Shop
	for rows.Next() {
		s, err := scanShop(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shop: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// CountByOwner cantidad de tiendas del dueño.
func (r *ShopRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM shops WHERE owner_id = $1`, ownerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count shops: %w", err)
	}
	return n, nil
}

// AddMember asocia el usuario a la tienda (reemplaza una membresía anterior).
func (r *ShopRepo) AddMember(ctx context.Context, shopID, userID string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE users SET member_shop_id = $2, updated_at = now() WHERE id = $1`, userID, shopID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("add shop member: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListMembers usuarios miembros de la tienda, por nombre.
func (r *ShopRepo) ListMembers(ctx context.Context, shopID string) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE member_shop_id = $1 ORDER BY name, email`, shopID)
	if err != nil {
		return nil, fmt.Errorf("list shop members: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// IsMemberOrOwner true si el usuario es dueño o miembro de la tienda.
func (r *ShopRepo) IsMemberOrOwner(ctx context.Context, shopID, userID string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM shops WHERE id = $1 AND owner_id = $2)
		    OR EXISTS (SELECT 1 FROM users WHERE id = $2 AND member_shop_id = $1)`
	var ok bool
	if err := r.q.QueryRow(ctx, query, shopID, userID).Scan(&ok); err != nil {
		return false, fmt.Errorf("check shop access: %w", err)
	}
	return ok, nil
}
