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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, shop_id, category_id, name, description, price, quantity, barcode, image_url, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.ShopID, &p.CategoryID, &p.Name, &p.Description, &p.Price,
		&p.Quantity, &p.Barcode, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto. Un código de barras repetido en la tienda es ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.ShopID, p.CategoryID, p.Name, p.Description, p.Price,
		p.Quantity, p.Barcode, p.ImageURL, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, "get product",
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetForUpdate igual que GetByID pero bloquea la fila hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, "lock product",
		`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

// GetByBarcode busca por código de barras dentro de la tienda.
func (r *ProductRepo) GetByBarcode(ctx context.Context, shopID, barcode string) (*entity.Product, error) {
	return r.getOne(ctx, "get product by barcode",
		`SELECT `+productColumns+` FROM products WHERE shop_id = $1 AND barcode = $2`, shopID, barcode)
}

// Update actualiza los datos del producto, incluida la cantidad (edición directa).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET category_id = $2, name = $3, description = $4, price = $5,
			quantity = $6, barcode = $7, image_url = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.CategoryID, p.Name, p.Description, p.Price, p.Quantity, p.Barcode, p.ImageURL, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateQuantity fija la existencia (usado por el libro de stock).
func (r *ProductRepo) UpdateQuantity(ctx context.Context, id string, quantity int64) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET quantity = $2, updated_at = now() WHERE id = $1`, id, quantity)
	if err != nil {
		return fmt.Errorf("update product quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByShop lista productos de la tienda por nombre con paginación.
func (r *ProductRepo) ListByShop(ctx context.Context, shopID string, limit, offset int) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE shop_id = $1 ORDER BY name, id LIMIT $2 OFFSET $3`,
		shopID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// CountReferences cuenta líneas de factura y movimientos que apuntan al producto.
func (r *ProductRepo) CountReferences(ctx context.Context, id string) (int, error) {
	query := `
		SELECT (SELECT COUNT(*) FROM invoice_lines WHERE product_id = $1)
		     + (SELECT COUNT(*) FROM stock_movements WHERE product_id = $1)`
	var n int
	if err := r.q.QueryRow(ctx, query, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("count product references: %w", err)
	}
	return n, nil
}

// Delete elimina el producto. Si alguna referencia aparece entre el conteo y el borrado la FK lo impide.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProductInUse
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
