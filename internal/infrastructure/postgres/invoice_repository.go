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

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, name, issuer_name, issuer_address, client_name, client_address,
	invoice_date, due_date, vat_active, vat_rate, status, paid_amount, received_amount,
	change_given, payment_method, user_id, shop_id, created_at, updated_at`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var status int16
	var shopID *string
	err := row.Scan(
		&inv.ID, &inv.Name, &inv.IssuerName, &inv.IssuerAddress, &inv.ClientName, &inv.ClientAddress,
		&inv.InvoiceDate, &inv.DueDate, &inv.VATActive, &inv.VATRate, &status, &inv.PaidAmount,
		&inv.ReceivedAmount, &inv.ChangeGiven, &inv.PaymentMethod, &inv.UserID, &shopID,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.Status = entity.InvoiceStatus(status)
	inv.ShopID = emptyIfNull(shopID)
	return &inv, nil
}

// Create persiste la cabecera (sin líneas). Un ID existente devuelve ErrDuplicate.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.Name, inv.IssuerName, inv.IssuerAddress, inv.ClientName, inv.ClientAddress,
		inv.InvoiceDate, inv.DueDate, inv.VATActive, inv.VATRate, int16(inv.Status), inv.PaidAmount,
		inv.ReceivedAmount, inv.ChangeGiven, inv.PaymentMethod, inv.UserID, nullIfEmpty(inv.ShopID),
		inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// Exists indica si el ID ya está ocupado.
func (r *InvoiceRepo) Exists(ctx context.Context, id string) (bool, error) {
	var ok bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM invoices WHERE id = $1)`, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("check invoice id: %w", err)
	}
	return ok, nil
}

func (r *InvoiceRepo) getWithLines(ctx context.Context, query, id string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if err := r.attachLines(ctx, []*entity.Invoice{inv}); err != nil {
		return nil, err
	}
	return inv, nil
}

// GetByID devuelve la cabecera con sus líneas en orden de inserción.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.getWithLines(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
}

// LockForUpdate igual que GetByID pero bloquea la cabecera hasta el fin de la transacción.
func (r *InvoiceRepo) LockForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.getWithLines(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 FOR UPDATE`, id)
}

// UpdateHeader actualiza los campos descriptivos y el estado.
func (r *InvoiceRepo) UpdateHeader(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET name = $2, issuer_name = $3, issuer_address = $4, client_name = $5, client_address = $6,
		    invoice_date = $7, due_date = $8, vat_active = $9, vat_rate = $10, status = $11, updated_at = $12
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		inv.ID, inv.Name, inv.IssuerName, inv.IssuerAddress, inv.ClientName, inv.ClientAddress,
		inv.InvoiceDate, inv.DueDate, inv.VATActive, inv.VATRate, int16(inv.Status), inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdatePaymentSnapshot guarda estado, acumulado y datos del último pago.
func (r *InvoiceRepo) UpdatePaymentSnapshot(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET status = $2, paid_amount = $3, received_amount = $4, change_given = $5,
		    payment_method = $6, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		inv.ID, int16(inv.Status), inv.PaidAmount, inv.ReceivedAmount, inv.ChangeGiven, inv.PaymentMethod)
	if err != nil {
		return fmt.Errorf("update invoice payment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la factura; líneas y pagos caen en cascada.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InvoiceRepo) list(ctx context.Context, where string, arg any) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE `+where+` ORDER BY created_at DESC, id`, arg)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	if err := r.attachLines(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListByUser facturas creadas por el usuario, más recientes primero.
func (r *InvoiceRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Invoice, error) {
	return r.list(ctx, "user_id = $1", userID)
}

// ListByShop facturas de la tienda, más recientes primero.
func (r *InvoiceRepo) ListByShop(ctx context.Context, shopID string) ([]*entity.Invoice, error) {
	return r.list(ctx, "shop_id = $1", shopID)
}

// ListByStatus facturas en el estado indicado (usado por la conciliación de vencidas).
func (r *InvoiceRepo) ListByStatus(ctx context.Context, status entity.InvoiceStatus) ([]*entity.Invoice, error) {
	return r.list(ctx, "status = $1", int16(status))
}

// MarkUnpaid pasa a Unpaid las facturas que sigan en Pending y devuelve las que cambiaron.
func (r *InvoiceRepo) MarkUnpaid(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.q.Query(ctx,
		`UPDATE invoices SET status = $1, updated_at = now() WHERE status = $2 AND id = ANY($3) RETURNING id`,
		int16(entity.InvoiceStatusUnpaid), int16(entity.InvoiceStatusPending), ids)
	if err != nil {
		return nil, fmt.Errorf("mark invoices unpaid: %w", err)
	}
	updated, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("mark invoices unpaid: %w", err)
	}
	return updated, nil
}

// attachLines carga las líneas de todas las facturas con una sola consulta.
func (r *InvoiceRepo) attachLines(ctx context.Context, invoices []*entity.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Invoice, len(invoices))
	ids := make([]string, 0, len(invoices))
	for _, inv := range invoices {
		byID[inv.ID] = inv
		ids = append(ids, inv.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, invoice_id, description, quantity, unit_price, product_id
		FROM invoice_lines WHERE invoice_id = ANY($1) ORDER BY seq`, ids)
	if err != nil {
		return fmt.Errorf("list invoice lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.InvoiceLine
		var productID *string
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.Description, &l.Quantity, &l.UnitPrice, &productID); err != nil {
			return fmt.Errorf("scan invoice line: %w", err)
		}
		l.ProductID = emptyIfNull(productID)
		inv := byID[l.InvoiceID]
		inv.Lines = append(inv.Lines, l)
	}
	return rows.Err()
}

// DeleteLines borra en lote las líneas indicadas de la factura.
func (r *InvoiceRepo) DeleteLines(ctx context.Context, invoiceID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := r.q.Exec(ctx,
		`DELETE FROM invoice_lines WHERE invoice_id = $1 AND id = ANY($2)`, invoiceID, ids); err != nil {
		return fmt.Errorf("delete invoice lines: %w", err)
	}
	return nil
}

// UpdateLine actualiza una línea existente de la factura.
func (r *InvoiceRepo) UpdateLine(ctx context.Context, l *entity.InvoiceLine) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE invoice_lines SET description = $3, quantity = $4, unit_price = $5, product_id = $6
		WHERE id = $1 AND invoice_id = $2`,
		l.ID, l.InvoiceID, l.Description, l.Quantity, l.UnitPrice, nullIfEmpty(l.ProductID))
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewValidationError("lines", "producto inexistente")
		}
		return fmt.Errorf("update invoice line: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateLine agrega una línea; un product_id inexistente es error de validación.
func (r *InvoiceRepo) CreateLine(ctx context.Context, l *entity.InvoiceLine) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO invoice_lines (id, invoice_id, description, quantity, unit_price, product_id)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		l.ID, l.InvoiceID, l.Description, l.Quantity, l.UnitPrice, nullIfEmpty(l.ProductID))
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewValidationError("lines", "producto inexistente")
		}
		return fmt.Errorf("insert invoice line: %w", err)
	}
	return nil
}

// CreatePayment registra un pago (solo inserción).
func (r *InvoiceRepo) CreatePayment(ctx context.Context, p *entity.InvoicePayment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO invoice_payments (id, invoice_id, amount, method, received_amount, change_given, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.InvoiceID, p.Amount, p.Method, p.ReceivedAmount, p.ChangeGiven, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert invoice payment: %w", err)
	}
	return nil
}

// ListPayments pagos de la factura en orden de registro.
func (r *InvoiceRepo) ListPayments(ctx context.Context, invoiceID string) ([]*entity.InvoicePayment, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, invoice_id, amount, method, received_amount, change_given, created_at
		FROM invoice_payments WHERE invoice_id = $1 ORDER BY seq`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice payments: %w", err)
	}
	defer rows.Close()

	var list []*entity.InvoicePayment
	for rows.Next() {
		var p entity.InvoicePayment
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.Amount, &p.Method, &p.ReceivedAmount, &p.ChangeGiven, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
