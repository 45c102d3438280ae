package billing_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/jhoicas/facturapp-api/internal/domain"
	"github.com/jhoicas/facturapp-api/internal/domain/entity"
	"github.com/jhoicas/facturapp-api/internal/domain/repository"
)

// memStore almacén en memoria de facturas, líneas y pagos.
type memStore struct {
	mu       sync.Mutex
	invoices map[string]*entity.Invoice
	payments map[string][]*entity.InvoicePayment
	// writes cuenta escrituras por tipo (para verificar que no hay escrituras redundantes).
	writes map[string]int
	// failOn hace fallar la operación indicada (simula error de infraestructura).
	failOn string
}

func newMemStore() *memStore {
	return &memStore{
		invoices: map[string]*entity.Invoice{},
		payments: map[string][]*entity.InvoicePayment{},
		writes:   map[string]int{},
	}
}

func cloneInvoice(inv *entity.Invoice) *entity.Invoice {
	c := *inv
	c.Lines = append([]entity.InvoiceLine(nil), inv.Lines...)
	return &c
}

func (s *memStore) snapshot() (map[string]*entity.Invoice, map[string][]*entity.InvoicePayment) {
	invs := make(map[string]*entity.Invoice, len(s.invoices))
	for k, v := range s.invoices {
		invs[k] = cloneInvoice(v)
	}
	pays := make(map[string][]*entity.InvoicePayment, len(s.payments))
	for k, v := range s.payments {
		pays[k] = append([]*entity.InvoicePayment(nil), v...)
	}
	return invs, pays
}

var errInfra = errors.New("fallo de infraestructura simulado")

var _ repository.InvoiceRepository = (*memStore)(nil)

func (s *memStore) fail(op string) error {
	if s.failOn == op {
		return errInfra
	}
	return nil
}

func (s *memStore) Create(_ context.Context, inv *entity.Invoice) error {
	if _, ok := s.invoices[inv.ID]; ok {
		return domain.ErrDuplicate
	}
	s.invoices[inv.ID] = cloneInvoice(inv)
	s.writes["create"]++
	return nil
}

func (s *memStore) Exists(_ context.Context, id string) (bool, error) {
	_, ok := s.invoices[id]
	return ok, nil
}

func (s *memStore) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	inv, ok := s.invoices[id]
	if !ok {
		return nil, nil
	}
	return cloneInvoice(inv), nil
}

func (s *memStore) LockForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return s.GetByID(ctx, id)
}

func (s *memStore) UpdateHeader(_ context.Context, inv *entity.Invoice) error {
	cur, ok := s.invoices[inv.ID]
	if !ok {
		return domain.ErrNotFound
	}
	lines := cur.Lines
	paid, received, change, method := cur.PaidAmount, cur.ReceivedAmount, cur.ChangeGiven, cur.PaymentMethod
	c := cloneInvoice(inv)
	c.Lines = lines
	c.PaidAmount, c.ReceivedAmount, c.ChangeGiven, c.PaymentMethod = paid, received, change, method
	s.invoices[inv.ID] = c
	s.writes["header"]++
	return nil
}

func (s *memStore) UpdatePaymentSnapshot(_ context.Context, inv *entity.Invoice) error {
	if err := s.fail("snapshot"); err != nil {
		return err
	}
	cur := s.invoices[inv.ID]
	cur.Status = inv.Status
	cur.PaidAmount = inv.PaidAmount
	cur.ReceivedAmount = inv.ReceivedAmount
	cur.ChangeGiven = inv.ChangeGiven
	cur.PaymentMethod = inv.PaymentMethod
	return nil
}

func (s *memStore) Delete(_ context.Context, id string) error {
	delete(s.invoices, id)
	delete(s.payments, id)
	return nil
}

func (s *memStore) list(filter func(*entity.Invoice) bool) []*entity.Invoice {
	var out []*entity.Invoice
	for _, inv := range s.invoices {
		if filter(inv) {
			out = append(out, cloneInvoice(inv))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *memStore) ListByUser(_ context.Context, userID string) ([]*entity.Invoice, error) {
	return s.list(func(inv *entity.Invoice) bool { return inv.UserID == userID }), nil
}

func (s *memStore) ListByShop(_ context.Context, shopID string) ([]*entity.Invoice, error) {
	return s.list(func(inv *entity.Invoice) bool { return inv.ShopID == shopID }), nil
}

func (s *memStore) ListByStatus(_ context.Context, st entity.InvoiceStatus) ([]*entity.Invoice, error) {
	return s.list(func(inv *entity.Invoice) bool { return inv.Status == st }), nil
}

func (s *memStore) MarkUnpaid(_ context.Context, ids []string) ([]string, error) {
	var updated []string
	for _, id := range ids {
		if inv, ok := s.invoices[id]; ok && inv.Status == entity.InvoiceStatusPending {
			inv.Status = entity.InvoiceStatusUnpaid
			updated = append(updated, id)
		}
	}
	return updated, nil
}

func (s *memStore) DeleteLines(_ context.Context, invoiceID string, ids []string) error {
	drop := map[string]bool{}
	for _, id := range ids {
		drop[id] = true
	}
	inv := s.invoices[invoiceID]
	kept := inv.Lines[:0:0]
	for _, l := range inv.Lines {
		if !drop[l.ID] {
			kept = append(kept, l)
		}
	}
	inv.Lines = kept
	s.writes["delete_lines"]++
	return nil
}

func (s *memStore) UpdateLine(_ context.Context, line *entity.InvoiceLine) error {
	inv := s.invoices[line.InvoiceID]
	for i := range inv.Lines {
		if inv.Lines[i].ID == line.ID {
			inv.Lines[i] = *line
			s.writes["update_line"]++
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *memStore) CreateLine(_ context.Context, line *entity.InvoiceLine) error {
	if err := s.fail("create_line"); err != nil {
		return err
	}
	inv := s.invoices[line.InvoiceID]
	inv.Lines = append(inv.Lines, *line)
	s.writes["create_line"]++
	return nil
}

func (s *memStore) CreatePayment(_ context.Context, p *entity.InvoicePayment) error {
	c := *p
	s.payments[p.InvoiceID] = append(s.payments[p.InvoiceID], &c)
	return nil
}

func (s *memStore) ListPayments(_ context.Context, invoiceID string) ([]*entity.InvoicePayment, error) {
	return append([]*entity.InvoicePayment(nil), s.payments[invoiceID]...), nil
}

// memTx serializa las transacciones y restaura el estado si fn falla.
type memTx struct {
	store *memStore
}

func (t memTx) RunInvoice(_ context.Context, fn func(repository.InvoiceRepository) error) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	invs, pays := t.store.snapshot()
	if err := fn(t.store); err != nil {
		t.store.invoices, t.store.payments = invs, pays
		return err
	}
	return nil
}

// memShops tiendas con sus dueños y miembros.
type memShops struct {
	repository.ShopRepository
	shops   map[string]*entity.Shop
	members map[string]map[string]bool
}

func newMemShops() *memShops {
	return &memShops{shops: map[string]*entity.Shop{}, members: map[string]map[string]bool{}}
}

func (m *memShops) add(shop *entity.Shop, members ...string) {
	m.shops[shop.ID] = shop
	m.members[shop.ID] = map[string]bool{}
	for _, u := range members {
		m.members[shop.ID][u] = true
	}
}

func (m *memShops) GetByID(_ context.Context, id string) (*entity.Shop, error) {
	return m.shops[id], nil
}

func (m *memShops) IsMemberOrOwner(_ context.Context, shopID, userID string) (bool, error) {
	shop, ok := m.shops[shopID]
	if !ok {
		return false, nil
	}
	return shop.OwnerID == userID || m.members[shopID][userID], nil
}

// countingMetrics cuenta las señales emitidas.
type countingMetrics struct {
	mu         sync.Mutex
	payments   map[string]int
	overdue    int
	collisions int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{payments: map[string]int{}}
}

func (c *countingMetrics) PaymentRecorded(method string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payments[method]++
}

func (c *countingMetrics) OverdueMarked(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.overdue += n
}

func (c *countingMetrics) InvoiceIDCollision() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.collisions++
}
