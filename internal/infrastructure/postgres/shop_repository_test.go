package postgres

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturapp-api/internal/domain"
)

// execRecorder Querier que registra las sentencias de Exec.
type execRecorder struct {
	sqls []string
	tag  pgconn.CommandTag
	err  error
}

func (r *execRecorder) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	r.sqls = append(r.sqls, sql)
	return r.tag, r.err
}

func (r *execRecorder) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic("no usado")
}

func (r *execRecorder) QueryRow(context.Context, string, ...any) pgx.Row {
	panic("no usado")
}

func TestShopDelete_UnaSentenciaQueConservaFacturas(t *testing.T) {
	rec := &execRecorder{tag: pgconn.NewCommandTag("DELETE 1")}
	require.NoError(t, NewShopRepository(rec).Delete(context.Background(), "shop-1"))

	require.Len(t, rec.sqls, 1)
	sql := rec.sqls[0]
	assert.NotContains(t, sql, "DELETE FROM invoices")
	assert.NotContains(t, sql, "NOT IN", "se desvinculan todas las líneas que apuntan a productos de la tienda")
	assert.Contains(t, sql, "UPDATE invoice_lines SET product_id = NULL")
}

func TestShopDelete_Errores(t *testing.T) {
	rec := &execRecorder{tag: pgconn.NewCommandTag("DELETE 0")}
	assert.ErrorIs(t, NewShopRepository(rec).Delete(context.Background(), "nada"), domain.ErrNotFound)

	rec = &execRecorder{err: &pgconn.PgError{Code: "23503"}}
	assert.ErrorIs(t, NewShopRepository(rec).Delete(context.Background(), "shop-1"), domain.ErrConflict)
}

func TestMigraciones_FacturasSobrevivenALaTienda(t *testing.T) {
	up, err := fs.ReadFile(embeddedMigrations, "migrations/000002_keep_invoices_on_shop_delete.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(up), "REFERENCES shops (id) ON DELETE SET NULL")

	entries, err := fs.ReadDir(embeddedMigrations, "migrations")
	require.NoError(t, err)
	var ups, downs int
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			ups++
		case strings.HasSuffix(e.Name(), ".down.sql"):
			downs++
		}
	}
	assert.Equal(t, ups, downs, "cada migración tiene su reversa")
}
