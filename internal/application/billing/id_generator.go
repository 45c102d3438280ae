package billing

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// invoiceIDBytes 3 bytes → 6 caracteres hexadecimales (2^24 valores).
const invoiceIDBytes = 3

// IDChecker consulta si un identificador de factura ya existe.
type IDChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// IDGenerator genera identificadores cortos de factura verificando colisiones.
// Reintenta sin límite: cada colisión se registra en log y en métricas, y el
// bucle solo se corta si el contexto se cancela.
type IDGenerator struct {
	checker IDChecker
	random  io.Reader
	log     zerolog.Logger
	metrics Metrics
}

// NewIDGenerator construye el generador. random nil usa crypto/rand.
func NewIDGenerator(checker IDChecker, random io.Reader, log zerolog.Logger, metrics Metrics) *IDGenerator {
	if random == nil {
		random = rand.Reader
	}
	return &IDGenerator{checker: checker, random: random, log: log, metrics: metricsOrNoop(metrics)}
}

// Generate devuelve un identificador que no existe en el almacén al momento de consultar.
func (g *IDGenerator) Generate(ctx context.Context) (string, error) {
	buf := make([]byte, invoiceIDBytes)
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if _, err := io.ReadFull(g.random, buf); err != nil {
			return "", fmt.Errorf("generar id de factura: %w", err)
		}
		id := hex.EncodeToString(buf)
		exists, err := g.checker.Exists(ctx, id)
		if err != nil {
			return "", fmt.Errorf("verificar id de factura: %w", err)
		}
		if !exists {
			return id, nil
		}
		g.Collision(id, attempt)
	}
}

// Collision registra una colisión (también la usa Create cuando el INSERT choca).
func (g *IDGenerator) Collision(id string, attempt int) {
	g.metrics.InvoiceIDCollision()
	g.log.Warn().Str("invoice_id", id).Int("attempt", attempt).Msg("colisión de id de factura, reintentando")
}
