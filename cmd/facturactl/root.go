package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/facturapp-api/internal/infrastructure/postgres"
	"github.com/jhoicas/facturapp-api/pkg/config"
	"github.com/jhoicas/facturapp-api/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "facturactl",
	Short: "Tareas de operación de FacturApp",
	Long: `facturactl agrupa las tareas de operación que no pasan por la API HTTP:
migraciones del esquema, conciliación de facturas vencidas, alta de usuarios
y emisión de tokens para entornos de desarrollo.

Lee la misma configuración que la API (variables de entorno o config.env).`,
	SilenceUsage: true,
}

// env recursos compartidos por los subcomandos.
type env struct {
	cfg  *config.Config
	log  *logger.Logger
	pool *pgxpool.Pool
}

// setup carga configuración y logger; si withDB abre también el pool.
func setup(ctx context.Context, withDB bool) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	e := &env{cfg: cfg, log: log}
	if withDB {
		pool, err := postgres.NewPool(ctx, cfg.DB, log.WithComponent("postgres"))
		if err != nil {
			return nil, err
		}
		e.pool = pool
	}
	return e, nil
}

func (e *env) close() {
	if e.pool != nil {
		e.pool.Close()
	}
}

// Execute ejecuta el comando raíz y termina con código 1 si falla.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
