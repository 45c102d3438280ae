package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/facturapp-api/internal/application/billing"
	"github.com/jhoicas/facturapp-api/internal/infrastructure/postgres"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile-overdue",
	Short: "Pasa a Unpaid las facturas Pending con vencimiento anterior a hoy",
	Long: `Recorre todas las facturas en estado Pending y marca como Unpaid las que
tienen fecha de vencimiento anterior a hoy. Es idempotente: una segunda
ejecución el mismo día no modifica nada.`,
	Example: `  facturactl reconcile-overdue`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer e.close()

		log := e.log.WithComponent("reconcile")
		uc := billing.NewOverdueUseCase(postgres.NewInvoiceRepository(e.pool), time.Now, log, nil)
		n, err := uc.ReconcileAll(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "facturas marcadas como impagas: %d\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
}
