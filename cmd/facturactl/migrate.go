package main

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/facturapp-api/internal/infrastructure/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica las migraciones pendientes del esquema",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer e.close()

		version, err := postgres.Migrate(e.pool)
		if err != nil {
			return err
		}
		log := e.log.WithComponent("migrate")
		log.Info().Uint("version", version).Msg("esquema actualizado")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
