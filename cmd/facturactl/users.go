package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/facturapp-api/internal/application/usecase"
	"github.com/jhoicas/facturapp-api/internal/infrastructure/postgres"
	"github.com/jhoicas/facturapp-api/pkg/jwt"
)

var ensureUserCmd = &cobra.Command{
	Use:     "ensure-user",
	Short:   "Crea el usuario local si no existe (idempotente)",
	Example: `  facturactl ensure-user --email awa@boutique.sn --name "Awa Diop"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		name, _ := cmd.Flags().GetString("name")

		e, err := setup(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer e.close()

		out, err := usecase.NewUserUseCase(postgres.NewUserRepository(e.pool)).EnsureUser(cmd.Context(), email, name)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", out.ID, out.Email, out.Name)
		return nil
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Emite un JWT firmado con el secreto local (solo desarrollo)",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		name, _ := cmd.Flags().GetString("name")

		e, err := setup(cmd.Context(), false)
		if err != nil {
			return err
		}
		if e.cfg.App.Env == "production" {
			return fmt.Errorf("token: no disponible en production")
		}
		tok, err := jwt.Generate(e.cfg.JWT.Secret, email, name, e.cfg.JWT.Issuer, e.cfg.JWT.Expiration)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{ensureUserCmd, tokenCmd} {
		c.Flags().String("email", "", "email del usuario")
		c.Flags().String("name", "", "nombre a mostrar")
		_ = c.MarkFlagRequired("email")
		rootCmd.AddCommand(c)
	}
}
