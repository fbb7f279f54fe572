package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "imc-donations/docs" // Swagger docs
)

// @title IMC Donations API
// @version 1.0
// @description Doações do Instituto Maria Claro: checkout Mercado Pago, conciliação por webhook, cadastro de doadores e relatórios.

// @contact.name API Support
// @contact.email contato@institutomariaclaro.org.br

// @BasePath /api
// @schemes https http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "imc-donations",
		Short:   "IMC donations backend",
		Version: Version,
		// Running the binary with no subcommand starts the API
		RunE: runServe,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(reconcileCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
