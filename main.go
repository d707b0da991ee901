package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/appLSI/decentralized-rental-app-sub000/config"
	"github.com/appLSI/decentralized-rental-app-sub000/utils"
)

const serviceName = "rental-web-bff"

// rootCmd es el binario del BFF: servidor HTTP y herramientas de consola
var rootCmd = &cobra.Command{
	Use:   "rental-web",
	Short: "Backend-for-frontend of the decentralized rental marketplace",
	Long: `Backend-for-frontend of the rental marketplace.

Available subcommands:
  serve       - Start the HTTP API (sessions, search, host wizard, admin)
  search      - Run a property search against the listing service
  transitions - Print the property status lifecycle`,
	SilenceUsage: true,
}

// loadConfig carga la config e inicializa el logger; lo usan todos los subcomandos
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	utils.InitLogger(serviceName, cfg.Env, cfg.LogLevel)
	return cfg, nil
}

func main() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(transitionsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
