package main

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/mark3labs/attachr/internal/logger"
	"github.com/mark3labs/attachr/internal/tui/theme"
	"github.com/spf13/cobra"
)

const (
	logoText1 = "▄▀█ ▀█▀ ▀█▀ ▄▀█ █▀▀ █ █ █▀█"
	logoText2 = "█▀█  █   █  █▀█ █▄▄ █▀█ █▀▄"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "attachr",
	Short: "Attach products from the global catalog to your seller catalog",
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewCatppuccinMocha()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	rootCmd.Long = renderLogo() + `

attachr browses the shared product catalog of your marketplace backend, lets
you pick variants, set your own SKU, prices per region and stock per location,
and attaches them to your seller catalog in one request.

Attach attempts are journaled and your product list is cached locally in an
embedded NATS JetStream store.`

	rootCmd.PersistentFlags().StringVar(&globalFlags.backendURL, "backend-url", "", "Backend base URL")
	rootCmd.PersistentFlags().StringVar(&globalFlags.proxyURL, "proxy-url", "", "Route requests through this CORS proxy instead")
	rootCmd.PersistentFlags().StringVar(&globalFlags.dataDir, "data-dir", "", "Data directory for the local store")
	rootCmd.PersistentFlags().StringVar(&globalFlags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.logFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(attachCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(proxyCmd)
	rootCmd.AddCommand(setupCmd)
}
