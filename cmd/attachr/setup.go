package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/attachr/internal/config"
	"github.com/spf13/cobra"
)

var setupFlags struct {
	project        bool
	force          bool
	backendURL     string
	publishableKey string
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create attachr configuration file",
	Long: `Create an attachr configuration file with sensible defaults.

By default, creates a global config at ~/.config/attachr/attachr.yml.
Use --project to create a project-local config in the current directory.`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVarP(&setupFlags.project, "project", "p", false, "Create config in current directory instead of global location")
	setupCmd.Flags().BoolVarP(&setupFlags.force, "force", "f", false, "Overwrite existing config file")
	setupCmd.Flags().StringVar(&setupFlags.backendURL, "backend", "", "Backend base URL to store")
	setupCmd.Flags().StringVar(&setupFlags.publishableKey, "publishable-key", "", "Publishable API key to store")
}

func runSetup(cmd *cobra.Command, args []string) error {
	targetPath := config.GlobalPath()
	if setupFlags.project {
		targetPath = config.ProjectPath()
	}

	if !setupFlags.force && fileExists(targetPath) {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
	}

	cfg := config.Defaults()
	cfg.BackendURL = setupFlags.backendURL
	cfg.PublishableKey = setupFlags.publishableKey

	var err error
	if setupFlags.project {
		err = config.WriteProject(cfg)
	} else {
		err = config.WriteGlobal(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config written to: %s\n\n", targetPath)
	if cfg.BackendURL == "" {
		fmt.Fprintln(out, "Set backend_url (or proxy_url) in the file, then run 'attachr attach'.")
	} else {
		fmt.Fprintln(out, "Run 'attachr attach' to get started.")
	}
	return nil
}

// fileExists checks if a file exists (helper for setup command).
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
