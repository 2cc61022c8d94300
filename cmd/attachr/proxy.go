package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/attachr/internal/proxy"
	"github.com/spf13/cobra"
)

var proxyFlags struct {
	listen string
}

var proxyCmd = &cobra.Command{
	Use:   "proxy",
	Short: "Run the CORS request proxy",
	Long: `Run a CORS proxy in front of the backend.

Requests to /api/proxy?path=/vendor/...&<query> are forwarded to
backend_url + path with the remaining query parameters. Browser clients
that cannot reach the backend directly point proxy_url at this server.`,
	RunE: runProxy,
}

func init() {
	proxyCmd.Flags().StringVarP(&proxyFlags.listen, "listen", "l", "", "Listen address (default from proxy_listen)")
}

func runProxy(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.BackendURL == "" {
		return fmt.Errorf("backend_url must be set to run the proxy")
	}
	addr := cfg.ProxyListen
	if proxyFlags.listen != "" {
		addr = proxyFlags.listen
	}

	srv := proxy.New(proxy.Options{
		BackendURL:     cfg.BackendURL,
		PublishableKey: cfg.PublishableKey,
		Timeout:        cfg.RequestTimeout,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(addr)
	}()
	fmt.Fprintf(cmd.OutOrStdout(), "Proxy listening on %s → %s\n", addr, cfg.BackendURL)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	fmt.Fprintln(cmd.OutOrStdout(), "\nShutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
