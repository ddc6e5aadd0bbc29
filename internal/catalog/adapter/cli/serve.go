package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	cataloghttp "mflix-catalog/internal/catalog/adapter/http"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	uc, err := catalog()
	if err != nil {
		return err
	}
	if services.Config == nil || services.Log == nil {
		return errors.New("server configuration not available")
	}

	cfg := services.Config.Server
	log := services.Log.WithComponent("http")
	app := cataloghttp.NewApp(cfg, cataloghttp.NewCatalogHTTPHandler(uc, log), log)

	addr := cfg.Addr()
	log.Infof("Starting HTTP server on %s", addr)

	serverShutdown := make(chan error, 1)
	go func() {
		serverShutdown <- app.Listen(addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverShutdown:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Infof("Received shutdown signal: %v", sig)
	case <-cmd.Context().Done():
		log.Info("Context cancelled, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
		return err
	}

	log.Info("HTTP server stopped")
	return nil
}
