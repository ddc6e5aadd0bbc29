package cli

import (
	"context"
	"errors"

	"mflix-catalog/internal/catalog/config"
	"mflix-catalog/internal/catalog/usecase"
	"mflix-catalog/internal/shared/logger"

	"github.com/spf13/cobra"
)

// Services is what the commands run against.
type Services struct {
	Catalog usecase.CatalogUsecaseInterface
	Config  *config.CatalogConfig
	Log     logger.Logger
	Close   func() error
}

// Bootstrap builds Services on first use. Set by main.
var Bootstrap func(ctx context.Context) (*Services, error)

var (
	services *Services
	// ownServices is true when services came from Bootstrap and must be closed.
	ownServices bool
)

var rootCmd = &cobra.Command{
	Use:   "mflix",
	Short: "Manage indexes and query the sample_mflix movies collection",
	Long: `mflix creates indexes on the movies collection and runs filtered,
sorted and projected queries against it.

With no subcommand it does nothing; "mflix run" creates the title index
and builds the drama cursor.`,
	SilenceUsage:      true,
	PersistentPreRunE: connect,
}

// needsCatalog is false for cobra's built-in help and completion commands.
func needsCatalog(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return false
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "completion" {
			return false
		}
	}
	return true
}

func connect(cmd *cobra.Command, _ []string) error {
	if services != nil || !needsCatalog(cmd) {
		return nil
	}
	if Bootstrap == nil {
		return errors.New("catalog services not configured")
	}

	s, err := Bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	services, ownServices = s, true
	return nil
}

// disconnect closes services obtained from Bootstrap.
func disconnect() error {
	if !ownServices || services == nil {
		return nil
	}
	s := services
	services, ownServices = nil, false
	if s.Close != nil {
		return s.Close()
	}
	return nil
}

func catalog() (usecase.CatalogUsecaseInterface, error) {
	if services == nil || services.Catalog == nil {
		return nil, errors.New("catalog service not configured")
	}
	return services.Catalog, nil
}

// Execute runs the root command and closes bootstrapped services even when the command fails.
func Execute(ctx context.Context) (err error) {
	defer func() {
		if cerr := disconnect(); err == nil {
			err = cerr
		}
	}()
	return rootCmd.ExecuteContext(ctx)
}
