package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/SscSPs/parkmate_app/internal/core/domain"
	portssvc "github.com/SscSPs/parkmate_app/internal/core/ports/services"
	"github.com/SscSPs/parkmate_app/internal/core/services"
	"github.com/SscSPs/parkmate_app/internal/platform/config"
	"github.com/SscSPs/parkmate_app/internal/repositories/store"
	"github.com/spf13/cobra"
)

// cliUserID is recorded as the operator for destructive actions run from a terminal.
const cliUserID = "cli"

var (
	storeDriver string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "parkmate",
	Short: "Gate terminal for the ParkMate parking ledger",
	Long: `parkmate drives the parking log directly, without the HTTP API.

It provides commands to:
  - issue a PIN when a vehicle enters
  - price and close a stay when it leaves
  - list the history and the payments
  - purge the log or run database migrations

The store is selected with LOG_STORE_DRIVER (postgres, sqlite, mongo, memory)
or --store.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storeDriver, "store", "", "log store driver, overrides LOG_STORE_DRIVER")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log service activity to stderr")
}

// app is what a subcommand needs to talk to the ledger.
type app struct {
	cfg     *config.Config
	parking portssvc.ParkingSvcFacade
	out     io.Writer
	close   store.Cleanup
}

func openApp(ctx context.Context, out io.Writer) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	configureLogging()

	logStore, closeFn, err := store.OpenLogStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s log store: %w", cfg.LogStoreDriver, err)
	}
	parking := services.NewParkingService(logStore,
		services.WithTariff(domain.Tariff{UnitRate: cfg.ParkingUnitRate, Currency: cfg.ParkingCurrency}),
	)
	return &app{cfg: cfg, parking: parking, out: out, close: closeFn}, nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if storeDriver != "" {
		cfg.LogStoreDriver = storeDriver
	}
	return cfg, nil
}

func configureLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
