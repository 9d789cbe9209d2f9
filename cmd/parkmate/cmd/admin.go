package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/parkmate_app/internal/platform/config"
	"github.com/SscSPs/parkmate_app/pkg/database"
	"github.com/spf13/cobra"
)

var purgeConfirmed bool

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Maintain the parking log",
}

var logsPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Irreversibly delete every parking record",
	Args:  cobra.NoArgs,
	RunE:  runLogsPurge,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending Postgres migrations",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.AddCommand(logsPurgeCmd)
	rootCmd.AddCommand(migrateCmd)

	logsPurgeCmd.Flags().BoolVar(&purgeConfirmed, "yes", false, "confirm the purge")
}

func runLogsPurge(cmd *cobra.Command, _ []string) error {
	if !purgeConfirmed {
		return errors.New("deleting all records is irreversible, repeat with --yes")
	}
	a, err := openApp(cmd.Context(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.parking.DeleteAllLogs(cmd.Context(), cliUserID, true); err != nil {
		return fmt.Errorf("delete logs: %w", err)
	}
	fmt.Fprintln(a.out, "All records were deleted.")
	return nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.LogStoreDriver == config.StoreDriverMemory {
		return errors.New("nothing to migrate for the memory store")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	applied, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger)
	if err != nil {
		return err
	}
	if applied {
		fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied.")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date.")
	}
	return nil
}
