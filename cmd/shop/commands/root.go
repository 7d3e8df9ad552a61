package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/Skotchmaster/online_pharmacy/pkg/config"
	pkgdb "github.com/Skotchmaster/online_pharmacy/pkg/db"
	"github.com/Skotchmaster/online_pharmacy/pkg/logging"
)

var (
	// Global flags
	envFile  string
	logLevel string

	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "shop",
	Short: "Online pharmacy backend",
	Long: `shop runs the online pharmacy HTTP API and its maintenance tasks.

Configuration is read from the environment, optionally merged from a dotenv file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadEnvFile(envFile); err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
		level := logLevel
		if level == "" {
			level = config.EnvDefault("LOG_LEVEL", "info")
		}
		logger = logging.New(level).With("service", config.EnvDefault("SERVICE_NAME", "shop"))
		slog.SetDefault(logger)
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file merged into the environment (missing file is ignored)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (default $LOG_LEVEL)")

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func openDB(ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	if err := config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL"); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return pkgdb.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
}
