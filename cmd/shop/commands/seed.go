package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/online_pharmacy/pkg/config"
	pkgdb "github.com/Skotchmaster/online_pharmacy/pkg/db"
	"github.com/Skotchmaster/online_pharmacy/pkg/logging"
	"github.com/Skotchmaster/online_pharmacy/pkg/search"

	"github.com/Skotchmaster/online_pharmacy/internal/repo"
	"github.com/Skotchmaster/online_pharmacy/internal/seed"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a product catalog",
	Long: `Insert catalog products that are not stored yet, matched by name.
Without --file the built-in starter catalog is used.

Examples:
  shop seed
  shop seed --file products.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := logging.IntoContext(cmd.Context(), logger)
		cfg := config.Load()

		cat, err := seed.LoadFile(seedFile)
		if err != nil {
			return err
		}

		db, err := openDB(ctx, cfg)
		if err != nil {
			return err
		}
		defer pkgdb.Close(db)

		r := repo.New(db)
		if err := r.Migrate(ctx); err != nil {
			return err
		}

		idx, err := search.NewIndex(ctx, search.Config{
			URL:      cfg.ESURL,
			User:     cfg.ESUser,
			Password: cfg.ESPassword,
			Index:    cfg.ESIndex,
		})
		if err != nil {
			logger.Warn("search_unavailable", "error", err)
			idx = nil
		}

		res, err := seed.Apply(ctx, r, idx, cat)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d products (%d already present)\n", res.Created, res.Existing)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "catalog YAML file (default: built-in catalog)")
}
