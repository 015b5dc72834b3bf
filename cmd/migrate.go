package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd creates the inventory schema and seeds the priority catalog.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the inventory schema",
	Long: `Runs AutoMigrate for every inventory table and seeds the default priority
catalog (Critical, Medium, Low) when it is empty.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		if err := rt.store.Migrate(cmd.Context()); err != nil {
			return err
		}
		seeded, err := rt.store.SeedCatalog(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to seed catalog: %w", err)
		}
		rt.logger.Info("Schema migrated", zap.Int("tiers_seeded", seeded))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
