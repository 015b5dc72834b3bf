package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"asset-inventory/feature/criticality"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dryRunSync bool
	jsonSync   bool
)

// syncCmd runs one criticality synchronization.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Score all assets and reconcile the criticality ledger",
	Long: `Scores every asset, then inserts, updates and deletes criticality records so the
ledger matches the current judgments, and restores the critical flag on assets.

Examples:
  # Show what would change
  sync --dry-run

  # Apply and print the stats as JSON
  sync --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		rt.logger.Info("Starting criticality sync", zap.Bool("dry_run", dryRunSync))
		result, err := rt.engine().Run(cmd.Context(), criticality.RunOptions{DryRun: dryRunSync})
		if result != nil {
			printSyncReport(rt.logger, result)
			if jsonSync {
				if encErr := writeJSON(result); encErr != nil {
					return encErr
				}
			}
		}
		if err != nil {
			return fmt.Errorf("criticality sync failed: %w", err)
		}
		if dryRunSync {
			rt.logger.Info("Dry-run mode: No changes were made.")
		}
		return nil
	},
}

// evaluateCmd prints the current judgments without touching the ledger.
var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Print the judgments for the current inventory (read-only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		judgments, err := rt.engine().Judgments(cmd.Context())
		if err != nil {
			return fmt.Errorf("evaluation failed: %w", err)
		}
		rt.logger.Info("Evaluation finished", zap.Int("qualified", len(judgments)))
		return writeJSON(judgments)
	},
}

func init() {
	syncCmd.Flags().BoolVar(&dryRunSync, "dry-run", false, "Plan the changes without applying them")
	syncCmd.Flags().BoolVar(&jsonSync, "json", false, "Print the full result as JSON on stdout")

	RootCmd.AddCommand(syncCmd, evaluateCmd)
}

// printSyncReport logs the run stats and a sample of the planned actions.
func printSyncReport(l *zap.Logger, result *criticality.Result) {
	s := result.Stats
	l.Info("Criticality report",
		zap.Int("total_qualified", s.TotalQualified),
		zap.Int("inserted", s.Inserted),
		zap.Int("updated", s.Updated),
		zap.Int("deleted", s.Deleted),
		zap.Int("unchanged", s.Unchanged),
		zap.Int("failed", s.Failed),
		zap.Int("flags_set", s.FlagsSet),
		zap.Int("flags_cleared", s.FlagsCleared),
		zap.Int("critical", s.Breakdown.Critical),
		zap.Int("high", s.Breakdown.High),
		zap.Int("medium", s.Breakdown.Medium),
	)

	for _, f := range result.Failures {
		l.Warn("Failed action",
			zap.String("type", string(f.Action.Type)),
			zap.String("key", f.Action.Key),
			zap.String("error", f.Message),
		)
	}

	if result.Plan == nil || len(result.Plan.Actions) == 0 {
		return
	}

	// Show sample of actions (max 5 for logger)
	actions := result.Plan.Actions
	maxShow := min(5, len(actions))
	for _, action := range actions[:maxShow] {
		l.Info("Sample action",
			zap.String("type", string(action.Type)),
			zap.String("key", action.Key),
			zap.String("reason", action.Reason),
		)
	}
	if len(actions) > maxShow {
		l.Info("Additional actions not shown", zap.Int("count", len(actions)-maxShow))
	}
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

