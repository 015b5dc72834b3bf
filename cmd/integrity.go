package cmd

import (
	"fmt"

	"asset-inventory/core/storage"
	"asset-inventory/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on storage and database",
	Long:  `Checks the bucket folder layout and compares the live database schema with the inventory models.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := integrityService()
		if err != nil {
			return err
		}
		defer logg.Sync()
		if err := runStorageCheck(cmd, svc, logg, false); err != nil {
			return err
		}
		return runSchemaCheck(svc, logg)
	},
}

// storageCmd represents the integrity storage command
var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Check and fix the bucket folder structure",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := integrityService()
		if err != nil {
			return err
		}
		defer logg.Sync()
		return runStorageCheck(cmd, svc, logg, fixFlag)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the inventory database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := integrityService()
		if err != nil {
			return err
		}
		defer logg.Sync()
		return runSchemaCheck(svc, logg)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(storageCmd, schemaCmd)

	storageCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the bucket and missing folders")
}

func integrityService() (*integrity.Service, *zap.Logger, error) {
	rt, err := bootstrap()
	if err != nil {
		return nil, nil, err
	}
	client, err := storage.NewClient(rt.cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return integrity.NewService(client, rt.cfg.Storage, rt.logger, rt.db), rt.logger, nil
}

func runStorageCheck(cmd *cobra.Command, svc *integrity.Service, logg *zap.Logger, fix bool) error {
	logg.Info("Checking folder structure...")
	result, err := svc.Storage(cmd.Context(), fix)
	if err != nil {
		return fmt.Errorf("structure check failed: %w", err)
	}

	if result.BucketCreated {
		logg.Info("Bucket created.")
	}
	switch {
	case len(result.Missing) == 0:
		logg.Info("Structure is intact.")
	case result.Status == "fixed":
		logg.Info("Structure fixed successfully.", zap.Strings("fixed", result.Fixed))
	default:
		logg.Warn("Missing folders detected", zap.Strings("missing", result.Missing))
		logg.Info("Run with --fix to create missing folders.")
	}
	return nil
}

func runSchemaCheck(svc *integrity.Service, logg *zap.Logger) error {
	logg.Info("Checking database schema integrity...")
	report, err := svc.CheckSchema()
	if err != nil {
		return fmt.Errorf("schema check failed: %w", err)
	}

	if report.Matched {
		logg.Info("Schema matches the inventory models.", zap.String("driver", report.Driver))
		return nil
	}

	logg.Warn("Schema mismatches found", zap.String("driver", report.Driver))
	for table, tbl := range report.Tables {
		if tbl.Status == "ok" {
			continue
		}
		if tbl.Missing {
			logg.Warn("Missing table", zap.String("table", table))
		}
		if len(tbl.MissingColumns) > 0 {
			logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tbl.MissingColumns))
		}
		if len(tbl.TypeMismatches) > 0 {
			logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tbl.TypeMismatches))
		}
	}
	for _, e := range report.Errors {
		logg.Error("Inspection Error", zap.String("error", e))
	}
	return nil
}
