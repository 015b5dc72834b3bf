package cmd

import (
	"fmt"

	"asset-inventory/core/config"
	"asset-inventory/core/database"
	"asset-inventory/core/logger"
	"asset-inventory/feature/criticality"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime bundles what every command needs after startup.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
	store  *criticality.GormStore
}

// bootstrap loads configuration, builds the logger and connects to the inventory database.
func bootstrap() (*runtime, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database connection required: %w", err)
	}

	return &runtime{
		cfg:    cfg,
		logger: logg.With(zap.String("database", cfg.Database.Name)),
		db:     db,
		store:  criticality.NewGormStore(db),
	}, nil
}

// engine builds a criticality engine over the runtime store.
func (r *runtime) engine() *criticality.Engine {
	return criticality.NewEngine(criticality.Stores{
		Assets:  r.store,
		Tasks:   r.store,
		Records: r.store,
		Catalog: r.store,
	}, r.cfg.Criticality, r.logger)
}
