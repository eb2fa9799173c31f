package container

import (
	"context"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"simlab/adapters/excel"
	"simlab/adapters/postgres"
	"simlab/adapters/rng"
	"simlab/adapters/stats/tests"
	"simlab/app"
	"simlab/internal"
	"simlab/internal/config"
	"simlab/internal/errors"
	"simlab/internal/simulate"
	"simlab/ports"
)

// Container wires the application's components from configuration
type Container struct {
	Config  *config.Config
	Battery *tests.Battery
	Runner  *simulate.Runner
	Service *app.SimulationService

	db     *sqlx.DB
	logger *internal.Logger
}

// New builds the container. The run store is attached only when
// DATABASE_URL is configured; everything else is unconditional.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{
		Config: cfg,
		logger: internal.DefaultLogger,
	}

	c.Battery = tests.NewBattery()

	runner := simulate.NewRunner(c.Battery, rng.NewSeededRNG())
	runner.SetMaxWorkers(cfg.Simulation.MaxWorkers)
	runner.SetHistogramBins(cfg.Simulation.HistogramBins)
	c.Runner = runner

	var repo ports.RunRepository
	if cfg.Database.URL != "" {
		db, err := sqlx.ConnectContext(ctx, "postgres", cfg.Database.URL)
		if err != nil {
			return nil, errors.Wrap(err, "failed to connect to run store")
		}
		c.db = db

		pgRepo := postgres.NewRunRepository(db).(*postgres.RunRepositoryImpl)
		if err := pgRepo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		repo = pgRepo
		c.logger.Info("run store connected")
	} else {
		c.logger.Info("no DATABASE_URL configured, runs will not be persisted")
	}

	c.Service = app.NewSimulationService(c.Runner, repo, excel.NewExporter())
	return c, nil
}

// Close releases held resources
func (c *Container) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
