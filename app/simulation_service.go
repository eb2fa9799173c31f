package app

import (
	"context"
	"io"

	"simlab/domain/core"
	"simlab/domain/simulation"
	"simlab/internal"
	"simlab/internal/errors"
	"simlab/internal/simulate"
	"simlab/ports"
)

// SimulationService orchestrates simulation runs: execute, persist,
// retrieve and export. The repository is optional; without one the
// service only executes and exports.
type SimulationService struct {
	runner   *simulate.Runner
	repo     ports.RunRepository
	exporter ports.RunExporter
	logger   *internal.Logger
}

// NewSimulationService wires the service. repo may be nil when no run
// store is configured.
func NewSimulationService(runner *simulate.Runner, repo ports.RunRepository, exporter ports.RunExporter) *SimulationService {
	return &SimulationService{
		runner:   runner,
		repo:     repo,
		exporter: exporter,
		logger:   internal.DefaultLogger,
	}
}

// RunSimulation executes a run and persists its parameters and summaries.
// A storage failure does not fail the run; the result is already computed
// and still useful to the caller.
func (s *SimulationService) RunSimulation(ctx context.Context, params simulation.Params) (*simulation.Run, error) {
	run, err := s.runner.Run(ctx, params)
	if err != nil {
		return nil, err
	}

	s.logger.Info("simulation run %s finished: %d trials in %s", run.ID, params.Trials, run.Elapsed)

	if s.repo != nil {
		if err := s.repo.SaveRun(ctx, run); err != nil {
			s.logger.Warn("failed to persist run %s: %v", run.ID, err)
		}
	}

	return run, nil
}

// ReplayRun re-executes a stored run's parameters without persisting the
// replay. The recorded seed reproduces the original trial series exactly,
// which is how exports recover trial-level data the store does not keep.
func (s *SimulationService) ReplayRun(ctx context.Context, stored *simulation.Run) (*simulation.Run, error) {
	if stored == nil {
		return nil, errors.InvalidParams("run is required")
	}

	run, err := s.runner.Run(ctx, stored.Params)
	if err != nil {
		return nil, err
	}
	run.ID = stored.ID
	run.CreatedAt = stored.CreatedAt
	return run, nil
}

// GetRun fetches a stored run by ID
func (s *SimulationService) GetRun(ctx context.Context, id core.RunID) (*simulation.Run, error) {
	if s.repo == nil {
		return nil, errors.New(errors.CodeDatabaseError, "no run store configured")
	}
	return s.repo.GetRun(ctx, id)
}

// ListRuns returns the most recent stored runs
func (s *SimulationService) ListRuns(ctx context.Context, limit int) ([]*simulation.Run, error) {
	if s.repo == nil {
		return nil, errors.New(errors.CodeDatabaseError, "no run store configured")
	}
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListRuns(ctx, limit)
}

// ExportRun writes the run to w in the exporter's document format
func (s *SimulationService) ExportRun(run *simulation.Run, w io.Writer) error {
	if s.exporter == nil {
		return errors.New(errors.CodeExportError, "no exporter configured")
	}
	if run == nil {
		return errors.InvalidParams("run is required")
	}
	return s.exporter.Export(run, w)
}

// ExportContentType reports the exporter's MIME type for HTTP downloads
func (s *SimulationService) ExportContentType() string {
	if s.exporter == nil {
		return "application/octet-stream"
	}
	return s.exporter.ContentType()
}

// ExportFileExtension reports the exporter's file extension
func (s *SimulationService) ExportFileExtension() string {
	if s.exporter == nil {
		return "bin"
	}
	return s.exporter.FileExtension()
}
