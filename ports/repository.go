package ports

import (
	"context"

	"simlab/domain/core"
	"simlab/domain/simulation"
)

// RunRepository persists completed simulation runs. Implementations store
// parameters and summaries; trial-level series are not persisted.
type RunRepository interface {
	SaveRun(ctx context.Context, run *simulation.Run) error
	GetRun(ctx context.Context, id core.RunID) (*simulation.Run, error)
	ListRuns(ctx context.Context, limit int) ([]*simulation.Run, error)
}
