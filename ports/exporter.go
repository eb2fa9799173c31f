package ports

import (
	"io"

	"simlab/domain/simulation"
)

// RunExporter writes a completed run, including trial-level series when
// present, to an external document format.
type RunExporter interface {
	Export(run *simulation.Run, w io.Writer) error
	ContentType() string
	FileExtension() string
}
