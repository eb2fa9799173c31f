package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"simlab/domain/simulation"
	"simlab/internal/errors"
)

// Exporter writes a simulation run to an .xlsx workbook: one sheet of
// parameters, one summary sheet, and one trial-level sheet per test when
// the run still carries its series.
type Exporter struct{}

// NewExporter creates a new workbook exporter
func NewExporter() *Exporter {
	return &Exporter{}
}

// ContentType returns the xlsx MIME type
func (e *Exporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// FileExtension returns the workbook file extension
func (e *Exporter) FileExtension() string {
	return "xlsx"
}

// Export writes the run as a workbook to w
func (e *Exporter) Export(run *simulation.Run, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := e.writeParameters(f, run); err != nil {
		return err
	}
	if err := e.writeSummary(f, run); err != nil {
		return err
	}
	for _, series := range run.Series {
		if err := e.writeSeries(f, series); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return errors.ExportError("failed to write workbook", err)
	}
	return nil
}

func (e *Exporter) writeParameters(f *excelize.File, run *simulation.Run) error {
	const sheet = "Parameters"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return errors.ExportError("failed to rename parameters sheet", err)
	}

	p := run.Params
	rows := [][]interface{}{
		{"run_id", run.ID.String()},
		{"created_at", run.CreatedAt.Format("2006-01-02 15:04:05 MST")},
		{"elapsed", run.Elapsed.String()},
		{"mean_1", p.Mean1},
		{"mean_2", p.Mean2},
		{"std_dev_1", p.StdDev1},
		{"std_dev_2", p.StdDev2},
		{"n_1", p.N1},
		{"n_2", p.N2},
		{"trials", p.Trials},
		{"alpha", p.Alpha},
		{"seed", p.Seed},
	}

	for i, row := range rows {
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return errors.ExportError("failed to write parameter row", err)
		}
	}
	return nil
}

func (e *Exporter) writeSummary(f *excelize.File, run *simulation.Run) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.ExportError("failed to create summary sheet", err)
	}

	header := []interface{}{
		"test", "rejections", "rejection_rate",
		"stat_mean", "stat_sd", "stat_min", "stat_max",
		"p_mean", "p_median", "p_q25", "p_q75",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return errors.ExportError("failed to write summary header", err)
	}

	for i, s := range run.Summaries {
		row := []interface{}{
			s.TestName, s.Rejections, s.RejectionRate,
			s.StatSummary.Mean, s.StatSummary.StdDev, s.StatSummary.Min, s.StatSummary.Max,
			s.PValueSummary.Mean, s.PValueSummary.Median, s.PValueSummary.Q25, s.PValueSummary.Q75,
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return errors.ExportError("failed to write summary row", err)
		}
	}
	return nil
}

func (e *Exporter) writeSeries(f *excelize.File, series simulation.TrialSeries) error {
	sheet := series.TestName
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.ExportError("failed to create series sheet", err)
	}

	header := []interface{}{"trial", "statistic", "p_value"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return errors.ExportError("failed to write series header", err)
	}

	for i := range series.Statistics {
		row := []interface{}{i + 1, series.Statistics[i], series.PValues[i]}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return errors.ExportError("failed to write series row", err)
		}
	}
	return nil
}
