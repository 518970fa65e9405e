// Package report writes the batch output: per-tier partition files, the
// exclusion report and the run summary.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"leadfilter/core/domain"
	portout "leadfilter/core/port/out"
	"leadfilter/pkg/apperr"
)

var _ portout.ReportWriter = (*FileReportWriter)(nil)

// FileReportWriter writes the batch result to a directory:
//
//	high.csv / medium.csv / low.csv / excluded.csv  — tier partitions, input order
//	exclusion_report.csv                            — one row per hard-excluded record
//	summary.json                                    — counts, percentages, skips
type FileReportWriter struct {
	dir string
	log zerolog.Logger
}

// NewFileReportWriter creates a writer targeting dir (created on demand).
func NewFileReportWriter(dir string, log zerolog.Logger) *FileReportWriter {
	return &FileReportWriter{
		dir: dir,
		log: log.With().Str("component", "report_writer").Logger(),
	}
}

var partitionFiles = []struct {
	tier domain.PriorityTier
	name string
}{
	{domain.TierHigh, "high.csv"},
	{domain.TierMedium, "medium.csv"},
	{domain.TierLow, "low.csv"},
	{domain.TierExcluded, "excluded.csv"},
}

// Write persists all report files and logs tier shares that fall outside
// the configuration quality target ranges.
func (w *FileReportWriter) Write(result *domain.BatchResult) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return apperr.Wrap(err, apperr.CodeInternalError, "cannot create report directory").
			WithDetail("dir", w.dir)
	}

	for _, p := range partitionFiles {
		if err := w.writePartition(p.name, result.Partition(p.tier)); err != nil {
			return err
		}
	}
	if err := w.writeExclusionReport(result); err != nil {
		return err
	}
	if err := w.writeSummary(result); err != nil {
		return err
	}

	w.warnOutOfRange(&result.Summary)

	w.log.Info().
		Str("run_id", result.Summary.RunID).
		Str("dir", w.dir).
		Msg("reports written")
	return nil
}

func (w *FileReportWriter) writePartition(name string, results []*domain.ClassificationResult) error {
	return w.writeCSV(name, func(cw *csv.Writer) error {
		if err := cw.Write([]string{"address", "company_name", "score", "geo_tier"}); err != nil {
			return err
		}
		for _, r := range results {
			row := []string{
				r.Record.Address,
				r.Record.CompanyName,
				fmt.Sprintf("%.2f", r.OverallScore),
				string(r.GeoTier),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

func (w *FileReportWriter) writeExclusionReport(result *domain.BatchResult) error {
	return w.writeCSV("exclusion_report.csv", func(cw *csv.Writer) error {
		if err := cw.Write([]string{"address", "exclusion_reason", "matched_rule"}); err != nil {
			return err
		}
		for _, r := range result.HardExclusions() {
			row := []string{r.Record.Address, string(*r.ExclusionReason), r.MatchedRule}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

func (w *FileReportWriter) writeCSV(name string, fill func(*csv.Writer) error) error {
	path := filepath.Join(w.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return apperr.Wrap(err, apperr.CodeInternalError, "cannot create report file").
			WithDetail("path", path)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := fill(cw); err != nil {
		return apperr.Wrap(err, apperr.CodeInternalError, "cannot write report file").
			WithDetail("path", path)
	}
	cw.Flush()
	return cw.Error()
}

// summaryDocument is the JSON shape of summary.json.
type summaryDocument struct {
	domain.BatchSummary
	Percentages map[string]float64     `json:"percentages"`
	Skipped     []domain.SkippedRecord `json:"skipped_records,omitempty"`
}

func (w *FileReportWriter) writeSummary(result *domain.BatchResult) error {
	doc := summaryDocument{
		BatchSummary: result.Summary,
		Percentages: map[string]float64{
			"high":     result.Summary.Percentage(domain.TierHigh),
			"medium":   result.Summary.Percentage(domain.TierMedium),
			"low":      result.Summary.Percentage(domain.TierLow),
			"excluded": result.Summary.Percentage(domain.TierExcluded),
		},
		Skipped: result.Skipped,
	}

	path := filepath.Join(w.dir, "summary.json")
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return apperr.InternalWithError(err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return apperr.Wrap(err, apperr.CodeInternalError, "cannot write summary").
			WithDetail("path", path)
	}
	return nil
}

// warnOutOfRange logs tiers whose share falls outside the documented target
// ranges, a signal that the market configuration needs tuning.
func (w *FileReportWriter) warnOutOfRange(s *domain.BatchSummary) {
	for tier, r := range domain.TierTargetRanges {
		if s.OutOfTargetRange(tier) {
			w.log.Warn().
				Str("tier", string(tier)).
				Float64("percentage", s.Percentage(tier)).
				Float64("target_min", r[0]).
				Float64("target_max", r[1]).
				Msg("tier share outside target range; review market configuration")
		}
	}
}
