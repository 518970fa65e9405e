package out

import "leadfilter/core/domain"

// RecordSource provides the ordered batch input. Records arrive already
// deduplicated and syntax-validated.
type RecordSource interface {
	Load(path string) ([]*domain.EmailRecord, error)
}

// ReportWriter persists the batch output: tier partitions, the exclusion
// report and the run summary.
type ReportWriter interface {
	Write(result *domain.BatchResult) error
}
