// Package ingest loads batch input files into email records.
package ingest

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"leadfilter/core/domain"
	portout "leadfilter/core/port/out"
	"leadfilter/pkg/apperr"
)

var _ portout.RecordSource = (*CSVRecordSource)(nil)

// CSVRecordSource reads email records from a CSV file with a header row.
// Recognized columns: address (required), company_name, source_text,
// web_domain. Deduplication and address syntax validation happen upstream;
// this source only maps columns and derives the domain from the address.
type CSVRecordSource struct {
	log zerolog.Logger
}

// NewCSVRecordSource creates a new CSV record source.
func NewCSVRecordSource(log zerolog.Logger) *CSVRecordSource {
	return &CSVRecordSource{
		log: log.With().Str("component", "csv_source").Logger(),
	}
}

// Load reads all records from path, preserving file order.
func (s *CSVRecordSource) Load(path string) ([]*domain.EmailRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInvalidInput, "cannot open input file").
			WithDetail("path", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInvalidInput, "cannot read input header")
	}
	cols := columnIndex(header)
	if _, ok := cols["address"]; !ok {
		return nil, apperr.InvalidInput("address", "input file has no 'address' column")
	}

	var records []*domain.EmailRecord
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperr.Wrap(err, apperr.CodeInvalidInput, "cannot read input row").
				WithDetail("line", line)
		}
		records = append(records, rowToRecord(row, cols))
	}

	s.log.Info().Str("path", path).Int("records", len(records)).Msg("input loaded")
	return records, nil
}

func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return cols
}

func rowToRecord(row []string, cols map[string]int) *domain.EmailRecord {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	address := field("address")
	rec := &domain.EmailRecord{
		Address:     address,
		CompanyName: field("company_name"),
		SourceText:  field("source_text"),
		WebDomain:   field("web_domain"),
	}
	if at := strings.LastIndexByte(address, '@'); at >= 0 && at < len(address)-1 {
		rec.Domain = strings.ToLower(address[at+1:])
	}
	return rec
}
