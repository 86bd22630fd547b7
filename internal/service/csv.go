package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/msomdec/customer-desk/internal/domain"
)

// CSVDelimiter separates fields in exported and imported files.
const CSVDelimiter = ';'

// CSVHeader is the first row of every export.
var CSVHeader = []string{"idx", "nik", "name", "born", "active", "salary"}

// importColumns is the number of data columns after an optional leading idx.
const importColumns = 5

// Export writes every customer to w as semicolon-delimited UTF-8 CSV,
// newest first, and returns the number of data rows written.
func (s *CustomerService) Export(ctx context.Context, w io.Writer) (int, error) {
	customers, err := s.customers.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("load customers: %w", err)
	}

	cw := csv.NewWriter(w)
	cw.Comma = CSVDelimiter
	if err := cw.Write(CSVHeader); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}
	for _, c := range customers {
		if err := cw.Write([]string{
			strconv.FormatInt(c.ID, 10),
			c.NIK,
			c.Name,
			c.BornString(),
			strconv.Itoa(c.Active),
			strconv.FormatInt(c.Salary, 10),
		}); err != nil {
			return 0, fmt.Errorf("write customer %d: %w", c.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flush csv: %w", err)
	}
	return len(customers), nil
}

// ImportReport summarises one CSV import.
type ImportReport struct {
	BatchID  string
	Imported int
	Failed   int
	Errors   []string
}

// Message is the one-line summary shown to the user.
func (r *ImportReport) Message() string {
	return fmt.Sprintf("Imported %d rows, failed %d rows", r.Imported, r.Failed)
}

func (r *ImportReport) fail(line int, format string, args ...any) {
	r.Failed++
	r.Errors = append(r.Errors, fmt.Sprintf("Row %d: ", line)+fmt.Sprintf(format, args...))
}

// Import reads semicolon-delimited CSV from r and inserts one customer per
// data row. The header row is skipped; when its first column is "idx" (the
// export layout) that column is ignored. Bad rows are recorded in the
// report and do not stop the import. Only an unreadable stream or a
// cancelled context aborts, returning the report accumulated so far.
func (s *CustomerService) Import(ctx context.Context, r io.Reader) (*ImportReport, error) {
	report := &ImportReport{BatchID: ulid.Make().String()}
	log := slog.With("batch", report.BatchID)

	cr := csv.NewReader(r)
	cr.Comma = CSVDelimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return report, nil
	}
	if err != nil {
		return report, fmt.Errorf("read header: %w", err)
	}
	skip := 0
	if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(header[0], "\ufeff")), "idx") {
		skip = 1
	}

	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			report.fail(parseErr.StartLine, "malformed row: %v", parseErr.Err)
			log.Warn("csv import row failed", "line", parseErr.StartLine, "error", parseErr.Err)
			continue
		}
		if err != nil {
			return report, fmt.Errorf("read csv: %w", err)
		}

		line, _ := cr.FieldPos(0)
		if isBlankRecord(record) {
			continue
		}
		if len(record)-skip < importColumns {
			report.fail(line, "invalid row length")
			log.Warn("csv import row failed", "line", line, "error", "invalid row length")
			continue
		}

		in, err := parseImportRecord(record[skip:])
		if err != nil {
			report.fail(line, "value error - %v", err)
			log.Warn("csv import row failed", "line", line, "error", err)
			continue
		}

		if _, err := s.Create(ctx, in); err != nil {
			report.fail(line, "failed to save customer with NIK %s: %s", in.NIK, importErrorReason(err))
			log.Warn("csv import row failed", "line", line, "nik", in.NIK, "error", err)
			continue
		}
		report.Imported++
	}

	log.Info("csv import finished", "imported", report.Imported, "failed", report.Failed)
	return report, nil
}

// parseImportRecord converts nik;name;born;active;salary. Blank born reads
// as no date; blank active and salary read as 0.
func parseImportRecord(fields []string) (CustomerInput, error) {
	in := CustomerInput{
		NIK:  fields[0],
		Name: fields[1],
		Born: strings.TrimSpace(fields[2]),
	}

	if in.Born != "" {
		if _, err := time.Parse(domain.DateLayout, in.Born); err != nil {
			return in, fmt.Errorf("invalid born %q", in.Born)
		}
	}

	if v := strings.TrimSpace(fields[3]); v != "" {
		active, err := strconv.Atoi(v)
		if err != nil {
			return in, fmt.Errorf("invalid active %q", v)
		}
		in.Active = active
	}
	if v := strings.TrimSpace(fields[4]); v != "" {
		salary, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return in, fmt.Errorf("invalid salary %q", v)
		}
		in.Salary = salary
	}
	return in, nil
}

func importErrorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicateNIK):
		return "NIK already exists"
	case errors.Is(err, domain.ErrInvalidInput):
		return strings.TrimPrefix(err.Error(), domain.ErrInvalidInput.Error()+": ")
	default:
		return err.Error()
	}
}

func isBlankRecord(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
