package sales

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"salesboard/internal/errors"
)

// Normalized column names shared by every worksheet and the combined CSV.
const (
	ColCustomerID    = "CUSTOMER_ID"
	ColAgent         = "AGENT"
	ColTransactionID = "TRANSACTION_ID"
	ColStatus        = "STATUS"
	ColEnrolledDate  = "ENROLLED_DATE"
	ColProcessedDate = "PROCESSED_DATE"
	ColClearedDate   = "CLEARED_DATE"
	ColSourceSheet   = "SOURCE_SHEET"
	ColCategory      = "CATEGORY"
)

// NormalizeHeader maps a raw header to its canonical form: trimmed,
// uppercased, spaces collapsed to underscores ("Enrolled Date" → "ENROLLED_DATE").
func NormalizeHeader(header string) string {
	h := strings.ToUpper(strings.TrimSpace(header))
	return strings.ReplaceAll(h, " ", "_")
}

// NormalizeHeaders normalizes a full header row.
func NormalizeHeaders(headers []string) []string {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = NormalizeHeader(h)
	}
	return normalized
}

// ValidateHeaders checks that a normalized header row conforms to one of the
// expected worksheet schemas. Every sheet needs the identity columns and a
// status; enrollment sheets carry an enrolled date, the commission sheet a
// processed date instead.
func ValidateHeaders(headers []string) error {
	have := make(map[string]bool, len(headers))
	for _, h := range headers {
		have[h] = true
	}

	var missing []string
	for _, required := range []string{ColCustomerID, ColAgent, ColStatus} {
		if !have[required] {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return errors.SchemaMismatch(fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")))
	}

	if !have[ColEnrolledDate] && !have[ColProcessedDate] {
		return errors.SchemaMismatch("worksheet has neither ENROLLED DATE nor PROCESSED DATE")
	}

	return nil
}

// ParseRecords converts a raw header row plus data rows into records. Headers
// are normalized and validated; the source argument tags rows that do not
// already carry a SOURCE_SHEET column.
func ParseRecords(headers []string, rows [][]string, source string) ([]Record, error) {
	normalized := NormalizeHeaders(headers)
	if err := ValidateHeaders(normalized); err != nil {
		return nil, err
	}

	index := make(map[string]int, len(normalized))
	for i, h := range normalized {
		// First occurrence wins for duplicated headers.
		if _, seen := index[h]; !seen {
			index[h] = i
		}
	}

	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		status := strings.ToUpper(cell(row, ColStatus))

		rec := Record{
			CustomerID:    cell(row, ColCustomerID),
			Agent:         strings.ToUpper(cell(row, ColAgent)),
			TransactionID: cell(row, ColTransactionID),
			Status:        status,
			Category:      Categorize(status),
			EnrolledDate:  ParseDate(cell(row, ColEnrolledDate)),
			ProcessedDate: ParseDate(cell(row, ColProcessedDate)),
			ClearedDate:   ParseDate(cell(row, ColClearedDate)),
			SourceSheet:   strings.ToUpper(cell(row, ColSourceSheet)),
		}
		if rec.SourceSheet == "" {
			rec.SourceSheet = strings.ToUpper(source)
		}
		records = append(records, rec)
	}

	return records, nil
}

// Table is an in-memory sales table. Each load replaces the table wholesale;
// there is no record lifecycle beyond being re-fetched.
type Table struct {
	Records []Record
}

// NewTable wraps records in a table.
func NewTable(records []Record) *Table {
	return &Table{Records: records}
}

// Len returns the row count.
func (t *Table) Len() int {
	return len(t.Records)
}

// Append merges another table's records into this one.
func (t *Table) Append(other *Table) {
	if other != nil {
		t.Records = append(t.Records, other.Records...)
	}
}

// Sources returns the distinct source worksheets, sorted.
func (t *Table) Sources() []string {
	set := make(map[string]bool)
	for _, r := range t.Records {
		if r.SourceSheet != "" {
			set[r.SourceSheet] = true
		}
	}
	sources := make([]string, 0, len(set))
	for s := range set {
		sources = append(sources, s)
	}
	sort.Strings(sources)
	return sources
}

// Agents returns the distinct agent names, sorted.
func (t *Table) Agents() []string {
	set := make(map[string]bool)
	for _, r := range t.Records {
		if r.Agent != "" {
			set[r.Agent] = true
		}
	}
	agents := make([]string, 0, len(set))
	for a := range set {
		agents = append(agents, a)
	}
	sort.Strings(agents)
	return agents
}

// DateRange returns the min and max enrolled dates. ok is false when no
// record carries a date.
func (t *Table) DateRange() (min, max time.Time, ok bool) {
	for _, r := range t.Records {
		if !r.HasEnrolledDate() {
			continue
		}
		if !ok || r.EnrolledDate.Before(min) {
			min = r.EnrolledDate
		}
		if !ok || r.EnrolledDate.After(max) {
			max = r.EnrolledDate
		}
		ok = true
	}
	return min, max, ok
}

// Filter selects records for aggregation. Zero dates leave that bound open;
// empty category/source sets mean "all".
type Filter struct {
	Start      time.Time
	End        time.Time
	Categories []Category
	Sources    []string
	Agent      string
}

// dateBounded reports whether the filter constrains the enrolled date.
func (f Filter) dateBounded() bool {
	return !f.Start.IsZero() || !f.End.IsZero()
}

// Match reports whether a record passes the filter. Records without an
// enrolled date drop out of any date-bounded view.
func (f Filter) Match(r Record) bool {
	if f.dateBounded() {
		if !r.HasEnrolledDate() {
			return false
		}
		if !f.Start.IsZero() && r.EnrolledDate.Before(f.Start) {
			return false
		}
		if !f.End.IsZero() && r.EnrolledDate.After(f.End) {
			return false
		}
	}

	if len(f.Categories) > 0 {
		found := false
		for _, c := range f.Categories {
			if r.Category == c {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(f.Sources) > 0 {
		found := false
		for _, s := range f.Sources {
			if strings.EqualFold(r.SourceSheet, s) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.Agent != "" && !strings.EqualFold(r.Agent, f.Agent) {
		return false
	}

	return true
}

// Apply returns a new table holding the records that pass the filter.
func (t *Table) Apply(f Filter) *Table {
	filtered := make([]Record, 0, len(t.Records))
	for _, r := range t.Records {
		if f.Match(r) {
			filtered = append(filtered, r)
		}
	}
	return NewTable(filtered)
}
