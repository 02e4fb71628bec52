// Package sales models the flat enrollment/commission records the dashboard
// aggregates, and the group-by/pivot operations over them.
package sales

import (
	"fmt"
	"strings"
	"time"
)

// Category is the derived status bucket for a record.
type Category string

const (
	CategoryActive    Category = "ACTIVE"
	CategoryNSF       Category = "NSF"
	CategoryCancelled Category = "CANCELLED"
	CategoryOther     Category = "OTHER"
)

// Categories lists every bucket in display order.
var Categories = []Category{CategoryActive, CategoryNSF, CategoryCancelled, CategoryOther}

// Categorize derives the status bucket from a raw status value.
// Matching is case-insensitive substring matching; CANCELLED terms include
// the "NEEDS ROL" back-office marker. On compound statuses CANCELLED takes
// precedence over NSF, which takes precedence over ACTIVE.
func Categorize(status string) Category {
	s := strings.ToUpper(strings.TrimSpace(status))
	switch {
	case strings.Contains(s, "CANCEL") || strings.Contains(s, "DROP") ||
		strings.Contains(s, "TERMIN") || strings.Contains(s, "NEEDS ROL"):
		return CategoryCancelled
	case strings.Contains(s, "NSF"):
		return CategoryNSF
	case strings.Contains(s, "ACTIVE") || strings.Contains(s, "ENROLLED"):
		return CategoryActive
	default:
		return CategoryOther
	}
}

// Record is one row of the combined sales table. Commission rows additionally
// carry a transaction id and processed/cleared dates; enrollment rows carry an
// enrolled date. Zero time values mean the date was absent or unparseable.
type Record struct {
	CustomerID    string    `json:"customer_id"`
	Agent         string    `json:"agent"`
	TransactionID string    `json:"transaction_id,omitempty"`
	Status        string    `json:"status"`
	Category      Category  `json:"category"`
	EnrolledDate  time.Time `json:"enrolled_date,omitempty"`
	ProcessedDate time.Time `json:"processed_date,omitempty"`
	ClearedDate   time.Time `json:"cleared_date,omitempty"`
	SourceSheet   string    `json:"source_sheet,omitempty"`
}

// HasEnrolledDate reports whether the record carries a parseable enrolled date.
func (r Record) HasEnrolledDate() bool {
	return !r.EnrolledDate.IsZero()
}

// MonthKey returns the YYYY-MM bucket of the enrolled date, or "" without one.
func (r Record) MonthKey() string {
	if !r.HasEnrolledDate() {
		return ""
	}
	return r.EnrolledDate.Format("2006-01")
}

// WeekKey returns the ISO-week bucket (YYYY-Wnn) of the enrolled date.
func (r Record) WeekKey() string {
	if !r.HasEnrolledDate() {
		return ""
	}
	year, week := r.EnrolledDate.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// DayOfWeek returns the weekday name of the enrolled date, or "" without one.
func (r Record) DayOfWeek() string {
	if !r.HasEnrolledDate() {
		return ""
	}
	return r.EnrolledDate.Weekday().String()
}

// dateLayouts are tried in order when coercing sheet/CSV date cells.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	"Jan 2, 2006",
	"2-Jan-2006",
	time.RFC3339,
}

// ParseDate coerces a raw cell value into a date. Unparseable values yield the
// zero time, matching the source's errors="coerce" behavior.
func ParseDate(value string) time.Time {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
