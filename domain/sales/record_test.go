package sales

import (
	"testing"
	"time"
)

// TestCategorize tests status bucket derivation
func TestCategorize(t *testing.T) {
	tests := []struct {
		status   string
		expected Category
	}{
		{"ACTIVE", CategoryActive},
		{"active", CategoryActive},
		{"  Active  ", CategoryActive},
		{"ENROLLED", CategoryActive},
		{"RE-ENROLLED", CategoryActive},
		{"NSF", CategoryNSF},
		{"NSF 2ND ATTEMPT", CategoryNSF},
		{"CANCELLED", CategoryCancelled},
		{"Cancel Pending", CategoryCancelled},
		{"DROPPED", CategoryCancelled},
		{"TERMINATED", CategoryCancelled},
		{"NEEDS ROL", CategoryCancelled},
		{"needs rol - follow up", CategoryCancelled},
		{"PENDING", CategoryOther},
		{"", CategoryOther},
		{"UNKNOWN", CategoryOther},
		// compound statuses: CANCELLED wins over NSF, NSF over ACTIVE
		{"CANCELLED - NSF", CategoryCancelled},
		{"ENROLLED - CANCELLED", CategoryCancelled},
		{"NSF / ACTIVE", CategoryNSF},
	}

	for _, test := range tests {
		if got := Categorize(test.status); got != test.expected {
			t.Errorf("Categorize(%q) = %s, expected %s", test.status, got, test.expected)
		}
	}
}

// TestParseDate tests date coercion across the supported layouts
func TestParseDate(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Time
	}{
		{"2024-03-15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"3/15/2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"03/15/2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"Mar 15, 2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"2024-03-15 10:30:00", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"", time.Time{}},
		{"not a date", time.Time{}},
		{"N/A", time.Time{}},
	}

	for _, test := range tests {
		got := ParseDate(test.input)
		if !got.Equal(test.expected) {
			t.Errorf("ParseDate(%q) = %v, expected %v", test.input, got, test.expected)
		}
	}
}

// TestRecordMonthKey tests the monthly bucket key
func TestRecordMonthKey(t *testing.T) {
	dated := Record{EnrolledDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)}
	if got := dated.MonthKey(); got != "2024-03" {
		t.Errorf("Expected month key 2024-03, got %s", got)
	}

	undated := Record{}
	if got := undated.MonthKey(); got != "" {
		t.Errorf("Expected empty month key for undated record, got %s", got)
	}
}

// TestRecordWeekKey tests the ISO-week bucket key
func TestRecordWeekKey(t *testing.T) {
	// 2024-01-01 is a Monday, ISO week 1
	rec := Record{EnrolledDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	if got := rec.WeekKey(); got != "2024-W01" {
		t.Errorf("Expected week key 2024-W01, got %s", got)
	}
}
