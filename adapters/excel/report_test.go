package excel

import (
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"salesboard/domain/sales"
)

func TestBuildAgentReport(t *testing.T) {
	table := sales.NewTable([]sales.Record{
		{CustomerID: "C-1", Agent: "ALICE", Status: "ACTIVE", Category: sales.CategoryActive,
			EnrolledDate: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), SourceSheet: "PAC"},
		{CustomerID: "C-2", Agent: "ALICE", Status: "CANCELLED", Category: sales.CategoryCancelled, SourceSheet: "MLG"},
	})

	buf, err := BuildAgentReport("ALICE", table)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("Report is not a readable workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Summary" || sheets[1] != "Contract Details" {
		t.Errorf("Expected Summary and Contract Details sheets, got %v", sheets)
	}

	total, err := f.GetCellValue("Summary", "B2")
	if err != nil || total != "2" {
		t.Errorf("Expected total 2 in B2, got %q (%v)", total, err)
	}

	rows, err := f.GetRows("Contract Details")
	if err != nil {
		t.Fatalf("Failed to read details: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected header plus 2 detail rows, got %d", len(rows))
	}
	if rows[1][0] != "C-1" || rows[1][4] != "2024-01-05" {
		t.Errorf("Unexpected first detail row: %v", rows[1])
	}
	// record without an enrolled date leaves the cell blank
	if len(rows[2]) > 4 && rows[2][4] != "" {
		t.Errorf("Expected blank enrolled date, got %q", rows[2][4])
	}
}

func TestBuildAgentReportEmptyTable(t *testing.T) {
	buf, err := BuildAgentReport("NOBODY", sales.NewTable(nil))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("Report is not a readable workbook: %v", err)
	}
	defer f.Close()

	total, _ := f.GetCellValue("Summary", "B2")
	if total != "0" {
		t.Errorf("Expected zero total, got %q", total)
	}
}
