package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"salesboard/domain/sales"
)

const (
	summarySheet = "Summary"
	detailsSheet = "Contract Details"
)

// BuildAgentReport renders the downloadable per-agent workbook: a Summary
// sheet with headline metrics and a Contract Details sheet listing every
// record for the agent.
func BuildAgentReport(agent string, table *sales.Table) (*bytes.Buffer, error) {
	metrics := sales.Summarize(table)

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(detailsSheet); err != nil {
		return nil, fmt.Errorf("failed to create details sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4CAF50"}},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	percentStyle, err := f.NewStyle(&excelize.Style{NumFmt: 10}) // 0.00%
	if err != nil {
		return nil, fmt.Errorf("failed to create percent style: %w", err)
	}

	// Summary sheet
	summaryRows := [][]interface{}{
		{"Metric", "Value"},
		{"Total Contracts", metrics.Total},
		{"Active Contracts", metrics.Active},
		{"NSF Cases", metrics.NSF},
		{"Cancelled Contracts", metrics.Cancelled},
		{"Success Rate (%)", metrics.ActiveRate / 100},
	}
	for i, row := range summaryRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write summary row: %w", err)
		}
	}
	if err := f.SetCellStyle(summarySheet, "A1", "B1", headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style summary header: %w", err)
	}
	if err := f.SetCellStyle(summarySheet, "B6", "B6", percentStyle); err != nil {
		return nil, fmt.Errorf("failed to style success rate: %w", err)
	}
	_ = f.SetColWidth(summarySheet, "A", "A", 24)

	// Contract details sheet
	detailHeaders := []interface{}{"Customer ID", "Agent", "Status", "Category", "Enrolled Date", "Source Sheet"}
	if err := f.SetSheetRow(detailsSheet, "A1", &detailHeaders); err != nil {
		return nil, fmt.Errorf("failed to write details header: %w", err)
	}
	endHeader, _ := excelize.CoordinatesToCellName(len(detailHeaders), 1)
	if err := f.SetCellStyle(detailsSheet, "A1", endHeader, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style details header: %w", err)
	}

	for i, r := range table.Records {
		enrolled := ""
		if r.HasEnrolledDate() {
			enrolled = r.EnrolledDate.Format("2006-01-02")
		}
		row := []interface{}{r.CustomerID, r.Agent, r.Status, string(r.Category), enrolled, r.SourceSheet}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(detailsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write details row: %w", err)
		}
	}
	_ = f.SetColWidth(detailsSheet, "A", "F", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render report for %s: %w", agent, err)
	}
	return buf, nil
}
