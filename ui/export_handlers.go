package ui

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"salesboard/adapters/excel"
	"salesboard/domain/sales"
)

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// handleExportCSV streams the filtered table as a CSV download.
func (s *Server) handleExportCSV(c *gin.Context) {
	table, err := s.loader.Table(c.Request.Context())
	if err != nil {
		c.String(http.StatusBadGateway, "Data load error: %v", err)
		return
	}

	filtered := table.Apply(filterFromQuery(c))

	c.Header("Content-Disposition", `attachment; filename="filtered_data.csv"`)
	c.Header("Content-Type", "text/csv")
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	header := []string{
		sales.ColCustomerID, sales.ColAgent, sales.ColTransactionID, sales.ColStatus,
		sales.ColCategory, sales.ColEnrolledDate, sales.ColProcessedDate, sales.ColClearedDate,
		sales.ColSourceSheet,
	}
	if err := w.Write(header); err != nil {
		return
	}

	for _, r := range filtered.Records {
		row := []string{
			r.CustomerID,
			r.Agent,
			r.TransactionID,
			r.Status,
			string(r.Category),
			formatDate(r.EnrolledDate),
			formatDate(r.ProcessedDate),
			formatDate(r.ClearedDate),
			r.SourceSheet,
		}
		if err := w.Write(row); err != nil {
			return
		}
	}
	w.Flush()
}

// handleAgentReport streams the per-agent Excel report.
func (s *Server) handleAgentReport(c *gin.Context) {
	agent := c.Param("agent")

	table, err := s.loader.Table(c.Request.Context())
	if err != nil {
		c.String(http.StatusBadGateway, "Data load error: %v", err)
		return
	}

	filter := filterFromQuery(c)
	filter.Agent = agent
	agentTable := table.Apply(filter)
	if agentTable.Len() == 0 {
		c.String(http.StatusNotFound, "No contracts found for agent %s", agent)
		return
	}

	report, err := excel.BuildAgentReport(agent, agentTable)
	if err != nil {
		c.String(http.StatusInternalServerError, "Report generation failed: %v", err)
		return
	}

	safeName := strings.ReplaceAll(strings.ToLower(agent), " ", "_")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="agent_report_%s.xlsx"`, safeName))
	c.Data(http.StatusOK, xlsxContentType, report.Bytes())
}
