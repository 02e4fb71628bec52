package ui

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"salesboard/domain/sales"
)

// previewRows caps the record table rendered on the data explorer tab.
const previewRows = 100

func (s *Server) handleIndex(c *gin.Context) {
	table, err := s.loader.Table(c.Request.Context())
	if err != nil {
		log.Printf("[Index] Data load error: %v", err)
		s.renderTemplate(c, "index.html", gin.H{
			"Title": "Salesboard",
			"Error": err.Error(),
		})
		return
	}

	filter := filterFromQuery(c)
	filtered := table.Apply(filter)

	metrics := sales.Summarize(filtered)
	series := sales.MonthlySuccess(filtered)
	agents := sales.AgentBreakdown(filtered)

	minDate, maxDate, hasDates := table.DateRange()
	dateRange := gin.H{}
	if hasDates {
		dateRange = gin.H{
			"Min": minDate.Format(dateParamLayout),
			"Max": maxDate.Format(dateParamLayout),
		}
	}

	preview := filtered.Records
	if len(preview) > previewRows {
		preview = preview[:previewRows]
	}

	status := s.loader.Status()

	s.renderTemplate(c, "index.html", gin.H{
		"Title":        "Salesboard",
		"Metrics":      metrics,
		"StatusCounts": sales.StatusCounts(filtered),
		"Monthly":      series,
		"TrendSlope":   sales.TrendSlope(series),
		"Agents":       agents,
		"Fleet":        sales.SummarizeAgents(agents),
		"Sources":      table.Sources(),
		"DateRange":    dateRange,
		"Preview":      preview,
		"PreviewMore":  filtered.Len() - len(preview),
		"FilteredRows": filtered.Len(),
		"LoadedAt":     status.LoadedAt.Format("2006-01-02 15:04"),
		"Query":        c.Request.URL.RawQuery,
		"APIHelp":      s.apiHelpHTML,
	})
}

func (s *Server) handleFragmentMetrics(c *gin.Context) {
	table, err := s.loader.Table(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "Data load error: %v", err)
		return
	}

	filtered := table.Apply(filterFromQuery(c))
	s.renderTemplate(c, "metric_cards.html", gin.H{
		"Metrics": sales.Summarize(filtered),
	})
}

func (s *Server) handleFragmentAgents(c *gin.Context) {
	table, err := s.loader.Table(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "Data load error: %v", err)
		return
	}

	filtered := table.Apply(filterFromQuery(c))
	s.renderTemplate(c, "agent_rows.html", gin.H{
		"Agents": sales.AgentBreakdown(filtered),
	})
}

func (s *Server) handleMetrics(c *gin.Context) {
	table, err := s.loader.Table(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	filtered := table.Apply(filterFromQuery(c))
	c.JSON(http.StatusOK, gin.H{
		"metrics":       sales.Summarize(filtered),
		"status_counts": sales.StatusCounts(filtered),
	})
}

func (s *Server) handleMonthly(c *gin.Context) {
	table, err := s.loader.Table(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	filtered := table.Apply(filterFromQuery(c))
	series := sales.MonthlySuccess(filtered)
	c.JSON(http.StatusOK, gin.H{
		"monthly_data": sales.MonthlyPivot(filtered),
		"success":      series,
		"trend_slope":  sales.TrendSlope(series),
		"weekly":       sales.WeeklySuccess(filtered),
		"weekday":      sales.WeekdayBreakdown(filtered),
	})
}

func (s *Server) handleAgents(c *gin.Context) {
	table, err := s.loader.Table(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	filtered := table.Apply(filterFromQuery(c))
	agents := sales.AgentBreakdown(filtered)
	c.JSON(http.StatusOK, gin.H{
		"agents": agents,
		"fleet":  sales.SummarizeAgents(agents),
	})
}

func (s *Server) handleData(c *gin.Context) {
	table, err := s.loader.Table(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	filtered := table.Apply(filterFromQuery(c))
	records := filtered.Records
	if len(records) > previewRows {
		records = records[:previewRows]
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   filtered.Len(),
		"records": records,
	})
}

func (s *Server) handleStatus(c *gin.Context) {
	response := gin.H{"load": s.loader.Status()}

	if s.snapshots != nil {
		recent, err := s.snapshots.Recent(c.Request.Context(), 10)
		if err != nil {
			log.Printf("[Status] Failed to list snapshots: %v", err)
		} else {
			response["history"] = recent
		}
	}

	c.JSON(http.StatusOK, response)
}

func (s *Server) handleRefresh(c *gin.Context) {
	start := time.Now()
	table, err := s.loader.Refresh(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rows":        table.Len(),
		"duration_ms": time.Since(start).Milliseconds(),
	})
}
