package ui

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"salesboard/domain/sales"
)

const dateParamLayout = "2006-01-02"

// filterFromQuery builds the record filter from the shared query parameters:
// start, end (YYYY-MM-DD, end inclusive), categories and sources
// (comma-separated), agent.
func filterFromQuery(c *gin.Context) sales.Filter {
	f := sales.Filter{Agent: strings.TrimSpace(c.Query("agent"))}

	if start := c.Query("start"); start != "" {
		if t, err := time.Parse(dateParamLayout, start); err == nil {
			f.Start = t
		}
	}
	if end := c.Query("end"); end != "" {
		if t, err := time.Parse(dateParamLayout, end); err == nil {
			// Inclusive end date.
			f.End = t.Add(24*time.Hour - time.Nanosecond)
		}
	}

	if categories := c.Query("categories"); categories != "" {
		for _, raw := range strings.Split(categories, ",") {
			name := strings.ToUpper(strings.TrimSpace(raw))
			if name == "" {
				continue
			}
			f.Categories = append(f.Categories, sales.Category(name))
		}
	}

	if sources := c.Query("sources"); sources != "" {
		for _, raw := range strings.Split(sources, ",") {
			if name := strings.TrimSpace(raw); name != "" {
				f.Sources = append(f.Sources, name)
			}
		}
	}

	return f
}
