package sales

import (
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// Metrics is the headline summary over a (filtered) table.
// Active+NSF+Cancelled+Other always sums to Total.
type Metrics struct {
	Total         int     `json:"total"`
	Active        int     `json:"active"`
	NSF           int     `json:"nsf"`
	Cancelled     int     `json:"cancelled"`
	Other         int     `json:"other"`
	ActiveRate    float64 `json:"active_rate"`
	CancelledRate float64 `json:"cancelled_rate"`
}

// Summarize computes the headline metrics for a table.
func Summarize(t *Table) Metrics {
	m := Metrics{Total: t.Len()}
	for _, r := range t.Records {
		switch r.Category {
		case CategoryActive:
			m.Active++
		case CategoryNSF:
			m.NSF++
		case CategoryCancelled:
			m.Cancelled++
		default:
			m.Other++
		}
	}
	if m.Total > 0 {
		m.ActiveRate = float64(m.Active) / float64(m.Total) * 100
		m.CancelledRate = float64(m.Cancelled) / float64(m.Total) * 100
	}
	return m
}

// StatusCounts returns category → row count.
func StatusCounts(t *Table) map[string]int {
	counts := make(map[string]int)
	for _, r := range t.Records {
		counts[string(r.Category)]++
	}
	return counts
}

// MonthlyPivot returns YYYY-MM → category → row count. Records without an
// enrolled date are excluded; each month's counts sum to that month's rows.
func MonthlyPivot(t *Table) map[string]map[string]int {
	pivot := make(map[string]map[string]int)
	for _, r := range t.Records {
		month := r.MonthKey()
		if month == "" {
			continue
		}
		if pivot[month] == nil {
			pivot[month] = make(map[string]int)
		}
		pivot[month][string(r.Category)]++
	}
	return pivot
}

// MonthPoint is one month of the success-rate series.
type MonthPoint struct {
	Month       string  `json:"month"`
	Total       int     `json:"total"`
	Active      int     `json:"active"`
	SuccessRate float64 `json:"success_rate"`
}

// MonthlySuccess returns the per-month success-rate series, sorted by month.
func MonthlySuccess(t *Table) []MonthPoint {
	byMonth := make(map[string]*MonthPoint)
	for _, r := range t.Records {
		month := r.MonthKey()
		if month == "" {
			continue
		}
		point, ok := byMonth[month]
		if !ok {
			point = &MonthPoint{Month: month}
			byMonth[month] = point
		}
		point.Total++
		if r.Category == CategoryActive {
			point.Active++
		}
	}

	series := make([]MonthPoint, 0, len(byMonth))
	for _, point := range byMonth {
		if point.Total > 0 {
			point.SuccessRate = float64(point.Active) / float64(point.Total) * 100
		}
		series = append(series, *point)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Month < series[j].Month })
	return series
}

// WeekPoint is one ISO week of the success-rate series.
type WeekPoint struct {
	Week        string  `json:"week"`
	Total       int     `json:"total"`
	Active      int     `json:"active"`
	SuccessRate float64 `json:"success_rate"`
}

// WeeklySuccess returns the per-ISO-week success-rate series, sorted by week.
func WeeklySuccess(t *Table) []WeekPoint {
	byWeek := make(map[string]*WeekPoint)
	for _, r := range t.Records {
		week := r.WeekKey()
		if week == "" {
			continue
		}
		point, ok := byWeek[week]
		if !ok {
			point = &WeekPoint{Week: week}
			byWeek[week] = point
		}
		point.Total++
		if r.Category == CategoryActive {
			point.Active++
		}
	}

	series := make([]WeekPoint, 0, len(byWeek))
	for _, point := range byWeek {
		if point.Total > 0 {
			point.SuccessRate = float64(point.Active) / float64(point.Total) * 100
		}
		series = append(series, *point)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Week < series[j].Week })
	return series
}

// DayPoint is one weekday of the enrollment distribution.
type DayPoint struct {
	Day         string  `json:"day"`
	Total       int     `json:"total"`
	Active      int     `json:"active"`
	SuccessRate float64 `json:"success_rate"`
}

// weekdayOrder lists the distribution buckets Monday first.
var weekdayOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// WeekdayBreakdown aggregates dated enrollments by day of week, Monday first.
// Every weekday appears in the result, including empty ones.
func WeekdayBreakdown(t *Table) []DayPoint {
	byDay := make(map[string]*DayPoint, len(weekdayOrder))
	breakdown := make([]DayPoint, len(weekdayOrder))
	for i, day := range weekdayOrder {
		breakdown[i] = DayPoint{Day: day}
		byDay[day] = &breakdown[i]
	}

	for _, r := range t.Records {
		day := r.DayOfWeek()
		if day == "" {
			continue
		}
		point := byDay[day]
		point.Total++
		if r.Category == CategoryActive {
			point.Active++
		}
	}

	for i := range breakdown {
		if breakdown[i].Total > 0 {
			breakdown[i].SuccessRate = float64(breakdown[i].Active) / float64(breakdown[i].Total) * 100
		}
	}
	return breakdown
}

// TrendSlope fits a least-squares line through the success-rate series and
// returns its slope in percentage points per month. Needs two points.
func TrendSlope(series []MonthPoint) float64 {
	if len(series) < 2 {
		return 0
	}
	xs := make([]float64, len(series))
	ys := make([]float64, len(series))
	for i, point := range series {
		xs[i] = float64(i)
		ys[i] = point.SuccessRate
	}
	_, beta := stat.LinearRegression(xs, ys, nil, false)
	return beta
}

// AgentPerformance is the per-agent breakdown.
type AgentPerformance struct {
	Agent       string  `json:"agent"`
	Total       int     `json:"total"`
	Active      int     `json:"active"`
	NSF         int     `json:"nsf"`
	Cancelled   int     `json:"cancelled"`
	SuccessRate float64 `json:"success_rate"`
}

// AgentBreakdown computes per-agent totals and success rates, sorted by
// success rate (descending), ties broken by name.
func AgentBreakdown(t *Table) []AgentPerformance {
	byAgent := make(map[string]*AgentPerformance)
	for _, r := range t.Records {
		if r.Agent == "" {
			continue
		}
		perf, ok := byAgent[r.Agent]
		if !ok {
			perf = &AgentPerformance{Agent: r.Agent}
			byAgent[r.Agent] = perf
		}
		perf.Total++
		switch r.Category {
		case CategoryActive:
			perf.Active++
		case CategoryNSF:
			perf.NSF++
		case CategoryCancelled:
			perf.Cancelled++
		}
	}

	breakdown := make([]AgentPerformance, 0, len(byAgent))
	for _, perf := range byAgent {
		if perf.Total > 0 {
			perf.SuccessRate = float64(perf.Active) / float64(perf.Total) * 100
		}
		breakdown = append(breakdown, *perf)
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].SuccessRate != breakdown[j].SuccessRate {
			return breakdown[i].SuccessRate > breakdown[j].SuccessRate
		}
		return breakdown[i].Agent < breakdown[j].Agent
	})
	return breakdown
}

// FleetSummary aggregates the agent success rates.
type FleetSummary struct {
	Agents     int     `json:"agents"`
	MeanRate   float64 `json:"mean_rate"`
	MedianRate float64 `json:"median_rate"`
	StdDevRate float64 `json:"stddev_rate"`
}

// SummarizeAgents computes mean/median/stddev of the agent success rates.
func SummarizeAgents(breakdown []AgentPerformance) FleetSummary {
	summary := FleetSummary{Agents: len(breakdown)}
	if len(breakdown) == 0 {
		return summary
	}

	rates := make([]float64, len(breakdown))
	for i, perf := range breakdown {
		rates[i] = perf.SuccessRate
	}

	if mean, err := stats.Mean(rates); err == nil {
		summary.MeanRate = mean
	}
	if median, err := stats.Median(rates); err == nil {
		summary.MedianRate = median
	}
	if stddev, err := stats.StandardDeviation(rates); err == nil {
		summary.StdDevRate = stddev
	}
	return summary
}
