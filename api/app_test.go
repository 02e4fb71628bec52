package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesboard/app"
	"salesboard/domain/sales"
)

type stubSource struct {
	table *sales.Table
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Fetch(ctx context.Context) (*sales.Table, error) {
	return s.table, nil
}

func newTestApp(table *sales.Table) *App {
	return NewApp(app.NewLoader(&stubSource{table: table}, time.Hour, nil))
}

func smallTable() *sales.Table {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	return sales.NewTable([]sales.Record{
		{CustomerID: "C-1", Agent: "ALICE", Status: "ACTIVE", Category: sales.CategoryActive, EnrolledDate: day(5), SourceSheet: "PAC"},
		{CustomerID: "C-2", Agent: "BOB", Status: "NSF", Category: sales.CategoryNSF, EnrolledDate: day(10), SourceSheet: "MLG"},
		{CustomerID: "C-3", Agent: "BOB", Status: "CANCELLED", Category: sales.CategoryCancelled, EnrolledDate: day(15), SourceSheet: "MLG"},
	})
}

func doRequest(t *testing.T, a *App, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, req)
	return w
}

func TestDataResponseShape(t *testing.T) {
	a := newTestApp(smallTable())
	w := doRequest(t, a, "/api/data")
	require.Equal(t, http.StatusOK, w.Code)

	var payload map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))

	// top-level keys of the combined payload
	for _, key := range []string{"metrics", "status_counts", "monthly_data", "data"} {
		assert.Contains(t, payload, key)
	}

	var metrics MetricsPayload
	require.NoError(t, json.Unmarshal(payload["metrics"], &metrics))
	assert.Equal(t, 3, metrics.Total)
	assert.Equal(t, 1, metrics.Active)
	assert.Equal(t, 1, metrics.NSF)
	assert.Equal(t, 1, metrics.Cancelled)

	var monthly map[string]map[string]int
	require.NoError(t, json.Unmarshal(payload["monthly_data"], &monthly))
	assert.Equal(t, 1, monthly["2024-01"]["ACTIVE"])

	var records []sales.Record
	require.NoError(t, json.Unmarshal(payload["data"], &records))
	assert.Len(t, records, 3)
}

func TestDataRecordCap(t *testing.T) {
	records := make([]sales.Record, maxDataRecords+50)
	for i := range records {
		records[i] = sales.Record{
			CustomerID: fmt.Sprintf("C-%d", i),
			Category:   sales.CategoryActive,
		}
	}
	a := newTestApp(sales.NewTable(records))

	w := doRequest(t, a, "/api/data")
	require.Equal(t, http.StatusOK, w.Code)

	var payload DataResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))

	// metrics reflect the full filtered set, the record array is capped
	assert.Equal(t, maxDataRecords+50, payload.Metrics.Total)
	assert.Len(t, payload.Data, maxDataRecords)
}

func TestDataFiltered(t *testing.T) {
	a := newTestApp(smallTable())
	w := doRequest(t, a, "/api/data?sources=MLG&categories=NSF")
	require.Equal(t, http.StatusOK, w.Code)

	var payload DataResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, 1, payload.Metrics.Total)
	require.Len(t, payload.Data, 1)
	assert.Equal(t, "C-2", payload.Data[0].CustomerID)
}

func TestDataDateWindow(t *testing.T) {
	a := newTestApp(smallTable())
	w := doRequest(t, a, "/api/data?start=2024-01-10&end=2024-01-15")
	require.Equal(t, http.StatusOK, w.Code)

	var payload DataResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	// end date is inclusive
	assert.Equal(t, 2, payload.Metrics.Total)
}

func TestHealthz(t *testing.T) {
	a := newTestApp(smallTable())
	w := doRequest(t, a, "/healthz")
	require.Equal(t, http.StatusOK, w.Code)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "ok", payload["status"])
}
