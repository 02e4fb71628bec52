package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"salesboard/domain/sales"
)

// fakeSource counts fetches and returns a canned table or error.
type fakeSource struct {
	mu      sync.Mutex
	fetches int
	table   *sales.Table
	err     error
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Fetch(ctx context.Context) (*sales.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}
	return f.table, nil
}

func (f *fakeSource) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

type fakeRecorder struct {
	mu      sync.Mutex
	sources []string
	rows    []int
}

func (f *fakeRecorder) Record(ctx context.Context, source string, rowCount int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sources = append(f.sources, source)
	f.rows = append(f.rows, rowCount)
	return nil
}

func testRecords(n int) []sales.Record {
	records := make([]sales.Record, n)
	for i := range records {
		records[i] = sales.Record{CustomerID: "C", Category: sales.CategoryActive}
	}
	return records
}

func TestLoaderCachesWithinTTL(t *testing.T) {
	source := &fakeSource{table: sales.NewTable(testRecords(3))}
	loader := NewLoader(source, time.Minute, nil)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		table, err := loader.Table(ctx)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if table.Len() != 3 {
			t.Fatalf("Expected 3 rows, got %d", table.Len())
		}
	}

	if got := source.fetchCount(); got != 1 {
		t.Errorf("Expected a single fetch within TTL, got %d", got)
	}
}

func TestLoaderRefetchesAfterTTL(t *testing.T) {
	source := &fakeSource{table: sales.NewTable(testRecords(1))}
	loader := NewLoader(source, time.Nanosecond, nil)

	ctx := context.Background()
	if _, err := loader.Table(ctx); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, err := loader.Table(ctx); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got := source.fetchCount(); got != 2 {
		t.Errorf("Expected refetch after TTL expiry, got %d fetches", got)
	}
}

func TestLoaderRefreshForcesFetch(t *testing.T) {
	source := &fakeSource{table: sales.NewTable(testRecords(2))}
	loader := NewLoader(source, time.Hour, nil)

	ctx := context.Background()
	if _, err := loader.Table(ctx); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := loader.Refresh(ctx); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got := source.fetchCount(); got != 2 {
		t.Errorf("Expected Refresh to bypass the cache, got %d fetches", got)
	}
}

func TestLoaderInvalidate(t *testing.T) {
	source := &fakeSource{table: sales.NewTable(testRecords(2))}
	loader := NewLoader(source, time.Hour, nil)

	ctx := context.Background()
	if _, err := loader.Table(ctx); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	loader.Invalidate()
	if _, err := loader.Table(ctx); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got := source.fetchCount(); got != 2 {
		t.Errorf("Expected refetch after Invalidate, got %d fetches", got)
	}
}

func TestLoaderPropagatesFetchError(t *testing.T) {
	source := &fakeSource{err: errors.New("network down")}
	loader := NewLoader(source, time.Minute, nil)

	if _, err := loader.Table(context.Background()); err == nil {
		t.Fatal("Expected fetch error to propagate")
	}

	status := loader.Status()
	if status.Loaded {
		t.Error("Expected unloaded status after failed fetch")
	}
}

func TestLoaderRecordsSnapshots(t *testing.T) {
	source := &fakeSource{table: sales.NewTable(testRecords(4))}
	recorder := &fakeRecorder{}
	loader := NewLoader(source, time.Hour, recorder)

	if _, err := loader.Table(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	if len(recorder.sources) != 1 || recorder.sources[0] != "fake" || recorder.rows[0] != 4 {
		t.Errorf("Expected one snapshot (fake, 4), got %v %v", recorder.sources, recorder.rows)
	}
}

func TestLoaderStatus(t *testing.T) {
	source := &fakeSource{table: sales.NewTable(testRecords(2))}
	loader := NewLoader(source, time.Hour, nil)

	status := loader.Status()
	if status.Loaded || status.Source != "fake" {
		t.Errorf("Unexpected cold status: %+v", status)
	}

	if _, err := loader.Table(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	status = loader.Status()
	if !status.Loaded || status.Rows != 2 || status.LoadedAt.IsZero() {
		t.Errorf("Unexpected warm status: %+v", status)
	}
}
