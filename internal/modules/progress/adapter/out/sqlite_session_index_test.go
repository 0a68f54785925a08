package out_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	progressout "flowrpg/internal/modules/progress/adapter/out"
	"flowrpg/internal/modules/progress/domain"
)

func TestSQLiteSessionIndexSummary(t *testing.T) {
	t.Parallel()
	index, err := progressout.NewSQLiteSessionIndex(filepath.Join(t.TempDir(), "flowrpg.db"))
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	defer index.Close()
	ctx := context.Background()
	at := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	records := []domain.SessionRecord{
		{ID: "s1", Date: "2026-02-20", FocusTime: 1500, Completed: true},
		{ID: "s2", Date: "2026-03-01", FocusTime: 1800, Completed: true},
		{ID: "s3", Date: "2026-03-02", FocusTime: 600, Completed: false},
		{ID: "s4", Date: "2026-03-02", FocusTime: 1500, Completed: true},
	}
	for _, rec := range records {
		if err := index.Record(ctx, rec, at); err != nil {
			t.Fatalf("record %s: %v", rec.ID, err)
		}
	}
	// Re-recording an id replaces the row.
	if err := index.Record(ctx, domain.SessionRecord{ID: "s3", Date: "2026-03-02", FocusTime: 600, Completed: false}, at); err != nil {
		t.Fatalf("re-record: %v", err)
	}

	st, err := index.Summary(ctx, "2026-03-02", "2026-02-24")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if st.TotalSessions != 4 || st.CompletedSessions != 3 {
		t.Fatalf("unexpected counts: %+v", st)
	}
	if st.CompletedToday != 1 {
		t.Fatalf("expected one completed today, got %d", st.CompletedToday)
	}
	if st.AverageFocusSec != 1600 {
		t.Fatalf("expected average 1600, got %d", st.AverageFocusSec)
	}
	if st.FocusSinceSec != 3300 {
		t.Fatalf("expected 3300 focus since, got %d", st.FocusSinceSec)
	}

	if err := index.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	st, err = index.Summary(ctx, "2026-03-02", "2026-02-24")
	if err != nil {
		t.Fatalf("summary after reset: %v", err)
	}
	if st.TotalSessions != 0 || st.AverageFocusSec != 0 {
		t.Fatalf("expected empty summary, got %+v", st)
	}
}
