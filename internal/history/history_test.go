package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	logx "cronlint/pkg/logx"
)

func TestOpenDisabled(t *testing.T) {
	t.Parallel()
	st, err := Open(Config{}, logx.Nop())
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if st != nil {
		t.Fatal("empty path should disable the store")
	}
	// nil store is safe to use
	if err := st.Close(); err != nil {
		t.Fatalf("Close on nil store: %v", err)
	}
	if err := st.AppendRun(context.Background(), Run{}); !errors.Is(err, ErrDisabled) {
		t.Fatalf("AppendRun on nil store = %v, want ErrDisabled", err)
	}
}

func TestAppendAndRecentRuns(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "history.db")
	st, err := Open(Config{Path: path, BusyTimeout: time.Second}, logx.Nop())
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	defer st.Close()

	ctx := context.Background()
	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		rec := Run{
			At:     base.Add(time.Duration(i) * time.Hour),
			Source: "jobs.json",
			Jobs:   4,
			Errors: i,
			Warns:  1,
			Infos:  2,
		}
		if err := st.AppendRun(ctx, rec); err != nil {
			t.Fatalf("AppendRun: %v", err)
		}
	}

	runs, err := st.RecentRuns(ctx, 2)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	// newest first
	if !runs[0].At.After(runs[1].At) {
		t.Fatalf("runs not newest-first: %v then %v", runs[0].At, runs[1].At)
	}
	if runs[0].Errors != 2 || runs[0].Source != "jobs.json" || runs[0].Jobs != 4 {
		t.Fatalf("unexpected run record: %+v", runs[0])
	}
}
