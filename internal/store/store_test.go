package store

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "sdlc.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestRecordAndListRuns(t *testing.T) {
	st := openTestStore(t)
	created := time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC)

	first, err := st.RecordRun(RunParams{
		Branch:              "main",
		ShortSHA:            "0123456",
		CreatedAt:           created,
		ReportPath:          "outputs/summary_main_0123456.md",
		PDFPath:             "outputs/summary_main_0123456.pdf",
		FindingsJSON:        `[{"kind":"missing_tests"}]`,
		FindingCount:        1,
		RecommendationCount: 3,
	})
	if err != nil {
		t.Fatalf("record run: %v", err)
	}
	second, err := st.RecordRun(RunParams{
		Branch:       "feature-x",
		ShortSHA:     "89abcde",
		CreatedAt:    created.Add(time.Hour),
		ReportPath:   "outputs/summary_feature-x_89abcde.md",
		FindingsJSON: `[]`,
	})
	if err != nil {
		t.Fatalf("record run: %v", err)
	}
	if second <= first {
		t.Fatalf("expected increasing ids, got %d then %d", first, second)
	}

	runs, err := st.ListRuns(10)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Branch != "feature-x" {
		t.Fatalf("expected newest first, got %q", runs[0].Branch)
	}
	if runs[1].PDFPath.String != "outputs/summary_main_0123456.pdf" || !runs[1].PDFPath.Valid {
		t.Fatalf("unexpected pdf path: %#v", runs[1].PDFPath)
	}

	latest, err := st.LatestRun()
	if err != nil {
		t.Fatalf("latest run: %v", err)
	}
	if latest.ID != second {
		t.Fatalf("unexpected latest run: %#v", latest)
	}

	got, err := st.GetRun(first)
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if got.FindingCount != 1 || got.RecommendationCount != 3 {
		t.Fatalf("unexpected counts: %#v", got)
	}
}

func TestLatestRunEmpty(t *testing.T) {
	st := openTestStore(t)
	_, err := st.LatestRun()
	if err != sql.ErrNoRows {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestRecordRunRequiresBranch(t *testing.T) {
	st := openTestStore(t)
	if _, err := st.RecordRun(RunParams{ShortSHA: "abc"}); err == nil {
		t.Fatalf("expected error for missing branch")
	}
}
