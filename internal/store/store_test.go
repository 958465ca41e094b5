package store

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/golftaweerak/sciquiz/internal/question"
	"github.com/golftaweerak/sciquiz/internal/session"
	"github.com/golftaweerak/sciquiz/internal/timer"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared", zerolog.Nop())
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testSnapshot() *session.Snapshot {
	return &session.Snapshot{
		CurrentQuestionIndex: 1,
		Score:                1,
		ShuffledQuestions: []question.Question{
			{ID: "q1", Text: "1+1?", Type: question.TypeSingleChoice, Options: []string{"2", "3"}, Answer: question.AnswerKey{"2"}},
			{ID: "q2", Text: "2+2?", Type: question.TypeSingleChoice, Options: []string{"4", "5"}, Answer: question.AnswerKey{"4"}},
		},
		UserAnswers: []*session.Answer{
			{QuestionID: "q1", Selected: []string{"2"}, Correct: []string{"2"}, IsCorrect: true},
			nil,
		},
		TimerMode: timer.ModeNone,
	}
}

func TestOpenCreatesSchema(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{"sessions", "results", "prefs"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q: %v", table, err)
		}
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is only meaningful with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSessionSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.Sessions()
	ctx := context.Background()

	// No snapshot yet.
	snap, err := repo.Load(ctx, "default")
	if err != nil {
		t.Fatalf("load (empty): %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot when none exist")
	}

	if err := repo.Save(ctx, "default", testSnapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}

	snap, err = repo.Load(ctx, "default")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if snap == nil {
		t.Fatal("expected non-nil snapshot")
	}
	if snap.CurrentQuestionIndex != 1 {
		t.Errorf("index = %d, want 1", snap.CurrentQuestionIndex)
	}
	if snap.Score != 1 {
		t.Errorf("score = %d, want 1", snap.Score)
	}
	if len(snap.ShuffledQuestions) != 2 {
		t.Fatalf("questions = %d, want 2", len(snap.ShuffledQuestions))
	}
	if snap.UserAnswers[1] != nil {
		t.Error("expected nil answer slot to survive round trip")
	}
	if snap.LastAttemptTimestamp == 0 {
		t.Error("expected save to stamp lastAttemptTimestamp")
	}
}

func TestSessionSaveReplacesExisting(t *testing.T) {
	s := openTestStore(t)
	repo := s.Sessions()
	ctx := context.Background()

	first := testSnapshot()
	if err := repo.Save(ctx, "default", first); err != nil {
		t.Fatalf("save first: %v", err)
	}

	second := testSnapshot()
	second.CurrentQuestionIndex = 0
	second.Score = 0
	if err := repo.Save(ctx, "default", second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	snap, err := repo.Load(ctx, "default")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if snap.Score != 0 {
		t.Errorf("score = %d, want 0 (latest write wins)", snap.Score)
	}

	var count int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM sessions").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("session rows = %d, want 1", count)
	}
}

func TestSessionLoadDiscardsCorruptRow(t *testing.T) {
	s := openTestStore(t)
	repo := s.Sessions()
	ctx := context.Background()

	_, err := s.DB().Exec(
		"INSERT INTO sessions (key, data, updated_at) VALUES (?, ?, ?)",
		"default", "{not json", 0)
	if err != nil {
		t.Fatalf("insert corrupt row: %v", err)
	}

	snap, err := repo.Load(ctx, "default")
	if err != nil {
		t.Fatalf("load corrupt: %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot for corrupt row")
	}

	// The corrupt row must be gone.
	var count int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM sessions").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("session rows = %d, want 0 after discard", count)
	}
}

func TestSessionLoadDiscardsInvalidSnapshot(t *testing.T) {
	s := openTestStore(t)
	repo := s.Sessions()
	ctx := context.Background()

	// Valid JSON, invalid snapshot: index out of range.
	_, err := s.DB().Exec(
		"INSERT INTO sessions (key, data, updated_at) VALUES (?, ?, ?)",
		"default", `{"currentQuestionIndex":9,"shuffledQuestions":[],"userAnswers":[]}`, 0)
	if err != nil {
		t.Fatalf("insert invalid row: %v", err)
	}

	snap, err := repo.Load(ctx, "default")
	if err != nil {
		t.Fatalf("load invalid: %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot for invalid row")
	}
}

func TestSessionClearIdempotent(t *testing.T) {
	s := openTestStore(t)
	repo := s.Sessions()
	ctx := context.Background()

	if err := repo.Clear(ctx, "default"); err != nil {
		t.Fatalf("clear (empty): %v", err)
	}

	if err := repo.Save(ctx, "default", testSnapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Clear(ctx, "default"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := repo.Clear(ctx, "default"); err != nil {
		t.Fatalf("clear again: %v", err)
	}

	snap, err := repo.Load(ctx, "default")
	if err != nil {
		t.Fatalf("load after clear: %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot after clear")
	}
}

func TestResultsAppendAndList(t *testing.T) {
	s := openTestStore(t)
	repo := s.Results()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := repo.Append(ctx, Result{
			Title:        "Physics",
			Score:        i + 1,
			Total:        10,
			Percentage:   float64(i+1) * 10,
			DurationSecs: 60,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	results, err := repo.List(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	for _, res := range results {
		if res.ID == "" {
			t.Error("expected assigned result id")
		}
		if res.FinishedAt.IsZero() {
			t.Error("expected finished timestamp")
		}
	}

	limited, err := repo.List(ctx, 2)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limited results = %d, want 2", len(limited))
	}
}

func TestResultsClear(t *testing.T) {
	s := openTestStore(t)
	repo := s.Results()
	ctx := context.Background()

	if err := repo.Append(ctx, Result{Title: "Earth Science", Score: 5, Total: 5, Percentage: 100}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	results, err := repo.List(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %d, want 0 after clear", len(results))
	}
}

func TestPrefsGetSet(t *testing.T) {
	s := openTestStore(t)
	repo := s.Prefs()
	ctx := context.Background()

	got, err := repo.GetBool(ctx, PrefSound, true)
	if err != nil {
		t.Fatalf("get (unset): %v", err)
	}
	if !got {
		t.Error("expected fallback true for unset pref")
	}

	if err := repo.SetBool(ctx, PrefSound, false); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err = repo.GetBool(ctx, PrefSound, true)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got {
		t.Error("expected stored false to override fallback")
	}
}
