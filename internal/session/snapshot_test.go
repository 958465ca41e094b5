package session

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/golftaweerak/sciquiz/internal/question"
	"github.com/golftaweerak/sciquiz/internal/timer"
)

func validSnapshot() *Snapshot {
	return &Snapshot{
		CurrentQuestionIndex: 1,
		Score:                1,
		ShuffledQuestions:    bankOf(3),
		UserAnswers:          []*Answer{{IsCorrect: true}, nil, nil},
		TimerMode:            timer.ModePerQuestion,
		TimeLeft:             45,
		InitialTime:          90,
		TotalTimeSpent:       120,
		LastAttemptTimestamp: 1700000000000,
	}
}

func TestSnapshotValidate_OK(t *testing.T) {
	if err := validSnapshot().Validate(); err != nil {
		t.Errorf("valid snapshot rejected: %v", err)
	}
}

func TestSnapshotValidate_Corruption(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Snapshot)
	}{
		{"answers length mismatch", func(s *Snapshot) { s.UserAnswers = s.UserAnswers[:2] }},
		{"index out of range", func(s *Snapshot) { s.CurrentQuestionIndex = 3 }},
		{"negative index", func(s *Snapshot) { s.CurrentQuestionIndex = -1 }},
		{"unknown timer mode", func(s *Snapshot) { s.TimerMode = "warp" }},
		{"unknown question type", func(s *Snapshot) { s.ShuffledQuestions[0].Type = "riddle" }},
		{"no questions", func(s *Snapshot) { s.ShuffledQuestions = nil; s.UserAnswers = nil }},
		{"negative score", func(s *Snapshot) { s.Score = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSnapshot()
			tt.mutate(s)
			err := s.Validate()
			if !errors.Is(err, ErrBadSnapshot) {
				t.Errorf("err = %v, want ErrBadSnapshot", err)
			}
		})
	}
}

func TestSnapshotValidate_Nil(t *testing.T) {
	var s *Snapshot
	if err := s.Validate(); !errors.Is(err, ErrBadSnapshot) {
		t.Errorf("err = %v, want ErrBadSnapshot", err)
	}
}

func TestSnapshotFinished(t *testing.T) {
	s := validSnapshot()
	if s.Finished() {
		t.Error("snapshot with nil answers should not be finished")
	}
	s.UserAnswers = []*Answer{{}, {}, {}}
	if !s.Finished() {
		t.Error("snapshot with all answers recorded should be finished")
	}
}

func TestSnapshot_JSONFieldNames(t *testing.T) {
	data, err := json.Marshal(validSnapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, field := range []string{
		"currentQuestionIndex", "score", "shuffledQuestions", "userAnswers",
		"timerMode", "timeLeft", "initialTime", "totalTimeSpent", "lastAttemptTimestamp",
	} {
		if _, ok := m[field]; !ok {
			t.Errorf("wire format missing field %q", field)
		}
	}
}

func TestSnapshot_RoundTrip(t *testing.T) {
	src := validSnapshot()
	data, err := json.Marshal(src)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Snapshot
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got.CurrentQuestionIndex != src.CurrentQuestionIndex || got.Score != src.Score {
		t.Errorf("index/score = %d/%d, want %d/%d",
			got.CurrentQuestionIndex, got.Score, src.CurrentQuestionIndex, src.Score)
	}
	if got.TimerMode != src.TimerMode || got.TimeLeft != src.TimeLeft || got.InitialTime != src.InitialTime {
		t.Error("timer fields did not round-trip")
	}
	if len(got.ShuffledQuestions) != len(src.ShuffledQuestions) {
		t.Fatalf("question count = %d, want %d", len(got.ShuffledQuestions), len(src.ShuffledQuestions))
	}
	if got.UserAnswers[0] == nil || !got.UserAnswers[0].IsCorrect {
		t.Error("recorded answer did not round-trip")
	}
	if got.UserAnswers[1] != nil {
		t.Error("nil answer slot must stay nil")
	}
	if err := got.Validate(); err != nil {
		t.Errorf("round-tripped snapshot failed validation: %v", err)
	}
}

func TestQuestionTypesRecognizedInSnapshot(t *testing.T) {
	s := validSnapshot()
	s.ShuffledQuestions[0].Type = question.TypeMultiSelect
	s.ShuffledQuestions[1].Type = question.TypeFillText
	s.ShuffledQuestions[2].Type = question.TypeFillNumeric
	if err := s.Validate(); err != nil {
		t.Errorf("all recognized types should validate: %v", err)
	}
}
