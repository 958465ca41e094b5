package bank

import (
	"errors"
	"strings"
	"testing"

	"github.com/golftaweerak/sciquiz/internal/question"
)

const minimalBank = `{
	"formatVersion": "1.0.0",
	"title": "Test",
	"questions": [
		{
			"id": "q1",
			"text": "Pick A",
			"type": "single-choice",
			"options": ["A", "B"],
			"correctAnswer": "A",
			"category": {"main": "Physics", "specific": ["Mechanics"]}
		}
	]
}`

func TestParseMinimal(t *testing.T) {
	f, err := Parse([]byte(minimalBank))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if f.Title != "Test" {
		t.Errorf("title = %q, want %q", f.Title, "Test")
	}

	qs := f.Flatten()
	if len(qs) != 1 {
		t.Fatalf("questions = %d, want 1", len(qs))
	}
	if qs[0].ID != "q1" {
		t.Errorf("id = %q, want q1", qs[0].ID)
	}
	if qs[0].Type != question.TypeSingleChoice {
		t.Errorf("type = %q, want %q", qs[0].Type, question.TypeSingleChoice)
	}
}

func TestParseRejectsInvalidDocument(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{oops`},
		{"missing formatVersion", `{"questions":[{"text":"x","correctAnswer":"A"}]}`},
		{"empty questions", `{"formatVersion":"1.0.0","questions":[]}`},
		{"question without text", `{"formatVersion":"1.0.0","questions":[{"correctAnswer":"A"}]}`},
		{"question without answer", `{"formatVersion":"1.0.0","questions":[{"text":"x"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.raw)); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}

func TestFormatVersionGate(t *testing.T) {
	tests := []struct {
		version string
		ok      bool
	}{
		{"1.0.0", true},
		{"1.2.3", true},
		{"0.9.0", false},
		{"2.0.0", false},
	}

	for _, tt := range tests {
		doc := strings.Replace(minimalBank, "1.0.0", tt.version, 1)
		_, err := Parse([]byte(doc))
		if tt.ok && err != nil {
			t.Errorf("version %s: unexpected error: %v", tt.version, err)
		}
		if !tt.ok {
			if !errors.Is(err, ErrFormatVersion) {
				t.Errorf("version %s: err = %v, want ErrFormatVersion", tt.version, err)
			}
		}
	}
}

func TestFlattenScenario(t *testing.T) {
	doc := `{
		"formatVersion": "1.0.0",
		"questions": [
			{
				"type": "scenario",
				"title": "Storm",
				"description": "A storm approaches.",
				"category": {"main": "Earth Science", "specific": ["Meteorology"]},
				"questions": [
					{"id": "c1", "text": "How far?", "type": "fill-in-numeric", "correctAnswer": 2, "tolerance": 0.2},
					{"id": "c2", "text": "Which cloud?", "type": "single-choice", "options": ["Cumulonimbus", "Cirrus"],
					 "correctAnswer": "Cumulonimbus", "category": {"main": "Earth Science", "specific": ["Clouds"]}}
				]
			}
		]
	}`

	f, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	qs := f.Flatten()
	if len(qs) != 2 {
		t.Fatalf("questions = %d, want 2", len(qs))
	}

	// Child without a category inherits the scenario's.
	if qs[0].Category.Main != "Earth Science" {
		t.Errorf("inherited main = %q, want Earth Science", qs[0].Category.Main)
	}
	if len(qs[0].Category.Specific) != 1 || qs[0].Category.Specific[0] != "Meteorology" {
		t.Errorf("inherited specific = %v, want [Meteorology]", qs[0].Category.Specific)
	}

	// Child with its own category keeps it.
	if len(qs[1].Category.Specific) != 1 || qs[1].Category.Specific[0] != "Clouds" {
		t.Errorf("own specific = %v, want [Clouds]", qs[1].Category.Specific)
	}

	// Scenario description is carried into each child's text.
	for i, q := range qs {
		if !strings.HasPrefix(q.Text, "A storm approaches.") {
			t.Errorf("question %d text missing scenario stem: %q", i, q.Text)
		}
	}
}

func TestParseLegacyCategoryString(t *testing.T) {
	doc := `{
		"formatVersion": "1.0.0",
		"questions": [
			{"id": "q1", "text": "x", "type": "fill-in-text", "correctAnswer": "y", "category": "Physics"}
		]
	}`
	f, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	qs := f.Flatten()
	if qs[0].Category.Main != "Physics" {
		t.Errorf("main = %q, want Physics", qs[0].Category.Main)
	}
}

func TestDefaultBankLoads(t *testing.T) {
	f, err := Default()
	if err != nil {
		t.Fatalf("default bank: %v", err)
	}
	if f.Title == "" {
		t.Error("expected a bank title")
	}

	qs := f.Flatten()
	if len(qs) == 0 {
		t.Fatal("expected questions in default bank")
	}

	seen := map[question.Type]bool{}
	for _, q := range qs {
		if !q.Type.Valid() {
			t.Errorf("question %s: invalid type %q", q.ID, q.Type)
		}
		if q.Category.Main == "" {
			t.Errorf("question %s: missing category", q.ID)
		}
		seen[q.Type] = true
	}
	for _, typ := range []question.Type{
		question.TypeSingleChoice, question.TypeMultiSelect,
		question.TypeFillText, question.TypeFillNumeric,
	} {
		if !seen[typ] {
			t.Errorf("default bank has no %q question", typ)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/bank.json"); err == nil {
		t.Error("expected error for missing file")
	}
}
