// Package bank loads question-bank files: schema-validated JSON
// documents holding flat questions and scenario groups.
package bank

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/mod/semver"

	"github.com/golftaweerak/sciquiz/internal/question"
)

// MinFormatVersion is the oldest bank file format this build reads.
// Files from a newer major revision are rejected too.
const MinFormatVersion = "1.0.0"

var ErrFormatVersion = errors.New("unsupported bank format version")

//go:embed default_bank.json
var defaultBankJSON []byte

// File is a parsed question-bank document.
type File struct {
	FormatVersion string  `json:"formatVersion"`
	Title         string  `json:"title"`
	Questions     []Entry `json:"questions"`
}

// Entry is one element of a bank's question list: either a single
// question or a scenario grouping several questions under shared
// context.
type Entry struct {
	Question *question.Question
	Scenario *Scenario
}

// Scenario groups questions that share a stem and, optionally, a
// category inherited by children that declare none.
type Scenario struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Category    question.Category   `json:"category"`
	Questions   []question.Question `json:"questions"`
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	if probe.Type == "scenario" {
		var sc Scenario
		if err := json.Unmarshal(data, &sc); err != nil {
			return err
		}
		e.Scenario = &sc
		return nil
	}

	var q question.Question
	if err := json.Unmarshal(data, &q); err != nil {
		return err
	}
	e.Question = &q
	return nil
}

// Parse validates and decodes a bank document. The returned questions
// are flattened and normalized, ready for a session.
func Parse(raw []byte) (*File, error) {
	if err := validateDocument(raw); err != nil {
		return nil, fmt.Errorf("bank file: %w", err)
	}

	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("bank file: %w", err)
	}
	if err := checkFormatVersion(f.FormatVersion); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads and parses the bank file at path.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank file: %w", err)
	}
	return Parse(raw)
}

// Default returns the embedded bank shipped with the binary.
func Default() (*File, error) {
	return Parse(defaultBankJSON)
}

// Flatten expands scenarios into their child questions, prefixing each
// child's text with the scenario description and filling in the
// scenario category where a child has none. Every question comes back
// normalized.
func (f *File) Flatten() []question.Question {
	var out []question.Question
	for _, e := range f.Questions {
		switch {
		case e.Question != nil:
			out = append(out, *e.Question)
		case e.Scenario != nil:
			for _, q := range e.Scenario.Questions {
				if e.Scenario.Description != "" {
					q.Text = e.Scenario.Description + "\n\n" + q.Text
				}
				if q.Category.Main == "" {
					q.Category = e.Scenario.Category
				}
				out = append(out, q)
			}
		}
	}
	return question.NormalizeAll(out)
}

// checkFormatVersion gates formatVersion to [MinFormatVersion, same major].
func checkFormatVersion(fv string) error {
	v := "v" + fv
	min := "v" + MinFormatVersion
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: %q", ErrFormatVersion, fv)
	}
	if semver.Compare(v, min) < 0 || semver.Major(v) != semver.Major(min) {
		return fmt.Errorf("%w: %q (supported: %s.x)", ErrFormatVersion, fv, semver.Major(min))
	}
	return nil
}
