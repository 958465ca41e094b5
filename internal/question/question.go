// Package question defines the normalized question model shared by the
// quiz engine. Source banks are heterogeneous (legacy string categories,
// scalar or list answer keys); everything is folded into one shape here.
package question

import (
	"encoding/json"
	"strconv"
)

// Type discriminates the supported question variants.
type Type string

const (
	TypeSingleChoice Type = "single-choice"
	TypeMultiSelect  Type = "multi-select"
	TypeFillText     Type = "fill-in-text"
	TypeFillNumeric  Type = "fill-in-numeric"
)

// Valid reports whether t is one of the recognized question types.
func (t Type) Valid() bool {
	switch t {
	case TypeSingleChoice, TypeMultiSelect, TypeFillText, TypeFillNumeric:
		return true
	}
	return false
}

// UncategorizedMain is the sentinel main category assigned to questions
// whose source record carries no usable category.
const UncategorizedMain = "Uncategorized"

// Category is the two-level topic taxonomy attached to a question.
type Category struct {
	Main     string   `json:"main"`
	Specific []string `json:"specific,omitempty"`
}

// categoryObject mirrors the structured source shape, where specific may
// be a single string or a list.
type categoryObject struct {
	Main     string          `json:"main"`
	Specific json.RawMessage `json:"specific"`
}

// UnmarshalJSON accepts the structured {main, specific} form as well as
// the legacy plain-string form still present in older banks.
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Main = s
		c.Specific = nil
		return nil
	}

	var obj categoryObject
	if err := json.Unmarshal(data, &obj); err != nil {
		// Unrecognized shape degrades to uncategorized rather than
		// failing the whole bank.
		c.Main = ""
		c.Specific = nil
		return nil
	}
	c.Main = obj.Main
	c.Specific = decodeStringOrList(obj.Specific)
	return nil
}

// AnswerKey is the list of accepted correct answers. Single-choice and
// numeric questions carry one entry; fill-in-text may carry several
// accepted spellings; multi-select carries the full correct set.
type AnswerKey []string

// UnmarshalJSON accepts a scalar string, a number, or a list of either.
func (k *AnswerKey) UnmarshalJSON(data []byte) error {
	*k = decodeStringOrList(data)
	return nil
}

// decodeStringOrList decodes raw JSON that may be a string, a number, or
// an array of strings/numbers into a string slice. Anything else yields nil.
func decodeStringOrList(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return []string{s}
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return []string{n.String()}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, s)
			continue
		}
		var f float64
		if err := json.Unmarshal(item, &f); err == nil {
			out = append(out, strconv.FormatFloat(f, 'f', -1, 64))
		}
	}
	return out
}

// Question is the normalized internal question shape. Immutable once
// loaded; sessions work on shuffled copies, never on the source bank.
type Question struct {
	ID          string    `json:"id,omitempty"`
	Text        string    `json:"text"`
	Type        Type      `json:"type"`
	Options     []string  `json:"options,omitempty"`
	Answer      AnswerKey `json:"correctAnswer"`
	Tolerance   float64   `json:"tolerance,omitempty"`
	Unit        string    `json:"unit,omitempty"`
	Explanation string    `json:"explanation,omitempty"`
	Hint        string    `json:"hint,omitempty"`
	Category    Category  `json:"category"`
}
