// Package evaluate holds the pure answer-checking functions, one per
// question type. Evaluators never mutate anything and never fail: an
// unparseable or empty input is simply an incorrect answer.
package evaluate

import (
	"math"
	"strconv"
	"strings"

	"github.com/golftaweerak/sciquiz/internal/question"
)

// Response carries the learner's raw input for one question. Choice
// questions fill Choices; fill-in questions fill Text. A zero Response
// represents "no answer", used when a timeout forces evaluation.
type Response struct {
	Text    string
	Choices []string
}

// Empty reports whether the response carries no usable input.
func (r Response) Empty() bool {
	if strings.TrimSpace(r.Text) != "" {
		return false
	}
	for _, c := range r.Choices {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Verdict is the result of evaluating one response: the correctness
// flag plus the normalized selected and correct values the caller
// records. Selected is nil when the response was empty.
type Verdict struct {
	IsCorrect bool
	Selected  []string
	Correct   []string
}

// Evaluate checks resp against q, dispatching on the question type.
// Unrecognized types (which Normalize should have repaired upstream)
// yield an incorrect verdict rather than an error.
func Evaluate(q *question.Question, resp Response) Verdict {
	switch q.Type {
	case question.TypeSingleChoice:
		return evalSingleChoice(q, resp)
	case question.TypeMultiSelect:
		return evalMultiSelect(q, resp)
	case question.TypeFillText:
		return evalFillText(q, resp)
	case question.TypeFillNumeric:
		return evalFillNumeric(q, resp)
	}
	return Verdict{Selected: selectedOf(resp), Correct: trimAll(q.Answer)}
}

func evalSingleChoice(q *question.Question, resp Response) Verdict {
	v := Verdict{Selected: selectedOf(resp), Correct: trimAll(q.Answer)}
	if len(v.Selected) != 1 || len(v.Correct) == 0 {
		return v
	}
	v.IsCorrect = v.Selected[0] == v.Correct[0]
	return v
}

func evalMultiSelect(q *question.Question, resp Response) Verdict {
	v := Verdict{Selected: selectedOf(resp), Correct: trimAll(q.Answer)}
	want := toSet(v.Correct)
	got := toSet(v.Selected)
	if len(want) == 0 || len(got) != len(want) {
		return v
	}
	for k := range want {
		if !got[k] {
			return v
		}
	}
	v.IsCorrect = true
	return v
}

func evalFillText(q *question.Question, resp Response) Verdict {
	v := Verdict{Selected: selectedOf(resp), Correct: trimAll(q.Answer)}
	input := strings.TrimSpace(resp.Text)
	if input == "" {
		return v
	}
	for _, accepted := range v.Correct {
		if strings.EqualFold(input, accepted) {
			v.IsCorrect = true
			return v
		}
	}
	return v
}

func evalFillNumeric(q *question.Question, resp Response) Verdict {
	v := Verdict{Selected: selectedOf(resp), Correct: trimAll(q.Answer)}
	if len(v.Correct) == 0 {
		return v
	}
	input, err := strconv.ParseFloat(strings.TrimSpace(resp.Text), 64)
	if err != nil {
		return v
	}
	target, err := strconv.ParseFloat(v.Correct[0], 64)
	if err != nil {
		return v
	}
	// A small epsilon keeps exact-boundary inputs like |9.6-9.8| vs 0.2
	// from failing on float64 rounding.
	v.IsCorrect = math.Abs(input-target) <= q.Tolerance+1e-9
	return v
}

// selectedOf normalizes the response into the recorded selected value:
// trimmed choices for choice questions, the trimmed text otherwise, nil
// when nothing was entered.
func selectedOf(resp Response) []string {
	if len(resp.Choices) > 0 {
		out := trimAll(resp.Choices)
		if len(out) == 0 {
			return nil
		}
		return out
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return nil
	}
	return []string{text}
}

// trimAll trims every element, dropping ones that become empty.
func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// toSet builds a deduplicated membership set.
func toSet(in []string) map[string]bool {
	set := make(map[string]bool, len(in))
	for _, s := range in {
		set[s] = true
	}
	return set
}
