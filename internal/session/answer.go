package session

import "github.com/golftaweerak/sciquiz/internal/question"

// Answer is the recorded verdict for one evaluated question. It is
// created exactly once, by submission or by timeout, and never
// overwritten: revisiting an answered question replays this record.
type Answer struct {
	QuestionID   string            `json:"questionId,omitempty"`
	QuestionText string            `json:"questionText"`
	Selected     []string          `json:"selected"`
	Correct      []string          `json:"correct"`
	IsCorrect    bool              `json:"isCorrect"`
	Category     question.Category `json:"category"`
	Explanation  string            `json:"explanation,omitempty"`
}
