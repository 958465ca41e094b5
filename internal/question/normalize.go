package question

import "strings"

// Normalize repairs a decoded question record in place of rejecting it:
// a single malformed record must never abort a whole session. Unknown
// types are coerced to the closest recognized variant and a missing
// category falls back to the Uncategorized sentinel.
func Normalize(q Question) Question {
	q.Text = strings.TrimSpace(q.Text)

	if !q.Type.Valid() {
		if len(q.Options) > 0 {
			q.Type = TypeSingleChoice
		} else {
			q.Type = TypeFillText
		}
	}

	if q.Options == nil {
		q.Options = []string{}
	}

	if strings.TrimSpace(q.Category.Main) == "" {
		q.Category.Main = UncategorizedMain
		q.Category.Specific = nil
	}

	// Drop empty specific entries left behind by sloppy bank data.
	if len(q.Category.Specific) > 0 {
		kept := make([]string, 0, len(q.Category.Specific))
		for _, s := range q.Category.Specific {
			if strings.TrimSpace(s) != "" {
				kept = append(kept, s)
			}
		}
		q.Category.Specific = kept
	}

	if q.Tolerance < 0 {
		q.Tolerance = 0
	}

	return q
}

// NormalizeAll applies Normalize to every question, returning a new slice.
func NormalizeAll(qs []Question) []Question {
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = Normalize(q)
	}
	return out
}
