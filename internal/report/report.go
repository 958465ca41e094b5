// Package report computes the post-session score breakdown: elapsed
// time, per-category and per-subcategory accuracy, the best/worst topic
// summary, and the presentation band for the final percentage.
package report

import (
	"sort"
	"time"

	"github.com/golftaweerak/sciquiz/internal/question"
	"github.com/golftaweerak/sciquiz/internal/timer"
)

// Answered is the minimal view of a recorded answer the aggregation
// needs. The session package converts its answer records into this shape
// so the report stays decoupled from engine internals.
type Answered struct {
	IsCorrect bool
	Category  question.Category
}

// Timing carries the session timer fields the elapsed-time rule needs.
type Timing struct {
	Mode           timer.Mode
	TimeLeft       int
	InitialTime    int
	TotalTimeSpent int
}

// Stat is a correct/total pair.
type Stat struct {
	Correct int
	Total   int
}

// Accuracy returns Correct/Total, or 0 for an empty stat.
func (s Stat) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total)
}

// CategoryStat aggregates one main category and its specific
// subcategories. Derived at result time, never persisted.
type CategoryStat struct {
	Stat
	Specific map[string]*Stat
}

// Band maps a minimum percentage to a presentation message. Thresholds
// are configuration, not business logic.
type Band struct {
	MinPercent float64
	Message    string
}

// DefaultBands is the standard percentage-to-message table, ordered from
// highest threshold to lowest.
var DefaultBands = []Band{
	{90, "Perfect! You have truly mastered this material."},
	{75, "Great work! A very strong showing."},
	{50, "Good effort. A little more review will get you there."},
	{0, "Keep at it. Every attempt builds understanding."},
}

// TopicSummary names the highest- and lowest-scoring specific
// subcategories. Both fields are empty when accuracy is flat across all
// answered subcategories, since a tie carries no signal.
type TopicSummary struct {
	Best  string
	Worst string
}

// Report is the final analytics produced when a session completes.
type Report struct {
	Score      int
	Total      int
	Percentage float64
	Elapsed    time.Duration
	Categories map[string]*CategoryStat
	Topics     TopicSummary
	Band       string
}

// Build aggregates the answered questions into a Report. Unanswered
// questions (nil entries filtered out by the caller) count toward Total
// but not toward any category, matching forced-termination semantics.
func Build(answers []Answered, total int, t Timing, bands []Band) *Report {
	r := &Report{
		Total:      total,
		Categories: make(map[string]*CategoryStat),
	}

	for _, a := range answers {
		if a.IsCorrect {
			r.Score++
		}

		main := a.Category.Main
		if main == "" {
			main = question.UncategorizedMain
		}
		cs := r.Categories[main]
		if cs == nil {
			cs = &CategoryStat{Specific: make(map[string]*Stat)}
			r.Categories[main] = cs
		}
		cs.Total++
		if a.IsCorrect {
			cs.Correct++
		}

		// A question listing several specifics counts once per specific.
		for _, name := range a.Category.Specific {
			st := cs.Specific[name]
			if st == nil {
				st = &Stat{}
				cs.Specific[name] = st
			}
			st.Total++
			if a.IsCorrect {
				st.Correct++
			}
		}
	}

	if r.Total > 0 {
		r.Percentage = float64(r.Score) / float64(r.Total) * 100
	}

	r.Elapsed = elapsed(t)
	r.Topics = bestWorst(r.Categories)
	r.Band = bandFor(r.Percentage, bands)
	return r
}

// elapsed applies the mode-dependent elapsed-time rule: an overall
// countdown knows exactly how much of it was consumed; otherwise the
// accumulated per-segment total spans save/resume boundaries.
func elapsed(t Timing) time.Duration {
	if t.Mode == timer.ModeOverall {
		secs := t.InitialTime - t.TimeLeft
		if secs < 0 {
			secs = 0
		}
		return time.Duration(secs) * time.Second
	}
	return time.Duration(t.TotalTimeSpent) * time.Second
}

// bestWorst ranks specific subcategories with at least one answered
// question by accuracy. A flat field yields an empty summary.
func bestWorst(categories map[string]*CategoryStat) TopicSummary {
	type ranked struct {
		name string
		acc  float64
	}
	var all []ranked
	for _, cs := range categories {
		for name, st := range cs.Specific {
			if st.Total > 0 {
				all = append(all, ranked{name, st.Accuracy()})
			}
		}
	}
	if len(all) < 2 {
		return TopicSummary{}
	}

	// Deterministic tie-breaking: accuracy first, then name.
	sort.Slice(all, func(i, j int) bool {
		if all[i].acc != all[j].acc {
			return all[i].acc > all[j].acc
		}
		return all[i].name < all[j].name
	})

	best, worst := all[0], all[len(all)-1]
	if best.acc == worst.acc {
		return TopicSummary{}
	}
	return TopicSummary{Best: best.name, Worst: worst.name}
}

// bandFor returns the message of the first band whose threshold the
// percentage meets. Bands must be ordered from highest to lowest.
func bandFor(percentage float64, bands []Band) string {
	if len(bands) == 0 {
		bands = DefaultBands
	}
	for _, b := range bands {
		if percentage >= b.MinPercent {
			return b.Message
		}
	}
	return bands[len(bands)-1].Message
}
