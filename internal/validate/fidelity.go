package validate

import (
	"fmt"

	"github.com/CodexForgeBR/workout-forge/internal/days"
	"github.com/CodexForgeBR/workout-forge/internal/identity"
	"github.com/CodexForgeBR/workout-forge/internal/plan"
	"github.com/CodexForgeBR/workout-forge/internal/template"
)

// AnchorMatch pairs one compiled anchor with the plan entry that satisfies
// it. Entry is -1 when no entry does.
type AnchorMatch struct {
	Section int
	Anchor  template.Anchor
	Entry   int
}

// MatchDay pairs the compiled day's anchors with the plan day's entries.
// Each entry satisfies at most one anchor.
func MatchDay(r *identity.Resolver, compiled template.Day, day plan.Day) []AnchorMatch {
	var expected []string
	var out []AnchorMatch
	for si, s := range compiled.Sections {
		for _, a := range s.Exercises {
			expected = append(expected, a.ExerciseName)
			out = append(out, AnchorMatch{Section: si, Anchor: a, Entry: -1})
		}
	}
	names := make([]string, len(day.Entries))
	for i, e := range day.Entries {
		names[i] = e.ExerciseName
	}
	for i, j := range r.Assign(expected, names) {
		out[i].Entry = j
	}
	return out
}

// FindDay returns the plan day matching name, or false.
func FindDay(p plan.Plan, name string) (plan.Day, bool) {
	for _, d := range p.Days {
		if days.Same(d.Name, name) {
			return d, true
		}
	}
	return plan.Day{}, false
}

func (v *Validator) checkFidelity(in Input) []Violation {
	var out []Violation
	for _, cd := range in.Compiled {
		pd, _ := FindDay(in.Plan, cd.Name)
		for _, m := range MatchDay(v.resolver, cd, pd) {
			if m.Entry >= 0 {
				continue
			}
			out = append(out, Violation{
				Code:     CodeMissingAnchor,
				Day:      cd.Name,
				Exercise: m.Anchor.ExerciseName,
				Message:  fmt.Sprintf("expected %s. %s from the trainer template is missing", m.Anchor.BlockLabel, m.Anchor.ExerciseName),
			})
		}
	}
	return out
}

// checkSectionOrder flags a section whose earliest matched block sorts
// before the previous section's earliest block.
func (v *Validator) checkSectionOrder(in Input) []Violation {
	var out []Violation
	for _, cd := range in.Compiled {
		pd, ok := FindDay(in.Plan, cd.Name)
		if !ok {
			continue
		}
		minRank := make([]int, len(cd.Sections))
		for _, m := range MatchDay(v.resolver, cd, pd) {
			if m.Entry < 0 {
				continue
			}
			r := template.BlockRank(pd.Entries[m.Entry].BlockLabel)
			if r > 0 && (minRank[m.Section] == 0 || r < minRank[m.Section]) {
				minRank[m.Section] = r
			}
		}
		prev, prevLabel := 0, ""
		for si, s := range cd.Sections {
			r := minRank[si]
			if r == 0 {
				continue
			}
			if r < prev {
				out = append(out, Violation{
					Code:     CodeSectionOrderDrift,
					Day:      cd.Name,
					Exercise: s.Exercises[0].ExerciseName,
					Message: fmt.Sprintf("%s (block %s) is placed before %s; keep the trainer's section order",
						s.Label, template.Letter(r), prevLabel),
				})
			}
			if r > prev {
				prev, prevLabel = r, s.Label
			}
		}
	}
	return out
}
