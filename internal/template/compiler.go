// Package template assigns canonical block order and labels to parsed
// sections and renders the directive block handed to the generator.
package template

import (
	"fmt"
	"strings"

	"github.com/CodexForgeBR/workout-forge/internal/sections"
)

// Block ranks. Letter = rank converted to A, B, C...
const (
	RankPrep         = 1
	RankPower        = 2
	RankMain         = 3
	RankBackoff      = 4
	RankAuxiliary    = 5
	RankConditioning = 6
	RankCooldown     = 7

	maxRank = 26
)

// sectionRanks is the fixed section -> rank table.
var sectionRanks = map[string]int{
	sections.Warmup:       RankPrep,
	sections.Power:        RankPower,
	sections.Strength:     RankMain,
	sections.Backoff:      RankBackoff,
	sections.Accessory:    RankAuxiliary,
	sections.Core:         RankAuxiliary,
	sections.Conditioning: RankConditioning,
	sections.Cooldown:     RankCooldown,
}

// Anchor is one expected exercise with its block label.
type Anchor struct {
	BlockLabel   string `json:"block_label" yaml:"block_label"`
	ExerciseName string `json:"exercise_name" yaml:"exercise_name"`
}

// Section is a parsed section after canonical ordering and labeling.
type Section struct {
	ID          string   `json:"section_id" yaml:"section_id"`
	Label       string   `json:"label" yaml:"label"`
	BlockLetter string   `json:"block_letter" yaml:"block_letter"`
	Exercises   []Anchor `json:"exercises" yaml:"exercises"`
}

// Day groups the compiled sections of one training day.
type Day struct {
	Name     string    `json:"day_name" yaml:"day_name"`
	Sections []Section `json:"sections" yaml:"sections"`
}

// Anchors flattens the day's expected anchors in block order.
func (d Day) Anchors() []Anchor {
	var out []Anchor
	for _, s := range d.Sections {
		out = append(out, s.Exercises...)
	}
	return out
}

// SectionRank returns the desired rank for a section ID. Unknown IDs sort
// with auxiliary work.
func SectionRank(id string) int {
	if r, ok := sectionRanks[id]; ok {
		return r
	}
	return RankAuxiliary
}

// Letter converts a 1-based rank to its block letter.
func Letter(rank int) string {
	if rank < 1 {
		rank = 1
	}
	if rank > maxRank {
		rank = maxRank
	}
	return string(rune('A' + rank - 1))
}

// BlockRank converts a block label ("C2", "c", "B") to its 1-based rank.
// It returns 0 when the label does not start with a letter.
func BlockRank(label string) int {
	s := strings.TrimSpace(strings.ToUpper(label))
	if s == "" || s[0] < 'A' || s[0] > 'Z' {
		return 0
	}
	return int(s[0]-'A') + 1
}

// Compile assigns block letters to a parsed day's sections. Letters never
// decrease across the day and never repeat: a section whose desired rank is
// taken or below the previous section's rank moves to the next free rank,
// clamped at Z. Each section keeps at most maxPerSection anchors, numbered
// within its block (A1, A2, ...). Sections with no anchors are skipped.
func Compile(day sections.Day, maxPerSection int) []Section {
	used := map[int]bool{}
	prev := 0
	var out []Section
	for _, s := range day.Sections {
		if len(s.Exercises) == 0 {
			continue
		}
		rank := SectionRank(s.ID)
		if used[rank] || rank < prev {
			rank = nextFree(used, max(rank, prev))
		}
		used[rank] = true
		prev = rank
		letter := Letter(rank)

		names := s.Exercises
		if maxPerSection > 0 && len(names) > maxPerSection {
			names = names[:maxPerSection]
		}
		anchors := make([]Anchor, len(names))
		for i, n := range names {
			anchors[i] = Anchor{BlockLabel: fmt.Sprintf("%s%d", letter, i+1), ExerciseName: n}
		}
		out = append(out, Section{ID: s.ID, Label: s.Label, BlockLetter: letter, Exercises: anchors})
	}
	return out
}

func nextFree(used map[int]bool, from int) int {
	for r := from; r < maxRank; r++ {
		if !used[r] {
			return r
		}
	}
	return maxRank
}

// CompileWeek compiles every parsed day.
func CompileWeek(week []sections.Day, maxPerSection int) []Day {
	out := make([]Day, 0, len(week))
	for _, d := range week {
		out = append(out, Day{Name: d.Name, Sections: Compile(d, maxPerSection)})
	}
	return out
}

// RenderDirectives renders the normalized directive block the generator must
// follow: one DAY line per day, one SECTION line per block, one line per
// anchor.
func RenderDirectives(week []Day) string {
	var b strings.Builder
	for i, d := range week {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "DAY: %s\n", d.Name)
		if len(d.Sections) == 0 {
			b.WriteString("  (no structured sections detected; use the trainer text as written)\n")
			continue
		}
		for _, s := range d.Sections {
			fmt.Fprintf(&b, "  SECTION %s - %s\n", s.BlockLetter, s.Label)
			for _, a := range s.Exercises {
				fmt.Fprintf(&b, "    %s. %s\n", a.BlockLabel, a.ExerciseName)
			}
		}
	}
	return b.String()
}
