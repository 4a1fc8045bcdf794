// Package repair restores the trainer's anchors in a generated plan. It only
// moves, normalizes and re-inserts the expected exercises; it never chooses
// new ones.
package repair

import (
	"github.com/pmezard/go-difflib/difflib"

	"github.com/CodexForgeBR/workout-forge/internal/days"
	"github.com/CodexForgeBR/workout-forge/internal/identity"
	"github.com/CodexForgeBR/workout-forge/internal/plan"
	"github.com/CodexForgeBR/workout-forge/internal/sections"
	"github.com/CodexForgeBR/workout-forge/internal/template"
	"github.com/CodexForgeBR/workout-forge/internal/validate"
)

// DaySummary lists what happened to one compiled day.
type DaySummary struct {
	Day      string   `json:"day"`
	Kept     []string `json:"kept,omitempty"`
	Repaired []string `json:"repaired,omitempty"`
	Inserted []string `json:"inserted,omitempty"`
	Dropped  []string `json:"dropped,omitempty"`
}

// Summary counts the repair actions across the plan.
type Summary struct {
	Kept     int          `json:"kept"`
	Repaired int          `json:"repaired"`
	Inserted int          `json:"inserted"`
	Dropped  int          `json:"dropped"`
	Days     []DaySummary `json:"days"`
	Diff     string       `json:"diff,omitempty"`
}

// Changed reports whether repair altered anything.
func (s Summary) Changed() bool {
	return s.Repaired+s.Inserted+s.Dropped > 0
}

// Engine rebuilds compiled days of a plan.
type Engine struct {
	resolver *identity.Resolver
}

// New returns an Engine matching anchors with resolver.
func New(resolver *identity.Resolver) *Engine {
	return &Engine{resolver: resolver}
}

// Repair rebuilds every compiled day of text in canonical anchor order.
// Plan days without a compiled counterpart, and compiled days with no
// anchors, are left as generated. Compiled days missing from the plan are
// appended.
func (e *Engine) Repair(text string, compiled []template.Day) (string, Summary) {
	p := plan.Parse(text)
	var s Summary

	for _, cd := range compiled {
		if len(cd.Anchors()) == 0 {
			continue
		}
		idx := -1
		for i, d := range p.Days {
			if days.Same(d.Name, cd.Name) {
				idx = i
				break
			}
		}
		if idx < 0 {
			p.Days = append(p.Days, plan.Day{Name: cd.Name})
			idx = len(p.Days) - 1
		}
		day, ds := e.rebuildDay(cd, p.Days[idx])
		p.Days[idx] = day
		s.Kept += len(ds.Kept)
		s.Repaired += len(ds.Repaired)
		s.Inserted += len(ds.Inserted)
		s.Dropped += len(ds.Dropped)
		s.Days = append(s.Days, ds)
	}

	patched := plan.Render(p)
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(text),
		B:        difflib.SplitLines(patched),
		FromFile: "generated",
		ToFile:   "repaired",
		Context:  2,
	})
	if err == nil {
		s.Diff = diff
	}
	return patched, s
}

func (e *Engine) rebuildDay(cd template.Day, day plan.Day) (plan.Day, DaySummary) {
	ds := DaySummary{Day: cd.Name}
	matches := validate.MatchDay(e.resolver, cd, day)
	used := make([]bool, len(day.Entries))
	entries := make([]plan.Entry, 0, len(matches))

	for _, m := range matches {
		sectionID := cd.Sections[m.Section].ID
		if m.Entry < 0 {
			entries = append(entries, e.synthesize(cd.Name, m.Anchor, sectionID))
			ds.Inserted = append(ds.Inserted, m.Anchor.ExerciseName)
			continue
		}
		used[m.Entry] = true
		entry, repaired := e.normalize(day.Entries[m.Entry], m.Anchor, sectionID)
		entry.Day = cd.Name
		entries = append(entries, entry)
		if repaired {
			ds.Repaired = append(ds.Repaired, entry.ExerciseName)
		} else {
			ds.Kept = append(ds.Kept, entry.ExerciseName)
		}
	}
	for i, en := range day.Entries {
		if !used[i] {
			ds.Dropped = append(ds.Dropped, en.ExerciseName)
		}
	}
	day.Name = cd.Name
	day.Entries = entries
	return day, ds
}

// normalize relabels a matched entry and fills any missing required line.
func (e *Engine) normalize(en plan.Entry, a template.Anchor, sectionID string) (plan.Entry, bool) {
	def := e.defaults(a.ExerciseName, sectionID)
	repaired := false
	en.BlockLabel = a.BlockLabel
	if !en.HasPrescription() {
		en.SetPrescription(def.Prescription)
		repaired = true
	}
	if !en.HasRest {
		en.Rest, en.HasRest = def.Rest, true
		repaired = true
	}
	if !en.HasNotes {
		en.Notes, en.HasNotes = def.Notes, true
		repaired = true
	}
	return en, repaired
}

func (e *Engine) synthesize(day string, a template.Anchor, sectionID string) plan.Entry {
	def := e.defaults(a.ExerciseName, sectionID)
	en := plan.Entry{
		Day:          day,
		BlockLabel:   a.BlockLabel,
		ExerciseName: a.ExerciseName,
		Rest:         def.Rest,
		HasRest:      true,
		Notes:        plan.PlaceholderNote,
		HasNotes:     true,
	}
	en.SetPrescription(def.Prescription)
	return en
}

// Defaults is the synthesized prescription, rest and notes for an anchor.
type Defaults struct {
	Prescription string
	Rest         string
	Notes        string
}

// defaults picks the category fallback for an anchor.
func (e *Engine) defaults(name, sectionID string) Defaults {
	switch {
	case sectionID == sections.Warmup || sectionID == sections.Cooldown || sectionID == sections.Conditioning ||
		e.resolver.Category(name) == identity.CategoryConditioning:
		return Defaults{Prescription: "1 x 60 @ 0 kg", Rest: "none", Notes: "steady, nasal breathing"}
	case e.resolver.IsMainLift(name):
		return Defaults{Prescription: "1 x 1 @ 20 kg", Rest: "180s", Notes: "work up to the day's top set"}
	case e.resolver.IsHandHeld(name):
		return Defaults{Prescription: "3 x 10 @ 10 kg", Rest: "90s", Notes: "controlled tempo"}
	}
	return Defaults{Prescription: "3 x 10 @ 0 kg", Rest: "90s", Notes: "controlled tempo"}
}
