// Package plan parses generated plan text into entries and renders plans back
// into the canonical text format.
//
// The format is line oriented:
//
//	## Monday
//	### A1. Back Squat
//	- 5 x 5 @ 100 kg
//	- Rest: 180s
//	- Notes: brace hard
//
// Lines the parser does not recognize are kept verbatim so a rewrite never
// loses trainer commentary.
package plan

import (
	"regexp"
	"strconv"
	"strings"
)

// Entry is one block-labeled exercise of a generated plan.
type Entry struct {
	Day          string   `json:"day" yaml:"day"`
	BlockLabel   string   `json:"block_label" yaml:"block_label"`
	ExerciseName string   `json:"exercise_name" yaml:"exercise_name"`
	Prescription string   `json:"prescription,omitempty" yaml:"prescription,omitempty"`
	Sets         string   `json:"sets,omitempty" yaml:"sets,omitempty"`
	Reps         string   `json:"reps,omitempty" yaml:"reps,omitempty"`
	Load         string   `json:"load,omitempty" yaml:"load,omitempty"`
	LoadKG       float64  `json:"load_kg,omitempty" yaml:"load_kg,omitempty"`
	HasLoad      bool     `json:"has_load" yaml:"has_load"`
	Rest         string   `json:"rest,omitempty" yaml:"rest,omitempty"`
	Notes        string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	HasRest      bool     `json:"-" yaml:"-"`
	HasNotes     bool     `json:"-" yaml:"-"`
	Extra        []string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// HasPrescription reports whether the entry carried a prescription line.
func (e Entry) HasPrescription() bool {
	return strings.TrimSpace(e.Prescription) != ""
}

// Day is one day of a plan.
type Day struct {
	Name    string   `json:"day_name" yaml:"day_name"`
	Header  string   `json:"header" yaml:"header"`
	Intro   []string `json:"intro,omitempty" yaml:"intro,omitempty"`
	Entries []Entry  `json:"entries" yaml:"entries"`
}

// Plan is a parsed plan. Preamble holds lines seen before the first day header.
type Plan struct {
	Preamble []string `json:"preamble,omitempty" yaml:"preamble,omitempty"`
	Days     []Day    `json:"days" yaml:"days"`
}

// Entries returns every entry across all days, in text order.
func (p Plan) Entries() []Entry {
	var out []Entry
	for _, d := range p.Days {
		out = append(out, d.Entries...)
	}
	return out
}

// DayIndex returns the position of the named day, or -1.
func (p Plan) DayIndex(name string) int {
	for i, d := range p.Days {
		if strings.EqualFold(d.Name, name) {
			return i
		}
	}
	return -1
}

var (
	// prescriptionRe captures sets, reps and an optional load. Reps and
	// loads may be written as ranges so the validator can flag them.
	prescriptionRe = regexp.MustCompile(`(?i)^(\d+)\s*[x×]\s*(\d+(?:\.\d+)?(?:\s*(?:-|–|to)\s*\d+(?:\.\d+)?)?\s*(?:s|sec|secs|m|min|cal|reps?)?\b)[^@]*?(?:\s*(?:@|\bat\b)\s*(.+))?$`)
	loadValueRe    = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)\s*(kg|kgs|lb|lbs)?\b`)
)

const lbToKG = 0.45359237

// ParsePrescription splits "4 x 12 @ 8 kg" into sets, reps and load. It
// returns ok=false when text is not a prescription.
func ParsePrescription(text string) (sets, reps, load string, ok bool) {
	m := prescriptionRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return "", "", "", false
	}
	return m[1], strings.TrimSpace(m[2]), strings.TrimSpace(m[3]), true
}

// ParseLoad converts a load string to kilograms. Bodyweight, percentages and
// free text have no numeric load.
func ParseLoad(load string) (float64, bool) {
	s := strings.TrimSpace(load)
	m := loadValueRe.FindStringSubmatch(s)
	if m == nil || strings.HasPrefix(strings.TrimSpace(s[len(m[0]):]), "%") {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	if strings.HasPrefix(strings.ToLower(m[2]), "lb") {
		v *= lbToKG
	}
	return v, true
}

// ParseReps returns the leading integer of a reps string ("12", "10-12").
func ParseReps(reps string) (int, bool) {
	end := 0
	for end < len(reps) && reps[end] >= '0' && reps[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(reps[:end])
	return n, err == nil
}

// SetPrescription replaces the entry's prescription and re-derives its parts.
func (e *Entry) SetPrescription(text string) {
	e.Prescription = strings.TrimSpace(text)
	e.Sets, e.Reps, e.Load, _ = ParsePrescription(e.Prescription)
	e.LoadKG, e.HasLoad = ParseLoad(e.Load)
}

// PlaceholderNote marks an entry synthesized by repair whose prescription
// still needs a real value. The validator reports any plan that carries it.
const PlaceholderNote = "[placeholder: anchor restored, set real prescription]"
