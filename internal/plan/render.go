package plan

import (
	"strings"
)

// Render writes p in the canonical text format. Day headers are kept as
// written; entries are normalized to header, prescription, rest, notes,
// followed by any extra lines.
func Render(p Plan) string {
	var b strings.Builder
	for _, l := range p.Preamble {
		b.WriteString(l)
		b.WriteString("\n")
	}
	for i, d := range p.Days {
		if i > 0 || len(p.Preamble) > 0 {
			b.WriteString("\n")
		}
		b.WriteString(DayHeader(d))
		b.WriteString("\n")
		for _, l := range d.Intro {
			b.WriteString(l)
			b.WriteString("\n")
		}
		for _, e := range d.Entries {
			b.WriteString("\n")
			b.WriteString(RenderEntry(e))
		}
	}
	return b.String()
}

// DayHeader returns the header line for d.
func DayHeader(d Day) string {
	if d.Header != "" {
		return d.Header
	}
	return "## " + d.Name
}

// RenderEntry renders a single entry with a trailing newline.
func RenderEntry(e Entry) string {
	var b strings.Builder
	b.WriteString("### " + e.BlockLabel + ". " + e.ExerciseName + "\n")
	if e.HasPrescription() {
		b.WriteString("- " + e.Prescription + "\n")
	}
	if e.HasRest {
		b.WriteString("- Rest: " + e.Rest + "\n")
	}
	if e.HasNotes {
		b.WriteString("- Notes: " + e.Notes + "\n")
	}
	for _, l := range e.Extra {
		b.WriteString(l)
		b.WriteString("\n")
	}
	return b.String()
}
