package plan

import (
	"regexp"
	"strings"

	"github.com/CodexForgeBR/workout-forge/internal/days"
)

var (
	fenceRe       = regexp.MustCompile("^\\s*```")
	entryHeaderRe = regexp.MustCompile(`^\s*(?:#{1,6}\s*|[-*•]\s+)?(?:\*\*)?([A-Za-z])(\d{1,2})\s*[.)]\s*(?:\*\*)?\s*(.+?)\s*(?:\*\*)?\s*$`)
	bulletRe      = regexp.MustCompile(`^\s*(?:[-*•]\s*)?`)
	labeledRe     = regexp.MustCompile(`(?i)^(?:\*\*)?(prescription|sets|rest|notes?|cues?)(?:\*\*)?(?:\s*[:\-]\s*|\s+)(?:\*\*)?\s*(.*)$`)
	bulletLineRe  = regexp.MustCompile(`^\s*[-*•]\s`)
)

// StripFences removes markdown code fences wrapping a model response.
func StripFences(text string) string {
	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, l := range lines {
		if fenceRe.MatchString(l) {
			continue
		}
		out = append(out, l)
	}
	return strings.Join(out, "\n")
}

// Parse reads plan text. It never fails: lines it cannot place are kept as
// preamble, day intro, or entry extra lines.
func Parse(text string) Plan {
	var p Plan
	var day *Day
	var entry *Entry

	flushEntry := func() {
		if entry != nil && day != nil {
			day.Entries = append(day.Entries, *entry)
		}
		entry = nil
	}
	flushDay := func() {
		flushEntry()
		if day != nil {
			p.Days = append(p.Days, *day)
		}
		day = nil
	}

	for _, raw := range strings.Split(StripFences(text), "\n") {
		line := strings.TrimRight(raw, " \t\r")

		if day != nil {
			if label, name, inline, ok := matchEntryHeader(line); ok {
				flushEntry()
				entry = &Entry{Day: day.Name, BlockLabel: label, ExerciseName: name}
				if inline != "" {
					entry.SetPrescription(inline)
				}
				continue
			}
		}
		if name, ok := dayHeader(line); ok {
			flushDay()
			day = &Day{Name: name, Header: strings.TrimSpace(line)}
			continue
		}

		switch {
		case day == nil:
			if strings.TrimSpace(line) != "" || len(p.Preamble) > 0 {
				p.Preamble = append(p.Preamble, line)
			}
		case entry == nil:
			day.Intro = append(day.Intro, line)
		default:
			absorb(entry, line)
		}
	}
	flushDay()
	for i := range p.Days {
		p.Days[i].Intro = trimBlank(p.Days[i].Intro)
		for j := range p.Days[i].Entries {
			p.Days[i].Entries[j].Extra = trimBlank(p.Days[i].Entries[j].Extra)
		}
	}
	p.Preamble = trimBlank(p.Preamble)
	return p
}

// dayHeader matches a day header line. Bulleted lines are body text even
// when they start with a weekday.
func dayHeader(line string) (string, bool) {
	if bulletLineRe.MatchString(line) {
		return "", false
	}
	return days.Match(line)
}

// matchEntryHeader recognizes "A1. Name" with optional markup and an inline
// prescription after a colon.
func matchEntryHeader(line string) (label, name, inline string, ok bool) {
	m := entryHeaderRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", "", false
	}
	label = strings.ToUpper(m[1]) + m[2]
	name = strings.Trim(m[3], "* ")
	if i := strings.LastIndex(name, ":"); i >= 0 {
		if _, _, _, isRx := ParsePrescription(strings.TrimSpace(name[i+1:])); isRx {
			inline = strings.TrimSpace(name[i+1:])
			name = strings.TrimSpace(name[:i])
		}
	}
	if name == "" {
		return "", "", "", false
	}
	return label, name, inline, true
}

// absorb places one body line into the current entry. The first
// prescription, rest, and notes lines win; anything else is extra text.
func absorb(e *Entry, line string) {
	body := strings.TrimSpace(bulletRe.ReplaceAllString(line, ""))
	if body == "" {
		e.Extra = append(e.Extra, line)
		return
	}
	if m := labeledRe.FindStringSubmatch(body); m != nil {
		key := strings.ToLower(m[1])
		val := strings.TrimSpace(strings.Trim(m[2], "*"))
		switch {
		case key == "rest" && !e.HasRest:
			e.Rest, e.HasRest = val, true
			return
		case strings.HasPrefix(key, "note") || strings.HasPrefix(key, "cue"):
			if !e.HasNotes {
				e.Notes, e.HasNotes = val, true
				return
			}
		case (key == "prescription" || key == "sets") && !e.HasPrescription():
			if _, _, _, ok := ParsePrescription(val); ok {
				e.SetPrescription(val)
				return
			}
		}
	}
	if !e.HasPrescription() {
		if _, _, _, ok := ParsePrescription(body); ok {
			e.SetPrescription(body)
			return
		}
	}
	e.Extra = append(e.Extra, line)
}

func trimBlank(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if len(lines) == 0 {
		return nil
	}
	return lines
}
