// Package sections extracts structured workout sections and exercise anchors
// from free-form trainer text.
//
// Parsing never fails. Text that does not fit the expected shape produces a
// low confidence score and warnings instead of an error.
package sections

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/CodexForgeBR/workout-forge/internal/days"
)

// Section is one detected block of a day with its exercise anchors in source
// order.
type Section struct {
	ID        string   `json:"section_id" yaml:"section_id"`
	Label     string   `json:"label" yaml:"label"`
	RawHeader string   `json:"raw_header" yaml:"raw_header"`
	Exercises []string `json:"exercises" yaml:"exercises"`
}

// Day is the parse of one day's raw text.
type Day struct {
	Name        string    `json:"day_name" yaml:"day_name"`
	HeaderLines []string  `json:"header_lines,omitempty" yaml:"header_lines,omitempty"`
	Sections    []Section `json:"sections" yaml:"sections"`
	Confidence  float64   `json:"confidence" yaml:"confidence"`
	Warnings    []string  `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// ExerciseCount returns the number of anchors across all sections.
func (d Day) ExerciseCount() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Exercises)
	}
	return n
}

const (
	maxHeaderWords        = 12
	headerPeriodWordLimit = 6
	maxAnchorChars        = 80
	proseWordLimit        = 6
	proseLowerDensity     = 0.35
	colonWordLimit        = 4
	upperRatio            = 0.6
)

// Warning messages.
const (
	WarnNoSections  = "no section headers recognized"
	WarnNoExercises = "no exercise anchors found"
)

var (
	headerTrim = regexp.MustCompile(`^[\s#*_=>\-]+|[\s*_=:\-]+$`)
	headerEnum = regexp.MustCompile(`^(?:[A-Z]|\d{1,2}|PART\s+\d+)[.):]\s+`)

	metadataLabel = regexp.MustCompile(`(?i)^(?:tips?|rx|notes?|cues?|tempo|rest|intent|goals?|focus|scal(?:e|ing)|coach(?:ing)?(?:\s+notes?)?|load|rpe|rir|time cap|cap)\b\s*(?:[:\-–—]|$)`)
	metadataToken = regexp.MustCompile(`(?i)\b\d+(?:[.,]\d+)?(?:\s*[-–/]\s*\d+(?:[.,]\d+)?)?\s*(?:x|×|sets?|reps?|rounds?|s|secs?|seconds?|min|mins|minutes?|m|km|kg|lbs?|%|cal|rpe|rir)?\b|[x×@%:/+,.()\-–—]|\b(?:sets?|reps?|rounds?|each|side|per|of|at|rest|rpe|rir|sec|secs|min|mins|kg|lbs?|e/s|total|work|on|off)\b`)
	narrative     = regexp.MustCompile(`(?i)^(?:then|and then|repeat|perform|complete|go\b|take|keep|make sure|if\b|every|for time|amrap\b|emom\b|e\d+mom\b|on the\b|in between|between|after|before|choose|pick|alternate|superset\b|circuit\b|x\s*\d+\b|\d+\s*rounds?\b|rest\b|note\b)`)

	bulletPrefix = regexp.MustCompile(`^\s*(?:[-*•·>]+\s*)+`)
	numberPrefix = regexp.MustCompile(`^(?:[A-Za-z]?\d{1,2}[a-z]?[.):]|[a-z][.)])\s+`)
	prescription = regexp.MustCompile(`(?i)\s*(?:[-–—:]\s*)?\(?\s*\d+\s*[x×]\s*\d+.*$|\s*@.*$|\s+[-–—]\s+.*\d.*$`)
	setsByReps   = regexp.MustCompile(`(?i)\d+\s*[x×]\s*\d+|@\s*\d`)
	benchmark    = regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:k|km|m|mi|miles?|meters?|metres?|cal|calories)\b.*\b(?:row|run|ski|bike|swim|erg|rower)\b(?:\s+(?:test|time trial|tt|for time|benchmark))?`)
)

// ParseDay splits one day's raw text into ordered sections of exercise
// anchors and scores how well the text fit the expected shape.
func ParseDay(dayName, raw string) Day {
	day := Day{Name: dayName, Sections: []Section{}}

	cur := -1
	var seen map[string]bool
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if header, rule, ok := sectionBoundary(line); ok {
			day.Sections = append(day.Sections, Section{
				ID:        rule.ID,
				Label:     rule.Label,
				RawHeader: line,
				Exercises: []string{},
			})
			cur = len(day.Sections) - 1
			seen = map[string]bool{}
			// A header that is itself a measurable benchmark ("2KM ROW TEST")
			// is also the section's first anchor.
			if m := benchmark.FindString(header); rule.ID == Conditioning && m != "" {
				name := titleWords(m)
				day.Sections[cur].Exercises = append(day.Sections[cur].Exercises, name)
				seen[strings.ToLower(name)] = true
			}
			continue
		}

		if cur < 0 {
			day.HeaderLines = append(day.HeaderLines, line)
			continue
		}

		name, ok := anchorName(line)
		if !ok {
			continue
		}
		k := strings.ToLower(name)
		if seen[k] {
			continue
		}
		seen[k] = true
		day.Sections[cur].Exercises = append(day.Sections[cur].Exercises, name)
	}

	sort.SliceStable(day.Sections, func(i, j int) bool {
		return rankHint(day.Sections[i].ID) < rankHint(day.Sections[j].ID)
	})

	day.Confidence = confidence(day)
	if len(day.Sections) == 0 {
		day.Warnings = append(day.Warnings, WarnNoSections)
	}
	if day.ExerciseCount() == 0 {
		day.Warnings = append(day.Warnings, WarnNoExercises)
	}
	return day
}

// ParseWeek splits multi-day source text on day header lines and parses each
// day. Text with no day headers is treated as a single "Day 1".
func ParseWeek(raw string) []Day {
	type chunk struct {
		name  string
		lines []string
	}
	var chunks []chunk
	for _, line := range strings.Split(raw, "\n") {
		if name, ok := days.Match(line); ok {
			// "## Thursday" followed by "THURSDAY — UPPER PULL" is one day.
			if n := len(chunks); n > 0 && chunks[n-1].name == name && blank(chunks[n-1].lines) {
				continue
			}
			chunks = append(chunks, chunk{name: name})
			continue
		}
		if len(chunks) == 0 {
			if strings.TrimSpace(line) == "" {
				continue
			}
			chunks = append(chunks, chunk{name: "Day 1"})
		}
		chunks[len(chunks)-1].lines = append(chunks[len(chunks)-1].lines, line)
	}

	out := make([]Day, 0, len(chunks))
	for _, c := range chunks {
		out = append(out, ParseDay(c.name, strings.Join(c.lines, "\n")))
	}
	return out
}

func blank(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return false
		}
	}
	return true
}

func sectionBoundary(line string) (string, Rule, bool) {
	header := headerTrim.ReplaceAllString(line, "")
	enumerated := headerEnum.MatchString(header)
	header = headerEnum.ReplaceAllString(header, "")
	if header == "" || !mostlyUpper(header) {
		return "", Rule{}, false
	}
	// "1. POWER CLEAN 5x3" is a numbered lift, not a header: enumerated lines
	// and lines carrying a prescription must name nothing but the section.
	if enumerated && !onlySectionWords(header) {
		return "", Rule{}, false
	}
	if loc := setsByReps.FindStringIndex(header); loc != nil && !onlySectionWords(header[:loc[0]]) {
		return "", Rule{}, false
	}
	words := strings.Fields(header)
	if len(words) > maxHeaderWords {
		return "", Rule{}, false
	}
	if strings.HasSuffix(header, ".") && len(words) > headerPeriodWordLimit {
		return "", Rule{}, false
	}
	rule, ok := matchRule(header)
	if !ok {
		return "", Rule{}, false
	}
	return header, rule, true
}

// sectionFiller may appear in a header next to the section keywords.
var sectionFiller = map[string]bool{
	"AND": true, "&": true, "+": true, "/": true, "BLOCK": true, "SECTION": true,
	"PART": true, "WORK": true, "SETS": true, "SET": true,
}

// onlySectionWords reports whether every word of s belongs to a section rule
// keyword, a filler word, or is punctuation and numbers.
func onlySectionWords(s string) bool {
	rest := s
	for _, r := range Rules {
		for _, p := range r.Patterns {
			rest = p.ReplaceAllString(rest, " ")
		}
	}
	for _, w := range strings.Fields(rest) {
		w = strings.TrimFunc(w, func(r rune) bool { return unicode.IsPunct(r) && r != '&' && r != '/' })
		if w == "" || sectionFiller[strings.ToUpper(w)] || !hasLetter(w) {
			continue
		}
		return false
	}
	return true
}

// titleWords title-cases words that start with a letter and lowercases the
// rest, so "2KM ROW TEST" reads "2km Row Test".
func titleWords(s string) string {
	caser := cases.Title(language.Und)
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		if r := []rune(w); unicode.IsLetter(r[0]) {
			words[i] = caser.String(w)
		}
	}
	return strings.Join(words, " ")
}

func mostlyUpper(s string) bool {
	var letters, upper int
	for _, r := range s {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	return letters > 0 && float64(upper)/float64(letters) >= upperRatio
}

// anchorName decides whether a line inside a section names an exercise and
// returns the cleaned name.
func anchorName(line string) (string, bool) {
	s := bulletPrefix.ReplaceAllString(line, "")
	s = numberPrefix.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len([]rune(s)) > maxAnchorChars {
		return "", false
	}
	if metadataLabel.MatchString(s) || metadataOnly(s) {
		return "", false
	}
	if narrative.MatchString(s) {
		return "", false
	}
	words := strings.Fields(s)
	if len(words) > proseWordLimit && lowerDensity(s) > proseLowerDensity {
		return "", false
	}
	if strings.Contains(s, ":") && len(words) > colonWordLimit {
		return "", false
	}

	if i := strings.Index(s, ":"); i >= 0 {
		s = s[:i]
	}
	s = prescription.ReplaceAllString(s, "")
	s = strings.TrimSpace(strings.TrimRight(s, " -–—,;"))
	if s == "" || !hasLetter(s) {
		return "", false
	}
	return s, true
}

func metadataOnly(s string) bool {
	return !hasLetter(metadataToken.ReplaceAllString(s, " "))
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func lowerDensity(s string) float64 {
	runes := []rune(s)
	if len(runes) == 0 {
		return 0
	}
	lower := 0
	for _, r := range runes {
		if unicode.IsLower(r) {
			lower++
		}
	}
	return float64(lower) / float64(len(runes))
}

func rankHint(id string) int {
	if r, ok := RuleByID(id); ok {
		return r.RankHint
	}
	return math.MaxInt32
}

// confidence blends section count, exercise count, and coverage of the four
// core section categories, each normalized to [0,1].
func confidence(d Day) float64 {
	covered := map[string]bool{}
	for _, s := range d.Sections {
		if c, ok := coreCategories[s.ID]; ok {
			covered[c] = true
		}
	}
	score := 0.45*math.Min(1, float64(len(d.Sections))/6) +
		0.35*math.Min(1, float64(d.ExerciseCount())/14) +
		0.20*(float64(len(covered))/4)
	return math.Round(score*100) / 100
}
