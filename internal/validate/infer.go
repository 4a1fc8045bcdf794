package validate

import (
	"regexp"
	"strings"
)

// Grips.
const (
	GripNeutral   = "neutral"
	GripPronated  = "pronated"
	GripSupinated = "supinated"
)

var (
	explicitGrip = regexp.MustCompile(`(?i)\b(neutral|pronated|supinated|overhand|underhand|palms?[\s-]up|palms?[\s-]down|hammer|reverse)[\s-]+grip\b`)

	nameGripCues = []struct {
		re   *regexp.Regexp
		grip string
	}{
		{regexp.MustCompile(`(?i)\b(hammer|rope|cross[\s-]?body)\b`), GripNeutral},
		{regexp.MustCompile(`(?i)\breverse\b`), GripPronated},
		{regexp.MustCompile(`(?i)\b(spider|preacher|incline|ez[\s-]?bar|drag|concentration|bayesian)\b`), GripSupinated},
	}

	noteGripCues = []struct {
		re   *regexp.Regexp
		grip string
	}{
		{regexp.MustCompile(`(?i)\b(neutral|thumbs[\s-]up|palms\s+facing(\s+each\s+other|\s+in))\b`), GripNeutral},
		{regexp.MustCompile(`(?i)\b(pronated|overhand|palms[\s-]down)\b`), GripPronated},
		{regexp.MustCompile(`(?i)\b(supinated|underhand|palms[\s-]up)\b`), GripSupinated},
	}

	attachments = []struct {
		re   *regexp.Regexp
		name string
	}{
		{regexp.MustCompile(`(?i)\brope\b`), "rope"},
		{regexp.MustCompile(`(?i)\bv[\s-]?(bar|handle)\b`), "v-bar"},
		{regexp.MustCompile(`(?i)\bez[\s-]?bar\b`), "ez-bar"},
		{regexp.MustCompile(`(?i)\bstraight[\s-]?bar\b`), "straight-bar"},
		{regexp.MustCompile(`(?i)\b(single[\s-]?(handle|arm)|d[\s-]handle)\b`), "single-handle"},
		{regexp.MustCompile(`(?i)\bbands?\b`), "band"},
	}
)

func canonicalGrip(word string) string {
	w := strings.ToLower(strings.ReplaceAll(word, "-", " "))
	switch {
	case w == "neutral" || w == "hammer":
		return GripNeutral
	case w == "pronated" || w == "overhand" || w == "reverse" || strings.Contains(w, "down"):
		return GripPronated
	case w == "supinated" || w == "underhand" || strings.Contains(w, "up"):
		return GripSupinated
	}
	return ""
}

// InferGrip infers the grip of a flexion movement. An explicit "<grip> grip"
// phrase in the name or notes wins, then cues in the exercise name, then
// grip words in the notes. Notes that mention more than one grip give no
// signal.
func InferGrip(name, notes string) string {
	for _, s := range []string{name, notes} {
		if m := explicitGrip.FindStringSubmatch(s); m != nil {
			if g := canonicalGrip(m[1]); g != "" {
				return g
			}
		}
	}
	for _, c := range nameGripCues {
		if c.re.MatchString(name) {
			return c.grip
		}
	}
	found := ""
	for _, c := range noteGripCues {
		if !c.re.MatchString(notes) {
			continue
		}
		if found != "" {
			return ""
		}
		found = c.grip
	}
	return found
}

// InferAttachment returns the cable attachment named in the exercise name,
// falling back to the notes, or "".
func InferAttachment(name, notes string) string {
	for _, s := range []string{name, notes} {
		for _, a := range attachments {
			if a.re.MatchString(s) {
				return a.name
			}
		}
	}
	return ""
}
