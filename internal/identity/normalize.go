package identity

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// qualifierPatterns strip qualifiers that never change which exercise a name
// refers to. Order matters: the longer set/round forms must run before the
// bare forms they contain.
var qualifierPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\s*\((?:warm[\s-]?up|ramp[\s-]?up|calibration|back[\s-]?off|top|working)\s+sets?\b[^)]*\)`),
	regexp.MustCompile(`(?i)\s*\((?:warm[\s-]?up|ramp[\s-]?up|calibration|back[\s-]?off|top set|optional|superset|primer|test)[^)]*\)`),
	regexp.MustCompile(`(?i)\s*\((?:sets?|rounds?)\s*\d+[^)]*\)`),
	regexp.MustCompile(`(?i)\s*\((?:each side|per side|each arm|per arm|each leg|per leg|e/s|es)\)`),
	regexp.MustCompile(`(?i)\s+[-–—]+\s*(?:warm[\s-]?up|back[\s-]?off|top|working)\s+sets?\b.*$`),
	regexp.MustCompile(`(?i)\s+[-–—]+\s*(?:warm[\s-]?up|calibration|back[\s-]?off|top set|test|primer|optional)\b.*$`),
}

// abbreviation rewrites operate on the lowercased name. Each entry unifies
// every spelling of one implement or movement to a single form.
var abbreviations = []struct {
	pattern *regexp.Regexp
	replace string
}{
	{regexp.MustCompile(`\bdbs?\b`), "dumbbell"},
	{regexp.MustCompile(`\bdumb[\s-]?bells?\b`), "dumbbell"},
	{regexp.MustCompile(`\bbbs?\b`), "barbell"},
	{regexp.MustCompile(`\bbar[\s-]?bells?\b`), "barbell"},
	{regexp.MustCompile(`\bkbs?\b`), "kettlebell"},
	{regexp.MustCompile(`\bkettle[\s-]?bells?\b`), "kettlebell"},
	{regexp.MustCompile(`\bez[\s-]?bar\b|\bez\b`), "ez-bar"},
	{regexp.MustCompile(`\b(?:hex|trap)[\s-]?bar\b`), "trap-bar"},
	{regexp.MustCompile(`\bt[\s-]?bar\b`), "t-bar"},
	{regexp.MustCompile(`\bohp\b`), "overhead press"},
	{regexp.MustCompile(`\brdls?\b`), "romanian deadlift"},
	{regexp.MustCompile(`\bsldls?\b`), "stiff-leg deadlift"},
	{regexp.MustCompile(`\bdead[\s-]lifts?\b`), "deadlift"},
	{regexp.MustCompile(`\b(?:single|one|1)[\s-]?(arm|leg)\b`), "single-$1"},
	{regexp.MustCompile(`\bsa\b`), "single-arm"},
	{regexp.MustCompile(`\bsl\b`), "single-leg"},
	{regexp.MustCompile(`\bpull[\s-]?ups?\b`), "pull-up"},
	{regexp.MustCompile(`\bchin[\s-]?ups?\b`), "chin-up"},
	{regexp.MustCompile(`\bpush[\s-]?ups?\b`), "push-up"},
	{regexp.MustCompile(`\bsit[\s-]?ups?\b`), "sit-up"},
	{regexp.MustCompile(`\bstep[\s-]?ups?\b`), "step-up"},
	{regexp.MustCompile(`\bpull[\s-]?downs?\b`), "pulldown"},
	{regexp.MustCompile(`\bpush[\s-]?downs?\b`), "pushdown"},
	{regexp.MustCompile(`\bpress[\s-]?downs?\b`), "pressdown"},
	{regexp.MustCompile(`\bskull[\s-]?crushers?\b`), "skullcrusher"},
	{regexp.MustCompile(`\bski[\s-]?ergs?\b`), "skierg"},
	{regexp.MustCompile(`\brow[\s-]?ergs?\b|\browers?\b|\bconcept ?2\b|\bc2\b`), "rower"},
	{regexp.MustCompile(`\bassault[\s-]?bikes?\b|\bair[\s-]?bikes?\b|\becho[\s-]?bikes?\b`), "air bike"},
	{regexp.MustCompile(`\bfarmers?'?s?\s+(carry|carries|walks?)\b`), "farmer carry"},
	{regexp.MustCompile(`\btri(?:cep)?s?\b`), "triceps"},
	{regexp.MustCompile(`\bbi(?:cep)?s?\b`), "biceps"},
	{regexp.MustCompile(`\bincl\b`), "incline"},
	{regexp.MustCompile(`\bdecl\b`), "decline"},
	{regexp.MustCompile(`\bext\b`), "extension"},
}

// plurals is the fixed vocabulary of exercise nouns that get singularized.
var plurals = map[string]string{
	"curls":         "curl",
	"raises":        "raise",
	"squats":        "squat",
	"deadlifts":     "deadlift",
	"presses":       "press",
	"rows":          "row",
	"lunges":        "lunge",
	"dips":          "dip",
	"extensions":    "extension",
	"flyes":         "fly",
	"flys":          "fly",
	"flies":         "fly",
	"shrugs":        "shrug",
	"carries":       "carry",
	"swings":        "swing",
	"thrusters":     "thruster",
	"cleans":        "clean",
	"snatches":      "snatch",
	"crunches":      "crunch",
	"planks":        "plank",
	"bridges":       "bridge",
	"thrusts":       "thrust",
	"kickbacks":     "kickback",
	"jumps":         "jump",
	"hops":          "hop",
	"bounds":        "bound",
	"sprints":       "sprint",
	"burpees":       "burpee",
	"walks":         "walk",
	"pullovers":     "pullover",
	"rollouts":      "rollout",
	"get-ups":       "get-up",
	"getups":        "get-up",
	"good-mornings": "good-morning",
	"mornings":      "morning",
	"throws":        "throw",
	"slams":         "slam",
	"pushdowns":     "pushdown",
	"pressdowns":    "pressdown",
	"pulldowns":     "pulldown",
	"skullcrushers": "skullcrusher",
}

var (
	spaceRun     = regexp.MustCompile(`\s+`)
	identityJunk = regexp.MustCompile(`[^\p{L}\p{N}\s\-()/+.]`)
	bracketGap   = regexp.MustCompile(`\(\s+|\s+\)`)
)

// foldDiacritics maps "Presse à cuisses" and "Presse a cuisses" to the same
// spelling before any other rewrite runs.
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// stripQualifiers removes non-identity qualifiers and surrounding whitespace
// while preserving the original casing.
func stripQualifiers(name string) string {
	s := strings.TrimSpace(name)
	for _, p := range qualifierPatterns {
		s = p.ReplaceAllString(s, "")
	}
	s = spaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// normalize produces the lookup form of a name. Rewrites can expose new
// qualifier or abbreviation matches, so the pass repeats until it is stable.
func normalize(name string) string {
	s := normalizeOnce(name)
	for i := 0; i < 8; i++ {
		next := normalizeOnce(s)
		if next == s {
			break
		}
		s = next
	}
	return s
}

func normalizeOnce(name string) string {
	s := stripQualifiers(foldDiacritics(name))
	s = strings.ToLower(s)
	s = strings.NewReplacer("’", "", "'", "", "&", " and ").Replace(s)
	s = identityJunk.ReplaceAllString(s, " ")
	for _, a := range abbreviations {
		s = a.pattern.ReplaceAllString(s, a.replace)
	}
	words := strings.Fields(s)
	for i, w := range words {
		if single, ok := plurals[w]; ok {
			words[i] = single
		}
	}
	s = strings.Join(words, " ")
	s = bracketGap.ReplaceAllStringFunc(s, strings.TrimSpace)
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// displayForm is the cleaned, title-preserved rendering of an unknown name.
// Fully lowercase input is title-cased; anything else keeps its casing.
func displayForm(name string) string {
	s := stripQualifiers(name)
	if s == "" {
		return ""
	}
	if s == strings.ToLower(s) {
		return cases.Title(language.Und, cases.NoLower).String(s)
	}
	return s
}

var tokenSplit = regexp.MustCompile(`[^\p{L}\p{N}\-]+`)

// tokens splits a normalized key into its identity tokens.
func tokens(key string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range tokenSplit.Split(key, -1) {
		t = strings.Trim(t, "-")
		if t == "" {
			continue
		}
		set[t] = struct{}{}
	}
	return set
}
