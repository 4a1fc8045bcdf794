package identity

import "strings"

// Body-part categories used by the fuzzy-match guard.
const (
	CategoryBiceps       = "biceps"
	CategoryTriceps      = "triceps"
	CategoryShoulders    = "shoulders"
	CategoryHinge        = "hinge"
	CategoryLegs         = "legs"
	CategoryConditioning = "conditioning"
	CategoryPull         = "pull"
	CategoryPush         = "push"
	CategoryCarry        = "carry"
	CategoryCore         = "core"
)

// categoryKeywords is scanned in order; the first keyword found in a key
// decides the category. Multi-word keywords sit ahead of the single words
// they contain ("leg press" before "press", "rower" before "row").
var categoryKeywords = []struct {
	keyword  string
	category string
}{
	{"leg curl", CategoryLegs},
	{"nordic curl", CategoryLegs},
	{"curl", CategoryBiceps},
	{"pressdown", CategoryTriceps},
	{"pushdown", CategoryTriceps},
	{"skullcrusher", CategoryTriceps},
	{"triceps", CategoryTriceps},
	{"kickback", CategoryTriceps},
	{"lateral raise", CategoryShoulders},
	{"front raise", CategoryShoulders},
	{"rear delt", CategoryShoulders},
	{"face pull", CategoryShoulders},
	{"carry", CategoryCarry},
	{"farmer", CategoryCarry},
	{"suitcase", CategoryCarry},
	{"yoke", CategoryCarry},
	{"rower", CategoryConditioning},
	{"skierg", CategoryConditioning},
	{"ski erg", CategoryConditioning},
	{"erg", CategoryConditioning},
	{"air bike", CategoryConditioning},
	{"bike", CategoryConditioning},
	{"run", CategoryConditioning},
	{"sprint", CategoryConditioning},
	{"sled", CategoryConditioning},
	{"burpee", CategoryConditioning},
	{"jump rope", CategoryConditioning},
	{"deadlift", CategoryHinge},
	{"good-morning", CategoryHinge},
	{"good morning", CategoryHinge},
	{"hip thrust", CategoryHinge},
	{"swing", CategoryHinge},
	{"hinge", CategoryHinge},
	{"leg press", CategoryLegs},
	{"squat", CategoryLegs},
	{"lunge", CategoryLegs},
	{"step-up", CategoryLegs},
	{"leg extension", CategoryLegs},
	{"pull-up", CategoryPull},
	{"chin-up", CategoryPull},
	{"pulldown", CategoryPull},
	{"pullover", CategoryPull},
	{"row", CategoryPull},
	{"plank", CategoryCore},
	{"crunch", CategoryCore},
	{"sit-up", CategoryCore},
	{"rollout", CategoryCore},
	{"pallof", CategoryCore},
	{"dead bug", CategoryCore},
	{"hollow", CategoryCore},
	{"press", CategoryPush},
	{"bench", CategoryPush},
	{"push-up", CategoryPush},
	{"dip", CategoryPush},
	{"fly", CategoryPush},
}

// categoryOf returns the category of a normalized key, or "" when no keyword
// applies. Keywords match whole tokens only.
func categoryOf(key string) string {
	padded := " " + strings.NewReplacer("(", " ", ")", " ", "/", " ").Replace(key) + " "
	for _, kw := range categoryKeywords {
		if strings.Contains(padded, " "+kw.keyword+" ") {
			return kw.category
		}
	}
	return ""
}

var handHeldTokens = []string{"dumbbell", "kettlebell"}

// fixedImplementTokens name equipment that rules out a hand-held implement.
var fixedImplementTokens = []string{"barbell", "ez-bar", "trap-bar", "t-bar", "cable", "machine", "smith", "band"}

// implementIn returns the first implement token in toks, or "".
func implementIn(toks map[string]struct{}) string {
	for _, list := range [][]string{handHeldTokens, fixedImplementTokens} {
		for _, tok := range list {
			if _, ok := toks[tok]; ok {
				return tok
			}
		}
	}
	return ""
}

func isHandHeldImplement(impl string) bool {
	for _, h := range handHeldTokens {
		if impl == h {
			return true
		}
	}
	return false
}

var mainLiftKeys = []string{
	"back squat", "front squat", "deadlift", "trap-bar deadlift", "sumo deadlift",
	"bench press", "overhead press", "push press", "power clean", "hang clean",
	"clean", "clean and jerk", "snatch", "power snatch",
}

var notMainQualifiers = []string{"romanian", "stiff-leg", "single-leg", "deficit"}
