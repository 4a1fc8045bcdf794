package sections

import "regexp"

// Section IDs. The template compiler keys its rank table on these.
const (
	Warmup       = "warmup"
	Power        = "power"
	Strength     = "strength"
	Backoff      = "backoff"
	Accessory    = "accessory"
	Core         = "core"
	Conditioning = "conditioning"
	Cooldown     = "cooldown"
)

// Rule is one static section definition. Rules are tried in slice order and
// the first rule whose pattern matches a header wins.
type Rule struct {
	ID       string
	Label    string
	RankHint int
	Patterns []*regexp.Regexp
}

func patterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(`(?i)` + e)
	}
	return out
}

// Rules is ordered so compound headers land in the narrower section:
// "STRENGTH BACK-OFF" is a back-off section, "CORE FINISHER" is core.
var Rules = []Rule{
	{ID: Warmup, Label: "Warm-Up", RankHint: 10, Patterns: patterns(`\bWARM[\s-]?UP\b`, `\bPREP(ARATION)?\b`, `\bMOBILITY\b`, `\bACTIVATION\b`, `\bRAMP\b`)},
	{ID: Cooldown, Label: "Cool-Down", RankHint: 70, Patterns: patterns(`\bCOOL[\s-]?DOWN\b`, `\bRECOVERY\b`, `\bSTRETCH(ING)?\b`, `\bDOWN[\s-]?REGULAT`)},
	{ID: Backoff, Label: "Back-Off", RankHint: 40, Patterns: patterns(`\bBACK[\s-]?OFF\b`, `\bDROP\s+SETS?\b`)},
	{ID: Power, Label: "Power", RankHint: 20, Patterns: patterns(`\bPOWER\b`, `\bPLYO`, `\bJUMPS?\b`, `\bEXPLOSIVE\b`, `\bBUILD(\s|-)?UP\b`, `\bBUILD\b`, `\bPRIMER\b`, `\bSPEED\b`)},
	{ID: Strength, Label: "Strength", RankHint: 30, Patterns: patterns(`\bSTRENGTH\b`, `\bMAIN\b`, `\bPRIMARY\b`, `\bWORKING\s+SETS\b`, `\bKEY\s+LIFTS?\b`, `\bHEAVY\b`)},
	{ID: Accessory, Label: "Accessory", RankHint: 50, Patterns: patterns(`\bACCESSOR(Y|IES)\b`, `\bASSISTANCE\b`, `\bAUXILIARY\b`, `\bSUPPLEMENTAL\b`, `\bHYPERTROPHY\b`, `\bARMS\b`, `\bPUMP\b`)},
	{ID: Core, Label: "Core", RankHint: 55, Patterns: patterns(`\bCORE\b`, `\bABS\b`, `\bTRUNK\b`, `\bMIDLINE\b`)},
	{ID: Conditioning, Label: "Conditioning", RankHint: 60, Patterns: patterns(`\bCONDITIONING\b`, `\bMETCON\b`, `\bFINISHER\b`, `\bCARDIO\b`, `\bENGINE\b`, `\bINTERVALS?\b`, `\bBENCHMARK\b`, `\bTEST\b`)},
}

// coreCategories are the four section kinds that drive the coverage term of
// the confidence score.
var coreCategories = map[string]string{
	Warmup:       Warmup,
	Strength:     Strength,
	Accessory:    Accessory,
	Core:         Accessory,
	Conditioning: Conditioning,
}

// RuleByID returns the rule registered under id.
func RuleByID(id string) (Rule, bool) {
	for _, r := range Rules {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}

func matchRule(header string) (Rule, bool) {
	for _, r := range Rules {
		for _, p := range r.Patterns {
			if p.MatchString(header) {
				return r, true
			}
		}
	}
	return Rule{}, false
}
