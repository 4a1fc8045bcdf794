// Package progression turns prior training logs into per-exercise load
// directives for the next plan.
package progression

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/CodexForgeBR/workout-forge/internal/identity"
)

// Signal is the progression decision for one exercise.
type Signal string

const (
	HoldLock Signal = "hold_lock"
	Progress Signal = "progress"
	Neutral  Signal = "neutral"
)

// RPE thresholds.
const (
	HoldRPE     = 9.0
	ProgressRPE = 7.0
)

// Load increments in kilograms.
const (
	handHeldStep = 2.0
	barbellStep  = 2.5
)

// Log is one prior session record for an exercise. RPE is nil when the
// athlete did not report one explicitly.
type Log struct {
	Label string   `json:"label"`
	Text  string   `json:"text"`
	RPE   *float64 `json:"rpe,omitempty"`
}

// Directive is the derived instruction for one (day, exercise) pair.
type Directive struct {
	Day               string  `json:"day_name"`
	Exercise          string  `json:"exercise_name"`
	CanonicalExercise string  `json:"canonical_exercise"`
	Signal            Signal  `json:"signal"`
	Reason            string  `json:"reason"`
	TargetReps        int     `json:"target_reps,omitempty"`
	TargetLoad        float64 `json:"target_load,omitempty"`
	HasTarget         bool    `json:"has_target"`
	ParsedRPE         float64 `json:"parsed_rpe,omitempty"`
	HasRPE            bool    `json:"has_rpe"`
	SourceLog         string  `json:"source_log"`
}

var (
	holdPhrase     = regexp.MustCompile(`(?i)\b(?:keep|stay|hold)\b[^.;,]*\b(?:weight|load|same|here|there|it)\b|\bsame\s+(?:weight|load)\b|\bdon'?t\s+(?:increase|go\s+up|add)\b|\bdo\s+not\s+increase\b`)
	strugglePhrase = regexp.MustCompile(`(?i)\b(?:heavy|tough|struggled|struggling|failed|grindy)\b`)
	progressPhrase = regexp.MustCompile(`(?i)\b(?:easy|too\s+light|could\s+(?:do|have\s+done)\s+more|more\s+in\s+the\s+tank)\b`)
	rpeRe          = regexp.MustCompile(`(?i)\brpe\s*[:=@]?\s*(\d+(?:\.\d+)?)|(\d+(?:\.\d+)?)\s*rpe\b`)
	setRe          = regexp.MustCompile(`(?i)(\d+)\s*[x×]\s*(\d+)(?:\s*(?:@|at)\s*(\d+(?:\.\d+)?)\s*(kg|kgs|lb|lbs)?)?`)
)

// Classify decides the signal for a log line. Text phrasing beats the
// numeric RPE when both are present. The returned RPE is the explicit value
// when given, otherwise one parsed from the text.
func Classify(text string, explicit *float64) (sig Signal, reason string, rpe float64, hasRPE bool) {
	if explicit != nil {
		rpe, hasRPE = *explicit, true
	} else {
		rpe, hasRPE = ParseRPE(text)
	}
	switch {
	case holdPhrase.MatchString(text):
		return HoldLock, "athlete asked to keep the load", rpe, hasRPE
	case strugglePhrase.MatchString(text):
		return HoldLock, "last session was a struggle", rpe, hasRPE
	case progressPhrase.MatchString(text):
		return Progress, "last session felt easy", rpe, hasRPE
	case hasRPE && rpe >= HoldRPE:
		return HoldLock, fmt.Sprintf("RPE %s is at or above %s", formatNumber(rpe), formatNumber(HoldRPE)), rpe, hasRPE
	case hasRPE && rpe <= ProgressRPE:
		return Progress, fmt.Sprintf("RPE %s is at or below %s", formatNumber(rpe), formatNumber(ProgressRPE)), rpe, hasRPE
	}
	return Neutral, "no clear signal", rpe, hasRPE
}

// ParseRPE extracts "RPE 8.5" or "8 RPE" from free text. Values outside
// 1..10 are ignored.
func ParseRPE(text string) (float64, bool) {
	m := rpeRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	raw := m[1]
	if raw == "" {
		raw = m[2]
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 1 || v > 10 {
		return 0, false
	}
	return v, true
}

// lastSet returns reps and load of the last "sets x reps @ load" in text.
func lastSet(text string) (reps int, load float64, hasLoad, ok bool) {
	all := setRe.FindAllStringSubmatch(text, -1)
	if len(all) == 0 {
		return 0, 0, false, false
	}
	m := all[len(all)-1]
	reps, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, 0, false, false
	}
	if m[3] != "" {
		if v, err := strconv.ParseFloat(m[3], 64); err == nil {
			load, hasLoad = v, true
			if strings.HasPrefix(strings.ToLower(m[4]), "lb") {
				load = math.Round(v*0.45359237*10) / 10
			}
		}
	}
	return reps, load, hasLoad, true
}

// Build derives the directive for one exercise from its logs, newest first.
// The newest non-empty log is used; ok is false when every log is empty.
func Build(r *identity.Resolver, day, exercise string, logs []Log) (Directive, bool) {
	var src *Log
	for i := range logs {
		if strings.TrimSpace(logs[i].Text) != "" {
			src = &logs[i]
			break
		}
	}
	if src == nil {
		return Directive{}, false
	}

	sig, reason, rpe, hasRPE := Classify(src.Text, src.RPE)
	d := Directive{
		Day:               day,
		Exercise:          exercise,
		CanonicalExercise: r.CanonicalName(exercise),
		Signal:            sig,
		Reason:            reason,
		ParsedRPE:         rpe,
		HasRPE:            hasRPE,
		SourceLog:         strings.TrimSpace(src.Text),
	}

	reps, load, hasLoad, ok := lastSet(src.Text)
	if !ok {
		return d, true
	}
	d.TargetReps, d.TargetLoad, d.HasTarget = reps, load, true
	if sig != Progress {
		return d, true
	}
	switch {
	case hasLoad && load > 0 && r.IsHandHeld(exercise):
		d.TargetLoad = evenCeil(load + handHeldStep)
	case hasLoad && load > 0:
		d.TargetLoad = load + barbellStep
	default:
		d.TargetReps++
	}
	return d, true
}

// evenCeil rounds up to the next even kilogram so dumbbell loads stay on the
// rack's increments.
func evenCeil(v float64) float64 {
	return math.Ceil(v/2) * 2
}

// Request names one (day, exercise) pair to build a directive for.
type Request struct {
	Day      string
	Exercise string
}

// Source supplies logs for an exercise, newest first.
type Source func(exercise string) []Log

// BuildAll builds directives for every request that has a non-empty log, in
// request order.
func BuildAll(r *identity.Resolver, reqs []Request, src Source) []Directive {
	var out []Directive
	for _, q := range reqs {
		if d, ok := Build(r, q.Day, q.Exercise, src(q.Exercise)); ok {
			out = append(out, d)
		}
	}
	return out
}

// FormatDirectives renders the history block embedded in generation prompts.
func FormatDirectives(ds []Directive) string {
	if len(ds) == 0 {
		return "No prior logs."
	}
	var b strings.Builder
	for _, d := range ds {
		fmt.Fprintf(&b, "- %s / %s: %s", d.Day, d.CanonicalExercise, strings.ToUpper(string(d.Signal)))
		if d.HasTarget {
			fmt.Fprintf(&b, " -> %d reps", d.TargetReps)
			if d.TargetLoad > 0 {
				fmt.Fprintf(&b, " @ %s kg", formatNumber(d.TargetLoad))
			}
		}
		fmt.Fprintf(&b, " (%s). Last log: %q\n", d.Reason, d.SourceLog)
	}
	return b.String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
