// Package validate checks a generated plan against the program's hard rules
// and against the compiled template.
package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/CodexForgeBR/workout-forge/internal/days"
	"github.com/CodexForgeBR/workout-forge/internal/identity"
	"github.com/CodexForgeBR/workout-forge/internal/plan"
	"github.com/CodexForgeBR/workout-forge/internal/progression"
	"github.com/CodexForgeBR/workout-forge/internal/template"
)

// Violation codes.
const (
	CodeRangeInPrescription = "range_in_prescription"
	CodeOddDBLoad           = "odd_db_load"
	CodeForbiddenExercise   = "forbidden_exercise"
	CodeCarryPlacement      = "carry_placement"
	CodeAttachmentVariety   = "attachment_variety"
	CodeForbiddenAttachment = "forbidden_attachment"
	CodeGripRepeat          = "grip_repeat"
	CodeHoldLock            = "hold_lock_violation"
	CodeMissingMainLoad     = "missing_main_load"
	CodeRepairPlaceholder   = "repair_placeholder"
	CodeSectionOrderDrift   = "section_order_drift"
	CodeMissingAnchor       = "missing_anchor"
)

// Violation is one failed hard rule.
type Violation struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Day      string `json:"day"`
	Exercise string `json:"exercise"`
}

// Input bundles everything one validation pass looks at. Compiled and
// Directives may be empty.
type Input struct {
	Plan       plan.Plan
	Compiled   []template.Day
	Directives []progression.Directive
}

// Validator runs the rule set. It holds no per-call state and is safe for
// concurrent use.
type Validator struct {
	resolver *identity.Resolver
	rules    Rules
}

// New returns a Validator using resolver for identity matching.
func New(resolver *identity.Resolver, rules Rules) *Validator {
	return &Validator{resolver: resolver, rules: rules}
}

type check func(v *Validator, in Input) []Violation

var checks = []check{
	(*Validator).checkRanges,
	(*Validator).checkOddLoads,
	(*Validator).checkForbiddenExercises,
	(*Validator).checkCarryPlacement,
	(*Validator).checkAttachmentVariety,
	(*Validator).checkForbiddenAttachments,
	(*Validator).checkGripRotation,
	(*Validator).checkHoldLocks,
	(*Validator).checkMainLoads,
	(*Validator).checkPlaceholders,
	(*Validator).checkSectionOrder,
	(*Validator).checkFidelity,
}

// Validate runs every rule and returns the violations in a stable order.
// It never fails; an empty result means the plan passed.
func (v *Validator) Validate(in Input) []Violation {
	var out []Violation
	for _, c := range checks {
		out = append(out, c(v, in)...)
	}
	Sort(out)
	return out
}

// Sort orders violations by day, code, exercise and message.
func Sort(vs []Violation) {
	sort.SliceStable(vs, func(i, j int) bool {
		a, b := vs[i], vs[j]
		if ia, ib := days.Index(a.Day), days.Index(b.Day); ia != ib {
			return ia < ib
		}
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		if a.Exercise != b.Exercise {
			return a.Exercise < b.Exercise
		}
		return a.Message < b.Message
	})
}

// Codes returns the distinct codes in vs, sorted.
func Codes(vs []Violation) []string {
	seen := map[string]bool{}
	var out []string
	for _, v := range vs {
		if !seen[v.Code] {
			seen[v.Code] = true
			out = append(out, v.Code)
		}
	}
	sort.Strings(out)
	return out
}

// FormatFeedback renders violations as the bullet list embedded in a
// correction prompt.
func FormatFeedback(vs []Violation) string {
	if len(vs) == 0 {
		return ""
	}
	var b strings.Builder
	for _, v := range vs {
		where := v.Day
		if v.Exercise != "" {
			if where != "" {
				where += " / "
			}
			where += v.Exercise
		}
		if where == "" {
			where = "plan"
		}
		fmt.Fprintf(&b, "- [%s] %s: %s\n", v.Code, where, v.Message)
	}
	return b.String()
}

func violation(code string, e plan.Entry, format string, args ...any) Violation {
	return Violation{Code: code, Day: e.Day, Exercise: e.ExerciseName, Message: fmt.Sprintf(format, args...)}
}

func inDays(day string, list []string) bool {
	for _, d := range list {
		if days.Same(day, d) {
			return true
		}
	}
	return false
}
