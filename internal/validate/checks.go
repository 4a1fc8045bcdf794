package validate

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/CodexForgeBR/workout-forge/internal/days"
	"github.com/CodexForgeBR/workout-forge/internal/identity"
	"github.com/CodexForgeBR/workout-forge/internal/plan"
	"github.com/CodexForgeBR/workout-forge/internal/progression"
)

var rangeRe = regexp.MustCompile(`(?i)\d\s*(?:-|–|—|to)\s*\d`)

func (v *Validator) checkRanges(in Input) []Violation {
	var out []Violation
	for _, e := range in.Plan.Entries() {
		if rangeRe.MatchString(e.Prescription) {
			out = append(out, violation(CodeRangeInPrescription, e,
				"prescription %q uses a range; give one number for reps and load", e.Prescription))
		}
	}
	return out
}

func (v *Validator) checkOddLoads(in Input) []Violation {
	var out []Violation
	for _, e := range in.Plan.Entries() {
		if !e.HasLoad || v.resolver.IsMainLift(e.ExerciseName) || !v.resolver.IsHandHeld(e.ExerciseName) {
			continue
		}
		if e.LoadKG == math.Trunc(e.LoadKG) && int64(e.LoadKG)%2 != 0 {
			out = append(out, violation(CodeOddDBLoad, e,
				"load %s kg is odd; dumbbell and kettlebell loads must be even", formatKG(e.LoadKG)))
		}
	}
	return out
}

func (v *Validator) checkForbiddenExercises(in Input) []Violation {
	var out []Violation
	for _, e := range in.Plan.Entries() {
		for _, f := range v.rules.ForbiddenExercises {
			if v.resolver.AreSameExercise(e.ExerciseName, f) {
				out = append(out, violation(CodeForbiddenExercise, e, "%s is not allowed in this program", f))
				break
			}
		}
	}
	return out
}

func (v *Validator) checkCarryPlacement(in Input) []Violation {
	if len(v.rules.CarryDays) == 0 {
		return nil
	}
	var out []Violation
	for _, e := range in.Plan.Entries() {
		if v.resolver.IsCarry(e.ExerciseName) && !inDays(e.Day, v.rules.CarryDays) {
			out = append(out, violation(CodeCarryPlacement, e,
				"carries belong on %s only", strings.Join(v.rules.CarryDays, ", ")))
		}
	}
	return out
}

func (v *Validator) checkAttachmentVariety(in Input) []Violation {
	r := v.rules.IsolationPress
	if r == nil || r.MinAttachments < 2 {
		return nil
	}
	var hits []plan.Entry
	for _, e := range in.Plan.Entries() {
		if inDays(e.Day, r.Days) && v.resolver.AreSameExercise(e.ExerciseName, r.Exercise) {
			hits = append(hits, e)
		}
	}
	if len(hits) < r.MinAttachments {
		return nil
	}
	seen := map[string]bool{}
	for _, e := range hits {
		if a := InferAttachment(e.ExerciseName, e.Notes); a != "" {
			seen[a] = true
		}
	}
	if len(seen) >= r.MinAttachments {
		return nil
	}
	last := hits[0]
	for _, e := range hits[1:] {
		if days.Index(e.Day) > days.Index(last.Day) {
			last = e
		}
	}
	return []Violation{violation(CodeAttachmentVariety, last,
		"%s appears %d times across %s but uses %d distinct attachment(s); rotate at least %d and name the attachment",
		r.Exercise, len(hits), strings.Join(r.Days, ", "), len(seen), r.MinAttachments)}
}

func (v *Validator) checkForbiddenAttachments(in Input) []Violation {
	var out []Violation
	for _, e := range in.Plan.Entries() {
		for _, f := range v.rules.ForbiddenAttachments {
			if !days.Same(e.Day, f.Day) {
				continue
			}
			if f.Exercise != "" && !v.resolver.AreSameExercise(e.ExerciseName, f.Exercise) {
				continue
			}
			if InferAttachment(e.ExerciseName, e.Notes) == f.Attachment {
				out = append(out, violation(CodeForbiddenAttachment, e,
					"the %s attachment is not allowed on %s", f.Attachment, f.Day))
			}
		}
	}
	return out
}

func (v *Validator) checkGripRotation(in Input) []Violation {
	r := v.rules.GripRotation
	if r == nil || len(r.Days) < 2 {
		return nil
	}
	grips := map[string]map[string]bool{}
	for _, e := range in.Plan.Entries() {
		if !inDays(e.Day, r.Days) || v.resolver.Category(e.ExerciseName) != identity.CategoryBiceps {
			continue
		}
		g := InferGrip(e.ExerciseName, e.Notes)
		if g == "" {
			continue
		}
		key := days.Normalize(e.Day)
		if grips[key] == nil {
			grips[key] = map[string]bool{}
		}
		grips[key][g] = true
	}

	designated := append([]string(nil), r.Days...)
	sort.SliceStable(designated, func(i, j int) bool { return days.Index(designated[i]) < days.Index(designated[j]) })

	var out []Violation
	for i := 1; i < len(designated); i++ {
		prev, cur := days.Normalize(designated[i-1]), days.Normalize(designated[i])
		for g := range grips[cur] {
			if grips[prev][g] {
				out = append(out, Violation{
					Code:    CodeGripRepeat,
					Day:     cur,
					Message: "curl grip " + g + " repeats from " + prev + "; rotate neutral, pronated and supinated grips",
				})
			}
		}
	}
	return out
}

func (v *Validator) checkHoldLocks(in Input) []Violation {
	var out []Violation
	for _, d := range in.Directives {
		if d.Signal != progression.HoldLock || !d.HasTarget {
			continue
		}
		for _, e := range in.Plan.Entries() {
			if !days.Same(e.Day, d.Day) || !v.resolver.AreSameExercise(e.ExerciseName, d.Exercise) {
				continue
			}
			reps, ok := plan.ParseReps(e.Reps)
			repsOff := !ok || reps != d.TargetReps
			loadOff := d.TargetLoad > 0 && (!e.HasLoad || math.Abs(e.LoadKG-d.TargetLoad) > 0.01)
			if repsOff || loadOff {
				out = append(out, violation(CodeHoldLock, e,
					"load is locked at %d reps @ %s kg but the plan prescribes %q",
					d.TargetReps, formatKG(d.TargetLoad), e.Prescription))
			}
		}
	}
	return out
}

func (v *Validator) checkMainLoads(in Input) []Violation {
	var out []Violation
	for _, e := range in.Plan.Entries() {
		if v.resolver.IsMainLift(e.ExerciseName) && !e.HasLoad {
			out = append(out, violation(CodeMissingMainLoad, e, "main lift needs an explicit load in kg"))
		}
	}
	return out
}

func (v *Validator) checkPlaceholders(in Input) []Violation {
	var out []Violation
	for _, e := range in.Plan.Entries() {
		if strings.Contains(e.Notes, plan.PlaceholderNote) {
			out = append(out, violation(CodeRepairPlaceholder, e,
				"this anchor was restored automatically; write its real prescription and notes"))
		}
	}
	return out
}

func formatKG(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
