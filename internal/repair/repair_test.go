package repair

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodexForgeBR/workout-forge/internal/identity"
	"github.com/CodexForgeBR/workout-forge/internal/plan"
	"github.com/CodexForgeBR/workout-forge/internal/sections"
	"github.com/CodexForgeBR/workout-forge/internal/template"
	"github.com/CodexForgeBR/workout-forge/internal/validate"
)

func compiled() []template.Day {
	return template.CompileWeek([]sections.Day{{
		Name: "Monday",
		Sections: []sections.Section{
			{ID: sections.Warmup, Label: "Warm-Up", Exercises: []string{"Cat Camel"}},
			{ID: sections.Strength, Label: "Strength", Exercises: []string{"Back Squat"}},
			{ID: sections.Accessory, Label: "Accessory", Exercises: []string{"DB Lateral Raise", "Face Pull"}},
		},
	}}, 6)
}

func anchorCount(t *testing.T, r *identity.Resolver, text, day, name string) int {
	t.Helper()
	d, ok := validate.FindDay(plan.Parse(text), day)
	require.True(t, ok)
	n := 0
	for _, e := range d.Entries {
		if r.AreSameExercise(e.ExerciseName, name) {
			n++
		}
	}
	return n
}

func TestRepair_EveryAnchorExactlyOnce(t *testing.T) {
	r := identity.NewResolver()
	input := `## Monday
### E1. Dumbbell Lateral Raise
- 4 x 12 @ 8 kg
- Rest: 60s
- Notes: lean away
### A1. Back Squat
- 5 x 5 @ 100 kg
### B1. Back Squat
- 3 x 5 @ 90 kg
- Rest: 120s
- Notes: pause
### Z1. Leg Press
- 3 x 12 @ 120 kg
`
	patched, sum := New(r).Repair(input, compiled())

	for _, a := range compiled()[0].Anchors() {
		assert.Equal(t, 1, anchorCount(t, r, patched, "Monday", a.ExerciseName), a.ExerciseName)
	}
	assert.Equal(t, 1, sum.Kept)
	assert.Equal(t, 1, sum.Repaired)
	assert.Equal(t, 2, sum.Inserted)
	assert.Equal(t, 2, sum.Dropped)
	require.Len(t, sum.Days, 1)
	assert.ElementsMatch(t, []string{"Back Squat", "Leg Press"}, sum.Days[0].Dropped)
	assert.Contains(t, sum.Diff, "+++ repaired")
}

func TestRepair_CanonicalOrderAndLabels(t *testing.T) {
	r := identity.NewResolver()
	input := "## Monday\n### E1. Face Pull: 3 x 15 @ 10 kg\n- Rest: 60s\n- Notes: high elbows\n### A1. Cat Camel: 1 x 60 @ 0 kg\n- Rest: none\n- Notes: slow\n"

	patched, _ := New(r).Repair(input, compiled())
	d, ok := validate.FindDay(plan.Parse(patched), "Monday")
	require.True(t, ok)

	var labels, names []string
	for _, e := range d.Entries {
		labels = append(labels, e.BlockLabel)
		names = append(names, e.ExerciseName)
	}
	assert.Equal(t, []string{"A1", "C1", "E1", "E2"}, labels)
	assert.Equal(t, []string{"Cat Camel", "Back Squat", "DB Lateral Raise", "Face Pull"}, names)
}

func TestRepair_SynthesizedDefaults(t *testing.T) {
	r := identity.NewResolver()
	patched, sum := New(r).Repair("", compiled())
	p := plan.Parse(patched)

	require.Len(t, p.Days, 1)
	entries := p.Days[0].Entries
	require.Len(t, entries, 4)
	assert.Equal(t, 4, sum.Inserted)

	assert.Equal(t, "1 x 60 @ 0 kg", entries[0].Prescription)
	assert.Equal(t, "none", entries[0].Rest)
	assert.Equal(t, "1 x 1 @ 20 kg", entries[1].Prescription)
	assert.Equal(t, "180s", entries[1].Rest)
	assert.Equal(t, "3 x 10 @ 10 kg", entries[2].Prescription)
	assert.Equal(t, "3 x 10 @ 0 kg", entries[3].Prescription)
	for _, e := range entries {
		assert.Equal(t, plan.PlaceholderNote, e.Notes)
	}

	vs := validate.New(r, validate.Rules{}).Validate(validate.Input{Plan: p, Compiled: compiled()})
	assert.Empty(t, filter(vs, validate.CodeMissingAnchor))
	assert.Len(t, filter(vs, validate.CodeRepairPlaceholder), 4)
}

func TestRepair_LeavesOtherDaysAlone(t *testing.T) {
	r := identity.NewResolver()
	input := "## Tuesday\nKeep this intro.\n### A1. Sled Push: 6 x 20 @ 40 kg\n"
	patched, _ := New(r).Repair(input, compiled())

	assert.True(t, strings.HasPrefix(patched, "## Tuesday\nKeep this intro.\n\n### A1. Sled Push\n- 6 x 20 @ 40 kg\n"))
	assert.Contains(t, patched, "\n## Monday\n")
}

func TestRepair_Idempotent(t *testing.T) {
	r := identity.NewResolver()
	first, _ := New(r).Repair("## Monday\n### C1. Back Squat: 5 x 5 @ 100 kg\n", compiled())
	second, sum := New(r).Repair(first, compiled())

	assert.Equal(t, first, second)
	assert.False(t, sum.Changed())
}

func filter(vs []validate.Violation, code string) []validate.Violation {
	var out []validate.Violation
	for _, v := range vs {
		if v.Code == code {
			out = append(out, v)
		}
	}
	return out
}

func TestRepair_HandHeldDefaultForAliasedMovement(t *testing.T) {
	r := identity.NewResolver()
	week := template.CompileWeek([]sections.Day{{
		Name: "Thursday",
		Sections: []sections.Section{
			{ID: sections.Accessory, Label: "Accessory", Exercises: []string{"Hammer Curl (Neutral Grip)", "Goblet Squat"}},
		},
	}}, 6)

	patched, _ := New(r).Repair("", week)
	entries := plan.Parse(patched).Days[0].Entries
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, "3 x 10 @ 10 kg", e.Prescription, e.ExerciseName)
	}
}
