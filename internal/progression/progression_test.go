package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodexForgeBR/workout-forge/internal/identity"
)

func rpe(v float64) *float64 { return &v }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		rpe  *float64
		want Signal
	}{
		{"keep phrasing", "3x12 @ 16kg, keep the same weight", nil, HoldLock},
		{"dont increase", "don't increase yet", nil, HoldLock},
		{"struggle", "last set was tough", nil, HoldLock},
		{"failed", "failed rep 5", nil, HoldLock},
		{"high rpe", "3x10 @ 20kg", rpe(9.5), HoldLock},
		{"easy", "felt easy", nil, Progress},
		{"could do more", "could do more reps", nil, Progress},
		{"low rpe", "3x10 @ 20kg", rpe(6.5), Progress},
		{"rpe in text", "3x10 @ 20kg RPE 9", nil, HoldLock},
		{"neutral", "3x10 @ 20kg", nil, Neutral},
		{"mid rpe", "3x10", rpe(8), Neutral},
		{"text beats rpe", "felt easy", rpe(9.5), Progress},
		{"hold beats progress", "easy but keep the weight", nil, HoldLock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, _, _ := Classify(tt.text, tt.rpe)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRPE(t *testing.T) {
	v, ok := ParseRPE("top set RPE 8.5")
	assert.True(t, ok)
	assert.InDelta(t, 8.5, v, 1e-9)

	v, ok = ParseRPE("felt like 7 rpe")
	assert.True(t, ok)
	assert.InDelta(t, 7.0, v, 1e-9)

	_, ok = ParseRPE("RPE 12")
	assert.False(t, ok)
	_, ok = ParseRPE("no effort noted")
	assert.False(t, ok)
}

func TestBuild_HoldKeepsTargets(t *testing.T) {
	r := identity.NewResolver()
	d, ok := Build(r, "Thursday", "Hammer Curl", []Log{
		{Label: "wk3", Text: "3 x 12 @ 16 kg, tough last set"},
	})

	require.True(t, ok)
	assert.Equal(t, HoldLock, d.Signal)
	assert.Equal(t, "Hammer Curl (Neutral Grip)", d.CanonicalExercise)
	assert.True(t, d.HasTarget)
	assert.Equal(t, 12, d.TargetReps)
	assert.InDelta(t, 16.0, d.TargetLoad, 1e-9)
}

func TestBuild_ProgressIncrements(t *testing.T) {
	r := identity.NewResolver()

	d, _ := Build(r, "Monday", "DB Lateral Raise", []Log{{Text: "4x12 @ 8kg easy"}})
	assert.InDelta(t, 10.0, d.TargetLoad, 1e-9)

	d, _ = Build(r, "Monday", "Back Squat", []Log{{Text: "5x5 @ 100kg easy"}})
	assert.InDelta(t, 102.5, d.TargetLoad, 1e-9)

	d, _ = Build(r, "Thursday", "DB Hammer Curl", []Log{{Text: "3x12 @ 16kg felt easy"}})
	assert.InDelta(t, 18.0, d.TargetLoad, 1e-9)

	d, _ = Build(r, "Thursday", "Hammer Curl (Neutral Grip)", []Log{{Text: "3x12 @ 15kg felt easy"}})
	assert.InDelta(t, 18.0, d.TargetLoad, 1e-9, "hand-held loads round up to an even step")

	d, _ = Build(r, "Monday", "Pull-Up", []Log{{Text: "4x8 felt easy"}})
	assert.Equal(t, 9, d.TargetReps)
}

func TestBuild_UsesNewestNonEmptyLog(t *testing.T) {
	r := identity.NewResolver()
	d, ok := Build(r, "Monday", "Back Squat", []Log{
		{Label: "wk4", Text: "  "},
		{Label: "wk3", Text: "5x5 @ 100kg", RPE: rpe(6)},
		{Label: "wk2", Text: "5x5 @ 95kg failed"},
	})

	require.True(t, ok)
	assert.Equal(t, Progress, d.Signal)
	assert.Equal(t, "5x5 @ 100kg", d.SourceLog)
}

func TestBuild_NoLogs(t *testing.T) {
	_, ok := Build(identity.NewResolver(), "Monday", "Back Squat", []Log{{Text: ""}})
	assert.False(t, ok)
}

func TestBuildAllAndFormat(t *testing.T) {
	r := identity.NewResolver()
	logs := map[string][]Log{"Back Squat": {{Text: "5x5 @ 100kg keep it"}}}
	ds := BuildAll(r, []Request{{"Monday", "Back Squat"}, {"Monday", "Row Erg"}}, func(name string) []Log {
		return logs[name]
	})

	require.Len(t, ds, 1)
	out := FormatDirectives(ds)
	assert.Contains(t, out, "Monday / Back Squat: HOLD_LOCK -> 5 reps @ 100 kg")
	assert.Equal(t, "No prior logs.", FormatDirectives(nil))
}
