package identity

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalKey_StripsWarmupQualifier(t *testing.T) {
	r := NewResolver()

	assert.Equal(t, r.CanonicalKey("Back Squat"), r.CanonicalKey("Back Squat (Warm-up Set 3)"))
	assert.Equal(t, r.CanonicalKey("Back Squat"), r.CanonicalKey("back squat — calibration"))
	assert.Equal(t, r.CanonicalKey("Back Squat"), r.CanonicalKey("  BACK   SQUAT  "))
}

func TestCanonicalKey_UnifiesAbbreviationsAndPlurals(t *testing.T) {
	r := NewResolver()

	tests := []struct {
		a, b string
	}{
		{"DB Lateral Raise", "Dumbbell Lateral Raises"},
		{"KB Swing", "Kettlebell Swings"},
		{"Pull Ups", "pull-up"},
		{"OHP", "Overhead Press"},
		{"RDL", "Romanian Deadlifts"},
		{"Tricep Pushdown", "Triceps Pressdown"},
		{"Farmer's Walk", "Farmer Carry"},
	}
	for _, tt := range tests {
		t.Run(tt.a, func(t *testing.T) {
			assert.Equal(t, r.CanonicalKey(tt.a), r.CanonicalKey(tt.b))
		})
	}
}

func TestCanonicalKey_Idempotent(t *testing.T) {
	r := NewResolver()
	inputs := []string{
		"Back Squat (Warm-up Set 3)",
		"DB Lateral Raise (lean-away)",
		"Hammer Curl",
		"EZ bar curls",
		"Presse à cuisses",
		"some unknown drill_name (warm_up)",
		"((weird)) input -- test",
		"",
		"   ",
		"A1. Bench",
		"Single arm DB row (each side)",
	}
	for _, in := range inputs {
		t.Run(fmt.Sprintf("%q", in), func(t *testing.T) {
			once := r.CanonicalKey(in)
			assert.Equal(t, once, r.CanonicalKey(once))
		})
	}
}

func TestCanonicalName_KnownAliasUsesGroupDisplay(t *testing.T) {
	r := NewResolver()

	assert.Equal(t, "Hammer Curl (Neutral Grip)", r.CanonicalName("DB Hammer Curl"))
	assert.Equal(t, "Pull-Up", r.CanonicalName("pullups"))
}

func TestCanonicalName_UnknownFallsThroughToCleanedInput(t *testing.T) {
	r := NewResolver()

	assert.Equal(t, "Zercher Carry Hold", r.CanonicalName("Zercher Carry Hold (warm-up)"))
	assert.Equal(t, "Sandbag Over Shoulder", r.CanonicalName("sandbag over shoulder"))
	assert.Equal(t, "", r.CanonicalName("   "))
}

func TestResolve_BaseQualifierRecomposition(t *testing.T) {
	r := NewResolver()

	id := r.Resolve("DB Lateral Raise (Lean-Away)")
	assert.Equal(t, "dumbbell lateral raise (lean-away)", id.CanonicalKey)
	assert.Equal(t, "Dumbbell Lateral Raise (Lean-Away)", id.DisplayName)

	// The bare alias spelling resolves through to the same composite key.
	assert.Equal(t, id.CanonicalKey, r.CanonicalKey("Lateral Raise (lean-away)"))
}

func TestAreSameExercise_CrossCategoryGuard(t *testing.T) {
	r := NewResolver()

	assert.False(t, r.AreSameExercise("DB Curl", "DB Press"))
	assert.False(t, r.AreSameExercise("DB Press", "DB Curl"))
	assert.False(t, r.AreSameExercise("Back Squat", "Deadlift"))
	assert.False(t, r.AreSameExercise("Deadlift", "Back Squat"))
	assert.False(t, r.AreSameExercise("Cable Curl", "Cable Pressdown"))
}

func TestAreSameExercise_Tiers(t *testing.T) {
	r := NewResolver()

	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"exact alias", "BB Bench", "Bench Press", true},
		{"containment", "Incline DB Press", "Incline Dumbbell Press Slow Eccentric", true},
		{"containment short name", "Seated Cable Row", "Seated Cable Row Wide", true},
		{"low jaccard", "Seated Cable Row", "Chest Supported Dumbbell Row", false},
		{"jaccard", "Chest Supported Dumbbell Row", "Dumbbell Chest Supported Row", true},
		{"unrelated same category", "Back Squat", "Walking Lunge", false},
		{"empty", "", "Back Squat", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.AreSameExercise(tt.a, tt.b))
			assert.Equal(t, tt.want, r.AreSameExercise(tt.b, tt.a), "must be symmetric")
		})
	}
}

func TestAreSameExercise_Symmetric(t *testing.T) {
	r := NewResolver()
	names := []string{
		"Back Squat", "Front Squat", "DB Curl", "Hammer Curl", "DB Press",
		"Bench Press", "Farmer Carry", "Suitcase Carry", "Lat Pulldown",
		"Seated Cable Row", "Row Erg", "Dumbbell Row", "Deadlift", "RDL",
	}
	for _, a := range names {
		for _, b := range names {
			assert.Equal(t, r.AreSameExercise(a, b), r.AreSameExercise(b, a), "%s vs %s", a, b)
		}
	}
}

func TestFindMatch(t *testing.T) {
	r := NewResolver()
	candidates := []string{"Goblet Squat", "Hammer Curl (Neutral Grip)", "Seated Cable Row Wide", "Seated Cable Row"}

	got, ok := r.FindMatch("DB Hammer Curl", candidates)
	require.True(t, ok)
	assert.Equal(t, "Hammer Curl (Neutral Grip)", got)

	got, ok = r.FindMatch("seated cable rows", candidates)
	require.True(t, ok)
	assert.Equal(t, "Seated Cable Row", got, "exact key beats fuzzy candidate listed first")

	_, ok = r.FindMatch("Deadlift", candidates)
	assert.False(t, ok)
}

func TestWithSwaps(t *testing.T) {
	r := NewResolver(WithSwaps(map[string]string{
		"Landmine Press": "Half-Kneeling Landmine Press",
		"Cable Fly":      "DB Fly",
	}))

	assert.Equal(t, "Half-Kneeling Landmine Press", r.CanonicalName("landmine press"))
	assert.Equal(t, r.CanonicalKey("Dumbbell Fly"), r.CanonicalKey("Cable Fly"))
	assert.Equal(t, r.CanonicalKey("Landmine Press"), r.CanonicalKey(r.CanonicalKey("Landmine Press")))
}

func TestRegister_PublishesNewTable(t *testing.T) {
	r := NewResolver()
	require.NotEqual(t, r.CanonicalKey("Back Squat"), r.CanonicalKey("SSB Squat"))

	r.Register("Back Squat", "SSB Squat")

	assert.Equal(t, r.CanonicalKey("Back Squat"), r.CanonicalKey("SSB Squat"))
}

func TestRegister_ConcurrentReaders(t *testing.T) {
	r := NewResolver()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = r.CanonicalKey("Back Squat")
				if i == 0 && j%10 == 0 {
					r.Register(fmt.Sprintf("Drill %d", j), fmt.Sprintf("drill alias %d", j))
				}
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, r.CanonicalKey("Drill 40"), r.CanonicalKey("drill alias 40"))
}

func TestClassification(t *testing.T) {
	r := NewResolver()

	assert.True(t, r.IsHandHeld("DB Lateral Raise"))
	assert.True(t, r.IsHandHeld("KB Swing"))
	assert.False(t, r.IsHandHeld("Back Squat"))

	assert.True(t, r.IsMainLift("Back Squat"))
	assert.True(t, r.IsMainLift("Bench Press"))
	assert.True(t, r.IsMainLift("Trap Bar Deadlift"))
	assert.False(t, r.IsMainLift("RDL"))
	assert.False(t, r.IsMainLift("DB Bench Press"))

	assert.True(t, r.IsHandHeld("DB Hammer Curl"))
	assert.True(t, r.IsHandHeld("Hammer Curl (Neutral Grip)"))
	assert.True(t, r.IsHandHeld("Hammer Curl"))
	assert.True(t, r.IsHandHeld("DB Goblet Squat"))
	assert.True(t, r.IsHandHeld("KB Goblet Squat"))
	assert.True(t, r.IsHandHeld("DB Bulgarian Split Squat"))
	assert.True(t, r.IsHandHeld("DB Farmer Carry"))
	assert.False(t, r.IsHandHeld("Barbell Bulgarian Split Squat"))
	assert.False(t, r.IsHandHeld("Cable Hammer Curl"))
	assert.False(t, r.IsHandHeld("EZ-Bar Curl"))
	assert.False(t, r.IsMainLift("DB Hammer Curl"))

	assert.True(t, r.IsCarry("Farmer's Walk"))
	assert.True(t, r.IsCarry("Suitcase Carry"))
	assert.False(t, r.IsCarry("Hammer Curl"))
}

func TestDefault_ResetRebuilds(t *testing.T) {
	ResetDefault()
	first := Default()
	assert.Same(t, first, Default())

	ResetDefault()
	assert.NotSame(t, first, Default())
}

func TestWithoutDefaults(t *testing.T) {
	r := NewResolver(WithoutDefaults())
	assert.Equal(t, "overhead press", r.CanonicalKey("OHP"))
	assert.NotEqual(t, r.CanonicalKey("Military Press"), r.CanonicalKey("OHP"))
}

func TestAssign_ConsumesEachCandidateOnce(t *testing.T) {
	r := NewResolver()
	got := r.Assign(
		[]string{"Back Squat", "Back Squat", "DB Lateral Raise", "Face Pull"},
		[]string{"Dumbbell Lateral Raise", "Back Squat", "Row Erg"},
	)

	assert.Equal(t, []int{1, -1, 0, -1}, got)
}

func TestAssign_ExactBeforeFuzzy(t *testing.T) {
	r := NewResolver()
	got := r.Assign(
		[]string{"Cable Row", "Seated Cable Row"},
		[]string{"Seated Cable Row"},
	)

	assert.Equal(t, []int{-1, 0}, got)
}

func TestIsHandHeld_GroupImplement(t *testing.T) {
	r := NewResolver(WithoutDefaults(), WithAliasGroups(
		AliasGroup{Canonical: "Zottman Curl", Aliases: []string{"DB Zottman"}, Implement: "DB"},
		AliasGroup{Canonical: "Landmine Press", Aliases: []string{"Landmine"}},
	))
	assert.True(t, r.IsHandHeld("Zottman Curl"))
	assert.True(t, r.IsHandHeld("Zottman Curl (seated)"))
	assert.False(t, r.IsHandHeld("Landmine"))

	r.Register("Zottman Curl", "Reverse-Supinating Curl")
	assert.True(t, r.IsHandHeld("Reverse-Supinating Curl"), "runtime registration keeps the implement")
}

func TestCategory_MultiWordKeywordsWin(t *testing.T) {
	r := NewResolver()
	assert.Equal(t, CategoryLegs, r.Category("Leg Curl"))
	assert.Equal(t, CategoryLegs, r.Category("Seated Leg Curls"))
	assert.Equal(t, CategoryBiceps, r.Category("DB Curl"))
	assert.False(t, r.AreSameExercise("Leg Curl", "Curl"))
	assert.False(t, r.AreSameExercise("Curl", "Leg Curl"))
}

func TestCategoryKeywords_LongerPhrasesFirst(t *testing.T) {
	for i, short := range categoryKeywords {
		for _, long := range categoryKeywords[i+1:] {
			assert.NotContains(t, " "+long.keyword+" ", " "+short.keyword+" ",
				"%q must be listed before %q", long.keyword, short.keyword)
		}
	}
}
