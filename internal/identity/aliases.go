package identity

// AliasGroup ties every known spelling of one exercise to its preferred
// display name. Canonical is itself an alias. Implement names the default
// equipment ("dumbbell", "kettlebell", "barbell") for groups whose display
// name leaves it out.
type AliasGroup struct {
	Canonical string   `yaml:"canonical"`
	Aliases   []string `yaml:"aliases"`
	Implement string   `yaml:"implement,omitempty"`
}

// defaultAliasGroups is the static alias data shipped with the binary.
var defaultAliasGroups = []AliasGroup{
	{Canonical: "Back Squat", Aliases: []string{"Barbell Back Squat", "BB Back Squat", "High Bar Squat", "Low Bar Squat", "Squat"}, Implement: "barbell"},
	{Canonical: "Front Squat", Aliases: []string{"Barbell Front Squat", "BB Front Squat"}, Implement: "barbell"},
	{Canonical: "Deadlift", Aliases: []string{"Conventional Deadlift", "Barbell Deadlift", "BB Deadlift"}, Implement: "barbell"},
	{Canonical: "Trap Bar Deadlift", Aliases: []string{"Hex Bar Deadlift", "Trap-Bar DL", "Hex Bar DL"}},
	{Canonical: "Romanian Deadlift", Aliases: []string{"RDL", "BB RDL", "Barbell RDL", "Barbell Romanian Deadlift"}, Implement: "barbell"},
	{Canonical: "Bench Press", Aliases: []string{"Barbell Bench Press", "BB Bench", "Flat Bench", "Flat Bench Press", "Bench"}, Implement: "barbell"},
	{Canonical: "Overhead Press", Aliases: []string{"OHP", "Military Press", "Barbell Overhead Press", "Standing Press", "Strict Press"}, Implement: "barbell"},
	{Canonical: "Dumbbell Bench Press", Aliases: []string{"DB Bench", "DB Bench Press", "DB Flat Press", "Flat DB Press"}, Implement: "dumbbell"},
	{Canonical: "Incline Dumbbell Press", Aliases: []string{"Incline DB Press", "DB Incline Press", "Incline DB Bench"}, Implement: "dumbbell"},
	{Canonical: "Dumbbell Lateral Raise", Aliases: []string{"DB Lateral Raise", "Lateral Raise", "Side Raise", "DB Side Raise", "Lat Raise"}, Implement: "dumbbell"},
	{Canonical: "Dumbbell Row", Aliases: []string{"DB Row", "Single-Arm DB Row", "One Arm Dumbbell Row", "SA DB Row"}, Implement: "dumbbell"},
	{Canonical: "Barbell Row", Aliases: []string{"BB Row", "Bent Over Row", "Bent-Over Barbell Row", "Pendlay Row"}, Implement: "barbell"},
	{Canonical: "Pull-Up", Aliases: []string{"Pullup", "Pull Up", "Bodyweight Pull-Up"}},
	{Canonical: "Chin-Up", Aliases: []string{"Chinup", "Chin Up"}},
	{Canonical: "Lat Pulldown", Aliases: []string{"Lat Pull-Down", "Cable Pulldown", "Wide Grip Pulldown"}},
	{Canonical: "Hammer Curl (Neutral Grip)", Aliases: []string{"Hammer Curl", "DB Hammer Curl", "Dumbbell Hammer Curl", "Neutral Grip Curl"}, Implement: "dumbbell"},
	{Canonical: "Dumbbell Curl", Aliases: []string{"DB Curl", "DB Biceps Curl", "Dumbbell Biceps Curl", "Bicep Curl"}, Implement: "dumbbell"},
	{Canonical: "EZ-Bar Curl", Aliases: []string{"EZ Curl", "EZ Bar Curl", "EZ-Bar Biceps Curl"}},
	{Canonical: "Triceps Pressdown", Aliases: []string{"Tricep Pushdown", "Triceps Pushdown", "Cable Pressdown", "Rope Pressdown", "Cable Triceps Pushdown"}},
	{Canonical: "Farmer Carry", Aliases: []string{"Farmer's Walk", "Farmers Walk", "Farmer Walk", "DB Farmer Carry"}, Implement: "dumbbell"},
	{Canonical: "Suitcase Carry", Aliases: []string{"Single-Arm Farmer Carry", "Suitcase Walk"}, Implement: "dumbbell"},
	{Canonical: "Kettlebell Swing", Aliases: []string{"KB Swing", "Russian Swing", "Two-Hand KB Swing"}, Implement: "kettlebell"},
	{Canonical: "Hip Thrust", Aliases: []string{"Barbell Hip Thrust", "BB Hip Thrust", "Glute Bridge Thrust"}, Implement: "barbell"},
	{Canonical: "Bulgarian Split Squat", Aliases: []string{"BSS", "Rear Foot Elevated Split Squat", "RFESS", "DB Bulgarian Split Squat"}, Implement: "dumbbell"},
	{Canonical: "Goblet Squat", Aliases: []string{"DB Goblet Squat", "KB Goblet Squat"}, Implement: "dumbbell"},
	{Canonical: "Row Erg", Aliases: []string{"Rower", "Rowing Machine", "Concept2 Row", "C2 Row"}},
	{Canonical: "Ski Erg", Aliases: []string{"SkiErg", "Ski"}},
	{Canonical: "Air Bike", Aliases: []string{"Assault Bike", "Echo Bike", "Airdyne"}},
	{Canonical: "Face Pull", Aliases: []string{"Cable Face Pull", "Rope Face Pull"}},
	{Canonical: "Dead Bug", Aliases: []string{"Deadbug"}},
	{Canonical: "Pallof Press", Aliases: []string{"Cable Pallof Press", "Band Pallof Press"}},
}
