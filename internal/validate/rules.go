package validate

// AttachmentRule requires an isolation-pressing movement to rotate cable
// attachments across the days it is allowed on.
type AttachmentRule struct {
	Exercise       string   `yaml:"exercise" json:"exercise"`
	Days           []string `yaml:"days" json:"days"`
	MinAttachments int      `yaml:"min_attachments" json:"min_attachments"`
}

// ForbiddenAttachment bans one attachment for an exercise on one day.
type ForbiddenAttachment struct {
	Day        string `yaml:"day" json:"day"`
	Exercise   string `yaml:"exercise" json:"exercise"`
	Attachment string `yaml:"attachment" json:"attachment"`
}

// GripRule forbids repeating the same grip for flexion movements on two
// consecutive designated days.
type GripRule struct {
	Days []string `yaml:"days" json:"days"`
}

// Rules holds the hard-rule parameters. The zero value disables every
// configurable rule; the structural rules always run.
type Rules struct {
	ForbiddenExercises   []string              `yaml:"forbidden_exercises" json:"forbidden_exercises"`
	CarryDays            []string              `yaml:"carry_days" json:"carry_days"`
	IsolationPress       *AttachmentRule       `yaml:"isolation_press" json:"isolation_press,omitempty"`
	ForbiddenAttachments []ForbiddenAttachment `yaml:"forbidden_attachments" json:"forbidden_attachments"`
	GripRotation         *GripRule             `yaml:"grip_rotation" json:"grip_rotation,omitempty"`
}

// DefaultRules returns the built-in program rules.
func DefaultRules() Rules {
	return Rules{
		ForbiddenExercises: []string{"Upright Row", "Behind-the-Neck Press"},
		CarryDays:          []string{"Friday"},
		IsolationPress: &AttachmentRule{
			Exercise:       "Triceps Pressdown",
			Days:           []string{"Monday", "Wednesday", "Friday"},
			MinAttachments: 2,
		},
		GripRotation: &GripRule{Days: []string{"Tuesday", "Thursday", "Saturday"}},
	}
}
