package prompt

import (
	"fmt"
	"strings"

	"github.com/CodexForgeBR/workout-forge/internal/validate"
)

// Context is the material shared by generation and correction prompts.
type Context struct {
	Directives string // rendered trainer template
	History    string // rendered progression directives, may be empty
	HardRules  string // rendered program rules
}

// BuildGeneratePrompt constructs the first generation prompt.
func BuildGeneratePrompt(c Context) string {
	return fill(GenerateTemplate, c)
}

// BuildCorrectionPrompt constructs a follow-up prompt carrying the
// validator's feedback and the plan it was raised against.
func BuildCorrectionPrompt(c Context, previousPlan, feedback string) string {
	prompt := CorrectTemplate
	prompt = strings.ReplaceAll(prompt, "{{FEEDBACK}}", feedback)
	prompt = strings.ReplaceAll(prompt, "{{PREVIOUS_PLAN}}", strings.TrimSpace(previousPlan))
	return fill(prompt, c)
}

func fill(prompt string, c Context) string {
	prompt = strings.ReplaceAll(prompt, "{{DIRECTIVES}}", strings.TrimRight(c.Directives, "\n"))

	// History section is dropped entirely when there is nothing to show
	if strings.TrimSpace(c.History) != "" {
		section := strings.ReplaceAll(HistorySection, "{{HISTORY}}", strings.TrimRight(c.History, "\n"))
		prompt = strings.ReplaceAll(prompt, "{{HISTORY_SECTION}}", section)
	} else {
		prompt = strings.ReplaceAll(prompt, "{{HISTORY_SECTION}}", "")
	}

	rules := strings.TrimRight(c.HardRules, "\n")
	if rules == "" {
		rules = "- none beyond the output format"
	}
	prompt = strings.ReplaceAll(prompt, "{{HARD_RULES}}", rules)
	prompt = strings.ReplaceAll(prompt, "{{FORMAT_RULES}}", FormatRules)
	return prompt
}

// FormatHardRules renders the configurable program rules as prompt bullets.
func FormatHardRules(r validate.Rules) string {
	var b strings.Builder
	if len(r.ForbiddenExercises) > 0 {
		fmt.Fprintf(&b, "- Never program: %s.\n", strings.Join(r.ForbiddenExercises, ", "))
	}
	if len(r.CarryDays) > 0 {
		fmt.Fprintf(&b, "- Loaded carries only on %s.\n", strings.Join(r.CarryDays, ", "))
	}
	if p := r.IsolationPress; p != nil && p.MinAttachments > 1 {
		fmt.Fprintf(&b, "- %s on %s: use at least %d different cable attachments across those days and name the attachment.\n",
			p.Exercise, strings.Join(p.Days, ", "), p.MinAttachments)
	}
	for _, f := range r.ForbiddenAttachments {
		ex := f.Exercise
		if ex == "" {
			ex = "any exercise"
		}
		fmt.Fprintf(&b, "- No %s attachment for %s on %s.\n", f.Attachment, ex, f.Day)
	}
	if g := r.GripRotation; g != nil && len(g.Days) > 1 {
		fmt.Fprintf(&b, "- Curls on %s: never repeat the same grip on consecutive days; write the grip as \"<neutral|pronated|supinated> grip\".\n",
			strings.Join(g.Days, ", "))
	}
	return b.String()
}
