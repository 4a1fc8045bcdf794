package prompt

import _ "embed"

// Template files embedded at compile time
var (
	//go:embed templates/generate.txt
	GenerateTemplate string

	//go:embed templates/correct.txt
	CorrectTemplate string

	//go:embed templates/history-section.txt
	HistorySection string

	//go:embed templates/format-rules.txt
	FormatRules string

	//go:embed templates/system.txt
	SystemPrompt string
)
