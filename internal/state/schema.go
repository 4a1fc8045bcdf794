package state

// SessionState is the persisted record of one plan-forging session.
// Written to <state dir>/sessions/<id>/session.json and mirrored to
// <state dir>/current-state.json.
type SessionState struct {
	SchemaVersion  int             `json:"schema_version"`
	SessionID      string          `json:"session_id"`
	StartedAt      string          `json:"started_at"`
	LastUpdated    string          `json:"last_updated"`
	Status         string          `json:"status"`
	Phase          string          `json:"phase"`
	Provider       string          `json:"provider"`
	Model          string          `json:"model"`
	MaxCorrections int             `json:"max_corrections"`
	Attempt        int             `json:"attempt"`
	BestAttempt    int             `json:"best_attempt"`
	InputHash      string          `json:"input_hash,omitempty"`
	OutputFile     string          `json:"output_file,omitempty"`
	LastFeedback   string          `json:"last_feedback"`
	Attempts       []AttemptRecord `json:"attempts"`
}

// AttemptRecord summarizes one generate-repair-validate round.
type AttemptRecord struct {
	Number       int          `json:"number"`
	Empty        bool         `json:"empty"`
	Error        string       `json:"error,omitempty"`
	Violations   int          `json:"violations"`
	Codes        []string     `json:"codes"`
	Repair       RepairCounts `json:"repair"`
	EditDistance int          `json:"edit_distance"`
}

type RepairCounts struct {
	Kept     int `json:"kept"`
	Repaired int `json:"repaired"`
	Inserted int `json:"inserted"`
	Dropped  int `json:"dropped"`
}

const SchemaVersion = 1

// Status constants
const (
	StatusInProgress  = "IN_PROGRESS"
	StatusInterrupted = "INTERRUPTED"
	StatusComplete    = "COMPLETE"
	StatusUnresolved  = "UNRESOLVED"
	StatusFailed      = "FAILED"
)

// Phase constants
const (
	PhaseGenerate = "generate"
	PhaseRepair   = "repair"
	PhaseValidate = "validate"
	PhaseCorrect  = "correct"
	PhaseDone     = "done"
)
