package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const (
	stateFileName   = "current-state.json"
	sessionFileName = "session.json"
	sessionsDir     = "sessions"
)

// Artifacts are the raw files kept for one attempt.
type Artifacts struct {
	Prompt     string
	Response   string
	Plan       string
	Violations any
}

// Manager owns the on-disk layout of a single session.
type Manager struct {
	root string
	id   string
	now  func() time.Time
}

// NewManager starts a session under root with a fresh id.
func NewManager(root string) *Manager {
	return &Manager{root: root, id: uuid.NewString(), now: time.Now}
}

func (m *Manager) SessionID() string { return m.id }

// Dir is the session directory.
func (m *Manager) Dir() string {
	return filepath.Join(m.root, sessionsDir, m.id)
}

// AttemptDir is the artifact directory for attempt n (1-based).
func (m *Manager) AttemptDir(n int) string {
	return filepath.Join(m.Dir(), fmt.Sprintf("attempt-%d", n))
}

// Begin creates the session directory and returns the initial state.
func (m *Manager) Begin(provider, model string, maxCorrections int) (*SessionState, error) {
	if err := InitStateDir(m.Dir()); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	ts := m.timestamp()
	s := &SessionState{
		SchemaVersion:  SchemaVersion,
		SessionID:      m.id,
		StartedAt:      ts,
		LastUpdated:    ts,
		Status:         StatusInProgress,
		Phase:          PhaseGenerate,
		Provider:       provider,
		Model:          model,
		MaxCorrections: maxCorrections,
		Attempts:       []AttemptRecord{},
	}
	return s, m.Save(s)
}

// Save stamps LastUpdated and writes the state to the session directory and
// to the root pointer file.
func (m *Manager) Save(s *SessionState) error {
	s.LastUpdated = m.timestamp()
	if err := SaveState(s, m.Dir(), sessionFileName); err != nil {
		return err
	}
	return SaveState(s, m.root, stateFileName)
}

// SaveAttempt writes the artifacts for attempt n. Empty text fields are
// skipped.
func (m *Manager) SaveAttempt(n int, a Artifacts) error {
	dir := m.AttemptDir(n)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create attempt dir: %w", err)
	}
	files := []struct {
		name, body string
	}{
		{"prompt.txt", a.Prompt},
		{"response.txt", a.Response},
		{"plan.md", a.Plan},
	}
	for _, f := range files {
		if f.body == "" {
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, f.name), []byte(f.body), 0644); err != nil {
			return fmt.Errorf("write %s: %w", f.name, err)
		}
	}
	if a.Violations != nil {
		data, err := json.MarshalIndent(a.Violations, "", "    ")
		if err != nil {
			return fmt.Errorf("marshal violations: %w", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "violations.json"), data, 0644); err != nil {
			return fmt.Errorf("write violations.json: %w", err)
		}
	}
	return nil
}

func (m *Manager) timestamp() string {
	return m.now().UTC().Format(time.RFC3339)
}

// SaveState persists the session state as indented JSON.
func SaveState(s *SessionState, dir, name string) error {
	data, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

// LoadState reads the most recent session state from the state directory.
func LoadState(dir string) (*SessionState, error) {
	path := filepath.Join(dir, stateFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var s SessionState
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal state: %w", err)
	}
	return &s, nil
}

// InitStateDir creates the state directory if it doesn't exist.
func InitStateDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
