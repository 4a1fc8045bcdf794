// Package history stores prior training logs in SQLite or PostgreSQL.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/CodexForgeBR/workout-forge/internal/identity"
	"github.com/CodexForgeBR/workout-forge/internal/progression"
)

// timeLayout sorts lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Record is one logged session of one exercise.
type Record struct {
	ID           string    `json:"id"`
	Day          string    `json:"day"`
	Exercise     string    `json:"exercise"`
	CanonicalKey string    `json:"canonical_key"`
	Label        string    `json:"label"`
	Log          string    `json:"log"`
	RPE          *float64  `json:"rpe,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProgressionLog converts the record for the directive builder.
func (r Record) ProgressionLog() progression.Log {
	label := r.Label
	if label == "" {
		label = r.CreatedAt.Format("2006-01-02")
	}
	return progression.Log{Label: label, Text: r.Log, RPE: r.RPE}
}

// Store is a handle on the log database.
type Store struct {
	DSN      string
	driver   string
	db       *sql.DB
	resolver *identity.Resolver
}

// Open opens or creates the log database. A postgres:// or postgresql://
// DSN selects PostgreSQL; anything else is a SQLite file path.
func Open(dsn string, resolver *identity.Resolver) (*Store, error) {
	driver, source, err := parseDSN(dsn)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if driver == "sqlite" {
		db.SetMaxOpenConns(1)
	}

	s := &Store{DSN: dsn, driver: driver, db: db, resolver: resolver}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func parseDSN(dsn string) (driver, source string, err error) {
	dsn = strings.TrimSpace(dsn)
	switch {
	case dsn == "":
		return "", "", fmt.Errorf("history DSN is empty")
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return "postgres", dsn, nil
	}
	path := strings.TrimPrefix(strings.TrimPrefix(dsn, "sqlite://"), "file:")
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", "", fmt.Errorf("resolve history db path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", "", fmt.Errorf("ensure history db dir: %w", err)
	}
	return "sqlite", abs, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) ensureSchema() error {
	schema := `
CREATE TABLE IF NOT EXISTS training_logs (
	id TEXT PRIMARY KEY,
	day TEXT NOT NULL,
	exercise TEXT NOT NULL,
	canonical_key TEXT NOT NULL,
	label TEXT NOT NULL DEFAULT '',
	log_text TEXT NOT NULL,
	rpe REAL,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_logs_key_created ON training_logs(canonical_key, created_at);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create history schema: %w", err)
	}
	return nil
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (s *Store) rebind(query string) string {
	if s.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Append stores rec, filling its ID, canonical key and timestamp.
func (s *Store) Append(ctx context.Context, rec Record) (Record, error) {
	if strings.TrimSpace(rec.Exercise) == "" {
		return Record{}, fmt.Errorf("append log: exercise is required")
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.CanonicalKey = s.resolver.CanonicalKey(rec.Exercise)
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	rec.CreatedAt = rec.CreatedAt.UTC()

	var rpe sql.NullFloat64
	if rec.RPE != nil {
		rpe = sql.NullFloat64{Float64: *rec.RPE, Valid: true}
	}
	_, err := s.db.ExecContext(ctx, s.rebind(`INSERT INTO training_logs
		(id, day, exercise, canonical_key, label, log_text, rpe, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		rec.ID, rec.Day, rec.Exercise, rec.CanonicalKey, rec.Label, rec.Log, rpe, rec.CreatedAt.Format(timeLayout))
	if err != nil {
		return Record{}, fmt.Errorf("insert log: %w", err)
	}
	return rec, nil
}

// Recent returns up to limit records for exercise, newest first. Records
// are matched by canonical key, so aliases share one history.
func (s *Store) Recent(ctx context.Context, exercise string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := s.db.QueryContext(ctx, s.rebind(`SELECT id, day, exercise, canonical_key, label, log_text, rpe, created_at
		FROM training_logs WHERE canonical_key = ?
		ORDER BY created_at DESC, id DESC LIMIT ?`),
		s.resolver.CanonicalKey(exercise), limit)
	if err != nil {
		return nil, fmt.Errorf("query logs: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var rpe sql.NullFloat64
		var created string
		if err := rows.Scan(&rec.ID, &rec.Day, &rec.Exercise, &rec.CanonicalKey, &rec.Label, &rec.Log, &rpe, &created); err != nil {
			return nil, fmt.Errorf("scan log: %w", err)
		}
		if rpe.Valid {
			v := rpe.Float64
			rec.RPE = &v
		}
		if t, err := time.Parse(timeLayout, created); err == nil {
			rec.CreatedAt = t
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read logs: %w", err)
	}
	return out, nil
}

// ForExercises returns the recent records of each name, keyed by the name
// as given. Names with no history are absent from the map.
func (s *Store) ForExercises(ctx context.Context, names []string, limit int) (map[string][]Record, error) {
	out := make(map[string][]Record, len(names))
	for _, n := range names {
		if _, done := out[n]; done {
			continue
		}
		recs, err := s.Recent(ctx, n, limit)
		if err != nil {
			return nil, fmt.Errorf("history for %q: %w", n, err)
		}
		if len(recs) > 0 {
			out[n] = recs
		}
	}
	return out, nil
}

// Source adapts fetched records for progression.BuildAll.
func Source(byName map[string][]Record) progression.Source {
	return func(exercise string) []progression.Log {
		recs := byName[exercise]
		logs := make([]progression.Log, len(recs))
		for i, r := range recs {
			logs[i] = r.ProgressionLog()
		}
		return logs
	}
}
