// Package store provides the SQLite session archive the CLI persists
// generated sessions into. The core pipeline never touches storage; the
// archive exists so sessions can be scored and listed after the fact.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/kwatanabe/classnet/internal/models"
	_ "modernc.org/sqlite" // SQLite driver
)

// SessionStore is a SQLite-backed archive of generated sessions.
// Safe for concurrent use.
type SessionStore struct {
	mu sync.RWMutex
	db *sql.DB
}

// SessionSummary is one archive row without its payloads.
type SessionSummary struct {
	ID                string             `json:"id"`
	CourseID          string             `json:"course_id"`
	Date              time.Time          `json:"date"`
	DurationMinutes   int                `json:"duration_minutes"`
	SessionType       models.SessionType `json:"session_type"`
	TotalParticipants int                `json:"total_participants"`
	TotalInteractions int                `json:"total_interactions"`
	NetworkDensity    float64            `json:"network_density"`
}

// Open creates or opens the archive at dir/classnet.db.
func Open(dir string) (*SessionStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}
	dbPath := filepath.Join(dir, "classnet.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite works best with a single writer.
	db.SetMaxOpenConns(1)

	if err := InitSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return &SessionStore{db: db}, nil
}

// Save archives one session record.
func (s *SessionStore) Save(ctx context.Context, rec *models.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	participants, err := json.Marshal(rec.Participants)
	if err != nil {
		return fmt.Errorf("encode participants: %w", err)
	}
	interactions, err := json.Marshal(rec.Interactions)
	if err != nil {
		return fmt.Errorf("encode interactions: %w", err)
	}
	metrics, err := json.Marshal(rec.Metrics)
	if err != nil {
		return fmt.Errorf("encode metrics: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO sessions
		(id, course_id, date, duration_minutes, session_type,
		 participants, interactions, metrics,
		 total_participants, total_interactions, network_density, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CourseID, rec.Date.UTC().Format(time.RFC3339Nano),
		rec.DurationMinutes, string(rec.SessionType),
		string(participants), string(interactions), string(metrics),
		rec.Metrics.TotalParticipants, rec.Metrics.TotalInteractions,
		rec.Metrics.NetworkDensity,
		time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert session %s: %w", rec.ID, err)
	}
	return nil
}

// Get retrieves one archived session by identifier. Unknown identifiers
// wrap models.ErrSessionNotFound.
func (s *SessionStore) Get(ctx context.Context, id string) (*models.SessionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, course_id, date, duration_minutes, session_type,
		       participants, interactions, metrics
		FROM sessions WHERE id = ?`, id)

	var rec models.SessionRecord
	var date, sessionType, participants, interactions, metrics string
	err := row.Scan(&rec.ID, &rec.CourseID, &date, &rec.DurationMinutes,
		&sessionType, &participants, &interactions, &metrics)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", models.ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("query session %s: %w", id, err)
	}

	rec.SessionType = models.SessionType(sessionType)
	if rec.Date, err = time.Parse(time.RFC3339Nano, date); err != nil {
		return nil, fmt.Errorf("decode session %s date: %w", id, err)
	}
	if err := json.Unmarshal([]byte(participants), &rec.Participants); err != nil {
		return nil, fmt.Errorf("decode session %s participants: %w", id, err)
	}
	if err := json.Unmarshal([]byte(interactions), &rec.Interactions); err != nil {
		return nil, fmt.Errorf("decode session %s interactions: %w", id, err)
	}
	if err := json.Unmarshal([]byte(metrics), &rec.Metrics); err != nil {
		return nil, fmt.Errorf("decode session %s metrics: %w", id, err)
	}
	return &rec, nil
}

// List returns summaries of every archived session, newest first.
func (s *SessionStore) List(ctx context.Context) ([]SessionSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, course_id, date, duration_minutes, session_type,
		       total_participants, total_interactions, network_density
		FROM sessions ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var sum SessionSummary
		var date, sessionType string
		if err := rows.Scan(&sum.ID, &sum.CourseID, &date, &sum.DurationMinutes,
			&sessionType, &sum.TotalParticipants, &sum.TotalInteractions,
			&sum.NetworkDensity); err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		sum.SessionType = models.SessionType(sessionType)
		if sum.Date, err = time.Parse(time.RFC3339Nano, date); err != nil {
			return nil, fmt.Errorf("decode session %s date: %w", sum.ID, err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Delete removes one archived session. Unknown identifiers wrap
// models.ErrSessionNotFound.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", models.ErrSessionNotFound, id)
	}
	return nil
}

// Close closes the underlying database.
func (s *SessionStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
