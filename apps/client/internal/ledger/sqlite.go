package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const defaultLedgerDBName = "tenhou_ledger.db"

type SQLiteService struct {
	db *sql.DB
}

func NewSQLiteServiceFromEnv() (*SQLiteService, error) {
	path, err := ledgerDatabasePathFromEnv()
	if err != nil {
		return nil, err
	}
	return NewSQLiteService(path)
}

func NewSQLiteService(dbPath string) (*SQLiteService, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("empty sqlite database path")
	}
	if dbPath != ":memory:" {
		parent := filepath.Dir(dbPath)
		if parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS rounds (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    played_at_ms INTEGER NOT NULL,
    round INTEGER NOT NULL,
    honba INTEGER NOT NULL,
    winner INTEGER NOT NULL,
    scores_json TEXT NOT NULL,
    deltas_json TEXT NOT NULL
)`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteService{db: db}, nil
}

func (s *SQLiteService) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteService) RecordRound(ctx context.Context, rec Record) error {
	scores, deltas, err := marshalScores(rec)
	if err != nil {
		return err
	}
	playedAt := rec.PlayedAt
	if playedAt.IsZero() {
		playedAt = time.Now().UTC()
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO rounds (
    played_at_ms, round, honba, winner, scores_json, deltas_json
)
VALUES (?, ?, ?, ?, ?, ?)
`, playedAt.UnixMilli(), rec.Round, rec.Honba, rec.Winner, scores, deltas)
	return err
}

func (s *SQLiteService) ListRecent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT played_at_ms, round, honba, winner, scores_json, deltas_json
FROM rounds
ORDER BY played_at_ms DESC, id DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Record, 0, limit)
	for rows.Next() {
		var rec Record
		var playedMs int64
		var scores, deltas []byte
		if err := rows.Scan(&playedMs, &rec.Round, &rec.Honba, &rec.Winner, &scores, &deltas); err != nil {
			return nil, err
		}
		rec.PlayedAt = time.UnixMilli(playedMs).UTC()
		if err := json.Unmarshal(scores, &rec.Scores); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(deltas, &rec.Deltas); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func marshalScores(rec Record) (scores, deltas string, err error) {
	s, err := json.Marshal(rec.Scores)
	if err != nil {
		return "", "", err
	}
	d, err := json.Marshal(rec.Deltas)
	if err != nil {
		return "", "", err
	}
	return string(s), string(d), nil
}

func ledgerDatabasePathFromEnv() (string, error) {
	if v := strings.TrimSpace(os.Getenv("LEDGER_DATABASE_PATH")); v != "" {
		return filepath.Clean(v), nil
	}
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userConfigDir, "TenhouLite", defaultLedgerDBName), nil
}
