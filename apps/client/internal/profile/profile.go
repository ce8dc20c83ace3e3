package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"golang.org/x/crypto/bcrypt"
)

const defaultLocalDBName = "tenhou_profiles.db"

var (
	ErrProfileExists = errors.New("profile already exists")
	ErrNotFound      = errors.New("profile not found")
	ErrBadPassphrase = errors.New("wrong passphrase")
)

// Profile 一条保存的登录资料。天凤 ID 形如 "ID01234567-abcdefgh"，可以
// 加口令锁住，口令只存 bcrypt 散列。
type Profile struct {
	Name       string
	Locked     bool
	CreatedAt  time.Time
	LastUsedAt time.Time
}

type Store struct {
	db *sql.DB
}

func OpenFromEnv() (*Store, error) {
	path, err := databasePathFromEnv()
	if err != nil {
		return nil, err
	}
	return Open(path)
}

func Open(dbPath string) (*Store, error) {
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
	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save 保存一条资料。passphrase 为空表示不上锁。
func (s *Store) Save(name, tenhouID, passphrase string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("empty profile name")
	}
	if strings.TrimSpace(tenhouID) == "" {
		return fmt.Errorf("empty tenhou id")
	}

	var hash string
	if passphrase != "" {
		raw, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		hash = string(raw)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	nowMs := time.Now().UTC().UnixMilli()
	_, err := s.db.ExecContext(ctx, `
INSERT INTO profiles (
    name, tenhou_id, passphrase_hash, created_at_ms, last_used_at_ms
)
VALUES (?, ?, ?, ?, ?)
`, name, tenhouID, hash, nowMs, nowMs)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrProfileExists
		}
		return err
	}
	return nil
}

// Unlock 取出天凤 ID。上锁的资料必须给对口令。
func (s *Store) Unlock(name, passphrase string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var tenhouID, hash string
	err := s.db.QueryRowContext(ctx, `
SELECT tenhou_id, passphrase_hash
FROM profiles
WHERE name = ?
`, strings.TrimSpace(name)).Scan(&tenhouID, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	if hash != "" {
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(passphrase)) != nil {
			return "", ErrBadPassphrase
		}
	}

	nowMs := time.Now().UTC().UnixMilli()
	_, _ = s.db.ExecContext(ctx, `
UPDATE profiles
SET last_used_at_ms = ?
WHERE name = ?
`, nowMs, name)
	return tenhouID, nil
}

func (s *Store) List() ([]Profile, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
SELECT name, passphrase_hash, created_at_ms, last_used_at_ms
FROM profiles
ORDER BY last_used_at_ms DESC
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Profile
	for rows.Next() {
		var p Profile
		var hash string
		var createdMs, usedMs int64
		if err := rows.Scan(&p.Name, &hash, &createdMs, &usedMs); err != nil {
			return nil, err
		}
		p.Locked = hash != ""
		p.CreatedAt = time.UnixMilli(createdMs).UTC()
		p.LastUsedAt = time.UnixMilli(usedMs).UTC()
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) Delete(name string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE name = ?`, strings.TrimSpace(name))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`
CREATE TABLE IF NOT EXISTS profiles (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    tenhou_id TEXT NOT NULL,
    passphrase_hash TEXT NOT NULL DEFAULT '',
    created_at_ms INTEGER NOT NULL,
    last_used_at_ms INTEGER NOT NULL
)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_profiles_name_ci ON profiles(lower(name))`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func databasePathFromEnv() (string, error) {
	if v := strings.TrimSpace(os.Getenv("PROFILE_DATABASE_PATH")); v != "" {
		return filepath.Clean(v), nil
	}
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userConfigDir, "TenhouLite", defaultLocalDBName), nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
