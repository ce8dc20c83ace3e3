package ledger

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"tenhou-lite/mahjong"
)

const (
	ModeOff      = "off"
	ModeSQLite   = "sqlite"
	ModePostgres = "postgres"
)

var ErrNotFound = errors.New("not found")

// Record 一局的结算摘要，由牌桌快照推出来。
type Record struct {
	PlayedAt time.Time `json:"played_at"`
	Round    int       `json:"round"`
	Honba    int       `json:"honba"`

	// Winner 和牌座位，流局为 mahjong.InvalidSeat。
	Winner int `json:"winner"`

	// Scores 结算后点数（显示单位），Deltas 本局增减。
	Scores []int `json:"scores"`
	Deltas []int `json:"deltas"`
}

// Service 对局账本。
type Service interface {
	RecordRound(ctx context.Context, rec Record) error
	ListRecent(ctx context.Context, limit int) ([]Record, error)
	Close() error
}

// FromSnapshots 由一局前后的快照拼出记录。
func FromSnapshots(before, after mahjong.TableSnapshot, winner int) Record {
	rec := Record{
		PlayedAt: time.Now().UTC(),
		Round:    before.Round,
		Honba:    before.Honba,
		Winner:   winner,
	}
	for i, p := range after.Players {
		rec.Scores = append(rec.Scores, p.Score)
		if i < len(before.Players) {
			rec.Deltas = append(rec.Deltas, p.Score-before.Players[i].Score)
		}
	}
	return rec
}

type noopService struct{}

func (noopService) RecordRound(context.Context, Record) error { return nil }

func (noopService) ListRecent(context.Context, int) ([]Record, error) {
	return []Record{}, nil
}

func (noopService) Close() error { return nil }

func ledgerModeFromEnv() string {
	raw := strings.ToLower(strings.TrimSpace(os.Getenv("LEDGER_MODE")))
	switch raw {
	case "", ModeOff, "memory", "noop":
		return ModeOff
	case ModeSQLite, "local":
		return ModeSQLite
	case ModePostgres, "db", "postgresql":
		return ModePostgres
	default:
		return raw
	}
}

// NewServiceFromEnv 按 LEDGER_MODE 选后端：off（默认）、sqlite、postgres。
func NewServiceFromEnv() (Service, string, error) {
	mode := ledgerModeFromEnv()
	switch mode {
	case ModeOff:
		return noopService{}, mode, nil
	case ModeSQLite:
		service, err := NewSQLiteServiceFromEnv()
		if err != nil {
			return nil, mode, err
		}
		return service, mode, nil
	case ModePostgres:
		service, err := NewPostgresServiceFromEnv()
		if err != nil {
			return nil, mode, err
		}
		return service, mode, nil
	default:
		return nil, mode, errors.New("invalid LEDGER_MODE " + mode)
	}
}
