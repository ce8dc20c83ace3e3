package ledger

import (
	"context"
	"testing"
	"time"

	"tenhou-lite/mahjong"
)

func TestSQLiteRoundTrip(t *testing.T) {
	s, err := NewSQLiteService(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteService: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	rec := Record{
		PlayedAt: time.Now().UTC(),
		Round:    3,
		Honba:    1,
		Winner:   2,
		Scores:   []int{25000, 17000, 33000, 25000},
		Deltas:   []int{0, -8000, 8000, 0},
	}
	if err := s.RecordRound(ctx, rec); err != nil {
		t.Fatalf("RecordRound: %v", err)
	}

	got, err := s.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("records = %d, want 1", len(got))
	}
	if got[0].Round != 3 || got[0].Winner != 2 {
		t.Fatalf("record = %+v", got[0])
	}
	if got[0].Scores[2] != 33000 || got[0].Deltas[1] != -8000 {
		t.Fatalf("scores = %v deltas = %v", got[0].Scores, got[0].Deltas)
	}
}

func TestFromSnapshots(t *testing.T) {
	tbl, err := mahjong.NewTable(mahjong.DefaultConfig())
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	if err := tbl.InitRound(0, 0, 0, 0, 32, []int{250, 250, 250, 250}, nil); err != nil {
		t.Fatalf("InitRound: %v", err)
	}
	before := tbl.Snapshot()
	if err := tbl.SetScores([]int{250, 170, 330, 250}); err != nil {
		t.Fatalf("SetScores: %v", err)
	}
	after := tbl.Snapshot()

	rec := FromSnapshots(before, after, 2)
	if rec.Winner != 2 {
		t.Fatalf("winner = %d", rec.Winner)
	}
	if rec.Scores[2] != 33000 || rec.Deltas[1] != -8000 {
		t.Fatalf("scores = %v deltas = %v", rec.Scores, rec.Deltas)
	}
}
