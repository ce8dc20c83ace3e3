package mahjong

import "tenhou-lite/tile"

// PlayerSnapshot 某一刻的座位状态深拷贝，随意持有，不会随牌局变化。
type PlayerSnapshot struct {
	Seat  int
	Name  string
	Rank  string
	Rate  float64
	Sex   string
	Score int // 显示单位

	Hand     tile.TileList
	Tsumohai tile.Tile
	Melds    []Meld

	Pond    tile.TileList
	Claimed tile.TileList
	History tile.TileList

	IsRiichi       bool
	RotatedDiscard int // pond 内下标，-1 表示没有
}

// TableSnapshot 整桌状态深拷贝，供渲染层和回放落盘使用。
type TableSnapshot struct {
	Round  int
	Honba  int
	Sticks int
	Dealer int
	Wall   int

	DoraIndicators tile.TileList
	LastDiscarder  int

	Players []PlayerSnapshot
}

// Snapshot 生成当前状态的深拷贝。
func (t *Table) Snapshot() TableSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap := TableSnapshot{
		Round:          t.round,
		Honba:          t.honba,
		Sticks:         t.sticks,
		Dealer:         t.dealer,
		Wall:           t.wall,
		DoraIndicators: t.doraIndicators.Clone(),
		LastDiscarder:  t.lastDiscarder,
		Players:        make([]PlayerSnapshot, len(t.players)),
	}
	for i, p := range t.players {
		c := p.clone()
		snap.Players[i] = PlayerSnapshot{
			Seat:           c.seat,
			Name:           c.name,
			Rank:           c.rank,
			Rate:           c.rate,
			Sex:            c.sex,
			Score:          c.Score(),
			Hand:           c.hand,
			Tsumohai:       c.tsumohai,
			Melds:          c.melds,
			Pond:           c.pond,
			Claimed:        c.claimed,
			History:        c.history,
			IsRiichi:       c.isRiichi,
			RotatedDiscard: c.rotatedIndex,
		}
	}
	return snap
}
