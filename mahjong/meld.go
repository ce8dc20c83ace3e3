package mahjong

import "tenhou-lite/tile"

// MeldKind 副露类型
type MeldKind byte

const (
	MeldChii      MeldKind = iota // 吃：顺子，上家打出
	MeldPon                       // 碰：明刻
	MeldAnkan                     // 暗杠
	MeldDaiminkan                 // 大明杠：他家打出成杠
	MeldChakan                    // 加杠：碰升级为杠
	MeldNuki                      // 拔北（三麻专用，可累积）
)

var MeldKindDictionary = map[MeldKind]string{
	MeldChii:      "chii",
	MeldPon:       "pon",
	MeldAnkan:     "ankan",
	MeldDaiminkan: "daiminkan",
	MeldChakan:    "chakan",
	MeldNuki:      "nuki",
}

func (k MeldKind) String() string {
	if s, ok := MeldKindDictionary[k]; ok {
		return s
	}
	return "?"
}

// Meld is a materialized claim owned by exactly one player. Melds are created
// by the wire decoder and mutated in place only for the Chakan and Nuki kinds.
type Meld struct {
	Kind MeldKind

	// Who is the claiming seat, FromWho the 2-bit relative offset of the seat
	// the tile was taken from (RelSelf for self-declared melds).
	Who     int
	FromWho int

	Tiles tile.TileList

	// CalledTile is the claimed (or, for chakan, added) tile. TileNone for
	// concealed kans.
	CalledTile tile.Tile
}

// FromSeat 被鸣牌玩家的绝对座位。
func (m *Meld) FromSeat() int {
	return (m.Who + m.FromWho) % 4
}

func (m *Meld) IsKan() bool {
	return m.Kind == MeldAnkan || m.Kind == MeldDaiminkan || m.Kind == MeldChakan
}

// ClaimsDiscard reports whether this meld consumed another player's discard.
func (m *Meld) ClaimsDiscard() bool {
	switch m.Kind {
	case MeldChii, MeldPon, MeldDaiminkan:
		return true
	}
	return false
}

// Clone returns an independent copy for snapshots.
func (m *Meld) Clone() Meld {
	out := *m
	out.Tiles = m.Tiles.Clone()
	return out
}
