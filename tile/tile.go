package tile

import "fmt"

// Tile 牌枚举
//
// 编码规则 (Tenhou wire ids):
// - 0..35   万子 (man), 9 ranks × 4 copies
// - 36..71  筒子 (pin)
// - 72..107 索子 (sou)
// - 108..135 字牌 (honors), 7 kinds × 4 copies
//
// The first copy of the five in each numeral suit (ids 16, 52, 88) is the
// red five.
type Tile int

const (
	TileNone Tile = -2 // no tile (e.g. cleared tsumohai)
	TileBack Tile = -1 // face-down / unknown tile

	MinTile Tile = 0
	MaxTile Tile = 135
)

var ErrInvalidTile = fmt.Errorf("invalid tile id")

// Check 校验 id 是否是合法的实体牌。Sentinels (TileNone, TileBack) are
// rejected too: callers must branch on them before reaching the codec.
func Check(t Tile) error {
	if t < MinTile || t > MaxTile {
		return fmt.Errorf("%w: %d", ErrInvalidTile, int(t))
	}
	return nil
}

// Kind 获取归一化种类 (0..33)：同种 4 张实体牌映射到同一个 kind。
// Red fives share the kind of the ordinary five.
func (t Tile) Kind() int {
	return int(t) / 4
}

// Suit 花色
func (t Tile) Suit() Suit {
	if t < MinTile || t > MaxTile {
		return SuitInvalid
	}
	if t >= 108 {
		return Honor
	}
	return Suit(int(t) / 36)
}

// Rank 获取牌面序号：数牌 0..8 (即 1..9)，字牌 0..6 (东南西北白發中)。
func (t Tile) Rank() int {
	if t >= 108 {
		return (int(t) - 108) / 4
	}
	return t.Kind() % 9
}

// Copy 同种 4 张中的第几张 (0..3)。
func (t Tile) Copy() int {
	return int(t) % 4
}

// IsRedFive 赤五（赤ドラ）: exactly ids 16, 52, 88.
func (t Tile) IsRedFive() bool {
	return t == RedFiveMan || t == RedFivePin || t == RedFiveSou
}

// IsHonor reports whether the tile is a wind or dragon.
func (t Tile) IsHonor() bool {
	return t >= 108 && t <= MaxTile
}

// Normalize 返回同种牌的代表 id (kind*4)，用于宝牌匹配和贴图查找。
func (t Tile) Normalize() Tile {
	return Tile(t.Kind() * 4)
}

// SameKind reports whether two physical tiles are the same kind, red fives
// included.
func (t Tile) SameKind(other Tile) bool {
	return t.Kind() == other.Kind()
}

// FromKind 由种类和第几张复原实体牌 id。
func FromKind(kind, copy int) Tile {
	return Tile(kind*4 + copy)
}

var honorNames = []string{"E", "S", "W", "N", "Hk", "Ht", "C"}

func (t Tile) String() string {
	switch {
	case t == TileNone:
		return "None"
	case t == TileBack:
		return "Back"
	case t < MinTile || t > MaxTile:
		return "Invalid"
	case t.IsHonor():
		return honorNames[t.Rank()]
	}

	rank := t.Rank() + 1
	if t.IsRedFive() {
		rank = 0 // conventional shorthand: 0m/0p/0s
	}
	return fmt.Sprintf("%d%c", rank, "mps"[t.Suit()])
}
