package mahjong

// Wind 风位
type Wind int

const (
	WindEast  Wind = iota // 东
	WindSouth             // 南
	WindWest              // 西
	WindNorth             // 北
)

var WindDictionary = map[Wind]string{
	WindEast:  "East",
	WindSouth: "South",
	WindWest:  "West",
	WindNorth: "North",
}

func (w Wind) String() string {
	if s, ok := WindDictionary[w]; ok {
		return s
	}
	return "?"
}

// Glyph 风位汉字，用于牌桌中央显示。
func (w Wind) Glyph() string {
	switch w {
	case WindEast:
		return "東"
	case WindSouth:
		return "南"
	case WindWest:
		return "西"
	}
	return "北"
}

// Relative seat offsets as used by the wire format's 2-bit from-who field.
const (
	RelSelf     = 0 // 自分
	RelShimocha = 1 // 下家
	RelToimen   = 2 // 対面
	RelKamicha  = 3 // 上家
)

const (
	// TilesInHand 起手牌数
	TilesInHand = 13
	// DeadWallTiles 王牌（岭上 + 宝牌指示牌区）
	DeadWallTiles = 14
)

const InvalidSeat = -1
