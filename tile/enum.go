package tile

// Normalized kind indices (0..33). These are Tile ids divided by 4.
const (
	KindMan1 = iota
	KindMan2
	KindMan3
	KindMan4
	KindMan5
	KindMan6
	KindMan7
	KindMan8
	KindMan9
	KindPin1
	KindPin2
	KindPin3
	KindPin4
	KindPin5
	KindPin6
	KindPin7
	KindPin8
	KindPin9
	KindSou1
	KindSou2
	KindSou3
	KindSou4
	KindSou5
	KindSou6
	KindSou7
	KindSou8
	KindSou9
	KindEast
	KindSouth
	KindWest
	KindNorth
	KindHaku
	KindHatsu
	KindChun
)

// 赤五实体牌 id：每个数牌花色中五的第一张。
const (
	RedFiveMan Tile = 16
	RedFivePin Tile = 52
	RedFiveSou Tile = 88
)

// TotalTiles is the size of the full four-player wall.
const TotalTiles = 136

// TerminalKinds 幺九牌 (1 and 9 of each numeral suit).
var TerminalKinds = []int{KindMan1, KindMan9, KindPin1, KindPin9, KindSou1, KindSou9}

// HonorKinds 字牌种类。
var HonorKinds = []int{KindEast, KindSouth, KindWest, KindNorth, KindHaku, KindHatsu, KindChun}
