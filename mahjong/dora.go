package mahjong

import "tenhou-lite/tile"

// nextDoraKind 指示牌的后继种类：数牌 9 绕回 1，风牌 东南西北 循环，
// 三元牌 白發中 循环。
func nextDoraKind(indicator tile.Tile) int {
	k := indicator.Kind()
	switch {
	case k < 27:
		suit := k / 9
		return suit*9 + (k%9+1)%9
	case k < 31:
		return tile.KindEast + (k-tile.KindEast+1)%4
	default:
		return tile.KindHaku + (k-tile.KindHaku+1)%3
	}
}

// IsDora reports whether t is a bonus tile under the given indicators.
// 赤五另算，见 DoraValue。
func IsDora(t tile.Tile, indicators tile.TileList) bool {
	for _, ind := range indicators {
		if ind >= tile.MinTile && t.Kind() == nextDoraKind(ind) {
			return true
		}
	}
	return false
}

// DoraValue 一张牌的宝牌数：每个匹配的指示牌各算一番，赤五（若启用）再加一。
func DoraValue(t tile.Tile, indicators tile.TileList, redFives bool) int {
	n := 0
	for _, ind := range indicators {
		if ind >= tile.MinTile && t.Kind() == nextDoraKind(ind) {
			n++
		}
	}
	if redFives && t.IsRedFive() {
		n++
	}
	return n
}

// CountDora 整副牌的宝牌总数。
func CountDora(tiles tile.TileList, indicators tile.TileList, redFives bool) int {
	n := 0
	for _, t := range tiles {
		if t >= tile.MinTile {
			n += DoraValue(t, indicators, redFives)
		}
	}
	return n
}
