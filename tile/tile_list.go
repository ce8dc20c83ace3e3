package tile

import "sort"

type TileList []Tile

func (ts *TileList) Init(tiles []Tile) {
	*ts = make([]Tile, len(tiles))
	copy(*ts, tiles)
}

// Count 获取总牌数
func (ts TileList) Count() int {
	return len(ts)
}

func (ts TileList) Sort() {
	sort.Slice(ts, func(i, j int) bool { return ts[i] < ts[j] })
}

func (ts *TileList) Add(tiles ...Tile) {
	*ts = append(*ts, tiles...)
}

func (ts TileList) Contains(t Tile) bool {
	for _, tt := range ts {
		if tt == t {
			return true
		}
	}
	return false
}

// RemoveFirst 移除第一张 id 相同的牌，返回是否命中。
func (ts *TileList) RemoveFirst(t Tile) bool {
	for i, tt := range *ts {
		if tt == t {
			*ts = append((*ts)[:i], (*ts)[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveAny pops one arbitrary tile. Used for hidden hands where ids are
// unknowable and only the count matters.
func (ts *TileList) RemoveAny() bool {
	n := len(*ts)
	if n == 0 {
		return false
	}
	*ts = (*ts)[:n-1]
	return true
}

// Clone returns an independent copy for snapshots.
func (ts TileList) Clone() TileList {
	out := make(TileList, len(ts))
	copy(out, ts)
	return out
}

// CountKind 统计同种牌张数。
func (ts TileList) CountKind(kind int) int {
	n := 0
	for _, tt := range ts {
		if tt >= MinTile && tt.Kind() == kind {
			n++
		}
	}
	return n
}
