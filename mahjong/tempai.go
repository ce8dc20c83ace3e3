package mahjong

import "tenhou-lite/tile"

// IsTempai reports whether the concealed portion of a hand is one tile away
// from a winning shape. meldCount is the number of declared melds (nuki
// excluded): each one stands in for a completed set.
//
// 听牌判定。Hidden hands (face-down placeholders) are never tempai: we cannot
// reason about tiles we cannot see.
func IsTempai(concealed tile.TileList, meldCount int) bool {
	var counts [34]int
	for _, t := range concealed {
		if t < tile.MinTile {
			return false
		}
		counts[t.Kind()]++
	}

	sets := 4 - meldCount
	for k := 0; k < 34; k++ {
		if counts[k] == 4 {
			continue // 第五张不存在
		}
		counts[k]++
		ok := winningShape(&counts, sets)
		counts[k]--
		if ok {
			return true
		}
	}

	if meldCount == 0 {
		return chiitoiTempai(&counts) || kokushiTempai(&counts)
	}
	return false
}

// winningShape 判断 counts 能否分解为 sets 组面子 + 1 对雀头。
func winningShape(counts *[34]int, sets int) bool {
	for k := 0; k < 34; k++ {
		if counts[k] < 2 {
			continue
		}
		counts[k] -= 2
		ok := decomposeSets(counts, 0, sets)
		counts[k] += 2
		if ok {
			return true
		}
	}
	return false
}

func decomposeSets(counts *[34]int, k, sets int) bool {
	for k < 34 && counts[k] == 0 {
		k++
	}
	if k == 34 {
		return sets == 0
	}
	if sets == 0 {
		return false
	}
	if counts[k] >= 3 {
		counts[k] -= 3
		ok := decomposeSets(counts, k, sets-1)
		counts[k] += 3
		if ok {
			return true
		}
	}
	// 顺子只在数牌内、不跨花色
	if k < 27 && k%9 <= 6 && counts[k+1] > 0 && counts[k+2] > 0 {
		counts[k]--
		counts[k+1]--
		counts[k+2]--
		ok := decomposeSets(counts, k, sets-1)
		counts[k]++
		counts[k+1]++
		counts[k+2]++
		if ok {
			return true
		}
	}
	return false
}

// chiitoiTempai 七对子听牌：六对加一张单骑。
func chiitoiTempai(counts *[34]int) bool {
	pairs, singles := 0, 0
	for _, c := range counts {
		switch {
		case c >= 2:
			pairs++
		case c == 1:
			singles++
		}
	}
	return pairs == 6 && singles == 1
}

// kokushiTempai 国士无双听牌：幺九种类持有 12 种带对或 13 种无对。
func kokushiTempai(counts *[34]int) bool {
	yaochuu := append(append([]int{}, tile.TerminalKinds...), tile.HonorKinds...)
	kinds, hasPair, total := 0, false, 0
	for _, k := range yaochuu {
		c := counts[k]
		total += c
		if c > 0 {
			kinds++
		}
		if c >= 2 {
			hasPair = true
		}
	}
	if total != 13 {
		return false // 含非幺九牌
	}
	return (kinds == 13 && !hasPair) || (kinds == 12 && hasPair)
}
