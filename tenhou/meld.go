package tenhou

import (
	"tenhou-lite/mahjong"
	"tenhou-lite/tile"
)

// DecodeMeld 解开 N 标签 m 属性的位打包副露。
//
// 布局不是干净的 tag 字段，判定顺序固定、先中先赢：
//
//	bit2      吃：三个 2 位子字段选每张牌用了四张里的哪一张，基底经
//	          9/7 步长换算回到花色内
//	bit3|bit4 碰系：bit3 为碰，bit3 清零为加杠（只携带加进去的第四张）
//	bit5      拔北：高位直接是牌 id
//	其余      杠系：fromWho 为 0 是暗杠，否则大明杠
//
// 任何算出来越界的牌槽都是 ProtocolViolationError，绝不猜测。
func DecodeMeld(who, m int) (mahjong.Meld, error) {
	meld := mahjong.Meld{
		Who:     who,
		FromWho: m & 3,
	}

	switch {
	case m&0x4 != 0:
		return decodeChii(meld, m)
	case m&0x18 != 0:
		return decodePonFamily(meld, m)
	case m&0x20 != 0:
		return decodeNuki(meld, m)
	default:
		return decodeKan(meld, m)
	}
}

func decodeChii(meld mahjong.Meld, m int) (mahjong.Meld, error) {
	copies := [3]int{(m >> 3) & 3, (m >> 5) & 3, (m >> 7) & 3}
	bac := m >> 10
	called := bac % 3
	base := bac / 3
	base = base/7*9 + base%7

	// 顺子基底必须落在数牌内且不跨花色（每花色起点只能到 7）。
	if base < 0 || base >= 27 || base%9 > 6 {
		return meld, errProtocol("chii base kind %d out of range (m=%#x)", base, m)
	}

	meld.Kind = mahjong.MeldChii
	meld.Tiles = make(tile.TileList, 3)
	for i, c := range copies {
		meld.Tiles[i] = tile.Tile(c + 4*(base+i))
	}
	meld.CalledTile = meld.Tiles[called]
	return meld, nil
}

var ponCopyTable = [4][3]int{{1, 2, 3}, {0, 2, 3}, {0, 1, 3}, {0, 1, 2}}

func decodePonFamily(meld mahjong.Meld, m int) (mahjong.Meld, error) {
	added := (m >> 5) & 3
	bac := m >> 9
	called := bac % 3
	base := bac / 3
	if base < 0 || base > 33 {
		return meld, errProtocol("pon base kind %d out of range (m=%#x)", base, m)
	}

	if m&0x8 != 0 {
		// 碰：added 选出的那张留给将来可能的加杠。
		meld.Kind = mahjong.MeldPon
		meld.Tiles = make(tile.TileList, 3)
		for i, c := range ponCopyTable[added] {
			meld.Tiles[i] = tile.Tile(c + 4*base)
		}
		meld.CalledTile = meld.Tiles[called]
		return meld, nil
	}

	// 加杠：只携带加进去的第四张，状态机原地升级已有的碰。
	meld.Kind = mahjong.MeldChakan
	meld.Tiles = tile.TileList{tile.Tile(added + 4*base)}
	meld.CalledTile = meld.Tiles[0]
	return meld, nil
}

func decodeNuki(meld mahjong.Meld, m int) (mahjong.Meld, error) {
	t := tile.Tile(m >> 8)
	if err := tile.Check(t); err != nil {
		return meld, errProtocol("nuki tile %d out of range (m=%#x)", int(t), m)
	}
	if t.Kind() != tile.KindNorth {
		return meld, errProtocol("nuki tile %v is not a north wind (m=%#x)", t, m)
	}
	meld.Kind = mahjong.MeldNuki
	meld.Tiles = tile.TileList{t}
	meld.CalledTile = t
	return meld, nil
}

func decodeKan(meld mahjong.Meld, m int) (mahjong.Meld, error) {
	bac := m >> 8
	base := bac / 4
	if base < 0 || base > 33 {
		return meld, errProtocol("kan base kind %d out of range (m=%#x)", base, m)
	}

	meld.Tiles = make(tile.TileList, 4)
	for i := range meld.Tiles {
		meld.Tiles[i] = tile.Tile(4*base + i)
	}
	if meld.FromWho == mahjong.RelSelf {
		meld.Kind = mahjong.MeldAnkan
		meld.CalledTile = tile.TileNone
	} else {
		meld.Kind = mahjong.MeldDaiminkan
		meld.CalledTile = tile.Tile(bac)
	}
	return meld, nil
}
