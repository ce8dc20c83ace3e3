package mahjong

import "tenhou-lite/tile"

// Player 单个座位的全部可见状态。
//
// A hidden player's concealed tiles are modeled as face-down placeholders
// (tile.TileBack): counts stay exact while ids stay unknown, so meld removal
// and draw/discard accounting work identically for every seat.
type Player struct {
	seat  int
	name  string
	rank  string
	rate  float64
	sex   string
	score int // 内部以百点为单位存储前的原始值，显示时 ×100

	hand     tile.TileList
	tsumohai tile.Tile
	melds    []Meld

	// pond is the live discard row in front of the player. Tiles claimed by
	// other players move from pond to claimed; history keeps every discard
	// ever made regardless.
	pond    tile.TileList
	claimed tile.TileList
	history tile.TileList

	isRiichi bool

	// pendingRotation 下一张打出的牌需要横置（立直宣言牌）。Re-armed when the
	// rotated discard itself gets claimed away.
	pendingRotation bool
	// rotatedIndex 横置牌在 pond 中的下标，-1 表示没有。
	rotatedIndex int
}

func newPlayer(seat int) *Player {
	return &Player{
		seat:         seat,
		tsumohai:     tile.TileNone,
		rotatedIndex: -1,
	}
}

func (p *Player) Seat() int          { return p.seat }
func (p *Player) Name() string       { return p.name }
func (p *Player) Rank() string       { return p.rank }
func (p *Player) Rate() float64      { return p.rate }
func (p *Player) Sex() string        { return p.sex }
func (p *Player) IsRiichi() bool     { return p.isRiichi }
func (p *Player) Tsumohai() tile.Tile { return p.tsumohai }
func (p *Player) Melds() []Meld      { return p.melds }
func (p *Player) Pond() tile.TileList     { return p.pond }
func (p *Player) Claimed() tile.TileList  { return p.claimed }
func (p *Player) History() tile.TileList  { return p.history }
func (p *Player) Hand() tile.TileList     { return p.hand }

// Score 点数（显示单位，百点刻度 ×100）。
func (p *Player) Score() int { return p.score * 100 }

// RawScore 协议刻度的点数（百点为 1）。
func (p *Player) RawScore() int { return p.score }

// IsHidden reports whether the concealed tiles are face-down placeholders.
func (p *Player) IsHidden() bool {
	for _, t := range p.hand {
		if t == tile.TileBack {
			return true
		}
	}
	return p.tsumohai == tile.TileBack
}

// RotatedDiscard 返回横置牌在 pond 中的下标，-1 表示没有。
func (p *Player) RotatedDiscard() int { return p.rotatedIndex }

func (p *Player) setDetails(name, rank string, rate float64, sex string) {
	p.name = name
	p.rank = rank
	p.rate = rate
	p.sex = sex
}

// initRound 配牌。tiles 为空时该座位按暗牌处理，铺 13 张牌背。
func (p *Player) initRound(tiles tile.TileList, score int) {
	if len(tiles) == 0 {
		tiles = make(tile.TileList, TilesInHand)
		for i := range tiles {
			tiles[i] = tile.TileBack
		}
	}
	p.hand = tiles.Clone()
	p.hand.Sort()
	p.tsumohai = tile.TileNone
	p.melds = nil
	p.pond = nil
	p.claimed = nil
	p.history = nil
	p.score = score
	p.isRiichi = false
	p.pendingRotation = false
	p.rotatedIndex = -1
}

// eraseState 清空整局状态（回到对局开始前）。
func (p *Player) eraseState() {
	p.hand = nil
	p.tsumohai = tile.TileNone
	p.melds = nil
	p.pond = nil
	p.claimed = nil
	p.history = nil
	p.score = 0
	p.isRiichi = false
	p.pendingRotation = false
	p.rotatedIndex = -1
}

func (p *Player) draw(t tile.Tile) error {
	if p.tsumohai != tile.TileNone {
		return errDesync("seat %d drew with tsumohai %v still held", p.seat, p.tsumohai)
	}
	p.tsumohai = t
	return nil
}

// discard 打出一张牌。立直宣言后的第一张横置。
func (p *Player) discard(t tile.Tile) error {
	switch {
	case p.tsumohai == t:
		// 摸切
		p.tsumohai = tile.TileNone
	case p.tsumohai == tile.TileBack:
		// 暗牌玩家：无法分辨手切摸切，按消耗摸牌处理，张数守恒。
		p.tsumohai = tile.TileNone
	default:
		if !p.hand.RemoveFirst(t) {
			if !p.hand.RemoveFirst(tile.TileBack) {
				return errDesync("seat %d discarded %v not in hand", p.seat, t)
			}
		}
		p.foldTsumohai()
	}

	p.pond.Add(t)
	p.history.Add(t)
	if p.pendingRotation {
		p.rotatedIndex = len(p.pond) - 1
		p.pendingRotation = false
	}
	return nil
}

// foldTsumohai 把尚未用掉的摸牌并回手牌。手切与用手牌副露后都要走这一步，
// 否则下一次摸牌会撞上残留的 tsumohai。
func (p *Player) foldTsumohai() {
	if p.tsumohai == tile.TileNone {
		return
	}
	p.hand.Add(p.tsumohai)
	p.tsumohai = tile.TileNone
	p.hand.Sort()
}

// declareRiichi 立直宣言：扣除供托，下一张打出的牌横置。
func (p *Player) declareRiichi(stake int) error {
	if p.isRiichi {
		return errDesync("seat %d declared riichi twice", p.seat)
	}
	p.isRiichi = true
	p.pendingRotation = true
	p.score -= stake / 100
	return nil
}

// claimDiscard 最后一张打出的牌被他家鸣走。历史记录保留。
func (p *Player) claimDiscard() (tile.Tile, error) {
	n := len(p.pond)
	if n == 0 {
		return tile.TileNone, errDesync("seat %d has no discard to claim", p.seat)
	}
	t := p.pond[n-1]
	p.pond = p.pond[:n-1]
	p.claimed.Add(t)
	if p.rotatedIndex == n-1 {
		// 横置牌被鸣走，下一张补横置。
		p.rotatedIndex = -1
		p.pendingRotation = true
	}
	return t, nil
}

// addMeld 把副露移入玩家面前，从手牌中扣除对应的牌。
//
// 暗牌玩家按张数扣牌背；明牌玩家按 id 精确扣除，摸牌被用掉时一并清空。
func (p *Player) addMeld(m Meld) error {
	switch m.Kind {
	case MeldChakan:
		return p.promotePon(m)
	case MeldNuki:
		return p.addNuki(m)
	}

	if p.IsHidden() {
		if err := p.removeHidden(hiddenMeldCost(m.Kind)); err != nil {
			return err
		}
	} else {
		for _, t := range m.Tiles {
			if m.ClaimsDiscard() && t == m.CalledTile {
				continue // 来自他家牌河
			}
			if err := p.removeVisible(t); err != nil {
				return err
			}
		}
		if !m.ClaimsDiscard() {
			// 暗杠用的全是手牌时，摸牌可能原封未动，并回手里等岭上摸牌。
			p.foldTsumohai()
		}
	}

	p.melds = append(p.melds, m.Clone())
	return nil
}

// hiddenMeldCost 暗牌玩家的扣牌张数。
func hiddenMeldCost(k MeldKind) int {
	switch k {
	case MeldAnkan, MeldDaiminkan:
		return 4
	case MeldNuki:
		return 1
	default:
		return 2 // 吃、碰：第三张来自牌河
	}
}

func (p *Player) removeHidden(n int) error {
	for ; n > 0; n-- {
		if p.tsumohai != tile.TileNone {
			p.tsumohai = tile.TileNone
			continue
		}
		if !p.hand.RemoveAny() {
			return errDesync("seat %d hidden hand underflow", p.seat)
		}
	}
	return nil
}

func (p *Player) removeVisible(t tile.Tile) error {
	if p.tsumohai == t {
		p.tsumohai = tile.TileNone
		return nil
	}
	if p.hand.RemoveFirst(t) {
		return nil
	}
	return errDesync("seat %d meld needs %v not in hand", p.seat, t)
}

// promotePon 加杠：已有的碰原地升级，绝不新增一组副露。
func (p *Player) promotePon(m Meld) error {
	if len(m.Tiles) != 1 {
		return errDesync("chakan carries %d tiles, want 1", len(m.Tiles))
	}
	added := m.Tiles[0]

	if p.IsHidden() {
		if err := p.removeHidden(1); err != nil {
			return err
		}
	} else {
		if err := p.removeVisible(added); err != nil {
			return err
		}
		p.foldTsumohai()
	}

	for i := range p.melds {
		if p.melds[i].Kind == MeldPon && p.melds[i].Tiles[0].SameKind(added) {
			p.melds[i].Kind = MeldChakan
			p.melds[i].Tiles.Add(added)
			p.melds[i].CalledTile = added
			return nil
		}
	}
	return errDesync("seat %d chakan %v without matching pon", p.seat, added)
}

// addNuki 拔北累积到同一组副露里。
func (p *Player) addNuki(m Meld) error {
	if len(m.Tiles) != 1 {
		return errDesync("nuki carries %d tiles, want 1", len(m.Tiles))
	}
	t := m.Tiles[0]

	if p.IsHidden() {
		if err := p.removeHidden(1); err != nil {
			return err
		}
	} else {
		if err := p.removeVisible(t); err != nil {
			return err
		}
		p.foldTsumohai()
	}

	for i := range p.melds {
		if p.melds[i].Kind == MeldNuki {
			p.melds[i].Tiles.Add(t)
			return nil
		}
	}
	p.melds = append(p.melds, m.Clone())
	return nil
}

// OnlyHandTiles 返回纯手牌（不含摸牌）。
func (p *Player) OnlyHandTiles() tile.TileList {
	return p.hand.Clone()
}

// AllTiles 手牌加摸牌。
func (p *Player) AllTiles() tile.TileList {
	out := p.hand.Clone()
	if p.tsumohai != tile.TileNone {
		out.Add(p.tsumohai)
	}
	return out
}

// meldSetCount 占用面子数的副露数量（拔北不占）。
func (p *Player) meldSetCount() int {
	n := 0
	for i := range p.melds {
		if p.melds[i].Kind != MeldNuki {
			n++
		}
	}
	return n
}

// CanDeclareRiichi 立直条件：门清听牌、未立直、点数够供托、牌墙余 4 张以上。
// wallRemaining 由调用方传入。
func (p *Player) CanDeclareRiichi(stake, wallRemaining int) bool {
	if p.isRiichi || p.Score() < stake || wallRemaining <= 4 {
		return false
	}
	for i := range p.melds {
		if p.melds[i].Kind != MeldAnkan && p.melds[i].Kind != MeldNuki {
			return false // 副露破坏门清
		}
	}
	return IsTempai(p.OnlyHandTiles(), p.meldSetCount())
}

// SeatWind 自风：以庄家为东依次轮转。
func (p *Player) SeatWind(dealer int) Wind {
	return Wind((p.seat - dealer + 4) % 4)
}

// clone 深拷贝，用于快照。
func (p *Player) clone() *Player {
	out := *p
	out.hand = p.hand.Clone()
	out.pond = p.pond.Clone()
	out.claimed = p.claimed.Clone()
	out.history = p.history.Clone()
	out.melds = make([]Meld, len(p.melds))
	for i := range p.melds {
		out.melds[i] = p.melds[i].Clone()
	}
	return &out
}
