package mahjong

import (
	"sort"
	"sync"

	"tenhou-lite/tile"
)

// Table 牌桌状态机。一个会话只创建一次，每局开始时重新初始化。
//
// Apply 层（协议包）把解码出的事件翻译成这里的操作调用；Table 自身不接触
// 线上报文。Table's own methods are safe for concurrent use; Player accessors
// reached through Player() are not locked, concurrent readers must go through
// Snapshot instead.
type Table struct {
	mu     sync.Mutex
	config Config

	players []*Player

	// round 局数编号（东一局为 0），honba 本场数，sticks 场上立直棒。
	round  int
	honba  int
	sticks int

	dealer int
	wall   int

	doraIndicators tile.TileList

	// lastDiscarder 最近打牌的座位，荣和与鸣牌都以它为参照。
	lastDiscarder int
}

func NewTable(config Config) (*Table, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	t := &Table{
		config:        config,
		players:       make([]*Player, config.Players),
		lastDiscarder: InvalidSeat,
	}
	for i := range t.players {
		t.players[i] = newPlayer(i)
	}
	return t, nil
}

func (t *Table) Config() Config { return t.config }

// Player 按座位取玩家。越界返回 nil。返回的是活对象，跨 goroutine 读取
// 请改用 Snapshot。
func (t *Table) Player(seat int) *Player {
	if seat < 0 || seat >= len(t.players) {
		return nil
	}
	return t.players[seat]
}

func (t *Table) Players() []*Player { return t.players }

func (t *Table) checkSeat(seat int) error {
	if seat < 0 || seat >= len(t.players) {
		return errDesync("seat %d out of range for %d players", seat, len(t.players))
	}
	return nil
}

// InitRound 开局：清空所有玩家的单局状态，重算牌墙。
// hands 按座位给出配牌，空表示该座位暗牌。scores 为协议刻度（百点为 1）。
func (t *Table) InitRound(round, honba, sticks, dealer int, indicator tile.Tile, scores []int, hands []tile.TileList) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.checkSeat(dealer); err != nil {
		return err
	}
	if len(scores) != len(t.players) {
		return errDesync("round init has %d scores for %d players", len(scores), len(t.players))
	}

	t.round = round
	t.honba = honba
	t.sticks = sticks
	t.dealer = dealer
	t.doraIndicators = tile.TileList{indicator}
	t.lastDiscarder = InvalidSeat
	t.wall = tile.TotalTiles - DeadWallTiles - t.config.Players*TilesInHand

	for i, p := range t.players {
		var hand tile.TileList
		if i < len(hands) {
			hand = hands[i]
		}
		p.initRound(hand, scores[i])
	}
	return nil
}

// EraseState 对局结束，回到空桌。
func (t *Table) EraseState() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.round = 0
	t.honba = 0
	t.sticks = 0
	t.dealer = 0
	t.wall = 0
	t.doraIndicators = nil
	t.lastDiscarder = InvalidSeat
	for _, p := range t.players {
		p.eraseState()
	}
}

// Draw 座位摸一张牌，牌墙减一。牌墙为负说明状态脱节。
func (t *Table) Draw(seat int, drawn tile.Tile) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.checkSeat(seat); err != nil {
		return err
	}
	t.wall--
	if t.wall < 0 {
		return errDesync("wall went negative on seat %d draw", seat)
	}
	return t.players[seat].draw(drawn)
}

// Discard 座位打出一张牌。
func (t *Table) Discard(seat int, discarded tile.Tile) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.checkSeat(seat); err != nil {
		return err
	}
	if err := t.players[seat].discard(discarded); err != nil {
		return err
	}
	t.lastDiscarder = seat
	return nil
}

// ApplyClaim 副露：牌墙加一补偿（被鸣的那张实际没人摸走），被鸣座位的最后
// 一张舍牌移入鸣走集合，然后副露落到鸣牌玩家面前。
func (t *Table) ApplyClaim(m Meld) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.checkSeat(m.Who); err != nil {
		return err
	}
	t.wall++

	if m.ClaimsDiscard() {
		from := m.FromSeat()
		if err := t.checkSeat(from); err != nil {
			return err
		}
		if _, err := t.players[from].claimDiscard(); err != nil {
			return err
		}
	}
	return t.players[m.Who].addMeld(m)
}

// DeclareRiichi 立直宣言，供托从点数里扣。
func (t *Table) DeclareRiichi(seat int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.checkSeat(seat); err != nil {
		return err
	}
	return t.players[seat].declareRiichi(t.config.RiichiStake)
}

// PlaceRiichiStick 立直棒落场。scores 非空时以服务器给的点数为准。
func (t *Table) PlaceRiichiStick(seat int, scores []int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.checkSeat(seat); err != nil {
		return err
	}
	t.sticks++
	return t.setScoresLocked(scores)
}

// AddDoraIndicator 新宝牌指示牌翻开（杠宝牌）。
func (t *Table) AddDoraIndicator(indicator tile.Tile) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := tile.Check(indicator); err != nil {
		return err
	}
	t.doraIndicators.Add(indicator)
	return nil
}

// SetScores 覆盖所有座位的点数（协议刻度）。空切片忽略。
func (t *Table) SetScores(scores []int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.setScoresLocked(scores)
}

func (t *Table) setScoresLocked(scores []int) error {
	if len(scores) == 0 {
		return nil
	}
	if len(scores) != len(t.players) {
		return errDesync("%d scores for %d players", len(scores), len(t.players))
	}
	for i, s := range scores {
		t.players[i].score = s
	}
	return nil
}

// SetPlayerName 只更新名字，断线重连时资料其余部分不变。
func (t *Table) SetPlayerName(seat int, name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.checkSeat(seat); err != nil {
		return err
	}
	t.players[seat].name = name
	return nil
}

// SetPlayerDetails 玩家资料（名字经 URL 解码后传入）。
func (t *Table) SetPlayerDetails(seat int, name, rank string, rate float64, sex string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.checkSeat(seat); err != nil {
		return err
	}
	t.players[seat].setDetails(name, rank, rate, sex)
	return nil
}

func (t *Table) Round() int  { return t.lockedInt(&t.round) }
func (t *Table) Honba() int  { return t.lockedInt(&t.honba) }
func (t *Table) Sticks() int { return t.lockedInt(&t.sticks) }
func (t *Table) Dealer() int { return t.lockedInt(&t.dealer) }

// WallRemaining 牌墙剩余张数。
func (t *Table) WallRemaining() int { return t.lockedInt(&t.wall) }

// LastDiscarder 最近打牌的座位，开局后无人打牌时为 InvalidSeat。
func (t *Table) LastDiscarder() int { return t.lockedInt(&t.lastDiscarder) }

func (t *Table) lockedInt(v *int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return *v
}

// DoraIndicators 当前翻开的指示牌。
func (t *Table) DoraIndicators() tile.TileList {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.doraIndicators.Clone()
}

// RoundWind 场风：东 4 局之后转南，依次类推。
func (t *Table) RoundWind() Wind {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Wind(t.round / 4 % 4)
}

// ScoreDeltas 以 reference 座位为基准的点差（显示单位），用于对局中排位展示。
func (t *Table) ScoreDeltas(reference int) ([]int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.checkSeat(reference); err != nil {
		return nil, err
	}
	base := t.players[reference].score
	out := make([]int, len(t.players))
	for i, p := range t.players {
		out[i] = (p.score - base) * 100
	}
	return out, nil
}

// PlayersByScore 按点数从高到低排列的座位号，同分按座位先后。
func (t *Table) PlayersByScore() []int {
	t.mu.Lock()
	defer t.mu.Unlock()

	seats := make([]int, len(t.players))
	for i := range seats {
		seats[i] = i
	}
	sort.SliceStable(seats, func(a, b int) bool {
		return t.players[seats[a]].score > t.players[seats[b]].score
	})
	return seats
}
