package tenhou

import (
	"tenhou-lite/mahjong"
	"tenhou-lite/tile"
)

// Event 一条报文解码出的类型化事件。闭集：所有实现都在本文件里。
type Event interface {
	isEvent()
}

// AuthChallenge 登录应答携带的认证挑战串（HELO）。
type AuthChallenge struct {
	Challenge string
}

// ShuffleSeed 牌山种子声明（SHUFFLE），可用于事后校验洗牌公正性。
type ShuffleSeed struct {
	Seed string
	Ref  string
}

// JoinTable 入桌确认（GO）。
type JoinTable struct {
	Mode  GameMode
	Lobby int
}

// BeginGame 整场对局开始（TAIKYOKU）。
type BeginGame struct {
	Dealer int
	LogID  string
}

// PlayerDetails 四家资料（UN）。切片按座位排列。
type PlayerDetails struct {
	Names []string
	Ranks []string
	Rates []float64
	Sexes []string
}

// Reconnect 某家断线重连（只带名字的 UN）。
type Reconnect struct {
	Seat int
	Name string
}

// BeginRound 一局开始（INIT / REINIT）。
type BeginRound struct {
	Round  int
	Honba  int
	Sticks int
	Dice   [2]int

	Indicator tile.Tile
	Scores    []int
	Dealer    int

	// Hands 按座位给出的配牌（回放报文的 hai0..hai3），空表示暗牌。
	// 实战报文只有自家配牌，放在 OwnHand，座位由会话层补上。
	Hands   []tile.TileList
	OwnHand tile.TileList
}

// Draw 摸牌（T/U/V/W）。暗家摸牌不带 id，Tile 为 TileBack。
type Draw struct {
	Seat int
	Tile tile.Tile
}

// Discard 舍牌（D/E/F/G）。
type Discard struct {
	Seat int
	Tile tile.Tile
}

// Call 副露（N），m 属性已解码。
type Call struct {
	Meld mahjong.Meld
}

// RiichiDeclared 立直宣言（REACH step=1）。
type RiichiDeclared struct {
	Seat int
}

// RiichiStickPlaced 立直棒落场（REACH step=2），点数以服务器为准。
type RiichiStickPlaced struct {
	Seat   int
	Scores []int
}

// DoraFlipped 新宝牌指示牌（DORA）。
type DoraFlipped struct {
	Indicator tile.Tile
}

// FinalScores 对局终局成绩（owari 属性）。
type FinalScores struct {
	Scores []int
	Points []float64
}

// HandResult 和牌结算（AGARI）。
type HandResult struct {
	Who     int
	FromWho int

	Hand  tile.TileList
	Melds []mahjong.Meld
	Machi tile.Tile

	// Ten = 符、点、满贯级别。
	Ten [3]int

	// Yaku 役 id 与番数成对；Yakuman 役满 id 列表。
	Yaku    [][2]int
	Yakuman []int

	DoraIndicators tile.TileList
	UraIndicators  tile.TileList

	Honba  int
	Sticks int

	// Sc 为 (点数, 增减) 交替排列的协议原文。
	Sc    []int
	Final *FinalScores
}

// ScoresAfter 结算后的各家点数（协议刻度）。
func (h *HandResult) ScoresAfter() []int {
	return scoresAfter(h.Sc)
}

// ExhaustiveDraw 流局（RYUUKYOKU）。
type ExhaustiveDraw struct {
	// Reason 特殊流局类型（九种九牌等），普通荒牌流局为空。
	Reason string

	// Revealed 听牌家摊开的手牌，按座位排列，未摊开为空。
	Revealed []tile.TileList

	Honba  int
	Sticks int

	Sc    []int
	Final *FinalScores
}

func (e *ExhaustiveDraw) ScoresAfter() []int {
	return scoresAfter(e.Sc)
}

// Disconnect 某家断线（BYE）。
type Disconnect struct {
	Seat int
}

// EndOfStream 回放文件收尾标签（/mjloggm）。
type EndOfStream struct{}

// Ignored 认识但与状态机无关的标签。
type Ignored struct {
	Tag string
}

func (AuthChallenge) isEvent()     {}
func (ShuffleSeed) isEvent()       {}
func (JoinTable) isEvent()         {}
func (BeginGame) isEvent()         {}
func (PlayerDetails) isEvent()     {}
func (Reconnect) isEvent()         {}
func (BeginRound) isEvent()        {}
func (Draw) isEvent()              {}
func (Discard) isEvent()           {}
func (Call) isEvent()              {}
func (RiichiDeclared) isEvent()    {}
func (RiichiStickPlaced) isEvent() {}
func (DoraFlipped) isEvent()       {}
func (HandResult) isEvent()        {}
func (ExhaustiveDraw) isEvent()    {}
func (Disconnect) isEvent()        {}
func (EndOfStream) isEvent()       {}
func (Ignored) isEvent()           {}

func scoresAfter(sc []int) []int {
	out := make([]int, 0, len(sc)/2)
	for i := 0; i+1 < len(sc); i += 2 {
		out = append(out, sc[i]+sc[i+1])
	}
	return out
}
