package tenhou

import (
	"tenhou-lite/mahjong"
	"tenhou-lite/tile"
)

// Apply 把一个事件落到牌桌上。单线程使用，调用方严格按到达顺序喂事件。
//
// ownSeat 是本视角的座位，用于把实战 INIT 报文里只属于自家的配牌放到
// 正确的座位上；回放等无视角场合传 mahjong.InvalidSeat。
func Apply(t *mahjong.Table, ownSeat int, ev Event) error {
	players := t.Config().Players

	switch e := ev.(type) {
	case BeginRound:
		hands := e.Hands
		if len(hands) > players {
			hands = hands[:players]
		}
		if hands == nil {
			hands = make([]tile.TileList, players)
			if ownSeat != mahjong.InvalidSeat && len(e.OwnHand) > 0 {
				if ownSeat < 0 || ownSeat >= len(hands) {
					return errProtocol("own seat %d out of range", ownSeat)
				}
				hands[ownSeat] = e.OwnHand
			}
		}
		return t.InitRound(e.Round, e.Honba, e.Sticks, e.Dealer, e.Indicator, trimSeats(players, e.Scores), hands)

	case Draw:
		return t.Draw(e.Seat, e.Tile)

	case Discard:
		return t.Discard(e.Seat, e.Tile)

	case Call:
		return t.ApplyClaim(e.Meld)

	case RiichiDeclared:
		return t.DeclareRiichi(e.Seat)

	case RiichiStickPlaced:
		return t.PlaceRiichiStick(e.Seat, trimSeats(players, e.Scores))

	case DoraFlipped:
		return t.AddDoraIndicator(e.Indicator)

	case PlayerDetails:
		for seat := range e.Names {
			if seat >= players {
				break // 三麻报文仍带四个座位字段，末位是空占位
			}
			rank, rate, sex := "", 0.0, ""
			if seat < len(e.Ranks) {
				rank = e.Ranks[seat]
			}
			if seat < len(e.Rates) {
				rate = e.Rates[seat]
			}
			if seat < len(e.Sexes) {
				sex = e.Sexes[seat]
			}
			if err := t.SetPlayerDetails(seat, e.Names[seat], rank, rate, sex); err != nil {
				return err
			}
		}
		return nil

	case Reconnect:
		return t.SetPlayerName(e.Seat, e.Name)

	case HandResult:
		return t.SetScores(trimSeats(players, e.ScoresAfter()))

	case ExhaustiveDraw:
		return t.SetScores(trimSeats(players, e.ScoresAfter()))

	case AuthChallenge, ShuffleSeed, JoinTable, BeginGame, Disconnect, EndOfStream, Ignored:
		// 与牌桌状态无关，由会话层消费。
		return nil
	}
	return nil
}

// trimSeats 三麻的点数列表照旧携带四个字段，裁掉末位的占位。
func trimSeats(players int, scores []int) []int {
	if len(scores) > players {
		return scores[:players]
	}
	return scores
}
