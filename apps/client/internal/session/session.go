package session

import (
	"context"
	"fmt"
	"log"
	"net/url"

	"tenhou-lite/apps/client/internal/ledger"
	"tenhou-lite/apps/client/internal/strategy"
	"tenhou-lite/mahjong"
	"tenhou-lite/tenhou"
)

// Wire 会话眼中的连接：一条出站发送口，一条入站报文通道。
// 真身是 transport.Conn，测试用通道假体。
type Wire interface {
	Send(msg string) error
	Messages() <-chan string
}

type Config struct {
	// UserID 天凤 ID，匿名时 "NoName"。
	UserID string

	// Lobby 和 GameType 组成 JOIN 的 t 属性。
	Lobby    int
	GameType int
}

// Session 一次登录到对局结束的完整生命周期。
//
// 实战报文里座位都以自家为 0（T 永远是自家摸牌），所以视角座位恒为 0。
type Session struct {
	cfg     Config
	wire    Wire
	decider strategy.Decider
	ledger  ledger.Service

	table  *mahjong.Table
	before mahjong.TableSnapshot
}

const ownSeat = 0

func New(cfg Config, wire Wire, decider strategy.Decider, ldg ledger.Service) (*Session, error) {
	if cfg.UserID == "" {
		cfg.UserID = "NoName"
	}
	table, err := mahjong.NewTable(mahjong.DefaultConfig())
	if err != nil {
		return nil, err
	}
	return &Session{
		cfg:     cfg,
		wire:    wire,
		decider: decider,
		ledger:  ldg,
		table:   table,
	}, nil
}

func (s *Session) Table() *mahjong.Table { return s.table }

// Run 登录、入桌、打完整场。报文流结束或 ctx 取消时返回。
func (s *Session) Run(ctx context.Context) error {
	if err := s.sendHelo(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case raw, ok := <-s.wire.Messages():
			if !ok {
				return nil
			}
			done, err := s.handle(ctx, raw)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	}
}

func (s *Session) sendHelo() error {
	return s.wire.Send(fmt.Sprintf(`<HELO name="%s" tid="f0" sx="M" />`, url.QueryEscape(s.cfg.UserID)))
}

func (s *Session) handle(ctx context.Context, raw string) (done bool, err error) {
	ev, err := tenhou.ParseMessage(raw)
	if err != nil {
		// 认不出的标签记下来继续走，坏形状的报文致命。
		if _, ok := err.(tenhou.UnrecognizedMessageError); ok {
			log.Printf("[Session] Skipping unrecognized message: %v", err)
			return false, nil
		}
		return false, err
	}

	switch e := ev.(type) {
	case tenhou.AuthChallenge:
		token, err := tenhou.GenerateAuthToken(e.Challenge)
		if err != nil {
			return false, err
		}
		if err := s.wire.Send(fmt.Sprintf(`<AUTH val="%s"/>`, token)); err != nil {
			return false, err
		}
		return false, s.wire.Send(fmt.Sprintf(`<JOIN t="%d,%d" />`, s.cfg.Lobby, s.cfg.GameType))

	case tenhou.JoinTable:
		// 模式定下人数和赤牌规则，照它重建牌桌。
		table, err := mahjong.NewTable(e.Mode.Config())
		if err != nil {
			return false, err
		}
		s.table = table
		log.Printf("[Session] Joined table: %s", e.Mode)
		if err := s.wire.Send(`<GOK />`); err != nil {
			return false, err
		}
		return false, s.wire.Send(`<NEXTREADY />`)

	case tenhou.Disconnect:
		log.Printf("[Session] Seat %d disconnected", e.Seat)
		return false, nil

	case tenhou.EndOfStream:
		return true, nil
	}

	if err := tenhou.Apply(s.table, ownSeat, ev); err != nil {
		return false, err
	}
	return false, s.react(ctx, ev)
}

// react 状态落地后的主动行为：自家摸牌要打一张，局结束要记账、请求下一局。
func (s *Session) react(ctx context.Context, ev tenhou.Event) error {
	switch e := ev.(type) {
	case tenhou.BeginRound:
		s.before = s.table.Snapshot()
		return nil

	case tenhou.Draw:
		if e.Seat != ownSeat {
			return nil
		}
		p := s.table.Player(ownSeat)
		pick := s.decider.ChooseDiscard(strategy.View{
			Hand:           p.OnlyHandTiles(),
			Tsumohai:       p.Tsumohai(),
			DoraIndicators: s.table.DoraIndicators(),
			WallRemaining:  s.table.WallRemaining(),
		})
		return s.wire.Send(fmt.Sprintf(`<D p="%d" />`, int(pick)))

	case tenhou.HandResult:
		s.recordRound(ctx, e.Who)
		return s.wire.Send(`<NEXTREADY />`)

	case tenhou.ExhaustiveDraw:
		s.recordRound(ctx, mahjong.InvalidSeat)
		return s.wire.Send(`<NEXTREADY />`)
	}
	return nil
}

func (s *Session) recordRound(ctx context.Context, winner int) {
	rec := ledger.FromSnapshots(s.before, s.table.Snapshot(), winner)
	if err := s.ledger.RecordRound(ctx, rec); err != nil {
		log.Printf("[Session] Failed to record round: %v", err)
	}
}
