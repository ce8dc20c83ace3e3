package replay

import (
	"tenhou-lite/mahjong"
	"tenhou-lite/tenhou"
)

// Stepper 逐条报文推进一张牌桌。回放没有“自家”视角，配牌来自 hai0..hai3。
type Stepper struct {
	tape  *Tape
	table *mahjong.Table
	pos   int
	done  bool
}

func NewStepper(tape *Tape, cfg mahjong.Config) (*Stepper, error) {
	table, err := mahjong.NewTable(cfg)
	if err != nil {
		return nil, err
	}
	return &Stepper{tape: tape, table: table}, nil
}

func (s *Stepper) Table() *mahjong.Table { return s.table }
func (s *Stepper) Pos() int              { return s.pos }
func (s *Stepper) Done() bool            { return s.done }

// Step 解码并应用下一条报文，返回产生的事件。
// 磁带尽头或遇到收尾标签后返回 ErrEndOfTape。
func (s *Stepper) Step() (tenhou.Event, error) {
	if s.done || s.pos >= s.tape.Len() {
		return nil, ErrEndOfTape
	}
	raw := s.tape.Messages[s.pos]
	step := s.pos
	s.pos++

	ev, err := tenhou.ParseMessage(raw)
	if err != nil {
		return nil, &StepError{Step: step, Raw: raw, Err: err}
	}

	// 入桌标签决定人数和赤牌规则，牌局开始前照它重建牌桌。
	if join, ok := ev.(tenhou.JoinTable); ok {
		table, err := mahjong.NewTable(join.Mode.Config())
		if err != nil {
			return nil, &StepError{Step: step, Raw: raw, Err: err}
		}
		s.table = table
		return ev, nil
	}

	if err := tenhou.Apply(s.table, mahjong.InvalidSeat, ev); err != nil {
		return nil, &StepError{Step: step, Raw: raw, Err: err}
	}
	if _, ok := ev.(tenhou.EndOfStream); ok {
		s.done = true
	}
	return ev, nil
}

// Run 跑完整盘磁带。
func (s *Stepper) Run() error {
	for {
		if _, err := s.Step(); err != nil {
			if err == ErrEndOfTape {
				return nil
			}
			return err
		}
	}
}
