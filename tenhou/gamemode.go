package tenhou

import (
	"strings"

	"tenhou-lite/mahjong"
)

// GameMode GO 标签 type 属性的位标志。
type GameMode int

const (
	ModeMulti  GameMode = 0x01 // 对人战
	ModeNoAka  GameMode = 0x02 // 无赤牌
	ModeNoKui  GameMode = 0x04 // 禁止食断
	ModeSouth  GameMode = 0x08 // 东南战（否则东风战）
	ModeSanma  GameMode = 0x10 // 三人麻将
	ModeToku   GameMode = 0x20 // 特上桌
	ModeFast   GameMode = 0x40 // 速卓
	ModeUpper  GameMode = 0x80 // 上级桌
)

func (m GameMode) Has(flag GameMode) bool { return m&flag != 0 }

func (m GameMode) Players() int {
	if m.Has(ModeSanma) {
		return 3
	}
	return 4
}

// Config 由对局模式推出状态机配置。
func (m GameMode) Config() mahjong.Config {
	cfg := mahjong.DefaultConfig()
	cfg.Players = m.Players()
	cfg.RedFives = !m.Has(ModeNoAka)
	return cfg
}

// String 牌桌名惯用缩写，如「般南喰赤」。
func (m GameMode) String() string {
	var b strings.Builder
	switch {
	case m.Has(ModeUpper) && m.Has(ModeToku):
		b.WriteString("鳳")
	case m.Has(ModeToku):
		b.WriteString("特")
	case m.Has(ModeUpper):
		b.WriteString("上")
	default:
		b.WriteString("般")
	}
	if m.Has(ModeSouth) {
		b.WriteString("南")
	} else {
		b.WriteString("東")
	}
	if !m.Has(ModeNoKui) {
		b.WriteString("喰")
	}
	if !m.Has(ModeNoAka) {
		b.WriteString("赤")
	}
	if m.Has(ModeFast) {
		b.WriteString("速")
	}
	if m.Has(ModeSanma) {
		b.WriteString("三")
	}
	return b.String()
}
