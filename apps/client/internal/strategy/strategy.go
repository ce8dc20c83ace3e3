package strategy

import (
	"fmt"
	"math/rand"
	"strings"

	"tenhou-lite/tile"
)

// View 决策时可见的信息切面。
type View struct {
	Hand           tile.TileList
	Tsumohai       tile.Tile
	DoraIndicators tile.TileList
	WallRemaining  int
}

// Decider 打牌策略。按名字枚举构造，绝不反射查找。
type Decider interface {
	Name() string
	ChooseDiscard(v View) tile.Tile
}

const (
	NameTsumogiri = "tsumogiri"
	NameRandom    = "random"
)

// New 构造命名策略。未知名字是配置错误。
func New(name string, seed int64) (Decider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameTsumogiri:
		return Tsumogiri{}, nil
	case NameRandom:
		return &Random{rng: rand.New(rand.NewSource(seed))}, nil
	}
	return nil, fmt.Errorf("unknown strategy %q (supported: %s, %s)", name, NameTsumogiri, NameRandom)
}

// Tsumogiri 摸什么打什么。
type Tsumogiri struct{}

func (Tsumogiri) Name() string { return NameTsumogiri }

func (Tsumogiri) ChooseDiscard(v View) tile.Tile {
	if v.Tsumohai != tile.TileNone {
		return v.Tsumohai
	}
	// 鸣牌后没有摸牌，只能从手里挑。
	if len(v.Hand) > 0 {
		return v.Hand[len(v.Hand)-1]
	}
	return tile.TileNone
}

// Random 在手牌加摸牌里均匀挑一张，种子固定时可复现。
type Random struct {
	rng *rand.Rand
}

func (*Random) Name() string { return NameRandom }

func (r *Random) ChooseDiscard(v View) tile.Tile {
	pool := v.Hand.Clone()
	if v.Tsumohai != tile.TileNone {
		pool.Add(v.Tsumohai)
	}
	if len(pool) == 0 {
		return tile.TileNone
	}
	return pool[r.rng.Intn(len(pool))]
}
