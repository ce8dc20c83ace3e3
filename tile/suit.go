package tile

type Suit int

const (
	Man   Suit = iota // 万子
	Pin               // 筒子
	Sou               // 索子
	Honor             // 字牌

	SuitInvalid Suit = -1
)

func (s Suit) String() string {
	switch s {
	case Man:
		return "man"
	case Pin:
		return "pin"
	case Sou:
		return "sou"
	case Honor:
		return "honor"
	}
	return "?"
}
