package mahjong

import "fmt"

type Config struct {
	// Players 3 (sanma) or 4.
	Players int

	// RedFives 赤ドラ有无 (GO tag noaka flag clears this)
	RedFives bool

	// RiichiStake 立直供托点数
	RiichiStake int
}

func DefaultConfig() Config {
	return Config{
		Players:     4,
		RedFives:    true,
		RiichiStake: 1000,
	}
}

func (c Config) validate() error {
	if c.Players != 3 && c.Players != 4 {
		return fmt.Errorf("Players must be 3 or 4, got %d", c.Players)
	}
	if c.RiichiStake <= 0 {
		return fmt.Errorf("RiichiStake must be > 0")
	}
	return nil
}
