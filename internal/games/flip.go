package games

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	FlipHeads = "heads"
	FlipTails = "tails"
)

// Flip resolves one Monkey Flip round. The special event draw comes strictly
// before the main draw and forces a loss with zero payout whatever side was
// chosen.
func (e *Engine) Flip(rng Rand, bet decimal.Decimal, choice string) Outcome {
	cfg := e.cfg.Flip

	if rng.Float64() < cfg.SpecialEventChance {
		return Outcome{
			SpecialEvent: true,
			Payout:       decimal.Zero,
			Descriptor:   "Special event! The banana spun off into space!",
		}
	}

	if rng.Float64() < cfg.WinChance {
		payout := mulPayout(bet, cfg.Multiplier)
		return Outcome{
			Win:        true,
			Payout:     payout,
			Descriptor: fmt.Sprintf("%s it is! You won %s STAR!", choice, payout.StringFixed(2)),
		}
	}

	other := FlipTails
	if choice == FlipTails {
		other = FlipHeads
	}
	return Outcome{
		Payout:     decimal.Zero,
		Descriptor: fmt.Sprintf("%s came up. You lost %s STAR", other, bet.StringFixed(2)),
	}
}
