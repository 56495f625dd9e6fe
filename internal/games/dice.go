package games

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Dice rolls one die; the player wins only on an exact match with the chosen
// number. Choice validation (1..6) happens in the front-end adapter.
func (e *Engine) Dice(rng Rand, bet decimal.Decimal, chosen int) Outcome {
	cfg := e.cfg.Dice

	roll := rng.Intn(6) + 1
	if roll == chosen {
		payout := mulPayout(bet, cfg.Multiplier)
		return Outcome{
			Win:        true,
			Roll:       roll,
			Payout:     payout,
			Descriptor: fmt.Sprintf("Rolled %d — you guessed it! Won %s STAR!", roll, payout.StringFixed(2)),
		}
	}

	return Outcome{
		Roll:       roll,
		Payout:     decimal.Zero,
		Descriptor: fmt.Sprintf("Rolled %d, you picked %d. Lost %s STAR", roll, chosen, bet.StringFixed(2)),
	}
}
