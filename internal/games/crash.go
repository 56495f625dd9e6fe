package games

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Crash resolves one Banana Crash round with three ordered checks: instant
// crash, rare high multiplier, then the regular low range where the player
// cashes out with the configured chance only when the multiplier beats 1.0.
func (e *Engine) Crash(rng Rand, bet decimal.Decimal) Outcome {
	cfg := e.cfg.Crash

	if rng.Float64() < cfg.InstantCrashChance {
		return Outcome{
			Multiplier: 1.0,
			Payout:     decimal.Zero,
			Descriptor: "Instant crash! x1.00",
		}
	}

	if rng.Float64() < cfg.HighMultiplierChance {
		m := cfg.MinHighMultiplier + rng.Float64()*(cfg.MaxHighMultiplier-cfg.MinHighMultiplier)
		payout := mulPayout(bet, m)
		return Outcome{
			Win:        true,
			Multiplier: m,
			Payout:     payout,
			Descriptor: fmt.Sprintf("To the moon! x%.2f", m),
		}
	}

	m := cfg.LowMultiplierMin + rng.Float64()*(cfg.LowMultiplierMax-cfg.LowMultiplierMin)
	if m > 1.0 && rng.Float64() < cfg.CashoutChance {
		payout := mulPayout(bet, m)
		return Outcome{
			Win:        true,
			Multiplier: m,
			Payout:     payout,
			Descriptor: fmt.Sprintf("Cashed out at x%.2f", m),
		}
	}

	return Outcome{
		Multiplier: m,
		Payout:     decimal.Zero,
		Descriptor: fmt.Sprintf("Crashed at x%.2f", m),
	}
}
