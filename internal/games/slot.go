package games

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// SlotSymbols is the reel alphabet; the first symbol is the jackpot one.
var SlotSymbols = []string{"🍌", "🐵", "⭐", "💎", "🎯", "💰", "🎰", "🍀"}

// Slot draws three independent reels. Any triple wins; the banana triple
// pays the jackpot multiplier.
func (e *Engine) Slot(rng Rand, bet decimal.Decimal) Outcome {
	cfg := e.cfg.Slot

	reels := []string{
		SlotSymbols[rng.Intn(len(SlotSymbols))],
		SlotSymbols[rng.Intn(len(SlotSymbols))],
		SlotSymbols[rng.Intn(len(SlotSymbols))],
	}

	if reels[0] == reels[1] && reels[1] == reels[2] {
		multiplier := cfg.WinMultiplier
		if reels[0] == SlotSymbols[0] {
			multiplier = cfg.JackpotMultiplier
		}
		payout := mulPayout(bet, multiplier)
		return Outcome{
			Win:        true,
			Reels:      reels,
			Payout:     payout,
			Descriptor: fmt.Sprintf("3x%s! You won %s STAR!", reels[0], payout.StringFixed(2)),
		}
	}

	return Outcome{
		Reels:      reels,
		Payout:     decimal.Zero,
		Descriptor: fmt.Sprintf("%s — better luck next time!", strings.Join(reels, " | ")),
	}
}
