package games

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Jackpot treats the bet as a block of tickets at the configured unit price
// and draws each one independently. Every winning ticket pays the full
// multiplier over the unit price; the round is a win when at least one
// ticket hits.
func (e *Engine) Jackpot(rng Rand, bet decimal.Decimal) Outcome {
	cfg := e.cfg.Jackpot
	price := decimal.NewFromFloat(cfg.TicketPrice)

	tickets := int(bet.Div(price).IntPart())
	winning := 0
	for i := 0; i < tickets; i++ {
		if rng.Float64() < cfg.WinChance {
			winning++
		}
	}

	if winning == 0 {
		return Outcome{
			Tickets:    tickets,
			Payout:     decimal.Zero,
			Descriptor: fmt.Sprintf("None of your %d tickets won. Try again!", tickets),
		}
	}

	payout := mulPayout(price, cfg.Multiplier).Mul(decimal.NewFromInt(int64(winning)))
	return Outcome{
		Win:            true,
		Tickets:        tickets,
		WinningTickets: winning,
		Payout:         payout,
		Descriptor:     fmt.Sprintf("JACKPOT! %d winning tickets paid %s STAR!", winning, payout.StringFixed(2)),
	}
}
