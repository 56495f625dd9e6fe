// Package games resolves single rounds of the five reward games. Resolvers
// are pure functions of (bet, choice, randomness, configuration): they hold
// no state and never touch the ledger, so they are safe to run concurrently
// as long as each caller brings its own Rand.
package games

import (
	"math/rand"
	"sync"

	"github.com/shopspring/decimal"

	"MonkeyStarApi/internal/config"
)

type Kind string

const (
	KindFlip    Kind = "flip"
	KindCrash   Kind = "crash"
	KindSlot    Kind = "slot"
	KindDice    Kind = "dice"
	KindJackpot Kind = "jackpot"
)

// Rand is the randomness consumed by the resolvers. *math/rand.Rand
// satisfies it, which lets tests replay rounds from a fixed seed.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Outcome reports one resolved round. Payout is the gross amount returned to
// the player (zero on loss); the bet itself is settled by the caller.
type Outcome struct {
	Win        bool
	Payout     decimal.Decimal
	Descriptor string

	// Game specific extras.
	SpecialEvent   bool     // flip
	Multiplier     float64  // crash
	Reels          []string // slot
	Roll           int      // dice
	Tickets        int      // jackpot
	WinningTickets int      // jackpot
}

type Engine struct {
	cfg config.Games
}

func NewEngine(cfg config.Games) *Engine {
	return &Engine{cfg: cfg}
}

// MinBet returns the configured minimum bet for a game kind, or false for an
// unknown kind. The resolvers themselves do not validate bet sizes.
func (e *Engine) MinBet(kind Kind) (decimal.Decimal, bool) {
	switch kind {
	case KindFlip:
		return decimal.NewFromFloat(e.cfg.Flip.MinBet), true
	case KindCrash:
		return decimal.NewFromFloat(e.cfg.Crash.MinBet), true
	case KindSlot:
		return decimal.NewFromFloat(e.cfg.Slot.MinBet), true
	case KindDice:
		return decimal.NewFromFloat(e.cfg.Dice.MinBet), true
	case KindJackpot:
		return decimal.NewFromFloat(e.cfg.Jackpot.MinBet), true
	}
	return decimal.Zero, false
}

func mulPayout(bet decimal.Decimal, multiplier float64) decimal.Decimal {
	return bet.Mul(decimal.NewFromFloat(multiplier)).Round(2)
}

// LockedRand wraps math/rand behind a mutex so one source can serve
// concurrent requests.
type LockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewLockedRand(seed int64) *LockedRand {
	return &LockedRand{r: rand.New(rand.NewSource(seed))}
}

func (l *LockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *LockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}
