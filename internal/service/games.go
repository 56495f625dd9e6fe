package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"MonkeyStarApi/internal/games"
	"MonkeyStarApi/internal/ledger"
	"MonkeyStarApi/internal/middleware"
	"MonkeyStarApi/internal/models"
	"MonkeyStarApi/internal/store"
	"MonkeyStarApi/pkg/logger"
)

var gameNames = map[games.Kind]string{
	games.KindFlip:    "Monkey Flip",
	games.KindCrash:   "Banana Crash",
	games.KindSlot:    "Banana Slot",
	games.KindDice:    "Banana Dice",
	games.KindJackpot: "Jackpot",
}

type roundResult struct {
	Outcome games.Outcome
	Balance decimal.Decimal
}

// playRound settles one resolved game round as a single unit of work per
// account: funds check, net ledger mutation and stats update commit
// together. The randomness is only consumed once the bet is known to be
// funded.
func (s *Service) playRound(ctx context.Context, accountID int64, kind games.Kind,
	bet decimal.Decimal, resolve func() games.Outcome) (*roundResult, error) {

	name := gameNames[kind]
	result := &roundResult{}

	err := s.ledger.WithAccount(ctx, accountID, func(tx store.AccountStore) error {
		account, err := tx.GetAccount(ctx, accountID)
		if err != nil {
			return err
		}
		if account.Balance.LessThan(bet) {
			return ledger.ErrInsufficientFunds
		}

		out := resolve()
		result.Outcome = out

		switch {
		case kind == games.KindJackpot:
			// The ticket purchase is always recorded; wins add their own credit.
			result.Balance, err = ledger.Apply(ctx, tx, accountID, bet.Neg(),
				models.TransactionGameLose, fmt.Sprintf("Bought %d jackpot tickets", out.Tickets))
			if err != nil {
				return err
			}
			if out.Win {
				result.Balance, err = ledger.Apply(ctx, tx, accountID, out.Payout,
					models.TransactionGameWin,
					fmt.Sprintf("%s win, %d winning tickets", name, out.WinningTickets))
				if err != nil {
					return err
				}
			}
		case out.Win:
			multiplier, _ := out.Payout.Div(bet).Float64()
			result.Balance, err = ledger.Apply(ctx, tx, accountID, out.Payout.Sub(bet),
				models.TransactionGameWin, fmt.Sprintf("%s win x%.2f", name, multiplier))
			if err != nil {
				return err
			}
		default:
			result.Balance, err = ledger.Apply(ctx, tx, accountID, bet.Neg(),
				models.TransactionGameLose, fmt.Sprintf("%s loss", name))
			if err != nil {
				return err
			}
		}

		account, err = tx.GetAccount(ctx, accountID)
		if err != nil {
			return err
		}
		account.TotalWagered = account.TotalWagered.Add(bet)
		account.GamesPlayed++
		if result.Outcome.Win {
			account.GamesWon++
		}
		return tx.UpsertAccount(ctx, account)
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// bindBet pulls the account id out of the context and range-checks the bet
// against the game's configured minimum. The engine itself never validates
// bet sizes.
func (s *Service) bindBet(c *gin.Context, kind games.Kind, amount float64) (int64, decimal.Decimal, bool) {
	accountID, err := middleware.GetAccountIDFromGinContext(c)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return 0, decimal.Zero, false
	}

	bet := decimal.NewFromFloat(amount)
	minBet, ok := s.engine.MinBet(kind)
	if !ok {
		c.JSON(400, gin.H{"error": "unknown game"})
		return 0, decimal.Zero, false
	}
	if bet.LessThan(minBet) {
		c.JSON(400, gin.H{"error": fmt.Sprintf("minimum bet is %s", minBet.StringFixed(2))})
		return 0, decimal.Zero, false
	}

	return accountID, bet, true
}

func (s *Service) respondRound(c *gin.Context, result *roundResult, err error, extra gin.H) {
	if errors.Is(err, ledger.ErrInsufficientFunds) {
		c.JSON(402, gin.H{"error": "insufficient balance"})
		return
	} else if errors.Is(err, store.ErrNotFound) {
		c.JSON(404, gin.H{"error": "Account not found"})
		return
	} else if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	body := gin.H{
		"won":        result.Outcome.Win,
		"payout":     result.Outcome.Payout,
		"descriptor": result.Outcome.Descriptor,
		"balance":    result.Balance,
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(200, body)
}

type flipBetInput struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Choice string  `json:"choice" validate:"required,oneof=heads tails"`
}

func (s *Service) PlayFlip(c *gin.Context) {
	var input flipBetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": "unable to unmarshal body"})
		return
	}
	if err := validate.Struct(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	accountID, bet, ok := s.bindBet(c, games.KindFlip, input.Amount)
	if !ok {
		return
	}

	result, err := s.playRound(c.Request.Context(), accountID, games.KindFlip, bet,
		func() games.Outcome { return s.engine.Flip(s.rng, bet, input.Choice) })
	var extra gin.H
	if err == nil {
		extra = gin.H{"special_event": result.Outcome.SpecialEvent}
	}
	s.respondRound(c, result, err, extra)
}

type crashBetInput struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

func (s *Service) PlayCrash(c *gin.Context) {
	var input crashBetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": "unable to unmarshal body"})
		return
	}
	if err := validate.Struct(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	accountID, bet, ok := s.bindBet(c, games.KindCrash, input.Amount)
	if !ok {
		return
	}

	result, err := s.playRound(c.Request.Context(), accountID, games.KindCrash, bet,
		func() games.Outcome { return s.engine.Crash(s.rng, bet) })
	var extra gin.H
	if err == nil {
		extra = gin.H{"multiplier": result.Outcome.Multiplier}
	}
	s.respondRound(c, result, err, extra)
}

type slotBetInput struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

func (s *Service) PlaySlot(c *gin.Context) {
	var input slotBetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": "unable to unmarshal body"})
		return
	}
	if err := validate.Struct(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	accountID, bet, ok := s.bindBet(c, games.KindSlot, input.Amount)
	if !ok {
		return
	}

	result, err := s.playRound(c.Request.Context(), accountID, games.KindSlot, bet,
		func() games.Outcome { return s.engine.Slot(s.rng, bet) })
	var extra gin.H
	if err == nil {
		extra = gin.H{"reels": result.Outcome.Reels}
	}
	s.respondRound(c, result, err, extra)
}

type diceBetInput struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Number int     `json:"number" validate:"required,min=1,max=6"`
}

func (s *Service) PlayDice(c *gin.Context) {
	var input diceBetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": "unable to unmarshal body"})
		return
	}
	if err := validate.Struct(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	accountID, bet, ok := s.bindBet(c, games.KindDice, input.Amount)
	if !ok {
		return
	}

	result, err := s.playRound(c.Request.Context(), accountID, games.KindDice, bet,
		func() games.Outcome { return s.engine.Dice(s.rng, bet, input.Number) })
	var extra gin.H
	if err == nil {
		extra = gin.H{"roll": result.Outcome.Roll}
	}
	s.respondRound(c, result, err, extra)
}

type jackpotBetInput struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

func (s *Service) PlayJackpot(c *gin.Context) {
	var input jackpotBetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": "unable to unmarshal body"})
		return
	}
	if err := validate.Struct(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	accountID, bet, ok := s.bindBet(c, games.KindJackpot, input.Amount)
	if !ok {
		return
	}

	result, err := s.playRound(c.Request.Context(), accountID, games.KindJackpot, bet,
		func() games.Outcome { return s.engine.Jackpot(s.rng, bet) })
	var extra gin.H
	if err == nil {
		extra = gin.H{
			"tickets":         result.Outcome.Tickets,
			"winning_tickets": result.Outcome.WinningTickets,
		}
	}
	s.respondRound(c, result, err, extra)
}
