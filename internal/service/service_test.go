package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"MonkeyStarApi/internal/config"
	"MonkeyStarApi/internal/games"
	"MonkeyStarApi/internal/ledger"
	"MonkeyStarApi/internal/models"
	"MonkeyStarApi/internal/store/memstore"
)

type scriptedRand struct {
	floats []float64
	ints   []int
}

func (s *scriptedRand) Float64() float64 {
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedRand) Intn(n int) int {
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func testConfig() *config.Config {
	return &config.Config{
		ClickReward:             0.2,
		ClickCooldown:           time.Hour,
		ReferralRewardReferrer:  3.0,
		ReferralRewardReferee:   2.0,
		ClickReferralPercent:    10,
		WithdrawalAmounts:       []float64{15, 25, 50, 100},
		ActiveReferralThreshold: 3,
		Games: config.Games{
			Flip:    config.Flip{WinChance: 0.49, Multiplier: 2.0, SpecialEventChance: 0.015, MinBet: 1.0},
			Crash:   config.Crash{InstantCrashChance: 0.6, LowMultiplierMin: 1.0, LowMultiplierMax: 1.1, HighMultiplierChance: 0.02, MinHighMultiplier: 1.5, MaxHighMultiplier: 5.0, CashoutChance: 0.8, MinBet: 1.0},
			Slot:    config.Slot{WinMultiplier: 20, JackpotMultiplier: 50, MinBet: 1.0},
			Dice:    config.Dice{Multiplier: 3.0, MinBet: 1.0},
			Jackpot: config.Jackpot{TicketPrice: 1.0, WinChance: 0.01, Multiplier: 100.0, MinBet: 1.0},
		},
	}
}

func newTestService(st *memstore.Store) *Service {
	return New(testConfig(), st, nil)
}

func seed(t *testing.T, st *memstore.Store, id int64, balance float64) {
	t.Helper()
	err := st.UpsertAccount(context.Background(), &models.Account{
		ID:       id,
		Username: "alice",
		Balance:  decimal.NewFromFloat(balance),
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestPlayRoundWin(t *testing.T) {
	st := memstore.New()
	svc := newTestService(st)
	ctx := context.Background()
	seed(t, st, 1, 10)

	bet := decimal.NewFromInt(5)
	// Intn(6)=3 rolls a 4, matching the pick.
	rng := &scriptedRand{ints: []int{3}}
	result, err := svc.playRound(ctx, 1, games.KindDice, bet,
		func() games.Outcome { return svc.engine.Dice(rng, bet, 4) })
	if err != nil {
		t.Fatal(err)
	}
	if !result.Outcome.Win {
		t.Fatal("round should win")
	}
	if !result.Balance.Equal(decimal.NewFromInt(20)) {
		t.Errorf("balance = %s, want 20", result.Balance)
	}

	transactions, err := st.ListTransactions(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(transactions) != 1 {
		t.Fatalf("got %d transactions, want 1", len(transactions))
	}
	if transactions[0].Kind != models.TransactionGameWin {
		t.Errorf("kind = %s, want game_win", transactions[0].Kind)
	}
	// Net settlement: payout 15 minus the bet.
	if !transactions[0].Amount.Equal(decimal.NewFromInt(10)) {
		t.Errorf("amount = %s, want 10", transactions[0].Amount)
	}

	account, err := st.GetAccount(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if account.GamesPlayed != 1 || account.GamesWon != 1 {
		t.Errorf("stats = %d/%d, want 1/1", account.GamesWon, account.GamesPlayed)
	}
	if !account.TotalWagered.Equal(bet) {
		t.Errorf("total wagered = %s, want %s", account.TotalWagered, bet)
	}
}

func TestPlayRoundLoss(t *testing.T) {
	st := memstore.New()
	svc := newTestService(st)
	ctx := context.Background()
	seed(t, st, 1, 10)

	bet := decimal.NewFromInt(5)
	rng := &scriptedRand{ints: []int{3}}
	result, err := svc.playRound(ctx, 1, games.KindDice, bet,
		func() games.Outcome { return svc.engine.Dice(rng, bet, 6) })
	if err != nil {
		t.Fatal(err)
	}
	if result.Outcome.Win {
		t.Fatal("round should lose")
	}
	if !result.Balance.Equal(decimal.NewFromInt(5)) {
		t.Errorf("balance = %s, want 5", result.Balance)
	}

	transactions, err := st.ListTransactions(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(transactions) != 1 {
		t.Fatalf("got %d transactions, want 1", len(transactions))
	}
	if transactions[0].Kind != models.TransactionGameLose {
		t.Errorf("kind = %s, want game_lose", transactions[0].Kind)
	}
	if !transactions[0].Amount.Equal(decimal.NewFromInt(-5)) {
		t.Errorf("amount = %s, want -5", transactions[0].Amount)
	}

	account, err := st.GetAccount(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if account.GamesPlayed != 1 || account.GamesWon != 0 {
		t.Errorf("stats = %d/%d, want 0/1", account.GamesWon, account.GamesPlayed)
	}
}

func TestPlayRoundInsufficientBalance(t *testing.T) {
	st := memstore.New()
	svc := newTestService(st)
	ctx := context.Background()
	seed(t, st, 1, 3)

	bet := decimal.NewFromInt(5)
	resolved := false
	_, err := svc.playRound(ctx, 1, games.KindDice, bet, func() games.Outcome {
		resolved = true
		return games.Outcome{}
	})
	if !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
	if resolved {
		t.Error("an unfunded round must not consume randomness")
	}

	transactions, err := st.ListTransactions(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(transactions) != 0 {
		t.Errorf("got %d transactions, want none", len(transactions))
	}

	account, err := st.GetAccount(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if account.GamesPlayed != 0 {
		t.Errorf("games played = %d, want 0", account.GamesPlayed)
	}
}

func TestPlayRoundJackpotDoubleEntry(t *testing.T) {
	st := memstore.New()
	svc := newTestService(st)
	ctx := context.Background()
	seed(t, st, 1, 10)

	bet := decimal.NewFromInt(3)
	// Tickets two and three hit.
	rng := &scriptedRand{floats: []float64{0.9, 0.001, 0.001}}
	result, err := svc.playRound(ctx, 1, games.KindJackpot, bet,
		func() games.Outcome { return svc.engine.Jackpot(rng, bet) })
	if err != nil {
		t.Fatal(err)
	}
	if !result.Outcome.Win || result.Outcome.WinningTickets != 2 {
		t.Fatalf("outcome = %+v, want a two-ticket win", result.Outcome)
	}
	// 10 - 3 + 2*100.
	if !result.Balance.Equal(decimal.NewFromInt(207)) {
		t.Errorf("balance = %s, want 207", result.Balance)
	}

	transactions, err := st.ListTransactions(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(transactions) != 2 {
		t.Fatalf("got %d transactions, want 2", len(transactions))
	}
	kinds := map[models.TransactionKind]decimal.Decimal{}
	for _, txn := range transactions {
		kinds[txn.Kind] = txn.Amount
	}
	if got := kinds[models.TransactionGameLose]; !got.Equal(decimal.NewFromInt(-3)) {
		t.Errorf("ticket purchase = %s, want -3", got)
	}
	if got := kinds[models.TransactionGameWin]; !got.Equal(decimal.NewFromInt(200)) {
		t.Errorf("jackpot credit = %s, want 200", got)
	}
}

func TestClickPaysAndStartsCooldown(t *testing.T) {
	st := memstore.New()
	svc := newTestService(st)
	ctx := context.Background()
	seed(t, st, 1, 0)

	result, err := svc.click(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Balance.Equal(decimal.NewFromFloat(0.2)) {
		t.Errorf("balance = %s, want 0.2", result.Balance)
	}

	_, err = svc.click(ctx, 1)
	if !errors.Is(err, errClickCooldown) {
		t.Fatalf("second click err = %v, want errClickCooldown", err)
	}

	transactions, err := st.ListTransactions(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(transactions) != 1 {
		t.Errorf("got %d transactions, want 1", len(transactions))
	}
}

func TestClickForwardsReferralIncome(t *testing.T) {
	st := memstore.New()
	svc := newTestService(st)
	ctx := context.Background()

	seed(t, st, 1, 0)
	referrerID := int64(1)
	err := st.UpsertAccount(ctx, &models.Account{ID: 2, Username: "bob", ReferrerID: &referrerID})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.click(ctx, 2); err != nil {
		t.Fatal(err)
	}

	account, err := st.GetAccount(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !account.Balance.Equal(decimal.NewFromFloat(0.02)) {
		t.Errorf("referrer balance = %s, want 0.02", account.Balance)
	}
}

func TestRegisterIsIdempotent(t *testing.T) {
	st := memstore.New()
	svc := newTestService(st)
	ctx := context.Background()

	first, err := svc.register(ctx, 7, "alice", nil)
	if err != nil {
		t.Fatal(err)
	}
	if first.Username != "alice" {
		t.Errorf("username = %s, want alice", first.Username)
	}

	second, err := svc.register(ctx, 7, "other", nil)
	if err != nil {
		t.Fatal(err)
	}
	if second.Username != "alice" {
		t.Errorf("repeat registration changed username to %s", second.Username)
	}
}

func TestRegisterPaysReferralBonuses(t *testing.T) {
	st := memstore.New()
	svc := newTestService(st)
	ctx := context.Background()
	seed(t, st, 1, 0)

	referrerID := int64(1)
	account, err := svc.register(ctx, 2, "bob", &referrerID)
	if err != nil {
		t.Fatal(err)
	}
	if !account.Balance.Equal(decimal.NewFromInt(2)) {
		t.Errorf("referee balance = %s, want signup bonus 2", account.Balance)
	}

	referrer, err := st.GetAccount(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !referrer.Balance.Equal(decimal.NewFromInt(3)) {
		t.Errorf("referrer balance = %s, want 3", referrer.Balance)
	}
}

func TestRegisterDefaultsUsername(t *testing.T) {
	st := memstore.New()
	svc := newTestService(st)

	account, err := svc.register(context.Background(), 5, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if account.Username != "user_5" {
		t.Errorf("username = %s, want user_5", account.Username)
	}
}
