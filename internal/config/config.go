package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config carries every tunable of the rewards core. It is parsed once at
// startup and passed by value into the components that need it, so a running
// process never observes a parameter change mid-operation.
type Config struct {
	ClickReward             float64       `env:"CLICK_REWARD" envDefault:"0.2"`
	ClickCooldown           time.Duration `env:"CLICK_COOLDOWN" envDefault:"1h"`
	ReferralRewardReferrer  float64       `env:"REFERRAL_REWARD_REFERRER" envDefault:"3.0"`
	ReferralRewardReferee   float64       `env:"REFERRAL_REWARD_REFEREE" envDefault:"2.0"`
	ClickReferralPercent    int64         `env:"CLICK_REFERRAL_PERCENT" envDefault:"10"`
	WithdrawalAmounts       []float64     `env:"WITHDRAWAL_AMOUNTS" envDefault:"15,25,50,100"`
	ActiveReferralThreshold int           `env:"ACTIVE_REFERRAL_THRESHOLD" envDefault:"3"`

	Games Games `envPrefix:"GAME_"`
}

type Games struct {
	Flip    Flip    `envPrefix:"FLIP_"`
	Crash   Crash   `envPrefix:"CRASH_"`
	Slot    Slot    `envPrefix:"SLOT_"`
	Dice    Dice    `envPrefix:"DICE_"`
	Jackpot Jackpot `envPrefix:"JACKPOT_"`
}

type Flip struct {
	WinChance          float64 `env:"WIN_CHANCE" envDefault:"0.49"`
	Multiplier         float64 `env:"MULTIPLIER" envDefault:"2.0"`
	SpecialEventChance float64 `env:"SPECIAL_EVENT_CHANCE" envDefault:"0.015"`
	MinBet             float64 `env:"MIN_BET" envDefault:"1.0"`
}

type Crash struct {
	InstantCrashChance   float64 `env:"INSTANT_CRASH_CHANCE" envDefault:"0.6"`
	LowMultiplierMin     float64 `env:"LOW_MULTIPLIER_MIN" envDefault:"1.0"`
	LowMultiplierMax     float64 `env:"LOW_MULTIPLIER_MAX" envDefault:"1.1"`
	HighMultiplierChance float64 `env:"HIGH_MULTIPLIER_CHANCE" envDefault:"0.02"`
	MinHighMultiplier    float64 `env:"MIN_HIGH_MULTIPLIER" envDefault:"1.5"`
	MaxHighMultiplier    float64 `env:"MAX_HIGH_MULTIPLIER" envDefault:"5.0"`
	CashoutChance        float64 `env:"CASHOUT_CHANCE" envDefault:"0.8"`
	MinBet               float64 `env:"MIN_BET" envDefault:"1.0"`
}

type Slot struct {
	WinMultiplier     float64 `env:"WIN_MULTIPLIER" envDefault:"20"`
	JackpotMultiplier float64 `env:"JACKPOT_MULTIPLIER" envDefault:"50"`
	MinBet            float64 `env:"MIN_BET" envDefault:"1.0"`
}

type Dice struct {
	Multiplier float64 `env:"MULTIPLIER" envDefault:"3.0"`
	MinBet     float64 `env:"MIN_BET" envDefault:"1.0"`
}

type Jackpot struct {
	TicketPrice float64 `env:"TICKET_PRICE" envDefault:"1.0"`
	WinChance   float64 `env:"WIN_CHANCE" envDefault:"0.01"`
	Multiplier  float64 `env:"MULTIPLIER" envDefault:"100.0"`
	MinBet      float64 `env:"MIN_BET" envDefault:"1.0"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
