package service

import (
	"time"

	"github.com/go-playground/validator/v10"

	"MonkeyStarApi/internal/config"
	"MonkeyStarApi/internal/games"
	"MonkeyStarApi/internal/ledger"
	"MonkeyStarApi/internal/referral"
	"MonkeyStarApi/internal/store"
	"MonkeyStarApi/internal/withdrawal"
	"MonkeyStarApi/pkg/redis"
)

var validate = validator.New()

// Service is the front-end adapter: it validates requests, calls into the
// core and maps errors onto status codes. All conversational state lives in
// the bot layer; every handler here is a single request/response.
type Service struct {
	cfg    *config.Config
	store  store.AccountStore
	ledger *ledger.Ledger
	graph  *referral.Graph
	gate   *withdrawal.Gate
	engine *games.Engine
	rng    games.Rand
	redis  *redis.RedisService // optional; nil skips the cooldown fast path
}

func New(cfg *config.Config, st store.AccountStore, rdb *redis.RedisService) *Service {
	led := ledger.New(st)
	graph := referral.New(st, led, cfg)

	return &Service{
		cfg:    cfg,
		store:  st,
		ledger: led,
		graph:  graph,
		gate:   withdrawal.New(led, graph, cfg),
		engine: games.NewEngine(cfg.Games),
		rng:    games.NewLockedRand(time.Now().UnixNano()),
		redis:  rdb,
	}
}
