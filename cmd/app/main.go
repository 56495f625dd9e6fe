package main

import (
	"os"

	"github.com/joho/godotenv"

	"MonkeyStarApi/cmd/db"
	"MonkeyStarApi/internal/app"
	"MonkeyStarApi/internal/config"
	"MonkeyStarApi/internal/service"
	"MonkeyStarApi/internal/store/pgstore"
	"MonkeyStarApi/pkg/logger"
	"MonkeyStarApi/pkg/redis"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file, relying on the environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("%v", err)
	}

	db.Init()
	if err := pgstore.Migrate(db.DB); err != nil {
		logger.Fatal("%v", err)
	}
	st := pgstore.New(db.DB)

	var redisService *redis.RedisService
	if addr, ok := os.LookupEnv("REDIS_ADDR"); ok {
		redisService = redis.NewRedisService(addr, os.Getenv("REDIS_PASSWORD"))
	} else {
		logger.Info("REDIS_ADDR not set, click cooldown fast path disabled")
	}

	svc := service.New(cfg, st, redisService)
	app.Start(svc, st)
}
