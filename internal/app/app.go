package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"MonkeyStarApi/internal/middleware"
	"MonkeyStarApi/internal/service"
	"MonkeyStarApi/internal/store"
	"MonkeyStarApi/pkg/logger"
)

const apiPrefix = "api/"

// NewRouter wires every route group: registration sits behind the Telegram
// init data check only, the rest additionally requires a known account, and
// the admin group is JWT guarded instead.
func NewRouter(svc *service.Service, st store.AccountStore) *gin.Engine {
	gin.DisableConsoleColor()

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.BlockBadActorsMiddleware())
	fromTelegram := router.Group("/", middleware.ValidateTelegramInitDataMiddleware())
	authorized := fromTelegram.Group("/", middleware.AuthMiddleware(st))
	admin := router.Group("/", middleware.AdminAuthMiddleware())

	// fromTelegram
	{
		fromTelegram.POST(apiPrefix+"users/register", svc.Register)
	}

	// authorized
	{
		// users
		authorized.GET(apiPrefix+"users", svc.GetProfile)
		authorized.GET(apiPrefix+"users/transactions", svc.GetTransactions)

		// referrals
		authorized.GET(apiPrefix+"users/referrals", svc.GetReferrals)

		// clicker
		authorized.POST(apiPrefix+"clicker", svc.Click)

		// sponsors
		authorized.GET(apiPrefix+"sponsors", svc.GetSponsors)
		authorized.POST(apiPrefix+"sponsors/subscription", svc.SetSubscription)

		// withdrawals
		authorized.POST(apiPrefix+"withdrawals", svc.RequestWithdrawal)
		authorized.GET(apiPrefix+"withdrawals/eligibility", svc.GetWithdrawalEligibility)

		// games
		authorized.POST(apiPrefix+"games/flip/place", svc.PlayFlip)
		authorized.POST(apiPrefix+"games/crash/place", svc.PlayCrash)
		authorized.POST(apiPrefix+"games/slot/place", svc.PlaySlot)
		authorized.POST(apiPrefix+"games/dice/place", svc.PlayDice)
		authorized.POST(apiPrefix+"games/jackpot/place", svc.PlayJackpot)
	}

	// admin
	{
		admin.GET(apiPrefix+"admin/stats", svc.GetStats)
		admin.GET(apiPrefix+"admin/accounts", svc.ListAccounts)
		admin.POST(apiPrefix+"admin/sponsors", svc.AddSponsor)
	}

	return router
}

func Start(svc *service.Service, st store.AccountStore) {
	router := NewRouter(svc, st)

	srv := &http.Server{
		Addr:    ":8080",
		Handler: router.Handler(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with
	// a timeout of 5 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown Server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server Shutdown: %v", err)
	}

	<-ctx.Done()
	logger.Info("Server exiting")
}
