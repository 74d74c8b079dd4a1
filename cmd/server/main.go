package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/sportfitx/class-booking/internal/config"
	"github.com/sportfitx/class-booking/internal/database"
	"github.com/sportfitx/class-booking/internal/handler"
	"github.com/sportfitx/class-booking/internal/payment"
	"github.com/sportfitx/class-booking/internal/queue"
	"github.com/sportfitx/class-booking/internal/repository"
	"github.com/sportfitx/class-booking/internal/router"
)

func main() {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	payment.Configure(cfg.StripeSecretKey)

	userRepo := repository.NewUserRepo(db)
	classRepo := repository.NewClassRepo(db)
	selectionRepo := repository.NewSelectionRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	h := router.Handlers{
		Token:      handler.NewTokenHandler(cfg.JWTSecret, cfg.AccessTTLMin),
		Users:      handler.NewUserHandler(userRepo),
		Classes:    handler.NewClassHandler(classRepo),
		Selections: handler.NewSelectionHandler(selectionRepo),
		Payments: handler.NewPaymentHandler(
			paymentRepo, selectionRepo, classRepo,
			payment.NewStripeIntents(cfg.StripeCurrency), cfg.AMQPURL),
		Roles: userRepo,
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response caching disabled")
	}
	router.Register(e, h, cfg.JWTSecret, rdb, config.LoadCacheConfig())

	// Settlement log consumer runs for the lifetime of the process.
	if cfg.AMQPURL != "" {
		go queue.StartSettlementConsumer(cfg.AMQPURL)
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
