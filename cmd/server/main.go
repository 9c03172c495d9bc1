package main // Entry point package

import (
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/perkspot/venue-checkin/internal/config"
    "github.com/perkspot/venue-checkin/internal/database"
    "github.com/perkspot/venue-checkin/internal/handler"
    "github.com/perkspot/venue-checkin/internal/middleware"
    "github.com/perkspot/venue-checkin/internal/queue"
    "github.com/perkspot/venue-checkin/internal/repository"
    "github.com/perkspot/venue-checkin/internal/router"
    "github.com/perkspot/venue-checkin/internal/service"
)

func main() {
    _ = godotenv.Load() // .env is optional; real deployments use the environment

    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("db connect: %v", err)
    }
    defer db.Close()

    // Redis is optional; rate limiting and browse caching disable
    // themselves when the client is nil.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Println("redis unavailable; rate limiting and response cache disabled")
    }

    venueRepo := repository.NewVenueRepo(db)
    windowRepo := repository.NewWindowRepo(db)
    checkinRepo := repository.NewCheckinRepo(db)
    memberRepo := repository.NewMembershipRepo(db)
    userRepo := repository.NewUserRepo(db)
    tokenRepo := repository.NewTokenRepo(db)

    svc := service.NewCheckinService(cfg.Checkin, venueRepo, windowRepo, checkinRepo, memberRepo)

    authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
    checkinHandler := handler.NewCheckinHandler(svc)
    publicHandler := &handler.PublicHandler{Windows: windowRepo}

    limiter := middleware.RateLimit(config.LoadRateLimitConfig(), rdb)
    cache := middleware.CacheJSON(config.LoadCacheConfig(), rdb)

    e := echo.New()
    router.RegisterRoutes(e)
    router.RegisterAuth(e, authHandler, cfg.JWTSecret)
    router.RegisterPublic(e, publicHandler, cache)
    router.RegisterCheckin(e, checkinHandler, cfg.JWTSecret, limiter)

    // Background consumer that records redeemed check-ins from the broker.
    go queue.StartRedeemConsumer()

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
