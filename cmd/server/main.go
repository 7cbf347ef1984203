package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	httpctx "github.com/dtroode/blackjack-server/internal/api/http/context"
	"github.com/dtroode/blackjack-server/internal/api/http/router"
	httpServer "github.com/dtroode/blackjack-server/internal/api/http/server"
	"github.com/dtroode/blackjack-server/internal/cache/redis"
	"github.com/dtroode/blackjack-server/internal/config"
	"github.com/dtroode/blackjack-server/internal/logger"
	"github.com/dtroode/blackjack-server/internal/model"
	"github.com/dtroode/blackjack-server/internal/repository/postgres"
	"github.com/dtroode/blackjack-server/internal/security"
	"github.com/dtroode/blackjack-server/internal/server"
	"github.com/dtroode/blackjack-server/internal/service"
	"github.com/dtroode/blackjack-server/internal/token"
	"github.com/dtroode/blackjack-server/internal/tracing"
	"github.com/dtroode/blackjack-server/internal/verifier"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.NewWithFormat(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	shutdownTracing, err := tracing.Setup(ctx, cfg.OTel.Endpoint, cfg.OTel.ServiceName, buildVersion)
	if err != nil {
		logger.Fatal("failed to initialize tracing", "error", err)
	}

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN, postgres.WithMaxConns(cfg.Database.MaxConns))
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	redisClient, err := redis.Connect(ctx, cfg.Redis.URL)
	if err != nil {
		logger.Fatal("failed to initialize redis", "error", err)
	}
	defer redisClient.Close()

	identityRepo := postgres.NewIdentityRepository(db)
	playerRepo := postgres.NewPlayerRepository(db)
	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL, cfg.JWT.Issuer)

	sessionService := service.NewSessionService(tokenManager, redis.NewRevocationStore(redisClient), logger)
	identityService := service.NewIdentityService(identityRepo, security.NewBcryptHasher(cfg.Bcrypt.Cost), sessionService, logger)
	challengeService := service.NewChallengeService(redis.NewChallengeStore(redisClient), cfg.Wallet.ChallengeTTL, logger)
	provisioner := service.NewProvisioner(identityService, playerRepo, logger)

	var authOpts []service.AuthOption
	if cfg.Wallet.RequireChallenge {
		authOpts = append(authOpts, service.WithChallenges(challengeService))
	}
	authService := service.NewAuth(
		provisioner,
		playerRepo,
		verifier.NewPassword(identityService),
		verifier.NewSignature(),
		sessionService,
		logger,
		authOpts...,
	)
	leaderboard := service.NewLeaderboard(playerRepo, cfg.Leaderboard.DefaultLimit, cfg.Leaderboard.MaxLimit)

	r := router.New(router.Services{
		Auth:        authService,
		Challenges:  challengeService,
		Sessions:    sessionService,
		Players:     authService,
		Leaderboard: leaderboard,
	}, httpctx.NewManager(), logger)

	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port), cfg.HTTP.ReadTimeout, cfg.HTTP.WriteTimeout)

	sl, err := server.NewSecurityLayer(cfg.HTTP)
	if err != nil {
		logger.Fatal("failed to configure listener", "error", err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "https", cfg.HTTP.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}
	wg.Wait()

	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("error during tracing shutdown", "error", err)
	}

	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
