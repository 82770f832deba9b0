// Package main wires configuration, storage, services, and the HTTP router
// into the donorhub API server.
//
// @title           DonorHub API
// @version         1.0
// @description     Blood-donation coordination platform with a merchant marketplace.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/donorhub/donorhub-api/internal/api"
	"github.com/donorhub/donorhub-api/internal/core/service"
	"github.com/donorhub/donorhub-api/internal/infrastructure/config"
	mongodb "github.com/donorhub/donorhub-api/internal/infrastructure/db/mongo"
	redisdb "github.com/donorhub/donorhub-api/internal/infrastructure/db/redis"
	"github.com/donorhub/donorhub-api/internal/infrastructure/identity"
	"github.com/donorhub/donorhub-api/internal/infrastructure/payment"
	"github.com/donorhub/donorhub-api/internal/infrastructure/queue"
	"github.com/donorhub/donorhub-api/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logg := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})
	logg.Info().Str("env", cfg.Env).Msg("starting donorhub api")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		logg.Fatal().Err(err).Msg("mongodb connection failed")
	}

	rdb, err := redisdb.Connect(ctx, cfg.Redis)
	if err != nil {
		logg.Fatal().Err(err).Msg("redis connection failed")
	}

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	donationRepo := mongodb.NewDonationRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	blogRepo := mongodb.NewBlogRepository(db)
	fundingRepo := mongodb.NewFundingRepository(db)
	contactRepo := mongodb.NewContactRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	ensureIndexes(ctx, logg, userRepo, donationRepo, productRepo, auditRepo)

	// --- Infrastructure adapters ---
	verifier := identity.NewJWTVerifier(cfg.TokenSecret)
	tokenCache := redisdb.NewTokenCache(rdb, cfg.TokenCacheTTL)
	stripeProvider := payment.NewStripeProvider(cfg.Stripe.SecretKey, cfg.Stripe.Currency)

	auditDispatcher := queue.NewAuditDispatcher(cfg.AuditWorkers, auditRepo, logg)
	auditDispatcher.Start()

	// --- Services ---
	identityService := service.NewIdentityService(verifier, userRepo, tokenCache, logg)
	userService := service.NewUserService(userRepo, auditDispatcher, logg)
	donationService := service.NewDonationService(donationRepo, logg)
	productService := service.NewProductService(productRepo, logg)
	blogService := service.NewBlogService(blogRepo, logg)
	fundingService := service.NewFundingService(fundingRepo, stripeProvider, logg)
	contactService := service.NewContactService(contactRepo, logg)

	// --- Router ---
	e := api.NewRouter(api.Deps{
		Log:       logg,
		Identity:  identityService,
		Users:     userService,
		Donations: donationService,
		Products:  productService,
		Blogs:     blogService,
		Fundings:  fundingService,
		Contacts:  contactService,
		Audit:     auditRepo,
		Mongo:     db,
		Redis:     rdb,
	})

	go func() {
		addr := ":" + cfg.Port
		logg.Info().Str("addr", addr).Msg("http server listening")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logg.Fatal().Err(err).Msg("server stopped")
		}
	}()

	// Graceful shutdown: stop accepting requests, drain the audit queue,
	// then close storage connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logg.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logg.Error().Err(err).Msg("http shutdown failed")
	}

	cancel()
	auditDispatcher.Stop()

	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		logg.Error().Err(err).Msg("mongodb disconnect failed")
	}
	if err := rdb.Close(); err != nil {
		logg.Error().Err(err).Msg("redis close failed")
	}

	logg.Info().Msg("bye")
}

// indexed is satisfied by every repository that bootstraps its own indexes.
type indexed interface {
	EnsureIndexes(ctx context.Context) error
}

// ensureIndexes bootstraps collection indexes at startup. A failure is
// logged but does not block startup; queries still work without them.
func ensureIndexes(ctx context.Context, logg zerolog.Logger, repos ...indexed) {
	for _, r := range repos {
		if err := r.EnsureIndexes(ctx); err != nil {
			logg.Error().Err(err).Msg("index bootstrap failed")
		}
	}
}
