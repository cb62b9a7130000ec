package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cleverbank/internal/config"
	"cleverbank/internal/document"
	hrest "cleverbank/internal/handler/rest"
	"cleverbank/internal/pub"
	"cleverbank/internal/repository"
	"cleverbank/internal/usecase"
	"cleverbank/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// connectRedis returns a pinged client, or nil when Redis is
// unreachable. Redis is an accelerator, not a dependency: when it is
// down the usecases fall through to Postgres.
func connectRedis(ctx context.Context, cfg config.AppConfig, log *zap.Logger) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("redis unavailable, caching disabled", zap.Error(err))
		rdb.Close()
		return nil
	}
	return rdb
}

// Run wires the full service together and serves HTTP until the
// context is cancelled.
func Run(ctx context.Context, cfg config.AppConfig, log *zap.Logger) error {
	dbpool, err := config.ConnectDB(log)
	if err != nil {
		return err
	}
	defer dbpool.Close()

	if err := repository.Migrate(ctx, dbpool); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	rdb := connectRedis(ctx, cfg, log)
	if rdb != nil {
		defer rdb.Close()
	}

	events := pub.NewTransactionEventPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, log)
	defer events.Close()

	numberGen := utils.NewAccountNumberGenerator()
	renderer := document.NewRenderer(cfg.DocumentDir, numberGen)

	userRepo := repository.NewUserRepo(dbpool)
	bankRepo := repository.NewBankRepo(dbpool)
	accountRepo := repository.NewAccountRepo(dbpool)
	transactionRepo := repository.NewTransactionRepo(dbpool)

	documentUC := usecase.NewDocumentUsecase(renderer, log)
	userUC := usecase.NewUserUsecase(userRepo, rdb)
	bankUC := usecase.NewBankUsecase(bankRepo, rdb)
	accountUC := usecase.NewAccountUsecase(accountRepo, userRepo, bankRepo, numberGen, rdb)
	txUC := usecase.NewTransactionUsecase(transactionRepo, accountRepo, bankRepo, documentUC, events, rdb, log)
	statementUC := usecase.NewStatementUsecase(accountRepo, transactionRepo, userRepo, bankRepo, documentUC, rdb)

	handler := hrest.NewBankRestHandler(userUC, bankUC, accountUC, txUC, statementUC, log)

	r := chi.NewRouter()

	// Middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	handler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
