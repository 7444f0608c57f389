package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	myMongoRepo "github.com/gomicroshop/auth-service/internal/adapters/db/mongo"
	transport "github.com/gomicroshop/auth-service/internal/adapters/transport/nats"
	"github.com/gomicroshop/auth-service/internal/app/auth/jwt"
	"github.com/gomicroshop/auth-service/internal/app/auth/password"
	appsvc "github.com/gomicroshop/auth-service/internal/app/auth/service"
	"github.com/gomicroshop/auth-service/internal/infra/config"
	lg "github.com/gomicroshop/auth-service/internal/infra/log"
	"github.com/gomicroshop/auth-service/internal/infra/server"
)

func main() {
	zapLog := lg.Must(os.Getenv("LOG_LEVEL"))
	defer zapLog.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("failed to load config", zap.Error(err))
	}

	ctxConnect, cancelConnect := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelConnect()

	mongoCli, err := mongo.Connect(ctxConnect, options.Client().ApplyURI(cfg.DatabaseURL))
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer mongoCli.Disconnect(context.Background())
	if err := mongoCli.Ping(ctxConnect, nil); err != nil {
		zapLog.Fatal("database unreachable", zap.Error(err))
	}
	zapLog.Info("mongodb connected")

	userRepo := myMongoRepo.NewMongoUserRepo(mongoCli.Database(cfg.DatabaseName))
	if err := userRepo.EnsureIndexes(ctxConnect); err != nil {
		zapLog.Fatal("failed to ensure indexes", zap.Error(err))
	}

	tokenManager, err := jwt.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		zapLog.Fatal("failed to init token manager", zap.Error(err))
	}

	svc := appsvc.New(userRepo, tokenManager, password.NewHasher(), validator.New())
	handler := transport.NewHandler(svc, zapLog)

	rootCtx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	g, ctx := errgroup.WithContext(rootCtx)
	g.Go(func() error {
		return server.Start(ctx, cfg, handler, zapLog)
	})

	if err := g.Wait(); err != nil {
		zapLog.Error("server terminated", zap.Error(err))
	}
}
