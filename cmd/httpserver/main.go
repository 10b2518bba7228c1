package main

import (
	"context"
	"fmt"
	"log/slog"
	"movievault/dynamodb"
	"movievault/httpserver"
	"movievault/movie"
	"movievault/pkg/config"
	"movievault/pkg/keepalive"
	"movievault/pkg/logger"
	"movievault/pkg/sentry"
	"movievault/postgres"
	"movievault/storage"
	"os"
	"time"

	sentrygo "github.com/getsentry/sentry-go"
	_ "github.com/lib/pq"
)

const keepAliveInterval = 8 * time.Minute

func main() {
	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(slogger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Cannot load config", "error", err)
		os.Exit(1)
	}

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		slog.Error("Cannot init sentry", "error", err)
		os.Exit(1)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	repo, err := newMovieRepository(cfg)
	if err != nil {
		slog.Error("Cannot create movie repository", "error", err)
		os.Exit(1)
	}

	posters, err := newPosterStorage(cfg)
	if err != nil {
		slog.Error("Cannot create poster storage", "error", err)
		os.Exit(1)
	}

	zapLogger, err := logger.New(cfg.AppEnv)
	if err != nil {
		slog.Error("Cannot create logger", "error", err)
		os.Exit(1)
	}
	defer zapLogger.Sync() // nolint: errcheck

	server := httpserver.Default(cfg)
	server.Addr = fmt.Sprintf(":%d", cfg.Port)
	server.Logger = zapLogger
	server.MovieService = movie.NewUsecase(repo, posters)

	if cfg.AppDomain != "" {
		// some hosts idle out free-tier dynos, keep ours warm
		go keepalive.New(cfg.AppDomain, keepAliveInterval).Run(context.Background())
	}

	slog.Info("server started!")
	if err := server.Start(); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func newMovieRepository(cfg *config.Config) (movie.Repository, error) {
	switch cfg.DB.Driver {
	case "dynamodb":
		client, err := dynamodb.NewClient(context.Background(), dynamodb.Options{
			Region:       cfg.DynamoDB.Region,
			Endpoint:     cfg.DynamoDB.Endpoint,
			AccessKey:    cfg.DynamoDB.AccessKey,
			SecretKey:    cfg.DynamoDB.SecretKey,
			SessionToken: cfg.DynamoDB.SessionToken,
		})
		if err != nil {
			return nil, err
		}
		return dynamodb.NewMovieRepository(client, cfg.DynamoDB.MoviesTable), nil
	default:
		db, err := postgres.NewConnection(postgres.Options{
			DBName:   cfg.DB.Name,
			DBUser:   cfg.DB.User,
			Password: cfg.DB.Pass,
			Host:     cfg.DB.Host,
			Port:     fmt.Sprintf("%d", cfg.DB.Port),
			SSLMode:  cfg.DB.EnableSSL,
		})
		if err != nil {
			return nil, err
		}
		return postgres.NewMovieRepository(db), nil
	}
}

func newPosterStorage(cfg *config.Config) (movie.PosterStorage, error) {
	if cfg.Storage.EnableCloudinary {
		return storage.NewCloudinary(
			cfg.Storage.CloudinaryCloudName,
			cfg.Storage.CloudinaryAPIKey,
			cfg.Storage.CloudinaryAPISecret,
		)
	}
	return storage.NewLocal(cfg.Storage.UploadDir), nil
}
