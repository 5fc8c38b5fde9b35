package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bullyguard/bullyguard/internal/api"
	"github.com/bullyguard/bullyguard/internal/api/handler"
	"github.com/bullyguard/bullyguard/internal/api/metrics"
	"github.com/bullyguard/bullyguard/internal/classifier"
	"github.com/bullyguard/bullyguard/internal/core/ports"
	"github.com/bullyguard/bullyguard/internal/core/service"
	"github.com/bullyguard/bullyguard/internal/infrastructure/config"
	"github.com/bullyguard/bullyguard/internal/infrastructure/db/mongo"
	"github.com/bullyguard/bullyguard/internal/infrastructure/db/redis"
	"github.com/bullyguard/bullyguard/internal/infrastructure/db/sqlite"
	"github.com/bullyguard/bullyguard/internal/infrastructure/queue"
	"github.com/bullyguard/bullyguard/internal/session"
	"github.com/bullyguard/bullyguard/internal/wordcloud"
	"github.com/bullyguard/bullyguard/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{})
		boot.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "bullyguard",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	readiness := map[string]handler.PingFunc{}

	// --- Storage ---
	var (
		credentials ports.CredentialRepository
		history     ports.HistoryRepository
	)
	switch cfg.Storage.Driver {
	case "mongo":
		client, db, err := mongo.Connect(ctx, mongo.Config{
			URI:         cfg.Mongo.URI,
			Database:    cfg.Mongo.Database,
			MaxPoolSize: cfg.Mongo.MaxPoolSize,
		})
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		credentials = mongo.NewCredentialRepository(db)
		history = mongo.NewHistoryRepository(db)
		readiness["mongodb"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }

	default:
		db, err := sqlite.Open(ctx, sqlite.Config{Path: cfg.Storage.SQLitePath})
		if err != nil {
			return err
		}
		defer db.Close()

		credentials = sqlite.NewCredentialRepository(db)
		history = sqlite.NewHistoryRepository(db)
		readiness["sqlite"] = db.PingContext
	}
	log.Info().Str("driver", cfg.Storage.Driver).Msg("storage ready")

	// --- Sessions ---
	var store session.Store
	switch cfg.Session.Store {
	case "redis":
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()

		store = redis.NewSessionStore(rdb, cfg.Session.TTL)
		readiness["redis"] = func(ctx context.Context) error { return redis.Ping(ctx, rdb, time.Second) }
	case "jwt":
		store = session.NewJWTStore(cfg.SecretKey, cfg.Session.TTL)
	default:
		store = session.NewMemoryStore(cfg.Session.TTL)
	}
	sessions := session.NewManager(store, cfg.Session.Cookie, cfg.Session.TTL, cfg.IsProduction())

	// --- Classifier ---
	embedder, err := classifier.NewEmbedder(ctx, classifier.EmbedderConfig{
		Provider:    cfg.Classifier.Embedder,
		Dimensions:  cfg.Classifier.Dimensions,
		OllamaURL:   cfg.Classifier.OllamaURL,
		OllamaModel: cfg.Classifier.OllamaModel,
		GenAIAPIKey: cfg.Classifier.GenAIAPIKey,
		GenAIModel:  cfg.Classifier.GenAIModel,
	})
	if err != nil {
		return err
	}
	model, err := classifier.LoadModel(cfg.Classifier.ModelPath)
	if err != nil {
		return err
	}
	clf, err := classifier.New(embedder, model, logger.Component("classifier"))
	if err != nil {
		return err
	}
	log.Info().
		Str("embedder", embedder.Name()).
		Int("width", model.Width()).
		Str("model", cfg.Classifier.ModelPath).
		Msg("classifier loaded")

	renderer, err := wordcloud.NewRenderer(wordcloud.DefaultWidth, wordcloud.DefaultHeight, wordcloud.DefaultMaxWords)
	if err != nil {
		return err
	}
	renderPool := queue.NewRenderPool(cfg.WordCloud.Workers, metrics.InstrumentRenderer(renderer), logger.Component("wordcloud"))
	renderPool.Start(ctx)

	// --- Services ---
	webPath, err := cfg.WordCloudWebPath()
	if err != nil {
		return err
	}
	authService := service.NewAuthService(credentials, bcrypt.DefaultCost, logger.Component("auth"))
	predictionService := service.NewPredictionService(metrics.InstrumentClassifier(clf), history, logger.Component("prediction"))
	analyticsService := service.NewAnalyticsService(history, renderPool,
		cfg.WordCloud.Path, webPath, logger.Component("analytics"))

	e, err := api.NewRouter(api.Dependencies{
		AuthService:       authService,
		PredictionService: predictionService,
		AnalyticsService:  analyticsService,
		Sessions:          sessions,
		Readiness:         readiness,
		StaticDir:         cfg.StaticDir,
		Logger:            logger.Component("http"),
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("server stopped cleanly")
	return nil
}
