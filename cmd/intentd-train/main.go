package main

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/intentd/internal/config"
	dbRedis "github.com/kailas-cloud/intentd/internal/db/redis"
	"github.com/kailas-cloud/intentd/internal/domain"
	logpkg "github.com/kailas-cloud/intentd/internal/logger"
	artifactrepo "github.com/kailas-cloud/intentd/internal/repository/artifact"
	trainuc "github.com/kailas-cloud/intentd/internal/usecase/train"
	"github.com/kailas-cloud/intentd/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting intentd trainer",
		zap.String("version", version.Version),
		zap.String("env", env),
		zap.String("intents_path", cfg.Training.IntentsPath),
		zap.String("artifacts_driver", cfg.Artifacts.Driver),
	)

	data, err := os.ReadFile(cfg.Training.IntentsPath)
	if err != nil {
		logger.Fatal("Failed to read intent catalog", zap.Error(err))
	}
	catalog, err := domain.ParseCatalog(data)
	if err != nil {
		logger.Fatal("Failed to parse intent catalog", zap.Error(err))
	}
	logger.Info("Intent catalog loaded", zap.Int("intents", len(catalog.Intents)))

	ctx := context.Background()

	// Artifact destination: local files or a shared Redis store.
	var store trainuc.ArtifactStore
	switch cfg.Artifacts.Driver {
	case "file":
		store = artifactrepo.NewFileStore(cfg.Artifacts.ModelDir)
	case "redis":
		rstore, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Artifacts.Addrs,
			Password: cfg.Artifacts.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create redis store", zap.Error(err))
		}
		defer rstore.Close()

		readiness := time.Duration(cfg.Artifacts.ReadinessTimeout) * time.Second
		if err := rstore.WaitForReady(ctx, readiness); err != nil {
			logger.Fatal("Redis not ready", zap.Error(err))
		}
		store = artifactrepo.NewKVStore(rstore, cfg.Artifacts.KeyPrefix)
	default:
		logger.Fatal("Unknown artifacts driver", zap.String("driver", cfg.Artifacts.Driver))
	}

	trainer := trainuc.New(store).WithSplit(cfg.Training.TestSize, cfg.Training.Seed)

	res, err := trainer.Train(ctx, catalog)
	if err != nil {
		logger.Fatal("Training failed", zap.Error(err))
	}

	logger.Info("Training complete",
		zap.Float64("accuracy", res.Accuracy),
		zap.Int("train_samples", res.TrainSamples),
		zap.Int("test_samples", res.TestSamples),
		zap.Strings("classes", res.Bundle.Model.Classes()),
		zap.Int("vocabulary", res.Bundle.Vectorizer.NumFeatures()),
		zap.String("fingerprint", res.Bundle.Fingerprint),
	)
}
