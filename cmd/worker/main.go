package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"

	"github.com/Sraju03/editor-sub000/internal/ai"
	"github.com/Sraju03/editor-sub000/internal/assistant"
	"github.com/Sraju03/editor-sub000/internal/config"
	"github.com/Sraju03/editor-sub000/internal/database"
	"github.com/Sraju03/editor-sub000/internal/docvault"
	"github.com/Sraju03/editor-sub000/internal/queue"
	"github.com/Sraju03/editor-sub000/internal/queue/workers"
	"github.com/Sraju03/editor-sub000/internal/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.NewPool(context.Background(), cfg.Database)
	if err != nil {
		slog.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	store := storage.NewSupabaseStore(cfg.Storage.SupabaseURL, cfg.Storage.SupabaseKey, cfg.Storage.Bucket)
	docSvc := docvault.NewService(docvault.NewPostgresRepository(db), store, cfg.Limits.MaxUploadBytes)
	queueClient := queue.NewClient(cfg.Redis)
	defer queueClient.Close()

	aiGW := ai.NewGateway(cfg.LLM)
	asstSvc := assistant.NewService(assistant.NewPgIndex(db), aiGW, cfg.LLM.DefaultModel)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	registry := queue.NewHandlersRegistry()

	extractWorker := workers.NewExtractWorker(docSvc, store, queueClient)
	indexWorker := workers.NewIndexWorker(docSvc, asstSvc)

	registry.Register(queue.TypeContentExtract, asynq.HandlerFunc(extractWorker.ProcessTask))
	registry.Register(queue.TypeAssistantIndex, asynq.HandlerFunc(indexWorker.ProcessTask))

	slog.Info("starting worker", "concurrency", 10)
	if err := srv.Run(registry.Mux()); err != nil {
		slog.Error("worker error", "error", err)
		os.Exit(1)
	}
}
