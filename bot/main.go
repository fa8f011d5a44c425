package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/DeafMist/trend-poster/internal/config"
	"github.com/DeafMist/trend-poster/internal/events"
	"github.com/DeafMist/trend-poster/internal/llm"
	"github.com/DeafMist/trend-poster/internal/logger"
	"github.com/DeafMist/trend-poster/internal/news"
	"github.com/DeafMist/trend-poster/internal/pipeline"
	"github.com/DeafMist/trend-poster/internal/publisher"
	"github.com/DeafMist/trend-poster/internal/scheduler"
	"github.com/DeafMist/trend-poster/internal/status"
)

func main() {
	envErr := godotenv.Load()

	log := logger.New("bot")
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		log.Warn("load .env", slog.Any("err", envErr))
	}

	cfg, err := config.LoadBot()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := run(ctx, log, cfg); err != nil {
		log.Error("bot stopped", slog.Any("err", err))
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger, cfg *config.Bot) error {
	fetcher, err := news.New(cfg.News, log)
	if err != nil {
		return fmt.Errorf("init news source: %w", err)
	}

	backend, err := llm.NewBackend(cfg.LLM)
	if err != nil {
		return fmt.Errorf("init llm backend: %w", err)
	}
	generator := llm.NewGenerator(backend, cfg.Persona, log)

	poster := publisher.NewPoster(ctx, cfg.X, log)
	pub := publisher.New(poster, cfg.X.MaxLength, log)

	tracker := status.NewTracker(status.DefaultCapacity)
	observers := []pipeline.Observer{tracker}

	if len(cfg.KafkaBrokers) > 0 {
		emitter := events.NewKafkaEmitter(cfg.KafkaBrokers, cfg.KafkaTopic, log)
		defer func() {
			if err := emitter.Close(); err != nil {
				log.Warn("close kafka writer", slog.Any("err", err))
			}
		}()
		observers = append(observers, emitter)
	}

	p := pipeline.New(fetcher, generator, pub, pipeline.Options{
		Mode:      cfg.Persona.Mode,
		Count:     cfg.News.Count,
		Observers: observers,
	}, log)

	if cfg.StatusAddr != "" {
		go func() {
			if err := status.Serve(ctx, cfg.StatusAddr, status.NewRouter(tracker), log); err != nil {
				log.Error("status server stopped", slog.Any("err", err))
			}
		}()
	}

	log.Info("bot started",
		slog.String("news_source", cfg.News.Source),
		slog.String("llm_provider", backend.Name()),
		slog.String("model", cfg.LLM.Model),
		slog.String("mode", cfg.Persona.Mode),
		slog.Bool("dry_run", cfg.X.DryRun),
		slog.Bool("run_once", cfg.Schedule.RunOnce),
	)

	if cfg.Schedule.RunOnce {
		return p.Invoke(ctx)
	}

	sched, err := scheduler.ParseSchedule(cfg.Schedule.Interval, cfg.Schedule.Cron)
	if err != nil {
		return err
	}
	log.Info("scheduler running",
		slog.Duration("interval", cfg.Schedule.Interval),
		slog.String("cron", cfg.Schedule.Cron),
	)
	scheduler.New(sched, nil, log).Run(ctx, p.Invoke)
	return nil
}
