package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/DeafMist/trend-poster/internal/config"
	"github.com/DeafMist/trend-poster/internal/logger"
	"github.com/DeafMist/trend-poster/internal/models"
	"github.com/DeafMist/trend-poster/internal/news"
	"github.com/DeafMist/trend-poster/internal/processing"
)

// Generator writes a post from a headline or a bare topic.
type Generator interface {
	Generate(ctx context.Context, item models.NewsItem) (models.GeneratedPost, error)
	GenerateFromTopic(ctx context.Context, topic string) (models.GeneratedPost, error)
}

// Publisher submits final text.
type Publisher interface {
	Publish(ctx context.Context, text string) (models.PostReceipt, error)
}

// Observer is told about every finished run.
type Observer interface {
	Observe(ctx context.Context, outcome models.RunOutcome)
}

// Options tune a Pipeline. Zero values fall back to defaults.
type Options struct {
	// Mode is config.ModeNews or config.ModeTopic.
	Mode string
	// Count is how many headlines to fetch per run.
	Count int
	// Pick returns an index in [0, n). Defaults to a uniform random choice.
	Pick      func(n int) int
	Observers []Observer
}

// Pipeline runs one fetch, select, generate, publish cycle per call.
type Pipeline struct {
	fetcher   news.Fetcher
	generator Generator
	publisher Publisher
	opts      Options
	log       *slog.Logger
	now       func() time.Time
}

func New(fetcher news.Fetcher, generator Generator, publisher Publisher, opts Options, log *slog.Logger) *Pipeline {
	if opts.Mode == "" {
		opts.Mode = config.ModeNews
	}
	if opts.Count <= 0 {
		opts.Count = 5
	}
	if opts.Pick == nil {
		opts.Pick = rand.Intn
	}
	return &Pipeline{
		fetcher:   fetcher,
		generator: generator,
		publisher: publisher,
		opts:      opts,
		log:       logger.OrDiscard(log),
		now:       time.Now,
	}
}

// Invoke runs the pipeline once and reports only the error.
func (p *Pipeline) Invoke(ctx context.Context) error {
	_, err := p.Run(ctx)
	return err
}

// Run executes one invocation. An empty or failed fetch ends the run with
// status no_news and a nil error. Generation and publish failures are returned.
func (p *Pipeline) Run(ctx context.Context) (models.RunOutcome, error) {
	outcome := models.RunOutcome{
		RunID:     uuid.NewString(),
		StartedAt: p.now().UTC(),
	}
	log := p.log.With("run_id", outcome.RunID)

	err := p.run(ctx, log, &outcome)
	outcome.FinishedAt = p.now().UTC()
	if err != nil {
		outcome.Status = models.RunFailed
		outcome.Error = err.Error()
		log.Error("run failed", slog.Any("err", err), slog.Duration("took", outcome.Duration()))
	} else {
		log.Info("run finished", slog.String("status", outcome.Status), slog.Duration("took", outcome.Duration()))
	}

	for _, obs := range p.opts.Observers {
		obs.Observe(ctx, outcome)
	}
	return outcome, err
}

func (p *Pipeline) run(ctx context.Context, log *slog.Logger, outcome *models.RunOutcome) error {
	res := p.fetcher.Fetch(ctx, p.opts.Count)
	if res.Status != news.StatusFound {
		log.Warn("no news available", slog.String("fetch_status", string(res.Status)), slog.Any("err", res.Err))
		outcome.Status = models.RunNoNews
		return nil
	}

	item := res.Items[p.opts.Pick(len(res.Items))]
	outcome.Headline = item.Title
	log.Info("headline selected", slog.String("title", item.Title), slog.String("topics", item.Topics))

	post, err := p.generate(ctx, log, item, outcome)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	receipt, err := p.publisher.Publish(ctx, post.CleanText)
	if err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	outcome.Status = models.RunPosted
	outcome.PostID = receipt.ID
	outcome.PostText = receipt.Text
	return nil
}

func (p *Pipeline) generate(ctx context.Context, log *slog.Logger, item models.NewsItem, outcome *models.RunOutcome) (models.GeneratedPost, error) {
	if p.opts.Mode != config.ModeTopic {
		outcome.Topic = item.Topics
		return p.generator.Generate(ctx, item)
	}

	topics := processing.SplitTopics(item.Topics)
	if len(topics) == 0 {
		topics = []string{processing.FallbackTopic}
	}
	topic := topics[p.opts.Pick(len(topics))]
	outcome.Topic = topic
	log.Info("topic selected", slog.String("topic", topic))
	return p.generator.GenerateFromTopic(ctx, topic)
}
