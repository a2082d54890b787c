package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"question-bank-be/internal/config"
	"question-bank-be/internal/controller"
	"question-bank-be/internal/pkg/logger"
	"question-bank-be/internal/repository/memory"
	"question-bank-be/internal/repository/unitofwork"
	"question-bank-be/internal/service"
	"question-bank-be/pkg/allocation"
	"question-bank-be/pkg/artifact"
	"question-bank-be/pkg/llm"
	"question-bank-be/pkg/llm/factory"
	"question-bank-be/pkg/orchestrator"
	"question-bank-be/pkg/prompt"
	"question-bank-be/pkg/summary"

	pktNats "question-bank-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	QuestionController controller.IQuestionController

	// Background Services (Exposed for main.go to run)
	AuditConsumer service.IAuditConsumerService

	Logger logger.ILogger

	closers []func()
}

// Close releases every connection the container opened, in reverse order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	c := &Container{}

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)
	c.Logger = sysLogger
	c.closers = append(c.closers, func() { _ = sysLogger.Sync() }, func() { _ = auditLogger.Sync() })

	// 2. Event Bus (in-process, audit trail)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. Generation backend
	provider, err := NewLLMProvider(context.Background(), cfg)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	prompts := prompt.NewBuilder(nil)
	orch, err := NewOrchestrator(cfg, provider, prompts, sysLogger)
	if err != nil {
		log.Fatalf("[FATAL] Invalid generation config: %v", err)
	}

	// 4. Summary (cached in process memory)
	summarizer := NewSummarizer(cfg, provider, prompts, memory.NewSummaryRepository(cfg.Summary.CacheTTL, 10*time.Minute))

	// 5. Infrastructure
	// NATS
	var events service.EventPublisher = pktNats.NopPublisher{}
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		events = natsPub
		c.closers = append(c.closers, natsPub.Close)
	}

	// Artifact store
	var rdb *redis.Client
	if cfg.Artifact.Sink == "redis" {
		rdb = NewRedisClient(cfg.App.RedisURL)
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}
	sink, err := NewArtifactSink(cfg, rdb)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize artifact sink: %v", err)
	}

	// 6. Services
	auditPublisher := service.NewPublisherService(cfg.Generation.AuditTopic, pubSub)
	c.AuditConsumer = service.NewAuditConsumerService(pubSub, cfg.Generation.AuditTopic, uowFactory, auditLogger)

	questionService := service.NewQuestionService(
		summarizer,
		orch,
		sink,
		events,
		auditPublisher,
		uowFactory,
		sysLogger,
	)

	// 7. Controllers
	c.QuestionController = controller.NewQuestionController(questionService)

	return c
}

func NewLLMProvider(ctx context.Context, cfg *config.Config) (llm.LLMProvider, error) {
	return factory.NewLLMProvider(ctx, factory.Settings{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		BaseURL:  cfg.Ai.OllamaBaseURL,
		APIKey:   cfg.Ai.GeminiAPIKey,
	})
}

// GenerateOptions are sent with every generation call.
func GenerateOptions(cfg *config.Config) []llm.Option {
	return []llm.Option{
		llm.WithTemperature(cfg.Ai.Temperature),
		llm.WithMaxTokens(cfg.Ai.MaxTokens),
	}
}

func NewOrchestrator(cfg *config.Config, provider orchestrator.Generator, prompts *prompt.Builder, log logger.ILogger) (*orchestrator.Orchestrator, error) {
	strategy, err := allocation.ParseStrategy(cfg.Generation.AllocationStrategy)
	if err != nil {
		return nil, err
	}
	return orchestrator.New(provider, prompts, log, orchestrator.Config{
		MaxWorkers:      cfg.Generation.MaxWorkers,
		Strategy:        strategy,
		GenerateOptions: GenerateOptions(cfg),
	}), nil
}

// NewSummarizer picks the summary backend and wraps it in the cache when a
// TTL is configured.
func NewSummarizer(cfg *config.Config, provider llm.LLMProvider, prompts *prompt.Builder, store summary.Store) summary.Summarizer {
	var base summary.Summarizer
	switch cfg.Summary.Backend {
	case "retrieval":
		base = summary.NewRetrievalClient(cfg.Summary.RetrievalBaseURL, prompts.SummaryQuery)
	default:
		options := append([]llm.Option{llm.WithSystemPrompt(prompts.SystemPrompt())}, GenerateOptions(cfg)...)
		base = summary.NewLLMSummarizer(provider, prompts.SummaryQuery, options...)
	}

	if cfg.Summary.CacheTTL <= 0 || store == nil {
		return base
	}
	return summary.NewCachedSummarizer(base, store)
}

func NewRedisClient(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: url,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}
	return rdb
}

func NewArtifactSink(cfg *config.Config, rdb *redis.Client) (artifact.Sink, error) {
	switch cfg.Artifact.Sink {
	case "filesystem", "":
		return artifact.NewFilesystemSink(cfg.Artifact.Dir)
	case "redis":
		if rdb == nil {
			return nil, fmt.Errorf("redis artifact sink needs a redis client")
		}
		return artifact.NewRedisSink(rdb, cfg.Artifact.RedisPrefix, cfg.Artifact.RedisTTL), nil
	case "none":
		return artifact.NopSink{}, nil
	default:
		return nil, fmt.Errorf("unsupported artifact sink %q", cfg.Artifact.Sink)
	}
}
