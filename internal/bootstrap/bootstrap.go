package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gyan-shrestha/you-ai-hackathon/internal/config"
	"github.com/gyan-shrestha/you-ai-hackathon/internal/core/domain"
	"github.com/gyan-shrestha/you-ai-hackathon/internal/core/ports"
	"github.com/gyan-shrestha/you-ai-hackathon/internal/core/usecase"
	badgerstore "github.com/gyan-shrestha/you-ai-hackathon/internal/infrastructure/cache/badger"
	"github.com/gyan-shrestha/you-ai-hackathon/internal/infrastructure/cache/jsonfile"
	postgresstore "github.com/gyan-shrestha/you-ai-hackathon/internal/infrastructure/cache/postgres"
	redisstore "github.com/gyan-shrestha/you-ai-hackathon/internal/infrastructure/cache/redis"
	"github.com/gyan-shrestha/you-ai-hackathon/internal/infrastructure/domainmap"
	"github.com/gyan-shrestha/you-ai-hackathon/internal/infrastructure/embedding/hashing"
	"github.com/gyan-shrestha/you-ai-hackathon/internal/infrastructure/extractor"
	"github.com/gyan-shrestha/you-ai-hackathon/internal/infrastructure/extractor/pdf"
	"github.com/gyan-shrestha/you-ai-hackathon/internal/infrastructure/llm/ollama"
	"github.com/gyan-shrestha/you-ai-hackathon/internal/infrastructure/llm/openai"
	"github.com/gyan-shrestha/you-ai-hackathon/internal/infrastructure/resilience"
	"github.com/gyan-shrestha/you-ai-hackathon/internal/infrastructure/you"
)

type App struct {
	Config config.Config

	Pipeline *usecase.PipelineUseCase
	Store    ports.ContentStore

	closeFn func()
}

// New wires the pipeline from cfg. observer may be nil.
func New(ctx context.Context, cfg config.Config, observer ports.PipelineObserver) (*App, error) {
	if strings.TrimSpace(cfg.YouAPIKey) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "bootstrap", fmt.Errorf("YOU_API_KEY is required"))
	}
	if observer == nil {
		observer = ports.NopObserver{}
	}

	executor := resilience.NewExecutor(resilienceConfig(cfg))
	youClient := you.NewClient(cfg.YouAPIKey, cfg.HTTPTimeout, executor)

	domains, err := loadDomainMap(cfg.DomainMapPath)
	if err != nil {
		return nil, err
	}
	builder := usecase.NewQueryBuilder(
		domains,
		domainmap.ParseDomainList(cfg.SearchFallbackDomains),
		cfg.SearchJurisdiction,
	)
	searchUC := usecase.NewSearchUseCase(
		builder,
		you.NewSearchClient(youClient, cfg.YouSearchURL),
		cfg.SearchCountry,
		cfg.SearchCount,
		observer,
	)

	contentExtractor, err := newExtractor(cfg, youClient)
	if err != nil {
		return nil, err
	}
	embedder, err := newEmbedder(cfg, executor)
	if err != nil {
		return nil, err
	}
	synthesizer, err := newSynthesizer(cfg, youClient, executor)
	if err != nil {
		return nil, err
	}

	store, err := newStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	pipeline := usecase.NewPipelineUseCase(
		builder,
		searchUC,
		usecase.NewContentCache(store, observer),
		contentExtractor,
		embedder,
		synthesizer,
		pipelineConfig(cfg),
		observer,
	)

	slog.Info("bootstrap_ready",
		"cache_backend", cfg.CacheBackend,
		"extractor", cfg.Extractor,
		"embed_provider", cfg.EmbedProvider,
		"synth_provider", cfg.SynthProvider,
		"insurers", domains.Len(),
	)

	return &App{
		Config:   cfg,
		Pipeline: pipeline,
		Store:    store,
		closeFn: func() {
			if err := store.Close(); err != nil {
				slog.Error("content_store_close_failed", "error", err)
			}
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

func resilienceConfig(cfg config.Config) resilience.Config {
	out := resilience.DefaultConfig()
	if cfg.ResilienceCallTimeout != 0 {
		out.CallTimeout = cfg.ResilienceCallTimeout
	}
	if cfg.ResilienceRetryAttempts > 0 {
		out.RetryMaxAttempts = cfg.ResilienceRetryAttempts
	}
	out.BreakerEnabled = cfg.ResilienceBreakerEnabled
	if cfg.ResilienceBreakerMinReqs > 0 {
		out.BreakerMinRequests = uint32(cfg.ResilienceBreakerMinReqs)
	}
	if cfg.ResilienceBreakerRatio > 0 {
		out.BreakerFailureRatio = cfg.ResilienceBreakerRatio
	}
	if cfg.ResilienceBreakerOpenTime > 0 {
		out.BreakerOpenTimeout = cfg.ResilienceBreakerOpenTime
	}
	return out
}

func pipelineConfig(cfg config.Config) usecase.PipelineConfig {
	return usecase.PipelineConfig{
		LexicalTopK:        cfg.RankLexicalTopK,
		FinalTopK:          cfg.RankFinalTopK,
		WeightMeta:         cfg.RankWeightMeta,
		WeightContent:      cfg.RankWeightContent,
		BM25:               usecase.BM25Params{K1: cfg.BM25K1, B: cfg.BM25B},
		ContentMaxChars:    cfg.ContentMaxChars,
		AnswerContextChars: cfg.AnswerContextChars,
	}
}

func loadDomainMap(path string) (domain.DomainMap, error) {
	if strings.TrimSpace(path) == "" {
		return domainmap.Default(), nil
	}
	domains, err := domainmap.Load(path)
	if err != nil {
		return domain.DomainMap{}, fmt.Errorf("load domain map: %w", err)
	}
	return domains, nil
}

func newStore(ctx context.Context, cfg config.Config) (ports.ContentStore, error) {
	switch cfg.CacheBackend {
	case "", "file":
		store, err := jsonfile.Open(cfg.CachePath)
		if err != nil {
			return nil, fmt.Errorf("open content cache file: %w", err)
		}
		return store, nil
	case "badger":
		store, err := badgerstore.Open(cfg.BadgerPath)
		if err != nil {
			return nil, fmt.Errorf("open badger content cache: %w", err)
		}
		return store, nil
	case "postgres":
		db, err := postgresstore.OpenDB(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		store := postgresstore.NewStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		return store, nil
	case "redis":
		store, err := redisstore.NewStore(redisstore.Config{
			Addrs:    splitList(cfg.RedisAddr),
			Password: cfg.RedisPassword,
		})
		if err != nil {
			return nil, fmt.Errorf("open redis content cache: %w", err)
		}
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		return store, nil
	default:
		return nil, domain.WrapError(domain.ErrInvalidInput, "bootstrap", fmt.Errorf("unknown CACHE_BACKEND %q", cfg.CacheBackend))
	}
}

func newExtractor(cfg config.Config, youClient *you.Client) (ports.ContentExtractor, error) {
	contents := you.NewContentsClient(youClient, cfg.YouContentsURL)
	switch cfg.Extractor {
	case "", "contents":
		return contents, nil
	case "pdf":
		return pdf.NewExtractor(cfg.HTTPTimeout), nil
	case "chain":
		return extractor.NewChain().
			With("contents", contents).
			With("pdf", pdf.NewExtractor(cfg.HTTPTimeout)), nil
	default:
		return nil, domain.WrapError(domain.ErrInvalidInput, "bootstrap", fmt.Errorf("unknown EXTRACTOR %q", cfg.Extractor))
	}
}

func newEmbedder(cfg config.Config, executor *resilience.Executor) (ports.Embedder, error) {
	switch cfg.EmbedProvider {
	case "", "hashing":
		return hashing.NewEmbedder(cfg.EmbedDim), nil
	case "ollama":
		return ollama.NewEmbedder(ollama.New(cfg.OllamaURL, cfg.OllamaGenModel, cfg.OllamaEmbedModel, executor)), nil
	case "openai":
		if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
			return nil, domain.WrapError(domain.ErrInvalidInput, "bootstrap", fmt.Errorf("OPENAI_API_KEY is required for EMBED_PROVIDER=openai"))
		}
		return openai.NewEmbedder(openai.Config{
			APIKey:     cfg.OpenAIAPIKey,
			BaseURL:    cfg.OpenAIBaseURL,
			Model:      cfg.OpenAIEmbedModel,
			Dimensions: cfg.EmbedDim,
		}, executor), nil
	default:
		return nil, domain.WrapError(domain.ErrInvalidInput, "bootstrap", fmt.Errorf("unknown EMBED_PROVIDER %q", cfg.EmbedProvider))
	}
}

func newSynthesizer(cfg config.Config, youClient *you.Client, executor *resilience.Executor) (ports.AnswerSynthesizer, error) {
	switch cfg.SynthProvider {
	case "", "express":
		return you.NewExpressClient(youClient, cfg.YouExpressURL, cfg.AnswerContextChars), nil
	case "ollama":
		client := ollama.New(cfg.OllamaURL, cfg.OllamaGenModel, cfg.OllamaEmbedModel, executor)
		return ollama.NewGenerator(client, cfg.AnswerContextChars), nil
	default:
		return nil, domain.WrapError(domain.ErrInvalidInput, "bootstrap", fmt.Errorf("unknown SYNTH_PROVIDER %q", cfg.SynthProvider))
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
