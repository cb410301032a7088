package app

import (
	"context"
	"fmt"
	"log"

	"dashforge/internal/config"
	"dashforge/internal/domain"
	"dashforge/internal/export"
	"dashforge/internal/generate"
	"dashforge/internal/handler"
	"dashforge/internal/llm"
	"dashforge/internal/server"
	"dashforge/internal/state"
)

type App struct {
	server    *server.Server
	llmClient llm.Client
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Dependencies
	domains, err := newDomainRegistry(cfg)
	if err != nil {
		return nil, err
	}
	dashboards := state.NewStore()

	var llmClient llm.Client
	orch := &generate.Orchestrator{Timeout: cfg.LLM.Timeout}
	if cfg.LLM.Enabled {
		client, err := llm.NewGeminiClient(ctx, cfg.LLM.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize llm client: %w", err)
		}
		llmClient = client
		orch.External = &generate.LLMGenerator{Client: client}
		log.Printf("llm generation enabled: model=%s", cfg.LLM.Model)
	} else {
		log.Printf("llm generation disabled; using deterministic generator only")
	}

	svc := handler.NewService(domains, orch, dashboards)
	svc.LLM = llmClient
	if exporter, err := newExporter(cfg); err != nil {
		return nil, err
	} else if exporter != nil {
		svc.Exporter = exporter
	}

	// Routing & Server
	mux := server.NewMux(svc)
	srv := server.New(cfg.Port, mux)

	return &App{
		server:    srv,
		llmClient: llmClient,
	}, nil
}

func newDomainRegistry(cfg *config.Config) (*domain.Registry, error) {
	if dsn := cfg.Domain.PostgresDSN; dsn != "" {
		reg, err := domain.NewRegistryPostgres(dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open domain registry db: %w", err)
		}
		log.Printf("domain registry: postgres")
		return reg, nil
	}
	log.Printf("domain registry: file path=%s", cfg.Domain.Path)
	return domain.NewRegistry(cfg.Domain.Path), nil
}

func newExporter(cfg *config.Config) (*export.Exporter, error) {
	if !cfg.Export.Enabled {
		return nil, nil
	}
	store, err := export.NewS3Store(export.S3Config{
		Endpoint:  cfg.Export.Endpoint,
		Region:    cfg.Export.Region,
		AccessKey: cfg.Export.AccessKey,
		SecretKey: cfg.Export.SecretKey,
		Bucket:    cfg.Export.Bucket,
		UseSSL:    cfg.Export.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize export store: %w", err)
	}
	log.Printf("export store: s3 bucket=%s endpoint=%s", cfg.Export.Bucket, cfg.Export.Endpoint)
	return &export.Exporter{Store: store}, nil
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	if a.llmClient != nil {
		_ = a.llmClient.Close()
	}
	return a.server.Shutdown(ctx)
}
