package app

import (
	"context"
	"fmt"

	"github.com/kapu/plex-request-bot-go/internal/adapter"
	"github.com/kapu/plex-request-bot-go/internal/bot"
	"github.com/kapu/plex-request-bot-go/internal/command"
	"github.com/kapu/plex-request-bot-go/internal/config"
	"github.com/kapu/plex-request-bot-go/internal/constants"
	"github.com/kapu/plex-request-bot-go/internal/domain"
	"github.com/kapu/plex-request-bot-go/internal/health"
	"github.com/kapu/plex-request-bot-go/internal/iris"
	"github.com/kapu/plex-request-bot-go/internal/service"
	"go.uber.org/zap"
)

// Container bundles assembled services for constructing runtime components like Bot.
type Container struct {
	Config       *config.Config
	Logger       *zap.Logger
	Orchestrator *service.RequestOrchestrator
	Registry     *command.Registry
	IrisClient   *iris.Client

	botDeps *bot.Dependencies
}

// NewBot instantiates a bot using the pre-built dependency graph.
func (c *Container) NewBot() (*bot.Bot, error) {
	if c == nil || c.botDeps == nil {
		return nil, fmt.Errorf("bot dependencies not initialized")
	}
	return bot.NewBot(c.botDeps)
}

// Build wires transport, upstream clients, the orchestrator and the command
// layer. Nothing here touches the network.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx != nil && ctx.Err() != nil {
		return nil, fmt.Errorf("build cancelled: %w", ctx.Err())
	}

	// Messaging primitives
	irisClient := iris.NewClient(cfg.Iris.BaseURL, cfg.HTTP.Timeout, logger)
	irisWS := iris.NewWebSocket(
		cfg.Iris.WSURL,
		constants.WebSocketConfig.MaxReconnectAttempts,
		constants.WebSocketConfig.ReconnectDelay,
		logger,
	)
	messageAdapter := adapter.NewMessageAdapter(cfg.Bot.Prefix)
	formatter := adapter.NewResponseFormatter(cfg.Bot.Prefix, cfg.Bot.Language)

	// Upstream services
	apiCfg := service.APIClientConfig{Timeout: cfg.HTTP.Timeout}
	ombi := service.NewOmbiClient(cfg.Ombi.URL, cfg.Ombi.APIKey, cfg.Bot.LanguageCode(), apiCfg, logger)
	tmdb := service.NewTMDbClient(cfg.TMDb.BaseURL, cfg.TMDb.APIKey, cfg.Bot.Language, apiCfg, logger)
	orchestrator := service.NewRequestOrchestrator(ombi, tmdb, logger)

	// Command layer
	authorization := domain.NewAuthorization(cfg.Admin.WhitelistEnabled, cfg.Admin.Whitelist)
	registry := command.NewRegistry()
	command.RegisterDefaults(registry, &command.Dependencies{
		Orchestrator:  orchestrator,
		Formatter:     formatter,
		Authorization: authorization,
		Logger:        logger,
	})
	dispatcher := command.NewDispatcher(registry, formatter, irisClient.SendMessage, logger)

	deps := &bot.Dependencies{
		Logger:         logger,
		Source:         irisWS,
		MessageAdapter: messageAdapter,
		Processor:      dispatcher,
		Workers:        cfg.Bot.Workers,
	}
	if cfg.Health.Addr != "" {
		deps.Health = health.NewServer(cfg.Health.Addr, irisWS, logger)
	}

	logger.Info("Application services assembled",
		zap.Int("commands", registry.Count()),
		zap.String("language", cfg.Bot.Language),
		zap.Bool("admin_whitelist", authorization.Enabled),
		zap.Int("admin_whitelist_size", authorization.Size()),
		zap.Bool("health", deps.Health != nil),
	)

	return &Container{
		Config:       cfg,
		Logger:       logger,
		Orchestrator: orchestrator,
		Registry:     registry,
		IrisClient:   irisClient,
		botDeps:      deps,
	}, nil
}
