package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kapu/plex-request-bot-go/internal/adapter"
	"github.com/kapu/plex-request-bot-go/internal/constants"
	"github.com/kapu/plex-request-bot-go/internal/domain"
	"github.com/kapu/plex-request-bot-go/internal/iris"
	"github.com/kapu/plex-request-bot-go/internal/util"
	"github.com/sourcegraph/conc/panics"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// MessageSource delivers inbound chat messages until its context ends.
type MessageSource interface {
	Run(ctx context.Context, handler iris.MessageHandler) error
	Close() error
	IsConnected() bool
}

// Processor handles one parsed command.
type Processor interface {
	Process(ctx context.Context, cmdCtx *domain.CommandContext) error
}

// Server is an auxiliary HTTP server run next to the message loop.
type Server interface {
	Start() error
	Stop(ctx context.Context) error
}

type Dependencies struct {
	Logger         *zap.Logger
	Source         MessageSource
	MessageAdapter *adapter.MessageAdapter
	Processor      Processor
	Workers        int
	Health         Server // optional
}

// Bot feeds websocket messages through the adapter into the dispatcher on a
// bounded worker pool.
type Bot struct {
	logger         *zap.Logger
	source         MessageSource
	messageAdapter *adapter.MessageAdapter
	processor      Processor
	health         Server
	workers        *pool.Pool

	mu      sync.RWMutex
	baseCtx context.Context
	closed  bool
}

func NewBot(deps *Dependencies) (*Bot, error) {
	if deps == nil {
		return nil, fmt.Errorf("bot dependencies must not be nil")
	}
	if deps.Source == nil || deps.MessageAdapter == nil || deps.Processor == nil {
		return nil, fmt.Errorf("bot requires a message source, adapter and processor")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := deps.Workers
	if workers < 1 {
		workers = 1
	}

	return &Bot{
		logger:         logger,
		source:         deps.Source,
		messageAdapter: deps.MessageAdapter,
		processor:      deps.Processor,
		health:         deps.Health,
		workers:        pool.New().WithMaxGoroutines(workers),
		baseCtx:        context.Background(),
	}, nil
}

// Start runs the message loop and the health server until ctx is cancelled or
// one of them fails.
func (b *Bot) Start(ctx context.Context) error {
	b.mu.Lock()
	b.baseCtx = context.WithoutCancel(ctx)
	b.mu.Unlock()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		b.logger.Info("Starting message listener")
		if err := b.source.Run(gCtx, b.HandleMessage); err != nil {
			return fmt.Errorf("message listener: %w", err)
		}
		return nil
	})

	if b.health != nil {
		g.Go(func() error {
			if err := b.health.Start(); err != nil {
				return fmt.Errorf("health server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gCtx.Done()
			return b.health.Stop(context.WithoutCancel(gCtx))
		})
	}

	b.logger.Info("Bot running")
	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Bot stopped due to error", zap.Error(err))
		return err
	}
	b.logger.Info("Bot stopped")
	return nil
}

// HandleMessage parses message and schedules the command on the worker pool.
// Messages not addressed to the bot are dropped.
func (b *Bot) HandleMessage(message *iris.Message) {
	parsed, ok := b.messageAdapter.ParseMessage(message)
	if !ok {
		return
	}
	cmdCtx := domain.NewCommandContext(message.Room, message.SenderID(), parsed.Text, parsed.Verb, parsed.Args)
	b.logger.Debug("Command received",
		zap.String("room", cmdCtx.Room),
		zap.String("verb", cmdCtx.Verb.String()),
		zap.String("raw", util.TruncateString(parsed.RawMessage, constants.StringLimits.EchoCommand)),
	)

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		b.logger.Warn("Dropping command received during shutdown", zap.String("verb", cmdCtx.Verb.String()))
		return
	}
	ctx := b.baseCtx

	b.workers.Go(func() {
		var catcher panics.Catcher
		catcher.Try(func() {
			if err := b.processor.Process(ctx, cmdCtx); err != nil {
				b.logger.Warn("Command delivery failed",
					zap.String("room", cmdCtx.Room),
					zap.String("verb", cmdCtx.Verb.String()),
					zap.Error(err),
				)
			}
		})
		if r := catcher.Recovered(); r != nil {
			b.logger.Error("Recovered from panic in command",
				zap.String("room", cmdCtx.Room),
				zap.String("verb", cmdCtx.Verb.String()),
				zap.Error(r.AsError()),
			)
		}
	})
}

// Shutdown stops intake and waits for in-flight commands or ctx, whichever
// comes first.
func (b *Bot) Shutdown(ctx context.Context) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.mu.Unlock()

	if err := b.source.Close(); err != nil {
		b.logger.Warn("Failed to close message source", zap.Error(err))
	}

	done := make(chan struct{})
	go func() {
		b.workers.Wait()
		close(done)
	}()

	select {
	case <-done:
		b.logger.Info("All in-flight commands finished")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for in-flight commands: %w", ctx.Err())
	}
}

// IsReady reports whether the message source is connected.
func (b *Bot) IsReady() bool {
	return b.source.IsConnected()
}
