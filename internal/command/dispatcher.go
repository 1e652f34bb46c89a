package command

import (
	"context"
	"errors"
	"time"

	"github.com/kapu/plex-request-bot-go/internal/adapter"
	"github.com/kapu/plex-request-bot-go/internal/domain"
	"go.uber.org/zap"
)

// SendFunc delivers text to a chat room.
type SendFunc func(ctx context.Context, room, text string) error

// Dispatcher routes one command to its handler and delivers the handler's
// reply. Every Process call sends at most one message; the only silent path
// is a handler that deliberately returns no reply.
type Dispatcher struct {
	registry  *Registry
	formatter *adapter.ResponseFormatter
	send      SendFunc
	logger    *zap.Logger
}

func NewDispatcher(registry *Registry, formatter *adapter.ResponseFormatter, send SendFunc, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		registry:  registry,
		formatter: formatter,
		send:      send,
		logger:    logger,
	}
}

// Process executes the command. Handler errors are logged and answered with
// the normalized service-unavailable reply. The returned error is only the
// delivery error, if any.
func (d *Dispatcher) Process(ctx context.Context, cmdCtx *domain.CommandContext) error {
	if cmdCtx == nil {
		return nil
	}

	log := d.logger.With(
		zap.String("room", cmdCtx.Room),
		zap.String("sender", cmdCtx.Sender),
		zap.String("verb", cmdCtx.Verb.String()),
	)

	reply, err := d.registry.Execute(ctx, cmdCtx)
	switch {
	case errors.Is(err, ErrUnknownCommand):
		log.Warn("No handler registered for verb")
		reply = NewReply(d.formatter.UnknownCommand(cmdCtx.Message))
	case err != nil:
		log.Error("Command failed", zap.Error(err))
		reply = NewReply(d.formatter.ServiceUnavailable())
	}

	if reply == nil {
		log.Debug("Command produced no reply")
		return nil
	}

	if err := d.send(ctx, cmdCtx.Room, reply.Text); err != nil {
		log.Error("Failed to send reply", zap.Error(err))
		return err
	}
	log.Debug("Reply sent", zap.Duration("elapsed", time.Since(cmdCtx.Timestamp)))
	return nil
}
