package command

import (
	"context"

	"github.com/kapu/plex-request-bot-go/internal/domain"
	"go.uber.org/zap"
)

type adminOnly struct {
	next          Command
	authorization domain.Authorization
	logger        *zap.Logger
}

// AdminOnly wraps next so that senders outside an enforced allow-list get no
// reply and trigger no work.
func AdminOnly(deps *Dependencies, next Command) Command {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &adminOnly{next: next, authorization: deps.Authorization, logger: logger}
}

func (c *adminOnly) Name() string        { return c.next.Name() }
func (c *adminOnly) Description() string { return c.next.Description() }

func (c *adminOnly) Execute(ctx context.Context, cmdCtx *domain.CommandContext) (*Reply, error) {
	if !c.authorization.Allows(cmdCtx.Sender) {
		c.logger.Warn("Unauthorized access attempt",
			zap.String("command", c.next.Name()),
			zap.String("sender", cmdCtx.Sender),
			zap.String("room", cmdCtx.Room),
		)
		return nil, nil
	}
	return c.next.Execute(ctx, cmdCtx)
}
