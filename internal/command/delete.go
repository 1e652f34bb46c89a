package command

import (
	"context"

	"github.com/kapu/plex-request-bot-go/internal/domain"
	"go.uber.org/zap"
)

// DeleteCommand removes every request that is already available. Register it
// wrapped in AdminOnly.
type DeleteCommand struct {
	deps *Dependencies
}

func NewDeleteCommand(deps *Dependencies) *DeleteCommand {
	return &DeleteCommand{deps: deps}
}

func (c *DeleteCommand) Name() string {
	return domain.VerbDelete.String()
}

func (c *DeleteCommand) Description() string {
	return "Deletes all available requests"
}

func (c *DeleteCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext) (*Reply, error) {
	performed, err := c.deps.Orchestrator.DeleteCompletedRequests(ctx)
	if err != nil {
		return nil, err
	}
	c.deps.Logger.Info("Completed requests cleanup",
		zap.String("sender", cmdCtx.Sender),
		zap.Bool("performed", performed),
	)
	return NewReply(c.deps.Formatter.DeleteResult(cmdCtx.Sender, performed)), nil
}
