package command

import (
	"context"

	"github.com/kapu/plex-request-bot-go/internal/domain"
)

type ListCommand struct {
	deps *Dependencies
}

func NewListCommand(deps *Dependencies) *ListCommand {
	return &ListCommand{deps: deps}
}

func (c *ListCommand) Name() string {
	return domain.VerbList.String()
}

func (c *ListCommand) Description() string {
	return "Lists requests that are not available yet"
}

func (c *ListCommand) Execute(ctx context.Context, _ *domain.CommandContext) (*Reply, error) {
	movies, err := c.deps.Orchestrator.ListPendingRequests(ctx, true)
	if err != nil {
		return nil, err
	}
	return NewReply(c.deps.Formatter.PendingRequests(movies)), nil
}
