package command

import (
	"context"

	"github.com/kapu/plex-request-bot-go/internal/domain"
)

type PingCommand struct {
	deps *Dependencies
}

func NewPingCommand(deps *Dependencies) *PingCommand {
	return &PingCommand{deps: deps}
}

func (c *PingCommand) Name() string {
	return domain.VerbPing.String()
}

func (c *PingCommand) Description() string {
	return "Replies with a fixed acknowledgement"
}

func (c *PingCommand) Execute(_ context.Context, _ *domain.CommandContext) (*Reply, error) {
	return NewReply(c.deps.Formatter.Pong()), nil
}
