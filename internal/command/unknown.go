package command

import (
	"context"

	"github.com/kapu/plex-request-bot-go/internal/domain"
)

type UnknownCommand struct {
	deps *Dependencies
}

func NewUnknownCommand(deps *Dependencies) *UnknownCommand {
	return &UnknownCommand{deps: deps}
}

func (c *UnknownCommand) Name() string {
	return domain.VerbUnknown.String()
}

func (c *UnknownCommand) Description() string {
	return "Echoes unrecognized input"
}

func (c *UnknownCommand) Execute(_ context.Context, cmdCtx *domain.CommandContext) (*Reply, error) {
	return NewReply(c.deps.Formatter.UnknownCommand(cmdCtx.Message)), nil
}
