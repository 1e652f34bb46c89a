package command

import (
	"context"

	"github.com/kapu/plex-request-bot-go/internal/domain"
)

type HelpCommand struct {
	deps *Dependencies
}

func NewHelpCommand(deps *Dependencies) *HelpCommand {
	return &HelpCommand{deps: deps}
}

func (c *HelpCommand) Name() string {
	return domain.VerbHelp.String()
}

func (c *HelpCommand) Description() string {
	return "Shows the introduction"
}

// Execute ignores arguments; no help topics are defined.
func (c *HelpCommand) Execute(_ context.Context, _ *domain.CommandContext) (*Reply, error) {
	return NewReply(c.deps.Formatter.Help()), nil
}

type CommandsCommand struct {
	deps *Dependencies
}

func NewCommandsCommand(deps *Dependencies) *CommandsCommand {
	return &CommandsCommand{deps: deps}
}

func (c *CommandsCommand) Name() string {
	return domain.VerbCommands.String()
}

func (c *CommandsCommand) Description() string {
	return "Lists every command and its syntax"
}

func (c *CommandsCommand) Execute(_ context.Context, _ *domain.CommandContext) (*Reply, error) {
	return NewReply(c.deps.Formatter.Commands()), nil
}
