package domain

import "time"

type CommandContext struct {
	Room      string
	Sender    string
	Message   string
	Verb      Verb
	Args      []string
	Timestamp time.Time
}

// NewCommandContext builds the per-message context. message is the command
// text with the bot prefix already stripped.
func NewCommandContext(room, sender, message string, verb Verb, args []string) *CommandContext {
	if args == nil {
		args = []string{}
	}
	return &CommandContext{
		Room:      room,
		Sender:    sender,
		Message:   message,
		Verb:      verb,
		Args:      args,
		Timestamp: time.Now(),
	}
}

func (c *CommandContext) HasArgs() bool {
	return len(c.Args) > 0
}
