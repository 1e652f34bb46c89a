package adapter

import (
	"regexp"
	"strings"

	"github.com/kapu/plex-request-bot-go/internal/domain"
	"github.com/kapu/plex-request-bot-go/internal/iris"
)

var controlCharsPattern = regexp.MustCompile(`[\x00-\x08\x0B-\x1F\x7F]`)

// MessageAdapter converts chat messages to bot commands
type MessageAdapter struct {
	prefix string
}

// NewMessageAdapter creates a new MessageAdapter
func NewMessageAdapter(prefix string) *MessageAdapter {
	return &MessageAdapter{prefix: strings.TrimSpace(prefix)}
}

// ParsedCommand represents a parsed command
type ParsedCommand struct {
	Verb domain.Verb
	Args []string
	// Text is everything after the prefix, trimmed.
	Text       string
	RawMessage string
}

// ParseMessage parses a chat message into a command. The second result is
// false when the message is not addressed to the bot.
func (ma *MessageAdapter) ParseMessage(message *iris.Message) (*ParsedCommand, bool) {
	if message == nil || ma.prefix == "" {
		return nil, false
	}

	text := strings.TrimSpace(message.Msg)
	if !strings.HasPrefix(text, ma.prefix) {
		return nil, false
	}

	commandText := controlCharsPattern.ReplaceAllString(text[len(ma.prefix):], " ")
	commandText = strings.TrimSpace(commandText)

	parts := strings.Fields(commandText)
	if len(parts) == 0 {
		return &ParsedCommand{
			Verb:       domain.VerbUnknown,
			Args:       []string{},
			RawMessage: text,
		}, true
	}

	return &ParsedCommand{
		Verb:       domain.ParseVerb(parts[0]),
		Args:       parts[1:],
		Text:       commandText,
		RawMessage: text,
	}, true
}
