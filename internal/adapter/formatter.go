package adapter

import (
	"fmt"
	"strings"

	"github.com/kapu/plex-request-bot-go/internal/constants"
	"github.com/kapu/plex-request-bot-go/internal/domain"
	"github.com/kapu/plex-request-bot-go/internal/util"
)

// helpOrder is the order verbs appear in the commands reply.
var helpOrder = []domain.Verb{
	domain.VerbHelp,
	domain.VerbCommands,
	domain.VerbPing,
	domain.VerbRequest,
	domain.VerbList,
	domain.VerbDelete,
	domain.VerbPopular,
}

// ResponseFormatter renders reply text in one display language. Replies use
// light markdown: **bold**, [title](link) and "\n" line breaks.
type ResponseFormatter struct {
	prefix   string
	messages Messages
}

// NewResponseFormatter creates a new ResponseFormatter
func NewResponseFormatter(prefix, language string) *ResponseFormatter {
	if strings.TrimSpace(prefix) == "" {
		prefix = "!plex"
	}
	return &ResponseFormatter{prefix: prefix, messages: MessagesFor(language)}
}

func (f *ResponseFormatter) Pong() string {
	return f.messages.Pong
}

func (f *ResponseFormatter) Help() string {
	return fmt.Sprintf(f.messages.HelpFormat, f.prefix)
}

// Commands lists every verb with its syntax.
func (f *ResponseFormatter) Commands() string {
	data := commandsTemplateData{
		Title:   f.messages.CommandsTitle,
		Prefix:  f.prefix,
		Entries: make([]commandEntry, 0, len(helpOrder)),
	}
	for _, verb := range helpOrder {
		usage, ok := f.messages.CommandUsages[verb]
		if !ok {
			usage = verb.String()
		}
		data.Entries = append(data.Entries, commandEntry{
			Usage:       usage,
			Description: f.messages.CommandDescriptions[verb],
		})
	}

	rendered, err := executeFormatterTemplate("commands", data)
	if err != nil {
		// unreachable with the embedded templates
		var sb strings.Builder
		sb.WriteString("**" + data.Title + "**:")
		for _, e := range data.Entries {
			sb.WriteString(fmt.Sprintf("\n- `%s %s` -- %s", f.prefix, e.Usage, e.Description))
		}
		return sb.String()
	}
	return rendered
}

func (f *ResponseFormatter) RequestUsage() string {
	return fmt.Sprintf(f.messages.RequestUsageFormat, f.prefix)
}

func (f *ResponseFormatter) NothingFound() string {
	return f.messages.NothingFound
}

func (f *ResponseFormatter) RequestFailed() string {
	return f.messages.RequestFailed
}

func (f *ResponseFormatter) RequestConfirmed(movie domain.MovieRef) string {
	return fmt.Sprintf(f.messages.RequestConfirmFormat, movie.Title, movie.DeepLink())
}

// PendingRequests renders the open requests, or the empty notice.
func (f *ResponseFormatter) PendingRequests(movies []domain.MovieRef) string {
	if len(movies) == 0 {
		return f.messages.NoPendingRequests
	}
	return f.movieList(f.messages.PendingHeader, movies)
}

func (f *ResponseFormatter) DeleteResult(sender string, performed bool) string {
	if !performed {
		return f.messages.NothingToDelete
	}
	return fmt.Sprintf(f.messages.DeleteDoneFormat, sender)
}

func (f *ResponseFormatter) PopularMovies(sender string, movies []domain.MovieRef) string {
	return f.movieList(fmt.Sprintf(f.messages.PopularHeaderFormat, sender), movies)
}

func (f *ResponseFormatter) InvalidAmount() string {
	return fmt.Sprintf(f.messages.InvalidAmountFormat, constants.PopularLimits.Min, constants.PopularLimits.Max)
}

// UnknownCommand echoes the unrecognized command text, truncated.
func (f *ResponseFormatter) UnknownCommand(command string) string {
	echo := util.TruncateString(command, constants.StringLimits.EchoCommand)
	return fmt.Sprintf(f.messages.UnknownCommandFormat, echo, f.prefix)
}

func (f *ResponseFormatter) ServiceUnavailable() string {
	return f.messages.ServiceUnavailable
}

func (f *ResponseFormatter) movieList(header string, movies []domain.MovieRef) string {
	data := movieListTemplateData{
		Header: header,
		Movies: make([]movieListEntry, 0, len(movies)),
	}
	for _, m := range movies {
		data.Movies = append(data.Movies, movieListEntry{Title: m.Title, DeepLink: m.DeepLink()})
	}

	rendered, err := executeFormatterTemplate("movie_list", data)
	if err != nil {
		var sb strings.Builder
		sb.WriteString(header)
		for _, m := range data.Movies {
			sb.WriteString(fmt.Sprintf("\n- [%s](%s)", m.Title, m.DeepLink))
		}
		return sb.String()
	}
	return rendered
}
