package command

import (
	"context"
	"strings"

	"github.com/kapu/plex-request-bot-go/internal/domain"
	"github.com/kapu/plex-request-bot-go/pkg/errors"
	"go.uber.org/zap"
)

type RequestCommand struct {
	deps *Dependencies
}

func NewRequestCommand(deps *Dependencies) *RequestCommand {
	return &RequestCommand{deps: deps}
}

func (c *RequestCommand) Name() string {
	return domain.VerbRequest.String()
}

func (c *RequestCommand) Description() string {
	return "Searches a movie by title and requests it"
}

// Execute runs search, title resolution and submission strictly in sequence.
func (c *RequestCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext) (*Reply, error) {
	title := strings.TrimSpace(strings.Join(cmdCtx.Args, " "))
	if title == "" {
		return NewReply(c.deps.Formatter.RequestUsage()), nil
	}

	result, err := c.deps.Orchestrator.SearchMovie(ctx, title)
	if err != nil {
		return nil, err
	}
	if !result.Found {
		return NewReply(c.deps.Formatter.NothingFound()), nil
	}

	movie := result.Movie
	localized, err := c.deps.Orchestrator.ResolveTitle(ctx, movie.ID)
	if err != nil {
		return nil, err
	}
	if localized != "" {
		movie.Title = localized
	}

	if err := c.deps.Orchestrator.SubmitRequest(ctx, movie.ID); err != nil {
		if errors.IsRejected(err) {
			c.deps.Logger.Info("Movie request rejected",
				zap.String("movie_id", movie.ID),
				zap.String("sender", cmdCtx.Sender),
				zap.Error(err),
			)
			return NewReply(c.deps.Formatter.RequestFailed()), nil
		}
		return nil, err
	}

	c.deps.Logger.Info("Movie requested",
		zap.String("movie_id", movie.ID),
		zap.String("title", movie.Title),
		zap.String("sender", cmdCtx.Sender),
	)
	return NewReply(c.deps.Formatter.RequestConfirmed(movie)), nil
}
