package command

import (
	"context"

	"github.com/kapu/plex-request-bot-go/internal/adapter"
	"github.com/kapu/plex-request-bot-go/internal/domain"
	"go.uber.org/zap"
)

// Reply is the single outbound message of a command. A nil *Reply means the
// command stays silent.
type Reply struct {
	Text string
}

func NewReply(text string) *Reply {
	return &Reply{Text: text}
}

type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, cmdCtx *domain.CommandContext) (*Reply, error)
}

// Orchestrator is the slice of service.RequestOrchestrator the handlers use.
type Orchestrator interface {
	SearchMovie(ctx context.Context, title string) (domain.SearchResult, error)
	ResolveTitle(ctx context.Context, id string) (string, error)
	SubmitRequest(ctx context.Context, id string) error
	ListPendingRequests(ctx context.Context, onlyUnavailable bool) ([]domain.MovieRef, error)
	DeleteCompletedRequests(ctx context.Context) (bool, error)
	PopularMovies(ctx context.Context, amount int) ([]domain.MovieRef, error)
}

type Dependencies struct {
	Orchestrator  Orchestrator
	Formatter     *adapter.ResponseFormatter
	Authorization domain.Authorization
	Logger        *zap.Logger
}

// RegisterDefaults registers one handler per routable verb plus the unknown
// fallback.
func RegisterDefaults(r *Registry, deps *Dependencies) {
	r.Register(NewPingCommand(deps))
	r.Register(NewCommandsCommand(deps))
	r.Register(NewHelpCommand(deps))
	r.Register(NewRequestCommand(deps))
	r.Register(NewListCommand(deps))
	r.Register(AdminOnly(deps, NewDeleteCommand(deps)))
	r.Register(NewPopularCommand(deps))
	r.Register(NewUnknownCommand(deps))
}
