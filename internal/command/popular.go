package command

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kapu/plex-request-bot-go/internal/constants"
	"github.com/kapu/plex-request-bot-go/internal/domain"
	"github.com/kapu/plex-request-bot-go/pkg/errors"
	"go.uber.org/zap"
)

type PopularCommand struct {
	deps *Dependencies
}

func NewPopularCommand(deps *Dependencies) *PopularCommand {
	return &PopularCommand{deps: deps}
}

func (c *PopularCommand) Name() string {
	return domain.VerbPopular.String()
}

func (c *PopularCommand) Description() string {
	return "Shows currently popular movies"
}

func (c *PopularCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext) (*Reply, error) {
	amount := constants.PopularLimits.Default
	if cmdCtx.HasArgs() {
		parsed, verr := parseAmount(cmdCtx.Args[0])
		if verr != nil {
			c.deps.Logger.Info("Invalid popular amount",
				zap.String("sender", cmdCtx.Sender),
				zap.String("field", verr.Field),
				zap.Any("value", verr.Value),
				zap.Error(verr),
			)
			return NewReply(c.deps.Formatter.InvalidAmount()), nil
		}
		amount = parsed
	}

	movies, err := c.deps.Orchestrator.PopularMovies(ctx, amount)
	if err != nil {
		return nil, err
	}
	return NewReply(c.deps.Formatter.PopularMovies(cmdCtx.Sender, movies)), nil
}

// parseAmount accepts only an integer within PopularLimits.
func parseAmount(arg string) (int, *errors.ValidationError) {
	amount, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errors.NewValidationError("amount is not a number", "amount", arg)
	}
	if amount < constants.PopularLimits.Min || amount > constants.PopularLimits.Max {
		return 0, errors.NewValidationError(
			fmt.Sprintf("amount must be between %d and %d", constants.PopularLimits.Min, constants.PopularLimits.Max),
			"amount", amount,
		)
	}
	return amount, nil
}
