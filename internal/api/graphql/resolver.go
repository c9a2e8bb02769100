package graphql

import (
	"context"
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"

	apierrors "github.com/feral-file/ff-raffle/internal/api/shared/errors"
	"github.com/feral-file/ff-raffle/internal/api/shared/executor"
)

// resolver maps the root fields of the schema onto the shared executor
type resolver struct {
	executor executor.Executor
}

func (r *resolver) resolve(ctx context.Context, operation ast.Operation, field string, args map[string]interface{}) (interface{}, error) {
	switch operation {
	case ast.Query:
		return r.query(ctx, field, args)
	case ast.Mutation:
		return r.mutation(ctx, field, args)
	default:
		return nil, apierrors.NewBadRequestError(fmt.Sprintf("%s operations are not supported", operation))
	}
}

func (r *resolver) query(ctx context.Context, field string, args map[string]interface{}) (interface{}, error) {
	switch field {
	case "raffles":
		resp, err := r.executor.ListRaffles(ctx)
		if err != nil {
			return nil, err
		}
		return resp.Raffles, nil
	case "raffle":
		return r.executor.GetRaffle(ctx, stringArg(args, "id"))
	case "winners":
		return r.executor.GetWinners(ctx, stringArg(args, "raffle_id"))
	case "verification":
		return r.executor.GetVerification(ctx, stringArg(args, "raffle_id"))
	default:
		return nil, apierrors.NewBadRequestError(fmt.Sprintf("unknown query field %q", field))
	}
}

func (r *resolver) mutation(ctx context.Context, field string, args map[string]interface{}) (interface{}, error) {
	switch field {
	case "triggerReconcile":
		return r.executor.TriggerReconcile(ctx, stringArg(args, "raffle_type"))
	case "reissueJob":
		return r.executor.ReissueJob(ctx, stringArg(args, "raffle_id"), stringArg(args, "kind"))
	default:
		return nil, apierrors.NewBadRequestError(fmt.Sprintf("unknown mutation field %q", field))
	}
}

func stringArg(args map[string]interface{}, name string) string {
	s, _ := args[name].(string)
	return s
}
