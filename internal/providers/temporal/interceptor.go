package temporal

import (
	"context"
	"strconv"

	"github.com/getsentry/sentry-go"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/interceptor"
)

// NewSentryActivityInterceptor gives every activity execution its own Sentry hub,
// tagged with the activity and the workflow (the raffle job key) it runs for
func NewSentryActivityInterceptor() interceptor.WorkerInterceptor {
	return &sentryActivityInterceptor{}
}

type sentryActivityInterceptor struct {
	interceptor.WorkerInterceptorBase
}

func (s *sentryActivityInterceptor) InterceptActivity(ctx context.Context, next interceptor.ActivityInboundInterceptor) interceptor.ActivityInboundInterceptor {
	return &sentryActivityInboundInterceptor{
		ActivityInboundInterceptorBase: interceptor.ActivityInboundInterceptorBase{Next: next},
	}
}

type sentryActivityInboundInterceptor struct {
	interceptor.ActivityInboundInterceptorBase
}

// ExecuteActivity attaches the hub so logger.*Ctx calls report with the activity scope
func (s *sentryActivityInboundInterceptor) ExecuteActivity(ctx context.Context, in *interceptor.ExecuteActivityInput) (interface{}, error) {
	hub := sentry.CurrentHub().Clone()
	if activity.IsActivity(ctx) {
		info := activity.GetInfo(ctx)
		hub.ConfigureScope(func(scope *sentry.Scope) {
			scope.SetTag("activity", info.ActivityType.Name)
			scope.SetTag("workflow_id", info.WorkflowExecution.ID)
			scope.SetTag("attempt", strconv.Itoa(int(info.Attempt)))
		})
	}

	return s.Next.ExecuteActivity(sentry.SetHubOnContext(ctx, hub), in)
}
