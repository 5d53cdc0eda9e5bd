package cart

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	cartactivities "github.com/emberline/storefront-api/internal/platform/temporal/activities/cart"
)

// CartMaintenanceTaskQueue is the task queue the maintenance worker polls.
const CartMaintenanceTaskQueue = "cart-maintenance"

// DefaultActivityRetention bounds how long cart activity entries are kept.
const DefaultActivityRetention = 30 * 24 * time.Hour

// CartMaintenanceWorkflowInput parameterizes one maintenance run.
type CartMaintenanceWorkflowInput struct {
	ActivityRetention time.Duration
	TraceID           string
}

// CartMaintenanceWorkflowResult reports what the run removed.
type CartMaintenanceWorkflowResult struct {
	PurgedHandles   int64
	TrimmedActivity int64
}

// CartMaintenanceWorkflow purges expired cart handles and trims the activity
// log. Each step retries independently; a trim failure does not undo the
// purge.
func CartMaintenanceWorkflow(ctx workflow.Context, input CartMaintenanceWorkflowInput) (*CartMaintenanceWorkflowResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("cart maintenance workflow started", "traceId", input.TraceID)

	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var result CartMaintenanceWorkflowResult

	var purge cartactivities.PurgeResult
	if err := workflow.ExecuteActivity(ctx, cartactivities.PurgeExpiredHandlesActivityName).Get(ctx, &purge); err != nil {
		logger.Error("cart maintenance purge failed", "error", err)
		return nil, err
	}
	result.PurgedHandles = purge.Removed
	logger.Info("cart maintenance purged handles", "purged", purge.Removed)

	retention := input.ActivityRetention
	if retention <= 0 {
		retention = DefaultActivityRetention
	}
	cutoff := workflow.Now(ctx).Add(-retention)

	var trim cartactivities.PurgeResult
	if err := workflow.ExecuteActivity(ctx, cartactivities.TrimActivityLogActivityName, cutoff).Get(ctx, &trim); err != nil {
		logger.Error("cart maintenance trim failed", "error", err)
		return &result, err
	}
	result.TrimmedActivity = trim.Removed
	logger.Info("cart maintenance trimmed activity", "trimmed", trim.Removed)

	return &result, nil
}
