// Package workflows starts cart maintenance either on a Temporal cluster or
// inline against the handle store.
package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/emberline/storefront-api/internal/domains/cart/ports"
	cartworkflows "github.com/emberline/storefront-api/internal/platform/temporal/workflows/cart"
)

var (
	_ ports.MaintenanceOrchestrator = (*TemporalCartMaintenance)(nil)
	_ ports.MaintenanceOrchestrator = (*InlineCartMaintenance)(nil)
)

// TemporalCartMaintenance starts the maintenance workflow on a Temporal
// cluster.
type TemporalCartMaintenance struct {
	client    client.Client
	taskQueue string
	retention time.Duration
}

// NewTemporalCartMaintenance wires a Temporal client into the orchestrator.
func NewTemporalCartMaintenance(c client.Client, retention time.Duration) *TemporalCartMaintenance {
	return &TemporalCartMaintenance{
		client:    c,
		taskQueue: cartworkflows.CartMaintenanceTaskQueue,
		retention: retention,
	}
}

// PurgeExpiredHandles runs one maintenance pass. The workflow ID is derived
// from the current hour so overlapping triggers join the running execution
// instead of racing it.
func (o *TemporalCartMaintenance) PurgeExpiredHandles(ctx context.Context) (int64, error) {
	if o == nil || o.client == nil {
		return 0, errors.New("temporal cart maintenance not configured")
	}
	workflowID := fmt.Sprintf("cart-maintenance-%s", time.Now().UTC().Format("2006-01-02T15"))
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	input := cartworkflows.CartMaintenanceWorkflowInput{
		ActivityRetention: o.retention,
		TraceID:           maintenanceTraceID(ctx),
	}
	run, err := o.client.ExecuteWorkflow(ctx, options, cartworkflows.CartMaintenanceWorkflow, input)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			existingRun := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
			var result cartworkflows.CartMaintenanceWorkflowResult
			if err := existingRun.Get(ctx, &result); err != nil {
				return 0, err
			}
			return result.PurgedHandles, nil
		}
		return 0, err
	}
	var result cartworkflows.CartMaintenanceWorkflowResult
	if err := run.Get(ctx, &result); err != nil {
		return 0, err
	}
	return result.PurgedHandles, nil
}

// InlineCartMaintenance purges directly against the handle store, useful for
// tests or dev fallbacks when no Temporal cluster is available.
type InlineCartMaintenance struct {
	handles ports.HandleStore
}

// NewInlineCartMaintenance wraps the handle store for synchronous execution.
func NewInlineCartMaintenance(handles ports.HandleStore) *InlineCartMaintenance {
	return &InlineCartMaintenance{handles: handles}
}

// PurgeExpiredHandles delegates to the handle store without durable
// orchestration.
func (o *InlineCartMaintenance) PurgeExpiredHandles(ctx context.Context) (int64, error) {
	if o == nil || o.handles == nil {
		return 0, errors.New("inline cart maintenance not configured")
	}
	return o.handles.PurgeExpired(ctx, time.Now())
}

func maintenanceTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() || !spanCtx.TraceID().IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
