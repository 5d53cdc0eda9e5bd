// Package observability decorates the cart service with tracing, logging,
// metrics, and best-effort activity recording.
package observability

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	cartdomain "github.com/emberline/storefront-api/internal/domains/cart/domain"
	cartports "github.com/emberline/storefront-api/internal/domains/cart/ports"
)

const tracerName = "github.com/emberline/storefront-api/internal/domains/cart/adapters/observability/service"

// Service decorates the cart service with tracing, logging, and metrics.
type Service struct {
	inner    cartports.Service
	tracer   trace.Tracer
	logger   *slog.Logger
	metrics  serviceMetrics
	recorder cartports.ActivityRecorder
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// WithActivityRecorder enables durable activity recording. Recorder failures
// are logged and never surfaced to the caller.
func WithActivityRecorder(r cartports.ActivityRecorder) Option {
	return func(s *Service) {
		s.recorder = r
	}
}

// New wraps the core cart service.
func New(inner cartports.Service, opts ...Option) cartports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) CreateCart(ctx context.Context, lines []cartdomain.LineInput) (*cartdomain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.CreateCart",
		trace.WithAttributes(attribute.Int("cart.lines", len(lines))))
	defer span.End()

	s.logInfo(ctx, "creating cart", slog.Int("lines", len(lines)))
	result, err := s.inner.CreateCart(ctx, lines)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create cart")
	}
	s.metrics.recordMutation(ctx, "create")
	s.record(ctx, result.ID, "cartCreate", nil, result.TotalQuantity)
	s.logInfo(ctx, "cart created", slog.String("cart.id", result.ID), slog.Int("cart.total_quantity", result.TotalQuantity))
	return result, nil
}

func (s *Service) GetCart(ctx context.Context, cartID string) (*cartdomain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.GetCart",
		trace.WithAttributes(attribute.String("cart.id", cartID)))
	defer span.End()

	result, err := s.inner.GetCart(ctx, cartID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load cart", slog.String("cart.id", cartID))
	}
	span.SetAttributes(attribute.Int("cart.total_quantity", result.TotalQuantity))
	return result, nil
}

func (s *Service) AddLines(ctx context.Context, cartID string, lines []cartdomain.LineInput) (*cartdomain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.AddLines",
		trace.WithAttributes(attribute.String("cart.id", cartID), attribute.Int("cart.lines", len(lines))))
	defer span.End()

	s.logInfo(ctx, "adding cart lines", slog.String("cart.id", cartID), slog.Int("lines", len(lines)))
	result, err := s.inner.AddLines(ctx, cartID, lines)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add cart lines", slog.String("cart.id", cartID))
	}
	s.metrics.recordMutation(ctx, "add")
	s.record(ctx, result.ID, "cartLinesAdd", nil, result.TotalQuantity)
	return result, nil
}

func (s *Service) UpdateLines(ctx context.Context, cartID string, lines []cartdomain.LineUpdate) (*cartdomain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.UpdateLines",
		trace.WithAttributes(attribute.String("cart.id", cartID), attribute.Int("cart.lines", len(lines))))
	defer span.End()

	s.logInfo(ctx, "updating cart lines", slog.String("cart.id", cartID), slog.Int("lines", len(lines)))
	result, err := s.inner.UpdateLines(ctx, cartID, lines)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update cart lines", slog.String("cart.id", cartID))
	}
	s.metrics.recordMutation(ctx, "update")
	lineIDs := make([]string, 0, len(lines))
	for _, line := range lines {
		lineIDs = append(lineIDs, line.LineID)
	}
	s.record(ctx, result.ID, "cartLinesUpdate", lineIDs, result.TotalQuantity)
	return result, nil
}

func (s *Service) RemoveLines(ctx context.Context, cartID string, lineIDs []string) (*cartdomain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.RemoveLines",
		trace.WithAttributes(attribute.String("cart.id", cartID), attribute.Int("cart.lines", len(lineIDs))))
	defer span.End()

	s.logInfo(ctx, "removing cart lines", slog.String("cart.id", cartID), slog.Int("lines", len(lineIDs)))
	result, err := s.inner.RemoveLines(ctx, cartID, lineIDs)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to remove cart lines", slog.String("cart.id", cartID))
	}
	s.metrics.recordMutation(ctx, "remove")
	s.record(ctx, result.ID, "cartLinesRemove", lineIDs, result.TotalQuantity)
	return result, nil
}

func (s *Service) record(ctx context.Context, cartID, operation string, lineIDs []string, quantity int) {
	if s.recorder == nil {
		return
	}
	err := s.recorder.Record(ctx, cartports.ActivityEntry{
		CartID:     cartID,
		Operation:  operation,
		LineIDs:    lineIDs,
		Quantity:   quantity,
		OccurredAt: time.Now(),
	})
	if err != nil {
		s.logError(ctx, "failed to record cart activity", err, slog.String("cart.id", cartID))
	}
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	mutations metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	mutations, _ := m.Int64Counter("cart.service.mutations", metric.WithDescription("Number of cart mutations by operation"))
	return serviceMetrics{mutations: mutations}
}

func (m serviceMetrics) recordMutation(ctx context.Context, operation string) {
	if m.mutations != nil {
		m.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("cart.operation", operation)))
	}
}

var _ cartports.Service = (*Service)(nil)
