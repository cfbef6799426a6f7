package analysis

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dd0wney/cluso-graph-analyzer/pkg/config"
	"github.com/dd0wney/cluso-graph-analyzer/pkg/graph"
	"github.com/dd0wney/cluso-graph-analyzer/pkg/logging"
	"github.com/dd0wney/cluso-graph-analyzer/pkg/metrics"
)

const tracerName = "graph-analyzer.analysis"

var engineTracer = otel.Tracer(tracerName)

// Metric outcome labels for runs that return an error.
const (
	outcomeError     = "error"
	outcomeCancelled = "cancelled"
)

// Engine dispatches requests to the algorithms package. It holds no per-run
// state and is safe for concurrent use when its logger and registry are.
type Engine struct {
	cfg      *config.Config
	logger   logging.Logger
	metrics  *metrics.Registry
	tracer   trace.Tracer
	newRunID func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default is logging.DefaultLogger().
func WithLogger(logger logging.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics sets the Prometheus registry. A nil registry disables metrics.
func WithMetrics(registry *metrics.Registry) Option {
	return func(e *Engine) {
		e.metrics = registry
	}
}

// WithTracerProvider traces runs with tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(e *Engine) {
		if tp != nil {
			e.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithRunIDs replaces the run ID generator.
func WithRunIDs(fn func() string) Option {
	return func(e *Engine) {
		if fn != nil {
			e.newRunID = fn
		}
	}
}

// NewEngine creates an engine. A nil cfg uses config.Default(). Metrics go to
// metrics.DefaultRegistry() when cfg enables them, unless WithMetrics says
// otherwise.
func NewEngine(cfg *config.Config, opts ...Option) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}

	e := &Engine{
		cfg:      cfg,
		logger:   logging.DefaultLogger(),
		tracer:   engineTracer,
		newRunID: uuid.NewString,
	}
	if cfg.Metrics.Enabled {
		e.metrics = metrics.DefaultRegistry()
	}

	for _, opt := range opts {
		opt(e)
	}

	e.logger = e.logger.With(logging.Component("analysis"))
	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() *config.Config {
	return e.cfg
}

// Run executes one request against g.
//
// An empty snapshot is not an error: the result carries OutcomeEmptyGraph.
// Unknown endpoints fail with an error matching algorithms.ErrNodeNotFound.
// When the context ends during an iterative algorithm, the partial result is
// returned together with the context error.
func (e *Engine) Run(ctx context.Context, g *graph.Snapshot, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if g == nil {
		g = graph.NewBuilder().Build()
	}

	runID := e.newRunID()
	nodes, edges := g.NodeCount(), g.EdgeCount()

	ctx, span := e.tracer.Start(ctx, "analysis.Engine.Run",
		trace.WithAttributes(
			attribute.String("algorithm", string(req.Algorithm)),
			attribute.String("run_id", runID),
			attribute.Int("node_count", nodes),
			attribute.Int("edge_count", edges),
		),
	)
	defer span.End()

	if timeout := e.cfg.Engine.RunTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	log := e.logger.With(logging.Algorithm(string(req.Algorithm)), logging.RunID(runID))
	timer := logging.StartTimer(log, "algorithm run", logging.GraphSize(nodes, edges))

	finish := func(string) {}
	if e.metrics != nil {
		finish = e.metrics.StartRun(string(req.Algorithm))
		e.metrics.RecordSnapshot(nodes, edges)
	}

	res := newResult(runID, req)
	var err error
	if g.IsEmpty() {
		res.Outcome = OutcomeEmptyGraph
		res.status("⚠ Graph is empty")
		span.AddEvent("empty_graph")
	} else {
		r := &run{
			ctx:     ctx,
			cfg:     e.cfg,
			g:       g,
			req:     req,
			res:     res,
			log:     log,
			span:    span,
			metrics: e.metrics,
		}
		err = r.dispatch()
	}
	res.finish(timer.Elapsed())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		timer.EndError(err)

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			span.AddEvent("cancelled", trace.WithAttributes(attribute.Int("iterations", res.Iterations)))
			finish(outcomeCancelled)
			return res, err
		}
		finish(outcomeError)
		return nil, err
	}

	span.SetAttributes(attribute.String("outcome", string(res.Outcome)))
	finish(string(res.Outcome))
	timer.End(logging.Outcome(string(res.Outcome)))
	return res, nil
}

// RunAll runs every algorithm in display order. Algorithms whose endpoints
// are not given are skipped. It stops at the first error.
func (e *Engine) RunAll(ctx context.Context, g *graph.Snapshot, source, target string) ([]*Result, error) {
	results := make([]*Result, 0, len(allAlgorithms))
	for _, alg := range allAlgorithms {
		req := Request{Algorithm: alg}
		if alg.NeedsSource() {
			req.Source = source
		}
		if alg.NeedsTarget() {
			req.Target = target
		}
		if req.Validate() != nil {
			continue
		}

		res, err := e.Run(ctx, g, req)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}
