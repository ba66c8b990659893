package placematch

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/placematch/descriptor"
	"github.com/hupe1980/placematch/lcd"
	"github.com/hupe1980/placematch/model"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/hupe1980/placematch"

// Matcher runs loop-closure candidate searches with a fixed configuration.
//
// A Matcher is safe for concurrent use. It never retains the descriptors or
// caches passed to it.
type Matcher struct {
	coarse          lcd.MatchConfig
	fine            lcd.MatchConfig
	coarseBudget    lcd.ScanBudget
	fineBudget      lcd.ScanBudget
	leafParallelism int
	metrics         MetricsCollector
	logger          *Logger
	tracer          trace.Tracer
}

// New creates a Matcher. Both match configurations are validated.
func New(optFns ...Option) (*Matcher, error) {
	opts := applyOptions(optFns)

	if err := opts.coarse.Validate(); err != nil {
		return nil, translateError(fmt.Errorf("coarse: %w", err))
	}
	if err := opts.fine.Validate(); err != nil {
		return nil, translateError(fmt.Errorf("fine: %w", err))
	}

	return &Matcher{
		coarse:          opts.coarse,
		fine:            opts.fine,
		coarseBudget:    opts.coarseBudget,
		fineBudget:      opts.fineBudget,
		leafParallelism: opts.leafParallelism,
		metrics:         opts.metricsCollector,
		logger:          opts.logger,
		tracer:          opts.tracerProvider.Tracer(instrumentationName),
	}, nil
}

// CoarseConfig returns the single-layer match parameters.
func (m *Matcher) CoarseConfig() lcd.MatchConfig { return m.coarse }

// FineConfig returns the leaf match parameters.
func (m *Matcher) FineConfig() lcd.MatchConfig { return m.fine }

// SearchLayer runs a single-layer search of query against cache, restricted
// to candidates, using the coarse configuration.
func (m *Matcher) SearchLayer(
	ctx context.Context,
	query *descriptor.Descriptor,
	candidates model.NodeSet,
	cache descriptor.Cache,
	rootLeafMap lcd.RootLeafMap,
) (lcd.LayerSearchResults, error) {
	ctx, span := m.tracer.Start(ctx, "placematch.SearchLayer",
		trace.WithAttributes(
			attribute.Int("candidates", candidates.Len()),
			attribute.Int("cache_size", len(cache)),
		),
	)
	defer span.End()

	start := time.Now()

	results, err := m.searchLayer(ctx, query, candidates, cache, rootLeafMap)

	duration := time.Since(start)
	endSpan(span, results, err)
	m.metrics.RecordLayerSearch(results.Scanned, results.Found(), duration, err)
	m.logger.WithStage("layer").LogLayerSearch(ctx, results, duration, err)

	return results, err
}

func (m *Matcher) searchLayer(
	ctx context.Context,
	query *descriptor.Descriptor,
	candidates model.NodeSet,
	cache descriptor.Cache,
	rootLeafMap lcd.RootLeafMap,
) (lcd.LayerSearchResults, error) {
	if err := ctx.Err(); err != nil {
		return emptyResults(), err
	}
	if query == nil {
		return emptyResults(), fmt.Errorf("%w: nil query", ErrInvalidDescriptor)
	}
	if err := checkCache(query, cache); err != nil {
		return emptyResults(), err
	}

	return lcd.SearchDescriptors(query, m.coarse, candidates, cache, rootLeafMap, m.coarseBudget), nil
}

// SearchLeaves runs a hierarchical leaf search of query over the leaf caches
// of roots, using the fine configuration.
func (m *Matcher) SearchLeaves(
	ctx context.Context,
	query *descriptor.Descriptor,
	roots model.NodeSet,
	caches descriptor.CacheMap,
) (lcd.LayerSearchResults, error) {
	ctx, span := m.tracer.Start(ctx, "placematch.SearchLeaves",
		trace.WithAttributes(
			attribute.Int("roots", roots.Len()),
		),
	)
	defer span.End()

	start := time.Now()

	results, err := m.searchLeaves(ctx, query, roots, caches)

	duration := time.Since(start)
	endSpan(span, results, err)
	m.metrics.RecordLeafSearch(results.Scanned, results.Found(), duration, err)
	m.logger.WithStage("leaf").LogLeafSearch(ctx, results, duration, err)

	return results, err
}

func (m *Matcher) searchLeaves(
	ctx context.Context,
	query *descriptor.Descriptor,
	roots model.NodeSet,
	caches descriptor.CacheMap,
) (lcd.LayerSearchResults, error) {
	if err := ctx.Err(); err != nil {
		return emptyResults(), err
	}
	if query == nil {
		return emptyResults(), fmt.Errorf("%w: nil query", ErrInvalidDescriptor)
	}
	for root := range roots.All() {
		if err := checkCache(query, caches[root]); err != nil {
			return emptyResults(), err
		}
	}

	return lcd.SearchLeafDescriptors(query, m.fine, roots, caches, m.fineBudget,
		lcd.WithParallelism(m.leafParallelism)), nil
}

// DetectRequest holds the inputs of a coarse-to-fine detection.
type DetectRequest struct {
	// CoarseQuery is the aggregate descriptor of the query root.
	CoarseQuery *descriptor.Descriptor
	// FineQuery is the leaf-level descriptor of the query.
	FineQuery *descriptor.Descriptor

	// Candidates restricts the coarse search.
	Candidates  model.NodeSet
	CoarseCache descriptor.Cache
	RootLeafMap lcd.RootLeafMap

	// FineCaches holds the leaf descriptors, keyed by root.
	FineCaches descriptor.CacheMap
}

// Detection is the outcome of a coarse-to-fine detection.
type Detection struct {
	Coarse lcd.LayerSearchResults
	Fine   lcd.LayerSearchResults

	// Found reports whether both stages accepted a match.
	Found bool

	QueryRoot model.NodeID
	MatchRoot model.NodeID
	// MatchNode is the best leaf.
	MatchNode model.NodeID
	Score     float32
}

// Detect runs the single-layer search over the coarse cache and, if it
// accepted any root, the leaf search over the leaves of the accepted roots.
func (m *Matcher) Detect(ctx context.Context, req DetectRequest) (Detection, error) {
	ctx, span := m.tracer.Start(ctx, "placematch.Detect")
	defer span.End()

	start := time.Now()

	det, err := m.detect(ctx, req)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "detection failed")
	} else {
		span.SetAttributes(attribute.Bool("found", det.Found))
		if det.Found {
			span.SetAttributes(
				attribute.Int64("match_node", int64(det.MatchNode)),
				attribute.Float64("score", float64(det.Score)),
			)
		}
	}

	logger := m.logger
	if req.CoarseQuery != nil {
		logger = logger.WithRoot(req.CoarseQuery.Root())
	}

	m.metrics.RecordDetection(det.Found, time.Since(start), err)
	logger.LogDetection(ctx, det, err)

	return det, err
}

func (m *Matcher) detect(ctx context.Context, req DetectRequest) (Detection, error) {
	det := Detection{
		Coarse:    emptyResults(),
		Fine:      emptyResults(),
		QueryRoot: model.InvalidNodeID,
		MatchRoot: model.InvalidNodeID,
		MatchNode: model.InvalidNodeID,
	}

	if req.FineQuery == nil {
		return det, fmt.Errorf("%w: nil fine query", ErrInvalidDescriptor)
	}

	coarse, err := m.SearchLayer(ctx, req.CoarseQuery, req.Candidates, req.CoarseCache, req.RootLeafMap)
	if err != nil {
		return det, err
	}
	det.Coarse = coarse
	if !coarse.Found() {
		return det, nil
	}

	fine, err := m.SearchLeaves(ctx, req.FineQuery, coarse.ValidMatches, req.FineCaches)
	if err != nil {
		return det, err
	}
	det.Fine = fine
	if !fine.Found() {
		return det, nil
	}

	det.Found = true
	det.QueryRoot = coarse.QueryRoot
	det.MatchRoot = fine.MatchRoot
	det.MatchNode = fine.BestNode
	det.Score = fine.BestScore

	return det, nil
}

// checkCache rejects nil descriptors and, for a dense query, dense
// descriptors of a different dimension. Sparse descriptors are compared over
// word ids and never mismatch.
func checkCache(query *descriptor.Descriptor, cache descriptor.Cache) error {
	for id, d := range cache {
		if d == nil {
			return fmt.Errorf("%w: nil descriptor for %s", ErrInvalidDescriptor, id)
		}
		if !query.IsSparse() && !d.IsSparse() && d.Dim() != query.Dim() {
			return &ErrDimensionMismatch{Expected: query.Dim(), Actual: d.Dim()}
		}
	}
	return nil
}

func endSpan(span trace.Span, results lcd.LayerSearchResults, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "search failed")
		return
	}
	span.SetAttributes(
		attribute.Int("scanned", results.Scanned),
		attribute.Int("skipped", results.Skipped),
		attribute.Bool("found", results.Found()),
		attribute.Float64("best_score", float64(results.BestScore)),
	)
}

func emptyResults() lcd.LayerSearchResults {
	return lcd.LayerSearchResults{
		BestNode:  model.InvalidNodeID,
		QueryRoot: model.InvalidNodeID,
		MatchRoot: model.InvalidNodeID,
	}
}
