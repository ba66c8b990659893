package placematch

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/placematch/lcd"
	"github.com/hupe1980/placematch/model"
)

// Logger wraps slog.Logger with placematch-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithRoot adds the query root node field to the logger.
func (l *Logger) WithRoot(root model.NodeID) *Logger {
	return &Logger{
		Logger: l.Logger.With("root", uint64(root)),
	}
}

// WithStage adds a search stage field ("layer" or "leaf") to the logger.
func (l *Logger) WithStage(stage string) *Logger {
	return &Logger{
		Logger: l.Logger.With("stage", stage),
	}
}

// LogLayerSearch logs a single-layer search.
func (l *Logger) LogLayerSearch(ctx context.Context, results lcd.LayerSearchResults, duration time.Duration, err error) {
	l.logSearch(ctx, "layer search", results, duration, err)
}

// LogLeafSearch logs a hierarchical leaf search.
func (l *Logger) LogLeafSearch(ctx context.Context, results lcd.LayerSearchResults, duration time.Duration, err error) {
	l.logSearch(ctx, "leaf search", results, duration, err)
}

func (l *Logger) logSearch(ctx context.Context, op string, results lcd.LayerSearchResults, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, op+" failed",
			"error", err,
		)
		return
	}

	if results.Skipped > 0 {
		l.WarnContext(ctx, op+" hit scan budget",
			"scanned", results.Scanned,
			"skipped", results.Skipped,
		)
	}

	l.DebugContext(ctx, op+" completed",
		"scanned", results.Scanned,
		"best_node", uint64(results.BestNode),
		"best_score", results.BestScore,
		"valid_matches", results.ValidMatches.Len(),
		"duration", duration,
	)
}

// LogDetection logs the outcome of a coarse-to-fine detection.
func (l *Logger) LogDetection(ctx context.Context, det Detection, err error) {
	if err != nil {
		l.ErrorContext(ctx, "loop closure detection failed",
			"error", err,
		)
		return
	}

	if !det.Found {
		l.DebugContext(ctx, "no loop closure candidate",
			"coarse_best_score", det.Coarse.BestScore,
			"fine_best_score", det.Fine.BestScore,
		)
		return
	}

	l.InfoContext(ctx, "loop closure candidate found",
		"query_root", uint64(det.QueryRoot),
		"match_root", uint64(det.MatchRoot),
		"match_node", uint64(det.MatchNode),
		"score", det.Score,
	)
}
