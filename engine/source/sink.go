package source

import (
	"context"

	"github.com/compozy/uafixtures/pkg/logger"
)

// Verbosity is the tier a progress line is written at.
type Verbosity int

const (
	VerbosityNormal Verbosity = iota
	VerbosityVerbose
	VerbosityVeryVerbose
	// VerbosityError lines are shown at every threshold.
	VerbosityError Verbosity = -1
)

// Sink receives operator feedback. It never influences returned data.
type Sink interface {
	Writeln(v Verbosity, msg string, keyvals ...any)
}

type nopSink struct{}

func (nopSink) Writeln(Verbosity, string, ...any) {}

// NopSink discards every line.
func NopSink() Sink {
	return nopSink{}
}

type logSink struct {
	log       logger.Logger
	threshold Verbosity
}

// NewLogSink writes progress lines to log, dropping lines more verbose than
// threshold. Error lines map to Error, normal lines to Info and the verbose
// tiers to Debug.
func NewLogSink(log logger.Logger, threshold Verbosity) Sink {
	return &logSink{log: log, threshold: threshold}
}

func (s *logSink) Writeln(v Verbosity, msg string, keyvals ...any) {
	switch {
	case v == VerbosityError:
		s.log.Error(msg, keyvals...)
	case v > s.threshold:
		return
	case v == VerbosityNormal:
		s.log.Info(msg, keyvals...)
	default:
		s.log.Debug(msg, keyvals...)
	}
}

type sinkCtxKey struct{}

// ContextWithSink attaches sink to ctx for every source called with it.
func ContextWithSink(ctx context.Context, sink Sink) context.Context {
	return context.WithValue(ctx, sinkCtxKey{}, sink)
}

// SinkFromContext returns the sink on ctx, or a sink that discards.
func SinkFromContext(ctx context.Context) Sink {
	if ctx != nil {
		if s, ok := ctx.Value(sinkCtxKey{}).(Sink); ok && s != nil {
			return s
		}
	}
	return nopSink{}
}
