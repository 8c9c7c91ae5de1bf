// Package pdo streams captured requests from the request table. Header
// blobs are passed through unfiltered, so records may lack a user agent.
package pdo

import (
	"context"
	"iter"

	"github.com/compozy/uafixtures/engine/header"
	"github.com/compozy/uafixtures/engine/infra/postgres"
	"github.com/compozy/uafixtures/engine/record"
	"github.com/compozy/uafixtures/engine/source"
)

const Name = "pdo"

// Requests streams request rows in emission order.
type Requests interface {
	Stream(ctx context.Context) iter.Seq2[*postgres.Request, error]
}

type Source struct {
	requests Requests
}

func New(requests Requests) *Source {
	return &Source{requests: requests}
}

func (s *Source) Name() string {
	return Name
}

// IsReady is always true; connectivity problems surface as query errors.
func (s *Source) IsReady(_ context.Context) bool {
	return true
}

func (s *Source) Properties(ctx context.Context) iter.Seq2[*source.Entry, error] {
	return func(yield func(*source.Entry, error) bool) {
		sink := source.SinkFromContext(ctx)
		sink.Writeln(source.VerbosityVerbose, "querying request table", "source", Name)
		for req, err := range s.requests.Stream(ctx) {
			if err != nil {
				yield(nil, source.QueryError(Name, err))
				return
			}
			headers, err := header.FromJSON([]byte(req.Headers))
			if err != nil {
				source.RowSkipped(ctx, Name)
				sink.Writeln(source.VerbosityVeryVerbose, "skipping request with unreadable headers", "source", Name, "id", req.ID)
				continue
			}
			rec := &record.Record{Headers: headers, Raw: req.Headers}
			source.RecordEmitted(ctx, Name)
			if !yield(source.NewEntry(rec), nil) {
				return
			}
		}
	}
}
