// Package pipeline runs citation.Engine.GetCitations over a batch of
// documents with bounded concurrency, the batch-processing shape the
// handlers' /batch endpoint needs (spec §5: "the batch layer ... documents
// in a batch are independent and may run concurrently").
package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"lexcite/pkg/citation"
	"lexcite/pkg/citation/model"
)

// Request is one document to extract citations from.
type Request struct {
	ID   string
	Text string
}

// Result is one document's extraction outcome. Citation extraction never
// fails on input-driven faults (spec §7), so Err is only set when ctx was
// canceled before the document's turn came up.
type Result struct {
	ID        string
	Citations model.List
	Err       error
}

// Pool runs a batch of Requests against a shared Engine with at most
// Concurrency documents in flight at once.
type Pool struct {
	engine      *citation.Engine
	opts        citation.Options
	concurrency int
}

// New builds a Pool. concurrency <= 0 is treated as 1.
func New(engine *citation.Engine, opts citation.Options, concurrency int) *Pool {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Pool{engine: engine, opts: opts, concurrency: concurrency}
}

// Run processes every request, preserving input order in the result slice.
// It returns early (leaving the remaining results' Err set to ctx.Err())
// if ctx is canceled.
func (p *Pool) Run(ctx context.Context, reqs []Request) []Result {
	results := make([]Result, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = Result{ID: req.ID, Err: err}
				return nil
			}
			results[i] = Result{ID: req.ID, Citations: p.engine.GetCitations(req.Text, p.opts)}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
