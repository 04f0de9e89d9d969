package share

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"curator/internal/artwork"
)

// ErrResolution matches every *ResolutionError.
var ErrResolution = errors.New("share resolution failed")

// ResolutionError names the first record that could not be fetched.
type ResolutionError struct {
	Record Record
	Err    error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve %s: %v", e.Record.Identity(), e.Err)
}

func (e *ResolutionError) Is(target error) bool { return target == ErrResolution }

func (e *ResolutionError) Unwrap() error { return e.Err }

//go:generate mockgen -destination=mock_fetcher_test.go -package=share curator/internal/share Fetcher

// Fetcher loads one normalized artwork.
type Fetcher interface {
	FetchByID(ctx context.Context, id artwork.Identity) (artwork.Artwork, error)
}

type Resolver struct {
	fetcher     Fetcher
	concurrency int
}

// NewResolver bounds parallel fetches to concurrency; values below 1 mean 8.
func NewResolver(fetcher Fetcher, concurrency int) *Resolver {
	if concurrency < 1 {
		concurrency = 8
	}
	return &Resolver{fetcher: fetcher, concurrency: concurrency}
}

// Resolve fetches every record in parallel and returns the artworks in record
// order. The first failure cancels the rest and no partial result is returned.
func (r *Resolver) Resolve(ctx context.Context, records []Record) ([]artwork.Artwork, error) {
	out := make([]artwork.Artwork, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, rec := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return &ResolutionError{Record: rec, Err: err}
			}
			a, err := r.fetcher.FetchByID(gctx, rec.Identity())
			if err != nil {
				return &ResolutionError{Record: rec, Err: err}
			}
			out[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
