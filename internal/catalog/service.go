package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"curator/internal/artwork"
	"curator/internal/platform/aic"
	"curator/internal/platform/httpclient"
	"curator/internal/platform/met"
)

type Service struct {
	aic    AICClient
	met    MetClient
	cfg    Config
	logger *zap.Logger
}

func NewService(aicClient AICClient, metClient MetClient, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		aic:    aicClient,
		met:    metClient,
		cfg:    cfg.withDefaults(),
		logger: logger,
	}
}

// FetchByID returns the normalized record for id. A record the museum does
// not have, or one too incomplete to normalize, yields ErrNotFound.
func (s *Service) FetchByID(ctx context.Context, id artwork.Identity) (artwork.Artwork, error) {
	if !id.Valid() {
		return artwork.Artwork{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	var (
		a   artwork.Artwork
		err error
	)
	switch id.Source {
	case artwork.SourceAIC:
		var rec *aic.Artwork
		rec, err = s.aic.GetArtwork(ctx, id.ID)
		if err == nil {
			a, err = artwork.FromAIC(*rec)
		}
	case artwork.SourceMet:
		var obj *met.Object
		obj, err = s.met.GetObject(ctx, id.ID)
		if err == nil {
			a, err = artwork.FromMet(*obj)
		}
	}

	switch {
	case err == nil:
		return a, nil
	case errors.Is(err, httpclient.ErrNotFound), errors.Is(err, artwork.ErrNormalization):
		return artwork.Artwork{}, fmt.Errorf("%w: %s: %w", ErrNotFound, id, err)
	default:
		return artwork.Artwork{}, fmt.Errorf("fetch %s: %w", id, err)
	}
}

// Featured returns the default gallery listing for source.
func (s *Service) Featured(ctx context.Context, source artwork.Source) ([]artwork.Artwork, error) {
	switch source {
	case artwork.SourceAIC:
		res, err := s.aic.ListArtworks(ctx, 1, s.cfg.Limit)
		if err != nil {
			return nil, fmt.Errorf("list aic artworks: %w", err)
		}
		return s.fromAIC(res.Data), nil
	case artwork.SourceMet:
		ids, err := s.met.DepartmentObjectIDs(ctx, s.cfg.MetDepartment)
		if err != nil {
			return nil, fmt.Errorf("list met department %d: %w", s.cfg.MetDepartment, err)
		}
		return s.metObjects(ctx, ids.ObjectIDs)
	default:
		return nil, fmt.Errorf("%w: %q", artwork.ErrUnknownSource, source)
	}
}

// Search runs a free-text query against source.
func (s *Service) Search(ctx context.Context, source artwork.Source, query string) ([]artwork.Artwork, error) {
	switch source {
	case artwork.SourceAIC:
		res, err := s.aic.SearchArtworks(ctx, query, s.cfg.Limit)
		if err != nil {
			return nil, fmt.Errorf("search aic %q: %w", query, err)
		}
		return s.fromAIC(res.Data), nil
	case artwork.SourceMet:
		ids, err := s.met.Search(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("search met %q: %w", query, err)
		}
		return s.metObjects(ctx, ids.ObjectIDs)
	default:
		return nil, fmt.Errorf("%w: %q", artwork.ErrUnknownSource, source)
	}
}

func (s *Service) fromAIC(records []aic.Artwork) []artwork.Artwork {
	out := make([]artwork.Artwork, 0, len(records))
	for _, rec := range records {
		a, err := artwork.FromAIC(rec)
		if err != nil {
			s.logger.Debug("dropping aic record", zap.Int("id", rec.ID), zap.Error(err))
			continue
		}
		out = append(out, a)
	}
	return out
}

// metObjects fetches the first Limit ids concurrently. Any failed fetch fails
// the whole listing. Objects without a primary image are dropped.
func (s *Service) metObjects(ctx context.Context, ids []int) ([]artwork.Artwork, error) {
	if len(ids) > s.cfg.Limit {
		ids = ids[:s.cfg.Limit]
	}

	objects := make([]*met.Object, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for i, id := range ids {
		g.Go(func() error {
			obj, err := s.met.GetObject(gctx, id)
			if err != nil {
				return fmt.Errorf("fetch met object %d: %w", id, err)
			}
			objects[i] = obj
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]artwork.Artwork, 0, len(objects))
	for _, obj := range objects {
		if obj.PrimaryImage == "" {
			continue
		}
		a, err := artwork.FromMet(*obj)
		if err != nil {
			s.logger.Debug("dropping met record", zap.Int("id", obj.ObjectID), zap.Error(err))
			continue
		}
		out = append(out, a)
	}
	return out, nil
}
