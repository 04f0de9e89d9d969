package exhibition

import (
	"context"

	"curator/internal/artwork"
)

// Fetcher loads a full artwork record by identity.
type Fetcher interface {
	FetchByID(ctx context.Context, id artwork.Identity) (artwork.Artwork, error)
}

// Service saves artworks by identity, fetching the full record first so
// exhibitions render without further API calls.
type Service struct {
	store   *Store
	fetcher Fetcher
}

func NewService(store *Store, fetcher Fetcher) *Service {
	return &Service{store: store, fetcher: fetcher}
}

func (s *Service) Store() *Store {
	return s.store
}

// SaveArtwork adds the artwork identified by target to exhibition id. The
// exhibition must exist. Already saved artworks are not fetched again.
func (s *Service) SaveArtwork(ctx context.Context, namespace string, id ID, target artwork.Identity) (Exhibition, error) {
	e, err := s.store.Get(ctx, namespace, id)
	if err != nil {
		return Exhibition{}, err
	}
	if e.Contains(target) {
		return e, nil
	}

	a, err := s.fetcher.FetchByID(ctx, target)
	if err != nil {
		return Exhibition{}, err
	}
	exs, err := s.store.AddArtwork(ctx, namespace, id, a)
	if err != nil {
		return Exhibition{}, err
	}
	e, _ = Find(exs, id)
	return e, nil
}
