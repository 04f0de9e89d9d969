package exhibition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"curator/internal/artwork"
	"curator/internal/storage"
)

// legacyKeys are the per-museum keys written by earlier clients. Artworks
// stored under them may lack a source tag.
var legacyKeys = []struct {
	key    string
	source artwork.Source
}{
	{key: "met_exhibitions", source: artwork.SourceMet},
	{key: "chicago_exhibitions", source: artwork.SourceAIC},
	{key: "exhibitions"},
}

type legacyExhibition struct {
	ID       ID                `json:"id"`
	Name     string            `json:"name"`
	Artworks []json.RawMessage `json:"artworks"`
}

// migrateLegacy merges exhibitions found under the legacy keys into one list,
// stores it under Key and removes the legacy keys. It returns nil when no
// legacy key holds data.
func (s *Store) migrateLegacy(ctx context.Context, namespace string) ([]Exhibition, error) {
	var (
		merged []Exhibition
		found  []string
	)
	for _, lk := range legacyKeys {
		raw, err := s.storage.Get(ctx, namespace, lk.key)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read legacy key %s: %w", lk.key, err)
		}
		found = append(found, lk.key)

		var olds []legacyExhibition
		if err := json.Unmarshal([]byte(raw), &olds); err != nil {
			s.logger.Warn("skipping unparseable legacy exhibitions",
				zap.String("namespace", namespace),
				zap.String("key", lk.key),
				zap.Error(err),
			)
			continue
		}
		merged = mergeLegacy(merged, olds, lk.source, s.logger)
	}
	if len(found) == 0 {
		return nil, nil
	}

	if len(merged) > 0 {
		if err := s.save(ctx, namespace, merged); err != nil {
			return nil, err
		}
	}
	for _, key := range found {
		if err := s.storage.Delete(ctx, namespace, key); err != nil {
			return nil, fmt.Errorf("remove legacy key %s: %w", key, err)
		}
	}
	s.logger.Info("migrated legacy exhibitions",
		zap.String("namespace", namespace),
		zap.Strings("keys", found),
		zap.Int("exhibitions", len(merged)),
	)
	return merged, nil
}

func mergeLegacy(dst []Exhibition, olds []legacyExhibition, fallback artwork.Source, logger *zap.Logger) []Exhibition {
	for _, old := range olds {
		if old.ID == "" {
			continue
		}
		if _, ok := Find(dst, old.ID); !ok {
			name := old.Name
			if name == "" {
				name = DefaultName
			}
			dst = append(dst, Exhibition{ID: old.ID, Name: name, Artworks: []artwork.Artwork{}})
		}
		for _, raw := range old.Artworks {
			a, err := decodeLegacyArtwork(raw, fallback)
			if err != nil || !a.Identity().Valid() {
				logger.Debug("skipping legacy artwork", zap.String("exhibition", string(old.ID)), zap.Error(err))
				continue
			}
			dst = AddArtwork(dst, old.ID, a)
		}
	}
	return dst
}

func decodeLegacyArtwork(raw json.RawMessage, fallback artwork.Source) (artwork.Artwork, error) {
	var a artwork.Artwork
	if err := json.Unmarshal(raw, &a); err != nil {
		return artwork.Artwork{}, err
	}
	if a.Source != "" || fallback == "" {
		return a, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return artwork.Artwork{}, err
	}
	fields["source"], _ = json.Marshal(fallback)
	patched, err := json.Marshal(fields)
	if err != nil {
		return artwork.Artwork{}, err
	}
	if err := json.Unmarshal(patched, &a); err != nil {
		return artwork.Artwork{}, err
	}
	return a, nil
}
