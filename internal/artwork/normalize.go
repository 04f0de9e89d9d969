package artwork

import (
	"encoding/json"
	"errors"
	"fmt"

	"curator/internal/platform/aic"
	"curator/internal/platform/met"
)

// ErrNormalization matches every *NormalizationError.
var ErrNormalization = errors.New("artwork normalization failed")

// NormalizationError reports a raw record missing a required identity field.
type NormalizationError struct {
	Source Source
	Field  string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("%s record missing %s", e.Source, e.Field)
}

func (e *NormalizationError) Is(target error) bool {
	return target == ErrNormalization
}

// FromAIC maps an Art Institute of Chicago record.
func FromAIC(r aic.Artwork) (Artwork, error) {
	if r.ID <= 0 {
		return Artwork{}, &NormalizationError{Source: SourceAIC, Field: "id"}
	}
	if r.Title == "" {
		return Artwork{}, &NormalizationError{Source: SourceAIC, Field: "title"}
	}
	return Artwork{
		ID:     r.ID,
		Source: SourceAIC,
		Title:  r.Title,
		AIC: &AICDetails{
			ArtistTitle:   r.ArtistTitle,
			DateEnd:       r.DateEnd,
			PlaceOfOrigin: r.PlaceOfOrigin,
			ImageID:       r.ImageID,
		},
	}, nil
}

// FromMet maps a Metropolitan Museum object.
func FromMet(o met.Object) (Artwork, error) {
	if o.ObjectID <= 0 {
		return Artwork{}, &NormalizationError{Source: SourceMet, Field: "id"}
	}
	if o.Title == "" {
		return Artwork{}, &NormalizationError{Source: SourceMet, Field: "title"}
	}
	details := &MetDetails{
		ArtistDisplayName: o.ArtistDisplayName,
		ArtistNationality: o.ArtistNationality,
		PrimaryImage:      o.PrimaryImage,
	}
	if y, ok := ParseYear(o.AccessionYear); ok {
		details.AccessionYear = &y
	}
	return Artwork{
		ID:     o.ObjectID,
		Source: SourceMet,
		Title:  o.Title,
		Met:    details,
	}, nil
}

// Normalize decodes a raw API payload for source and maps it.
func Normalize(source Source, raw []byte) (Artwork, error) {
	switch source {
	case SourceAIC:
		var r aic.Artwork
		if err := json.Unmarshal(raw, &r); err != nil {
			return Artwork{}, fmt.Errorf("decode aic record: %w", err)
		}
		return FromAIC(r)
	case SourceMet:
		var o met.Object
		if err := json.Unmarshal(raw, &o); err != nil {
			return Artwork{}, fmt.Errorf("decode met record: %w", err)
		}
		return FromMet(o)
	default:
		return Artwork{}, fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}
}
