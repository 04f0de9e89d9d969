package artwork

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownSource is returned when a source tag is neither aic nor met.
var ErrUnknownSource = errors.New("unknown artwork source")

// Source identifies the museum API an artwork came from.
type Source string

const (
	SourceAIC Source = "aic"
	SourceMet Source = "met"
)

// Sources lists every supported source in display order.
var Sources = []Source{SourceAIC, SourceMet}

// ParseSource accepts the canonical tags plus the "chicago" route alias.
func ParseSource(s string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "aic", "chicago":
		return SourceAIC, nil
	case "met":
		return SourceMet, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSource, s)
	}
}

func (s Source) Valid() bool {
	return s == SourceAIC || s == SourceMet
}

// Museum is the human readable institution name.
func (s Source) Museum() string {
	switch s {
	case SourceAIC:
		return "Chicago Art Institute"
	case SourceMet:
		return "Metropolitan Museum of Art"
	default:
		return ""
	}
}

// Identity is the (source, id) pair that makes two artworks the same.
type Identity struct {
	Source Source `json:"source"`
	ID     int    `json:"id"`
}

func (i Identity) String() string {
	return string(i.Source) + ":" + strconv.Itoa(i.ID)
}

// Valid reports whether both halves of the identity are present.
func (i Identity) Valid() bool {
	return i.Source.Valid() && i.ID > 0
}

// ParseIdentity parses the "source:id" form produced by Identity.String.
func ParseIdentity(s string) (Identity, error) {
	src, rawID, ok := strings.Cut(s, ":")
	if !ok {
		return Identity{}, fmt.Errorf("invalid artwork identity %q", s)
	}
	source, err := ParseSource(src)
	if err != nil {
		return Identity{}, err
	}
	id, err := strconv.Atoi(rawID)
	if err != nil || id <= 0 {
		return Identity{}, fmt.Errorf("invalid artwork id %q", rawID)
	}
	return Identity{Source: source, ID: id}, nil
}

// AICDetails holds the Art Institute of Chicago specific fields.
type AICDetails struct {
	ArtistTitle   string
	DateEnd       *int
	PlaceOfOrigin string
	ImageID       string
}

// MetDetails holds the Metropolitan Museum specific fields.
type MetDetails struct {
	ArtistDisplayName string
	AccessionYear     *int
	ArtistNationality string
	PrimaryImage      string
}

// Artwork is a normalized record. Exactly one of AIC and Met is set, matching Source.
type Artwork struct {
	ID     int
	Source Source
	Title  string

	AIC *AICDetails
	Met *MetDetails
}

func (a Artwork) Identity() Identity {
	return Identity{Source: a.Source, ID: a.ID}
}

// Artist returns the artist name, or "" when the record has none.
func (a Artwork) Artist() string {
	switch a.Source {
	case SourceAIC:
		if a.AIC != nil {
			return a.AIC.ArtistTitle
		}
	case SourceMet:
		if a.Met != nil {
			return a.Met.ArtistDisplayName
		}
	}
	return ""
}

// Origin returns the place of origin (aic) or artist nationality (met).
func (a Artwork) Origin() string {
	switch a.Source {
	case SourceAIC:
		if a.AIC != nil {
			return a.AIC.PlaceOfOrigin
		}
	case SourceMet:
		if a.Met != nil {
			return a.Met.ArtistNationality
		}
	}
	return ""
}

// Year returns the date-like sort key: date_end for aic, accession year for met.
func (a Artwork) Year() (int, bool) {
	var y *int
	switch a.Source {
	case SourceAIC:
		if a.AIC != nil {
			y = a.AIC.DateEnd
		}
	case SourceMet:
		if a.Met != nil {
			y = a.Met.AccessionYear
		}
	}
	if y == nil {
		return 0, false
	}
	return *y, true
}

// ImageURL builds the IIIF URL for aic images and passes met image URLs through.
func (a Artwork) ImageURL() string {
	switch a.Source {
	case SourceAIC:
		if a.AIC != nil && a.AIC.ImageID != "" {
			return "https://www.artic.edu/iiif/2/" + a.AIC.ImageID + "/full/843,/0/default.jpg"
		}
	case SourceMet:
		if a.Met != nil {
			return a.Met.PrimaryImage
		}
	}
	return ""
}
