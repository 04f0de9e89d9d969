package artwork

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"unicode"
)

// wireArtwork is the flat JSON shape shared with stored exhibitions.
type wireArtwork struct {
	ID     int    `json:"id"`
	Source Source `json:"source"`
	Title  string `json:"title"`

	ArtistTitle   string `json:"artist_title,omitempty"`
	DateEnd       *int   `json:"date_end,omitempty"`
	PlaceOfOrigin string `json:"place_of_origin,omitempty"`
	ImageID       string `json:"image_id,omitempty"`

	ArtistDisplayName string `json:"artistDisplayName,omitempty"`
	AccessionYear     *int   `json:"accessionYear,omitempty"`
	ArtistNationality string `json:"artistNationality,omitempty"`
	PrimaryImage      string `json:"primaryImage,omitempty"`
}

// storedArtwork tolerates records written by older clients: raw Met objects
// keyed by objectID and string accession years.
type storedArtwork struct {
	ID       looseInt `json:"id"`
	ObjectID looseInt `json:"objectID"`
	Source   Source   `json:"source"`
	Title    string   `json:"title"`

	ArtistTitle   string   `json:"artist_title"`
	DateEnd       looseInt `json:"date_end"`
	PlaceOfOrigin string   `json:"place_of_origin"`
	ImageID       string   `json:"image_id"`

	ArtistDisplayName string   `json:"artistDisplayName"`
	AccessionYear     looseInt `json:"accessionYear"`
	ArtistNationality string   `json:"artistNationality"`
	PrimaryImage      string   `json:"primaryImage"`
}

func (a Artwork) MarshalJSON() ([]byte, error) {
	w := wireArtwork{ID: a.ID, Source: a.Source, Title: a.Title}
	switch a.Source {
	case SourceAIC:
		if a.AIC != nil {
			w.ArtistTitle = a.AIC.ArtistTitle
			w.DateEnd = a.AIC.DateEnd
			w.PlaceOfOrigin = a.AIC.PlaceOfOrigin
			w.ImageID = a.AIC.ImageID
		}
	case SourceMet:
		if a.Met != nil {
			w.ArtistDisplayName = a.Met.ArtistDisplayName
			w.AccessionYear = a.Met.AccessionYear
			w.ArtistNationality = a.Met.ArtistNationality
			w.PrimaryImage = a.Met.PrimaryImage
		}
	}
	return json.Marshal(w)
}

func (a *Artwork) UnmarshalJSON(data []byte) error {
	var s storedArtwork
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	*a = Artwork{Source: s.Source, Title: s.Title}
	if s.ID.v != nil {
		a.ID = *s.ID.v
	} else if s.ObjectID.v != nil {
		a.ID = *s.ObjectID.v
	}

	switch a.Source {
	case SourceAIC:
		a.AIC = &AICDetails{
			ArtistTitle:   s.ArtistTitle,
			DateEnd:       s.DateEnd.v,
			PlaceOfOrigin: s.PlaceOfOrigin,
			ImageID:       s.ImageID,
		}
	case SourceMet:
		a.Met = &MetDetails{
			ArtistDisplayName: s.ArtistDisplayName,
			AccessionYear:     s.AccessionYear.v,
			ArtistNationality: s.ArtistNationality,
			PrimaryImage:      s.PrimaryImage,
		}
	}
	return nil
}

// looseInt decodes a JSON number, a numeric string, "" or null.
type looseInt struct {
	v *int
}

func (l *looseInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if n, ok := ParseYear(s); ok {
			l.v = &n
		}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	n := int(f)
	l.v = &n
	return nil
}

// ParseYear reads the leading digits of s, so "1993" and "1993-94" both give 1993.
func ParseYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == -1 {
		end = len(s)
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
