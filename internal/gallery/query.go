// Package gallery projects artwork listings into filtered, sorted pages and
// tracks the load state of each museum's gallery.
package gallery

import (
	"fmt"
	"slices"
	"strings"

	"curator/internal/artwork"
)

// All is the filter value that matches every artwork.
const All = "All"

// DefaultPageSize is used when a query does not set one.
const DefaultPageSize = 12

type SortOrder string

const (
	Newest SortOrder = "Newest"
	Oldest SortOrder = "Oldest"
)

func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "newest":
		return Newest, nil
	case "oldest":
		return Oldest, nil
	default:
		return "", fmt.Errorf("unknown sort order %q", s)
	}
}

// Field is the artwork attribute a gallery can be filtered on.
type Field string

const (
	FieldArtist Field = "artist"
	FieldOrigin Field = "origin"
)

func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "artist":
		return FieldArtist, nil
	case "origin", "nationality":
		return FieldOrigin, nil
	default:
		return "", fmt.Errorf("unknown filter field %q", s)
	}
}

func (f Field) of(a artwork.Artwork) string {
	if f == FieldOrigin {
		return a.Origin()
	}
	return a.Artist()
}

type Query struct {
	Field    Field     `json:"field"`
	Value    string    `json:"value"`
	Sort     SortOrder `json:"sort"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}

func (q Query) normalized() Query {
	if q.Field == "" {
		q.Field = FieldArtist
	}
	if q.Value == "" {
		q.Value = All
	}
	if q.Sort == "" {
		q.Sort = Newest
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	return q
}

// Page is one rendered slice of a gallery.
type Page struct {
	Query      Query             `json:"query"`
	Items      []artwork.Artwork `json:"items"`
	Cards      []artwork.Card    `json:"cards"`
	Options    []string          `json:"options"`
	TotalItems int               `json:"total_items"`
	TotalPages int               `json:"total_pages"`
}

// Options lists "All" followed by the distinct non-empty values of field, in
// first-seen order.
func Options(artworks []artwork.Artwork, field Field) []string {
	out := []string{All}
	seen := make(map[string]bool)
	for _, a := range artworks {
		v := field.of(a)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// Apply filters, sorts and slices artworks. Artworks without a year sort as
// year 0 and ties keep their input order. A page past the end is empty.
func Apply(artworks []artwork.Artwork, q Query) Page {
	q = q.normalized()

	filtered := make([]artwork.Artwork, 0, len(artworks))
	for _, a := range artworks {
		if q.Value == All || q.Field.of(a) == q.Value {
			filtered = append(filtered, a)
		}
	}

	slices.SortStableFunc(filtered, func(a, b artwork.Artwork) int {
		ya, _ := a.Year()
		yb, _ := b.Year()
		if q.Sort == Oldest {
			return ya - yb
		}
		return yb - ya
	})

	totalPages := (len(filtered) + q.PageSize - 1) / q.PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	start := min((q.Page-1)*q.PageSize, len(filtered))
	end := min(start+q.PageSize, len(filtered))
	items := filtered[start:end]

	return Page{
		Query:      q,
		Items:      items,
		Cards:      artwork.Cards(items),
		Options:    Options(artworks, q.Field),
		TotalItems: len(filtered),
		TotalPages: totalPages,
	}
}
