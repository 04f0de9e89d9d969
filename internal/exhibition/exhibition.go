// Package exhibition keeps a client's named collections of saved artworks.
package exhibition

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"curator/internal/artwork"
)

// DefaultName names the exhibition synthesized when a client has none.
const DefaultName = "Your Custom Exhibition"

// MaxNameLength bounds exhibition names, counted in runes.
const MaxNameLength = 100

var (
	ErrNotFound    = errors.New("exhibition not found")
	ErrInvalidName = errors.New("exhibition name must be 1-100 characters")
)

// ID identifies an exhibition. Older clients stored numeric ids, so both JSON
// numbers and strings decode.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("exhibition id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

type Exhibition struct {
	ID       ID                `json:"id"`
	Name     string            `json:"name"`
	Artworks []artwork.Artwork `json:"artworks"`
}

// Contains reports whether an artwork with identity id is in the exhibition.
func (e Exhibition) Contains(id artwork.Identity) bool {
	for _, a := range e.Artworks {
		if a.Identity() == id {
			return true
		}
	}
	return false
}

func (e Exhibition) clone() Exhibition {
	e.Artworks = append([]artwork.Artwork(nil), e.Artworks...)
	if e.Artworks == nil {
		e.Artworks = []artwork.Artwork{}
	}
	return e
}

func cloneAll(exs []Exhibition) []Exhibition {
	out := make([]Exhibition, len(exs))
	copy(out, exs)
	return out
}

// Find returns the exhibition with id.
func Find(exs []Exhibition, id ID) (Exhibition, bool) {
	for _, e := range exs {
		if e.ID == id {
			return e, true
		}
	}
	return Exhibition{}, false
}

// AddArtwork returns a copy of exs with a appended to exhibition id, unless an
// artwork with the same identity is already there. The input is not modified.
func AddArtwork(exs []Exhibition, id ID, a artwork.Artwork) []Exhibition {
	out := cloneAll(exs)
	if id == "" {
		return out
	}
	for i, e := range out {
		if e.ID != id {
			continue
		}
		if e.Contains(a.Identity()) {
			return out
		}
		e = e.clone()
		e.Artworks = append(e.Artworks, a)
		out[i] = e
		return out
	}
	return out
}

// RemoveArtwork returns a copy of exs without the matching artwork in
// exhibition id. Other exhibitions keep their copies.
func RemoveArtwork(exs []Exhibition, id ID, target artwork.Identity) []Exhibition {
	out := cloneAll(exs)
	if id == "" {
		return out
	}
	for i, e := range out {
		if e.ID != id {
			continue
		}
		kept := make([]artwork.Artwork, 0, len(e.Artworks))
		for _, a := range e.Artworks {
			if a.Identity() != target {
				kept = append(kept, a)
			}
		}
		e.Artworks = kept
		out[i] = e
	}
	return out
}

// IsSaved reports whether exhibition id holds an artwork with identity target.
func IsSaved(exs []Exhibition, id ID, target artwork.Identity) bool {
	if id == "" {
		return false
	}
	e, ok := Find(exs, id)
	return ok && e.Contains(target)
}
