package artwork

import "strconv"

const (
	UnknownArtist = "Unknown Artist"
	UnknownOrigin = "Unknown Origin"
	UnknownYear   = "Unknown"
)

// Card is the render-ready view of an artwork with fallbacks applied.
type Card struct {
	ID       int    `json:"id"`
	Source   Source `json:"source"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Origin   string `json:"origin"`
	Year     string `json:"year"`
	ImageURL string `json:"image_url,omitempty"`
	Museum   string `json:"museum"`
}

func (a Artwork) Card() Card {
	c := Card{
		ID:       a.ID,
		Source:   a.Source,
		Title:    a.Title,
		Artist:   a.Artist(),
		Origin:   a.Origin(),
		Year:     UnknownYear,
		ImageURL: a.ImageURL(),
		Museum:   a.Source.Museum(),
	}
	if c.Artist == "" {
		c.Artist = UnknownArtist
	}
	if c.Origin == "" {
		c.Origin = UnknownOrigin
	}
	if y, ok := a.Year(); ok && y != 0 {
		c.Year = strconv.Itoa(y)
	}
	return c
}

// Cards renders a slice, preserving order.
func Cards(as []Artwork) []Card {
	out := make([]Card, 0, len(as))
	for _, a := range as {
		out = append(out, a.Card())
	}
	return out
}
