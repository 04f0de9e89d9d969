// Package catalog fetches artworks from the museum APIs and returns them
// normalized.
package catalog

import (
	"context"
	"errors"

	"curator/internal/platform/aic"
	"curator/internal/platform/met"
)

// ErrNotFound is returned when a museum has no record for an identity.
var ErrNotFound = errors.New("artwork not found")

type AICClient interface {
	GetArtwork(ctx context.Context, id int) (*aic.Artwork, error)
	ListArtworks(ctx context.Context, page, limit int) (*aic.ListResponse, error)
	SearchArtworks(ctx context.Context, query string, limit int) (*aic.ListResponse, error)
}

type MetClient interface {
	GetObject(ctx context.Context, id int) (*met.Object, error)
	DepartmentObjectIDs(ctx context.Context, departmentID int) (*met.IDList, error)
	Search(ctx context.Context, query string) (*met.IDList, error)
}

type Config struct {
	// Limit caps featured and search results per source. For the Met it is
	// also the number of object ids fetched one by one.
	Limit int
	// Concurrency bounds parallel Met object fetches.
	Concurrency int
	// MetDepartment is the department the Met featured gallery is drawn from.
	MetDepartment int
}

func (c Config) withDefaults() Config {
	if c.Limit <= 0 {
		c.Limit = 50
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 10
	}
	if c.MetDepartment <= 0 {
		c.MetDepartment = met.EuropeanPaintings
	}
	return c
}
