package gallery

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"curator/internal/artwork"
)

// ErrStale is returned by a load whose result was discarded because a newer
// load started after it.
var ErrStale = errors.New("gallery load superseded")

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

// Catalog fetches listings for one source.
type Catalog interface {
	Featured(ctx context.Context, source artwork.Source) ([]artwork.Artwork, error)
	Search(ctx context.Context, source artwork.Source, query string) ([]artwork.Artwork, error)
}

// View is a snapshot of a controller.
type View struct {
	Source artwork.Source `json:"source"`
	State  State          `json:"state"`
	Busy   bool           `json:"busy"`
	Error  string         `json:"error,omitempty"`
	Search string         `json:"search,omitempty"`
	Page   Page           `json:"page"`
}

// Controller holds one source's gallery. Each Load or Search takes a new
// generation number and only the newest generation may publish its result.
type Controller struct {
	source  artwork.Source
	catalog Catalog
	logger  *zap.Logger

	mu         sync.Mutex
	gen        uint64
	state      State
	err        error
	artworks   []artwork.Artwork
	query      Query
	searchTerm string
}

func NewController(source artwork.Source, catalog Catalog, pageSize int, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		source:  source,
		catalog: catalog,
		logger:  logger.With(zap.String("source", string(source))),
		state:   StateIdle,
		query:   Query{PageSize: pageSize}.normalized(),
	}
}

func (c *Controller) Source() artwork.Source { return c.source }

// Load fetches the featured listing.
func (c *Controller) Load(ctx context.Context) error {
	return c.run(ctx, "", func(ctx context.Context) ([]artwork.Artwork, error) {
		return c.catalog.Featured(ctx, c.source)
	})
}

// Search replaces the listing with results for term. A blank term is ignored.
func (c *Controller) Search(ctx context.Context, term string) error {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	return c.run(ctx, term, func(ctx context.Context) ([]artwork.Artwork, error) {
		return c.catalog.Search(ctx, c.source, term)
	})
}

func (c *Controller) run(ctx context.Context, term string, fetch func(context.Context) ([]artwork.Artwork, error)) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.state = StateLoading
	c.mu.Unlock()

	artworks, err := fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		c.logger.Debug("discarding stale gallery result", zap.Uint64("generation", gen), zap.Uint64("current", c.gen))
		return ErrStale
	}
	if err != nil {
		c.logger.Warn("gallery load failed", zap.String("search", term), zap.Error(err))
		c.state = StateError
		c.err = err
		c.artworks = nil
		return err
	}

	c.state = StateReady
	c.err = nil
	c.artworks = artworks
	c.searchTerm = term
	c.query.Value = All
	c.query.Page = 1
	return nil
}

// SetFilter selects field and value and returns to page 1.
func (c *Controller) SetFilter(field Field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query.Field = field
	c.query.Value = value
	c.query.Page = 1
	c.query = c.query.normalized()
}

// SetSort changes the order and returns to page 1.
func (c *Controller) SetSort(order SortOrder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query.Sort = order
	c.query.Page = 1
	c.query = c.query.normalized()
}

// SetPage moves to page n, clamped to the available pages.
func (c *Controller) SetPage(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := Apply(c.artworks, c.query).TotalPages
	c.query.Page = max(1, min(n, total))
}

// View renders the controller's own query.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked(c.query)
}

// ViewWith renders q over the current listing without changing the
// controller's query.
func (c *Controller) ViewWith(q Query) View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked(q)
}

func (c *Controller) viewLocked(q Query) View {
	v := View{
		Source: c.source,
		State:  c.state,
		Busy:   c.state == StateLoading,
		Search: c.searchTerm,
		Page:   Apply(c.artworks, q),
	}
	if c.err != nil {
		v.Error = c.err.Error()
	}
	return v
}
