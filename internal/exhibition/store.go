package exhibition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"curator/internal/artwork"
	"curator/internal/storage"
)

// Key is the storage key holding a namespace's exhibitions.
const Key = "custom_exhibition"

// Persistence is the part of the storage service the store uses.
type Persistence interface {
	Get(ctx context.Context, namespace, key string) (string, error)
	Set(ctx context.Context, namespace, key, value string) error
	Delete(ctx context.Context, namespace, key string) error
}

// Store persists exhibitions per namespace. Every mutation is written through
// before it returns and every read goes to storage, so writers in other
// processes sharing the backend are seen on the next call.
type Store struct {
	storage Persistence
	logger  *zap.Logger
	now     func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewStore(p Persistence, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		storage: p,
		logger:  logger,
		now:     time.Now,
		locks:   make(map[string]*sync.Mutex),
	}
}

func (s *Store) lock(namespace string) func() {
	s.mu.Lock()
	l, ok := s.locks[namespace]
	if !ok {
		l = &sync.Mutex{}
		s.locks[namespace] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Load returns the namespace's exhibitions. Stored data that cannot be parsed
// is treated as empty, and an empty list is replaced by a persisted default
// exhibition, so the result always has at least one element.
func (s *Store) Load(ctx context.Context, namespace string) ([]Exhibition, error) {
	defer s.lock(namespace)()
	return s.load(ctx, namespace)
}

func (s *Store) load(ctx context.Context, namespace string) ([]Exhibition, error) {
	var exs []Exhibition
	raw, err := s.storage.Get(ctx, namespace, Key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		exs, err = s.migrateLegacy(ctx, namespace)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("load exhibitions: %w", err)
	default:
		exs = s.parse(namespace, raw)
	}

	if len(exs) == 0 {
		exs = []Exhibition{{ID: s.newID(nil), Name: DefaultName, Artworks: []artwork.Artwork{}}}
		if err := s.save(ctx, namespace, exs); err != nil {
			return nil, err
		}
	}
	return exs, nil
}

func (s *Store) parse(namespace, raw string) []Exhibition {
	var exs []Exhibition
	if err := json.Unmarshal([]byte(raw), &exs); err != nil {
		s.logger.Warn("discarding unparseable exhibitions",
			zap.String("namespace", namespace),
			zap.Error(err),
		)
		return nil
	}
	for i := range exs {
		if exs[i].Artworks == nil {
			exs[i].Artworks = []artwork.Artwork{}
		}
	}
	return exs
}

// Save replaces the namespace's exhibitions.
func (s *Store) Save(ctx context.Context, namespace string, exs []Exhibition) error {
	defer s.lock(namespace)()
	return s.save(ctx, namespace, cloneAll(exs))
}

func (s *Store) save(ctx context.Context, namespace string, exs []Exhibition) error {
	if exs == nil {
		exs = []Exhibition{}
	}
	data, err := json.Marshal(exs)
	if err != nil {
		return fmt.Errorf("encode exhibitions: %w", err)
	}
	if err := s.storage.Set(ctx, namespace, Key, string(data)); err != nil {
		return fmt.Errorf("save exhibitions: %w", err)
	}
	return nil
}

func (s *Store) mutate(ctx context.Context, namespace string, fn func([]Exhibition) ([]Exhibition, error)) ([]Exhibition, error) {
	defer s.lock(namespace)()

	exs, err := s.load(ctx, namespace)
	if err != nil {
		return nil, err
	}
	next, err := fn(exs)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, namespace, next); err != nil {
		return nil, err
	}
	return cloneAll(next), nil
}

// AddArtwork saves a into exhibition id unless an artwork with the same
// identity is already there. An empty id changes nothing.
func (s *Store) AddArtwork(ctx context.Context, namespace string, id ID, a artwork.Artwork) ([]Exhibition, error) {
	if id == "" {
		return s.Load(ctx, namespace)
	}
	return s.mutate(ctx, namespace, func(exs []Exhibition) ([]Exhibition, error) {
		return AddArtwork(exs, id, a), nil
	})
}

// RemoveArtwork drops target from exhibition id only.
func (s *Store) RemoveArtwork(ctx context.Context, namespace string, id ID, target artwork.Identity) ([]Exhibition, error) {
	if id == "" {
		return s.Load(ctx, namespace)
	}
	return s.mutate(ctx, namespace, func(exs []Exhibition) ([]Exhibition, error) {
		return RemoveArtwork(exs, id, target), nil
	})
}

func (s *Store) IsSaved(ctx context.Context, namespace string, id ID, target artwork.Identity) (bool, error) {
	if id == "" {
		return false, nil
	}
	exs, err := s.Load(ctx, namespace)
	if err != nil {
		return false, err
	}
	return IsSaved(exs, id, target), nil
}

func (s *Store) Get(ctx context.Context, namespace string, id ID) (Exhibition, error) {
	exs, err := s.Load(ctx, namespace)
	if err != nil {
		return Exhibition{}, err
	}
	e, ok := Find(exs, id)
	if !ok {
		return Exhibition{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e, nil
}

// Create appends a new empty exhibition.
func (s *Store) Create(ctx context.Context, namespace, name string) (Exhibition, error) {
	name, err := checkName(name)
	if err != nil {
		return Exhibition{}, err
	}

	var created Exhibition
	_, err = s.mutate(ctx, namespace, func(exs []Exhibition) ([]Exhibition, error) {
		created = Exhibition{ID: s.newID(exs), Name: name, Artworks: []artwork.Artwork{}}
		return append(exs, created), nil
	})
	if err != nil {
		return Exhibition{}, err
	}
	return created, nil
}

func (s *Store) Rename(ctx context.Context, namespace string, id ID, name string) (Exhibition, error) {
	name, err := checkName(name)
	if err != nil {
		return Exhibition{}, err
	}

	var renamed Exhibition
	_, err = s.mutate(ctx, namespace, func(exs []Exhibition) ([]Exhibition, error) {
		for i := range exs {
			if exs[i].ID == id {
				exs[i].Name = name
				renamed = exs[i]
				return exs, nil
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	})
	if err != nil {
		return Exhibition{}, err
	}
	return renamed, nil
}

// Delete removes exhibition id. Deleting the last one leaves an empty list,
// which the next Load replaces with a fresh default.
func (s *Store) Delete(ctx context.Context, namespace string, id ID) error {
	_, err := s.mutate(ctx, namespace, func(exs []Exhibition) ([]Exhibition, error) {
		for i := range exs {
			if exs[i].ID == id {
				return append(exs[:i:i], exs[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	})
	return err
}

// newID returns the current time in milliseconds, bumped past any id in exs.
func (s *Store) newID(exs []Exhibition) ID {
	n := s.now().UnixMilli()
	for {
		id := ID(strconv.FormatInt(n, 10))
		if _, taken := Find(exs, id); !taken {
			return id
		}
		n++
	}
}

func checkName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return "", ErrInvalidName
	}
	return name, nil
}
