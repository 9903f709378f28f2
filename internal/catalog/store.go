package catalog

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
)

// Store owns the current catalog snapshot. Readers get an immutable
// snapshot; Reload is the only way to replace it.
type Store struct {
	dir     string
	logger  *zap.Logger
	current atomic.Pointer[Catalog]
}

// NewStore loads dir and returns a store holding it
func NewStore(ctx context.Context, dir string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{dir: dir, logger: logger}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStaticStore wraps an already built catalog. Reload is a no-op.
func NewStaticStore(c *Catalog) *Store {
	s := &Store{logger: zap.NewNop()}
	s.current.Store(c)
	return s
}

// Current returns the snapshot in use
func (s *Store) Current() *Catalog {
	return s.current.Load()
}

// Dir is the data directory the store loads from
func (s *Store) Dir() string {
	return s.dir
}

// Reload reads the data directory again and swaps the snapshot in. On
// failure the previous snapshot stays in place.
func (s *Store) Reload(ctx context.Context) error {
	if s.dir == "" {
		return nil
	}
	c, err := Load(ctx, s.dir)
	if err != nil {
		s.logger.Warn("catalog load failed", zap.String("dir", s.dir), zap.Error(err))
		return err
	}
	s.current.Store(c)
	s.logger.Info("catalog loaded",
		zap.String("dir", s.dir),
		zap.Int("cards", len(c.Cards)),
		zap.Int("sets", len(c.Sets)),
		zap.Int("news", len(c.News)))
	return nil
}
