package catalog

import (
	"context"
	"errors"
	"time"
)

// DefaultBrowseLimit is how many games a search without a query returns.
const DefaultBrowseLimit = 10

// ErrNotFound is returned when no game has the requested id.
var ErrNotFound = errors.New("game not found")

// Repository is the read side of the Catalog Store. Every method returns
// games in id order.
type Repository interface {
	All(ctx context.Context) ([]Game, error)
	Get(ctx context.Context, id uint) (Game, error)
	Search(ctx context.Context, text string) ([]Game, error)
	Head(ctx context.Context, n int) ([]Game, error)
}

// QueryObserver receives the outcome of every repository call.
type QueryObserver interface {
	RecordQuery(op string, duration time.Duration, err error)
}

// Service implements the catalog queries on top of a Repository.
type Service struct {
	repo        Repository
	browseLimit int
	observer    QueryObserver
	now         func() time.Time
}

type Option func(*Service)

// WithBrowseLimit overrides how many games an empty search returns.
func WithBrowseLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.browseLimit = limit
		}
	}
}

func WithObserver(observer QueryObserver) Option {
	return func(s *Service) {
		s.observer = observer
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:        repo,
		browseLimit: DefaultBrowseLimit,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BrowseLimit returns the configured fallback size for empty searches.
func (s *Service) BrowseLimit() int {
	return s.browseLimit
}

// List returns every game.
func (s *Service) List(ctx context.Context) ([]Game, error) {
	start := s.now()
	games, err := s.repo.All(ctx)
	s.record("list", start, err)
	if err != nil {
		return nil, err
	}
	return nonNil(games), nil
}

// Get returns the game with the given id, or ErrNotFound.
func (s *Service) Get(ctx context.Context, id uint) (Game, error) {
	start := s.now()
	game, err := s.repo.Get(ctx, id)
	s.record("get", start, ignoreNotFound(err))
	return game, err
}

// Search returns every game whose name or description contains query.
// An empty query returns the first BrowseLimit games instead.
func (s *Service) Search(ctx context.Context, query string) ([]Game, error) {
	start := s.now()
	var (
		games []Game
		err   error
		op    = "search"
	)
	if query == "" {
		op = "browse"
		games, err = s.repo.Head(ctx, s.browseLimit)
	} else {
		games, err = s.repo.Search(ctx, query)
	}
	s.record(op, start, err)
	if err != nil {
		return nil, err
	}
	return nonNil(games), nil
}

func (s *Service) record(op string, start time.Time, err error) {
	if s.observer == nil {
		return
	}
	s.observer.RecordQuery(op, s.now().Sub(start), err)
}

func ignoreNotFound(err error) error {
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

func nonNil(games []Game) []Game {
	if games == nil {
		return []Game{}
	}
	return games
}
