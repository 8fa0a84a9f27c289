package catalog

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps the catalog in memory. It backs the service when no
// database is configured.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID uint
	games  map[uint]Game
	now    func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID: 1,
		games:  make(map[uint]Game),
		now:    timeNowUTC,
	}
}

// Insert stores a new game. The id and timestamps are assigned here and any
// values on the argument are ignored.
func (s *MemoryStore) Insert(game Game) (Game, error) {
	if game.Name == "" {
		return Game{}, errors.New("name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	game.ID = s.nextID
	s.nextID++
	if game.MinPlayers == 0 {
		game.MinPlayers = DefaultMinPlayers
	}
	if game.MaxPlayers == 0 {
		game.MaxPlayers = DefaultMaxPlayers
	}
	now := s.now()
	game.CreatedAt = now
	game.UpdatedAt = now
	s.games[game.ID] = game
	return game, nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

func (s *MemoryStore) All(ctx context.Context) ([]Game, error) {
	return s.collect(ctx, 0, func(Game) bool { return true })
}

func (s *MemoryStore) Get(ctx context.Context, id uint) (Game, error) {
	if err := ctx.Err(); err != nil {
		return Game{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return Game{}, ErrNotFound
	}
	return game, nil
}

func (s *MemoryStore) Search(ctx context.Context, text string) ([]Game, error) {
	return s.collect(ctx, 0, func(game Game) bool { return game.Matches(text) })
}

func (s *MemoryStore) Head(ctx context.Context, n int) ([]Game, error) {
	if n <= 0 {
		return []Game{}, ctx.Err()
	}
	return s.collect(ctx, n, func(Game) bool { return true })
}

func (s *MemoryStore) collect(ctx context.Context, limit int, keep func(Game) bool) ([]Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	ids := make([]uint, 0, len(s.games))
	for id := range s.games {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	list := make([]Game, 0, len(ids))
	for _, id := range ids {
		game := s.games[id]
		if !keep(game) {
			continue
		}
		list = append(list, game)
		if limit > 0 && len(list) == limit {
			break
		}
	}
	s.mu.RUnlock()
	return list, nil
}

func timeNowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
