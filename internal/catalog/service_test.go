package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRepo struct {
	err error
}

func (r failingRepo) All(context.Context) ([]Game, error)            { return nil, r.err }
func (r failingRepo) Get(context.Context, uint) (Game, error)        { return Game{}, r.err }
func (r failingRepo) Search(context.Context, string) ([]Game, error) { return nil, r.err }
func (r failingRepo) Head(context.Context, int) ([]Game, error)      { return nil, r.err }

type nilRepo struct{}

func (nilRepo) All(context.Context) ([]Game, error)            { return nil, nil }
func (nilRepo) Get(context.Context, uint) (Game, error)        { return Game{}, ErrNotFound }
func (nilRepo) Search(context.Context, string) ([]Game, error) { return nil, nil }
func (nilRepo) Head(context.Context, int) ([]Game, error)      { return nil, nil }

type queryCall struct {
	op  string
	err error
}

type recordingObserver struct {
	calls []queryCall
}

func (o *recordingObserver) RecordQuery(op string, _ time.Duration, err error) {
	o.calls = append(o.calls, queryCall{op: op, err: err})
}

func TestServiceList(t *testing.T) {
	svc := NewService(newSeededStore(t))
	games, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, games, 5)
}

func TestServiceListEmptyStoreReturnsEmptySlice(t *testing.T) {
	svc := NewService(nilRepo{})
	games, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, games)
	assert.Empty(t, games)

	games, err = svc.Search(context.Background(), "anything")
	require.NoError(t, err)
	assert.NotNil(t, games)
}

func TestServiceGet(t *testing.T) {
	svc := NewService(newSeededStore(t))
	game, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Azul", game.Name)
	assert.Equal(t, 2, game.MinPlayers)
	assert.Equal(t, 4, game.MaxPlayers)
	assert.Equal(t, "4.20", game.AvgRating.String())

	_, err = svc.Get(context.Background(), 9999)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestServiceSearchFallsBackToBrowse(t *testing.T) {
	store := NewMemoryStore()
	for i := 0; i < 15; i++ {
		_, err := store.Insert(Game{Name: "Game " + string(rune('A'+i))})
		require.NoError(t, err)
	}
	svc := NewService(store)

	browse, err := svc.Search(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, browse, DefaultBrowseLimit)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, all[:DefaultBrowseLimit], browse)
}

func TestServiceSearchWithQueryIsUnbounded(t *testing.T) {
	store := NewMemoryStore()
	for i := 0; i < 15; i++ {
		_, err := store.Insert(Game{Name: "Deck builder", Description: StringPtr("cards")})
		require.NoError(t, err)
	}
	svc := NewService(store, WithBrowseLimit(3))
	assert.Equal(t, 3, svc.BrowseLimit())

	found, err := svc.Search(context.Background(), "deck")
	require.NoError(t, err)
	assert.Len(t, found, 15)

	browse, err := svc.Search(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, browse, 3)
}

func TestServiceWithBrowseLimitIgnoresNonPositive(t *testing.T) {
	svc := NewService(nilRepo{}, WithBrowseLimit(0))
	assert.Equal(t, DefaultBrowseLimit, svc.BrowseLimit())
}

func TestServicePropagatesStorageErrors(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewService(failingRepo{err: boom})

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, boom)
	_, err = svc.Get(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
	_, err = svc.Search(context.Background(), "")
	assert.ErrorIs(t, err, boom)
	_, err = svc.Search(context.Background(), "azul")
	assert.ErrorIs(t, err, boom)
}

func TestServiceReportsQueriesToObserver(t *testing.T) {
	observer := &recordingObserver{}
	svc := NewService(newSeededStore(t), WithObserver(observer))

	_, _ = svc.List(context.Background())
	_, _ = svc.Get(context.Background(), 9999)
	_, _ = svc.Search(context.Background(), "")
	_, _ = svc.Search(context.Background(), "azul")

	require.Len(t, observer.calls, 4)
	assert.Equal(t, "list", observer.calls[0].op)
	assert.Equal(t, "get", observer.calls[1].op)
	assert.NoError(t, observer.calls[1].err, "not found is not a query failure")
	assert.Equal(t, "browse", observer.calls[2].op)
	assert.Equal(t, "search", observer.calls[3].op)
}
