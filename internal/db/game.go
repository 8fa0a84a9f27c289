package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tablegames/internal/catalog"

	"gorm.io/gorm"
)

const searchClause = `LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// GameStore serves catalog queries from the games table.
type GameStore struct {
	conn *gorm.DB
}

func NewGameStore(conn *gorm.DB) *GameStore {
	return &GameStore{conn: conn}
}

func (s *GameStore) All(ctx context.Context) ([]catalog.Game, error) {
	var rows []Game
	if err := s.conn.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return toCatalogGames(rows)
}

func (s *GameStore) Get(ctx context.Context, id uint) (catalog.Game, error) {
	var row Game
	if err := s.conn.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalog.Game{}, catalog.ErrNotFound
		}
		return catalog.Game{}, fmt.Errorf("get game %d: %w", id, err)
	}
	return row.toCatalog()
}

// Search matches text case-insensitively against name and description.
// LIKE wildcards in text are matched literally.
func (s *GameStore) Search(ctx context.Context, text string) ([]catalog.Game, error) {
	pattern := likePattern(text)
	var rows []Game
	if err := s.conn.WithContext(ctx).Where(searchClause, pattern, pattern).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("search games: %w", err)
	}
	return toCatalogGames(rows)
}

func (s *GameStore) Head(ctx context.Context, n int) ([]catalog.Game, error) {
	if n <= 0 {
		return []catalog.Game{}, nil
	}
	var rows []Game
	if err := s.conn.WithContext(ctx).Order("id").Limit(n).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("head games: %w", err)
	}
	return toCatalogGames(rows)
}

// Ping reports whether the database is reachable.
func (s *GameStore) Ping(ctx context.Context) error {
	return Ping(ctx, s.conn)
}

func likePattern(text string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(text)) + "%"
}
