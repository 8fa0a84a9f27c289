package db

import (
	"encoding/json"
	"fmt"
	"time"

	"tablegames/internal/catalog"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Game is a row of the games table.
type Game struct {
	ID            uint            `gorm:"primaryKey"`
	Name          string          `gorm:"size:255;not null"`
	Description   *string         `gorm:"type:text"`
	ImageURL      *string         `gorm:"size:255"`
	Metadata      datatypes.JSON  `gorm:"column:metadata"`
	MinPlayers    int             `gorm:"not null;default:1"`
	MaxPlayers    int             `gorm:"not null;default:8"`
	PlayTime      *int            `gorm:"column:play_time"`
	AvgRating     decimal.Decimal `gorm:"type:decimal(3,2);not null;default:0"`
	YearPublished *int            `gorm:"column:year_published"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

func (g Game) toCatalog() (catalog.Game, error) {
	meta, err := catalog.ParseMetadata(g.Metadata)
	if err != nil {
		return catalog.Game{}, fmt.Errorf("game %d: %w", g.ID, err)
	}
	return catalog.Game{
		ID:            g.ID,
		Name:          g.Name,
		Description:   g.Description,
		ImageURL:      g.ImageURL,
		Metadata:      meta,
		MinPlayers:    g.MinPlayers,
		MaxPlayers:    g.MaxPlayers,
		PlayTime:      g.PlayTime,
		AvgRating:     catalog.RatingFromDecimal(g.AvgRating),
		YearPublished: g.YearPublished,
		CreatedAt:     g.CreatedAt.UTC(),
		UpdatedAt:     g.UpdatedAt.UTC(),
	}, nil
}

func toCatalogGames(rows []Game) ([]catalog.Game, error) {
	games := make([]catalog.Game, 0, len(rows))
	for _, row := range rows {
		game, err := row.toCatalog()
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	return games, nil
}

// newGameRow builds an insertable row. Id and timestamps are left for the
// database and gorm to assign.
func newGameRow(game catalog.Game) (Game, error) {
	row := Game{
		Name:          game.Name,
		Description:   game.Description,
		ImageURL:      game.ImageURL,
		MinPlayers:    game.MinPlayers,
		MaxPlayers:    game.MaxPlayers,
		PlayTime:      game.PlayTime,
		AvgRating:     game.AvgRating.Decimal(),
		YearPublished: game.YearPublished,
	}
	if game.Metadata != nil {
		encoded, err := json.Marshal(game.Metadata)
		if err != nil {
			return Game{}, fmt.Errorf("encode metadata for %q: %w", game.Name, err)
		}
		row.Metadata = datatypes.JSON(encoded)
	}
	return row, nil
}
