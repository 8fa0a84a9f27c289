package db

import (
	"context"
	"errors"
	"fmt"

	"tablegames/internal/catalog"

	"gorm.io/gorm"
)

// SeedGames inserts every game whose name is not already present and returns
// how many rows were created.
func SeedGames(ctx context.Context, conn *gorm.DB, games []catalog.Game) (int, error) {
	if conn == nil {
		return 0, errors.New("db connection is nil")
	}
	inserted := 0
	for _, game := range games {
		row, err := newGameRow(game)
		if err != nil {
			return inserted, err
		}
		var existing int64
		if err := conn.WithContext(ctx).Model(&Game{}).Where("name = ?", row.Name).Count(&existing).Error; err != nil {
			return inserted, err
		}
		if existing > 0 {
			continue
		}
		if err := conn.WithContext(ctx).Create(&row).Error; err != nil {
			return inserted, fmt.Errorf("insert %q: %w", row.Name, err)
		}
		inserted++
	}
	return inserted, nil
}
