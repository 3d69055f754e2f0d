package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"spaceexplorer/internal/models"
)

type AsteroidRepository interface {
	BulkUpsert(ctx context.Context, items []models.Asteroid) error
	GetFresh(ctx context.Context, since time.Time) ([]models.Asteroid, error)
	Count(ctx context.Context) (int64, error)
}

type asteroidRepository struct {
	db *gorm.DB
}

func NewAsteroidRepository(db *gorm.DB) AsteroidRepository {
	return &asteroidRepository{db: db}
}

// BulkUpsert пишет по одной записи в транзакции: ON CONFLICT по
// neo_reference_id, последняя запись в пакете выигрывает при дублях.
// last_updated проставляется только здесь.
func (r *asteroidRepository) BulkUpsert(ctx context.Context, items []models.Asteroid) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range items {
			items[i].LastUpdated = now
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "neo_reference_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"name", "max_diameter_meters", "is_hazardous",
					"close_approach_date", "miss_distance_km", "last_updated",
				}),
			}).Create(&items[i]).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *asteroidRepository) GetFresh(ctx context.Context, since time.Time) ([]models.Asteroid, error) {
	var items []models.Asteroid
	err := r.db.WithContext(ctx).
		Where("last_updated >= ?", since).
		Order("close_approach_date ASC, neo_reference_id ASC").
		Find(&items).
		Error
	return items, err
}

func (r *asteroidRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Asteroid{}).Count(&count).Error
	return count, err
}
