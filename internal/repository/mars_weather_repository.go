package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"spaceexplorer/internal/models"
)

type MarsWeatherRepository interface {
	BulkUpsert(ctx context.Context, items []models.MarsWeatherSol) error
	GetFresh(ctx context.Context, since time.Time) ([]models.MarsWeatherSol, error)
	Count(ctx context.Context) (int64, error)
}

type marsWeatherRepository struct {
	db *gorm.DB
}

func NewMarsWeatherRepository(db *gorm.DB) MarsWeatherRepository {
	return &marsWeatherRepository{db: db}
}

func (r *marsWeatherRepository) BulkUpsert(ctx context.Context, items []models.MarsWeatherSol) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range items {
			items[i].LastUpdated = now
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "sol"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"avg_temp", "min_temp", "max_temp", "avg_wind_speed",
					"max_wind_speed", "avg_pressure", "wind_direction",
					"season", "first_utc", "last_utc", "last_updated",
				}),
			}).Create(&items[i]).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *marsWeatherRepository) GetFresh(ctx context.Context, since time.Time) ([]models.MarsWeatherSol, error) {
	var items []models.MarsWeatherSol
	err := r.db.WithContext(ctx).
		Where("last_updated >= ?", since).
		Order("sol ASC").
		Find(&items).
		Error
	return items, err
}

func (r *marsWeatherRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.MarsWeatherSol{}).Count(&count).Error
	return count, err
}
