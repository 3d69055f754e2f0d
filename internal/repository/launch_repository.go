package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"spaceexplorer/internal/models"
)

type LaunchRepository interface {
	BulkUpsert(ctx context.Context, items []models.Launch) error
	GetFresh(ctx context.Context, since time.Time) ([]models.Launch, error)
	Count(ctx context.Context) (int64, error)
}

type launchRepository struct {
	db *gorm.DB
}

func NewLaunchRepository(db *gorm.DB) LaunchRepository {
	return &launchRepository{db: db}
}

func (r *launchRepository) BulkUpsert(ctx context.Context, items []models.Launch) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range items {
			items[i].LastUpdated = now
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "external_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"name", "net", "status", "mission", "rocket",
					"pad", "agency", "last_updated",
				}),
			}).Create(&items[i]).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// GetFresh отдает свежие записи без уже состоявшихся запусков,
// по net по возрастанию — как контракт эндпоинта.
func (r *launchRepository) GetFresh(ctx context.Context, since time.Time) ([]models.Launch, error) {
	var items []models.Launch
	err := r.db.WithContext(ctx).
		Where("last_updated >= ? AND net >= ?", since, time.Now().UTC()).
		Order("net ASC").
		Find(&items).
		Error
	return items, err
}

func (r *launchRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Launch{}).Count(&count).Error
	return count, err
}
