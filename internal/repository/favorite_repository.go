package repository

import (
	"context"

	"gorm.io/gorm"

	"spaceexplorer/internal/models"
)

type FavoriteRepository interface {
	Create(ctx context.Context, favorite *models.Favorite) error
	GetByUserAndAPOD(ctx context.Context, userID, apodID uint) (*models.Favorite, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Favorite, error)
	Delete(ctx context.Context, userID, apodID uint) (int64, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Create(ctx context.Context, favorite *models.Favorite) error {
	return r.db.WithContext(ctx).Create(favorite).Error
}

func (r *favoriteRepository) GetByUserAndAPOD(ctx context.Context, userID, apodID uint) (*models.Favorite, error) {
	var favorite models.Favorite
	err := r.db.WithContext(ctx).
		Preload("APOD").
		First(&favorite, "user_id = ? AND apod_id = ?", userID, apodID).
		Error
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID uint) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := r.db.WithContext(ctx).
		Preload("APOD").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&favorites).
		Error
	return favorites, err
}

// Delete возвращает число удаленных строк: 0 означает, что пары не было.
func (r *favoriteRepository) Delete(ctx context.Context, userID, apodID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND apod_id = ?", userID, apodID).
		Delete(&models.Favorite{})
	return result.RowsAffected, result.Error
}
