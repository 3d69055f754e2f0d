package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"spaceexplorer/internal/models"
)

type APODRepository interface {
	Upsert(ctx context.Context, apod *models.APOD) error
	CreateIfAbsent(ctx context.Context, apod *models.APOD) error
	GetByDate(ctx context.Context, date string) (*models.APOD, error)
	GetByID(ctx context.Context, id uint) (*models.APOD, error)
}

type apodRepository struct {
	db *gorm.DB
}

func NewAPODRepository(db *gorm.DB) APODRepository {
	return &apodRepository{db: db}
}

// Upsert идемпотентен по date: повторная загрузка того же снимка
// переписывает не-ключевые поля целиком.
func (r *apodRepository) Upsert(ctx context.Context, apod *models.APOD) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "explanation", "url", "hdurl", "media_type", "copyright",
		}),
	}).Create(apod).Error
}

// CreateIfAbsent не трогает существующую запись: снимок за дату
// неизменяем, и данные из тела запроса не должны его переписывать.
func (r *apodRepository) CreateIfAbsent(ctx context.Context, apod *models.APOD) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoNothing: true,
	}).Create(apod).Error
}

func (r *apodRepository) GetByDate(ctx context.Context, date string) (*models.APOD, error) {
	var apod models.APOD
	if err := r.db.WithContext(ctx).First(&apod, "date = ?", date).Error; err != nil {
		return nil, err
	}
	return &apod, nil
}

func (r *apodRepository) GetByID(ctx context.Context, id uint) (*models.APOD, error) {
	var apod models.APOD
	if err := r.db.WithContext(ctx).First(&apod, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &apod, nil
}
