package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/gorm"

	"spaceexplorer/internal/models"
	"spaceexplorer/internal/repository"
	"spaceexplorer/internal/utils"
)

// APODInput — данные снимка из тела запроса на добавление в избранное.
type APODInput struct {
	Date        string
	Title       string
	Explanation string
	URL         string
	HDURL       string
	MediaType   string
	Copyright   string
}

type FavoriteService interface {
	AddFavorite(ctx context.Context, userID uint, input APODInput) (*models.Favorite, error)
	ListFavorites(ctx context.Context, userID uint) ([]models.Favorite, error)
	RemoveFavorite(ctx context.Context, userID, apodID uint) error
	ExportFavorites(ctx context.Context, userID uint) (string, error)
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	apodRepo     repository.APODRepository
	exportDir    string
}

func NewFavoriteService(
	favoriteRepo repository.FavoriteRepository,
	apodRepo repository.APODRepository,
	exportDir string,
) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		apodRepo:     apodRepo,
		exportDir:    exportDir,
	}
}

// AddFavorite идемпотентен: повторный вызов для той же пары (user, apod)
// возвращает существующую запись. APOD по дате создается, только если его
// еще нет: тело запроса не может переписать уже сохраненный снимок.
func (s *favoriteService) AddFavorite(ctx context.Context, userID uint, input APODInput) (*models.Favorite, error) {
	mediaType := input.MediaType
	if mediaType == "" {
		mediaType = "image"
	}

	apod := &models.APOD{
		Date:        input.Date,
		Title:       input.Title,
		Explanation: input.Explanation,
		URL:         input.URL,
		HDURL:       input.HDURL,
		MediaType:   mediaType,
		Copyright:   input.Copyright,
	}
	if err := s.apodRepo.CreateIfAbsent(ctx, apod); err != nil {
		return nil, fmt.Errorf("ensure APOD: %w", err)
	}

	stored, err := s.apodRepo.GetByDate(ctx, input.Date)
	if err != nil {
		return nil, fmt.Errorf("reload APOD: %w", err)
	}

	existing, err := s.favoriteRepo.GetByUserAndAPOD(ctx, userID, stored.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("query favorite: %w", err)
	}

	favorite := &models.Favorite{
		UserID: userID,
		APODID: stored.ID,
	}
	if err := s.favoriteRepo.Create(ctx, favorite); err != nil {
		// Гонка двух одинаковых запросов: уникальный индекс сработал,
		// перечитываем существующую запись
		if again, getErr := s.favoriteRepo.GetByUserAndAPOD(ctx, userID, stored.ID); getErr == nil {
			return again, nil
		}
		return nil, fmt.Errorf("create favorite: %w", err)
	}

	favorite.APOD = *stored
	return favorite, nil
}

func (s *favoriteService) ListFavorites(ctx context.Context, userID uint) ([]models.Favorite, error) {
	favorites, err := s.favoriteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return favorites, nil
}

func (s *favoriteService) RemoveFavorite(ctx context.Context, userID, apodID uint) error {
	rows, err := s.favoriteRepo.Delete(ctx, userID, apodID)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: favorite for apod %d", ErrNotFound, apodID)
	}
	return nil
}

// ExportFavorites пишет избранное пользователя в .xlsx и возвращает путь.
func (s *favoriteService) ExportFavorites(ctx context.Context, userID uint) (string, error) {
	favorites, err := s.favoriteRepo.ListByUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("list favorites: %w", err)
	}
	if len(favorites) == 0 {
		return "", fmt.Errorf("%w: user %d has no favorites", ErrNoData, userID)
	}

	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	filename := fmt.Sprintf("favorites_%d_%s.xlsx", userID, time.Now().UTC().Format("20060102_150405"))
	path := filepath.Join(s.exportDir, filename)

	if err := utils.WriteFavoritesExcel(path, favorites); err != nil {
		return "", fmt.Errorf("write excel: %w", err)
	}

	return path, nil
}
