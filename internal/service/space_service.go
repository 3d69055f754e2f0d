package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"spaceexplorer/internal/clients"
	"spaceexplorer/internal/models"
	"spaceexplorer/internal/normalize"
	"spaceexplorer/internal/repository"
)

// SpaceService — трехуровневый read-through для четырех доменов:
// Redis -> Postgres (окно свежести) -> апстрим + нормализация + upsert.
// Успешный ответ — это либо кэш, либо свежая БД, либо только что
// загруженные данные; тихой отдачи устаревшего нет.
type SpaceService interface {
	GetAPOD(ctx context.Context, date string) (*models.APOD, error)
	GetAsteroids(ctx context.Context) ([]models.Asteroid, error)
	GetMarsWeather(ctx context.Context) ([]models.MarsWeatherSol, error)
	GetLaunches(ctx context.Context) ([]models.Launch, error)
}

type SpaceConfig struct {
	// Staleness — максимальный возраст записи в БД, который еще
	// считается свежим (для APOD не используется: прошлые даты не меняются).
	Staleness time.Duration
	// CacheTTL — TTL значений в Redis.
	CacheTTL time.Duration
	// LaunchPageSize — размер страницы предстоящих запусков.
	LaunchPageSize int
}

type spaceService struct {
	apodRepo     repository.APODRepository
	asteroidRepo repository.AsteroidRepository
	marsRepo     repository.MarsWeatherRepository
	launchRepo   repository.LaunchRepository
	cacheRepo    repository.CacheRepository
	nasaClient   clients.NASAClient
	launchClient clients.LaunchClient
	cfg          SpaceConfig
}

func NewSpaceService(
	apodRepo repository.APODRepository,
	asteroidRepo repository.AsteroidRepository,
	marsRepo repository.MarsWeatherRepository,
	launchRepo repository.LaunchRepository,
	cacheRepo repository.CacheRepository,
	nasaClient clients.NASAClient,
	launchClient clients.LaunchClient,
	cfg SpaceConfig,
) SpaceService {
	if cfg.Staleness <= 0 {
		cfg.Staleness = 24 * time.Hour
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	if cfg.LaunchPageSize <= 0 {
		cfg.LaunchPageSize = 20
	}
	return &spaceService{
		apodRepo:     apodRepo,
		asteroidRepo: asteroidRepo,
		marsRepo:     marsRepo,
		launchRepo:   launchRepo,
		cacheRepo:    cacheRepo,
		nasaClient:   nasaClient,
		launchClient: launchClient,
		cfg:          cfg,
	}
}

// GetAPOD кэшируется по запрошенной дате; пустая дата резолвится в
// сегодняшнюю по UTC. Наличие записи в БД за точную дату само по себе
// означает свежесть: контент прошлых дат не меняется.
func (s *spaceService) GetAPOD(ctx context.Context, date string) (*models.APOD, error) {
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	cacheKey := "nasa:apod:" + date

	var cached models.APOD
	if err := s.cacheRepo.GetJSON(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, repository.ErrCacheMiss) {
		log.Printf("APOD cache read failed: %v", err)
	}

	apod, err := s.apodRepo.GetByDate(ctx, date)
	if err == nil {
		s.cacheSet(ctx, cacheKey, apod)
		return apod, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("query APOD by date: %w", err)
	}

	payload, err := s.nasaClient.FetchAPOD(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	record, err := normalize.APOD(payload)
	if err != nil {
		return nil, err
	}

	if err := s.apodRepo.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("upsert APOD: %w", err)
	}

	// Перечитываем, чтобы отдать запись с ее ID
	stored, err := s.apodRepo.GetByDate(ctx, record.Date)
	if err != nil {
		return nil, fmt.Errorf("reload APOD: %w", err)
	}

	s.cacheSet(ctx, cacheKey, stored)
	return stored, nil
}

func (s *spaceService) GetAsteroids(ctx context.Context) ([]models.Asteroid, error) {
	const cacheKey = "nasa:asteroids"

	var cached []models.Asteroid
	if err := s.cacheRepo.GetJSON(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, repository.ErrCacheMiss) {
		log.Printf("asteroid cache read failed: %v", err)
	}

	since := time.Now().UTC().Add(-s.cfg.Staleness)
	items, err := s.asteroidRepo.GetFresh(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("query fresh asteroids: %w", err)
	}
	if len(items) > 0 {
		s.cacheSet(ctx, cacheKey, items)
		return items, nil
	}

	payload, err := s.nasaClient.FetchNEOFeed(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	records, err := normalize.Asteroids(payload)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: NEO feed returned no objects", ErrNoData)
	}

	if err := s.asteroidRepo.BulkUpsert(ctx, records); err != nil {
		return nil, fmt.Errorf("upsert asteroids: %w", err)
	}

	s.cacheSet(ctx, cacheKey, records)
	return records, nil
}

func (s *spaceService) GetMarsWeather(ctx context.Context) ([]models.MarsWeatherSol, error) {
	const cacheKey = "nasa:mars-weather"

	var cached []models.MarsWeatherSol
	if err := s.cacheRepo.GetJSON(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, repository.ErrCacheMiss) {
		log.Printf("mars weather cache read failed: %v", err)
	}

	since := time.Now().UTC().Add(-s.cfg.Staleness)
	items, err := s.marsRepo.GetFresh(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("query fresh mars weather: %w", err)
	}
	if len(items) > 0 {
		s.cacheSet(ctx, cacheKey, items)
		return items, nil
	}

	payload, err := s.nasaClient.FetchInsightWeather(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	records, err := normalize.MarsWeather(payload)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		// Фид жив, но sol_keys пуст — это не то же самое, что недоступность
		return nil, fmt.Errorf("%w: InSight reported no sols", ErrNoData)
	}

	if err := s.marsRepo.BulkUpsert(ctx, records); err != nil {
		return nil, fmt.Errorf("upsert mars weather: %w", err)
	}

	s.cacheSet(ctx, cacheKey, records)
	return records, nil
}

func (s *spaceService) GetLaunches(ctx context.Context) ([]models.Launch, error) {
	const cacheKey = "launches:upcoming"

	var cached []models.Launch
	if err := s.cacheRepo.GetJSON(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, repository.ErrCacheMiss) {
		log.Printf("launch cache read failed: %v", err)
	}

	since := time.Now().UTC().Add(-s.cfg.Staleness)
	items, err := s.launchRepo.GetFresh(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("query fresh launches: %w", err)
	}
	if len(items) > 0 {
		s.cacheSet(ctx, cacheKey, items)
		return items, nil
	}

	payload, err := s.launchClient.FetchUpcoming(ctx, s.cfg.LaunchPageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	records, err := normalize.Launches(payload)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no upcoming launches in feed", ErrNoData)
	}

	if err := s.launchRepo.BulkUpsert(ctx, records); err != nil {
		return nil, fmt.Errorf("upsert launches: %w", err)
	}

	s.cacheSet(ctx, cacheKey, records)
	return records, nil
}

// cacheSet не валит запрос из-за кэша: данные уже есть, Redis догонит.
func (s *spaceService) cacheSet(ctx context.Context, key string, value interface{}) {
	if err := s.cacheRepo.SetJSON(ctx, key, value, s.cfg.CacheTTL); err != nil {
		log.Printf("Failed to cache %s: %v", key, err)
	}
}
