package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	"spaceexplorer/internal/clients"
	"spaceexplorer/internal/models"
	"spaceexplorer/internal/repository"
)

// Ин-мемори фейки коллабораторов со счетчиками вызовов.

type fakeCache struct {
	data     map[string]string
	getCalls int
	setCalls int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	f.getCalls++
	val, ok := f.data[key]
	if !ok {
		return "", repository.ErrCacheMiss
	}
	return val, nil
}

func (f *fakeCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	f.setCalls++
	f.data[key] = value
	return nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func (f *fakeCache) Exists(_ context.Context, key string) (bool, error) {
	_, ok := f.data[key]
	return ok, nil
}

func (f *fakeCache) GetJSON(_ context.Context, key string, dest interface{}) error {
	f.getCalls++
	val, ok := f.data[key]
	if !ok {
		return repository.ErrCacheMiss
	}
	return json.Unmarshal([]byte(val), dest)
}

func (f *fakeCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	f.setCalls++
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = string(data)
	return nil
}

func (f *fakeCache) seedJSON(key string, value interface{}) {
	data, _ := json.Marshal(value)
	f.data[key] = string(data)
}

type fakeAPODRepo struct {
	byDate  map[string]*models.APOD
	nextID  uint
	upserts int
	creates int
}

func newFakeAPODRepo() *fakeAPODRepo {
	return &fakeAPODRepo{byDate: make(map[string]*models.APOD)}
}

func (f *fakeAPODRepo) Upsert(_ context.Context, apod *models.APOD) error {
	f.upserts++
	if existing, ok := f.byDate[apod.Date]; ok {
		id := existing.ID
		clone := *apod
		clone.ID = id
		f.byDate[apod.Date] = &clone
		return nil
	}
	f.nextID++
	clone := *apod
	clone.ID = f.nextID
	f.byDate[apod.Date] = &clone
	return nil
}

func (f *fakeAPODRepo) CreateIfAbsent(_ context.Context, apod *models.APOD) error {
	f.creates++
	if _, ok := f.byDate[apod.Date]; ok {
		return nil
	}
	f.nextID++
	clone := *apod
	clone.ID = f.nextID
	f.byDate[apod.Date] = &clone
	return nil
}

func (f *fakeAPODRepo) GetByDate(_ context.Context, date string) (*models.APOD, error) {
	apod, ok := f.byDate[date]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *apod
	return &clone, nil
}

func (f *fakeAPODRepo) GetByID(_ context.Context, id uint) (*models.APOD, error) {
	for _, apod := range f.byDate {
		if apod.ID == id {
			clone := *apod
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeAsteroidRepo struct {
	records     map[string]models.Asteroid
	freshCalls  int
	upsertCalls int
}

func newFakeAsteroidRepo() *fakeAsteroidRepo {
	return &fakeAsteroidRepo{records: make(map[string]models.Asteroid)}
}

func (f *fakeAsteroidRepo) BulkUpsert(_ context.Context, items []models.Asteroid) error {
	f.upsertCalls++
	now := time.Now().UTC()
	for i := range items {
		items[i].LastUpdated = now
		f.records[items[i].NeoReferenceID] = items[i]
	}
	return nil
}

func (f *fakeAsteroidRepo) GetFresh(_ context.Context, since time.Time) ([]models.Asteroid, error) {
	f.freshCalls++
	var items []models.Asteroid
	for _, item := range f.records {
		if !item.LastUpdated.Before(since) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CloseApproachDate != items[j].CloseApproachDate {
			return items[i].CloseApproachDate < items[j].CloseApproachDate
		}
		return items[i].NeoReferenceID < items[j].NeoReferenceID
	})
	return items, nil
}

func (f *fakeAsteroidRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.records)), nil
}

type fakeMarsRepo struct {
	records     map[int]models.MarsWeatherSol
	freshCalls  int
	upsertCalls int
}

func newFakeMarsRepo() *fakeMarsRepo {
	return &fakeMarsRepo{records: make(map[int]models.MarsWeatherSol)}
}

func (f *fakeMarsRepo) BulkUpsert(_ context.Context, items []models.MarsWeatherSol) error {
	f.upsertCalls++
	now := time.Now().UTC()
	for i := range items {
		items[i].LastUpdated = now
		f.records[items[i].Sol] = items[i]
	}
	return nil
}

func (f *fakeMarsRepo) GetFresh(_ context.Context, since time.Time) ([]models.MarsWeatherSol, error) {
	f.freshCalls++
	var items []models.MarsWeatherSol
	for _, item := range f.records {
		if !item.LastUpdated.Before(since) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Sol < items[j].Sol })
	return items, nil
}

func (f *fakeMarsRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.records)), nil
}

type fakeLaunchRepo struct {
	records     map[string]models.Launch
	freshCalls  int
	upsertCalls int
}

func newFakeLaunchRepo() *fakeLaunchRepo {
	return &fakeLaunchRepo{records: make(map[string]models.Launch)}
}

func (f *fakeLaunchRepo) BulkUpsert(_ context.Context, items []models.Launch) error {
	f.upsertCalls++
	now := time.Now().UTC()
	for i := range items {
		items[i].LastUpdated = now
		f.records[items[i].ExternalID] = items[i]
	}
	return nil
}

func (f *fakeLaunchRepo) GetFresh(_ context.Context, since time.Time) ([]models.Launch, error) {
	f.freshCalls++
	now := time.Now().UTC()
	var items []models.Launch
	for _, item := range f.records {
		if !item.LastUpdated.Before(since) && !item.Net.Before(now) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Net.Before(items[j].Net) })
	return items, nil
}

func (f *fakeLaunchRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.records)), nil
}

type fakeNASAClient struct {
	apod    *clients.APODPayload
	neo     *clients.NEOFeedPayload
	insight *clients.InsightPayload
	err     error

	apodCalls    int
	neoCalls     int
	insightCalls int
}

func (f *fakeNASAClient) FetchAPOD(_ context.Context, _ string) (*clients.APODPayload, error) {
	f.apodCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.apod, nil
}

func (f *fakeNASAClient) FetchNEOFeed(_ context.Context) (*clients.NEOFeedPayload, error) {
	f.neoCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.neo, nil
}

func (f *fakeNASAClient) FetchInsightWeather(_ context.Context) (*clients.InsightPayload, error) {
	f.insightCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.insight, nil
}

type fakeLaunchClient struct {
	page  *clients.LaunchPage
	err   error
	calls int
}

func (f *fakeLaunchClient) FetchUpcoming(_ context.Context, _ int) (*clients.LaunchPage, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

type fakeFavoriteRepo struct {
	items  map[[2]uint]*models.Favorite
	nextID uint
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{items: make(map[[2]uint]*models.Favorite)}
}

func (f *fakeFavoriteRepo) Create(_ context.Context, favorite *models.Favorite) error {
	key := [2]uint{favorite.UserID, favorite.APODID}
	if _, ok := f.items[key]; ok {
		return errors.New("duplicate key value violates unique constraint")
	}
	f.nextID++
	favorite.ID = f.nextID
	favorite.CreatedAt = time.Now().UTC()
	clone := *favorite
	f.items[key] = &clone
	return nil
}

func (f *fakeFavoriteRepo) GetByUserAndAPOD(_ context.Context, userID, apodID uint) (*models.Favorite, error) {
	favorite, ok := f.items[[2]uint{userID, apodID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *favorite
	return &clone, nil
}

func (f *fakeFavoriteRepo) ListByUser(_ context.Context, userID uint) ([]models.Favorite, error) {
	var favorites []models.Favorite
	for key, favorite := range f.items {
		if key[0] == userID {
			favorites = append(favorites, *favorite)
		}
	}
	sort.Slice(favorites, func(i, j int) bool {
		if favorites[i].CreatedAt.Equal(favorites[j].CreatedAt) {
			return favorites[i].ID < favorites[j].ID
		}
		return favorites[i].CreatedAt.Before(favorites[j].CreatedAt)
	})
	return favorites, nil
}

func (f *fakeFavoriteRepo) Delete(_ context.Context, userID, apodID uint) (int64, error) {
	key := [2]uint{userID, apodID}
	if _, ok := f.items[key]; !ok {
		return 0, nil
	}
	delete(f.items, key)
	return 1, nil
}

type fakeUserRepo struct {
	byUsername map[string]*models.User
	nextID     uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byUsername: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.nextID++
	user.ID = f.nextID
	clone := *user
	f.byUsername[user.Username] = &clone
	return nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	user, ok := f.byUsername[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	for _, user := range f.byUsername {
		if user.ID == id {
			clone := *user
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
