package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spaceexplorer/internal/clients"
	"spaceexplorer/internal/models"
)

type spaceFixture struct {
	apodRepo     *fakeAPODRepo
	asteroidRepo *fakeAsteroidRepo
	marsRepo     *fakeMarsRepo
	launchRepo   *fakeLaunchRepo
	cache        *fakeCache
	nasa         *fakeNASAClient
	launch       *fakeLaunchClient
	service      SpaceService
}

func newSpaceFixture() *spaceFixture {
	f := &spaceFixture{
		apodRepo:     newFakeAPODRepo(),
		asteroidRepo: newFakeAsteroidRepo(),
		marsRepo:     newFakeMarsRepo(),
		launchRepo:   newFakeLaunchRepo(),
		cache:        newFakeCache(),
		nasa:         &fakeNASAClient{},
		launch:       &fakeLaunchClient{},
	}
	f.service = NewSpaceService(
		f.apodRepo, f.asteroidRepo, f.marsRepo, f.launchRepo,
		f.cache, f.nasa, f.launch,
		SpaceConfig{Staleness: 24 * time.Hour, CacheTTL: 24 * time.Hour, LaunchPageSize: 20},
	)
	return f
}

func neoFeedFixture() *clients.NEOFeedPayload {
	var objA, objB clients.NEOObject
	objA.NeoReferenceID = "3542519"
	objA.Name = "(2010 PK9)"
	objA.EstimatedDiameter.Meters.Max = 283.5
	objA.IsPotentiallyHazardous = true
	objA.CloseApproachData = []clients.NEOCloseApproach{{CloseApproachDate: "2026-08-30"}}
	objA.CloseApproachData[0].MissDistance.Kilometers = "4567890.123"

	objB.NeoReferenceID = "2465633"
	objB.Name = "465633 (2009 JR5)"
	objB.EstimatedDiameter.Meters.Max = 497.2
	objB.CloseApproachData = []clients.NEOCloseApproach{{CloseApproachDate: "2026-08-31"}}
	objB.CloseApproachData[0].MissDistance.Kilometers = "71234567.89"

	return &clients.NEOFeedPayload{
		ElementCount: 2,
		NearEarthObjects: map[string][]clients.NEOObject{
			"2026-08-30": {objA},
			"2026-08-31": {objB},
		},
	}
}

func TestGetAsteroidsCacheHitSkipsStoreAndUpstream(t *testing.T) {
	f := newSpaceFixture()
	f.cache.seedJSON("nasa:asteroids", []models.Asteroid{
		{NeoReferenceID: "3542519", Name: "(2010 PK9)"},
	})

	items, err := f.service.GetAsteroids(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "3542519", items[0].NeoReferenceID)

	assert.Zero(t, f.asteroidRepo.freshCalls, "store must not be queried on cache hit")
	assert.Zero(t, f.nasa.neoCalls, "upstream must not be called on cache hit")
}

func TestGetAsteroidsFreshStoreSkipsUpstream(t *testing.T) {
	f := newSpaceFixture()
	f.asteroidRepo.records["3542519"] = models.Asteroid{
		NeoReferenceID: "3542519",
		Name:           "(2010 PK9)",
		LastUpdated:    time.Now().UTC().Add(-1 * time.Hour),
	}

	items, err := f.service.GetAsteroids(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Zero(t, f.nasa.neoCalls, "fresh store record must short-circuit upstream")
	assert.Equal(t, 1, f.cache.setCalls, "fast cache must be repopulated from the store")
}

func TestGetAsteroidsStaleStoreHitsUpstream(t *testing.T) {
	f := newSpaceFixture()
	f.asteroidRepo.records["3542519"] = models.Asteroid{
		NeoReferenceID: "3542519",
		Name:           "(2010 PK9)",
		LastUpdated:    time.Now().UTC().Add(-25 * time.Hour),
	}
	f.nasa.neo = neoFeedFixture()

	items, err := f.service.GetAsteroids(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, 1, f.nasa.neoCalls, "stale store record must trigger upstream fetch")
	assert.Equal(t, 1, f.asteroidRepo.upsertCalls)
}

func TestGetAsteroidsUpstreamErrorLeavesCacheUnset(t *testing.T) {
	f := newSpaceFixture()
	f.nasa.err = errors.New("connection refused")

	_, err := f.service.GetAsteroids(context.Background())
	require.ErrorIs(t, err, ErrUpstreamUnavailable)

	assert.Zero(t, f.cache.setCalls, "fast cache must stay unset after upstream failure")
	assert.NotContains(t, f.cache.data, "nasa:asteroids")
	assert.Empty(t, f.asteroidRepo.records, "store must stay untouched after upstream failure")
}

func TestGetAsteroidsUpsertIdempotence(t *testing.T) {
	f := newSpaceFixture()
	f.nasa.neo = neoFeedFixture()

	first, err := f.service.GetAsteroids(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 2)
	firstUpdated := f.asteroidRepo.records["3542519"].LastUpdated

	// Форсируем полный промах и повторную загрузку того же фида
	delete(f.cache.data, "nasa:asteroids")
	for key, record := range f.asteroidRepo.records {
		record.LastUpdated = time.Now().UTC().Add(-25 * time.Hour)
		f.asteroidRepo.records[key] = record
	}

	second, err := f.service.GetAsteroids(context.Background())
	require.NoError(t, err)
	require.Len(t, second, 2)

	require.Len(t, f.asteroidRepo.records, 2, "re-fetch must not create duplicates")
	refreshed := f.asteroidRepo.records["3542519"]
	assert.Equal(t, "(2010 PK9)", refreshed.Name)
	assert.Equal(t, 283.5, refreshed.MaxDiameterMeters)
	assert.True(t, refreshed.LastUpdated.After(firstUpdated.Add(-time.Second)) &&
		!refreshed.LastUpdated.Before(firstUpdated), "last_updated must advance, other fields unchanged")
}

func TestGetAsteroidsSameOrderFromUpstreamAndStore(t *testing.T) {
	f := newSpaceFixture()
	f.nasa.neo = neoFeedFixture()

	fetched, err := f.service.GetAsteroids(context.Background())
	require.NoError(t, err)
	require.Len(t, fetched, 2)

	// Промах только по быстрому кэшу: ответ идет из свежей БД
	delete(f.cache.data, "nasa:asteroids")
	stored, err := f.service.GetAsteroids(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, 1, f.nasa.neoCalls, "second read must come from the store")

	for i := range fetched {
		assert.Equal(t, fetched[i].NeoReferenceID, stored[i].NeoReferenceID,
			"both success paths must emit the same ordering")
	}
}

func TestGetMarsWeatherEmptySolKeysIsNoData(t *testing.T) {
	f := newSpaceFixture()
	f.nasa.insight = &clients.InsightPayload{SolKeys: nil, Sols: map[string]clients.InsightSol{}}

	_, err := f.service.GetMarsWeather(context.Background())
	require.ErrorIs(t, err, ErrNoData)

	assert.Empty(t, f.marsRepo.records, "no records may be written on empty upstream result")
	assert.Zero(t, f.cache.setCalls)
}

func TestGetMarsWeatherFreshStoreSkipsUpstream(t *testing.T) {
	f := newSpaceFixture()
	f.marsRepo.records[675] = models.MarsWeatherSol{
		Sol:         675,
		AvgTemp:     -62.3,
		LastUpdated: time.Now().UTC().Add(-time.Hour),
	}

	sols, err := f.service.GetMarsWeather(context.Background())
	require.NoError(t, err)
	require.Len(t, sols, 1)
	assert.Zero(t, f.nasa.insightCalls)
}

func TestGetAPODStorePresenceIsFreshness(t *testing.T) {
	f := newSpaceFixture()
	f.apodRepo.byDate["2026-08-29"] = &models.APOD{
		ID:    7,
		Date:  "2026-08-29",
		Title: "Pillars of Creation",
	}

	apod, err := f.service.GetAPOD(context.Background(), "2026-08-29")
	require.NoError(t, err)
	assert.Equal(t, uint(7), apod.ID)
	assert.Zero(t, f.nasa.apodCalls, "stored APOD for the exact date must not re-fetch")

	// Другая дата — промах по БД и поход к апстриму
	f.nasa.apod = &clients.APODPayload{Date: "2026-08-30", Title: "Crab Nebula", URL: "https://example.com/crab.jpg"}
	_, err = f.service.GetAPOD(context.Background(), "2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, 1, f.nasa.apodCalls)
}

func TestGetAPODCachedByRequestedDate(t *testing.T) {
	f := newSpaceFixture()
	f.nasa.apod = &clients.APODPayload{Date: "2026-08-30", Title: "Crab Nebula", URL: "https://example.com/crab.jpg"}

	_, err := f.service.GetAPOD(context.Background(), "2026-08-30")
	require.NoError(t, err)
	assert.Contains(t, f.cache.data, "nasa:apod:2026-08-30")

	// Повторный запрос отдается из кэша
	_, err = f.service.GetAPOD(context.Background(), "2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, 1, f.nasa.apodCalls)
}

func TestGetLaunchesUpstreamErrorIsExplicit(t *testing.T) {
	f := newSpaceFixture()
	f.launch.err = errors.New("dial tcp: i/o timeout")

	_, err := f.service.GetLaunches(context.Background())
	require.ErrorIs(t, err, ErrUpstreamUnavailable)
	assert.Empty(t, f.launchRepo.records)
}

func TestGetLaunchesFetchNormalizeStoreAndCache(t *testing.T) {
	f := newSpaceFixture()
	later := time.Now().UTC().Add(48 * time.Hour)
	sooner := time.Now().UTC().Add(24 * time.Hour)

	var a, b clients.LaunchResult
	a.ID = "aa11"
	a.Name = "Falcon 9 | Starlink"
	a.Net = later
	b.ID = "bb22"
	b.Name = "Electron | BlackSky"
	b.Net = sooner

	f.launch.page = &clients.LaunchPage{Count: 2, Results: []clients.LaunchResult{a, b}}

	launches, err := f.service.GetLaunches(context.Background())
	require.NoError(t, err)
	require.Len(t, launches, 2)
	assert.Equal(t, "bb22", launches[0].ExternalID, "results must be ordered by net ascending")
	assert.Len(t, f.launchRepo.records, 2)
	assert.Contains(t, f.cache.data, "launches:upcoming")
}
