// Package normalize приводит сырые ответы апстримов к внутренним моделям.
// Функции чистые: отсутствие опциональных полей закрывается дефолтами,
// отсутствие обязательных — ErrMalformedPayload.
package normalize

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"spaceexplorer/internal/clients"
	"spaceexplorer/internal/models"
)

var ErrMalformedPayload = errors.New("malformed upstream payload")

// APOD требует title и date; hdurl/copyright опциональны,
// media_type по умолчанию image.
func APOD(payload *clients.APODPayload) (*models.APOD, error) {
	if payload == nil || payload.Title == "" || payload.Date == "" {
		return nil, fmt.Errorf("%w: APOD missing title or date", ErrMalformedPayload)
	}

	mediaType := payload.MediaType
	if mediaType == "" {
		mediaType = "image"
	}

	return &models.APOD{
		Date:        payload.Date,
		Title:       payload.Title,
		Explanation: payload.Explanation,
		URL:         payload.URL,
		HDURL:       payload.HDURL,
		MediaType:   mediaType,
		Copyright:   payload.Copyright,
	}, nil
}

// Asteroids разворачивает группировку по датам в один список,
// отсортированный по (close_approach_date, neo_reference_id) — тот же
// порядок отдает и чтение из БД, пути не должны расходиться.
func Asteroids(payload *clients.NEOFeedPayload) ([]models.Asteroid, error) {
	if payload == nil {
		return nil, fmt.Errorf("%w: empty NEO feed", ErrMalformedPayload)
	}

	dates := make([]string, 0, len(payload.NearEarthObjects))
	for date := range payload.NearEarthObjects {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var records []models.Asteroid
	for _, date := range dates {
		for _, obj := range payload.NearEarthObjects[date] {
			if obj.NeoReferenceID == "" || obj.Name == "" {
				return nil, fmt.Errorf("%w: NEO object missing reference id or name", ErrMalformedPayload)
			}

			record := models.Asteroid{
				NeoReferenceID:    obj.NeoReferenceID,
				Name:              obj.Name,
				MaxDiameterMeters: obj.EstimatedDiameter.Meters.Max,
				IsHazardous:       obj.IsPotentiallyHazardous,
			}

			if len(obj.CloseApproachData) > 0 {
				approach := obj.CloseApproachData[0]
				record.CloseApproachDate = approach.CloseApproachDate
				if km, err := strconv.ParseFloat(approach.MissDistance.Kilometers, 64); err == nil {
					record.MissDistanceKm = km
				}
			}

			records = append(records, record)
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].CloseApproachDate != records[j].CloseApproachDate {
			return records[i].CloseApproachDate < records[j].CloseApproachDate
		}
		return records[i].NeoReferenceID < records[j].NeoReferenceID
	})

	return records, nil
}

// MarsWeather идет по sol_keys в порядке апстрима. Пустой sol_keys — не
// ошибка нормализации: контроллер трактует пустой результат как NoData.
func MarsWeather(payload *clients.InsightPayload) ([]models.MarsWeatherSol, error) {
	if payload == nil {
		return nil, fmt.Errorf("%w: empty InSight payload", ErrMalformedPayload)
	}

	var records []models.MarsWeatherSol
	for _, key := range payload.SolKeys {
		sol, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%w: non-integer sol key %q", ErrMalformedPayload, key)
		}

		data, ok := payload.Sols[key]
		if !ok {
			return nil, fmt.Errorf("%w: sol %q listed but absent", ErrMalformedPayload, key)
		}

		record := models.MarsWeatherSol{
			Sol:    sol,
			Season: data.Season,
		}
		if data.AT != nil {
			record.AvgTemp = data.AT.Av
			record.MinTemp = data.AT.Mn
			record.MaxTemp = data.AT.Mx
		}
		if data.HWS != nil {
			record.AvgWindSpeed = data.HWS.Av
			record.MaxWindSpeed = data.HWS.Mx
		}
		if data.PRE != nil {
			record.AvgPressure = data.PRE.Av
		}
		if data.WD != nil && data.WD.MostCommon != nil {
			record.WindDirection = data.WD.MostCommon.CompassPoint
		}
		if t, err := time.Parse(time.RFC3339, data.FirstUTC); err == nil {
			record.FirstUTC = t
		}
		if t, err := time.Parse(time.RFC3339, data.LastUTC); err == nil {
			record.LastUTC = t
		}

		records = append(records, record)
	}

	return records, nil
}

// Launches требует стабильный id и name; результат отсортирован
// по net по возрастанию независимо от порядка апстрима.
func Launches(payload *clients.LaunchPage) ([]models.Launch, error) {
	if payload == nil {
		return nil, fmt.Errorf("%w: empty launch page", ErrMalformedPayload)
	}

	var records []models.Launch
	for _, result := range payload.Results {
		if result.ID == "" || result.Name == "" {
			return nil, fmt.Errorf("%w: launch missing id or name", ErrMalformedPayload)
		}

		record := models.Launch{
			ExternalID: result.ID,
			Name:       result.Name,
			Net:        result.Net,
			Status:     result.Status.Name,
			Rocket:     result.Rocket.Configuration.FullName,
			Pad:        result.Pad.Name,
			Agency:     result.LaunchServiceProvider.Name,
		}
		if result.Mission != nil {
			record.Mission = result.Mission.Name
		}
		if record.Pad != "" && result.Pad.Location.Name != "" {
			record.Pad = record.Pad + ", " + result.Pad.Location.Name
		}

		records = append(records, record)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Net.Before(records[j].Net)
	})

	return records, nil
}
