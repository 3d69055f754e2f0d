package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

type NASAClient interface {
	FetchAPOD(ctx context.Context, date string) (*APODPayload, error)
	FetchNEOFeed(ctx context.Context) (*NEOFeedPayload, error)
	FetchInsightWeather(ctx context.Context) (*InsightPayload, error)
}

type nasaClient struct {
	apiKey     string
	apodURL    string
	neoURL     string
	insightURL string
	httpClient *http.Client
}

type NASAConfig struct {
	APIKey     string
	APODURL    string
	NEOURL     string
	InsightURL string
}

func NewNASAClient(config NASAConfig) NASAClient {
	return &nasaClient{
		apiKey:     config.APIKey,
		apodURL:    config.APODURL,
		neoURL:     config.NEOURL,
		insightURL: config.InsightURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *nasaClient) FetchAPOD(ctx context.Context, date string) (*APODPayload, error) {
	params := url.Values{}
	if date != "" {
		params.Add("date", date)
	}
	if c.apiKey != "" {
		params.Add("api_key", c.apiKey)
	}

	var payload APODPayload
	if err := c.getJSON(ctx, c.apodURL, params, &payload); err != nil {
		return nil, fmt.Errorf("fetch APOD: %w", err)
	}
	return &payload, nil
}

func (c *nasaClient) FetchNEOFeed(ctx context.Context) (*NEOFeedPayload, error) {
	// Фид отдает максимум неделю за запрос
	start := time.Now().UTC()
	end := start.AddDate(0, 0, 6)

	params := url.Values{}
	params.Add("start_date", start.Format("2006-01-02"))
	params.Add("end_date", end.Format("2006-01-02"))
	if c.apiKey != "" {
		params.Add("api_key", c.apiKey)
	}

	var payload NEOFeedPayload
	if err := c.getJSON(ctx, c.neoURL, params, &payload); err != nil {
		return nil, fmt.Errorf("fetch NEO feed: %w", err)
	}
	return &payload, nil
}

func (c *nasaClient) FetchInsightWeather(ctx context.Context) (*InsightPayload, error) {
	params := url.Values{}
	params.Add("feedtype", "json")
	params.Add("ver", "1.0")
	if c.apiKey != "" {
		params.Add("api_key", c.apiKey)
	}

	var payload InsightPayload
	if err := c.getJSON(ctx, c.insightURL, params, &payload); err != nil {
		return nil, fmt.Errorf("fetch InSight weather: %w", err)
	}
	return &payload, nil
}

func (c *nasaClient) getJSON(ctx context.Context, baseURL string, params url.Values, dest interface{}) error {
	reqURL := baseURL
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", "Space-Explorer/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode JSON: %w", err)
	}

	return nil
}
