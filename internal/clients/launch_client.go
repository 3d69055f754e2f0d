package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

type LaunchClient interface {
	FetchUpcoming(ctx context.Context, limit int) (*LaunchPage, error)
}

type launchClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewLaunchClient(baseURL string) LaunchClient {
	return &launchClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FetchUpcoming запрашивает страницу ближайших запусков, отсортированных
// по net по возрастанию. Уже состоявшиеся запуски эндпоинт не отдает.
func (c *launchClient) FetchUpcoming(ctx context.Context, limit int) (*LaunchPage, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	params := url.Values{}
	params.Add("limit", strconv.Itoa(limit))
	params.Add("ordering", "net")

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", "Space-Explorer/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("Launch Library returned status %d: %s", resp.StatusCode, string(body))
	}

	var page LaunchPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}

	return &page, nil
}
