package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const weatherbitURL = "https://api.weatherbit.io/v2.0/current"

// WeatherUpstreamError сохраняет статус ответа Weatherbit,
// хэндлер пробрасывает его клиенту как есть
type WeatherUpstreamError struct {
	StatusCode int
}

func (e *WeatherUpstreamError) Error() string {
	return fmt.Sprintf("weather upstream returned status %d", e.StatusCode)
}

// WeatherService проксирует текущую погоду из Weatherbit по почтовому
// индексу. Ключ API и таймаут приходят из конфига.
type WeatherService struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

func NewWeatherService(apiKey, baseURL string, timeout time.Duration) *WeatherService {
	if baseURL == "" {
		baseURL = weatherbitURL
	}
	return &WeatherService{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

func (ws *WeatherService) Current(ctx context.Context, zip, country string) (map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ws.baseURL, nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	q.Set("postal_code", zip)
	q.Set("country", country)
	q.Set("units", "I") // Фаренгейт
	q.Set("key", ws.apiKey)
	req.URL.RawQuery = q.Encode()

	resp, err := ws.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &WeatherUpstreamError{StatusCode: resp.StatusCode}
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadWeatherPayload, err)
	}
	return payload, nil
}
