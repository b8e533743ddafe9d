package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultWeatherURL = "https://api.open-meteo.com/v1/forecast"

// WeatherClient fetches current conditions from the Open-Meteo forecast
// endpoint.
type WeatherClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewWeatherClient(timeout time.Duration, baseURL string) *WeatherClient {
	if baseURL == "" {
		baseURL = defaultWeatherURL
	}
	return &WeatherClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

type weatherResponse struct {
	Current struct {
		Temperature2m float64 `json:"temperature_2m"`
		WeatherCode   int     `json:"weather_code"`
		WindSpeed10m  float64 `json:"wind_speed_10m"`
	} `json:"current"`
}

// Fetch performs one forecast request. Callers go through Provider, which
// handles caching and the neutral fallback.
func (c *WeatherClient) Fetch(ctx context.Context, lat, lon float64) (*Weather, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%f", lat))
	params.Set("longitude", fmt.Sprintf("%f", lon))
	params.Set("current", "temperature_2m,weather_code,wind_speed_10m")
	params.Set("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather request failed with status %d", resp.StatusCode)
	}

	var data weatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}

	temp := data.Current.Temperature2m
	tags, condition := conditionTags(data.Current.WeatherCode)
	tags = append(tags, temperatureTag(temp))
	if data.Current.WindSpeed10m > 20 {
		tags = append(tags, "windy")
	}

	return &Weather{
		Temperature: temp,
		Condition:   condition,
		Tags:        tags,
		Description: fmt.Sprintf("%s, %.0f°C", condition, temp),
	}, nil
}

// conditionTags is the fixed WMO-weather-code lookup table. The selector
// and renderer both depend on these exact tag values, so changes here are
// contract changes.
func conditionTags(code int) ([]string, string) {
	switch {
	case code == 0:
		return []string{"sunny"}, "Clear sky"
	case code >= 1 && code <= 3:
		return []string{"partly_cloudy", "sunny"}, "Partly cloudy"
	case code == 45 || code == 48:
		return []string{"foggy"}, "Foggy"
	case code >= 51 && code <= 57:
		return []string{"drizzle"}, "Drizzle"
	case code >= 61 && code <= 67:
		return []string{"rain"}, "Rain"
	case code >= 71 && code <= 77:
		return []string{"snow"}, "Snow"
	case code >= 80 && code <= 82:
		return []string{"rain", "heavy"}, "Heavy rain"
	case code == 95 || code == 96 || code == 99:
		return []string{"storm", "rain"}, "Thunderstorm"
	default:
		return []string{}, "Clear"
	}
}

func temperatureTag(temp float64) string {
	switch {
	case temp > 25:
		return "hot"
	case temp < 0:
		return "cold"
	case temp < 5:
		return "chilly"
	default:
		return "mild"
	}
}

// FallbackWeather is the neutral snapshot returned when the weather source
// is unreachable or returns garbage.
func FallbackWeather() *Weather {
	return &Weather{
		Temperature: 20,
		Condition:   "Unknown",
		Tags:        []string{"mild"},
		Description: "Weather unavailable",
	}
}
