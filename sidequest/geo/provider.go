package geo

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

const cacheSize = 2048

// Config carries the tunables for the external weather and place sources.
type Config struct {
	WeatherURL     string `toml:"weather_url"`
	OverpassURL    string `toml:"overpass_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	CacheTTLMin    int    `toml:"cache_ttl_minutes"`
}

func (c Config) timeout() time.Duration {
	if c.TimeoutSeconds > 0 {
		return time.Duration(c.TimeoutSeconds) * time.Second
	}
	return 10 * time.Second
}

func (c Config) cacheTTL() time.Duration {
	if c.CacheTTLMin > 0 {
		return time.Duration(c.CacheTTLMin) * time.Minute
	}
	return 15 * time.Minute
}

// Provider serves weather and place context with process-local TTL caches
// in front of the external sources. Lookups never fail the caller: weather
// degrades to a neutral snapshot and places degrade to an empty list.
type Provider struct {
	weather *WeatherClient
	places  *PlacesClient

	weatherCache *ttlCache
	placesCache  *ttlCache

	// Collapses concurrent misses for the same key into one upstream call.
	group singleflight.Group
}

func NewProvider(cfg Config) *Provider {
	ttl := cfg.cacheTTL()
	return &Provider{
		weather:      NewWeatherClient(cfg.timeout(), cfg.WeatherURL),
		places:       NewPlacesClient(cfg.timeout()+5*time.Second, cfg.OverpassURL),
		weatherCache: newTTLCache(cacheSize, ttl),
		placesCache:  newTTLCache(cacheSize, ttl),
	}
}

// CurrentWeather returns the weather snapshot for a coordinate. The cache
// key rounds to 2 decimals (~1 km) so nearby users share an entry.
func (p *Provider) CurrentWeather(ctx context.Context, lat, lon float64) *Weather {
	key := fmt.Sprintf("w:%.2f,%.2f", lat, lon)
	if cached, ok := p.weatherCache.get(key); ok {
		return cached.(*Weather)
	}

	result, err, _ := p.group.Do(key, func() (interface{}, error) {
		return p.weather.Fetch(ctx, lat, lon)
	})
	if err != nil {
		slog.Warn("Weather lookup failed, using fallback",
			slog.String("type", "geo"),
			slog.Float64("lat", lat),
			slog.Float64("lon", lon),
			slog.Any("error", err))
		return FallbackWeather()
	}

	weather := result.(*Weather)
	p.weatherCache.set(key, weather)
	return weather
}

// NearbyPlaces returns up to 10 candidates sorted by distance. Failures
// come back as an empty list; the renderer falls back to bare place-type
// labels. Cache key rounds to 3 decimals (~100 m).
func (p *Provider) NearbyPlaces(ctx context.Context, lat, lon float64, placeTypes []string, radiusKm float64) []Place {
	sorted := append([]string(nil), placeTypes...)
	sort.Strings(sorted)
	key := fmt.Sprintf("p:%.3f,%.3f,%.1f,%s", lat, lon, radiusKm, strings.Join(sorted, ","))

	if cached, ok := p.placesCache.get(key); ok {
		return cached.([]Place)
	}

	result, err, _ := p.group.Do(key, func() (interface{}, error) {
		return p.places.Fetch(ctx, lat, lon, placeTypes, radiusKm)
	})
	if err != nil {
		slog.Warn("Places lookup failed",
			slog.String("type", "geo"),
			slog.Float64("lat", lat),
			slog.Float64("lon", lon),
			slog.Any("error", err))
		return []Place{}
	}

	places := result.([]Place)
	p.placesCache.set(key, places)
	return places
}
