package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"
)

const (
	defaultOverpassURL = "https://overpass-api.de/api/interpreter"

	// Results are capped regardless of how generous the source feels.
	maxPlaces = 10
)

// placeSelector maps a catalog place type to its OpenStreetMap selector.
// Order matters: type detection walks the table top to bottom.
type placeSelector struct {
	placeType string
	selector  string
	osmKey    string
}

var placeSelectors = []placeSelector{
	{"park", "leisure=park", "leisure"},
	{"library", "amenity=library", "amenity"},
	{"cafe", "amenity=cafe", "amenity"},
	{"restaurant", "amenity=restaurant", "amenity"},
	{"shop", "shop~'.*'", "shop"},
	{"museum", "tourism=museum", "tourism"},
	{"gallery", "tourism=gallery", "tourism"},
	{"market", "amenity=marketplace", "amenity"},
}

// PlacesClient queries the Overpass API for nearby points of interest.
type PlacesClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewPlacesClient(timeout time.Duration, baseURL string) *PlacesClient {
	if baseURL == "" {
		baseURL = defaultOverpassURL
	}
	return &PlacesClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

type overpassResponse struct {
	Elements []struct {
		Type   string            `json:"type"`
		Lat    float64           `json:"lat"`
		Lon    float64           `json:"lon"`
		Center *struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"center"`
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

// Fetch runs one Overpass query for the given place types. Results are
// capped at maxPlaces and sorted ascending by distance from the query
// point. Unknown place types are skipped; no known types means no query.
func (c *PlacesClient) Fetch(ctx context.Context, lat, lon float64, placeTypes []string, radiusKm float64) ([]Place, error) {
	var conditions []string
	for _, placeType := range placeTypes {
		for _, sel := range placeSelectors {
			if sel.placeType == placeType {
				conditions = append(conditions, sel.selector)
				break
			}
		}
	}
	if len(conditions) == 0 {
		return []Place{}, nil
	}

	selector := strings.Join(conditions, "|")
	radiusM := radiusKm * 1000
	query := fmt.Sprintf(`
[out:json][timeout:10];
(
  node[%[1]s](around:%[2]f,%[3]f,%[4]f);
  way[%[1]s](around:%[2]f,%[3]f,%[4]f);
  relation[%[1]s](around:%[2]f,%[3]f,%[4]f);
);
out center 20;
`, selector, radiusM, lat, lon)

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, strings.NewReader(query))
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places request failed with status %d", resp.StatusCode)
	}

	var data overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode places response: %w", err)
	}

	places := make([]Place, 0, maxPlaces)
	for _, element := range data.Elements {
		if len(places) >= maxPlaces {
			break
		}

		name := element.Tags["name"]
		if name == "" {
			name = "Unnamed location"
		}

		placeLat, placeLon := element.Lat, element.Lon
		if element.Type != "node" {
			if element.Center == nil {
				continue
			}
			placeLat, placeLon = element.Center.Lat, element.Center.Lon
		}
		if placeLat == 0 && placeLon == 0 {
			continue
		}

		placeType := "unknown"
		for _, sel := range placeSelectors {
			if _, ok := element.Tags[sel.osmKey]; ok {
				placeType = sel.placeType
				break
			}
		}

		places = append(places, Place{
			Name:       name,
			Type:       placeType,
			Lat:        placeLat,
			Lon:        placeLon,
			DistanceKm: haversineKm(lat, lon, placeLat, placeLon),
		})
	}

	sort.Slice(places, func(i, j int) bool {
		return places[i].DistanceKm < places[j].DistanceKm
	})

	return places, nil
}
