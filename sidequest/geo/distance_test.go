package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKm(t *testing.T) {
	t.Run("zero distance", func(t *testing.T) {
		assert.Zero(t, haversineKm(49.2827, -123.1207, 49.2827, -123.1207))
	})

	t.Run("vancouver to seattle", func(t *testing.T) {
		// Downtown Vancouver to downtown Seattle, roughly 190 km.
		got := haversineKm(49.2827, -123.1207, 47.6062, -122.3321)
		assert.InDelta(t, 193, got, 5)
	})

	t.Run("short hop", func(t *testing.T) {
		// ~one latitude minute is ~1.85 km.
		got := haversineKm(49.0, -123.0, 49.0166667, -123.0)
		assert.InDelta(t, 1.85, got, 0.05)
	})

	t.Run("symmetric", func(t *testing.T) {
		ab := haversineKm(49.2827, -123.1207, 47.6062, -122.3321)
		ba := haversineKm(47.6062, -122.3321, 49.2827, -123.1207)
		assert.Equal(t, ab, ba)
	})
}
