package quest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	tests := []struct {
		name      string
		userKey   string
		date      string
		wantHex   string
		wantValue int64
	}{
		{
			name:      "user 1",
			userKey:   "1",
			date:      "2025-03-14",
			wantHex:   "db0918827d2814ff",
			wantValue: 3674806402,
		},
		{
			name:      "user 42 year boundary",
			userKey:   "42",
			date:      "2026-01-01",
			wantHex:   "d531bcf329197896",
			wantValue: 3576806643,
		},
		{
			name:      "user 7 year end",
			userKey:   "7",
			date:      "2025-12-31",
			wantHex:   "22ea6f6e3745034f",
			wantValue: 585789294,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, err := time.Parse("2006-01-02", tt.date)
			require.NoError(t, err)

			gotHex, gotValue := Seed(tt.userKey, date)
			assert.Equal(t, tt.wantHex, gotHex)
			assert.Equal(t, tt.wantValue, gotValue)
		})
	}
}

func TestSeedIgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2025, 3, 14, 6, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 3, 14, 23, 59, 59, 0, time.UTC)

	hexA, valueA := Seed("1", morning)
	hexB, valueB := Seed("1", evening)

	assert.Equal(t, hexA, hexB)
	assert.Equal(t, valueA, valueB)
}

func TestSeedDistinguishesUsersAndDates(t *testing.T) {
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	hexA, _ := Seed("1", date)
	hexB, _ := Seed("2", date)
	hexC, _ := Seed("1", date.AddDate(0, 0, 1))

	assert.NotEqual(t, hexA, hexB)
	assert.NotEqual(t, hexA, hexC)
}

func TestNewRandIsReproducible(t *testing.T) {
	_, value := Seed("42", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	a := NewRand(value)
	b := NewRand(value)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}
