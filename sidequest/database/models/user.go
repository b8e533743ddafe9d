package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID          int64  `bun:"id,pk,autoincrement"`
	Username    string `bun:"username,notnull,unique"`
	DisplayName string `bun:"display_name"`
	Email       string `bun:"email"`
	Privacy     string `bun:"privacy,notnull,default:'public'"`

	// Free-form app preferences plus the typed quest preferences the
	// selection engine filters on.
	Prefs            map[string]interface{} `bun:"prefs,type:jsonb"`
	QuestPreferences *QuestPreferences      `bun:"quest_preferences,type:jsonb"`

	// Stored location used for weather and place lookups.
	DefaultLat          *float64 `bun:"default_lat"`
	DefaultLon          *float64 `bun:"default_lon"`
	DefaultLocationName string   `bun:"default_location_name"`
	LocationRadiusKm    float64  `bun:"location_radius_km,notnull,default:2.0"`

	OnboardingCompleted bool   `bun:"onboarding_completed,notnull,default:false"`
	OnboardingStep      string `bun:"onboarding_step"`

	CreatedAt    time.Time  `bun:"created_at,notnull"`
	LastActiveAt *time.Time `bun:"last_active_at"`
}

// Coordinate returns the user's stored location, falling back to the fixed
// demo coordinate (Vancouver) when none is set.
func (u *User) Coordinate() (lat, lon float64) {
	lat, lon = DefaultLat, DefaultLon
	if u.DefaultLat != nil {
		lat = *u.DefaultLat
	}
	if u.DefaultLon != nil {
		lon = *u.DefaultLon
	}
	return lat, lon
}

// Radius returns the user's lookup radius in km, or the default when unset.
func (u *User) Radius() float64 {
	if u.LocationRadiusKm > 0 {
		return u.LocationRadiusKm
	}
	return DefaultRadiusKm
}

// Fallback location for users without a stored coordinate.
const (
	DefaultLat      = 49.2827
	DefaultLon      = -123.1207
	DefaultRadiusKm = 2.0
)
