package quest

import (
	"time"

	"github.com/sidequest-app/sidequest/sidequest/database/models"
)

// The hardcoded quest handed out when the template catalog is empty.
// Works anywhere, needs no place lookup, and never fails.
const (
	fallbackTitle      = "Neighborhood Snapshot"
	fallbackDetails    = "Find a park, library, or cafe within ~1 km and include something yellow in frame."
	fallbackDifficulty = 2
)

// FallbackQuest builds the persisted row for the catalog-empty case. It
// has no template, so title, details, and difficulty live in the context
// map instead of being derived at read time.
func FallbackQuest(userID int64, date time.Time, seedHex string, weather *models.WeatherContext) *models.Quest {
	now := time.Now()
	return &models.Quest{
		UserID:     userID,
		Date:       date,
		TemplateID: nil,
		Seed:       seedHex,
		GeneratedContext: map[string]interface{}{
			"title":      fallbackTitle,
			"details":    fallbackDetails,
			"difficulty": fallbackDifficulty,
			"modifiers":  []string{"yellow", "rule_of_thirds"},
			"fallback":   true,
		},
		WeatherContext: weather,
		Status:         models.StatusAssigned,
		DeliveredAt:    &now,
	}
}
