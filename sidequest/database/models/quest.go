package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Quest struct {
	bun.BaseModel `bun:"table:quests,alias:q"`

	ID         int64     `bun:"id,pk,autoincrement"`
	UserID     int64     `bun:"user_id,notnull"`
	Date       time.Time `bun:"date,notnull,type:date"`
	TemplateID *int64    `bun:"template_id"`

	// Seed is the 16-hex-char digest prefix every random decision for this
	// quest was derived from. Stored so a generation can be replayed.
	Seed string `bun:"seed"`

	GeneratedContext map[string]interface{} `bun:"generated_context,type:jsonb"`
	WeatherContext   *WeatherContext        `bun:"weather_context,type:jsonb"`

	Status      string     `bun:"status,notnull,default:'assigned'"`
	DeliveredAt *time.Time `bun:"delivered_at"`
	CreatedAt   time.Time  `bun:"created_at,notnull"`
	UpdatedAt   time.Time  `bun:"updated_at,notnull"`

	// Relations
	Template *QuestTemplate `bun:"rel:belongs-to,join:template_id=id"`
}

// Quest lifecycle. The engine only ever creates quests in StatusAssigned;
// the submission collaborator drives the later transitions.
const (
	StatusAssigned  = "assigned"
	StatusSubmitted = "submitted"
	StatusMissed    = "missed"
)

// WeatherContext is the weather snapshot captured at generation time.
type WeatherContext struct {
	Temperature float64  `json:"temperature"`
	Condition   string   `json:"condition"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
}
