package quest

import (
	"time"

	"github.com/sidequest-app/sidequest/sidequest/database/models"
)

// QuestResponse is the client-facing view of an assigned quest. Details
// are rendered from the template body and stored context on every read,
// so a template copy edit shows up without regenerating the quest.
type QuestResponse struct {
	ID         int64                  `json:"id"`
	Date       string                 `json:"date"`
	Title      string                 `json:"title"`
	Details    string                 `json:"details"`
	Difficulty int                    `json:"difficulty"`
	Rarity     string                 `json:"rarity"`
	Tags       []string               `json:"tags"`
	Context    map[string]interface{} `json:"context"`
	Weather    *models.WeatherContext `json:"weather,omitempty"`
	Status     string                 `json:"status"`
	DeliveredAt *time.Time            `json:"delivered_at,omitempty"`
}

// buildResponse projects a stored quest row into the response shape. A
// quest without a template is a fallback quest and carries its own title,
// details, and difficulty in the context map.
func buildResponse(q *models.Quest) *QuestResponse {
	resp := &QuestResponse{
		ID:          q.ID,
		Date:        q.Date.Format("2006-01-02"),
		Context:     q.GeneratedContext,
		Weather:     q.WeatherContext,
		Status:      q.Status,
		DeliveredAt: q.DeliveredAt,
	}

	if q.Template != nil {
		resp.Title = q.Template.Title
		resp.Details = RenderBody(q.Template.BodyTemplate, q.GeneratedContext)
		resp.Difficulty = Difficulty(q.Template)
		resp.Rarity = q.Template.Rarity
		resp.Tags = q.Template.Tags
		return resp
	}

	resp.Title = contextString(q.GeneratedContext, "title")
	resp.Details = contextString(q.GeneratedContext, "details")
	resp.Difficulty = contextInt(q.GeneratedContext, "difficulty")
	resp.Rarity = models.RarityCommon
	return resp
}

func contextString(context map[string]interface{}, key string) string {
	if s, ok := context[key].(string); ok {
		return s
	}
	return ""
}

func contextInt(context map[string]interface{}, key string) int {
	switch v := context[key].(type) {
	case int:
		return v
	case float64:
		// jsonb round-trips numbers as float64.
		return int(v)
	default:
		return 0
	}
}
