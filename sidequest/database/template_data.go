package database

import (
	"context"
	"encoding/json"
	"fmt"

	"log/slog"
)

// InitializeTemplateData upserts the starter quest templates. Runs on every
// startup so tag or constraint fixes reach existing installs.
func (db *DB) InitializeTemplateData(ctx context.Context) error {
	type templateDef struct {
		Title         string
		BodyTemplate  string
		Tags          []string
		Constraints   map[string]interface{}
		RequiresPlace bool
		Rarity        string
		Weight        int
	}

	templates := []templateDef{
		{
			Title:        "Neighborhood Snapshot",
			BodyTemplate: "Find a {place_type} within {radius_km} km and capture a creative angle including {modifier}.",
			Tags:         []string{"fast", "no_cost", "requires_place", "photo"},
			Constraints: map[string]interface{}{
				"place_types":     []string{"park", "library", "cafe", "restaurant"},
				"radius_km_range": []float64{0.3, 2.0},
				"indoor_bias_if":  []string{"rain", "snow"},
			},
			RequiresPlace: true,
			Rarity:        "common",
			Weight:        1,
		},
		{
			Title:        "Weather Witness",
			BodyTemplate: "Capture the current weather in an artistic way. Focus on {weather_modifier} and include {composition_rule}.",
			Tags:         []string{"weather", "artistic", "photo", "no_cost"},
			Constraints: map[string]interface{}{
				"weather_modifiers": []string{"shadows and light", "reflections", "textures", "movement"},
				"composition_rules": []string{"rule of thirds", "leading lines", "symmetry", "framing"},
			},
			RequiresPlace: false,
			Rarity:        "common",
			Weight:        1,
		},
		{
			Title:        "Urban Explorer",
			BodyTemplate: "Discover a {place_type} you've never been to before within {radius_km} km. Document your experience with a photo and tell us about {discovery_aspect}.",
			Tags:         []string{"exploration", "discovery", "requires_place", "photo"},
			Constraints: map[string]interface{}{
				"place_types":       []string{"shop", "restaurant", "park", "museum", "gallery", "market"},
				"radius_km_range":   []float64{0.5, 3.0},
				"discovery_aspects": []string{"what surprised you", "the atmosphere", "an interesting detail", "the people you saw"},
			},
			RequiresPlace: true,
			Rarity:        "rare",
			Weight:        1,
		},
		{
			Title:        "Street Artist",
			BodyTemplate: "Create or find art in public spaces. This could be street art, graffiti, sculptures, or even temporary art you create yourself. Capture {artistic_focus}.",
			Tags:         []string{"art", "creative", "photo", "public_space"},
			Constraints: map[string]interface{}{
				"artistic_focus": []string{"the story behind it", "how it interacts with the environment", "the technique used", "your reaction to it"},
			},
			RequiresPlace: false,
			Rarity:        "rare",
			Weight:        1,
		},
		{
			Title:        "Social Connection",
			BodyTemplate: "Strike up a conversation with a stranger (if appropriate and safe) or help someone in your community. Document the experience and share {social_aspect}.",
			Tags:         []string{"social", "community", "human_connection", "story"},
			Constraints: map[string]interface{}{
				"social_aspects": []string{"what you learned", "how it made you feel", "what surprised you", "the impact on your day"},
			},
			RequiresPlace: false,
			Rarity:        "legendary",
			Weight:        1,
		},
		{
			Title:        "Seasonal Treasure",
			BodyTemplate: "Find something that represents the current season in your area. It could be natural, cultural, or human-made. Capture {seasonal_element} within {time_constraint}.",
			Tags:         []string{"seasonal", "nature", "culture", "time_sensitive", "photo"},
			Constraints: map[string]interface{}{
				"seasonal_elements": []string{"colors", "activities", "changes in nature", "festive elements"},
				"time_constraints":  []string{"golden hour", "during lunch break", "early morning", "twilight"},
			},
			RequiresPlace: false,
			Rarity:        "common",
			Weight:        1,
		},
	}

	insertSQL := `
        INSERT INTO quest_templates (
            title, body_template, tags, constraints,
            requires_place, rarity, weight, enabled,
            created_at, updated_at
        ) VALUES (
            $1, $2, $3::jsonb, $4::jsonb,
            $5, $6, $7, true,
            CURRENT_TIMESTAMP, CURRENT_TIMESTAMP
        ) ON CONFLICT (title) DO UPDATE SET
            body_template = EXCLUDED.body_template,
            tags = EXCLUDED.tags,
            constraints = EXCLUDED.constraints,
            requires_place = EXCLUDED.requires_place,
            rarity = EXCLUDED.rarity,
            weight = EXCLUDED.weight,
            updated_at = CURRENT_TIMESTAMP;
    `

	// The upsert needs a unique title to conflict on.
	if _, err := db.ExecWithLog(ctx,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_quest_templates_title ON quest_templates(title)`); err != nil {
		return fmt.Errorf("failed to create template title index: %w", err)
	}

	for _, t := range templates {
		tagBytes, err := json.Marshal(t.Tags)
		if err != nil {
			return fmt.Errorf("failed to marshal tags for %s: %w", t.Title, err)
		}
		constraintBytes, err := json.Marshal(t.Constraints)
		if err != nil {
			return fmt.Errorf("failed to marshal constraints for %s: %w", t.Title, err)
		}

		if _, err := db.ExecWithLog(ctx, insertSQL,
			t.Title, t.BodyTemplate, string(tagBytes), string(constraintBytes),
			t.RequiresPlace, t.Rarity, t.Weight,
		); err != nil {
			return fmt.Errorf("failed to upsert template %s: %w", t.Title, err)
		}
	}

	slog.Info("Quest templates initialized/updated successfully", slog.Int("count", len(templates)))
	return nil
}
