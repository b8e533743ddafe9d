package quest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/sidequest-app/sidequest/sidequest/database/models"
	"github.com/sidequest-app/sidequest/sidequest/database/repositories"
	"github.com/sidequest-app/sidequest/sidequest/geo"
)

// GeoProvider is the slice of the geo layer the assignment service needs.
// Both lookups are non-failing: weather degrades to a neutral snapshot
// and places degrade to an empty list.
type GeoProvider interface {
	CurrentWeather(ctx context.Context, lat, lon float64) *geo.Weather
	NearbyPlaces(ctx context.Context, lat, lon float64, placeTypes []string, radiusKm float64) []geo.Place
}

// Config carries the assignment service tunables.
type Config struct {
	// BootstrapUsers creates a demo user on first sight of an unknown user
	// ID instead of failing the request. Meant for local development only.
	BootstrapUsers bool `toml:"bootstrap_users"`
}

// AssignmentService owns the daily quest lifecycle: one quest per user per
// date, generated deterministically from (user, date) and the catalog.
type AssignmentService struct {
	quests    repositories.QuestRepository
	templates repositories.QuestTemplateRepository
	users     repositories.UserRepository
	geo       GeoProvider

	bootstrapUsers bool
}

func NewAssignmentService(
	quests repositories.QuestRepository,
	templates repositories.QuestTemplateRepository,
	users repositories.UserRepository,
	geoProvider GeoProvider,
	cfg Config,
) *AssignmentService {
	return &AssignmentService{
		quests:         quests,
		templates:      templates,
		users:          users,
		geo:            geoProvider,
		bootstrapUsers: cfg.BootstrapUsers,
	}
}

// GetOrCreate returns the user's quest for the given date, generating and
// persisting it on first call. Repeat calls for the same (user, date)
// return the stored quest unchanged, including across processes: the
// uniqueness constraint on (user_id, date) is the final arbiter, and a
// concurrent-insert loss is resolved by re-reading the winner's row.
func (s *AssignmentService) GetOrCreate(ctx context.Context, userID int64, date time.Time) (*QuestResponse, error) {
	user, err := s.resolveUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.quests.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return buildResponse(existing), nil
	}

	quest, err := s.generate(ctx, user, date)
	if err != nil {
		return nil, err
	}

	if err := s.quests.Create(ctx, quest); err != nil {
		if errors.Is(err, repositories.ErrDuplicateQuest) {
			// Lost the insert race; the winner's quest is the quest.
			winner, readErr := s.quests.GetByUserAndDate(ctx, userID, date)
			if readErr != nil {
				return nil, readErr
			}
			if winner == nil {
				return nil, fmt.Errorf("quest for user %d on %s: duplicate reported but row missing", userID, date.Format("2006-01-02"))
			}
			return buildResponse(winner), nil
		}
		return nil, fmt.Errorf("failed to store quest: %w", err)
	}

	if err := s.users.TouchLastActive(ctx, userID); err != nil {
		slog.Warn("Failed to touch last active",
			slog.String("type", "quest"),
			slog.Int64("user_id", userID),
			slog.Any("error", err))
	}

	slog.Info("Quest assigned",
		slog.String("type", "quest"),
		slog.Int64("user_id", userID),
		slog.String("date", date.Format("2006-01-02")),
		slog.String("seed", quest.Seed),
		slog.String("title", questTitle(quest)))

	return buildResponse(quest), nil
}

// GetQuest returns a stored quest by ID without side effects.
func (s *AssignmentService) GetQuest(ctx context.Context, questID int64) (*QuestResponse, error) {
	quest, err := s.quests.GetByID(ctx, questID)
	if err != nil {
		return nil, err
	}
	return buildResponse(quest), nil
}

// History returns the user's most recent quests, newest first.
func (s *AssignmentService) History(ctx context.Context, userID int64, limit int) ([]*QuestResponse, error) {
	quests, err := s.quests.GetByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*QuestResponse, 0, len(quests))
	for _, q := range quests {
		responses = append(responses, buildResponse(q))
	}
	return responses, nil
}

// MarkMissed transitions an assigned quest to missed. Submitted quests
// stay submitted.
func (s *AssignmentService) MarkMissed(ctx context.Context, questID int64) error {
	quest, err := s.quests.GetByID(ctx, questID)
	if err != nil {
		return err
	}
	if quest.Status != models.StatusAssigned {
		return fmt.Errorf("quest %d is %s, not %s", questID, quest.Status, models.StatusAssigned)
	}
	return s.quests.UpdateStatus(ctx, questID, models.StatusMissed)
}

func (s *AssignmentService) resolveUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) || !s.bootstrapUsers {
		return nil, err
	}

	user = &models.User{
		Username:            fmt.Sprintf("demo_user_%d", userID),
		DisplayName:         "Demo User",
		QuestPreferences:    models.DefaultQuestPreferences(),
		OnboardingCompleted: false,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to bootstrap user %d: %w", userID, err)
	}

	slog.Info("Bootstrapped demo user",
		slog.String("type", "quest"),
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username))

	return user, nil
}

// generate runs the full pipeline: seed, weather, template selection,
// place lookup, context generation. All randomness flows through one
// generator in a fixed consumption order, so the result is a pure
// function of (user ID, date, catalog, external conditions).
func (s *AssignmentService) generate(ctx context.Context, user *models.User, date time.Time) (*models.Quest, error) {
	seedHex, seedValue := Seed(strconv.FormatInt(user.ID, 10), date)
	rng := NewRand(seedValue)

	lat, lon := user.Coordinate()
	weather := s.geo.CurrentWeather(ctx, lat, lon)
	weatherCtx := &models.WeatherContext{
		Temperature: weather.Temperature,
		Condition:   weather.Condition,
		Tags:        weather.Tags,
		Description: weather.Description,
	}

	catalog, err := s.templates.GetEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load quest templates: %w", err)
	}

	template, err := Select(catalog, weather, user.QuestPreferences, user.OnboardingCompleted, rng)
	if err != nil {
		if errors.Is(err, ErrNoTemplates) {
			slog.Warn("Quest catalog empty, assigning fallback",
				slog.String("type", "quest"),
				slog.Int64("user_id", user.ID))
			return FallbackQuest(user.ID, date, seedHex, weatherCtx), nil
		}
		return nil, err
	}

	var places []geo.Place
	radiusKm := user.LocationRadiusKm
	if template.RequiresPlace && len(template.PlaceTypes()) > 0 {
		radiusKm = ResolveRadius(template, user.LocationRadiusKm, rng)
		places = s.geo.NearbyPlaces(ctx, lat, lon, template.PlaceTypes(), radiusKm)
	}

	generatedCtx := GenerateContext(template, weather, places, radiusKm, user.QuestPreferences, rng)

	now := time.Now()
	templateID := template.ID
	return &models.Quest{
		UserID:           user.ID,
		Date:             date,
		TemplateID:       &templateID,
		Seed:             seedHex,
		GeneratedContext: generatedCtx,
		WeatherContext:   weatherCtx,
		Status:           models.StatusAssigned,
		DeliveredAt:      &now,
		Template:         template,
	}, nil
}

func questTitle(q *models.Quest) string {
	if q.Template != nil {
		return q.Template.Title
	}
	return contextString(q.GeneratedContext, "title")
}
