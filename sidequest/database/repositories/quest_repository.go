package repositories

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/sidequest-app/sidequest/sidequest/database/models"
	"github.com/uptrace/bun"
)

type QuestRepository interface {
	// GetByUserAndDate returns (nil, nil) when no quest exists yet.
	GetByUserAndDate(ctx context.Context, userID int64, date time.Time) (*models.Quest, error)

	// Create inserts a new quest row. A collision with the (user_id, date)
	// uniqueness constraint comes back as ErrDuplicateQuest.
	Create(ctx context.Context, quest *models.Quest) error

	GetByID(ctx context.Context, id int64) (*models.Quest, error)
	UpdateStatus(ctx context.Context, questID int64, status string) error
	GetByUser(ctx context.Context, userID int64, limit int) ([]*models.Quest, error)
}

type questRepository struct {
	db *bun.DB
}

func NewQuestRepository(db *bun.DB) QuestRepository {
	return &questRepository{db: db}
}

func (r *questRepository) GetByUserAndDate(ctx context.Context, userID int64, date time.Time) (*models.Quest, error) {
	quest := new(models.Quest)
	err := r.db.NewSelect().
		Model(quest).
		Relation("Template").
		Where("q.user_id = ?", userID).
		Where("q.date = ?", date.Format("2006-01-02")).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		slog.Error("Failed to get quest",
			slog.String("type", "db"),
			slog.Int64("user_id", userID),
			slog.String("date", date.Format("2006-01-02")),
			slog.Any("error", err))
		return nil, err
	}

	return quest, nil
}

func (r *questRepository) Create(ctx context.Context, quest *models.Quest) error {
	quest.CreatedAt = time.Now()
	quest.UpdatedAt = time.Now()

	_, err := r.db.NewInsert().Model(quest).Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateQuest
		}
		return err
	}
	return nil
}

func (r *questRepository) GetByID(ctx context.Context, id int64) (*models.Quest, error) {
	quest := new(models.Quest)
	err := r.db.NewSelect().
		Model(quest).
		Relation("Template").
		Where("q.id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return quest, nil
}

func (r *questRepository) UpdateStatus(ctx context.Context, questID int64, status string) error {
	_, err := r.db.NewUpdate().
		Model((*models.Quest)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", questID).
		Exec(ctx)

	return err
}

func (r *questRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*models.Quest, error) {
	var quests []*models.Quest
	err := r.db.NewSelect().
		Model(&quests).
		Relation("Template").
		Where("q.user_id = ?", userID).
		Order("q.date DESC").
		Limit(limit).
		Scan(ctx)

	return quests, err
}
