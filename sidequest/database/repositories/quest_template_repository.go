package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sidequest-app/sidequest/sidequest/database/models"
	"github.com/uptrace/bun"
)

// QuestTemplateRepository is the catalog read view the selector consumes.
// No filtering logic lives here; enabled templates come back in no
// particular order.
type QuestTemplateRepository interface {
	GetEnabled(ctx context.Context) ([]*models.QuestTemplate, error)
	GetByID(ctx context.Context, id int64) (*models.QuestTemplate, error)
	Create(ctx context.Context, template *models.QuestTemplate) error
	Count(ctx context.Context) (int, error)
}

type questTemplateRepository struct {
	db *bun.DB
}

func NewQuestTemplateRepository(db *bun.DB) QuestTemplateRepository {
	return &questTemplateRepository{db: db}
}

func (r *questTemplateRepository) GetEnabled(ctx context.Context) ([]*models.QuestTemplate, error) {
	var templates []*models.QuestTemplate
	err := r.db.NewSelect().
		Model(&templates).
		Where("enabled = ?", true).
		Order("id ASC").
		Scan(ctx)

	return templates, err
}

func (r *questTemplateRepository) GetByID(ctx context.Context, id int64) (*models.QuestTemplate, error) {
	template := new(models.QuestTemplate)
	err := r.db.NewSelect().
		Model(template).
		Where("id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("quest template %d: %w", id, ErrNotFound)
		}
		return nil, err
	}

	return template, nil
}

func (r *questTemplateRepository) Create(ctx context.Context, template *models.QuestTemplate) error {
	template.CreatedAt = time.Now()
	template.UpdatedAt = time.Now()
	_, err := r.db.NewInsert().Model(template).Exec(ctx)
	return err
}

func (r *questTemplateRepository) Count(ctx context.Context) (int, error) {
	return r.db.NewSelect().
		Model((*models.QuestTemplate)(nil)).
		Count(ctx)
}
