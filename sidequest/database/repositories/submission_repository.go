package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sidequest-app/sidequest/sidequest/database/models"
	"github.com/uptrace/bun"
)

// SubmissionRepository is the collaborator boundary that flips quest
// status. The engine itself never mutates a quest after creation.
type SubmissionRepository interface {
	// Create records a submission for a quest. A second submission for
	// the same quest comes back as ErrDuplicateSubmission.
	Create(ctx context.Context, submission *models.Submission) error

	GetByQuest(ctx context.Context, questID int64) (*models.Submission, error)
	Delete(ctx context.Context, id int64) error
}

type submissionRepository struct {
	db *bun.DB
}

func NewSubmissionRepository(db *bun.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	submission.CreatedAt = time.Now()

	_, err := r.db.NewInsert().Model(submission).Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateSubmission
		}
		return err
	}
	return nil
}

func (r *submissionRepository) GetByQuest(ctx context.Context, questID int64) (*models.Submission, error) {
	submission := new(models.Submission)
	err := r.db.NewSelect().
		Model(submission).
		Where("quest_id = ?", questID).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return submission, nil
}

func (r *submissionRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.NewDelete().
		Model((*models.Submission)(nil)).
		Where("id = ?", id).
		Exec(ctx)

	return err
}
