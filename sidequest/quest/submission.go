package quest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sidequest-app/sidequest/sidequest/database/models"
	"github.com/sidequest-app/sidequest/sidequest/database/repositories"
)

// SubmissionService records quest submissions and drives the resulting
// status transitions. Submission media handling happens upstream; by the
// time a submission reaches here it is just references.
type SubmissionService struct {
	quests      repositories.QuestRepository
	submissions repositories.SubmissionRepository
}

func NewSubmissionService(quests repositories.QuestRepository, submissions repositories.SubmissionRepository) *SubmissionService {
	return &SubmissionService{quests: quests, submissions: submissions}
}

// Submit records a submission for an assigned quest and flips the quest
// to submitted. A quest can be submitted at most once.
func (s *SubmissionService) Submit(ctx context.Context, questID int64, caption string, media []string) (*models.Submission, error) {
	quest, err := s.quests.GetByID(ctx, questID)
	if err != nil {
		return nil, err
	}
	if quest.Status != models.StatusAssigned {
		return nil, fmt.Errorf("quest %d is %s and cannot be submitted", questID, quest.Status)
	}

	submission := &models.Submission{
		QuestID: questID,
		UserID:  quest.UserID,
		Caption: caption,
		Media:   media,
		Status:  models.SubmissionPending,
	}
	if err := s.submissions.Create(ctx, submission); err != nil {
		if errors.Is(err, repositories.ErrDuplicateSubmission) {
			return nil, fmt.Errorf("quest %d: %w", questID, err)
		}
		return nil, err
	}

	if err := s.quests.UpdateStatus(ctx, questID, models.StatusSubmitted); err != nil {
		slog.Error("Failed to mark quest submitted",
			slog.String("type", "quest"),
			slog.Int64("quest_id", questID),
			slog.Any("error", err))
		return nil, err
	}

	return submission, nil
}

// Retract removes a submission and returns its quest to assigned.
func (s *SubmissionService) Retract(ctx context.Context, questID int64) error {
	submission, err := s.submissions.GetByQuest(ctx, questID)
	if err != nil {
		return err
	}
	if submission == nil {
		return fmt.Errorf("quest %d has no submission", questID)
	}

	if err := s.submissions.Delete(ctx, submission.ID); err != nil {
		return err
	}
	return s.quests.UpdateStatus(ctx, questID, models.StatusAssigned)
}
