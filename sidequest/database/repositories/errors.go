package repositories

import (
	"errors"

	"github.com/uptrace/bun/driver/pgdriver"
)

var (
	// ErrDuplicateQuest is returned when an insert collides with the
	// (user_id, date) uniqueness constraint. Callers treat it as "someone
	// else already created today's quest" and re-read.
	ErrDuplicateQuest = errors.New("quest already exists for user and date")

	// ErrDuplicateSubmission is the same signal for the one-submission-
	// per-quest constraint.
	ErrDuplicateSubmission = errors.New("submission already exists for quest")

	ErrNotFound = errors.New("not found")
)

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == uniqueViolationCode
}
