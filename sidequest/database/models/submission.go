package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Submission is the proof a user attaches to a quest. At most one per
// quest; creating or removing one drives the quest status transitions.
type Submission struct {
	bun.BaseModel `bun:"table:submissions,alias:s"`

	ID      int64  `bun:"id,pk,autoincrement"`
	QuestID int64  `bun:"quest_id,notnull,unique"`
	UserID  int64  `bun:"user_id,notnull"`
	Caption string `bun:"caption"`

	Media    []string               `bun:"media,type:jsonb"`
	ExifMeta map[string]interface{} `bun:"exif_meta,type:jsonb"`

	Status    string    `bun:"status,notnull,default:'pending'"`
	CreatedAt time.Time `bun:"created_at,notnull"`
}

const (
	SubmissionPending  = "pending"
	SubmissionApproved = "approved"
	SubmissionRejected = "rejected"
)
