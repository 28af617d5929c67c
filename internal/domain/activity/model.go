package activity

import (
	"time"

	"github.com/google/uuid"

	"github.com/ugrvsvs/my-osteo-app/internal/domain/catalog"
)

const (
	ActionOpened = "opened"
	// ActionCompleted is accepted and stored but not aggregated yet.
	ActionCompleted = "completed"
)

// Entry maps to the activity_log table. Rows are append-only and only
// ever removed by the patient cascade. VideoID intentionally carries no
// foreign key; opens are historical facts that outlive the video.
type Entry struct {
	ID         uuid.UUID `db:"id" json:"id"`
	PatientID  uuid.UUID `db:"patient_id" json:"patient_id"`
	VideoID    uuid.UUID `db:"video_id" json:"video_id"`
	Action     string    `db:"action" json:"action"`
	OccurredAt time.Time `db:"occurred_at" json:"occurred_at"`
}

// Aggregate is one per-video rollup of opens.
type Aggregate struct {
	VideoID     uuid.UUID `db:"video_id"`
	Count       int       `db:"count"`
	FirstOpened time.Time `db:"first_opened"`
	LastOpened  time.Time `db:"last_opened"`
}

// SummaryItem is an aggregate joined with live video detail. Aggregates
// whose video no longer resolves are omitted from the summary.
type SummaryItem struct {
	Video       catalog.Video `json:"video"`
	Count       int           `json:"count"`
	FirstOpened time.Time     `json:"first_opened"`
	LastOpened  time.Time     `json:"last_opened"`
}

// Summary is the activity view for one patient.
type Summary struct {
	PatientID    uuid.UUID      `json:"patient_id"`
	Items        []*SummaryItem `json:"items"`
	LastActivity *time.Time     `json:"last_activity,omitempty"`
}
