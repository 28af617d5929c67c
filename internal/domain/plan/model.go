package plan

import (
	"github.com/google/uuid"

	"github.com/ugrvsvs/my-osteo-app/internal/domain/catalog"
)

// Assignment maps to the assigned_exercise table. DisplayOrder is dense
// 0..n-1 within one patient's plan; a video appears at most once per plan.
type Assignment struct {
	PatientID        uuid.UUID `db:"patient_id" json:"patient_id"`
	VideoID          uuid.UUID `db:"video_id" json:"video_id"`
	DisplayOrder     int       `db:"display_order" json:"display_order"`
	Sets             *int      `db:"sets" json:"sets,omitempty"`
	Reps             *int      `db:"reps" json:"reps,omitempty"`
	DurationOverride *string   `db:"duration_override" json:"duration_override,omitempty"`
	Comment          *string   `db:"comment" json:"comment,omitempty"`
}

// Entry is one plan row joined with live video detail. Video data is
// read from the catalog at projection time, never snapshotted.
type Entry struct {
	Order            int           `json:"order"`
	Video            catalog.Video `json:"video"`
	Sets             *int          `json:"sets,omitempty"`
	Reps             *int          `json:"reps,omitempty"`
	DurationOverride *string       `json:"duration_override,omitempty"`
	Comment          *string       `json:"comment,omitempty"`
}

// ReplaceItem is one input row for a full plan replace. Position in the
// input slice becomes the display order.
type ReplaceItem struct {
	VideoID          uuid.UUID `json:"video_id"`
	Sets             *int      `json:"sets,omitempty"`
	Reps             *int      `json:"reps,omitempty"`
	DurationOverride *string   `json:"duration_override,omitempty"`
	Comment          *string   `json:"comment,omitempty"`
}
