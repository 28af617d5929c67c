package template

import (
	"time"

	"github.com/google/uuid"

	"github.com/ugrvsvs/my-osteo-app/internal/domain/catalog"
)

// Template maps to the program_template table. Its exercises live in
// template_exercise with the same dense-order shape as a plan, but
// without prescription detail and not tied to any patient.
type Template struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Detail is a template joined with its ordered videos.
type Detail struct {
	Template
	Exercises []catalog.Video `json:"exercises"`
}
