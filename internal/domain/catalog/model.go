package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Video maps to the video table. Duration is a free-text display string
// ("5 min", "3 x 30s"), not a parsed value.
type Video struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Title        string     `db:"title" json:"title"`
	Description  *string    `db:"description" json:"description,omitempty"`
	URL          string     `db:"url" json:"url"`
	ThumbnailURL *string    `db:"thumbnail_url" json:"thumbnail_url,omitempty"`
	Duration     *string    `db:"duration" json:"duration,omitempty"`
	Zone         *string    `db:"zone" json:"zone,omitempty"`
	Level        *string    `db:"level" json:"level,omitempty"`
	Limitations  *string    `db:"limitations" json:"limitations,omitempty"`
	CategoryID   *uuid.UUID `db:"category_id" json:"category_id,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Category maps to the video_category table.
type Category struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
}

// VideoFilter narrows video listings.
type VideoFilter struct {
	CategoryID *uuid.UUID
	Zone       string
	Level      string
	Search     string
}
