package patient

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table. ShareToken grants unauthenticated
// read access to the patient's plan and is never reused after deletion.
type Patient struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Email      string    `db:"email" json:"email"`
	AvatarURL  string    `db:"avatar_url" json:"avatar_url"`
	ShareToken string    `db:"share_token" json:"share_token"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// ListItem is a patient row for the roster view, carrying the most
// recent activity timestamp when one exists.
type ListItem struct {
	Patient
	LastActivity *time.Time `db:"last_activity" json:"last_activity,omitempty"`
}

// NewShareToken mints an unguessable public token.
func NewShareToken() string {
	return "share-" + uuid.NewString()
}

// AvatarURLFor derives a deterministic avatar for an email address.
func AvatarURLFor(email string) string {
	return fmt.Sprintf("https://avatar.vercel.sh/%s.png", email)
}
