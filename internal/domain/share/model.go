package share

import (
	"github.com/ugrvsvs/my-osteo-app/internal/domain/plan"
)

// View is the read-only projection served to a share link holder. It
// carries no patient id, email, or any clinic-side identifier; the
// token in the URL is the only reference the holder ever sees.
type View struct {
	PatientName string        `json:"patient_name"`
	AvatarURL   string        `json:"avatar_url"`
	Exercises   []*plan.Entry `json:"exercises"`
}
