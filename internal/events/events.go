package events

import "github.com/campsite/signups/internal/models"

// Hooks are called by the gateway after a commit succeeds. Nil hooks are
// skipped.
type Hooks struct {
	SignupCreated   func(s models.Signup)
	ActivityDeleted func(activityID uint, removedSignups int64)
	CamperDeleted   func(camperID uint, removedSignups int64)
}

func (h Hooks) EmitSignupCreated(s models.Signup) {
	if h.SignupCreated != nil {
		h.SignupCreated(s)
	}
}

func (h Hooks) EmitActivityDeleted(activityID uint, removed int64) {
	if h.ActivityDeleted != nil {
		h.ActivityDeleted(activityID, removed)
	}
}

func (h Hooks) EmitCamperDeleted(camperID uint, removed int64) {
	if h.CamperDeleted != nil {
		h.CamperDeleted(camperID, removed)
	}
}
