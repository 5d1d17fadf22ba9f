package models

import "time"

// Dashboard actions written to the activity log.
const (
	ActionLogin             = "login"
	ActionLogout            = "logout"
	ActionProfileUpdate     = "profile.update"
	ActionPasswordChange    = "profile.password"
	ActionPreferencesSubmit = "preferences.submit"
	ActionSwapCreate        = "swap.create"
	ActionSwapAccept        = "swap.accept"
	ActionSwapReject        = "swap.reject"
	ActionUserCreate        = "user.create"
	ActionTemplateCreate    = "template.create"
	ActionTemplateUpdate    = "template.update"
	ActionTemplateDelete    = "template.delete"
	ActionScheduleGenerate  = "schedule.generate"
	ActionScheduleJobFinish = "schedule.job_finished"
)

// ActivityRecord is one entry in the dashboard activity log.
type ActivityRecord struct {
	ID        string    `bson:"id" json:"id"`
	ActorID   string    `bson:"actorId" json:"actorId"`
	ActorRole UserRole  `bson:"actorRole" json:"actorRole"`
	Action    string    `bson:"action" json:"action"`
	Target    string    `bson:"target,omitempty" json:"target,omitempty"`
	Details   string    `bson:"details,omitempty" json:"details,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
