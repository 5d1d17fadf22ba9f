package models

// PreferenceLevel is a driver's ranked willingness to take a slot.
type PreferenceLevel string

const (
	PreferencePreferred     PreferenceLevel = "PREFERRED"
	PreferenceLessPreferred PreferenceLevel = "LESS_PREFERRED"
	PreferenceUnavailable   PreferenceLevel = "UNAVAILABLE"
	// PreferenceAvailableNeutral is the upstream name for "no preference set".
	PreferenceAvailableNeutral PreferenceLevel = "AVAILABLE_NEUTRAL"
)

// IsNeutral reports whether l means "unset".
func (l PreferenceLevel) IsNeutral() bool {
	return l == "" || l == PreferenceAvailableNeutral
}

// DriverWeeklyPreference is a stored upstream preference row.
type DriverWeeklyPreference struct {
	ID                  string          `json:"id,omitempty"`
	DriverParentID      string          `json:"driver_parent_id,omitempty"`
	WeekStartDate       string          `json:"week_start_date,omitempty"`
	TemplateSlotID      string          `json:"template_slot_id"`
	PreferenceLevel     PreferenceLevel `json:"preference_level"`
	SubmissionTimestamp string          `json:"submission_timestamp,omitempty"`
}

// PreferenceSubmission is one (slot, level) pair sent upstream.
type PreferenceSubmission struct {
	TemplateSlotID  string          `json:"template_slot_id"`
	PreferenceLevel PreferenceLevel `json:"preference_level"`
}

// PreferenceToggleInput is a single click on a preference button.
type PreferenceToggleInput struct {
	SlotID string          `json:"slot_id" binding:"required"`
	Level  PreferenceLevel `json:"level" binding:"required,oneof=PREFERRED LESS_PREFERRED UNAVAILABLE"`
}
