package models

// AssignmentMethod records how the scheduler picked a driver.
type AssignmentMethod string

const (
	AssignmentPreferenceBased AssignmentMethod = "PREFERENCE_BASED"
	AssignmentHistoricalBased AssignmentMethod = "HISTORICAL_BASED"
	AssignmentManual          AssignmentMethod = "MANUAL"
)

// RideAssignment is a driver assigned to a template slot on a date.
type RideAssignment struct {
	ID               string           `json:"id"`
	TemplateSlotID   string           `json:"template_slot_id"`
	DriverParentID   string           `json:"driver_parent_id"`
	AssignedDate     string           `json:"assigned_date"`
	Status           string           `json:"status"`
	AssignmentMethod AssignmentMethod `json:"assignment_method"`
	CreatedAt        string           `json:"created_at,omitempty"`
	UpdatedAt        string           `json:"updated_at,omitempty"`
}

// StudentRide is the flattened ride a student sees.
type StudentRide struct {
	ID           string `json:"id"`
	DayOfWeek    int    `json:"day_of_week"`
	AssignedDate string `json:"assigned_date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	RouteType    string `json:"route_type"`
	DriverName   string `json:"driver_name"`
	DriverPhone  string `json:"driver_phone,omitempty"`
	Status       string `json:"status"`
}

// ScheduleGenerateInput asks for a week's schedule to be (re)generated.
type ScheduleGenerateInput struct {
	WeekStartDate string `json:"week_start_date"`
	Async         bool   `json:"async"`
}

// ScheduleJob is the state of a background schedule generation.
type ScheduleJob struct {
	ID            string           `json:"id"`
	WeekStartDate string           `json:"week_start_date,omitempty"`
	State         string           `json:"state"`
	LastError     string           `json:"last_error,omitempty"`
	Assignments   []RideAssignment `json:"assignments,omitempty"`
}
