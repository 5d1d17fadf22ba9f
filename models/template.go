package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// TemplateDayName names a template day_of_week, where 0 is Monday.
func TemplateDayName(day int) string {
	if day < 0 || day >= len(weekdayNames) {
		return "Unknown"
	}
	return weekdayNames[day]
}

// ScheduleTemplateSlot is one recurring weekly slot drivers can be assigned to.
type ScheduleTemplateSlot struct {
	ID          string   `json:"id"`
	DayOfWeek   int      `json:"day_of_week"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	RouteType   string   `json:"route_type"`
	Locations   []string `json:"locations"`
	MaxCapacity int      `json:"max_capacity"`
	CreatedAt   string   `json:"created_at,omitempty"`
	UpdatedAt   string   `json:"updated_at,omitempty"`
}

// Label is the human readable "Monday 08:00 - 09:00" form used on every screen.
func (s ScheduleTemplateSlot) Label() string {
	return fmt.Sprintf("%s %s - %s", TemplateDayName(s.DayOfWeek), s.StartTime, s.EndTime)
}

// TemplateInput is the create/edit template form.
type TemplateInput struct {
	DayOfWeek   *int     `json:"day_of_week" binding:"required,min=0,max=6"`
	StartTime   string   `json:"start_time" binding:"required"`
	EndTime     string   `json:"end_time" binding:"required"`
	RouteType   string   `json:"route_type" binding:"required"`
	MaxCapacity int      `json:"max_capacity" binding:"required,min=1,max=10"`
	Locations   []string `json:"locations" binding:"required,min=1"`
}

const clockLayout = "15:04"

var ErrNoLocations = errors.New("at least one location is required")

// Validate checks what binding tags cannot express: clock formats and ordering.
func (in TemplateInput) Validate() error {
	start, err := time.Parse(clockLayout, in.StartTime)
	if err != nil {
		return fmt.Errorf("start_time must be HH:MM, got %q", in.StartTime)
	}
	end, err := time.Parse(clockLayout, in.EndTime)
	if err != nil {
		return fmt.Errorf("end_time must be HH:MM, got %q", in.EndTime)
	}
	if !end.After(start) {
		return fmt.Errorf("end_time %s must be after start_time %s", in.EndTime, in.StartTime)
	}
	if len(cleanLocations(in.Locations)) == 0 {
		return ErrNoLocations
	}
	return nil
}

// ToTemplate converts a validated form into the upstream payload.
func (in TemplateInput) ToTemplate() ScheduleTemplateSlot {
	day := 0
	if in.DayOfWeek != nil {
		day = *in.DayOfWeek
	}
	return ScheduleTemplateSlot{
		DayOfWeek:   day,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		RouteType:   strings.TrimSpace(in.RouteType),
		Locations:   cleanLocations(in.Locations),
		MaxCapacity: in.MaxCapacity,
	}
}

func cleanLocations(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, loc := range raw {
		if loc = strings.TrimSpace(loc); loc != "" {
			out = append(out, loc)
		}
	}
	return out
}
