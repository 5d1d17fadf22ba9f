package upstream

import (
	"context"
	"net/http"
	"net/url"

	"vcarpool/models"
)

func (c *Client) WeeklyPreferences(ctx context.Context, token, week string) ([]models.DriverWeeklyPreference, error) {
	var out []models.DriverWeeklyPreference
	req := request{op: "preferences.get", method: http.MethodGet, path: "/parent/weekly-preferences", token: token, query: weekQuery(week)}
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SubmitWeeklyPreferences replaces the caller's preferences for the week.
func (c *Client) SubmitWeeklyPreferences(ctx context.Context, token, week string, prefs []models.PreferenceSubmission) ([]models.DriverWeeklyPreference, error) {
	if prefs == nil {
		prefs = []models.PreferenceSubmission{}
	}
	var out []models.DriverWeeklyPreference
	req := request{op: "preferences.submit", method: http.MethodPost, path: "/parent/weekly-preferences", token: token, query: weekQuery(week), body: prefs}
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Schedule(ctx context.Context, token, week string) ([]models.RideAssignment, error) {
	var out []models.RideAssignment
	req := request{op: "schedule.get", method: http.MethodGet, path: "/admin/schedule", token: token, query: weekQuery(week)}
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GenerateSchedule(ctx context.Context, token, week string) ([]models.RideAssignment, error) {
	var out []models.RideAssignment
	req := request{op: "schedule.generate", method: http.MethodPost, path: "/admin/generate-schedule", token: token, query: weekQuery(week)}
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) StudentRides(ctx context.Context, token, week string) ([]models.StudentRide, error) {
	var out []models.StudentRide
	req := request{op: "student.rides", method: http.MethodGet, path: "/student/rides", token: token, query: weekQuery(week)}
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CarpoolStatistics(ctx context.Context, token string, timeframe models.Timeframe) (*models.CarpoolStatistics, error) {
	var out models.CarpoolStatistics
	query := url.Values{"timeframe": []string{string(timeframe)}}
	req := request{op: "statistics.carpool", method: http.MethodGet, path: "/statistics/carpool", token: token, query: query}
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
