package upstream

import (
	"context"
	"net/http"
	"net/url"

	"vcarpool/models"
)

func templatePath(id string) string {
	return "/schedule-templates/" + url.PathEscape(id)
}

func (c *Client) ScheduleTemplates(ctx context.Context, token string) ([]models.ScheduleTemplateSlot, error) {
	var out []models.ScheduleTemplateSlot
	req := request{op: "templates.list", method: http.MethodGet, path: "/schedule-templates", token: token}
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ScheduleTemplate(ctx context.Context, token, id string) (*models.ScheduleTemplateSlot, error) {
	var out models.ScheduleTemplateSlot
	req := request{op: "templates.get", method: http.MethodGet, path: templatePath(id), token: token}
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateScheduleTemplate(ctx context.Context, token string, tmpl models.ScheduleTemplateSlot) (*models.ScheduleTemplateSlot, error) {
	var out models.ScheduleTemplateSlot
	req := request{op: "templates.create", method: http.MethodPost, path: "/schedule-templates", token: token, body: tmpl}
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateScheduleTemplate(ctx context.Context, token, id string, tmpl models.ScheduleTemplateSlot) (*models.ScheduleTemplateSlot, error) {
	var out models.ScheduleTemplateSlot
	req := request{op: "templates.update", method: http.MethodPut, path: templatePath(id), token: token, body: tmpl}
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteScheduleTemplate(ctx context.Context, token, id string) error {
	req := request{op: "templates.delete", method: http.MethodDelete, path: templatePath(id), token: token}
	return c.do(ctx, req, nil)
}
