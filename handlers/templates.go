package handlers

import (
	"net/http"
	"sort"

	"vcarpool/models"
	"vcarpool/services/upstream"

	"github.com/gin-gonic/gin"
)

// TemplateHandler manages the weekly schedule template slots.
type TemplateHandler struct {
	API      upstream.CarpoolAPI
	Activity ActivityLog
}

func NewTemplateHandler(api upstream.CarpoolAPI, activity ActivityLog) *TemplateHandler {
	return &TemplateHandler{API: api, Activity: activity}
}

type templateView struct {
	models.ScheduleTemplateSlot
	Label string `json:"label"`
}

func toTemplateView(t models.ScheduleTemplateSlot) templateView {
	return templateView{ScheduleTemplateSlot: t, Label: t.Label()}
}

// ListTemplates handles GET /api/admin/templates, ordered by day then start time.
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	templates, err := h.API.ScheduleTemplates(c.Request.Context(), sess.Token)
	if err != nil {
		respondError(c, err, "Failed to load templates")
		return
	}
	sort.SliceStable(templates, func(i, j int) bool {
		if templates[i].DayOfWeek != templates[j].DayOfWeek {
			return templates[i].DayOfWeek < templates[j].DayOfWeek
		}
		return templates[i].StartTime < templates[j].StartTime
	})

	out := make([]templateView, len(templates))
	for i, t := range templates {
		out[i] = toTemplateView(t)
	}
	c.JSON(http.StatusOK, out)
}

func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	tmpl, err := h.API.ScheduleTemplate(c.Request.Context(), sess.Token, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load template")
		return
	}
	c.JSON(http.StatusOK, toTemplateView(*tmpl))
}

// bindTemplate binds and validates the template form, answering 400 on failure.
func bindTemplate(c *gin.Context) (models.ScheduleTemplateSlot, bool) {
	var input models.TemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return models.ScheduleTemplateSlot{}, false
	}
	if err := input.Validate(); err != nil {
		bindError(c, err)
		return models.ScheduleTemplateSlot{}, false
	}
	return input.ToTemplate(), true
}

func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	tmpl, ok := bindTemplate(c)
	if !ok {
		return
	}
	created, err := h.API.CreateScheduleTemplate(c.Request.Context(), sess.Token, tmpl)
	if err != nil {
		respondError(c, err, "Failed to create template")
		return
	}
	recordActivity(c, h.Activity, sess, models.ActionTemplateCreate, created.ID, created.Label())
	c.JSON(http.StatusCreated, toTemplateView(*created))
}

func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	tmpl, ok := bindTemplate(c)
	if !ok {
		return
	}
	id := c.Param("id")
	updated, err := h.API.UpdateScheduleTemplate(c.Request.Context(), sess.Token, id, tmpl)
	if err != nil {
		respondError(c, err, "Failed to update template")
		return
	}
	recordActivity(c, h.Activity, sess, models.ActionTemplateUpdate, id, updated.Label())
	c.JSON(http.StatusOK, toTemplateView(*updated))
}

func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if err := h.API.DeleteScheduleTemplate(c.Request.Context(), sess.Token, id); err != nil {
		respondError(c, err, "Failed to delete template")
		return
	}
	recordActivity(c, h.Activity, sess, models.ActionTemplateDelete, id, "")
	c.Status(http.StatusNoContent)
}
