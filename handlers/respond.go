package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"vcarpool/middleware"
	"vcarpool/services/preference"
	"vcarpool/services/session"
	"vcarpool/services/tasks"
	"vcarpool/services/upstream"
	"vcarpool/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps a service error onto the dashboard's JSON error contract. fallback is the
// message shown when the error carries nothing fit for the user.
func respondError(c *gin.Context, err error, fallback string) {
	logger := getLogger(c)

	var apiErr *upstream.APIError
	var urlErr *url.Error
	switch {
	case errors.Is(err, upstream.ErrUnauthorized):
		middleware.RevokeSession(c)
		utils.JSONRedirectError(c, http.StatusUnauthorized, "Your session has expired", "Please log in again.", "/login")
	case errors.Is(err, upstream.ErrInvalidCredentials):
		utils.JSONError(c, http.StatusUnauthorized, "Invalid credentials", "")
	case errors.As(err, &apiErr):
		if apiErr.StatusCode >= http.StatusInternalServerError {
			logger.Error(fallback, zap.Error(err))
			utils.JSONError(c, http.StatusBadGateway, fallback, apiErr.Detail)
			return
		}
		msg := apiErr.Detail
		if msg == "" {
			msg = fallback
		}
		utils.JSONError(c, apiErr.StatusCode, msg, "")
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &urlErr) && urlErr.Timeout():
		utils.JSONError(c, http.StatusGatewayTimeout, fallback, "The carpool service did not answer in time.")
	case errors.As(err, &urlErr):
		logger.Error(fallback, zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, fallback, "The carpool service is unreachable.")
	case errors.Is(err, utils.ErrInvalidWeek), errors.Is(err, utils.ErrNotMonday):
		utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, preference.ErrUnknownSlot), errors.Is(err, preference.ErrInvalidLevel):
		utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, preference.ErrDraftNotFound):
		utils.JSONError(c, http.StatusNotFound, "No preferences are staged for this week",
			"Staged selections expire after a period of inactivity and are not submitted unseen. Reload the week to review your saved preferences, then submit again.")
	case errors.Is(err, tasks.ErrJobNotFound):
		utils.JSONError(c, http.StatusNotFound, "Schedule job not found", "")
	default:
		logger.Error(fallback, zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, fallback, "")
	}
}

// bindError answers a request whose body failed binding or validation.
func bindError(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
}

// requireSession returns the session loaded by the middleware, answering 401 when there is none.
func requireSession(c *gin.Context) (*session.Context, bool) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		utils.JSONRedirectError(c, http.StatusUnauthorized, "Authentication required", "Please log in.", "/login")
		return nil, false
	}
	return sess, true
}
