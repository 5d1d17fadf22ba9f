package handlers

import (
	"net/http"
	"strings"

	"vcarpool/models"
	"vcarpool/services/upstream"
	"vcarpool/utils"

	"github.com/gin-gonic/gin"
)

type SwapHandler struct {
	API      upstream.CarpoolAPI
	Activity ActivityLog
}

func NewSwapHandler(api upstream.CarpoolAPI, activity ActivityLog) *SwapHandler {
	return &SwapHandler{API: api, Activity: activity}
}

type swapListView struct {
	Incoming []models.SwapRequest `json:"incoming"`
	Outgoing []models.SwapRequest `json:"outgoing"`
}

var swapStatuses = map[string]bool{
	models.SwapStatusPending:  true,
	models.SwapStatusAccepted: true,
	models.SwapStatusRejected: true,
}

// ListSwapRequests handles GET /api/swap-requests?status=, split into requests addressed to the
// driver and requests the driver sent.
func (h *SwapHandler) ListSwapRequests(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	status := strings.ToUpper(strings.TrimSpace(c.Query("status")))
	if status != "" && !swapStatuses[status] {
		utils.JSONError(c, http.StatusBadRequest, "Invalid status", "status must be PENDING, ACCEPTED or REJECTED")
		return
	}

	swaps, err := h.API.SwapRequests(c.Request.Context(), sess.Token, status)
	if err != nil {
		respondError(c, err, "Failed to load swap requests")
		return
	}

	view := swapListView{Incoming: []models.SwapRequest{}, Outgoing: []models.SwapRequest{}}
	for _, s := range swaps {
		switch sess.User.ID {
		case s.RequestedDriverID:
			view.Incoming = append(view.Incoming, s)
		case s.RequestingDriverID:
			view.Outgoing = append(view.Outgoing, s)
		}
	}
	c.JSON(http.StatusOK, view)
}

// CreateSwapRequest handles POST /api/swap-requests.
func (h *SwapHandler) CreateSwapRequest(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	var input models.SwapRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	if input.RequestedDriverID == sess.User.ID {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", "You cannot request a swap with yourself.")
		return
	}

	swap, err := h.API.CreateSwapRequest(c.Request.Context(), sess.Token, input)
	if err != nil {
		respondError(c, err, "Failed to create swap request")
		return
	}
	recordActivity(c, h.Activity, sess, models.ActionSwapCreate, swap.ID, input.RideAssignmentID)
	c.JSON(http.StatusCreated, swap)
}

// AcceptSwapRequest handles PUT /api/swap-requests/:id/accept.
func (h *SwapHandler) AcceptSwapRequest(c *gin.Context) {
	h.decide(c, true)
}

// RejectSwapRequest handles PUT /api/swap-requests/:id/reject.
func (h *SwapHandler) RejectSwapRequest(c *gin.Context) {
	h.decide(c, false)
}

func (h *SwapHandler) decide(c *gin.Context, accept bool) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	id := c.Param("id")

	var (
		swap   *models.SwapRequest
		err    error
		action = models.ActionSwapReject
	)
	if accept {
		action = models.ActionSwapAccept
		swap, err = h.API.AcceptSwapRequest(c.Request.Context(), sess.Token, id)
	} else {
		swap, err = h.API.RejectSwapRequest(c.Request.Context(), sess.Token, id)
	}
	if err != nil {
		respondError(c, err, "Failed to update swap request")
		return
	}
	recordActivity(c, h.Activity, sess, action, id, "")
	c.JSON(http.StatusOK, swap)
}
