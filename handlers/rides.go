package handlers

import (
	"net/http"
	"sort"
	"time"

	"vcarpool/models"
	"vcarpool/services/upstream"
	"vcarpool/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

type RideHandler struct {
	API upstream.CarpoolAPI
	Now func() time.Time
}

func NewRideHandler(api upstream.CarpoolAPI) *RideHandler {
	return &RideHandler{API: api, Now: time.Now}
}

// RideView is one of the driver's assignments joined with its template slot.
type RideView struct {
	models.RideAssignment
	Label     string   `json:"label"`
	DayOfWeek int      `json:"day_of_week"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
	RouteType string   `json:"route_type"`
	Locations []string `json:"locations"`
}

// ParentRides handles GET /api/rides: the signed-in driver's assignments for a week, which
// defaults to the current one.
func (h *RideHandler) ParentRides(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	week, err := utils.ResolveWeek(c.Query("week_start_date"), h.Now(), utils.CurrentMonday)
	if err != nil {
		respondError(c, err, "Invalid week")
		return
	}

	var (
		templates   []models.ScheduleTemplateSlot
		assignments []models.RideAssignment
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		templates, err = h.API.ScheduleTemplates(ctx, sess.Token)
		return err
	})
	g.Go(func() error {
		var err error
		assignments, err = h.API.Schedule(ctx, sess.Token, week)
		if upstream.IsNotFound(err) {
			assignments, err = nil, nil
		}
		return err
	})
	if err := g.Wait(); err != nil {
		respondError(c, err, "Failed to load rides")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"week_start_date": week,
		"rides":           driverRides(sess.User.ID, templates, assignments),
	})
}

// driverRides keeps the driver's own assignments, ordered by date then start time.
func driverRides(driverID string, templates []models.ScheduleTemplateSlot, assignments []models.RideAssignment) []RideView {
	slots := make(map[string]models.ScheduleTemplateSlot, len(templates))
	for _, t := range templates {
		slots[t.ID] = t
	}

	rides := []RideView{}
	for _, a := range assignments {
		if a.DriverParentID != driverID {
			continue
		}
		view := RideView{RideAssignment: a, Label: "Unknown slot"}
		if slot, ok := slots[a.TemplateSlotID]; ok {
			view.Label = slot.Label()
			view.DayOfWeek = slot.DayOfWeek
			view.StartTime = slot.StartTime
			view.EndTime = slot.EndTime
			view.RouteType = slot.RouteType
			view.Locations = slot.Locations
		}
		rides = append(rides, view)
	}
	sort.SliceStable(rides, func(i, j int) bool {
		if rides[i].AssignedDate != rides[j].AssignedDate {
			return rides[i].AssignedDate < rides[j].AssignedDate
		}
		return rides[i].StartTime < rides[j].StartTime
	})
	return rides
}

// StudentRides handles GET /api/student/rides.
func (h *RideHandler) StudentRides(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	week, err := utils.ResolveWeek(c.Query("week_start_date"), h.Now(), utils.CurrentMonday)
	if err != nil {
		respondError(c, err, "Invalid week")
		return
	}

	rides, err := h.API.StudentRides(c.Request.Context(), sess.Token, week)
	if err != nil {
		respondError(c, err, "Failed to load rides")
		return
	}
	if rides == nil {
		rides = []models.StudentRide{}
	}
	c.JSON(http.StatusOK, gin.H{"week_start_date": week, "rides": rides})
}
