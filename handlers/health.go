package handlers

import (
	"net/http"

	"vcarpool/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last dependency probe. It answers 503 while anything is down.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	state := "ok"
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
		state = "degraded"
	}
	c.JSON(code, gin.H{"status": state, "dependencies": status})
}
