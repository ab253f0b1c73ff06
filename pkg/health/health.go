package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health of the service
func Health(c *gin.Context) {
	// swagger:route GET /health health
	//
	// Health
	//
	// Service health status
	//
	// responses:
	//   200:
	c.JSON(http.StatusOK, gin.H{"status": "up"})
}
