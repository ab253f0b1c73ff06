package middleware

import (
	"fmt"
	"net/http"

	"github.com/gatherhub/gatherhub/internal/errdef"
	"github.com/gin-gonic/gin"
)

// ErrorHandler translates errors pushed onto the Gin context into HTTP responses. Error bodies
// are {"message": string}. Unclassified errors respond with 500 and only the correlation id, the
// details stay in the logs.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		err := c.Errors.Last()
		if err == nil {
			return
		}
		if c.Writer.Written() {
			return
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.JSON(status, gin.H{"message": err.Error()})
			return
		}

		// nolint:gocritic
		if errdef.IsBadRequest(err) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		} else if errdef.IsUnauthorized(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		} else if errdef.IsForbidden(err) {
			c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
		} else if errdef.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		} else if errdef.IsDuplicated(err) {
			c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
		} else if errdef.IsConflict(err) {
			c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
		} else if errdef.IsUnsupportedMediaType(err) {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"message": err.Error()})
		} else {
			id, _ := GetCorrelationID(c.Request.Context())
			message := fmt.Sprintf("something went wrong. We'll look into it if you send us the id %q", id)
			c.JSON(http.StatusInternalServerError, gin.H{"message": message})
		}
	}
}
