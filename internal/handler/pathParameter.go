package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetPathParameter parses parameter as an id. Ids are positive, so zero is rejected along with
// anything non-numeric. On failure the request is aborted with a 400 and the caller should return.
func GetPathParameter(c *gin.Context, parameter string) (uint, bool) {
	value := c.Param(parameter)

	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil || id == 0 {
		_ = c.AbortWithError(http.StatusBadRequest, fmt.Errorf("path parameter %q isn't a valid id: %q", parameter, value))
		return 0, false
	}

	return uint(id), true
}
