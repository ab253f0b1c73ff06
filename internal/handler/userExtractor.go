package handler

import (
	"github.com/gatherhub/gatherhub/internal/errdef"
	"github.com/gatherhub/gatherhub/pkg/model"

	"github.com/gin-gonic/gin"
)

func GetUserFromContext(c *gin.Context) (*model.User, error) {
	userData, exists := c.Get("user")
	if !exists {
		return nil, errdef.NewUnauthorized("user not found on context")
	}

	user, ok := userData.(*model.User)
	if !ok {
		return nil, errdef.NewUnauthorized("failed to parse user data")
	}
	return user, nil
}
