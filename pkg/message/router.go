package message

import (
	"github.com/gatherhub/gatherhub/internal/middleware"
	"github.com/gin-gonic/gin"
)

func Routes(r *gin.RouterGroup, authenticationMiddleware middleware.AuthenticationMiddleware, handler Handler) {
	tokenAuthenticationRouter := r.Group("")
	tokenAuthenticationRouter.Use(authenticationMiddleware.TokenAuthentication)
	tokenAuthenticationRouter.POST("/groups/:id/messages", handler.Create)
	tokenAuthenticationRouter.GET("/groups/:id/messages", handler.FindAllByGroup)
}
