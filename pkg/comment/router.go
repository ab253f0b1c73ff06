package comment

import (
	"github.com/gatherhub/gatherhub/internal/middleware"
	"github.com/gin-gonic/gin"
)

func Routes(r *gin.RouterGroup, authenticationMiddleware middleware.AuthenticationMiddleware, handler Handler) {
	tokenAuthenticationRouter := r.Group("")
	tokenAuthenticationRouter.Use(authenticationMiddleware.TokenAuthentication)
	tokenAuthenticationRouter.POST("/events/:id/comments", handler.Create)
	tokenAuthenticationRouter.GET("/events/:id/comments", handler.FindAllByEvent)
	tokenAuthenticationRouter.PUT("/comments/:id", handler.Update)
	tokenAuthenticationRouter.DELETE("/comments/:id", handler.Delete)
}
