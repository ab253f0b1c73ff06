package event

import (
	"github.com/gatherhub/gatherhub/internal/middleware"
	"github.com/gin-gonic/gin"
)

func Routes(r *gin.RouterGroup, authenticationMiddleware middleware.AuthenticationMiddleware, handler Handler) {
	tokenAuthenticationRouter := r.Group("")
	tokenAuthenticationRouter.Use(authenticationMiddleware.TokenAuthentication)
	tokenAuthenticationRouter.POST("/groups/:id/events", handler.Create)
	tokenAuthenticationRouter.GET("/groups/:id/events", handler.FindAllByGroup)
	tokenAuthenticationRouter.GET("/events", handler.FindAll)
	tokenAuthenticationRouter.GET("/events/:id", handler.Find)
	tokenAuthenticationRouter.PUT("/events/:id", handler.Update)
	tokenAuthenticationRouter.DELETE("/events/:id", handler.Delete)
	tokenAuthenticationRouter.POST("/events/:id/members", handler.Join)
	tokenAuthenticationRouter.DELETE("/events/:id/members", handler.Leave)
	tokenAuthenticationRouter.GET("/events/:id/members", handler.FindMembers)
}
