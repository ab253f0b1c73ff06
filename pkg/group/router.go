package group

import (
	"github.com/gatherhub/gatherhub/internal/middleware"
	"github.com/gin-gonic/gin"
)

func Routes(r *gin.RouterGroup, authenticationMiddleware middleware.AuthenticationMiddleware, handler Handler) {
	tokenAuthenticationRouter := r.Group("")
	tokenAuthenticationRouter.Use(authenticationMiddleware.TokenAuthentication)
	tokenAuthenticationRouter.POST("/groups", handler.Create)
	tokenAuthenticationRouter.GET("/groups", handler.FindAll)
	tokenAuthenticationRouter.GET("/groups/:id", handler.Find)
	tokenAuthenticationRouter.PUT("/groups/:id", handler.Update)
	tokenAuthenticationRouter.DELETE("/groups/:id", handler.Delete)
	tokenAuthenticationRouter.POST("/groups/:id/members", handler.Join)
	tokenAuthenticationRouter.GET("/groups/:id/members", handler.FindMembers)
	tokenAuthenticationRouter.PUT("/groups/:id/members/:userId", handler.UpdateMemberRole)
	tokenAuthenticationRouter.DELETE("/groups/:id/members/:userId", handler.RemoveMember)
}
