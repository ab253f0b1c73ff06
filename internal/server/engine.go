package server

import (
	"log/slog"

	"github.com/gatherhub/gatherhub/internal/middleware"
	"github.com/gatherhub/gatherhub/pkg/comment"
	"github.com/gatherhub/gatherhub/pkg/event"
	"github.com/gatherhub/gatherhub/pkg/group"
	"github.com/gatherhub/gatherhub/pkg/health"
	"github.com/gatherhub/gatherhub/pkg/message"
	"github.com/gatherhub/gatherhub/pkg/user"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	User    user.Handler
	Group   group.Handler
	Event   event.Handler
	Comment comment.Handler
	Message message.Handler
}

func GetEngine(logger *slog.Logger, basePath string, authenticationMiddleware middleware.AuthenticationMiddleware, handlers Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("authorization")
	r.Use(cors.New(corsConfig))

	r.Use(middleware.CorrelationID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.ErrorHandler())

	router := r.Group(basePath)
	router.GET("/health", health.Health)

	user.Routes(router, authenticationMiddleware, handlers.User)
	group.Routes(router, authenticationMiddleware, handlers.Group)
	event.Routes(router, authenticationMiddleware, handlers.Event)
	comment.Routes(router, authenticationMiddleware, handlers.Comment)
	message.Routes(router, authenticationMiddleware, handlers.Message)

	return r
}
