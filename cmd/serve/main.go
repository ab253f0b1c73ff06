// Package classification GatherHub Service.
//
// Community events platform. Users form groups, schedule events and talk about them.
//
//    Version: 0.1.0
//    License: TODO
//    Contact: <info@gatherhub.org> https://github.com/gatherhub/gatherhub
//
//    Consumes:
//      - application/json
//
//    Produces:
//      - application/json
//
//    SecurityDefinitions:
//      basicAuth:
//        type: basic
//      oauth2:
//        type: oauth2
//        tokenUrl: /tokens
//        refreshUrl: /refresh
//        flow: password
// swagger:meta
package main

import (
	stdlog "log"
	"log/slog"
	"os"

	"github.com/gatherhub/gatherhub/internal/handler"
	"github.com/gatherhub/gatherhub/internal/log"
	"github.com/gatherhub/gatherhub/internal/middleware"
	"github.com/gatherhub/gatherhub/internal/server"
	"github.com/gatherhub/gatherhub/pkg/comment"
	"github.com/gatherhub/gatherhub/pkg/config"
	"github.com/gatherhub/gatherhub/pkg/event"
	"github.com/gatherhub/gatherhub/pkg/group"
	"github.com/gatherhub/gatherhub/pkg/message"
	"github.com/gatherhub/gatherhub/pkg/storage"
	"github.com/gatherhub/gatherhub/pkg/token"
	"github.com/gatherhub/gatherhub/pkg/user"
	"github.com/go-mail/mail"
)

func main() {
	if err := run(); err != nil {
		stdlog.Fatal(err)
	}
}

func run() error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	logger := newLogger(cfg.LogMode)
	slog.SetDefault(logger)

	db, err := storage.NewDatabase(logger, cfg.Postgresql)
	if err != nil {
		return err
	}

	redisClient, err := storage.NewRedis(cfg.Redis)
	if err != nil {
		return err
	}

	if err := handler.RegisterValidation(); err != nil {
		return err
	}

	dialer := mail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)

	userRepository := user.NewRepository(db)
	userService := user.NewService(logger, userRepository, dialer)

	tokenRepository := token.NewRepository(redisClient)
	tokenService := token.NewService(logger, tokenRepository, cfg.PrivateKey, cfg.AccessTokenExpirationSeconds, cfg.RefreshTokenSecretKey, cfg.RefreshTokenExpirationSeconds)

	groupRepository := group.NewRepository(db)
	groupService := group.NewService(groupRepository)

	eventRepository := event.NewRepository(db)
	eventService := event.NewService(eventRepository, groupService)

	commentRepository := comment.NewRepository(db)
	commentService := comment.NewService(commentRepository, eventService)

	messageRepository := message.NewRepository(db)
	messageService := message.NewService(messageRepository, groupService)

	authenticationMiddleware := middleware.NewAuthentication(&cfg.PrivateKey.PublicKey, userService)

	handlers := server.Handlers{
		User:    user.NewHandler(cfg, userService, tokenService),
		Group:   group.NewHandler(groupService),
		Event:   event.NewHandler(eventService),
		Comment: comment.NewHandler(commentService),
		Message: message.NewHandler(messageService),
	}

	r := server.GetEngine(logger, cfg.BasePath, authenticationMiddleware, handlers)
	return r.Run()
}

func newLogger(logMode string) *slog.Logger {
	if logMode == "pretty" {
		return slog.New(log.New(log.NewPrettyJSONHandler(os.Stdout, nil)))
	}
	return slog.New(log.New(slog.NewJSONHandler(os.Stdout, nil)))
}
