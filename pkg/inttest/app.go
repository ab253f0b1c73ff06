package inttest

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/gatherhub/gatherhub/internal/middleware"
	"github.com/gatherhub/gatherhub/internal/server"
	"github.com/gatherhub/gatherhub/pkg/comment"
	"github.com/gatherhub/gatherhub/pkg/config"
	"github.com/gatherhub/gatherhub/pkg/event"
	"github.com/gatherhub/gatherhub/pkg/group"
	"github.com/gatherhub/gatherhub/pkg/message"
	"github.com/gatherhub/gatherhub/pkg/model"
	"github.com/gatherhub/gatherhub/pkg/token"
	"github.com/gatherhub/gatherhub/pkg/user"
	"github.com/go-mail/mail"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// SetupApp wires the whole service against containerized PostgreSQL and Redis and serves it over
// HTTP. Emails are discarded.
func SetupApp(t *testing.T) (*HTTPClient, *gorm.DB) {
	t.Helper()

	db := SetupDB(t)
	redisClient := SetupRedis(t)

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err, "failed to generate RSA key")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	userService := user.NewService(logger, user.NewRepository(db), discardDialer{})
	tokenService := token.NewService(logger, token.NewRepository(redisClient), privateKey, 3600, "not-so-secret", 3600)

	groupService := group.NewService(group.NewRepository(db))
	eventService := event.NewService(event.NewRepository(db), groupService)
	commentService := comment.NewService(comment.NewRepository(db), eventService)
	messageService := message.NewService(message.NewRepository(db), groupService)

	authenticationMiddleware := middleware.NewAuthentication(&privateKey.PublicKey, userService)

	cfg := config.Config{
		Hostname:                      "localhost",
		PrivateKey:                    privateKey,
		AccessTokenExpirationSeconds:  3600,
		RefreshTokenSecretKey:         "not-so-secret",
		RefreshTokenExpirationSeconds: 3600,
	}

	handlers := server.Handlers{
		User:    user.NewHandler(cfg, userService, tokenService),
		Group:   group.NewHandler(groupService),
		Event:   event.NewHandler(eventService),
		Comment: comment.NewHandler(commentService),
		Message: message.NewHandler(messageService),
	}

	engine := server.GetEngine(logger, "", authenticationMiddleware, handlers)
	return SetupHTTPServer(t, engine), db
}

// SignUp registers a user and signs them in, returning the created user and a bearer token.
func (hc *HTTPClient) SignUp(t *testing.T, name, email, password string) (model.User, string) {
	t.Helper()

	var u model.User
	signUp := fmt.Sprintf(`{"name": %q, "email": %q, "password": %q}`, name, email, password)
	hc.PostJSON(t, "/users", strings.NewReader(signUp), &u)

	tokens := hc.SignIn(t, email, password)
	return u, tokens.AccessToken
}

// SignIn exchanges the user's credentials for tokens.
func (hc *HTTPClient) SignIn(t *testing.T, email, password string) token.Tokens {
	t.Helper()

	req := hc.newRequest(t, http.MethodPost, "/tokens", nil, WithBasicAuth(email, password))
	res := hc.do(t, req)
	defer func() {
		require.NoError(t, res.Body.Close(), "failed to close HTTP response body")
	}()
	require.Equal(t, http.StatusCreated, res.StatusCode, "failed to sign in %q", email)

	var tokens token.Tokens
	require.NoError(t, json.NewDecoder(res.Body).Decode(&tokens), "failed to decode tokens")
	return tokens
}

type discardDialer struct{}

func (discardDialer) DialAndSend(m ...*mail.Message) error {
	return nil
}
