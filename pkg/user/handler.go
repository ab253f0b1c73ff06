package user

import (
	"context"
	"net/http"

	"github.com/gatherhub/gatherhub/internal/handler"
	"github.com/gatherhub/gatherhub/internal/util"
	"github.com/gatherhub/gatherhub/pkg/config"
	"github.com/gatherhub/gatherhub/pkg/model"
	"github.com/gatherhub/gatherhub/pkg/token"
	"github.com/gin-gonic/gin"
)

func NewHandler(config config.Config, userService userService, tokenService tokenService) Handler {
	return Handler{
		config:       config,
		userService:  userService,
		tokenService: tokenService,
	}
}

type Handler struct {
	config       config.Config
	userService  userService
	tokenService tokenService
}

type userService interface {
	SignUp(ctx context.Context, name string, email string, password string) (*model.User, error)
	Update(ctx context.Context, actor *model.User, id uint, name, bio, location, interests string) (*model.User, error)
	FindById(ctx context.Context, id uint) (*model.User, error)
	FindAll(ctx context.Context) ([]*model.User, error)
}

type tokenService interface {
	GetTokens(user *model.User, previousTokenId string) (*token.Tokens, error)
	ValidateRefreshToken(ctx context.Context, tokenString string) (*token.RefreshTokenData, error)
	SignOut(userId uint) error
}

type SignUpRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,gte=12,lte=128"`
}

// SignUp user
func (h Handler) SignUp(c *gin.Context) {
	// swagger:route POST /users signUp
	//
	// Sign up
	//
	// Sign up a user. This endpoint is publicly accessible and therefore anyone can sign up.
	//
	// responses:
	//   201: User
	//   400: Error
	//   409: Error
	//   415: Error
	var request SignUpRequest

	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.userService.SignUp(c.Request.Context(), request.Name, request.Email, request.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// SignIn user
func (h Handler) SignIn(c *gin.Context) {
	// swagger:route POST /tokens signIn
	//
	// Sign in
	//
	// Sign in... And get tokens
	//
	// security:
	//   basicAuth:
	//
	// responses:
	//   201: Tokens
	//   401: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	tokens, err := h.tokenService.GetTokens(user, "")
	if err != nil {
		_ = c.Error(err)
		return
	}

	util.SetCookies(c, tokens, http.SameSiteStrictMode, h.config.Hostname, h.config.AccessTokenExpirationSeconds, h.config.RefreshTokenExpirationSeconds)
	c.JSON(http.StatusCreated, tokens)
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RefreshToken user
func (h Handler) RefreshToken(c *gin.Context) {
	// swagger:route POST /refresh refreshToken
	//
	// Refresh tokens
	//
	// Refresh user tokens
	//
	// responses:
	//   201: Tokens
	//   400: Error
	//   401: Error
	//   415: Error
	var request RefreshTokenRequest

	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	ctx := c.Request.Context()
	refreshTokenData, err := h.tokenService.ValidateRefreshToken(ctx, request.RefreshToken)
	if err != nil {
		_ = c.AbortWithError(http.StatusUnauthorized, err)
		return
	}

	user, err := h.userService.FindById(ctx, refreshTokenData.UserId)
	if err != nil {
		_ = c.Error(err)
		return
	}

	tokens, err := h.tokenService.GetTokens(user, refreshTokenData.ID.String())
	if err != nil {
		_ = c.Error(err)
		return
	}

	util.SetCookies(c, tokens, http.SameSiteStrictMode, h.config.Hostname, h.config.AccessTokenExpirationSeconds, h.config.RefreshTokenExpirationSeconds)
	c.JSON(http.StatusCreated, tokens)
}

// SignOut user
func (h Handler) SignOut(c *gin.Context) {
	// swagger:route DELETE /tokens signOut
	//
	// Sign out
	//
	// Sign out user, invalidating all refresh tokens
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200:
	//   401: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.tokenService.SignOut(user.ID); err != nil {
		_ = c.Error(err)
		return
	}

	util.ClearCookies(c, h.config.Hostname)
	c.Status(http.StatusOK)
}

// Me returns the authenticated user
func (h Handler) Me(c *gin.Context) {
	// swagger:route GET /me me
	//
	// Current user
	//
	// Return the authenticated user
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: User
	//   401: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// FindAll users
func (h Handler) FindAll(c *gin.Context) {
	// swagger:route GET /users listUsers
	//
	// List users
	//
	// List all users ordered by email
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: []User
	//   401: Error
	users, err := h.userService.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, users)
}

type UpdateUserRequest struct {
	Name      string `json:"name" binding:"required,lte=255"`
	Bio       string `json:"bio" binding:"lte=2000"`
	Location  string `json:"location" binding:"lte=255"`
	Interests string `json:"interests" binding:"lte=255"`
}

// Update user
func (h Handler) Update(c *gin.Context) {
	// swagger:route PUT /users/{id} updateUser
	//
	// Update user
	//
	// Update a user's profile. Users can only update their own profile.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: User
	//   400: Error
	//   401: Error
	//   403: Error
	//   404: Error
	//   415: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	var request UpdateUserRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	actor, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.userService.Update(c.Request.Context(), actor, id, request.Name, request.Bio, request.Location, request.Interests)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// FindById user
func (h Handler) FindById(c *gin.Context) {
	// swagger:route GET /users/{id} findUserById
	//
	// Find user
	//
	// Find a user by its id
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: User
	//   400: Error
	//   401: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.FindById(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, user)
}
