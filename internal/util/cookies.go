package util

import (
	"net/http"

	"github.com/gatherhub/gatherhub/pkg/token"
	"github.com/gin-gonic/gin"
)

// SetCookies stores the tokens as cookies so browser clients don't have to keep them themselves.
// The refresh token is scoped to the refresh endpoint.
func SetCookies(c *gin.Context, tokens *token.Tokens, sameSiteMode http.SameSite, hostname string, accessTokenExpirationSeconds int, refreshTokenExpirationSeconds int) {
	c.SetSameSite(sameSiteMode)
	c.SetCookie("accessToken", tokens.AccessToken, accessTokenExpirationSeconds, "/", hostname, true, true)
	c.SetCookie("refreshToken", tokens.RefreshToken, refreshTokenExpirationSeconds, "/refresh", hostname, true, true)
}

// ClearCookies expires both token cookies.
func ClearCookies(c *gin.Context, hostname string) {
	c.SetCookie("accessToken", "", -1, "/", hostname, true, true)
	c.SetCookie("refreshToken", "", -1, "/refresh", hostname, true, true)
}
