package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/gatherhub/gatherhub/pkg/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestGetUserFromContext(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, err := GetUserFromContext(c)
	require.ErrorContains(t, err, "user not found on context")

	c.Set("user", "not a user")
	_, err = GetUserFromContext(c)
	require.ErrorContains(t, err, "failed to parse user data")

	want := &model.User{ID: 42}
	c.Set("user", want)
	u, err := GetUserFromContext(c)
	require.NoError(t, err)
	require.Equal(t, want, u)
}
