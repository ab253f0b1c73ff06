package model_test

import (
	"context"
	"testing"

	"github.com/gatherhub/gatherhub/pkg/model"
	"github.com/stretchr/testify/assert"
)

func TestGetUserFromContext(t *testing.T) {
	ctx := context.Background()

	got, ok := model.GetUserFromContext(ctx)
	assert.False(t, ok)
	assert.Nil(t, got)

	want := &model.User{ID: 1, Email: "user@gatherhub.dev"}
	ctx = model.NewContextWithUser(ctx, want)

	got, ok = model.GetUserFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, want, got)
}
