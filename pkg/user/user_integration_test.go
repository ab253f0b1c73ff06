package user_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gatherhub/gatherhub/pkg/inttest"
	"github.com/gatherhub/gatherhub/pkg/model"
	"github.com/stretchr/testify/assert"
)

func TestUserProfileUpdate(t *testing.T) {
	t.Parallel()

	client, _ := inttest.SetupApp(t)

	owner, ownerToken := client.SignUp(t, "owner", "owner@gatherhub.org", "oneSecurePassword")
	_, otherToken := client.SignUp(t, "other", "other@gatherhub.org", "oneSecurePassword")

	t.Run("owner updates their profile", func(t *testing.T) {
		body := `{"name": "Owner Renamed", "bio": "weekend hiker", "location": "Lisbon", "interests": "running, cycling"}`
		var updated model.User
		client.PutJSON(t, fmt.Sprintf("/users/%d", owner.ID), strings.NewReader(body), &updated, inttest.WithAuthToken(ownerToken))

		assert.Equal(t, "Owner Renamed", updated.Name)
		assert.Equal(t, "weekend hiker", updated.Bio)

		var fetched model.User
		client.GetJSON(t, fmt.Sprintf("/users/%d", owner.ID), &fetched, inttest.WithAuthToken(ownerToken))
		assert.Equal(t, "Owner Renamed", fetched.Name)
		assert.Equal(t, "Lisbon", fetched.Location)
		assert.Equal(t, "running, cycling", fetched.Interests)
	})

	t.Run("updating someone else's profile is forbidden", func(t *testing.T) {
		status, _ := client.DoStatus(t, http.MethodPut, fmt.Sprintf("/users/%d", owner.ID), strings.NewReader(`{"name": "hijacked"}`),
			inttest.WithAuthToken(otherToken), inttest.WithHeader("Content-Type", "application/json"))

		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("name is required", func(t *testing.T) {
		status, _ := client.DoStatus(t, http.MethodPut, fmt.Sprintf("/users/%d", owner.ID), strings.NewReader(`{"bio": "no name"}`),
			inttest.WithAuthToken(ownerToken), inttest.WithHeader("Content-Type", "application/json"))

		assert.Equal(t, http.StatusBadRequest, status)
	})
}
