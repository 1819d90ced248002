package controllers_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lapakku/models"
)

func TestRegister(t *testing.T) {
	app, db := setupApp(t)

	t.Run("creates a user and never returns the password", func(t *testing.T) {
		resp := performRequest(t, app, http.MethodPost, "/api/users/register", map[string]interface{}{
			"username": "alice",
			"password": "rahasia123",
			"email":    "alice@example.com",
			"fullname": "Alice Lestari",
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "rahasia123")

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &body))
		data := body["data"].(map[string]interface{})
		assert.Equal(t, "alice", data["username"])
		assert.Equal(t, "user", data["role"])
		_, hasPassword := data["password"]
		assert.False(t, hasPassword)

		var stored models.User
		require.NoError(t, db.First(&stored, "username = ?", "alice").Error)
		assert.NotEqual(t, "rahasia123", stored.Password)
	})

	t.Run("rejects a duplicate username", func(t *testing.T) {
		resp := performRequest(t, app, http.MethodPost, "/api/users/register", map[string]interface{}{
			"username": "alice",
			"password": "lainnya123",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "username already taken", decodeBody(t, resp)["msg"])
	})

	t.Run("rejects a missing password", func(t *testing.T) {
		resp := performRequest(t, app, http.MethodPost, "/api/users/register", map[string]interface{}{
			"username": "bob",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	app, db := setupApp(t)

	seedUser(t, db, "charlie") // password secret123

	t.Run("returns the user and a token", func(t *testing.T) {
		resp := performRequest(t, app, http.MethodPost, "/api/users/login", map[string]interface{}{
			"username": "charlie",
			"password": "secret123",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		data := decodeBody(t, resp)["data"].(map[string]interface{})
		assert.NotEmpty(t, data["token"])
		user := data["user"].(map[string]interface{})
		assert.Equal(t, "charlie", user["username"])
	})

	t.Run("returns 400 for a wrong password", func(t *testing.T) {
		resp := performRequest(t, app, http.MethodPost, "/api/users/login", map[string]interface{}{
			"username": "charlie",
			"password": "salah",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("returns 404 for an unknown username", func(t *testing.T) {
		resp := performRequest(t, app, http.MethodPost, "/api/users/login", map[string]interface{}{
			"username": "nobody",
			"password": "secret123",
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestUserLifecycle(t *testing.T) {
	app, db := setupApp(t)

	user := seedUser(t, db, "diana")

	t.Run("updates profile fields and keeps the rest", func(t *testing.T) {
		resp := performRequest(t, app, http.MethodPut, fmt.Sprintf("/api/users/%d", user.ID),
			map[string]interface{}{"fullname": "Diana Putri"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		data := decodeBody(t, resp)["data"].(map[string]interface{})
		assert.Equal(t, "Diana Putri", data["fullname"])
		assert.Equal(t, user.Phone, data["phone"])
	})

	t.Run("changes the password after verifying the old one", func(t *testing.T) {
		resp := performRequest(t, app, http.MethodPost, fmt.Sprintf("/api/users/%d/change-password", user.ID),
			map[string]interface{}{"oldPassword": "secret123", "newPassword": "baru12345"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp = performRequest(t, app, http.MethodPost, "/api/users/login", map[string]interface{}{
			"username": "diana",
			"password": "baru12345",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("rejects a password change with a wrong old password", func(t *testing.T) {
		resp := performRequest(t, app, http.MethodPost, fmt.Sprintf("/api/users/%d/change-password", user.ID),
			map[string]interface{}{"oldPassword": "salah", "newPassword": "baru12345"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("deactivates and reactivates", func(t *testing.T) {
		resp := performRequest(t, app, http.MethodPatch, fmt.Sprintf("/api/users/%d/deactivate", user.ID), nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var stored models.User
		require.NoError(t, db.First(&stored, user.ID).Error)
		assert.False(t, stored.IsActive)

		resp = performRequest(t, app, http.MethodPatch, fmt.Sprintf("/api/users/%d/activate", user.ID), nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		require.NoError(t, db.First(&stored, user.ID).Error)
		assert.True(t, stored.IsActive)
	})

	t.Run("deletes the user", func(t *testing.T) {
		resp := performRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/users/%d", user.ID), nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp = performRequest(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d", user.ID), nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
