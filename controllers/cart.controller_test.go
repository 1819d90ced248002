package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lapakku/models"
)

func TestAddToCart(t *testing.T) {
	app, db := setupApp(t)

	user := seedUser(t, db, "ivy")
	product := seedProduct(t, db, user.ID, "Teh botol", 5, 100)

	t.Run("creates a new cart line", func(t *testing.T) {
		resp := performRequest(t, app, http.MethodPost, "/api/cart", map[string]interface{}{
			"user_id":    user.ID,
			"product_id": product.ID,
			"quantity":   2,
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		data := decodeBody(t, resp)["data"].(map[string]interface{})
		assert.Equal(t, 2.0, data["quantity"])
	})

	t.Run("adding the same product merges quantities", func(t *testing.T) {
		resp := performRequest(t, app, http.MethodPost, "/api/cart", map[string]interface{}{
			"user_id":    user.ID,
			"product_id": product.ID,
			"quantity":   3,
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		data := decodeBody(t, resp)["data"].(map[string]interface{})
		assert.Equal(t, 5.0, data["quantity"])

		var count int64
		db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("returns 404 for an unknown product", func(t *testing.T) {
		resp := performRequest(t, app, http.MethodPost, "/api/cart", map[string]interface{}{
			"user_id":    user.ID,
			"product_id": 9999,
			"quantity":   1,
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("returns 400 for a non-positive quantity", func(t *testing.T) {
		resp := performRequest(t, app, http.MethodPost, "/api/cart", map[string]interface{}{
			"user_id":    user.ID,
			"product_id": product.ID,
			"quantity":   0,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestCartReadsAndSummary(t *testing.T) {
	app, db := setupApp(t)

	user := seedUser(t, db, "judy")
	tea := seedProduct(t, db, user.ID, "Teh", 5, 100)
	coffee := seedProduct(t, db, user.ID, "Kopi", 12, 40)

	require.NoError(t, db.Create(&models.CartItem{UserID: user.ID, ProductID: tea.ID, Quantity: 2}).Error)
	require.NoError(t, db.Create(&models.CartItem{UserID: user.ID, ProductID: coffee.ID, Quantity: 1}).Error)

	t.Run("lists the cart with products preloaded", func(t *testing.T) {
		resp := performRequest(t, app, http.MethodGet, fmt.Sprintf("/api/cart/user/%d", user.ID), nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, 2.0, body["count"])
		first := body["data"].([]interface{})[0].(map[string]interface{})
		assert.NotNil(t, first["product"])
	})

	t.Run("summarizes with live prices", func(t *testing.T) {
		resp := performRequest(t, app, http.MethodGet, fmt.Sprintf("/api/cart/user/%d/summary", user.ID), nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		summary := decodeBody(t, resp)["data"].(map[string]interface{})
		assert.Equal(t, 2.0, summary["total_items"])
		assert.Equal(t, 3.0, summary["total_quantity"])
		assert.Equal(t, 22.0, summary["total_price"])
	})
}

func TestCartMutations(t *testing.T) {
	app, db := setupApp(t)

	user := seedUser(t, db, "kate")
	product := seedProduct(t, db, user.ID, "Sabun", 3, 60)

	item := models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, db.Create(&item).Error)

	t.Run("updates the quantity", func(t *testing.T) {
		resp := performRequest(t, app, http.MethodPut, fmt.Sprintf("/api/cart/%d", item.ID),
			map[string]interface{}{"quantity": 4})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		data := decodeBody(t, resp)["data"].(map[string]interface{})
		assert.Equal(t, 4.0, data["quantity"])
	})

	t.Run("patches the quantity", func(t *testing.T) {
		resp := performRequest(t, app, http.MethodPatch, fmt.Sprintf("/api/cart/%d/quantity", item.ID),
			map[string]interface{}{"quantity": 2})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		data := decodeBody(t, resp)["data"].(map[string]interface{})
		assert.Equal(t, 2.0, data["quantity"])
	})

	t.Run("removes a single line", func(t *testing.T) {
		resp := performRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/cart/%d", item.ID), nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var count int64
		db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("clears the whole cart for a user", func(t *testing.T) {
		require.NoError(t, db.Create(&models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}).Error)
		require.NoError(t, db.Create(&models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 2}).Error)

		resp := performRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/cart/user/%d", user.ID), nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var count int64
		db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("returns 404 for an unknown cart item", func(t *testing.T) {
		resp := performRequest(t, app, http.MethodDelete, "/api/cart/9999", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
