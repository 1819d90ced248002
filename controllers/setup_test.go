package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lapakku/initializers"
	"lapakku/models"
	"lapakku/routes"
	"lapakku/utils"
)

const testJwtSecret = "test-secret"

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	// A named in-memory database so every connection in the pool sees
	// the same data, unique per test to avoid cross-test bleed.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "failed to connect test database")

	require.NoError(t, initializers.Migrate(db), "failed to migrate test database")

	config := &initializers.Config{
		JwtSecret:    testJwtSecret,
		JwtExpiresIn: time.Hour,
	}

	app := fiber.New()
	routes.SetupRoutes(app, db, config)
	routes.NotFoundRoute(app)

	return app, db
}

func performRequest(t *testing.T, app *fiber.App, method, path string, body interface{}, headers ...map[string]string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, h := range headers {
		for k, v := range h {
			req.Header.Set(k, v)
		}
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Username: username,
		Password: string(hashed),
		Role:     "user",
		Phone:    "081234567890",
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedProduct(t *testing.T, db *gorm.DB, sellerID uint, name string, price float64, stock int) *models.Product {
	t.Helper()

	product := models.Product{
		SellerID: sellerID,
		Name:     name,
		Price:    price,
		Stock:    stock,
		IsActive: true,
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

func authHeader(t *testing.T, userID uint) map[string]string {
	t.Helper()

	token, err := utils.GenerateToken(time.Hour, userID, testJwtSecret)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}
