package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gudang/internal/repositories"
	"gudang/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

// newMockModeApp wires the app the way main does when DATABASE_URL is
// not set.
func newMockModeApp() *fiber.App {
	productRepo := repositories.NewMemoryProductRepository()
	productService := services.NewProductService(productRepo, nil)
	return buildApp(productService, "mock")
}

func TestHealthInMockMode(t *testing.T) {
	app := newMockModeApp()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "mock", body["mode"])
}

func TestUnknownAPIRouteReturnsJSON404(t *testing.T) {
	app := newMockModeApp()

	req := httptest.NewRequest(http.MethodGet, "/api/warranty-claims", nil)
	req.Header.Set("X-User-Id", "alice")
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Route not found", body["error"])
}

func TestMockModeCreateAndListFlow(t *testing.T) {
	app := newMockModeApp()

	payload, _ := json.Marshal(map[string]interface{}{
		"name":  "Espresso Machine",
		"brand": "DeLonghi",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "alice")

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created map[string]string
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	assert.NotEmpty(t, created["id"])

	req = httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("X-User-Id", "alice")
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var listed struct {
		Items []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"items"`
		Total  int64 `json:"total"`
		Limit  int   `json:"limit"`
		Offset int   `json:"offset"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	assert.Equal(t, int64(1), listed.Total)
	assert.Equal(t, 20, listed.Limit)
	assert.Len(t, listed.Items, 1)
	assert.Equal(t, created["id"], listed.Items[0].ID)
	assert.Equal(t, "Espresso Machine", listed.Items[0].Name)
}
