package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tdac-backend/internal/adapters/persistence/models"
	"tdac-backend/internal/adapters/persistence/repositories"
	"tdac-backend/internal/config"
	"tdac-backend/internal/core/services"
	"tdac-backend/internal/pkg/password"
)

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:        "test-secret",
			ExpiryMinutes: 60,
		},
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

type loginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
	Errors  map[string]string
	Data    struct {
		Token string `json:"token"`
		User  struct {
			ID    uint   `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	} `json:"data"`
}

func newAuthTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db := newTestDB(t)
	hash, err := password.Hash("supersecret123")
	if err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&models.Admin{Email: "admin@example.com", Password: hash}).Error; err != nil {
		t.Fatal(err)
	}

	authService := services.NewAuthService(repositories.NewAdminRepository(db), testConfig())
	handler := NewAuthHandler(authService)

	app := fiber.New()
	app.Post("/api/admin/login", handler.Login)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decodeLogin(t *testing.T, resp *http.Response) loginResponse {
	t.Helper()

	var out loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return out
}

func TestLoginSuccess(t *testing.T) {
	app := newAuthTestApp(t)

	resp := postJSON(t, app, "/api/admin/login",
		`{"email":"admin@example.com","password":"supersecret123"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	out := decodeLogin(t, resp)
	if !out.Success {
		t.Error("success = false")
	}
	if out.Data.Token == "" {
		t.Error("token should not be empty")
	}
	if out.Data.User.Email != "admin@example.com" {
		t.Errorf("user email = %q", out.Data.User.Email)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	app := newAuthTestApp(t)

	resp := postJSON(t, app, "/api/admin/login",
		`{"email":"admin@example.com","password":"wrongpassword"}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	app := newAuthTestApp(t)

	// Unknown email must look exactly like a wrong password.
	resp := postJSON(t, app, "/api/admin/login",
		`{"email":"nobody@example.com","password":"supersecret123"}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestLoginMissingFields(t *testing.T) {
	app := newAuthTestApp(t)

	resp := postJSON(t, app, "/api/admin/login", `{}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	out := decodeLogin(t, resp)
	if out.Errors["email"] == "" || out.Errors["password"] == "" {
		t.Errorf("errors = %v, want entries for email and password", out.Errors)
	}
}

func TestLoginInvalidEmailFormat(t *testing.T) {
	app := newAuthTestApp(t)

	resp := postJSON(t, app, "/api/admin/login",
		`{"email":"not-an-email","password":"supersecret123"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}
