package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/candela/internal/db"
	"github.com/terraincognita07/candela/internal/models"
	"github.com/terraincognita07/candela/internal/services"
)

type testApp struct {
	app     *fiber.App
	repos   *db.Repositories
	handler *Handler
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "candela-test.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	repos := db.NewRepositories(database)
	acknowledge := services.NewAcknowledgeService(repos.Contacts, repos.Users)
	scheduler := services.NewReminderScheduler(repos.Users, repos.Contacts, services.NewTelegramNotifier(""), time.UTC)

	handler := NewHandler(repos, acknowledge, scheduler, time.UTC)
	app := fiber.New()
	RegisterRoutes(app, handler)

	return &testApp{app: app, repos: repos, handler: handler}
}

// freezeToday pins the handler clock so derived statuses are deterministic.
func (fixture *testApp) freezeToday(t *testing.T, value string) {
	t.Helper()

	today, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse frozen day %q: %v", value, err)
	}
	fixture.handler.now = func() time.Time { return today }
}

func (fixture *testApp) seedUser(t *testing.T, email string) models.User {
	t.Helper()

	user := models.User{Email: email, DisplayName: "Test User", NotificationsEnabled: true}
	if err := fixture.repos.Users.Create(&user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func (fixture *testApp) request(t *testing.T, method string, path string, payload any, expectedStatus int) []byte {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := fixture.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("%s %s read body failed: %v", method, path, err)
	}
	if response.StatusCode != expectedStatus {
		t.Fatalf("%s %s expected status %d, got %d: %s", method, path, expectedStatus, response.StatusCode, raw)
	}
	return raw
}

func decodeJSON[T any](t *testing.T, raw []byte) T {
	t.Helper()

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		t.Fatalf("decode response %s: %v", raw, err)
	}
	return value
}

func mustStatus(t *testing.T, view contactView, want string) {
	t.Helper()

	if string(view.Status) != want {
		t.Fatalf("contact %q status = %s, want %s", view.Name, view.Status, want)
	}
}
