package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"taskforge/application/serviceimpl"
	"taskforge/domain/models"
	"taskforge/infrastructure/messaging"
	"taskforge/infrastructure/postgres"
	"taskforge/interfaces/api/handlers"
	"taskforge/interfaces/api/middleware"
	"taskforge/interfaces/api/routes"
	"taskforge/pkg/auth"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Task{}))

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	userService := serviceimpl.NewUserService(postgres.NewUserRepository(db), tokens, nil)
	taskService := serviceimpl.NewTaskService(postgres.NewTaskRepository(db), messaging.NewNoopPublisher())

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
	})

	h := handlers.NewHandlers(&handlers.Services{
		UserService:  userService,
		TaskService:  taskService,
		TokenManager: tokens,
	})
	gate := middleware.Protected(tokens, userService)
	routes.SetupRoutes(app, h, gate)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	var parsed map[string]any
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, &parsed), "body: %s", data)
	}
	return resp, parsed
}

func registerUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name":     "Ann",
		"email":    email,
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token, ok := body["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

func TestTaskLifecycleScenario(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "ann@x.com")

	// Create with only the required fields; priority and status default.
	resp, body := doJSON(t, app, http.MethodPost, "/api/tasks/", token, fiber.Map{
		"title":    "Write spec",
		"due_date": "2099-01-01",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Task created successfully", body["message"])

	task := body["task"].(map[string]any)
	assert.Equal(t, float64(1), task["priority"])
	assert.Equal(t, float64(1), task["status"])
	assert.Equal(t, "2099-01-01", task["due_date"])
	taskID := fmt.Sprintf("%.0f", task["id"].(float64))

	// Jump straight to completed; transitions are free-form.
	resp, body = doJSON(t, app, http.MethodPatch, "/api/tasks/"+taskID+"/status", token, fiber.Map{
		"status": 3,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := body["task"].(map[string]any)
	assert.Equal(t, float64(3), updated["status"])

	resp, body = doJSON(t, app, http.MethodDelete, "/api/tasks/"+taskID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Task deleted successfully", body["message"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/tasks/"+taskID, token, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "NOT_FOUND", errBody["code"])
}

func TestListTasksContract(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "ann@x.com")

	for i := 0; i < 5; i++ {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/tasks/", token, fiber.Map{
			"title":    fmt.Sprintf("Task %d", i),
			"due_date": "2099-01-01",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, body := doJSON(t, app, http.MethodGet, "/api/tasks/?page=2&limit=2", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, float64(5), body["total"])
	assert.Equal(t, float64(2), body["page"])
	assert.Equal(t, float64(2), body["limit"])
	assert.Equal(t, float64(3), body["totalPages"])
	assert.Len(t, body["tasks"].([]any), 2)
}

func TestListTasks_InvalidQuery(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "ann@x.com")

	for _, path := range []string{
		"/api/tasks/?page=zero",
		"/api/tasks/?page=0",
		"/api/tasks/?limit=-1",
		"/api/tasks/?status=9",
		"/api/tasks/?status=soon",
	} {
		resp, _ := doJSON(t, app, http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "path %s", path)
	}
}

func TestCreateTask_Validation(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "ann@x.com")

	// Missing due_date
	resp, body := doJSON(t, app, http.MethodPost, "/api/tasks/", token, fiber.Map{
		"title": "No date",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_ERROR", errBody["code"])

	// Malformed calendar date
	resp, _ = doJSON(t, app, http.MethodPost, "/api/tasks/", token, fiber.Map{
		"title":    "Bad date",
		"due_date": "2099-02-30",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	app := newTestApp(t)
	registerUser(t, app, "ann@x.com")

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name":     "Other Ann",
		"email":    "ann@x.com",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "CONFLICT", errBody["code"])
	assert.Equal(t, "User already exists", errBody["message"])
}

func TestLogin_WrongPassword(t *testing.T) {
	app := newTestApp(t)
	registerUser(t, app, "ann@x.com")

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "ann@x.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "Invalid credentials", errBody["message"])
	assert.NotContains(t, body, "token")
}

func TestProfileRoutes(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "ann@x.com")

	resp, body := doJSON(t, app, http.MethodGet, "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user := body["user"].(map[string]any)
	assert.Equal(t, "ann@x.com", user["email"])
	assert.NotContains(t, user, "password")

	resp, body = doJSON(t, app, http.MethodPut, "/api/auth/profile", token, fiber.Map{
		"name": "Ann Renamed",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Profile updated successfully", body["message"])
	assert.Equal(t, "Ann Renamed", body["user"].(map[string]any)["name"])

	resp, body = doJSON(t, app, http.MethodPut, "/api/auth/change-password", token, fiber.Map{
		"currentPassword": "secret1",
		"newPassword":     "secret2",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Password changed successfully", body["message"])
}

func TestTasksRequireAuth(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/api/tasks/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "No token provided, authorization denied", errBody["message"])
}

func TestUpdateTask_ClearsDescriptionWithNull(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "ann@x.com")

	resp, body := doJSON(t, app, http.MethodPost, "/api/tasks/", token, fiber.Map{
		"title":       "Notes",
		"description": "will be cleared",
		"due_date":    "2099-01-01",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	taskID := fmt.Sprintf("%.0f", body["task"].(map[string]any)["id"].(float64))

	// Explicit null clears the description.
	resp, body = doJSON(t, app, http.MethodPut, "/api/tasks/"+taskID, token, map[string]any{
		"description": nil,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, body["task"].(map[string]any)["description"])

	// Omitting the field leaves the rest untouched.
	resp, body = doJSON(t, app, http.MethodPut, "/api/tasks/"+taskID, token, fiber.Map{
		"title": "Renamed",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	task := body["task"].(map[string]any)
	assert.Equal(t, "Renamed", task["title"])
	assert.Nil(t, task["description"])
}

func TestInvalidTaskID(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "ann@x.com")

	resp, body := doJSON(t, app, http.MethodGet, "/api/tasks/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "Invalid task ID", errBody["message"])
}

func TestHealthRoute(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}
