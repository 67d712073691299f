package serviceimpl

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"taskforge/domain/dto"
	"taskforge/domain/models"
	"taskforge/domain/repositories"
	"taskforge/domain/services"
	"taskforge/infrastructure/messaging"
	"taskforge/infrastructure/postgres"
	"taskforge/pkg/auth"
)

// setupTestDB opens a private in-memory database with the same error
// translation the Postgres setup uses, so duplicate-key handling behaves
// identically in tests.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A second connection would see a different empty :memory: database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Task{}))

	return db
}

func newTestUserService(t *testing.T) (services.UserService, repositories.UserRepository) {
	t.Helper()
	repo := postgres.NewUserRepository(setupTestDB(t))
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewUserService(repo, tokens, nil), repo
}

func newTestTaskService(t *testing.T) (services.TaskService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	repo := postgres.NewTaskRepository(db)
	return NewTaskService(repo, messaging.NewNoopPublisher()), db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	user := &models.User{Name: "Test", Email: email, Password: hash}
	require.NoError(t, db.Create(user).Error)
	return user
}

func mustDate(t *testing.T, s string) *models.DateOnly {
	t.Helper()
	d, err := models.ParseDateOnly(s)
	require.NoError(t, err)
	return &d
}

func createTask(t *testing.T, svc services.TaskService, userID uint, title, due string) *models.Task {
	t.Helper()
	task, err := svc.CreateTask(context.Background(), userID, &dto.CreateTaskRequest{
		Title:   title,
		DueDate: mustDate(t, due),
	})
	require.NoError(t, err)
	return task
}

func strptr(s string) *string { return &s }
