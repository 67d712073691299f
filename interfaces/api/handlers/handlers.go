package handlers

import (
	"taskforge/domain/services"
	"taskforge/pkg/auth"
)

// Services contains all the services needed for handlers
type Services struct {
	UserService  services.UserService
	TaskService  services.TaskService
	TokenManager *auth.TokenManager
}

// Handlers contains all HTTP handlers
type Handlers struct {
	AuthHandler *AuthHandler
	TaskHandler *TaskHandler
}

// NewHandlers creates a new instance of Handlers with all dependencies
func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		AuthHandler: NewAuthHandler(services.UserService),
		TaskHandler: NewTaskHandler(services.TaskService),
	}
}
