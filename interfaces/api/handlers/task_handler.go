package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"taskforge/domain/dto"
	"taskforge/domain/models"
	"taskforge/domain/services"
	"taskforge/pkg/logger"
	"taskforge/pkg/utils"
)

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// parseTaskID reads the :id route param. IDs are serial integers.
func parseTaskID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid task id")
	}
	return uint(id), nil
}

func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	query := services.ListTasksQuery{
		Page:   1,
		Limit:  10,
		SortBy: "due_date",
	}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return utils.BadRequestResponse(c, "Invalid page parameter")
		}
		query.Page = page
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return utils.BadRequestResponse(c, "Invalid limit parameter")
		}
		query.Limit = limit
	}

	if raw := c.Query("status", "all"); raw != "all" {
		value, err := strconv.Atoi(raw)
		if err != nil || !models.Status(value).Valid() {
			return utils.BadRequestResponse(c, "Invalid status filter")
		}
		status := models.Status(value)
		query.Status = &status
	}

	if raw := c.Query("sortBy"); raw != "" {
		query.SortBy = raw
	}

	tasks, total, err := h.taskService.ListTasks(ctx, user.ID, query)
	if err != nil {
		logger.ErrorContext(ctx, "List tasks failed", "user_id", user.ID, "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	totalPages := int((total + int64(query.Limit) - 1) / int64(query.Limit))

	return c.JSON(dto.TaskListResponse{
		Tasks:      dto.TasksToTaskResponses(tasks),
		Total:      total,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	})
}

func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	taskID, err := parseTaskID(c)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	task, err := h.taskService.GetTask(ctx, user.ID, taskID)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			return utils.NotFoundResponse(c, "Task not found")
		}
		logger.ErrorContext(ctx, "Get task failed", "task_id", taskID, "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	return c.JSON(dto.TaskEnvelope{Task: *dto.TaskToTaskResponse(task)})
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		fieldErrors := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", fieldErrors)
		return utils.ValidationErrorResponse(c, fieldErrors)
	}

	task, err := h.taskService.CreateTask(ctx, user.ID, &req)
	if err != nil {
		logger.ErrorContext(ctx, "Create task failed", "user_id", user.ID, "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	logger.InfoContext(ctx, "Task created", "task_id", task.ID, "user_id", user.ID)

	return c.Status(fiber.StatusCreated).JSON(dto.TaskMessageResponse{
		Message: "Task created successfully",
		Task:    *dto.TaskToTaskResponse(task),
	})
}

func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	taskID, err := parseTaskID(c)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	var req dto.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		fieldErrors := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", fieldErrors)
		return utils.ValidationErrorResponse(c, fieldErrors)
	}

	task, err := h.taskService.UpdateTask(ctx, user.ID, taskID, &req)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			return utils.NotFoundResponse(c, "Task not found")
		}
		logger.ErrorContext(ctx, "Update task failed", "task_id", taskID, "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	logger.InfoContext(ctx, "Task updated", "task_id", task.ID, "user_id", user.ID)

	return c.JSON(dto.TaskMessageResponse{
		Message: "Task updated successfully",
		Task:    *dto.TaskToTaskResponse(task),
	})
}

func (h *TaskHandler) UpdateStatus(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	taskID, err := parseTaskID(c)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		fieldErrors := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", fieldErrors)
		return utils.ValidationErrorResponse(c, fieldErrors)
	}

	task, err := h.taskService.SetStatus(ctx, user.ID, taskID, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			return utils.NotFoundResponse(c, "Task not found")
		}
		logger.ErrorContext(ctx, "Status update failed", "task_id", taskID, "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	logger.InfoContext(ctx, "Task status updated", "task_id", task.ID, "status", task.Status)

	return c.JSON(dto.TaskMessageResponse{
		Message: "Task status updated successfully",
		Task:    *dto.TaskToTaskResponse(task),
	})
}

func (h *TaskHandler) MarkComplete(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	taskID, err := parseTaskID(c)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	task, err := h.taskService.MarkComplete(ctx, user.ID, taskID)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			return utils.NotFoundResponse(c, "Task not found")
		}
		logger.ErrorContext(ctx, "Mark complete failed", "task_id", taskID, "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	logger.InfoContext(ctx, "Task completed", "task_id", task.ID, "user_id", user.ID)

	return c.JSON(dto.TaskMessageResponse{
		Message: "Task status updated successfully",
		Task:    *dto.TaskToTaskResponse(task),
	})
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	taskID, err := parseTaskID(c)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	if err := h.taskService.DeleteTask(ctx, user.ID, taskID); err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			return utils.NotFoundResponse(c, "Task not found")
		}
		logger.ErrorContext(ctx, "Delete task failed", "task_id", taskID, "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	logger.InfoContext(ctx, "Task deleted", "task_id", taskID, "user_id", user.ID)

	return c.JSON(dto.MessageResponse{Message: "Task deleted successfully"})
}
