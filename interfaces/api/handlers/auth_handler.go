package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"taskforge/domain/dto"
	"taskforge/domain/services"
	"taskforge/pkg/logger"
	"taskforge/pkg/utils"
)

type AuthHandler struct {
	userService services.UserService
}

func NewAuthHandler(userService services.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		fieldErrors := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", fieldErrors)
		return utils.ValidationErrorResponse(c, fieldErrors)
	}

	logger.InfoContext(ctx, "Registration attempt", "email", req.Email)

	user, token, err := h.userService.Register(ctx, &req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			logger.WarnContext(ctx, "Registration rejected, email taken", "email", req.Email)
			return utils.ConflictResponse(c, "User already exists")
		}
		logger.ErrorContext(ctx, "Registration failed", "email", req.Email, "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	logger.InfoContext(ctx, "User registered", "user_id", user.ID, "email", user.Email)

	return c.Status(fiber.StatusCreated).JSON(dto.AuthResponse{
		Message: "User registered successfully",
		User:    *dto.UserToUserResponse(user),
		Token:   token,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		fieldErrors := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", fieldErrors)
		return utils.ValidationErrorResponse(c, fieldErrors)
	}

	logger.InfoContext(ctx, "Login attempt", "email", req.Email)

	token, user, err := h.userService.Login(ctx, &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			// Unknown email and wrong password share one answer.
			logger.WarnContext(ctx, "Login rejected", "email", req.Email)
			return utils.BadRequestResponse(c, "Invalid credentials")
		}
		logger.ErrorContext(ctx, "Login failed", "email", req.Email, "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	logger.InfoContext(ctx, "Login successful", "user_id", user.ID, "email", user.Email)

	return c.JSON(dto.AuthResponse{
		Message: "Login successful",
		User:    *dto.UserToUserResponse(user),
		Token:   token,
	})
}

func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		logger.WarnContext(ctx, "Unauthorized access attempt")
		return utils.UnauthorizedResponse(c, "")
	}

	profile, err := h.userService.GetProfile(ctx, user.ID)
	if err != nil {
		logger.WarnContext(ctx, "Profile not found", "user_id", user.ID)
		return utils.NotFoundResponse(c, "User not found")
	}

	return c.JSON(dto.ProfileResponse{
		User: *dto.UserToUserResponse(profile),
	})
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		logger.WarnContext(ctx, "Unauthorized access attempt")
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		fieldErrors := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", fieldErrors)
		return utils.ValidationErrorResponse(c, fieldErrors)
	}

	logger.InfoContext(ctx, "Profile update attempt", "user_id", user.ID)

	updated, err := h.userService.UpdateProfile(ctx, user.ID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			return utils.ConflictResponse(c, "User already exists")
		case errors.Is(err, services.ErrUserNotFound):
			return utils.NotFoundResponse(c, "User not found")
		default:
			logger.ErrorContext(ctx, "Profile update failed", "user_id", user.ID, "error", err)
			return utils.InternalServerErrorResponse(c)
		}
	}

	logger.InfoContext(ctx, "Profile updated", "user_id", updated.ID)

	return c.JSON(dto.ProfileUpdatedResponse{
		Message: "Profile updated successfully",
		User:    *dto.UserToUserResponse(updated),
	})
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		logger.WarnContext(ctx, "Unauthorized access attempt")
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		fieldErrors := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", fieldErrors)
		return utils.ValidationErrorResponse(c, fieldErrors)
	}

	if err := h.userService.ChangePassword(ctx, user.ID, &req); err != nil {
		switch {
		case errors.Is(err, services.ErrWrongPassword):
			logger.WarnContext(ctx, "Password change rejected", "user_id", user.ID)
			return utils.BadRequestResponse(c, "Current password is incorrect")
		case errors.Is(err, services.ErrUserNotFound):
			return utils.NotFoundResponse(c, "User not found")
		default:
			logger.ErrorContext(ctx, "Password change failed", "user_id", user.ID, "error", err)
			return utils.InternalServerErrorResponse(c)
		}
	}

	logger.InfoContext(ctx, "Password changed", "user_id", user.ID)

	return c.JSON(dto.MessageResponse{Message: "Password changed successfully"})
}
