package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"taskforge/pkg/logger"
	"taskforge/pkg/utils"
)

// ErrorHandler is the app-level backstop for errors that escape the
// handlers. Handlers write their own envelopes for expected failures.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		errCode := utils.ErrCodeInternalError
		message := "Internal server error"

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			message = e.Message
			switch code {
			case fiber.StatusBadRequest:
				errCode = utils.ErrCodeBadRequest
			case fiber.StatusUnauthorized:
				errCode = utils.ErrCodeUnauthorized
			case fiber.StatusNotFound:
				errCode = utils.ErrCodeNotFound
			case fiber.StatusConflict:
				errCode = utils.ErrCodeConflict
			}
		}

		if code >= 500 {
			logger.ErrorContext(c.UserContext(), "Unhandled error",
				"method", c.Method(),
				"path", c.Path(),
				"error", err,
			)
		}

		return utils.ErrorResponse(c, code, errCode, message, nil)
	}
}
