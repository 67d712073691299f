package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"taskforge/domain/services"
	"taskforge/pkg/auth"
	"taskforge/pkg/logger"
	"taskforge/pkg/utils"
)

// Protected gates every task and profile route. It verifies the bearer
// token, resolves the claimed identity against stored users, and attaches
// it to the request; it reads state but never writes it.
func Protected(tokens *auth.TokenManager, users services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		header := c.Get("Authorization")
		if header == "" {
			return utils.UnauthorizedResponse(c, "No token provided, authorization denied")
		}

		token := auth.ExtractBearerToken(header)
		if token == "" {
			return utils.UnauthorizedResponse(c, "Token is malformed")
		}

		claims, err := tokens.Validate(token)
		if err != nil {
			logger.WarnContext(ctx, "Token validation failed", "error", err)
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				return utils.UnauthorizedResponse(c, "Token has expired")
			case errors.Is(err, auth.ErrNotYetValidToken):
				return utils.UnauthorizedResponse(c, "Token not active")
			default:
				return utils.UnauthorizedResponse(c, "Token is malformed")
			}
		}

		user, err := users.GetByID(ctx, claims.ID)
		if err != nil {
			logger.WarnContext(ctx, "Token subject not found", "user_id", claims.ID)
			return utils.UnauthorizedResponse(c, "Token is not valid")
		}

		utils.SetUserContext(c, &utils.UserContext{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		})

		return c.Next()
	}
}
