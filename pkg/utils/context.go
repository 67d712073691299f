package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// UserContext is the authenticated identity the auth gate attaches to a
// request. Handlers must take the user id from here, never from the body.
type UserContext struct {
	ID    uint
	Name  string
	Email string
}

const userLocalsKey = "user"

func SetUserContext(c *fiber.Ctx, user *UserContext) {
	c.Locals(userLocalsKey, user)
}

func GetUserFromContext(c *fiber.Ctx) (*UserContext, error) {
	user, ok := c.Locals(userLocalsKey).(*UserContext)
	if !ok || user == nil {
		return nil, errors.New("user not found in context")
	}
	return user, nil
}
