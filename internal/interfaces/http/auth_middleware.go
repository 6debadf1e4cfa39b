package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/santoko/kasir-api/internal/application/dto"
	"github.com/santoko/kasir-api/pkg/jwt"
)

// Locals keys for the actor context in Fiber.
const (
	LocalUserID      = "user_id"
	LocalStoreID     = "store_id"
	LocalWarehouseID = "warehouse_id"
)

// AuthMiddleware validates the Bearer JWT and stores the operator's user,
// store and warehouse ids in c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header required"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "format: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "empty token"})
		}
		userID, storeID, warehouseID, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "invalid or expired token"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalStoreID, storeID)
		c.Locals(LocalWarehouseID, warehouseID)
		return c.Next()
	}
}

// GetActor returns the operator context set by the auth middleware. The
// second return is false when the middleware did not run or the token carried
// no user.
func GetActor(c *fiber.Ctx) (dto.Actor, bool) {
	userID, _ := c.Locals(LocalUserID).(int64)
	storeID, _ := c.Locals(LocalStoreID).(int64)
	warehouseID, _ := c.Locals(LocalWarehouseID).(int64)
	if userID == 0 {
		return dto.Actor{}, false
	}
	return dto.Actor{UserID: userID, StoreID: storeID, WarehouseID: warehouseID}, true
}
