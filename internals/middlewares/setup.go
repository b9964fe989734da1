package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"fdp_backend/internals/configs"
	"fdp_backend/internals/middlewares/logger"
)

func SetupMiddlewares(app *fiber.App, cfg configs.Server) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware(cfg.CorsOrigins))
	app.Use(logger.LoggerMiddleware())
	app.Use("/api", GlobalRateLimiter())
}
