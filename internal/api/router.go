package api

import (
	"chatdesk/docs"
	"chatdesk/internal/api/handlers"
	"chatdesk/pkg/auth"
	"chatdesk/pkg/config"
	"chatdesk/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	chatbotHandler *handlers.ChatbotHandler,
	knowledgeHandler *handlers.KnowledgeHandler,
	chatHandler *handlers.ChatHandler,
	jwtManager *auth.JWTManager,
	cfg *config.Config,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		// Multipart overhead on top of the upload limit.
		BodyLimit:    int(cfg.Upload.MaxFileSize) + 1024*1024,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// Swagger - importing the docs package registers the spec via init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	// Chat is public: the embedded widget calls it without dashboard auth.
	api.Post("/chat/:botId/message", chatHandler.SendMessage)

	authRequired := middleware.AuthMiddleware(jwtManager, appLogger)

	chatbots := api.Group("/chatbots", authRequired)
	chatbots.Get("", chatbotHandler.ListChatbots)
	chatbots.Post("", chatbotHandler.CreateChatbot)
	chatbots.Get("/:id", chatbotHandler.GetChatbot)
	chatbots.Put("/:id", chatbotHandler.UpdateChatbot)
	chatbots.Delete("/:id", chatbotHandler.DeleteChatbot)

	knowledge := api.Group("/knowledge", authRequired)
	knowledge.Post("/:botId/upload", knowledgeHandler.Upload)

	return app
}
