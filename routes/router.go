package routes

import (
	"juliana.clinic/configs"
	"juliana.clinic/pkg/auditoria"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupRoutes registra os middlewares globais e todas as rotas.
func SetupRoutes(app *fiber.App, trilha *auditoria.Trilha) {
	app.Use(recoverMiddleware.New())
	app.Use(logger.New())
	app.Use(initializeSessionLocals())

	registerPainelRoutes(app, trilha)

	// Captura qualquer rota não registrada.
	app.Use(notFoundHandler)
}

// initializeSessionLocals disponibiliza o session store para as flash messages.
func initializeSessionLocals() fiber.Handler {
	sessionStore := configs.SetupSession()
	return func(c *fiber.Ctx) error {
		c.Locals("session_store", sessionStore)
		return c.Next()
	}
}

func notFoundHandler(c *fiber.Ctx) error {
	accepts := c.Accepts("text/html", "application/json")
	if accepts == "application/json" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Recurso não encontrado"})
	}
	return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{"Title": "Página não encontrada"}, "layouts/main_layout")
}
