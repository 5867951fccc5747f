// Package renderer centraliza a renderização de views com layout e
// injeção das flash messages no mapa de dados.
package renderer

import (
	"juliana.clinic/pkg/flashmessages"

	"github.com/gofiber/fiber/v2"
)

const (
	FlashSuccessKeyView = "Success"
	FlashErrorKeyView   = "Error"
)

// SetFlashMessages copia as mensagens pendentes para o mapa da view.
func SetFlashMessages(data fiber.Map, msgs flashmessages.Messages) {
	if msgs.Success != "" {
		data[FlashSuccessKeyView] = msgs.Success
	}
	if msgs.Error != "" {
		data[FlashErrorKeyView] = msgs.Error
	}
}

// Render renderiza a view dentro do layout com o status informado.
func Render(c *fiber.Ctx, view, layout string, data fiber.Map, status ...int) error {
	code := fiber.StatusOK
	if len(status) > 0 {
		code = status[0]
	}
	if data == nil {
		data = fiber.Map{}
	}
	return c.Status(code).Render(view, data, layout)
}
