// Package flashmessages implementa mensagens de feedback de uma única
// leitura, guardadas na sessão entre o redirect e a renderização.
package flashmessages

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	FlashSuccessKey = "flash_success"
	FlashErrorKey   = "flash_error"
)

// Messages agrupa as mensagens pendentes de exibição.
type Messages struct {
	Success string
	Error   string
}

func getSession(c *fiber.Ctx) (*session.Session, error) {
	store, ok := c.Locals("session_store").(*session.Store)
	if !ok || store == nil {
		return nil, fiber.ErrInternalServerError
	}
	return store.Get(c)
}

// SetFlashMessage guarda uma mensagem para a próxima requisição.
func SetFlashMessage(c *fiber.Ctx, key, message string) error {
	sess, err := getSession(c)
	if err != nil {
		return err
	}
	sess.Set(key, message)
	return sess.Save()
}

// GetFlashMessages lê e remove as mensagens pendentes.
func GetFlashMessages(c *fiber.Ctx) Messages {
	var msgs Messages
	sess, err := getSession(c)
	if err != nil {
		return msgs
	}
	if v, ok := sess.Get(FlashSuccessKey).(string); ok {
		msgs.Success = v
		sess.Delete(FlashSuccessKey)
	}
	if v, ok := sess.Get(FlashErrorKey).(string); ok {
		msgs.Error = v
		sess.Delete(FlashErrorKey)
	}
	_ = sess.Save()
	return msgs
}
