package configs

import (
	"time"

	"github.com/gofiber/fiber/v2/middleware/session"
)

var sessionStore *session.Store

// SetupSession configura o session store usado pelas flash messages.
// O armazenamento padrão em memória é suficiente para um processo único.
func SetupSession() *session.Store {
	if sessionStore != nil {
		return sessionStore
	}
	sessionStore = session.New(session.Config{
		Expiration:     2 * time.Hour,
		KeyLookup:      "cookie:juliana_session",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
	return sessionStore
}
