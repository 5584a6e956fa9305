package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const sessionKey = "session_id"

// Session выдаёт посетителю cookie с идентификатором сессии.
// По нему хранится состояние дашборда.
func Session(cookieName string, ttl time.Duration, secure bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(cookieName)
		if _, err := uuid.Parse(sid); err != nil {
			sid = uuid.NewString()
		}

		// Продлеваем cookie на каждом запросе, как и TTL состояния
		c.Cookie(&fiber.Cookie{
			Name:     cookieName,
			Value:    sid,
			Path:     "/",
			MaxAge:   int(ttl.Seconds()),
			HTTPOnly: true,
			Secure:   secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		c.Locals(sessionKey, sid)
		return c.Next()
	}
}

// SessionID - идентификатор сессии текущего запроса
func SessionID(c *fiber.Ctx) string {
	sid, _ := c.Locals(sessionKey).(string)
	return sid
}
