package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/auction-house/internal/constants"
	"github.com/yukikurage/auction-house/internal/logger"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string
	Message  string
}

var flashCategories = []string{constants.FlashSuccess, constants.FlashInfo, constants.FlashDanger}

// AddFlash queues a message and saves the session.
func AddFlash(c *gin.Context, category, message string) error {
	session := sessions.Default(c)
	session.AddFlash(message, category)
	return session.Save()
}

// TakeFlashes returns and removes every queued flash message.
func TakeFlashes(c *gin.Context) []Flash {
	session := sessions.Default(c)

	var flashes []Flash
	for _, category := range flashCategories {
		for _, value := range session.Flashes(category) {
			if message, ok := value.(string); ok {
				flashes = append(flashes, Flash{Category: category, Message: message})
			}
		}
	}

	if len(flashes) > 0 {
		if err := session.Save(); err != nil {
			logger.Warn("Failed to save session after reading flashes", map[string]any{
				"error":      err.Error(),
				"request_id": RequestIDFromContext(c),
			})
		}
	}
	return flashes
}
