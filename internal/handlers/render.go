package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/auction-house/internal/middleware"
)

// render executes a page template with the flashes and user shared by every page.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Flashes"] = middleware.TakeFlashes(c)
	if userID, ok := middleware.CurrentUserID(c); ok {
		data["UserID"] = userID
	}
	if user, ok := middleware.CurrentUser(c); ok {
		data["Username"] = user.Username
	}
	c.HTML(status, name, data)
}
