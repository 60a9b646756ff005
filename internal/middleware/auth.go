package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/auction-house/internal/constants"
	apierrors "github.com/yukikurage/auction-house/internal/errors"
	"github.com/yukikurage/auction-house/internal/logger"
	"github.com/yukikurage/auction-house/internal/models"
	"github.com/yukikurage/auction-house/internal/services"
)

// LoginPath is where anonymous requests to protected routes are sent.
const LoginPath = "/login"

// UserLookup loads the user behind an authenticated session.
type UserLookup interface {
	GetUser(id uint64) (*models.User, error)
}

// RequireAuth checks if the user is authenticated via session.
// Anonymous requests are redirected to the login page rather than rejected,
// and so are sessions whose user no longer exists.
func RequireAuth(users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(constants.ContextKeyUserID)

		if userID == nil {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		id, ok := GetUserID(c)
		if !ok {
			dropSession(c, session)
			return
		}

		user, err := users.GetUser(id)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				logger.Warn("Session user no longer exists", map[string]any{"user_id": id})
				dropSession(c, session)
				return
			}
			logger.Error("Failed to load session user", map[string]any{
				"user_id": id,
				"error":   err.Error(),
			})
			apierrors.InternalError(c, "")
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// CurrentUser returns the user loaded by RequireAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok && user != nil
}

func dropSession(c *gin.Context, session sessions.Session) {
	c.Set(constants.ContextKeyUserID, nil)
	session.Clear()
	if err := session.Save(); err != nil {
		logger.Warn("Failed to clear session", map[string]any{"error": err.Error()})
	}
	c.Redirect(http.StatusFound, LoginPath)
	c.Abort()
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// Login moves the session to the authenticated state for userID.
// Anything stored before login is discarded.
// message, when non-empty, is kept as a success flash for the next page.
func Login(c *gin.Context, userID uint64, message string) error {
	session := sessions.Default(c)
	session.Clear()
	session.Set(constants.ContextKeyUserID, userID)
	if message != "" {
		session.AddFlash(message, constants.FlashSuccess)
	}
	return session.Save()
}

// CurrentUserID returns the authenticated user ID from the request context,
// falling back to the session for routes outside RequireAuth.
func CurrentUserID(c *gin.Context) (uint64, bool) {
	if userID, ok := GetUserID(c); ok {
		return userID, true
	}
	value := sessions.Default(c).Get(constants.ContextKeyUserID)
	if value == nil {
		return 0, false
	}
	c.Set(constants.ContextKeyUserID, value)
	return GetUserID(c)
}

// Logout clears the session, returning it to the anonymous state.
// message, when non-empty, is kept as an info flash for the next page.
func Logout(c *gin.Context, message string) error {
	session := sessions.Default(c)
	session.Clear()
	if message != "" {
		session.AddFlash(message, constants.FlashInfo)
	}
	return session.Save()
}
