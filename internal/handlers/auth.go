package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/auction-house/internal/constants"
	apierrors "github.com/yukikurage/auction-house/internal/errors"
	"github.com/yukikurage/auction-house/internal/logger"
	"github.com/yukikurage/auction-house/internal/middleware"
	"github.com/yukikurage/auction-house/internal/services"
)

// AuthHandler coordinates registration, login and logout pages.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type registerForm struct {
	Username string `form:"username" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

type loginForm struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// RegisterPage shows the registration form.
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	renderRegister(c, http.StatusOK, registerForm{}, nil)
}

// Register creates a user and sends them to the login page.
func (h *AuthHandler) Register(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		renderRegister(c, http.StatusBadRequest, form,
			apierrors.NewAPIError(apierrors.ErrCodeInvalidInput, "Username, a valid email and a password are required"))
		return
	}

	_, err := h.authService.Register(services.RegisterInput{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPasswordTooShort):
			renderRegister(c, http.StatusBadRequest, form, apierrors.NewAPIError(apierrors.ErrCodeInvalidInput,
				fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength)))
		case errors.Is(err, services.ErrUsernameRequired),
			errors.Is(err, services.ErrEmailRequired):
			renderRegister(c, http.StatusBadRequest, form, apierrors.NewAPIError(apierrors.ErrCodeInvalidInput, err.Error()))
		case errors.Is(err, services.ErrUsernameTaken),
			errors.Is(err, services.ErrEmailTaken):
			renderRegister(c, http.StatusConflict, form, apierrors.NewAPIError(apierrors.ErrCodeConflict, err.Error()))
		default:
			logger.Error("Registration failed", map[string]any{"error": err.Error()})
			apierrors.InternalError(c, "")
		}
		return
	}

	if err := middleware.AddFlash(c, constants.FlashSuccess, "Registration successful! Please log in."); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

// LoginPage shows the login form.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	renderLogin(c, http.StatusOK, "", nil)
}

// Login checks credentials and authenticates the session.
func (h *AuthHandler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		renderLogin(c, http.StatusBadRequest, form.Email,
			apierrors.NewAPIError(apierrors.ErrCodeInvalidInput, "Email and password are required"))
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			renderLogin(c, http.StatusUnauthorized, form.Email,
				apierrors.NewAPIError(apierrors.ErrCodeInvalidCredentials, "Invalid email or password"))
			return
		}
		logger.Error("Login failed", map[string]any{"error": err.Error()})
		apierrors.InternalError(c, "")
		return
	}

	if err := middleware.Login(c, user.ID, "Login successful!"); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	logger.Info("User logged in", map[string]any{"user_id": user.ID})
	c.Redirect(http.StatusFound, "/dashboard")
}

// Logout clears the session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := middleware.Logout(c, "You have been logged out."); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

func renderRegister(c *gin.Context, status int, form registerForm, formErr *apierrors.APIError) {
	render(c, status, "register.html", gin.H{
		"Title":    "Register",
		"Username": form.Username,
		"Email":    form.Email,
		"Error":    formErr,
	})
}

func renderLogin(c *gin.Context, status int, email string, formErr *apierrors.APIError) {
	render(c, status, "login.html", gin.H{
		"Title": "Log in",
		"Email": email,
		"Error": formErr,
	})
}
