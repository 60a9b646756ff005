package server

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/auction-house/internal/constants"
	apierrors "github.com/yukikurage/auction-house/internal/errors"
	"github.com/yukikurage/auction-house/internal/handlers"
	"github.com/yukikurage/auction-house/internal/middleware"
	"github.com/yukikurage/auction-house/internal/services"
	"github.com/yukikurage/auction-house/internal/web"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	AuthService    *services.AuthService
	AuctionService *services.AuctionService
	SessionStore   sessions.Store

	// LoginLimiter throttles POST /login and POST /register. Nil disables it.
	LoginLimiter middleware.Limiter
}

// NewRouter configures all Gin routes for the application
func NewRouter(deps Dependencies) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(sessions.Sessions(constants.SessionCookieName, deps.SessionStore))
	r.SetHTMLTemplate(web.MustTemplates())

	authHandler := handlers.NewAuthHandler(deps.AuthService)
	auctionHandler := handlers.NewAuctionHandler(deps.AuctionService)
	throttle := middleware.RateLimit(deps.LoginLimiter)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Auction House is running",
		})
	})

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/dashboard")
	})

	// Public routes
	r.GET("/register", authHandler.RegisterPage)
	r.POST("/register", throttle, authHandler.Register)
	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", throttle, authHandler.Login)

	// Protected routes
	protected := r.Group("")
	protected.Use(middleware.RequireAuth(deps.AuthService))
	{
		protected.GET("/dashboard", auctionHandler.Dashboard)
		protected.GET("/create-auction", auctionHandler.CreateAuctionPage)
		protected.POST("/create-auction", auctionHandler.CreateAuction)
		protected.POST("/bid/:auction_id", auctionHandler.PlaceBid)
		protected.GET("/auction/:auction_id", auctionHandler.ShowAuction)
		protected.GET("/logout", authHandler.Logout)
	}

	r.NoRoute(func(c *gin.Context) {
		apierrors.NotFound(c, "Page not found")
	})

	return r
}
