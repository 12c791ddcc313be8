package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/zakirnaim/storefront-api/auth"
	"github.com/zakirnaim/storefront-api/middleware"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers all “/auth/*” endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, provider *auth.Provider, redirects *middleware.RedirectStore) {
	authGroup := r.Group("/auth")
	{
		// Federated Google sign-in
		authGroup.POST("/google", auth.GoogleLoginHandler(provider, db))

		// Email + password
		authGroup.POST("/register", auth.RegisterHandler(db))
		authGroup.POST("/login", auth.PasswordLoginHandler(db))

		// One-time code sign-in
		authGroup.POST("/otp/request", auth.RequestOTPHandler(rdb))
		authGroup.POST("/otp/verify", auth.VerifyOTPHandler(db, rdb))

		authGroup.POST("/logout", auth.LogoutHandler())

		// Where the client should land after signing in
		authGroup.GET("/redirect-path", middleware.RedirectPathHandler(redirects))
	}
}
