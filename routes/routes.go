package routes

import (
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/zakirnaim/storefront-api/auth"
	checkoutControllers "github.com/zakirnaim/storefront-api/controllers/checkout"
	"github.com/zakirnaim/storefront-api/middleware"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry‐point that wires up Auth, User, and Admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, provider *auth.Provider) {
	redirects := middleware.NewRedirectStore(rdb)
	checkoutStore := checkoutControllers.NewStore(confirmationWindow())

	// 1️⃣ Public Auth routes (no middleware)
	SetupAuthRoutes(r, db, rdb, provider, redirects)

	// 2️⃣ User routes (JWT‐protected)
	SetupUserRoutes(r, db, provider, redirects, checkoutStore)

	// 3️⃣ Admin routes (JWT + role‐protected)
	SetupAdminRoutes(r, db, provider, redirects)
}

// confirmationWindow is how long a confirmed checkout stays on screen before
// the flow resets to the cart.
func confirmationWindow() time.Duration {
	if v := os.Getenv("CHECKOUT_CONFIRM_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return 5 * time.Second
}
