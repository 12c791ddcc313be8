package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/zakirnaim/storefront-api/auth"
	adminControllers "github.com/zakirnaim/storefront-api/controllers/admin"
	productcontroller "github.com/zakirnaim/storefront-api/controllers/product"
	userControllers "github.com/zakirnaim/storefront-api/controllers/user"
	"github.com/zakirnaim/storefront-api/middleware"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers all “/admin/*” endpoints. The token role claim
// gates entry; sensitive handlers re-check the role against the database.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, provider *auth.Provider, redirects *middleware.RedirectStore) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.RequireAuth(provider, redirects), middleware.RequireAdmin())
	{
		// ─────────── User Management ───────────
		adminGroup.GET("/users", userControllers.GetAllUsers(db))
		adminGroup.PUT("/users/:id/role", userControllers.SetUserRole(db))

		// ─────────── Cart Snapshots ───────────
		cartMgmt := adminGroup.Group("/carts")
		{
			cartMgmt.GET("", adminControllers.ListCartSnapshots(db))
			cartMgmt.GET("/:user_id", adminControllers.GetUserCartSnapshot(db))
		}

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(db))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(db))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(db))
		}

		// ─────────── Category Management ───────────
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productcontroller.CreateCategory(db))
			categoryAdmin.PUT("/:id", productcontroller.UpdateCategory(db))
			categoryAdmin.DELETE("/:id", productcontroller.DeleteCategory(db))
		}

		// ─────────── Live Checkout Feed ───────────
		adminGroup.GET("/live/checkouts", adminControllers.CheckoutFeedHandler)
	}
}
