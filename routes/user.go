package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/zakirnaim/storefront-api/auth"
	cartControllers "github.com/zakirnaim/storefront-api/controllers/cart"
	checkoutControllers "github.com/zakirnaim/storefront-api/controllers/checkout"
	paymentControllers "github.com/zakirnaim/storefront-api/controllers/payment"
	productcontroller "github.com/zakirnaim/storefront-api/controllers/product"
	userControllers "github.com/zakirnaim/storefront-api/controllers/user"
	"github.com/zakirnaim/storefront-api/middleware"
	"gorm.io/gorm"
)

// SetupUserRoutes registers all “/user/*” endpoints plus the public catalog.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, provider *auth.Provider, redirects *middleware.RedirectStore, checkoutStore *checkoutControllers.Store) {
	// ──────────────── Public Catalog ────────────────
	r.GET("/products", productcontroller.GetProducts(db))
	r.GET("/products/:id", productcontroller.GetProductByID(db))
	r.GET("/categories", productcontroller.GetAllCategories(db))
	r.GET("/categories/with-products", productcontroller.GetAllCategoriesWithProducts(db))
	r.GET("/categories/:id", productcontroller.GetCategoryByID(db))

	userGroup := r.Group("/user")
	userGroup.Use(middleware.RequireAuth(provider, redirects))
	{
		// ──────────────── User Profile ────────────────
		userGroup.GET("/", userControllers.GetUser(db))          // GET /user/
		userGroup.PUT("/", userControllers.UpdateUser(db))       // PUT /user/
		userGroup.PUT("/password", auth.UpdatePasswordHandler(db)) // PUT /user/password

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetCart(db))                                       // GET /user/cart
			cartGroup.POST("/items", cartControllers.AddCartItem(db))                             // POST /user/cart/items
			cartGroup.POST("/quantity", cartControllers.UpdateQuantity(db))                       // POST /user/cart/quantity
			cartGroup.PUT("/items/:product_id/increment", cartControllers.IncrementItem(db))      // PUT /user/cart/items/:product_id/increment
			cartGroup.DELETE("/items/:product_id", cartControllers.RemoveCartItem(db))            // DELETE /user/cart/items/:product_id
			cartGroup.DELETE("/", cartControllers.ClearCart(db))                                  // DELETE /user/cart
		}

		// ──────────────── Checkout Flow ────────────────
		checkoutGroup := userGroup.Group("/checkout")
		{
			checkoutGroup.GET("/", checkoutControllers.GetCheckout(checkoutStore))                 // GET /user/checkout
			checkoutGroup.POST("/begin", checkoutControllers.BeginCheckout(db, checkoutStore))     // POST /user/checkout/begin
			checkoutGroup.POST("/payment", checkoutControllers.SelectPayment(db, checkoutStore))   // POST /user/checkout/payment
			checkoutGroup.POST("/address", checkoutControllers.SubmitAddress(db, checkoutStore))   // POST /user/checkout/address
			checkoutGroup.POST("/back", checkoutControllers.BackToCart(checkoutStore))             // POST /user/checkout/back
			checkoutGroup.POST("/cancel", checkoutControllers.CancelCheckout(checkoutStore))       // POST /user/checkout/cancel
		}

		// ──────────────── Saved Payment Cards ────────────────
		cardGroup := userGroup.Group("/cards")
		{
			cardGroup.GET("/", paymentControllers.ListCards(db))               // GET /user/cards
			cardGroup.POST("/", paymentControllers.AddCard(db))                // POST /user/cards
			cardGroup.DELETE("/:card_id", paymentControllers.DeleteCard(db))   // DELETE /user/cards/:card_id
		}
	}
}
