package cartControllers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zakirnaim/storefront-api/models"
	"gorm.io/gorm"
)

type CartItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type QuantityDeltaInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Delta     int  `json:"delta" binding:"required"`
}

// loadOrCreateCart finds the user's cart, creating it lazily on first use.
func loadOrCreateCart(db *gorm.DB, userID string) (models.Cart, error) {
	var cart models.Cart
	err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if err == gorm.ErrRecordNotFound {
		cart = models.Cart{UserID: userID}
		if err := db.Create(&cart).Error; err != nil {
			return cart, err
		}
		return cart, nil
	}
	return cart, err
}

// persistWholesale overwrites the cart's entire item collection in one
// transaction: delete everything, reinsert the computed list. No deltas, no
// merge — the last write wins, matching the storefront's persistence model.
func persistWholesale(db *gorm.DB, cartID uint, items []models.CartItem) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ID = 0
			items[i].CartID = cartID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// respondWithCart returns the computed collection. A failed persist is
// logged and reported but the computed state is still returned — the
// storefront does not roll back on write failure, accepting a possible
// local/remote divergence until the next load.
func respondWithCart(c *gin.Context, db *gorm.DB, cartID uint, items []models.CartItem) {
	persisted := true
	if err := persistWholesale(db, cartID, items); err != nil {
		log.Printf("⚠️ Cart overwrite failed for cart %d: %v", cartID, err)
		persisted = false
	}

	c.JSON(http.StatusOK, gin.H{
		"items":     items,
		"summary":   Summarize(items, Discount()),
		"persisted": persisted,
	})
}

// GET /user/cart
// Load on session start: a missing cart record yields an empty cart, never
// an error.
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var cart models.Cart
		err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error
		if err != nil && err != gorm.ErrRecordNotFound {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		items := cart.Items
		if items == nil {
			items = []models.CartItem{}
		}
		c.JSON(http.StatusOK, gin.H{
			"items":   items,
			"summary": Summarize(items, Discount()),
		})
	}
}

// POST /user/cart/items
// Adds a product to the cart (or raises its quantity), snapshotting the
// fields the storefront renders.
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		// Fetch product from DB
		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			status := http.StatusInternalServerError
			errMsg := "Failed to validate product"
			if err == gorm.ErrRecordNotFound {
				status = http.StatusBadRequest
				errMsg = "Product does not exist"
			}
			c.JSON(status, gin.H{"error": errMsg})
			return
		}

		cart, err := loadOrCreateCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		items := cart.Items
		found := false
		for i := range items {
			if items[i].ProductID == product.ID {
				items[i].Quantity += input.Quantity
				found = true
				break
			}
		}
		if !found {
			items = append(items, models.CartItem{
				ProductID:    product.ID,
				ProductName:  product.Name,
				ProductImage: product.Image,
				UnitPrice:    product.Price,
				Quantity:     input.Quantity,
				AddedAt:      time.Now(),
			})
		}

		respondWithCart(c, db, cart.CartID, items)
	}
}

// POST /user/cart/quantity
// Adjusts one item's quantity by a signed delta. The quantity floor is zero;
// an item that reaches zero is removed from the collection.
func UpdateQuantity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input QuantityDeltaInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		cart, err := loadOrCreateCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		items := ApplyQuantityDelta(cart.Items, input.ProductID, input.Delta)
		respondWithCart(c, db, cart.CartID, items)
	}
}

// PUT /user/cart/items/:product_id/increment
// Convenience wrapper: equivalent to a quantity delta of +1.
func IncrementItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
			return
		}

		cart, err := loadOrCreateCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		items := ApplyQuantityDelta(cart.Items, uint(productID), +1)
		respondWithCart(c, db, cart.CartID, items)
	}
}

// DELETE /user/cart/items/:product_id
// Removing an item that is already gone is a no-op, not an error.
func RemoveCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
			return
		}

		cart, err := loadOrCreateCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		items := RemoveItem(cart.Items, uint(productID))
		respondWithCart(c, db, cart.CartID, items)
	}
}

// DELETE /user/cart
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		cart, err := loadOrCreateCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		respondWithCart(c, db, cart.CartID, []models.CartItem{})
	}
}
