package checkoutControllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	adminControllers "github.com/zakirnaim/storefront-api/controllers/admin"
	cartControllers "github.com/zakirnaim/storefront-api/controllers/cart"
	"github.com/zakirnaim/storefront-api/models"
	"gorm.io/gorm"
)

// POST /user/checkout/begin
func BeginCheckout(db *gorm.DB, store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var cart models.Cart
		if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil && err != gorm.ErrRecordNotFound {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		var cardCount int64
		if err := db.Model(&models.PaymentCard{}).Where("user_id = ?", userID).Count(&cardCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment methods"})
			return
		}

		sess, err := store.Begin(userID, len(cart.Items), int(cardCount))
		switch {
		case errors.Is(err, ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot check out an empty cart"})
			return
		case errors.Is(err, ErrNoSavedCards):
			// Short-circuit: the flow hands off to the add-payment-method
			// surface and never enters payment selection.
			c.JSON(http.StatusOK, gin.H{
				"state":    string(StateCart),
				"next":     "add_payment_method",
				"redirect": "/profile/payment-methods/new",
			})
			return
		case errors.Is(err, ErrWrongState):
			c.JSON(http.StatusConflict, gin.H{"error": "Checkout already in progress", "session": sess})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"session": sess})
	}
}

// POST /user/checkout/payment
func SelectPayment(db *gorm.DB, store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input struct {
			CardID string `json:"card_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		// The card must belong to the requesting user.
		var card models.PaymentCard
		if err := db.Where("id = ? AND user_id = ?", input.CardID, userID).First(&card).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Payment card not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment card"})
			return
		}

		sess, err := store.SelectPayment(userID, input.CardID)
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "session": sess})
			return
		}

		c.JSON(http.StatusOK, gin.H{"session": sess})
	}
}

// POST /user/checkout/address
// Submitting a complete address confirms the checkout. No order record is
// created; the confirmation is announced on the admin feed and the session
// resets to idle after the display window.
func SubmitAddress(db *gorm.DB, store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var addr AddressForm
		if err := c.ShouldBindJSON(&addr); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		sess, err := store.SubmitAddress(userID, addr)
		switch {
		case errors.Is(err, ErrAddressRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		case err != nil:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "session": sess})
			return
		}

		// Snapshot the cart for the confirmation view and the admin feed.
		var cart models.Cart
		if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
			log.Printf("⚠️ Confirmed checkout but failed to read cart for %s: %v", userID, err)
		}
		summary := cartControllers.Summarize(cart.Items, cartControllers.Discount())

		var card models.PaymentCard
		if err := db.First(&card, "id = ?", sess.SelectedCard).Error; err != nil {
			log.Printf("⚠️ Confirmed checkout but failed to read card %s: %v", sess.SelectedCard, err)
		}

		adminControllers.BroadcastConfirmation(gin.H{
			"event":        "checkout_confirmed",
			"user_id":      userID,
			"session_id":   sess.ID,
			"items":        cart.Items,
			"summary":      summary,
			"card_last4":   card.Last4,
			"confirmed_at": sess.ConfirmedAt.Format(time.RFC3339),
		})

		log.Printf("✅ Checkout confirmed for user %s (session %s)", userID, sess.ID)

		c.JSON(http.StatusOK, gin.H{
			"session":         sess,
			"summary":         summary,
			"card_last4":      card.Last4,
			"order_persisted": false, // known limitation: no durable order record
		})
	}
}

// POST /user/checkout/back
func BackToCart(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		sess, err := store.Back(userIDVal.(string))
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "session": sess})
			return
		}
		c.JSON(http.StatusOK, gin.H{"session": sess})
	}
}

// POST /user/checkout/cancel
func CancelCheckout(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		sess, err := store.Cancel(userIDVal.(string))
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "session": sess})
			return
		}
		c.JSON(http.StatusOK, gin.H{"session": sess})
	}
}

// GET /user/checkout
func GetCheckout(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"session": store.Snapshot(userIDVal.(string))})
	}
}
