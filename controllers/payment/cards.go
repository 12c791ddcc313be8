package paymentControllers

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/zakirnaim/storefront-api/models"
	"gorm.io/gorm"
)

var (
	// 16 digits, optionally grouped in fours by dashes or spaces
	cardNumberPattern = regexp.MustCompile(`^(\d{4}[- ]?){3}\d{4}$`)
	expiryPattern     = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
)

// ValidCardNumber reports whether a raw card number has an acceptable
// format. No issuer check, no Luhn — the storefront never charges the card.
func ValidCardNumber(number string) bool {
	return cardNumberPattern.MatchString(number)
}

// ValidExpiry checks the MM/YY display format.
func ValidExpiry(expiry string) bool {
	return expiryPattern.MatchString(expiry)
}

// MaskLast4 extracts the only digits the vault is allowed to keep.
func MaskLast4(number string) string {
	digits := strings.NewReplacer("-", "", " ", "").Replace(number)
	if len(digits) < 4 {
		return digits
	}
	return digits[len(digits)-4:]
}

// DetectNetwork labels the card by its leading digit. Purely cosmetic.
func DetectNetwork(number string) string {
	digits := strings.NewReplacer("-", "", " ", "").Replace(number)
	switch {
	case strings.HasPrefix(digits, "4"):
		return "visa"
	case strings.HasPrefix(digits, "5"):
		return "mastercard"
	case strings.HasPrefix(digits, "3"):
		return "amex"
	default:
		return "card"
	}
}

type CardInput struct {
	Number     string `json:"number" binding:"required"`
	HolderName string `json:"holder_name" binding:"required"`
	Expiry     string `json:"expiry" binding:"required"` // MM/YY
}

// POST /user/cards
// The full number is accepted for validation only; nothing beyond the last
// four digits is ever stored.
func AddCard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input CardInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if !ValidCardNumber(input.Number) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Card number must be 16 digits"})
			return
		}
		if !ValidExpiry(input.Expiry) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Expiry must be MM/YY"})
			return
		}

		card := models.PaymentCard{
			ID:         uuid.NewString(),
			UserID:     userID,
			Last4:      MaskLast4(input.Number),
			HolderName: input.HolderName,
			Expiry:     input.Expiry,
			Network:    DetectNetwork(input.Number),
			CreatedAt:  time.Now(),
		}

		if err := db.Create(&card).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save card"})
			return
		}

		c.JSON(http.StatusCreated, card)
	}
}

// GET /user/cards
func ListCards(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var cards []models.PaymentCard
		if err := db.Where("user_id = ?", userIDVal.(string)).Order("created_at desc").Find(&cards).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cards"})
			return
		}
		if cards == nil {
			cards = []models.PaymentCard{}
		}
		c.JSON(http.StatusOK, cards)
	}
}

// DELETE /user/cards/:card_id
func DeleteCard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		result := db.Where("id = ? AND user_id = ?", c.Param("card_id"), userIDVal.(string)).
			Delete(&models.PaymentCard{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete card"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Card deleted"})
	}
}
