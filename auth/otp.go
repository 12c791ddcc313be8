package auth

import (
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/zakirnaim/storefront-api/models"
	"gorm.io/gorm"
)

const otpTTL = 5 * time.Minute

func otpKey(email string) string {
	return "otp:" + email
}

func generateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "000000"
	}
	return fmt.Sprintf("%06d", n.Int64())
}

// POST /auth/otp/request
// Issues a 6-digit code held in Redis for a short window. Delivery is out of
// band (mail gateway); in development the code is written to the log.
func RequestOTPHandler(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email string `json:"email" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil || !validEmail(input.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
			return
		}

		code := generateOTP()
		if err := rdb.Set(c.Request.Context(), otpKey(input.Email), code, otpTTL).Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue code"})
			return
		}

		log.Printf("🔑 OTP for %s: %s", input.Email, code)
		c.JSON(http.StatusOK, gin.H{"message": "Code sent", "expires_in": int(otpTTL.Seconds())})
	}
}

// POST /auth/otp/verify
func VerifyOTPHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email string `json:"email" binding:"required"`
			Code  string `json:"code" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		stored, err := rdb.Get(c.Request.Context(), otpKey(input.Email)).Result()
		if err == redis.Nil || stored != input.Code {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired code"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify code"})
			return
		}

		// Single use
		rdb.Del(c.Request.Context(), otpKey(input.Email))

		// Fetch or create the user, same as federated login
		var user models.User
		err = db.Where("email = ?", input.Email).First(&user).Error
		if err == gorm.ErrRecordNotFound {
			userID := "otp_" + uuid.NewString()
			user = models.User{
				ID:       userID,
				Email:    input.Email,
				Provider: "otp",
				Role:     models.RoleUser,
				Cart:     models.Cart{UserID: userID},
			}
			if err := db.Create(&user).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
				return
			}
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		role, isAdmin := ResolveRole(db, user.ID)
		c.JSON(http.StatusOK, gin.H{
			"message":  "Login successful",
			"user":     user,
			"role":     role,
			"is_admin": isAdmin,
			"token":    issueJWT(user.Email, role, user.ID, user.Name, user.Picture),
		})
	}
}
