package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zakirnaim/storefront-api/models"
	"gorm.io/gorm"
)

// ---------------------------------------------
// GOOGLE FEDERATED LOGIN
// ---------------------------------------------
// POST /auth/google
func GoogleLoginHandler(p *Provider, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			IDToken string `json:"idToken"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.IDToken == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		if !p.Ready() {
			c.Header("Retry-After", "2")
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Identity provider still starting"})
			return
		}

		// Verify Firebase token (revocation + audience checked inside)
		token, err := p.VerifyIDToken(c.Request.Context(), req.IDToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Firebase ID token"})
			return
		}

		// Extract user info
		email, ok := token.Claims["email"].(string)
		if !ok || email == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Email not found in token"})
			return
		}
		name, _ := token.Claims["name"].(string)
		picture, _ := token.Claims["picture"].(string)
		firebaseUserID := token.UID

		// Fetch or create the user; the cart record is created alongside so
		// the first session start always finds one.
		var user models.User
		err = db.Preload("Cart.Items").Where("id = ?", firebaseUserID).First(&user).Error

		if err == gorm.ErrRecordNotFound {
			user = models.User{
				ID:       firebaseUserID,
				Email:    email,
				Name:     name,
				Picture:  picture,
				Provider: "google",
				Role:     models.RoleUser,
				Cart:     models.Cart{UserID: firebaseUserID},
			}

			if err := db.Create(&user).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
				return
			}
		} else if err == nil {
			// User already exists → refresh profile metadata
			db.Model(&user).Updates(models.User{
				Name:    name,
				Picture: picture,
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		// Role is re-resolved on every auth-state change; a failed lookup
		// degrades to plain user, never admin.
		role, isAdmin := ResolveRole(db, user.ID)

		c.JSON(http.StatusOK, gin.H{
			"message":  "Login successful",
			"user":     user,
			"role":     role,
			"is_admin": isAdmin,
			"token":    issueJWT(email, role, firebaseUserID, name, picture),
		})
	}
}
