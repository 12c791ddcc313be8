package adminControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zakirnaim/storefront-api/auth"
	cartControllers "github.com/zakirnaim/storefront-api/controllers/cart"
	"github.com/zakirnaim/storefront-api/models"
	"gorm.io/gorm"
)

// There is no order table. The closest thing the back office gets to an
// order view is the current cart of each user, summarized with the same
// pricing the storefront shows.

type cartSnapshot struct {
	UserID  string                  `json:"user_id"`
	Email   string                  `json:"email"`
	Name    string                  `json:"name"`
	Items   []models.CartItem       `json:"items"`
	Summary cartControllers.Summary `json:"summary"`
}

// GET /admin/carts
func ListCartSnapshots(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID, _ := c.Get("user_id")
		if _, isAdmin := auth.ResolveRole(db, callerID.(string)); !isAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		var users []models.User
		if err := db.Preload("Cart.Items").
			Select("id", "email", "name").
			Order("created_at desc").
			Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch carts"})
			return
		}

		discount := cartControllers.Discount()
		snapshots := make([]cartSnapshot, 0, len(users))
		for _, u := range users {
			items := u.Cart.Items
			if len(items) == 0 {
				continue
			}
			snapshots = append(snapshots, cartSnapshot{
				UserID:  u.ID,
				Email:   u.Email,
				Name:    u.Name,
				Items:   items,
				Summary: cartControllers.Summarize(items, discount),
			})
		}

		c.JSON(http.StatusOK, snapshots)
	}
}

// GET /admin/carts/:user_id
func GetUserCartSnapshot(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID, _ := c.Get("user_id")
		if _, isAdmin := auth.ResolveRole(db, callerID.(string)); !isAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		var user models.User
		if err := db.Preload("Cart.Items").First(&user, "id = ?", c.Param("user_id")).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		items := user.Cart.Items
		if items == nil {
			items = []models.CartItem{}
		}

		c.JSON(http.StatusOK, cartSnapshot{
			UserID:  user.ID,
			Email:   user.Email,
			Name:    user.Name,
			Items:   items,
			Summary: cartControllers.Summarize(items, cartControllers.Discount()),
		})
	}
}
