package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zakirnaim/storefront-api/auth"
	"github.com/zakirnaim/storefront-api/models"
)

// RequireAuth guards protected routes.
//
// While the identity provider is still initializing, the guard answers 503 so
// the client shows a neutral loading state — it must never flash a forbidden
// view or record a redirect before identity is resolved. Once resolved, an
// unauthenticated request gets its intended path recorded (memory + Redis)
// and a 401 pointing at the login surface. The guard never performs the
// return-navigation itself; consumers read the recorded path after login.
func RequireAuth(provider *auth.Provider, redirects *RedirectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !provider.Ready() {
			c.Header("Retry-After", "2")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"status": "loading",
			})
			return
		}

		userID, role, err := parseToken(c.GetHeader("Authorization"))
		if err != nil {
			recorded := false
			if clientID := c.GetHeader("X-Client-ID"); clientID != "" {
				redirects.Record(c.Request.Context(), clientID, c.Request.URL.Path)
				recorded = true
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":             "Authentication required",
				"login":             "/login",
				"redirect_recorded": recorded,
			})
			return
		}

		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

// RequireAdmin gates admin route groups on the token's role claim. This is
// advisory: the claim is client-visible, so every admin handler re-checks the
// users table before touching data.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

// RedirectPathHandler serves the recorded path back to the client after
// login, clearing it in the process.
// GET /auth/redirect-path?client_id=...
func RedirectPathHandler(redirects *RedirectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := c.Query("client_id")
		if clientID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "client_id is required"})
			return
		}
		path, ok := redirects.Consume(c.Request.Context(), clientID)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"path": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"path": path})
	}
}
