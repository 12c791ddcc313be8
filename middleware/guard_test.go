package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/zakirnaim/storefront-api/auth"
	"github.com/zakirnaim/storefront-api/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// resolvedProvider returns a provider whose initialization has finished.
// Without credentials the init fails, which still counts as resolved — the
// guard must decide, not report loading forever.
func resolvedProvider(t *testing.T) *auth.Provider {
	t.Helper()
	t.Setenv("FIREBASE_CREDENTIALS_JSON", "")
	p := auth.NewProvider()
	p.Init(context.Background())
	if !p.Ready() {
		t.Fatal("provider did not resolve")
	}
	return p
}

func signToken(t *testing.T, userID, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func guardedRouter(provider *auth.Provider, redirects *RedirectStore) *gin.Engine {
	r := gin.New()
	protected := r.Group("/user")
	protected.Use(RequireAuth(provider, redirects))
	protected.GET("/cart", func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return r
}

func TestGuardAnswersLoadingWhileProviderInitializes(t *testing.T) {
	redirects := NewRedirectStore(nil)
	r := guardedRouter(auth.NewProvider(), redirects) // init never ran

	req := httptest.NewRequest(http.MethodGet, "/user/cart", nil)
	req.Header.Set("X-Client-ID", "spa-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Errorf("missing Retry-After header")
	}

	// The loading answer must not record a redirect; identity is unresolved.
	if _, ok := redirects.Consume(context.Background(), "spa-1"); ok {
		t.Errorf("redirect recorded while provider was loading")
	}
}

func TestGuardRecordsPathForAnonymousRequest(t *testing.T) {
	redirects := NewRedirectStore(nil)
	r := guardedRouter(resolvedProvider(t), redirects)

	req := httptest.NewRequest(http.MethodGet, "/user/cart", nil)
	req.Header.Set("X-Client-ID", "spa-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["login"] != "/login" {
		t.Errorf("login = %v, want /login", body["login"])
	}
	if body["redirect_recorded"] != true {
		t.Errorf("redirect_recorded = %v, want true", body["redirect_recorded"])
	}

	path, ok := redirects.Consume(context.Background(), "spa-1")
	if !ok || path != "/user/cart" {
		t.Errorf("recorded path = (%q, %v), want (/user/cart, true)", path, ok)
	}
}

func TestGuardPassesValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	redirects := NewRedirectStore(nil)
	r := guardedRouter(resolvedProvider(t), redirects)

	req := httptest.NewRequest(http.MethodGet, "/user/cart", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u-42", models.RoleUser))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["user_id"] != "u-42" {
		t.Errorf("user_id = %v, want u-42", body["user_id"])
	}
}

func TestRequireAdminRejectsUserRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	redirects := NewRedirectStore(nil)

	r := gin.New()
	adminGroup := r.Group("/admin")
	adminGroup.Use(RequireAuth(resolvedProvider(t), redirects), RequireAdmin())
	adminGroup.GET("/users", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u-42", models.RoleUser))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u-1", models.RoleAdmin))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status with admin claim = %d, want 200", w.Code)
	}
}

func TestRedirectStoreRecordConsume(t *testing.T) {
	store := NewRedirectStore(nil)
	ctx := context.Background()

	store.Record(ctx, "spa-1", "/user/checkout")

	path, ok := store.Consume(ctx, "spa-1")
	if !ok || path != "/user/checkout" {
		t.Fatalf("Consume = (%q, %v), want (/user/checkout, true)", path, ok)
	}

	// Consuming clears the entry.
	if _, ok := store.Consume(ctx, "spa-1"); ok {
		t.Errorf("second Consume still found a path")
	}
}

func TestRedirectStoreLastWriteWins(t *testing.T) {
	store := NewRedirectStore(nil)
	ctx := context.Background()

	store.Record(ctx, "spa-1", "/user/cart")
	store.Record(ctx, "spa-1", "/user/checkout")

	path, _ := store.Consume(ctx, "spa-1")
	if path != "/user/checkout" {
		t.Errorf("path = %q, want /user/checkout", path)
	}
}

func TestRedirectPathHandler(t *testing.T) {
	store := NewRedirectStore(nil)
	store.Record(context.Background(), "spa-1", "/user/cart")

	r := gin.New()
	r.GET("/auth/redirect-path", RedirectPathHandler(store))

	req := httptest.NewRequest(http.MethodGet, "/auth/redirect-path?client_id=spa-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["path"] != "/user/cart" {
		t.Errorf("path = %v, want /user/cart", body["path"])
	}

	// Unknown client ids answer with a null path, not an error.
	req = httptest.NewRequest(http.MethodGet, "/auth/redirect-path?client_id=spa-2", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status for unknown client = %d, want 200", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["path"] != nil {
		t.Errorf("path for unknown client = %v, want null", body["path"])
	}

	// Missing client_id is a bad request.
	req = httptest.NewRequest(http.MethodGet, "/auth/redirect-path", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status without client_id = %d, want 400", w.Code)
	}
}
