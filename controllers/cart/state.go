package cartControllers

import (
	"os"
	"strconv"

	"github.com/zakirnaim/storefront-api/models"
)

// DefaultDiscount is the flat amount taken off every cart. It is a deliberate
// simplification carried over from the storefront, not a computed promotion.
const DefaultDiscount = 6.00

// Discount reads the configured flat discount, falling back to the default.
func Discount() float64 {
	if v := os.Getenv("CART_DISCOUNT"); v != "" {
		if d, err := strconv.ParseFloat(v, 64); err == nil {
			return d
		}
	}
	return DefaultDiscount
}

// Summary is the cart arithmetic the storefront renders.
type Summary struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

func Summarize(items []models.CartItem, discount float64) Summary {
	var subtotal float64
	for _, item := range items {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}
	return Summary{
		Subtotal: subtotal,
		Discount: discount,
		Total:    subtotal - discount,
	}
}

// ApplyQuantityDelta computes the next item collection after adjusting one
// item's quantity. Quantity is clamped at a floor of zero, and an item that
// reaches zero is removed — the collection never holds a zero-quantity item.
// Unknown product ids leave the collection unchanged.
func ApplyQuantityDelta(items []models.CartItem, productID uint, delta int) []models.CartItem {
	next := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.ProductID == productID {
			q := item.Quantity + delta
			if q <= 0 {
				continue
			}
			item.Quantity = q
		}
		next = append(next, item)
	}
	return next
}

// RemoveItem deletes an item outright. Removing an absent item is a no-op,
// so a repeated remove observes the same end state.
func RemoveItem(items []models.CartItem, productID uint) []models.CartItem {
	next := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.ProductID == productID {
			continue
		}
		next = append(next, item)
	}
	return next
}
