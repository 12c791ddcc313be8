package cartControllers

import (
	"testing"

	"github.com/zakirnaim/storefront-api/models"
)

func sampleItems() []models.CartItem {
	return []models.CartItem{
		{ProductID: 1, ProductName: "Mug", UnitPrice: 12.50, Quantity: 2},
		{ProductID: 2, ProductName: "Coaster", UnitPrice: 3.00, Quantity: 1},
	}
}

func TestSummarize(t *testing.T) {
	summary := Summarize(sampleItems(), 6.00)

	if summary.Subtotal != 28.00 {
		t.Errorf("subtotal = %v, want 28.00", summary.Subtotal)
	}
	if summary.Discount != 6.00 {
		t.Errorf("discount = %v, want 6.00", summary.Discount)
	}
	if summary.Total != 22.00 {
		t.Errorf("total = %v, want 22.00", summary.Total)
	}
}

func TestSummarizeEmptyCart(t *testing.T) {
	summary := Summarize(nil, 6.00)
	if summary.Subtotal != 0 {
		t.Errorf("subtotal = %v, want 0", summary.Subtotal)
	}
	if summary.Total != -6.00 {
		t.Errorf("total = %v, want -6.00", summary.Total)
	}
}

func TestDiscountEnvOverride(t *testing.T) {
	t.Setenv("CART_DISCOUNT", "2.50")
	if d := Discount(); d != 2.50 {
		t.Errorf("Discount() = %v, want 2.50", d)
	}

	t.Setenv("CART_DISCOUNT", "not-a-number")
	if d := Discount(); d != DefaultDiscount {
		t.Errorf("Discount() with bad value = %v, want default %v", d, DefaultDiscount)
	}
}

func TestApplyQuantityDelta(t *testing.T) {
	items := ApplyQuantityDelta(sampleItems(), 1, +3)
	if items[0].Quantity != 5 {
		t.Errorf("quantity after +3 = %d, want 5", items[0].Quantity)
	}

	items = ApplyQuantityDelta(items, 1, -2)
	if items[0].Quantity != 3 {
		t.Errorf("quantity after -2 = %d, want 3", items[0].Quantity)
	}
}

func TestApplyQuantityDeltaFloorRemovesItem(t *testing.T) {
	// A decrement past zero removes the item rather than leaving it at zero.
	items := ApplyQuantityDelta(sampleItems(), 2, -1)
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	if items[0].ProductID != 1 {
		t.Errorf("remaining product = %d, want 1", items[0].ProductID)
	}

	items = ApplyQuantityDelta(sampleItems(), 1, -99)
	if len(items) != 1 {
		t.Fatalf("len(items) after big decrement = %d, want 1", len(items))
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			t.Errorf("collection holds a zero-quantity item: %+v", item)
		}
	}
}

func TestApplyQuantityDeltaUnknownProduct(t *testing.T) {
	items := ApplyQuantityDelta(sampleItems(), 999, -1)
	if len(items) != 2 {
		t.Errorf("unknown product changed the collection: len = %d, want 2", len(items))
	}
}

func TestRemoveItemIdempotent(t *testing.T) {
	once := RemoveItem(sampleItems(), 1)
	twice := RemoveItem(once, 1)

	if len(once) != 1 || len(twice) != 1 {
		t.Fatalf("len(once) = %d, len(twice) = %d, both want 1", len(once), len(twice))
	}
	if once[0].ProductID != twice[0].ProductID {
		t.Errorf("repeated remove changed the collection")
	}
}

func TestRemoveItemAbsent(t *testing.T) {
	items := RemoveItem(sampleItems(), 42)
	if len(items) != 2 {
		t.Errorf("removing an absent item changed the collection: len = %d, want 2", len(items))
	}
}
