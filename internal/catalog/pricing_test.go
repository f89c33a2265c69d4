package catalog

import (
	"testing"

	"github.com/protyayrd/tweestbd-sub003/internal/models"
)

func TestDiscountPercentFromPrices(t *testing.T) {
	if got := DiscountPercent(1000, 800); got != 20 {
		t.Fatalf("expected 20, got %d", got)
	}
	if got := DiscountPercent(0, 0); got != 0 {
		t.Fatalf("expected 0 for zero price, got %d", got)
	}
	// rounding to nearest integer
	if got := DiscountPercent(999, 666); got != 33 {
		t.Fatalf("expected 33, got %d", got)
	}
}

func TestDiscountedPriceFromPercent(t *testing.T) {
	if got := DiscountedPrice(1000, 25); got != 750 {
		t.Fatalf("expected 750, got %v", got)
	}
	// currency rounds to two decimals
	if got := DiscountedPrice(999.99, 33); got != 669.99 {
		t.Fatalf("expected 669.99, got %v", got)
	}
	if got := DiscountedPrice(500, 0); got != 500 {
		t.Fatalf("expected 500 with no discount, got %v", got)
	}
}

func TestPricingPairIsConsistent(t *testing.T) {
	price := 1000.0
	discounted := DiscountedPrice(price, 20)
	if got := DiscountPercent(price, discounted); got != 20 {
		t.Fatalf("derived percent drifted: %d", got)
	}
}

func TestTotalQuantity(t *testing.T) {
	colors := []models.ProductColor{
		{Name: "Red", Sizes: []models.ProductSize{{Name: "M", Quantity: 3}, {Name: "L", Quantity: 2}}},
		{Name: "Blue", Sizes: []models.ProductSize{{Name: "M", Quantity: 5}}},
	}
	if got := TotalQuantity(colors); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
}

func TestValidateColors(t *testing.T) {
	valid := []models.ProductColor{
		{Name: "Red", Images: []string{"/img/red.jpg"}, Sizes: []models.ProductSize{{Name: "M", Quantity: 1}}},
	}
	if err := ValidateColors(valid); err != nil {
		t.Fatalf("expected valid colors, got %v", err)
	}

	if err := ValidateColors(nil); err == nil {
		t.Fatal("expected error for missing colors")
	}

	noImage := []models.ProductColor{
		{Name: "Red", Sizes: []models.ProductSize{{Name: "M", Quantity: 1}}},
	}
	if err := ValidateColors(noImage); err == nil {
		t.Fatal("expected error for color without images")
	}

	noStock := []models.ProductColor{
		{Name: "Red", Images: []string{"/img/red.jpg"}, Sizes: []models.ProductSize{{Name: "M", Quantity: 0}}},
	}
	if err := ValidateColors(noStock); err == nil {
		t.Fatal("expected error when no size has stock")
	}
}
