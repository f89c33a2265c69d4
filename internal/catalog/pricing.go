package catalog

import (
	"fmt"
	"math"

	"github.com/protyayrd/tweestbd-sub003/internal/models"
)

// DiscountedPrice applies a whole-number discount percent to a list price.
// Currency is rounded to two decimals.
func DiscountedPrice(price float64, percent int) float64 {
	value := price * (100 - float64(percent)) / 100
	return math.Round(value*100) / 100
}

// DiscountPercent derives the discount percent from list and discounted
// price, rounded to the nearest integer.
func DiscountPercent(price, discounted float64) int {
	if price <= 0 {
		return 0
	}
	return int(math.Round((price - discounted) / price * 100))
}

// TotalQuantity sums stock across every color and size of a product.
func TotalQuantity(colors []models.ProductColor) int {
	total := 0
	for _, color := range colors {
		for _, size := range color.Sizes {
			total += size.Quantity
		}
	}
	return total
}

// ValidateColors enforces the minimum a sellable product needs: at least one
// color carrying at least one image and at least one size with stock.
func ValidateColors(colors []models.ProductColor) error {
	if len(colors) == 0 {
		return fmt.Errorf("at least one color is required")
	}
	for _, color := range colors {
		if color.Name == "" {
			return fmt.Errorf("color name is required")
		}
		if len(color.Images) == 0 {
			return fmt.Errorf("color %q requires at least one image", color.Name)
		}
		if len(color.Sizes) == 0 {
			return fmt.Errorf("color %q requires at least one size", color.Name)
		}
	}
	if TotalQuantity(colors) <= 0 {
		return fmt.Errorf("at least one size with quantity > 0 is required")
	}
	return nil
}
