package handlers

import (
	"fmt"

	"github.com/protyayrd/tweestbd-sub003/internal/catalog"
	"github.com/protyayrd/tweestbd-sub003/internal/models"
)

type pricingInput struct {
	Price           *float64
	DiscountedPrice *float64
	DiscountPercent *int
}

type pricingResult struct {
	Price           float64
	DiscountedPrice float64
	DiscountPercent int
}

// resolvePricingUpdate merges a price/discount patch with the existing
// product, keeping the three fields mutually consistent: editing the price
// recomputes the discounted price from the current percent, while editing
// either derived field recomputes the other from the current price. When a
// patch carries both derived fields, the discounted price wins.
func resolvePricingUpdate(existing models.Product, input pricingInput) (pricingResult, error) {
	price := existing.Price
	if input.Price != nil {
		price = *input.Price
	}
	if price <= 0 {
		return pricingResult{}, fmt.Errorf("price must be greater than 0")
	}

	switch {
	case input.DiscountedPrice != nil:
		discounted := *input.DiscountedPrice
		if discounted < 0 || discounted > price {
			return pricingResult{}, fmt.Errorf("discountedPrice must be between 0 and price")
		}
		return pricingResult{
			Price:           price,
			DiscountedPrice: discounted,
			DiscountPercent: catalog.DiscountPercent(price, discounted),
		}, nil

	case input.DiscountPercent != nil:
		percent := *input.DiscountPercent
		if percent < 0 || percent > 100 {
			return pricingResult{}, fmt.Errorf("discountPersent must be between 0 and 100")
		}
		return pricingResult{
			Price:           price,
			DiscountedPrice: catalog.DiscountedPrice(price, percent),
			DiscountPercent: percent,
		}, nil

	case input.Price != nil:
		return pricingResult{
			Price:           price,
			DiscountedPrice: catalog.DiscountedPrice(price, existing.DiscountPercent),
			DiscountPercent: existing.DiscountPercent,
		}, nil
	}

	return pricingResult{
		Price:           price,
		DiscountedPrice: existing.DiscountedPrice,
		DiscountPercent: existing.DiscountPercent,
	}, nil
}
