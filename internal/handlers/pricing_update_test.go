package handlers

import (
	"testing"

	"github.com/protyayrd/tweestbd-sub003/internal/models"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestResolvePricingUpdateDiscountedPriceRecomputesPercent(t *testing.T) {
	existing := models.Product{Price: 1000, DiscountedPrice: 1000}

	got, err := resolvePricingUpdate(existing, pricingInput{DiscountedPrice: floatPtr(800)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.DiscountedPrice != 800 || got.DiscountPercent != 20 {
		t.Fatalf("expected 800/20%%, got %v/%v", got.DiscountedPrice, got.DiscountPercent)
	}
}

func TestResolvePricingUpdatePercentRecomputesDiscountedPrice(t *testing.T) {
	existing := models.Product{Price: 1000, DiscountedPrice: 1000}

	got, err := resolvePricingUpdate(existing, pricingInput{DiscountPercent: intPtr(25)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.DiscountedPrice != 750 || got.DiscountPercent != 25 {
		t.Fatalf("expected 750/25%%, got %v/%v", got.DiscountedPrice, got.DiscountPercent)
	}
}

func TestResolvePricingUpdateDiscountedPriceWinsOverPercent(t *testing.T) {
	existing := models.Product{Price: 1000}

	got, err := resolvePricingUpdate(existing, pricingInput{
		DiscountedPrice: floatPtr(900),
		DiscountPercent: intPtr(50),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.DiscountedPrice != 900 || got.DiscountPercent != 10 {
		t.Fatalf("expected 900/10%%, got %v/%v", got.DiscountedPrice, got.DiscountPercent)
	}
}

func TestResolvePricingUpdatePriceChangeKeepsPercent(t *testing.T) {
	existing := models.Product{Price: 1000, DiscountedPrice: 800, DiscountPercent: 20}

	got, err := resolvePricingUpdate(existing, pricingInput{Price: floatPtr(2000)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Price != 2000 || got.DiscountedPrice != 1600 || got.DiscountPercent != 20 {
		t.Fatalf("expected 2000/1600/20%%, got %+v", got)
	}
}

func TestResolvePricingUpdateEmptyPatchIsNoop(t *testing.T) {
	existing := models.Product{Price: 1000, DiscountedPrice: 800, DiscountPercent: 20}

	got, err := resolvePricingUpdate(existing, pricingInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Price != 1000 || got.DiscountedPrice != 800 || got.DiscountPercent != 20 {
		t.Fatalf("expected unchanged pricing, got %+v", got)
	}
}

func TestResolvePricingUpdateRejectsInvalidValues(t *testing.T) {
	existing := models.Product{Price: 1000}

	if _, err := resolvePricingUpdate(existing, pricingInput{Price: floatPtr(0)}); err == nil {
		t.Fatal("expected error for zero price")
	}
	if _, err := resolvePricingUpdate(existing, pricingInput{DiscountedPrice: floatPtr(1500)}); err == nil {
		t.Fatal("expected error for discounted price above price")
	}
	if _, err := resolvePricingUpdate(existing, pricingInput{DiscountedPrice: floatPtr(-1)}); err == nil {
		t.Fatal("expected error for negative discounted price")
	}
	if _, err := resolvePricingUpdate(existing, pricingInput{DiscountPercent: intPtr(101)}); err == nil {
		t.Fatal("expected error for percent above 100")
	}
}
