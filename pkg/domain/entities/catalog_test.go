package entities

import (
	"errors"
	"testing"
)

func TestNewCatalog_Valid(t *testing.T) {
	cat, err := NewCatalog([]Item{
		{
			ID:     "ignored",
			URL:    "https://example.com/widget",
			Amount: 4,
			Offers: []Offer{
				{Seller: "zeta", Available: 2, UnitCost: 150},
				{Seller: "alpha", Available: 10, UnitCost: 175},
			},
		},
		{
			Amount: 1,
			Offers: []Offer{
				{Seller: "alpha", Available: 1, UnitCost: 99},
			},
		},
	})
	if err != nil {
		t.Fatalf("Expected valid catalog creation to succeed: %v", err)
	}

	if cat.Len() != 2 {
		t.Fatalf("Expected 2 items, got %d", cat.Len())
	}
	if got := cat.Item(0).ID; got != "item_0" {
		t.Errorf("Expected positional ID item_0 to replace input ID, got %s", got)
	}
	if got := cat.Item(1).ID; got != "item_1" {
		t.Errorf("Expected positional ID item_1, got %s", got)
	}
	if got := cat.Item(0).URL; got != "https://example.com/widget" {
		t.Errorf("Expected URL to be preserved, got %s", got)
	}

	sellers := cat.Sellers()
	if len(sellers) != 2 || sellers[0] != "alpha" || sellers[1] != "zeta" {
		t.Errorf("Expected sorted distinct sellers [alpha zeta], got %v", sellers)
	}
}

func TestNewCatalog_Validation(t *testing.T) {
	testCases := []struct {
		name        string
		items       []Item
		expectError string
	}{
		{
			"empty catalog",
			nil,
			"invalid catalog: catalog has no items",
		},
		{
			"zero amount",
			[]Item{{Amount: 0, Offers: []Offer{{Seller: "a", Available: 1, UnitCost: 1}}}},
			"invalid catalog: item_0: amount must be positive, got 0",
		},
		{
			"negative amount",
			[]Item{{Amount: -3, Offers: []Offer{{Seller: "a", Available: 1, UnitCost: 1}}}},
			"invalid catalog: item_0: amount must be positive, got -3",
		},
		{
			"empty seller name",
			[]Item{{Amount: 1, Offers: []Offer{
				{Seller: "a", Available: 1, UnitCost: 1},
				{Seller: "", Available: 1, UnitCost: 1},
			}}},
			"invalid catalog: item_0: offer 1 has an empty seller name",
		},
		{
			"negative availability",
			[]Item{{Amount: 1, Offers: []Offer{{Seller: "a", Available: -1, UnitCost: 1}}}},
			`invalid catalog: item_0 (seller "a"): offer 0 has negative availability -1`,
		},
		{
			"negative unit cost",
			[]Item{{Amount: 1, Offers: []Offer{{Seller: "a", Available: 1, UnitCost: -5}}}},
			`invalid catalog: item_0 (seller "a"): offer 0 has negative unit cost -5`,
		},
		{
			"no offers",
			[]Item{{Amount: 2}},
			"invalid catalog: item_0: insufficient availability: need 2, offers cover 0",
		},
		{
			"insufficient availability on later item",
			[]Item{
				{Amount: 1, Offers: []Offer{{Seller: "a", Available: 1, UnitCost: 1}}},
				{Amount: 5, Offers: []Offer{
					{Seller: "a", Available: 2, UnitCost: 1},
					{Seller: "b", Available: 1, UnitCost: 4},
				}},
			},
			"invalid catalog: item_1: insufficient availability: need 5, offers cover 3",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCatalog(tc.items)
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectError, err.Error())
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("Expected a *ValidationError, got %T", err)
			}
		})
	}
}

func TestNewCatalog_ZeroAvailabilityOfferIsLegal(t *testing.T) {
	// Scrapers report sold-out offers as available 0. They are valid input;
	// the optimizer simply cannot draw from them.
	cat, err := NewCatalog([]Item{
		{Amount: 2, Offers: []Offer{
			{Seller: "soldout", Available: 0, UnitCost: 10},
			{Seller: "stocked", Available: 5, UnitCost: 20},
		}},
	})
	if err != nil {
		t.Fatalf("Expected zero-availability offer to be accepted: %v", err)
	}
	sellers := cat.Sellers()
	if len(sellers) != 2 {
		t.Errorf("Expected sold-out seller to still be listed, got %v", sellers)
	}
}

func TestItem_TotalAvailable(t *testing.T) {
	item := Item{
		Amount: 1,
		Offers: []Offer{
			{Seller: "a", Available: 3, UnitCost: 1},
			{Seller: "b", Available: 0, UnitCost: 1},
			{Seller: "c", Available: 7, UnitCost: 1},
		},
	}
	if got := item.TotalAvailable(); got != 10 {
		t.Errorf("Expected total availability 10, got %d", got)
	}
}

func TestCents_String(t *testing.T) {
	testCases := []struct {
		cents Cents
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{132, "1.32"},
		{1234, "12.34"},
		{200000, "2000.00"},
		{-150, "-1.50"},
	}
	for _, tc := range testCases {
		if got := tc.cents.String(); got != tc.want {
			t.Errorf("Expected Cents(%d).String() = %s, got %s", tc.cents, tc.want, got)
		}
	}
}
