package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"cartsource/pkg/domain/entities"
)

func TestAvailability(t *testing.T) {
	items := []entities.Item{
		{
			URL:    "https://shop.example/a",
			Amount: 4,
			Offers: []entities.Offer{
				{Seller: "X", Available: 3, UnitCost: 100},
				{Seller: "Y", Available: 2, UnitCost: 120},
			},
		},
		{
			Amount: 5,
			Offers: []entities.Offer{
				{Seller: "X", Available: 1, UnitCost: 100},
			},
		},
	}

	lines := availability(items)
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}

	if lines[0].Label != "https://shop.example/a" || lines[0].Need != 4 || lines[0].Available != 5 {
		t.Errorf("Expected line for item a with need 4 and availability 5, got %+v", lines[0])
	}
	if lines[0].Short() {
		t.Error("Expected item a to be coverable")
	}

	if lines[1].Label != "item 1" {
		t.Errorf("Expected fallback label 'item 1', got '%s'", lines[1].Label)
	}
	if !lines[1].Short() {
		t.Error("Expected item 1 to be short")
	}
}

func TestCheckCommand_ShortCart(t *testing.T) {
	cartPath := filepath.Join(t.TempDir(), "cart.json")
	cart := `[
  {"url": "https://shop.example/a", "amount": 3, "sellers": [
    {"name": "X", "available": 1, "cost": 100}
  ]}
]`
	if err := os.WriteFile(cartPath, []byte(cart), 0o644); err != nil {
		t.Fatalf("Expected writing the fixture to succeed: %v", err)
	}

	cmd := NewCheckCommand(Config{CartFile: cartPath})
	err := cmd.Execute(context.Background())
	if err == nil {
		t.Fatal("Expected error for a short cart, got nil")
	}
	if err.Error() != "1 of 1 items cannot be fully covered" {
		t.Errorf("Expected error '1 of 1 items cannot be fully covered', got '%s'", err.Error())
	}
}

func TestCheckCommand_CoveredCart(t *testing.T) {
	cartPath := filepath.Join(t.TempDir(), "cart.json")
	cart := `[
  {"url": "https://shop.example/a", "amount": 3, "sellers": [
    {"name": "X", "available": 2, "cost": 100},
    {"name": "Y", "available": 1, "cost": 150}
  ]}
]`
	if err := os.WriteFile(cartPath, []byte(cart), 0o644); err != nil {
		t.Fatalf("Expected writing the fixture to succeed: %v", err)
	}

	cmd := NewCheckCommand(Config{CartFile: cartPath})
	if err := cmd.Execute(context.Background()); err != nil {
		t.Errorf("Expected no error for a covered cart, got %v", err)
	}
}
