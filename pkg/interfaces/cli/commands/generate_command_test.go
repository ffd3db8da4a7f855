package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"cartsource/pkg/domain/entities"
	"cartsource/pkg/infrastructure/cartfile"
)

func generateConfig(file string) GenerateConfig {
	return GenerateConfig{
		Items:     8,
		Sellers:   4,
		MaxOffers: 3,
		MaxAmount: 6,
		Coverage:  2.0,
		CartFile:  file,
		Seed:      42,
	}
}

func TestGenerateCommand_Deterministic(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.json")
	second := filepath.Join(dir, "second.json")

	if err := NewGenerateCommand(generateConfig(first)).Execute(context.Background()); err != nil {
		t.Fatalf("Expected generation to succeed, got %v", err)
	}
	if err := NewGenerateCommand(generateConfig(second)).Execute(context.Background()); err != nil {
		t.Fatalf("Expected generation to succeed, got %v", err)
	}

	a, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("Expected first cart to exist, got %v", err)
	}
	b, err := os.ReadFile(second)
	if err != nil {
		t.Fatalf("Expected second cart to exist, got %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("Expected identical carts for identical seeds")
	}
}

func TestGenerateCommand_ProducesLoadableCart(t *testing.T) {
	cartPath := filepath.Join(t.TempDir(), "cart.json")

	if err := NewGenerateCommand(generateConfig(cartPath)).Execute(context.Background()); err != nil {
		t.Fatalf("Expected generation to succeed, got %v", err)
	}

	items, err := cartfile.NewLoader().LoadCart(cartPath)
	if err != nil {
		t.Fatalf("Expected the generated cart to load, got %v", err)
	}
	if len(items) != 8 {
		t.Errorf("Expected 8 items, got %d", len(items))
	}

	catalog, err := entities.NewCatalog(items)
	if err != nil {
		t.Fatalf("Expected the generated cart to validate with coverage 2, got %v", err)
	}
	if catalog.Len() != 8 {
		t.Errorf("Expected a catalog of 8 items, got %d", catalog.Len())
	}
}

func TestGenerateCommand_Validation(t *testing.T) {
	testCases := []struct {
		name     string
		mutate   func(*GenerateConfig)
		expected string
	}{
		{
			"zero items",
			func(c *GenerateConfig) { c.Items = 0 },
			"items must be positive, got 0",
		},
		{
			"zero sellers",
			func(c *GenerateConfig) { c.Sellers = 0 },
			"sellers must be positive, got 0",
		},
		{
			"zero max offers",
			func(c *GenerateConfig) { c.MaxOffers = 0 },
			"max offers must be positive, got 0",
		},
		{
			"zero max amount",
			func(c *GenerateConfig) { c.MaxAmount = 0 },
			"max amount must be positive, got 0",
		},
		{
			"zero coverage",
			func(c *GenerateConfig) { c.Coverage = 0 },
			"coverage must be positive, got 0",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config := generateConfig(filepath.Join(t.TempDir(), "cart.json"))
			tc.mutate(&config)

			err := NewGenerateCommand(config).Execute(context.Background())
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if err.Error() != tc.expected {
				t.Errorf("Expected error '%s', got '%s'", tc.expected, err.Error())
			}
		})
	}
}
