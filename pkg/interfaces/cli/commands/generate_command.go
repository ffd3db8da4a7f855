package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	generateItems     int
	generateSellers   int
	generateMaxOffers int
	generateMaxAmount int
	generateCoverage  float64
	generateSeed      int64
	generateCartFile  string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a random demo cart",
	Run: func(cmd *cobra.Command, args []string) {
		generateCommand := NewGenerateCommand(GenerateConfig{
			Items:     generateItems,
			Sellers:   generateSellers,
			MaxOffers: generateMaxOffers,
			MaxAmount: generateMaxAmount,
			Coverage:  generateCoverage,
			CartFile:  generateCartFile,
			Seed:      generateSeed,
			Verbose:   verbose,
		})
		if err := generateCommand.Execute(context.Background()); err != nil {
			fail(err)
		}
	},
}

func init() {
	generateCmd.Flags().IntVar(&generateItems, "items", 10, "Number of cart items to generate")
	generateCmd.Flags().IntVar(&generateSellers, "sellers", 5, "Size of the seller pool")
	generateCmd.Flags().IntVar(&generateMaxOffers, "max-offers", 4, "Maximum offers per item")
	generateCmd.Flags().IntVar(&generateMaxAmount, "max-amount", 6, "Maximum required amount per item")
	generateCmd.Flags().Float64Var(&generateCoverage, "coverage", 2.0, "Total availability per item relative to its amount (< 1 produces short carts)")
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 0, "Random seed for reproducible generation (0 = time-based)")
	generateCmd.Flags().StringVar(&generateCartFile, "cart", "", "Output file (default stdout)")
	rootCmd.AddCommand(generateCmd)
}

// GenerateConfig holds configuration for cart generation
type GenerateConfig struct {
	Items     int     // Number of cart items to generate
	Sellers   int     // Size of the seller pool
	MaxOffers int     // Maximum offers per item
	MaxAmount int     // Maximum required amount per item
	Coverage  float64 // Total availability per item relative to its amount
	CartFile  string  // Output file, empty writes to stdout
	Seed      int64   // Random seed for reproducible generation
	Verbose   bool    // Verbose output
}

// GenerateCommand produces random demo carts
type GenerateCommand struct {
	config GenerateConfig
	rand   *rand.Rand
}

// NewGenerateCommand creates a new generate command
func NewGenerateCommand(config GenerateConfig) *GenerateCommand {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &GenerateCommand{
		config: config,
		rand:   rand.New(rand.NewSource(seed)),
	}
}

// cartOffer mirrors the cart file offer record.
type cartOffer struct {
	Name      string `json:"name"`
	Available int64  `json:"available"`
	Cost      int64  `json:"cost"`
}

// cartItem mirrors the cart file item record.
type cartItem struct {
	URL     string      `json:"url"`
	Amount  int64       `json:"amount"`
	Sellers []cartOffer `json:"sellers"`
}

// Execute runs the generate command
func (cmd *GenerateCommand) Execute(ctx context.Context) error {
	if err := cmd.validate(); err != nil {
		return err
	}

	items := cmd.generateCart()
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	if cmd.config.CartFile == "" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.WriteFile(cmd.config.CartFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write cart file: %w", err)
	}

	if cmd.config.Verbose {
		offers := 0
		for _, item := range items {
			offers += len(item.Sellers)
		}
		fmt.Printf("✅ Generated cart with %d items and %d offers: %s\n",
			len(items), offers, cmd.config.CartFile)
	}

	return nil
}

func (cmd *GenerateCommand) validate() error {
	switch {
	case cmd.config.Items < 1:
		return fmt.Errorf("items must be positive, got %d", cmd.config.Items)
	case cmd.config.Sellers < 1:
		return fmt.Errorf("sellers must be positive, got %d", cmd.config.Sellers)
	case cmd.config.MaxOffers < 1:
		return fmt.Errorf("max offers must be positive, got %d", cmd.config.MaxOffers)
	case cmd.config.MaxAmount < 1:
		return fmt.Errorf("max amount must be positive, got %d", cmd.config.MaxAmount)
	case cmd.config.Coverage <= 0:
		return fmt.Errorf("coverage must be positive, got %v", cmd.config.Coverage)
	default:
		return nil
	}
}

func (cmd *GenerateCommand) generateCart() []cartItem {
	items := make([]cartItem, cmd.config.Items)
	for i := range items {
		amount := int64(1 + cmd.rand.Intn(cmd.config.MaxAmount))
		items[i] = cartItem{
			URL:     fmt.Sprintf("https://shop.example/item/%03d", i+1),
			Amount:  amount,
			Sellers: cmd.generateOffers(amount),
		}
	}
	return items
}

// generateOffers draws a distinct seller subset and spreads roughly
// coverage*amount units of availability across it. With coverage >= 1 the
// last offer is topped up so the item stays coverable.
func (cmd *GenerateCommand) generateOffers(amount int64) []cartOffer {
	count := 1 + cmd.rand.Intn(cmd.config.MaxOffers)
	if count > cmd.config.Sellers {
		count = cmd.config.Sellers
	}
	picked := cmd.rand.Perm(cmd.config.Sellers)[:count]

	perOffer := int64(float64(amount) * cmd.config.Coverage / float64(count))
	if perOffer < 1 {
		perOffer = 1
	}

	offers := make([]cartOffer, count)
	total := int64(0)
	for j, seller := range picked {
		available := 1 + cmd.rand.Int63n(2*perOffer)
		total += available
		offers[j] = cartOffer{
			Name:      fmt.Sprintf("seller_%02d", seller+1),
			Available: available,
			Cost:      int64(50 + cmd.rand.Intn(5000)),
		}
	}

	if cmd.config.Coverage >= 1 && total < amount {
		offers[count-1].Available += amount - total
	}

	return offers
}
