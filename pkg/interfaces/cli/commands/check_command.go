package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"cartsource/pkg/domain/entities"
	"cartsource/pkg/infrastructure/cartfile"
)

var checkCartFile string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that cumulative offer availability covers each cart item",
	Run: func(cmd *cobra.Command, args []string) {
		checkCommand := NewCheckCommand(Config{
			CartFile: checkCartFile,
			Verbose:  verbose,
		})
		if err := checkCommand.Execute(context.Background()); err != nil {
			fail(err)
		}
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkCartFile, "cart", "", "Path to the cart JSON file (required)")
	checkCmd.MarkFlagRequired("cart")
	rootCmd.AddCommand(checkCmd)
}

// CheckCommand reports per-item availability before any solving happens
type CheckCommand struct {
	config Config
}

// NewCheckCommand creates a new check command with the given configuration
func NewCheckCommand(config Config) *CheckCommand {
	return &CheckCommand{
		config: config,
	}
}

// Execute runs the availability check
func (c *CheckCommand) Execute(ctx context.Context) error {
	loader := cartfile.NewLoader()
	items, err := loader.LoadCart(c.config.CartFile)
	if err != nil {
		return fmt.Errorf("error loading cart: %w", err)
	}

	fmt.Println("🔍 Checking availability:")
	short := 0
	for _, line := range availability(items) {
		fmt.Printf("  - %s: need %d, available %d\n", line.Label, line.Need, line.Available)
		if line.Short() {
			fmt.Println("    ❌ Not enough stock!")
			short++
		}
	}

	if short > 0 {
		return fmt.Errorf("%d of %d items cannot be fully covered", short, len(items))
	}

	fmt.Printf("✅ All %d items can be fully covered\n", len(items))
	return nil
}

// availabilityLine summarizes one item's demand against its total supply.
type availabilityLine struct {
	Label     string
	Need      entities.Quantity
	Available entities.Quantity
}

// Short reports whether supply falls below demand.
func (l availabilityLine) Short() bool {
	return l.Available < l.Need
}

// availability computes one line per item, labeled by URL when present.
func availability(items []entities.Item) []availabilityLine {
	lines := make([]availabilityLine, 0, len(items))
	for i, item := range items {
		label := item.URL
		if label == "" {
			label = fmt.Sprintf("item %d", i)
		}
		lines = append(lines, availabilityLine{
			Label:     label,
			Need:      item.Amount,
			Available: item.TotalAvailable(),
		})
	}
	return lines
}
