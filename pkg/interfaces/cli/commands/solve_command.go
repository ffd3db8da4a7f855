package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cartsource/pkg/application/services/sourcing"
	"cartsource/pkg/domain/entities"
	"cartsource/pkg/infrastructure/cartfile"
	"cartsource/pkg/infrastructure/config"
	"cartsource/pkg/interfaces/cli/output"
	"cartsource/pkg/mip/bnb"
)

var (
	solveCartFile      string
	solveDeliveryCost  int64
	solveMaxSellers    int
	solveTimeLimit     string
	solveTolerance     float64
	solveReducedOffers int
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Compute the cheapest seller assignment for a cart",
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := loadRunSettings(cmd)
		if err != nil {
			fail(err)
		}

		solveCommand := NewSolveCommand(Config{
			CartFile:  solveCartFile,
			OutputDir: outputDir,
			Format:    resolveFormat(settings),
			Verbose:   verbose,
			Settings:  settings,
		})
		if err := solveCommand.Execute(context.Background()); err != nil {
			fail(err)
		}
	},
}

func init() {
	solveCmd.Flags().StringVar(&solveCartFile, "cart", "", "Path to the cart JSON file (required)")
	solveCmd.MarkFlagRequired("cart")
	solveCmd.Flags().Int64Var(&solveDeliveryCost, "delivery-cost", 0, "Flat per-seller delivery fee in minor currency units")
	solveCmd.Flags().IntVar(&solveMaxSellers, "max-sellers", 0, "Maximum number of distinct sellers (0 = unlimited)")
	solveCmd.Flags().StringVar(&solveTimeLimit, "time-limit", "", "Solver time limit per attempt, e.g. 30s")
	solveCmd.Flags().Float64Var(&solveTolerance, "tolerance", 0, "Integrality tolerance used when decoding")
	solveCmd.Flags().IntVar(&solveReducedOffers, "reduced-offers", 0, "Offers per item kept by the fallback model")
	rootCmd.AddCommand(solveCmd)
}

// loadRunSettings layers explicit flag overrides over the settings file and
// environment.
func loadRunSettings(cmd *cobra.Command) (*config.Settings, error) {
	settings, err := config.LoadSettings(settingsFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("delivery-cost") {
		settings.DeliveryCost = solveDeliveryCost
	}
	if flags.Changed("max-sellers") {
		settings.MaxSellers = solveMaxSellers
	}
	if flags.Changed("time-limit") {
		settings.TimeLimit = solveTimeLimit
	}
	if flags.Changed("tolerance") {
		settings.Tolerance = solveTolerance
	}
	if flags.Changed("reduced-offers") {
		settings.ReducedOffers = solveReducedOffers
	}
	return settings, nil
}

// resolveFormat prefers the --format flag over the settings default.
func resolveFormat(settings *config.Settings) string {
	if outputFormat != "" {
		return outputFormat
	}
	return settings.OutputFormat
}

// Config holds configuration for the solve and check commands
type Config struct {
	CartFile  string
	OutputDir string
	Format    string
	Verbose   bool
	Settings  *config.Settings
}

// SolveCommand handles the full load-solve-report pipeline
type SolveCommand struct {
	config Config
}

// NewSolveCommand creates a new solve command with the given configuration
func NewSolveCommand(config Config) *SolveCommand {
	return &SolveCommand{
		config: config,
	}
}

// Execute runs the solve command
func (c *SolveCommand) Execute(ctx context.Context) error {
	cfg, err := sourcingConfig(c.config.Settings)
	if err != nil {
		return err
	}

	if c.config.Verbose {
		fmt.Printf("📂 Loading cart from %s...\n", c.config.CartFile)
	}

	loader := cartfile.NewLoader()
	items, err := loader.LoadCart(c.config.CartFile)
	if err != nil {
		return fmt.Errorf("error loading cart: %w", err)
	}

	catalog, err := entities.NewCatalog(items)
	if err != nil {
		return err
	}

	if c.config.Verbose {
		fmt.Printf("✅ Cart loaded successfully:\n")
		fmt.Printf("  Items: %d\n", catalog.Len())
		fmt.Printf("  Offers: %d\n", countOffers(catalog))
		fmt.Printf("  Sellers: %d\n", len(catalog.Sellers()))
		fmt.Println()
	}

	service, err := sourcing.NewService(bnb.New(), cfg)
	if err != nil {
		return err
	}

	if c.config.Verbose {
		fmt.Println("🔄 Solving the sourcing model...")
	}

	startTime := time.Now()
	report, err := service.PlanCart(ctx, catalog)
	if err != nil {
		return err
	}

	if c.config.Verbose {
		fmt.Printf("✅ Plan computed in %v\n", time.Since(startTime))
	}

	return output.Generate(report, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
	})
}

// sourcingConfig maps run settings onto the pipeline configuration.
func sourcingConfig(settings *config.Settings) (sourcing.Config, error) {
	limit, err := settings.TimeLimitDuration()
	if err != nil {
		return sourcing.Config{}, err
	}

	cfg := sourcing.DefaultConfig()
	cfg.DeliveryCost = entities.Cents(settings.DeliveryCost)
	cfg.MaxSellers = settings.MaxSellers
	cfg.TimeLimit = limit
	cfg.Tolerance = settings.Tolerance
	cfg.ReducedOffersPerItem = settings.ReducedOffers
	return cfg, nil
}

func countOffers(catalog *entities.Catalog) int {
	total := 0
	for _, item := range catalog.Items() {
		total += len(item.Offers)
	}
	return total
}
