package sourcing

import (
	"fmt"
	"time"

	"cartsource/pkg/domain/entities"
)

// Config carries the run constants for one optimization. It is passed
// explicitly into the pipeline stages rather than read from ambient process
// state, so runs stay reproducible and independently testable.
type Config struct {
	// DeliveryCost is the flat fee charged once per distinct seller used.
	DeliveryCost entities.Cents

	// MaxSellers caps the number of distinct sellers in the plan when
	// positive. Zero disables the cap.
	MaxSellers int

	// TimeLimit bounds each solve attempt. Zero means no limit.
	TimeLimit time.Duration

	// Tolerance is how far a solved quantity may sit from an integer
	// before decoding treats it as a modeling defect.
	Tolerance float64

	// ReducedOffersPerItem is the size hint for the fallback model built
	// after a solver failure: only the cheapest offers of each item are
	// kept, topped up as needed to still cover the item's amount.
	ReducedOffersPerItem int
}

// DefaultConfig returns the standard run constants.
func DefaultConfig() Config {
	return Config{
		DeliveryCost:         132,
		MaxSellers:           0,
		TimeLimit:            30 * time.Second,
		Tolerance:            1e-6,
		ReducedOffersPerItem: 3,
	}
}

// Validate rejects constants no run could use.
func (c Config) Validate() error {
	if c.DeliveryCost < 0 {
		return fmt.Errorf("delivery cost cannot be negative, got %d", c.DeliveryCost)
	}
	if c.MaxSellers < 0 {
		return fmt.Errorf("max sellers cannot be negative, got %d", c.MaxSellers)
	}
	if c.TimeLimit < 0 {
		return fmt.Errorf("time limit cannot be negative, got %v", c.TimeLimit)
	}
	if c.Tolerance < 0 || c.Tolerance >= 0.5 {
		return fmt.Errorf("tolerance must be in [0, 0.5), got %v", c.Tolerance)
	}
	if c.ReducedOffersPerItem < 1 {
		return fmt.Errorf("reduced offers per item must be at least 1, got %d", c.ReducedOffersPerItem)
	}
	return nil
}
