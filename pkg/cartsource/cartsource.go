// Package cartsource is the public API for embedding the cart sourcing
// optimizer: describe the cart as items with per-seller offers, call Plan,
// and read the resulting report.
package cartsource

import (
	"context"

	"cartsource/pkg/application/dto"
	"cartsource/pkg/application/services/sourcing"
	"cartsource/pkg/domain/entities"
	"cartsource/pkg/mip/bnb"
)

// Core catalog and plan types, re-exported for callers.
type (
	Quantity        = entities.Quantity
	Cents           = entities.Cents
	Offer           = entities.Offer
	Item            = entities.Item
	Catalog         = entities.Catalog
	SourcingPlan    = entities.SourcingPlan
	ItemSourcing    = entities.ItemSourcing
	Allocation      = entities.Allocation
	SellerOrder     = entities.SellerOrder
	SellerOrderLine = entities.SellerOrderLine
	PlanReport      = dto.PlanReport
	Config          = sourcing.Config
)

// NewCatalog validates a cart into a catalog, assigning positional item IDs.
func NewCatalog(items []Item) (*Catalog, error) {
	return entities.NewCatalog(items)
}

// DefaultConfig returns the standard pipeline configuration.
func DefaultConfig() Config {
	return sourcing.DefaultConfig()
}

// Plan sources every unit of every item with the bundled branch-and-bound
// solver and returns the plan plus solver metadata. The configured delivery
// fee is charged once per distinct seller the plan uses.
func Plan(ctx context.Context, items []Item, cfg Config) (*PlanReport, error) {
	catalog, err := entities.NewCatalog(items)
	if err != nil {
		return nil, err
	}

	service, err := sourcing.NewService(bnb.New(), cfg)
	if err != nil {
		return nil, err
	}

	return service.PlanCart(ctx, catalog)
}
