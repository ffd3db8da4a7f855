package entities

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Quantity represents an integer count of discrete purchase units.
type Quantity int64

// Cents represents a money amount in minor currency units.
type Cents int64

// Decimal returns the amount in major currency units (two decimal places).
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// String formats the amount in major units, e.g. Cents(1234) -> "12.34".
func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

// Offer is one seller's stock and unit price for one specific item.
type Offer struct {
	Seller    string
	Available Quantity
	UnitCost  Cents
}

// Item is a single cart line: the amount required and the offers able to
// supply it. Offers from the same seller may appear more than once (the
// scraper occasionally reports split lots at different prices).
type Item struct {
	ID     string
	URL    string
	Amount Quantity
	Offers []Offer
}

// TotalAvailable returns the summed availability across all offers.
func (it Item) TotalAvailable() Quantity {
	var total Quantity
	for _, o := range it.Offers {
		total += o.Available
	}
	return total
}

// Catalog is the validated input to one optimization run. It is built once
// from scraper records and read-only afterwards.
type Catalog struct {
	items   []Item
	sellers []string
}

// NewCatalog validates raw items and assembles a catalog. Item IDs are
// assigned by position (item_0, item_1, ...); any IDs present on the input
// are overwritten so identifiers stay stable and unique.
//
// Validation failures return a *ValidationError naming the offending item
// and, where applicable, seller. An item whose summed availability cannot
// cover its amount is rejected here so that an impossible cart never reaches
// the solver as an opaque infeasibility.
func NewCatalog(items []Item) (*Catalog, error) {
	if len(items) == 0 {
		return nil, &ValidationError{Reason: "catalog has no items"}
	}

	out := make([]Item, len(items))
	sellerSet := make(map[string]struct{})

	for i, item := range items {
		id := fmt.Sprintf("item_%d", i)

		if item.Amount <= 0 {
			return nil, &ValidationError{
				ItemID: id,
				Reason: fmt.Sprintf("amount must be positive, got %d", item.Amount),
			}
		}

		offers := make([]Offer, len(item.Offers))
		for j, offer := range item.Offers {
			if offer.Seller == "" {
				return nil, &ValidationError{
					ItemID: id,
					Reason: fmt.Sprintf("offer %d has an empty seller name", j),
				}
			}
			if offer.Available < 0 {
				return nil, &ValidationError{
					ItemID: id,
					Seller: offer.Seller,
					Reason: fmt.Sprintf("offer %d has negative availability %d", j, offer.Available),
				}
			}
			if offer.UnitCost < 0 {
				return nil, &ValidationError{
					ItemID: id,
					Seller: offer.Seller,
					Reason: fmt.Sprintf("offer %d has negative unit cost %d", j, offer.UnitCost),
				}
			}
			offers[j] = offer
			sellerSet[offer.Seller] = struct{}{}
		}

		if total := item.TotalAvailable(); total < item.Amount {
			return nil, &ValidationError{
				ItemID: id,
				Reason: fmt.Sprintf("insufficient availability: need %d, offers cover %d", item.Amount, total),
			}
		}

		out[i] = Item{
			ID:     id,
			URL:    item.URL,
			Amount: item.Amount,
			Offers: offers,
		}
	}

	sellers := make([]string, 0, len(sellerSet))
	for name := range sellerSet {
		sellers = append(sellers, name)
	}
	sort.Strings(sellers)

	return &Catalog{items: out, sellers: sellers}, nil
}

// Items returns the catalog's items in input order. Callers must treat the
// returned slice as read-only.
func (c *Catalog) Items() []Item {
	return c.items
}

// Item returns the item at position i.
func (c *Catalog) Item(i int) Item {
	return c.items[i]
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Sellers returns the distinct seller names appearing anywhere in the
// catalog, sorted. Sellers exist only through their offers; this list is the
// derived view the optimizer's indicator variables are built from.
func (c *Catalog) Sellers() []string {
	return c.sellers
}
