package services

import (
	"fmt"
	"sort"

	"cartsource/pkg/domain/entities"
)

// PlanValidator re-checks a decoded sourcing plan against the catalog it was
// built from: coverage, offer limits, seller accounting, and the arithmetic
// of every total. The optimizer and decoder are supposed to make violations
// impossible, so each failure is reported as an *entities.InvariantError
// rather than a validation error.
type PlanValidator struct {
	deliveryFee entities.Cents
	maxSellers  int
}

// NewPlanValidator creates a validator for plans computed under the given
// flat per-seller delivery fee. A maxSellers of zero or less means the plan
// may use any number of sellers.
func NewPlanValidator(deliveryFee entities.Cents, maxSellers int) *PlanValidator {
	return &PlanValidator{
		deliveryFee: deliveryFee,
		maxSellers:  maxSellers,
	}
}

// Validate returns nil when plan is a correct and fully accounted answer for
// catalog.
func (v *PlanValidator) Validate(catalog *entities.Catalog, plan *entities.SourcingPlan) error {
	if plan.DeliveryFee != v.deliveryFee {
		return invariant("plan reports delivery fee %s, configured fee is %s", plan.DeliveryFee, v.deliveryFee)
	}
	if len(plan.Items) != catalog.Len() {
		return invariant("plan has %d items, catalog has %d", len(plan.Items), catalog.Len())
	}

	sellerSet := make(map[string]struct{})
	var itemCost entities.Cents

	for i, sourcing := range plan.Items {
		item := catalog.Item(i)
		if sourcing.ItemID != item.ID {
			return invariant("plan item %d is %q, catalog item is %q", i, sourcing.ItemID, item.ID)
		}

		seen := make(map[int]struct{})
		var covered entities.Quantity
		for _, a := range sourcing.Allocations {
			if a.OfferIndex < 0 || a.OfferIndex >= len(item.Offers) {
				return invariant("%s: allocation references offer %d of %d", item.ID, a.OfferIndex, len(item.Offers))
			}
			if _, dup := seen[a.OfferIndex]; dup {
				return invariant("%s: offer %d allocated twice", item.ID, a.OfferIndex)
			}
			seen[a.OfferIndex] = struct{}{}

			offer := item.Offers[a.OfferIndex]
			if a.Seller != offer.Seller {
				return invariant("%s: allocation seller %q does not match offer seller %q", item.ID, a.Seller, offer.Seller)
			}
			if a.UnitCost != offer.UnitCost {
				return invariant("%s: allocation unit cost %s does not match offer cost %s", item.ID, a.UnitCost, offer.UnitCost)
			}
			if a.Quantity <= 0 {
				return invariant("%s: allocation quantity %d is not positive", item.ID, a.Quantity)
			}
			if a.Quantity > offer.Available {
				return invariant("%s (seller %q): allocated %d exceeds availability %d", item.ID, a.Seller, a.Quantity, offer.Available)
			}

			covered += a.Quantity
			itemCost += a.LineTotal()
			sellerSet[a.Seller] = struct{}{}
		}

		if covered != item.Amount {
			return invariant("%s: allocations cover %d of %d required units", item.ID, covered, item.Amount)
		}
	}

	sellers := make([]string, 0, len(sellerSet))
	for name := range sellerSet {
		sellers = append(sellers, name)
	}
	sort.Strings(sellers)

	if !sameSellers(sellers, plan.SellersUsed) {
		return invariant("plan lists sellers %v, allocations imply %v", plan.SellersUsed, sellers)
	}
	if v.maxSellers > 0 && len(sellers) > v.maxSellers {
		return invariant("plan uses %d sellers, limit is %d", len(sellers), v.maxSellers)
	}
	if plan.ItemCost != itemCost {
		return invariant("plan item cost %s, allocations sum to %s", plan.ItemCost, itemCost)
	}
	wantDelivery := v.deliveryFee * entities.Cents(len(sellers))
	if plan.DeliveryCost != wantDelivery {
		return invariant("plan delivery cost %s, %d sellers at fee %s require %s",
			plan.DeliveryCost, len(sellers), v.deliveryFee, wantDelivery)
	}
	if plan.GrandTotal != plan.ItemCost+plan.DeliveryCost {
		return invariant("plan grand total %s, item cost plus delivery is %s",
			plan.GrandTotal, plan.ItemCost+plan.DeliveryCost)
	}
	return nil
}

func invariant(format string, args ...interface{}) error {
	return &entities.InvariantError{Reason: fmt.Sprintf(format, args...)}
}

func sameSellers(want, got []string) bool {
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if want[i] != got[i] {
			return false
		}
	}
	return true
}
