package sourcing

import (
	"fmt"
	"math"
	"sort"

	"cartsource/pkg/domain/entities"
	"cartsource/pkg/mip"
)

// SolutionDecoder turns solved variable values back into a sourcing plan.
// Every failure is a *entities.DecodeError: by the time a result reaches
// decoding, anything inconsistent is a modeling or tolerance defect, not a
// data problem.
type SolutionDecoder struct {
	deliveryFee entities.Cents
	tolerance   float64
}

// NewSolutionDecoder creates a decoder. tolerance is how far a quantity
// value may sit from an integer before decoding refuses it.
func NewSolutionDecoder(deliveryFee entities.Cents, tolerance float64) *SolutionDecoder {
	return &SolutionDecoder{deliveryFee: deliveryFee, tolerance: tolerance}
}

// Decode reads each quantity variable of built out of res, rounds away
// relaxation noise within tolerance, and assembles the per-item allocations.
// Sellers are charged from the decoded quantities, never from the solver's
// indicator values, so a plan can never carry a delivery fee for a seller it
// buys nothing from.
//
// Totals are recomputed from the decoded quantities and cross-checked
// against the solver's reported objective: a realized total above the
// objective means a used seller went uncharged in the model, and a realized
// total below a certified optimum means the model charged a fee no purchase
// justifies. Both refute the model, so both fail decoding.
func (d *SolutionDecoder) Decode(
	catalog *entities.Catalog,
	built *BuiltModel,
	res *mip.Result,
) (*entities.SourcingPlan, error) {
	if res.Status != mip.StatusOptimal && res.Status != mip.StatusFeasible {
		return nil, &entities.DecodeError{
			Reason: fmt.Sprintf("solver status %s carries no solution", res.Status),
		}
	}

	items := make([]entities.ItemSourcing, catalog.Len())
	for i := 0; i < catalog.Len(); i++ {
		item := catalog.Item(i)
		items[i] = entities.ItemSourcing{ItemID: item.ID, URL: item.URL}
	}

	sellerSet := make(map[string]struct{})
	var itemCost entities.Cents

	for _, qv := range built.Quantities {
		name := built.Model.VarName(qv.V)
		value := res.Value(qv.V)
		rounded := math.Round(value)
		if math.Abs(value-rounded) > d.tolerance {
			return nil, &entities.DecodeError{
				Variable: name,
				Reason: fmt.Sprintf(
					"value %v is %v away from an integer, tolerance is %v",
					value, math.Abs(value-rounded), d.tolerance,
				),
			}
		}

		offer := catalog.Item(qv.Item).Offers[qv.Offer]
		qty := entities.Quantity(rounded)
		if qty < 0 || qty > offer.Available {
			return nil, &entities.DecodeError{
				Variable: name,
				Reason:   fmt.Sprintf("value %d is outside [0, %d]", qty, offer.Available),
			}
		}
		if qty == 0 {
			continue
		}

		items[qv.Item].Allocations = append(items[qv.Item].Allocations, entities.Allocation{
			Seller:     offer.Seller,
			OfferIndex: qv.Offer,
			Quantity:   qty,
			UnitCost:   offer.UnitCost,
		})
		itemCost += entities.Cents(int64(qty) * int64(offer.UnitCost))
		sellerSet[offer.Seller] = struct{}{}
	}

	sellers := make([]string, 0, len(sellerSet))
	for name := range sellerSet {
		sellers = append(sellers, name)
	}
	sort.Strings(sellers)

	deliveryCost := d.deliveryFee * entities.Cents(len(sellers))
	plan := &entities.SourcingPlan{
		Items:        items,
		SellersUsed:  sellers,
		DeliveryFee:  d.deliveryFee,
		ItemCost:     itemCost,
		DeliveryCost: deliveryCost,
		GrandTotal:   itemCost + deliveryCost,
	}

	realized := float64(plan.GrandTotal)
	if realized > res.Objective+0.5 {
		return nil, &entities.DecodeError{
			Reason: fmt.Sprintf(
				"realized total %s exceeds the reported objective %v; a used seller went uncharged",
				plan.GrandTotal, res.Objective,
			),
		}
	}
	if res.Status == mip.StatusOptimal && realized < res.Objective-0.5 {
		return nil, &entities.DecodeError{
			Reason: fmt.Sprintf(
				"realized total %s is below the certified optimum %v; the model charged an unused seller",
				plan.GrandTotal, res.Objective,
			),
		}
	}

	return plan, nil
}
