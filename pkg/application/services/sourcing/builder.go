package sourcing

import (
	"fmt"
	"sort"

	"cartsource/pkg/domain/entities"
	"cartsource/pkg/mip"
)

// QuantityVar ties one model variable to the (item, offer) pair it buys
// from. Offer is the index within the catalog item, also when the model was
// built from a reduced offer set, so decoding always lands on the original
// offer.
type QuantityVar struct {
	Item  int
	Offer int
	V     mip.Var
}

// SellerVar ties one binary indicator to a seller name.
type SellerVar struct {
	Seller string
	V      mip.Var
}

// BuiltModel is the mechanical translation of a catalog: the model handle
// plus the variable tables the decoder needs to read a solution back out.
type BuiltModel struct {
	Model      *mip.Model
	Quantities []QuantityVar
	Sellers    []SellerVar
	MaxSellers int
	Reduced    bool
}

// ModelBuilder translates catalogs into integer programs. Building performs
// no solving and no I/O; two builds from the same catalog produce identical
// models.
type ModelBuilder struct {
	cfg Config
}

// NewModelBuilder creates a builder using cfg's delivery cost, seller cap,
// and reduction hint.
func NewModelBuilder(cfg Config) *ModelBuilder {
	return &ModelBuilder{cfg: cfg}
}

// Build translates the full catalog. Per (item, offer) pair with positive
// availability it adds a quantity variable bounded by that availability; per
// seller holding at least one such offer it adds a binary usage indicator.
// Demand rows pin each item's quantities to its exact amount, linking rows
// force an indicator on whenever any quantity is drawn from its seller, and
// the objective charges unit costs plus one delivery fee per indicator.
func (b *ModelBuilder) Build(catalog *entities.Catalog) *BuiltModel {
	return b.build(catalog, 0)
}

// BuildReduced translates a shrunken catalog view: per item only the
// cheapest offers, as many as the configured hint, topped up with further
// offers by price until the item's amount stays coverable. It exists as the
// one retry the solver adapter is allowed after a capability failure.
func (b *ModelBuilder) BuildReduced(catalog *entities.Catalog) (*BuiltModel, error) {
	keep := b.cfg.ReducedOffersPerItem
	if keep < 1 {
		return nil, fmt.Errorf("reduced offers per item must be at least 1, got %d", keep)
	}
	return b.build(catalog, keep), nil
}

func (b *ModelBuilder) build(catalog *entities.Catalog, keepPerItem int) *BuiltModel {
	name := "cart_sourcing"
	if keepPerItem > 0 {
		name = "cart_sourcing_reduced"
	}
	m := mip.NewModel(name)

	built := &BuiltModel{
		Model:      m,
		MaxSellers: b.cfg.MaxSellers,
		Reduced:    keepPerItem > 0,
	}

	// Indicators are created lazily: a seller whose every offer is sold out
	// never gets one, so it can neither be charged nor counted.
	sellerVars := make(map[string]mip.Var)
	var sellerNames []string
	sellerVar := func(seller string) mip.Var {
		if v, ok := sellerVars[seller]; ok {
			return v
		}
		v := m.AddBinary(fmt.Sprintf("used[%s]", seller))
		sellerVars[seller] = v
		sellerNames = append(sellerNames, seller)
		return v
	}

	var objective []mip.Term

	for itemIdx, item := range catalog.Items() {
		offerIdxs := b.offersToKeep(item, keepPerItem)

		demand := make([]mip.Term, 0, len(offerIdxs))
		for _, offerIdx := range offerIdxs {
			offer := item.Offers[offerIdx]
			q := m.AddVar(
				fmt.Sprintf("q[%s][%d]", item.ID, offerIdx),
				0, int64(offer.Available),
			)
			built.Quantities = append(built.Quantities, QuantityVar{
				Item:  itemIdx,
				Offer: offerIdx,
				V:     q,
			})

			used := sellerVar(offer.Seller)
			m.AddConstraint(
				fmt.Sprintf("link[%s][%d]", item.ID, offerIdx),
				[]mip.Term{{Var: q, Coef: 1}, {Var: used, Coef: -int64(offer.Available)}},
				mip.LessEqual, 0,
			)

			demand = append(demand, mip.Term{Var: q, Coef: 1})
			objective = append(objective, mip.Term{Var: q, Coef: int64(offer.UnitCost)})
		}

		m.AddConstraint(
			fmt.Sprintf("demand[%s]", item.ID),
			demand, mip.Equal, int64(item.Amount),
		)
	}

	sort.Strings(sellerNames)
	capTerms := make([]mip.Term, 0, len(sellerNames))
	for _, seller := range sellerNames {
		v := sellerVars[seller]
		built.Sellers = append(built.Sellers, SellerVar{Seller: seller, V: v})
		objective = append(objective, mip.Term{Var: v, Coef: int64(b.cfg.DeliveryCost)})
		capTerms = append(capTerms, mip.Term{Var: v, Coef: 1})
	}
	if b.cfg.MaxSellers > 0 {
		m.AddConstraint("seller_cap", capTerms, mip.LessEqual, int64(b.cfg.MaxSellers))
	}

	m.SetObjective(objective, 0)
	return built
}

// offersToKeep returns the offer indices to model for one item, in index
// order. Sold-out offers are always dropped. With a positive keep hint only
// the cheapest keep offers survive, extended by further offers in price
// order until their availability covers the item's amount again.
func (b *ModelBuilder) offersToKeep(item entities.Item, keep int) []int {
	idxs := make([]int, 0, len(item.Offers))
	for i, offer := range item.Offers {
		if offer.Available > 0 {
			idxs = append(idxs, i)
		}
	}
	if keep <= 0 || len(idxs) <= keep {
		return idxs
	}

	byPrice := make([]int, len(idxs))
	copy(byPrice, idxs)
	sort.SliceStable(byPrice, func(i, j int) bool {
		return item.Offers[byPrice[i]].UnitCost < item.Offers[byPrice[j]].UnitCost
	})

	var available entities.Quantity
	cut := 0
	for cut < len(byPrice) && (cut < keep || available < item.Amount) {
		available += item.Offers[byPrice[cut]].Available
		cut++
	}

	kept := byPrice[:cut]
	sort.Ints(kept)
	return kept
}
