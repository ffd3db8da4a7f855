package entities

import "sort"

// Allocation assigns part of one item's demand to a single offer.
type Allocation struct {
	Seller     string   `json:"seller"`
	OfferIndex int      `json:"offer_index"`
	Quantity   Quantity `json:"quantity"`
	UnitCost   Cents    `json:"unit_cost"`
}

// LineTotal returns the merchandise cost of this allocation.
func (a Allocation) LineTotal() Cents {
	return Cents(int64(a.Quantity) * int64(a.UnitCost))
}

// ItemSourcing records where every unit of one cart item comes from.
type ItemSourcing struct {
	ItemID      string       `json:"item_id"`
	URL         string       `json:"url,omitempty"`
	Allocations []Allocation `json:"allocations"`
}

// Quantity returns the total units allocated across all offers.
func (s ItemSourcing) Quantity() Quantity {
	var total Quantity
	for _, a := range s.Allocations {
		total += a.Quantity
	}
	return total
}

// Cost returns the merchandise cost of this item across all allocations.
func (s ItemSourcing) Cost() Cents {
	var total Cents
	for _, a := range s.Allocations {
		total += a.LineTotal()
	}
	return total
}

// SourcingPlan is a complete answer to a sourcing request: one ItemSourcing
// per catalog item plus the cost breakdown. DeliveryFee is the flat per-seller
// fee the plan was computed under, carried so renderers and validators do not
// need the original configuration.
type SourcingPlan struct {
	Items        []ItemSourcing `json:"items"`
	SellersUsed  []string       `json:"sellers_used"`
	DeliveryFee  Cents          `json:"delivery_fee"`
	ItemCost     Cents          `json:"item_cost"`
	DeliveryCost Cents          `json:"delivery_cost"`
	GrandTotal   Cents          `json:"grand_total"`
}

// SellerOrderLine is one item's share of a seller order.
type SellerOrderLine struct {
	ItemID   string   `json:"item_id"`
	URL      string   `json:"url,omitempty"`
	Quantity Quantity `json:"quantity"`
	UnitCost Cents    `json:"unit_cost"`
}

// SellerOrder groups a plan's allocations by seller, the shape a buyer
// actually places orders in.
type SellerOrder struct {
	Seller   string            `json:"seller"`
	Lines    []SellerOrderLine `json:"lines"`
	Units    Quantity          `json:"units"`
	ItemCost Cents             `json:"item_cost"`
	Delivery Cents             `json:"delivery"`
}

// Total returns merchandise cost plus delivery for this order.
func (o SellerOrder) Total() Cents {
	return o.ItemCost + o.Delivery
}

// SellerOrders regroups the plan by seller, sorted by seller name. Lines
// within an order keep catalog item order. Sellers that supply nothing do
// not appear.
func (p *SourcingPlan) SellerOrders() []SellerOrder {
	index := make(map[string]int)
	var orders []SellerOrder
	for _, item := range p.Items {
		for _, a := range item.Allocations {
			if a.Quantity <= 0 {
				continue
			}
			i, ok := index[a.Seller]
			if !ok {
				i = len(orders)
				index[a.Seller] = i
				orders = append(orders, SellerOrder{
					Seller:   a.Seller,
					Delivery: p.DeliveryFee,
				})
			}
			orders[i].Lines = append(orders[i].Lines, SellerOrderLine{
				ItemID:   item.ItemID,
				URL:      item.URL,
				Quantity: a.Quantity,
				UnitCost: a.UnitCost,
			})
			orders[i].Units += a.Quantity
			orders[i].ItemCost += a.LineTotal()
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].Seller < orders[j].Seller
	})
	return orders
}
