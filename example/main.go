package main

import (
	"context"
	"fmt"

	"cartsource/pkg/cartsource"
)

func main() {
	ctx := context.Background()

	// A cart where seller Y is cheaper for the widget and pricier for the
	// gadget; one delivery fee saved by consolidating beats the difference.
	items := demoCart()

	cfg := cartsource.DefaultConfig()
	cfg.DeliveryCost = 10

	fmt.Println("🛒 Sourcing a two-item cart across sellers X and Y...")
	fmt.Printf("Delivery fee per seller: €%s\n", cfg.DeliveryCost)
	fmt.Println()

	report, err := cartsource.Plan(ctx, items, cfg)
	if err != nil {
		fmt.Printf("❌ Sourcing failed: %v\n", err)
		return
	}

	plan := report.Plan
	fmt.Println("📊 Sourcing Plan:")
	fmt.Printf("  Status: %s\n", report.SolverStatus)
	fmt.Printf("  Sellers Used: %v\n", plan.SellersUsed)
	fmt.Printf("  Item Cost: €%s\n", plan.ItemCost)
	fmt.Printf("  Delivery Cost: €%s\n", plan.DeliveryCost)
	fmt.Printf("  Grand Total: €%s\n", plan.GrandTotal)
	fmt.Println()

	for _, order := range plan.SellerOrders() {
		fmt.Printf("📦 Order from %s (%d units, €%s items + €%s delivery):\n",
			order.Seller, order.Units, order.ItemCost, order.Delivery)
		for _, line := range order.Lines {
			fmt.Printf("  x%d €%s %s\n", line.Quantity, line.UnitCost, line.URL)
		}
	}
	fmt.Println()

	fmt.Printf("✅ Solved in %v after %d nodes\n", report.SolveTime, report.Nodes)
}

func demoCart() []cartsource.Item {
	return []cartsource.Item{
		{
			URL:    "https://shop.example/widget",
			Amount: 2,
			Offers: []cartsource.Offer{
				{Seller: "X", Available: 5, UnitCost: 3},
				{Seller: "Y", Available: 5, UnitCost: 2},
			},
		},
		{
			URL:    "https://shop.example/gadget",
			Amount: 1,
			Offers: []cartsource.Offer{
				{Seller: "X", Available: 5, UnitCost: 4},
				{Seller: "Y", Available: 5, UnitCost: 5},
			},
		},
	}
}
