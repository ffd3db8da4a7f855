package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"cartsource/pkg/application/dto"
	"cartsource/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
}

// Generate creates output in the specified format
func Generate(report *dto.PlanReport, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(report, config)
	case "json":
		return generateJSONOutput(report, config)
	case "csv":
		return generateCSVOutput(report, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(report *dto.PlanReport, config Config) error {
	text := renderText(report, config.Verbose)
	fmt.Print(text)

	if config.OutputDir != "" {
		if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		filename := filepath.Join(config.OutputDir, "plan.txt")
		if err := os.WriteFile(filename, []byte(text), 0644); err != nil {
			return fmt.Errorf("failed to write text file: %w", err)
		}

		if config.Verbose {
			fmt.Printf("💾 Results saved to: %s\n", filename)
		}
	}

	return nil
}

// renderText builds the per-seller cart breakdown followed by the
// overall totals and, in verbose mode, the solver diagnostics.
func renderText(report *dto.PlanReport, verbose bool) string {
	plan := report.Plan

	var output string
	if report.SolverStatus == "Optimal" {
		output += "\nOptimal Cart:\n\n"
	} else {
		output += "\nFeasible Cart (optimality not proven):\n\n"
	}

	for _, order := range plan.SellerOrders() {
		output += fmt.Sprintf("Seller: %s\n", order.Seller)
		for _, line := range order.Lines {
			output += fmt.Sprintf(" x%d €%s %s\n", line.Quantity, line.UnitCost, lineLabel(line))
		}
		output += fmt.Sprintf("Total Items: %d\n", order.Units)
		output += fmt.Sprintf("Items Total: €%s\n", order.ItemCost)
		output += fmt.Sprintf("Delivery Cost: €%s\n\n", order.Delivery)
	}

	output += fmt.Sprintf("Sellers Used: %d\n", len(plan.SellersUsed))
	output += fmt.Sprintf("Delivery Cost: €%s\n", plan.DeliveryCost)
	output += fmt.Sprintf("Total Cost (including delivery): €%s\n", plan.GrandTotal)

	if verbose {
		output += "\n📊 Solver Diagnostics:\n"
		output += fmt.Sprintf("  Status: %s\n", report.SolverStatus)
		output += fmt.Sprintf("  Objective: %.0f\n", report.Objective)
		output += fmt.Sprintf("  Model Size: %d variables, %d constraints\n",
			report.Variables, report.Constraints)
		output += fmt.Sprintf("  Search Nodes: %d\n", report.Nodes)
		output += fmt.Sprintf("  Solve Time: %v\n", report.SolveTime.Round(time.Microsecond))
		if report.UsedFallback {
			output += "  Fallback: solved on the reduced offer set\n"
		}
	}

	return output
}

// lineLabel prefers the item URL for display and falls back to the item ID.
func lineLabel(line entities.SellerOrderLine) string {
	if line.URL != "" {
		return line.URL
	}
	return line.ItemID
}

// generateJSONOutput creates JSON output
func generateJSONOutput(report *dto.PlanReport, config Config) error {
	jsonData, err := json.MarshalIndent(jsonReport{
		Plan:         report.Plan,
		SolverStatus: report.SolverStatus,
		Objective:    report.Objective,
		SolveTime:    report.SolveTime.String(),
		Nodes:        report.Nodes,
		Variables:    report.Variables,
		Constraints:  report.Constraints,
		UsedFallback: report.UsedFallback,
		PlannedAt:    report.PlannedAt,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Println(string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "plan.json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	if config.Verbose {
		fmt.Printf("💾 JSON results saved to: %s\n", filename)
	}

	return nil
}

// jsonReport is the serialized form of a plan report.
type jsonReport struct {
	Plan         *entities.SourcingPlan `json:"plan"`
	SolverStatus string                 `json:"solver_status"`
	Objective    float64                `json:"objective"`
	SolveTime    string                 `json:"solve_time"`
	Nodes        int64                  `json:"nodes"`
	Variables    int                    `json:"variables"`
	Constraints  int                    `json:"constraints"`
	UsedFallback bool                   `json:"used_fallback"`
	PlannedAt    time.Time              `json:"planned_at"`
}

// generateCSVOutput creates CSV output
func generateCSVOutput(report *dto.PlanReport, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	allocFile := filepath.Join(config.OutputDir, "allocations.csv")
	if err := writeAllocationsCSV(report.Plan, allocFile); err != nil {
		return fmt.Errorf("failed to write allocations CSV: %w", err)
	}

	ordersFile := filepath.Join(config.OutputDir, "seller_orders.csv")
	if err := writeOrdersCSV(report.Plan, ordersFile); err != nil {
		return fmt.Errorf("failed to write orders CSV: %w", err)
	}

	if config.Verbose {
		fmt.Printf("💾 CSV results saved to:\n")
		fmt.Printf("  Allocations: %s\n", allocFile)
		fmt.Printf("  Seller Orders: %s\n", ordersFile)
	}

	return nil
}

// writeAllocationsCSV writes one row per allocation, in item order.
func writeAllocationsCSV(plan *entities.SourcingPlan, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"item_id", "url", "seller", "offer_index", "quantity", "unit_cost", "line_total"}); err != nil {
		return err
	}

	for _, item := range plan.Items {
		for _, alloc := range item.Allocations {
			row := []string{
				item.ItemID,
				item.URL,
				alloc.Seller,
				strconv.Itoa(alloc.OfferIndex),
				strconv.FormatInt(int64(alloc.Quantity), 10),
				alloc.UnitCost.String(),
				alloc.LineTotal().String(),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

// writeOrdersCSV writes one row per seller order, sorted by seller.
func writeOrdersCSV(plan *entities.SourcingPlan, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"seller", "units", "item_cost", "delivery", "total"}); err != nil {
		return err
	}

	for _, order := range plan.SellerOrders() {
		row := []string{
			order.Seller,
			strconv.FormatInt(int64(order.Units), 10),
			order.ItemCost.String(),
			order.Delivery.String(),
			order.Total().String(),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
