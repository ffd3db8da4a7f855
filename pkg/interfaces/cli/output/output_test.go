package output

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"cartsource/pkg/application/dto"
	"cartsource/pkg/domain/entities"
)

func reportFixture() *dto.PlanReport {
	plan := &entities.SourcingPlan{
		Items: []entities.ItemSourcing{
			{
				ItemID: "item_0",
				URL:    "https://example.com/widget",
				Allocations: []entities.Allocation{
					{Seller: "alpha", OfferIndex: 0, Quantity: 2, UnitCost: 100},
					{Seller: "beta", OfferIndex: 1, Quantity: 1, UnitCost: 90},
				},
			},
			{
				ItemID: "item_1",
				Allocations: []entities.Allocation{
					{Seller: "beta", OfferIndex: 0, Quantity: 1, UnitCost: 50},
				},
			},
		},
		SellersUsed:  []string{"alpha", "beta"},
		DeliveryFee:  132,
		ItemCost:     340,
		DeliveryCost: 264,
		GrandTotal:   604,
	}

	return &dto.PlanReport{
		Plan:         plan,
		SolverStatus: "Optimal",
		Objective:    604,
		SolveTime:    1500 * time.Microsecond,
		Nodes:        42,
		Variables:    6,
		Constraints:  6,
		PlannedAt:    time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRenderText(t *testing.T) {
	report := reportFixture()

	got := renderText(report, false)
	want := `
Optimal Cart:

Seller: alpha
 x2 €1.00 https://example.com/widget
Total Items: 2
Items Total: €2.00
Delivery Cost: €1.32

Seller: beta
 x1 €0.90 https://example.com/widget
 x1 €0.50 item_1
Total Items: 2
Items Total: €1.40
Delivery Cost: €1.32

Sellers Used: 2
Delivery Cost: €2.64
Total Cost (including delivery): €6.04
`

	if got != want {
		t.Errorf("Expected text output:\n%s\ngot:\n%s", want, got)
	}
}

func TestRenderText_Verbose(t *testing.T) {
	report := reportFixture()
	report.SolverStatus = "Feasible"
	report.UsedFallback = true

	got := renderText(report, true)

	if !strings.Contains(got, "Feasible Cart (optimality not proven):") {
		t.Errorf("Expected feasible header, got:\n%s", got)
	}
	if !strings.Contains(got, "📊 Solver Diagnostics:") {
		t.Errorf("Expected diagnostics block, got:\n%s", got)
	}
	if !strings.Contains(got, "  Search Nodes: 42\n") {
		t.Errorf("Expected node count, got:\n%s", got)
	}
	if !strings.Contains(got, "  Model Size: 6 variables, 6 constraints\n") {
		t.Errorf("Expected model size, got:\n%s", got)
	}
	if !strings.Contains(got, "  Fallback: solved on the reduced offer set\n") {
		t.Errorf("Expected fallback note, got:\n%s", got)
	}
}

func TestGenerate_UnsupportedFormat(t *testing.T) {
	err := Generate(reportFixture(), Config{Format: "yaml"})
	if err == nil {
		t.Fatal("Expected error for unsupported format, got nil")
	}
	if err.Error() != "unsupported output format: yaml" {
		t.Errorf("Expected error 'unsupported output format: yaml', got '%s'", err.Error())
	}
}

func TestGenerate_TextWritesFile(t *testing.T) {
	dir := t.TempDir()

	err := Generate(reportFixture(), Config{Format: "text", OutputDir: dir})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "plan.txt"))
	if err != nil {
		t.Fatalf("Expected plan.txt to exist, got %v", err)
	}
	if !strings.Contains(string(data), "Total Cost (including delivery): €6.04") {
		t.Errorf("Expected saved text to include the grand total, got:\n%s", data)
	}
}

func TestGenerate_JSON(t *testing.T) {
	dir := t.TempDir()

	err := Generate(reportFixture(), Config{Format: "json", OutputDir: dir})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "plan.json"))
	if err != nil {
		t.Fatalf("Expected plan.json to exist, got %v", err)
	}

	var decoded struct {
		SolverStatus string `json:"solver_status"`
		SolveTime    string `json:"solve_time"`
		Plan         struct {
			GrandTotal  int64    `json:"grand_total"`
			SellersUsed []string `json:"sellers_used"`
		} `json:"plan"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}

	if decoded.SolverStatus != "Optimal" {
		t.Errorf("Expected solver_status 'Optimal', got '%s'", decoded.SolverStatus)
	}
	if decoded.SolveTime != "1.5ms" {
		t.Errorf("Expected solve_time '1.5ms', got '%s'", decoded.SolveTime)
	}
	if decoded.Plan.GrandTotal != 604 {
		t.Errorf("Expected grand_total 604, got %d", decoded.Plan.GrandTotal)
	}
	if !reflect.DeepEqual(decoded.Plan.SellersUsed, []string{"alpha", "beta"}) {
		t.Errorf("Expected sellers_used [alpha beta], got %v", decoded.Plan.SellersUsed)
	}
}

func TestGenerate_CSV(t *testing.T) {
	dir := t.TempDir()

	err := Generate(reportFixture(), Config{Format: "csv", OutputDir: dir})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	allocations := readCSV(t, filepath.Join(dir, "allocations.csv"))
	wantAllocations := [][]string{
		{"item_id", "url", "seller", "offer_index", "quantity", "unit_cost", "line_total"},
		{"item_0", "https://example.com/widget", "alpha", "0", "2", "1.00", "2.00"},
		{"item_0", "https://example.com/widget", "beta", "1", "1", "0.90", "0.90"},
		{"item_1", "", "beta", "0", "1", "0.50", "0.50"},
	}
	if !reflect.DeepEqual(allocations, wantAllocations) {
		t.Errorf("Expected allocations %v, got %v", wantAllocations, allocations)
	}

	orders := readCSV(t, filepath.Join(dir, "seller_orders.csv"))
	wantOrders := [][]string{
		{"seller", "units", "item_cost", "delivery", "total"},
		{"alpha", "2", "2.00", "1.32", "3.32"},
		{"beta", "2", "1.40", "1.32", "2.72"},
	}
	if !reflect.DeepEqual(orders, wantOrders) {
		t.Errorf("Expected orders %v, got %v", wantOrders, orders)
	}
}

func TestGenerate_CSVRequiresOutputDir(t *testing.T) {
	err := Generate(reportFixture(), Config{Format: "csv"})
	if err == nil {
		t.Fatal("Expected error for CSV without output directory, got nil")
	}
	if err.Error() != "output directory required for CSV format" {
		t.Errorf("Expected error 'output directory required for CSV format', got '%s'", err.Error())
	}
}

func readCSV(t *testing.T, filename string) [][]string {
	t.Helper()

	f, err := os.Open(filename)
	if err != nil {
		t.Fatalf("Expected %s to exist, got %v", filename, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Expected valid CSV in %s, got %v", filename, err)
	}
	return records
}
