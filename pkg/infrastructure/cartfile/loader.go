// Package cartfile reads scraped cart files: a JSON array of items, each
// with a required amount and the seller offers found for it.
package cartfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"cartsource/pkg/domain/entities"
)

// offerRecord is one seller's listing for an item as the scraper wrote it.
type offerRecord struct {
	Name      string `json:"name"`
	Available int64  `json:"available"`
	Cost      int64  `json:"cost"`
}

// itemRecord is one cart line as the scraper wrote it.
type itemRecord struct {
	URL     string        `json:"url"`
	Amount  int64         `json:"amount"`
	Sellers []offerRecord `json:"sellers"`
}

// Loader handles loading cart data from JSON files.
type Loader struct{}

// NewLoader creates a new cart file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadCart reads filename and maps its records onto catalog items.
func (l *Loader) LoadCart(filename string) ([]entities.Item, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart file %s: %w", filename, err)
	}
	defer f.Close()

	items, err := l.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cart file %s: %w", filename, err)
	}
	return items, nil
}

// Parse decodes cart records from r and maps them onto catalog items. The
// mapping is mechanical; amounts, costs, and availability are judged by the
// catalog's own validation, not here.
func (l *Loader) Parse(r io.Reader) ([]entities.Item, error) {
	var records []itemRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("cart has no items")
	}

	items := make([]entities.Item, len(records))
	for i, record := range records {
		offers := make([]entities.Offer, len(record.Sellers))
		for j, seller := range record.Sellers {
			offers[j] = entities.Offer{
				Seller:    seller.Name,
				Available: entities.Quantity(seller.Available),
				UnitCost:  entities.Cents(seller.Cost),
			}
		}
		items[i] = entities.Item{
			URL:    record.URL,
			Amount: entities.Quantity(record.Amount),
			Offers: offers,
		}
	}
	return items, nil
}
