package loader

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"DealScout/internal/model"
)

// Load reads listings from a CSV or JSON file, chosen by extension. Field
// names are the case-sensitive column names of the input contract.
//
// Bad cells degrade, they do not abort: any numeric cell that fails to parse
// becomes unknown (nil). Price is the one exception and defaults to 0 when
// absent or unparseable.
func Load(path string) ([]*model.Listing, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return loadJSON(path)
	}
	return loadCSV(path)
}

func loadCSV(path string) ([]*model.Listing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open listings: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read listings csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	// Header row maps column name to index.
	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[strings.TrimSpace(name)] = i
	}

	listings := make([]*model.Listing, 0, len(records)-1)
	for _, rec := range records[1:] {
		cell := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		listings = append(listings, &model.Listing{
			Address:      cell("address"),
			City:         cell("city"),
			State:        cell("state"),
			Price:        priceOrZero(cell("price")),
			Beds:         intPtr(cell("beds")),
			Baths:        floatPtr(cell("baths")),
			Sqft:         intPtr(cell("sqft")),
			LotSqft:      intPtr(cell("lot_sqft")),
			YearBuilt:    intPtr(cell("year_built")),
			PropertyType: strings.ToLower(cell("property_type")),
			Latitude:     floatPtr(cell("latitude")),
			Longitude:    floatPtr(cell("longitude")),
			HOAMonthly:   floatPtr(cell("hoa_monthly")),
			TaxesAnnual:  floatPtr(cell("taxes_annual")),
		})
	}
	return listings, nil
}

// jsonListing mirrors the input column names for a JSON array of objects.
type jsonListing struct {
	Address      string   `json:"address"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Price        *float64 `json:"price"`
	Beds         *int     `json:"beds"`
	Baths        *float64 `json:"baths"`
	Sqft         *int     `json:"sqft"`
	LotSqft      *int     `json:"lot_sqft"`
	YearBuilt    *int     `json:"year_built"`
	PropertyType string   `json:"property_type"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	HOAMonthly   *float64 `json:"hoa_monthly"`
	TaxesAnnual  *float64 `json:"taxes_annual"`
}

func loadJSON(path string) ([]*model.Listing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open listings: %w", err)
	}

	var raw []jsonListing
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse listings json: %w", err)
	}

	listings := make([]*model.Listing, 0, len(raw))
	for _, r := range raw {
		price := 0.0
		if r.Price != nil {
			price = *r.Price
		}
		listings = append(listings, &model.Listing{
			Address:      strings.TrimSpace(r.Address),
			City:         strings.TrimSpace(r.City),
			State:        strings.TrimSpace(r.State),
			Price:        price,
			Beds:         r.Beds,
			Baths:        r.Baths,
			Sqft:         r.Sqft,
			LotSqft:      r.LotSqft,
			YearBuilt:    r.YearBuilt,
			PropertyType: strings.ToLower(strings.TrimSpace(r.PropertyType)),
			Latitude:     r.Latitude,
			Longitude:    r.Longitude,
			HOAMonthly:   r.HOAMonthly,
			TaxesAnnual:  r.TaxesAnnual,
		})
	}
	return listings, nil
}

func floatPtr(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func intPtr(s string) *int {
	v := floatPtr(s)
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}

func priceOrZero(s string) float64 {
	if v := floatPtr(s); v != nil {
		return *v
	}
	return 0
}
