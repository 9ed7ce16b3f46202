package model

// Listing is a snapshot of one for-sale property. It is built once per input
// row and never mutated afterwards.
//
// Optional numeric fields use pointers: nil means the source data did not
// carry the value, which is distinct from a real zero. Price is the one
// exception and defaults to 0 when absent.
type Listing struct {
	Address string
	City    string
	State   string
	Price   float64

	Beds      *int
	Baths     *float64
	Sqft      *int
	LotSqft   *int
	YearBuilt *int

	// PropertyType is lowercased and trimmed; empty means unknown.
	PropertyType string

	// Carried through to output, unused by the evaluation itself.
	Latitude  *float64
	Longitude *float64

	HOAMonthly  *float64
	TaxesAnnual *float64
}

// Float returns a pointer to v. Convenience for building listings in tests
// and for optional result fields.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }
