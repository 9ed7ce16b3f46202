package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_CSV(t *testing.T) {
	csv := `address,city,state,price,beds,baths,sqft,lot_sqft,year_built,property_type,latitude,longitude,hoa_monthly,taxes_annual
12 Oak St,Cleveland,OH,180000,3,1.5,1400,5000,1955,Single_Family,41.49,-81.69,0,2400
99 Elm Ave,Toledo,OH,,,,,,,,,,,
`
	listings, err := Load(writeTemp(t, "listings.csv", csv))
	require.NoError(t, err)
	require.Len(t, listings, 2)

	full := listings[0]
	assert.Equal(t, "12 Oak St", full.Address)
	assert.Equal(t, 180000.0, full.Price)
	require.NotNil(t, full.Beds)
	assert.Equal(t, 3, *full.Beds)
	require.NotNil(t, full.Baths)
	assert.Equal(t, 1.5, *full.Baths)
	assert.Equal(t, "single_family", full.PropertyType)
	require.NotNil(t, full.TaxesAnnual)
	assert.Equal(t, 2400.0, *full.TaxesAnnual)
	require.NotNil(t, full.HOAMonthly)
	assert.Equal(t, 0.0, *full.HOAMonthly, "an explicit zero is not unknown")

	sparse := listings[1]
	assert.Equal(t, 0.0, sparse.Price, "missing price defaults to 0")
	assert.Nil(t, sparse.Beds)
	assert.Nil(t, sparse.Sqft)
	assert.Nil(t, sparse.YearBuilt)
	assert.Empty(t, sparse.PropertyType)
}

func TestLoad_CSVMalformedCellsBecomeUnknown(t *testing.T) {
	csv := `address,city,state,price,beds,sqft
5 Pine Rd,Akron,OH,not-a-number,three,n/a
`
	listings, err := Load(writeTemp(t, "listings.csv", csv))
	require.NoError(t, err)
	require.Len(t, listings, 1)

	l := listings[0]
	assert.Equal(t, 0.0, l.Price, "unparseable price defaults to 0")
	assert.Nil(t, l.Beds, "unparseable beds becomes unknown")
	assert.Nil(t, l.Sqft)
}

func TestLoad_JSON(t *testing.T) {
	payload := `[
		{"address": "12 Oak St", "city": "Cleveland", "state": "OH",
		 "price": 180000, "beds": 3, "sqft": 1400, "property_type": "Duplex"},
		{"address": "99 Elm Ave", "city": "Toledo", "state": "OH"}
	]`
	listings, err := Load(writeTemp(t, "listings.json", payload))
	require.NoError(t, err)
	require.Len(t, listings, 2)

	assert.Equal(t, 180000.0, listings[0].Price)
	assert.Equal(t, "duplex", listings[0].PropertyType)
	assert.Equal(t, 0.0, listings[1].Price)
	assert.Nil(t, listings[1].Beds)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}
