// Package pricing derives unit price and lead time from the catalog.
// Everything here is a pure function of the category and material
// selection; undefined materials resolve via the default-first policy.
package pricing

import (
	"fmt"

	"aigc-c2m-studio/internal/catalog"
)

const (
	leadTimeBaseMin = 3
	leadTimeBaseMax = 5
)

// Price returns the unit price for a category with the given material:
// category base price plus the material's price offset.
func Price(c catalog.Category, materialID string) int {
	spec, ok := catalog.Get(c)
	if !ok {
		return 0
	}
	return spec.BasePrice + catalog.MaterialByID(c, materialID).PriceOffset
}

// LeadTime returns the production window as display text, shifted by
// the material's time offset.
func LeadTime(c catalog.Category, materialID string) string {
	offset := catalog.MaterialByID(c, materialID).TimeOffset
	return fmt.Sprintf("%d-%d business days", leadTimeBaseMin+offset, leadTimeBaseMax+offset)
}
