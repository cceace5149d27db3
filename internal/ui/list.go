package ui

import (
	"sort"
	"strings"

	"github.com/GoldCat07/BrickBase-sub000/internal/listing"
)

// visibleListings applies the search query, the sold filter, and the
// sort preference to the raw snapshot.
func visibleListings(items []listing.Listing, query string, showSold bool, sortBy string) []listing.Listing {
	out := make([]listing.Listing, 0, len(items))
	for _, l := range items {
		if !showSold && l.IsSold {
			continue
		}
		if !matchesQuery(l, query) {
			continue
		}
		out = append(out, l)
	}

	switch sortBy {
	case "price":
		sort.SliceStable(out, func(i, j int) bool {
			return normalizedPrice(out[i]) > normalizedPrice(out[j])
		})
	default: // created, newest first
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ParsedCreatedAt().After(out[j].ParsedCreatedAt())
		})
	}
	return out
}

// matchesQuery does a case-insensitive substring match over the fields
// an agent searches by: type, category, case, builder names, address,
// and notes. An empty query matches everything.
func matchesQuery(l listing.Listing, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	fields := []string{
		l.PropertyType,
		l.PropertyCategory,
		l.Case,
		l.Location(),
		l.AdditionalNotes,
	}
	for _, b := range l.Builders {
		fields = append(fields, b.Name)
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// normalizedPrice converts a listing price to lakh for comparable
// sorting across units.
func normalizedPrice(l listing.Listing) float64 {
	if l.PriceUnit == listing.UnitCrore {
		return l.Price * 100
	}
	return l.Price
}

// rowLabel renders one list row: title, price, and status markers.
func rowLabel(l listing.Listing, width int) string {
	title := l.Title()
	price := l.PriceLabel()

	markers := ""
	if l.IsSold {
		markers = " [sold]"
	}
	if strings.HasPrefix(l.ID, "tmp_") {
		markers += " [syncing]"
	}

	line := title + markers
	if price != "" {
		line += "  " + price
	}
	return truncate(line, width)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
