package ui

import (
	"strings"
	"testing"

	"github.com/GoldCat07/BrickBase-sub000/internal/listing"
)

func testListings() []listing.Listing {
	return []listing.Listing{
		{
			ID:           "p1",
			PropertyType: "Plot",
			Price:        50,
			PriceUnit:    listing.UnitLakh,
			CreatedAt:    "2026-01-10T10:00:00Z",
			Builders:     []listing.Builder{{Name: "Acme Homes"}},
		},
		{
			ID:           "p2",
			PropertyType: "Flat",
			Price:        1.2,
			PriceUnit:    listing.UnitCrore,
			CreatedAt:    "2026-02-01T10:00:00Z",
			IsSold:       true,
		},
		{
			ID:           "p3",
			PropertyType: "Shop",
			Price:        30,
			PriceUnit:    listing.UnitLakh,
			CreatedAt:    "2026-03-05T10:00:00Z",
			Address:      &listing.Address{Sector: "17", City: "Chandigarh"},
		},
	}
}

func TestVisibleListings_HidesSoldByDefault(t *testing.T) {
	visible := visibleListings(testListings(), "", false, "created")

	if len(visible) != 2 {
		t.Fatalf("visible = %d listings, want 2", len(visible))
	}
	for _, l := range visible {
		if l.IsSold {
			t.Fatalf("sold listing %q shown with showSold=false", l.ID)
		}
	}

	withSold := visibleListings(testListings(), "", true, "created")
	if len(withSold) != 3 {
		t.Fatalf("withSold = %d listings, want 3", len(withSold))
	}
}

func TestVisibleListings_SortOrders(t *testing.T) {
	byCreated := visibleListings(testListings(), "", true, "created")
	if byCreated[0].ID != "p3" || byCreated[2].ID != "p1" {
		t.Fatalf("created order = [%s %s %s], want newest first", byCreated[0].ID, byCreated[1].ID, byCreated[2].ID)
	}

	// 1.2 cr = 120 lakh outranks both lakh prices.
	byPrice := visibleListings(testListings(), "", true, "price")
	if byPrice[0].ID != "p2" || byPrice[1].ID != "p1" || byPrice[2].ID != "p3" {
		t.Fatalf("price order = [%s %s %s], want [p2 p1 p3]", byPrice[0].ID, byPrice[1].ID, byPrice[2].ID)
	}
}

func TestMatchesQuery(t *testing.T) {
	items := testListings()

	if got := visibleListings(items, "acme", true, "created"); len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("builder search = %#v, want [p1]", got)
	}
	if got := visibleListings(items, "chandigarh", true, "created"); len(got) != 1 || got[0].ID != "p3" {
		t.Fatalf("city search = %#v, want [p3]", got)
	}
	if got := visibleListings(items, "  ", true, "created"); len(got) != 3 {
		t.Fatalf("blank query = %d listings, want all", len(got))
	}
	if got := visibleListings(items, "penthouse", true, "created"); len(got) != 0 {
		t.Fatalf("no-match query = %#v, want empty", got)
	}
}

func TestRowLabel_MarkersAndTruncation(t *testing.T) {
	sold := rowLabel(listing.Listing{ID: "p2", PropertyType: "Flat", IsSold: true}, 80)
	if !strings.Contains(sold, "[sold]") {
		t.Fatalf("row = %q, want sold marker", sold)
	}

	syncing := rowLabel(listing.Listing{ID: "tmp_123", PropertyType: "Plot"}, 80)
	if !strings.Contains(syncing, "[syncing]") {
		t.Fatalf("row = %q, want syncing marker", syncing)
	}

	long := rowLabel(listing.Listing{ID: "p9", PropertyType: strings.Repeat("x", 200)}, 20)
	if runes := []rune(long); len(runes) != 20 || runes[19] != '…' {
		t.Fatalf("row = %q (%d runes), want 20 runes ending in ellipsis", long, len([]rune(long)))
	}
}

func TestThemeCycle(t *testing.T) {
	first := ThemeByName("")
	if first.Name != "Dracula" {
		t.Fatalf("default theme = %q, want Dracula", first.Name)
	}
	next := NextTheme(first.Name)
	if next.Name == first.Name {
		t.Fatalf("NextTheme did not advance from %q", first.Name)
	}
	if back := NextTheme(next.Name); back.Name != first.Name {
		t.Fatalf("theme cycle broken: %q -> %q -> %q", first.Name, next.Name, back.Name)
	}
}
