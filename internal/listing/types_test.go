package listing

import (
	"encoding/json"
	"testing"
	"time"
)

func TestListing_JSONFieldNamesMatchBackend(t *testing.T) {
	l := Listing{
		ID:               "p1",
		PropertyCategory: "Residential",
		PropertyType:     "Plot",
		Price:            50,
		PriceUnit:        UnitLakh,
		Floors:           []Floor{{FloorNumber: 1, Price: 25, PriceUnit: UnitLakh}},
		Builders:         []Builder{{Name: "Acme", PhoneNumber: "9876543210", CountryCode: "+91"}},
		Case:             "Fresh Booking",
		Address:          &Address{Sector: "17", City: "Chandigarh"},
	}

	raw, err := json.Marshal(l)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for _, field := range []string{"id", "propertyCategory", "propertyType", "price", "priceUnit", "floors", "builders", "case", "address"} {
		if _, ok := decoded[field]; !ok {
			t.Fatalf("encoded listing missing %q: %s", field, raw)
		}
	}
}

func TestParsedCreatedAt(t *testing.T) {
	l := Listing{CreatedAt: "2026-03-05T10:30:00Z"}
	want := time.Date(2026, 3, 5, 10, 30, 0, 0, time.UTC)
	if got := l.ParsedCreatedAt(); !got.Equal(want) {
		t.Fatalf("ParsedCreatedAt = %v, want %v", got, want)
	}

	if got := (Listing{CreatedAt: "not-a-time"}).ParsedCreatedAt(); !got.IsZero() {
		t.Fatalf("ParsedCreatedAt(garbage) = %v, want zero", got)
	}
	if got := (Listing{}).ParsedCreatedAt(); !got.IsZero() {
		t.Fatalf("ParsedCreatedAt(empty) = %v, want zero", got)
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		value float64
		unit  string
		want  string
	}{
		{50, UnitLakh, "₹50 L"},
		{1.25, UnitCrore, "₹1.25 Cr"},
		{2, UnitLakhPerMonth, "₹2 L/month"},
		{75, "", "₹75 L"},
	}
	for _, tt := range tests {
		if got := FormatPrice(tt.value, tt.unit); got != tt.want {
			t.Errorf("FormatPrice(%v, %q) = %q, want %q", tt.value, tt.unit, got, tt.want)
		}
	}

	if got := (Listing{}).PriceLabel(); got != "" {
		t.Errorf("PriceLabel on zero price = %q, want empty", got)
	}
}

func TestTitleAndLocation(t *testing.T) {
	l := Listing{
		ID:           "p1",
		PropertyType: "Plot",
		Address:      &Address{UnitNo: "12", Block: "B", Sector: "17", City: "Chandigarh"},
	}
	if got := l.Location(); got != "12, Block B, Sector 17, Chandigarh" {
		t.Fatalf("Location = %q", got)
	}
	if got := l.Title(); got != "Plot, 12, Block B, Sector 17, Chandigarh" {
		t.Fatalf("Title = %q", got)
	}

	if got := (Listing{ID: "p9"}).Title(); got != "p9" {
		t.Fatalf("Title fallback = %q, want id", got)
	}
}

func TestPossessionAndFeatures(t *testing.T) {
	l := Listing{PossessionMonth: 6, PossessionYear: 2027, ClubProperty: true, ParkProperty: true}
	if got := l.PossessionLabel(); got != "June 2027" {
		t.Fatalf("PossessionLabel = %q", got)
	}
	if got := (Listing{PossessionMonth: 13, PossessionYear: 2027}).PossessionLabel(); got != "" {
		t.Fatalf("PossessionLabel with bad month = %q, want empty", got)
	}

	features := l.Features()
	if len(features) != 2 || features[0] != "Club" || features[1] != "Park" {
		t.Fatalf("Features = %v, want [Club Park]", features)
	}
}
