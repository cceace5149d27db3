package listing

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Price units accepted by the backend.
const (
	UnitLakh         = "lakh"
	UnitCrore        = "cr"
	UnitLakhPerMonth = "lakh_per_month"
)

// Listing mirrors the property payload exchanged with /api/properties.
type Listing struct {
	ID               string    `json:"id"`
	PropertyCategory string    `json:"propertyCategory,omitempty"`
	PropertyType     string    `json:"propertyType,omitempty"`
	PropertyPhotos   []string  `json:"propertyPhotos,omitempty"`
	Floors           []Floor   `json:"floors,omitempty"`
	Price            float64   `json:"price,omitempty"`
	PriceUnit        string    `json:"priceUnit,omitempty"`
	Builders         []Builder `json:"builders,omitempty"`
	PaymentPlan      string    `json:"paymentPlan,omitempty"`
	AdditionalNotes  string    `json:"additionalNotes,omitempty"`
	WhitePercentage  float64   `json:"whitePercentage,omitempty"`
	BlackPercentage  float64   `json:"blackPercentage,omitempty"`
	PossessionMonth  int       `json:"possessionMonth,omitempty"`
	PossessionYear   int       `json:"possessionYear,omitempty"`
	ClubProperty     bool      `json:"clubProperty,omitempty"`
	PoolProperty     bool      `json:"poolProperty,omitempty"`
	ParkProperty     bool      `json:"parkProperty,omitempty"`
	GatedProperty    bool      `json:"gatedProperty,omitempty"`
	PropertyAge      int       `json:"propertyAge,omitempty"`
	AgeType          string    `json:"ageType,omitempty"`
	Case             string    `json:"case,omitempty"`
	Latitude         float64   `json:"latitude,omitempty"`
	Longitude        float64   `json:"longitude,omitempty"`
	Sizes            []Size    `json:"sizes,omitempty"`
	Address          *Address  `json:"address,omitempty"`
	IsSold           bool      `json:"isSold,omitempty"`
	UserID           string    `json:"userId,omitempty"`
	UserEmail        string    `json:"userEmail,omitempty"`
	CreatedAt        string    `json:"createdAt,omitempty"`
	UpdatedAt        string    `json:"updatedAt,omitempty"`
}

// Floor is one priced floor of a multi-floor property.
type Floor struct {
	FloorNumber int     `json:"floorNumber"`
	Price       float64 `json:"price"`
	PriceUnit   string  `json:"priceUnit,omitempty"`
	IsSold      bool    `json:"isSold,omitempty"`
}

// Builder identifies a builder contact attached to a listing.
type Builder struct {
	Name        string `json:"name,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
}

// Size is one area measurement (carpet, builtup, superbuiltup).
type Size struct {
	Type  string  `json:"type"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Address captures the structured location fields.
type Address struct {
	UnitNo string `json:"unitNo,omitempty"`
	Block  string `json:"block,omitempty"`
	Sector string `json:"sector,omitempty"`
	City   string `json:"city,omitempty"`
}

// ParsedCreatedAt returns the parsed CreatedAt timestamp.
func (l Listing) ParsedCreatedAt() time.Time {
	return parseTime(l.CreatedAt)
}

// ParsedUpdatedAt returns the parsed UpdatedAt timestamp.
func (l Listing) ParsedUpdatedAt() time.Time {
	return parseTime(l.UpdatedAt)
}

// Title returns a short human label for list rows.
func (l Listing) Title() string {
	parts := make([]string, 0, 3)
	if l.PropertyType != "" {
		parts = append(parts, l.PropertyType)
	} else if l.PropertyCategory != "" {
		parts = append(parts, l.PropertyCategory)
	}
	if loc := l.Location(); loc != "" {
		parts = append(parts, loc)
	}
	if len(parts) == 0 {
		return l.ID
	}
	return strings.Join(parts, ", ")
}

// Location renders the address fields as one line, skipping blanks.
func (l Listing) Location() string {
	if l.Address == nil {
		return ""
	}
	parts := make([]string, 0, 4)
	if l.Address.UnitNo != "" {
		parts = append(parts, l.Address.UnitNo)
	}
	if l.Address.Block != "" {
		parts = append(parts, "Block "+l.Address.Block)
	}
	if l.Address.Sector != "" {
		parts = append(parts, "Sector "+l.Address.Sector)
	}
	if l.Address.City != "" {
		parts = append(parts, l.Address.City)
	}
	return strings.Join(parts, ", ")
}

// PriceLabel renders the asking price in the listing's unit.
func (l Listing) PriceLabel() string {
	if l.Price <= 0 {
		return ""
	}
	return FormatPrice(l.Price, l.PriceUnit)
}

// FormatPrice renders a price value with its unit suffix.
func FormatPrice(value float64, unit string) string {
	amount := strconv.FormatFloat(value, 'f', -1, 64)
	switch unit {
	case UnitCrore:
		return fmt.Sprintf("₹%s Cr", amount)
	case UnitLakhPerMonth:
		return fmt.Sprintf("₹%s L/month", amount)
	default:
		return fmt.Sprintf("₹%s L", amount)
	}
}

// PossessionLabel renders possession month/year when both are set.
func (l Listing) PossessionLabel() string {
	if l.PossessionMonth < 1 || l.PossessionMonth > 12 || l.PossessionYear == 0 {
		return ""
	}
	return fmt.Sprintf("%s %d", time.Month(l.PossessionMonth).String(), l.PossessionYear)
}

// Features lists the amenity flags that are set.
func (l Listing) Features() []string {
	var features []string
	if l.ClubProperty {
		features = append(features, "Club")
	}
	if l.PoolProperty {
		features = append(features, "Pool")
	}
	if l.ParkProperty {
		features = append(features, "Park")
	}
	if l.GatedProperty {
		features = append(features, "Gated")
	}
	return features
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
