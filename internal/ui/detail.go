package ui

import (
	"fmt"
	"strings"

	"github.com/GoldCat07/BrickBase-sub000/internal/listing"
)

// renderDetail builds the detail pane body for one listing.
func renderDetail(l listing.Listing, styles Styles) string {
	var b strings.Builder

	label := func(name, value string) {
		if value == "" {
			return
		}
		b.WriteString(styles.MutedText.Render(name+": ") + styles.Text.Render(value) + "\n")
	}

	b.WriteString(styles.Header.Render(l.Title()) + "\n\n")

	label("Category", l.PropertyCategory)
	label("Type", l.PropertyType)
	label("Price", l.PriceLabel())
	for _, f := range l.Floors {
		value := listing.FormatPrice(f.Price, f.PriceUnit)
		if f.IsSold {
			value += " (sold)"
		}
		label(fmt.Sprintf("Floor %d", f.FloorNumber), value)
	}
	if l.WhitePercentage > 0 || l.BlackPercentage > 0 {
		label("Payment split", fmt.Sprintf("%.0f%% white / %.0f%% black", l.WhitePercentage, l.BlackPercentage))
	}
	label("Payment plan", l.PaymentPlan)
	label("Possession", l.PossessionLabel())
	label("Case", l.Case)
	label("Age", ageLabel(l))
	if features := l.Features(); len(features) != 0 {
		label("Features", strings.Join(features, ", "))
	}
	for _, builder := range l.Builders {
		if builder.Name == "" {
			continue
		}
		value := builder.Name
		if builder.PhoneNumber != "" {
			value += " " + builder.CountryCode + builder.PhoneNumber
		}
		label("Builder", value)
	}
	for _, size := range l.Sizes {
		label(titleCase(size.Type), fmt.Sprintf("%g %s", size.Value, size.Unit))
	}
	label("Address", l.Location())
	if l.Latitude != 0 || l.Longitude != 0 {
		label("Coordinates", fmt.Sprintf("%.5f, %.5f", l.Latitude, l.Longitude))
	}
	if len(l.PropertyPhotos) > 0 {
		label("Photos", fmt.Sprintf("%d attached", len(l.PropertyPhotos)))
	}
	label("Notes", l.AdditionalNotes)

	if l.IsSold {
		b.WriteString("\n" + styles.DangerText.Render("SOLD") + "\n")
	}
	if strings.HasPrefix(l.ID, "tmp_") {
		b.WriteString("\n" + styles.WarningText.Render("Awaiting sync — not yet on the server") + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func ageLabel(l listing.Listing) string {
	switch {
	case l.AgeType != "" && l.PropertyAge > 0:
		return fmt.Sprintf("%s, %d years", l.AgeType, l.PropertyAge)
	case l.AgeType != "":
		return l.AgeType
	case l.PropertyAge > 0:
		return fmt.Sprintf("%d years", l.PropertyAge)
	}
	return ""
}
