package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/GoldCat07/BrickBase-sub000/internal/listing"
)

// Field order in the add-listing form.
const (
	fieldType = iota
	fieldCategory
	fieldPrice
	fieldUnit
	fieldSector
	fieldCity
	fieldNotes
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Type",
	"Category",
	"Price",
	"Unit",
	"Sector",
	"City",
	"Notes",
}

// addForm collects a new listing draft, one text input per field.
type addForm struct {
	inputs [fieldCount]textinput.Model
	focus  int
	err    string
}

func newAddForm() addForm {
	placeholders := [fieldCount]string{
		"Plot / Flat / Shop",
		"Residential / Commercial",
		"50",
		"lakh / cr / rent",
		"17",
		"Chandigarh",
		"",
	}

	var f addForm
	for i := range f.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.Prompt = ""
		in.CharLimit = 120
		f.inputs[i] = in
	}
	f.inputs[fieldType].Focus()
	return f
}

func (f *addForm) next() { f.setFocus((f.focus + 1) % fieldCount) }
func (f *addForm) prev() { f.setFocus((f.focus + fieldCount - 1) % fieldCount) }

func (f *addForm) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

func (f *addForm) atLast() bool { return f.focus == fieldCount-1 }

// draft validates the inputs and builds the listing to submit.
func (f *addForm) draft() (listing.Listing, error) {
	get := func(i int) string { return strings.TrimSpace(f.inputs[i].Value()) }

	l := listing.Listing{
		PropertyType:     get(fieldType),
		PropertyCategory: get(fieldCategory),
		AdditionalNotes:  get(fieldNotes),
	}
	if l.PropertyType == "" {
		return listing.Listing{}, fmt.Errorf("type is required")
	}

	if raw := get(fieldPrice); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil || price <= 0 {
			return listing.Listing{}, fmt.Errorf("price %q is not a positive number", raw)
		}
		l.Price = price
		l.PriceUnit = normalizeUnit(get(fieldUnit))
	}

	if sector, city := get(fieldSector), get(fieldCity); sector != "" || city != "" {
		l.Address = &listing.Address{Sector: sector, City: city}
	}
	return l, nil
}

func normalizeUnit(raw string) string {
	switch strings.ToLower(raw) {
	case "cr", "crore":
		return listing.UnitCrore
	case "lakh_per_month", "rent":
		return listing.UnitLakhPerMonth
	default:
		return listing.UnitLakh
	}
}

func (f addForm) view(styles Styles) string {
	var b strings.Builder
	b.WriteString(styles.Header.Render("New listing") + "\n")
	for i, in := range f.inputs {
		label := fmt.Sprintf("%-9s", fieldLabels[i])
		if i == f.focus {
			b.WriteString(styles.AccentText.Render("▸ "+label) + in.View() + "\n")
		} else {
			b.WriteString(styles.Text.Render("  "+label) + in.View() + "\n")
		}
	}
	if f.err != "" {
		b.WriteString(styles.DangerText.Render(f.err) + "\n")
	}
	b.WriteString(styles.MutedText.Render("enter next · ctrl+s save · esc cancel"))
	return b.String()
}
