package share

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/GoldCat07/BrickBase-sub000/internal/listing"
)

func sampleListing() listing.Listing {
	return listing.Listing{
		ID:               "p1",
		PropertyCategory: "Residential",
		PropertyType:     "Plot",
		Price:            50,
		PriceUnit:        listing.UnitLakh,
		WhitePercentage:  60,
		BlackPercentage:  40,
		PossessionMonth:  3,
		PossessionYear:   2027,
		Case:             "Fresh Booking",
		ClubProperty:     true,
		GatedProperty:    true,
		Builders:         []listing.Builder{{Name: "Acme Homes", PhoneNumber: "9876543210", CountryCode: "+91"}},
		Address:          &listing.Address{Sector: "21", City: "Chandigarh"},
	}
}

func TestMessage_IncludesKeyFields(t *testing.T) {
	msg := Message(sampleListing())

	for _, want := range []string{
		"*Property Details*",
		"Type: Plot",
		"Price: ₹50 L",
		"Sector 21, Chandigarh",
		"60% white / 40% black",
		"Possession: March 2027",
		"Case: Fresh Booking",
		"Features: Club, Gated",
		"Builder: Acme Homes (+919876543210)",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestMessage_SkipsEmptyFields(t *testing.T) {
	msg := Message(listing.Listing{ID: "p2", PropertyType: "Shop"})

	if strings.Contains(msg, "Price:") || strings.Contains(msg, "Builder:") {
		t.Fatalf("message contains empty sections:\n%s", msg)
	}
}

func TestWhatsAppURL(t *testing.T) {
	got := WhatsAppURL("+91 9876543210", "hello world")
	if !strings.HasPrefix(got, "https://wa.me/919876543210?text=") {
		t.Fatalf("url = %q", got)
	}
	if !strings.Contains(got, "hello+world") {
		t.Fatalf("message not escaped: %q", got)
	}

	if got := WhatsAppURL("", "hi"); got != "https://wa.me/?text=hi" {
		t.Fatalf("empty phone url = %q", got)
	}
}

func TestExport_RemoteAndBase64Photos(t *testing.T) {
	remote := []byte("remote-jpeg-bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(remote)
	}))
	defer server.Close()

	l := sampleListing()
	l.PropertyPhotos = []string{
		server.URL + "/photo.jpg",
		"data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("inline-bytes")),
		"not-base64!!", // skipped
	}

	bundle, err := Export(context.Background(), l, t.TempDir())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	summary, err := os.ReadFile(bundle.MessagePath)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	if !strings.Contains(string(summary), "Type: Plot") {
		t.Fatalf("summary = %s", summary)
	}

	if len(bundle.PhotoPaths) != 2 {
		t.Fatalf("photos = %v, want 2 exported", bundle.PhotoPaths)
	}
	first, err := os.ReadFile(bundle.PhotoPaths[0])
	if err != nil {
		t.Fatalf("read photo: %v", err)
	}
	if string(first) != string(remote) {
		t.Fatalf("photo bytes = %q, want remote payload", first)
	}
	second, _ := os.ReadFile(bundle.PhotoPaths[1])
	if string(second) != "inline-bytes" {
		t.Fatalf("photo bytes = %q, want inline-bytes", second)
	}
}
