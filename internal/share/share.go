// Package share builds shareable listing summaries: a formatted text
// message plus the listing's photos exported to local files, mirroring
// the messaging-app share flow. Photos arrive either as remote URLs or
// as base64 blobs (optionally data: URIs) and are persisted before the
// bundle is handed to whatever shares it.
package share

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/GoldCat07/BrickBase-sub000/internal/listing"
)

const downloadTimeout = 15 * time.Second

// Message renders the listing as a WhatsApp-ready summary.
func Message(l listing.Listing) string {
	var b strings.Builder

	b.WriteString("*Property Details*\n")
	if l.PropertyCategory != "" {
		fmt.Fprintf(&b, "Category: %s\n", l.PropertyCategory)
	}
	if l.PropertyType != "" {
		fmt.Fprintf(&b, "Type: %s\n", l.PropertyType)
	}
	if loc := l.Location(); loc != "" {
		fmt.Fprintf(&b, "Location: %s\n", loc)
	}
	if price := l.PriceLabel(); price != "" {
		fmt.Fprintf(&b, "Price: %s\n", price)
	}
	for _, f := range l.Floors {
		status := ""
		if f.IsSold {
			status = " (sold)"
		}
		fmt.Fprintf(&b, "Floor %d: %s%s\n", f.FloorNumber, listing.FormatPrice(f.Price, f.PriceUnit), status)
	}
	if l.WhitePercentage > 0 || l.BlackPercentage > 0 {
		fmt.Fprintf(&b, "Payment: %.0f%% white / %.0f%% black\n", l.WhitePercentage, l.BlackPercentage)
	}
	if l.PaymentPlan != "" {
		fmt.Fprintf(&b, "Payment plan: %s\n", l.PaymentPlan)
	}
	if possession := l.PossessionLabel(); possession != "" {
		fmt.Fprintf(&b, "Possession: %s\n", possession)
	}
	if l.Case != "" {
		fmt.Fprintf(&b, "Case: %s\n", l.Case)
	}
	if features := l.Features(); len(features) != 0 {
		fmt.Fprintf(&b, "Features: %s\n", strings.Join(features, ", "))
	}
	for _, builder := range l.Builders {
		if builder.Name == "" {
			continue
		}
		line := "Builder: " + builder.Name
		if builder.PhoneNumber != "" {
			line += " (" + builder.CountryCode + builder.PhoneNumber + ")"
		}
		b.WriteString(line + "\n")
	}
	if l.AdditionalNotes != "" {
		fmt.Fprintf(&b, "\n%s\n", l.AdditionalNotes)
	}
	if l.Latitude != 0 || l.Longitude != 0 {
		fmt.Fprintf(&b, "\nMap: https://maps.google.com/?q=%f,%f\n", l.Latitude, l.Longitude)
	}

	return strings.TrimRight(b.String(), "\n")
}

// WhatsAppURL returns a wa.me link that opens a chat pre-filled with
// the message. phone may be empty (recipient chosen in the app).
func WhatsAppURL(phone, message string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(message)
}

// Bundle is the result of exporting a listing for sharing.
type Bundle struct {
	Dir         string
	MessagePath string
	PhotoPaths  []string
}

// Export writes the listing's summary and photos into a fresh directory
// under baseDir. Photos that cannot be fetched or decoded are skipped;
// the bundle is still produced with whatever succeeded.
func Export(ctx context.Context, l listing.Listing, baseDir string) (Bundle, error) {
	id := l.ID
	if id == "" {
		id = "listing"
	}
	dir := filepath.Join(baseDir, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Bundle{}, fmt.Errorf("create share dir: %w", err)
	}

	bundle := Bundle{Dir: dir}

	messagePath := filepath.Join(dir, "summary.txt")
	if err := os.WriteFile(messagePath, []byte(Message(l)+"\n"), 0o644); err != nil {
		return Bundle{}, fmt.Errorf("write summary: %w", err)
	}
	bundle.MessagePath = messagePath

	client := &http.Client{Timeout: downloadTimeout}
	for i, photo := range l.PropertyPhotos {
		data, err := fetchPhoto(ctx, client, photo)
		if err != nil {
			continue // best-effort: share what we can
		}
		path := filepath.Join(dir, fmt.Sprintf("photo_%d.jpg", i))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			continue
		}
		bundle.PhotoPaths = append(bundle.PhotoPaths, path)
	}

	return bundle, nil
}

// fetchPhoto resolves one photo reference: a remote URL is downloaded,
// anything else is treated as base64 (with or without a data: header).
func fetchPhoto(ctx context.Context, client *http.Client, photo string) ([]byte, error) {
	trimmed := strings.TrimSpace(photo)
	if trimmed == "" {
		return nil, fmt.Errorf("empty photo reference")
	}

	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, trimmed, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("download photo: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("photo url returned status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}

	if idx := strings.Index(trimmed, "base64,"); idx >= 0 {
		trimmed = trimmed[idx+len("base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("decode photo: %w", err)
	}
	return data, nil
}
