package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GoldCat07/BrickBase-sub000/internal/api"
	"github.com/GoldCat07/BrickBase-sub000/internal/config"
	"github.com/GoldCat07/BrickBase-sub000/internal/listing"
)

func newAuthBackend(t *testing.T, wantToken string) (*httptest.Server, *int) {
	t.Helper()
	logins := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			logins++
			var creds struct {
				Email    string `json:"email"`
				Password string `json:"password"`
			}
			if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Email == "" {
				w.WriteHeader(http.StatusUnprocessableEntity)
				_ = json.NewEncoder(w).Encode(map[string]string{"detail": "bad credentials"})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"access_token": wantToken,
				"token_type":   "bearer",
			})
		case "/api/auth/me":
			if r.Header.Get("Authorization") != "Bearer "+wantToken {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"detail": "invalid token"})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]string{"id": "u1", "email": "agent@example.com"})
		case "/api/properties":
			if r.Header.Get("Authorization") != "Bearer "+wantToken {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"detail": "invalid token"})
				return
			}
			_ = json.NewEncoder(w).Encode([]listing.Listing{{ID: "p1"}})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &logins
}

func TestAuthenticate_LoginWithConfigCredentials(t *testing.T) {
	srv, logins := newAuthBackend(t, "tok123")
	client, err := api.NewClient(srv.URL, "")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	ctx := context.Background()

	cfg := config.Config{Email: "agent@example.com", Password: "hunter2"}
	if err := authenticate(ctx, client, cfg); err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if *logins != 1 {
		t.Fatalf("logins = %d, want 1", *logins)
	}

	// The exchanged token must authorize subsequent listing fetches.
	listings, err := client.Listings(ctx, api.ListQuery{})
	if err != nil {
		t.Fatalf("Listings after login: %v", err)
	}
	if len(listings) != 1 || listings[0].ID != "p1" {
		t.Fatalf("listings = %#v, want [p1]", listings)
	}
}

func TestAuthenticate_ConfigTokenIsValidated(t *testing.T) {
	srv, logins := newAuthBackend(t, "tok123")
	ctx := context.Background()

	client, err := api.NewClient(srv.URL, "tok123")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if err := authenticate(ctx, client, config.Config{Token: "tok123", Email: "ignored@example.com"}); err != nil {
		t.Fatalf("authenticate with valid token: %v", err)
	}
	if *logins != 0 {
		t.Fatalf("logins = %d, want 0 when a token is configured", *logins)
	}

	stale, err := api.NewClient(srv.URL, "expired")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if err := authenticate(ctx, stale, config.Config{Token: "expired"}); err == nil {
		t.Fatalf("authenticate accepted a rejected token")
	}
}

func TestAuthenticate_NoCredentialsIsNoop(t *testing.T) {
	srv, logins := newAuthBackend(t, "tok123")
	client, err := api.NewClient(srv.URL, "")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if err := authenticate(context.Background(), client, config.Config{}); err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if *logins != 0 {
		t.Fatalf("logins = %d, want 0 with no credentials", *logins)
	}
}
