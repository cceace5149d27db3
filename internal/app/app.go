package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/GoldCat07/BrickBase-sub000/internal/api"
	"github.com/GoldCat07/BrickBase-sub000/internal/cache"
	"github.com/GoldCat07/BrickBase-sub000/internal/config"
	"github.com/GoldCat07/BrickBase-sub000/internal/kv"
	"github.com/GoldCat07/BrickBase-sub000/internal/prefs"
	"github.com/GoldCat07/BrickBase-sub000/internal/state"
	"github.com/GoldCat07/BrickBase-sub000/internal/ui"
)

// Options configure the BrickBase application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/brickbase/prefs.toml
	PollEvery  int    // seconds; zero uses the config value
}

// Run boots the BrickBase TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	client, err := api.NewClient(cfg.APIBase, cfg.Token)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	// A broken local database should not keep the app from running;
	// an in-memory store just means no offline cache this session.
	var store kv.Store
	store, err = kv.OpenSQLite(cfg.CacheDBPath())
	if err != nil {
		log.Printf("open cache db: %v (falling back to in-memory)", err)
		store = kv.NewMem()
	}
	defer func() { _ = store.Close() }()

	offline := cache.New(store, nil)
	snapshots := &state.Store{}

	svc := NewService(client, offline, snapshots)

	interval := time.Duration(cfg.PollSeconds) * time.Second
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	// Offline-first: show whatever the cache has before touching the
	// network, then resolve the session and force one full refresh in
	// the background.
	if cached, ok := offline.CachedSnapshot(ctx); ok {
		snapshots.Warm(cached)
	}
	go func() {
		if err := authenticate(ctx, client, cfg); err != nil {
			log.Printf("auth: %v (continuing with cached data)", err)
		}
		svc.Refresh(ctx, true)
	}()

	StartPoller(ctx, svc, interval)

	uiOpts := ui.Options{
		Context:   ctx,
		Service:   svc,
		Store:     snapshots,
		Config:    &cfg,
		PollTick:  interval,
		ThemeName: userPrefs.Theme,
		ShowSold:  userPrefs.ShowSold,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}

// authenticate resolves the API session. An explicit token from the
// config wins and is checked against the backend; otherwise stored
// credentials are exchanged for one. With neither, requests go out
// unauthenticated and the backend rejects them per call.
func authenticate(ctx context.Context, client *api.Client, cfg config.Config) error {
	if cfg.Token != "" {
		if _, err := client.Me(ctx); err != nil {
			return fmt.Errorf("token check: %w", err)
		}
		return nil
	}
	if cfg.Email == "" {
		return nil
	}
	session, err := client.Login(ctx, cfg.Email, cfg.Password)
	if err != nil {
		return fmt.Errorf("login %s: %w", cfg.Email, err)
	}
	client.SetToken(session.AccessToken)
	return nil
}
