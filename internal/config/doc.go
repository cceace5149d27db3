// Package config handles loading the BrickBase configuration file.
//
// The config lives at ~/.config/brickbase/config.toml by default and is
// entirely optional: a missing file yields working defaults pointing at
// a local backend. Fields:
//
//	api_base     = "127.0.0.1:8000"        # backend host:port or full URL
//	token        = "..."                   # saved session token (optional)
//	data_dir     = "~/.local/share/brickbase"
//	share_dir    = "<data_dir>/share"      # where share bundles are exported
//	poll_seconds = 30                      # background refresh cadence
//
// Tilde expansion is applied to all paths. The offline cache database
// is derived from data_dir (CacheDBPath). Loading is read-only and
// happens once at startup; the returned Config is treated as immutable.
package config
