// Package listing defines the property listing transport types shared by
// the REST client, the offline cache, and the UI.
//
// Listings are exchanged with the backend as JSON and stored verbatim in
// the local cache; the types here mirror the backend payloads field for
// field. Formatting helpers (price labels, possession, features) live
// alongside the types so the UI and share flows render listings the same
// way.
package listing
