// Package ui implements the Bubble Tea terminal interface: a filterable
// listing browser with a detail view and an add-listing form.
//
// The model polls the shared state store once a second and re-derives
// the visible rows from the current search query, the sold filter, and
// the sort preference. Heavier work — forced refreshes, listing
// creates, share-bundle exports, sync retries — runs as tea.Cmd
// functions off the update loop and reports back through status
// messages.
//
// Theme and filter preferences persist to the prefs file whenever the
// user changes them.
package ui
