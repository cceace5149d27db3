package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/GoldCat07/BrickBase-sub000/internal/cache"
	"github.com/GoldCat07/BrickBase-sub000/internal/config"
	"github.com/GoldCat07/BrickBase-sub000/internal/listing"
	"github.com/GoldCat07/BrickBase-sub000/internal/prefs"
	"github.com/GoldCat07/BrickBase-sub000/internal/share"
	"github.com/GoldCat07/BrickBase-sub000/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewList View = iota
	ViewDetail
	ViewAdd
)

// Service is the application surface the UI drives. Implemented by
// *app.Service; narrowed here to keep the packages decoupled.
type Service interface {
	Refresh(ctx context.Context, force bool)
	CreateListing(ctx context.Context, draft listing.Listing) (listing.Listing, error)
	RetryPending(ctx context.Context, id string)
	Cache() *cache.Store
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Service   Service
	Store     *state.Store
	Config    *config.Config
	PollTick  time.Duration
	ThemeName string
	ShowSold  bool
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	svc       Service
	store     *state.Store
	config    *config.Config
	prefsPath string
	pollTick  time.Duration

	// UI state
	theme       Theme
	styles      Styles
	keys        keyMap
	currentView View
	width       int
	height      int

	// Data state
	snapshot state.Snapshot
	visible  []listing.Listing

	// List state
	selectedRow int
	showSold    bool
	sortBy      string

	// Search state
	searching bool
	search    textinput.Model
	query     string

	// Add-listing form, active while currentView == ViewAdd
	form addForm

	// Transient status line (share results, refresh notices)
	status string
}

type tickMsg time.Time

type refreshedMsg struct{}

type statusMsg string

// NewModel builds the root model from options.
func NewModel(opts Options) Model {
	theme := ThemeByName(opts.ThemeName)

	search := textinput.New()
	search.Placeholder = "type, builder, sector..."
	search.Prompt = "/"
	search.CharLimit = 64

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	m := Model{
		ctx:       opts.Context,
		svc:       opts.Service,
		store:     opts.Store,
		config:    opts.Config,
		prefsPath: opts.PrefsPath,
		pollTick:  opts.PollTick,
		theme:     theme,
		styles:    theme.Styles(),
		keys:      DefaultKeyMap(),
		showSold:  opts.ShowSold,
		sortBy:    userPrefs.SortBy,
		search:    search,
	}
	m.refreshSnapshot()
	return m
}

// Init starts the UI tick loop.
func (m Model) Init() tea.Cmd {
	return tickEvery()
}

func tickEvery() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles Bubble Tea messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.refreshSnapshot()
		return m, tickEvery()

	case refreshedMsg:
		m.refreshSnapshot()
		m.status = "refreshed"
		return m, nil

	case statusMsg:
		m.status = string(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.currentView == ViewAdd {
		return m.handleFormKey(msg)
	}
	if m.searching {
		switch {
		case key.Matches(msg, m.keys.Escape):
			m.searching = false
			m.search.Blur()
			m.search.SetValue("")
			m.query = ""
			m.refreshSnapshot()
			return m, nil
		case key.Matches(msg, m.keys.Confirm):
			m.searching = false
			m.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.query = m.search.Value()
		m.refreshSnapshot()
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape):
		if m.currentView == ViewDetail {
			m.currentView = ViewList
		} else if m.query != "" {
			m.query = ""
			m.search.SetValue("")
			m.refreshSnapshot()
		}
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		if m.currentView == ViewList && len(m.visible) > 0 {
			m.currentView = ViewDetail
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		if len(m.visible) > 0 {
			m.selectedRow = len(m.visible) - 1
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		if m.currentView == ViewList {
			m.searching = true
			m.search.Focus()
		}
		return m, nil

	case key.Matches(msg, m.keys.Add):
		if m.currentView == ViewList {
			m.form = newAddForm()
			m.currentView = ViewAdd
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.forceRefreshCmd()

	case key.Matches(msg, m.keys.ToggleSold):
		m.showSold = !m.showSold
		m.savePrefs()
		m.refreshSnapshot()
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = NextTheme(m.theme.Name)
		m.styles = m.theme.Styles()
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Share):
		if l, ok := m.selectedListing(); ok {
			return m, m.shareCmd(l)
		}
		return m, nil

	case key.Matches(msg, m.keys.RetrySync):
		return m, m.retrySyncCmd()
	}
	return m, nil
}

// handleFormKey routes keys while the add-listing form is open. Arrows
// and tab move between fields; characters go to the focused input.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.currentView = ViewList
		return m, nil
	case "ctrl+s":
		return m.submitForm()
	case "enter":
		if m.form.atLast() {
			return m.submitForm()
		}
		m.form.next()
		return m, nil
	case "tab", "down":
		m.form.next()
		return m, nil
	case "shift+tab", "up":
		m.form.prev()
		return m, nil
	}
	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	draft, err := m.form.draft()
	if err != nil {
		m.form.err = err.Error()
		return m, nil
	}
	m.currentView = ViewList
	return m, m.createCmd(draft)
}

func (m *Model) moveSelection(delta int) {
	if len(m.visible) == 0 {
		m.selectedRow = 0
		return
	}
	m.selectedRow += delta
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
	if m.selectedRow >= len(m.visible) {
		m.selectedRow = len(m.visible) - 1
	}
}

func (m *Model) refreshSnapshot() {
	m.snapshot = m.store.Snapshot()
	m.visible = visibleListings(m.snapshot.Listings, m.query, m.showSold, m.sortBy)
	if m.selectedRow >= len(m.visible) {
		m.selectedRow = 0
		if len(m.visible) > 0 {
			m.selectedRow = len(m.visible) - 1
		}
	}
}

func (m Model) selectedListing() (listing.Listing, bool) {
	if m.selectedRow < 0 || m.selectedRow >= len(m.visible) {
		return listing.Listing{}, false
	}
	return m.visible[m.selectedRow], true
}

func (m Model) forceRefreshCmd() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		svc.Refresh(ctx, true)
		return refreshedMsg{}
	}
}

func (m Model) createCmd(draft listing.Listing) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		created, err := svc.CreateListing(ctx, draft)
		if err != nil {
			// The draft stays queued for the sync loop; tell the user
			// it is safe rather than lost.
			return statusMsg(fmt.Sprintf("saved offline, sync pending: %v", err))
		}
		return statusMsg("created " + created.Title())
	}
}

func (m Model) shareCmd(l listing.Listing) tea.Cmd {
	ctx, dir := m.ctx, m.config.ShareDir
	return func() tea.Msg {
		bundle, err := share.Export(ctx, l, dir)
		if err != nil {
			return statusMsg(fmt.Sprintf("share failed: %v", err))
		}
		return statusMsg(fmt.Sprintf("share bundle: %s (%d photos)", bundle.Dir, len(bundle.PhotoPaths)))
	}
}

func (m Model) retrySyncCmd() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		retried := 0
		for _, entry := range svc.Cache().Pending(ctx) {
			if entry.Status == cache.StatusFailed {
				svc.RetryPending(ctx, entry.ID)
				retried++
			}
		}
		if retried == 0 {
			return statusMsg("nothing to retry")
		}
		return statusMsg(fmt.Sprintf("re-armed %d queued create(s)", retried))
	}
}

func (m *Model) savePrefs() {
	_ = prefs.Save(m.prefsPath, prefs.Prefs{
		Theme:    m.theme.Name,
		SortBy:   m.sortBy,
		ShowSold: m.showSold,
	})
}

// View renders the whole screen.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader() + "\n")

	switch m.currentView {
	case ViewDetail:
		if l, ok := m.selectedListing(); ok {
			b.WriteString(m.styles.Pane.Render(renderDetail(l, m.styles)) + "\n")
		}
	case ViewAdd:
		b.WriteString(m.styles.Pane.Render(m.form.view(m.styles)) + "\n")
	default:
		b.WriteString(m.renderList() + "\n")
	}

	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	title := m.styles.Header.Render("BrickBase")

	var badges []string
	if m.snapshot.IsOffline() {
		badges = append(badges, m.styles.DangerText.Render("offline"))
	} else if m.snapshot.FromCache {
		badges = append(badges, m.styles.WarningText.Render("cached"))
	}
	if m.snapshot.PendingCount > 0 {
		badges = append(badges, m.styles.WarningText.Render(fmt.Sprintf("%d unsynced", m.snapshot.PendingCount)))
	}
	if m.snapshot.FailedCount > 0 {
		badges = append(badges, m.styles.DangerText.Render(fmt.Sprintf("%d failed", m.snapshot.FailedCount)))
	}
	if !m.snapshot.LastUpdated.IsZero() {
		badges = append(badges, m.styles.MutedText.Render("updated "+m.snapshot.LastUpdated.Format("15:04:05")))
	}

	count := m.styles.MutedText.Render(fmt.Sprintf("%d listings", len(m.visible)))
	return title + "  " + count + "  " + strings.Join(badges, "  ")
}

func (m Model) renderList() string {
	var b strings.Builder
	if m.searching {
		b.WriteString(m.search.View() + "\n")
	} else if m.query != "" {
		b.WriteString(m.styles.MutedText.Render("filter: "+m.query) + "\n")
	}

	if len(m.visible) == 0 {
		b.WriteString(m.styles.MutedText.Render("no listings"))
		return b.String()
	}

	width := m.width
	if width <= 0 {
		width = 80
	}
	for i, l := range m.visible {
		row := rowLabel(l, width-2)
		if i == m.selectedRow {
			b.WriteString(m.styles.SelectedRow.Render("▸ "+row) + "\n")
		} else {
			b.WriteString(m.styles.Text.Render("  "+row) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderFooter() string {
	help := "q quit · / search · enter open · a add · r refresh · s sold · w share · y retry · t theme"
	line := m.styles.MutedText.Render(help)
	if m.status != "" {
		line += "\n" + m.styles.AccentText.Render(m.status)
	}
	if m.snapshot.LastError != nil {
		line += "\n" + m.styles.DangerText.Render(truncate(m.snapshot.LastError.Error(), 100))
	}
	return line
}
