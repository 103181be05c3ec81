// Package tui provides the interactive Bubble Tea match viewer for crease.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/theirongolddev/crease/internal/cli"
	"github.com/theirongolddev/crease/internal/config"
	"github.com/theirongolddev/crease/internal/playback"
	"github.com/theirongolddev/crease/internal/simapi"
	"github.com/theirongolddev/crease/internal/tui/components"
	"github.com/theirongolddev/crease/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ModelsMsg is sent when the prediction model catalog fetch completes.
type ModelsMsg struct {
	List *simapi.ModelList
	Err  error
}

// PlayersMsg is sent when a player name search completes.
type PlayersMsg struct {
	Query   string
	Players []simapi.Player
	Err     error
}

// ProfileMsg is sent when a player profile fetch completes.
type ProfileMsg struct {
	Profile *simapi.PlayerProfile
	Err     error
}

// App is the root Bubble Tea model.
type App struct {
	cfg    config.Config
	client *simapi.Client
	ctrl   *playback.Controller

	// Committed playback view, refreshed on every tick.
	snap playback.Snapshot

	// Model catalog for the setup form
	models    *simapi.ModelList
	modelsErr error

	// Last started run, kept so "r" can restart it.
	lastCfg playback.Config
	lastReq simapi.SeriesRequest
	started bool

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Setup form (huh)
	setupForm *huh.Form
	setupVals setupValues
	inSetup   bool

	// Per-tab state
	players playersState

	spinner spinner.Model
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	minContentHeight = 5
)

// speedPresets are the per-ball delays bound to the number keys.
var speedPresets = []time.Duration{
	0,
	200 * time.Millisecond,
	500 * time.Millisecond,
	time.Second,
}

// speedLadder is the ordered delay scale the +/- keys walk.
var speedLadder = []time.Duration{
	0,
	100 * time.Millisecond,
	200 * time.Millisecond,
	500 * time.Millisecond,
	time.Second,
	2 * time.Second,
}

// playersState holds the Players tab: a search box, the result list, and
// the profile of the selected player.
type playersState struct {
	searching   bool
	searchInput textinput.Model
	query       string
	results     []simapi.Player
	cursor      int
	profile     *simapi.PlayerProfile
	loading     bool
	err         error
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "player name..."
	ti.CharLimit = 64
	ti.Width = 32
	return ti
}

// NewApp creates a new TUI app model.
func NewApp(cfg config.Config, client *simapi.Client, ctrl *playback.Controller) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	return App{
		cfg:     cfg,
		client:  client,
		ctrl:    ctrl,
		inSetup: true,
		spinner: sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		fetchModelsCmd(a.client),
		a.spinner.Tick,
		tickCmd(),
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if a.inSetup || a.showHelp {
			return a, nil
		}
		if msg.Button == tea.MouseButtonLeft && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKeys(msg)

	case ModelsMsg:
		a.models = msg.List
		a.modelsErr = msg.Err
		if a.inSetup {
			a.setupForm = newSetupForm(a.cfg, a.models, &a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case PlayersMsg:
		// Stale responses for an older query are dropped
		if msg.Query != a.players.query {
			return a, nil
		}
		a.players.loading = false
		a.players.err = msg.Err
		a.players.results = msg.Players
		a.players.cursor = 0
		a.players.profile = nil
		return a, nil

	case ProfileMsg:
		a.players.loading = false
		a.players.err = msg.Err
		a.players.profile = msg.Profile
		return a, nil

	case spinner.TickMsg:
		if a.inSetup && a.setupForm == nil || a.players.loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		a.snap = a.ctrl.Snapshot()
		return a, tickCmd()
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.inSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Global: quit
	if key == "ctrl+c" {
		a.ctrl.Stop()
		return a, tea.Quit
	}

	// Setup form intercepts all keys
	if a.inSetup {
		if a.setupForm == nil {
			return a, nil
		}
		return a.updateSetupForm(msg)
	}

	// Players search mode intercepts all keys when active
	if a.activeTab == 3 && a.players.searching {
		return a.updatePlayersSearch(msg)
	}

	// Help toggle
	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	// Players tab has its own list keybindings
	if a.activeTab == 3 {
		if handled, model, cmd := a.updatePlayersList(key); handled {
			return model, cmd
		}
	}

	switch key {
	case "q":
		a.ctrl.Stop()
		return a, tea.Quit

	case " ":
		if a.ctrl.Paused() {
			a.ctrl.Resume()
		} else {
			a.ctrl.Pause()
		}
		return a, nil

	case "s":
		a.ctrl.Step()
		return a, nil

	case "a":
		a.ctrl.Advance()
		return a, nil

	case "1", "2", "3", "4":
		idx := int(key[0] - '1')
		a.ctrl.SetSpeed(speedPresets[idx])
		return a, nil

	case "+", "=":
		a.ctrl.SetSpeed(ladderStep(a.ctrl.Speed(), -1))
		return a, nil

	case "-":
		a.ctrl.SetSpeed(ladderStep(a.ctrl.Speed(), +1))
		return a, nil

	case "r":
		// Restart the same fixture from ball one
		if a.started {
			a.startSeries(a.lastCfg, a.lastReq)
		}
		return a, nil

	case "n":
		// Back to the setup form for a new fixture
		a.ctrl.Stop()
		a.inSetup = true
		a.setupForm = newSetupForm(a.cfg, a.models, &a.setupVals)
		if a.width > 0 {
			a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
		}
		return a, a.setupForm.Init()

	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil

	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	}

	if len(key) == 1 {
		if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		cfg, req := a.setupVals.toRequest(a.cfg)
		a.ctrl.SetSpeed(a.setupVals.delay())
		a.saveSetupConfig()
		a.inSetup = false
		a.setupForm = nil
		a.startSeries(cfg, req)
		return a, nil
	}

	if a.setupForm.State == huh.StateAborted {
		a.setupForm = nil
		if a.started {
			// Abandoning the form keeps the running session
			a.inSetup = false
			return a, nil
		}
		a.ctrl.Stop()
		return a, tea.Quit
	}

	return a, cmd
}

// startSeries kicks off a playback session streaming from the service.
func (a *App) startSeries(cfg playback.Config, req simapi.SeriesRequest) {
	a.lastCfg = cfg
	a.lastReq = req
	a.started = true

	client := a.client
	a.ctrl.Start(context.Background(), cfg, func(ctx context.Context) (io.ReadCloser, error) {
		return client.OpenSeriesStream(ctx, req)
	})
	a.snap = a.ctrl.Snapshot()
	a.activeTab = 0
}

// ─── Players Tab Input ──────────────────────────────────────────

func (a App) updatePlayersSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		query := strings.TrimSpace(a.players.searchInput.Value())
		a.players.searching = false
		if query == "" || query == a.players.query {
			return a, nil
		}
		a.players.query = query
		a.players.loading = true
		a.players.err = nil
		return a, tea.Batch(searchPlayersCmd(a.client, query), a.spinner.Tick)

	case "esc":
		a.players.searching = false
		return a, nil
	}

	var cmd tea.Cmd
	a.players.searchInput, cmd = a.players.searchInput.Update(msg)
	return a, cmd
}

func (a App) updatePlayersList(key string) (bool, tea.Model, tea.Cmd) {
	switch key {
	case "/":
		a.players.searching = true
		a.players.searchInput = newSearchInput()
		a.players.searchInput.Focus()
		return true, a, a.players.searchInput.Cursor.BlinkCmd()

	case "j", "down":
		if a.players.cursor < len(a.players.results)-1 {
			a.players.cursor++
			a.players.profile = nil
		}
		return true, a, nil

	case "k", "up":
		if a.players.cursor > 0 {
			a.players.cursor--
			a.players.profile = nil
		}
		return true, a, nil

	case "enter":
		if a.players.cursor < len(a.players.results) {
			a.players.loading = true
			a.players.err = nil
			id := a.players.results[a.players.cursor].ID
			return true, a, tea.Batch(fetchProfileCmd(a.client, id), a.spinner.Tick)
		}
		return true, a, nil

	case "esc":
		a.players = playersState{}
		return true, a, nil
	}
	return false, a, nil
}

// ─── Layout ─────────────────────────────────────────────────────

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.inSetup {
		if a.setupForm == nil {
			return a.viewConnecting()
		}
		return a.renderSetup()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  crease needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewConnecting() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderBright).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ crease"))
	b.WriteString(subtitleStyle.Render(" · Live Match Viewer"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Contacting simulation service..."))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderBright).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Playback"))
	b.WriteString("\n")
	playBindings := []struct{ key, desc string }{
		{"space", "Pause / Resume"},
		{"s", "Step one ball while paused"},
		{"a", "Advance: skip the current wait"},
		{"1-4", "Speed presets (live, 200ms, 500ms, 1s)"},
		{"+ -", "Faster / Slower"},
		{"r", "Restart the fixture"},
		{"n", "New fixture (setup form)"},
	}
	for _, bind := range playBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	navBindings := []struct{ key, desc string }{
		{"l c e p", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"/", "Search players"},
		{"j k", "Navigate lists"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range navBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + fixture pill
	pillStyle := lipgloss.NewStyle().
		Foreground(t.TextDim)

	pillAccentStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	fixture := pillStyle.Render(" ") +
		pillAccentStyle.Render(fmt.Sprintf("%s v %s", a.snap.TeamA, a.snap.TeamB))
	if a.lastCfg.Matches > 0 {
		fixture += pillStyle.Render(" │ ") +
			pillAccentStyle.Render(fmt.Sprintf("%d matches", a.lastCfg.Matches))
	}
	if a.lastReq.Model != "" {
		fixture += pillStyle.Render(" │ ") + pillAccentStyle.Render(a.lastReq.Model)
	}

	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		lipgloss.NewStyle().Width(w).Render(fixture)

	// 2. Status bar
	statusBar := components.RenderStatusBar(w, components.StatusInfo{
		State:   a.stateLabel(),
		Speed:   cli.FormatDelayLabel(int(a.ctrl.Speed() / time.Millisecond)),
		Dropped: a.snap.Dropped,
	})

	// 3. Content zone height
	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Tab content
	var content string
	switch a.activeTab {
	case 0:
		content = a.renderLiveTab(cw)
	case 1:
		content = a.renderScorecardTab(cw)
	case 2:
		content = a.renderSeriesTab(cw)
	case 3:
		content = a.renderPlayersTab(cw, contentH)
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Place content (handles centering when w > cw)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (a App) stateLabel() string {
	switch a.snap.Status {
	case playback.StatusRunning:
		if a.ctrl.Paused() {
			return "paused"
		}
		return "streaming"
	case playback.StatusComplete:
		return "complete"
	case playback.StatusError:
		return "stream error"
	}
	return "idle"
}

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// fetchModelsCmd loads the model catalog in the background. A nil client or
// a fetch error still produces a ModelsMsg so the setup form can open with
// config defaults only.
func fetchModelsCmd(client *simapi.Client) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return ModelsMsg{Err: fmt.Errorf("no server configured")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		list, err := client.Models(ctx)
		return ModelsMsg{List: list, Err: err}
	}
}

func searchPlayersCmd(client *simapi.Client, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		players, err := client.SearchPlayers(ctx, query)
		return PlayersMsg{Query: query, Players: players, Err: err}
	}
}

func fetchProfileCmd(client *simapi.Client, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		profile, err := client.Player(ctx, id)
		return ProfileMsg{Profile: profile, Err: err}
	}
}

// ladderStep moves the current delay one notch along the speed ladder.
// dir is -1 for faster, +1 for slower.
func ladderStep(cur time.Duration, dir int) time.Duration {
	idx := 0
	for i, d := range speedLadder {
		if d <= cur {
			idx = i
		}
	}
	idx += dir
	if idx < 0 {
		idx = 0
	}
	if idx >= len(speedLadder) {
		idx = len(speedLadder) - 1
	}
	return speedLadder[idx]
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 1 // leading space
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 2 // two-column separator between tabs
	}
	return -1
}
