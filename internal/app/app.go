package app

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"
	"github.com/rebeliceyang/lazynav/internal/config"
	"github.com/rebeliceyang/lazynav/internal/history"
	"github.com/rebeliceyang/lazynav/internal/models"
	"github.com/rebeliceyang/lazynav/internal/navtree"
	"github.com/rebeliceyang/lazynav/internal/ui/components"
	"github.com/rebeliceyang/lazynav/internal/ui/help"
	"github.com/rebeliceyang/lazynav/internal/ui/theme"
	"github.com/rebeliceyang/lazynav/internal/watcher"
)

// filterHeight is the rendered height of the filter box (border + one line)
const filterHeight = 3

// Loader produces the navigation map. It is called on start and whenever the
// watched data file changes.
type Loader func() (*models.TreeData, error)

// VisitRecorder stores activations
type VisitRecorder interface {
	Add(v history.Visit) error
}

// App is the main application model
type App struct {
	state  models.AppState
	config *config.Config
	theme  theme.Theme
	keys   KeyMap
	logger *log.Logger

	leftPanel  components.Panel
	rightPanel components.Panel

	treeView    *components.TreeView
	filterInput *components.FilterInput
	contentView *components.ContentView

	// Error overlay
	showError    bool
	errorOverlay *components.ErrorOverlay

	loader   Loader
	visits   VisitRecorder
	watcher  *watcher.Watcher
	copyText func(string) error
}

// DataChangedMsg is sent when the watched data file changed on disk
type DataChangedMsg struct {
	Path string
}

// ErrorMsg is sent when an error occurs
type ErrorMsg struct {
	Title   string
	Message string
}

// Option configures an App
type Option func(*App)

// WithLogger sets the application logger
func WithLogger(logger *log.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithVisitRecorder enables the visit log
func WithVisitRecorder(r VisitRecorder) Option {
	return func(a *App) {
		a.visits = r
	}
}

// WithWatcher reloads the tree whenever w reports a change
func WithWatcher(w *watcher.Watcher) Option {
	return func(a *App) {
		a.watcher = w
	}
}

// WithClipboard replaces the system clipboard writer
func WithClipboard(fn func(string) error) Option {
	return func(a *App) {
		if fn != nil {
			a.copyText = fn
		}
	}
}

// New creates a new App, loading and mounting the navigation map
func New(cfg *config.Config, loader Loader, opts ...Option) *App {
	if cfg == nil {
		cfg = config.GetDefaults()
	}

	state := models.NewAppState()
	if cfg.UI.PanelWidthRatio > 0 && cfg.UI.PanelWidthRatio < 100 {
		state.LeftPanelWidth = cfg.UI.PanelWidthRatio
	}
	state.DataPath = cfg.Tree.DataPath

	th := theme.GetTheme(cfg.UI.Theme)

	a := &App{
		state:        state,
		config:       cfg,
		theme:        th,
		keys:         DefaultKeyMap(),
		logger:       log.New(io.Discard),
		loader:       loader,
		filterInput:  components.NewFilterInput(th, cfg.Filter.MinLength),
		contentView:  components.NewContentView(th),
		errorOverlay: components.NewErrorOverlay(th),
		copyText:     clipboard.WriteAll,
		leftPanel: components.Panel{
			Title: "Navigation",
			Theme: th,
		},
		rightPanel: components.Panel{
			Title: "Content",
			Theme: th,
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	a.contentView.WriteClipboard = a.copyText

	a.reload()

	// Set initial panel dimensions and styles
	a.updatePanelDimensions()
	a.updatePanelStyles()

	return a
}

// reload loads the map and mounts it. A failing load or a construction error
// leaves an empty tree and shows the error; the app keeps running.
func (a *App) reload() {
	var data *models.TreeData
	var err error
	if a.loader != nil {
		data, err = a.loader()
	} else {
		data, err = models.DefaultTreeData()
	}

	var tree *navtree.Tree
	if err == nil {
		tree, err = navtree.Render(data)
	}
	if err != nil {
		a.logger.Error("failed to build navigation tree", "err", err)
		a.ShowError("Navigation Error", fmt.Sprintf("Failed to build the navigation tree:\n\n%v", err))
		tree, _ = navtree.Render(&models.TreeData{})
	}

	a.mount(tree)
}

// mount replaces the tree view with a fresh mount of tree
func (a *App) mount(tree *navtree.Tree) {
	a.state.SessionID = uuid.NewString()

	width, height := 40, 20
	focused := a.state.FocusedPanel == models.TreePanel
	if a.treeView != nil {
		width, height = a.treeView.Width, a.treeView.Height
	}

	a.treeView = components.NewTreeView(tree, a.theme,
		navtree.WithMinFilterLength(a.config.Filter.MinLength),
		navtree.WithLogger(a.logger),
	)
	a.treeView.Width = width
	a.treeView.Height = height
	a.treeView.Focused = focused

	a.filterInput.Reset()
	a.contentView.SetItem(components.ContentItem{})
	if cur := a.treeView.GetCurrentItem(); cur != nil {
		a.showItem(cur.ID)
	}

	a.logger.Info("mounted navigation tree",
		"session", a.state.SessionID,
		"items", tree.Len(),
		"current", a.treeView.Controller.CurrentID(),
	)
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return a.waitForChange()
}

// waitForChange blocks until the watcher reports a change
func (a *App) waitForChange() tea.Cmd {
	if a.watcher == nil {
		return nil
	}
	w := a.watcher
	return func() tea.Msg {
		<-w.Changes()
		return DataChangedMsg{Path: w.Path()}
	}
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ErrorMsg:
		a.ShowError(msg.Title, msg.Message)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case components.FilterChangedMsg:
		n := a.treeView.Filter(msg.Term)
		a.filterInput.SetResult(n, a.treeView.Controller.Filtering())
		return a, nil

	case components.CloseFilterMsg:
		a.filterInput.Blur()
		a.state.FocusedPanel = models.TreePanel
		a.updatePanelStyles()
		return a, nil

	case components.TreeNodeExpandedMsg:
		a.logger.Debug("toggle", "id", msg.ID, "expanded", msg.Expanded)
		return a, nil

	case components.TreeNodeActivatedMsg:
		a.handleActivation(msg.Activation)
		return a, nil

	case DataChangedMsg:
		a.logger.Info("data file changed", "path", msg.Path)
		a.reload()
		a.state.Status = "Reloaded navigation map"
		return a, a.waitForChange()

	case tea.WindowSizeMsg:
		a.state.Width = msg.Width
		a.state.Height = msg.Height
		a.updatePanelDimensions()
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle error overlay dismissal first if visible
	if a.showError {
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Dismiss), msg.String() == "enter":
			a.DismissError()
		}
		// Consume all other keys when error is showing
		return a, nil
	}

	if key.Matches(msg, a.keys.Quit) {
		return a, tea.Quit
	}

	if a.state.ViewMode == models.HelpMode {
		if key.Matches(msg, a.keys.Help, a.keys.Dismiss) {
			a.state.ViewMode = models.NormalMode
		}
		return a, nil
	}

	// The filter field owns every key while editing, "/" and "?" included
	if a.filterInput.Focused() {
		var cmd tea.Cmd
		a.filterInput, cmd = a.filterInput.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keys.Filter):
		a.state.FocusedPanel = models.FilterField
		a.updatePanelStyles()
		return a, a.filterInput.Focus()

	case key.Matches(msg, a.keys.Help):
		a.state.ViewMode = models.HelpMode
		return a, nil

	case key.Matches(msg, a.keys.SwitchPanel):
		if a.state.FocusedPanel == models.TreePanel {
			a.state.FocusedPanel = models.ContentPanel
		} else {
			a.state.FocusedPanel = models.TreePanel
		}
		a.updatePanelStyles()
		return a, nil
	}

	switch a.state.FocusedPanel {
	case models.ContentPanel:
		if key.Matches(msg, a.keys.CopyLink) {
			a.copyContentLink()
			return a, nil
		}
		var cmd tea.Cmd
		a.contentView, cmd = a.contentView.Update(msg)
		return a, cmd

	default:
		var cmd tea.Cmd
		a.treeView, cmd = a.treeView.Update(msg)
		return a, cmd
	}
}

func (a *App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !a.config.UI.MouseEnabled || a.showError || a.state.ViewMode != models.NormalMode {
		return a, nil
	}

	// Clicks inside the tree give it focus
	if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress {
		if a.filterInput.Focused() {
			a.filterInput.Blur()
		}
		if a.state.FocusedPanel != models.TreePanel {
			a.state.FocusedPanel = models.TreePanel
			a.updatePanelStyles()
		}
	}

	var cmd tea.Cmd
	a.treeView, cmd = a.treeView.Update(msg)
	return a, cmd
}

// handleActivation records the visit, then either hands an external link to
// the clipboard or shows the destination in the content panel
func (a *App) handleActivation(act navtree.Activation) {
	a.recordVisit(act)

	if act.External && act.Navigates() {
		if err := a.copyText(act.Href); err != nil {
			a.logger.Warn("failed to copy link", "href", act.Href, "err", err)
			a.state.Status = fmt.Sprintf("Open %s: %s", act.Label, act.Href)
		} else {
			a.state.Status = fmt.Sprintf("Copied link to %s: %s", act.Label, act.Href)
		}
		a.showItem(act.ID)
		return
	}

	a.showItem(act.ID)
	a.state.Status = "Opened " + act.Label
}

func (a *App) recordVisit(act navtree.Activation) {
	if a.visits == nil {
		return
	}
	err := a.visits.Add(history.Visit{
		SessionID: a.state.SessionID,
		NodeID:    act.ID,
		Label:     act.Label,
		Href:      act.Href,
		External:  act.External,
	})
	if err != nil {
		a.logger.Warn("failed to record visit", "id", act.ID, "err", err)
	}
}

// showItem fills the content panel for id
func (a *App) showItem(id string) {
	it := a.treeView.Controller.Tree().Item(id)
	if it == nil {
		return
	}

	var children []string
	if it.Owns != nil {
		for _, child := range it.Owns.Items {
			children = append(children, child.Label)
		}
	}

	a.contentView.SetItem(components.ContentItem{
		ID:          it.ID,
		Label:       it.Label,
		Href:        it.Href,
		Description: it.Description,
		External:    it.External,
		Breadcrumb:  a.treeView.Breadcrumb(it.ID),
		Children:    children,
	})
}

func (a *App) copyContentLink() {
	err := a.contentView.CopyHref()
	switch {
	case errors.Is(err, components.ErrNoLink):
		a.state.Status = "Nothing to copy"
	case err != nil:
		a.logger.Warn("failed to copy link", "err", err)
		a.state.Status = "Copy failed: " + err.Error()
	default:
		a.state.Status = "Copied " + a.contentView.Item.Href
	}
}

// View implements tea.Model
func (a *App) View() string {
	// If error overlay is showing, render it centered on top of everything
	if a.showError {
		return lipgloss.Place(
			a.state.Width, a.state.Height,
			lipgloss.Center, lipgloss.Center,
			a.errorOverlay.View(),
		)
	}

	// If in help mode, show help overlay
	if a.state.ViewMode == models.HelpMode {
		sections := append([]help.Section{
			{Title: "Global", Keys: help.FromBindings(a.keys.Bindings()...)},
		}, help.DefaultSections()...)
		return help.Render(a.state.Width, a.state.Height, a.theme, sections)
	}

	return zone.Scan(a.renderNormalView())
}

func (a *App) renderNormalView() string {
	topBarLeft := "lazynav"
	if label := a.treeView.Controller.Tree().Label; label != "" {
		topBarLeft += " · " + label
	}
	topBarRight := ""
	if cur := a.treeView.GetCurrentItem(); cur != nil {
		topBarRight = strings.Join(a.treeView.Breadcrumb(cur.ID), " › ")
	}

	// Top bar with theme colors
	topBar := lipgloss.NewStyle().
		Width(a.state.Width).
		Background(a.theme.BorderFocused).
		Foreground(a.theme.Background).
		Padding(0, 2).
		Render(a.formatStatusBar(topBarLeft, topBarRight))

	bottomBarLeft := a.state.Status
	if bottomBarLeft == "" {
		bottomBarLeft = "[/] Filter | [tab] Switch panel | [?] Help | [ctrl+c] Quit"
	}
	bottomBarRight := a.state.FocusedPanel.String()

	// Bottom bar with theme colors
	bottomBar := lipgloss.NewStyle().
		Width(a.state.Width).
		Background(a.theme.Selection).
		Foreground(a.theme.Foreground).
		Padding(0, 2).
		Render(a.formatStatusBar(bottomBarLeft, bottomBarRight))

	// Update tree view dimensions and render
	a.treeView.Width = a.leftPanel.Width
	a.treeView.Height = a.leftPanel.InnerHeight()
	a.leftPanel.Content = a.treeView.View()

	a.contentView.SetSize(a.rightPanel.Width, a.rightPanel.InnerHeight())
	a.rightPanel.Content = a.contentView.View()

	left := lipgloss.JoinVertical(
		lipgloss.Left,
		a.filterInput.View(),
		a.leftPanel.View(),
	)

	// Panels side by side
	panels := lipgloss.JoinHorizontal(
		lipgloss.Top,
		left,
		a.rightPanel.View(),
	)

	// Combine all
	return lipgloss.JoinVertical(
		lipgloss.Left,
		topBar,
		panels,
		bottomBar,
	)
}

// updatePanelDimensions calculates panel sizes based on window size
func (a *App) updatePanelDimensions() {
	if a.state.Width <= 0 || a.state.Height <= 0 {
		return
	}

	// Reserve space for top bar (1 line) and bottom bar (1 line)
	contentHeight := a.state.Height - 2
	if contentHeight < 8 {
		contentHeight = 8
	}

	// Each panel has a border (2 chars wide: left + right borders)
	leftWidth := (a.state.Width * a.state.LeftPanelWidth) / 100
	if leftWidth < 20 {
		leftWidth = 20
	}

	// Right panel gets remaining width after accounting for both borders
	rightWidth := a.state.Width - leftWidth - 4
	if rightWidth < 20 {
		rightWidth = 20
		// If right panel is too small, reduce left panel width
		leftWidth = a.state.Width - rightWidth - 4
	}

	a.filterInput.Width = leftWidth + 2
	a.leftPanel.Width = leftWidth
	a.leftPanel.Height = contentHeight - filterHeight - 2
	a.rightPanel.Width = rightWidth
	a.rightPanel.Height = contentHeight - 2
}

// updatePanelStyles updates panel styling based on focus
func (a *App) updatePanelStyles() {
	a.leftPanel.Focused = a.state.FocusedPanel == models.TreePanel
	a.rightPanel.Focused = a.state.FocusedPanel == models.ContentPanel
	a.treeView.Focused = a.leftPanel.Focused
}

// formatStatusBar formats a status bar with left and right aligned content
func (a *App) formatStatusBar(left, right string) string {
	// Account for padding (2 chars on each side = 4 total)
	availableWidth := a.state.Width - 4
	if availableWidth < 0 {
		availableWidth = 0
	}

	leftLen := runewidth.StringWidth(left)
	rightLen := runewidth.StringWidth(right)

	// If content is too wide, truncate
	if leftLen+rightLen > availableWidth {
		if availableWidth > rightLen {
			return runewidth.Truncate(left, availableWidth-rightLen, "…") + right
		}
		return runewidth.Truncate(left, availableWidth, "…")
	}

	spacing := availableWidth - leftLen - rightLen
	return left + strings.Repeat(" ", spacing) + right
}

// ShowError displays an error overlay with the given title and message
func (a *App) ShowError(title, message string) {
	a.errorOverlay.SetError(title, message)
	a.showError = true
}

// DismissError hides the error overlay
func (a *App) DismissError() {
	a.showError = false
}

// TreeView exposes the mounted tree view
func (a *App) TreeView() *components.TreeView {
	return a.treeView
}

// State returns a copy of the application state
func (a *App) State() models.AppState {
	return a.state
}
