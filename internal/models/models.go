package models

// AppState holds the application state
type AppState struct {
	Width          int
	Height         int
	LeftPanelWidth int
	FocusedPanel   PanelType
	ViewMode       ViewMode

	// Navigation state
	SessionID string // Identifies the current mount in the visit log
	DataPath  string // Empty when the built-in map is used
	Status    string // One-line message shown in the bottom bar
}

// PanelType identifies which panel is focused
type PanelType int

const (
	TreePanel PanelType = iota
	FilterField
	ContentPanel
)

// String returns a readable name for the panel
func (p PanelType) String() string {
	switch p {
	case TreePanel:
		return "tree"
	case FilterField:
		return "filter"
	case ContentPanel:
		return "content"
	default:
		return "unknown"
	}
}

// ViewMode identifies the current view
type ViewMode int

const (
	NormalMode ViewMode = iota
	HelpMode
)

// NewAppState creates a new AppState with defaults
func NewAppState() AppState {
	return AppState{
		Width:          80,
		Height:         24,
		LeftPanelWidth: 30,
		FocusedPanel:   TreePanel,
		ViewMode:       NormalMode,
	}
}
