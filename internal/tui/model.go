package tui

import (
	"github.com/querybox-dev/querybox/internal/config"
	"github.com/querybox-dev/querybox/internal/history"
	"github.com/querybox-dev/querybox/internal/interview"
	"github.com/querybox-dev/querybox/internal/summary"
)

// ViewState represents the current state of the TUI.
type ViewState int

const (
	StateSetup ViewState = iota
	StateInterview
	StateSummary
)

// Model is the main TUI model that holds shared application state. The
// per-screen view models live in the views package; this carries what
// they all need.
type Model struct {
	State ViewState
	Err   error

	// Configuration
	Cfg *config.Config

	// Session machinery
	Ctrl *interview.Controller
	// Store is nil when history persistence is disabled.
	Store *history.Store

	// Completed-session state
	Summary      *summary.Summary
	ExportedPath string

	// Terminal dimensions
	Width  int
	Height int
}

// NewModel creates a new Model with the given configuration and wiring.
func NewModel(cfg *config.Config, ctrl *interview.Controller, store *history.Store) *Model {
	return &Model{
		State:  StateSetup,
		Cfg:    cfg,
		Ctrl:   ctrl,
		Store:  store,
		Width:  80,
		Height: 24,
	}
}
