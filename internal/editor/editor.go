// Package editor keeps one displayed string in sync with a remote
// single-value resource and lets the user overwrite it.
//
// The package is a pure reducer: Reduce takes the current State and an Event
// and returns the next State plus the Effects the caller must perform
// (network requests and failure logging). Nothing in here does I/O, so any
// front end (the terminal UI, tests) drives it the same way.
package editor

import (
	"github.com/diogo/flapmsg/internal/config"
)

// DisplayKind is the observable display state
type DisplayKind int

const (
	// Empty is the state before any request has completed
	Empty DisplayKind = iota
	// Loaded means the last applied completion was a success
	Loaded
	// Errored means the last applied completion was a failure
	Errored
)

func (k DisplayKind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Loaded:
		return "loaded"
	case Errored:
		return "errored"
	default:
		return "unknown"
	}
}

// Display is the DisplayedMessage
type Display struct {
	Kind  DisplayKind
	Value string
}

// Options configures an editor instance
type Options struct {
	// Sentinel is shown after any failure
	Sentinel string
	// DiscardStale ignores completions older than the newest applied one
	DiscardStale bool
}

// OptionsFromConfig builds editor options from the user configuration
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Sentinel:     cfg.Sentinel,
		DiscardStale: cfg.DiscardStale,
	}
}

// State is everything the editor owns
type State struct {
	Display Display
	Input   string

	opts        Options
	mounted     bool
	nextSeq     uint64
	lastApplied uint64
	inFlight    int
}

// New returns the initial state. Call Reduce with Mounted to start loading.
func New(opts Options) State {
	if opts.Sentinel == "" {
		opts.Sentinel = config.DefaultSentinel
	}
	return State{opts: opts}
}

// Text returns what the display region shows
func (s State) Text() string {
	switch s.Display.Kind {
	case Loaded:
		return s.Display.Value
	case Errored:
		return s.opts.Sentinel
	default:
		return ""
	}
}

// InFlight returns the number of requests issued but not yet completed
func (s State) InFlight() int {
	return s.inFlight
}

// Options returns the options the state was created with
func (s State) Options() Options {
	return s.opts
}
