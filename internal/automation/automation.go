// Package automation wraps the OS-level collaborators the command handlers
// drive: browser/default-open, simulated keystrokes, app launching.
package automation

import (
	"context"
	"time"
)

// Automator is the surface the intent handlers consume. Implementations are
// thin wrappers over platform tools; failures are reported, never fatal.
type Automator interface {
	// OpenURL opens a URL in the default browser.
	OpenURL(url string) error
	// OpenPath opens a file with the platform default application.
	OpenPath(path string) error
	// OpenInEditor opens a source file in the configured code editor.
	OpenInEditor(path string) error
	// TypeText simulates typing at the current cursor position.
	TypeText(text string) error
	// PressKey simulates a single key press ("Return", "super").
	PressKey(key string) error
	// Hotkey simulates a chord ("super+d").
	Hotkey(combo string) error
	// LaunchApp drives the OS launcher: open it, type the app name, confirm.
	LaunchApp(name string) error
	// PressKeyAfter schedules a key press after the delay. The press is
	// skipped if the context is cancelled first.
	PressKeyAfter(ctx context.Context, delay time.Duration, key string)
}
