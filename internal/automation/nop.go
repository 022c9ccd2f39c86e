package automation

import (
	"context"
	"sync"
	"time"
)

// Nop records calls instead of touching the OS. Used in tests.
type Nop struct {
	mu    sync.Mutex
	Calls []string
}

func (n *Nop) record(call string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Calls = append(n.Calls, call)
	return nil
}

func (n *Nop) Recorded() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.Calls))
	copy(out, n.Calls)
	return out
}

func (n *Nop) OpenURL(url string) error       { return n.record("open-url " + url) }
func (n *Nop) OpenPath(path string) error     { return n.record("open-path " + path) }
func (n *Nop) OpenInEditor(path string) error { return n.record("edit " + path) }
func (n *Nop) TypeText(text string) error     { return n.record("type " + text) }
func (n *Nop) PressKey(key string) error      { return n.record("key " + key) }
func (n *Nop) Hotkey(combo string) error      { return n.record("hotkey " + combo) }
func (n *Nop) LaunchApp(name string) error    { return n.record("launch " + name) }

func (n *Nop) PressKeyAfter(ctx context.Context, delay time.Duration, key string) {
	_ = n.record("delayed-key " + key)
}
