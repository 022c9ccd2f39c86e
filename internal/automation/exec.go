package automation

import (
	"context"
	"fmt"
	"log"
	"os/exec"
	"time"
)

// ExecAutomator shells out to the configured platform tools, typically
// xdg-open for opening and xdotool for synthetic input.
type ExecAutomator struct {
	OpenCmd   string
	TypeCmd   string
	EditorCmd string
}

func NewExec(openCmd, typeCmd, editorCmd string) *ExecAutomator {
	return &ExecAutomator{OpenCmd: openCmd, TypeCmd: typeCmd, EditorCmd: editorCmd}
}

func (a *ExecAutomator) run(name string, args ...string) error {
	if err := exec.Command(name, args...).Run(); err != nil {
		return fmt.Errorf("%s %v: %w", name, args, err)
	}
	return nil
}

func (a *ExecAutomator) OpenURL(url string) error {
	return a.run(a.OpenCmd, url)
}

func (a *ExecAutomator) OpenPath(path string) error {
	return a.run(a.OpenCmd, path)
}

func (a *ExecAutomator) OpenInEditor(path string) error {
	return a.run(a.EditorCmd, path)
}

func (a *ExecAutomator) TypeText(text string) error {
	return a.run(a.TypeCmd, "type", "--delay", "50", text)
}

func (a *ExecAutomator) PressKey(key string) error {
	return a.run(a.TypeCmd, "key", key)
}

func (a *ExecAutomator) Hotkey(combo string) error {
	return a.run(a.TypeCmd, "key", combo)
}

func (a *ExecAutomator) LaunchApp(name string) error {
	if err := a.PressKey("super"); err != nil {
		return err
	}
	time.Sleep(500 * time.Millisecond)
	if err := a.TypeText(name); err != nil {
		return err
	}
	time.Sleep(300 * time.Millisecond)
	return a.PressKey("Return")
}

func (a *ExecAutomator) PressKeyAfter(ctx context.Context, delay time.Duration, key string) {
	go func() {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
		case <-timer.C:
			if err := a.PressKey(key); err != nil {
				log.Printf("delayed key press failed: %v", err)
			}
		}
	}()
}
