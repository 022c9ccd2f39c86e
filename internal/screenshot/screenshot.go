// Package screenshot captures the screen for vision requests and keeps the
// on-disk screenshot set bounded.
package screenshot

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// keepCount is how many screenshots survive a retention sweep.
const keepCount = 20

type Capturer interface {
	// Capture grabs the screen and returns raw PNG bytes.
	Capture(ctx context.Context) ([]byte, error)
}

// ExecCapturer shells out to a screenshot tool (scrot, grim, ...) that takes
// an output path as its argument. Captures are kept under dir for the
// retention sweep.
type ExecCapturer struct {
	Cmd string
	Dir string
}

func NewExec(cmd, dir string) *ExecCapturer {
	return &ExecCapturer{Cmd: cmd, Dir: dir}
}

func (c *ExecCapturer) Capture(ctx context.Context) ([]byte, error) {
	path := filepath.Join(c.Dir, fmt.Sprintf("screenshot_%s.png", time.Now().Format("20060102_150405")))
	if err := exec.CommandContext(ctx, c.Cmd, path).Run(); err != nil {
		return nil, fmt.Errorf("%s: %w", c.Cmd, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read capture: %w", err)
	}
	return data, nil
}

// Sweep deletes all but the newest screenshots in dir and reports how many
// files were removed.
func Sweep(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read screenshot dir: %w", err)
	}
	var shots []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "screenshot_") {
			shots = append(shots, e.Name())
		}
	}
	// Timestamped names sort chronologically; newest first after reversing.
	sort.Sort(sort.Reverse(sort.StringSlice(shots)))
	removed := 0
	for _, name := range shots[min(len(shots), keepCount):] {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return removed, fmt.Errorf("remove old screenshot: %w", err)
		}
		removed++
	}
	return removed, nil
}
