// Package media invokes the OS image viewer and background audio
// player as external processes.
package media

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

// ErrNoViewer is returned when no image viewer binary can be found.
var ErrNoViewer = errors.New("no image viewer found")

// Viewer opens files with the platform image viewer.
type Viewer interface {
	Open(path string) error
}

// CommandViewer opens files through an external command such as the
// macOS open command or xdg-open.
type CommandViewer struct {
	Path string
}

// NewViewer resolves the viewer binary. An explicit override wins.
func NewViewer(override string) (*CommandViewer, error) {
	for _, name := range viewerCandidates(override) {
		if path, err := exec.LookPath(name); err == nil {
			return &CommandViewer{Path: path}, nil
		}
	}
	return nil, ErrNoViewer
}

func viewerCandidates(override string) []string {
	if override != "" {
		return []string{override}
	}
	if runtime.GOOS == "darwin" {
		return []string{"open"}
	}
	return []string{"xdg-open", "open"}
}

// Open launches the viewer on path. The viewer itself decides what to
// do with a missing file; a non-zero exit only fails this one action.
func (v *CommandViewer) Open(path string) error {
	if err := exec.Command(v.Path, path).Run(); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return nil
}
