// Package speech wraps the OS speech synthesizer behind a small
// interface so the routine driver can run without audio in tests.
package speech

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrUnavailable is returned when no speech synthesizer binary can be
// found on PATH.
var ErrUnavailable = errors.New("no speech synthesizer found")

// Speaker sends text to a speech synthesizer and blocks until the
// utterance finishes.
type Speaker interface {
	Speak(text string) error
}

// Command invokes an external synthesizer such as the macOS say
// command or espeak.
type Command struct {
	Path  string
	Voice string
}

// NewCommand resolves the synthesizer binary. An explicit override
// wins; otherwise platform candidates are tried in order.
func NewCommand(override, voice string) (*Command, error) {
	for _, name := range candidates(override) {
		if path, err := exec.LookPath(name); err == nil {
			return &Command{Path: path, Voice: voice}, nil
		}
	}
	return nil, ErrUnavailable
}

func candidates(override string) []string {
	if override != "" {
		return []string{override}
	}
	if runtime.GOOS == "darwin" {
		return []string{"say", "espeak-ng", "espeak"}
	}
	return []string{"espeak-ng", "espeak", "say"}
}

// Speak runs the synthesizer and waits for it to finish. Empty or
// whitespace-only text is skipped without invoking the binary.
func (c *Command) Speak(text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var args []string
	if c.Voice != "" {
		args = append(args, "-v", c.Voice)
	}
	args = append(args, text)

	if err := exec.Command(c.Path, args...).Run(); err != nil {
		return fmt.Errorf("run %s: %w", filepath.Base(c.Path), err)
	}
	return nil
}
