package media

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"syscall"
	"time"
)

// ErrNoPlayer is returned when no audio player binary can be found.
var ErrNoPlayer = errors.New("no audio player found")

// stopGrace bounds how long Stop waits for a graceful exit before
// force-killing the player process.
const stopGrace = 2 * time.Second

// Player starts background audio playback.
type Player interface {
	PlayOnce(path string) (*Track, error)
}

// CommandPlayer plays audio files through an external command such as
// afplay or mpg123.
type CommandPlayer struct {
	Path string
}

// NewPlayer resolves the player binary. An explicit override wins.
func NewPlayer(override string) (*CommandPlayer, error) {
	for _, name := range playerCandidates(override) {
		if path, err := exec.LookPath(name); err == nil {
			return &CommandPlayer{Path: path}, nil
		}
	}
	return nil, ErrNoPlayer
}

func playerCandidates(override string) []string {
	if override != "" {
		return []string{override}
	}
	if runtime.GOOS == "darwin" {
		return []string{"afplay", "mpg123", "ffplay"}
	}
	return []string{"mpg123", "mpg321", "ffplay", "afplay"}
}

func playerArgs(base, path string) []string {
	switch base {
	case "ffplay":
		return []string{"-nodisp", "-autoexit", "-loglevel", "quiet", path}
	case "mpg123", "mpg321":
		return []string{"-q", path}
	default:
		return []string{path}
	}
}

// PlayOnce starts playing path in the background and returns a handle
// to the running process. The track plays once and stops naturally;
// there is no pause or resume.
func (p *CommandPlayer) PlayOnce(path string) (*Track, error) {
	cmd := exec.Command(p.Path, playerArgs(filepath.Base(p.Path), path)...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start player: %w", err)
	}
	return newTrack(cmd), nil
}

// Track is a handle to a running playback process. Stop is safe to
// call more than once and after the track has finished on its own.
type Track struct {
	cmd  *exec.Cmd
	done chan struct{}
	once sync.Once
}

func newTrack(cmd *exec.Cmd) *Track {
	t := &Track{cmd: cmd, done: make(chan struct{})}
	go func() {
		cmd.Wait()
		close(t.done)
	}()
	return t
}

// Stop terminates playback: a graceful signal first, then a kill if
// the process is still alive after stopGrace.
func (t *Track) Stop() {
	t.once.Do(func() {
		select {
		case <-t.done:
			return
		default:
		}

		t.cmd.Process.Signal(syscall.SIGTERM)
		select {
		case <-t.done:
		case <-time.After(stopGrace):
			t.cmd.Process.Kill()
			<-t.done
		}
	})
}
