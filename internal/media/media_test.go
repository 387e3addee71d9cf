package media

import (
	"errors"
	"os/exec"
	"reflect"
	"testing"
	"time"
)

func TestViewerCandidatesOverride(t *testing.T) {
	got := viewerCandidates("mi-visor")
	if len(got) != 1 || got[0] != "mi-visor" {
		t.Fatalf("override must be the only candidate, got %v", got)
	}
}

func TestNewViewerUnavailable(t *testing.T) {
	_, err := NewViewer("binario-que-no-existe-xyz")
	if !errors.Is(err, ErrNoViewer) {
		t.Fatalf("expected ErrNoViewer, got %v", err)
	}
}

func TestNewPlayerUnavailable(t *testing.T) {
	_, err := NewPlayer("binario-que-no-existe-xyz")
	if !errors.Is(err, ErrNoPlayer) {
		t.Fatalf("expected ErrNoPlayer, got %v", err)
	}
}

func TestPlayerArgs(t *testing.T) {
	cases := []struct {
		base string
		want []string
	}{
		{"afplay", []string{"pista.mp3"}},
		{"mpg123", []string{"-q", "pista.mp3"}},
		{"ffplay", []string{"-nodisp", "-autoexit", "-loglevel", "quiet", "pista.mp3"}},
	}
	for _, tc := range cases {
		got := playerArgs(tc.base, "pista.mp3")
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("playerArgs(%q) = %v, want %v", tc.base, got, tc.want)
		}
	}
}

func TestTrackStopIdempotent(t *testing.T) {
	cmd := exec.Command("sleep", "30")
	if err := cmd.Start(); err != nil {
		t.Skipf("cannot start sleep: %v", err)
	}
	track := newTrack(cmd)

	track.Stop()
	track.Stop() // second call must be a no-op

	select {
	case <-track.done:
	case <-time.After(5 * time.Second):
		t.Fatal("process still running after Stop")
	}
}

func TestTrackStopAfterNaturalExit(t *testing.T) {
	cmd := exec.Command("true")
	if err := cmd.Start(); err != nil {
		t.Skipf("cannot start true: %v", err)
	}
	track := newTrack(cmd)

	select {
	case <-track.done:
	case <-time.After(5 * time.Second):
		t.Fatal("process did not exit")
	}

	track.Stop() // must not panic or block
}
