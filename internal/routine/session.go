// Package routine drives one narration session: it feeds script lines
// through the classifier and performs the resulting actions in order.
// Processing is strictly sequential; no action starts until the
// previous one, including its sleep, has finished.
package routine

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ramonmscloud/habla/internal/media"
	"github.com/ramonmscloud/habla/internal/model"
	"github.com/ramonmscloud/habla/internal/script"
	"github.com/ramonmscloud/habla/internal/speech"
)

// Options configures a Session. Nil collaborators disable the matching
// side effect (a missing speaker mutes narration, a missing viewer
// skips image opening); the session keeps running either way.
type Options struct {
	Speaker speech.Speaker
	Viewer  media.Viewer
	Out     io.Writer
	Errs    io.Writer
	Now     func() time.Time
	Sleep   func(time.Duration)
}

// Session executes routine scripts against one start timestamp.
type Session struct {
	speaker speech.Speaker
	viewer  media.Viewer
	out     io.Writer
	errs    io.Writer
	now     func() time.Time
	sleep   func(time.Duration)
	start   time.Time
}

// NewSession captures the session clock. Elapsed-time announcements
// are always relative to this moment.
func NewSession(opts Options) *Session {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Errs == nil {
		opts.Errs = os.Stderr
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	return &Session{
		speaker: opts.Speaker,
		viewer:  opts.Viewer,
		out:     opts.Out,
		errs:    opts.Errs,
		now:     opts.Now,
		sleep:   opts.Sleep,
		start:   opts.Now(),
	}
}

// Run processes the script at path from top to bottom. Action-level
// failures are reported and skipped; only an unreadable file aborts
// the session.
func (s *Session) Run(path string) error {
	return script.IterateActions(path, s.warn, func(action model.Action) error {
		s.perform(action)
		return nil
	})
}

func (s *Session) perform(action model.Action) {
	switch action.Kind {
	case model.ActionPause:
		s.pause(action)
	case model.ActionImage:
		s.image(action)
	case model.ActionTime:
		s.elapsed()
	case model.ActionExercise:
		s.exercise(action)
	case model.ActionSpeak:
		s.speak(action.Text)
	}
}

// pause speaks the trailing text, announces the duration and blocks
// for the full duration before returning.
func (s *Session) pause(action model.Action) {
	s.speak(action.Text)
	fmt.Fprintf(s.out, "Esperando %d segundos...\n", action.Seconds)
	s.speak(fmt.Sprintf("%d segundos", action.Seconds))
	s.sleep(time.Duration(action.Seconds) * time.Second)
}

// image speaks the leading text, then opens the file. A viewer failure
// only loses this one action.
func (s *Session) image(action model.Action) {
	s.speak(action.Text)
	fmt.Fprintf(s.out, "Abriendo la imagen %s...\n", action.Path)
	if s.viewer == nil {
		fmt.Fprintf(s.errs, "warning: no image viewer available, skipping %s\n", action.Path)
		return
	}
	if err := s.viewer.Open(action.Path); err != nil {
		fmt.Fprintf(s.errs, "warning: %v\n", err)
	}
}

func (s *Session) elapsed() {
	minutes := int(s.now().Sub(s.start).Minutes())
	msg := fmt.Sprintf("Han transcurrido %d minutos desde el inicio de la ejecución", minutes)
	fmt.Fprintln(s.out, msg)
	s.speak(msg)
}

func (s *Session) exercise(action model.Action) {
	msg := "Ejercicio " + action.Number
	fmt.Fprintln(s.out, msg)
	s.speak(msg)
}

func (s *Session) speak(text string) {
	if s.speaker == nil || strings.TrimSpace(text) == "" {
		return
	}
	if err := s.speaker.Speak(text); err != nil {
		fmt.Fprintf(s.errs, "warning: speak: %v\n", err)
	}
}

func (s *Session) warn(err error) {
	fmt.Fprintf(s.errs, "warning: %v\n", err)
}
