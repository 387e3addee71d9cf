// Package model provides the types shared by the script classifier,
// the routine driver and the output formatters.
package model

import "time"

// ActionKind identifies which directive (or plain narration) a script
// segment was classified as.
type ActionKind string

const (
	ActionPause    ActionKind = "pause"
	ActionImage    ActionKind = "image"
	ActionTime     ActionKind = "time"
	ActionExercise ActionKind = "exercise"
	ActionSpeak    ActionKind = "speak"
)

// Action is the classified form of one script segment. Exactly one
// directive is recognized per segment; a segment matching no directive
// pattern becomes an ActionSpeak carrying the whole segment as Text.
type Action struct {
	Kind    ActionKind
	Seconds int    // pause duration
	Text    string // trailing text (pause), leading text (image), narration (speak)
	Path    string // image file
	Number  string // exercise number, kept verbatim
}

// ScriptSummary holds lightweight information about one routine script.
type ScriptSummary struct {
	Name         string
	Path         string
	ModTime      time.Time
	Lines        int
	Actions      int
	Exercises    int
	Images       int
	PauseSeconds int
	Summary      string
}
