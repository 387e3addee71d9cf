// Package script implements the inline-marker grammar of routine
// scripts. A script is a plain-text file whose lines are split on '/'
// into segments; each segment carries at most one directive marker
// from the set [PAUSE:n], [IMAGEN:file], [TIEMPO], [EJERCICIO:n],
// mixed with free narration text.
package script

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/ramonmscloud/habla/internal/model"
)

var (
	pausePattern    = regexp.MustCompile(`\[PAUSE:(\d+)\](.*)`)
	imagePattern    = regexp.MustCompile(`\[IMAGEN:\s*([^\]]+)\]`)
	timePattern     = regexp.MustCompile(`\[TIEMPO\]`)
	exercisePattern = regexp.MustCompile(`\[EJERCICIO:\s*(\d+)\]`)
)

// Segments splits a raw line on '/', trims each piece and drops the
// empty ones.
func Segments(line string) []string {
	parts := strings.Split(line, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		segments = append(segments, part)
	}
	return segments
}

// classifiers are evaluated in order and the first match wins. Pause
// before Image keeps a segment carrying both markers deterministic.
var classifiers = []func(string) (model.Action, bool, error){
	matchPause,
	matchImage,
	matchTime,
	matchExercise,
}

// Classify maps one segment to exactly one Action. A segment matching
// none of the directive patterns is narrated verbatim.
func Classify(segment string) (model.Action, error) {
	for _, match := range classifiers {
		action, ok, err := match(segment)
		if err != nil {
			return model.Action{}, err
		}
		if ok {
			return action, nil
		}
	}
	return model.Action{Kind: model.ActionSpeak, Text: segment}, nil
}

// matchPause recognizes [PAUSE:n] and associates the text after the
// closing bracket with the pause. Text before the marker is discarded.
func matchPause(segment string) (model.Action, bool, error) {
	m := pausePattern.FindStringSubmatch(segment)
	if m == nil {
		return model.Action{}, false, nil
	}
	seconds, err := strconv.Atoi(m[1])
	if err != nil {
		// Only reachable when the digit run overflows int.
		return model.Action{}, false, fmt.Errorf("invalid pause duration %q: %w", m[1], err)
	}
	return model.Action{
		Kind:    model.ActionPause,
		Seconds: seconds,
		Text:    strings.TrimSpace(m[2]),
	}, true, nil
}

// matchImage recognizes [IMAGEN:file] and associates the text before
// the marker with the image. Text after the marker is discarded.
func matchImage(segment string) (model.Action, bool, error) {
	loc := imagePattern.FindStringSubmatchIndex(segment)
	if loc == nil {
		return model.Action{}, false, nil
	}
	return model.Action{
		Kind: model.ActionImage,
		Path: strings.TrimSpace(segment[loc[2]:loc[3]]),
		Text: strings.TrimSpace(segment[:loc[0]]),
	}, true, nil
}

func matchTime(segment string) (model.Action, bool, error) {
	if !timePattern.MatchString(segment) {
		return model.Action{}, false, nil
	}
	return model.Action{Kind: model.ActionTime}, true, nil
}

func matchExercise(segment string) (model.Action, bool, error) {
	m := exercisePattern.FindStringSubmatch(segment)
	if m == nil {
		return model.Action{}, false, nil
	}
	return model.Action{Kind: model.ActionExercise, Number: m[1]}, true, nil
}

// IterateActions reads the script at path line by line and calls fn
// for each classified action, in playback order. Segments that fail to
// classify are reported through warn (when non-nil) and skipped; only
// an unreadable file or an error from fn stops the iteration.
func IterateActions(path string, warn func(error), fn func(model.Action) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open script: %w", err)
	}
	defer file.Close()

	scanner := newScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		for _, segment := range Segments(scanner.Text()) {
			action, err := Classify(segment)
			if err != nil {
				if warn != nil {
					warn(fmt.Errorf("line %d: %w", lineNo, err))
				}
				continue
			}
			if err := fn(action); err != nil {
				return err
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan script: %w", err)
	}

	return nil
}

// ReadInfo scans the whole script and aggregates the statistics shown
// by the list command. The summary is the first plain narration
// segment found.
func ReadInfo(path string) (model.ScriptSummary, error) {
	info, err := os.Stat(path)
	if err != nil {
		return model.ScriptSummary{}, fmt.Errorf("stat script: %w", err)
	}

	summary := model.ScriptSummary{
		Name:    strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Path:    path,
		ModTime: info.ModTime(),
	}

	file, err := os.Open(path)
	if err != nil {
		return model.ScriptSummary{}, fmt.Errorf("open script: %w", err)
	}
	defer file.Close()

	scanner := newScanner(file)
	for scanner.Scan() {
		segments := Segments(scanner.Text())
		if len(segments) == 0 {
			continue
		}
		summary.Lines++
		for _, segment := range segments {
			action, err := Classify(segment)
			if err != nil {
				continue
			}
			summary.Actions++
			switch action.Kind {
			case model.ActionPause:
				summary.PauseSeconds += action.Seconds
			case model.ActionImage:
				summary.Images++
			case model.ActionExercise:
				summary.Exercises++
			case model.ActionSpeak:
				if summary.Summary == "" {
					summary.Summary = action.Text
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return model.ScriptSummary{}, fmt.Errorf("scan script: %w", err)
	}

	return summary, nil
}

func newScanner(file *os.File) *bufio.Scanner {
	scanner := bufio.NewScanner(file)
	// Narration lines are short, but leave room for pathological input.
	const maxCapacity = 1024 * 1024
	buf := make([]byte, 1024)
	scanner.Buffer(buf, maxCapacity)
	return scanner
}
