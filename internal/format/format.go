// Package format renders script summaries and dry-run action plans.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ramonmscloud/habla/internal/model"
)

// WriteSummaries writes script summaries to w in the requested format.
func WriteSummaries(w io.Writer, items []model.ScriptSummary, includeHeader bool, format string) error {
	switch format {
	case "table":
		return writeSummariesTable(w, items, includeHeader)
	case "tsv":
		return writeSummariesTSV(w, items, includeHeader)
	case "json":
		return writeSummariesJSON(w, items)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeSummariesTable(w io.Writer, items []model.ScriptSummary, includeHeader bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if includeHeader {
		fmt.Fprintln(tw, "NAME\tLINES\tACTIONS\tEXERCISES\tPAUSE\tSUMMARY")
	}
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\t%s\n",
			item.Name,
			item.Lines,
			item.Actions,
			item.Exercises,
			(time.Duration(item.PauseSeconds) * time.Second).String(),
			escapeNewlines(item.Summary),
		)
	}
	return tw.Flush()
}

func writeSummariesTSV(w io.Writer, items []model.ScriptSummary, includeHeader bool) error {
	if includeHeader {
		if _, err := fmt.Fprintln(w, "name\tlines\tactions\texercises\tpause_seconds\tsummary"); err != nil {
			return err
		}
	}

	for _, item := range items {
		line := fmt.Sprintf(
			"%s\t%d\t%d\t%d\t%d\t%s",
			item.Name,
			item.Lines,
			item.Actions,
			item.Exercises,
			item.PauseSeconds,
			escapeNewlines(item.Summary),
		)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func writeSummariesJSON(w io.Writer, items []model.ScriptSummary) error {
	type summaryJSON struct {
		Name         string `json:"name"`
		Path         string `json:"path"`
		Lines        int    `json:"lines"`
		Actions      int    `json:"actions"`
		Exercises    int    `json:"exercises"`
		Images       int    `json:"images"`
		PauseSeconds int    `json:"pause_seconds"`
		Summary      string `json:"summary"`
	}

	out := make([]summaryJSON, 0, len(items))
	for _, item := range items {
		out = append(out, summaryJSON{
			Name:         item.Name,
			Path:         item.Path,
			Lines:        item.Lines,
			Actions:      item.Actions,
			Exercises:    item.Exercises,
			Images:       item.Images,
			PauseSeconds: item.PauseSeconds,
			Summary:      item.Summary,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// RenderAction returns the one-line dry-run description of an action,
// as printed by the check command.
func RenderAction(action model.Action) string {
	switch action.Kind {
	case model.ActionPause:
		if action.Text != "" {
			return fmt.Sprintf("pause    %ds %q", action.Seconds, action.Text)
		}
		return fmt.Sprintf("pause    %ds", action.Seconds)
	case model.ActionImage:
		if action.Text != "" {
			return fmt.Sprintf("image    %s %q", action.Path, action.Text)
		}
		return fmt.Sprintf("image    %s", action.Path)
	case model.ActionTime:
		return "time"
	case model.ActionExercise:
		return "exercise " + action.Number
	default:
		return fmt.Sprintf("speak    %q", action.Text)
	}
}

func escapeNewlines(text string) string {
	return strings.ReplaceAll(text, "\n", "\\n")
}
