package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ramonmscloud/habla/internal/model"
)

func sampleSummaries() []model.ScriptSummary {
	return []model.ScriptSummary{
		{
			Name:         "calentamiento",
			Path:         "scripts/calentamiento.txt",
			Lines:        2,
			Actions:      2,
			PauseSeconds: 5,
			Summary:      "Comienza el calentamiento",
		},
		{
			Name:         "pilates01",
			Path:         "scripts/pilates01.txt",
			Lines:        7,
			Actions:      10,
			Exercises:    2,
			Images:       2,
			PauseSeconds: 2,
			Summary:      "Bienvenido a la rutina de pilates",
		},
	}
}

func TestWriteSummariesTSV(t *testing.T) {
	var buf bytes.Buffer

	if err := WriteSummaries(&buf, sampleSummaries(), true, "tsv"); err != nil {
		t.Fatalf("WriteSummaries tsv returned error: %v", err)
	}

	expected := strings.Join([]string{
		"name\tlines\tactions\texercises\tpause_seconds\tsummary",
		"calentamiento\t2\t2\t0\t5\tComienza el calentamiento",
		"pilates01\t7\t10\t2\t2\tBienvenido a la rutina de pilates",
	}, "\n") + "\n"

	if got := buf.String(); got != expected {
		t.Fatalf("tsv output mismatch:\nexpected: %q\nactual:   %q", expected, got)
	}
}

func TestWriteSummariesTable(t *testing.T) {
	var buf bytes.Buffer

	if err := WriteSummaries(&buf, sampleSummaries(), true, "table"); err != nil {
		t.Fatalf("WriteSummaries table returned error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "NAME") || !strings.Contains(out, "SUMMARY") {
		t.Fatalf("table header missing expected columns:\n%s", out)
	}
	if !strings.Contains(out, "pilates01") {
		t.Fatalf("table body missing script row:\n%s", out)
	}
}

func TestWriteSummariesJSON(t *testing.T) {
	var buf bytes.Buffer

	if err := WriteSummaries(&buf, sampleSummaries(), false, "json"); err != nil {
		t.Fatalf("WriteSummaries json returned error: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json output: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(decoded))
	}
	if decoded[0]["name"] != "calentamiento" {
		t.Fatalf("unexpected first entry: %v", decoded[0])
	}
	if decoded[1]["pause_seconds"] != float64(2) {
		t.Fatalf("unexpected pause_seconds: %v", decoded[1])
	}
}

func TestWriteSummariesUnknownFormat(t *testing.T) {
	if err := WriteSummaries(&bytes.Buffer{}, nil, false, "xml"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestRenderAction(t *testing.T) {
	cases := []struct {
		action model.Action
		want   string
	}{
		{model.Action{Kind: model.ActionPause, Seconds: 5, Text: "hola"}, `pause    5s "hola"`},
		{model.Action{Kind: model.ActionPause, Seconds: 0}, "pause    0s"},
		{model.Action{Kind: model.ActionImage, Path: "foto.png", Text: "mira esto"}, `image    foto.png "mira esto"`},
		{model.Action{Kind: model.ActionImage, Path: "foto.png"}, "image    foto.png"},
		{model.Action{Kind: model.ActionTime}, "time"},
		{model.Action{Kind: model.ActionExercise, Number: "12"}, "exercise 12"},
		{model.Action{Kind: model.ActionSpeak, Text: "Respira profundo"}, `speak    "Respira profundo"`},
	}

	for _, tc := range cases {
		if got := RenderAction(tc.action); got != tc.want {
			t.Fatalf("RenderAction(%+v) = %q, want %q", tc.action, got, tc.want)
		}
	}
}
