// Package library enumerates routine scripts and music files on disk.
package library

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ramonmscloud/habla/internal/model"
	"github.com/ramonmscloud/habla/internal/script"
)

// ErrNotFound is returned when a script cannot be resolved by name.
var ErrNotFound = errors.New("script not found")

var audioExts = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".m4a":  true,
	".ogg":  true,
	".aiff": true,
}

// ListOptions controls how scripts are enumerated.
type ListOptions struct {
	Root       string
	Limit      int
	MaxSummary int
}

// ListResult contains script summaries and non-fatal warnings.
type ListResult struct {
	Summaries []model.ScriptSummary
	Warnings  []error
}

// ListScripts enumerates .txt routine scripts under Root, sorted by
// name. Scripts that cannot be read are reported as warnings instead
// of failing the whole listing.
func ListScripts(opts ListOptions) (ListResult, error) {
	root := opts.Root
	if root == "" {
		return ListResult{}, errors.New("root directory is required")
	}

	var result ListResult

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			result.Warnings = append(result.Warnings, fmt.Errorf("walk %s: %w", path, walkErr))
			return nil
		}

		if d.IsDir() || !strings.HasSuffix(d.Name(), ".txt") {
			return nil
		}

		info, err := script.ReadInfo(path)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Errorf("read %s: %w", path, err))
			return nil
		}

		if opts.MaxSummary > 0 && len(info.Summary) > opts.MaxSummary {
			info.Summary = truncate(info.Summary, opts.MaxSummary)
		}

		result.Summaries = append(result.Summaries, info)
		return nil
	})
	if err != nil {
		return result, err
	}

	sort.Slice(result.Summaries, func(i, j int) bool {
		return result.Summaries[i].Name < result.Summaries[j].Name
	})

	if opts.Limit > 0 && len(result.Summaries) > opts.Limit {
		result.Summaries = result.Summaries[:opts.Limit]
	}

	return result, nil
}

// FindScript resolves arg as a literal path, a file under root, or a
// script name without the .txt extension.
func FindScript(root, arg string) (string, error) {
	if arg == "" {
		return "", errors.New("script name is empty")
	}

	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		return arg, nil
	}

	for _, name := range []string{arg, arg + ".txt"} {
		candidate := filepath.Join(root, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: %q under %s", ErrNotFound, arg, root)
}

// ListAudio returns playable audio files directly under root, sorted
// by name.
func ListAudio(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read audio dir: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if audioExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			paths = append(paths, filepath.Join(root, entry.Name()))
		}
	}

	sort.Strings(paths)
	return paths, nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
