package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ramonmscloud/habla/internal/config"
	"github.com/ramonmscloud/habla/internal/format"
	"github.com/ramonmscloud/habla/internal/library"
	"github.com/ramonmscloud/habla/internal/media"
	"github.com/ramonmscloud/habla/internal/model"
	"github.com/ramonmscloud/habla/internal/picker"
	"github.com/ramonmscloud/habla/internal/routine"
	"github.com/ramonmscloud/habla/internal/script"
	"github.com/ramonmscloud/habla/internal/speech"
)

func main() {
	cfg := config.Load()
	if err := newRootCmd(cfg).Execute(); err != nil {
		if errors.Is(err, picker.ErrAborted) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "habla: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habla",
		Short: "Narrate workout routine scripts with speech synthesis",
	}
	cmd.AddCommand(newPlayCmd(cfg))
	cmd.AddCommand(newListCmd(cfg))
	cmd.AddCommand(newCheckCmd(cfg))
	return cmd
}

func newPlayCmd(cfg config.Config) *cobra.Command {
	var (
		scriptsDir string
		music      string
		voice      string
		quiet      bool
	)

	cmd := &cobra.Command{
		Use:   "play [script]",
		Short: "Run a routine script, narrating it segment by segment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveScript(args, scriptsDir)
			if err != nil {
				return err
			}

			musicPath, err := resolveMusic(music, scriptsDir)
			if err != nil {
				return err
			}

			errs := cmd.ErrOrStderr()

			var speaker speech.Speaker
			if !quiet {
				cmdSpeaker, err := speech.NewCommand(cfg.SayCommand, voice)
				if err != nil {
					fmt.Fprintf(errs, "warning: %v, narration muted\n", err)
				} else {
					speaker = cmdSpeaker
				}
			}

			var viewer media.Viewer
			if cmdViewer, err := media.NewViewer(cfg.OpenCommand); err != nil {
				fmt.Fprintf(errs, "warning: %v, images will be skipped\n", err)
			} else {
				viewer = cmdViewer
			}

			session := routine.NewSession(routine.Options{
				Speaker: speaker,
				Viewer:  viewer,
				Out:     cmd.OutOrStdout(),
				Errs:    errs,
			})

			if musicPath != "" {
				player, err := media.NewPlayer(cfg.PlayerCommand)
				if err != nil {
					fmt.Fprintf(errs, "warning: %v, no background music\n", err)
				} else {
					track, err := player.PlayOnce(musicPath)
					if err != nil {
						fmt.Fprintf(errs, "warning: %v\n", err)
					} else {
						defer track.Stop()
						stopOnSignal(track)
					}
				}
			}

			return session.Run(path)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&scriptsDir, "scripts-dir", cfg.ScriptsDir, "directory containing routine scripts")
	flags.StringVar(&music, "music", "", "background audio file to play once, or 'ask' to choose interactively")
	flags.StringVar(&voice, "voice", cfg.Voice, "synthesizer voice name")
	flags.BoolVar(&quiet, "quiet", false, "print notices only, without speech")

	return cmd
}

func newListCmd(cfg config.Config) *cobra.Command {
	var (
		scriptsDir string
		formatFlag string
		limit      int
		noHeader   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List routine scripts with their statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			width := tableWidth(os.Stdout, 0)

			result, err := library.ListScripts(library.ListOptions{
				Root:       scriptsDir,
				Limit:      limit,
				MaxSummary: summaryWidth(width),
			})
			if err != nil {
				return err
			}

			for _, warn := range result.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", warn)
			}

			mode := formatFlag
			if mode == "" {
				mode = "tsv"
				if isatty.IsTerminal(os.Stdout.Fd()) {
					mode = "table"
				}
			}

			return format.WriteSummaries(cmd.OutOrStdout(), result.Summaries, !noHeader, mode)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&scriptsDir, "scripts-dir", cfg.ScriptsDir, "directory containing routine scripts")
	flags.StringVar(&formatFlag, "format", "", "output format: table, tsv, or json (default: table on a terminal, tsv otherwise)")
	flags.IntVar(&limit, "limit", 0, "limit number of scripts returned (0 means no limit)")
	flags.BoolVar(&noHeader, "no-header", false, "omit the header row")

	return cmd
}

func newCheckCmd(cfg config.Config) *cobra.Command {
	var scriptsDir string

	cmd := &cobra.Command{
		Use:   "check <script>",
		Short: "Parse a script and print its action plan without side effects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := library.FindScript(scriptsDir, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			warn := func(err error) {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}

			return script.IterateActions(path, warn, func(action model.Action) error {
				_, err := fmt.Fprintln(out, format.RenderAction(action))
				return err
			})
		},
	}

	cmd.Flags().StringVar(&scriptsDir, "scripts-dir", cfg.ScriptsDir, "directory containing routine scripts")

	return cmd
}

// resolveScript returns the script path from args, or opens the
// interactive picker when no argument was given on a terminal.
func resolveScript(args []string, dir string) (string, error) {
	if len(args) == 1 {
		return library.FindScript(dir, args[0])
	}

	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
		return "", errors.New("no script given; pass a script path or run on a terminal")
	}

	result, err := library.ListScripts(library.ListOptions{Root: dir, MaxSummary: 60})
	if err != nil {
		return "", err
	}
	for _, warn := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %v\n", warn)
	}
	if len(result.Summaries) == 0 {
		return "", fmt.Errorf("no scripts found under %s", dir)
	}

	return picker.Run("Elige una rutina", summaryItems(result.Summaries))
}

// resolveMusic interprets the --music flag: empty means no music, a
// path is used as-is, and "ask" opens the audio picker.
func resolveMusic(flag, dir string) (string, error) {
	if flag != "ask" {
		return flag, nil
	}

	paths, err := library.ListAudio(dir)
	if err != nil {
		return "", err
	}
	if len(paths) == 0 {
		return "", fmt.Errorf("no audio files found under %s", dir)
	}

	items := make([]picker.Item, 0, len(paths))
	for _, path := range paths {
		items = append(items, picker.Item{Title: path, Value: path})
	}
	return picker.Run("Elige la música de fondo", items)
}

func summaryItems(summaries []model.ScriptSummary) []picker.Item {
	items := make([]picker.Item, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, picker.Item{
			Title:       s.Name,
			Description: s.Summary,
			Value:       s.Path,
		})
	}
	return items
}

// stopOnSignal stops the background track when the process is
// interrupted, so the player is never left orphaned.
func stopOnSignal(track *media.Track) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ch
		track.Stop()
		os.Exit(130)
	}()
}

func tableWidth(out *os.File, wrap int) int {
	if wrap > 0 {
		return wrap
	}
	if out != nil {
		if w, _, err := term.GetSize(int(out.Fd())); err == nil && w > 0 {
			return w
		}
	}
	if colsStr := os.Getenv("COLUMNS"); colsStr != "" {
		if v, err := strconv.Atoi(colsStr); err == nil && v > 0 {
			return v
		}
	}
	return 80
}

// summaryWidth leaves room for the numeric columns of the table.
func summaryWidth(tableWidth int) int {
	width := tableWidth - 45
	if width < 20 {
		width = 20
	}
	return width
}
