package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"strlint/internal/config"
	"strlint/internal/diagfmt"
	"strlint/internal/driver"
	"strlint/internal/observ"
	"strlint/internal/source"
	"strlint/internal/ui"
	"strlint/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file|directory>...",
	Short: "Check string literals against the escape policy",
	Long:  `Scan files for string literals and report escape-style violations: unescaped invisibles, escaped attached modifiers, mixed literal/escape representations`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "", "output format (pretty|json|sarif), overrides config")
	checkCmd.Flags().String("prefer", "", "policy preference (literal|escape), overrides config")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("suggest", true, "include fix suggestions in output")
	checkCmd.Flags().Bool("preview", false, "show replacement previews next to suggestions")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("no-cache", false, "disable the persistent verdict cache")
	checkCmd.Flags().Bool("progress", false, "render interactive progress (pretty format only)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, _, err := config.Discover(".")
	if err != nil {
		return err
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format == "" {
		format = cfg.Output.Format
	}
	switch format {
	case "text", "pretty":
		format = "pretty"
	case "json", "sarif":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	prefer, err := cmd.Flags().GetString("prefer")
	if err != nil {
		return fmt.Errorf("failed to get prefer flag: %w", err)
	}
	if prefer == "" {
		prefer = cfg.Policy.Prefer
	}
	switch prefer {
	case "literal", "escape":
	default:
		return fmt.Errorf("unknown prefer value: %s (must be literal or escape)", prefer)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if maxDiagnostics <= 0 {
		maxDiagnostics = cfg.Output.MaxDiagnostics
	}

	jobs, err := cmd.Root().PersistentFlags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	suggest, err := cmd.Flags().GetBool("suggest")
	if err != nil {
		return fmt.Errorf("failed to get suggest flag: %w", err)
	}
	preview, err := cmd.Flags().GetBool("preview")
	if err != nil {
		return fmt.Errorf("failed to get preview flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	withProgress, err := cmd.Flags().GetBool("progress")
	if err != nil {
		return fmt.Errorf("failed to get progress flag: %w", err)
	}

	var cache *driver.DiskCache
	if cfg.Cache.Enabled && !noCache {
		cache, err = driver.OpenDiskCache("strlint", cfg.Cache.Dir)
		if err != nil {
			// кэш — ускорение, не отказываем из-за него
			fmt.Fprintf(os.Stderr, "warning: disk cache unavailable: %v\n", err)
		}
	}

	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
	}

	opts := driver.CheckOptions{
		Extensions:     cfg.Policy.Extensions,
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
		PreferEscapes:  prefer == "escape",
		Cache:          cache,
		Timer:          timer,
	}

	useProgress := withProgress && format == "pretty" && !quiet && isTerminal(os.Stdout)

	fs, results, err := runCheckPaths(cmd, args, opts, useProgress)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	total := driver.MergeBags(results, maxDiagnostics)

	exit := 0
	if total.HasErrors() || total.HasWarnings() {
		exit = 1
	}

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	if colorFlag == "auto" {
		colorFlag = cfg.Output.Color
	}
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))

	switch format {
	case "pretty":
		if !quiet || total.Len() > 0 {
			prettyOpts := diagfmt.PrettyOpts{
				Color:       useColor,
				PathMode:    pathMode,
				Width:       80,
				ShowNotes:   withNotes,
				ShowFixes:   suggest || preview,
				ShowPreview: preview,
			}
			if err := diagfmt.Pretty(os.Stdout, total, fs, prettyOpts); err != nil {
				return err
			}
		}
		if !quiet {
			printCheckSummary(results)
		}
	case "json":
		jsonOpts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
			IncludeFixes:     suggest || preview,
		}
		if err := diagfmt.JSON(os.Stdout, total, fs, jsonOpts); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	case "sarif":
		meta := diagfmt.SarifRunMeta{
			ToolName:       "strlint",
			ToolVersion:    version.Plain,
			InvocationArgs: args,
		}
		if err := diagfmt.Sarif(os.Stdout, total, fs, meta); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	}

	if showTimings && timer != nil {
		fmt.Fprint(os.Stderr, timer.Summary())
	}

	if exit != 0 {
		// Suppress cobra usage output on diagnostic errors
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("") // Silent error - diagnostics already printed
	}
	return nil
}

// runCheckPaths запускает проверку, при необходимости оборачивая её в
// интерактивный прогресс.
func runCheckPaths(cmd *cobra.Command, paths []string, opts driver.CheckOptions, withProgress bool) (fs *source.FileSet, results []driver.FileResult, err error) {
	if !withProgress {
		return driver.CheckPaths(cmd.Context(), paths, opts)
	}

	files, err := driver.ListFiles(paths, opts.Extensions)
	if err != nil {
		return nil, nil, err
	}

	events := make(ui.ChannelSink, 64)
	opts.Progress = events

	model := ui.NewProgressModel("checking literals", files, events)
	prog := tea.NewProgram(model)

	done := make(chan struct{})
	go func() {
		defer close(done)
		fs, results, err = driver.CheckPaths(cmd.Context(), paths, opts)
		close(events)
	}()

	if _, runErr := prog.Run(); runErr != nil {
		// UI умер раньше драйвера: выгребаем события, чтобы воркеры
		// не повисли на отправке
		go func() {
			for range events {
			}
		}()
		<-done
		if err == nil {
			err = runErr
		}
		return fs, results, err
	}
	<-done
	return fs, results, err
}

func printCheckSummary(results []driver.FileResult) {
	files := len(results)
	literals := 0
	clean := 0
	cached := 0
	for _, r := range results {
		literals += r.Literals
		if r.Conforming {
			clean++
		}
		if r.FromCache {
			cached++
		}
	}
	fmt.Printf("checked %d file(s), %d literal(s): %d conforming", files, literals, clean)
	if cached > 0 {
		fmt.Printf(" (%d from cache)", cached)
	}
	fmt.Println()
}
