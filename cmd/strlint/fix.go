package main

// todo: tui mode
// флаг --interactive/--tui включает интерактивный режим замен

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"strlint/internal/config"
	"strlint/internal/diag"
	"strlint/internal/driver"
	"strlint/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file|directory>...",
	Short: "Apply suggested literal rewrites",
	Long:  "Run the escape-policy check, surface suggested rewrites, and apply them according to the chosen strategy.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply all fixes")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("code", "", "apply fixes only for this diagnostic code (e.g. STY2004)")
	fixCmd.Flags().Bool("backup", false, "write <file>.bak before modifying")
	fixCmd.Flags().String("prefer", "", "policy preference (literal|escape), overrides config")
}

func runFix(cmd *cobra.Command, args []string) error {
	cfg, _, err := config.Discover(".")
	if err != nil {
		return err
	}

	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnceFlag, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetCode, err := cmd.Flags().GetString("code")
	if err != nil {
		return err
	}
	backup, err := cmd.Flags().GetBool("backup")
	if err != nil {
		return err
	}
	prefer, err := cmd.Flags().GetString("prefer")
	if err != nil {
		return err
	}
	if prefer == "" {
		prefer = cfg.Policy.Prefer
	}

	if targetCode != "" && (applyAll || applyOnceFlag) {
		return fmt.Errorf("--code cannot be combined with --all or --once")
	}
	if applyAll && applyOnceFlag {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	mode := fix.ApplyModeOnce
	var code diag.Code
	if targetCode != "" {
		code, err = parseCode(targetCode)
		if err != nil {
			return err
		}
		mode = fix.ApplyModeCode
	} else if applyAll {
		mode = fix.ApplyModeAll
	}
	opts := fix.ApplyOptions{
		Mode:       mode,
		TargetCode: code,
		Backup:     backup,
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	if maxDiagnostics <= 0 {
		maxDiagnostics = cfg.Output.MaxDiagnostics
	}
	jobs, err := cmd.Root().PersistentFlags().GetInt("jobs")
	if err != nil {
		return err
	}

	// Кэш при fix не используем: после записи вердикты всё равно
	// устаревают.
	checkOpts := driver.CheckOptions{
		Extensions:     cfg.Policy.Extensions,
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
		PreferEscapes:  prefer == "escape",
	}

	fs, results, err := driver.CheckPaths(cmd.Context(), args, checkOpts)
	if err != nil {
		return fmt.Errorf("fix: check failed: %w", err)
	}

	total := driver.MergeBags(results, maxDiagnostics)
	res, applyErr := fix.Apply(fs, total.Items(), opts)
	return handleApplyResult(res, applyErr)
}

// parseCode разбирает идентификатор вида STY2004 обратно в diag.Code.
func parseCode(id string) (diag.Code, error) {
	candidates := []diag.Code{
		diag.StyleMixedRepresentation,
		diag.StyleIsolatedModifierNotEscaped,
		diag.StyleAttachedModifierEscaped,
		diag.StyleInvisibleNotEscaped,
		diag.StyleMissingSpecialEscape,
		diag.StyleAmbiguousRepresentation,
	}
	for _, c := range candidates {
		if c.ID() == id {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown diagnostic code: %s", id)
}

func handleApplyResult(res *fix.ApplyResult, applyErr error) error {
	if res == nil {
		return applyErr
	}

	if len(res.Applied) > 0 {
		fmt.Fprintf(os.Stdout, "Applied %d fix(es):\n", len(res.Applied))
		for _, item := range res.Applied {
			location := item.PrimaryPath
			if location == "" {
				location = "(unknown location)"
			}
			fmt.Fprintf(os.Stdout, "  %s [%s] %s (%d edits)\n",
				item.Title, item.Code.ID(), location, item.EditCount)
		}
	}

	if len(res.FileChanges) > 0 {
		fmt.Fprintln(os.Stdout, "Updated files:")
		for _, change := range res.FileChanges {
			fmt.Fprintf(os.Stdout, "  %s (%d edits)\n", change.Path, change.EditCount)
		}
	}

	if len(res.Skipped) > 0 {
		fmt.Fprintln(os.Stdout, "Skipped fixes:")
		for _, skip := range res.Skipped {
			if skip.Title != "" {
				fmt.Fprintf(os.Stdout, "  %s: %s\n", skip.Title, skip.Reason)
			} else {
				fmt.Fprintf(os.Stdout, "  %s\n", skip.Reason)
			}
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0 {
			fmt.Fprintln(os.Stdout, "No applicable fixes found.")
			return nil
		}
		return applyErr
	}

	if len(res.Applied) == 0 {
		fmt.Fprintln(os.Stdout, "No fixes applied.")
	}
	return nil
}
