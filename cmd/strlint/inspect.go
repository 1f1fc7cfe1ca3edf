package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"strlint/internal/analyze"
	"strlint/internal/diag"
	"strlint/internal/escape"
	"strlint/internal/grapheme"
	"strlint/internal/lexer"
	"strlint/internal/policy"
	"strlint/internal/source"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] <file>",
	Short: "Dump per-scalar escape decisions for every literal in a file",
	Long:  `Show how the policy engine sees each literal: grapheme clusters, per-scalar categories, chosen renderings with reasons, and the suggested conforming form when the literal violates the policy`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().String("text", "", "inspect raw text instead of a file")
}

func runInspect(cmd *cobra.Command, args []string) error {
	text, err := cmd.Flags().GetString("text")
	if err != nil {
		return fmt.Errorf("failed to get text flag: %w", err)
	}
	if text == "" && len(args) == 0 {
		return fmt.Errorf("provide a file or --text")
	}

	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	prevNoColor := color.NoColor
	color.NoColor = !(colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout)))
	defer func() { color.NoColor = prevNoColor }()

	fs := source.NewFileSet()
	var file *source.File
	if text != "" {
		// Заворачиваем текст в кавычки: inspect смотрит на содержимое,
		// а сканер ожидает литерал.
		id := fs.AddVirtual("<text>", []byte(`"`+text+`"`))
		file = fs.Get(id)
	} else {
		id, loadErr := fs.Load(args[0])
		if loadErr != nil {
			return fmt.Errorf("inspect: %w", loadErr)
		}
		file = fs.Get(id)
	}

	bag := diag.NewBag(100)
	literals := lexer.ScanAll(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	if len(literals) == 0 {
		fmt.Println("no string literals found")
		return nil
	}

	seg := grapheme.UAX29{}
	for idx, lit := range literals {
		if idx > 0 {
			fmt.Println()
		}
		start, _ := fs.Resolve(lit.Span)
		fmt.Printf("literal #%d at %s:%d:%d\n", idx+1, file.FormatPath("auto", fs.BaseDir()), start.Line, start.Col)

		res, _, analyzeErr := analyze.Literal(lit, seg, policy.ReportOpts{Quote: '"'})
		if analyzeErr != nil {
			fmt.Printf("  analysis failed: %v\n", analyzeErr)
			continue
		}
		dumpLiteral(res)
	}

	if bag.Len() > 0 {
		fmt.Println()
		for _, d := range bag.Items() {
			fmt.Printf("%s: %s\n", d.Code.ID(), d.Message)
		}
	}
	return nil
}

var (
	okColor  = color.New(color.FgGreen)
	badColor = color.New(color.FgRed, color.Bold)
	dimColor = color.New(color.FgHiBlack)
)

func dumpLiteral(res *analyze.Result) {
	flat := 0
	for ci, cl := range res.Clusters {
		shape := "isolated"
		if !cl.Isolated() {
			shape = fmt.Sprintf("%d scalar(s)", len(cl.Scalars))
		}
		fmt.Printf("  cluster %d (%s)\n", ci, shape)
		for range cl.Scalars {
			d := res.Decisions[flat]
			fmt.Printf("    U+%04X  %-16s %-16s %s\n",
				d.Value, d.Kind, dimColor.Sprintf("(%s)", d.Reason), spellingDisplay(d))
			flat++
		}
	}

	if res.Verdict.Conforms() {
		fmt.Printf("  %s\n", okColor.Sprint("conforms"))
		return
	}
	for _, v := range res.Verdict.Violations {
		fmt.Printf("  %s %s\n", badColor.Sprint("violation:"), v.Explanation)
	}
	fmt.Printf("  suggested: %q\n", res.Rendered)
}

func spellingDisplay(d escape.Decision) string {
	if d.Kind == escape.AsLiteral && !strings.ContainsAny(d.Spelling, "\n\t") {
		return fmt.Sprintf("%q", d.Spelling)
	}
	return d.Spelling
}
