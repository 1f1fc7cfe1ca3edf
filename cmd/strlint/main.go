package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"strlint/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "strlint",
	Short: "String literal escape-style linter",
	Long:  `strlint checks string literals for a consistent escape style: invisible scalars escaped, attached modifiers literal, no mixing of raw non-ASCII text with unicode escapes`,
}

func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	// Добавляем команды
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics to show (0=from config)")
	rootCmd.PersistentFlags().Int("jobs", 0, "max parallel workers (0=auto)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
