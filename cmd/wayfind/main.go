package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"wayfind/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "wayfind",
	Short: "Module request resolution checker",
	Long:  `Wayfind resolves require/import requests across a project and reports every request that cannot be satisfied`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag against the output terminal.
func useColor(mode string, f *os.File) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}
