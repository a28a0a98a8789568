package main

import (
	"os"

	"github.com/cflowgraph/pycfg/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pycfg",
	Short: "A control-flow-graph analyzer for Python",
	Long: `pycfg builds control flow graphs (CFGs) from Python source and uses
them to find dead code, measure cyclomatic complexity, and render the
graph itself.

Features:
  • CFG-based dead code detection
  • Cyclomatic complexity analysis
  • Mermaid CFG rendering, optionally opened in a browser
  • High-performance analysis (>10,000 lines/second)`,
	Version: version.Short(),
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	// Add main subcommands
	rootCmd.AddCommand(NewAnalyzeCmd())
	rootCmd.AddCommand(NewCheckCmd())
	rootCmd.AddCommand(NewGraphCmd())
	rootCmd.AddCommand(NewVersionCmd())
	rootCmd.AddCommand(NewInitCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
