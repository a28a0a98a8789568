package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cflowgraph/pycfg/internal/analyzer"
	"github.com/cflowgraph/pycfg/internal/parser"
	"github.com/cflowgraph/pycfg/internal/visualize"
	"github.com/cflowgraph/pycfg/service"
	"github.com/spf13/cobra"
)

// GraphCommand renders a single function's CFG as Mermaid
type GraphCommand struct {
	function  string
	direction string
	html      bool
	noOpen    bool
}

// NewGraphCommand creates a new graph command
func NewGraphCommand() *GraphCommand {
	return &GraphCommand{
		function:  analyzer.LabelMainModule,
		direction: "TD",
	}
}

// CreateCobraCommand creates the cobra command for CFG rendering
func (c *GraphCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph <path>",
		Short: "Render a function's control flow graph as Mermaid",
		Long: `Render the control flow graph of one function in a Python file as a
Mermaid flowchart, printed to stdout by default or opened as an HTML page
in a browser with --html.

Examples:
  # Render the module-level CFG
  pycfg graph src/module.py

  # Render a specific function's CFG
  pycfg graph src/module.py --func parse_config

  # Open the rendered graph in a browser
  pycfg graph src/module.py --func parse_config --html`,
		Args: cobra.ExactArgs(1),
		RunE: c.runGraph,
	}

	cmd.Flags().StringVar(&c.function, "func", analyzer.LabelMainModule, "Qualified function name to render (e.g. \"Outer.inner\"); defaults to the module body")
	cmd.Flags().StringVar(&c.direction, "direction", "TD", "Mermaid flowchart direction (TD or LR)")
	cmd.Flags().BoolVar(&c.html, "html", false, "Write an HTML page instead of printing Mermaid source")
	cmd.Flags().BoolVar(&c.noOpen, "no-open", false, "Don't auto-open the HTML page in a browser")

	return cmd
}

func (c *GraphCommand) runGraph(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	source, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	p := parser.New()
	result, err := p.Parse(ctx, source)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", filePath, err)
	}

	graphs, err := analyzer.NewCFGBuilder().BuildAll(result.AST)
	if err != nil {
		return fmt.Errorf("failed to build CFGs for %s: %w", filePath, err)
	}

	g, ok := graphs[c.function]
	if !ok {
		return fmt.Errorf("function %q not found in %s", c.function, filePath)
	}

	diagram := visualize.ToMermaid(g, visualize.Options{Direction: c.direction})

	if !c.html {
		fmt.Fprintln(cmd.OutOrStdout(), diagram)
		return nil
	}

	html, err := visualize.ToHTML(fmt.Sprintf("%s: %s", filePath, c.function), diagram)
	if err != nil {
		return fmt.Errorf("failed to render HTML: %w", err)
	}

	outputPath, err := generateOutputFilePath("graph", "html", filePath)
	if err != nil {
		return fmt.Errorf("failed to determine output path: %w", err)
	}

	if err := os.WriteFile(outputPath, []byte(html), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		absPath = outputPath
	}

	if !c.noOpen && isInteractiveEnvironment() {
		if err := service.OpenBrowser("file://" + absPath); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Could not open browser: %v\n", err)
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "📈 CFG diagram generated and opened: %s\n", absPath)
			return nil
		}
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "📈 CFG diagram generated: %s\n", absPath)
	return nil
}

// NewGraphCmd creates and returns the graph cobra command
func NewGraphCmd() *cobra.Command {
	graphCommand := NewGraphCommand()
	return graphCommand.CreateCobraCommand()
}
