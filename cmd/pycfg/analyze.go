package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cflowgraph/pycfg/app"
	"github.com/cflowgraph/pycfg/domain"
	"github.com/cflowgraph/pycfg/service"
	"github.com/spf13/cobra"
)

// AnalyzeCommand represents the comprehensive analysis command
type AnalyzeCommand struct {
	// Output format flags (only one should be true)
	html   bool
	json   bool
	csv    bool
	yaml   bool
	noOpen bool

	// Configuration
	configFile string
	verbose    bool

	// Analysis selection
	skipComplexity bool
	skipDeadCode   bool

	// Quick filters
	minComplexity int
	minSeverity   string
}

// NewAnalyzeCommand creates a new analyze command
func NewAnalyzeCommand() *AnalyzeCommand {
	return &AnalyzeCommand{
		html:           false,
		json:           false,
		csv:            false,
		yaml:           false,
		noOpen:         false,
		configFile:     "",
		verbose:        false,
		skipComplexity: false,
		skipDeadCode:   false,
		minComplexity:  5,
		minSeverity:    "warning",
	}
}

// CreateCobraCommand creates the cobra command for comprehensive analysis
func (c *AnalyzeCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [files...]",
		Short: "Run comprehensive analysis on Python files",
		Long: `Run comprehensive analysis combining complexity and dead code detection.

This command performs both available static analyses on Python code:
• Cyclomatic complexity analysis
• Dead code detection using CFG analysis

Results are combined and presented in a unified format.

Examples:
  # Analyze current directory
  pycfg analyze .

  # Analyze specific files with JSON output
  pycfg analyze --json src/myfile.py

  # Quick analysis with higher thresholds
  pycfg analyze --min-complexity 10 --min-severity critical src/

  # Skip dead code detection, focus on complexity only
  pycfg analyze --skip-deadcode src/`,
		Args: cobra.MinimumNArgs(1),
		RunE: c.runAnalyze,
	}

	// Output format flags
	cmd.Flags().BoolVar(&c.html, "html", false, "Generate HTML report file")
	cmd.Flags().BoolVar(&c.json, "json", false, "Generate JSON report file")
	cmd.Flags().BoolVar(&c.csv, "csv", false, "Generate CSV report file")
	cmd.Flags().BoolVar(&c.yaml, "yaml", false, "Generate YAML report file")
	cmd.Flags().BoolVar(&c.noOpen, "no-open", false, "Don't auto-open HTML in browser")
	cmd.Flags().StringVarP(&c.configFile, "config", "c", "", "Configuration file path")

	// Analysis selection flags
	cmd.Flags().BoolVar(&c.skipComplexity, "skip-complexity", false, "Skip complexity analysis")
	cmd.Flags().BoolVar(&c.skipDeadCode, "skip-deadcode", false, "Skip dead code detection")

	// Quick filter flags
	cmd.Flags().IntVar(&c.minComplexity, "min-complexity", 5, "Minimum complexity to report")
	cmd.Flags().StringVar(&c.minSeverity, "min-severity", "warning", "Minimum dead code severity (critical, warning, info)")

	return cmd
}

// determineOutputFormat determines the output format based on flags
func (c *AnalyzeCommand) determineOutputFormat() (string, string, error) {
	formatCount := 0
	var format string
	var extension string

	if c.html {
		formatCount++
		format = "html"
		extension = "html"
	}
	if c.json {
		formatCount++
		format = "json"
		extension = "json"
	}
	if c.csv {
		formatCount++
		format = "csv"
		extension = "csv"
	}
	if c.yaml {
		formatCount++
		format = "yaml"
		extension = "yaml"
	}

	if formatCount > 1 {
		return "", "", fmt.Errorf("only one output format flag can be specified")
	}

	// Default to HTML if no format specified (hybrid default: file + stderr summary)
	if formatCount == 0 {
		return "html", "html", nil
	}

	return format, extension, nil
}

// minSeverityValue maps the --min-severity flag to its domain enum value
func (c *AnalyzeCommand) minSeverityValue() domain.DeadCodeSeverity {
	switch c.minSeverity {
	case "critical":
		return domain.DeadCodeSeverityCritical
	case "info":
		return domain.DeadCodeSeverityInfo
	default:
		return domain.DeadCodeSeverityWarning
	}
}

// runAnalyze builds the complexity and dead code use cases, delegates their
// concurrent orchestration to app.AnalyzeUseCase, and writes the combined
// result as a unified report.
func (c *AnalyzeCommand) runAnalyze(cmd *cobra.Command, args []string) error {
	format, extension, err := c.determineOutputFormat()
	if err != nil {
		return err
	}

	fileReader := service.NewFileReader()

	useCaseBuilder := app.NewAnalyzeUseCaseBuilder().WithFileReader(fileReader)

	if !c.skipComplexity {
		complexityUseCase, err := app.NewComplexityUseCaseBuilder().
			WithService(service.NewComplexityService()).
			WithFileReader(fileReader).
			WithFormatter(service.NewOutputFormatter()).
			WithConfigLoader(service.NewConfigurationLoader()).
			Build()
		if err != nil {
			return fmt.Errorf("failed to build complexity use case: %w", err)
		}
		useCaseBuilder = useCaseBuilder.WithComplexityUseCase(complexityUseCase)
	}

	if !c.skipDeadCode {
		deadCodeUseCase := app.NewDeadCodeUseCase(
			service.NewDeadCodeService(),
			fileReader,
			service.NewDeadCodeFormatter(),
			service.NewDeadCodeConfigurationLoader(),
		)
		useCaseBuilder = useCaseBuilder.WithDeadCodeUseCase(deadCodeUseCase)
	}

	useCase, err := useCaseBuilder.Build()
	if err != nil {
		return fmt.Errorf("failed to build analyze use case: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	response, err := useCase.Execute(ctx, app.AnalyzeUseCaseConfig{
		SkipComplexity: c.skipComplexity,
		SkipDeadCode:   c.skipDeadCode,
		MinComplexity:  c.minComplexity,
		MinSeverity:    c.minSeverityValue(),
		ConfigFile:     c.configFile,
		Verbose:        c.verbose,
	}, args)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	return c.writeUnifiedReport(cmd, response, format, extension, args)
}

// writeUnifiedReport formats the combined response and writes it to a
// timestamped report file, opening it in a browser when it's HTML and the
// session looks interactive.
func (c *AnalyzeCommand) writeUnifiedReport(cmd *cobra.Command, response *domain.AnalyzeResponse, format, extension string, args []string) error {
	targetPath := getTargetPathFromArgs(args)
	filename, err := generateOutputFilePath("analyze", extension, targetPath)
	if err != nil {
		return fmt.Errorf("failed to determine output path: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", filename, err)
	}
	defer file.Close()

	formatter := service.NewAnalyzeFormatter()
	if err := formatter.Write(response, domain.OutputFormat(format), file); err != nil {
		return fmt.Errorf("failed to write unified report: %w", err)
	}

	absPath, err := filepath.Abs(filename)
	if err != nil {
		absPath = filename
	}

	if format == "html" {
		if !c.noOpen && isInteractiveEnvironment() {
			fileURL := "file://" + absPath
			if err := service.OpenBrowser(fileURL); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Could not open browser: %v\n", err)
			} else {
				fmt.Fprintf(cmd.ErrOrStderr(), "📊 Unified HTML report generated and opened: %s\n", absPath)
				return nil
			}
		}
	}

	formatName := strings.ToUpper(format)
	fmt.Fprintf(cmd.ErrOrStderr(), "📊 Unified %s report generated: %s\n", formatName, absPath)

	return nil
}

// NewAnalyzeCmd creates and returns the analyze cobra command
func NewAnalyzeCmd() *cobra.Command {
	analyzeCommand := NewAnalyzeCommand()
	return analyzeCommand.CreateCobraCommand()
}
