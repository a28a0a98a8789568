package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cflowgraph/pycfg/app"
	"github.com/cflowgraph/pycfg/domain"
	"github.com/cflowgraph/pycfg/service"
	"github.com/spf13/cobra"
)

// CheckCommand represents a quick check command with sensible defaults
type CheckCommand struct {
	// Configuration
	configFile string
	quiet      bool

	// Quick override flags
	maxComplexity int
	allowDeadCode bool
}

// NewCheckCommand creates a new check command
func NewCheckCommand() *CheckCommand {
	return &CheckCommand{
		configFile:    "",
		quiet:         false,
		maxComplexity: 10,    // Fail if complexity > 10
		allowDeadCode: false, // Fail on critical dead code
	}
}

// CreateCobraCommand creates the cobra command for quick checking
func (c *CheckCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Quick code quality check with sensible defaults",
		Long: `Quick code quality check optimized for CI/CD pipelines.

This command performs a fast analysis with predefined thresholds:
• Complexity: Fails if any function has complexity > 10
• Dead Code: Fails if any critical dead code is found

Exit codes:
• 0: No issues found
• 1: Quality issues found (see output for details)
• 2: Analysis failed (invalid input, missing files, etc.)

The check command is designed to be fast and CI-friendly with minimal output
unless issues are found.

Examples:
  # Check current directory (typical CI usage)
  pycfg check .

  # Check with higher complexity threshold
  pycfg check --max-complexity 15 src/

  # Allow dead code, only check complexity
  pycfg check --allow-dead-code src/`,
		Args: cobra.ArbitraryArgs,
		RunE: c.runCheck,
	}

	// Configuration flags
	cmd.Flags().StringVarP(&c.configFile, "config", "c", "", "Configuration file path")
	cmd.Flags().BoolVarP(&c.quiet, "quiet", "q", false, "Suppress output unless issues found")

	// Override flags for quick adjustments
	cmd.Flags().IntVar(&c.maxComplexity, "max-complexity", 10, "Maximum allowed complexity")
	cmd.Flags().BoolVar(&c.allowDeadCode, "allow-dead-code", false, "Allow dead code (don't fail)")

	return cmd
}

// runCheck executes the quick check analysis
func (c *CheckCommand) runCheck(cmd *cobra.Command, args []string) error {
	// Default to current directory if no args
	if len(args) == 0 {
		args = []string{"."}
	}

	// Count issues found
	var issueCount int
	var hasErrors bool

	if !c.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "🔍 Running quality check...\n")
	}

	// Run complexity check
	complexityIssues, err := c.checkComplexity(cmd, args)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "❌ Complexity analysis failed: %v\n", err)
		hasErrors = true
	} else {
		issueCount += complexityIssues
	}

	// Run dead code check (if not explicitly allowed)
	if !c.allowDeadCode {
		deadCodeIssues, err := c.checkDeadCode(cmd, args)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "❌ Dead code analysis failed: %v\n", err)
			hasErrors = true
		} else {
			issueCount += deadCodeIssues
		}
	}

	// Handle results
	if hasErrors {
		return fmt.Errorf("analysis failed with errors")
	}

	if issueCount > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "❌ Found %d quality issue(s)\n", issueCount)
		os.Exit(1) // Exit with code 1 to indicate issues found
	}

	if !c.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "✅ Code quality check passed\n")
	}

	return nil
}

// checkComplexity runs complexity analysis and returns issue count
func (c *CheckCommand) checkComplexity(cmd *cobra.Command, args []string) (int, error) {
	// Create request with check-specific settings
	request := &domain.ComplexityRequest{
		Paths:           args,
		OutputFormat:    domain.OutputFormatText,
		OutputWriter:    io.Discard,
		MinComplexity:   1,
		MaxComplexity:   0, // No filter
		LowThreshold:    5,
		MediumThreshold: 9,
		ShowDetails:     false,
		SortBy:          domain.SortByComplexity,
		Recursive:       true,
		IncludePatterns: []string{"**/*.py"},
		ExcludePatterns: []string{"__pycache__/*", "*.pyc"},
		ConfigPath:      c.configFile,
	}

	// Create use case with services
	configLoader := service.NewConfigurationLoader()
	fileReader := service.NewFileReader()
	complexityService := service.NewComplexityService()
	outputFormatter := service.NewOutputFormatter()

	useCase, err := app.NewComplexityUseCaseBuilder().
		WithService(complexityService).
		WithFileReader(fileReader).
		WithFormatter(outputFormatter).
		WithConfigLoader(configLoader).
		Build()
	if err != nil {
		return 0, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Run analysis
	response, err := useCase.AnalyzeAndReturn(ctx, *request)
	if err != nil {
		return 0, err
	}

	// Count functions that exceed the maximum complexity threshold
	issueCount := 0
	for _, function := range response.Functions {
		if function.Metrics.Complexity > c.maxComplexity {
			issueCount++
			if !c.quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "❌ High complexity in %s:%s (complexity: %d > %d)\n",
					function.FilePath, function.Name, function.Metrics.Complexity, c.maxComplexity)
			}
		}
	}

	return issueCount, nil
}

// checkDeadCode runs dead code analysis and returns issue count
func (c *CheckCommand) checkDeadCode(cmd *cobra.Command, args []string) (int, error) {
	// Create request with check-specific settings
	request := &domain.DeadCodeRequest{
		Paths:                     args,
		OutputFormat:              domain.OutputFormatText,
		OutputWriter:              io.Discard,
		ShowContext:               domain.BoolPtr(false),
		ContextLines:              0,
		MinSeverity:               domain.DeadCodeSeverityCritical,
		SortBy:                    domain.DeadCodeSortBySeverity,
		Recursive:                 true,
		IncludePatterns:           []string{"**/*.py"},
		ExcludePatterns:           []string{"__pycache__/*", "*.pyc"},
		IgnorePatterns:            []string{},
		DetectAfterReturn:         domain.BoolPtr(true),
		DetectAfterBreak:          domain.BoolPtr(true),
		DetectAfterContinue:       domain.BoolPtr(true),
		DetectAfterRaise:          domain.BoolPtr(true),
		DetectUnreachableBranches: domain.BoolPtr(true),
		ConfigPath:                c.configFile,
	}

	// Create use case with services
	configLoader := service.NewDeadCodeConfigurationLoader()
	fileReader := service.NewFileReader()
	deadCodeService := service.NewDeadCodeService()
	deadCodeFormatter := service.NewDeadCodeFormatter()

	useCase := app.NewDeadCodeUseCase(
		deadCodeService,
		fileReader,
		deadCodeFormatter,
		configLoader,
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Run analysis
	response, err := useCase.AnalyzeAndReturn(ctx, *request)
	if err != nil {
		return 0, err
	}

	// Count critical dead code findings
	issueCount := response.Summary.CriticalFindings
	if issueCount > 0 && !c.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "❌ Found %d critical dead code issue(s)\n", issueCount)
	}

	return issueCount, nil
}

// NewCheckCmd creates and returns the check cobra command
func NewCheckCmd() *cobra.Command {
	checkCommand := NewCheckCommand()
	return checkCommand.CreateCobraCommand()
}
