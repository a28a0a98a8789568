package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cflowgraph/pycfg/app"
	"github.com/cflowgraph/pycfg/domain"
	"github.com/cflowgraph/pycfg/internal/analyzer"
	"github.com/cflowgraph/pycfg/internal/parser"
	"github.com/cflowgraph/pycfg/internal/visualize"
	"github.com/cflowgraph/pycfg/service"
	"github.com/mark3labs/mcp-go/mcp"
)

// HandleAnalyzeCode handles the analyze_code tool
func HandleAnalyzeCode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	analyses := []string{}
	if rawAnalyses, ok := args["analyses"].([]interface{}); ok {
		for _, a := range rawAnalyses {
			if str, ok := a.(string); ok {
				analyses = append(analyses, str)
			}
		}
	}

	recursive := true
	if r, ok := args["recursive"].(bool); ok {
		recursive = r
	}

	fileReader := sharedFileReader()

	config := app.AnalyzeUseCaseConfig{
		SkipComplexity: !contains(analyses, "complexity") && len(analyses) > 0,
		SkipDeadCode:   !contains(analyses, "dead_code") && len(analyses) > 0,
		MinSeverity:    domain.DeadCodeSeverityWarning,
	}

	analyzeUC, err := buildAnalyzeUseCase(fileReader)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create analyzer: %v", err)), nil
	}

	paths := []string{path}
	if !recursive {
		paths = []string{path}
	}

	result, err := analyzeUC.Execute(ctx, config, paths)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// HandleCheckComplexity handles the check_complexity tool
func HandleCheckComplexity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	minComplexity := 1
	if mc, ok := args["min_complexity"].(float64); ok {
		minComplexity = int(mc)
	}

	maxComplexity := 0
	if mc, ok := args["max_complexity"].(float64); ok {
		maxComplexity = int(mc)
	}

	showDetails := true
	if sd, ok := args["show_details"].(bool); ok {
		showDetails = sd
	}

	req := domain.ComplexityRequest{
		Paths:           []string{path},
		MinComplexity:   minComplexity,
		MaxComplexity:   maxComplexity,
		ShowDetails:     showDetails,
		Recursive:       true,
		OutputFormat:    domain.OutputFormatJSON,
		OutputWriter:    io.Discard,
		LowThreshold:    9,
		MediumThreshold: 19,
		SortBy:          domain.SortByComplexity,
	}

	complexityService := service.NewComplexityService()
	fileReader := sharedFileReader()
	formatter := service.NewOutputFormatter()

	useCase := app.NewComplexityUseCase(
		complexityService,
		fileReader,
		formatter,
		nil,
	)

	result, err := useCase.AnalyzeAndReturn(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("complexity analysis failed: %v", err)), nil
	}

	jsonData, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// HandleFindDeadCode handles the find_dead_code tool
func HandleFindDeadCode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	minSeverity := domain.DeadCodeSeverityWarning
	if ms, ok := args["min_severity"].(string); ok {
		switch ms {
		case "info":
			minSeverity = domain.DeadCodeSeverityInfo
		case "warning":
			minSeverity = domain.DeadCodeSeverityWarning
		case "critical", "error":
			minSeverity = domain.DeadCodeSeverityCritical
		}
	}

	req := domain.DeadCodeRequest{
		Paths:        []string{path},
		MinSeverity:  minSeverity,
		Recursive:    true,
		OutputFormat: domain.OutputFormatJSON,
		OutputWriter: io.Discard,
		SortBy:       domain.DeadCodeSortBySeverity,
	}

	deadCodeService := service.NewDeadCodeService()
	fileReader := sharedFileReader()
	formatter := service.NewDeadCodeFormatter()

	useCase := app.NewDeadCodeUseCase(
		deadCodeService,
		fileReader,
		formatter,
		nil,
	)

	result, err := useCase.AnalyzeAndReturn(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("dead code analysis failed: %v", err)), nil
	}

	jsonData, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// HandleGetHealthScore handles the get_health_score tool
func HandleGetHealthScore(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	fileReader := sharedFileReader()

	analyzeUC, err := buildAnalyzeUseCase(fileReader)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create analyzer: %v", err)), nil
	}

	config := app.AnalyzeUseCaseConfig{
		SkipComplexity: false,
		SkipDeadCode:   false,
		MinSeverity:    domain.DeadCodeSeverityWarning,
	}

	result, err := analyzeUC.Execute(ctx, config, []string{path})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	healthScoreResult := map[string]interface{}{
		"health_score": result.Summary.HealthScore,
		"grade":        result.Summary.Grade,
		"is_healthy":   result.Summary.IsHealthy(),
		"category_scores": map[string]int{
			"complexity_score": result.Summary.ComplexityScore,
			"dead_code_score":  result.Summary.DeadCodeScore,
		},
		"summary": map[string]interface{}{
			"total_files":           result.Summary.TotalFiles,
			"average_complexity":    result.Summary.AverageComplexity,
			"high_complexity_count": result.Summary.HighComplexityCount,
			"dead_code_count":       result.Summary.DeadCodeCount,
		},
	}

	jsonData, err := json.Marshal(healthScoreResult)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// HandleRenderCFG handles the render_cfg tool
func HandleRenderCFG(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read %s: %v", path, err)), nil
	}

	funcName := analyzer.LabelMainModule
	if f, ok := args["func"].(string); ok && f != "" {
		funcName = f
	}

	direction := "TD"
	if d, ok := args["direction"].(string); ok && d != "" {
		direction = d
	}

	result, err := parser.New().Parse(ctx, source)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to parse %s: %v", path, err)), nil
	}

	graphs, err := analyzer.NewCFGBuilder().BuildAll(result.AST)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to build CFGs for %s: %v", path, err)), nil
	}

	g, ok := graphs[funcName]
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("function %q not found in %s", funcName, path)), nil
	}

	diagram := visualize.ToMermaid(g, visualize.Options{Direction: direction})

	return mcp.NewToolResultText(diagram), nil
}

// Helper functions

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func buildAnalyzeUseCase(fileReader domain.FileReader) (*app.AnalyzeUseCase, error) {
	complexityService := service.NewComplexityService()
	complexityFormatter := service.NewOutputFormatter()
	complexityUC := app.NewComplexityUseCase(complexityService, fileReader, complexityFormatter, nil)

	deadCodeService := service.NewDeadCodeService()
	deadCodeFormatter := service.NewDeadCodeFormatter()
	deadCodeUC := app.NewDeadCodeUseCase(deadCodeService, fileReader, deadCodeFormatter, nil)

	return app.NewAnalyzeUseCaseBuilder().
		WithComplexityUseCase(complexityUC).
		WithDeadCodeUseCase(deadCodeUC).
		WithFileReader(fileReader).
		WithProgressManager(service.NewProgressManager()).
		WithParallelExecutor(service.NewParallelExecutor()).
		WithErrorCategorizer(service.NewErrorCategorizer()).
		Build()
}
