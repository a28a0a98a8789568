package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all control-flow analysis MCP tools with the server
func RegisterTools(s *server.MCPServer) {
	// Tool 1: analyze_code - Comprehensive code analysis
	s.AddTool(mcp.NewTool("analyze_code",
		mcp.WithDescription("Python control-flow analysis: cyclomatic complexity and CFG-based dead code detection"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to Python code (file or directory) to analyze")),
		mcp.WithArray("analyses",
			mcp.WithStringEnumItems([]string{"complexity", "dead_code"}),
			mcp.Description("Array of analyses to run. Options: complexity, dead_code. Default: all analyses")),
		mcp.WithBoolean("recursive",
			mcp.Description("Accepted but has no effect; directories are always analyzed recursively")),
	), HandleAnalyzeCode)

	// Tool 2: check_complexity - Cyclomatic complexity analysis
	s.AddTool(mcp.NewTool("check_complexity",
		mcp.WithDescription("Analyze cyclomatic complexity of Python functions from their control flow graphs"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to Python code to analyze")),
		mcp.WithNumber("min_complexity",
			mcp.Description("Minimum complexity to report (default: 1)")),
		mcp.WithNumber("max_complexity",
			mcp.Description("Maximum allowed complexity, 0 = no limit (default: 0)")),
		mcp.WithBoolean("show_details",
			mcp.Description("Include detailed metrics (default: true)")),
	), HandleCheckComplexity)

	// Tool 3: find_dead_code - Dead code detection
	s.AddTool(mcp.NewTool("find_dead_code",
		mcp.WithDescription("Find unreachable code using control flow graph reachability analysis"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to Python code to analyze")),
		mcp.WithString("min_severity",
			mcp.Description("Minimum severity: info, warning, critical (default: warning)")),
	), HandleFindDeadCode)

	// Tool 4: get_health_score - Overall code health score
	s.AddTool(mcp.NewTool("get_health_score",
		mcp.WithDescription("Get overall code health score (0-100) combining complexity and dead code signals"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to Python code to analyze")),
	), HandleGetHealthScore)

	// Tool 5: render_cfg - Render a function's control flow graph as Mermaid
	s.AddTool(mcp.NewTool("render_cfg",
		mcp.WithDescription("Render the control flow graph of one Python function as a Mermaid flowchart"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the Python file containing the function")),
		mcp.WithString("func",
			mcp.Description("Qualified function name to render (e.g. \"Outer.inner\"); defaults to the module body")),
		mcp.WithString("direction",
			mcp.Description("Mermaid flowchart direction, TD or LR (default: TD)")),
	), HandleRenderCFG)
}
