package service

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/cflowgraph/pycfg/domain"
)

// AnalyzeFormatter handles formatting of unified analysis reports
type AnalyzeFormatter struct {
	complexityFormatter *OutputFormatterImpl
	deadCodeFormatter   *DeadCodeFormatterImpl
}

// NewAnalyzeFormatter creates a new analyze formatter
func NewAnalyzeFormatter() *AnalyzeFormatter {
	return &AnalyzeFormatter{
		complexityFormatter: NewOutputFormatter(),
		deadCodeFormatter:   NewDeadCodeFormatter(),
	}
}

// Write formats and writes the unified analysis response
func (f *AnalyzeFormatter) Write(response *domain.AnalyzeResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		return f.writeText(response, writer)
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatCSV:
		return f.writeCSV(response, writer)
	case domain.OutputFormatHTML:
		return f.writeHTML(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// writeText formats the response as plain text
func (f *AnalyzeFormatter) writeText(response *domain.AnalyzeResponse, writer io.Writer) error {
	utils := NewFormatUtils()

	// Header
	fmt.Fprint(writer, utils.FormatMainHeader("Comprehensive Analysis Report"))

	// Overall health and duration
	healthStats := map[string]interface{}{
		"Health Score":      fmt.Sprintf("%d/100 (%s)", response.Summary.HealthScore, response.Summary.Grade),
		"Analysis Duration": fmt.Sprintf("%.2fs", float64(response.Duration)/1000.0),
		"Generated":         response.GeneratedAt.Format(time.RFC3339),
	}
	fmt.Fprint(writer, utils.FormatSummaryStats(healthStats))

	// File statistics
	fmt.Fprint(writer, utils.FormatFileStats(
		response.Summary.AnalyzedFiles,
		response.Summary.TotalFiles,
		response.Summary.TotalFiles-response.Summary.AnalyzedFiles))

	// Analysis modules results
	if response.Summary.ComplexityEnabled {
		fmt.Fprint(writer, utils.FormatSectionHeader("COMPLEXITY ANALYSIS"))
		fmt.Fprint(writer, utils.FormatLabelWithIndent(SectionPadding, "Total Functions", response.Summary.TotalFunctions))
		fmt.Fprint(writer, utils.FormatLabelWithIndent(SectionPadding, "Average Complexity", fmt.Sprintf("%.1f", response.Summary.AverageComplexity)))
		fmt.Fprint(writer, utils.FormatLabelWithIndent(SectionPadding, "High Complexity Count", response.Summary.HighComplexityCount))
		fmt.Fprint(writer, utils.FormatSectionSeparator())
	}

	if response.Summary.DeadCodeEnabled {
		fmt.Fprint(writer, utils.FormatSectionHeader("DEAD CODE DETECTION"))
		fmt.Fprint(writer, utils.FormatLabelWithIndent(SectionPadding, "Total Issues", response.Summary.DeadCodeCount))
		fmt.Fprint(writer, utils.FormatLabelWithIndent(SectionPadding, "Critical Issues", response.Summary.CriticalDeadCode))
		fmt.Fprint(writer, utils.FormatSectionSeparator())
	}

	// Recommendations
	fmt.Fprint(writer, utils.FormatSectionHeader("RECOMMENDATIONS"))
	recommendationCount := 0

	if response.Summary.HighComplexityCount > 0 {
		fmt.Fprint(writer, utils.FormatLabelWithIndent(SectionPadding, "•",
			fmt.Sprintf("Refactor %d high-complexity functions", response.Summary.HighComplexityCount)))
		recommendationCount++
	}
	if response.Summary.DeadCodeCount > 0 {
		fmt.Fprint(writer, utils.FormatLabelWithIndent(SectionPadding, "•",
			fmt.Sprintf("Remove %d dead code segments", response.Summary.DeadCodeCount)))
		recommendationCount++
	}

	if recommendationCount == 0 {
		fmt.Fprint(writer, utils.FormatLabelWithIndent(SectionPadding, "Status", "No major issues detected"))
	}

	return nil
}

// writeCSV formats the response as CSV (summary only)
func (f *AnalyzeFormatter) writeCSV(response *domain.AnalyzeResponse, writer io.Writer) error {
	// Write header
	fmt.Fprintf(writer, "Metric,Value\n")

	// Write summary metrics
	fmt.Fprintf(writer, "Health Score,%d\n", response.Summary.HealthScore)
	fmt.Fprintf(writer, "Grade,%s\n", response.Summary.Grade)
	fmt.Fprintf(writer, "Total Files,%d\n", response.Summary.TotalFiles)
	fmt.Fprintf(writer, "Analyzed Files,%d\n", response.Summary.AnalyzedFiles)
	fmt.Fprintf(writer, "Average Complexity,%.2f\n", response.Summary.AverageComplexity)
	fmt.Fprintf(writer, "High Complexity Count,%d\n", response.Summary.HighComplexityCount)
	fmt.Fprintf(writer, "Dead Code Count,%d\n", response.Summary.DeadCodeCount)
	fmt.Fprintf(writer, "Critical Dead Code,%d\n", response.Summary.CriticalDeadCode)

	return nil
}

// writeHTML formats the response as HTML
func (f *AnalyzeFormatter) writeHTML(response *domain.AnalyzeResponse, writer io.Writer) error {
	tmpl := template.Must(template.New("analyze").Parse(analyzeHTMLTemplate))
	return tmpl.Execute(writer, response)
}

// HTML template for unified report
const analyzeHTMLTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>pycfg Analysis Report</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            min-height: 100vh;
        }
        .container {
            max-width: 1200px;
            margin: 0 auto;
            padding: 20px;
        }
        .header {
            background: white;
            border-radius: 10px;
            padding: 30px;
            margin-bottom: 20px;
            box-shadow: 0 10px 30px rgba(0,0,0,0.1);
        }
        .header h1 {
            color: #667eea;
            margin-bottom: 10px;
        }
        .score-badge {
            display: inline-block;
            padding: 10px 20px;
            border-radius: 50px;
            font-size: 24px;
            font-weight: bold;
            margin: 10px 0;
        }
        .grade-a { background: #4caf50; color: white; }
        .grade-b { background: #8bc34a; color: white; }
        .grade-c { background: #ff9800; color: white; }
        .grade-d { background: #ff5722; color: white; }
        .grade-f { background: #f44336; color: white; }

        .tabs {
            background: white;
            border-radius: 10px;
            overflow: hidden;
            box-shadow: 0 10px 30px rgba(0,0,0,0.1);
        }
        .tab-buttons {
            display: flex;
            background: #f5f5f5;
        }
        .tab-button {
            flex: 1;
            padding: 15px;
            border: none;
            background: transparent;
            cursor: pointer;
            font-size: 16px;
            transition: all 0.3s;
        }
        .tab-button.active {
            background: white;
            color: #667eea;
            font-weight: bold;
        }
        .tab-content {
            display: none;
            padding: 30px;
        }
        .tab-content.active {
            display: block;
        }

        .metric-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
            gap: 20px;
            margin: 20px 0;
        }
        .metric-card {
            background: #f8f9fa;
            padding: 20px;
            border-radius: 8px;
            text-align: center;
        }
        .metric-value {
            font-size: 32px;
            font-weight: bold;
            color: #667eea;
        }
        .metric-label {
            color: #666;
            margin-top: 5px;
        }

        .table {
            width: 100%;
            border-collapse: collapse;
            margin: 20px 0;
        }
        .table th, .table td {
            padding: 12px;
            text-align: left;
            border-bottom: 1px solid #ddd;
        }
        .table th {
            background: #f8f9fa;
            font-weight: 600;
        }

        .risk-low { color: #4caf50; }
        .risk-medium { color: #ff9800; }
        .risk-high { color: #f44336; }

        .severity-critical { color: #f44336; }
        .severity-warning { color: #ff9800; }
        .severity-info { color: #2196f3; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>pycfg Analysis Report</h1>
            <p>Generated: {{.GeneratedAt.Format "2006-01-02 15:04:05"}}</p>
            <div class="score-badge grade-{{if eq .Summary.Grade "A"}}a{{else if eq .Summary.Grade "B"}}b{{else if eq .Summary.Grade "C"}}c{{else if eq .Summary.Grade "D"}}d{{else}}f{{end}}">
                Health Score: {{.Summary.HealthScore}}/100 (Grade: {{.Summary.Grade}})
            </div>
        </div>

        <div class="tabs">
            <div class="tab-buttons">
                <button class="tab-button active" onclick="showTab('summary', this)">Summary</button>
                {{if .Summary.ComplexityEnabled}}
                <button class="tab-button" onclick="showTab('complexity', this)">Complexity</button>
                {{end}}
                {{if .Summary.DeadCodeEnabled}}
                <button class="tab-button" onclick="showTab('deadcode', this)">Dead Code</button>
                {{end}}
            </div>

            <div id="summary" class="tab-content active">
                <h2>Analysis Summary</h2>
                <div class="metric-grid">
                    <div class="metric-card">
                        <div class="metric-value">{{.Summary.TotalFiles}}</div>
                        <div class="metric-label">Total Files</div>
                    </div>
                    <div class="metric-card">
                        <div class="metric-value">{{.Summary.AnalyzedFiles}}</div>
                        <div class="metric-label">Analyzed Files</div>
                    </div>
                    <div class="metric-card">
                        <div class="metric-value">{{printf "%.2f" .Summary.AverageComplexity}}</div>
                        <div class="metric-label">Avg Complexity</div>
                    </div>
                    <div class="metric-card">
                        <div class="metric-value">{{.Summary.DeadCodeCount}}</div>
                        <div class="metric-label">Dead Code Issues</div>
                    </div>
                </div>
            </div>

            {{if .Summary.ComplexityEnabled}}
            <div id="complexity" class="tab-content">
                <h2>Complexity Analysis</h2>
                {{if .Complexity}}
                <div class="metric-grid">
                    <div class="metric-card">
                        <div class="metric-value">{{len .Complexity.Functions}}</div>
                        <div class="metric-label">Total Functions</div>
                    </div>
                    <div class="metric-card">
                        <div class="metric-value">{{printf "%.2f" .Complexity.Summary.AverageComplexity}}</div>
                        <div class="metric-label">Average</div>
                    </div>
                    <div class="metric-card">
                        <div class="metric-value">{{.Complexity.Summary.MaxComplexity}}</div>
                        <div class="metric-label">Maximum</div>
                    </div>
                </div>

                <h3>Top Complex Functions</h3>
                <table class="table">
                    <thead>
                        <tr>
                            <th>Function</th>
                            <th>File</th>
                            <th>Complexity</th>
                            <th>Risk</th>
                        </tr>
                    </thead>
                    <tbody>
                        {{range $i, $f := .Complexity.Functions}}
                        {{if lt $i 10}}
                        <tr>
                            <td>{{$f.Name}}</td>
                            <td>{{$f.FilePath}}</td>
                            <td>{{$f.Metrics.Complexity}}</td>
                            <td class="risk-{{$f.RiskLevel}}">{{$f.RiskLevel}}</td>
                        </tr>
                        {{end}}
                        {{end}}
                    </tbody>
                </table>
                {{if gt (len .Complexity.Functions) 10}}
                <p style="color: #666; margin-top: 10px;">Showing top 10 of {{len .Complexity.Functions}} functions</p>
                {{end}}
                {{end}}
            </div>
            {{end}}

            {{if .Summary.DeadCodeEnabled}}
            <div id="deadcode" class="tab-content">
                <h2>Dead Code Detection</h2>
                {{if .DeadCode}}
                <div class="metric-grid">
                    <div class="metric-card">
                        <div class="metric-value">{{.DeadCode.Summary.TotalFindings}}</div>
                        <div class="metric-label">Total Issues</div>
                    </div>
                    <div class="metric-card">
                        <div class="metric-value">{{.DeadCode.Summary.CriticalFindings}}</div>
                        <div class="metric-label">Critical</div>
                    </div>
                    <div class="metric-card">
                        <div class="metric-value">{{.DeadCode.Summary.WarningFindings}}</div>
                        <div class="metric-label">Warnings</div>
                    </div>
                </div>

                {{if gt .DeadCode.Summary.TotalFindings 0}}
                <h3>Top Dead Code Issues</h3>
                <table class="table">
                    <thead>
                        <tr>
                            <th>File</th>
                            <th>Function</th>
                            <th>Lines</th>
                            <th>Severity</th>
                            <th>Reason</th>
                        </tr>
                    </thead>
                    <tbody>
                        {{range $file := .DeadCode.Files}}
                        {{range $func := $file.Functions}}
                        {{range $i, $finding := $func.Findings}}
                        {{if lt $i 10}}
                        <tr>
                            <td>{{$finding.Location.FilePath}}</td>
                            <td>{{$finding.FunctionName}}</td>
                            <td>{{$finding.Location.StartLine}}-{{$finding.Location.EndLine}}</td>
                            <td class="severity-{{$finding.Severity}}">{{$finding.Severity}}</td>
                            <td>{{$finding.Reason}}</td>
                        </tr>
                        {{end}}
                        {{end}}
                        {{end}}
                        {{end}}
                    </tbody>
                </table>
                {{if gt .DeadCode.Summary.TotalFindings 10}}
                <p style="color: #666; margin-top: 10px;">Showing top 10 of {{.DeadCode.Summary.TotalFindings}} dead code issues</p>
                {{end}}
                {{else}}
                <p style="color: #4caf50; font-weight: bold; margin-top: 20px;">✓ No dead code detected</p>
                {{end}}
                {{end}}
            </div>
            {{end}}
        </div>
    </div>

    <script>
        function showTab(tabName, el) {
            // Hide all tabs
            const tabs = document.querySelectorAll('.tab-content');
            tabs.forEach(tab => tab.classList.remove('active'));

            // Remove active from all buttons
            const buttons = document.querySelectorAll('.tab-button');
            buttons.forEach(btn => btn.classList.remove('active'));

            // Show selected tab
            document.getElementById(tabName).classList.add('active');

            // Mark button as active
            if (el) { el.classList.add('active'); }
        }
    </script>
</body>
</html>`
