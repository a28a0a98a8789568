package visualize

import (
	"fmt"
	"html/template"
	"strings"
)

// htmlTemplate embeds a rendered Mermaid flowchart in a standalone page via
// the mermaid.js CDN build, matching the plain html/template idiom used
// throughout the rest of the codebase's HTML output.
const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>CFG: {{.Title}}</title>
    <script src="https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.min.js"></script>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            margin: 2rem;
            color: #333;
        }
        h1 {
            font-size: 1.25rem;
            margin-bottom: 1rem;
        }
        .mermaid {
            border: 1px solid #ddd;
            border-radius: 8px;
            padding: 1rem;
        }
    </style>
</head>
<body>
    <h1>{{.Title}}</h1>
    <pre class="mermaid">
{{.Diagram}}
    </pre>
    <script>mermaid.initialize({startOnLoad: true});</script>
</body>
</html>
`

// HTMLData holds the values substituted into htmlTemplate.
type HTMLData struct {
	Title   string
	Diagram string
}

// ToHTML wraps a Mermaid diagram (as produced by ToMermaid) in a
// self-contained HTML page that renders it client-side via mermaid.js.
func ToHTML(title string, diagram string) (string, error) {
	tmpl, err := template.New("cfg").Parse(htmlTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse CFG HTML template: %w", err)
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, HTMLData{Title: title, Diagram: diagram}); err != nil {
		return "", fmt.Errorf("failed to render CFG HTML: %w", err)
	}

	return b.String(), nil
}
