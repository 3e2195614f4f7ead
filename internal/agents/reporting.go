package agents

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/dyluth/roost/pkg/blackboard"
)

// dashboardTemplate renders the mission dashboard. Deliberately plain: the
// report is a static artifact, not a served application.
var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>roost mission report</title>
  <style>
    body { font-family: sans-serif; margin: 2em; }
    table { border-collapse: collapse; }
    th, td { border: 1px solid #999; padding: 0.3em 0.8em; text-align: left; }
    .accepted { color: #2a7d2a; }
    .rejected { color: #b33; }
  </style>
</head>
<body>
  <h1>Mission report</h1>
  <p>Generated {{.GeneratedAt}}</p>
  <p>{{.SampleCount}} samples analyzed, {{.AcceptedCount}} accepted.</p>
  <table>
    <tr><th>Sample</th><th>Confidence</th><th>Verdict</th></tr>
    {{range .Results}}
    <tr>
      <td>{{.SampleID}}</td>
      <td>{{printf "%.2f" .Confidence}}</td>
      {{if .Accepted}}<td class="accepted">accepted</td>{{else}}<td class="rejected">rejected</td>{{end}}
    </tr>
    {{end}}
  </table>
</body>
</html>
`))

// dashboardData is the template context for one report.
type dashboardData struct {
	GeneratedAt   string
	SampleCount   int
	AcceptedCount int
	Results       []AnalysisResult
}

// ReportingAgent renders the analysis results into an HTML dashboard on
// disk and publishes its URL.
type ReportingAgent struct {
	outputDir string
}

// NewReportingAgent creates a reporting agent writing into outputDir.
func NewReportingAgent(outputDir string) *ReportingAgent {
	return &ReportingAgent{outputDir: outputDir}
}

// Name identifies the agent in logs.
func (a *ReportingAgent) Name() string {
	return "reporting"
}

// Execute reads analysis_results from the board, writes dashboard.html, and
// returns the report URL record.
func (a *ReportingAgent) Execute(ctx context.Context, board blackboard.Board) (any, error) {
	entry, err := board.Query(ctx, blackboard.KeyAnalysisResults)
	if err != nil {
		return nil, fmt.Errorf("analysis output not available: %w", err)
	}

	var results []AnalysisResult
	if err := entry.Decode(&results); err != nil {
		return nil, err
	}

	accepted := 0
	for _, r := range results {
		if r.Accepted {
			accepted++
		}
	}

	if err := os.MkdirAll(a.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}

	path := filepath.Join(a.outputDir, "dashboard.html")
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	data := dashboardData{
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		SampleCount:   len(results),
		AcceptedCount: accepted,
		Results:       results,
	}
	if err := dashboardTemplate.Execute(f, data); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	return ReportOutput{URL: "file://" + absPath}, nil
}
