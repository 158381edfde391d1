// Package report renders a self-contained HTML forecast report.
package report

import (
	"fmt"
	"html/template"
	"os"
	"strings"
	"time"

	"github.com/pkg/browser"

	"flowcast/internal/forecast"
	"flowcast/internal/visuals"
)

type reportData struct {
	Title       string
	GeneratedAt string
	Result      *forecast.Result
	Charts      []string
	Warnings    []string
	Insights    []string
}

// Write renders the report for a forecast result into an HTML file at path.
// Charts are Mermaid definitions rendered client-side; the file needs no
// other assets.
func Write(path string, res *forecast.Result, history []int) error {
	title := "Flow Forecast"
	if res.ProjectName != "" {
		title = fmt.Sprintf("Flow Forecast: %s", res.ProjectName)
	}

	var charts []string
	for _, chart := range []string{
		visuals.GenerateDistributionChart(res),
		visuals.GenerateThroughputChart(history),
		visuals.GenerateTrendChart(history, res.Trend),
	} {
		if chart == "" {
			continue
		}
		charts = append(charts, stripFence(chart))
	}

	data := reportData{
		Title:       title,
		GeneratedAt: time.Now().Format(time.RFC1123),
		Result:      res,
		Charts:      charts,
		Warnings:    res.Warnings,
		Insights:    res.Insights,
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	if err := reportTemplate.Execute(f, data); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return nil
}

// Open opens a generated report in the default browser.
func Open(path string) error {
	return browser.OpenFile(path)
}

// stripFence removes the markdown code fence around a Mermaid chart, leaving
// the raw definition for the client-side renderer.
func stripFence(chart string) string {
	chart = strings.TrimPrefix(chart, "```mermaid\n")
	chart = strings.TrimSuffix(chart, "```")
	return strings.TrimSpace(chart)
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script type="module">
import mermaid from "https://cdn.jsdelivr.net/npm/mermaid@11/dist/mermaid.esm.min.mjs";
mermaid.initialize({ startOnLoad: true, theme: "neutral" });
</script>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; max-width: 960px; margin: 2rem auto; padding: 0 1rem; color: #333; }
h1 { border-bottom: 2px solid #fe8019; padding-bottom: .3rem; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #ccc; padding: .4rem .9rem; text-align: right; }
th { background: #f5f5f5; }
.meta { color: #888; font-size: .9rem; }
.warning { background: #fff8e1; border-left: 4px solid #fabd2f; padding: .5rem .8rem; margin: .5rem 0; }
.insight { background: #e8f4fd; border-left: 4px solid #83a598; padding: .5rem .8rem; margin: .5rem 0; }
.feasible { color: #2e7d32; font-weight: bold; }
.partial { color: #b26a00; font-weight: bold; }
.infeasible { color: #c62828; font-weight: bold; }
pre.mermaid { background: none; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="meta">Generated {{.GeneratedAt}} · {{.Result.Backlog}} items · {{.Result.Trials}} trials · seed {{.Result.Seed}}</p>

<h2>Completion Forecast</h2>
<table>
<tr><th>Confidence</th><th>Periods</th>{{if .Result.Cost}}<th>Cost</th>{{end}}</tr>
<tr><td>P50</td><td>{{.Result.Periods.P50}}</td>{{if .Result.Cost}}<td>{{printf "%.0f" .Result.Cost.P50}}</td>{{end}}</tr>
<tr><td>P85</td><td><strong>{{.Result.Periods.P85}}</strong></td>{{if .Result.Cost}}<td><strong>{{printf "%.0f" .Result.Cost.P85}}</strong></td>{{end}}</tr>
<tr><td>P95</td><td>{{.Result.Periods.P95}}</td>{{if .Result.Cost}}<td>{{printf "%.0f" .Result.Cost.P95}}</td>{{end}}</tr>
</table>

{{if .Result.Deadline}}
<h2>Deadline</h2>
<p>Classification: <span class="{{.Result.Deadline.Classification}}">{{.Result.Deadline.Classification}}</span>
(P85 needs {{.Result.Deadline.P85Periods}} of {{.Result.Deadline.PeriodsToDeadline}} available periods)</p>
<p>Completable by deadline at 85% confidence: {{.Result.Deadline.CompletableItems}} items ({{printf "%.1f" .Result.Deadline.CompletablePct}}%).</p>
{{end}}

{{if .Result.Trend}}
<h2>Trend Cross-Check</h2>
<p>Least-squares projection: {{.Result.Trend.Periods}} periods
(optimistic {{.Result.Trend.Optimistic}}, conservative {{.Result.Trend.Conservative}}).</p>
{{end}}

{{range .Warnings}}<div class="warning">{{.}}</div>{{end}}
{{range .Insights}}<div class="insight">{{.}}</div>{{end}}

{{range .Charts}}
<pre class="mermaid">{{.}}</pre>
{{end}}

</body>
</html>
`))
