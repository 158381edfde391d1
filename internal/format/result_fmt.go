package format

import (
	"fmt"
	"strings"

	"flowcast/internal/forecast"
	"flowcast/internal/scenario"
)

// FormatResult renders a full forecast result as a styled terminal card.
func FormatResult(res *forecast.Result) string {
	var sections []string

	title := "Forecast"
	if res.ProjectName != "" {
		title = fmt.Sprintf("Forecast: %s", res.ProjectName)
	}

	rows := [][]string{
		{"P50", fmt.Sprintf("%d periods", res.Periods.P50), Dim("even odds")},
		{"P85", Bold(fmt.Sprintf("%d periods", res.Periods.P85)), Dim("commitment grade")},
		{"P95", fmt.Sprintf("%d periods", res.Periods.P95), Dim("conservative")},
	}
	if res.Cost != nil {
		rows[0] = append(rows[0], fmt.Sprintf("%.0f", res.Cost.P50))
		rows[1] = append(rows[1], Bold(fmt.Sprintf("%.0f", res.Cost.P85)))
		rows[2] = append(rows[2], fmt.Sprintf("%.0f", res.Cost.P95))
		sections = append(sections, RenderTable([]string{"LEVEL", "DURATION", "", "COST"}, rows))
	} else {
		sections = append(sections, RenderTable([]string{"LEVEL", "DURATION", ""}, rows))
	}

	meta := fmt.Sprintf("%d items · %d trials · seed %d", res.Backlog, res.Trials, res.Seed)
	if res.Degraded {
		meta += " · " + StyleYellow.Render("degraded")
	}
	sections = append(sections, Dim(meta))

	if res.Deadline != nil {
		sections = append(sections, FormatDeadline(res.Deadline))
	}
	if res.Trend != nil {
		sections = append(sections, FormatTrend(res.Trend))
	}

	for _, w := range res.Warnings {
		sections = append(sections, StyleYellow.Render("⚠ ")+w)
	}
	for _, in := range res.Insights {
		sections = append(sections, StyleBlue.Render("ℹ ")+in)
	}

	return RenderBox(title, strings.Join(sections, "\n\n"))
}

// FormatDeadline renders a deadline assessment section.
func FormatDeadline(a *forecast.DeadlineAssessment) string {
	var b strings.Builder
	b.WriteString(Header("Deadline"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  P85 needs %d of %d available periods\n",
		FeasibilityIndicator(a.Classification), a.P85Periods, a.PeriodsToDeadline))
	b.WriteString(fmt.Sprintf("Completable by deadline at 85%% confidence: %d items (%.1f%%)",
		a.CompletableItems, a.CompletablePct))
	return b.String()
}

// FormatTrend renders the trend cross-check section.
func FormatTrend(t *forecast.TrendEstimate) string {
	var b strings.Builder
	b.WriteString(Header("Trend Cross-Check"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Least-squares projection: %d periods (%d–%d)\n",
		t.Periods, t.Optimistic, t.Conservative))
	b.WriteString(Dim(fmt.Sprintf("slope %.2f items/period, residual σ %.2f", t.Slope, t.ResidualStdDev)))
	return b.String()
}

// FormatDistribution renders the completion distribution as a unicode bar
// sparkline, one row per period bucket.
func FormatDistribution(res *forecast.Result) string {
	if len(res.Distribution) == 0 {
		return ""
	}

	maxCount := 0
	for _, b := range res.Distribution {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}

	const barWidth = 40
	var b strings.Builder
	b.WriteString(Header("Distribution"))
	b.WriteString("\n")
	for _, bucket := range res.Distribution {
		barLen := bucket.Count * barWidth / maxCount
		bar := strings.Repeat("█", barLen)
		style := StyleDim
		switch {
		case bucket.Periods <= res.Periods.P50:
			style = StyleGreen
		case bucket.Periods <= res.Periods.P85:
			style = StyleYellow
		case bucket.Periods <= res.Periods.P95:
			style = StyleRed
		}
		b.WriteString(fmt.Sprintf("%4d  %s %s\n", bucket.Periods, style.Render(bar), Dim(fmt.Sprintf("%d", bucket.Count))))
	}
	return b.String()
}

// FormatScenarioList renders saved scenarios in a bordered table.
func FormatScenarioList(scenarios []*scenario.Scenario) string {
	if len(scenarios) == 0 {
		return Dim("No saved scenarios.")
	}

	headers := []string{"NAME", "BACKLOG", "SAMPLES", "RISKS", "DEADLINE", "UPDATED"}
	rows := make([][]string, 0, len(scenarios))
	for _, s := range scenarios {
		deadline := Dim("--")
		if s.Deadline != nil {
			deadline = s.Deadline.Format("2006-01-02")
		}
		rows = append(rows, []string{
			Bold(s.Name),
			fmt.Sprintf("%d", s.Backlog),
			fmt.Sprintf("%d", len(s.History)),
			fmt.Sprintf("%d", len(s.Risks)),
			deadline,
			Dim(s.UpdatedAt.Format("2006-01-02")),
		})
	}

	return RenderBox("Scenarios", RenderTable(headers, rows))
}
