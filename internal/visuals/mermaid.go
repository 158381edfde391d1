// Package visuals renders Mermaid charts from forecast results. The output
// is fenced markdown, suitable for MCP clients and the HTML report alike.
package visuals

import (
	"fmt"
	"math"
	"strings"

	"flowcast/internal/forecast"
)

// GenerateDistributionChart creates a Mermaid xychart-beta for the
// completion-period distribution of a simulation run.
func GenerateDistributionChart(result *forecast.Result) string {
	if result == nil || len(result.Distribution) == 0 {
		return ""
	}

	// Subsample buckets if the chart is too wide for Mermaid's layout engine.
	// Mermaid xychart starts overflowing/overlapping text around 60 points.
	buckets := result.Distribution
	subsampleRate := 1
	if len(buckets) > 60 {
		subsampleRate = int(math.Ceil(float64(len(buckets)) / 60.0))
	}

	var labels []string
	var values []string
	maxVal := 0
	for i, b := range buckets {
		if i%subsampleRate != 0 && i != len(buckets)-1 {
			continue
		}
		labels = append(labels, fmt.Sprintf("%d", b.Periods))
		values = append(values, fmt.Sprintf("%d", b.Count))
		if b.Count > maxVal {
			maxVal = b.Count
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title \"Completion Distribution (P50=%d P85=%d P95=%d)\"\n",
		result.Periods.P50, result.Periods.P85, result.Periods.P95))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Trials\" 0 --> %d\n", maxVal+int(math.Max(1, float64(maxVal)*0.2))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateThroughputChart creates a Mermaid bar chart of the historical
// throughput samples that fed the simulation.
func GenerateThroughputChart(history []int) string {
	if len(history) == 0 {
		return ""
	}

	var labels []string
	var values []string
	maxVal := 0
	for i, count := range history {
		labels = append(labels, fmt.Sprintf("%d", i+1))
		values = append(values, fmt.Sprintf("%d", count))
		if count > maxVal {
			maxVal = count
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Historical Throughput\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Items Delivered\" 0 --> %d\n", maxVal+int(math.Max(1, float64(maxVal)*0.2))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateTrendChart overlays the throughput samples with the fitted trend
// line, giving a visual read on how well the regression tracks the data.
func GenerateTrendChart(history []int, trend *forecast.TrendEstimate) string {
	if len(history) == 0 || trend == nil {
		return ""
	}

	var labels []string
	var values []string
	var fitted []string
	maxY := 0.0
	for i, count := range history {
		t := float64(i + 1)
		fit := trend.Intercept + trend.Slope*t
		if fit < 0 {
			fit = 0
		}
		labels = append(labels, fmt.Sprintf("%d", i+1))
		values = append(values, fmt.Sprintf("%d", count))
		fitted = append(fitted, fmt.Sprintf("%.1f", fit))
		if float64(count) > maxY {
			maxY = float64(count)
		}
		if fit > maxY {
			maxY = fit
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Throughput Trend (Least Squares)\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Items Delivered\" 0 --> %d\n", int(math.Ceil(maxY*1.2))+1))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(values, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(fitted, ", ")))
	sb.WriteString("```")
	return sb.String()
}
