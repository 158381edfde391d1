package forecast

import "sort"

// DistBucket is one bar of the completion-period distribution.
type DistBucket struct {
	Periods int `json:"periods"`
	Count   int `json:"count"`
}

// Result is the full forecast report shared by every surface (CLI, MCP,
// HTML report).
type Result struct {
	ProjectName string `json:"project_name,omitempty"`
	Backlog     int    `json:"backlog"`
	TeamSize    int    `json:"team_size"`
	Trials      int    `json:"trials"`
	Seed        int64  `json:"seed"`
	Degraded    bool   `json:"degraded,omitempty"`

	Periods  Percentiles         `json:"periods"`
	Cost     *CostPercentiles    `json:"cost,omitempty"`
	Deadline *DeadlineAssessment `json:"deadline,omitempty"`
	Trend    *TrendEstimate      `json:"trend,omitempty"`

	Stats        SampleStats  `json:"sample_stats"`
	Distribution []DistBucket `json:"distribution,omitempty"`

	Warnings []string `json:"warnings,omitempty"`
	Insights []string `json:"insights,omitempty"`
}

// distribution aggregates raw per-trial period counts into sorted buckets.
func distribution(periods []int) []DistBucket {
	counts := make(map[int]int)
	for _, p := range periods {
		counts[p]++
	}
	buckets := make([]DistBucket, 0, len(counts))
	for p, c := range counts {
		buckets = append(buckets, DistBucket{Periods: p, Count: c})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Periods < buckets[j].Periods })
	return buckets
}
