package forecast

// RampFunc scales the throughput drawn for a given period (1-based). It is
// the hook for team ramp-up curves; the exact curve shape is intentionally
// pluggable because no canonical definition exists for it.
type RampFunc func(period int) float64

// FlatRamp is the default: no adjustment.
func FlatRamp(int) float64 { return 1.0 }
