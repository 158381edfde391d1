package mcp

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"flowcast/internal/forecast"
)

func asString(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// asInt coerces a JSON argument into an int. Unparseable values are rejected
// rather than silently read as zero; a zero that reaches the forecast must be
// one the caller actually sent.
func asInt(v interface{}, field string) (int, error) {
	switch val := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return int(val), nil
	case int:
		return val, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, &forecast.ValidationError{Field: field, Reason: fmt.Sprintf("expected an integer, got %q", val)}
		}
		return n, nil
	default:
		return 0, &forecast.ValidationError{Field: field, Reason: fmt.Sprintf("expected an integer, got %T", v)}
	}
}

func asFloat(v interface{}, field string) (float64, error) {
	switch val := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return val, nil
	case int:
		return float64(val), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, &forecast.ValidationError{Field: field, Reason: fmt.Sprintf("expected a number, got %q", val)}
		}
		return f, nil
	default:
		return 0, &forecast.ValidationError{Field: field, Reason: fmt.Sprintf("expected a number, got %T", v)}
	}
}

func asBool(v interface{}) bool {
	b, _ := v.(bool)
	return b
}

// asIntSlice coerces a JSON array into []int. JSON numbers arrive as float64.
func asIntSlice(v interface{}) ([]int, error) {
	if v == nil {
		return nil, nil
	}
	arr, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected an array of integers, got %T", v)
	}
	out := make([]int, 0, len(arr))
	for _, e := range arr {
		f, ok := e.(float64)
		if !ok {
			return nil, fmt.Errorf("expected an integer, got %v", e)
		}
		out = append(out, int(f))
	}
	return out, nil
}

func asRisks(v interface{}) ([]forecast.RiskEvent, error) {
	if v == nil {
		return nil, nil
	}
	arr, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected an array of risk objects, got %T", v)
	}
	risks := make([]forecast.RiskEvent, 0, len(arr))
	for i, e := range arr {
		obj, ok := e.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("risk %d: expected an object, got %T", i, e)
		}
		prob, err := asFloat(obj["probability"], fmt.Sprintf("risk %d probability", i))
		if err != nil {
			return nil, err
		}
		opt, err := asInt(obj["optimistic"], fmt.Sprintf("risk %d optimistic", i))
		if err != nil {
			return nil, err
		}
		likely, err := asInt(obj["most_likely"], fmt.Sprintf("risk %d most_likely", i))
		if err != nil {
			return nil, err
		}
		pess, err := asInt(obj["pessimistic"], fmt.Sprintf("risk %d pessimistic", i))
		if err != nil {
			return nil, err
		}
		risks = append(risks, forecast.RiskEvent{
			Name:        asString(obj["name"]),
			Probability: prob,
			Optimistic:  opt,
			MostLikely:  likely,
			Pessimistic: pess,
		})
	}
	return risks, nil
}

// asDate parses an optional YYYY-MM-DD argument. Missing or empty values
// return nil without error.
func asDate(v interface{}, field string) (*time.Time, error) {
	s := asString(v)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: expected YYYY-MM-DD", field, s)
	}
	return &t, nil
}
