package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToFloat reads a loosely typed form value as a finite number.
// Accepts Go numeric types, json.Number and numeric strings; NaN and
// infinities are rejected.
func ToFloat(value any) (float64, error) {
	f, err := toFloat(value)
	if err != nil {
		return 0, err
	}
	if !IsFinite(f) {
		return 0, fmt.Errorf("not a finite number: %v", value)
	}
	return f, nil
}

// IsFinite reports whether f is neither NaN nor an infinity
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("unsupported value type %T", value)
	}
}

// RoundTo rounds a float to specified decimal places
func RoundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}
