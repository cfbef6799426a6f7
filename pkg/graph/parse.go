package graph

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// DefaultWeight is used whenever a raw weight is missing or unusable.
const DefaultWeight = 1.0

// ParseWeight coerces a raw weight into a usable edge cost.
// Missing, non-numeric, NaN, infinite and negative values all become
// DefaultWeight. Zero is kept.
func ParseWeight(raw any) float64 {
	w, ok := toFloat(raw)
	if !ok || math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return DefaultWeight
	}
	return w
}

// ParseSign derives an edge polarity. The raw sign field wins when it can be
// read; otherwise the sign of the raw weight is used; otherwise Positive.
func ParseSign(rawSign, rawWeight any) Sign {
	if s, ok := signOf(rawSign); ok {
		return s
	}
	if w, ok := toFloat(rawWeight); ok && !math.IsNaN(w) {
		if w < 0 {
			return Negative
		}
		if w > 0 {
			return Positive
		}
	}
	return Positive
}

func signOf(raw any) (Sign, bool) {
	switch v := raw.(type) {
	case nil:
		return 0, false
	case Sign:
		if v == Negative || v == Positive {
			return v, true
		}
		return 0, false
	case bool:
		if v {
			return Positive, true
		}
		return Negative, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "+", "+1", "1", "positive", "pos", "friend":
			return Positive, true
		case "-", "-1", "negative", "neg", "enemy":
			return Negative, true
		}
	}

	f, ok := toFloat(raw)
	if !ok || math.IsNaN(f) || f == 0 {
		return 0, false
	}
	if f < 0 {
		return Negative, true
	}
	return Positive, true
}

func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func parseBool(raw any) bool {
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && b
	default:
		return false
	}
}
