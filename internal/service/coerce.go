package service

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// UnknownID is a positive id no stored entity ever receives. Positive values
// that are not whole ids coerce to it, so they pass the range checks and then
// fail the lookup.
const UnknownID int64 = math.MaxInt64

// ToNumber converts a loosely typed value to a finite float64. Nil reads as
// zero. Strings are trimmed and parsed, with the empty string reading as zero
// and unsigned 0x, 0o and 0b literals read in their base; booleans read as 0
// or 1. Anything else, including NaN and infinities, yields fallback.
func ToNumber(value any, fallback float64) float64 {
	var f float64
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case int32:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return fallback
		}
		f = parsed
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0
		}
		if base := radix(s); base != 0 {
			if strings.Contains(s, "_") {
				return fallback
			}
			parsed, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return fallback
			}
			return float64(parsed)
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fallback
		}
		f = parsed
	case bool:
		if v {
			return 1
		}
		return 0
	default:
		return fallback
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fallback
	}
	return f
}

// radix reports the base named by a 0x, 0o or 0b prefix, or 0 without one.
func radix(s string) int {
	if len(s) < 3 || s[0] != '0' {
		return 0
	}
	switch s[1] {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	case 'b', 'B':
		return 2
	}
	return 0
}

// ToID converts a loosely typed value to an integer id. Unusable values yield
// fallback. A number of at least 1 that is not a whole id in int64 range
// yields UnknownID, so it still reads as an id and matches nothing.
func ToID(value any, fallback int64) int64 {
	f := ToNumber(value, math.NaN())
	if math.IsNaN(f) {
		return fallback
	}
	if f >= 1 {
		if f != math.Trunc(f) || f >= math.MaxInt64 {
			return UnknownID
		}
		return int64(f)
	}
	if f != math.Trunc(f) || f < math.MinInt64 {
		return fallback
	}
	return int64(f)
}

// ToText converts a loosely typed value to a string. Nil reads as empty.
func ToText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(data)
	}
}

func normalizeCategory(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
