package billing

import (
	"encoding/json"
	"math"
	"strconv"
)

// NormalizeAmount coerces a heterogeneous money value into a canonical
// non-negative amount in minor currency units. Money fields originate from
// free-text form input, so malformed values degrade to zero instead of
// failing; correctness is enforced later by payment validation.
//
// Normalization is idempotent: NormalizeAmount(NormalizeAmount(v)) always
// equals NormalizeAmount(v).
func NormalizeAmount(v any) int64 {
	switch n := v.(type) {
	case nil:
		return 0
	case int64:
		return clampAmount(n)
	case int:
		return clampAmount(int64(n))
	case int32:
		return clampAmount(int64(n))
	case int16:
		return clampAmount(int64(n))
	case int8:
		return clampAmount(int64(n))
	case uint64:
		if n > math.MaxInt64 {
			return math.MaxInt64
		}
		return int64(n)
	case uint:
		return NormalizeAmount(uint64(n))
	case uint32:
		return int64(n)
	case uint16:
		return int64(n)
	case uint8:
		return int64(n)
	case float64:
		// int64(n) is implementation-defined once n leaves the int64
		// range, so non-finite and oversized values are caught first.
		if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
			return 0
		}
		if n >= math.MaxInt64 {
			return math.MaxInt64
		}
		return int64(n)
	case float32:
		return NormalizeAmount(float64(n))
	case json.Number:
		return NormalizeString(n.String())
	case string:
		return NormalizeString(n)
	default:
		return 0
	}
}

// NormalizeString extracts the ASCII digit run from s and parses it as a
// base-10 integer. Thousands separators, decimal marks, currency symbols and
// any other characters are discarded outright; an empty or unparseable digit
// run yields zero.
func NormalizeString(s string) int64 {
	digits := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			digits = append(digits, s[i])
		}
	}
	if len(digits) == 0 {
		return 0
	}
	n, err := strconv.ParseInt(string(digits), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func clampAmount(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}
