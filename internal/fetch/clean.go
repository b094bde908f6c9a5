package fetch

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// The TGJU APIs return cell values as HTML fragments. The three patterns
// below cover every shape seen in practice; they are tried in a fixed
// priority order by CleanValue.
var (
	lowHighPattern = regexp.MustCompile(`<span class="(?:low|high)" dir="ltr">([\d%,]+)<`)
	millionPattern = regexp.MustCompile(`([\d.,]+)\s*<span class="currency-type">میلیون</span>`)
	pricePattern   = regexp.MustCompile(`(?s)<span class="label">قیمت:</span><span class="value">([\d.,]+)</span>`)
)

// CleanValue normalizes one raw cell into a plain string. The second return
// value is false when the cell is absent (nil, empty, or the literal "-").
//
// Priority order:
//  1. tagged low/high span: strip thousands separators, negate when "low"
//  2. million-suffixed magnitude: expand to an integer-valued string
//  3. price label/value pair: extract the value, strip separators
//  4. anything else: trimmed passthrough
func CleanValue(raw any) (string, bool) {
	if raw == nil {
		return "", false
	}

	value := cellString(raw)
	if value == "" || value == "-" {
		return "", false
	}

	if m := lowHighPattern.FindStringSubmatch(value); m != nil {
		number := strings.ReplaceAll(m[1], ",", "")
		if strings.Contains(value, `class="low"`) {
			return "-" + number, true
		}
		return number, true
	}

	if m := millionPattern.FindStringSubmatch(value); m != nil {
		number, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			return "", false
		}
		return strconv.FormatInt(int64(math.Round(number*1_000_000)), 10), true
	}

	if m := pricePattern.FindStringSubmatch(value); m != nil {
		return strings.ReplaceAll(m[1], ",", ""), true
	}

	return strings.TrimSpace(value), true
}

// ParseNumber parses a cleaned cell into a float. Malformed input yields
// absent rather than an error so one bad cell never aborts a batch.
func ParseNumber(value string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// cellString renders a decoded JSON cell as text. TGJU rows mix strings and
// bare numbers in the same array.
func cellString(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
