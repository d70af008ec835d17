package ticket

import (
	"math"
	"strconv"
	"strings"
)

// floatDigits is the number of significant digits the workflow server has
// always received for float properties.
const floatDigits = 14

func formatBool(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

func formatInt(v int) string {
	return strconv.Itoa(v)
}

// FormatFloat renders v the way float properties appear in a ticket:
// at most 14 significant digits with trailing zeros dropped, plain decimal
// notation for decimal exponents in [-4, 14), and otherwise an exponent form
// such as 1.0E+25 or 2.5E-7. NaN and infinities render as NAN, INF and -INF.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NAN"
	case math.IsInf(v, 1):
		return "INF"
	case math.IsInf(v, -1):
		return "-INF"
	}

	sci := strconv.FormatFloat(v, 'e', floatDigits-1, 64)
	mantissa, expPart, _ := strings.Cut(sci, "e")
	exp, err := strconv.Atoi(expPart)
	if err != nil {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}

	if exp < -4 || exp >= floatDigits {
		neg := strings.HasPrefix(mantissa, "-")
		mantissa = strings.TrimPrefix(mantissa, "-")
		intPart, frac, _ := strings.Cut(mantissa, ".")
		frac = strings.TrimRight(frac, "0")
		if frac == "" {
			frac = "0"
		}
		var b strings.Builder
		if neg {
			b.WriteByte('-')
		}
		b.WriteString(intPart)
		b.WriteByte('.')
		b.WriteString(frac)
		b.WriteByte('E')
		if exp >= 0 {
			b.WriteByte('+')
		}
		b.WriteString(strconv.Itoa(exp))
		return b.String()
	}

	// Re-parse the rounded value so the shortest decimal form carries no
	// digits beyond the 14 kept above.
	rounded, err := strconv.ParseFloat(sci, 64)
	if err != nil {
		rounded = v
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
