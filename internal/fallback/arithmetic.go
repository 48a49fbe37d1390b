package fallback

import (
	"strconv"
	"strings"
)

// evalArithmetic answers simple two-operand integer sums and differences,
// e.g. "12+7" -> "19". The second return is false when the prompt is not a
// parseable expression, letting the caller fall through to the default
// response instead of erroring.
func evalArithmetic(prompt string) (string, bool) {
	expr := strings.ReplaceAll(prompt, " ", "")

	if i := strings.Index(expr, "+"); i > 0 {
		if a, b, ok := parseOperands(expr[:i], expr[i+1:]); ok {
			return strconv.Itoa(a + b), true
		}
		return "", false
	}
	// A leading '-' is a sign, not an operator.
	if i := strings.Index(expr, "-"); i > 0 {
		if a, b, ok := parseOperands(expr[:i], expr[i+1:]); ok {
			return strconv.Itoa(a - b), true
		}
		return "", false
	}
	return "", false
}

func parseOperands(left, right string) (int, int, bool) {
	a, err := strconv.Atoi(left)
	if err != nil {
		return 0, 0, false
	}
	b, err := strconv.Atoi(right)
	if err != nil {
		return 0, 0, false
	}
	return a, b, true
}
