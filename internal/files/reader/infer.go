package reader

import (
	"strconv"
	"strings"

	"github.com/vvka-141/pgload/pkg/pgload"
)

// InferType returns the narrowest column type that fits every non-empty cell.
func InferType(cells []string) pgload.ColumnType {
	isInt, isFloat, isBool := true, true, true
	seen := false

	for _, s := range cells {
		if s == "" {
			continue
		}
		seen = true
		if isInt {
			if _, err := strconv.ParseInt(s, 10, 64); err != nil {
				isInt = false
			}
		}
		if isFloat && !isDecimal(s) {
			isFloat = false
		}
		if isBool && !strings.EqualFold(s, "true") && !strings.EqualFold(s, "false") {
			isBool = false
		}
		if !isInt && !isFloat && !isBool {
			return pgload.ColumnText
		}
	}

	switch {
	case !seen:
		return pgload.ColumnText
	case isInt:
		return pgload.ColumnBigint
	case isFloat:
		return pgload.ColumnDouble
	case isBool:
		return pgload.ColumnBoolean
	default:
		return pgload.ColumnText
	}
}

// isDecimal accepts plain decimal and exponent notation only, so words
// such as "nan" or "infinity" stay text.
func isDecimal(s string) bool {
	hasDigit := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			hasDigit = true
		case c == '.' || c == '+' || c == '-' || c == 'e' || c == 'E':
		default:
			return false
		}
	}
	if !hasDigit {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// ConvertCell converts a raw cell to the Go value stored for typ.
// The cell must have been accepted by InferType for typ.
func ConvertCell(s string, typ pgload.ColumnType) any {
	if s == "" {
		return nil
	}
	switch typ {
	case pgload.ColumnBigint:
		v, _ := strconv.ParseInt(s, 10, 64)
		return v
	case pgload.ColumnDouble:
		v, _ := strconv.ParseFloat(s, 64)
		return v
	case pgload.ColumnBoolean:
		return strings.EqualFold(s, "true")
	default:
		return s
	}
}
