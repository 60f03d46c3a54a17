package records

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Row is one result tuple in column order.
type Row []any

// String renders the row as a tuple literal, e.g. (20,) or (1, 'Ada', 3.5).
func (r Row) String() string {
	values := make([]string, len(r))
	for i, v := range r {
		values[i] = formatValue(v)
	}
	if len(values) == 1 {
		return "(" + values[0] + ",)"
	}
	return "(" + strings.Join(values, ", ") + ")"
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "None"
	case string:
		return quote(v)
	case []byte:
		return quote(string(v))
	case bool:
		if v {
			return "True"
		}
		return "False"
	case float64:
		return formatFloat(v)
	case float32:
		return formatFloat(float64(v))
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func quote(s string) string {
	q := "'"
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		q = `"`
	}
	var b strings.Builder
	b.WriteString(q)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case string(r) == q:
			b.WriteString(`\` + q)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteString(q)
	return b.String()
}
