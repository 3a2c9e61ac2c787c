package template

import (
	"fmt"
	"math"
	"strings"
	"unicode"
)

// str renders a value the way the !s conversion does.
func str(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float32:
		return floatString(float64(v))
	case float64:
		return floatString(v)
	default:
		return fmt.Sprint(v)
	}
}

// repr renders a value the way the !r conversion does. Strings are quoted;
// with ascii set every non-ASCII rune is escaped as well.
func repr(value any, ascii bool) string {
	s, ok := value.(string)
	if !ok {
		return str(value)
	}

	quote := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}

	var b strings.Builder
	b.WriteRune(quote)
	for _, r := range s {
		switch {
		case r == quote || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r < 0x20 || r == 0x7f:
			b.WriteString(escapeRune(r))
		case r < 0x80:
			b.WriteRune(r)
		case ascii || !unicode.IsPrint(r):
			b.WriteString(escapeRune(r))
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune(quote)
	return b.String()
}

func escapeRune(r rune) string {
	switch {
	case r < 0x100:
		return fmt.Sprintf(`\x%02x`, r)
	case r < 0x10000:
		return fmt.Sprintf(`\u%04x`, r)
	default:
		return fmt.Sprintf(`\U%08x`, r)
	}
}

func floatString(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.Signbit(v):
		return "-" + shortest(-v)
	default:
		return shortest(v)
	}
}
