package template

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Render formats a single value with spec.
//
// Strings, signed and unsigned integers and floats get their own rules.
// Any other value is rendered through fmt.Sprint and then treated as a
// string.
func Render(value any, spec string) (string, error) {
	fs, err := parseSpec(spec)
	if err != nil {
		return "", err
	}

	switch v := value.(type) {
	case string:
		return formatString(v, fs)
	case int:
		return formatSigned(int64(v), fs)
	case int8:
		return formatSigned(int64(v), fs)
	case int16:
		return formatSigned(int64(v), fs)
	case int32:
		return formatSigned(int64(v), fs)
	case int64:
		return formatSigned(v, fs)
	case uint:
		return formatInt(false, uint64(v), fs)
	case uint8:
		return formatInt(false, uint64(v), fs)
	case uint16:
		return formatInt(false, uint64(v), fs)
	case uint32:
		return formatInt(false, uint64(v), fs)
	case uint64:
		return formatInt(false, v, fs)
	case float32:
		return formatFloat(float64(v), fs)
	case float64:
		return formatFloat(v, fs)
	default:
		return formatString(fmt.Sprint(v), fs)
	}
}

func specErr(fs formatSpec, typeName, format string, args ...any) error {
	return &FormatSpecError{Spec: fs.raw, TypeName: typeName, Message: fmt.Sprintf(format, args...)}
}

func formatString(s string, fs formatSpec) (string, error) {
	const typeName = "str"
	switch {
	case fs.verb != 0 && fs.verb != 's':
		return "", specErr(fs, typeName, "unknown format code '%c'", fs.verb)
	case fs.sign != 0:
		return "", specErr(fs, typeName, "sign not allowed in string format specifier")
	case fs.zeroNeg:
		return "", specErr(fs, typeName, "negative zero coercion (z) not allowed in string format specifier")
	case fs.alternate:
		return "", specErr(fs, typeName, "alternate form (#) not allowed in string format specifier")
	case fs.align == '=':
		return "", specErr(fs, typeName, "'=' alignment not allowed in string format specifier")
	case fs.grouping != 0:
		return "", specErr(fs, typeName, "cannot specify '%c' with 's'", fs.grouping)
	}

	if fs.precision >= 0 && utf8.RuneCountInString(s) > fs.precision {
		s = string([]rune(s)[:fs.precision])
	}

	align := fs.align
	if align == 0 {
		align = '<'
	}
	return fs.pad(align, "", s), nil
}

func formatSigned(v int64, fs formatSpec) (string, error) {
	if v < 0 {
		return formatInt(true, uint64(-(v+1))+1, fs)
	}
	return formatInt(false, uint64(v), fs)
}

// formatInt renders an integer given as sign and magnitude.
func formatInt(negative bool, mag uint64, fs formatSpec) (string, error) {
	const typeName = "int"

	switch fs.verb {
	case 'e', 'E', 'f', 'F', 'g', 'G', '%':
		f := float64(mag)
		if negative {
			f = -f
		}
		return formatFloat(f, fs)
	case 0, 'd', 'n', 'b', 'o', 'x', 'X', 'c':
	default:
		return "", specErr(fs, typeName, "unknown format code '%c'", fs.verb)
	}

	if fs.precision >= 0 {
		return "", specErr(fs, typeName, "precision not allowed in integer format specifier")
	}
	if fs.zeroNeg {
		return "", specErr(fs, typeName, "negative zero coercion (z) not allowed in integer format specifier")
	}

	base, prefix, groupSize := 10, "", 3
	switch fs.verb {
	case 'b':
		base, prefix, groupSize = 2, "0b", 4
	case 'o':
		base, prefix, groupSize = 8, "0o", 4
	case 'x':
		base, prefix, groupSize = 16, "0x", 4
	case 'X':
		base, prefix, groupSize = 16, "0X", 4
	}

	if (fs.grouping == ',' && base != 10) || (fs.grouping != 0 && fs.verb == 'n') {
		return "", specErr(fs, typeName, "cannot specify '%c' with '%c'", fs.grouping, fs.verb)
	}

	if fs.verb == 'c' {
		switch {
		case fs.sign != 0:
			return "", specErr(fs, typeName, "sign not allowed with integer format specifier 'c'")
		case fs.alternate:
			return "", specErr(fs, typeName, "alternate form (#) not allowed with integer format specifier 'c'")
		case fs.grouping != 0:
			return "", specErr(fs, typeName, "cannot specify '%c' with 'c'", fs.grouping)
		case negative || mag > utf8.MaxRune:
			return "", specErr(fs, typeName, "%%c arg not in range(0x110000)")
		}
		return fs.pad(fs.numericAlign(), "", string(rune(mag))), nil
	}

	digits := strconv.FormatUint(mag, base)
	if fs.verb == 'X' {
		digits = strings.ToUpper(digits)
	}
	if !fs.alternate {
		prefix = ""
	}
	return layoutNumber(fs, negative, prefix, digits, "", groupSize), nil
}

func formatFloat(v float64, fs formatSpec) (string, error) {
	const typeName = "float"

	switch fs.verb {
	case 0, 'e', 'E', 'f', 'F', 'g', 'G', 'n', '%':
	default:
		return "", specErr(fs, typeName, "unknown format code '%c'", fs.verb)
	}
	if fs.grouping != 0 && fs.verb == 'n' {
		return "", specErr(fs, typeName, "cannot specify '%c' with 'n'", fs.grouping)
	}

	negative := math.Signbit(v)
	a := math.Abs(v)
	upper := fs.verb == 'E' || fs.verb == 'F' || fs.verb == 'G'

	if math.IsNaN(a) || math.IsInf(a, 0) {
		body := "inf"
		if math.IsNaN(a) {
			body, negative = "nan", false
		}
		if upper {
			body = strings.ToUpper(body)
		}
		if fs.verb == '%' {
			body += "%"
		}
		align := fs.numericAlign()
		return fs.pad(align, signString(fs, negative), body), nil
	}

	prec := fs.precision
	var body string
	switch fs.verb {
	case 'f', 'F':
		body = fixed(a, precOr(prec, 6), fs.alternate)
	case '%':
		body = fixed(a*100, precOr(prec, 6), fs.alternate) + "%"
	case 'e', 'E':
		body = exponent(a, precOr(prec, 6), fs.alternate)
	case 'g', 'G', 'n':
		body = general(a, precOr(prec, 6), fs.alternate, false)
	default:
		if prec < 0 {
			body = shortest(a)
		} else {
			body = general(a, prec, fs.alternate, true)
		}
	}
	if upper {
		body = strings.ToUpper(body)
	}

	if negative && fs.zeroNeg && allZero(body) {
		negative = false
	}

	intEnd := strings.IndexFunc(body, func(r rune) bool { return r < '0' || r > '9' })
	if intEnd < 0 {
		intEnd = len(body)
	}
	return layoutNumber(fs, negative, "", body[:intEnd], body[intEnd:], 3), nil
}

func precOr(prec, def int) int {
	if prec < 0 {
		return def
	}
	return prec
}

// fixed formats a non-negative value with prec fractional digits.
func fixed(a float64, prec int, alternate bool) string {
	s := strconv.FormatFloat(a, 'f', prec, 64)
	if alternate && prec == 0 {
		s += "."
	}
	return s
}

// exponent formats a non-negative value in scientific notation.
func exponent(a float64, prec int, alternate bool) string {
	s := strconv.FormatFloat(a, 'e', prec, 64)
	if alternate && prec == 0 {
		e := strings.IndexByte(s, 'e')
		s = s[:e] + "." + s[e:]
	}
	return s
}

// general implements the g presentation. With dot0 set it implements the
// default presentation for an explicit precision: the switch to scientific
// notation happens one exponent earlier and fixed output keeps a fractional
// digit.
func general(a float64, prec int, alternate, dot0 bool) string {
	if prec == 0 {
		prec = 1
	}

	es := strconv.FormatFloat(a, 'e', prec-1, 64)
	e := strings.IndexByte(es, 'e')
	exp, _ := strconv.Atoi(es[e+1:])

	useExp := exp < -4 || exp >= prec
	if dot0 && exp == prec-1 {
		useExp = true
	}

	if useExp {
		mant := es[:e]
		if !alternate {
			mant = trimZeros(mant)
		} else if !strings.Contains(mant, ".") {
			mant += "."
		}
		return mant + es[e:]
	}

	s := strconv.FormatFloat(a, 'f', prec-1-exp, 64)
	if !alternate {
		s = trimZeros(s)
	} else if !strings.Contains(s, ".") {
		s += "."
	}
	if dot0 && !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// shortest renders the shortest string that round-trips to a, always with
// a fractional digit in fixed notation.
func shortest(a float64) string {
	es := strconv.FormatFloat(a, 'e', -1, 64)
	e := strings.IndexByte(es, 'e')
	exp, _ := strconv.Atoi(es[e+1:])
	if exp < -4 || exp >= 16 {
		return es
	}
	s := strconv.FormatFloat(a, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// trimZeros drops trailing fractional zeros and a dangling decimal point.
func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func allZero(body string) bool {
	for _, r := range body {
		if r >= '1' && r <= '9' {
			return false
		}
		if r == 'e' || r == 'E' {
			break
		}
	}
	return true
}

func signString(fs formatSpec, negative bool) string {
	switch {
	case negative:
		return "-"
	case fs.sign == '+':
		return "+"
	case fs.sign == ' ':
		return " "
	default:
		return ""
	}
}

// layoutNumber groups the integer digits, applies zero padding and aligns
// the result. rest holds everything after the integer digits.
func layoutNumber(fs formatSpec, negative bool, prefix, digits, rest string, groupSize int) string {
	head := signString(fs, negative) + prefix
	align := fs.numericAlign()

	if fs.grouping == 0 {
		return fs.pad(align, head, digits+rest)
	}

	if align == '=' && fs.fill == '0' && fs.width > 0 {
		// Zero padding is grouped like the digits it extends.
		for len(head)+len(group(digits, fs.grouping, groupSize))+utf8.RuneCountInString(rest) < fs.width {
			digits = "0" + digits
		}
	}
	return fs.pad(align, head, group(digits, fs.grouping, groupSize)+rest)
}

// group inserts sep every size digits counting from the right.
func group(digits string, sep rune, size int) string {
	if len(digits) <= size {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % size
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += size {
		if b.Len() > 0 {
			b.WriteRune(sep)
		}
		b.WriteString(digits[i : i+size])
	}
	return b.String()
}
