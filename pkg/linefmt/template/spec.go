package template

import "unicode/utf8"

// maxSpecNumber bounds width and precision so a hostile line cannot ask for
// gigabytes of padding.
const maxSpecNumber = 1 << 20

// formatSpec is a parsed format specifier.
type formatSpec struct {
	raw string

	fill      rune
	fillSet   bool
	align     rune // 0 when unset
	sign      rune // 0 when unset
	zeroNeg   bool // z
	alternate bool // #
	zeroPad   bool // 0 flag
	width     int  // -1 when unset
	grouping  rune // 0, ',' or '_'
	precision int  // -1 when unset
	verb      rune // 0 when unset
}

func isAlign(r rune) bool {
	return r == '<' || r == '>' || r == '=' || r == '^'
}

// parseSpec parses spec without regard to the value type. Type-dependent
// checks happen when the value is rendered.
func parseSpec(spec string) (formatSpec, error) {
	fs := formatSpec{raw: spec, fill: ' ', width: -1, precision: -1}
	if spec == "" {
		return fs, nil
	}

	r := []rune(spec)
	i := 0

	if len(r) >= 2 && isAlign(r[1]) {
		fs.fill, fs.fillSet, fs.align = r[0], true, r[1]
		i = 2
	} else if isAlign(r[0]) {
		fs.align = r[0]
		i = 1
	}

	if i < len(r) && (r[i] == '+' || r[i] == '-' || r[i] == ' ') {
		fs.sign = r[i]
		i++
	}
	if i < len(r) && r[i] == 'z' {
		fs.zeroNeg = true
		i++
	}
	if i < len(r) && r[i] == '#' {
		fs.alternate = true
		i++
	}
	if i < len(r) && r[i] == '0' && !fs.fillSet {
		fs.fill, fs.zeroPad = '0', true
		i++
	}

	var err error
	if fs.width, i, err = readNumber(r, i, spec); err != nil {
		return fs, err
	}

	if i < len(r) && (r[i] == ',' || r[i] == '_') {
		fs.grouping = r[i]
		i++
		if i < len(r) && (r[i] == ',' || r[i] == '_') {
			return fs, &FormatSpecError{Spec: spec, Message: "cannot specify both ',' and '_'"}
		}
	}

	if i < len(r) && r[i] == '.' {
		i++
		start := i
		if fs.precision, i, err = readNumber(r, i, spec); err != nil {
			return fs, err
		}
		if i == start {
			return fs, &FormatSpecError{Spec: spec, Message: "format specifier missing precision"}
		}
	}

	switch len(r) - i {
	case 0:
	case 1:
		fs.verb = r[i]
	default:
		return fs, &FormatSpecError{Spec: spec, Message: "invalid format specifier"}
	}
	return fs, nil
}

// readNumber consumes decimal digits starting at i. It returns -1 when there
// are none.
func readNumber(r []rune, i int, spec string) (int, int, error) {
	n := -1
	for i < len(r) && r[i] >= '0' && r[i] <= '9' {
		if n < 0 {
			n = 0
		}
		n = n*10 + int(r[i]-'0')
		if n > maxSpecNumber {
			return 0, i, &FormatSpecError{Spec: spec, Message: "too many decimal digits in format string"}
		}
		i++
	}
	return n, i, nil
}

// numericAlign returns the alignment for numbers: explicit align wins, then
// the 0 flag, then right alignment.
func (fs formatSpec) numericAlign() rune {
	switch {
	case fs.align != 0:
		return fs.align
	case fs.zeroPad:
		return '='
	default:
		return '>'
	}
}

// pad lays out head and body within the requested width. head (sign and
// prefix) stays in front of any fill when align is '='.
func (fs formatSpec) pad(align rune, head, body string) string {
	n := utf8.RuneCountInString(head) + utf8.RuneCountInString(body)
	if fs.width <= n {
		return head + body
	}
	fill := fs.width - n
	switch align {
	case '<':
		return head + body + repeat(fs.fill, fill)
	case '^':
		left := fill / 2
		return repeat(fs.fill, left) + head + body + repeat(fs.fill, fill-left)
	case '=':
		return head + repeat(fs.fill, fill) + body
	default:
		return repeat(fs.fill, fill) + head + body
	}
}

func repeat(r rune, n int) string {
	if n <= 0 {
		return ""
	}
	buf := make([]byte, 0, n*utf8.RuneLen(r))
	for ; n > 0; n-- {
		buf = utf8.AppendRune(buf, r)
	}
	return string(buf)
}
