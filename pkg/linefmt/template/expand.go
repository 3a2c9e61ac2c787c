package template

import (
	"fmt"
	"strings"
)

// Lookup resolves variable names to values.
type Lookup interface {
	Get(name string) (any, bool)
}

// Map is a Lookup backed by a plain map.
type Map map[string]any

// Get implements Lookup.
func (m Map) Get(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

// Expander formats template lines against a Lookup.
//
// Create with NewExpander() and configure with Option functions.
// Expander is safe for concurrent use after construction.
type Expander struct {
	maxDepth    int
	conversions bool
}

// NewExpander creates a new Expander with the given options.
//
// Default configuration:
//   - MaxDepth: DefaultMaxDepth
//   - Conversions: enabled
func NewExpander(opts ...Option) *Expander {
	e := &Expander{
		maxDepth:    DefaultMaxDepth,
		conversions: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Expand replaces every field in s with the formatted value from vars.
//
// The first error stops expansion and the partial result is discarded.
//
// Example:
//
//	exp := NewExpander()
//	result, err := exp.Expand("{n:05d}", Map{"n": int64(10)})
//	// result: "00010"
func (e *Expander) Expand(s string, vars Lookup) (string, error) {
	if vars == nil {
		vars = Map(nil)
	}
	return e.expand(s, vars, e.maxDepth)
}

// MustExpand expands s and panics on error.
func (e *Expander) MustExpand(s string, vars Lookup) string {
	result, err := e.Expand(s, vars)
	if err != nil {
		panic(fmt.Sprintf("template: %v", err))
	}
	return result
}

// ExpandAll expands every string in ss.
//
// On error, returns nil and the first error.
func (e *Expander) ExpandAll(ss []string, vars Lookup) ([]string, error) {
	if ss == nil {
		return nil, nil
	}

	results := make([]string, len(ss))
	for i, s := range ss {
		expanded, err := e.Expand(s, vars)
		if err != nil {
			return nil, err
		}
		results[i] = expanded
	}
	return results, nil
}

// Fields returns the variable names referenced by s in order of appearance,
// including names used inside nested specifiers. Duplicates are kept.
func (e *Expander) Fields(s string) ([]string, error) {
	var names []string
	err := e.scan(s, e.maxDepth, func(f field) error {
		names = append(names, f.name)
		return nil
	}, nil)
	if err != nil {
		return nil, err
	}
	return names, nil
}

// field is one parsed replacement field.
type field struct {
	pos        int
	name       string
	conversion byte
	spec       string
	depth      int
}

func (e *Expander) expand(s string, vars Lookup, depth int) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	err := e.scan(s, depth, func(f field) error {
		out, err := e.render(f, vars)
		if err != nil {
			return err
		}
		b.WriteString(out)
		return nil
	}, &b)
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// scan walks s, copying literal text to lit (when non-nil) and handing each
// replacement field to fn.
func (e *Expander) scan(s string, depth int, fn func(field) error, lit *strings.Builder) error {
	if depth <= 0 {
		return &SyntaxError{Pos: 0, Message: "max string recursion exceeded"}
	}

	i := 0
	for i < len(s) {
		c := s[i]
		switch c {
		case '{':
			if i+1 < len(s) && s[i+1] == '{' {
				if lit != nil {
					lit.WriteByte('{')
				}
				i += 2
				continue
			}
			end, err := matchBrace(s, i)
			if err != nil {
				return err
			}
			f, err := e.parseField(s[i+1:end], i, depth)
			if err != nil {
				return err
			}
			if err := fn(f); err != nil {
				return err
			}
			if lit == nil && strings.ContainsRune(f.spec, '{') {
				// Collecting names only: walk nested fields too.
				if err := e.scan(f.spec, depth-1, fn, nil); err != nil {
					return err
				}
			}
			i = end + 1
		case '}':
			if i+1 < len(s) && s[i+1] == '}' {
				if lit != nil {
					lit.WriteByte('}')
				}
				i += 2
				continue
			}
			return &SyntaxError{Pos: i, Message: "single '}' encountered in format string"}
		default:
			if lit != nil {
				lit.WriteByte(c)
			}
			i++
		}
	}
	return nil
}

// matchBrace returns the index of the '}' closing the '{' at start.
// Braces inside the field nest.
func matchBrace(s string, start int) (int, error) {
	if start+1 >= len(s) {
		return 0, &SyntaxError{Pos: start, Message: "single '{' encountered in format string"}
	}
	level := 1
	for j := start + 1; j < len(s); j++ {
		switch s[j] {
		case '{':
			level++
		case '}':
			level--
			if level == 0 {
				return j, nil
			}
		}
	}
	return 0, &SyntaxError{Pos: start, Message: "expected '}' before end of string"}
}

// parseField splits the body of a field into name, conversion and spec.
func (e *Expander) parseField(body string, pos, depth int) (field, error) {
	f := field{pos: pos, depth: depth}

	cut := strings.IndexAny(body, "!:")
	if cut < 0 {
		f.name = body
		return f, nil
	}
	f.name = body[:cut]
	rest := body[cut:]

	if rest[0] == '!' {
		if !e.conversions {
			return f, &SyntaxError{Pos: pos, Message: "conversions are disabled"}
		}
		if len(rest) < 2 {
			return f, &SyntaxError{Pos: pos, Message: "end of string while looking for conversion specifier"}
		}
		f.conversion = rest[1]
		rest = rest[2:]
		if rest != "" && rest[0] != ':' {
			return f, &SyntaxError{Pos: pos, Message: "expected ':' after conversion specifier"}
		}
		switch f.conversion {
		case 's', 'r', 'a':
		default:
			return f, &SyntaxError{Pos: pos, Message: fmt.Sprintf("unknown conversion specifier %c", f.conversion)}
		}
	}

	if rest != "" {
		// rest[0] is ':'
		f.spec = rest[1:]
	}
	return f, nil
}

// render resolves the field's variable and formats it.
func (e *Expander) render(f field, vars Lookup) (string, error) {
	if f.name == "" || isPositional(f.name) {
		return "", &UndefinedVariableError{Name: f.name}
	}
	value, ok := vars.Get(f.name)
	if !ok {
		return "", &UndefinedVariableError{Name: f.name}
	}

	switch f.conversion {
	case 's':
		value = str(value)
	case 'r':
		value = repr(value, false)
	case 'a':
		value = repr(value, true)
	}

	spec := f.spec
	if strings.ContainsAny(spec, "{}") {
		expanded, err := e.expand(spec, vars, f.depth-1)
		if err != nil {
			return "", err
		}
		spec = expanded
	}

	return Render(value, spec)
}

func isPositional(name string) bool {
	for i := 0; i < len(name); i++ {
		if name[i] < '0' || name[i] > '9' {
			return false
		}
	}
	return name != ""
}

// defaultExpander is the package-level expander with default settings.
var defaultExpander = NewExpander()

// Expand formats s against vars using the default expander.
//
// Example:
//
//	result, err := template.Expand("{aa_string}", template.Map{"aa_string": "AA"})
//	// result: "AA"
func Expand(s string, vars Lookup) (string, error) {
	return defaultExpander.Expand(s, vars)
}
