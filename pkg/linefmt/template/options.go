package template

// DefaultMaxDepth allows one level of fields nested inside a specifier.
const DefaultMaxDepth = 2

// Option configures an Expander.
type Option func(*Expander)

// WithMaxDepth sets how deep replacement fields may nest.
//
// Default: DefaultMaxDepth (fields inside a specifier, but no deeper)
//
// A depth of 1 rejects every nested field.
func WithMaxDepth(depth int) Option {
	return func(e *Expander) {
		if depth > 0 {
			e.maxDepth = depth
		}
	}
}

// WithConversions enables or disables the !s, !r and !a conversions.
//
// Default: true (enabled)
//
// When disabled a conversion is a syntax error.
func WithConversions(enabled bool) Option {
	return func(e *Expander) {
		e.conversions = enabled
	}
}
