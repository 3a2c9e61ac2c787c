/*
Package template formats single lines that use named replacement fields.

# Overview

A template line is plain text containing replacement fields. Each field
names a variable and may carry a conversion and a format specifier:

	{name}
	{name:spec}
	{name!r}
	{name!r:spec}

Doubled braces ({{ and }}) produce literal braces. Variables are resolved
through a Lookup, so any table with a Get method can back an Expander.

# Basic Usage

	exp := template.NewExpander()
	out, err := exp.Expand("{greeting:>8}|{n:05d}", template.Map{
	    "greeting": "hi",
	    "n":        int64(10),
	})
	// out: "      hi|00010"

# Format Specifiers

The specifier grammar is

	[[fill]align][sign][z][#][0][width][grouping][.precision][type]

  - fill is any character, align is one of < > = ^
  - sign is + - or space and is only valid for numbers
  - z turns negative zero into positive zero for floats
  - # selects the alternate form (0x prefixes, forced decimal point)
  - 0 pads numbers with zeros after the sign
  - grouping is , or _
  - type is s for strings, b c d o x X n for integers and
    e E f F g G n % for floats (integers accept the float types too)

Strings are left aligned and numbers right aligned unless align says
otherwise. A float without type or precision renders in its shortest
round-trip form, always with a fractional digit (10.0, -10.0234).

# Rounding

Precision rounds the exact binary value of a float. When that value lies
exactly halfway between two candidates the even candidate wins, so 2.5
formats as "2" with ".0f" and 0.125 as "0.12" with ".2f".

# Nested Fields

A specifier may itself contain replacement fields, one level deep:

	{value:{width}.{precision}f}

# Errors

Expand returns one of three error kinds, all matchable with errors.Is:

  - ErrMissingKey: the field names a variable the Lookup does not have
  - ErrFormatSpec: the specifier is malformed or does not fit the value type
  - ErrSyntax: unbalanced braces or a bad conversion

# Thread Safety

Expander is safe for concurrent use after construction.
*/
package template
