package template

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Strings(t *testing.T) {
	tests := []struct {
		spec     string
		value    string
		expected string
	}{
		{"", "AA", "AA"},
		{"s", "AA", "AA"},
		{">5", "AA", "   AA"},
		{"^6", "AA", "  AA  "},
		{"^5", "AA", " AA  "},
		{"*<4", "AA", "AA**"},
		{"05", "AA", "AA000"},
		{".1", "AA", "A"},
		{"3.1", "AA", "A  "},
		{"é>4", "AA", "ééAA"},
		{"1", "AA", "AA"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			result, err := Render(tt.value, tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestRender_Integers(t *testing.T) {
	tests := []struct {
		spec     string
		value    int64
		expected string
	}{
		{"", 10, "10"},
		{"05d", 10, "00010"},
		{"+08d", -100, "-0000100"},
		{"=+8", -100, "-    100"},
		{" d", 10, " 10"},
		{"+", 10, "+10"},
		{",", 123456789, "123,456,789"},
		{"_", 1234567, "1_234_567"},
		{"_x", 123456789, "75b_cd15"},
		{"#x", 123456789, "0x75bcd15"},
		{"#010b", 10, "0b00001010"},
		{"#010x", 255, "0x000000ff"},
		{"o", 10, "12"},
		{"X", 10, "A"},
		{"x", -100, "-64"},
		{"#X", -100, "-0X64"},
		{"c", 1, "\x01"},
		{"5c", 65, "    A"},
		{"n", 123456789, "123456789"},
		{"015,", 123456789, "000,123,456,789"},
		{"09,", 1234, "0,001,234"},
		{"08,", 1234, "0,001,234"},
		{"0=10,", 1234, "00,001,234"},
		{"<5", 10, "10   "},
		{"^6", 10, "  10  "},
		{"e", 1, "1.000000e+00"},
		{"f", 10, "10.000000"},
		{"%", 10, "1000.000000%"},
		{"g", 123456789, "1.23457e+08"},
		{"", math.MinInt64, "-9223372036854775808"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			result, err := Render(tt.value, tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestRender_IntegerTypes(t *testing.T) {
	for _, v := range []any{10, int8(10), int16(10), int32(10), int64(10), uint(10), uint8(10), uint16(10), uint32(10), uint64(10)} {
		result, err := Render(v, "03")
		require.NoError(t, err)
		assert.Equal(t, "010", result)
	}

	result, err := Render(uint64(math.MaxUint64), ",")
	require.NoError(t, err)
	assert.Equal(t, "18,446,744,073,709,551,615", result)
}

func TestRender_Floats(t *testing.T) {
	tests := []struct {
		name     string
		spec     string
		value    float64
		expected string
	}{
		{"precision rounds down", ".2f", -10.0234, "-10.02"},
		{"default shortest", "", -10.0234, "-10.0234"},
		{"default whole", "", 10.0, "10.0"},
		{"default many digits", "", 3.14159265, "3.14159265"},
		{"default small", "", -0.000123, "-0.000123"},
		{"default large switches to exponent", "", 1e16, "1e+16"},
		{"default below threshold", "", 1e15, "1000000000000000.0"},
		{"default tiny fixed", "", 0.0001, "0.0001"},
		{"default tiny exponent", "", 0.00001, "1e-05"},
		{"negative zero", "", math.Copysign(0, -1), "-0.0"},
		{"negative zero coerced", "z", math.Copysign(0, -1), "0.0"},
		{"padded precision", ".5f", 10.0, "10.00000"},
		{"padded negative precision", ".7f", -10.0234, "-10.0234000"},
		{"tie to even down", ".0f", 2.5, "2"},
		{"tie below exact", ".2f", 0.125, "0.12"},
		{"tie above exact", ".2f", 0.375, "0.38"},
		{"width", "10.3f", 3.14159265, "     3.142"},
		{"left", "<10.3f", 3.14159265, "3.142     "},
		{"center", "^10.2f", 3.14159265, "   3.14   "},
		{"zero pad negative", "010.2f", -10.0234, "-000010.02"},
		{"rounds to negative zero", ".2f", -0.000123, "-0.00"},
		{"z coerces rounded zero", "z.2f", -0.000123, "0.00"},
		{"percent", "+.1%", -10.0234, "-1002.3%"},
		{"exponent", "e", -0.000123, "-1.230000e-04"},
		{"exponent precision", ".2e", -0.000123, "-1.23e-04"},
		{"exponent upper", "E", 3.14159265, "3.141593E+00"},
		{"general", "g", 3.14159265, "3.14159"},
		{"general small", "g", -0.000123, "-0.000123"},
		{"general upper", "G", -0.000123, "-0.000123"},
		{"general zero", "g", 0, "0"},
		{"general fixed limit", "g", 100000, "100000"},
		{"general exponent", "g", 1000000, "1e+06"},
		{"general alternate", "#g", 10.0, "10.0000"},
		{"general alternate exponent", "#.1g", 1e10, "1.e+10"},
		{"general alternate fixed", "#.2g", 10.0, "10."},
		{"default precision", ".3", 3.14159265, "3.14"},
		{"default precision keeps digit", ".3", 10.0, "10.0"},
		{"default precision whole", ".3", 12.0, "12.0"},
		{"default precision exponent", ".3", 123.0, "1.23e+02"},
		{"default precision one", ".1", 1.0, "1e+00"},
		{"default precision zero", ".3", 0, "0.0"},
		{"alternate fixed zero precision", "#.0f", 10.0, "10."},
		{"grouped fixed", ",.2f", 12345.678, "12,345.68"},
		{"grouped zero pad", "012,.1f", -1234.5, "-0,001,234.5"},
		{"alternate default", "#", 1.5, "1.5"},
		{"n like g", "n", 3.14159265, "3.14159"},
		{"nan", "", math.NaN(), "nan"},
		{"inf upper", "F", math.Inf(1), "INF"},
		{"negative inf", ">6", math.Inf(-1), "  -inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Render(tt.value, tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		spec    string
		message string
	}{
		{"string with precision type", "AA", ".2f", "unknown format code 'f'"},
		{"string with sign", "AA", "+", "sign not allowed in string format specifier"},
		{"string with alternate", "AA", "#", "alternate form (#) not allowed in string format specifier"},
		{"string with z", "AA", "z", "negative zero coercion (z) not allowed in string format specifier"},
		{"string with equals", "AA", "=5", "'=' alignment not allowed in string format specifier"},
		{"string with grouping", "AA", ",", "cannot specify ',' with 's'"},
		{"float with int code", -10.0234, "d", "unknown format code 'd'"},
		{"float n grouping", 1.5, ",n", "cannot specify ',' with 'n'"},
		{"int precision", int64(10), ".2d", "precision not allowed in integer format specifier"},
		{"int z", int64(10), "z", "negative zero coercion (z) not allowed in integer format specifier"},
		{"int comma hex", int64(10), ",x", "cannot specify ',' with 'x'"},
		{"int unknown", int64(10), "q", "unknown format code 'q'"},
		{"int c sign", int64(65), "+c", "sign not allowed with integer format specifier 'c'"},
		{"int c range", int64(-1), "c", "%c arg not in range(0x110000)"},
		{"missing precision", "AA", ".", "format specifier missing precision"},
		{"trailing junk", "AA", "5z5", "invalid format specifier"},
		{"both separators", int64(1), ",_", "cannot specify both ',' and '_'"},
		{"huge width", int64(1), "99999999999", "too many decimal digits in format string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(tt.value, tt.spec)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrFormatSpec))

			var specErr *FormatSpecError
			require.ErrorAs(t, err, &specErr)
			assert.Equal(t, tt.message, specErr.Message)
		})
	}
}

type label struct{}

func (label) String() string { return "pt" }

func TestRender_OtherValues(t *testing.T) {
	result, err := Render(label{}, ">4")
	require.NoError(t, err)
	assert.Equal(t, "  pt", result)

	result, err = Render(true, "")
	require.NoError(t, err)
	assert.Equal(t, "true", result)
}

func TestParseSpec(t *testing.T) {
	fs, err := parseSpec("*^+z#012,.3f")
	require.NoError(t, err)
	assert.Equal(t, '*', fs.fill)
	assert.True(t, fs.fillSet)
	assert.Equal(t, '^', fs.align)
	assert.Equal(t, '+', fs.sign)
	assert.True(t, fs.zeroNeg)
	assert.True(t, fs.alternate)
	assert.False(t, fs.zeroPad, "0 after explicit fill is part of the width")
	assert.Equal(t, 12, fs.width)
	assert.Equal(t, ',', fs.grouping)
	assert.Equal(t, 3, fs.precision)
	assert.Equal(t, 'f', fs.verb)

	fs, err = parseSpec("05")
	require.NoError(t, err)
	assert.True(t, fs.zeroPad)
	assert.Equal(t, '0', fs.fill)
	assert.Equal(t, rune(0), fs.align)
	assert.Equal(t, 5, fs.width)
	assert.Equal(t, -1, fs.precision)

	fs, err = parseSpec("")
	require.NoError(t, err)
	assert.Equal(t, -1, fs.width)
	assert.Equal(t, ' ', fs.fill)
}

func TestConversions(t *testing.T) {
	assert.Equal(t, `"é'x"`, repr("é'x", false))
	assert.Equal(t, `"\xe9'x"`, repr("é'x", true))
	assert.Equal(t, `'it\'s "q"'`, repr(`it's "q"`, false))
	assert.Equal(t, `'tab\there\x01é'`, repr("tab\there\x01é", false))
	assert.Equal(t, `'\u20ac'`, repr("€", true))
	assert.Equal(t, "-10.0234", repr(-10.0234, false))
	assert.Equal(t, "10", str(int64(10)))
	assert.Equal(t, "10.0", str(10.0))
	assert.Equal(t, "-inf", str(math.Inf(-1)))
	assert.Equal(t, "nan", str(math.NaN()))
}
