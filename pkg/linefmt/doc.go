// Package linefmt generates formatting fixtures from template lines.
//
// Every line of the input is formatted against a fixed table of ten
// variables and written to the output next to the original, separated by a
// single space:
//
//	{bb_int:05d} 00010
//	{aa_float:.2f} -10.02
//
// The resulting file serves as an expected-output fixture for checking
// another formatter implementation against the same templates.
//
// # Basic Usage
//
//	gen := linefmt.New(linefmt.WithLogger(logger))
//	result, err := gen.Run(ctx, "test.txt", "test-python.txt")
//	if err != nil {
//	    switch linefmt.KindOf(err) {
//	    case linefmt.KindMissingKey:
//	        // a line names a variable outside the table
//	    }
//	}
//
// # Failure Behavior
//
// The first line that fails to format ends the run. Records for the lines
// before it are flushed to the output. The failing line and everything after
// it produce nothing. Errors carry the 1-based line number and the template
// text through LineError.
//
// # Line Endings
//
// "\n", "\r\n" and a lone "\r" all end a line. A final line without a
// terminator is still a line. Output records always end in "\n".
//
// # Run History
//
// With WithHistory, every Run is recorded in a history.Store together with
// the SHA-256 digest of its output, and the result reports whether the
// output differs from the previous successful run over the same input.
//
// # Subpackages
//
//   - template: placeholder expansion and the format-spec mini-language
//   - vars: the fixed variable table
//   - config: settings loaded from YAML or JSON files
//   - history: run records in memory or SQLite
//   - observability: logging, metrics and tracing helpers
package linefmt
