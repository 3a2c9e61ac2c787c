package linefmt

import (
	"bufio"
	"bytes"
	"io"
)

// initialLineBuffer is the starting size of the line scanner buffer.
const initialLineBuffer = 4096

// newLineScanner returns a scanner that splits r into lines, accepting
// "\n", "\r\n" and "\r" as terminators. Lines longer than maxLine bytes make
// the scanner fail with bufio.ErrTooLong.
func newLineScanner(r io.Reader, maxLine int) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	size := initialLineBuffer
	if maxLine < size {
		size = maxLine
	}
	// The scanner needs room for the terminator beyond the line itself.
	sc.Buffer(make([]byte, 0, size), maxLine+2)
	sc.Split(scanLines)
	return sc
}

// scanLines is a bufio.SplitFunc for universal newlines.
func scanLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		switch {
		case i+1 < len(data) && data[i+1] == '\n':
			return i + 2, data[:i], nil
		case i+1 < len(data) || atEOF:
			return i + 1, data[:i], nil
		default:
			// A trailing '\r' may be the first half of "\r\n".
			return 0, nil, nil
		}
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
