// Package vars holds the fixed variable table that template lines are
// formatted against.
//
// A Table is built once and never mutated afterwards, so it is safe to share
// between goroutines without locking.
//
// # Basic Usage
//
//	t := vars.Default()
//	v, ok := t.Get("bb_int")
//	if ok {
//	    fmt.Println(v) // Output: 10
//	}
package vars

import "sort"

// Table is an immutable mapping from variable name to a typed scalar value.
// Values are string, int64 or float64.
type Table struct {
	entries map[string]any
}

// New creates a Table holding a copy of entries.
func New(entries map[string]any) Table {
	copied := make(map[string]any, len(entries))
	for k, v := range entries {
		copied[k] = v
	}
	return Table{entries: copied}
}

// defaultTable is built once at process start.
var defaultTable = New(map[string]any{
	"aa_string": "AA",
	"bb_string": "QWERTYUIIOP",
	"aa_int":    int64(-10),
	"bb_int":    int64(10),
	"cc_int":    int64(12345000),
	"dd_int":    int64(-12324550),
	"aa_float":  -10.0234000,
	"bb_float":  10.00000,
	"cc_float":  12345000.230000,
	"dd_float":  -12324550.00001,
})

// Default returns the fixed ten-entry table.
func Default() Table {
	return defaultTable
}

// Get returns the value for name and whether it exists.
func (t Table) Get(name string) (any, bool) {
	v, ok := t.entries[name]
	return v, ok
}

// Has returns true if name exists in the table.
func (t Table) Has(name string) bool {
	_, ok := t.entries[name]
	return ok
}

// Keys returns all names in sorted order.
func (t Table) Keys() []string {
	keys := make([]string, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of entries.
func (t Table) Len() int {
	return len(t.entries)
}

// Range calls fn for every entry in key order. If fn returns false,
// iteration stops.
func (t Table) Range(fn func(name string, value any) bool) {
	for _, k := range t.Keys() {
		if !fn(k, t.entries[k]) {
			return
		}
	}
}

// Map returns a copy of the entries.
func (t Table) Map() map[string]any {
	out := make(map[string]any, len(t.entries))
	for k, v := range t.entries {
		out[k] = v
	}
	return out
}
