package linefmt

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"log/slog"
	"os"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/linefmt/pkg/linefmt/history"
	"github.com/randalmurphal/linefmt/pkg/linefmt/observability"
	"github.com/randalmurphal/linefmt/pkg/linefmt/template"
	"github.com/randalmurphal/linefmt/pkg/linefmt/vars"
)

// Generator formats template lines against a fixed variable table.
//
// Create with New() and configure with Option functions.
// Generator is safe for concurrent use after construction.
type Generator struct {
	vars         vars.Table
	expander     *template.Expander
	logger       *slog.Logger
	metrics      observability.MetricsRecorder
	spans        observability.SpanManager
	history      history.Store
	maxLineBytes int
	newRunID     func() string
}

// Result summarizes a run.
type Result struct {
	// RunID identifies the run in logs, traces and history.
	RunID string
	// Lines is the number of records written.
	Lines int
	// Bytes is the number of bytes written.
	Bytes int64
	// Digest is the hex SHA-256 of the output. Empty when the run failed.
	Digest string
	// Duration is the wall time of the run.
	Duration time.Duration
	// PreviousRunID is the latest earlier successful run over the same
	// input, when history is enabled and one exists.
	PreviousRunID string
	// Changed reports that the digest differs from PreviousRunID's.
	Changed bool
}

// New creates a Generator with the given options.
//
// Default configuration:
//   - Vars: vars.Default()
//   - Expander: template.NewExpander()
//   - Logger: nil (disabled)
//   - Metrics and tracing: no-op
//   - History: none
//   - MaxLineBytes: DefaultMaxLineBytes
func New(opts ...Option) *Generator {
	g := &Generator{
		vars:         vars.Default(),
		expander:     template.NewExpander(),
		metrics:      observability.NoopMetrics{},
		spans:        observability.NoopSpanManager{},
		maxLineBytes: DefaultMaxLineBytes,
		newRunID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Vars returns the variable table lines are formatted against.
func (g *Generator) Vars() vars.Table {
	return g.vars
}

// FormatLine formats a single template line. It does not touch any file.
//
// Example:
//
//	out, err := linefmt.New().FormatLine("{bb_int:05d}")
//	// out: "00010"
func (g *Generator) FormatLine(line string) (string, error) {
	return g.expander.Expand(line, g.vars)
}

// Process reads template lines from r and writes one record per line to w.
//
// Each record is the original line, a space and the formatted line,
// terminated by "\n". On failure the records of earlier lines are flushed to
// w and the error is returned; the result still counts what was written.
func (g *Generator) Process(ctx context.Context, r io.Reader, w io.Writer) (Result, error) {
	return g.execute(ctx, "", "", r, w, nil)
}

// Run formats the file at input into the file at output.
//
// The input is opened first, so a missing input leaves any existing output
// untouched. The output is then truncated. Both files are closed on every
// exit path, and the output is closed before the run is logged or recorded.
func (g *Generator) Run(ctx context.Context, input, output string) (Result, error) {
	in, err := os.Open(input)
	if err != nil {
		return Result{}, &IOError{Op: "open", Path: input, Err: err}
	}
	defer in.Close()

	out, err := os.Create(output)
	if err != nil {
		return Result{}, &IOError{Op: "create", Path: output, Err: err}
	}
	return g.execute(ctx, input, output, in, out, out.Close)
}

// execute wraps a processing pass with logging, metrics, tracing and
// history. input and output are empty for plain streams. closeOutput, when
// set, runs after the pass and before anything observes its outcome.
func (g *Generator) execute(ctx context.Context, input, output string, r io.Reader, w io.Writer, closeOutput func() error) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	runID := g.newRunID()
	logger := observability.EnrichLogger(g.logger, runID, input)
	started := time.Now()
	elapsed := observability.TimedOperation()

	observability.LogRunStart(logger, runID, input, output)
	ctx, span := g.spans.StartRunSpan(ctx, input, runID)

	result, err := g.process(ctx, logger, r, w)
	if closeOutput != nil {
		if cerr := closeOutput(); cerr != nil && err == nil {
			result.Digest = ""
			err = &IOError{Op: "close", Path: output, Err: cerr}
		}
	}
	result.RunID = runID
	result.Duration = time.Since(started)

	g.spans.EndSpanWithError(span, err)
	g.metrics.RecordRun(ctx, err == nil, result.Duration)
	g.metrics.RecordOutputSize(ctx, result.Bytes)

	if err != nil {
		observability.LogRunError(logger, runID, err, elapsed(), result.Lines+1)
	} else {
		observability.LogRunComplete(logger, runID, elapsed(), result.Lines)
	}

	if g.history != nil && input != "" {
		g.record(logger, &result, input, output, started, err)
	}
	return result, err
}

// process runs the read-format-write loop.
func (g *Generator) process(ctx context.Context, logger *slog.Logger, r io.Reader, w io.Writer) (Result, error) {
	var result Result

	bw := bufio.NewWriter(w)
	digest := sha256.New()
	sc := newLineScanner(r, g.maxLineBytes)

	// fail flushes the records already produced, then reports err.
	fail := func(err error) (Result, error) {
		if ferr := bw.Flush(); ferr != nil {
			err = errors.Join(err, &IOError{Op: "write", Err: ferr})
		}
		return result, err
	}

	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return fail(err)
		}

		lineNo := result.Lines + 1
		line := sc.Text()
		if len(line) > g.maxLineBytes {
			return fail(g.lineFailed(ctx, logger, lineNo, line, &IOError{Op: "read", Err: ErrLineTooLong}))
		}
		if !utf8.ValidString(line) {
			return fail(g.lineFailed(ctx, logger, lineNo, line, &IOError{Op: "decode", Err: ErrInvalidText}))
		}

		formatted, err := g.FormatLine(line)
		if err != nil {
			return fail(g.lineFailed(ctx, logger, lineNo, line, err))
		}

		n, err := writeRecord(bw, digest, line, formatted)
		result.Bytes += int64(n)
		if err != nil {
			return fail(&IOError{Op: "write", Err: err})
		}
		result.Lines++
		g.metrics.RecordLine(ctx, "")
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			err = fmt.Errorf("%w: %w", ErrLineTooLong, err)
		}
		return fail(&IOError{Op: "read", Err: err})
	}

	if err := bw.Flush(); err != nil {
		return result, &IOError{Op: "write", Err: err}
	}
	result.Digest = hex.EncodeToString(digest.Sum(nil))
	return result, nil
}

// lineFailed reports a failing line and wraps err with its position.
func (g *Generator) lineFailed(ctx context.Context, logger *slog.Logger, lineNo int, line string, err error) error {
	lineErr := &LineError{Line: lineNo, Template: line, Err: err}
	kind := string(KindOf(err))
	observability.LogLineError(logger, lineNo, kind, err)
	g.metrics.RecordLine(ctx, kind)
	g.spans.AddSpanEvent(ctx, "linefmt.line.failed",
		attribute.Int("line", lineNo),
		attribute.String("kind", kind),
	)
	return lineErr
}

// writeRecord writes "<line> <formatted>\n" to w and the digest.
func writeRecord(w *bufio.Writer, digest hash.Hash, line, formatted string) (int, error) {
	total := 0
	for _, part := range [...]string{line, " ", formatted, "\n"} {
		digest.Write([]byte(part))
		n, err := w.WriteString(part)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// record saves the run in history and compares it with the previous
// successful run over the same input.
func (g *Generator) record(logger *slog.Logger, result *Result, input, output string, started time.Time, runErr error) {
	if runErr == nil {
		prev, err := g.history.Latest(input)
		switch {
		case err == nil:
			result.PreviousRunID = prev.RunID
			result.Changed = prev.Digest != result.Digest
			if result.Changed && logger != nil {
				logger.Warn("output differs from previous run",
					slog.String("previous_run_id", prev.RunID),
					slog.String("previous_digest", prev.Digest),
					slog.String("digest", result.Digest),
				)
			}
		case !errors.Is(err, history.ErrNotFound):
			observability.LogHistoryError(logger, result.RunID, "latest", err)
		}
	}

	rec := history.Record{
		RunID:      result.RunID,
		Input:      input,
		Output:     output,
		Lines:      result.Lines,
		Bytes:      result.Bytes,
		Digest:     result.Digest,
		Status:     history.StatusSucceeded,
		StartedAt:  started,
		FinishedAt: started.Add(result.Duration),
	}
	if runErr != nil {
		rec.Status = history.StatusFailed
		rec.ErrorKind = string(KindOf(runErr))
		rec.Error = runErr.Error()
	}
	if err := g.history.Save(rec); err != nil {
		observability.LogHistoryError(logger, result.RunID, "save", err)
	}
}
