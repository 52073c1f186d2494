package plaincsv

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

var (
	errNilWriter      = errors.New("plaincsv: writer is nil")
	errWriterNoTarget = errors.New("plaincsv: writer destination cannot be nil")
)

// Writer emits minimally quoted CSV rows terminated by '\n'.
//
// Output is buffered; call Flush (or WriteAll, which flushes) to push it to
// the destination. The first destination error is kept and returned by
// every later call.
type Writer struct {
	dst *bufio.Writer

	err error
}

// NewWriter creates a Writer on top of w, panicking if w is nil.
func NewWriter(w io.Writer) *Writer {
	if w == nil {
		panic(errWriterNoTarget.Error())
	}
	return &Writer{
		dst: bufio.NewWriterSize(w, defaultBufferSize),
	}
}

// Reset discards unflushed output and the stored error and switches to dst.
func (w *Writer) Reset(dst io.Writer) {
	if w == nil {
		panic(errNilWriter.Error())
	}
	if dst == nil {
		panic(errWriterNoTarget.Error())
	}
	if w.dst == nil {
		w.dst = bufio.NewWriterSize(dst, defaultBufferSize)
	} else {
		w.dst.Reset(dst)
	}
	w.err = nil
}

// Write emits a single row followed by '\n'.
func (w *Writer) Write(record []string) error {
	if w == nil {
		return errNilWriter
	}
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}

	for i := range record {
		if i > 0 {
			if err := w.dst.WriteByte(','); err != nil {
				w.err = err
				return err
			}
		}
		if err := w.writeField(record[i]); err != nil {
			w.err = err
			return err
		}
	}

	if err := w.dst.WriteByte('\n'); err != nil {
		w.err = err
		return err
	}
	return nil
}

// WriteValues renders each value with FormatValue and writes them as one row.
func (w *Writer) WriteValues(values ...any) error {
	record := make([]string, len(values))
	for i, v := range values {
		record[i] = FormatValue(v)
	}
	return w.Write(record)
}

// WriteAll writes every record and flushes, stopping at the first error.
func (w *Writer) WriteAll(records [][]string) error {
	if w == nil {
		return errNilWriter
	}
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Flush writes buffered rows to the underlying writer.
func (w *Writer) Flush() error {
	if w == nil {
		return errNilWriter
	}
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}
	if err := w.dst.Flush(); err != nil {
		w.err = err
		return err
	}
	return nil
}

// Error reports the first error encountered by the writer.
func (w *Writer) Error() error {
	if w == nil {
		return errNilWriter
	}
	return w.err
}

func (w *Writer) writeField(field string) error {
	if !FieldNeedsQuotes(field) {
		_, err := w.dst.WriteString(field)
		return err
	}
	if err := w.dst.WriteByte('"'); err != nil {
		return err
	}

	for {
		i := strings.IndexByte(field, '"')
		if i < 0 {
			break
		}
		if _, err := w.dst.WriteString(field[:i+1]); err != nil {
			return err
		}
		// The quote just written is doubled.
		if err := w.dst.WriteByte('"'); err != nil {
			return err
		}
		field = field[i+1:]
	}
	if _, err := w.dst.WriteString(field); err != nil {
		return err
	}
	return w.dst.WriteByte('"')
}

// FieldNeedsQuotes reports whether field must be quoted when written,
// i.e. whether it contains a comma, a double quote or a newline.
func FieldNeedsQuotes(field string) bool {
	return strings.ContainsAny(field, ",\"\n")
}
