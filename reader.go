package plaincsv

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
	"unsafe"
)

const (
	defaultBufferSize = 1 << 10 // 1024 bytes

	// maxEmptyReads bounds how many times the source may return (0, nil) in a row.
	maxEmptyReads = 100
)

var (
	// ErrBareQuote is returned in strict mode when a quote appears inside an unquoted field that already has content.
	ErrBareQuote = errors.New("plaincsv: bare quote in non-quoted field")
	// ErrTextAfterQuote is returned in strict mode when a closing quote is followed by something other than a delimiter.
	ErrTextAfterQuote = errors.New("plaincsv: extraneous text after closing quote")
	// ErrUnterminatedQuote is returned in strict mode when the input ends inside a quoted field.
	ErrUnterminatedQuote = errors.New("plaincsv: unterminated quoted field")
	// ErrFieldCount is returned together with a row whose width differs from FieldsPerRecord.
	ErrFieldCount = errors.New("plaincsv: wrong number of fields")
)

// ParseError contains location information for strict-mode parsing errors.
type ParseError struct {
	Line   int
	Column int
	Err    error
}

// Error formats the parse error message with the stored line, column, and Err values.
func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("plaincsv: parse error on line %d, column %d: %v", e.Line, e.Column, e.Err)
}

// Unwrap returns the underlying Err so ParseError participates in errors.Is.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Reader parses comma separated rows from a byte stream one row per call.
//
// The zero configuration is permissive: malformed quoting never produces an
// error and the reader always terminates with best-effort field boundaries.
// A Reader is not safe for concurrent use and cannot be rewound.
type Reader struct {
	src io.Reader

	// ReuseRecord indicates whether Read may reuse the backing array of the returned slice.
	ReuseRecord bool
	// FieldsPerRecord, when positive, makes Read return ErrFieldCount for rows of a different width.
	FieldsPerRecord int
	// Strict reports malformed quoting as *ParseError instead of accepting it.
	Strict bool
	// TrimCR treats an unquoted "\r\n" as a plain "\n". By default '\r' is ordinary data.
	TrimCR bool

	buf        []byte
	bufPos     int
	bufLen     int
	bufErr     error
	emptyReads int

	record      []string
	dataBuf     []byte
	fieldBounds []int
	finished    bool
	err         error
	line        int
	column      int
}

// NewReader creates a Reader that consumes CSV data from r, panicking if r is nil.
func NewReader(r io.Reader) *Reader {
	if r == nil {
		panic("plaincsv: reader source cannot be nil")
	}

	return &Reader{
		src:         r,
		buf:         make([]byte, defaultBufferSize),
		record:      make([]string, 0, 16),
		dataBuf:     make([]byte, 0, 512),
		fieldBounds: make([]int, 0, 32),
		line:        1,
	}
}

// Line returns the 1-based line number of the next byte to be consumed.
// Newlines embedded in quoted fields count as line breaks.
func (r *Reader) Line() int {
	return r.line
}

// Read returns the next row. io.EOF signals that the sequence is exhausted;
// every later call returns io.EOF again. Errors from the source are returned
// unchanged and are sticky.
func (r *Reader) Read() ([]string, error) {
	if r == nil || r.src == nil {
		return nil, io.EOF
	}
	if r.err != nil {
		return nil, r.err
	}
	if r.finished {
		return nil, io.EOF
	}

	record, err := r.readRecord()
	if err != nil && err != io.EOF && !errors.Is(err, ErrFieldCount) {
		r.err = err
	}
	return record, err
}

// ReadAll exhausts the reader and returns every remaining row. It returns
// nil records together with the first error other than io.EOF.
func (r *Reader) ReadAll() (records [][]string, err error) {
	for {
		record, err := r.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		if r.ReuseRecord {
			record = cloneRecord(record)
		}
		records = append(records, record)
	}
}

// Rows returns a single-use sequence over the remaining rows. Iteration ends
// at io.EOF, which is not yielded, or right after a non-recoverable error is
// yielded. Rows of the wrong width are yielded with ErrFieldCount and
// iteration continues.
func (r *Reader) Rows() iter.Seq2[[]string, error] {
	return func(yield func([]string, error) bool) {
		for {
			record, err := r.Read()
			if err == io.EOF {
				return
			}
			if !yield(record, err) {
				return
			}
			if err != nil && !errors.Is(err, ErrFieldCount) {
				return
			}
		}
	}
}

func (r *Reader) readRecord() ([]string, error) {
	if r.ReuseRecord {
		r.record = r.record[:0]
	} else {
		r.record = nil
	}
	r.dataBuf = r.dataBuf[:0]
	r.fieldBounds = r.fieldBounds[:0]

	fieldStart := 0
	inQuotes := false
	// closedQuote marks a quoted span that ended in this row, so `""` alone still yields a row.
	closedQuote := false

	for {
		b, err := r.readByte()
		if err != nil {
			if err != io.EOF {
				return nil, err
			}
			if inQuotes && r.Strict {
				r.finished = true
				return nil, r.wrapError(r.column+1, ErrUnterminatedQuote)
			}
			if len(r.fieldBounds) == 0 && len(r.dataBuf) == fieldStart && !closedQuote {
				r.finished = true
				return nil, io.EOF
			}
			// Flush the trailing field of a row that ended without a newline.
			r.fieldBounds = append(r.fieldBounds, fieldStart, len(r.dataBuf))
			r.finished = true
			return r.buildRecord()
		}
		r.column++

		if inQuotes {
			switch b {
			case '"':
				next, err := r.peekByte()
				if err == nil && next == '"' {
					// Doubled quote inside quotes is one literal quote.
					r.bufPos++
					r.column++
					r.dataBuf = append(r.dataBuf, '"')
					continue
				}
				if err != nil && err != io.EOF {
					return nil, err
				}
				inQuotes = false
				closedQuote = true
				if r.Strict && err == nil && !r.isTerminator(next) {
					return nil, r.wrapError(r.column+1, ErrTextAfterQuote)
				}
			case '\n':
				r.dataBuf = append(r.dataBuf, b)
				r.line++
				r.column = 0
			default:
				r.appendRun(true)
			}
			continue
		}

		switch b {
		case ',':
			r.fieldBounds = append(r.fieldBounds, fieldStart, len(r.dataBuf))
			fieldStart = len(r.dataBuf)
		case '\n':
			r.fieldBounds = append(r.fieldBounds, fieldStart, len(r.dataBuf))
			r.line++
			r.column = 0
			return r.buildRecord()
		case '"':
			if r.Strict && len(r.dataBuf) > fieldStart {
				return nil, r.wrapError(r.column, ErrBareQuote)
			}
			inQuotes = true
		case '\r':
			if r.TrimCR {
				next, err := r.peekByte()
				if err != nil && err != io.EOF {
					return nil, err
				}
				if err == nil && next == '\n' {
					continue
				}
			}
			r.dataBuf = append(r.dataBuf, b)
		default:
			r.appendRun(false)
		}
	}
}

// isTerminator reports whether b may directly follow a closing quote in strict mode.
func (r *Reader) isTerminator(b byte) bool {
	switch b {
	case ',', '\n':
		return true
	case '\r':
		return r.TrimCR
	}
	return false
}

// appendRun appends the byte just read and the contiguous ordinary bytes buffered after it.
func (r *Reader) appendRun(quoted bool) {
	start := r.bufPos - 1
	run := 1
	for _, c := range r.buf[r.bufPos:r.bufLen] {
		if c == '"' || c == '\n' {
			break
		}
		if !quoted && (c == ',' || c == '\r') {
			break
		}
		run++
	}
	r.bufPos += run - 1
	r.column += run - 1
	r.dataBuf = append(r.dataBuf, r.buf[start:start+run]...)
}

// buildRecord maps the accumulated fieldBounds onto the data buffer, respecting ReuseRecord.
func (r *Reader) buildRecord() ([]string, error) {
	fieldCount := len(r.fieldBounds) / 2

	var recordStr string
	if r.ReuseRecord {
		if len(r.dataBuf) > 0 {
			// Zero-copy string construction so fields share a single backing buffer.
			recordStr = unsafe.String(unsafe.SliceData(r.dataBuf), len(r.dataBuf))
		}
		if cap(r.record) < fieldCount {
			r.record = make([]string, fieldCount)
		}
		r.record = r.record[:fieldCount]
	} else {
		recordStr = string(r.dataBuf)
		r.record = make([]string, fieldCount)
	}

	for i := 0; i < fieldCount; i++ {
		r.record[i] = recordStr[r.fieldBounds[2*i]:r.fieldBounds[2*i+1]]
	}

	if r.FieldsPerRecord > 0 && len(r.record) != r.FieldsPerRecord {
		return r.record, ErrFieldCount
	}
	return r.record, nil
}

// cloneRecord copies fields that may alias the reader's reused buffer.
func cloneRecord(record []string) []string {
	out := make([]string, len(record))
	for i, field := range record {
		out[i] = strings.Clone(field)
	}
	return out
}

// wrapError attaches the current line and supplied column to err.
func (r *Reader) wrapError(column int, err error) error {
	return &ParseError{Line: r.line, Column: column, Err: err}
}

func (r *Reader) readByte() (byte, error) {
	if err := r.fill(); err != nil {
		return 0, err
	}
	b := r.buf[r.bufPos]
	r.bufPos++
	return b, nil
}

// peekByte returns the next byte without consuming it.
func (r *Reader) peekByte() (byte, error) {
	if err := r.fill(); err != nil {
		return 0, err
	}
	return r.buf[r.bufPos], nil
}

// fill makes at least one unread byte available or returns the source error.
// A source error is kept and reported again once the buffer drains.
func (r *Reader) fill() error {
	for r.bufPos >= r.bufLen {
		if r.bufErr != nil {
			return r.bufErr
		}
		n, err := r.src.Read(r.buf)
		if n < 0 || n > len(r.buf) {
			return io.ErrShortBuffer
		}
		r.bufPos, r.bufLen, r.bufErr = 0, n, err
		if n > 0 {
			r.emptyReads = 0
			continue
		}
		if err == nil {
			r.emptyReads++
			if r.emptyReads >= maxEmptyReads {
				return io.ErrNoProgress
			}
		}
	}
	return nil
}
