// Package roundtrip verifies that documents survive a Writer -> Reader cycle
// unchanged.
package roundtrip

import (
	"bytes"
	"io"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/xerrors"

	"github.com/oleg578/plaincsv"
)

// Mismatch describes the first row that did not survive the cycle.
type Mismatch struct {
	// Row is the 1-based index of the differing row.
	Row  int
	Diff string
}

// Result summarizes a check.
type Result struct {
	Rows     int
	Fields   int
	Bytes    int
	Mismatch *Mismatch
}

// OK reports whether the document round-tripped exactly.
func (r Result) OK() bool {
	return r.Mismatch == nil
}

// Check parses src, re-serializes the rows and parses them again. Bytes in
// the result is the size of the re-serialized form.
func Check(src io.Reader, strict bool) (Result, error) {
	reader := plaincsv.NewReader(src)
	reader.Strict = strict

	doc, err := reader.ReadAll()
	if err != nil {
		return Result{}, xerrors.Errorf("unable to read source near line %d: %w", reader.Line(), err)
	}
	return CheckDocument(doc)
}

// CheckDocument writes doc and compares what reads back with it.
func CheckDocument(doc [][]string) (Result, error) {
	var buf bytes.Buffer
	if err := plaincsv.NewWriter(&buf).WriteAll(doc); err != nil {
		return Result{}, xerrors.Errorf("unable to write document: %w", err)
	}

	res := Result{Rows: len(doc), Bytes: buf.Len()}
	for _, row := range doc {
		res.Fields += len(row)
	}

	reread, err := plaincsv.NewReader(&buf).ReadAll()
	if err != nil {
		return res, xerrors.Errorf("unable to reread document: %w", err)
	}

	for i := 0; i < len(doc) || i < len(reread); i++ {
		var want, got []string
		if i < len(doc) {
			want = doc[i]
		}
		if i < len(reread) {
			got = reread[i]
		}
		if diff := cmp.Diff(want, got); diff != "" {
			res.Mismatch = &Mismatch{Row: i + 1, Diff: diff}
			break
		}
	}
	return res, nil
}
