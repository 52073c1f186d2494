package plaincsv

import (
	"bytes"
	stdcsv "encoding/csv"
	"io"
	"testing"

	"github.com/oleg578/plaincsv/internal/fakerows"
)

func benchmarkRows() [][]string {
	return fakerows.New(42).Generate(1000, 5)
}

func benchmarkData(b *testing.B) []byte {
	b.Helper()

	var buf bytes.Buffer
	if err := NewWriter(&buf).WriteAll(benchmarkRows()); err != nil {
		b.Fatal(err)
	}
	return buf.Bytes()
}

func BenchmarkReader(b *testing.B) {
	data := benchmarkData(b)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	for i := 0; i < b.N; i++ {
		cr := NewReader(bytes.NewReader(data))
		cr.ReuseRecord = true

		for {
			if _, err := cr.Read(); err != nil {
				if err == io.EOF {
					break
				}
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkEncodingCSVReader(b *testing.B) {
	data := benchmarkData(b)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	for i := 0; i < b.N; i++ {
		cr := stdcsv.NewReader(bytes.NewReader(data))
		cr.ReuseRecord = true

		for {
			if _, err := cr.Read(); err != nil {
				if err == io.EOF {
					break
				}
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkWriter(b *testing.B) {
	rows := benchmarkRows()
	b.ReportAllocs()
	b.SetBytes(int64(len(benchmarkData(b))))

	for i := 0; i < b.N; i++ {
		if err := NewWriter(io.Discard).WriteAll(rows); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEncodingCSVWriter(b *testing.B) {
	rows := benchmarkRows()
	b.ReportAllocs()
	b.SetBytes(int64(len(benchmarkData(b))))

	for i := 0; i < b.N; i++ {
		if err := stdcsv.NewWriter(io.Discard).WriteAll(rows); err != nil {
			b.Fatal(err)
		}
	}
}
