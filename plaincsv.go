// # PlainCSV: A Permissive Streaming CSV Codec for Go
//
// PlainCSV reads and writes comma separated text with quoted fields, embedded commas, embedded newlines and doubled-quote escapes. Anything written by Writer reads back unchanged through Reader.
//
// # Features
//
// - Pull-based Reader: one row per `Read` call, `ReadAll`, and a range-over-func `Rows` sequence.
// - Permissive parsing by default: malformed quoting is resolved on a best-effort basis and never reported.
// - Opt-in `Reader.Strict` mode reporting `ErrBareQuote`, `ErrTextAfterQuote` and `ErrUnterminatedQuote` as `*ParseError` with line and column.
// - Minimal quoting in Writer: a field is quoted only when it contains a comma, a double quote or a newline.
// - `Writer.WriteValues` coerces arbitrary Go values to text with `FormatValue`.
// - Rows always end with '\n'. Carriage returns are ordinary data unless `Reader.TrimCR` is set.
//
// # Getting Started
//
//	r := plaincsv.NewReader(src)
//	for record, err := range r.Rows() {
//		if err != nil {
//			return err
//		}
//		process(record)
//	}
//
//	w := plaincsv.NewWriter(dst)
//	if err := w.WriteAll(records); err != nil {
//		return err
//	}
package plaincsv
