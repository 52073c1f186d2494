package roundtrip

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oleg578/plaincsv"
	"github.com/oleg578/plaincsv/internal/fakerows"
)

func TestCheckSample(t *testing.T) {
	const input = "name,comment\n" +
		"Ram,\"He said \"\"Hello\"\"\"\n" +
		"Sita,\"Line1\nLine2\"\n" +
		"Kumar,\"Flat 101, MG Road\"\n"

	res, err := Check(strings.NewReader(input), true)
	require.NoError(t, err)
	require.True(t, res.OK())
	require.Equal(t, 4, res.Rows)
	require.Equal(t, 8, res.Fields)
	require.Equal(t, len(input), res.Bytes)
}

func TestCheckNormalizesLooseQuoting(t *testing.T) {
	// Loose quoting reads permissively; the rewritten form still round-trips.
	res, err := Check(strings.NewReader("ab\"cd\"ef,\"x\"y\n"), false)
	require.NoError(t, err)
	require.True(t, res.OK())
	require.Equal(t, len("abcdef,xy\n"), res.Bytes)
}

func TestCheckStrictRejects(t *testing.T) {
	_, err := Check(strings.NewReader("a,\"b\n"), true)
	require.ErrorIs(t, err, plaincsv.ErrUnterminatedQuote)
}

func TestCheckDocumentGenerated(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		doc := fakerows.New(seed).Generate(200, 5)
		res, err := CheckDocument(doc)
		require.NoError(t, err)
		require.True(t, res.OK(), "seed %d: %+v", seed, res.Mismatch)
		require.Equal(t, 1000, res.Fields)
	}
}

func TestCheckDocumentReportsEmptyRow(t *testing.T) {
	// A row without fields cannot be represented and reads back as one empty field.
	res, err := CheckDocument([][]string{{"a"}, {}, {"b"}})
	require.NoError(t, err)
	require.False(t, res.OK())
	require.Equal(t, 2, res.Mismatch.Row)
	require.NotEmpty(t, res.Mismatch.Diff)
}

func TestCheckEmpty(t *testing.T) {
	res, err := Check(strings.NewReader(""), false)
	require.NoError(t, err)
	require.True(t, res.OK())
	require.Zero(t, res.Rows)
	require.Zero(t, res.Bytes)
}
