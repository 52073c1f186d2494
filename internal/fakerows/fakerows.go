// Package fakerows generates random CSV documents whose fields regularly
// contain commas, double quotes and newlines.
package fakerows

import (
	"github.com/brianvoe/gofakeit/v6"
)

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ "

// Suffixes appended to the base text of a field. Each is picked with
// probability 1/5; otherwise the base text is used unchanged.
const (
	CommaSuffix   = ", extra"
	QuoteSuffix   = ` "quote"`
	NewlineSuffix = "\nnext line"
)

// Generator produces reproducible random fields for a given seed.
// It is not safe for concurrent use.
type Generator struct {
	faker *gofakeit.Faker
}

// New returns a Generator seeded with seed. A zero seed picks a random one.
func New(seed int64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

// Field returns 5 to 15 random letters and spaces, sometimes followed by a
// comma, quote or newline suffix.
func (g *Generator) Field() string {
	n := g.faker.Number(5, 15)
	base := make([]byte, n)
	for i := range base {
		base[i] = alphabet[g.faker.Number(0, len(alphabet)-1)]
	}

	switch g.faker.Number(1, 5) {
	case 1:
		return string(base) + CommaSuffix
	case 2:
		return string(base) + QuoteSuffix
	case 3:
		return string(base) + NewlineSuffix
	}
	return string(base)
}

// Generate returns rows x cols random fields.
func (g *Generator) Generate(rows, cols int) [][]string {
	out := make([][]string, rows)
	for i := range out {
		row := make([]string, cols)
		for j := range row {
			row[j] = g.Field()
		}
		out[i] = row
	}
	return out
}

// Person returns a row of realistic contact data: name, comment and address.
// Addresses usually carry commas, which exercises quoting.
func (g *Generator) Person() []string {
	addr := g.faker.Address()
	return []string{
		g.faker.Name(),
		g.faker.Sentence(g.faker.Number(3, 8)),
		addr.Street + ", " + addr.City,
	}
}
