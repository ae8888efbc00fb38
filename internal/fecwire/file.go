package fecwire

import (
	"bufio"
	"io"
	"strings"

	"github.com/go-faster/errors"

	"github.com/observe-l/dnafountain/fec"
)

// WriteSymbols writes one nucleotide line per drop, in order.
func WriteSymbols(w io.Writer, c Codec, drops []fec.Drop) error {
	bw := bufio.NewWriter(w)
	for _, d := range drops {
		b, err := c.Marshal(d)
		if err != nil {
			return err
		}
		line, err := ToNucleotides(b)
		if err != nil {
			return errors.Wrapf(err, "seed %d", d.Seed)
		}
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return errors.Wrap(err, "write symbol")
		}
	}
	return bw.Flush()
}

// ReadSymbols parses a symbol stream. Blank lines are skipped and
// surrounding whitespace is ignored.
func ReadSymbols(r io.Reader, c Codec) ([]Symbol, error) {
	var out []Symbol
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		b, err := FromNucleotides(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
		sym, err := c.Unmarshal(b)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
		out = append(out, sym)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read symbols")
	}
	return out, nil
}

// Drops converts parsed symbols to decoder input. Positions are left for
// the decoder to derive.
func Drops(symbols []Symbol) []fec.Drop {
	out := make([]fec.Drop, len(symbols))
	for i, s := range symbols {
		out[i] = fec.Drop{Seed: s.Seed, Value: s.Payload}
	}
	return out
}
