package code_tree

import (
	"io"

	"github.com/pkg/errors"
)

const AlphabetSize = 256

// FrequencyTable counts occurrences of every byte value. The index is the
// symbol, so iteration is always in ascending symbol order.
type FrequencyTable [AlphabetSize]uint64

const countChunkSize = 32 * 1024

// Add counts every byte of data.
func (ft *FrequencyTable) Add(data []byte) {
	for _, b := range data {
		ft[b]++
	}
}

func CountFrequencies(r io.Reader) (*FrequencyTable, error) {
	var ft FrequencyTable
	chunk := make([]byte, countChunkSize)
	for {
		n, err := r.Read(chunk)
		ft.Add(chunk[:n])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "count frequencies")
		}
	}
	return &ft, nil
}

// Total returns the sum of all counters, i.e. the input length in bytes.
func (ft *FrequencyTable) Total() uint64 {
	var total uint64
	for _, f := range ft {
		total += f
	}
	return total
}

// Distinct returns the num of symbols that occur at least once.
func (ft *FrequencyTable) Distinct() int {
	n := 0
	for _, f := range ft {
		if f > 0 {
			n++
		}
	}
	return n
}

type SymbolFrequency struct {
	Symbol    byte
	Frequency uint64
}

func (ft *FrequencyTable) Entries() []SymbolFrequency {
	entries := make([]SymbolFrequency, 0, ft.Distinct())
	for sym, f := range ft {
		if f > 0 {
			entries = append(entries, SymbolFrequency{Symbol: byte(sym), Frequency: f})
		}
	}
	return entries
}
