package code_tree

import "strings"

// Code is a prefix code as a sequence of 0/1 bits, root first.
type Code []uint8

func (c Code) String() string {
	var sb strings.Builder
	for _, bit := range c {
		sb.WriteByte('0' + bit)
	}
	return sb.String()
}

// CodeTable maps every symbol to its code. Symbols missing from the tree
// have a nil code; the single symbol of a degenerate tree has an empty one.
type CodeTable [AlphabetSize]Code

func (t *Tree) Codes() *CodeTable {
	var table CodeTable
	path := make([]uint8, 0, AlphabetSize)
	t.assignCodes(t.root, path, &table)
	return &table
}

func (t *Tree) assignCodes(id NodeID, path []uint8, table *CodeTable) {
	n := &t.nodes[id]
	if n.IsLeaf() {
		code := make(Code, len(path))
		copy(code, path)
		table[n.Symbol] = code
		return
	}
	t.assignCodes(n.Left, append(path, 0), table)
	t.assignCodes(n.Right, append(path, 1), table)
}

func (ct *CodeTable) Has(symbol byte) bool {
	return ct[symbol] != nil
}

// PayloadBits returns the num of bits needed to encode an input with the
// given frequencies.
func (ct *CodeTable) PayloadBits(freqs *FrequencyTable) uint64 {
	var bits uint64
	for sym, f := range freqs {
		bits += f * uint64(len(ct[sym]))
	}
	return bits
}
