package code_tree

import (
	"bytes"
	"math"
	"testing"

	"huffman-engine/internal/bit_io"

	"github.com/stretchr/testify/require"
)

func serialize(t *testing.T, tree *Tree) []byte {
	t.Helper()
	var out bytes.Buffer
	w := bit_io.NewBitWriter(&out, 0)
	require.NoError(t, tree.WriteTree(w))
	require.Equal(t, tree.SerializedBits(), w.BitsWritten())
	_, err := w.Pad()
	require.NoError(t, err)
	require.NoError(t, w.Flush())
	return out.Bytes()
}

func readBack(data []byte, declared int) (*Tree, error) {
	r := bit_io.NewBitReader(bytes.NewReader(data), 0)
	return ReadTree(r, declared, uint64(len(data))*8)
}

func TestWriteTreeLayout(t *testing.T) {
	tree, _ := buildFrom(t, "aaab")
	// 0, 1 'b', 1 'a', padded with five zero bits
	require.Equal(t, []byte{0b01011000, 0b10101100, 0b00100000}, serialize(t, tree))
	require.Equal(t, byte(2), tree.SymbolCountHeader())
}

func TestWriteDegenerateTree(t *testing.T) {
	tree, _ := buildFrom(t, "qqqq")
	require.Equal(t, []byte{0b10111000, 0b10000000}, serialize(t, tree))
	require.Equal(t, uint64(9), tree.SerializedBits())
}

func TestTreeRoundTrip(t *testing.T) {
	inputs := []string{
		"x",
		"aaab",
		"abracadabra",
		"the quick brown fox jumps over the lazy dog",
		string(bytes.Repeat([]byte{0, 1, 2, 3, 255, 254}, 10)),
	}
	for _, in := range inputs {
		tree, codes := buildFrom(t, in)
		decoded, err := readBack(serialize(t, tree), DeclaredSymbols(tree.SymbolCountHeader()))
		require.NoError(t, err, "input %q", in)
		require.Equal(t, codes, decoded.Codes(), "input %q", in)
		require.Equal(t, tree.IsDegenerate(), decoded.IsDegenerate())
		require.Equal(t, tree.Size(), decoded.Size())
	}
}

func TestTreeRoundTripAllSymbols(t *testing.T) {
	var ft FrequencyTable
	for sym := range ft {
		ft[sym] = uint64(sym%7 + 1)
	}
	tree, err := Build(&ft)
	require.NoError(t, err)

	decoded, err := readBack(serialize(t, tree), DeclaredSymbols(tree.SymbolCountHeader()))
	require.NoError(t, err)
	require.Equal(t, tree.Codes(), decoded.Codes())
	require.Equal(t, 256, decoded.LeafCount())
}

func TestReadTreeDeclaredCountMismatch(t *testing.T) {
	tree, _ := buildFrom(t, "abracadabra")
	data := serialize(t, tree)

	_, err := readBack(data, 4)
	require.ErrorIs(t, err, ErrTreeReconstructionInconsistency)

	_, err = readBack(data, 6)
	require.ErrorIs(t, err, ErrTreeReconstructionInconsistency)

	_, err = readBack(data, 5)
	require.NoError(t, err)
}

func TestReadTreeSingleLeafWithInternalRoot(t *testing.T) {
	// declared 1 but the first marker is an internal node
	_, err := readBack([]byte{0x00, 0x00, 0x00}, 1)
	require.ErrorIs(t, err, ErrTreeReconstructionInconsistency)
}

func TestReadTreeDuplicateSymbol(t *testing.T) {
	var out bytes.Buffer
	w := bit_io.NewBitWriter(&out, 0)
	require.NoError(t, w.WriteBit(0))
	require.NoError(t, w.WriteBit(1))
	require.NoError(t, w.WriteSymbol('a'))
	require.NoError(t, w.WriteBit(1))
	require.NoError(t, w.WriteSymbol('a'))
	_, err := w.Pad()
	require.NoError(t, err)
	require.NoError(t, w.Flush())

	_, err = readBack(out.Bytes(), 2)
	require.ErrorIs(t, err, ErrTreeReconstructionInconsistency)
}

func TestReadTreePastLimit(t *testing.T) {
	tree, _ := buildFrom(t, "abracadabra")
	data := serialize(t, tree)

	r := bit_io.NewBitReader(bytes.NewReader(data), 0)
	_, err := ReadTree(r, 5, tree.SerializedBits()-1)
	require.ErrorIs(t, err, ErrTreeReconstructionInconsistency)
}

func TestReadTreeInvalidDeclared(t *testing.T) {
	_, err := readBack([]byte{0xFF}, 0)
	require.ErrorIs(t, err, ErrTreeReconstructionInconsistency)

	_, err = readBack([]byte{0xFF}, 257)
	require.ErrorIs(t, err, ErrTreeReconstructionInconsistency)
}

func TestReadTreeAllInternalMarkers(t *testing.T) {
	_, err := ReadTree(bit_io.NewBitReader(bytes.NewReader(make([]byte, 64)), 0), 256, math.MaxUint64)
	require.ErrorIs(t, err, ErrTreeReconstructionInconsistency)
}

func TestDeclaredSymbols(t *testing.T) {
	require.Equal(t, 256, DeclaredSymbols(0))
	require.Equal(t, 1, DeclaredSymbols(1))
	require.Equal(t, 255, DeclaredSymbols(255))
}
