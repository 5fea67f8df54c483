package code_tree

import (
	"huffman-engine/internal/bit_io"

	"github.com/pkg/errors"
)

const (
	internalMarker = 0
	leafMarker     = 1
)

// SymbolCountHeader is the one byte symbol count written before the tree.
// 256 distinct symbols do not fit and are written as 0.
func (t *Tree) SymbolCountHeader() byte {
	return byte(t.LeafCount())
}

// DeclaredSymbols reads a symbol count header back. An encoded file always
// holds at least one symbol, so 0 can only stand for 256.
func DeclaredSymbols(header byte) int {
	if header == 0 {
		return AlphabetSize
	}
	return int(header)
}

// WriteTree writes the tree in pre-order: a 1 bit and the symbol for every
// leaf, a 0 bit for every internal node followed by its left and right
// subtrees.
func (t *Tree) WriteTree(w *bit_io.BitWriter) error {
	return t.writeNode(t.root, w)
}

func (t *Tree) writeNode(id NodeID, w *bit_io.BitWriter) error {
	n := &t.nodes[id]
	if n.IsLeaf() {
		err := w.WriteBit(leafMarker)
		if err != nil {
			return err
		}
		return w.WriteSymbol(n.Symbol)
	}

	err := w.WriteBit(internalMarker)
	if err != nil {
		return err
	}
	err = t.writeNode(n.Left, w)
	if err != nil {
		return err
	}
	return t.writeNode(n.Right, w)
}

// SerializedBits returns the size of the pre-order description: one marker
// bit per node and 8 bits per leaf symbol.
func (t *Tree) SerializedBits() uint64 {
	return uint64(t.Size()) + 8*uint64(t.LeafCount())
}

type treeReader struct {
	r         *bit_io.BitReader
	tree      *Tree
	limit     uint64 // bit position the description must end before
	remaining int    // leaves still expected
	open      int    // subtrees started but not yet read
	seen      [AlphabetSize]bool
}

// ReadTree rebuilds a tree written by WriteTree. declared is the symbol
// count from the header and limit is the first bit position that does not
// belong to the tree or payload. Any shape that cannot hold exactly the
// declared number of distinct leaves is rejected.
func ReadTree(r *bit_io.BitReader, declared int, limit uint64) (*Tree, error) {
	if declared < 1 || declared > AlphabetSize {
		return nil, errors.Wrapf(ErrTreeReconstructionInconsistency, "declared %d symbols", declared)
	}

	tr := &treeReader{
		r:         r,
		tree:      newTree(2*declared - 1),
		limit:     limit,
		remaining: declared,
		open:      1,
	}
	root, err := tr.readNode()
	if err != nil {
		return nil, err
	}
	if tr.remaining != 0 {
		return nil, errors.Wrapf(ErrTreeReconstructionInconsistency,
			"tree has %d leaves, header declared %d", declared-tr.remaining, declared)
	}
	tr.tree.root = root
	return tr.tree, nil
}

func (tr *treeReader) readBit() (uint8, error) {
	if tr.r.Position() >= tr.limit {
		return 0, errors.Wrap(ErrTreeReconstructionInconsistency, "tree runs past end of payload")
	}
	return tr.r.ReadBit()
}

func (tr *treeReader) readNode() (NodeID, error) {
	marker, err := tr.readBit()
	if err != nil {
		return NoNode, err
	}

	if marker == leafMarker {
		if tr.r.Position()+8 > tr.limit {
			return NoNode, errors.Wrap(ErrTreeReconstructionInconsistency, "leaf symbol runs past end of payload")
		}
		if tr.remaining == 0 {
			return NoNode, errors.Wrap(ErrTreeReconstructionInconsistency, "more leaves than declared")
		}
		symbol, err := tr.r.ReadSymbol()
		if err != nil {
			return NoNode, err
		}
		if tr.seen[symbol] {
			return NoNode, errors.Wrapf(ErrTreeReconstructionInconsistency, "symbol %#02x appears twice", symbol)
		}
		tr.seen[symbol] = true
		tr.remaining--
		tr.open--
		return tr.tree.addLeaf(symbol, 0), nil
	}

	// every open subtree needs at least one more leaf
	tr.open++
	if tr.open > tr.remaining {
		return NoNode, errors.Wrap(ErrTreeReconstructionInconsistency, "more internal nodes than declared symbols allow")
	}
	left, err := tr.readNode()
	if err != nil {
		return NoNode, err
	}
	right, err := tr.readNode()
	if err != nil {
		return NoNode, err
	}
	return tr.tree.addInternal(left, right), nil
}
