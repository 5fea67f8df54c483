package code_tree

import (
	"huffman-engine/internal/priority_queue"

	"github.com/pkg/errors"
)

var (
	ErrEmptyInput                      = errors.New("empty input, nothing to compress")
	ErrTreeConstructionInconsistency   = errors.New("inconsistent code tree construction")
	ErrTreeReconstructionInconsistency = errors.New("code tree does not match declared symbol count")
)

// Tree is a Huffman code tree. All nodes live in one arena and reference
// each other by index, so the whole tree is released together.
type Tree struct {
	nodes []Node
	root  NodeID
}

func newTree(capacity int) *Tree {
	return &Tree{
		nodes: make([]Node, 0, capacity),
		root:  NoNode,
	}
}

// Build merges the two least frequent subtrees until one is left. Leaves
// are seeded in ascending symbol order and merged nodes are pushed in the
// order they are created, which makes the tree deterministic for a given
// frequency table.
func Build(freqs *FrequencyTable) (*Tree, error) {
	distinct := freqs.Distinct()
	if distinct == 0 {
		return nil, errors.WithStack(ErrEmptyInput)
	}

	maxNodes := 2*distinct - 1
	t := newTree(maxNodes)
	pq := priority_queue.New[NodeID](maxNodes, t.frequency)

	for sym, f := range freqs {
		if f == 0 {
			continue
		}
		err := pq.Insert(t.addLeaf(byte(sym), f))
		if err != nil {
			return nil, errors.Wrap(err, "seed priority queue")
		}
	}

	for pq.Len() > 1 {
		x, err := pq.RemoveMin()
		if err != nil {
			return nil, err
		}
		y, err := pq.RemoveMin()
		if err != nil {
			return nil, err
		}
		err = pq.Insert(t.addInternal(x, y))
		if err != nil {
			return nil, errors.Wrap(err, "merge subtrees")
		}
	}

	if pq.Len() != 1 {
		return nil, errors.Wrapf(ErrTreeConstructionInconsistency, "%d nodes left in queue", pq.Len())
	}
	root, err := pq.RemoveMin()
	if err != nil {
		return nil, err
	}
	t.root = root
	return t, nil
}

func (t *Tree) addLeaf(symbol byte, freq uint64) NodeID {
	t.nodes = append(t.nodes, Node{Symbol: symbol, Freq: freq, Left: NoNode, Right: NoNode})
	return NodeID(len(t.nodes) - 1)
}

func (t *Tree) addInternal(left, right NodeID) NodeID {
	freq := t.nodes[left].Freq + t.nodes[right].Freq
	t.nodes = append(t.nodes, Node{Freq: freq, Left: left, Right: right})
	return NodeID(len(t.nodes) - 1)
}

func (t *Tree) frequency(id NodeID) uint64 {
	return t.nodes[id].Freq
}

func (t *Tree) Root() NodeID {
	return t.root
}

func (t *Tree) Node(id NodeID) Node {
	return t.nodes[id]
}

func (t *Tree) IsLeaf(id NodeID) bool {
	return t.nodes[id].IsLeaf()
}

// Step follows one edge: 0 goes left, 1 goes right.
func (t *Tree) Step(id NodeID, bit uint8) NodeID {
	if bit == 0 {
		return t.nodes[id].Left
	}
	return t.nodes[id].Right
}

// IsDegenerate reports whether the tree is a single leaf, which happens
// when the input has only one distinct symbol.
func (t *Tree) IsDegenerate() bool {
	return t.nodes[t.root].IsLeaf()
}

func (t *Tree) LeafCount() int {
	n := 0
	for i := range t.nodes {
		if t.nodes[i].IsLeaf() {
			n++
		}
	}
	return n
}

// Size returns the num of nodes, leaves and internal ones.
func (t *Tree) Size() int {
	return len(t.nodes)
}
