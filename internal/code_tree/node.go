package code_tree

type NodeID int32

// NoNode marks a missing child. Leaves have NoNode on both sides.
const NoNode NodeID = -1

type Node struct {
	Symbol byte
	Freq   uint64
	Left   NodeID
	Right  NodeID
}

func (n *Node) IsLeaf() bool {
	return n.Left == NoNode && n.Right == NoNode
}
