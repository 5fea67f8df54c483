package codec

import (
	"huffman-engine/internal/code_tree"
	"huffman-engine/internal/priority_queue"

	"github.com/pkg/errors"
)

var (
	// ErrCorruptStream reports an encoded file whose bits do not add up:
	// too short, a padding count above 7, or a payload that stops in the
	// middle of a code.
	ErrCorruptStream = errors.New("corrupt encoded stream")

	// ErrRunLengthLimit reports a single symbol input longer than the
	// configured max run length.
	ErrRunLengthLimit = errors.New("run length limit exceeded")

	ErrEmptyInput                      = code_tree.ErrEmptyInput
	ErrHeapCapacityExceeded            = priority_queue.ErrCapacityExceeded
	ErrTreeConstructionInconsistency   = code_tree.ErrTreeConstructionInconsistency
	ErrTreeReconstructionInconsistency = code_tree.ErrTreeReconstructionInconsistency
)
