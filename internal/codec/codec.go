// Package codec reads and writes the encoded file format.
//
// Encoded layout, bits MSB first:
//
//	byte 0   distinct symbol count (256 is written as 0)
//	bits     pre-order tree, 1+symbol per leaf, 0 per internal node
//	bits     payload, the code of every input byte in order
//	bits     0-7 zero padding bits
//	last     padding bit count
//
// A tree with a single leaf gives its symbol an empty code, which cannot
// record how often it occurs. For that case the format is extended: the
// payload holds the number of occurrences as an unsigned varint. Decoders
// that expect zero payload bits for a single leaf reject these streams.
package codec

import (
	"bufio"
	"encoding/binary"
	"io"

	"huffman-engine/config"
	"huffman-engine/internal/bit_io"
	"huffman-engine/internal/code_tree"

	"github.com/pkg/errors"
)

const paddingByteSize = 1

type Stats struct {
	InputBytes  uint64
	OutputBytes uint64
	Symbols     int
	TreeBits    uint64
	PayloadBits uint64
	PaddingBits int
}

// Ratio is the output size divided by the input size.
func (s *Stats) Ratio() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return float64(s.OutputBytes) / float64(s.InputBytes)
}

type Codec struct {
	Config config.CodecConfig
}

func NewCodec(c config.CodecConfig) *Codec {
	if c.MaxRunLength <= 0 {
		c.MaxRunLength = config.DefaultMaxRunLength
	}
	return &Codec{
		Config: c,
	}
}

// Analysis holds what the encoder derives from the input before writing.
type Analysis struct {
	Frequencies *code_tree.FrequencyTable
	Tree        *code_tree.Tree
	Codes       *code_tree.CodeTable
}

// Analyze counts symbol frequencies and builds the code tree. Empty input
// is rejected before any tree is built.
func (c *Codec) Analyze(src io.Reader) (*Analysis, error) {
	freqs, err := code_tree.CountFrequencies(bufio.NewReaderSize(src, c.Config.ReadBufferSize))
	if err != nil {
		return nil, err
	}
	if freqs.Total() == 0 {
		return nil, errors.WithStack(ErrEmptyInput)
	}

	tree, err := code_tree.Build(freqs)
	if err != nil {
		return nil, err
	}
	return &Analysis{
		Frequencies: freqs,
		Tree:        tree,
		Codes:       tree.Codes(),
	}, nil
}

// Encode compresses src into dst. src is read twice, once to count
// frequencies and once to emit codes.
func (c *Codec) Encode(src io.ReadSeeker, dst io.Writer) (*Stats, error) {
	a, err := c.Analyze(src)
	if err != nil {
		return nil, err
	}
	_, err = src.Seek(0, io.SeekStart)
	if err != nil {
		return nil, errors.Wrap(err, "rewind input")
	}
	return c.EncodeWith(a, src, dst)
}

// EncodeWith writes src using a previously built analysis. src must hold
// exactly the bytes the analysis was built from.
func (c *Codec) EncodeWith(a *Analysis, src io.Reader, dst io.Writer) (*Stats, error) {
	stats := &Stats{
		InputBytes: a.Frequencies.Total(),
		Symbols:    a.Tree.LeafCount(),
	}
	if a.Tree.IsDegenerate() && stats.InputBytes > uint64(c.Config.MaxRunLength) {
		return nil, errors.Wrapf(ErrRunLengthLimit, "run of %d bytes, limit %d", stats.InputBytes, c.Config.MaxRunLength)
	}

	w := bit_io.NewBitWriter(dst, c.Config.WriteBufferSize)
	err := w.WriteSymbol(a.Tree.SymbolCountHeader())
	if err != nil {
		return nil, err
	}
	err = a.Tree.WriteTree(w)
	if err != nil {
		return nil, err
	}
	stats.TreeBits = a.Tree.SerializedBits()

	payloadStart := w.BitsWritten()
	if a.Tree.IsDegenerate() {
		err = writeRunLength(w, a.Frequencies.Total())
	} else {
		err = writeCodes(w, a.Codes, bufio.NewReaderSize(src, c.Config.ReadBufferSize))
	}
	if err != nil {
		return nil, err
	}
	stats.PayloadBits = w.BitsWritten() - payloadStart

	// src changed since it was analyzed
	if !a.Tree.IsDegenerate() && stats.PayloadBits != a.Codes.PayloadBits(a.Frequencies) {
		return nil, errors.Wrapf(ErrTreeConstructionInconsistency, "wrote %d payload bits, expected %d",
			stats.PayloadBits, a.Codes.PayloadBits(a.Frequencies))
	}

	stats.PaddingBits, err = w.Pad()
	if err != nil {
		return nil, err
	}
	err = w.WriteSymbol(byte(stats.PaddingBits))
	if err != nil {
		return nil, err
	}
	err = w.Flush()
	if err != nil {
		return nil, errors.Wrap(err, "flush encoded output")
	}

	stats.OutputBytes = w.BitsWritten() / 8
	return stats, nil
}

func writeCodes(w *bit_io.BitWriter, codes *code_tree.CodeTable, src io.ByteReader) error {
	for {
		b, err := src.ReadByte()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "read input")
		}
		code := codes[b]
		if code == nil {
			return errors.Wrapf(ErrTreeConstructionInconsistency, "no code for symbol %#02x", b)
		}
		err = w.WriteCode(code)
		if err != nil {
			return err
		}
	}
}

func writeRunLength(w *bit_io.BitWriter, count uint64) error {
	buf := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(buf, count)
	for _, b := range buf[:n] {
		err := w.WriteSymbol(b)
		if err != nil {
			return err
		}
	}
	return nil
}

// Decode restores the original bytes of an encoded stream into dst.
func (c *Codec) Decode(src io.ReadSeeker, dst io.Writer) (*Stats, error) {
	size, padding, err := readTrailer(src)
	if err != nil {
		return nil, err
	}

	// payload ends before the padding bits and the trailing count byte
	end := uint64(size-paddingByteSize)*8 - uint64(padding)

	r := bit_io.NewBitReader(src, c.Config.ReadBufferSize)
	header, err := r.ReadSymbol()
	if err != nil {
		return nil, corrupt(err)
	}
	tree, err := code_tree.ReadTree(r, code_tree.DeclaredSymbols(header), end)
	if err != nil {
		return nil, corrupt(err)
	}

	stats := &Stats{
		InputBytes:  uint64(size),
		Symbols:     tree.LeafCount(),
		TreeBits:    r.Position() - 8,
		PayloadBits: end - r.Position(),
		PaddingBits: padding,
	}

	out := bufio.NewWriterSize(dst, c.Config.WriteBufferSize)
	if tree.IsDegenerate() {
		stats.OutputBytes, err = readRunLength(r, tree, end, uint64(c.Config.MaxRunLength), out)
	} else {
		stats.OutputBytes, err = readCodes(r, tree, end, out)
	}
	if err != nil {
		return nil, err
	}

	err = out.Flush()
	if err != nil {
		return nil, errors.Wrap(err, "flush decoded output")
	}
	return stats, nil
}

// readTrailer returns the stream size and the padding count stored in its
// last byte, leaving src at the start.
func readTrailer(src io.ReadSeeker) (int64, int, error) {
	size, err := src.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, 0, errors.Wrap(err, "seek end of input")
	}
	// count byte, one tree leaf and the padding byte
	if size < 3 {
		return 0, 0, errors.Wrapf(ErrCorruptStream, "stream of %d bytes is too short", size)
	}

	_, err = src.Seek(-paddingByteSize, io.SeekEnd)
	if err != nil {
		return 0, 0, errors.Wrap(err, "seek padding byte")
	}
	last := make([]byte, 1)
	_, err = io.ReadFull(src, last)
	if err != nil {
		return 0, 0, errors.Wrap(err, "read padding byte")
	}
	if last[0] > 7 {
		return 0, 0, errors.Wrapf(ErrCorruptStream, "padding count %d out of range", last[0])
	}

	_, err = src.Seek(0, io.SeekStart)
	if err != nil {
		return 0, 0, errors.Wrap(err, "rewind input")
	}
	return size, int(last[0]), nil
}

func readCodes(r *bit_io.BitReader, tree *code_tree.Tree, end uint64, out io.ByteWriter) (uint64, error) {
	var written uint64
	current := tree.Root()
	for r.Position() < end {
		bit, err := r.ReadBit()
		if err != nil {
			return written, corrupt(err)
		}
		current = tree.Step(current, bit)
		if tree.IsLeaf(current) {
			err = out.WriteByte(tree.Node(current).Symbol)
			if err != nil {
				return written, errors.Wrap(err, "write decoded output")
			}
			written++
			current = tree.Root()
		}
	}
	if current != tree.Root() {
		return written, errors.Wrap(ErrCorruptStream, "payload ends inside a code")
	}
	return written, nil
}

func readRunLength(r *bit_io.BitReader, tree *code_tree.Tree, end, limit uint64, out io.ByteWriter) (uint64, error) {
	if r.Position() > end || (end-r.Position())%8 != 0 {
		return 0, errors.Wrap(ErrCorruptStream, "run length is not a whole number of bytes")
	}

	buf := make([]byte, 0, binary.MaxVarintLen64)
	for r.Position() < end {
		if len(buf) == binary.MaxVarintLen64 {
			return 0, errors.Wrap(ErrCorruptStream, "run length too long")
		}
		b, err := r.ReadSymbol()
		if err != nil {
			return 0, corrupt(err)
		}
		buf = append(buf, b)
	}
	count, n := binary.Uvarint(buf)
	if n <= 0 || n != len(buf) || count == 0 {
		return 0, errors.Wrap(ErrCorruptStream, "invalid run length")
	}
	if count > limit {
		return 0, errors.Wrapf(ErrCorruptStream, "run length %d above limit %d", count, limit)
	}

	symbol := tree.Node(tree.Root()).Symbol
	for i := uint64(0); i < count; i++ {
		err := out.WriteByte(symbol)
		if err != nil {
			return i, errors.Wrap(err, "write decoded output")
		}
	}
	return count, nil
}

// corruptStreamError is ErrCorruptStream caused by cause. Both stay
// reachable through errors.Is and errors.As.
type corruptStreamError struct {
	cause error
}

func (e *corruptStreamError) Error() string {
	return ErrCorruptStream.Error() + ": " + e.cause.Error()
}

func (e *corruptStreamError) Unwrap() []error {
	return []error{ErrCorruptStream, e.cause}
}

// corrupt turns a read past the end of the stream into ErrCorruptStream.
func corrupt(err error) error {
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return &corruptStreamError{cause: err}
	}
	return err
}
