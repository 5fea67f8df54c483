package bit_io

import (
	"bufio"
	"io"

	"github.com/icza/bitio"
	"github.com/pkg/errors"
)

const DefaultBufferSize = 4096

type BitWriter struct {
	buf     *bufio.Writer
	out     *bitio.Writer
	written uint64 // num of bits written so far
}

func NewBitWriter(w io.Writer, bufSize int) *BitWriter {
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}
	buf := bufio.NewWriterSize(w, bufSize)
	return &BitWriter{
		buf:     buf,
		out:     bitio.NewWriter(buf),
		written: 0,
	}
}

// WriteBit appends the lowest bit of bit. Bits fill the pending byte
// starting at the most significant position.
func (w *BitWriter) WriteBit(bit uint8) error {
	err := w.out.WriteBool(bit&1 == 1)
	if err != nil {
		return errors.WithStack(err)
	}
	w.written++
	return nil
}

func (w *BitWriter) WriteSymbol(symbol byte) error {
	for i := 7; i >= 0; i-- {
		err := w.WriteBit((symbol >> i) & 1)
		if err != nil {
			return err
		}
	}
	return nil
}

func (w *BitWriter) WriteCode(code []uint8) error {
	for _, bit := range code {
		err := w.WriteBit(bit)
		if err != nil {
			return err
		}
	}
	return nil
}

// Pad fills the pending byte with zero bits and flushes it. It returns the
// number of padding bits, 0 when the stream is already byte aligned.
func (w *BitWriter) Pad() (int, error) {
	skipped, err := w.out.Align()
	if err != nil {
		return 0, errors.WithStack(err)
	}
	w.written += uint64(skipped)
	return int(skipped), nil
}

func (w *BitWriter) BitsWritten() uint64 {
	return w.written
}

// Flush pushes completed bytes to the underlying writer. Pending bits stay
// buffered until Pad is called.
func (w *BitWriter) Flush() error {
	return errors.WithStack(w.buf.Flush())
}

type BitReader struct {
	src   io.ByteScanner
	curr  byte
	nBits uint8  // num of unread bits left in curr
	pos   uint64 // num of bits read so far
	pulls uint64 // num of bytes taken from src
}

func NewBitReader(r io.Reader, bufSize int) *BitReader {
	src, ok := r.(io.ByteScanner)
	if !ok {
		if bufSize <= 0 {
			bufSize = DefaultBufferSize
		}
		src = bufio.NewReaderSize(r, bufSize)
	}
	return &BitReader{
		src: src,
	}
}

func (r *BitReader) loadNextByte() error {
	b, err := r.src.ReadByte()
	if err == io.EOF {
		return errors.WithStack(io.ErrUnexpectedEOF)
	}
	if err != nil {
		return errors.WithStack(err)
	}
	r.curr = b
	r.nBits = 8
	r.pulls++
	return nil
}

// ReadBit returns the next bit, most significant first. Reading past the
// end of input returns io.ErrUnexpectedEOF.
func (r *BitReader) ReadBit() (uint8, error) {
	if r.nBits == 0 {
		err := r.loadNextByte()
		if err != nil {
			return 0, err
		}
	}
	bit := r.curr >> 7
	r.curr <<= 1
	r.nBits--
	r.pos++
	return bit, nil
}

func (r *BitReader) ReadSymbol() (byte, error) {
	var symbol byte
	for i := 0; i < 8; i++ {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		symbol = symbol<<1 | bit
	}
	return symbol, nil
}

// Peek returns the next 8 bits without moving the read position. If a new
// byte had to be pulled in, it is pushed back to the source.
func (r *BitReader) Peek() (byte, error) {
	curr, nBits, pos, pulls := r.curr, r.nBits, r.pos, r.pulls

	symbol, err := r.ReadSymbol()
	if r.pulls > pulls {
		unreadErr := r.src.UnreadByte()
		if unreadErr != nil && err == nil {
			err = errors.WithStack(unreadErr)
		}
	}
	r.curr, r.nBits, r.pos, r.pulls = curr, nBits, pos, pulls

	if err != nil {
		return 0, err
	}
	return symbol, nil
}

// Position returns the absolute bit offset of the next bit to be read.
func (r *BitReader) Position() uint64 {
	return r.pos
}
