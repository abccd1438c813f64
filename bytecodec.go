// Copyright 2024 The gojvm Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
)

// byteReader is a sequential big-endian cursor over a byte slice. Unlike
// pe.File's offset-indexed ReadUint16(offset)/ReadUint32(offset) family
// (PE needs random access by RVA), a class file is read strictly
// front-to-back, so the reader keeps its own position instead of taking
// one on every call.
type byteReader struct {
	data []byte
	pos  int
}

func newByteReader(data []byte) *byteReader {
	return &byteReader{data: data}
}

// remaining reports how many unread bytes are left.
func (r *byteReader) remaining() int {
	return len(r.data) - r.pos
}

func (r *byteReader) readU8() (uint8, error) {
	if r.remaining() < 1 {
		return 0, ErrUnexpectedEnd
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *byteReader) readU16() (uint16, error) {
	if r.remaining() < 2 {
		return 0, ErrUnexpectedEnd
	}
	v := binary.BigEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *byteReader) readU32() (uint32, error) {
	if r.remaining() < 4 {
		return 0, ErrUnexpectedEnd
	}
	v := binary.BigEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *byteReader) readU64() (uint64, error) {
	if r.remaining() < 8 {
		return 0, ErrUnexpectedEnd
	}
	v := binary.BigEndian.Uint64(r.data[r.pos:])
	r.pos += 8
	return v, nil
}

func (r *byteReader) readI32() (int32, error) {
	v, err := r.readU32()
	return int32(v), err
}

func (r *byteReader) readI64() (int64, error) {
	v, err := r.readU64()
	return int64(v), err
}

func (r *byteReader) readF32() (float32, error) {
	v, err := r.readU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (r *byteReader) readF64() (float64, error) {
	v, err := r.readU64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// readBlob reads a length-prefixed byte blob, with the length width
// selectable per call site: the JVM format mixes u8 (not used on the
// wire today, kept for completeness), u16 (Utf8 entries, most tables)
// and u32 (attribute payloads) length prefixes. The returned slice
// aliases the reader's backing array; callers that retain it past the
// read must copy.
func (r *byteReader) readBlob(lenWidth int) ([]byte, error) {
	var n int
	switch lenWidth {
	case 1:
		v, err := r.readU8()
		if err != nil {
			return nil, err
		}
		n = int(v)
	case 2:
		v, err := r.readU16()
		if err != nil {
			return nil, err
		}
		n = int(v)
	case 4:
		v, err := r.readU32()
		if err != nil {
			return nil, err
		}
		n = int(v)
	default:
		panic("classfile: unsupported blob length width")
	}
	if r.remaining() < n {
		return nil, ErrUnexpectedEnd
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// readBytes reads exactly n raw bytes with no length prefix.
func (r *byteReader) readBytes(n int) ([]byte, error) {
	if r.remaining() < n {
		return nil, ErrUnexpectedEnd
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// sub returns a separate byte reader over the next n bytes and advances
// the parent past them, so the two cursors move independently.
func (r *byteReader) sub(n int) (*byteReader, error) {
	b, err := r.readBytes(n)
	if err != nil {
		return nil, err
	}
	return newByteReader(b), nil
}

// byteWriter accumulates big-endian primitives into a growable buffer.
// Writes never fail except through the underlying buffer signaling an
// allocation failure, which bytes.Buffer surfaces as a panic rather than
// an error -- matching the byte codec's stated failure contract ("writes
// never fail except when the underlying sink signals I/O error").
type byteWriter struct {
	buf bytes.Buffer
}

func newByteWriter() *byteWriter {
	return &byteWriter{}
}

func (w *byteWriter) writeU8(v uint8) {
	w.buf.WriteByte(v)
}

func (w *byteWriter) writeU16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

func (w *byteWriter) writeU32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

func (w *byteWriter) writeU64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

func (w *byteWriter) writeI32(v int32) { w.writeU32(uint32(v)) }
func (w *byteWriter) writeI64(v int64) { w.writeU64(uint64(v)) }

func (w *byteWriter) writeF32(v float32) { w.writeU32(math.Float32bits(v)) }
func (w *byteWriter) writeF64(v float64) { w.writeU64(math.Float64bits(v)) }

// writeBlob writes a length prefix of the given width followed by data.
func (w *byteWriter) writeBlob(lenWidth int, data []byte) error {
	n := len(data)
	switch lenWidth {
	case 1:
		if n > math.MaxUint8 {
			return ErrArithmeticOverflow
		}
		w.writeU8(uint8(n))
	case 2:
		if n > math.MaxUint16 {
			return ErrArithmeticOverflow
		}
		w.writeU16(uint16(n))
	case 4:
		if uint(n) > math.MaxUint32 {
			return ErrArithmeticOverflow
		}
		w.writeU32(uint32(n))
	default:
		panic("classfile: unsupported blob length width")
	}
	w.buf.Write(data)
	return nil
}

func (w *byteWriter) writeBytes(data []byte) {
	w.buf.Write(data)
}

func (w *byteWriter) bytes() []byte {
	return w.buf.Bytes()
}

func (w *byteWriter) len() int {
	return w.buf.Len()
}

// writeTo flushes the accumulated bytes to an io.Writer, the boundary
// where an I/O error can actually occur.
func (w *byteWriter) writeTo(dst io.Writer) error {
	_, err := dst.Write(w.buf.Bytes())
	return err
}
