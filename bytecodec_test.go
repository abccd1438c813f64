// Copyright 2024 The gojvm Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"bytes"
	"testing"
)

func TestByteReaderWriterPrimitivesRoundTrip(t *testing.T) {
	w := newByteWriter()
	w.writeU8(0xAB)
	w.writeU16(0x1234)
	w.writeU32(0xDEADBEEF)
	w.writeU64(0x0123456789ABCDEF)
	w.writeI32(-1)
	w.writeI64(-2)
	w.writeF32(3.5)
	w.writeF64(-2.25)

	r := newByteReader(w.bytes())
	if v, err := r.readU8(); err != nil || v != 0xAB {
		t.Fatalf("readU8 = %v, %v", v, err)
	}
	if v, err := r.readU16(); err != nil || v != 0x1234 {
		t.Fatalf("readU16 = %v, %v", v, err)
	}
	if v, err := r.readU32(); err != nil || v != 0xDEADBEEF {
		t.Fatalf("readU32 = %v, %v", v, err)
	}
	if v, err := r.readU64(); err != nil || v != 0x0123456789ABCDEF {
		t.Fatalf("readU64 = %v, %v", v, err)
	}
	if v, err := r.readI32(); err != nil || v != -1 {
		t.Fatalf("readI32 = %v, %v", v, err)
	}
	if v, err := r.readI64(); err != nil || v != -2 {
		t.Fatalf("readI64 = %v, %v", v, err)
	}
	if v, err := r.readF32(); err != nil || v != 3.5 {
		t.Fatalf("readF32 = %v, %v", v, err)
	}
	if v, err := r.readF64(); err != nil || v != -2.25 {
		t.Fatalf("readF64 = %v, %v", v, err)
	}
	if r.remaining() != 0 {
		t.Fatalf("remaining() = %d, want 0", r.remaining())
	}
}

func TestByteReaderUnexpectedEnd(t *testing.T) {
	r := newByteReader([]byte{0x01})
	if _, err := r.readU16(); err != ErrUnexpectedEnd {
		t.Fatalf("readU16 on truncated input = %v, want ErrUnexpectedEnd", err)
	}
}

func TestByteWriterBlobLengthOverflow(t *testing.T) {
	w := newByteWriter()
	big := make([]byte, 256)
	if err := w.writeBlob(1, big); err != ErrArithmeticOverflow {
		t.Fatalf("writeBlob(1, 256 bytes) = %v, want ErrArithmeticOverflow", err)
	}
}

func TestByteReaderBlobRoundTrip(t *testing.T) {
	w := newByteWriter()
	if err := w.writeBlob(2, []byte("hello")); err != nil {
		t.Fatalf("writeBlob: %v", err)
	}
	r := newByteReader(w.bytes())
	got, err := r.readBlob(2)
	if err != nil {
		t.Fatalf("readBlob: %v", err)
	}
	if !bytes.Equal(got, []byte("hello")) {
		t.Fatalf("readBlob = %q, want %q", got, "hello")
	}
}

func TestByteReaderSub(t *testing.T) {
	r := newByteReader([]byte{1, 2, 3, 4, 5})
	sub, err := r.sub(3)
	if err != nil {
		t.Fatalf("sub: %v", err)
	}
	if sub.remaining() != 3 {
		t.Fatalf("sub.remaining() = %d, want 3", sub.remaining())
	}
	if r.remaining() != 2 {
		t.Fatalf("parent remaining() = %d, want 2", r.remaining())
	}
}
