// Copyright 2024 The gojvm Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Read and Write. Callers should use
// errors.Is to test for these; FormatError additionally carries context
// for the handful of failures that need more than a fixed message.
var (
	// ErrUnexpectedEnd is returned when the byte stream ends before a
	// primitive or length-prefixed blob can be fully read.
	ErrUnexpectedEnd = errors.New("classfile: unexpected end of input")

	// ErrPoolOverflow is returned by the constant pool writer when
	// interning would push the slot count beyond the 16-bit count field.
	ErrPoolOverflow = errors.New("classfile: constant pool overflow (more than 65535 slots)")

	// ErrArithmeticOverflow is returned when a length or count computed
	// during encoding would not fit in its wire width.
	ErrArithmeticOverflow = errors.New("classfile: arithmetic overflow computing wire length")

	// ErrUTF8 is returned when text cannot be represented in, or decoded
	// from, modified UTF-8.
	ErrUTF8 = errors.New("classfile: invalid modified UTF-8")
)

// BadMagicError is returned when the four-byte magic number at the start
// of a class file does not match 0xCAFEBABE.
type BadMagicError struct {
	Found uint32
}

func (e *BadMagicError) Error() string {
	return fmt.Sprintf("classfile: bad magic 0x%08X, want 0xCAFEBABE", e.Found)
}

// FormatError reports a structural inconsistency found while decoding or
// encoding a class file: an index of the wrong kind, a MethodHandle whose
// member doesn't match its kind, a class other than java/lang/Object with
// no superclass, and so on. Context is a short static tag identifying what
// was being parsed (e.g. "MethodHandle", "constant pool entry index");
// Detail is a human-readable explanation.
type FormatError struct {
	Context string
	Detail  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("classfile: invalid %s: %s", e.Context, e.Detail)
}

func invalid(context, detail string, args ...interface{}) *FormatError {
	return &FormatError{Context: context, Detail: fmt.Sprintf(detail, args...)}
}
