// Copyright 2024 The gojvm Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "bytes"

// Fuzz is the go-fuzz entry point, grounded on pe.Fuzz: parse data, and
// if that succeeds, round-trip it through Write to exercise the writer
// and its interning/dedup paths on every corpus input too, not just the
// reader.
func Fuzz(data []byte) int {
	c, err := Read(data, Options{MaxConstantPoolEntries: 65535})
	if err != nil {
		return 0
	}
	var buf bytes.Buffer
	if err := c.Write(&buf); err != nil {
		return 0
	}
	return 1
}
