// Copyright 2024 The gojvm Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// Open memory-maps the file at name and parses it, grounded on pe.New's
// mmap-then-parse shape. The mapping is unmapped and the file descriptor
// closed before Open returns -- Read copies everything it needs out of
// the mapped bytes (Utf8Entry.Text, CodeAttr.Code, etc. are all decoded
// into owned Go values), so nothing in the returned Class aliases the
// mapping.
func Open(name string, opts Options) (*Class, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer data.Unmap()

	return Read(data, opts)
}
