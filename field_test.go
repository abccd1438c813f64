// Copyright 2024 The gojvm Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"bytes"
	"testing"
)

func TestWriteFieldsRejectsMethodDescriptor(t *testing.T) {
	c := &Class{
		MajorVersion: 52,
		Name:         "com/example/Widget",
		SuperName:    "java/lang/Object",
		Fields: []Field{
			{Name: "oops", Descriptor: mustParseMethodDescriptor(t, "()V")},
		},
	}
	var buf bytes.Buffer
	if err := c.Write(&buf); err == nil {
		t.Fatalf("expected an error writing a field with a method descriptor")
	}
}

func TestWriteMethodsRejectsNonMethodDescriptor(t *testing.T) {
	c := &Class{
		MajorVersion: 52,
		Name:         "com/example/Widget",
		SuperName:    "java/lang/Object",
		Methods: []Method{
			{Name: "oops", Descriptor: Type{Kind: KindInt}},
		},
	}
	var buf bytes.Buffer
	if err := c.Write(&buf); err == nil {
		t.Fatalf("expected an error writing a method with a non-method descriptor")
	}
}
