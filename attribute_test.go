// Copyright 2024 The gojvm Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"bytes"
	"testing"
)

// TestUnknownAttributeBecomesRaw covers spec section 7's leniency
// boundary: an attribute name the codec doesn't recognize in a given
// context is preserved verbatim as Raw, not treated as a fatal error.
func TestUnknownAttributeBecomesRaw(t *testing.T) {
	c := &Class{
		MajorVersion: 52,
		Name:         "com/example/Widget",
		SuperName:    "java/lang/Object",
		Attributes: []Attribute{
			Raw{Name: "com.example.VendorExtension", Bytes: []byte{0x01, 0x02, 0x03}, Keep: true},
		},
	}
	data := writeClass(t, c)
	got := readClass(t, data)

	if len(got.Attributes) != 1 {
		t.Fatalf("Attributes = %+v, want one Raw entry", got.Attributes)
	}
	raw, ok := got.Attributes[0].(Raw)
	if !ok {
		t.Fatalf("Attributes[0] = %T, want Raw", got.Attributes[0])
	}
	if raw.Name != "com.example.VendorExtension" {
		t.Fatalf("Raw.Name = %q", raw.Name)
	}
	if !bytes.Equal(raw.Bytes, []byte{0x01, 0x02, 0x03}) {
		t.Fatalf("Raw.Bytes = % X", raw.Bytes)
	}
}

func TestRuntimeVisibleAnnotationsRoundTrip(t *testing.T) {
	blob := AnnotationBlob{0x00, 0x01, 0xAB, 0xCD}
	c := &Class{
		MajorVersion: 52,
		Name:         "com/example/Widget",
		SuperName:    "java/lang/Object",
		Fields: []Field{
			{
				Name: "value", Descriptor: Type{Kind: KindInt},
				Attributes: []Attribute{RuntimeVisibleAnnotationsAttr{Blob: blob}},
			},
		},
	}
	data := writeClass(t, c)
	got := readClass(t, data)

	if len(got.Fields) != 1 || len(got.Fields[0].Attributes) != 1 {
		t.Fatalf("Fields = %+v", got.Fields)
	}
	ann, ok := got.Fields[0].Attributes[0].(RuntimeVisibleAnnotationsAttr)
	if !ok {
		t.Fatalf("field attribute = %T, want RuntimeVisibleAnnotationsAttr", got.Fields[0].Attributes[0])
	}
	if !bytes.Equal(ann.Blob, blob) {
		t.Fatalf("Blob = % X, want % X", ann.Blob, blob)
	}
}

func TestExceptionsAttributeRoundTrip(t *testing.T) {
	c := &Class{
		MajorVersion: 52,
		Name:         "com/example/Widget",
		SuperName:    "java/lang/Object",
		Methods: []Method{
			{
				Name: "run", Descriptor: mustParseMethodDescriptor(t, "()V"),
				Attributes: []Attribute{ExceptionsAttr{Classes: []string{"java/io/IOException", "java/lang/InterruptedException"}}},
			},
		},
	}
	data := writeClass(t, c)
	got := readClass(t, data)

	exc, ok := got.Methods[0].Attributes[0].(ExceptionsAttr)
	if !ok {
		t.Fatalf("method attribute = %T, want ExceptionsAttr", got.Methods[0].Attributes[0])
	}
	if len(exc.Classes) != 2 || exc.Classes[0] != "java/io/IOException" || exc.Classes[1] != "java/lang/InterruptedException" {
		t.Fatalf("Classes = %+v", exc.Classes)
	}
}

func TestMethodParametersRoundTrip(t *testing.T) {
	const accFinal = 0x0010
	c := &Class{
		MajorVersion: 52,
		Name:         "com/example/Widget",
		SuperName:    "java/lang/Object",
		Methods: []Method{
			{
				Name: "configure", Descriptor: mustParseMethodDescriptor(t, "(I)V"),
				Attributes: []Attribute{MethodParametersAttr{Parameters: []MethodParameter{
					{Name: "count", Flags: accFinal},
				}}},
			},
		},
	}
	data := writeClass(t, c)
	got := readClass(t, data)

	mp, ok := got.Methods[0].Attributes[0].(MethodParametersAttr)
	if !ok {
		t.Fatalf("method attribute = %T, want MethodParametersAttr", got.Methods[0].Attributes[0])
	}
	if len(mp.Parameters) != 1 || mp.Parameters[0].Name != "count" || mp.Parameters[0].Flags != accFinal {
		t.Fatalf("Parameters = %+v", mp.Parameters)
	}
}
