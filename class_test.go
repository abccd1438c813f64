// Copyright 2024 The gojvm Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"bytes"
	"errors"
	"testing"
)

func writeClass(t *testing.T, c *Class) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return buf.Bytes()
}

func readClass(t *testing.T, data []byte) *Class {
	t.Helper()
	c, err := Read(data, Options{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	return c
}

// TestEmptyClassEnvelope covers spec section 8's minimal scenario: a
// bare java/lang/Object with no fields, methods, interfaces or
// attributes. The header's first eight bytes are fixed by the format:
// magic 0xCAFEBABE, minor 0, major 52 (Java 8).
func TestEmptyClassEnvelope(t *testing.T) {
	c := &Class{MajorVersion: 52, Name: "java/lang/Object"}
	data := writeClass(t, c)

	want := []byte{0xCA, 0xFE, 0xBA, 0xBE, 0x00, 0x00, 0x00, 0x34}
	if !bytes.Equal(data[:8], want) {
		t.Fatalf("header = % X, want % X", data[:8], want)
	}

	got := readClass(t, data)
	if got.MajorVersion != 52 || got.MinorVersion != 0 {
		t.Fatalf("version = %d.%d, want 0.52", got.MinorVersion, got.MajorVersion)
	}
	if got.Name != "java/lang/Object" {
		t.Fatalf("Name = %q", got.Name)
	}
	if got.SuperName != "" {
		t.Fatalf("SuperName = %q, want empty", got.SuperName)
	}
	if len(got.Fields) != 0 || len(got.Methods) != 0 || len(got.Interfaces) != 0 {
		t.Fatalf("expected no fields/methods/interfaces, got %+v", got)
	}
}

func TestReadRejectsBadMagic(t *testing.T) {
	data := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0, 0, 0, 52, 0, 1}
	_, err := Read(data, Options{})
	var magicErr *BadMagicError
	if !errors.As(err, &magicErr) {
		t.Fatalf("Read with bad magic: got %v, want *BadMagicError", err)
	}
	if magicErr.Found != 0xDEADBEEF {
		t.Fatalf("Found = 0x%X, want 0xDEADBEEF", magicErr.Found)
	}
}

func TestReadRejectsMissingSuperclass(t *testing.T) {
	c := &Class{MajorVersion: 52, Name: "com/example/Widget"} // no SuperName, not java/lang/Object
	data := writeClass(t, c)
	if _, err := Read(data, Options{}); err == nil {
		t.Fatalf("expected an error reading a non-Object class with no superclass")
	}
}

func TestConstantPoolEntryCap(t *testing.T) {
	c := &Class{MajorVersion: 52, Name: "java/lang/Object"}
	for i := 0; i < 100; i++ {
		c.Fields = append(c.Fields, Field{
			Name:       stringWithSuffix("field", i),
			Descriptor: Type{Kind: KindInt},
		})
	}
	data := writeClass(t, c)
	if _, err := Read(data, Options{MaxConstantPoolEntries: 5}); err == nil {
		t.Fatalf("expected an error when the pool exceeds MaxConstantPoolEntries")
	}
	if _, err := Read(data, Options{MaxConstantPoolEntries: 0}); err != nil {
		t.Fatalf("MaxConstantPoolEntries: 0 should mean unlimited, got %v", err)
	}
}

// TestFieldAndMethodRoundTrip exercises a class with both a field and a
// method, including the access-flag bitmask scenario SPEC_FULL.md adds:
// flags must survive a round trip exactly, not just the bits the codec
// happens to interpret.
func TestFieldAndMethodRoundTrip(t *testing.T) {
	const (
		accPublic = 0x0001
		accStatic = 0x0008
		accFinal  = 0x0010
	)
	c := &Class{
		MajorVersion: 52,
		Flags:        accPublic | accFinal,
		Name:         "com/example/Widget",
		SuperName:    "java/lang/Object",
		Interfaces:   []string{"java/io/Serializable"},
		Fields: []Field{
			{Flags: accPublic | accStatic | accFinal, Name: "MAX", Descriptor: Type{Kind: KindInt}},
		},
		Methods: []Method{
			{
				Flags:      accPublic,
				Name:       "<init>",
				Descriptor: mustParseMethodDescriptor(t, "()V"),
			},
		},
	}

	data := writeClass(t, c)
	got := readClass(t, data)

	if got.Flags != c.Flags {
		t.Fatalf("Flags = 0x%04X, want 0x%04X", got.Flags, c.Flags)
	}
	if len(got.Interfaces) != 1 || got.Interfaces[0] != "java/io/Serializable" {
		t.Fatalf("Interfaces = %+v", got.Interfaces)
	}
	if len(got.Fields) != 1 || got.Fields[0].Name != "MAX" || got.Fields[0].Flags != c.Fields[0].Flags {
		t.Fatalf("Fields = %+v", got.Fields)
	}
	if got.Fields[0].Descriptor.Kind != KindInt {
		t.Fatalf("Field descriptor = %+v", got.Fields[0].Descriptor)
	}
	if len(got.Methods) != 1 || got.Methods[0].Name != "<init>" {
		t.Fatalf("Methods = %+v", got.Methods)
	}
	if !got.Methods[0].Descriptor.IsVoid() {
		t.Fatalf("method descriptor should be void")
	}
}

// TestSignatureAttributeRoundTrip exercises a class-level attribute
// instead of the field/method-level ones above.
func TestSignatureAttributeRoundTrip(t *testing.T) {
	c := &Class{
		MajorVersion: 52,
		Name:         "com/example/Box",
		SuperName:    "java/lang/Object",
		Attributes:   []Attribute{SignatureAttr{Signature: "<T:Ljava/lang/Object;>Ljava/lang/Object;"}},
	}
	data := writeClass(t, c)
	got := readClass(t, data)

	var sig *SignatureAttr
	for i := range got.Attributes {
		if s, ok := got.Attributes[i].(SignatureAttr); ok {
			sig = &s
		}
	}
	if sig == nil {
		t.Fatalf("Signature attribute missing after round trip, got %+v", got.Attributes)
	}
	if sig.Signature != "<T:Ljava/lang/Object;>Ljava/lang/Object;" {
		t.Fatalf("Signature = %q", sig.Signature)
	}
}

// TestRecordAndPermittedSubclassesRoundTrip covers the supplemental
// attributes SPEC_FULL.md adds beyond the distilled spec: a sealed
// record class with one component.
func TestRecordAndPermittedSubclassesRoundTrip(t *testing.T) {
	c := &Class{
		MajorVersion: 61, // Java 17, where records and sealed classes land
		Name:         "com/example/Point",
		SuperName:    "java/lang/Record",
		Attributes: []Attribute{
			RecordAttr{Components: []RecordComponent{
				{Name: "x", Descriptor: Type{Kind: KindInt}},
				{Name: "y", Descriptor: Type{Kind: KindInt}},
			}},
			PermittedSubclassesAttr{Classes: []string{"com/example/Point3D"}},
		},
	}
	data := writeClass(t, c)
	got := readClass(t, data)

	var record *RecordAttr
	var permitted *PermittedSubclassesAttr
	for i := range got.Attributes {
		switch a := got.Attributes[i].(type) {
		case RecordAttr:
			record = &a
		case PermittedSubclassesAttr:
			permitted = &a
		}
	}
	if record == nil || len(record.Components) != 2 {
		t.Fatalf("Record attribute = %+v", record)
	}
	if record.Components[0].Name != "x" || record.Components[1].Name != "y" {
		t.Fatalf("Record components = %+v", record.Components)
	}
	if permitted == nil || len(permitted.Classes) != 1 || permitted.Classes[0] != "com/example/Point3D" {
		t.Fatalf("PermittedSubclasses attribute = %+v", permitted)
	}
}

// TestBootstrapMethodsOrphanSurvivesRoundTrip covers the case noted in
// DESIGN.md: a bootstrap method referenced only from opaque Code bytes,
// with nothing in the structural model pointing to it through a
// Constant.Bootstrap pointer, must still round-trip via the dedicated
// BootstrapMethods field.
func TestBootstrapMethodsOrphanSurvivesRoundTrip(t *testing.T) {
	bsm := BootstrapMethod{
		Method: MethodHandle{
			Kind: RefInvokeStatic,
			Member: MemberRef{
				Owner: "com/example/Bootstrap", Name: "bsm",
				Descriptor: mustParseMethodDescriptor(t,
					"(Ljava/lang/invoke/MethodHandles$Lookup;Ljava/lang/String;Ljava/lang/invoke/MethodType;)Ljava/lang/invoke/CallSite;"),
			},
		},
	}
	c := &Class{
		MajorVersion:     52,
		Name:             "com/example/Widget",
		SuperName:        "java/lang/Object",
		BootstrapMethods: []BootstrapMethod{bsm},
	}
	data := writeClass(t, c)
	got := readClass(t, data)

	if len(got.BootstrapMethods) != 1 {
		t.Fatalf("BootstrapMethods = %+v, want 1 entry", got.BootstrapMethods)
	}
	if got.BootstrapMethods[0].Method.Member.Name != "bsm" {
		t.Fatalf("BootstrapMethods[0] = %+v", got.BootstrapMethods[0])
	}
}

func TestConstantPoolSnapshot(t *testing.T) {
	c := &Class{MajorVersion: 52, Name: "java/lang/Object"}
	if snap := c.ConstantPoolSnapshot(); snap != nil {
		t.Fatalf("ConstantPoolSnapshot on an unread Class = %+v, want nil", snap)
	}
	data := writeClass(t, c)
	got := readClass(t, data)
	snap := got.ConstantPoolSnapshot()
	if len(snap) == 0 {
		t.Fatalf("ConstantPoolSnapshot on a parsed Class returned nothing")
	}
}

func stringWithSuffix(prefix string, n int) string {
	digits := []byte{byte('0' + n/100), byte('0' + (n/10)%10), byte('0' + n%10)}
	return prefix + string(digits)
}
