// Copyright 2024 The gojvm Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"math"
	"testing"
)

func TestPoolInsertUtf8Dedup(t *testing.T) {
	p := newPool()
	a := p.insertUtf8("java/lang/Object")
	b := p.insertUtf8("java/lang/Object")
	if a != b {
		t.Fatalf("repeated insertUtf8 returned different indices: %d, %d", a, b)
	}
	if p.count() != 2 {
		t.Fatalf("count() = %d, want 2 (slot 0 plus one Utf8)", p.count())
	}
}

func TestPoolInsertClassDedup(t *testing.T) {
	p := newPool()
	a := p.insertClass("com/example/Foo")
	b := p.insertClass("com/example/Foo")
	c := p.insertClass("com/example/Bar")
	if a != b {
		t.Fatalf("insertClass dedup failed: %d != %d", a, b)
	}
	if a == c {
		t.Fatalf("distinct class names interned to the same slot")
	}
}

func TestPoolFloatDoubleDedupByBitPattern(t *testing.T) {
	p := newPool()

	posZero := p.insertFloat(0.0)
	negZero := p.insertFloat(float32(negZeroF64()))
	if posZero == negZero {
		t.Fatalf("+0.0 and -0.0 float interned to the same slot")
	}

	nan1 := p.insertDouble(nanWithPayload(1))
	nan2 := p.insertDouble(nanWithPayload(2))
	if nan1 == nan2 {
		t.Fatalf("distinct-payload NaNs interned to the same slot")
	}

	dup := p.insertDouble(1.5)
	again := p.insertDouble(1.5)
	if dup != again {
		t.Fatalf("equal doubles interned to different slots: %d, %d", dup, again)
	}
}

func negZeroF64() float64 {
	var z float64
	return -z
}

func nanWithPayload(payload uint64) float64 {
	const qnanBits = 0x7FF8000000000000
	return math.Float64frombits(qnanBits | (payload & 0xFFFFF))
}

func TestPoolLongDoubleOccupyTwoSlots(t *testing.T) {
	p := newPool()
	idx := p.insertLong(42)
	if idx+1 >= uint16(len(p.entries)) {
		t.Fatalf("insertLong didn't reserve a phantom slot")
	}
	if _, ok := p.entries[idx+1].(phantomEntry); !ok {
		t.Fatalf("slot after a Long entry isn't a phantomEntry")
	}
	if _, ok := p.entry(idx + 1); ok {
		t.Fatalf("phantom slot should not be addressable via entry()")
	}
}

func TestPoolInsertBootstrapMethodDedup(t *testing.T) {
	p := newPool()
	mh := MethodHandle{
		Kind: RefInvokeStatic,
		Member: MemberRef{
			Owner: "com/example/Bootstrap", Name: "bsm",
			Descriptor: mustParseMethodDescriptor(t, "(Ljava/lang/invoke/MethodHandles$Lookup;Ljava/lang/String;Ljava/lang/invoke/MethodType;)Ljava/lang/invoke/CallSite;"),
		},
	}
	bsm1 := BootstrapMethod{Method: mh, Args: []Constant{{Kind: ConstInt, Int: 1}}}
	bsm2 := BootstrapMethod{Method: mh, Args: []Constant{{Kind: ConstInt, Int: 1}}}
	bsm3 := BootstrapMethod{Method: mh, Args: []Constant{{Kind: ConstInt, Int: 2}}}

	i1 := p.insertBootstrapMethod(bsm1)
	i2 := p.insertBootstrapMethod(bsm2)
	i3 := p.insertBootstrapMethod(bsm3)
	if i1 != i2 {
		t.Fatalf("structurally equal bootstrap methods interned to different slots: %d, %d", i1, i2)
	}
	if i1 == i3 {
		t.Fatalf("distinct bootstrap methods interned to the same slot")
	}
}

// TestInvokeDynamicCycleDrainsToFixedPoint exercises spec section 4.4's
// InvokeDynamic cycle scenario: a bootstrap method argument is itself an
// InvokeDynamic constant whose own bootstrap method must be discovered
// and serialized, even though it wasn't present in Class.BootstrapMethods
// up front.
func TestInvokeDynamicCycleDrainsToFixedPoint(t *testing.T) {
	p := newPool()

	innerHandle := MethodHandle{
		Kind: RefInvokeStatic,
		Member: MemberRef{
			Owner: "com/example/Bootstrap", Name: "inner",
			Descriptor: mustParseMethodDescriptor(t, "()Ljava/lang/invoke/CallSite;"),
		},
	}
	inner := BootstrapMethod{Method: innerHandle}

	outerHandle := MethodHandle{
		Kind: RefInvokeStatic,
		Member: MemberRef{
			Owner: "com/example/Bootstrap", Name: "outer",
			Descriptor: mustParseMethodDescriptor(t, "(Ljava/lang/Object;)Ljava/lang/invoke/CallSite;"),
		},
	}
	outer := BootstrapMethod{
		Method: outerHandle,
		Args: []Constant{
			{
				Kind:      ConstInvokeDynamic,
				Bootstrap: &inner,
				Name:      "get",
				Type:      mustParseMethodDescriptor(t, "()Ljava/lang/Object;"),
			},
		},
	}

	p.insertBootstrapMethod(outer)
	if len(p.bootstrapMethods) != 1 {
		t.Fatalf("expected only the outer bootstrap method before draining, got %d", len(p.bootstrapMethods))
	}

	body, err := writeBootstrapMethodsAttribute(p)
	if err != nil {
		t.Fatalf("writeBootstrapMethodsAttribute: %v", err)
	}
	if len(p.bootstrapMethods) != 2 {
		t.Fatalf("draining should have discovered the inner bootstrap method, got %d entries", len(p.bootstrapMethods))
	}
	if body.len() == 0 {
		t.Fatalf("expected a non-empty BootstrapMethods payload")
	}
}

func mustParseMethodDescriptor(t *testing.T, s string) Type {
	t.Helper()
	ty, err := ParseMethodDescriptor(s)
	if err != nil {
		t.Fatalf("ParseMethodDescriptor(%q): %v", s, err)
	}
	return ty
}
