// Copyright 2024 The gojvm Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// MemberRef is the lifted form of a Fieldref, Methodref or
// InterfaceMethodref constant pool entry: the owning class's internal
// name, the member's name, its parsed descriptor, and whether it was
// addressed through an interface method reference.
type MemberRef struct {
	Owner       string
	Name        string
	Descriptor  Type
	IsInterface bool
}

// MethodHandle is the lifted form of a CONSTANT_MethodHandle entry.
// Member is resolved through the pool's generic constant() lookup on the
// handle's referenced Fieldref/Methodref/InterfaceMethodref, with the
// kind/member-kind and kind/name invariants from spec section 3 already
// checked by the time a MethodHandle value exists.
type MethodHandle struct {
	Kind   MethodHandleKind
	Member MemberRef
}

// ConstantKind discriminates the variants of Constant.
type ConstantKind uint8

const (
	ConstInt ConstantKind = iota
	ConstFloat
	ConstLong
	ConstDouble
	ConstString
	ConstClass
	ConstField
	ConstMethod
	ConstMethodType
	ConstMethodHandle
	ConstDynamic
	ConstInvokeDynamic
)

// Constant is the loadable-constant union from spec section 3: the set
// of constant pool entries that can back an ldc instruction or a
// bootstrap method argument, plus the Field/Method variants used
// internally to resolve what a MethodHandle points at (see
// pool.methodHandle). Only the field matching Kind is meaningful.
type Constant struct {
	Kind ConstantKind

	Int    int32        // ConstInt
	Float  float32      // ConstFloat
	Long   int64        // ConstLong
	Double float64      // ConstDouble
	Str    string       // ConstString (the string value), ConstClass (internal name)
	Member MemberRef    // ConstField, ConstMethod
	Type   Type         // ConstMethodType, ConstDynamic (field descriptor), ConstInvokeDynamic (method descriptor)
	Handle MethodHandle // ConstMethodHandle

	// IsInterface is meaningful only for ConstMethod: it distinguishes a
	// Methodref target (false) from an InterfaceMethodref target (true).
	IsInterface bool

	// Bootstrap and Name are meaningful only for ConstDynamic and
	// ConstInvokeDynamic. Bootstrap is a pointer (rather than an embedded
	// BootstrapMethod value) purely so the Constant/BootstrapMethod types
	// can refer to each other -- a bootstrap method argument that is
	// itself a Dynamic or InvokeDynamic constant is how nested condy/indy
	// bootstraps arise. The writer interns Bootstrap by structural
	// equality (see insertBootstrapMethod), draining newly-discovered
	// bootstrap methods to a fixed point (spec section 4.4's
	// "InvokeDynamic cycle" scenario, see bootstrap.go).
	Bootstrap *BootstrapMethod
	Name      string
}

// BootstrapMethod is one entry of the BootstrapMethods attribute: the
// method handle to invoke and its static arguments, each itself a
// loadable constant.
type BootstrapMethod struct {
	Method MethodHandle
	Args   []Constant
}
