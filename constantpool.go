// Copyright 2024 The gojvm Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"fmt"
	"math"
)

// Constant pool tags, grounded on the standard JVM tag numbering (see
// e.g. other_examples' daimatz-gojvm and dhamidi-sai class-file parsers,
// which use the same constants under the same names).
const (
	TagUtf8               = 1
	TagInteger            = 3
	TagFloat              = 4
	TagLong               = 5
	TagDouble             = 6
	TagClass              = 7
	TagString             = 8
	TagFieldref           = 9
	TagMethodref          = 10
	TagInterfaceMethodref = 11
	TagNameAndType        = 12
	TagMethodHandle       = 15
	TagMethodType         = 16
	TagDynamic            = 17
	TagInvokeDynamic      = 18
	TagModule             = 19
	TagPackage            = 20
)

// PoolEntry is implemented by every constant pool entry kind. It is the
// raw, index-bearing form seen on the wire -- before indices are
// resolved against the pool into the lifted Type/MemberRef/Constant
// values the rest of the codec hands to callers.
type PoolEntry interface {
	Tag() uint8
}

// phantomEntry occupies the second slot after a Long or Double entry.
// The JVM spec reserves that slot but forbids addressing it directly;
// entry() on a phantom index returns (nil, false) just like index 0.
type phantomEntry struct{}

func (phantomEntry) Tag() uint8 { return 0 }

type Utf8Entry struct{ Text string }
type IntegerEntry struct{ Value int32 }
type FloatEntry struct{ Value float32 }
type LongEntry struct{ Value int64 }
type DoubleEntry struct{ Value float64 }
type ClassEntry struct{ NameIndex uint16 }
type StringEntry struct{ Utf8Index uint16 }
type NameAndTypeEntry struct{ NameIndex, DescriptorIndex uint16 }
type FieldrefEntry struct{ ClassIndex, NameAndTypeIndex uint16 }
type MethodrefEntry struct{ ClassIndex, NameAndTypeIndex uint16 }
type InterfaceMethodrefEntry struct{ ClassIndex, NameAndTypeIndex uint16 }
type MethodHandleEntry struct {
	Kind        MethodHandleKind
	MemberIndex uint16
}
type MethodTypeEntry struct{ DescriptorIndex uint16 }
type DynamicEntry struct{ BootstrapMethodAttrIndex, NameAndTypeIndex uint16 }
type InvokeDynamicEntry struct{ BootstrapMethodAttrIndex, NameAndTypeIndex uint16 }
type ModuleEntry struct{ NameIndex uint16 }
type PackageEntry struct{ NameIndex uint16 }

func (Utf8Entry) Tag() uint8               { return TagUtf8 }
func (IntegerEntry) Tag() uint8            { return TagInteger }
func (FloatEntry) Tag() uint8              { return TagFloat }
func (LongEntry) Tag() uint8               { return TagLong }
func (DoubleEntry) Tag() uint8             { return TagDouble }
func (ClassEntry) Tag() uint8              { return TagClass }
func (StringEntry) Tag() uint8             { return TagString }
func (NameAndTypeEntry) Tag() uint8        { return TagNameAndType }
func (FieldrefEntry) Tag() uint8           { return TagFieldref }
func (MethodrefEntry) Tag() uint8          { return TagMethodref }
func (InterfaceMethodrefEntry) Tag() uint8 { return TagInterfaceMethodref }
func (MethodHandleEntry) Tag() uint8       { return TagMethodHandle }
func (MethodTypeEntry) Tag() uint8         { return TagMethodType }
func (DynamicEntry) Tag() uint8            { return TagDynamic }
func (InvokeDynamicEntry) Tag() uint8      { return TagInvokeDynamic }
func (ModuleEntry) Tag() uint8             { return TagModule }
func (PackageEntry) Tag() uint8            { return TagPackage }

// MethodHandleKind is the reference_kind byte of a CONSTANT_MethodHandle
// entry.
type MethodHandleKind uint8

const (
	RefGetField MethodHandleKind = 1 + iota
	RefGetStatic
	RefPutField
	RefPutStatic
	RefInvokeVirtual
	RefInvokeStatic
	RefInvokeSpecial
	RefNewInvokeSpecial
	RefInvokeInterface
)

func (k MethodHandleKind) isFieldKind() bool {
	switch k {
	case RefGetField, RefGetStatic, RefPutField, RefPutStatic:
		return true
	}
	return false
}

func (k MethodHandleKind) isMethodKind() bool {
	switch k {
	case RefInvokeVirtual, RefInvokeStatic, RefInvokeSpecial, RefInvokeInterface, RefNewInvokeSpecial:
		return true
	}
	return false
}

// pool is the constant pool's single implementation, shared by the
// reader and writer roles described in spec section 4.3 -- one table,
// addressed by 1-based index, populated either by parsing the wire
// format (read) or by interning values as the structural codec walks
// the Class being written (write).
//
// On read, entries is fully populated up front and never mutated again.
// Dynamic/InvokeDynamic constants resolve against bootstrapMethods, which
// decodeBootstrapMethods fills when the class-level BootstrapMethods
// attribute is read; a lookup made before that fails with an
// out-of-range error, and no unresolved lookup is kept to be completed
// later.
//
// On write, entries grows as insert* calls intern new values; the index
// map dedups so a repeated insert of an equal value returns the same
// index without reordering anything already handed out.
type pool struct {
	entries []PoolEntry // entries[0] is always nil; 1-based addressing

	// write-side dedup: canonical string key -> already-assigned index.
	index map[string]uint16

	// bootstrap method table. On read, preallocated to its final length
	// before any entry is resolved (see decodeBootstrapMethods) so that
	// forward and self references among bootstrap method arguments can
	// take a stable pointer to a not-yet-filled-in slot. On write, grown
	// by insertBootstrapMethod as new distinct bootstrap methods are
	// discovered, deduped by bsmIndex.
	bootstrapMethods []BootstrapMethod
	bsmIndex         map[string]uint16 // write-side dedup, see insertBootstrapMethod
}

func newPool() *pool {
	return &pool{
		entries:  make([]PoolEntry, 1),
		index:    make(map[string]uint16),
		bsmIndex: make(map[string]uint16),
	}
}

// resolveBootstrapMethod returns a stable pointer to bootstrap method
// idx. Used while decoding: once decodeBootstrapMethods preallocates the
// slice to its final length, every index within range is addressable
// even before that slot's own Method/Args have been filled in, which is
// what makes forward and self references among bootstrap arguments work.
func (p *pool) resolveBootstrapMethod(idx uint16) (*BootstrapMethod, error) {
	if int(idx) >= len(p.bootstrapMethods) {
		return nil, invalid("BootstrapMethods", "bootstrap method index %d out of range", idx)
	}
	return &p.bootstrapMethods[idx], nil
}

// count returns the constant_pool_count field: one past the highest
// assigned slot index, including phantom Long/Double slots.
func (p *pool) count() uint16 {
	return uint16(len(p.entries))
}

// entry returns the raw entry at idx, or (nil, false) for index 0 or a
// phantom Long/Double slot.
func (p *pool) entry(idx uint16) (PoolEntry, bool) {
	if idx == 0 || int(idx) >= len(p.entries) {
		return nil, false
	}
	e := p.entries[idx]
	if e == nil {
		return nil, false
	}
	if _, ok := e.(phantomEntry); ok {
		return nil, false
	}
	return e, true
}

func (p *pool) utf8(idx uint16) (string, error) {
	e, ok := p.entry(idx)
	if !ok {
		return "", invalid("constant pool entry index", "index %d does not exist", idx)
	}
	u, ok := e.(Utf8Entry)
	if !ok {
		return "", invalid("constant pool entry index", "index %d is not Utf8", idx)
	}
	return u.Text, nil
}

func (p *pool) className(idx uint16) (string, error) {
	e, ok := p.entry(idx)
	if !ok {
		return "", invalid("constant pool entry index", "index %d does not exist", idx)
	}
	c, ok := e.(ClassEntry)
	if !ok {
		return "", invalid("constant pool entry index", "index %d is not Class", idx)
	}
	return p.utf8(c.NameIndex)
}

func (p *pool) moduleName(idx uint16) (string, error) {
	e, ok := p.entry(idx)
	if !ok {
		return "", invalid("constant pool entry index", "index %d does not exist", idx)
	}
	m, ok := e.(ModuleEntry)
	if !ok {
		return "", invalid("constant pool entry index", "index %d is not Module", idx)
	}
	return p.utf8(m.NameIndex)
}

func (p *pool) packageName(idx uint16) (string, error) {
	e, ok := p.entry(idx)
	if !ok {
		return "", invalid("constant pool entry index", "index %d does not exist", idx)
	}
	pk, ok := e.(PackageEntry)
	if !ok {
		return "", invalid("constant pool entry index", "index %d is not Package", idx)
	}
	return p.utf8(pk.NameIndex)
}

func (p *pool) nameAndType(idx uint16) (name, desc string, err error) {
	e, ok := p.entry(idx)
	if !ok {
		return "", "", invalid("constant pool entry index", "index %d does not exist", idx)
	}
	nt, ok := e.(NameAndTypeEntry)
	if !ok {
		return "", "", invalid("constant pool entry index", "index %d is not NameAndType", idx)
	}
	name, err = p.utf8(nt.NameIndex)
	if err != nil {
		return "", "", err
	}
	desc, err = p.utf8(nt.DescriptorIndex)
	if err != nil {
		return "", "", err
	}
	return name, desc, nil
}

// member resolves a Fieldref/Methodref/InterfaceMethodref index into a
// fully lifted MemberRef, parsing its descriptor through the type
// descriptor parser (C5) and setting IsInterface based on the entry's
// tag.
func (p *pool) member(idx uint16) (MemberRef, error) {
	e, ok := p.entry(idx)
	if !ok {
		return MemberRef{}, invalid("constant pool entry index", "index %d does not exist", idx)
	}

	var classIdx, natIdx uint16
	isInterface := false
	switch v := e.(type) {
	case FieldrefEntry:
		classIdx, natIdx = v.ClassIndex, v.NameAndTypeIndex
	case MethodrefEntry:
		classIdx, natIdx = v.ClassIndex, v.NameAndTypeIndex
	case InterfaceMethodrefEntry:
		classIdx, natIdx = v.ClassIndex, v.NameAndTypeIndex
		isInterface = true
	default:
		return MemberRef{}, invalid("constant pool entry index", "index %d is not a member reference", idx)
	}

	owner, err := p.className(classIdx)
	if err != nil {
		return MemberRef{}, err
	}
	name, desc, err := p.nameAndType(natIdx)
	if err != nil {
		return MemberRef{}, err
	}
	t, err := ParseDescriptor(desc)
	if err != nil {
		return MemberRef{}, err
	}
	return MemberRef{Owner: owner, Name: name, Descriptor: t, IsInterface: isInterface}, nil
}

// constant lifts any loadable entry at idx into the Constant union
// (spec section 3/4.3). Field and Method variants are produced for
// Fieldref/Methodref/InterfaceMethodref indices -- used internally when
// resolving the member a MethodHandle points to, see methodHandle below.
func (p *pool) constant(idx uint16) (Constant, error) {
	e, ok := p.entry(idx)
	if !ok {
		return Constant{}, invalid("constant pool entry index", "index %d does not exist", idx)
	}
	switch v := e.(type) {
	case IntegerEntry:
		return Constant{Kind: ConstInt, Int: v.Value}, nil
	case FloatEntry:
		return Constant{Kind: ConstFloat, Float: v.Value}, nil
	case LongEntry:
		return Constant{Kind: ConstLong, Long: v.Value}, nil
	case DoubleEntry:
		return Constant{Kind: ConstDouble, Double: v.Value}, nil
	case StringEntry:
		s, err := p.utf8(v.Utf8Index)
		if err != nil {
			return Constant{}, err
		}
		return Constant{Kind: ConstString, Str: s}, nil
	case ClassEntry:
		n, err := p.className(idx)
		if err != nil {
			return Constant{}, err
		}
		return Constant{Kind: ConstClass, Str: n}, nil
	case FieldrefEntry, MethodrefEntry, InterfaceMethodrefEntry:
		m, err := p.member(idx)
		if err != nil {
			return Constant{}, err
		}
		if _, isField := e.(FieldrefEntry); isField {
			return Constant{Kind: ConstField, Member: m}, nil
		}
		_, isInterfaceMethod := e.(InterfaceMethodrefEntry)
		return Constant{Kind: ConstMethod, Member: m, IsInterface: isInterfaceMethod}, nil
	case MethodTypeEntry:
		desc, err := p.utf8(v.DescriptorIndex)
		if err != nil {
			return Constant{}, err
		}
		t, err := ParseMethodDescriptor(desc)
		if err != nil {
			return Constant{}, err
		}
		return Constant{Kind: ConstMethodType, Type: t}, nil
	case MethodHandleEntry:
		mh, err := p.methodHandle(v)
		if err != nil {
			return Constant{}, err
		}
		return Constant{Kind: ConstMethodHandle, Handle: mh}, nil
	case DynamicEntry:
		name, desc, err := p.nameAndType(v.NameAndTypeIndex)
		if err != nil {
			return Constant{}, err
		}
		t, err := ParseFieldDescriptor(desc)
		if err != nil {
			return Constant{}, err
		}
		bsm, err := p.resolveBootstrapMethod(v.BootstrapMethodAttrIndex)
		if err != nil {
			return Constant{}, err
		}
		return Constant{Kind: ConstDynamic, Bootstrap: bsm, Name: name, Type: t}, nil
	case InvokeDynamicEntry:
		name, desc, err := p.nameAndType(v.NameAndTypeIndex)
		if err != nil {
			return Constant{}, err
		}
		t, err := ParseMethodDescriptor(desc)
		if err != nil {
			return Constant{}, err
		}
		bsm, err := p.resolveBootstrapMethod(v.BootstrapMethodAttrIndex)
		if err != nil {
			return Constant{}, err
		}
		return Constant{Kind: ConstInvokeDynamic, Bootstrap: bsm, Name: name, Type: t}, nil
	default:
		return Constant{}, invalid("constant pool entry index", "index %d is not a loadable constant", idx)
	}
}

// methodHandle resolves a MethodHandleEntry to its lifted form,
// enforcing the kind/member-kind and kind/name constraints from spec
// section 3.
func (p *pool) methodHandle(e MethodHandleEntry) (MethodHandle, error) {
	target, err := p.constant(e.MemberIndex)
	if err != nil {
		return MethodHandle{}, err
	}

	switch {
	case e.Kind.isFieldKind():
		if target.Kind != ConstField {
			return MethodHandle{}, invalid("MethodHandle", "kind %d requires a field reference", e.Kind)
		}
		return MethodHandle{Kind: e.Kind, Member: target.Member}, nil

	case e.Kind.isMethodKind():
		if target.Kind != ConstMethod {
			return MethodHandle{}, invalid("MethodHandle", "kind %d requires a method reference", e.Kind)
		}
		name := target.Member.Name
		if e.Kind == RefNewInvokeSpecial {
			if name != "<init>" {
				return MethodHandle{}, invalid("MethodHandle", "NewInvokeSpecial member name must be <init>, got %q", name)
			}
		} else {
			if name == "<init>" || name == "<clinit>" {
				return MethodHandle{}, invalid("MethodHandle", "kind %d member name must not be <init> or <clinit>, got %q", e.Kind, name)
			}
		}
		return MethodHandle{Kind: e.Kind, Member: target.Member}, nil

	default:
		return MethodHandle{}, invalid("MethodHandle", "unknown reference_kind %d", e.Kind)
	}
}

// --- writer side -----------------------------------------------------

// append adds an entry to the next free slot and returns its index.
func (p *pool) append(e PoolEntry) uint16 {
	idx := uint16(len(p.entries))
	p.entries = append(p.entries, e)
	return idx
}

func (p *pool) internKeyed(key string, build func() PoolEntry) uint16 {
	if idx, ok := p.index[key]; ok {
		return idx
	}
	idx := p.append(build())
	p.index[key] = idx
	return idx
}

func (p *pool) insertUtf8(text string) uint16 {
	return p.internKeyed("u:"+text, func() PoolEntry { return Utf8Entry{Text: text} })
}

func (p *pool) insertInteger(v int32) uint16 {
	return p.internKeyed(fmt.Sprintf("i:%x", uint32(v)), func() PoolEntry { return IntegerEntry{Value: v} })
}

func (p *pool) insertFloat(v float32) uint16 {
	return p.internKeyed(fmt.Sprintf("f:%x", math.Float32bits(v)), func() PoolEntry { return FloatEntry{Value: v} })
}

func (p *pool) insertLong(v int64) uint16 {
	key := fmt.Sprintf("l:%x", uint64(v))
	if idx, ok := p.index[key]; ok {
		return idx
	}
	idx := p.append(LongEntry{Value: v})
	p.append(phantomEntry{})
	p.index[key] = idx
	return idx
}

func (p *pool) insertDouble(v float64) uint16 {
	key := fmt.Sprintf("d:%x", math.Float64bits(v))
	if idx, ok := p.index[key]; ok {
		return idx
	}
	idx := p.append(DoubleEntry{Value: v})
	p.append(phantomEntry{})
	p.index[key] = idx
	return idx
}

func (p *pool) insertClass(internalName string) uint16 {
	nameIdx := p.insertUtf8(internalName)
	return p.internKeyed(fmt.Sprintf("c:%d", nameIdx), func() PoolEntry { return ClassEntry{NameIndex: nameIdx} })
}

func (p *pool) insertString(s string) uint16 {
	u := p.insertUtf8(s)
	return p.internKeyed(fmt.Sprintf("s:%d", u), func() PoolEntry { return StringEntry{Utf8Index: u} })
}

func (p *pool) insertNameAndType(name, desc string) uint16 {
	n := p.insertUtf8(name)
	d := p.insertUtf8(desc)
	return p.internKeyed(fmt.Sprintf("nt:%d:%d", n, d), func() PoolEntry { return NameAndTypeEntry{NameIndex: n, DescriptorIndex: d} })
}

// insertMember interns the owning class, the NameAndType pair, and the
// reference itself (Fieldref/Methodref/InterfaceMethodref, chosen by
// ref.IsInterface and the isMethod flag).
func (p *pool) insertMember(ref MemberRef, isMethod bool) uint16 {
	classIdx := p.insertClass(ref.Owner)
	natIdx := p.insertNameAndType(ref.Name, ref.Descriptor.String())
	switch {
	case !isMethod:
		return p.internKeyed(fmt.Sprintf("fr:%d:%d", classIdx, natIdx),
			func() PoolEntry { return FieldrefEntry{ClassIndex: classIdx, NameAndTypeIndex: natIdx} })
	case ref.IsInterface:
		return p.internKeyed(fmt.Sprintf("imr:%d:%d", classIdx, natIdx),
			func() PoolEntry { return InterfaceMethodrefEntry{ClassIndex: classIdx, NameAndTypeIndex: natIdx} })
	default:
		return p.internKeyed(fmt.Sprintf("mr:%d:%d", classIdx, natIdx),
			func() PoolEntry { return MethodrefEntry{ClassIndex: classIdx, NameAndTypeIndex: natIdx} })
	}
}

func (p *pool) insertMethodType(t Type) uint16 {
	d := p.insertUtf8(t.String())
	return p.internKeyed(fmt.Sprintf("mt:%d", d), func() PoolEntry { return MethodTypeEntry{DescriptorIndex: d} })
}

func (p *pool) insertMethodHandle(mh MethodHandle) uint16 {
	memberIdx := p.insertMember(mh.Member, mh.Kind.isMethodKind())
	return p.internKeyed(fmt.Sprintf("mh:%d:%d", mh.Kind, memberIdx),
		func() PoolEntry { return MethodHandleEntry{Kind: mh.Kind, MemberIndex: memberIdx} })
}

// insertConstant interns any loadable Constant, dispatching to the
// appropriate specific insert and wrapping it for callers that only
// have the generic union (e.g. bootstrap method arguments).
func (p *pool) insertConstant(c Constant) uint16 {
	switch c.Kind {
	case ConstInt:
		return p.insertInteger(c.Int)
	case ConstFloat:
		return p.insertFloat(c.Float)
	case ConstLong:
		return p.insertLong(c.Long)
	case ConstDouble:
		return p.insertDouble(c.Double)
	case ConstString:
		return p.insertString(c.Str)
	case ConstClass:
		return p.insertClass(c.Str)
	case ConstField:
		return p.insertMember(c.Member, false)
	case ConstMethod:
		return p.insertMember(c.Member, true)
	case ConstMethodType:
		return p.insertMethodType(c.Type)
	case ConstMethodHandle:
		return p.insertMethodHandle(c.Handle)
	case ConstDynamic:
		bsmIdx := p.insertBootstrapMethod(*c.Bootstrap)
		return p.insertDynamic(false, bsmIdx, c.Name, c.Type.String())
	case ConstInvokeDynamic:
		bsmIdx := p.insertBootstrapMethod(*c.Bootstrap)
		return p.insertDynamic(true, bsmIdx, c.Name, c.Type.String())
	default:
		panic("classfile: insertConstant on non-loadable Constant kind")
	}
}

// insertBootstrapMethod interns a bootstrap method by structural
// equality (bsmKey, see bootstrap.go) and returns its slot in the
// eventual BootstrapMethods attribute. Because a bootstrap method's own
// arguments can themselves be Dynamic/InvokeDynamic constants carrying
// further bootstrap methods, inserting one here can be re-entered before
// it returns; the structural codec drains the resulting worklist to a
// fixed point (see writeBootstrapMethodsAttribute) rather than assuming
// it's complete after one pass.
func (p *pool) insertBootstrapMethod(bsm BootstrapMethod) uint16 {
	key := bsmKey(bsm)
	if idx, ok := p.bsmIndex[key]; ok {
		return idx
	}
	idx := uint16(len(p.bootstrapMethods))
	p.bootstrapMethods = append(p.bootstrapMethods, bsm)
	p.bsmIndex[key] = idx
	return idx
}

func (p *pool) insertDynamic(isInvoke bool, bsmIdx uint16, name, desc string) uint16 {
	natIdx := p.insertNameAndType(name, desc)
	if isInvoke {
		return p.internKeyed(fmt.Sprintf("id:%d:%d", bsmIdx, natIdx),
			func() PoolEntry { return InvokeDynamicEntry{BootstrapMethodAttrIndex: bsmIdx, NameAndTypeIndex: natIdx} })
	}
	return p.internKeyed(fmt.Sprintf("dy:%d:%d", bsmIdx, natIdx),
		func() PoolEntry { return DynamicEntry{BootstrapMethodAttrIndex: bsmIdx, NameAndTypeIndex: natIdx} })
}

func (p *pool) insertModule(name string) uint16 {
	n := p.insertUtf8(name)
	return p.internKeyed(fmt.Sprintf("mod:%d", n), func() PoolEntry { return ModuleEntry{NameIndex: n} })
}

func (p *pool) insertPackage(name string) uint16 {
	n := p.insertUtf8(name)
	return p.internKeyed(fmt.Sprintf("pkg:%d", n), func() PoolEntry { return PackageEntry{NameIndex: n} })
}

// serialize writes constant_pool_count followed by each entry in slot
// order, skipping the phantom second slot of Long/Double entries (which
// carry no bytes of their own).
func (p *pool) serialize(w *byteWriter) error {
	if len(p.entries) > 0xFFFF {
		return ErrPoolOverflow
	}
	w.writeU16(p.count())
	for i := 1; i < len(p.entries); i++ {
		e := p.entries[i]
		if _, isPhantom := e.(phantomEntry); isPhantom {
			continue
		}
		if err := writePoolEntry(w, e); err != nil {
			return err
		}
	}
	return nil
}

func writePoolEntry(w *byteWriter, e PoolEntry) error {
	w.writeU8(e.Tag())
	switch v := e.(type) {
	case Utf8Entry:
		b, err := encodeModifiedUTF8(v.Text)
		if err != nil {
			return err
		}
		return w.writeBlob(2, b)
	case IntegerEntry:
		w.writeI32(v.Value)
	case FloatEntry:
		w.writeF32(v.Value)
	case LongEntry:
		w.writeI64(v.Value)
	case DoubleEntry:
		w.writeF64(v.Value)
	case ClassEntry:
		w.writeU16(v.NameIndex)
	case StringEntry:
		w.writeU16(v.Utf8Index)
	case NameAndTypeEntry:
		w.writeU16(v.NameIndex)
		w.writeU16(v.DescriptorIndex)
	case FieldrefEntry:
		w.writeU16(v.ClassIndex)
		w.writeU16(v.NameAndTypeIndex)
	case MethodrefEntry:
		w.writeU16(v.ClassIndex)
		w.writeU16(v.NameAndTypeIndex)
	case InterfaceMethodrefEntry:
		w.writeU16(v.ClassIndex)
		w.writeU16(v.NameAndTypeIndex)
	case MethodHandleEntry:
		w.writeU8(uint8(v.Kind))
		w.writeU16(v.MemberIndex)
	case MethodTypeEntry:
		w.writeU16(v.DescriptorIndex)
	case DynamicEntry:
		w.writeU16(v.BootstrapMethodAttrIndex)
		w.writeU16(v.NameAndTypeIndex)
	case InvokeDynamicEntry:
		w.writeU16(v.BootstrapMethodAttrIndex)
		w.writeU16(v.NameAndTypeIndex)
	case ModuleEntry:
		w.writeU16(v.NameIndex)
	case PackageEntry:
		w.writeU16(v.NameIndex)
	default:
		panic(fmt.Sprintf("classfile: unknown pool entry type %T", e))
	}
	return nil
}

// readPool parses constant_pool_count and that many slots, leaving
// index 0 nil and inserting a phantom slot after each Long/Double.
func readPool(r *byteReader) (*pool, error) {
	count, err := r.readU16()
	if err != nil {
		return nil, err
	}
	p := newPool()
	for i := uint16(1); i < count; i++ {
		tag, err := r.readU8()
		if err != nil {
			return nil, err
		}
		switch tag {
		case TagUtf8:
			b, err := r.readBlob(2)
			if err != nil {
				return nil, err
			}
			s, err := decodeModifiedUTF8(b)
			if err != nil {
				return nil, err
			}
			p.entries = append(p.entries, Utf8Entry{Text: s})
		case TagInteger:
			v, err := r.readI32()
			if err != nil {
				return nil, err
			}
			p.entries = append(p.entries, IntegerEntry{Value: v})
		case TagFloat:
			v, err := r.readF32()
			if err != nil {
				return nil, err
			}
			p.entries = append(p.entries, FloatEntry{Value: v})
		case TagLong:
			v, err := r.readI64()
			if err != nil {
				return nil, err
			}
			p.entries = append(p.entries, LongEntry{Value: v}, phantomEntry{})
			i++
		case TagDouble:
			v, err := r.readF64()
			if err != nil {
				return nil, err
			}
			p.entries = append(p.entries, DoubleEntry{Value: v}, phantomEntry{})
			i++
		case TagClass:
			idx, err := r.readU16()
			if err != nil {
				return nil, err
			}
			p.entries = append(p.entries, ClassEntry{NameIndex: idx})
		case TagString:
			idx, err := r.readU16()
			if err != nil {
				return nil, err
			}
			p.entries = append(p.entries, StringEntry{Utf8Index: idx})
		case TagFieldref:
			c, n, err := readRefIndices(r)
			if err != nil {
				return nil, err
			}
			p.entries = append(p.entries, FieldrefEntry{ClassIndex: c, NameAndTypeIndex: n})
		case TagMethodref:
			c, n, err := readRefIndices(r)
			if err != nil {
				return nil, err
			}
			p.entries = append(p.entries, MethodrefEntry{ClassIndex: c, NameAndTypeIndex: n})
		case TagInterfaceMethodref:
			c, n, err := readRefIndices(r)
			if err != nil {
				return nil, err
			}
			p.entries = append(p.entries, InterfaceMethodrefEntry{ClassIndex: c, NameAndTypeIndex: n})
		case TagNameAndType:
			n, d, err := readRefIndices(r)
			if err != nil {
				return nil, err
			}
			p.entries = append(p.entries, NameAndTypeEntry{NameIndex: n, DescriptorIndex: d})
		case TagMethodHandle:
			kind, err := r.readU8()
			if err != nil {
				return nil, err
			}
			member, err := r.readU16()
			if err != nil {
				return nil, err
			}
			p.entries = append(p.entries, MethodHandleEntry{Kind: MethodHandleKind(kind), MemberIndex: member})
		case TagMethodType:
			idx, err := r.readU16()
			if err != nil {
				return nil, err
			}
			p.entries = append(p.entries, MethodTypeEntry{DescriptorIndex: idx})
		case TagDynamic:
			b, n, err := readRefIndices(r)
			if err != nil {
				return nil, err
			}
			p.entries = append(p.entries, DynamicEntry{BootstrapMethodAttrIndex: b, NameAndTypeIndex: n})
		case TagInvokeDynamic:
			b, n, err := readRefIndices(r)
			if err != nil {
				return nil, err
			}
			p.entries = append(p.entries, InvokeDynamicEntry{BootstrapMethodAttrIndex: b, NameAndTypeIndex: n})
		case TagModule:
			idx, err := r.readU16()
			if err != nil {
				return nil, err
			}
			p.entries = append(p.entries, ModuleEntry{NameIndex: idx})
		case TagPackage:
			idx, err := r.readU16()
			if err != nil {
				return nil, err
			}
			p.entries = append(p.entries, PackageEntry{NameIndex: idx})
		default:
			return nil, invalid("constant pool tag", "unknown tag %d at index %d", tag, i)
		}
	}
	return p, nil
}

func readRefIndices(r *byteReader) (a, b uint16, err error) {
	a, err = r.readU16()
	if err != nil {
		return 0, 0, err
	}
	b, err = r.readU16()
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
