// Copyright 2024 The gojvm Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"io"

	"github.com/gojvm/classfile/internal/log"
)

const classMagic = 0xCAFEBABE

// Options configures Read, mirroring pe.Options: a small struct of knobs
// passed in at the entry point rather than parsed from flags or a config
// file -- the library itself never touches the environment or a
// filesystem config path, consistent with the teacher's own library/CLI
// split.
type Options struct {
	// MaxConstantPoolEntries caps constant_pool_count as a defense
	// against a truncated or adversarial length field driving an
	// unreasonable allocation. Zero means unlimited.
	MaxConstantPoolEntries int

	// StrictUTF8, when false, would relax modified-UTF-8 decoding; the
	// current decoder is always strict (see mutf8.go) and this flag is
	// reserved for a future lenient mode rather than wired to behavior
	// yet -- see DESIGN.md.
	StrictUTF8 bool

	// Logger receives non-fatal notices: Read sends it one debug-level
	// summary line per parsed class. A recognized attribute whose payload
	// failed to decode and was substituted with Raw is not reported. A nil
	// Logger disables these notices.
	Logger log.Logger
}

// Class is the single user-facing representation of a parsed or
// to-be-written class file. Every index into the constant pool has
// already been resolved to a rich value; the wire-level shape (the
// phantom Long/Double slots, the index numbering itself) lives only in
// the unexported pool type and the local state of Read/Write, and never
// escapes this package -- resolving the open question noted in spec
// section 9 about two Class types.
type Class struct {
	MinorVersion uint16
	MajorVersion uint16
	Flags        uint16
	Name         string
	SuperName    string // "" means no superclass (legal only when Name == "java/lang/Object")
	Interfaces   []string
	Fields       []Field
	Methods      []Method
	Attributes   []Attribute

	// BootstrapMethods holds every bootstrap method this class defines,
	// independent of whether anything in the structural model still
	// references it through a Constant's Bootstrap pointer (see
	// member.go) -- a bootstrap method can be referenced only from
	// opaque Code bytes (an indy instruction operand), so this is the
	// only durable anchor keeping it present across a read/write
	// round-trip. Write seeds the pool from this list before any other
	// attribute is serialized, then appends any further bootstrap
	// methods discovered while serializing Constant values elsewhere.
	BootstrapMethods []BootstrapMethod

	pool *pool // retained only for ConstantPoolSnapshot; nil on a freshly constructed Class
}

// ConstantPoolSnapshot returns the raw entries of the constant pool this
// Class was read from, for diagnostics only (e.g. cmd/classdump's --pool
// flag) -- never required for a correct round-trip, mirroring how
// pe.File keeps DOSHeader/RichHeader around for the dumper alongside the
// fields it actually parses into. Returns nil for a Class that wasn't
// produced by Read.
func (c *Class) ConstantPoolSnapshot() []PoolEntry {
	if c.pool == nil {
		return nil
	}
	return append([]PoolEntry(nil), c.pool.entries...)
}

// Field is a class's field_info entry, fully lifted: Flags plus the
// resolved name, descriptor and attribute list.
type Field struct {
	Flags      uint16
	Name       string
	Descriptor Type
	Attributes []Attribute
}

// Method is a class's method_info entry, the method-shaped sibling of
// Field.
type Method struct {
	Flags      uint16
	Name       string
	Descriptor Type
	Attributes []Attribute
}

// Read parses a class file from data, resolving every constant pool
// index as it walks the envelope top to bottom -- access flags, this
// and super class, interfaces, fields, methods, attributes -- per spec
// section 4.4. Reading fails with *BadMagicError if the header doesn't
// match, or a *FormatError / sentinel error at the first structural
// inconsistency; there is no partial recovery (spec section 7).
func Read(data []byte, opts Options) (*Class, error) {
	r := newByteReader(data)

	magic, err := r.readU32()
	if err != nil {
		return nil, err
	}
	if magic != classMagic {
		return nil, &BadMagicError{Found: magic}
	}

	minor, err := r.readU16()
	if err != nil {
		return nil, err
	}
	major, err := r.readU16()
	if err != nil {
		return nil, err
	}

	p, err := readPool(r)
	if err != nil {
		return nil, err
	}
	if opts.MaxConstantPoolEntries > 0 && int(p.count()) > opts.MaxConstantPoolEntries {
		return nil, invalid("constant pool", "pool has %d slots, exceeding the configured maximum %d", p.count(), opts.MaxConstantPoolEntries)
	}

	flags, err := r.readU16()
	if err != nil {
		return nil, err
	}
	thisIdx, err := r.readU16()
	if err != nil {
		return nil, err
	}
	name, err := p.className(thisIdx)
	if err != nil {
		return nil, err
	}
	superIdx, err := r.readU16()
	if err != nil {
		return nil, err
	}
	var super string
	if superIdx != 0 {
		if super, err = p.className(superIdx); err != nil {
			return nil, err
		}
	} else if name != "java/lang/Object" {
		return nil, invalid("super class", "class %q has no superclass but is not java/lang/Object", name)
	}

	ifaceCount, err := r.readU16()
	if err != nil {
		return nil, err
	}
	interfaces := make([]string, ifaceCount)
	for i := range interfaces {
		idx, err := r.readU16()
		if err != nil {
			return nil, err
		}
		interfaces[i], err = p.className(idx)
		if err != nil {
			return nil, err
		}
	}

	fields, err := readFields(r, p)
	if err != nil {
		return nil, err
	}
	methods, err := readMethods(r, p)
	if err != nil {
		return nil, err
	}
	attrs, err := readAttributeList(r, p, classAttrTable)
	if err != nil {
		return nil, err
	}

	var bootstrap []BootstrapMethod
	for _, a := range attrs {
		if bm, ok := a.(BootstrapMethodsAttr); ok {
			bootstrap = bm.Methods
			break
		}
	}

	logger := log.NewHelper(log.NewFilter(loggerOrStderr(opts.Logger), log.FilterLevel(log.LevelDebug)))
	logger.Debugf("classfile: parsed %s (%d fields, %d methods, %d attributes)",
		name, len(fields), len(methods), len(attrs))

	return &Class{
		MinorVersion: minor, MajorVersion: major, Flags: flags,
		Name: name, SuperName: super, Interfaces: interfaces,
		Fields: fields, Methods: methods, Attributes: attrs,
		BootstrapMethods: bootstrap,
		pool:             p,
	}, nil
}

// Write serializes c to dst. Per spec section 2's write-side data flow,
// attribute payloads are built into scratch buffers while a fresh pool
// collects interned entries; the envelope is emitted with that pool
// serialized in the middle, and the BootstrapMethods attribute -- seeded
// from c.BootstrapMethods and drained to a fixed point -- is appended to
// the class attribute list last, after every other attribute (and hence
// every other round of interning) has completed.
func (c *Class) Write(dst io.Writer) error {
	p := newPool()

	thisIdx := p.insertClass(c.Name)
	var superIdx uint16
	if c.SuperName != "" {
		superIdx = p.insertClass(c.SuperName)
	}
	interfaceIdx := make([]uint16, len(c.Interfaces))
	for i, iface := range c.Interfaces {
		interfaceIdx[i] = p.insertClass(iface)
	}

	for _, bsm := range c.BootstrapMethods {
		p.insertBootstrapMethod(bsm)
	}

	fieldsBuf := newByteWriter()
	if err := writeFields(fieldsBuf, p, c.Fields); err != nil {
		return err
	}
	methodsBuf := newByteWriter()
	if err := writeMethods(methodsBuf, p, c.Methods); err != nil {
		return err
	}

	classAttrs := make([]Attribute, 0, len(c.Attributes))
	for _, a := range c.Attributes {
		if _, isBSM := a.(BootstrapMethodsAttr); isBSM {
			continue // regenerated below, from c.BootstrapMethods plus anything interned meanwhile
		}
		classAttrs = append(classAttrs, a)
	}
	frames, err := writeAttributeEntries(p, classAttrs, encodeClassAttribute)
	if err != nil {
		return err
	}

	// BootstrapMethods is appended last, after every other attribute (and
	// hence every other round of interning) has finished -- its own
	// writer drains p.bootstrapMethods to a fixed point as it goes.
	bsmBody, err := writeBootstrapMethodsAttribute(p)
	if err != nil {
		return err
	}
	if len(p.bootstrapMethods) > 0 {
		frame := newByteWriter()
		frame.writeU16(p.insertUtf8(attrBootstrapMethods))
		if err := frame.writeBlob(4, bsmBody.bytes()); err != nil {
			return err
		}
		frames = append(frames, frame.bytes())
	}

	w := newByteWriter()
	w.writeU32(classMagic)
	w.writeU16(c.MinorVersion)
	w.writeU16(c.MajorVersion)
	if err := p.serialize(w); err != nil {
		return err
	}
	w.writeU16(c.Flags)
	w.writeU16(thisIdx)
	w.writeU16(superIdx)
	w.writeU16(uint16(len(interfaceIdx)))
	for _, idx := range interfaceIdx {
		w.writeU16(idx)
	}
	w.writeBytes(fieldsBuf.bytes())
	w.writeBytes(methodsBuf.bytes())

	w.writeU16(uint16(len(frames)))
	for _, frame := range frames {
		w.writeBytes(frame)
	}

	return w.writeTo(dst)
}

// loggerOrStderr substitutes a no-op logger for a nil Options.Logger, the
// same default-construction step the teacher's File.Parse performs for
// its own opts.Logger.
func loggerOrStderr(l log.Logger) log.Logger {
	if l == nil {
		return log.NewNopLogger()
	}
	return l
}
