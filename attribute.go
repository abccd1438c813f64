// Copyright 2024 The gojvm Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// Attribute is implemented by every recognized attribute variant plus the
// Raw catch-all. The unexported method keeps the sum type closed to this
// package, the same tagged-interface shape used by PoolEntry.
type Attribute interface {
	attributeName() string
}

// Raw is the catch-all for attribute names the codec doesn't recognize in
// a given context, or whose payload failed to decode structurally despite
// a recognized name. The substitution is silent: nothing is logged.
//
// Keep disambiguates a true opaque passthrough (Keep=true: re-emit Bytes
// verbatim) from an attribute the codec has lifted into a sibling field
// and should instead regenerate on write (Keep=false, e.g. the
// LocalVariableTable bytes once Code.LocalVariables has been populated).
// A newly constructed Raw defaults to Keep=true.
type Raw struct {
	Name  string
	Bytes []byte
	Keep  bool
}

func (r Raw) attributeName() string { return r.Name }

// attribute name constants, collected so the per-context dispatch tables
// below don't repeat string literals.
const (
	attrSignature                           = "Signature"
	attrSynthetic                           = "Synthetic"
	attrDeprecated                           = "Deprecated"
	attrSourceFile                          = "SourceFile"
	attrInnerClasses                        = "InnerClasses"
	attrEnclosingMethod                     = "EnclosingMethod"
	attrSourceDebugExtension                = "SourceDebugExtension"
	attrBootstrapMethods                    = "BootstrapMethods"
	attrModule                              = "Module"
	attrModulePackages                      = "ModulePackages"
	attrModuleMainClass                     = "ModuleMainClass"
	attrNestHost                            = "NestHost"
	attrNestMembers                         = "NestMembers"
	attrRecord                              = "Record"
	attrPermittedSubclasses                 = "PermittedSubclasses"
	attrConstantValue                       = "ConstantValue"
	attrCode                                = "Code"
	attrExceptions                          = "Exceptions"
	attrMethodParameters                    = "MethodParameters"
	attrAnnotationDefault                   = "AnnotationDefault"
	attrStackMapTable                       = "StackMapTable"
	attrLineNumberTable                     = "LineNumberTable"
	attrLocalVariableTable                  = "LocalVariableTable"
	attrLocalVariableTypeTable              = "LocalVariableTypeTable"
	attrRuntimeVisibleAnnotations           = "RuntimeVisibleAnnotations"
	attrRuntimeInvisibleAnnotations         = "RuntimeInvisibleAnnotations"
	attrRuntimeVisibleParameterAnnotations  = "RuntimeVisibleParameterAnnotations"
	attrRuntimeInvisibleParameterAnnotations = "RuntimeInvisibleParameterAnnotations"
	attrRuntimeVisibleTypeAnnotations       = "RuntimeVisibleTypeAnnotations"
	attrRuntimeInvisibleTypeAnnotations     = "RuntimeInvisibleTypeAnnotations"
)

// attrDecoder decodes one attribute's payload (already isolated to its
// declared length) given the enclosing pool for index resolution.
type attrDecoder func(body *byteReader, p *pool) (Attribute, error)

// readAttributeList reads an attribute_count/attributes[] pair, dispatching
// each entry's name against table. Unknown names, and names whose decoder
// returns an error, become Raw{Keep:true} -- per spec section 7, only
// structural inconsistencies inside a *recognized* envelope are fatal; an
// unrecognized attribute is just data the codec doesn't model.
func readAttributeList(r *byteReader, p *pool, table map[string]attrDecoder) ([]Attribute, error) {
	count, err := r.readU16()
	if err != nil {
		return nil, err
	}
	attrs := make([]Attribute, 0, count)
	for i := uint16(0); i < count; i++ {
		nameIdx, err := r.readU16()
		if err != nil {
			return nil, err
		}
		name, err := p.utf8(nameIdx)
		if err != nil {
			return nil, err
		}
		length, err := r.readU32()
		if err != nil {
			return nil, err
		}
		payload, err := r.readBytes(int(length))
		if err != nil {
			return nil, err
		}

		decode, known := table[name]
		if !known {
			attrs = append(attrs, Raw{Name: name, Bytes: append([]byte(nil), payload...), Keep: true})
			continue
		}
		body := newByteReader(payload)
		attr, err := decode(body, p)
		if err != nil {
			attrs = append(attrs, Raw{Name: name, Bytes: append([]byte(nil), payload...), Keep: true})
			continue
		}
		attrs = append(attrs, attr)
	}
	return attrs, nil
}

// attrEncoder serializes an attribute's payload into body, for the caller
// to wrap with a name index and u32 length.
type attrEncoder func(body *byteWriter, p *pool, a Attribute) error

// writeAttributeList writes attribute_count followed by each attribute,
// skipping Raw entries marked Keep=false (those exist only as a record of
// what to regenerate, and must not be re-emitted verbatim). encode
// switches on a concrete Attribute's dynamic type, writes its payload and
// returns its name; for a Raw it writes Bytes as-is.
func writeAttributeList(w *byteWriter, p *pool, attrs []Attribute, encode func(p *pool, a Attribute) (name string, body *byteWriter, err error)) error {
	frames, err := writeAttributeEntries(p, attrs, encode)
	if err != nil {
		return err
	}
	w.writeU16(uint16(len(frames)))
	for _, frame := range frames {
		w.writeBytes(frame)
	}
	return nil
}

// writeAttributeEntries encodes attrs (skipping Raw entries marked
// Keep=false) into already-framed name-index/length/body byte slices,
// without writing the leading attribute_count -- used directly by callers
// that need to append further entries (Class.Write's regenerated
// BootstrapMethods attribute) before the count is known.
func writeAttributeEntries(p *pool, attrs []Attribute, encode func(p *pool, a Attribute) (name string, body *byteWriter, err error)) ([][]byte, error) {
	frames := make([][]byte, 0, len(attrs))
	for _, a := range attrs {
		if raw, ok := a.(Raw); ok && !raw.Keep {
			continue
		}
		name, body, err := encode(p, a)
		if err != nil {
			return nil, err
		}
		frame := newByteWriter()
		frame.writeU16(p.insertUtf8(name))
		if err := frame.writeBlob(4, body.bytes()); err != nil {
			return nil, err
		}
		frames = append(frames, frame.bytes())
	}
	return frames, nil
}
