// Copyright 2024 The gojvm Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// SignatureAttr carries a generic-signature string, recognized at class,
// field and method level alike. Parsing the signature grammar itself is
// out of scope (spec section 1's type-signature mini-parser); the string
// is handed through as-is.
type SignatureAttr struct{ Signature string }

func (SignatureAttr) attributeName() string { return attrSignature }

// SyntheticAttr marks a member the compiler introduced with no source
// correspondent. It carries no payload.
type SyntheticAttr struct{}

func (SyntheticAttr) attributeName() string { return attrSynthetic }

// DeprecatedAttr marks a member annotated @Deprecated. It carries no
// payload.
type DeprecatedAttr struct{}

func (DeprecatedAttr) attributeName() string { return attrDeprecated }

func decodeSignature(body *byteReader, p *pool) (Attribute, error) {
	idx, err := body.readU16()
	if err != nil {
		return nil, err
	}
	s, err := p.utf8(idx)
	if err != nil {
		return nil, err
	}
	return SignatureAttr{Signature: s}, nil
}

func encodeSignature(body *byteWriter, p *pool, a Attribute) error {
	body.writeU16(p.insertUtf8(a.(SignatureAttr).Signature))
	return nil
}

func decodeSynthetic(body *byteReader, p *pool) (Attribute, error) {
	return SyntheticAttr{}, nil
}

func encodeSynthetic(body *byteWriter, p *pool, a Attribute) error { return nil }

func decodeDeprecated(body *byteReader, p *pool) (Attribute, error) {
	return DeprecatedAttr{}, nil
}

func encodeDeprecated(body *byteWriter, p *pool, a Attribute) error { return nil }

// ExceptionsAttr lists the checked exception classes a method declares.
type ExceptionsAttr struct{ Classes []string }

func (ExceptionsAttr) attributeName() string { return attrExceptions }

func decodeExceptions(body *byteReader, p *pool) (Attribute, error) {
	count, err := body.readU16()
	if err != nil {
		return nil, err
	}
	classes := make([]string, count)
	for i := range classes {
		idx, err := body.readU16()
		if err != nil {
			return nil, err
		}
		name, err := p.className(idx)
		if err != nil {
			return nil, err
		}
		classes[i] = name
	}
	return ExceptionsAttr{Classes: classes}, nil
}

func encodeExceptions(body *byteWriter, p *pool, a Attribute) error {
	classes := a.(ExceptionsAttr).Classes
	body.writeU16(uint16(len(classes)))
	for _, c := range classes {
		body.writeU16(p.insertClass(c))
	}
	return nil
}

// MethodParameter is one entry of a MethodParameters attribute.
type MethodParameter struct {
	Name  string // empty means "no name present" (formal parameter, not a name-less slot)
	Flags uint16
}

// MethodParametersAttr records formal parameter names and access flags
// (ACC_FINAL, ACC_SYNTHETIC, ACC_MANDATED), independent of debug info.
type MethodParametersAttr struct{ Parameters []MethodParameter }

func (MethodParametersAttr) attributeName() string { return attrMethodParameters }

func decodeMethodParameters(body *byteReader, p *pool) (Attribute, error) {
	count, err := body.readU8()
	if err != nil {
		return nil, err
	}
	params := make([]MethodParameter, count)
	for i := range params {
		nameIdx, err := body.readU16()
		if err != nil {
			return nil, err
		}
		flags, err := body.readU16()
		if err != nil {
			return nil, err
		}
		name := ""
		if nameIdx != 0 {
			name, err = p.utf8(nameIdx)
			if err != nil {
				return nil, err
			}
		}
		params[i] = MethodParameter{Name: name, Flags: flags}
	}
	return MethodParametersAttr{Parameters: params}, nil
}

func encodeMethodParameters(body *byteWriter, p *pool, a Attribute) error {
	params := a.(MethodParametersAttr).Parameters
	if len(params) > 0xFF {
		return ErrArithmeticOverflow
	}
	body.writeU8(uint8(len(params)))
	for _, mp := range params {
		var nameIdx uint16
		if mp.Name != "" {
			nameIdx = p.insertUtf8(mp.Name)
		}
		body.writeU16(nameIdx)
		body.writeU16(mp.Flags)
	}
	return nil
}

// ConstantValueAttr fixes a static final field's compile-time value.
type ConstantValueAttr struct{ Value Constant }

func (ConstantValueAttr) attributeName() string { return attrConstantValue }

func decodeConstantValue(body *byteReader, p *pool) (Attribute, error) {
	idx, err := body.readU16()
	if err != nil {
		return nil, err
	}
	c, err := p.constant(idx)
	if err != nil {
		return nil, err
	}
	return ConstantValueAttr{Value: c}, nil
}

func encodeConstantValue(body *byteWriter, p *pool, a Attribute) error {
	body.writeU16(p.insertConstant(a.(ConstantValueAttr).Value))
	return nil
}

// RecordComponent is one entry of a Record attribute (JEP 395, kept as a
// supplemental feature -- see SPEC_FULL.md section 3).
type RecordComponent struct {
	Name       string
	Descriptor Type
	Attributes []Attribute // Signature / Runtime*Annotations, same as a field's
}

// RecordAttr lists the components of a record class.
type RecordAttr struct{ Components []RecordComponent }

func (RecordAttr) attributeName() string { return attrRecord }

func decodeRecord(body *byteReader, p *pool) (Attribute, error) {
	count, err := body.readU16()
	if err != nil {
		return nil, err
	}
	components := make([]RecordComponent, count)
	for i := range components {
		nameIdx, err := body.readU16()
		if err != nil {
			return nil, err
		}
		name, err := p.utf8(nameIdx)
		if err != nil {
			return nil, err
		}
		descIdx, err := body.readU16()
		if err != nil {
			return nil, err
		}
		descStr, err := p.utf8(descIdx)
		if err != nil {
			return nil, err
		}
		desc, err := ParseFieldDescriptor(descStr)
		if err != nil {
			return nil, err
		}
		attrs, err := readAttributeList(body, p, memberAttrTable)
		if err != nil {
			return nil, err
		}
		components[i] = RecordComponent{Name: name, Descriptor: desc, Attributes: attrs}
	}
	return RecordAttr{Components: components}, nil
}

func encodeRecord(body *byteWriter, p *pool, a Attribute) error {
	components := a.(RecordAttr).Components
	body.writeU16(uint16(len(components)))
	for _, c := range components {
		body.writeU16(p.insertUtf8(c.Name))
		body.writeU16(p.insertUtf8(c.Descriptor.String()))
		if err := writeAttributeList(body, p, c.Attributes, encodeMemberAttribute); err != nil {
			return err
		}
	}
	return nil
}

// PermittedSubclassesAttr lists the classes permitted to extend a sealed
// class, in the same shape as NestMembers.
type PermittedSubclassesAttr struct{ Classes []string }

func (PermittedSubclassesAttr) attributeName() string { return attrPermittedSubclasses }

func decodePermittedSubclasses(body *byteReader, p *pool) (Attribute, error) {
	count, err := body.readU16()
	if err != nil {
		return nil, err
	}
	classes := make([]string, count)
	for i := range classes {
		idx, err := body.readU16()
		if err != nil {
			return nil, err
		}
		name, err := p.className(idx)
		if err != nil {
			return nil, err
		}
		classes[i] = name
	}
	return PermittedSubclassesAttr{Classes: classes}, nil
}

func encodePermittedSubclasses(body *byteWriter, p *pool, a Attribute) error {
	classes := a.(PermittedSubclassesAttr).Classes
	body.writeU16(uint16(len(classes)))
	for _, c := range classes {
		body.writeU16(p.insertClass(c))
	}
	return nil
}
