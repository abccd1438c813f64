// Copyright 2024 The gojvm Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// ExceptionTableEntry is one row of a Code attribute's exception table.
type ExceptionTableEntry struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType string // "" means a catch-all (catch_type index 0, used by finally blocks)
}

// LocalVariableEntry is one row of a LocalVariableTable, lifted out of
// its attribute wrapper into Code.LocalVariables per SPEC_FULL.md section
// 3 -- the resolved open question on Code's scope keeps this field
// alongside the opaque instruction stream rather than requiring a
// companion decoder to re-derive it.
type LocalVariableEntry struct {
	StartPC    uint16
	Length     uint16
	Name       string
	Descriptor Type
	Index      uint16
}

// CodeAttr is the outer wrapper of a method's Code attribute. Per the
// resolved open question in spec section 9, instruction decoding itself
// is a companion concern: Code carries the raw instruction bytes
// untouched, plus everything the structural codec models in its own
// right (exception handlers, the lifted local variable table, and any
// further nested attribute -- Signature/Synthetic/Deprecated structurally,
// everything else, notably StackMapTable/LineNumberTable/
// LocalVariableTypeTable, as Raw{Keep:true}).
type CodeAttr struct {
	MaxStack       uint16
	MaxLocals      uint16
	Code           []byte
	ExceptionTable []ExceptionTableEntry
	LocalVariables []LocalVariableEntry
	Attributes     []Attribute
}

func (*CodeAttr) attributeName() string { return attrCode }

func decodeCode(body *byteReader, p *pool) (Attribute, error) {
	maxStack, err := body.readU16()
	if err != nil {
		return nil, err
	}
	maxLocals, err := body.readU16()
	if err != nil {
		return nil, err
	}
	codeLen, err := body.readU32()
	if err != nil {
		return nil, err
	}
	code, err := body.readBytes(int(codeLen))
	if err != nil {
		return nil, err
	}

	excCount, err := body.readU16()
	if err != nil {
		return nil, err
	}
	exceptions := make([]ExceptionTableEntry, excCount)
	for i := range exceptions {
		startPC, err := body.readU16()
		if err != nil {
			return nil, err
		}
		endPC, err := body.readU16()
		if err != nil {
			return nil, err
		}
		handlerPC, err := body.readU16()
		if err != nil {
			return nil, err
		}
		catchIdx, err := body.readU16()
		if err != nil {
			return nil, err
		}
		var catchType string
		if catchIdx != 0 {
			if catchType, err = p.className(catchIdx); err != nil {
				return nil, err
			}
		}
		exceptions[i] = ExceptionTableEntry{StartPC: startPC, EndPC: endPC, HandlerPC: handlerPC, CatchType: catchType}
	}

	attrCount, err := body.readU16()
	if err != nil {
		return nil, err
	}
	var localVars []LocalVariableEntry
	var attrs []Attribute
	for i := uint16(0); i < attrCount; i++ {
		nameIdx, err := body.readU16()
		if err != nil {
			return nil, err
		}
		name, err := p.utf8(nameIdx)
		if err != nil {
			return nil, err
		}
		length, err := body.readU32()
		if err != nil {
			return nil, err
		}
		payload, err := body.readBytes(int(length))
		if err != nil {
			return nil, err
		}

		if name == attrLocalVariableTable {
			lv, err := decodeLocalVariableTable(newByteReader(payload), p)
			if err != nil {
				attrs = append(attrs, Raw{Name: name, Bytes: append([]byte(nil), payload...), Keep: true})
				continue
			}
			localVars = lv
			continue
		}

		decode, known := codeAttrTable[name]
		if !known {
			attrs = append(attrs, Raw{Name: name, Bytes: append([]byte(nil), payload...), Keep: true})
			continue
		}
		attr, err := decode(newByteReader(payload), p)
		if err != nil {
			attrs = append(attrs, Raw{Name: name, Bytes: append([]byte(nil), payload...), Keep: true})
			continue
		}
		attrs = append(attrs, attr)
	}

	return &CodeAttr{
		MaxStack: maxStack, MaxLocals: maxLocals, Code: append([]byte(nil), code...),
		ExceptionTable: exceptions, LocalVariables: localVars, Attributes: attrs,
	}, nil
}

func decodeLocalVariableTable(body *byteReader, p *pool) ([]LocalVariableEntry, error) {
	count, err := body.readU16()
	if err != nil {
		return nil, err
	}
	entries := make([]LocalVariableEntry, count)
	for i := range entries {
		startPC, err := body.readU16()
		if err != nil {
			return nil, err
		}
		length, err := body.readU16()
		if err != nil {
			return nil, err
		}
		nameIdx, err := body.readU16()
		if err != nil {
			return nil, err
		}
		descIdx, err := body.readU16()
		if err != nil {
			return nil, err
		}
		index, err := body.readU16()
		if err != nil {
			return nil, err
		}
		name, err := p.utf8(nameIdx)
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
		entries[i] = LocalVariableEntry{StartPC: startPC, Length: length, Name: name, Descriptor: desc, Index: index}
	}
	return entries, nil
}

func encodeCode(body *byteWriter, p *pool, c *CodeAttr) error {
	body.writeU16(c.MaxStack)
	body.writeU16(c.MaxLocals)
	if err := body.writeBlob(4, c.Code); err != nil {
		return err
	}

	body.writeU16(uint16(len(c.ExceptionTable)))
	for _, e := range c.ExceptionTable {
		body.writeU16(e.StartPC)
		body.writeU16(e.EndPC)
		body.writeU16(e.HandlerPC)
		var catchIdx uint16
		if e.CatchType != "" {
			catchIdx = p.insertClass(e.CatchType)
		}
		body.writeU16(catchIdx)
	}

	total := 0
	for _, a := range c.Attributes {
		if raw, ok := a.(Raw); ok && !raw.Keep {
			continue
		}
		total++
	}
	if len(c.LocalVariables) > 0 {
		total++
	}
	body.writeU16(uint16(total))
	for _, a := range c.Attributes {
		if raw, ok := a.(Raw); ok && !raw.Keep {
			continue
		}
		name, payload, err := encodeCodeNestedAttribute(p, a)
		if err != nil {
			return err
		}
		body.writeU16(p.insertUtf8(name))
		if err := body.writeBlob(4, payload.bytes()); err != nil {
			return err
		}
	}
	if len(c.LocalVariables) > 0 {
		payload := newByteWriter()
		encodeLocalVariableTable(payload, p, c.LocalVariables)
		body.writeU16(p.insertUtf8(attrLocalVariableTable))
		if err := body.writeBlob(4, payload.bytes()); err != nil {
			return err
		}
	}
	return nil
}

func encodeCodeNestedAttribute(p *pool, a Attribute) (name string, body *byteWriter, err error) {
	body = newByteWriter()
	switch v := a.(type) {
	case SignatureAttr:
		err = encodeSignature(body, p, v)
	case SyntheticAttr:
		err = encodeSynthetic(body, p, v)
	case DeprecatedAttr:
		err = encodeDeprecated(body, p, v)
	case Raw:
		body.writeBytes(v.Bytes)
		return v.Name, body, nil
	default:
		return "", nil, invalid("attribute", "unexpected Code-nested attribute type %T", a)
	}
	return a.attributeName(), body, err
}

func encodeLocalVariableTable(body *byteWriter, p *pool, entries []LocalVariableEntry) {
	body.writeU16(uint16(len(entries)))
	for _, e := range entries {
		body.writeU16(e.StartPC)
		body.writeU16(e.Length)
		body.writeU16(p.insertUtf8(e.Name))
		body.writeU16(p.insertUtf8(e.Descriptor.String()))
		body.writeU16(e.Index)
	}
}
