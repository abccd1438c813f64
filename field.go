// Copyright 2024 The gojvm Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// readFields parses a class's field_info table, resolving each entry's
// name and descriptor and dispatching its attribute list against
// fieldAttrTable.
func readFields(r *byteReader, p *pool) ([]Field, error) {
	count, err := r.readU16()
	if err != nil {
		return nil, err
	}
	fields := make([]Field, count)
	for i := range fields {
		flags, err := r.readU16()
		if err != nil {
			return nil, err
		}
		nameIdx, err := r.readU16()
		if err != nil {
			return nil, err
		}
		name, err := p.utf8(nameIdx)
		if err != nil {
			return nil, err
		}
		descIdx, err := r.readU16()
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
		if desc.Kind == KindMethod {
			return nil, invalid("field descriptor", "field %q has a method descriptor %q", name, descStr)
		}
		attrs, err := readAttributeList(r, p, fieldAttrTable)
		if err != nil {
			return nil, err
		}
		fields[i] = Field{Flags: flags, Name: name, Descriptor: desc, Attributes: attrs}
	}
	return fields, nil
}

// writeFields serializes fields into w, interning each name, descriptor
// and attribute payload into p as it goes.
func writeFields(w *byteWriter, p *pool, fields []Field) error {
	w.writeU16(uint16(len(fields)))
	for _, f := range fields {
		if f.Descriptor.Kind == KindMethod {
			return invalid("field descriptor", "field %q has a method descriptor", f.Name)
		}
		w.writeU16(f.Flags)
		w.writeU16(p.insertUtf8(f.Name))
		w.writeU16(p.insertUtf8(f.Descriptor.String()))
		if err := writeAttributeList(w, p, f.Attributes, encodeFieldAttribute); err != nil {
			return err
		}
	}
	return nil
}
