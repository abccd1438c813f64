// Copyright 2024 The gojvm Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// readMethods parses a class's method_info table, the method-shaped
// sibling of readFields: same envelope, a method descriptor instead of a
// field one, and methodAttrTable (which dispatches Code) instead of
// fieldAttrTable.
func readMethods(r *byteReader, p *pool) ([]Method, error) {
	count, err := r.readU16()
	if err != nil {
		return nil, err
	}
	methods := make([]Method, count)
	for i := range methods {
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
		desc, err := ParseMethodDescriptor(descStr)
		if err != nil {
			return nil, err
		}
		attrs, err := readAttributeList(r, p, methodAttrTable)
		if err != nil {
			return nil, err
		}
		methods[i] = Method{Flags: flags, Name: name, Descriptor: desc, Attributes: attrs}
	}
	return methods, nil
}

// writeMethods serializes methods into w, the write-side sibling of
// writeFields.
func writeMethods(w *byteWriter, p *pool, methods []Method) error {
	w.writeU16(uint16(len(methods)))
	for _, m := range methods {
		if m.Descriptor.Kind != KindMethod {
			return invalid("method descriptor", "method %q does not have a method descriptor", m.Name)
		}
		w.writeU16(m.Flags)
		w.writeU16(p.insertUtf8(m.Name))
		w.writeU16(p.insertUtf8(m.Descriptor.String()))
		if err := writeAttributeList(w, p, m.Attributes, encodeMethodAttribute); err != nil {
			return err
		}
	}
	return nil
}
