// Copyright 2024 The gojvm Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"fmt"
	"math"
)

// decodeBootstrapMethods parses the class-level BootstrapMethods
// attribute in two passes. The first pass reads every entry's raw
// indices without resolving them; the second resolves Method and Args
// against the pool. The slice is preallocated to its final length before
// the second pass runs (pool.resolveBootstrapMethod hands out pointers into
// it), so an argument that is itself a Dynamic/InvokeDynamic constant
// referencing a bootstrap method later in this same attribute -- a
// forward reference -- or referencing its own entry resolves correctly:
// the pointer is stable even though that slot's content is filled in on
// a later (or the same) iteration of the second pass.
func decodeBootstrapMethods(body *byteReader, p *pool) (Attribute, error) {
	count, err := body.readU16()
	if err != nil {
		return nil, err
	}

	type rawEntry struct {
		handleIdx uint16
		argIdx    []uint16
	}
	raw := make([]rawEntry, count)
	for i := range raw {
		handleIdx, err := body.readU16()
		if err != nil {
			return nil, err
		}
		argCount, err := body.readU16()
		if err != nil {
			return nil, err
		}
		argIdx := make([]uint16, argCount)
		for j := range argIdx {
			v, err := body.readU16()
			if err != nil {
				return nil, err
			}
			argIdx[j] = v
		}
		raw[i] = rawEntry{handleIdx: handleIdx, argIdx: argIdx}
	}

	p.bootstrapMethods = make([]BootstrapMethod, count)
	for i, re := range raw {
		handleEntry, ok := p.entry(re.handleIdx)
		if !ok {
			return nil, invalid("BootstrapMethods", "index %d does not exist", re.handleIdx)
		}
		mhEntry, ok := handleEntry.(MethodHandleEntry)
		if !ok {
			return nil, invalid("BootstrapMethods", "index %d is not a MethodHandle", re.handleIdx)
		}
		mh, err := p.methodHandle(mhEntry)
		if err != nil {
			return nil, err
		}
		args := make([]Constant, len(re.argIdx))
		for j, argIdx := range re.argIdx {
			c, err := p.constant(argIdx)
			if err != nil {
				return nil, err
			}
			args[j] = c
		}
		p.bootstrapMethods[i] = BootstrapMethod{Method: mh, Args: args}
	}

	return BootstrapMethodsAttr{Methods: p.bootstrapMethods}, nil
}

// BootstrapMethodsAttr is the lifted BootstrapMethods attribute. It never
// appears directly in a Class's written Attributes list -- see
// writeBootstrapMethodsAttribute -- but is produced like any other
// attribute on read so callers that only inspect an already-parsed Class
// see it in Attributes alongside everything else.
type BootstrapMethodsAttr struct{ Methods []BootstrapMethod }

func (BootstrapMethodsAttr) attributeName() string { return attrBootstrapMethods }

// writeBootstrapMethodsAttribute serializes the pool's accumulated
// bootstrap method worklist, draining it to a fixed point first: writing
// a bootstrap method's arguments may itself intern further Dynamic or
// InvokeDynamic constants (spec section 4.4's "InvokeDynamic cycle"
// scenario), which append more entries to p.bootstrapMethods. The loop
// below keeps serializing newly appeared entries until a full pass adds
// nothing, at which point the worklist -- and the attribute's payload --
// are complete. This is why BootstrapMethods is written last: every
// other attribute must have finished interning first.
func writeBootstrapMethodsAttribute(p *pool) (*byteWriter, error) {
	body := newByteWriter()
	var entries [][]byte

	// The loop condition re-reads len(p.bootstrapMethods) on every
	// iteration, so a bootstrap method discovered while serializing an
	// earlier one's arguments (via insertBootstrapMethod, reached through
	// insertConstant on a ConstDynamic/ConstInvokeDynamic argument) is
	// picked up automatically -- this is the fixed-point drain.
	for written := 0; written < len(p.bootstrapMethods); written++ {
		bsm := p.bootstrapMethods[written]
		entry := newByteWriter()
		entry.writeU16(p.insertMethodHandle(bsm.Method))
		entry.writeU16(uint16(len(bsm.Args)))
		for _, arg := range bsm.Args {
			entry.writeU16(p.insertConstant(arg))
		}
		entries = append(entries, entry.bytes())
	}

	body.writeU16(uint16(len(entries)))
	for _, e := range entries {
		body.writeBytes(e)
	}
	return body, nil
}

// bsmKey, constantKey and memberKey build structural-equality keys used
// by the writer's dedup maps (pool.index, pool.bsmIndex): two values
// that produce the same key must serialize identically, so interning
// either returns the same constant pool slot / bootstrap method index.
func bsmKey(bsm BootstrapMethod) string {
	s := fmt.Sprintf("bsm:%d:%s:%d", bsm.Method.Kind, memberKey(bsm.Method.Member), len(bsm.Args))
	for _, a := range bsm.Args {
		s += ":" + constantKey(a)
	}
	return s
}

func memberKey(m MemberRef) string {
	return fmt.Sprintf("%s.%s%s:%v", m.Owner, m.Name, m.Descriptor.String(), m.IsInterface)
}

func constantKey(c Constant) string {
	switch c.Kind {
	case ConstInt:
		return fmt.Sprintf("i:%x", uint32(c.Int))
	case ConstFloat:
		return fmt.Sprintf("f:%x", math.Float32bits(c.Float))
	case ConstLong:
		return fmt.Sprintf("l:%x", uint64(c.Long))
	case ConstDouble:
		return fmt.Sprintf("d:%x", math.Float64bits(c.Double))
	case ConstString:
		return "s:" + c.Str
	case ConstClass:
		return "c:" + c.Str
	case ConstField:
		return "fr:" + memberKey(c.Member)
	case ConstMethod:
		return fmt.Sprintf("mr:%v:%s", c.IsInterface, memberKey(c.Member))
	case ConstMethodType:
		return "mt:" + c.Type.String()
	case ConstMethodHandle:
		return fmt.Sprintf("mh:%d:%s", c.Handle.Kind, memberKey(c.Handle.Member))
	case ConstDynamic, ConstInvokeDynamic:
		bsmK := "nil"
		if c.Bootstrap != nil {
			bsmK = bsmKey(*c.Bootstrap)
		}
		return fmt.Sprintf("dy:%d:%s:%s:%s", c.Kind, c.Name, c.Type.String(), bsmK)
	default:
		return "?"
	}
}
