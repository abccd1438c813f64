// Copyright 2024 The gojvm Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "strings"

// TypeKind discriminates the variants of Type.
type TypeKind uint8

const (
	KindByte TypeKind = iota
	KindChar
	KindDouble
	KindFloat
	KindInt
	KindLong
	KindBoolean
	KindShort
	KindRef
	KindArray
	KindMethod
)

// Type is the sum type over the JVM's field and method descriptor
// grammar. Only one group of fields is meaningful per Kind:
//
//	primitives (Byte..Short): no extra fields
//	Ref:                      Name holds the internal class name
//	Array:                    Dim (1..255) and Element
//	Method:                   Params and Return (nil Return means void)
//
// Invariant: the element of an Array and the parameter/return types of a
// Method are never themselves KindMethod -- methods don't nest.
type Type struct {
	Kind    TypeKind
	Name    string  // KindRef
	Dim     int     // KindArray, 1..255
	Element *Type   // KindArray
	Params  []Type  // KindMethod
	Return  *Type   // KindMethod, nil == void
}

func (t Type) isPrimitive() bool {
	return t.Kind <= KindShort
}

var primitiveTags = map[byte]TypeKind{
	'B': KindByte,
	'C': KindChar,
	'D': KindDouble,
	'F': KindFloat,
	'I': KindInt,
	'J': KindLong,
	'Z': KindBoolean,
	'S': KindShort,
}

var primitiveChars = map[TypeKind]byte{
	KindByte:    'B',
	KindChar:    'C',
	KindDouble:  'D',
	KindFloat:   'F',
	KindInt:     'I',
	KindLong:    'J',
	KindBoolean: 'Z',
	KindShort:   'S',
}

// descParser walks a descriptor string left to right, mirroring a small
// recursive-descent parser over the grammar in spec section 4.4:
//
//	descriptor  := field | method
//	field       := 'B'|'C'|'D'|'F'|'I'|'J'|'S'|'Z' | 'L' classname ';' | '[' field
//	method      := '(' field* ')' ( field | 'V' )
type descParser struct {
	s   string
	pos int
}

// ParseFieldDescriptor parses a single field (non-method) descriptor,
// e.g. "I" or "[[D" or "Ljava/lang/String;".
func ParseFieldDescriptor(s string) (Type, error) {
	p := &descParser{s: s}
	t, err := p.parseField()
	if err != nil {
		return Type{}, err
	}
	if p.pos != len(p.s) {
		return Type{}, invalid("descriptor", "trailing data after field descriptor %q", s)
	}
	return t, nil
}

// ParseMethodDescriptor parses a method descriptor, e.g.
// "(IJLjava/lang/String;)[D".
func ParseMethodDescriptor(s string) (Type, error) {
	p := &descParser{s: s}
	t, err := p.parseMethod()
	if err != nil {
		return Type{}, err
	}
	if p.pos != len(p.s) {
		return Type{}, invalid("descriptor", "trailing data after method descriptor %q", s)
	}
	return t, nil
}

// ParseDescriptor parses either a field or a method descriptor depending
// on its leading character, used where the caller doesn't already know
// which shape to expect (e.g. generic NameAndType resolution).
func ParseDescriptor(s string) (Type, error) {
	if strings.HasPrefix(s, "(") {
		return ParseMethodDescriptor(s)
	}
	return ParseFieldDescriptor(s)
}

func (p *descParser) peek() (byte, bool) {
	if p.pos >= len(p.s) {
		return 0, false
	}
	return p.s[p.pos], true
}

func (p *descParser) parseField() (Type, error) {
	c, ok := p.peek()
	if !ok {
		return Type{}, invalid("descriptor", "unexpected end of descriptor %q", p.s)
	}
	if kind, isPrim := primitiveTags[c]; isPrim {
		p.pos++
		return Type{Kind: kind}, nil
	}
	switch c {
	case 'L':
		p.pos++
		start := p.pos
		for {
			c, ok := p.peek()
			if !ok {
				return Type{}, invalid("descriptor", "unterminated class name in %q", p.s)
			}
			if c == ';' {
				break
			}
			p.pos++
		}
		name := p.s[start:p.pos]
		p.pos++ // consume ';'
		return Type{Kind: KindRef, Name: name}, nil
	case '[':
		dim := 0
		for {
			c, ok := p.peek()
			if !ok || c != '[' {
				break
			}
			dim++
			p.pos++
		}
		if dim > 255 {
			return Type{}, invalid("descriptor", "array dimension %d exceeds 255 in %q", dim, p.s)
		}
		elem, err := p.parseField()
		if err != nil {
			return Type{}, err
		}
		if elem.Kind == KindMethod {
			return Type{}, invalid("descriptor", "array element cannot be a method type in %q", p.s)
		}
		return Type{Kind: KindArray, Dim: dim, Element: &elem}, nil
	default:
		return Type{}, invalid("descriptor", "unexpected character %q in %q", c, p.s)
	}
}

func (p *descParser) parseMethod() (Type, error) {
	c, ok := p.peek()
	if !ok || c != '(' {
		return Type{}, invalid("descriptor", "method descriptor %q missing '('", p.s)
	}
	p.pos++

	var params []Type
	for {
		c, ok := p.peek()
		if !ok {
			return Type{}, invalid("descriptor", "unterminated parameter list in %q", p.s)
		}
		if c == ')' {
			p.pos++
			break
		}
		param, err := p.parseField()
		if err != nil {
			return Type{}, err
		}
		if param.Kind == KindMethod {
			return Type{}, invalid("descriptor", "parameter cannot be a method type in %q", p.s)
		}
		params = append(params, param)
	}

	c, ok = p.peek()
	if !ok {
		return Type{}, invalid("descriptor", "missing return type in %q", p.s)
	}
	var ret *Type
	if c == 'V' {
		p.pos++
	} else {
		r, err := p.parseField()
		if err != nil {
			return Type{}, err
		}
		if r.Kind == KindMethod {
			return Type{}, invalid("descriptor", "return type cannot be a method type in %q", p.s)
		}
		ret = &r
	}
	return Type{Kind: KindMethod, Params: params, Return: ret}, nil
}

// String renders a Type back to its wire descriptor form; round-tripping
// ParseDescriptor(t.String()) always yields an equal Type. A Method type
// always emits 'V' for an absent Return.
func (t Type) String() string {
	var sb strings.Builder
	t.writeTo(&sb)
	return sb.String()
}

func (t Type) writeTo(sb *strings.Builder) {
	switch t.Kind {
	case KindMethod:
		sb.WriteByte('(')
		for _, p := range t.Params {
			p.writeTo(sb)
		}
		sb.WriteByte(')')
		if t.Return == nil {
			sb.WriteByte('V')
		} else {
			t.Return.writeTo(sb)
		}
	case KindRef:
		sb.WriteByte('L')
		sb.WriteString(t.Name)
		sb.WriteByte(';')
	case KindArray:
		for i := 0; i < t.Dim; i++ {
			sb.WriteByte('[')
		}
		t.Element.writeTo(sb)
	default:
		sb.WriteByte(primitiveChars[t.Kind])
	}
}

// IsVoid reports whether t is a Method type with no return value.
func (t Type) IsVoid() bool {
	return t.Kind == KindMethod && t.Return == nil
}
