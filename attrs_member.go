// Copyright 2024 The gojvm Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// fieldAttrTable is the field-context decode dispatch table from spec
// section 4.4.
var fieldAttrTable = map[string]attrDecoder{
	attrSignature:                          decodeSignature,
	attrSynthetic:                          decodeSynthetic,
	attrDeprecated:                         decodeDeprecated,
	attrConstantValue:                      decodeConstantValue,
	attrRuntimeVisibleAnnotations:          decodeRuntimeVisibleAnnotations,
	attrRuntimeInvisibleAnnotations:        decodeRuntimeInvisibleAnnotations,
	attrRuntimeVisibleTypeAnnotations:      decodeRuntimeVisibleTypeAnnotations,
	attrRuntimeInvisibleTypeAnnotations:    decodeRuntimeInvisibleTypeAnnotations,
}

// methodAttrTable is the method-context decode dispatch table from spec
// section 4.4. Code is dispatched here too (see code.go); its body is
// further parsed against its own nested attribute table.
var methodAttrTable = map[string]attrDecoder{
	attrSignature:                           decodeSignature,
	attrSynthetic:                           decodeSynthetic,
	attrDeprecated:                          decodeDeprecated,
	attrCode:                                decodeCode,
	attrExceptions:                          decodeExceptions,
	attrMethodParameters:                    decodeMethodParameters,
	attrAnnotationDefault:                   decodeAnnotationDefault,
	attrRuntimeVisibleAnnotations:           decodeRuntimeVisibleAnnotations,
	attrRuntimeInvisibleAnnotations:         decodeRuntimeInvisibleAnnotations,
	attrRuntimeVisibleParameterAnnotations:  decodeRuntimeVisibleParameterAnnotations,
	attrRuntimeInvisibleParameterAnnotations: decodeRuntimeInvisibleParameterAnnotations,
	attrRuntimeVisibleTypeAnnotations:       decodeRuntimeVisibleTypeAnnotations,
	attrRuntimeInvisibleTypeAnnotations:     decodeRuntimeInvisibleTypeAnnotations,
}

// memberAttrTable is used for Record components (JVMS 4.7.30): Signature
// plus the four non-parameter Runtime*Annotations variants. Reusing
// fieldAttrTable is harmless -- ConstantValue simply never appears on a
// well-formed record component, and a lenient reader costs nothing here.
var memberAttrTable = fieldAttrTable

// codeAttrTable is the nested dispatch table for attributes attached to
// a Code attribute's own attribute list. LineNumberTable,
// LocalVariableTypeTable and StackMapTable are deliberately absent --
// they fall through to Raw{Keep:true} per SPEC_FULL.md section 3, since
// their grammar depends on bytecode offsets and verification types that
// are out of scope. LocalVariableTable is handled specially by
// decodeCode itself (lifted into Code.LocalVariables, not dispatched
// through this table).
var codeAttrTable = map[string]attrDecoder{
	attrSignature:  decodeSignature,
	attrSynthetic:  decodeSynthetic,
	attrDeprecated: decodeDeprecated,
}

func encodeFieldAttribute(p *pool, a Attribute) (name string, body *byteWriter, err error) {
	body = newByteWriter()
	switch v := a.(type) {
	case SignatureAttr:
		err = encodeSignature(body, p, v)
	case SyntheticAttr:
		err = encodeSynthetic(body, p, v)
	case DeprecatedAttr:
		err = encodeDeprecated(body, p, v)
	case ConstantValueAttr:
		err = encodeConstantValue(body, p, v)
	case RuntimeVisibleAnnotationsAttr:
		err = encodeRuntimeVisibleAnnotations(body, p, v)
	case RuntimeInvisibleAnnotationsAttr:
		err = encodeRuntimeInvisibleAnnotations(body, p, v)
	case RuntimeVisibleTypeAnnotationsAttr:
		err = encodeRuntimeVisibleTypeAnnotations(body, p, v)
	case RuntimeInvisibleTypeAnnotationsAttr:
		err = encodeRuntimeInvisibleTypeAnnotations(body, p, v)
	case Raw:
		body.writeBytes(v.Bytes)
		return v.Name, body, nil
	default:
		return "", nil, invalid("attribute", "unexpected field attribute type %T", a)
	}
	return a.attributeName(), body, err
}

func encodeMethodAttribute(p *pool, a Attribute) (name string, body *byteWriter, err error) {
	body = newByteWriter()
	switch v := a.(type) {
	case SignatureAttr:
		err = encodeSignature(body, p, v)
	case SyntheticAttr:
		err = encodeSynthetic(body, p, v)
	case DeprecatedAttr:
		err = encodeDeprecated(body, p, v)
	case *CodeAttr:
		err = encodeCode(body, p, v)
	case ExceptionsAttr:
		err = encodeExceptions(body, p, v)
	case MethodParametersAttr:
		err = encodeMethodParameters(body, p, v)
	case AnnotationDefaultAttr:
		err = encodeAnnotationDefault(body, p, v)
	case RuntimeVisibleAnnotationsAttr:
		err = encodeRuntimeVisibleAnnotations(body, p, v)
	case RuntimeInvisibleAnnotationsAttr:
		err = encodeRuntimeInvisibleAnnotations(body, p, v)
	case RuntimeVisibleParameterAnnotationsAttr:
		err = encodeRuntimeVisibleParameterAnnotations(body, p, v)
	case RuntimeInvisibleParameterAnnotationsAttr:
		err = encodeRuntimeInvisibleParameterAnnotations(body, p, v)
	case RuntimeVisibleTypeAnnotationsAttr:
		err = encodeRuntimeVisibleTypeAnnotations(body, p, v)
	case RuntimeInvisibleTypeAnnotationsAttr:
		err = encodeRuntimeInvisibleTypeAnnotations(body, p, v)
	case Raw:
		body.writeBytes(v.Bytes)
		return v.Name, body, nil
	default:
		return "", nil, invalid("attribute", "unexpected method attribute type %T", a)
	}
	return a.attributeName(), body, err
}

// encodeMemberAttribute serves Record component attributes, which share
// the field-level subset of names.
func encodeMemberAttribute(p *pool, a Attribute) (name string, body *byteWriter, err error) {
	return encodeFieldAttribute(p, a)
}
