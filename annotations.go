// Copyright 2024 The gojvm Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// AnnotationBlob is the opaque wire payload of an annotation-bearing
// attribute: the `annotation` / `element_value` / `parameter_annotations`
// grammar (JVMS 4.7.16-4.7.22) is an explicit non-goal here, the same way
// Code's instruction stream is -- a companion annotation-value-tree parser
// is expected to operate on this slice. The codec still recognizes the
// attribute *names* below so their bytes are never misfiled as an
// unrelated Raw{Keep:true} passthrough.
type AnnotationBlob []byte

type RuntimeVisibleAnnotationsAttr struct{ Blob AnnotationBlob }
type RuntimeInvisibleAnnotationsAttr struct{ Blob AnnotationBlob }
type RuntimeVisibleParameterAnnotationsAttr struct{ Blob AnnotationBlob }
type RuntimeInvisibleParameterAnnotationsAttr struct{ Blob AnnotationBlob }
type RuntimeVisibleTypeAnnotationsAttr struct{ Blob AnnotationBlob }
type RuntimeInvisibleTypeAnnotationsAttr struct{ Blob AnnotationBlob }
type AnnotationDefaultAttr struct{ Blob AnnotationBlob }

func (RuntimeVisibleAnnotationsAttr) attributeName() string { return attrRuntimeVisibleAnnotations }
func (RuntimeInvisibleAnnotationsAttr) attributeName() string {
	return attrRuntimeInvisibleAnnotations
}
func (RuntimeVisibleParameterAnnotationsAttr) attributeName() string {
	return attrRuntimeVisibleParameterAnnotations
}
func (RuntimeInvisibleParameterAnnotationsAttr) attributeName() string {
	return attrRuntimeInvisibleParameterAnnotations
}
func (RuntimeVisibleTypeAnnotationsAttr) attributeName() string {
	return attrRuntimeVisibleTypeAnnotations
}
func (RuntimeInvisibleTypeAnnotationsAttr) attributeName() string {
	return attrRuntimeInvisibleTypeAnnotations
}
func (AnnotationDefaultAttr) attributeName() string { return attrAnnotationDefault }

func decodeAnnotationBlob(body *byteReader, p *pool) (AnnotationBlob, error) {
	b, err := body.readBytes(body.remaining())
	if err != nil {
		return nil, err
	}
	return AnnotationBlob(append([]byte(nil), b...)), nil
}

func encodeAnnotationBlob(body *byteWriter, blob AnnotationBlob) {
	body.writeBytes(blob)
}

func decodeRuntimeVisibleAnnotations(body *byteReader, p *pool) (Attribute, error) {
	b, err := decodeAnnotationBlob(body, p)
	return RuntimeVisibleAnnotationsAttr{Blob: b}, err
}
func decodeRuntimeInvisibleAnnotations(body *byteReader, p *pool) (Attribute, error) {
	b, err := decodeAnnotationBlob(body, p)
	return RuntimeInvisibleAnnotationsAttr{Blob: b}, err
}
func decodeRuntimeVisibleParameterAnnotations(body *byteReader, p *pool) (Attribute, error) {
	b, err := decodeAnnotationBlob(body, p)
	return RuntimeVisibleParameterAnnotationsAttr{Blob: b}, err
}
func decodeRuntimeInvisibleParameterAnnotations(body *byteReader, p *pool) (Attribute, error) {
	b, err := decodeAnnotationBlob(body, p)
	return RuntimeInvisibleParameterAnnotationsAttr{Blob: b}, err
}
func decodeRuntimeVisibleTypeAnnotations(body *byteReader, p *pool) (Attribute, error) {
	b, err := decodeAnnotationBlob(body, p)
	return RuntimeVisibleTypeAnnotationsAttr{Blob: b}, err
}
func decodeRuntimeInvisibleTypeAnnotations(body *byteReader, p *pool) (Attribute, error) {
	b, err := decodeAnnotationBlob(body, p)
	return RuntimeInvisibleTypeAnnotationsAttr{Blob: b}, err
}
func decodeAnnotationDefault(body *byteReader, p *pool) (Attribute, error) {
	b, err := decodeAnnotationBlob(body, p)
	return AnnotationDefaultAttr{Blob: b}, err
}

func encodeRuntimeVisibleAnnotations(body *byteWriter, p *pool, a Attribute) error {
	encodeAnnotationBlob(body, a.(RuntimeVisibleAnnotationsAttr).Blob)
	return nil
}
func encodeRuntimeInvisibleAnnotations(body *byteWriter, p *pool, a Attribute) error {
	encodeAnnotationBlob(body, a.(RuntimeInvisibleAnnotationsAttr).Blob)
	return nil
}
func encodeRuntimeVisibleParameterAnnotations(body *byteWriter, p *pool, a Attribute) error {
	encodeAnnotationBlob(body, a.(RuntimeVisibleParameterAnnotationsAttr).Blob)
	return nil
}
func encodeRuntimeInvisibleParameterAnnotations(body *byteWriter, p *pool, a Attribute) error {
	encodeAnnotationBlob(body, a.(RuntimeInvisibleParameterAnnotationsAttr).Blob)
	return nil
}
func encodeRuntimeVisibleTypeAnnotations(body *byteWriter, p *pool, a Attribute) error {
	encodeAnnotationBlob(body, a.(RuntimeVisibleTypeAnnotationsAttr).Blob)
	return nil
}
func encodeRuntimeInvisibleTypeAnnotations(body *byteWriter, p *pool, a Attribute) error {
	encodeAnnotationBlob(body, a.(RuntimeInvisibleTypeAnnotationsAttr).Blob)
	return nil
}
func encodeAnnotationDefault(body *byteWriter, p *pool, a Attribute) error {
	encodeAnnotationBlob(body, a.(AnnotationDefaultAttr).Blob)
	return nil
}
