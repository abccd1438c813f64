// Copyright 2024 The gojvm Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// SourceFileAttr names the source file a class was compiled from.
type SourceFileAttr struct{ Name string }

func (SourceFileAttr) attributeName() string { return attrSourceFile }

func decodeSourceFile(body *byteReader, p *pool) (Attribute, error) {
	idx, err := body.readU16()
	if err != nil {
		return nil, err
	}
	s, err := p.utf8(idx)
	if err != nil {
		return nil, err
	}
	return SourceFileAttr{Name: s}, nil
}

func encodeSourceFile(body *byteWriter, p *pool, a Attribute) error {
	body.writeU16(p.insertUtf8(a.(SourceFileAttr).Name))
	return nil
}

// InnerClass is one entry of the InnerClasses attribute.
type InnerClass struct {
	Inner      string
	Outer      string // "" if the inner class has no enclosing class (e.g. a local class)
	Name       string // "" if anonymous
	Flags      uint16
}

// InnerClassesAttr records every class/interface that isn't a package
// member, referenced directly or indirectly from the constant pool.
type InnerClassesAttr struct{ Classes []InnerClass }

func (InnerClassesAttr) attributeName() string { return attrInnerClasses }

func decodeInnerClasses(body *byteReader, p *pool) (Attribute, error) {
	count, err := body.readU16()
	if err != nil {
		return nil, err
	}
	classes := make([]InnerClass, count)
	for i := range classes {
		innerIdx, err := body.readU16()
		if err != nil {
			return nil, err
		}
		outerIdx, err := body.readU16()
		if err != nil {
			return nil, err
		}
		nameIdx, err := body.readU16()
		if err != nil {
			return nil, err
		}
		flags, err := body.readU16()
		if err != nil {
			return nil, err
		}
		inner, err := p.className(innerIdx)
		if err != nil {
			return nil, err
		}
		var outer, name string
		if outerIdx != 0 {
			if outer, err = p.className(outerIdx); err != nil {
				return nil, err
			}
		}
		if nameIdx != 0 {
			if name, err = p.utf8(nameIdx); err != nil {
				return nil, err
			}
		}
		classes[i] = InnerClass{Inner: inner, Outer: outer, Name: name, Flags: flags}
	}
	return InnerClassesAttr{Classes: classes}, nil
}

func encodeInnerClasses(body *byteWriter, p *pool, a Attribute) error {
	classes := a.(InnerClassesAttr).Classes
	body.writeU16(uint16(len(classes)))
	for _, ic := range classes {
		body.writeU16(p.insertClass(ic.Inner))
		var outerIdx, nameIdx uint16
		if ic.Outer != "" {
			outerIdx = p.insertClass(ic.Outer)
		}
		if ic.Name != "" {
			nameIdx = p.insertUtf8(ic.Name)
		}
		body.writeU16(outerIdx)
		body.writeU16(nameIdx)
		body.writeU16(ic.Flags)
	}
	return nil
}

// NameAndTypeRef is a lifted (name, descriptor-string) pair used where
// the descriptor's shape (field vs method) isn't yet known structurally,
// e.g. EnclosingMethod's optional method reference.
type NameAndTypeRef struct {
	Name       string
	Descriptor string
}

// EnclosingMethodAttr names the innermost class and, if the class is a
// local or anonymous class declared inside a method, that method.
type EnclosingMethodAttr struct {
	Class  string
	Method *NameAndTypeRef // nil if not enclosed in a method body
}

func (EnclosingMethodAttr) attributeName() string { return attrEnclosingMethod }

func decodeEnclosingMethod(body *byteReader, p *pool) (Attribute, error) {
	classIdx, err := body.readU16()
	if err != nil {
		return nil, err
	}
	natIdx, err := body.readU16()
	if err != nil {
		return nil, err
	}
	class, err := p.className(classIdx)
	if err != nil {
		return nil, err
	}
	var method *NameAndTypeRef
	if natIdx != 0 {
		name, desc, err := p.nameAndType(natIdx)
		if err != nil {
			return nil, err
		}
		method = &NameAndTypeRef{Name: name, Descriptor: desc}
	}
	return EnclosingMethodAttr{Class: class, Method: method}, nil
}

func encodeEnclosingMethod(body *byteWriter, p *pool, a Attribute) error {
	em := a.(EnclosingMethodAttr)
	body.writeU16(p.insertClass(em.Class))
	var natIdx uint16
	if em.Method != nil {
		natIdx = p.insertNameAndType(em.Method.Name, em.Method.Descriptor)
	}
	body.writeU16(natIdx)
	return nil
}

// SourceDebugExtensionAttr carries vendor-specific debug information
// (typically a JSR-45 SMAP) as an opaque, modified-UTF-8-free byte blob --
// unlike every other text-bearing attribute, its bytes are not indexed
// through the constant pool at all.
type SourceDebugExtensionAttr struct{ Data []byte }

func (SourceDebugExtensionAttr) attributeName() string { return attrSourceDebugExtension }

func decodeSourceDebugExtension(body *byteReader, p *pool) (Attribute, error) {
	b, err := body.readBytes(body.remaining())
	if err != nil {
		return nil, err
	}
	return SourceDebugExtensionAttr{Data: append([]byte(nil), b...)}, nil
}

func encodeSourceDebugExtension(body *byteWriter, p *pool, a Attribute) error {
	body.writeBytes(a.(SourceDebugExtensionAttr).Data)
	return nil
}

// NestHostAttr names the nest host of a class that is a nest member.
type NestHostAttr struct{ Host string }

func (NestHostAttr) attributeName() string { return "NestHost" }

func decodeNestHost(body *byteReader, p *pool) (Attribute, error) {
	idx, err := body.readU16()
	if err != nil {
		return nil, err
	}
	name, err := p.className(idx)
	if err != nil {
		return nil, err
	}
	return NestHostAttr{Host: name}, nil
}

func encodeNestHost(body *byteWriter, p *pool, a Attribute) error {
	body.writeU16(p.insertClass(a.(NestHostAttr).Host))
	return nil
}

// NestMembersAttr lists the members of the nest this class hosts.
type NestMembersAttr struct{ Members []string }

func (NestMembersAttr) attributeName() string { return "NestMembers" }

func decodeNestMembers(body *byteReader, p *pool) (Attribute, error) {
	count, err := body.readU16()
	if err != nil {
		return nil, err
	}
	members := make([]string, count)
	for i := range members {
		idx, err := body.readU16()
		if err != nil {
			return nil, err
		}
		name, err := p.className(idx)
		if err != nil {
			return nil, err
		}
		members[i] = name
	}
	return NestMembersAttr{Members: members}, nil
}

func encodeNestMembers(body *byteWriter, p *pool, a Attribute) error {
	members := a.(NestMembersAttr).Members
	body.writeU16(uint16(len(members)))
	for _, m := range members {
		body.writeU16(p.insertClass(m))
	}
	return nil
}

// ModuleRequire, ModuleExport, ModuleOpen and ModuleProvide are the four
// directive shapes of the Module attribute (JVMS 4.7.25).
type ModuleRequire struct {
	Module  string
	Flags   uint16
	Version string // "" if absent
}

type ModuleExport struct {
	Package string
	Flags   uint16
	To      []string // module names; empty means exported to all
}

type ModuleOpen struct {
	Package string
	Flags   uint16
	To      []string
}

type ModuleProvide struct {
	Service string
	With    []string
}

// ModuleAttr is the full content of a module-info class's Module
// attribute.
type ModuleAttr struct {
	Name     string
	Flags    uint16
	Version  string // "" if absent
	Requires []ModuleRequire
	Exports  []ModuleExport
	Opens    []ModuleOpen
	Uses     []string
	Provides []ModuleProvide
}

func (ModuleAttr) attributeName() string { return attrModule }

func decodeModule(body *byteReader, p *pool) (Attribute, error) {
	nameIdx, err := body.readU16()
	if err != nil {
		return nil, err
	}
	flags, err := body.readU16()
	if err != nil {
		return nil, err
	}
	versionIdx, err := body.readU16()
	if err != nil {
		return nil, err
	}
	name, err := p.moduleName(nameIdx)
	if err != nil {
		return nil, err
	}
	var version string
	if versionIdx != 0 {
		if version, err = p.utf8(versionIdx); err != nil {
			return nil, err
		}
	}

	requiresCount, err := body.readU16()
	if err != nil {
		return nil, err
	}
	requires := make([]ModuleRequire, requiresCount)
	for i := range requires {
		modIdx, err := body.readU16()
		if err != nil {
			return nil, err
		}
		rflags, err := body.readU16()
		if err != nil {
			return nil, err
		}
		verIdx, err := body.readU16()
		if err != nil {
			return nil, err
		}
		modName, err := p.moduleName(modIdx)
		if err != nil {
			return nil, err
		}
		var ver string
		if verIdx != 0 {
			if ver, err = p.utf8(verIdx); err != nil {
				return nil, err
			}
		}
		requires[i] = ModuleRequire{Module: modName, Flags: rflags, Version: ver}
	}

	exportsCount, err := body.readU16()
	if err != nil {
		return nil, err
	}
	exports := make([]ModuleExport, exportsCount)
	for i := range exports {
		e, err := decodeModuleExportLike(body, p)
		if err != nil {
			return nil, err
		}
		exports[i] = ModuleExport{Package: e.pkg, Flags: e.flags, To: e.to}
	}

	opensCount, err := body.readU16()
	if err != nil {
		return nil, err
	}
	opens := make([]ModuleOpen, opensCount)
	for i := range opens {
		o, err := decodeModuleExportLike(body, p)
		if err != nil {
			return nil, err
		}
		opens[i] = ModuleOpen{Package: o.pkg, Flags: o.flags, To: o.to}
	}

	usesCount, err := body.readU16()
	if err != nil {
		return nil, err
	}
	uses := make([]string, usesCount)
	for i := range uses {
		idx, err := body.readU16()
		if err != nil {
			return nil, err
		}
		name, err := p.className(idx)
		if err != nil {
			return nil, err
		}
		uses[i] = name
	}

	providesCount, err := body.readU16()
	if err != nil {
		return nil, err
	}
	provides := make([]ModuleProvide, providesCount)
	for i := range provides {
		svcIdx, err := body.readU16()
		if err != nil {
			return nil, err
		}
		withCount, err := body.readU16()
		if err != nil {
			return nil, err
		}
		svc, err := p.className(svcIdx)
		if err != nil {
			return nil, err
		}
		with := make([]string, withCount)
		for j := range with {
			idx, err := body.readU16()
			if err != nil {
				return nil, err
			}
			name, err := p.className(idx)
			if err != nil {
				return nil, err
			}
			with[j] = name
		}
		provides[i] = ModuleProvide{Service: svc, With: with}
	}

	return ModuleAttr{
		Name: name, Flags: flags, Version: version,
		Requires: requires, Exports: exports, Opens: opens, Uses: uses, Provides: provides,
	}, nil
}

type exportLike struct {
	pkg   string
	flags uint16
	to    []string
}

func decodeModuleExportLike(body *byteReader, p *pool) (exportLike, error) {
	pkgIdx, err := body.readU16()
	if err != nil {
		return exportLike{}, err
	}
	flags, err := body.readU16()
	if err != nil {
		return exportLike{}, err
	}
	toCount, err := body.readU16()
	if err != nil {
		return exportLike{}, err
	}
	pkg, err := p.packageName(pkgIdx)
	if err != nil {
		return exportLike{}, err
	}
	to := make([]string, toCount)
	for i := range to {
		idx, err := body.readU16()
		if err != nil {
			return exportLike{}, err
		}
		name, err := p.moduleName(idx)
		if err != nil {
			return exportLike{}, err
		}
		to[i] = name
	}
	return exportLike{pkg: pkg, flags: flags, to: to}, nil
}

func encodeModule(body *byteWriter, p *pool, a Attribute) error {
	m := a.(ModuleAttr)
	body.writeU16(p.insertModule(m.Name))
	body.writeU16(m.Flags)
	var versionIdx uint16
	if m.Version != "" {
		versionIdx = p.insertUtf8(m.Version)
	}
	body.writeU16(versionIdx)

	body.writeU16(uint16(len(m.Requires)))
	for _, r := range m.Requires {
		body.writeU16(p.insertModule(r.Module))
		body.writeU16(r.Flags)
		var verIdx uint16
		if r.Version != "" {
			verIdx = p.insertUtf8(r.Version)
		}
		body.writeU16(verIdx)
	}

	body.writeU16(uint16(len(m.Exports)))
	for _, e := range m.Exports {
		encodeModuleExportLike(body, p, e.Package, e.Flags, e.To)
	}

	body.writeU16(uint16(len(m.Opens)))
	for _, o := range m.Opens {
		encodeModuleExportLike(body, p, o.Package, o.Flags, o.To)
	}

	body.writeU16(uint16(len(m.Uses)))
	for _, u := range m.Uses {
		body.writeU16(p.insertClass(u))
	}

	body.writeU16(uint16(len(m.Provides)))
	for _, pr := range m.Provides {
		body.writeU16(p.insertClass(pr.Service))
		body.writeU16(uint16(len(pr.With)))
		for _, w := range pr.With {
			body.writeU16(p.insertClass(w))
		}
	}
	return nil
}

func encodeModuleExportLike(body *byteWriter, p *pool, pkg string, flags uint16, to []string) {
	body.writeU16(p.insertPackage(pkg))
	body.writeU16(flags)
	body.writeU16(uint16(len(to)))
	for _, t := range to {
		body.writeU16(p.insertModule(t))
	}
}

// ModulePackagesAttr lists every package of a module, exported or not.
type ModulePackagesAttr struct{ Packages []string }

func (ModulePackagesAttr) attributeName() string { return attrModulePackages }

func decodeModulePackages(body *byteReader, p *pool) (Attribute, error) {
	count, err := body.readU16()
	if err != nil {
		return nil, err
	}
	pkgs := make([]string, count)
	for i := range pkgs {
		idx, err := body.readU16()
		if err != nil {
			return nil, err
		}
		name, err := p.packageName(idx)
		if err != nil {
			return nil, err
		}
		pkgs[i] = name
	}
	return ModulePackagesAttr{Packages: pkgs}, nil
}

func encodeModulePackages(body *byteWriter, p *pool, a Attribute) error {
	pkgs := a.(ModulePackagesAttr).Packages
	body.writeU16(uint16(len(pkgs)))
	for _, pk := range pkgs {
		body.writeU16(p.insertPackage(pk))
	}
	return nil
}

// ModuleMainClassAttr names a module's main class.
type ModuleMainClassAttr struct{ Class string }

func (ModuleMainClassAttr) attributeName() string { return attrModuleMainClass }

func decodeModuleMainClass(body *byteReader, p *pool) (Attribute, error) {
	idx, err := body.readU16()
	if err != nil {
		return nil, err
	}
	name, err := p.className(idx)
	if err != nil {
		return nil, err
	}
	return ModuleMainClassAttr{Class: name}, nil
}

func encodeModuleMainClass(body *byteWriter, p *pool, a Attribute) error {
	body.writeU16(p.insertClass(a.(ModuleMainClassAttr).Class))
	return nil
}

// classAttrTable is the class-context decode dispatch table from spec
// section 4.4, plus the supplemental Record/PermittedSubclasses entries.
// BootstrapMethods is handled specially (see bootstrap.go) and is not
// dispatched through the generic readAttributeList/writeAttributeList
// path on write, but reads like any other known attribute.
var classAttrTable = map[string]attrDecoder{
	attrSignature:             decodeSignature,
	attrSynthetic:             decodeSynthetic,
	attrDeprecated:            decodeDeprecated,
	attrSourceFile:            decodeSourceFile,
	attrInnerClasses:          decodeInnerClasses,
	attrEnclosingMethod:       decodeEnclosingMethod,
	attrSourceDebugExtension:  decodeSourceDebugExtension,
	attrBootstrapMethods:      decodeBootstrapMethods,
	attrModule:                decodeModule,
	attrModulePackages:        decodeModulePackages,
	attrModuleMainClass:       decodeModuleMainClass,
	attrNestHost:              decodeNestHost,
	attrNestMembers:           decodeNestMembers,
	attrRecord:                decodeRecord,
	attrPermittedSubclasses:   decodePermittedSubclasses,
}

// encodeClassAttribute dispatches a class-context Attribute to its
// payload encoder. BootstrapMethodsAttr is excluded here deliberately --
// the class writer never reaches it through this path, see bootstrap.go.
func encodeClassAttribute(p *pool, a Attribute) (name string, body *byteWriter, err error) {
	body = newByteWriter()
	switch v := a.(type) {
	case SignatureAttr:
		err = encodeSignature(body, p, v)
	case SyntheticAttr:
		err = encodeSynthetic(body, p, v)
	case DeprecatedAttr:
		err = encodeDeprecated(body, p, v)
	case SourceFileAttr:
		err = encodeSourceFile(body, p, v)
	case InnerClassesAttr:
		err = encodeInnerClasses(body, p, v)
	case EnclosingMethodAttr:
		err = encodeEnclosingMethod(body, p, v)
	case SourceDebugExtensionAttr:
		err = encodeSourceDebugExtension(body, p, v)
	case ModuleAttr:
		err = encodeModule(body, p, v)
	case ModulePackagesAttr:
		err = encodeModulePackages(body, p, v)
	case ModuleMainClassAttr:
		err = encodeModuleMainClass(body, p, v)
	case NestHostAttr:
		err = encodeNestHost(body, p, v)
	case NestMembersAttr:
		err = encodeNestMembers(body, p, v)
	case RecordAttr:
		err = encodeRecord(body, p, v)
	case PermittedSubclassesAttr:
		err = encodePermittedSubclasses(body, p, v)
	case Raw:
		body.writeBytes(v.Bytes)
		return v.Name, body, nil
	default:
		return "", nil, invalid("attribute", "unexpected class attribute type %T", a)
	}
	return a.attributeName(), body, err
}
