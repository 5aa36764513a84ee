/*
* Copyright (c) 2023-present unTill Pro, Ltd.
 */

package model

import (
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/DanielFath/domm/pkg/parser"
)

func (c *buildContext) buildNamespace() {
	for _, p := range c.opts.preludes {
		c.addModelStmts(p)
	}
	c.addModelStmts(c.ast)
}

func (c *buildContext) addModelStmts(ast *parser.ModelStmt) {
	ast.Iterate(func(stmt interface{}) {
		if c.full() {
			return
		}
		if id := c.addStmt(stmt, nil); id != NullDeclID {
			c.model.roots = append(c.model.roots, id)
		}
	})
}

// addStmt registers package-level statement and everything nested in it.
// Returns NullDeclID if the statement is rejected
func (c *buildContext) addStmt(stmt interface{}, pkg *Package) DeclID {
	switch s := stmt.(type) {
	case *parser.PackageStmt:
		return c.addPackage(s, pkg)
	case *parser.DataTypeStmt:
		return c.addDataType(s, pkg)
	case *parser.EnumStmt:
		return c.addEnum(s, pkg)
	case *parser.ConstraintStmt:
		return c.addConstraintDef(s, pkg)
	case *parser.EntityStmt:
		return c.addEntity(s, pkg)
	case *parser.ServiceStmt:
		return c.addService(s, pkg)
	case *parser.ValueObjectStmt:
		return c.addValueObject(s, pkg)
	case *parser.ExceptionStmt:
		return c.addException(s, pkg)
	}
	panic("unexpected statement")
}

// newDecl checks the name against reserved words and the qualified-name table.
// dupErr builds the error for an already registered name
func (c *buildContext) newDecl(kind DeclKind, name parser.Ident, scope QName, owner DeclID, pos *lexer.Position,
	desc *parser.NamedElem, dupErr func(QName) error) (decl, bool) {
	n := Name(name)
	qn := scope.Child(n)
	if parser.IsKeyword(string(name)) {
		c.stmtErr(pos, ErrKeyword(n))
		return decl{}, false
	}
	if _, ok := c.model.qnames[qn]; ok {
		c.stmtErr(pos, dupErr(qn))
		return decl{}, false
	}
	return decl{
		id:    c.model.nextID(),
		kind:  kind,
		name:  n,
		qname: qn,
		owner: owner,
		pos:   *pos,
		desc:  description(desc),
		model: c.model,
	}, true
}

func (c *buildContext) newTypeDecl(kind DeclKind, stmt parser.INamedStatement, desc *parser.NamedElem, pkg *Package) (decl, bool) {
	scope, owner := NullQName, NullDeclID
	if pkg != nil {
		scope, owner = pkg.qname, pkg.id
	}
	return c.newDecl(kind, stmt.GetName(), scope, owner, stmt.GetPos(), desc, func(qn QName) error {
		return ErrDuplicateType(kind, qn)
	})
}

func (c *buildContext) addPackage(s *parser.PackageStmt, outer *Package) DeclID {
	d, ok := c.newTypeDecl(DeclKind_Package, s, s.Desc, outer)
	if !ok {
		return NullDeclID
	}
	pkg := &Package{decl: d}
	c.model.register(pkg)
	s.Iterate(func(stmt interface{}) {
		if c.full() {
			return
		}
		if id := c.addStmt(stmt, pkg); id != NullDeclID {
			pkg.members = append(pkg.members, id)
		}
	})
	return pkg.id
}

func (c *buildContext) addDataType(s *parser.DataTypeStmt, pkg *Package) DeclID {
	d, ok := c.newTypeDecl(DeclKind_DataType, s, s.Desc, pkg)
	if !ok {
		return NullDeclID
	}
	dt := &DataType{decl: d, builtIn: s.BuiltIn}
	c.model.register(dt)
	return dt.id
}

func (c *buildContext) addEnum(s *parser.EnumStmt, pkg *Package) DeclID {
	d, ok := c.newTypeDecl(DeclKind_Enumeration, s, s.Desc, pkg)
	if !ok {
		return NullDeclID
	}
	enum := &Enumeration{decl: d}
	values := make(map[Name]bool)
	for i := range s.Literals {
		l := &s.Literals[i]
		v := Name(l.Value)
		if values[v] {
			c.stmtErr(&l.Pos, ErrDuplicateLiteral(d.qname, v))
			return NullDeclID
		}
		values[v] = true
		enum.literals = append(enum.literals, EnumLiteral{
			Value: v,
			Label: l.Name,
			Desc:  description(l.Desc),
			Pos:   l.Pos,
		})
	}
	c.model.register(enum)
	return enum.id
}

func (c *buildContext) addConstraintDef(s *parser.ConstraintStmt, pkg *Package) DeclID {
	d, ok := c.newTypeDecl(DeclKind_Constraint, s, s.Desc, pkg)
	if !ok {
		return NullDeclID
	}
	def := &ConstraintDef{
		decl:           d,
		constraintKind: ConstraintKind_Validator,
		builtIn:        s.Kind.IsBuiltIn(),
		signature:      s.Params,
	}
	if s.Kind.IsTag() {
		def.constraintKind = ConstraintKind_Tag
	}
	for i, token := range s.Params {
		if token == TokenEllipsis && i != len(s.Params)-1 {
			c.stmtErr(&s.Pos, ErrEllipsisMustBeLast(d.qname))
			return NullDeclID
		}
	}
	for _, target := range s.AppliesTo {
		def.appliesTo |= NewDeclKindSet(appliesToKinds[target])
	}
	c.model.register(def)
	return def.id
}

func (c *buildContext) newClassifier(kind DeclKind, stmt parser.INamedStatement, desc *parser.NamedElem, pkg *Package,
	extends *parser.DefQName, depends []parser.DefQName) (classifier, bool) {
	d, ok := c.newTypeDecl(kind, stmt, desc, pkg)
	if !ok {
		return classifier{}, false
	}
	cl := classifier{decl: d}
	if extends != nil {
		cl.extends = newCrossRef(refQName(*extends), NewDeclKindSet(kind), extends.Pos)
	}
	seen := make(map[string]bool)
	for _, dep := range depends {
		name := dep.String()
		if seen[name] {
			c.stmtErr(&dep.Pos, ErrDuplicateDepends(d.qname, name))
			return classifier{}, false
		}
		seen[name] = true
		cl.depends = append(cl.depends, newCrossRef(refQName(dep), NewDeclKindSet(DeclKind_Service), dep.Pos))
	}
	return cl, true
}

func (c *buildContext) addEntity(s *parser.EntityStmt, pkg *Package) DeclID {
	cl, ok := c.newClassifier(DeclKind_Entity, s, s.Desc, pkg, s.Extends, s.Depends)
	if !ok {
		return NullDeclID
	}
	e := &Entity{classifier: cl}
	if !c.applyConstraints(&e.decl, s.Constraints) {
		return NullDeclID
	}
	c.model.register(e)

	dup := func(qn QName) error { return ErrDuplicateFeature(qn.Name()) }
	if s.Key != nil {
		for i := range s.Key.Props {
			id := c.addProperty(&s.Key.Props[i], &e.classifier, "", dup)
			if id == NullDeclID {
				return NullDeclID
			}
			c.model.decls[id].(*Property).isKey = true
			e.key = append(e.key, id)
		}
	}
	if s.Repr != nil {
		for _, part := range s.Repr.Parts {
			if part.Text != nil {
				e.repr = append(e.repr, ReprItem{Text: *part.Text})
				continue
			}
			e.repr = append(e.repr, ReprItem{
				Prop: newCrossRef(NewQName(Name(*part.Prop)), NewDeclKindSet(DeclKind_Property), part.Pos),
			})
		}
	}
	if !c.addFeatures(s.Features, &e.classifier, "", dup) {
		return NullDeclID
	}
	for i := range s.Compartments {
		cs := &s.Compartments[i]
		first := len(e.features)
		if !c.addFeatures(cs.Features, &e.classifier, Name(cs.Name), dup) {
			return NullDeclID
		}
		e.compartments = append(e.compartments, Compartment{
			Name:     Name(cs.Name),
			Desc:     description(cs.Desc),
			Features: e.features[first:],
		})
	}
	return e.id
}

func (c *buildContext) addFeatures(features []parser.FeatureStmt, cl *classifier, compartment Name, dup func(QName) error) bool {
	for i := range features {
		f := &features[i]
		var id DeclID
		if f.Prop != nil {
			id = c.addProperty(f.Prop, cl, compartment, dup)
		} else {
			id = c.addOperation(f.Op, cl, compartment, dup)
		}
		if id == NullDeclID {
			return false
		}
	}
	return true
}

func (c *buildContext) addService(s *parser.ServiceStmt, pkg *Package) DeclID {
	cl, ok := c.newClassifier(DeclKind_Service, s, s.Desc, pkg, s.Extends, s.Depends)
	if !ok {
		return NullDeclID
	}
	svc := &Service{classifier: cl}
	if !c.applyConstraints(&svc.decl, s.Constraints) {
		return NullDeclID
	}
	c.model.register(svc)

	dup := func(qn QName) error { return ErrDuplicateFeature(qn.Name()) }
	for i := range s.Ops {
		if c.addOperation(&s.Ops[i], &svc.classifier, "", dup) == NullDeclID {
			return NullDeclID
		}
	}
	for i := range s.Compartments {
		cs := &s.Compartments[i]
		first := len(svc.features)
		for j := range cs.Ops {
			if c.addOperation(&cs.Ops[j], &svc.classifier, Name(cs.Name), dup) == NullDeclID {
				return NullDeclID
			}
		}
		svc.compartments = append(svc.compartments, Compartment{
			Name:     Name(cs.Name),
			Desc:     description(cs.Desc),
			Features: svc.features[first:],
		})
	}
	return svc.id
}

func (c *buildContext) addValueObject(s *parser.ValueObjectStmt, pkg *Package) DeclID {
	cl, ok := c.newClassifier(DeclKind_ValueObject, s, s.Desc, pkg, s.Extends, s.Depends)
	if !ok {
		return NullDeclID
	}
	vo := &ValueObject{classifier: cl}
	if !c.applyConstraints(&vo.decl, s.Constraints) {
		return NullDeclID
	}
	c.model.register(vo)
	if !c.addProps(s.Props, &vo.classifier) {
		return NullDeclID
	}
	return vo.id
}

func (c *buildContext) addException(s *parser.ExceptionStmt, pkg *Package) DeclID {
	cl, ok := c.newClassifier(DeclKind_ExceptionType, s, s.Desc, pkg, nil, nil)
	if !ok {
		return NullDeclID
	}
	exc := &ExceptionType{classifier: cl}
	c.model.register(exc)
	if !c.addProps(s.Props, &exc.classifier) {
		return NullDeclID
	}
	return exc.id
}

func (c *buildContext) addProps(props []parser.PropStmt, cl *classifier) bool {
	dup := func(qn QName) error { return ErrDuplicateProperty(qn.Name()) }
	for i := range props {
		if c.addProperty(&props[i], cl, "", dup) == NullDeclID {
			return false
		}
	}
	return true
}

func (c *buildContext) newTypedFeature(kind DeclKind, stmt parser.INamedStatement, desc *parser.NamedElem,
	owner *decl, typeDef *parser.TypeDef, mods parser.Modifiers, dup func(QName) error) (typedFeature, bool) {
	d, ok := c.newDecl(kind, stmt.GetName(), owner.qname, owner.id, stmt.GetPos(), desc, dup)
	if !ok {
		return typedFeature{}, false
	}
	f := typedFeature{
		decl: d,
		typ:  newCrossRef(refQName(typeDef.Type), typeKinds, typeDef.Type.Pos),
		multiplicity: Multiplicity{
			Container: typeDef.Container,
			Upper:     1,
		},
		modifiers: Modifiers{
			Ordered:  mods.Ordered(),
			Unique:   mods.Unique(),
			Readonly: mods.Readonly(),
			Required: mods.Required(),
		},
	}
	if typeDef.Container {
		f.multiplicity.Upper = Unbounded
		if typeDef.Upper != nil {
			f.multiplicity.Upper = *typeDef.Upper
		}
	}
	return f, true
}

func (c *buildContext) addProperty(s *parser.PropStmt, cl *classifier, compartment Name, dup func(QName) error) DeclID {
	f, ok := c.newTypedFeature(DeclKind_Property, s, s.Desc, &cl.decl, &s.Type, s.Modifiers, dup)
	if !ok {
		return NullDeclID
	}
	p := &Property{
		typedFeature: f,
		containment:  s.Containment,
		compartment:  compartment,
	}
	if s.Opposite != nil {
		p.opposite = newCrossRef(refQName(*s.Opposite), NewDeclKindSet(DeclKind_Property), s.Opposite.Pos)
	}
	if !c.applyConstraints(&p.decl, s.Constraints) {
		return NullDeclID
	}
	c.model.register(p)
	cl.features = append(cl.features, p.id)
	return p.id
}

func (c *buildContext) addOperation(s *parser.OpStmt, cl *classifier, compartment Name, dup func(QName) error) DeclID {
	f, ok := c.newTypedFeature(DeclKind_Operation, s, s.Desc, &cl.decl, &s.Type, s.Modifiers, dup)
	if !ok {
		return NullDeclID
	}
	op := &Operation{
		typedFeature: f,
		compartment:  compartment,
	}
	seen := make(map[string]bool)
	for _, t := range s.Throws {
		name := t.String()
		if seen[name] {
			c.stmtErr(&t.Pos, ErrDuplicateException(op.qname, name))
			return NullDeclID
		}
		seen[name] = true
		op.throws = append(op.throws, newCrossRef(refQName(t), NewDeclKindSet(DeclKind_ExceptionType), t.Pos))
	}
	if !c.applyConstraints(&op.decl, s.Constraints) {
		return NullDeclID
	}
	c.model.register(op)
	cl.features = append(cl.features, op.id)

	dupParam := func(qn QName) error { return ErrDuplicateParam(op.qname, qn.Name()) }
	for i := range s.Params {
		ps := &s.Params[i]
		pf, ok := c.newTypedFeature(DeclKind_Parameter, ps, ps.Desc, &op.decl, &ps.Type, ps.Modifiers, dupParam)
		if !ok {
			return NullDeclID
		}
		param := &Parameter{typedFeature: pf}
		if !c.applyConstraints(&param.decl, ps.Constraints) {
			return NullDeclID
		}
		c.model.register(param)
		op.params = append(op.params, param.id)
	}
	return op.id
}

// applyConstraints attaches constraint applications to the declaration. Bindings are made later
func (c *buildContext) applyConstraints(d *decl, specs []parser.ConstraintSpec) bool {
	seen := make(map[string]bool)
	for i := range specs {
		spec := &specs[i]
		name := spec.Name.String()
		if seen[name] {
			c.stmtErr(&spec.Pos, ErrDuplicateConstr(d.qname, name))
			return false
		}
		seen[name] = true
		app := &ConstraintApp{
			def:   newCrossRef(refQName(spec.Name), NewDeclKindSet(DeclKind_Constraint), spec.Name.Pos),
			owner: d.id,
			pos:   spec.Pos,
		}
		for _, p := range spec.Params {
			arg := ConstraintArg{Pos: p.Pos}
			switch {
			case p.String != nil:
				arg.Kind, arg.Str = ArgKind_String, *p.String
			case p.Int != nil:
				arg.Kind, arg.Int = ArgKind_Int, *p.Int
			default:
				arg.Kind, arg.Ref = ArgKind_Ref, newCrossRef(refQName(*p.Ref), anyKind, p.Ref.Pos)
			}
			app.args = append(app.args, arg)
		}
		d.constraints = append(d.constraints, app)
	}
	return true
}

func refQName(q parser.DefQName) QName {
	names := make([]Name, len(q.Path))
	for i, p := range q.Path {
		names[i] = Name(p)
	}
	return NewQName(names...)
}
