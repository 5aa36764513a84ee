/*
* Copyright (c) 2023-present unTill Pro, Ltd.
 */

package model

import (
	"golang.org/x/exp/slices"
)

func (c *buildContext) resolveRefs() {
	for _, d := range c.model.decls[1:] {
		if c.full() {
			return
		}
		c.resolveDecl(d)
	}
	if len(c.errs) == 0 {
		c.checkExtendsCycles()
	}
}

func (c *buildContext) resolveDecl(d IDecl) {
	switch d := d.(type) {
	case *Package, *DataType, *Enumeration, *ConstraintDef:
	case *ValueObject:
		c.resolveClassifier(&d.classifier)
	case *ExceptionType:
		c.resolveClassifier(&d.classifier)
	case *Service:
		c.resolveClassifier(&d.classifier)
	case *Entity:
		c.resolveClassifier(&d.classifier)
		for _, item := range d.repr {
			if item.Prop != nil {
				c.resolveMember(item.Prop, d.qname)
			}
		}
	case *Property:
		if c.resolveRef(d.typ) && d.opposite != nil {
			c.resolveOpposite(d)
		}
	case *Operation:
		c.resolveRef(d.typ)
		for _, t := range d.throws {
			c.resolveRef(t)
		}
	case *Parameter:
		c.resolveRef(d.typ)
	default:
		panic("unexpected declaration")
	}
	for _, app := range d.Constraints() {
		c.resolveConstraintApp(d, app)
	}
}

func (c *buildContext) resolveClassifier(cl *classifier) {
	if cl.extends != nil {
		c.resolveRef(cl.extends)
	}
	for _, dep := range cl.depends {
		c.resolveRef(dep)
	}
}

// resolveRef binds the reference or reports the error. Returns false if the reference stays unresolved
func (c *buildContext) resolveRef(r *CrossRef) bool {
	if r.Resolved() {
		return true
	}
	id, err := c.find(r.ref, r.expected)
	if err != nil {
		c.stmtErr(&r.pos, err)
		return false
	}
	r.bind(id)
	return true
}

// find expands bare names through the bare-name table.
// Type references never see features and feature references never see types, any other duplicate makes the name ambiguous
func (c *buildContext) find(ref QName, expected DeclKindSet) (DeclID, error) {
	m := c.model
	if !ref.IsBare() {
		id, ok := m.qnames[ref]
		if !ok {
			return NullDeclID, ErrTypeNotFound(ref)
		}
		if kind := m.decls[id].Kind(); !expected.Contains(kind) {
			return NullDeclID, ErrTypeKindMismatch(ref, kind, expected)
		}
		return id, nil
	}

	all := m.bare[ref.Name()]
	features, types := expected.Intersects(featureKinds), expected.Intersects(^featureKinds)
	candidates := make([]DeclID, 0, len(all))
	for _, id := range all {
		if isFeature := m.decls[id].Kind().IsFeature(); (isFeature && features) || (!isFeature && types) {
			candidates = append(candidates, id)
		}
	}
	switch len(candidates) {
	case 0:
		return NullDeclID, ErrTypeNotFound(ref)
	case 1:
		d := m.decls[candidates[0]]
		if !expected.Contains(d.Kind()) {
			return NullDeclID, ErrTypeKindMismatch(d.QName(), d.Kind(), expected)
		}
		return d.ID(), nil
	}
	return NullDeclID, ErrAmbiguousReference(ref.Name(), m.qnamesOf(candidates))
}

// resolveMember binds a bare reference to a feature of the classifier
func (c *buildContext) resolveMember(r *CrossRef, owner QName) bool {
	if id, ok := c.member(owner, r.ref, r.expected); ok {
		r.bind(id)
		return true
	}
	c.stmtErr(&r.pos, ErrTypeNotFound(owner.Child(r.ref.Name())))
	return false
}

func (c *buildContext) member(owner QName, ref QName, expected DeclKindSet) (DeclID, bool) {
	if !ref.IsBare() {
		return NullDeclID, false
	}
	id, ok := c.model.qnames[owner.Child(ref.Name())]
	if !ok || !expected.Contains(c.model.decls[id].Kind()) {
		return NullDeclID, false
	}
	return id, true
}

// resolveOpposite looks for the opposite end among the features of the property type first
func (c *buildContext) resolveOpposite(p *Property) {
	target := c.model.decls[p.typ.target]
	if id, ok := c.member(target.QName(), p.opposite.ref, p.opposite.expected); ok {
		p.opposite.bind(id)
		return
	}
	c.resolveRef(p.opposite)
}

// resolveConstraintApp binds the definition and identifier arguments.
// Identifier arguments are looked up among the features of the enclosing classifier first
func (c *buildContext) resolveConstraintApp(d IDecl, app *ConstraintApp) {
	if !c.resolveRef(app.def) {
		return
	}
	scope := c.enclosingClassifier(d)
	for _, arg := range app.args {
		if arg.Kind != ArgKind_Ref {
			continue
		}
		if scope != nil {
			if id, ok := c.member(scope.QName(), arg.Ref.ref, arg.Ref.expected); ok {
				arg.Ref.bind(id)
				continue
			}
		}
		c.resolveRef(arg.Ref)
	}
}

func (c *buildContext) enclosingClassifier(d IDecl) IDecl {
	for d != nil {
		if _, ok := d.(IClassifier); ok {
			return d
		}
		d = c.model.Decl(d.Owner())
	}
	return nil
}

// checkExtendsCycles reports every extends chain which loops back to its start
func (c *buildContext) checkExtendsCycles() {
	checked := make(map[DeclID]bool)
	for _, d := range c.model.decls[1:] {
		if c.full() {
			return
		}
		cl, ok := d.(IClassifier)
		if !ok || checked[d.ID()] {
			continue
		}
		chain := []DeclID{d.ID()}
		for next := cl.Extends(); next != nil && next.Resolved(); {
			id := next.Target()
			if i := slices.Index(chain, id); i >= 0 {
				names := c.model.qnamesOf(append(chain[i:], id))
				c.stmtErr(&next.pos, ErrCircularExtends(names))
				break
			}
			if checked[id] {
				break
			}
			chain = append(chain, id)
			next = c.model.decls[id].(IClassifier).Extends()
		}
		for _, id := range chain {
			checked[id] = true
		}
	}
}
