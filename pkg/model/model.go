/*
* Copyright (c) 2023-present unTill Pro, Ltd.
 */

package model

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Model is the resolved model graph. It is read-only once BuildModel returns it.
type Model struct {
	name Name
	desc Description

	// arena, decls[0] is never used
	decls  []IDecl
	roots  []DeclID
	qnames map[QName]DeclID

	// bare name -> every declaration with the name, in registration order
	bare map[Name][]DeclID

	edges     []*Edge
	propEdges map[DeclID]*Edge

	// classifier -> property which claims it as a containment target
	contained map[QName]DeclID
}

func newModel(name Name, desc Description) *Model {
	return &Model{
		name:      name,
		desc:      desc,
		decls:     []IDecl{nil},
		qnames:    make(map[QName]DeclID),
		bare:      make(map[Name][]DeclID),
		propEdges: make(map[DeclID]*Edge),
		contained: make(map[QName]DeclID),
	}
}

func (m *Model) Name() Name { return m.name }

func (m *Model) Desc() Description { return m.desc }

// Decl returns nil for unknown handles
func (m *Model) Decl(id DeclID) IDecl {
	if id == NullDeclID || int(id) >= len(m.decls) {
		return nil
	}
	return m.decls[id]
}

// Decls returns every declaration in registration order
func (m *Model) Decls() []IDecl {
	return slices.Clone(m.decls[1:])
}

// Roots returns model-level declarations and top-level packages in declaration order
func (m *Model) Roots() []DeclID {
	return slices.Clone(m.roots)
}

// QNames returns every registered qualified name, sorted
func (m *Model) QNames() []QName {
	res := maps.Keys(m.qnames)
	slices.SortFunc(res, func(a, b QName) bool { return a.String() < b.String() })
	return res
}

func (m *Model) Lookup(qn QName) (IDecl, error) {
	if id, ok := m.qnames[qn]; ok {
		return m.decls[id], nil
	}
	return nil, ErrTypeNotFound(qn)
}

// LookupBare finds the declaration by simple name. Fails if the name is declared more than once model-wide.
func (m *Model) LookupBare(n Name) (IDecl, error) {
	ids := m.bare[n]
	switch len(ids) {
	case 0:
		return nil, ErrTypeNotFound(NewQName(n))
	case 1:
		return m.decls[ids[0]], nil
	}
	return nil, ErrAmbiguousName(n, m.qnamesOf(ids))
}

// IsAmbiguous reports whether the bare name is declared more than once
func (m *Model) IsAmbiguous(n Name) bool {
	return len(m.bare[n]) > 1
}

// LookupAs finds the declaration by qualified name and checks its type
func LookupAs[T IDecl](m *Model, qn QName) (T, error) {
	var zero T
	d, err := m.Lookup(qn)
	if err != nil {
		return zero, err
	}
	if t, ok := d.(T); ok {
		return t, nil
	}
	return zero, ErrTypeKindMismatch(qn, d.Kind(), NewDeclKindSet(kindOf(zero)))
}

// DeclAs returns the declaration by handle if it has the type
func DeclAs[T IDecl](m *Model, id DeclID) (T, bool) {
	t, ok := m.Decl(id).(T)
	return t, ok
}

// Edges returns primary relationship edges in synthesis order. Subsumed edges are excluded.
func (m *Model) Edges() []*Edge {
	res := make([]*Edge, 0, len(m.edges))
	for _, e := range m.edges {
		if !e.Subsumed() {
			res = append(res, e)
		}
	}
	return res
}

// AllEdges returns every synthesized edge, subsumed ones included
func (m *Model) AllEdges() []*Edge {
	return slices.Clone(m.edges)
}

// EdgeOf returns the edge synthesized for the property, nil if none
func (m *Model) EdgeOf(prop DeclID) *Edge {
	return m.propEdges[prop]
}

// ContainerOf returns the property claiming the classifier as a containment target
func (m *Model) ContainerOf(qn QName) (*Property, bool) {
	id, ok := m.contained[qn]
	if !ok {
		return nil, false
	}
	p, ok := m.decls[id].(*Property)
	return p, ok
}

// Owner returns the owning declaration, nil for model-level declarations
func (m *Model) Owner(d IDecl) IDecl {
	return m.Decl(d.Owner())
}

// Target returns the declaration the reference is bound to, nil if unresolved
func (m *Model) Target(r *CrossRef) IDecl {
	if r == nil {
		return nil
	}
	return m.Decl(r.Target())
}

func (m *Model) qnamesOf(ids []DeclID) []QName {
	res := make([]QName, len(ids))
	for i, id := range ids {
		res[i] = m.decls[id].QName()
	}
	return res
}

func (m *Model) register(d IDecl) {
	m.decls = append(m.decls, d)
	m.qnames[d.QName()] = d.ID()
	m.bare[d.Name()] = append(m.bare[d.Name()], d.ID())
}

func (m *Model) nextID() DeclID {
	return DeclID(len(m.decls))
}

func kindOf(d IDecl) DeclKind {
	switch d.(type) {
	case *Package:
		return DeclKind_Package
	case *DataType:
		return DeclKind_DataType
	case *Enumeration:
		return DeclKind_Enumeration
	case *ConstraintDef:
		return DeclKind_Constraint
	case *ValueObject:
		return DeclKind_ValueObject
	case *ExceptionType:
		return DeclKind_ExceptionType
	case *Service:
		return DeclKind_Service
	case *Entity:
		return DeclKind_Entity
	case *Property:
		return DeclKind_Property
	case *Operation:
		return DeclKind_Operation
	case *Parameter:
		return DeclKind_Parameter
	}
	return DeclKind_null
}
