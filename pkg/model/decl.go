/*
* Copyright (c) 2023-present unTill Pro, Ltd.
 */

package model

import (
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"
	"golang.org/x/exp/slices"
)

// DeclID is a handle of a declaration in the model arena
type DeclID uint32

// IDecl is implemented by every declaration of the model.
// The set of implementations is closed.
type IDecl interface {
	ID() DeclID
	Kind() DeclKind
	Name() Name
	QName() QName

	// Package or classifier or operation the declaration belongs to. NullDeclID for model-level declarations
	Owner() DeclID
	Pos() lexer.Position
	Desc() Description

	// Constraints applied to the declaration, in declaration order
	Constraints() []*ConstraintApp

	// Model the declaration is registered in
	Model() *Model

	isDecl()
}

type Description struct {
	Short string
	Long  string
}

type decl struct {
	id          DeclID
	kind        DeclKind
	name        Name
	qname       QName
	owner       DeclID
	pos         lexer.Position
	desc        Description
	constraints []*ConstraintApp
	model       *Model
}

func (d *decl) ID() DeclID { return d.id }
func (d *decl) Kind() DeclKind { return d.kind }
func (d *decl) Name() Name { return d.name }
func (d *decl) QName() QName { return d.qname }
func (d *decl) Owner() DeclID { return d.owner }
func (d *decl) Pos() lexer.Position { return d.pos }
func (d *decl) Desc() Description { return d.desc }
func (d *decl) Constraints() []*ConstraintApp { return slices.Clone(d.constraints) }
func (d *decl) Model() *Model { return d.model }
func (d *decl) isDecl() {}

type Package struct {
	decl
	members []DeclID
}

// Members returns nested packages and classifiers in declaration order
func (p *Package) Members() []DeclID { return slices.Clone(p.members) }

type DataType struct {
	decl
	builtIn bool
}

func (d *DataType) BuiltIn() bool { return d.builtIn }

type EnumLiteral struct {
	Value Name
	Label string
	Desc  Description
	Pos   lexer.Position
}

type Enumeration struct {
	decl
	literals []EnumLiteral
}

func (e *Enumeration) Literals() []EnumLiteral { return slices.Clone(e.literals) }

// ConstraintDef is a tag or validator definition
type ConstraintDef struct {
	decl
	constraintKind ConstraintKind
	builtIn        bool
	signature      []string
	appliesTo      DeclKindSet
}

func (c *ConstraintDef) ConstraintKind() ConstraintKind { return c.constraintKind }
func (c *ConstraintDef) BuiltIn() bool { return c.builtIn }

// Signature returns parameter tokens: TokenString, TokenInt, TokenRef or TokenEllipsis
func (c *ConstraintDef) Signature() []string { return slices.Clone(c.signature) }

func (c *ConstraintDef) AppliesTo() DeclKindSet { return c.appliesTo }

// IsVariadic reports whether the signature ends with an ellipsis
func (c *ConstraintDef) IsVariadic() bool {
	return len(c.signature) > 0 && c.signature[len(c.signature)-1] == TokenEllipsis
}

type classifier struct {
	decl
	extends  *CrossRef
	depends  []*CrossRef
	features []DeclID
}

// Extends returns nil if the classifier extends nothing
func (c *classifier) Extends() *CrossRef { return c.extends }

func (c *classifier) Depends() []*CrossRef { return slices.Clone(c.depends) }

// Features returns properties and operations in declaration order, compartments included
func (c *classifier) Features() []DeclID { return slices.Clone(c.features) }

// IClassifier is implemented by value objects, exceptions, services and entities
type IClassifier interface {
	IDecl
	Extends() *CrossRef
	Depends() []*CrossRef
	Features() []DeclID
}

type ValueObject struct {
	classifier
}

type ExceptionType struct {
	classifier
}

type Compartment struct {
	Name     Name
	Desc     Description
	Features []DeclID
}

func cloneCompartments(cc []Compartment) []Compartment {
	res := slices.Clone(cc)
	for i := range res {
		res[i].Features = slices.Clone(res[i].Features)
	}
	return res
}

type Service struct {
	classifier
	compartments []Compartment
}

func (s *Service) Compartments() []Compartment { return cloneCompartments(s.compartments) }

// ReprItem is a part of an entity representation: a text literal or a property reference
type ReprItem struct {
	Text string
	Prop *CrossRef
}

type Entity struct {
	classifier
	key          []DeclID
	repr         []ReprItem
	compartments []Compartment
}

// Key returns key properties. They are also listed in Features
func (e *Entity) Key() []DeclID { return slices.Clone(e.key) }
func (e *Entity) Repr() []ReprItem { return slices.Clone(e.repr) }
func (e *Entity) Compartments() []Compartment { return cloneCompartments(e.compartments) }

type Multiplicity struct {
	Container bool

	// Upper bound of a bounded container, Unbounded otherwise
	Upper int
}

type Modifiers struct {
	Ordered  bool
	Unique   bool
	Readonly bool
	Required bool
}

type typedFeature struct {
	decl
	typ          *CrossRef
	multiplicity Multiplicity
	modifiers    Modifiers
}

func (f *typedFeature) Type() *CrossRef { return f.typ }
func (f *typedFeature) Multiplicity() Multiplicity { return f.multiplicity }
func (f *typedFeature) Modifiers() Modifiers { return f.modifiers }

type Property struct {
	typedFeature
	containment bool
	opposite    *CrossRef
	compartment Name
	isKey       bool
}

func (p *Property) Containment() bool { return p.containment }

// Opposite returns nil for one-sided relationships
func (p *Property) Opposite() *CrossRef { return p.opposite }

// Compartment returns empty name for features declared outside compartments
func (p *Property) Compartment() Name { return p.compartment }

func (p *Property) IsKey() bool { return p.isKey }

type Operation struct {
	typedFeature
	params      []DeclID
	throws      []*CrossRef
	compartment Name
}

func (o *Operation) Params() []DeclID { return slices.Clone(o.params) }
func (o *Operation) Throws() []*CrossRef { return slices.Clone(o.throws) }
func (o *Operation) Compartment() Name { return o.compartment }

type Parameter struct {
	typedFeature
}

// CrossRef is a reference by name. It is unresolved until bound to a declaration.
type CrossRef struct {
	ref      QName
	expected DeclKindSet
	pos      lexer.Position
	target   DeclID
}

func newCrossRef(ref QName, expected DeclKindSet, pos lexer.Position) *CrossRef {
	return &CrossRef{ref: ref, expected: expected, pos: pos}
}

// Ref returns the name as written
func (r *CrossRef) Ref() QName { return r.ref }

func (r *CrossRef) Expected() DeclKindSet { return r.expected }

func (r *CrossRef) Pos() lexer.Position { return r.pos }

func (r *CrossRef) Resolved() bool { return r.target != NullDeclID }

// Target returns NullDeclID while unresolved
func (r *CrossRef) Target() DeclID { return r.target }

func (r *CrossRef) bind(id DeclID) { r.target = id }

// ConstraintArg is a positional argument of a constraint application
type ConstraintArg struct {
	Kind ArgKind
	Str  string
	Int  int
	Ref  *CrossRef
	Pos  lexer.Position
}

func (a ConstraintArg) String() string {
	switch a.Kind {
	case ArgKind_String:
		return `"` + a.Str + `"`
	case ArgKind_Int:
		return strconv.Itoa(a.Int)
	case ArgKind_Ref:
		return a.Ref.Ref().String()
	}
	return ""
}

// ConstraintApp is a constraint applied to a declaration
type ConstraintApp struct {
	def   *CrossRef
	args  []ConstraintArg
	owner DeclID
	pos   lexer.Position
}

// Def is resolved to a ConstraintDef
func (c *ConstraintApp) Def() *CrossRef { return c.def }
func (c *ConstraintApp) Args() []ConstraintArg { return c.args }
func (c *ConstraintApp) Owner() DeclID { return c.owner }
func (c *ConstraintApp) Pos() lexer.Position { return c.pos }
