/*
* Copyright (c) 2023-present unTill Pro, Ltd.
 */

package parser

import (
	fs "io/fs"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

type FileModelAST struct {
	FileName string
	Ast      *ModelStmt
}

type IReadFS interface {
	fs.ReadDirFS
	fs.ReadFileFS
}

type Ident string

func (b *Ident) Capture(values []string) error {
	*b = Ident(strings.Trim(values[0], "\""))
	return nil
}

type IStatement interface {
	GetPos() *lexer.Position
}

type INamedStatement interface {
	IStatement
	GetName() Ident
}

type IStatementCollection interface {
	Iterate(callback func(stmt interface{}))
}

// ModelStmt is the root of the raw declaration tree
type ModelStmt struct {
	Statement
	Name       Ident           `parser:"'model' @Ident"`
	Desc       *NamedElem      `parser:"@@?"`
	Statements []RootStatement `parser:"@@*"`
	Packages   []PackageStmt   `parser:"@@*"`
}

func (s *ModelStmt) GetName() Ident { return s.Name }

func (s *ModelStmt) Iterate(callback func(stmt interface{})) {
	for i := 0; i < len(s.Statements); i++ {
		raw := &s.Statements[i]
		if raw.stmt == nil {
			raw.stmt = extractStatement(*raw)
		}
		callback(raw.stmt)
	}
	for i := range s.Packages {
		callback(&s.Packages[i])
	}
}

// Statements allowed at model level, before any package
type RootStatement struct {
	DataType   *DataTypeStmt   `parser:"@@"`
	Enum       *EnumStmt       `parser:"| @@"`
	Constraint *ConstraintStmt `parser:"| @@"`

	stmt interface{}
}

type PackageStatement struct {
	Package     *PackageStmt     `parser:"@@"`
	Entity      *EntityStmt      `parser:"| @@"`
	Service     *ServiceStmt     `parser:"| @@"`
	ValueObject *ValueObjectStmt `parser:"| @@"`
	Exception   *ExceptionStmt   `parser:"| @@"`
	DataType    *DataTypeStmt    `parser:"| @@"`
	Enum        *EnumStmt        `parser:"| @@"`
	Constraint  *ConstraintStmt  `parser:"| @@"`

	stmt interface{}
}

type Statement struct {
	Pos lexer.Position
}

func (s *Statement) GetPos() *lexer.Position {
	return &s.Pos
}

// NamedElem holds the optional short and long descriptions
type NamedElem struct {
	Short string  `parser:"@String"`
	Long  *string `parser:"@String?"`
}

func (n *NamedElem) GetShort() string {
	if n == nil {
		return ""
	}
	return n.Short
}

func (n *NamedElem) GetLong() string {
	if n == nil || n.Long == nil {
		return ""
	}
	return *n.Long
}

type DefQName struct {
	Pos  lexer.Position
	Path []Ident `parser:"@Ident ('.' @Ident)*"`
}

func (q DefQName) String() string {
	parts := make([]string, len(q.Path))
	for i, p := range q.Path {
		parts[i] = string(p)
	}
	return strings.Join(parts, ".")
}

type PackageStmt struct {
	Statement
	Name       Ident              `parser:"'package' @Ident"`
	Desc       *NamedElem         `parser:"@@?"`
	Statements []PackageStatement `parser:"'{' @@* '}'"`
}

func (s *PackageStmt) GetName() Ident { return s.Name }

func (s *PackageStmt) Iterate(callback func(stmt interface{})) {
	for i := 0; i < len(s.Statements); i++ {
		raw := &s.Statements[i]
		if raw.stmt == nil {
			raw.stmt = extractStatement(*raw)
		}
		callback(raw.stmt)
	}
}

type DataTypeStmt struct {
	Statement
	BuiltIn bool       `parser:"( 'dataType' | @'buildinDataType' )"`
	Name    Ident      `parser:"@Ident"`
	Desc    *NamedElem `parser:"@@?"`
}

func (s *DataTypeStmt) GetName() Ident { return s.Name }

type EnumStmt struct {
	Statement
	Name     Ident         `parser:"'enum' @Ident"`
	Desc     *NamedElem    `parser:"@@?"`
	Literals []EnumLiteral `parser:"'{' @@+ '}'"`
}

func (s *EnumStmt) GetName() Ident { return s.Name }

type EnumLiteral struct {
	Pos   lexer.Position
	Value Ident      `parser:"@Ident"`
	Name  string     `parser:"@String"`
	Desc  *NamedElem `parser:"@@?"`
}

// ConstraintStmt declares a tag or a validator
type ConstraintStmt struct {
	Statement
	Kind      ConstraintKindExpr `parser:"@@"`
	Name      Ident              `parser:"@Ident"`
	Params    []string           `parser:"( '(' ( @('_string' | '_int' | '_ref' | Ellipsis) ( ',' @('_string' | '_int' | '_ref' | Ellipsis) )* )? ')' )?"`
	AppliesTo []string           `parser:"( 'appliesTo' @('_entity' | '_prop' | '_param' | '_op' | '_service' | '_valueObject')* )?"`
	Desc      *NamedElem         `parser:"@@?"`
}

func (s *ConstraintStmt) GetName() Ident { return s.Name }

type ConstraintKindExpr struct {
	Tag              bool `parser:"@'tagType'"`
	BuiltInTag       bool `parser:"| @'buildinTagType'"`
	Validator        bool `parser:"| @'validatorType'"`
	BuiltInValidator bool `parser:"| @('buildInValidatorType' | 'builtInValidatorType' | 'buildinValidator')"`
}

func (k ConstraintKindExpr) IsTag() bool { return k.Tag || k.BuiltInTag }

func (k ConstraintKindExpr) IsBuiltIn() bool { return k.BuiltInTag || k.BuiltInValidator }

type EntityStmt struct {
	Statement
	Name         Ident             `parser:"'entity' @Ident"`
	Extends      *DefQName         `parser:"( 'extends' @@ )?"`
	Depends      []DefQName        `parser:"( 'depends' @@ ( ',' @@ )* )?"`
	Desc         *NamedElem        `parser:"@@?"`
	Key          *KeyStmt          `parser:"'{' @@?"`
	Repr         *ReprStmt         `parser:"@@?"`
	Constraints  []ConstraintSpec  `parser:"( '[' @@ ( ',' @@ )* ']' )?"`
	Features     []FeatureStmt     `parser:"@@*"`
	Compartments []CompartmentStmt `parser:"@@* '}'"`
}

func (s *EntityStmt) GetName() Ident { return s.Name }

type KeyStmt struct {
	Pos   lexer.Position
	Props []PropStmt `parser:"'key' '{' @@+ '}'"`
}

type ReprStmt struct {
	Pos   lexer.Position
	Parts []ReprParam `parser:"'repr' @@ ( '+' @@ )*"`
}

type ReprParam struct {
	Pos  lexer.Position
	Text *string `parser:"@String"`
	Prop *Ident  `parser:"| @Ident"`
}

type ServiceStmt struct {
	Statement
	Name         Ident                    `parser:"'service' @Ident"`
	Extends      *DefQName                `parser:"( 'extends' @@ )?"`
	Depends      []DefQName               `parser:"( 'depends' @@ ( ',' @@ )* )?"`
	Desc         *NamedElem               `parser:"@@?"`
	Constraints  []ConstraintSpec         `parser:"'{' ( '[' @@ ( ',' @@ )* ']' )?"`
	Ops          []OpStmt                 `parser:"@@*"`
	Compartments []ServiceCompartmentStmt `parser:"@@* '}'"`
}

func (s *ServiceStmt) GetName() Ident { return s.Name }

type ValueObjectStmt struct {
	Statement
	Name        Ident            `parser:"'valueObject' @Ident"`
	Extends     *DefQName        `parser:"( 'extends' @@ )?"`
	Depends     []DefQName       `parser:"( 'depends' @@ ( ',' @@ )* )?"`
	Desc        *NamedElem       `parser:"@@?"`
	Constraints []ConstraintSpec `parser:"'{' ( '[' @@ ( ',' @@ )* ']' )?"`
	Props       []PropStmt       `parser:"@@* '}'"`
}

func (s *ValueObjectStmt) GetName() Ident { return s.Name }

type ExceptionStmt struct {
	Statement
	Name  Ident      `parser:"'exception' @Ident"`
	Desc  *NamedElem `parser:"@@?"`
	Props []PropStmt `parser:"'{' @@* '}'"`
}

func (s *ExceptionStmt) GetName() Ident { return s.Name }

type FeatureStmt struct {
	Prop *PropStmt `parser:"@@"`
	Op   *OpStmt   `parser:"| @@"`
}

type CompartmentStmt struct {
	Statement
	Name     Ident         `parser:"'compartment' @Ident"`
	Desc     *NamedElem    `parser:"@@?"`
	Features []FeatureStmt `parser:"'{' @@* '}'"`
}

type ServiceCompartmentStmt struct {
	Statement
	Name Ident      `parser:"'compartment' @Ident"`
	Desc *NamedElem `parser:"@@?"`
	Ops  []OpStmt   `parser:"'{' @@* '}'"`
}

type Modifier struct {
	Ordered  bool `parser:"@'ordered'"`
	Unique   bool `parser:"| @'unique'"`
	Readonly bool `parser:"| @'readonly'"`
	Required bool `parser:"| @'required'"`
}

type Modifiers []Modifier

func (mm Modifiers) Ordered() bool {
	for _, m := range mm {
		if m.Ordered {
			return true
		}
	}
	return false
}

func (mm Modifiers) Unique() bool {
	for _, m := range mm {
		if m.Unique {
			return true
		}
	}
	return false
}

func (mm Modifiers) Readonly() bool {
	for _, m := range mm {
		if m.Readonly {
			return true
		}
	}
	return false
}

func (mm Modifiers) Required() bool {
	for _, m := range mm {
		if m.Required {
			return true
		}
	}
	return false
}

// TypeDef is the `type[N] name` triple shared by properties, operations and parameters
type TypeDef struct {
	Pos       lexer.Position
	Type      DefQName `parser:"@@"`
	Container bool     `parser:"( @'['"`
	Upper     *int     `parser:"@Int? ']' )?"`
	Name      Ident    `parser:"@Ident"`
}

type PropStmt struct {
	Statement
	Modifiers   Modifiers        `parser:"'prop' @@*"`
	Containment bool             `parser:"@'+'?"`
	Type        TypeDef          `parser:"@@"`
	Opposite    *DefQName        `parser:"( Opposite @@ )?"`
	Constraints []ConstraintSpec `parser:"( '[' @@ ( ',' @@ )* ']' )?"`
	Desc        *NamedElem       `parser:"@@?"`
}

func (s *PropStmt) GetName() Ident { return s.Type.Name }

type OpStmt struct {
	Statement
	Modifiers   Modifiers        `parser:"'op' @@*"`
	Type        TypeDef          `parser:"@@"`
	Params      []ParamStmt      `parser:"'(' ( @@ ( ',' @@ )* )? ')'"`
	Throws      []DefQName       `parser:"( 'throws' @@ ( ',' @@ )* )?"`
	Constraints []ConstraintSpec `parser:"( '[' @@ ( ',' @@ )* ']' )?"`
	Desc        *NamedElem       `parser:"@@?"`
}

func (s *OpStmt) GetName() Ident { return s.Type.Name }

type ParamStmt struct {
	Statement
	Modifiers   Modifiers        `parser:"@@*"`
	Type        TypeDef          `parser:"@@"`
	Constraints []ConstraintSpec `parser:"( '[' @@ ( ',' @@ )* ']' )?"`
	Desc        *NamedElem       `parser:"@@?"`
}

func (s *ParamStmt) GetName() Ident { return s.Type.Name }

// ConstraintSpec is an application of a tag or validator: `name(args...)`
type ConstraintSpec struct {
	Pos    lexer.Position
	Name   DefQName          `parser:"@@"`
	Params []ConstraintParam `parser:"( '(' @@ ( ',' @@ )* ')' )?"`
}

type ConstraintParam struct {
	Pos    lexer.Position
	String *string   `parser:"@String"`
	Int    *int      `parser:"| @Int"`
	Ref    *DefQName `parser:"| @@"`
}
