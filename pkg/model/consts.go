/*
* Copyright (c) 2023-present unTill Pro, Ltd.
 */

package model

const QNameSeparator = "."

// Unbounded is the maximum cardinality of a container side
const Unbounded = -1

const NullDeclID = DeclID(0)

const defaultErrorLimit = 1

// Constraint signature tokens
const (
	TokenString   = "_string"
	TokenInt      = "_int"
	TokenRef      = "_ref"
	TokenEllipsis = "..."
)

// Applicability targets of constraint definitions
var appliesToKinds = map[string]DeclKind{
	"_entity":      DeclKind_Entity,
	"_service":     DeclKind_Service,
	"_valueObject": DeclKind_ValueObject,
	"_prop":        DeclKind_Property,
	"_op":          DeclKind_Operation,
	"_param":       DeclKind_Parameter,
}
