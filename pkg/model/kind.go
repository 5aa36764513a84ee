/*
* Copyright (c) 2023-present unTill Pro, Ltd.
 */

package model

import (
	"strconv"
	"strings"
)

// DeclKind is the closed set of declaration kinds
type DeclKind uint8

const (
	// null - no-value kind. Returned when the requested declaration does not exist
	DeclKind_null DeclKind = iota

	DeclKind_Package
	DeclKind_DataType
	DeclKind_Enumeration
	DeclKind_Constraint
	DeclKind_ValueObject
	DeclKind_ExceptionType
	DeclKind_Service
	DeclKind_Entity
	DeclKind_Property
	DeclKind_Operation
	DeclKind_Parameter

	DeclKind_count
)

var declKindNames = [DeclKind_count]string{
	"DeclKind_null",
	"DeclKind_Package",
	"DeclKind_DataType",
	"DeclKind_Enumeration",
	"DeclKind_Constraint",
	"DeclKind_ValueObject",
	"DeclKind_ExceptionType",
	"DeclKind_Service",
	"DeclKind_Entity",
	"DeclKind_Property",
	"DeclKind_Operation",
	"DeclKind_Parameter",
}

func (k DeclKind) String() string {
	if k < DeclKind_count {
		return declKindNames[k]
	}
	return "DeclKind(" + strconv.FormatUint(uint64(k), 10) + ")"
}

// Renders a DeclKind without "DeclKind_" prefix, suitable for error messages
func (k DeclKind) TrimString() string {
	const pref = "DeclKind_"
	return strings.TrimPrefix(k.String(), pref)
}

// IsClassifier reports whether declarations of the kind may be referenced as types
func (k DeclKind) IsClassifier() bool {
	return classifierKinds.Contains(k)
}

// IsValueType reports whether the kind never takes part in relationships
func (k DeclKind) IsValueType() bool {
	return k == DeclKind_DataType || k == DeclKind_Enumeration
}

// IsFeature reports whether the kind is owned by a classifier or an operation
func (k DeclKind) IsFeature() bool {
	return k == DeclKind_Property || k == DeclKind_Operation || k == DeclKind_Parameter
}

// DeclKindSet is a bit set of declaration kinds
type DeclKindSet uint32

func NewDeclKindSet(kinds ...DeclKind) DeclKindSet {
	var s DeclKindSet
	for _, k := range kinds {
		s |= 1 << k
	}
	return s
}

func (s DeclKindSet) Contains(k DeclKind) bool {
	return s&(1<<k) != 0
}

func (s DeclKindSet) IsEmpty() bool { return s == 0 }

// Intersects reports whether the sets have a kind in common
func (s DeclKindSet) Intersects(o DeclKindSet) bool { return s&o != 0 }

func (s DeclKindSet) AsArray() []DeclKind {
	res := make([]DeclKind, 0)
	for k := DeclKind_null + 1; k < DeclKind_count; k++ {
		if s.Contains(k) {
			res = append(res, k)
		}
	}
	return res
}

// Renders set as `[Entity ValueObject]`
func (s DeclKindSet) String() string {
	ss := make([]string, 0)
	for _, k := range s.AsArray() {
		ss = append(ss, k.TrimString())
	}
	return "[" + strings.Join(ss, " ") + "]"
}

var (
	classifierKinds = NewDeclKindSet(DeclKind_DataType, DeclKind_Enumeration, DeclKind_Constraint,
		DeclKind_ValueObject, DeclKind_ExceptionType, DeclKind_Service, DeclKind_Entity)

	// kinds a property, operation result or parameter may be typed with
	typeKinds = NewDeclKindSet(DeclKind_DataType, DeclKind_Enumeration,
		DeclKind_ValueObject, DeclKind_ExceptionType, DeclKind_Entity)

	featureKinds = NewDeclKindSet(DeclKind_Property, DeclKind_Operation, DeclKind_Parameter)

	anyKind = NewDeclKindSet(DeclKind_Package, DeclKind_DataType, DeclKind_Enumeration, DeclKind_Constraint,
		DeclKind_ValueObject, DeclKind_ExceptionType, DeclKind_Service, DeclKind_Entity,
		DeclKind_Property, DeclKind_Operation, DeclKind_Parameter)
)

// EdgeKind is the kind of a synthesized relationship edge
type EdgeKind uint8

const (
	EdgeKind_null EdgeKind = iota
	EdgeKind_Extends
	EdgeKind_Depends
	EdgeKind_Reference
	EdgeKind_Composite

	EdgeKind_count
)

var edgeKindNames = [EdgeKind_count]string{
	"EdgeKind_null",
	"EdgeKind_Extends",
	"EdgeKind_Depends",
	"EdgeKind_Reference",
	"EdgeKind_Composite",
}

func (k EdgeKind) String() string {
	if k < EdgeKind_count {
		return edgeKindNames[k]
	}
	return "EdgeKind(" + strconv.FormatUint(uint64(k), 10) + ")"
}

func (k EdgeKind) TrimString() string {
	const pref = "EdgeKind_"
	return strings.TrimPrefix(k.String(), pref)
}

// ConstraintKind tells tags from validators
type ConstraintKind uint8

const (
	ConstraintKind_null ConstraintKind = iota
	ConstraintKind_Tag
	ConstraintKind_Validator

	ConstraintKind_count
)

func (k ConstraintKind) String() string {
	switch k {
	case ConstraintKind_Tag:
		return "ConstraintKind_Tag"
	case ConstraintKind_Validator:
		return "ConstraintKind_Validator"
	case ConstraintKind_null:
		return "ConstraintKind_null"
	}
	return "ConstraintKind(" + strconv.FormatUint(uint64(k), 10) + ")"
}

// ArgKind is the kind of a constraint application argument
type ArgKind uint8

const (
	ArgKind_null ArgKind = iota
	ArgKind_String
	ArgKind_Int
	ArgKind_Ref

	ArgKind_count
)

func (k ArgKind) String() string {
	switch k {
	case ArgKind_String:
		return "ArgKind_String"
	case ArgKind_Int:
		return "ArgKind_Int"
	case ArgKind_Ref:
		return "ArgKind_Ref"
	case ArgKind_null:
		return "ArgKind_null"
	}
	return "ArgKind(" + strconv.FormatUint(uint64(k), 10) + ")"
}

// Token returns signature token the argument kind matches
func (k ArgKind) Token() string {
	switch k {
	case ArgKind_String:
		return TokenString
	case ArgKind_Int:
		return TokenInt
	case ArgKind_Ref:
		return TokenRef
	}
	return ""
}
