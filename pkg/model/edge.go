/*
* Copyright (c) 2023-present unTill Pro, Ltd.
 */

package model

import "fmt"

// Cardinality bounds of both sides of a relationship. Unbounded is -1.
type Cardinality struct {
	MinA, MaxA int
	MinB, MaxB int
}

func (c Cardinality) String() string {
	return fmt.Sprintf("%s:%s", bounds(c.MinA, c.MaxA), bounds(c.MinB, c.MaxB))
}

func bounds(min, max int) string {
	if max == Unbounded {
		return fmt.Sprintf("%d..*", min)
	}
	return fmt.Sprintf("%d..%d", min, max)
}

// Edge is a synthesized relationship between classifiers A and B
type Edge struct {
	kind   EdgeKind
	a, b   DeclID
	card   Cardinality
	via    DeclID
	partOf *Edge
}

func (e *Edge) Kind() EdgeKind { return e.kind }

// A is the declaring side
func (e *Edge) A() DeclID { return e.a }

// B is the referenced side
func (e *Edge) B() DeclID { return e.b }

// Cardinality is zero for Extends and Depends edges
func (e *Edge) Cardinality() Cardinality { return e.card }

// Via returns the property the edge is derived from, NullDeclID for Extends and Depends
func (e *Edge) Via() DeclID { return e.via }

// PartOf returns the primary edge of a bidirectional pair if this edge is its second discovery
func (e *Edge) PartOf() *Edge { return e.partOf }

func (e *Edge) Subsumed() bool { return e.partOf != nil }
