/*
* Copyright (c) 2023-present unTill Pro, Ltd.
 */

package model

import (
	"strings"
)

// Name is a bare identifier, unique only within its declaring scope
type Name string

// QName is a dot path of names. Zero value is NullQName.
type QName struct {
	path string
}

var NullQName = QName{}

func NewQName(parts ...Name) QName {
	ss := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			ss = append(ss, string(p))
		}
	}
	return QName{path: strings.Join(ss, QNameSeparator)}
}

// ParseQName splits a dotted string. Empty segments are dropped.
func ParseQName(s string) QName {
	parts := strings.Split(s, QNameSeparator)
	names := make([]Name, len(parts))
	for i, p := range parts {
		names[i] = Name(p)
	}
	return NewQName(names...)
}

func (q QName) String() string { return q.path }

func (q QName) IsNull() bool { return q.path == "" }

// IsBare reports whether the name has exactly one segment
func (q QName) IsBare() bool {
	return q.path != "" && !strings.Contains(q.path, QNameSeparator)
}

func (q QName) Parts() []Name {
	if q.path == "" {
		return nil
	}
	ss := strings.Split(q.path, QNameSeparator)
	res := make([]Name, len(ss))
	for i, s := range ss {
		res[i] = Name(s)
	}
	return res
}

func (q QName) Depth() int {
	if q.path == "" {
		return 0
	}
	return strings.Count(q.path, QNameSeparator) + 1
}

// Name returns the simple (last) name
func (q QName) Name() Name {
	if i := strings.LastIndex(q.path, QNameSeparator); i >= 0 {
		return Name(q.path[i+1:])
	}
	return Name(q.path)
}

// Parent returns the enclosing scope, NullQName for bare names
func (q QName) Parent() QName {
	if i := strings.LastIndex(q.path, QNameSeparator); i >= 0 {
		return QName{path: q.path[:i]}
	}
	return NullQName
}

// Child appends a name
func (q QName) Child(n Name) QName {
	return NewQName(Name(q.path), n)
}

// Prefix puts the outer scope name in front
func (q QName) Prefix(outer Name) QName {
	return NewQName(outer, Name(q.path))
}
