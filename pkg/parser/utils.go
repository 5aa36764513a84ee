/*
* Copyright (c) 2023-present unTill Pro, Ltd.
 */

package parser

import (
	"reflect"

	"golang.org/x/exp/slices"
)

func extractStatement(s any) interface{} {
	v := reflect.ValueOf(s)
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if field.Kind() == reflect.Ptr && !field.IsNil() {
			return field.Interface()
		}
	}
	panic("undefined statement")
}

// IsKeyword reports whether the name is reserved by the grammar
func IsKeyword(name string) bool {
	return slices.Contains(Keywords, name)
}

// Iterate walks the whole tree depth-first in declaration order, packages before their members
func Iterate(c IStatementCollection, callback func(stmt interface{})) {
	c.Iterate(func(stmt interface{}) {
		callback(stmt)
		if nested, ok := stmt.(IStatementCollection); ok {
			Iterate(nested, callback)
		}
	})
}
