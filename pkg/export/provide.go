/*
* Copyright (c) 2023-present unTill Pro, Ltd.
 */

package export

import (
	"io"

	"github.com/DanielFath/domm/pkg/model"
)

// WriteDOT renders the model as a graphviz digraph.
// Classifiers are record nodes, packages are clusters, relationships are edges.
// Output depends on the model only, so equal models produce equal text
func WriteDOT(w io.Writer, m *model.Model, opts ...Option) error {
	o := options{showFeatures: true}
	for _, opt := range opts {
		opt(&o)
	}
	return writeDOTImpl(w, m, o)
}

// ShowSubsumed renders second discoveries of bidirectional relationships as dotted edges
func ShowSubsumed() Option {
	return func(o *options) {
		o.showSubsumed = true
	}
}

// HideFeatures renders classifier names only
func HideFeatures() Option {
	return func(o *options) {
		o.showFeatures = false
	}
}
