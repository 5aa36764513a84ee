/*
* Copyright (c) 2023-present unTill Pro, Ltd.
 */

package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DanielFath/domm/pkg/model"
	"github.com/DanielFath/domm/pkg/parser"
)

const shopModel = `
model shop
dataType int
dataType string
enum Status { New "New" Done "Done" }
package sales {
	exception NotFound { prop string what }
	service Billing {
		op int pay(Order order, int[] amounts) throws NotFound
		compartment admin "Administration" { op int refund(Order order) }
	}
	valueObject Address { prop string city }
	entity Base {}
	entity Order extends Base depends Billing {
		key { prop int id }
		prop required Status status
		prop +Address[3] addresses
		prop Customer customer <> orders
		compartment audit { prop string note }
	}
	entity Customer {
		prop Order[] orders <> customer
	}
}
`

func buildShop(t *testing.T) *model.Model {
	file, err := parser.ParseFile("shop.domm", shopModel)
	require.NoError(t, err)
	m, err := model.BuildModel(file.Ast)
	require.NoError(t, err)
	return m
}

func TestWriteDOT(t *testing.T) {
	require := require.New(t)
	m := buildShop(t)

	out := bytes.Buffer{}
	require.NoError(WriteDOT(&out, m))
	dot := out.String()

	require.True(strings.HasPrefix(dot, "digraph \"shop\" {\n"))
	require.True(strings.HasSuffix(dot, "}\n"))

	t.Run("nodes", func(t *testing.T) {
		require.Contains(dot, `    "int" [label = "{int}", style = "filled"]`)
		require.Contains(dot, `    "Status" [label = "{Status|New\lDone\l}", style = "filled"]`)
		require.Contains(dot, `    subgraph "cluster_sales" {`)
		require.Contains(dot, `        label = "sales"`)
		require.Contains(dot, `"sales.Address" [label = "{Address|? city: string\l}", style = "filled,rounded"]`)
		require.Contains(dot, `"sales.NotFound" [label = "{NotFound|? what: string\l}", style = "filled,dashed"]`)
		require.Contains(dot, `"sales.Billing" [label = "{Billing|pay(order: Order, amounts: int[]) : int\l|Administration|refund(order: Order) : int\l}", style = "filled,diagonals"]`)
		require.Contains(dot, `"sales.Order" [label = "{Order|? id: int (key)\l+ status: Status\l? addresses: Address[3]\l? customer: Customer\l|audit|? note: string\l}", style = "filled"]`)
	})

	t.Run("nodes are sorted", func(t *testing.T) {
		require.Less(strings.Index(dot, `"sales.Address" [`), strings.Index(dot, `"sales.Base" [`))
		require.Less(strings.Index(dot, `"sales.Customer" [`), strings.Index(dot, `"sales.Order" [`))
		require.Less(strings.Index(dot, `"Status" [`), strings.Index(dot, `"int" [`))
	})

	t.Run("edges", func(t *testing.T) {
		require.Contains(dot, `    "sales.Order" -> "sales.Base" [arrowhead = empty]`)
		require.Contains(dot, `    "sales.Order" -> "sales.Billing" [style = dashed]`)
		require.Contains(dot, `    "sales.Order" -> "sales.Address" [dir = both, arrowtail = diamond, label = "addresses", taillabel = "1..1", headlabel = "0..*"]`)
		require.Contains(dot, `    "sales.Order" -> "sales.Customer" [label = "customer", taillabel = "0..*", headlabel = "0..1"]`)
		require.NotContains(dot, `"sales.Customer" -> "sales.Order"`)
		require.NotContains(dot, `-> "Status"`)
	})

	t.Run("deterministic", func(t *testing.T) {
		again := bytes.Buffer{}
		require.NoError(WriteDOT(&again, buildShop(t)))
		require.Equal(dot, again.String())
	})
}

func TestWriteDOT_Options(t *testing.T) {
	require := require.New(t)
	m := buildShop(t)

	t.Run("subsumed edges", func(t *testing.T) {
		out := bytes.Buffer{}
		require.NoError(WriteDOT(&out, m, ShowSubsumed()))
		require.Contains(out.String(), `"sales.Customer" -> "sales.Order" [label = "orders", taillabel = "0..1", headlabel = "0..*", style = dotted]`)
	})

	t.Run("features hidden", func(t *testing.T) {
		out := bytes.Buffer{}
		require.NoError(WriteDOT(&out, m, HideFeatures()))
		require.Contains(out.String(), `"sales.Order" [label = "{Order}", style = "filled"]`)
		require.NotContains(out.String(), "id: int")
	})
}

type failingWriter struct {
	left int
}

var errWrite = errors.New("disk full")

func (f *failingWriter) Write(p []byte) (int, error) {
	if f.left <= 0 {
		return 0, errWrite
	}
	f.left--
	return len(p), nil
}

func TestWriteDOT_WriteError(t *testing.T) {
	require := require.New(t)
	m := buildShop(t)

	for _, left := range []int{0, 1, 10} {
		err := WriteDOT(&failingWriter{left: left}, m)
		require.ErrorIs(err, errWrite)
	}
}

func TestEscape(t *testing.T) {
	require := require.New(t)
	require.Equal(`a\{b\}\|\<c\>\"`, escape(`a{b}|<c>"`))
	require.Equal(`\\l`, escape(`\l`))
	require.Equal("0..*", bounds(0, model.Unbounded))
	require.Equal("1..1", bounds(1, 1))
}
