package models

import (
	"github.com/keboola/go-utils/pkg/orderedmap"
)

// JSONValue is a decoded JSON value. The parser only ever produces:
// nil, bool, float64, string, []JSONValue and *orderedmap.OrderedMap.
type JSONValue = any

// Kind classifies a node of the intermediate representation.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindNull    Kind = "null"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
)

// IsScalar reports whether k is one of the four leaf kinds.
func (k Kind) IsScalar() bool {
	switch k {
	case KindString, KindNumber, KindBoolean, KindNull:
		return true
	default:
		return false
	}
}

// KindOf returns the kind of a decoded JSON value.
// Values of an unexpected Go type are treated as null.
func KindOf(v JSONValue) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBoolean
	case float64:
		return KindNumber
	case string:
		return KindString
	case []JSONValue:
		return KindArray
	case *orderedmap.OrderedMap:
		return KindObject
	default:
		return KindNull
	}
}

// Metadata holds lightweight facts recorded by the builder.
type Metadata struct {
	// IsRequired is always set by the builder; optionality inference is not implemented.
	IsRequired  bool
	Description string
	// Example is the scalar value itself, set for scalar nodes only.
	Example JSONValue
}

// Node is one node of the intermediate representation (IR).
//
// Object nodes keep one child per key, in key order. Array nodes keep at most one
// child, built from the first non-null element, which stands for the element schema
// of the whole array. Value is the original decoded value and is never mutated.
type Node struct {
	Kind     Kind
	Path     []string
	Value    JSONValue
	Children []*Node
	Metadata Metadata
}

// Name returns the last path segment, or "" for the root.
func (n *Node) Name() string {
	if len(n.Path) == 0 {
		return ""
	}
	return n.Path[len(n.Path)-1]
}

// Object returns the node value as an ordered map, or nil when the node is not an object.
func (n *Node) Object() *orderedmap.OrderedMap {
	obj, _ := n.Value.(*orderedmap.OrderedMap)
	return obj
}

// Array returns the node value as a slice, or nil when the node is not an array.
func (n *Node) Array() []JSONValue {
	arr, _ := n.Value.([]JSONValue)
	return arr
}
