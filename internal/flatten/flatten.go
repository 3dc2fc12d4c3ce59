// Package flatten turns an IR subtree into flat rows for table-oriented generators.
package flatten

import (
	"math"

	"github.com/keboola/go-utils/pkg/orderedmap"

	"github.com/mcncl/jsonconv/internal/models"
)

// NoDepthLimit flattens nested objects at any depth.
const NoDepthLimit = math.MaxInt

// KeySeparator joins a parent key and a nested key.
const KeySeparator = "."

// Row is one flat record: keys in first-seen order, values are scalars, nil,
// compact JSON strings for arrays, or untouched collections past maxDepth.
type Row = *orderedmap.OrderedMap

// Flatten converts node into a row set.
//
// An array yields one row per element that is an object; other elements are dropped.
// An object whose only entry holds an array is unwrapped and treated like that array.
// Any other object yields a single row, and a scalar yields {"value": scalar}.
func Flatten(node *models.Node, maxDepth int) []Row {
	switch node.Kind {
	case models.KindArray:
		return objectRows(node.Array(), maxDepth)
	case models.KindObject:
		obj := node.Object()
		if obj.Len() == 1 {
			only, _ := obj.Get(obj.Keys()[0])
			if arr, ok := only.([]models.JSONValue); ok {
				return objectRows(arr, maxDepth)
			}
		}
		return []Row{FlattenObject(obj, 0, maxDepth)}
	default:
		row := orderedmap.New()
		row.Set("value", node.Value)
		return []Row{row}
	}
}

// FlattenObject flattens one object into a single level of dotted keys.
// Nested objects are expanded while depth < maxDepth; arrays below that depth
// are stored as compact JSON strings.
func FlattenObject(obj *orderedmap.OrderedMap, depth, maxDepth int) Row {
	row := orderedmap.New()
	for _, key := range obj.Keys() {
		value, _ := obj.Get(key)
		switch v := value.(type) {
		case nil:
			row.Set(key, nil)
		case *orderedmap.OrderedMap:
			if depth >= maxDepth {
				row.Set(key, v)
				continue
			}
			nested := FlattenObject(v, depth+1, maxDepth)
			for _, nestedKey := range nested.Keys() {
				nestedValue, _ := nested.Get(nestedKey)
				row.Set(key+KeySeparator+nestedKey, nestedValue)
			}
		case []models.JSONValue:
			if depth >= maxDepth {
				row.Set(key, v)
				continue
			}
			row.Set(key, models.Stringify(v))
		default:
			row.Set(key, v)
		}
	}
	return row
}

// Columns returns the union of keys across rows in first-seen order.
func Columns(rows []Row) []string {
	seen := make(map[string]struct{})
	columns := make([]string, 0)
	for _, row := range rows {
		for _, key := range row.Keys() {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			columns = append(columns, key)
		}
	}
	return columns
}

func objectRows(arr []models.JSONValue, maxDepth int) []Row {
	rows := make([]Row, 0, len(arr))
	for _, item := range arr {
		if obj, ok := item.(*orderedmap.OrderedMap); ok {
			rows = append(rows, FlattenObject(obj, 0, maxDepth))
		}
	}
	return rows
}
