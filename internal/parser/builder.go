package parser

import (
	"github.com/keboola/go-utils/pkg/orderedmap"

	"github.com/mcncl/jsonconv/internal/models"
)

// Build converts a decoded JSON value into an IR node rooted at path.
// Recursion depth follows the nesting depth of the value.
func Build(value models.JSONValue, path []string) *models.Node {
	switch v := value.(type) {
	case nil:
		return buildScalar(nil, models.KindNull, path)
	case []models.JSONValue:
		return buildArray(v, path)
	case *orderedmap.OrderedMap:
		return buildObject(v, path)
	default:
		return buildScalar(v, models.KindOf(v), path)
	}
}

func buildObject(obj *orderedmap.OrderedMap, path []string) *models.Node {
	children := make([]*models.Node, 0, obj.Len())
	for _, key := range obj.Keys() {
		val, _ := obj.Get(key)
		children = append(children, Build(val, childPath(path, key)))
	}

	return &models.Node{
		Kind:     models.KindObject,
		Path:     path,
		Value:    obj,
		Children: children,
		Metadata: models.Metadata{IsRequired: true},
	}
}

// buildArray samples the first non-null element as the element schema of the array.
func buildArray(arr []models.JSONValue, path []string) *models.Node {
	children := make([]*models.Node, 0, 1)
	for _, item := range arr {
		if item != nil {
			children = append(children, Build(item, childPath(path, ArrayElementSegment)))
			break
		}
	}

	return &models.Node{
		Kind:     models.KindArray,
		Path:     path,
		Value:    arr,
		Children: children,
		Metadata: models.Metadata{IsRequired: true},
	}
}

func buildScalar(value models.JSONValue, kind models.Kind, path []string) *models.Node {
	return &models.Node{
		Kind:  kind,
		Path:  path,
		Value: value,
		Metadata: models.Metadata{
			IsRequired: true,
			Example:    value,
		},
	}
}

// childPath copies path so sibling nodes never share a backing array.
func childPath(path []string, segment string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, segment)
}
