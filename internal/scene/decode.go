package scene

import (
	"fmt"

	"github.com/buger/jsonparser"
)

// Parse decodes a JSON scene-collection document into a Node tree.
// Mapping entries keep the order in which keys appear in the document,
// which is what makes extraction order deterministic.
//
// The returned tree aliases data; callers must not mutate the slice
// while the tree is in use.
func Parse(data []byte) (*Node, error) {
	value, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode scene document: %w", err)
	}
	node, err := build(value, dataType)
	if err != nil {
		return nil, fmt.Errorf("failed to decode scene document: %w", err)
	}
	return node, nil
}

// build converts one jsonparser value into a Node, recursing into
// objects and arrays.
func build(value []byte, dataType jsonparser.ValueType) (*Node, error) {
	switch dataType {
	case jsonparser.Object:
		node := &Node{Kind: KindMapping, raw: value}
		err := jsonparser.ObjectEach(value, func(key, v []byte, vt jsonparser.ValueType, _ int) error {
			k, err := jsonparser.ParseString(key)
			if err != nil {
				return fmt.Errorf("invalid object key %q: %w", key, err)
			}
			child, err := build(v, vt)
			if err != nil {
				return err
			}
			node.Entries = append(node.Entries, Entry{Key: k, Value: child})
			return nil
		})
		if err != nil {
			return nil, err
		}
		return node, nil

	case jsonparser.Array:
		node := &Node{Kind: KindSequence, raw: value}
		var buildErr error
		_, err := jsonparser.ArrayEach(value, func(v []byte, vt jsonparser.ValueType, _ int, itemErr error) {
			if buildErr != nil {
				return
			}
			if itemErr != nil {
				buildErr = itemErr
				return
			}
			child, err := build(v, vt)
			if err != nil {
				buildErr = err
				return
			}
			node.Items = append(node.Items, child)
		})
		if err != nil {
			return nil, err
		}
		if buildErr != nil {
			return nil, buildErr
		}
		return node, nil

	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return nil, fmt.Errorf("invalid string value %q: %w", value, err)
		}
		return &Node{Kind: KindString, text: s, raw: value}, nil

	case jsonparser.Number:
		return &Node{Kind: KindNumber, text: string(value), raw: value}, nil

	case jsonparser.Boolean:
		return &Node{Kind: KindBool, text: string(value), raw: value}, nil

	case jsonparser.Null:
		return &Node{Kind: KindNull, text: "null", raw: value}, nil

	default:
		return nil, fmt.Errorf("unexpected value type %s", dataType)
	}
}
