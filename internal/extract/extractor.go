// Package extract implements the structural search for plugin payloads
// inside parsed scene-collection documents.
package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/RandomGgames/obschunk/internal/scene"
)

// ErrMalformedDocument indicates that a document violates the expected
// mapping/sequence/leaf shape, or nests deeper than the configured
// limit. It is a hard failure for that document.
var ErrMalformedDocument = errors.New("malformed document")

// DefaultMaxDepth is the nesting limit applied when no WithMaxDepth
// option is given. Scene collections are shallow in practice; the guard
// exists for corrupted or pathological input.
const DefaultMaxDepth = 1000

// Predicate reports whether a mapping node is a target filter entry.
type Predicate func(n *scene.Node) bool

// Extractor walks a document and collects payload values from matching
// filter entries.
type Extractor interface {
	// Extract returns the payload text of every matching mapping node,
	// in depth-first traversal order. Mapping children are visited in
	// the document's native key order, sequence children in index
	// order. A nil or leaf root yields an empty result. Matches missing
	// the payload key are skipped. The input tree is never modified.
	Extract(root *scene.Node) ([]string, error)
}

// Option configures an Extractor.
type Option func(*extractor)

// WithMaxDepth overrides the nesting limit. Non-positive values are
// ignored.
func WithMaxDepth(depth int) Option {
	return func(e *extractor) {
		if depth > 0 {
			e.maxDepth = depth
		}
	}
}

type extractor struct {
	pred       Predicate
	payloadKey string
	maxDepth   int
}

// New creates an Extractor that collects the payloadKey field from
// every mapping node accepted by pred.
func New(pred Predicate, payloadKey string, opts ...Option) Extractor {
	e := &extractor{
		pred:       pred,
		payloadKey: payloadKey,
		maxDepth:   DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *extractor) Extract(root *scene.Node) ([]string, error) {
	found := []string{}
	if root == nil {
		return found, nil
	}
	if err := e.walk(root, 1, &found); err != nil {
		return nil, err
	}
	return found, nil
}

// walk visits one node at the given depth. Depth counts nested
// containers only, with the root at 1; a document nested exactly
// maxDepth containers deep still succeeds.
func (e *extractor) walk(n *scene.Node, depth int, found *[]string) error {
	switch n.Kind {
	case scene.KindMapping:
		if depth > e.maxDepth {
			return fmt.Errorf("%w: nesting exceeds %d levels", ErrMalformedDocument, e.maxDepth)
		}
		if e.pred(n) {
			if payload, ok := n.Get(e.payloadKey); ok {
				*found = append(*found, payload.Text())
			}
		}
		// A match does not stop the descent: nested duplicate filter
		// entries below a matching node must still be found.
		for _, entry := range n.Entries {
			if err := e.walk(entry.Value, depth+1, found); err != nil {
				return err
			}
		}

	case scene.KindSequence:
		if depth > e.maxDepth {
			return fmt.Errorf("%w: nesting exceeds %d levels", ErrMalformedDocument, e.maxDepth)
		}
		for _, item := range n.Items {
			if err := e.walk(item, depth+1, found); err != nil {
				return err
			}
		}

	case scene.KindString, scene.KindNumber, scene.KindBool, scene.KindNull:
		// Leaves end the walk.

	default:
		return fmt.Errorf("%w: unexpected node kind %d", ErrMalformedDocument, int(n.Kind))
	}

	return nil
}

// FieldSuffix returns a Predicate that accepts mapping nodes whose
// key field is a string leaf ending in suffix. This is the concrete
// filter-entry test for VST plugins: the plugin_path field names the
// plugin DLL.
func FieldSuffix(key, suffix string) Predicate {
	return func(n *scene.Node) bool {
		field, ok := n.Get(key)
		if !ok || field.Kind != scene.KindString {
			return false
		}
		return strings.HasSuffix(field.Text(), suffix)
	}
}
