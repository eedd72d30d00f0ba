// Package yamldoc reads YAML (and therefore JSON) input as ordered documents.
//
// Mapping order is preserved. Scalars become plain Go values (string, int,
// float64, bool, nil) for the encoder's coercion policy to map, except for
// the extended JSON wrappers below, which become typed values directly:
//
//	{"$oid": "<24 hex digits>"}        ObjectID
//	{"$date": "<RFC 3339>"}            DateTime
//	{"$numberInt": "<decimal>"}        Int32
//	{"$numberLong": "<decimal>"}       Int64
//	{"$numberDouble": "<decimal>"}     Double
//	{"$uuid": "<canonical uuid>"}      Binary subtype 4
//	{"$minKey": 1}, {"$maxKey": 1}     MinKey, MaxKey
package yamldoc

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/docwire/document"
	"github.com/arloliu/docwire/objectid"
	"github.com/arloliu/docwire/value"
)

// ErrNotDocument is returned when a top-level YAML value is not a mapping.
var ErrNotDocument = errors.New("yamldoc: top-level value is not a mapping")

// Decode reads every YAML document in r. A top-level sequence contributes
// one document per element.
func Decode(r io.Reader) ([]document.D, error) {
	dec := yaml.NewDecoder(r)

	var out []document.D
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("invalid yaml: %w", err)
		}

		docs, err := topLevel(&node)
		if err != nil {
			return nil, err
		}
		out = append(out, docs...)
	}
}

func topLevel(node *yaml.Node) ([]document.D, error) {
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil, nil
		}
		node = node.Content[0]
	}
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		return nil, nil
	}

	switch node.Kind { //nolint:exhaustive
	case yaml.MappingNode:
		doc, err := mapping(node)
		if err != nil {
			return nil, err
		}

		return []document.D{doc}, nil
	case yaml.SequenceNode:
		out := make([]document.D, 0, len(node.Content))
		for _, item := range node.Content {
			item = resolveAlias(item)
			if item.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("%w: line %d", ErrNotDocument, item.Line)
			}
			doc, err := mapping(item)
			if err != nil {
				return nil, err
			}
			out = append(out, doc)
		}

		return out, nil
	default:
		return nil, fmt.Errorf("%w: line %d", ErrNotDocument, node.Line)
	}
}

func mapping(node *yaml.Node) (document.D, error) {
	doc := make(document.D, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		val, err := convert(v)
		if err != nil {
			return nil, err
		}
		doc = append(doc, document.E{Key: k.Value, Value: val})
	}

	return doc, nil
}

func convert(node *yaml.Node) (any, error) {
	node = resolveAlias(node)

	switch node.Kind { //nolint:exhaustive
	case yaml.MappingNode:
		if len(node.Content) == 2 {
			if v, ok, err := extended(node.Content[0].Value, node.Content[1]); ok || err != nil {
				return v, err
			}
		}

		return mapping(node)
	case yaml.SequenceNode:
		arr := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := convert(item)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}

		return arr, nil
	case yaml.ScalarNode:
		return scalar(node)
	default:
		return nil, fmt.Errorf("yamldoc: unsupported node at line %d", node.Line)
	}
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}

	return node
}

func scalar(node *yaml.Node) (any, error) {
	switch node.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, err
		}

		return b, nil
	case "!!int":
		var n int64
		if err := node.Decode(&n); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}

		return n, nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, err
		}

		return f, nil
	case "!!timestamp":
		var t time.Time
		if err := node.Decode(&t); err != nil {
			return nil, err
		}

		return t, nil
	default:
		return node.Value, nil
	}
}

func extended(key string, node *yaml.Node) (value.Value, bool, error) {
	wrap := func(err error) error {
		return fmt.Errorf("line %d: invalid %s: %w", node.Line, key, err)
	}

	switch key {
	case "$oid":
		id, err := objectid.FromHex(node.Value)
		if err != nil {
			return nil, true, wrap(err)
		}

		return value.ObjectID(id), true, nil
	case "$date":
		t, err := time.Parse(time.RFC3339Nano, node.Value)
		if err != nil {
			return nil, true, wrap(err)
		}

		return value.NewDateTime(t), true, nil
	case "$numberInt":
		n, err := strconv.ParseInt(node.Value, 10, 32)
		if err != nil {
			return nil, true, wrap(err)
		}

		return value.Int32(n), true, nil
	case "$numberLong":
		n, err := strconv.ParseInt(node.Value, 10, 64)
		if err != nil {
			return nil, true, wrap(err)
		}

		return value.Int64(n), true, nil
	case "$numberDouble":
		f, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return nil, true, wrap(err)
		}

		return value.Double(f), true, nil
	case "$uuid":
		u, err := uuid.Parse(node.Value)
		if err != nil {
			return nil, true, wrap(err)
		}

		return value.UUID(u), true, nil
	case "$minKey":
		return value.MinKey{}, true, nil
	case "$maxKey":
		return value.MaxKey{}, true, nil
	default:
		return nil, false, nil
	}
}
