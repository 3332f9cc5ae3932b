package vocabulary

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrNotMapping is returned when the root of a vocabulary document
// is not a mapping.
var ErrNotMapping = errors.New("vocabulary: root must be a mapping")

// TypeError reports a value that is neither a mapping, a sequence
// of names, nor empty.
type TypeError struct {
	Line int    // in the source document
	Path string // dotted keys leading to the value
	Kind string // yaml kind or tag found
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("vocabulary: line %d: %s: unexpected %s", e.Line, e.Path, e.Kind)
}

// LoadFile reads the vocabulary document at `path`.
func LoadFile(path string) (Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Load reads a YAML (or JSON) vocabulary document.
// Key order in the document is the iteration order of the tree.
func Load(r io.Reader) (Mapping, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, ErrNotMapping
		}
		return nil, fmt.Errorf("vocabulary: %w", err)
	}
	return FromNode(&doc)
}

// Parse is like Load, reading from memory.
func Parse(data []byte) (Mapping, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("vocabulary: %w", err)
	}
	if doc.Kind == 0 {
		return nil, ErrNotMapping
	}
	return FromNode(&doc)
}

// FromNode builds a tree from a decoded YAML node.
// Document nodes and aliases are followed.
func FromNode(n *yaml.Node) (Mapping, error) {
	n = resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil, ErrNotMapping
	}
	return mappingFromNode(n, "")
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func mappingFromNode(n *yaml.Node, path string) (Mapping, error) {
	out := make(Mapping, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := resolve(n.Content[i]), resolve(n.Content[i+1])
		if k == nil || k.Kind != yaml.ScalarNode {
			return nil, &TypeError{Line: n.Content[i].Line, Path: path, Kind: "non-scalar key"}
		}
		keyPath := k.Value
		if path != "" {
			keyPath = path + "." + k.Value
		}
		entry := Entry{Key: k.Value}
		switch {
		case v == nil || isNull(v), v.Kind == yaml.ScalarNode && v.Value == "":
		case v.Kind == yaml.MappingNode:
			m, err := mappingFromNode(v, keyPath)
			if err != nil {
				return nil, err
			}
			entry.Value = m
		case v.Kind == yaml.SequenceNode:
			seq := make(Sequence, 0, len(v.Content))
			for _, item := range v.Content {
				item = resolve(item)
				if item == nil || item.Kind != yaml.ScalarNode || isNull(item) {
					return nil, &TypeError{Line: v.Line, Path: keyPath, Kind: "sequence item"}
				}
				seq = append(seq, item.Value)
			}
			entry.Value = seq
		default:
			return nil, &TypeError{Line: v.Line, Path: keyPath, Kind: "scalar " + v.ShortTag()}
		}
		out = append(out, entry)
	}
	return out, nil
}
