// Converts a YAML document to JSON, keeping the key order of the
// source and the integer, float, boolean and null types of its scalars.
package yamljson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Indent is the indentation used for nested structures.
const Indent = "  "

// ErrMultipleDocuments is returned when the input holds more than one document.
var ErrMultipleDocuments = errors.New("yamljson: expected a single document in the stream")

// ParseError wraps a YAML syntax error.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "yamljson: " + e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }

// UnsupportedError reports a YAML value with no JSON equivalent,
// such as .inf or a mapping used as a key.
type UnsupportedError struct {
	Line   int
	Reason string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("yamljson: line %d: %s", e.Line, e.Reason)
}

// Convert reads one YAML document from `r` and writes its JSON
// encoding to `w`, followed by a newline. An empty input is
// converted to null. Nothing is written when an error is returned.
func Convert(r io.Reader, w io.Writer) error {
	dec := yaml.NewDecoder(r)
	var doc yaml.Node
	err := dec.Decode(&doc)
	if err == io.EOF {
		_, err = io.WriteString(w, "null\n")
		return err
	}
	if err != nil {
		return &ParseError{Err: err}
	}
	var extra yaml.Node
	switch err := dec.Decode(&extra); {
	case err == nil:
		return ErrMultipleDocuments
	case err != io.EOF:
		return &ParseError{Err: err}
	}

	e := encoder{w: new(bytes.Buffer)}
	if err := e.value(&doc, 0); err != nil {
		return err
	}
	e.w.WriteByte('\n')
	_, err = w.Write(e.w.Bytes())
	return err
}

type encoder struct {
	w *bytes.Buffer
}

func (e *encoder) newline(depth int) {
	e.w.WriteByte('\n')
	for i := 0; i < depth; i++ {
		e.w.WriteString(Indent)
	}
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func (e *encoder) value(n *yaml.Node, depth int) error {
	n = resolve(n)
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			e.w.WriteString("null")
			return nil
		}
		return e.value(n.Content[0], depth)
	case yaml.SequenceNode:
		if len(n.Content) == 0 {
			e.w.WriteString("[]")
			return nil
		}
		e.w.WriteByte('[')
		for i, item := range n.Content {
			if i > 0 {
				e.w.WriteByte(',')
			}
			e.newline(depth + 1)
			if err := e.value(item, depth+1); err != nil {
				return err
			}
		}
		e.newline(depth)
		e.w.WriteByte(']')
		return nil
	case yaml.MappingNode:
		pairs, err := mappingPairs(n)
		if err != nil {
			return err
		}
		if len(pairs) == 0 {
			e.w.WriteString("{}")
			return nil
		}
		e.w.WriteByte('{')
		for i, p := range pairs {
			if i > 0 {
				e.w.WriteByte(',')
			}
			e.newline(depth + 1)
			e.w.WriteString(quote(p.key))
			e.w.WriteString(": ")
			if err := e.value(p.value, depth+1); err != nil {
				return err
			}
		}
		e.newline(depth)
		e.w.WriteByte('}')
		return nil
	case yaml.ScalarNode:
		s, _, err := scalar(n)
		if err != nil {
			return err
		}
		e.w.WriteString(s)
		return nil
	}
	return &UnsupportedError{Line: n.Line, Reason: fmt.Sprintf("unexpected node kind %d", n.Kind)}
}

type pair struct {
	key   string
	value *yaml.Node
}

// mappingPairs flattens `<<` merge keys: merged entries come first,
// a later occurrence of a key replaces the value of an earlier one
// but keeps its position.
func mappingPairs(n *yaml.Node) ([]pair, error) {
	var merged, explicit []pair
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := resolve(n.Content[i]), resolve(n.Content[i+1])
		if k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge" {
			var sources []*yaml.Node
			switch v.Kind {
			case yaml.MappingNode:
				sources = []*yaml.Node{v}
			case yaml.SequenceNode:
				// earlier mappings take precedence
				for j := len(v.Content) - 1; j >= 0; j-- {
					sources = append(sources, resolve(v.Content[j]))
				}
			}
			for _, src := range sources {
				if src.Kind != yaml.MappingNode {
					return nil, &UnsupportedError{Line: src.Line, Reason: "merge key needs a mapping"}
				}
				ps, err := mappingPairs(src)
				if err != nil {
					return nil, err
				}
				merged = append(merged, ps...)
			}
			continue
		}
		key, err := keyString(k)
		if err != nil {
			return nil, err
		}
		explicit = append(explicit, pair{key: key, value: v})
	}

	all := append(merged, explicit...)
	index := make(map[string]int, len(all))
	out := all[:0]
	for _, p := range all {
		if j, ok := index[p.key]; ok {
			out[j].value = p.value
			continue
		}
		index[p.key] = len(out)
		out = append(out, p)
	}
	return out, nil
}

// keyString returns the JSON object key for a mapping key:
// strings are kept, other scalars use their JSON text.
func keyString(k *yaml.Node) (string, error) {
	if k.Kind != yaml.ScalarNode {
		return "", &UnsupportedError{Line: k.Line, Reason: "mapping keys must be scalars"}
	}
	s, isString, err := scalar(k)
	if err != nil {
		return "", err
	}
	if isString {
		return k.Value, nil
	}
	return s, nil
}

// scalar returns the JSON text of `n`, and whether it is a string.
func scalar(n *yaml.Node) (string, bool, error) {
	switch n.ShortTag() {
	case "!!null":
		return "null", false, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return "", false, &ParseError{Err: err}
		}
		return strconv.FormatBool(b), false, nil
	case "!!int":
		if i, ok := new(big.Int).SetString(n.Value, 0); ok {
			return i.String(), false, nil
		}
		var i int64
		if err := n.Decode(&i); err != nil {
			return "", false, &ParseError{Err: err}
		}
		return strconv.FormatInt(i, 10), false, nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return "", false, &ParseError{Err: err}
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return "", false, &UnsupportedError{Line: n.Line, Reason: fmt.Sprintf("%s has no JSON representation", n.Value)}
		}
		return formatFloat(f), false, nil
	default: // !!str, !!timestamp, !!binary and custom tags
		return quote(n.Value), true, nil
	}
}

// formatFloat always keeps a float recognizable: 1 is written 1.0,
// and exponents are used outside of [1e-4, 1e16).
func formatFloat(f float64) string {
	e := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:])
	if f != 0 && (exp < -4 || exp >= 16) {
		return e
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

func quote(s string) string {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s) // strings always encode
	return strings.TrimSuffix(b.String(), "\n")
}
