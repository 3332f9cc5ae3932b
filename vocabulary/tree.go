// Flattens a vocabulary tree (nested mappings of region names)
// into the set of labels used to select SVG elements.
package vocabulary

import (
	"iter"
	"sort"
)

// Value is the value attached to a key in a vocabulary tree:
// either a Mapping, a Sequence, or nil for an empty value
// (the key itself is then a leaf).
type Value interface {
	isValue()
}

// Mapping is an ordered mapping of keys to values.
type Mapping []Entry

// Sequence lists leaf names.
type Sequence []string

func (Mapping) isValue()  {}
func (Sequence) isValue() {}

// Entry is one key of a Mapping.
type Entry struct {
	Key   string
	Value Value // nil for an empty value
}

// Mode selects which labels are extracted from a tree.
type Mode uint8

const (
	ModeAll    Mode = iota // every key and sequence element
	ModeLeaves             // only terminal labels
)

func (m Mode) String() string {
	switch m {
	case ModeAll:
		return "all"
	case ModeLeaves:
		return "leaves"
	default:
		return "<unknown Mode>"
	}
}

// Labels returns AllLabels or LeafLabels according to `mode`.
func Labels(m Mapping, mode Mode) iter.Seq[string] {
	if mode == ModeLeaves {
		return LeafLabels(m)
	}
	return AllLabels(m)
}

type frame struct {
	m Mapping
	i int
}

// AllLabels yields every key of the tree in depth-first pre-order.
// A key is followed by the labels of its nested mapping, or by the
// elements of its sequence.
func AllLabels(m Mapping) iter.Seq[string] {
	return func(yield func(string) bool) {
		stack := []frame{{m: m}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.i >= len(top.m) {
				stack = stack[:len(stack)-1]
				continue
			}
			e := top.m[top.i]
			top.i++
			if !yield(e.Key) {
				return
			}
			switch v := e.Value.(type) {
			case Mapping:
				stack = append(stack, frame{m: v})
			case Sequence:
				for _, s := range v {
					if !yield(s) {
						return
					}
				}
			}
		}
	}
}

// LeafLabels yields the terminal labels of the tree, depth first:
// keys with an empty value, and the elements of non-empty sequences.
// Keys of non-empty mappings are never yielded.
func LeafLabels(m Mapping) iter.Seq[string] {
	return func(yield func(string) bool) {
		stack := []frame{{m: m}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.i >= len(top.m) {
				stack = stack[:len(stack)-1]
				continue
			}
			e := top.m[top.i]
			top.i++
			switch v := e.Value.(type) {
			case Mapping:
				if len(v) > 0 {
					stack = append(stack, frame{m: v})
					continue
				}
			case Sequence:
				if len(v) > 0 {
					for _, s := range v {
						if !yield(s) {
							return
						}
					}
					continue
				}
			}
			if !yield(e.Key) {
				return
			}
		}
	}
}

// LabelSet is a set of unique labels.
type LabelSet map[string]struct{}

// NewLabelSet returns a set holding `labels`.
func NewLabelSet(labels ...string) LabelSet {
	s := make(LabelSet, len(labels))
	for _, l := range labels {
		s[l] = struct{}{}
	}
	return s
}

// Collect drains `seq` into a set.
func Collect(seq iter.Seq[string]) LabelSet {
	s := LabelSet{}
	for l := range seq {
		s[l] = struct{}{}
	}
	return s
}

// Has reports whether `label` is in the set.
func (s LabelSet) Has(label string) bool {
	_, ok := s[label]
	return ok
}

// Sorted returns the labels in ascending order.
func (s LabelSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for l := range s {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
