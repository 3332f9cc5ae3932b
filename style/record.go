package style

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Presentation attributes supported by a Record.
const (
	Fill           = "fill"
	FillRule       = "fill-rule"
	Stroke         = "stroke"
	StrokeWidth    = "stroke-width"
	StrokeLinecap  = "stroke-linecap"
	StrokeLinejoin = "stroke-linejoin"
	StrokeOpacity  = "stroke-opacity"
)

// ErrUnknownKey is matched by every *ValidationError.
var ErrUnknownKey = errors.New("style: unexpected style")

// ValidationError reports a key outside the fixed attribute set.
type ValidationError struct {
	Key string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("style: unexpected style: %s", e.Key)
}

func (e *ValidationError) Is(target error) bool { return target == ErrUnknownKey }

// Record holds the presentation attributes of one shape.
// The set of attributes is closed: see Keys.
type Record struct {
	Fill           string
	FillRule       string
	Stroke         string
	StrokeWidth    string
	StrokeLinecap  string
	StrokeLinejoin string
	StrokeOpacity  string
}

// DefaultRecord holds the value used for every attribute not overridden.
var DefaultRecord = Record{
	Fill:           "#cccccc",
	FillRule:       "evenodd",
	Stroke:         "#222222",
	StrokeWidth:    "2px",
	StrokeLinecap:  "butt",
	StrokeLinejoin: "miter",
	StrokeOpacity:  "1",
}

// fields is sorted by key, which is also the serialization order.
var fields = [...]struct {
	key string
	ptr func(*Record) *string
}{
	{Fill, func(r *Record) *string { return &r.Fill }},
	{FillRule, func(r *Record) *string { return &r.FillRule }},
	{Stroke, func(r *Record) *string { return &r.Stroke }},
	{StrokeLinecap, func(r *Record) *string { return &r.StrokeLinecap }},
	{StrokeLinejoin, func(r *Record) *string { return &r.StrokeLinejoin }},
	{StrokeOpacity, func(r *Record) *string { return &r.StrokeOpacity }},
	{StrokeWidth, func(r *Record) *string { return &r.StrokeWidth }},
}

// Keys returns the supported attribute names, in ascending order.
func Keys() []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.key
	}
	return out
}

// IsKey reports whether key is a supported attribute name.
func IsKey(key string) bool { return field(key) != nil }

func field(key string) func(*Record) *string {
	for _, f := range fields {
		if f.key == key {
			return f.ptr
		}
	}
	return nil
}

// NewRecord returns DefaultRecord updated with `overrides`.
// Values are formatted with fmt.Sprint, so numbers are accepted.
// An unknown key is reported as a *ValidationError; keys are checked
// in sorted order so the reported key does not depend on map iteration.
func NewRecord(overrides map[string]any) (Record, error) {
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	r := DefaultRecord
	for _, k := range keys {
		if err := r.Set(k, overrides[k]); err != nil {
			return Record{}, err
		}
	}
	return r, nil
}

// Set updates one attribute.
func (r *Record) Set(key string, value any) error {
	ptr := field(key)
	if ptr == nil {
		return &ValidationError{Key: key}
	}
	*ptr(r) = fmt.Sprint(value)
	return nil
}

// Get returns the value of one attribute.
func (r Record) Get(key string) (string, error) {
	ptr := field(key)
	if ptr == nil {
		return "", &ValidationError{Key: key}
	}
	return *ptr(&r), nil
}

// String renders the record as a style attribute value:
// key:value pairs sorted by key, joined by ';'.
func (r Record) String() string {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(f.key)
		b.WriteByte(':')
		b.WriteString(*f.ptr(&r))
	}
	return b.String()
}

// Parse reads a style attribute value such as "fill:#fff;stroke:none"
// on top of DefaultRecord. Empty declarations are ignored.
func Parse(s string) (Record, error) {
	r := DefaultRecord
	for _, pair := range strings.Split(s, ";") {
		if strings.TrimSpace(pair) == "" {
			continue
		}
		k, v, ok := strings.Cut(pair, ":")
		if !ok {
			return Record{}, fmt.Errorf("style: malformed declaration %q", pair)
		}
		if err := r.Set(strings.ToLower(strings.TrimSpace(k)), strings.TrimSpace(v)); err != nil {
			return Record{}, err
		}
	}
	return r, nil
}
