package predictor

import (
	"encoding/json"
	"fmt"
	"sort"
)

// CategoryEncoder maps the labels of one field to dense codes 0..k-1. The code
// of a label is its position in Classes and never changes after construction.
type CategoryEncoder struct {
	classes []string
	codes   map[string]int
}

// NewCategoryEncoder builds an encoder with code i assigned to classes[i].
func NewCategoryEncoder(classes []string) (*CategoryEncoder, error) {
	e := &CategoryEncoder{
		classes: append([]string(nil), classes...),
		codes:   make(map[string]int, len(classes)),
	}
	for i, c := range e.classes {
		if _, dup := e.codes[c]; dup {
			return nil, fmt.Errorf("duplicate class %q", c)
		}
		e.codes[c] = i
	}
	return e, nil
}

// FitCategoryEncoder collects the distinct labels and assigns codes in
// lexicographic order, so the same label set always yields the same codes.
func FitCategoryEncoder(labels []string) *CategoryEncoder {
	seen := make(map[string]struct{}, len(labels))
	classes := make([]string, 0)
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		classes = append(classes, l)
	}
	sort.Strings(classes)
	e, _ := NewCategoryEncoder(classes) // classes are distinct
	return e
}

// Encode returns the code of label.
func (e *CategoryEncoder) Encode(label string) (int, bool) {
	c, ok := e.codes[label]
	return c, ok
}

// Classes returns the labels in code order.
func (e *CategoryEncoder) Classes() []string { return append([]string(nil), e.classes...) }

// Len is the number of known labels.
func (e *CategoryEncoder) Len() int { return len(e.classes) }

func (e *CategoryEncoder) MarshalJSON() ([]byte, error) { return json.Marshal(e.classes) }

func (e *CategoryEncoder) UnmarshalJSON(b []byte) error {
	var classes []string
	if err := json.Unmarshal(b, &classes); err != nil {
		return err
	}
	ne, err := NewCategoryEncoder(classes)
	if err != nil {
		return err
	}
	*e = *ne
	return nil
}

// EncodingTable holds one CategoryEncoder per categorical field.
type EncodingTable struct {
	encoders map[Field]*CategoryEncoder
}

// NewEncodingTable builds a table from explicit per-field class lists.
func NewEncodingTable(classes map[Field][]string) (*EncodingTable, error) {
	t := &EncodingTable{encoders: make(map[Field]*CategoryEncoder, len(classes))}
	for f, cs := range classes {
		e, err := NewCategoryEncoder(cs)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f, err)
		}
		t.encoders[f] = e
	}
	return t, nil
}

// FitEncodingTable fits an encoder for every categorical column of schema
// over all records.
func FitEncodingTable(schema *Schema, records []Record) (*EncodingTable, error) {
	t := &EncodingTable{encoders: make(map[Field]*CategoryEncoder)}
	for _, f := range schema.Categorical() {
		labels := make([]string, len(records))
		for i, r := range records {
			v, ok := r.Value(f)
			if !ok {
				return nil, fmt.Errorf("row %d: %w", i, &MissingFieldError{Field: f})
			}
			labels[i] = v
		}
		t.encoders[f] = FitCategoryEncoder(labels)
	}
	return t, nil
}

// Encode returns the code of label for field. A label absent at fit time is an
// UnknownCategoryError.
func (t *EncodingTable) Encode(field Field, label string) (int, error) {
	if t == nil {
		return 0, ErrEncodingNotLoaded
	}
	e, ok := t.encoders[field]
	if !ok {
		return 0, fmt.Errorf("%w: %s has no encoder", ErrUnknownField, field)
	}
	code, ok := e.Encode(label)
	if !ok {
		return 0, &UnknownCategoryError{Field: field, Label: label}
	}
	return code, nil
}

// Labels returns the valid labels of field in code order.
func (t *EncodingTable) Labels(field Field) ([]string, bool) {
	if t == nil {
		return nil, false
	}
	e, ok := t.encoders[field]
	if !ok {
		return nil, false
	}
	return e.Classes(), true
}

// Fields returns the encoded fields in name order.
func (t *EncodingTable) Fields() []Field {
	if t == nil {
		return nil
	}
	out := make([]Field, 0, len(t.encoders))
	for f := range t.encoders {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Covers reports whether every categorical field of schema has an encoder.
func (t *EncodingTable) Covers(schema *Schema) error {
	if t == nil {
		return ErrEncodingNotLoaded
	}
	for _, f := range schema.Categorical() {
		e, ok := t.encoders[f]
		if !ok {
			return fmt.Errorf("encoding table has no entry for %s", f)
		}
		if e.Len() == 0 {
			return fmt.Errorf("encoding table entry for %s is empty", f)
		}
	}
	return nil
}

func (t *EncodingTable) MarshalJSON() ([]byte, error) { return json.Marshal(t.encoders) }

func (t *EncodingTable) UnmarshalJSON(b []byte) error {
	var enc map[Field]*CategoryEncoder
	if err := json.Unmarshal(b, &enc); err != nil {
		return err
	}
	for f, e := range enc {
		if e == nil {
			return fmt.Errorf("field %s: null encoder", f)
		}
	}
	t.encoders = enc
	return nil
}
