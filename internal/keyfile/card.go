package keyfile

import (
	"cmp"
	"maps"
	"slices"
)

// Card is one fixed-format record: a set of fields keyed by name. The zero
// value is an empty card.
type Card struct {
	values map[string]Field
}

// NewCard folds fields into a card. When two fields share a name the later
// one wins, so defaults can be listed first and overridden after.
func NewCard(fields []Field) Card {
	c := Card{values: make(map[string]Field, len(fields))}
	for _, f := range fields {
		c.values[f.name] = f.Clone()
	}
	return c
}

// NewCardStrict is NewCard without the silent overwrite: a repeated field
// name, or a field that fails Validate, yields a *CardError and no card. For
// an invalid field the *FieldError is the CardError's cause.
func NewCardStrict(fields []Field) (Card, error) {
	c := Card{values: make(map[string]Field, len(fields))}
	for _, f := range fields {
		if err := f.Validate(); err != nil {
			return Card{}, &CardError{Field: f.name, Reason: "invalid field", Err: err}
		}
		if _, dup := c.values[f.name]; dup {
			return Card{}, &CardError{Field: f.name, Reason: "duplicate field name"}
		}
		c.values[f.name] = f.Clone()
	}
	return c, nil
}

// Len returns the number of fields on the card.
func (c Card) Len() int {
	return len(c.values)
}

// Get looks up a field by name.
func (c Card) Get(name string) (Field, bool) {
	f, ok := c.values[name]
	if !ok {
		return Field{}, false
	}
	return f.Clone(), true
}

// Set inserts f, replacing any field with the same name.
func (c *Card) Set(f Field) {
	if c.values == nil {
		c.values = make(map[string]Field)
	}
	c.values[f.name] = f.Clone()
}

// Delete removes the named field. It reports whether the field existed.
func (c *Card) Delete(name string) bool {
	if _, ok := c.values[name]; !ok {
		return false
	}
	delete(c.values, name)
	return true
}

// Clear removes every field.
func (c *Card) Clear() {
	clear(c.values)
}

// Names returns the field names in sorted order.
func (c Card) Names() []string {
	return slices.Sorted(maps.Keys(c.values))
}

// Fields returns copies of the fields ordered by position, then name.
func (c Card) Fields() []Field {
	out := make([]Field, 0, len(c.values))
	for _, f := range c.values {
		out = append(out, f.Clone())
	}
	slices.SortFunc(out, func(a, b Field) int {
		if n := cmp.Compare(a.position, b.position); n != 0 {
			return n
		}
		return cmp.Compare(a.name, b.name)
	})
	return out
}

// MergeCard returns a new card holding the fields of c and other. On a name
// collision the field from other wins.
func (c Card) MergeCard(other Card) Card {
	out := Card{values: make(map[string]Field, len(c.values)+len(other.values))}
	for name, f := range c.values {
		out.values[name] = f.Clone()
	}
	for name, f := range other.values {
		out.values[name] = f.Clone()
	}
	return out
}

// MergeField returns a copy of c with f inserted or overwritten.
func (c Card) MergeField(f Field) Card {
	out := c.Clone()
	out.Set(f)
	return out
}

// Clone returns a deep copy of c.
func (c Card) Clone() Card {
	out := Card{values: make(map[string]Field, len(c.values))}
	for name, f := range c.values {
		out.values[name] = f.Clone()
	}
	return out
}

// Equal reports whether both cards hold equal fields under the same names.
func (c Card) Equal(other Card) bool {
	return maps.EqualFunc(c.values, other.values, Field.Equal)
}
