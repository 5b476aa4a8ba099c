// Package keyfile models keyword decks: fields compose into cards, cards into
// keywords and keywords into decks.
//
// Every type here is a plain value. Merge methods never mutate their operands
// and never share maps or slices with them; Clear, Update, Comment and the
// other pointer-receiver methods mutate in place and are not safe for
// concurrent use on the same value.
package keyfile

import (
	"fmt"
	"slices"
)

// DefaultWidth is the column width of a field when none is given.
const DefaultWidth int8 = 10

// Field is a single named, fixed-width datum. The name may be empty for
// blank fields.
type Field struct {
	name     string
	def      string
	help     string
	position int8
	options  []string
	width    int8
}

// NewField returns the default field: empty strings, position 0, no options
// and a width of DefaultWidth.
func NewField() Field {
	return Field{width: DefaultWidth}
}

// BuildField creates a field from all of its attributes. It does not validate
// today; callers that need validation use Validate, and any future check here
// will surface as a *FieldError.
func BuildField(name, def, help string, position int8, options []string, width int8) (Field, error) {
	return Field{
		name:     name,
		def:      def,
		help:     help,
		position: position,
		options:  slices.Clone(options),
		width:    width,
	}, nil
}

func (f Field) Name() string      { return f.name }
func (f Field) Default() string   { return f.def }
func (f Field) Help() string      { return f.help }
func (f Field) Position() int8    { return f.position }
func (f Field) Width() int8       { return f.width }
func (f Field) Options() []string { return slices.Clone(f.options) }

// Clear resets f to NewField().
func (f *Field) Clear() {
	f.Update(NewField())
}

// Update replaces every attribute of f with those of other.
func (f *Field) Update(other Field) {
	*f = other.Clone()
}

// WithDefault returns a copy of f whose default value is v.
func (f Field) WithDefault(v string) Field {
	out := f.Clone()
	out.def = v
	return out
}

// Clone returns a deep copy of f.
func (f Field) Clone() Field {
	f.options = slices.Clone(f.options)
	return f
}

// Equal reports whether f and other match on every attribute. A nil and an
// empty options list are equal.
func (f Field) Equal(other Field) bool {
	return f.name == other.name &&
		f.def == other.def &&
		f.help == other.help &&
		f.position == other.position &&
		f.width == other.width &&
		slices.Equal(f.options, other.options)
}

// Allows reports whether v is an acceptable value. Fields without options
// accept anything.
func (f Field) Allows(v string) bool {
	if len(f.options) == 0 {
		return true
	}
	return slices.Contains(f.options, v)
}

// Validate checks the attribute combination without modifying f.
func (f Field) Validate() error {
	if f.width <= 0 {
		return &FieldError{Field: f.name, Reason: "width must be positive"}
	}
	if f.position < 0 {
		return &FieldError{Field: f.name, Reason: "position must not be negative"}
	}
	if f.def != "" && !f.Allows(f.def) {
		return &FieldError{Field: f.name, Reason: fmt.Sprintf("default %q is not one of %v", f.def, f.options)}
	}
	return nil
}
