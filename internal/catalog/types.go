// Package catalog loads keyword catalogs and instantiates keywords from them.
//
// A catalog maps each keyword name to an ordered list of card templates. A
// card template maps field names to one or more field records; the first
// record is the field definition and later records override it.
package catalog

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/aidanlsb/autokey/internal/keyfile"
)

// FieldSpec is a field record as it appears in a catalog file. Default is nil
// when the file has an explicit null.
type FieldSpec struct {
	Name     string   `json:"name" yaml:"name"`
	Default  *string  `json:"default" yaml:"default"`
	Help     string   `json:"help" yaml:"help,omitempty"`
	Position int8     `json:"position" yaml:"position"`
	Options  []string `json:"options" yaml:"options,omitempty"`
	Width    int8     `json:"width" yaml:"width,omitempty"`
}

// UnmarshalJSON accepts a default written as a string, a number, a boolean
// or null. Catalog exports commonly store numeric defaults unquoted.
func (s *FieldSpec) UnmarshalJSON(data []byte) error {
	type plain FieldSpec
	var raw struct {
		plain
		Default json.RawMessage `json:"default"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = FieldSpec(raw.plain)
	s.Default = nil

	def := bytes.TrimSpace(raw.Default)
	if len(def) == 0 || bytes.Equal(def, []byte("null")) {
		return nil
	}
	var str string
	if def[0] == '"' {
		if err := json.Unmarshal(def, &str); err != nil {
			return fmt.Errorf("field %q: default: %w", s.Name, err)
		}
	} else {
		var v any
		if err := json.Unmarshal(def, &v); err != nil {
			return fmt.Errorf("field %q: default: %w", s.Name, err)
		}
		switch v.(type) {
		case float64, bool:
			str = string(def)
		default:
			return fmt.Errorf("field %q: default must be a scalar", s.Name)
		}
	}
	s.Default = &str
	return nil
}

// DefaultValue returns the default, treating null as empty.
func (s FieldSpec) DefaultValue() string {
	if s.Default == nil {
		return ""
	}
	return *s.Default
}

// Field converts the record into a keyfile.Field.
func (s FieldSpec) Field() (keyfile.Field, error) {
	width := s.Width
	if width == 0 {
		width = keyfile.DefaultWidth
	}
	return keyfile.BuildField(s.Name, s.DefaultValue(), s.Help, s.Position, s.Options, width)
}

// SpecFromField is the inverse of FieldSpec.Field.
func SpecFromField(f keyfile.Field) FieldSpec {
	def := f.Default()
	return FieldSpec{
		Name:     f.Name(),
		Default:  &def,
		Help:     f.Help(),
		Position: f.Position(),
		Options:  f.Options(),
		Width:    f.Width(),
	}
}

// CardTemplate maps a field name to its records.
type CardTemplate map[string][]FieldSpec

// Specs flattens the template into records ordered by the position of each
// field's first record, then by field name. Records of one field stay in
// file order.
func (ct CardTemplate) Specs() []FieldSpec {
	names := slices.Collect(maps.Keys(ct))
	slices.SortFunc(names, func(a, b string) int {
		if n := cmp.Compare(firstPosition(ct[a]), firstPosition(ct[b])); n != 0 {
			return n
		}
		return cmp.Compare(a, b)
	})

	var out []FieldSpec
	for _, name := range names {
		out = append(out, ct[name]...)
	}
	return out
}

func firstPosition(specs []FieldSpec) int8 {
	if len(specs) == 0 {
		return 0
	}
	return specs[0].Position
}

// Catalog maps keyword names to their card templates.
type Catalog map[string][]CardTemplate

// Keywords returns the keyword names in sorted order.
func (c Catalog) Keywords() []string {
	return slices.Sorted(maps.Keys(c))
}

// Lookup returns the card templates for a keyword.
func (c Catalog) Lookup(name string) ([]CardTemplate, bool) {
	templates, ok := c[name]
	return templates, ok
}

// Normalize replaces null defaults with empty strings and zero widths with
// keyfile.DefaultWidth, in place.
func (c Catalog) Normalize() {
	for _, templates := range c {
		for _, tmpl := range templates {
			for name, specs := range tmpl {
				for i := range specs {
					if specs[i].Default == nil {
						empty := ""
						specs[i].Default = &empty
					}
					if specs[i].Width == 0 {
						specs[i].Width = keyfile.DefaultWidth
					}
				}
				tmpl[name] = specs
			}
		}
	}
}

// FieldCount returns the total number of field records in the catalog.
func (c Catalog) FieldCount() int {
	n := 0
	for _, templates := range c {
		for _, tmpl := range templates {
			for _, specs := range tmpl {
				n += len(specs)
			}
		}
	}
	return n
}
