// Package render writes decks as fixed-format keyword text.
package render

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/aidanlsb/autokey/internal/keyfile"
)

var (
	// ErrFieldOverflow is returned when a value does not fit its field width.
	ErrFieldOverflow = errors.New("value wider than field")
	// ErrFieldOverlap is returned when a field starts inside the columns of
	// the field before it.
	ErrFieldOverlap = errors.New("field overlaps previous field")
	// ErrBlankKeyWord is returned for an active keyword without a name.
	ErrBlankKeyWord = errors.New("active keyword has no name")
)

// Options control the written text.
type Options struct {
	// IncludeCommented writes commented keywords behind "$" instead of
	// leaving them out.
	IncludeCommented bool
	// FieldHeaders writes a "$#" line naming the fields above each card.
	FieldHeaders bool
}

// Write renders deck to w.
func Write(w io.Writer, deck keyfile.Deck, opts Options) error {
	bw := bufio.NewWriter(w)

	if deck.Prefix() != "" {
		fmt.Fprintf(bw, "$ prefix: %s\n", deck.Prefix())
	}
	bw.WriteString("*KEYWORD\n")

	for i, kw := range deck.KeyWords() {
		if kw.IsCommented() && !opts.IncludeCommented {
			continue
		}
		lines, err := keywordLines(kw, opts)
		if err != nil {
			return fmt.Errorf("keyword %d: %w", i, err)
		}
		for _, line := range lines {
			if kw.IsCommented() {
				line = "$" + line
			}
			bw.WriteString(line)
			bw.WriteByte('\n')
		}
	}

	bw.WriteString("*END\n")
	return bw.Flush()
}

// String renders deck to a string.
func String(deck keyfile.Deck, opts Options) (string, error) {
	var b strings.Builder
	if err := Write(&b, deck, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

func keywordLines(kw keyfile.KeyWord, opts Options) ([]string, error) {
	name := strings.TrimPrefix(kw.Name(), "*")
	if name == "" {
		if !kw.IsCommented() {
			return nil, ErrBlankKeyWord
		}
		name = "(cleared)"
	}

	lines := []string{"*" + name}
	for _, card := range kw.Cards() {
		fields := card.Fields()
		if opts.FieldHeaders {
			lines = append(lines, headerLine(fields))
		}
		line, err := CardLine(card)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// CardLine lays out the card's fields at their positions, each value
// right-aligned in its width. Widths and columns count runes.
func CardLine(card keyfile.Card) (string, error) {
	var b strings.Builder
	col := 0
	for _, f := range card.Fields() {
		value := f.Default()
		width := int(f.Width())
		position := int(f.Position())
		if utf8.RuneCountInString(value) > width {
			return "", fmt.Errorf("field %q: %q exceeds %d columns: %w", f.Name(), value, width, ErrFieldOverflow)
		}
		if col > position {
			return "", fmt.Errorf("field %q at column %d: previous field ends at column %d: %w", f.Name(), position, col, ErrFieldOverlap)
		}
		b.WriteString(strings.Repeat(" ", position-col))
		fmt.Fprintf(&b, "%*s", width, value)
		col = position + width
	}
	return strings.TrimRight(b.String(), " "), nil
}

// headerLine names the fields in their columns. The first column holds the
// "$#" marker, so names there are shortened to fit.
func headerLine(fields []keyfile.Field) string {
	var b strings.Builder
	b.WriteString("$#")
	for _, f := range fields {
		width := int(f.Width())
		start := int(f.Position())
		if b.Len() > start {
			width -= b.Len() - start
		} else {
			pad(&b, start)
		}
		if width <= 0 {
			continue
		}
		name := f.Name()
		if len(name) > width {
			name = name[:width]
		}
		fmt.Fprintf(&b, "%*s", width, name)
	}
	return strings.TrimRight(b.String(), " ")
}

func pad(b *strings.Builder, column int) {
	for b.Len() < column {
		b.WriteByte(' ')
	}
}
