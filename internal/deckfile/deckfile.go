// Package deckfile stores decks as YAML documents.
package deckfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/autokey/internal/atomicfile"
	"github.com/aidanlsb/autokey/internal/catalog"
	"github.com/aidanlsb/autokey/internal/keyfile"
)

// CurrentVersion is the document format version written by Save.
const CurrentVersion = 1

// Document is the on-disk form of a deck.
type Document struct {
	Version  int               `json:"version" yaml:"version"`
	Prefix   string            `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	KeyWords []KeyWordDocument `json:"keywords" yaml:"keywords"`
}

// KeyWordDocument is the on-disk form of a keyword.
type KeyWordDocument struct {
	Name      string         `json:"name" yaml:"name"`
	Commented bool           `json:"commented,omitempty" yaml:"commented,omitempty"`
	Cards     []CardDocument `json:"cards" yaml:"cards"`
}

// CardDocument lists a card's fields in position order.
type CardDocument struct {
	Fields []catalog.FieldSpec `json:"fields" yaml:"fields"`
}

// FromDeck converts a deck into its document form.
func FromDeck(deck keyfile.Deck) Document {
	doc := Document{Version: CurrentVersion, Prefix: deck.Prefix(), KeyWords: []KeyWordDocument{}}
	for _, kw := range deck.KeyWords() {
		kd := KeyWordDocument{Name: kw.Name(), Commented: kw.IsCommented(), Cards: []CardDocument{}}
		for _, card := range kw.Cards() {
			cd := CardDocument{Fields: []catalog.FieldSpec{}}
			for _, f := range card.Fields() {
				cd.Fields = append(cd.Fields, catalog.SpecFromField(f))
			}
			kd.Cards = append(kd.Cards, cd)
		}
		doc.KeyWords = append(doc.KeyWords, kd)
	}
	return doc
}

// Deck converts the document back into a deck.
func (d Document) Deck() (keyfile.Deck, error) {
	if d.Version > CurrentVersion {
		return keyfile.Deck{}, fmt.Errorf("deck format version %d is newer than supported version %d", d.Version, CurrentVersion)
	}

	keywords := make([]keyfile.KeyWord, 0, len(d.KeyWords))
	for _, kd := range d.KeyWords {
		cards := make([]keyfile.Card, 0, len(kd.Cards))
		for _, cd := range kd.Cards {
			fields := make([]keyfile.Field, 0, len(cd.Fields))
			for _, spec := range cd.Fields {
				f, err := spec.Field()
				if err != nil {
					return keyfile.Deck{}, fmt.Errorf("keyword %q: %w", kd.Name, err)
				}
				fields = append(fields, f)
			}
			cards = append(cards, keyfile.NewCard(fields))
		}
		keywords = append(keywords, keyfile.NewKeyWord(kd.Name, cards, kd.Commented))
	}
	return keyfile.NewDeckWithPrefix(keywords, d.Prefix), nil
}

// Encode writes deck as YAML.
func Encode(w io.Writer, deck keyfile.Deck) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(FromDeck(deck)); err != nil {
		return err
	}
	return enc.Close()
}

// Decode reads a deck from YAML.
func Decode(r io.Reader) (keyfile.Deck, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return keyfile.BlankDeck(), nil
		}
		return keyfile.Deck{}, err
	}
	return doc.Deck()
}

// Load reads the deck stored at path.
func Load(path string) (keyfile.Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return keyfile.Deck{}, fmt.Errorf("failed to read deck file %s: %w", path, err)
	}
	deck, err := Decode(bytes.NewReader(data))
	if err != nil {
		return keyfile.Deck{}, fmt.Errorf("failed to parse deck file %s: %w", path, err)
	}
	return deck, nil
}

// Save writes deck to path atomically.
func Save(path string, deck keyfile.Deck) error {
	err := atomicfile.Write(path, 0, func(w io.Writer) error {
		return Encode(w, deck)
	})
	if err != nil {
		return fmt.Errorf("failed to write deck file %s: %w", path, err)
	}
	return nil
}
