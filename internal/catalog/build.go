package catalog

import (
	"errors"

	"github.com/aidanlsb/autokey/internal/keyfile"
)

// Policy decides what BuildDeck does when a keyword cannot be instantiated.
type Policy int

const (
	// Abort stops at the first failing keyword and returns no deck.
	Abort Policy = iota
	// Skip leaves failing keywords out and reports them.
	Skip
)

func (p Policy) String() string {
	switch p {
	case Skip:
		return "skip"
	default:
		return "abort"
	}
}

// Builder instantiates keywords from a catalog.
type Builder struct {
	Catalog Catalog
	// Strict validates every field and rejects repeated records for a field
	// name instead of letting the last one win.
	Strict bool
}

// KeyWord instantiates the named keyword with one card per template, every
// field holding its catalog default. Failures are *keyfile.KeywordInstantiationError.
func (b Builder) KeyWord(name string) (keyfile.KeyWord, error) {
	templates, ok := b.Catalog.Lookup(name)
	if !ok {
		return keyfile.KeyWord{}, &keyfile.KeywordInstantiationError{KeyWord: name, Reason: "not in catalog"}
	}

	cards := make([]keyfile.Card, 0, len(templates))
	for _, tmpl := range templates {
		card, err := b.card(tmpl)
		if err != nil {
			return keyfile.KeyWord{}, &keyfile.KeywordInstantiationError{KeyWord: name, Err: err}
		}
		cards = append(cards, card)
	}
	return keyfile.NewKeyWord(name, cards, false), nil
}

func (b Builder) card(tmpl CardTemplate) (keyfile.Card, error) {
	specs := tmpl.Specs()
	fields := make([]keyfile.Field, 0, len(specs))
	for _, spec := range specs {
		f, err := spec.Field()
		if err != nil {
			return keyfile.Card{}, err
		}
		fields = append(fields, f)
	}

	if b.Strict {
		return keyfile.NewCardStrict(fields)
	}
	return keyfile.NewCard(fields), nil
}

// BuildDeck instantiates names in order into a deck with the given prefix.
// A keyword is either appended whole or not at all. Under Abort the first
// error is returned with a blank deck; under Skip the deck holds every
// keyword that succeeded and the joined errors describe the rest.
func (b Builder) BuildDeck(prefix string, names []string, policy Policy) (keyfile.Deck, error) {
	deck := keyfile.NewDeckWithPrefix(nil, prefix)
	var errs []error
	for _, name := range names {
		kw, err := b.KeyWord(name)
		if err != nil {
			if policy == Abort {
				return keyfile.BlankDeck(), err
			}
			errs = append(errs, err)
			continue
		}
		deck = deck.MergeKeyWord(kw)
	}
	return deck, errors.Join(errs...)
}
