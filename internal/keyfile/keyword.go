package keyfile

import (
	"fmt"
	"slices"
)

// KeyWord is a named, ordered sequence of cards. A commented keyword is
// inactive and is left out when the deck is written.
type KeyWord struct {
	keyword     string
	cards       []Card
	isCommented bool
}

// NewKeyWord creates a keyword from its parts.
func NewKeyWord(keyword string, cards []Card, isCommented bool) KeyWord {
	return KeyWord{
		keyword:     keyword,
		cards:       cloneCards(cards),
		isCommented: isCommented,
	}
}

// EmptyKeyWord returns an active keyword with no name and no cards.
func EmptyKeyWord() KeyWord {
	return KeyWord{}
}

func (k KeyWord) Name() string      { return k.keyword }
func (k KeyWord) IsCommented() bool { return k.isCommented }
func (k KeyWord) Len() int          { return len(k.cards) }

// Cards returns copies of the cards in order.
func (k KeyWord) Cards() []Card {
	return cloneCards(k.cards)
}

// Card returns a copy of the card at index i.
func (k KeyWord) Card(i int) (Card, error) {
	if i < 0 || i >= len(k.cards) {
		return Card{}, fmt.Errorf("card %d of keyword %q: %w", i, k.keyword, ErrIndexOutOfRange)
	}
	return k.cards[i].Clone(), nil
}

// SetCard replaces the card at index i.
func (k *KeyWord) SetCard(i int, c Card) error {
	if i < 0 || i >= len(k.cards) {
		return fmt.Errorf("card %d of keyword %q: %w", i, k.keyword, ErrIndexOutOfRange)
	}
	k.cards[i] = c.Clone()
	return nil
}

// AddCard appends c to the keyword.
func (k *KeyWord) AddCard(c Card) {
	k.cards = append(k.cards, c.Clone())
}

// Comment marks the keyword inactive.
func (k *KeyWord) Comment() {
	k.isCommented = true
}

// Uncomment marks the keyword active.
func (k *KeyWord) Uncomment() {
	k.isCommented = false
}

// Clear drops the cards and the name, and leaves the keyword commented out:
// a cleared keyword has nothing to emit.
func (k *KeyWord) Clear() {
	k.cards = nil
	k.keyword = ""
	k.isCommented = true
}

// Clone returns a deep copy of k.
func (k KeyWord) Clone() KeyWord {
	k.cards = cloneCards(k.cards)
	return k
}

// Equal reports whether both keywords have the same name, flag and cards.
func (k KeyWord) Equal(other KeyWord) bool {
	return k.keyword == other.keyword &&
		k.isCommented == other.isCommented &&
		slices.EqualFunc(k.cards, other.cards, Card.Equal)
}

func cloneCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	out := make([]Card, len(cards))
	for i, c := range cards {
		out[i] = c.Clone()
	}
	return out
}
