package keyfile

import (
	"fmt"
	"slices"
)

// Deck is the top-level document: an ordered sequence of keywords and a
// free-form prefix label.
type Deck struct {
	keywords []KeyWord
	prefix   string
}

// NewDeck creates a deck without a prefix.
func NewDeck(keywords []KeyWord) Deck {
	return NewDeckWithPrefix(keywords, "")
}

// NewDeckWithPrefix creates a deck with the given prefix.
func NewDeckWithPrefix(keywords []KeyWord, prefix string) Deck {
	return Deck{keywords: cloneKeyWords(keywords), prefix: prefix}
}

// BlankDeck returns a deck with no keywords and an empty prefix.
func BlankDeck() Deck {
	return Deck{}
}

func (d Deck) Prefix() string { return d.prefix }
func (d Deck) Len() int       { return len(d.keywords) }

// SetPrefix replaces the deck prefix.
func (d *Deck) SetPrefix(prefix string) {
	d.prefix = prefix
}

// KeyWords returns copies of the keywords in order.
func (d Deck) KeyWords() []KeyWord {
	return cloneKeyWords(d.keywords)
}

// Active returns copies of the keywords that are not commented out.
func (d Deck) Active() []KeyWord {
	var out []KeyWord
	for _, k := range d.keywords {
		if !k.isCommented {
			out = append(out, k.Clone())
		}
	}
	return out
}

// Find returns the index of the first keyword with the given name, or -1.
func (d Deck) Find(name string) int {
	return slices.IndexFunc(d.keywords, func(k KeyWord) bool { return k.keyword == name })
}

// KeyWordAt returns a copy of the keyword at index i.
func (d Deck) KeyWordAt(i int) (KeyWord, error) {
	if i < 0 || i >= len(d.keywords) {
		return KeyWord{}, fmt.Errorf("keyword %d: %w", i, ErrIndexOutOfRange)
	}
	return d.keywords[i].Clone(), nil
}

// Modify applies fn to the keyword at index i in place.
func (d *Deck) Modify(i int, fn func(*KeyWord)) error {
	if i < 0 || i >= len(d.keywords) {
		return fmt.Errorf("keyword %d: %w", i, ErrIndexOutOfRange)
	}
	fn(&d.keywords[i])
	return nil
}

// ClearKeyWords removes every keyword and keeps the prefix.
func (d *Deck) ClearKeyWords() {
	d.keywords = nil
}

// Empty resets the deck to BlankDeck().
func (d *Deck) Empty() {
	d.ClearKeyWords()
	d.prefix = ""
}

// MergeDeck returns a new deck with the keywords of d followed by those of
// other. The prefix of d is kept and the prefix of other is dropped.
func (d Deck) MergeDeck(other Deck) Deck {
	keywords := make([]KeyWord, 0, len(d.keywords)+len(other.keywords))
	keywords = append(keywords, cloneKeyWords(d.keywords)...)
	keywords = append(keywords, cloneKeyWords(other.keywords)...)
	return Deck{keywords: keywords, prefix: d.prefix}
}

// MergeKeyWord returns a new deck with k appended.
func (d Deck) MergeKeyWord(k KeyWord) Deck {
	keywords := make([]KeyWord, 0, len(d.keywords)+1)
	keywords = append(keywords, cloneKeyWords(d.keywords)...)
	keywords = append(keywords, k.Clone())
	return Deck{keywords: keywords, prefix: d.prefix}
}

// Equal reports whether both decks have the same prefix and keywords.
func (d Deck) Equal(other Deck) bool {
	return d.prefix == other.prefix &&
		slices.EqualFunc(d.keywords, other.keywords, KeyWord.Equal)
}

func cloneKeyWords(keywords []KeyWord) []KeyWord {
	if keywords == nil {
		return nil
	}
	out := make([]KeyWord, len(keywords))
	for i, k := range keywords {
		out[i] = k.Clone()
	}
	return out
}
