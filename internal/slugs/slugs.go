// Package slugs derives file names from deck prefixes.
package slugs

import (
	"strings"

	goslug "github.com/gosimple/slug"
)

// DeckExt is the extension of saved deck files.
const DeckExt = ".deck.yaml"

// DeckFileName turns a deck prefix into a file name such as
// "front-crash.deck.yaml". An empty or unsluggable prefix yields "deck".
func DeckFileName(prefix string) string {
	s := goslug.Make(strings.TrimSpace(prefix))
	if s == "" {
		s = "deck"
	}
	return s + DeckExt
}

// RenderFileName returns the keyword-text file name for a deck file,
// replacing DeckExt (or any extension) with ".k".
func RenderFileName(deckPath string) string {
	if strings.HasSuffix(deckPath, DeckExt) {
		return strings.TrimSuffix(deckPath, DeckExt) + ".k"
	}
	if i := strings.LastIndexByte(deckPath, '.'); i > strings.LastIndexAny(deckPath, `/\`) {
		return deckPath[:i] + ".k"
	}
	return deckPath + ".k"
}
