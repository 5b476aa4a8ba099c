package keyfile

import (
	"errors"
	"testing"
)

func TestEmptyKeyWord(t *testing.T) {
	k := EmptyKeyWord()

	if k.IsCommented() {
		t.Error("expected empty keyword to be active")
	}
	if k.Name() != "" {
		t.Errorf("expected empty name, got %q", k.Name())
	}
	if k.Len() != 0 {
		t.Errorf("expected no cards, got %d", k.Len())
	}
}

func TestNewKeyWord(t *testing.T) {
	card := NewCard([]Field{mustField(t, "pid", "1", 0, nil, 10)})
	cards := []Card{card, Card{}}

	k := NewKeyWord("PART", cards, true)

	if k.Name() != "PART" {
		t.Errorf("expected name PART, got %q", k.Name())
	}
	if !k.IsCommented() {
		t.Error("expected keyword to be commented")
	}
	if k.Len() != 2 {
		t.Fatalf("expected 2 cards, got %d", k.Len())
	}
	got, err := k.Card(0)
	if err != nil {
		t.Fatalf("Card(0): %v", err)
	}
	if !got.Equal(card) {
		t.Error("expected first card to be preserved in order")
	}

	cards[0].Clear()
	if got, _ := k.Card(0); got.Len() != 1 {
		t.Error("keyword shares card storage with its input")
	}
}

func TestKeyWordCommentToggle(t *testing.T) {
	k := EmptyKeyWord()

	k.Comment()
	k.Comment()
	if !k.IsCommented() {
		t.Error("expected keyword to be commented")
	}

	k.Uncomment()
	k.Uncomment()
	if k.IsCommented() {
		t.Error("expected keyword to be active")
	}
}

func TestKeyWordClear(t *testing.T) {
	k := NewKeyWord("PART", []Card{NewCard([]Field{NewField()})}, false)

	k.Clear()

	if k.Name() != "" {
		t.Errorf("expected blank name, got %q", k.Name())
	}
	if k.Len() != 0 {
		t.Errorf("expected no cards, got %d", k.Len())
	}
	if !k.IsCommented() {
		t.Error("expected cleared keyword to be commented out")
	}
}

func TestKeyWordCardIndex(t *testing.T) {
	k := NewKeyWord("PART", []Card{{}}, false)

	if _, err := k.Card(1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
	if err := k.SetCard(-1, Card{}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}

	replacement := NewCard([]Field{mustField(t, "mid", "2", 0, nil, 10)})
	if err := k.SetCard(0, replacement); err != nil {
		t.Fatalf("SetCard: %v", err)
	}
	if got, _ := k.Card(0); !got.Equal(replacement) {
		t.Error("expected card to be replaced")
	}

	k.AddCard(Card{})
	if k.Len() != 2 {
		t.Errorf("expected 2 cards after AddCard, got %d", k.Len())
	}
}
