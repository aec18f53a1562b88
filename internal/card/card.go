package card

import (
	"fmt"
	"strconv"
	"strings"
)

// Suit identifies one of the four French suits
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// Suits lists every suit in foundation order
var Suits = []Suit{Spades, Hearts, Diamonds, Clubs}

var suitCodes = map[Suit]string{
	Spades:   "S",
	Hearts:   "H",
	Diamonds: "D",
	Clubs:    "C",
}

var suitNames = map[Suit]string{
	Spades:   "Spades",
	Hearts:   "Hearts",
	Diamonds: "Diamonds",
	Clubs:    "Clubs",
}

var suitSymbols = map[Suit]string{
	Spades:   "♠",
	Hearts:   "♥",
	Diamonds: "♦",
	Clubs:    "♣",
}

// String returns the suit name, e.g. "Spades"
func (s Suit) String() string {
	if name, ok := suitNames[s]; ok {
		return name
	}
	return "Suit(" + strconv.Itoa(int(s)) + ")"
}

// Code returns the single-letter suit code
func (s Suit) Code() string {
	return suitCodes[s]
}

// Symbol returns the unicode suit glyph
func (s Suit) Symbol() string {
	if sym, ok := suitSymbols[s]; ok {
		return sym
	}
	return "•"
}

// Valid reports whether s is one of the four suits
func (s Suit) Valid() bool {
	_, ok := suitNames[s]
	return ok
}

// Red reports whether the suit is printed in red
func (s Suit) Red() bool {
	return s == Hearts || s == Diamonds
}

// ParseSuit accepts a suit code ("S"), name ("spades") or symbol ("♠")
func ParseSuit(v string) (Suit, error) {
	v = strings.TrimSpace(v)
	for _, s := range Suits {
		if strings.EqualFold(v, suitCodes[s]) || strings.EqualFold(v, suitNames[s]) || v == suitSymbols[s] {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown suit: %q", v)
}

// Rank is a card value from Ace (1) to King (13)
type Rank int

const (
	Ace   Rank = 1
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
)

// RanksPerSuit is the number of cards in each suit
const RanksPerSuit = 13

var rankLabels = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

var rankWords = map[Rank]string{
	Ace:   "ace",
	Jack:  "jack",
	Queen: "queen",
	King:  "king",
}

// Valid reports whether r is within Ace..King
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// String returns the short rank label, e.g. "A", "10", "Q"
func (r Rank) String() string {
	if r.Valid() {
		return rankLabels[r-1]
	}
	return strconv.Itoa(int(r))
}

// Word returns the lowercase rank word used in asset names ("ace", "7", "king")
func (r Rank) Word() string {
	if w, ok := rankWords[r]; ok {
		return w
	}
	return strconv.Itoa(int(r))
}

// ParseRank accepts "A", "1".."13", "J", "Q", "K" (and "T" for ten)
func ParseRank(v string) (Rank, error) {
	v = strings.ToUpper(strings.TrimSpace(v))
	switch v {
	case "A":
		return Ace, nil
	case "T":
		return 10, nil
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || !Rank(n).Valid() {
		return 0, fmt.Errorf("unknown rank: %q", v)
	}
	return Rank(n), nil
}

// Card represents one playing card. Cards are comparable values.
type Card struct {
	Suit Suit
	Rank Rank
}

// New returns the card of the given suit and rank
func New(s Suit, r Rank) Card {
	return Card{Suit: s, Rank: r}
}

// Valid reports whether the card is one of the 52 standard cards
func (c Card) Valid() bool {
	return c.Suit.Valid() && c.Rank.Valid()
}

// ID returns the canonical card id: suit code followed by numeric rank ("S1", "H12")
func (c Card) ID() string {
	return c.Suit.Code() + strconv.Itoa(int(c.Rank))
}

// Name returns the human readable name, e.g. "Queen of Diamonds"
func (c Card) Name() string {
	word := c.Rank.Word()
	if c.Rank > 1 && c.Rank < Jack {
		return fmt.Sprintf("%d of %s", c.Rank, c.Suit)
	}
	return fmt.Sprintf("%s of %s", strings.ToUpper(word[:1])+word[1:], c.Suit)
}

// Short returns the compact label with suit glyph, e.g. "Q♦"
func (c Card) Short() string {
	return c.Rank.String() + c.Suit.Symbol()
}

func (c Card) String() string {
	return c.Name()
}

// Parse reads a card id. Both suit-first ("S1", "H12", "DQ") and
// rank-first ("AS", "10H", "QD") forms are accepted, case-insensitively.
func Parse(id string) (Card, error) {
	id = strings.TrimSpace(id)
	if len(id) < 2 {
		return Card{}, fmt.Errorf("invalid card id: %q", id)
	}

	// Suit first
	if s, err := ParseSuit(id[:1]); err == nil {
		if r, err := ParseRank(id[1:]); err == nil {
			return New(s, r), nil
		}
	}

	// Rank first; the suit may be a multi-byte glyph
	for _, s := range Suits {
		for _, suffix := range []string{suitCodes[s], strings.ToLower(suitCodes[s]), suitSymbols[s]} {
			if strings.HasSuffix(id, suffix) {
				if r, err := ParseRank(strings.TrimSuffix(id, suffix)); err == nil {
					return New(s, r), nil
				}
			}
		}
	}

	return Card{}, fmt.Errorf("invalid card id: %q", id)
}

// All returns the 52 cards ordered by suit then rank
func All() []Card {
	cards := make([]Card, 0, len(Suits)*RanksPerSuit)
	for _, s := range Suits {
		for r := Ace; r <= King; r++ {
			cards = append(cards, New(s, r))
		}
	}
	return cards
}

// ImageCandidates returns the asset file names a renderer may try for the
// card, in order of preference.
func (c Card) ImageCandidates() []string {
	suit := strings.ToLower(c.Suit.String())
	return []string{
		fmt.Sprintf("%s_of_%s.png", c.Rank.Word(), suit),
		fmt.Sprintf("%d_of_%s.png", c.Rank, suit),
	}
}
