package board

import (
	"strconv"
	"strings"

	"github.com/arcanaland/patience/internal/card"
)

// PileID names a pile on the board: "t1".."tN" for tableau piles,
// "fS", "fH", "fD", "fC" for foundations, "discard" and "deck" for the
// utility piles.
type PileID string

const (
	// Discard is the discard utility pile
	Discard PileID = "discard"
	// Stash is the deck-zone utility pile where cards can be parked face up
	Stash PileID = "deck"
	// Undealt is the pseudo-pile of cards not yet dealt. It is never a
	// destination.
	Undealt PileID = "undealt"
)

// TableauID returns the id of the n-th tableau pile, counting from 1
func TableauID(n int) PileID {
	return PileID("t" + strconv.Itoa(n))
}

// FoundationID returns the id of the suit's foundation
func FoundationID(s card.Suit) PileID {
	return PileID("f" + s.Code())
}

// ParsePileID normalises user input such as "T3", "fh", "hearts" or "Discard"
func ParsePileID(v string) PileID {
	v = strings.TrimSpace(v)
	lower := strings.ToLower(v)
	switch lower {
	case string(Discard), string(Stash), string(Undealt):
		return PileID(lower)
	}
	if strings.HasPrefix(lower, "t") {
		return PileID(lower)
	}
	if len(v) == 2 && (v[0] == 'f' || v[0] == 'F') {
		if s, err := card.ParseSuit(v[1:]); err == nil {
			return FoundationID(s)
		}
	}
	if s, err := card.ParseSuit(v); err == nil {
		return FoundationID(s)
	}
	return PileID(v)
}

// Kind is the placement discipline of a pile
type Kind int

const (
	KindTableau Kind = iota
	KindFoundation
	KindUtility
)

func (k Kind) String() string {
	switch k {
	case KindTableau:
		return "tableau"
	case KindFoundation:
		return "foundation"
	case KindUtility:
		return "utility"
	default:
		return "unknown"
	}
}

// PileKind is Tableau, Foundation(suit) or Utility. Suit is meaningful only
// for foundations.
type PileKind struct {
	Kind Kind
	Suit card.Suit
}

// Tableau returns the tableau pile kind
func Tableau() PileKind { return PileKind{Kind: KindTableau} }

// Foundation returns the foundation pile kind for the suit
func Foundation(s card.Suit) PileKind { return PileKind{Kind: KindFoundation, Suit: s} }

// Utility returns the utility pile kind
func Utility() PileKind { return PileKind{Kind: KindUtility} }

func (k PileKind) String() string {
	if k.Kind == KindFoundation {
		return k.Suit.String() + " foundation"
	}
	return k.Kind.String()
}

// Pile is an ordered sequence of cards, bottom first. Only the Board
// changes its contents.
type Pile struct {
	ID    PileID
	Kind  PileKind
	cards []card.Card
}

// Len returns the number of cards in the pile
func (p *Pile) Len() int {
	return len(p.cards)
}

// Cards returns a copy of the pile contents, bottom first
func (p *Pile) Cards() []card.Card {
	return append([]card.Card(nil), p.cards...)
}

// At returns the card at index i
func (p *Pile) At(i int) card.Card {
	return p.cards[i]
}

// Top returns the last card of the pile
func (p *Pile) Top() (card.Card, bool) {
	if len(p.cards) == 0 {
		return card.Card{}, false
	}
	return p.cards[len(p.cards)-1], true
}

// IndexOf returns the position of c in the pile or -1
func (p *Pile) IndexOf(c card.Card) int {
	for i, pc := range p.cards {
		if pc == c {
			return i
		}
	}
	return -1
}

func (p *Pile) remove(i int) card.Card {
	c := p.cards[i]
	p.cards = append(p.cards[:i], p.cards[i+1:]...)
	return c
}

func (p *Pile) insert(i int, c card.Card) {
	p.cards = append(p.cards, card.Card{})
	copy(p.cards[i+1:], p.cards[i:])
	p.cards[i] = c
}
