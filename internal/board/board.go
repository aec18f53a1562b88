package board

import (
	"fmt"

	"github.com/arcanaland/patience/internal/apperrors"
	"github.com/arcanaland/patience/internal/card"
	"github.com/arcanaland/patience/internal/deck"
)

// Board is the authoritative record of where every card sits: the tableau,
// foundation and utility piles plus the undealt deck. Apply is the only way
// pile contents change once the board is built.
type Board struct {
	piles   map[PileID]*Pile
	order   []PileID
	tableau []PileID
	undealt []card.Card
}

// Setup describes an arbitrary starting position
type Setup struct {
	Tableau     [][]card.Card
	Foundations map[card.Suit][]card.Card
	Discard     []card.Card
	Stash       []card.Card
	Undealt     []card.Card
}

// New builds a board from a setup. It rejects invalid or duplicated cards
// but does not require all 52 to be present.
func New(s Setup) (*Board, error) {
	if len(s.Tableau) == 0 {
		return nil, apperrors.InvalidLayout("no tableau piles")
	}

	b := &Board{piles: make(map[PileID]*Pile)}
	add := func(id PileID, kind PileKind, cards []card.Card) {
		b.piles[id] = &Pile{ID: id, Kind: kind, cards: append([]card.Card(nil), cards...)}
		b.order = append(b.order, id)
	}

	for i, cards := range s.Tableau {
		id := TableauID(i + 1)
		add(id, Tableau(), cards)
		b.tableau = append(b.tableau, id)
	}
	for _, suit := range card.Suits {
		add(FoundationID(suit), Foundation(suit), s.Foundations[suit])
	}
	add(Discard, Utility(), s.Discard)
	add(Stash, Utility(), s.Stash)
	b.undealt = append([]card.Card(nil), s.Undealt...)

	seen := make(map[card.Card]PileID)
	check := func(id PileID, cards []card.Card) error {
		for _, c := range cards {
			if !c.Valid() {
				return fmt.Errorf("invalid card %+v in %s", c, id)
			}
			if prev, dup := seen[c]; dup {
				return fmt.Errorf("card %s appears in both %s and %s", c.ID(), prev, id)
			}
			seen[c] = id
		}
		return nil
	}
	for _, id := range b.order {
		if err := check(id, b.piles[id].cards); err != nil {
			return nil, err
		}
	}
	if err := check(Undealt, b.undealt); err != nil {
		return nil, err
	}

	return b, nil
}

// Deal builds the board for a fresh game: cards are dealt into the tableau
// following the layout and the rest stay undealt.
func Deal(cards []card.Card, layout deck.Layout) (*Board, error) {
	tableau, rest, err := deck.DealInitial(cards, layout)
	if err != nil {
		return nil, err
	}
	return New(Setup{Tableau: tableau, Undealt: rest})
}

// Pile returns the pile with the given id
func (b *Board) Pile(id PileID) (*Pile, error) {
	p, ok := b.piles[id]
	if !ok {
		return nil, apperrors.UnknownPile(string(id))
	}
	return p, nil
}

// PileIDs returns every pile id in display order: tableau, foundations,
// discard, deck.
func (b *Board) PileIDs() []PileID {
	return append([]PileID(nil), b.order...)
}

// TableauIDs returns the tableau pile ids left to right
func (b *Board) TableauIDs() []PileID {
	return append([]PileID(nil), b.tableau...)
}

// Undealt returns a copy of the undealt deck, next card first
func (b *Board) Undealt() []card.Card {
	return append([]card.Card(nil), b.undealt...)
}

// UndealtLen returns the number of cards still undealt
func (b *Board) UndealtLen() int {
	return len(b.undealt)
}

// Locate finds the pile and index holding c. Undealt cards report the
// Undealt pseudo-pile.
func (b *Board) Locate(c card.Card) (PileID, int, bool) {
	for _, id := range b.order {
		if i := b.piles[id].IndexOf(c); i >= 0 {
			return id, i, true
		}
	}
	for i, u := range b.undealt {
		if u == c {
			return Undealt, i, true
		}
	}
	return "", -1, false
}

// Foundation returns the foundation pile of a suit
func (b *Board) Foundation(s card.Suit) *Pile {
	return b.piles[FoundationID(s)]
}

// RequiredNextRank returns the rank the suit's foundation accepts next.
// A complete foundation reports King+1.
func (b *Board) RequiredNextRank(s card.Suit) card.Rank {
	return card.Rank(b.Foundation(s).Len() + 1)
}

// RequiredNext returns the card the suit's foundation accepts next, or false
// once the foundation is complete.
func (b *Board) RequiredNext(s card.Suit) (card.Card, bool) {
	r := b.RequiredNextRank(s)
	if !r.Valid() {
		return card.Card{}, false
	}
	return card.New(s, r), true
}

// FoundationTotal counts the cards on all foundations
func (b *Board) FoundationTotal() int {
	total := 0
	for _, s := range card.Suits {
		total += b.Foundation(s).Len()
	}
	return total
}

// IsWon reports whether every foundation holds all thirteen cards
func (b *Board) IsWon() bool {
	for _, s := range card.Suits {
		if b.Foundation(s).Len() != card.RanksPerSuit {
			return false
		}
	}
	return true
}

// AutoMoveSources returns the piles scanned for auto-moves, in scan order:
// tableau left to right, then discard, then the deck zone.
func (b *Board) AutoMoveSources() []PileID {
	return append(b.TableauIDs(), Discard, Stash)
}

// FindFirstAutoMovable returns the first card, scanning AutoMoveSources
// bottom to top, that its foundation accepts next.
func (b *Board) FindFirstAutoMovable() (card.Card, PileID, bool) {
	for _, id := range b.AutoMoveSources() {
		for _, c := range b.piles[id].cards {
			if c.Rank == b.RequiredNextRank(c.Suit) {
				return c, FoundationID(c.Suit), true
			}
		}
	}
	return card.Card{}, "", false
}

// CompletedRun reports whether a tableau pile holds exactly one whole suit
// in ascending order, Ace at the bottom.
func (b *Board) CompletedRun(id PileID) (card.Suit, bool) {
	p, ok := b.piles[id]
	if !ok || p.Kind.Kind != KindTableau || p.Len() != card.RanksPerSuit {
		return 0, false
	}
	suit := p.cards[0].Suit
	for i, c := range p.cards {
		if c.Suit != suit || c.Rank != card.Rank(i+1) {
			return 0, false
		}
	}
	return suit, true
}

// FindCompletedRun returns the first tableau pile holding a completed run
func (b *Board) FindCompletedRun() (PileID, card.Suit, bool) {
	for _, id := range b.tableau {
		if suit, ok := b.CompletedRun(id); ok {
			return id, suit, true
		}
	}
	return "", 0, false
}

// Clone returns an independent copy of the board
func (b *Board) Clone() *Board {
	c := &Board{
		piles:   make(map[PileID]*Pile, len(b.piles)),
		order:   append([]PileID(nil), b.order...),
		tableau: append([]PileID(nil), b.tableau...),
		undealt: append([]card.Card(nil), b.undealt...),
	}
	for id, p := range b.piles {
		c.piles[id] = &Pile{ID: p.ID, Kind: p.Kind, cards: p.Cards()}
	}
	return c
}
