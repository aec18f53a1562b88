package board

import "github.com/arcanaland/patience/internal/card"

// PileView is a read-only copy of one pile for rendering
type PileView struct {
	ID    PileID
	Kind  PileKind
	Cards []card.Card
	// Next is the card a foundation accepts next; nil for other piles and
	// for complete foundations.
	Next *card.Card
}

// Snapshot is a read-only copy of the whole board
type Snapshot struct {
	Piles   []PileView
	Undealt int
}

// Pile returns the view of the given pile
func (s Snapshot) Pile(id PileID) (PileView, bool) {
	for _, p := range s.Piles {
		if p.ID == id {
			return p, true
		}
	}
	return PileView{}, false
}

// Snapshot copies the board state in display order
func (b *Board) Snapshot() Snapshot {
	snap := Snapshot{Undealt: len(b.undealt)}
	for _, id := range b.order {
		p := b.piles[id]
		view := PileView{ID: id, Kind: p.Kind, Cards: p.Cards()}
		if p.Kind.Kind == KindFoundation {
			if next, ok := b.RequiredNext(p.Kind.Suit); ok {
				view.Next = &next
			}
		}
		snap.Piles = append(snap.Piles, view)
	}
	return snap
}
