package board

import (
	"fmt"

	"github.com/arcanaland/patience/internal/apperrors"
	"github.com/arcanaland/patience/internal/card"
)

// Mode says where in a tableau pile a card lands
type Mode int

const (
	Append Mode = iota
	Before
	After
)

// Position is a placement hint: append, or immediately before/after Ref
type Position struct {
	Mode Mode
	Ref  card.Card
}

// AtEnd appends to the destination pile
func AtEnd() Position { return Position{Mode: Append} }

// BeforeCard inserts immediately before ref
func BeforeCard(ref card.Card) Position { return Position{Mode: Before, Ref: ref} }

// AfterCard inserts immediately after ref
func AfterCard(ref card.Card) Position { return Position{Mode: After, Ref: ref} }

func (p Position) String() string {
	switch p.Mode {
	case Before:
		return "before " + p.Ref.Name()
	case After:
		return "after " + p.Ref.Name()
	default:
		return "on top"
	}
}

// Effect describes a validated move. ToIndex is the index the card takes
// in the destination once it has been removed from its source. A Noop
// effect leaves the board unchanged.
type Effect struct {
	Card      card.Card
	From      PileID
	FromIndex int
	To        PileID
	ToIndex   int
	Noop      bool
}

func (e Effect) String() string {
	if e.Noop {
		return fmt.Sprintf("%s stays in %s", e.Card.ID(), e.From)
	}
	return fmt.Sprintf("%s %s[%d] -> %s[%d]", e.Card.ID(), e.From, e.FromIndex, e.To, e.ToIndex)
}

// Apply performs a validated effect. It refuses effects that no longer
// match the board, leaving the board untouched.
func (b *Board) Apply(e Effect) error {
	if e.From == Undealt {
		if e.FromIndex < 0 || e.FromIndex >= len(b.undealt) || b.undealt[e.FromIndex] != e.Card {
			return apperrors.ErrStaleEffect
		}
	} else {
		src, ok := b.piles[e.From]
		if !ok || e.FromIndex < 0 || e.FromIndex >= src.Len() || src.cards[e.FromIndex] != e.Card {
			return apperrors.ErrStaleEffect
		}
	}
	if e.Noop {
		return nil
	}

	dst, ok := b.piles[e.To]
	if !ok {
		return apperrors.UnknownPile(string(e.To))
	}
	room := dst.Len()
	if e.From == e.To {
		room--
	}
	if e.ToIndex < 0 || e.ToIndex > room {
		return apperrors.ErrStaleEffect
	}

	if e.From == Undealt {
		b.undealt = append(b.undealt[:e.FromIndex], b.undealt[e.FromIndex+1:]...)
	} else {
		b.piles[e.From].remove(e.FromIndex)
	}
	dst.insert(e.ToIndex, e.Card)
	return nil
}

// DrawEffect describes moving the next undealt card onto the end of pile
// dest. It fails with EmptyDeck once the deck is exhausted.
func (b *Board) DrawEffect(dest PileID) (Effect, error) {
	if len(b.undealt) == 0 {
		return Effect{}, apperrors.ErrEmptyDeck
	}
	dst, err := b.Pile(dest)
	if err != nil {
		return Effect{}, err
	}
	return Effect{
		Card:      b.undealt[0],
		From:      Undealt,
		FromIndex: 0,
		To:        dest,
		ToIndex:   dst.Len(),
	}, nil
}
