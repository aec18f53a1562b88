package validator

import (
	"errors"

	"github.com/arcanaland/patience/internal/apperrors"
	"github.com/arcanaland/patience/internal/board"
	"github.com/arcanaland/patience/internal/card"
)

// ValidateMove decides whether c may move from pile `from` to pile `to` at
// the hinted position and, if so, returns the effect the board should
// apply. The board is never modified.
//
// Tableau destinations accept anything at any position. Foundations accept
// only the next rank of their own suit. Utility piles accept anything and
// always append. A move that would leave the card where it is returns a
// Noop effect.
func ValidateMove(b *board.Board, c card.Card, from, to board.PileID, pos board.Position) (board.Effect, error) {
	if !c.Valid() {
		return board.Effect{}, apperrors.UnknownCard(c.ID())
	}

	at, index, ok := b.Locate(c)
	if !ok {
		return board.Effect{}, apperrors.UnknownCard(c.ID())
	}
	if at == board.Undealt {
		return board.Effect{}, apperrors.ErrCardNotInPlay
	}
	if from != at {
		return board.Effect{}, apperrors.ErrStaleEffect
	}

	src, err := b.Pile(from)
	if err != nil {
		return board.Effect{}, err
	}
	dst, err := b.Pile(to)
	if err != nil {
		return board.Effect{}, err
	}

	if dst.Kind.Kind == board.KindFoundation && c.Suit != dst.Kind.Suit {
		return board.Effect{}, apperrors.WrongSuit(dst.Kind.Suit)
	}

	// Foundations give up cards from the top only
	if src.Kind.Kind == board.KindFoundation && index != src.Len()-1 {
		return board.Effect{}, apperrors.ErrNotTopCard
	}

	effect := board.Effect{Card: c, From: from, FromIndex: index, To: to}
	same := from == to

	switch dst.Kind.Kind {
	case board.KindTableau:
		target, err := tableauIndex(dst, c, index, same, pos)
		if err != nil {
			return board.Effect{}, err
		}
		effect.ToIndex = target

	case board.KindFoundation:
		if same {
			effect.ToIndex = index
			break
		}
		next := b.RequiredNextRank(dst.Kind.Suit)
		if c.Rank != next {
			return board.Effect{}, apperrors.OutOfSequence(card.New(dst.Kind.Suit, next))
		}
		effect.ToIndex = dst.Len()

	default:
		effect.ToIndex = dst.Len()
		if same {
			effect.ToIndex--
		}
	}

	effect.Noop = same && effect.ToIndex == index
	return effect, nil
}

// tableauIndex resolves a position hint to an index in the destination as
// it will look after c has been lifted out.
func tableauIndex(dst *board.Pile, c card.Card, index int, same bool, pos board.Position) (int, error) {
	size := dst.Len()
	if same {
		size--
	}
	if pos.Mode == board.Append {
		return size, nil
	}

	if pos.Ref == c {
		if !same {
			return 0, apperrors.ErrRefNotInPile
		}
		return index, nil
	}

	ref := dst.IndexOf(pos.Ref)
	if ref < 0 {
		return 0, apperrors.ErrRefNotInPile
	}
	if same && ref > index {
		ref--
	}
	if pos.Mode == board.After {
		ref++
	}
	return ref, nil
}

// TryAutoPlace validates moving c to its own suit's foundation. A card
// that is not the next rank fails with NotReady, naming the card the
// foundation needs.
func TryAutoPlace(b *board.Board, c card.Card) (board.Effect, error) {
	from, _, ok := b.Locate(c)
	if !ok {
		return board.Effect{}, apperrors.UnknownCard(c.ID())
	}
	if from == board.Undealt {
		return board.Effect{}, apperrors.ErrCardNotInPlay
	}

	effect, err := ValidateMove(b, c, from, board.FoundationID(c.Suit), board.AtEnd())
	if errors.Is(err, apperrors.ErrOutOfSequence) {
		expected, _ := apperrors.ExpectedCard(err)
		return board.Effect{}, apperrors.NotReady(expected)
	}
	return effect, err
}

// NextAutoMove returns the validated effect for the first auto-movable
// card, or NoAutoMoveAvailable.
func NextAutoMove(b *board.Board) (board.Effect, error) {
	c, dest, ok := b.FindFirstAutoMovable()
	if !ok {
		return board.Effect{}, apperrors.ErrNoAutoMoveAvailable
	}
	from, _, _ := b.Locate(c)
	return ValidateMove(b, c, from, dest, board.AtEnd())
}
