package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/patience/internal/apperrors"
	"github.com/arcanaland/patience/internal/board"
	"github.com/arcanaland/patience/internal/card"
)

func c(id string) card.Card {
	parsed, err := card.Parse(id)
	if err != nil {
		panic(err)
	}
	return parsed
}

func cards(ids ...string) []card.Card {
	out := make([]card.Card, len(ids))
	for i, id := range ids {
		out[i] = c(id)
	}
	return out
}

func pileCards(t *testing.T, b *board.Board, id board.PileID) []card.Card {
	t.Helper()
	p, err := b.Pile(id)
	require.NoError(t, err)
	return p.Cards()
}

func move(t *testing.T, b *board.Board, id string, to board.PileID, pos board.Position) error {
	t.Helper()
	from, _, ok := b.Locate(c(id))
	require.True(t, ok, id)
	effect, err := ValidateMove(b, c(id), from, to, pos)
	if err != nil {
		return err
	}
	return b.Apply(effect)
}

func TestFoundationSequenceScenario(t *testing.T) {
	t.Parallel()

	b, err := board.New(board.Setup{Tableau: [][]card.Card{cards("S2", "S1")}})
	require.NoError(t, err)

	err = move(t, b, "S2", "fS", board.AtEnd())
	require.ErrorIs(t, err, apperrors.ErrOutOfSequence)
	expected, ok := apperrors.ExpectedCard(err)
	require.True(t, ok)
	assert.Equal(t, c("S1"), expected)
	assert.Equal(t, "Need Ace of Spades next.", err.Error())

	require.NoError(t, move(t, b, "S1", "fS", board.AtEnd()))
	assert.Equal(t, cards("S1"), pileCards(t, b, "fS"))

	require.NoError(t, move(t, b, "S2", "fS", board.AtEnd()))
	assert.Equal(t, cards("S1", "S2"), pileCards(t, b, "fS"))
	assert.Empty(t, pileCards(t, b, "t1"))
}

func TestWrongSuitScenario(t *testing.T) {
	t.Parallel()

	b, err := board.New(board.Setup{Tableau: [][]card.Card{cards("C1")}})
	require.NoError(t, err)

	err = move(t, b, "C1", "fH", board.AtEnd())
	assert.ErrorIs(t, err, apperrors.ErrWrongSuit)
	assert.Equal(t, "Only Hearts allowed here.", err.Error())
	assert.Equal(t, cards("C1"), pileCards(t, b, "t1"))
}

func TestTableauAcceptsAnything(t *testing.T) {
	t.Parallel()

	b, err := board.New(board.Setup{
		Tableau: [][]card.Card{cards("S9", "H4", "D2"), cards("CK")},
		Discard: cards("H1"),
	})
	require.NoError(t, err)

	require.NoError(t, move(t, b, "CK", "t1", board.BeforeCard(c("H4"))))
	assert.Equal(t, cards("S9", "CK", "H4", "D2"), pileCards(t, b, "t1"))

	require.NoError(t, move(t, b, "H1", "t1", board.AfterCard(c("D2"))))
	assert.Equal(t, cards("S9", "CK", "H4", "D2", "H1"), pileCards(t, b, "t1"))

	require.NoError(t, move(t, b, "S9", "t2", board.AtEnd()))
	assert.Equal(t, cards("S9"), pileCards(t, b, "t2"))

	// Reorder inside one pile
	require.NoError(t, move(t, b, "CK", "t1", board.AfterCard(c("D2"))))
	assert.Equal(t, cards("H4", "D2", "CK", "H1"), pileCards(t, b, "t1"))
}

func TestRefMustBeInDestination(t *testing.T) {
	t.Parallel()

	b, err := board.New(board.Setup{Tableau: [][]card.Card{cards("S9"), cards("CK")}})
	require.NoError(t, err)

	err = move(t, b, "CK", "t1", board.BeforeCard(c("H4")))
	assert.ErrorIs(t, err, apperrors.ErrRefNotInPile)

	err = move(t, b, "CK", "t1", board.BeforeCard(c("CK")))
	assert.ErrorIs(t, err, apperrors.ErrRefNotInPile)
}

func TestSelfMoveIsNoop(t *testing.T) {
	t.Parallel()

	b, err := board.New(board.Setup{
		Tableau:     [][]card.Card{cards("S9", "H4", "D2")},
		Foundations: map[card.Suit][]card.Card{card.Clubs: cards("C1", "C2")},
		Discard:     cards("H7"),
	})
	require.NoError(t, err)
	before := b.Snapshot()

	tests := []struct {
		name string
		id   string
		to   board.PileID
		pos  board.Position
	}{
		{name: "Before its successor", id: "H4", to: "t1", pos: board.BeforeCard(c("D2"))},
		{name: "After its predecessor", id: "H4", to: "t1", pos: board.AfterCard(c("S9"))},
		{name: "Relative to itself", id: "H4", to: "t1", pos: board.BeforeCard(c("H4"))},
		{name: "Top appended to own pile", id: "D2", to: "t1", pos: board.AtEnd()},
		{name: "Foundation top", id: "C2", to: "fC", pos: board.AtEnd()},
		{name: "Utility top", id: "H7", to: "discard", pos: board.AtEnd()},
	}

	for _, tt := range tests {
		from, _, _ := b.Locate(c(tt.id))
		effect, err := ValidateMove(b, c(tt.id), from, tt.to, tt.pos)
		require.NoError(t, err, tt.name)
		assert.True(t, effect.Noop, tt.name)
		require.NoError(t, b.Apply(effect), tt.name)
	}
	assert.Equal(t, before, b.Snapshot())
}

func TestFoundationGivesUpTopOnly(t *testing.T) {
	t.Parallel()

	b, err := board.New(board.Setup{
		Tableau:     [][]card.Card{{}},
		Foundations: map[card.Suit][]card.Card{card.Hearts: cards("H1", "H2", "H3")},
	})
	require.NoError(t, err)

	err = move(t, b, "H2", "t1", board.AtEnd())
	assert.ErrorIs(t, err, apperrors.ErrNotTopCard)

	// A foundation card offered to another foundation fails on suit
	err = move(t, b, "H2", "fS", board.AtEnd())
	assert.ErrorIs(t, err, apperrors.ErrWrongSuit)

	require.NoError(t, move(t, b, "H3", "t1", board.AtEnd()))
	assert.Equal(t, cards("H1", "H2"), pileCards(t, b, "fH"))
	assert.Equal(t, card.Rank(3), b.RequiredNextRank(card.Hearts))
}

func TestUtilityAlwaysAppends(t *testing.T) {
	t.Parallel()

	b, err := board.New(board.Setup{
		Tableau: [][]card.Card{cards("S9", "H4")},
		Stash:   cards("D5", "D6"),
	})
	require.NoError(t, err)

	require.NoError(t, move(t, b, "S9", "deck", board.BeforeCard(c("D5"))))
	assert.Equal(t, cards("D5", "D6", "S9"), pileCards(t, b, "deck"))

	require.NoError(t, move(t, b, "D5", "deck", board.AtEnd()))
	assert.Equal(t, cards("D6", "S9", "D5"), pileCards(t, b, "deck"))
}

func TestValidateMoveRejections(t *testing.T) {
	t.Parallel()

	b, err := board.New(board.Setup{
		Tableau: [][]card.Card{cards("S9")},
		Undealt: cards("H2"),
	})
	require.NoError(t, err)

	_, err = ValidateMove(b, c("H2"), board.Undealt, "t1", board.AtEnd())
	assert.ErrorIs(t, err, apperrors.ErrCardNotInPlay)

	_, err = ValidateMove(b, c("D3"), "t1", "t1", board.AtEnd())
	assert.ErrorIs(t, err, apperrors.ErrUnknownCard)

	_, err = ValidateMove(b, c("S9"), "discard", "t1", board.AtEnd())
	assert.ErrorIs(t, err, apperrors.ErrStaleEffect)

	_, err = ValidateMove(b, c("S9"), "t1", "t5", board.AtEnd())
	assert.ErrorIs(t, err, apperrors.ErrUnknownPile)

	_, err = ValidateMove(b, card.Card{Suit: card.Spades, Rank: 14}, "t1", "t1", board.AtEnd())
	assert.ErrorIs(t, err, apperrors.ErrUnknownCard)
}

func TestValidateMoveDoesNotMutate(t *testing.T) {
	t.Parallel()

	b, err := board.New(board.Setup{Tableau: [][]card.Card{cards("S1", "H5")}})
	require.NoError(t, err)
	before := b.Snapshot()

	_, err = ValidateMove(b, c("S1"), "t1", "fS", board.AtEnd())
	require.NoError(t, err)
	assert.Equal(t, before, b.Snapshot())
}

func TestTryAutoPlace(t *testing.T) {
	t.Parallel()

	b, err := board.New(board.Setup{
		Tableau:     [][]card.Card{cards("D3", "D2")},
		Foundations: map[card.Suit][]card.Card{card.Diamonds: cards("D1")},
		Undealt:     cards("C1"),
	})
	require.NoError(t, err)

	_, err = TryAutoPlace(b, c("D3"))
	require.ErrorIs(t, err, apperrors.ErrNotReady)
	expected, ok := apperrors.ExpectedCard(err)
	require.True(t, ok)
	assert.Equal(t, c("D2"), expected)
	assert.Equal(t, "Not ready for foundation. 2 of Diamonds is next.", err.Error())

	effect, err := TryAutoPlace(b, c("D2"))
	require.NoError(t, err)
	assert.Equal(t, board.PileID("fD"), effect.To)
	require.NoError(t, b.Apply(effect))

	effect, err = TryAutoPlace(b, c("D3"))
	require.NoError(t, err)
	require.NoError(t, b.Apply(effect))
	assert.Equal(t, cards("D1", "D2", "D3"), pileCards(t, b, "fD"))

	_, err = TryAutoPlace(b, c("C1"))
	assert.ErrorIs(t, err, apperrors.ErrCardNotInPlay)
}

func TestNextAutoMove(t *testing.T) {
	t.Parallel()

	b, err := board.New(board.Setup{Tableau: [][]card.Card{cards("H2", "S4"), cards("H1")}})
	require.NoError(t, err)

	effect, err := NextAutoMove(b)
	require.NoError(t, err)
	assert.Equal(t, c("H1"), effect.Card)
	require.NoError(t, b.Apply(effect))

	effect, err = NextAutoMove(b)
	require.NoError(t, err)
	assert.Equal(t, c("H2"), effect.Card)
	require.NoError(t, b.Apply(effect))

	_, err = NextAutoMove(b)
	assert.ErrorIs(t, err, apperrors.ErrNoAutoMoveAvailable)
}
