package validator

import (
	"fmt"

	"github.com/arcanaland/patience/internal/board"
	"github.com/arcanaland/patience/internal/card"
	"github.com/arcanaland/patience/internal/deck"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

// Valid reports whether the audit found no errors
func (r ValidationResults) Valid() bool {
	return len(r.Errors) == 0
}

// Audit checks the board invariants: every one of the 52 cards sits in
// exactly one place, and every foundation is an unbroken Ace-up run of its
// suit. Warnings flag positions a player may want to act on.
func Audit(b *board.Board) ValidationResults {
	var results ValidationResults

	results.Errors = append(results.Errors, auditConservation(b)...)
	results.Errors = append(results.Errors, auditFoundations(b)...)

	if id, suit, ok := b.FindCompletedRun(); ok {
		results.Warnings = append(results.Warnings,
			fmt.Sprintf("%s holds a completed %s run that can go to its foundation", id, suit))
	}
	if b.IsWon() && b.UndealtLen() > 0 {
		results.Warnings = append(results.Warnings, "board is won but cards remain undealt")
	}

	return results
}

// auditConservation checks that no card was lost or duplicated
func auditConservation(b *board.Board) []string {
	var errs []string

	counts := make(map[card.Card]int, deck.Size)
	where := make(map[card.Card][]board.PileID)
	record := func(id board.PileID, cards []card.Card) {
		for _, c := range cards {
			if !c.Valid() {
				errs = append(errs, fmt.Sprintf("invalid card %+v in %s", c, id))
				continue
			}
			counts[c]++
			where[c] = append(where[c], id)
		}
	}

	for _, id := range b.PileIDs() {
		p, _ := b.Pile(id)
		record(id, p.Cards())
	}
	record(board.Undealt, b.Undealt())

	// Check all 52 cards (suit-major order keeps the report stable)
	for _, c := range card.All() {
		switch n := counts[c]; {
		case n == 0:
			errs = append(errs, fmt.Sprintf("card %s is missing", c.ID()))
		case n > 1:
			errs = append(errs, fmt.Sprintf("card %s appears %d times (%v)", c.ID(), n, where[c]))
		}
	}

	return errs
}

// auditFoundations checks that each foundation holds its suit from Ace up
// with no gaps
func auditFoundations(b *board.Board) []string {
	var errs []string
	for _, s := range card.Suits {
		for i, c := range b.Foundation(s).Cards() {
			want := card.New(s, card.Rank(i+1))
			if c != want {
				errs = append(errs, fmt.Sprintf("%s foundation position %d holds %s, want %s",
					s, i+1, c.ID(), want.ID()))
			}
		}
	}
	return errs
}
