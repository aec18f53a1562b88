package apperrors

import (
	"errors"
	"fmt"

	"github.com/arcanaland/patience/internal/card"
)

// Code classifies a rejected operation
type Code int

const (
	CodeEmptyDeck Code = iota + 1
	CodeWrongSuit
	CodeOutOfSequence
	CodeNotReady
	CodeNoCompletedRun
	CodeNoAutoMoveAvailable
	CodeUnknownCard
	CodeUnknownPile
	CodeCardNotInPlay
	CodeNotTopCard
	CodeRefNotInPile
	CodeNotDealt
	CodeGameOver
	CodeStaleEffect
	CodeInvalidLayout
)

// GameError is a recoverable, user-facing rejection. Expected carries the
// card the foundation needs next when the rejection is about sequence.
type GameError struct {
	Code     Code
	Message  string
	Expected *card.Card
}

func (e *GameError) Error() string {
	return e.Message
}

// Is matches any GameError with the same code, so callers can compare
// against the predefined values with errors.Is.
func (e *GameError) Is(target error) bool {
	t, ok := target.(*GameError)
	return ok && t.Code == e.Code
}

// Predefined rejections
var (
	ErrEmptyDeck           = &GameError{Code: CodeEmptyDeck, Message: "Deck empty."}
	ErrWrongSuit           = &GameError{Code: CodeWrongSuit, Message: "Wrong suit for this foundation."}
	ErrOutOfSequence       = &GameError{Code: CodeOutOfSequence, Message: "Card is out of sequence."}
	ErrNotReady            = &GameError{Code: CodeNotReady, Message: "Not ready for foundation."}
	ErrNoCompletedRun      = &GameError{Code: CodeNoCompletedRun, Message: "No completed A..K suit found on a single pile."}
	ErrNoAutoMoveAvailable = &GameError{Code: CodeNoAutoMoveAvailable, Message: "No auto-move available."}
	ErrUnknownCard         = &GameError{Code: CodeUnknownCard, Message: "Unknown card."}
	ErrUnknownPile         = &GameError{Code: CodeUnknownPile, Message: "Unknown pile."}
	ErrCardNotInPlay       = &GameError{Code: CodeCardNotInPlay, Message: "Card is still in the deck."}
	ErrNotTopCard          = &GameError{Code: CodeNotTopCard, Message: "Only the top card may leave a foundation."}
	ErrRefNotInPile        = &GameError{Code: CodeRefNotInPile, Message: "Reference card is not in that pile."}
	ErrNotDealt            = &GameError{Code: CodeNotDealt, Message: "Deal first."}
	ErrGameOver            = &GameError{Code: CodeGameOver, Message: "Game is won. Deal again to play."}
	ErrStaleEffect         = &GameError{Code: CodeStaleEffect, Message: "Move no longer matches the board."}
	ErrInvalidLayout       = &GameError{Code: CodeInvalidLayout, Message: "Invalid deal layout."}
)

// WrongSuit rejects a card offered to another suit's foundation
func WrongSuit(foundation card.Suit) *GameError {
	return &GameError{
		Code:    CodeWrongSuit,
		Message: fmt.Sprintf("Only %s allowed here.", foundation),
	}
}

// OutOfSequence rejects a card whose rank is not the next one required
func OutOfSequence(expected card.Card) *GameError {
	return &GameError{
		Code:     CodeOutOfSequence,
		Message:  fmt.Sprintf("Need %s next.", expected.Name()),
		Expected: &expected,
	}
}

// NotReady rejects an auto-place whose predecessor is not on the foundation yet
func NotReady(expected card.Card) *GameError {
	return &GameError{
		Code:     CodeNotReady,
		Message:  fmt.Sprintf("Not ready for foundation. %s is next.", expected.Name()),
		Expected: &expected,
	}
}

// UnknownCard rejects an unparseable or misplaced card id
func UnknownCard(id string) *GameError {
	return &GameError{Code: CodeUnknownCard, Message: fmt.Sprintf("Unknown card %q.", id)}
}

// UnknownPile rejects a pile id that is not on the board
func UnknownPile(id string) *GameError {
	return &GameError{Code: CodeUnknownPile, Message: fmt.Sprintf("Unknown pile %q.", id)}
}

// InvalidLayout rejects a deal shape
func InvalidLayout(reason string) *GameError {
	return &GameError{Code: CodeInvalidLayout, Message: "Invalid deal layout: " + reason + "."}
}

// ExpectedCard returns the card a rejection says is needed next, if any
func ExpectedCard(err error) (card.Card, bool) {
	var ge *GameError
	if errors.As(err, &ge) && ge.Expected != nil {
		return *ge.Expected, true
	}
	return card.Card{}, false
}

// CodeOf returns the code of a GameError, or 0 for any other error
func CodeOf(err error) Code {
	var ge *GameError
	if errors.As(err, &ge) {
		return ge.Code
	}
	return 0
}
