package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arcanaland/patience/internal/apperrors"
	"github.com/arcanaland/patience/internal/board"
	"github.com/arcanaland/patience/internal/card"
	"github.com/arcanaland/patience/internal/deck"
	"github.com/arcanaland/patience/internal/validator"
)

// State is the session lifecycle: Dealing -> InPlay -> Won
type State int

const (
	Dealing State = iota
	InPlay
	Won
)

func (s State) String() string {
	switch s {
	case Dealing:
		return "dealing"
	case InPlay:
		return "in play"
	case Won:
		return "won"
	default:
		return "unknown"
	}
}

// Result reports the outcome of a successful command
type Result struct {
	Effects []board.Effect
	Status  string
	Won     bool
}

// Options configures a session
type Options struct {
	Layout deck.Layout
	// Seed fixes the shuffle and draw targets; 0 picks a random seed
	Seed uint64
	// AutoSome is how many cards AutoMoveSome moves when asked for n <= 0
	AutoSome int
	// Clock returns the current time; defaults to time.Now
	Clock func() time.Time
}

// Session owns one game: the board, the undealt deck, the random source
// and the lifecycle state. All methods are safe for concurrent use; moves
// are processed one at a time.
type Session struct {
	mu sync.Mutex

	id     string
	opts   Options
	seed   uint64
	rng    *rand.Rand
	board  *board.Board
	state  State
	status string

	moves    int
	started  time.Time
	finished time.Time
}

// NewSession returns a session in the Dealing state. Call Deal to start.
func NewSession(opts Options) (*Session, error) {
	if opts.Layout == nil {
		opts.Layout = deck.Triangle
	}
	if err := opts.Layout.Validate(); err != nil {
		return nil, err
	}
	if opts.AutoSome <= 0 {
		opts.AutoSome = 5
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64() | 1
	}

	return &Session{
		id:     uuid.NewString(),
		opts:   opts,
		seed:   seed,
		rng:    deck.NewRand(seed),
		state:  Dealing,
		status: "Table cleared.",
	}, nil
}

// ID returns the session id
func (s *Session) ID() string { return s.id }

// Seed returns the seed driving this session's shuffles
func (s *Session) Seed() uint64 { return s.seed }

// State returns the lifecycle state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Status returns the last status message
func (s *Session) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Moves returns the number of successful, non-noop moves this deal
func (s *Session) Moves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moves
}

// Elapsed returns the play time of the current deal, frozen once won
func (s *Session) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started.IsZero() {
		return 0
	}
	if s.state == Won {
		return s.finished.Sub(s.started)
	}
	return s.opts.Clock().Sub(s.started)
}

// Deal shuffles a fresh deck and lays out the tableau. It may be called in
// any state and always starts a new game.
func (s *Session) Deal() (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Dealing
	s.board = nil
	s.moves = 0

	b, err := board.Deal(deck.Fresh(s.rng), s.opts.Layout)
	if err != nil {
		s.status = err.Error()
		return Result{}, err
	}
	s.board = b
	s.started = s.opts.Clock()
	s.finished = time.Time{}
	s.state = InPlay
	s.status = fmt.Sprintf("Dealt to tableau. %d in deck.", b.UndealtLen())
	return Result{Status: s.status}, nil
}

// Reset starts over with a fresh deal
func (s *Session) Reset() (Result, error) {
	return s.Deal()
}

// PlayAgain leaves the Won state with a fresh deal
func (s *Session) PlayAgain() (Result, error) {
	return s.Deal()
}

// Snapshot copies the board for rendering. Before the first deal the
// snapshot is empty.
func (s *Session) Snapshot() board.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.board == nil {
		return board.Snapshot{}
	}
	return s.board.Snapshot()
}

// RequiredNext returns the card the suit's foundation accepts next
func (s *Session) RequiredNext(suit card.Suit) (card.Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.board == nil {
		return card.New(suit, card.Ace), true
	}
	return s.board.RequiredNext(suit)
}

// Audit checks the board invariants
func (s *Session) Audit() validator.ValidationResults {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.board == nil {
		return validator.ValidationResults{}
	}
	return validator.Audit(s.board)
}

// playable rejects commands outside the InPlay state
func (s *Session) playable() error {
	switch s.state {
	case Dealing:
		return apperrors.ErrNotDealt
	case Won:
		return apperrors.ErrGameOver
	}
	return nil
}

// apply performs a validated effect and updates counters and the win state
func (s *Session) apply(e board.Effect) error {
	if err := s.board.Apply(e); err != nil {
		return err
	}
	if e.Noop {
		return nil
	}
	s.moves++
	if isFoundation(e.To) && s.board.IsWon() {
		s.state = Won
		s.finished = s.opts.Clock()
	}
	return nil
}

func isFoundation(id board.PileID) bool {
	for _, suit := range card.Suits {
		if board.FoundationID(suit) == id {
			return true
		}
	}
	return false
}

// reject records a failed command's message as the status
func (s *Session) reject(err error) (Result, error) {
	s.status = err.Error()
	return Result{Status: s.status}, err
}

// finish records the status for a successful command
func (s *Session) finish(status string, effects ...board.Effect) (Result, error) {
	if s.state == Won {
		status = "All foundations complete - you win!"
	}
	s.status = status
	return Result{Effects: effects, Status: status, Won: s.state == Won}, nil
}

// AttemptMove is the command interface for presentation layers: move the
// card with the given id to the destination pile at the hinted position.
func (s *Session) AttemptMove(cardID string, dest board.PileID, hint board.Position) (Result, error) {
	c, err := card.Parse(cardID)
	if err != nil {
		return s.locked(func() (Result, error) { return s.reject(apperrors.UnknownCard(cardID)) })
	}
	return s.Move(c, dest, hint)
}

// Move validates and applies a single move
func (s *Session) Move(c card.Card, dest board.PileID, hint board.Position) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.playable(); err != nil {
		return s.reject(err)
	}
	from, _, ok := s.board.Locate(c)
	if !ok {
		return s.reject(apperrors.UnknownCard(c.ID()))
	}
	effect, err := validator.ValidateMove(s.board, c, from, dest, hint)
	if err != nil {
		return s.reject(err)
	}
	if err := s.apply(effect); err != nil {
		return s.reject(err)
	}
	return s.finish(describe(effect, hint), effect)
}

// AutoPlace sends a card straight to its own foundation, the shortcut a
// double click or double tap triggers.
func (s *Session) AutoPlace(cardID string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.playable(); err != nil {
		return s.reject(err)
	}
	c, err := card.Parse(cardID)
	if err != nil {
		return s.reject(apperrors.UnknownCard(cardID))
	}
	effect, err := validator.TryAutoPlace(s.board, c)
	if err != nil {
		return s.reject(err)
	}
	if err := s.apply(effect); err != nil {
		return s.reject(err)
	}
	return s.finish(describe(effect, board.AtEnd()), effect)
}

// Draw deals the next undealt card onto the end of a random tableau pile
func (s *Session) Draw() (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.playable(); err != nil {
		return s.reject(err)
	}
	// Rejected draws leave the rng untouched
	if s.board.UndealtLen() == 0 {
		return s.reject(apperrors.ErrEmptyDeck)
	}
	piles := s.board.TableauIDs()
	effect, err := s.board.DrawEffect(piles[s.rng.IntN(len(piles))])
	if err != nil {
		return s.reject(err)
	}
	if err := s.apply(effect); err != nil {
		return s.reject(err)
	}
	return s.finish(fmt.Sprintf("%s drawn. %d left in deck.", effect.Card.Name(), s.board.UndealtLen()), effect)
}

// AutoMoveOne moves the first auto-movable card to its foundation
func (s *Session) AutoMoveOne() (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.playable(); err != nil {
		return s.reject(err)
	}
	effect, err := s.autoMove()
	if err != nil {
		return s.reject(err)
	}
	return s.finish(describe(effect, board.AtEnd()), effect)
}

// AutoMoveSome moves up to n cards (the configured default when n <= 0).
// It fails with NoAutoMoveAvailable only when nothing moved.
func (s *Session) AutoMoveSome(n int) (Result, error) {
	if n <= 0 {
		n = s.opts.AutoSome
	}
	return s.autoMoveUpTo(n, "No auto-moves available.")
}

// AutoMoveAll repeats auto-moves until none remain. Every move puts one more
// card on a foundation, so it stops within 52 iterations.
func (s *Session) AutoMoveAll() (Result, error) {
	return s.autoMoveUpTo(deck.Size, "No more auto-moves available.")
}

func (s *Session) autoMoveUpTo(n int, none string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.playable(); err != nil {
		return s.reject(err)
	}
	var effects []board.Effect
	for len(effects) < n && s.state == InPlay {
		effect, err := s.autoMove()
		if errors.Is(err, apperrors.ErrNoAutoMoveAvailable) {
			break
		}
		if err != nil {
			return s.reject(err)
		}
		effects = append(effects, effect)
	}
	if len(effects) == 0 {
		return s.reject(&apperrors.GameError{Code: apperrors.CodeNoAutoMoveAvailable, Message: none})
	}
	status := fmt.Sprintf("Auto-moved %d card(s) to foundations.", len(effects))
	if len(effects) == 1 {
		status = describe(effects[0], board.AtEnd())
	}
	return s.finish(status, effects...)
}

func (s *Session) autoMove() (board.Effect, error) {
	effect, err := validator.NextAutoMove(s.board)
	if err != nil {
		return board.Effect{}, err
	}
	if err := s.apply(effect); err != nil {
		return board.Effect{}, err
	}
	return effect, nil
}

// SendCompletedRun moves a whole Ace-to-King suit sitting on one tableau
// pile to its foundation, card by card through the validator.
func (s *Session) SendCompletedRun() (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.playable(); err != nil {
		return s.reject(err)
	}
	id, suit, ok := s.board.FindCompletedRun()
	if !ok {
		return s.reject(apperrors.ErrNoCompletedRun)
	}

	// Validate all thirteen against a scratch copy so the move is all or nothing
	scratch := s.board.Clone()
	var effects []board.Effect
	for r := card.Ace; r <= card.King; r++ {
		effect, err := validator.ValidateMove(scratch, card.New(suit, r), id, board.FoundationID(suit), board.AtEnd())
		if err != nil {
			return s.reject(err)
		}
		if err := scratch.Apply(effect); err != nil {
			return s.reject(err)
		}
		effects = append(effects, effect)
	}
	for _, effect := range effects {
		if err := s.apply(effect); err != nil {
			return s.reject(err)
		}
	}
	return s.finish(fmt.Sprintf("Moved complete %s to foundation.", suit), effects...)
}

func (s *Session) locked(fn func() (Result, error)) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

// describe renders the status line for an applied move
func describe(e board.Effect, hint board.Position) string {
	switch {
	case e.Noop:
		return fmt.Sprintf("%s stays where it is.", e.Card.Name())
	case isFoundation(e.To):
		return fmt.Sprintf("%s placed on %s foundation.", e.Card.Name(), e.Card.Suit)
	case e.To == board.Discard:
		return fmt.Sprintf("%s moved to discard.", e.Card.Name())
	case e.To == board.Stash:
		return fmt.Sprintf("%s moved to deck area.", e.Card.Name())
	case hint.Mode != board.Append:
		return fmt.Sprintf("%s placed %s.", e.Card.Name(), hint)
	default:
		return fmt.Sprintf("%s moved to %s.", e.Card.Name(), e.To)
	}
}
