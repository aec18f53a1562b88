package deck

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/arcanaland/patience/internal/apperrors"
	"github.com/arcanaland/patience/internal/card"
)

// Size is the number of cards in a full deck
const Size = 52

// Layout is the initial deal shape: the number of cards dealt into each
// tableau pile, left to right. Its length is the number of tableau piles.
type Layout []int

// Triangle is the classic 1..7 cascade
var Triangle = Layout{1, 2, 3, 4, 5, 6, 7}

// Columns returns a flat layout of n piles holding k cards each
func Columns(n, k int) Layout {
	l := make(Layout, n)
	for i := range l {
		l[i] = k
	}
	return l
}

// Total returns how many cards the layout deals
func (l Layout) Total() int {
	total := 0
	for _, n := range l {
		total += n
	}
	return total
}

// Validate checks the layout can be dealt from a single deck
func (l Layout) Validate() error {
	if len(l) == 0 {
		return apperrors.InvalidLayout("no tableau piles")
	}
	for i, n := range l {
		if n < 0 {
			return apperrors.InvalidLayout(fmt.Sprintf("pile %d has negative count %d", i+1, n))
		}
	}
	if total := l.Total(); total > Size {
		return apperrors.InvalidLayout(fmt.Sprintf("deals %d cards from a %d card deck", total, Size))
	}
	return nil
}

func (l Layout) String() string {
	parts := make([]string, len(l))
	for i, n := range l {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

// ParseLayout reads a comma separated layout such as "1,2,3,4,5,6,7"
func ParseLayout(v string) (Layout, error) {
	var l Layout
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid layout entry %q: %v", part, err)
		}
		l = append(l, n)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// NewRand returns the seeded random source used for shuffles, so that a
// seed always reproduces the same deal
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Fresh returns the 52 cards in a uniformly random order
func Fresh(r *rand.Rand) []card.Card {
	cards := card.All()
	Shuffle(cards, r)
	return cards
}

// Shuffle permutes cards in place with Fisher-Yates
func Shuffle(cards []card.Card, r *rand.Rand) {
	for i := len(cards) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// DealInitial distributes cards from the front of the deck into the tableau
// following the layout, one pile at a time, and returns what remains.
// The input slice is not modified.
func DealInitial(cards []card.Card, layout Layout) ([][]card.Card, []card.Card, error) {
	if err := layout.Validate(); err != nil {
		return nil, nil, err
	}
	if layout.Total() > len(cards) {
		return nil, nil, apperrors.InvalidLayout(fmt.Sprintf("needs %d cards, %d undealt", layout.Total(), len(cards)))
	}

	tableau := make([][]card.Card, len(layout))
	next := 0
	for i, n := range layout {
		tableau[i] = append([]card.Card(nil), cards[next:next+n]...)
		next += n
	}

	remaining := append([]card.Card(nil), cards[next:]...)
	return tableau, remaining, nil
}

// DrawOne removes the first undealt card. The input slice is not modified.
func DrawOne(cards []card.Card) (card.Card, []card.Card, error) {
	if len(cards) == 0 {
		return card.Card{}, cards, apperrors.ErrEmptyDeck
	}
	rest := append([]card.Card(nil), cards[1:]...)
	return cards[0], rest, nil
}
