package cmd

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	colorize "github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/patience/internal/board"
	"github.com/arcanaland/patience/internal/card"
	"github.com/arcanaland/patience/internal/config"
	"github.com/arcanaland/patience/internal/game"
	"github.com/arcanaland/patience/internal/logging"
)

func newTestConsole(t *testing.T) (*console, *bytes.Buffer) {
	t.Helper()
	colorize.NoColor = true
	logging.InitWriter(config.LogConfig{}, io.Discard)

	s, err := game.NewSession(game.Options{Seed: 7})
	require.NoError(t, err)

	var out bytes.Buffer
	return newConsole(s, &out), &out
}

func TestConsoleRejectsBeforeDeal(t *testing.T) {
	c, out := newTestConsole(t)

	require.NoError(t, c.execute("draw"))
	assert.Contains(t, out.String(), "Deal first.")

	out.Reset()
	require.NoError(t, c.execute("show"))
	assert.Contains(t, out.String(), "No cards on the table")
}

func TestConsoleDealAndShow(t *testing.T) {
	c, out := newTestConsole(t)

	require.NoError(t, c.execute("deal"))
	text := out.String()
	assert.Contains(t, text, "Dealt to tableau. 24 in deck.")
	assert.Contains(t, text, "Foundations")
	assert.Contains(t, text, "Tableau")
	assert.Contains(t, text, "undealt")
	for _, id := range []string{"t1", "t7", "fS", "fC", "discard", "deck"} {
		assert.Contains(t, text, id)
	}
}

func TestConsoleMove(t *testing.T) {
	c, out := newTestConsole(t)
	require.NoError(t, c.execute("deal"))

	p, ok := c.session.Snapshot().Pile(board.TableauID(1))
	require.True(t, ok)
	require.Len(t, p.Cards, 1)
	moved := p.Cards[0]

	out.Reset()
	require.NoError(t, c.execute("move "+moved.ID()+" discard"))
	assert.Contains(t, out.String(), moved.Name()+" moved to discard.")

	discard, _ := c.session.Snapshot().Pile(board.Discard)
	assert.Equal(t, []card.Card{moved}, discard.Cards)

	// Back onto the second pile, in front of its bottom card
	t2, _ := c.session.Snapshot().Pile(board.TableauID(2))
	out.Reset()
	require.NoError(t, c.execute("m " + moved.ID() + " t2 before " + t2.Cards[0].ID()))
	assert.Contains(t, out.String(), "placed before")

	t2, _ = c.session.Snapshot().Pile(board.TableauID(2))
	assert.Equal(t, moved, t2.Cards[0])
}

func TestConsoleRejections(t *testing.T) {
	c, out := newTestConsole(t)
	require.NoError(t, c.execute("deal"))

	tests := []struct {
		line string
		want string
	}{
		{line: "move ZZ t1", want: `Unknown card "ZZ".`},
		{line: "move S1", want: "Usage: move <card> <pile> [before|after <card>]"},
		{line: "move S1 t1 under S2", want: "Usage: move"},
		{line: "place", want: "Usage: place <card>"},
		{line: "auto sideways", want: "Usage: auto [one|some [n]|all]"},
		{line: "auto some x", want: "Usage: auto some [n]"},
		{line: "dance", want: `Unknown command "dance"`},
	}

	for _, tt := range tests {
		out.Reset()
		require.NoError(t, c.execute(tt.line), tt.line)
		assert.Contains(t, out.String(), tt.want, tt.line)
	}

	// A dealt card offered to another suit's foundation
	p, _ := c.session.Snapshot().Pile(board.TableauID(7))
	top := p.Cards[len(p.Cards)-1]
	other := card.Hearts
	if top.Suit == card.Hearts {
		other = card.Spades
	}
	out.Reset()
	require.NoError(t, c.execute("move "+top.ID()+" "+string(board.FoundationID(other))))
	assert.Contains(t, out.String(), "Only "+other.String()+" allowed here.")
}

func TestConsoleAutoAll(t *testing.T) {
	c, out := newTestConsole(t)
	require.NoError(t, c.execute("deal"))

	out.Reset()
	require.NoError(t, c.execute("auto all"))
	text := out.String()
	assert.True(t,
		strings.Contains(text, "No more auto-moves available.") ||
			strings.Contains(text, "foundation"),
		text)

	// Nothing left the second time round
	out.Reset()
	require.NoError(t, c.execute("auto all"))
	assert.Contains(t, out.String(), "No more auto-moves available.")
	assert.True(t, c.session.Audit().Valid())
}

func TestConsoleRunWithoutCompletedSuit(t *testing.T) {
	c, out := newTestConsole(t)
	require.NoError(t, c.execute("deal"))

	out.Reset()
	require.NoError(t, c.execute("run"))
	assert.Contains(t, out.String(), "No completed A..K suit found on a single pile.")
}

func TestConsoleCheck(t *testing.T) {
	c, out := newTestConsole(t)
	require.NoError(t, c.execute("deal"))

	out.Reset()
	require.NoError(t, c.execute("check"))
	assert.Contains(t, out.String(), "✅ Table is consistent.")
}

func TestConsoleRunStopsAtQuit(t *testing.T) {
	c, out := newTestConsole(t)

	err := c.run(strings.NewReader("help\n\nquit\nshow\n"), false)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Commands:")
	assert.NotContains(t, out.String(), "No cards on the table")
}

func TestConsoleRunSurvivesRejections(t *testing.T) {
	c, out := newTestConsole(t)

	script := "deal\nplace\nmove S1\nauto sideways\nauto all\nauto all\ndraw\nquit\n"
	require.NoError(t, c.run(strings.NewReader(script), false))

	text := out.String()
	assert.Contains(t, text, "Usage: place <card>")
	assert.Contains(t, text, "Usage: move <card> <pile> [before|after <card>]")
	assert.Contains(t, text, "Usage: auto [one|some [n]|all]")
	assert.Contains(t, text, "No more auto-moves available.")
	assert.Contains(t, text, "left in deck.")
	assert.Equal(t, game.InPlay, c.session.State())
}

func TestWrapLabels(t *testing.T) {
	colorize.NoColor = false
	defer func() { colorize.NoColor = true }()

	labels := []string{redCard.Sprint("Q♥"), blackCard.Sprint("10♠"), "A♦", "K♣"}
	lines := wrapLabels(labels, 10)
	require.Len(t, lines, 2)
	assert.Equal(t, "Q♥ 10♠ A♦", stripAnsi(lines[0]))
	assert.Equal(t, "K♣", stripAnsi(lines[1]))

	assert.Equal(t, 3, visibleWidth(blackCard.Sprint("10♠")))
	assert.Empty(t, wrapLabels(nil, 80))
}

func TestStripAnsi(t *testing.T) {
	assert.Equal(t, "plain", stripAnsi("plain"))
	assert.Equal(t, "Q♥", stripAnsi("\033[31;1mQ♥\033[0m"))
}

func TestDisplayCard(t *testing.T) {
	colorize.NoColor = true

	var out bytes.Buffer
	displayCard(&out, card.New(card.Diamonds, card.Queen))

	text := out.String()
	assert.Contains(t, text, "Queen of Diamonds")
	assert.Contains(t, text, "D12")
	assert.Contains(t, text, "red")
	assert.Contains(t, text, "fD, position 12")
	assert.Contains(t, text, "queen_of_diamonds.png")
}

// execute runs the root command with a private config file
func execute(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "config.toml"), "--no-color"}, args...))
	defer RootCmd.SetArgs(nil)

	require.NoError(t, RootCmd.Execute(), out.String())
	return out.String()
}

func TestShowCommand(t *testing.T) {
	text := execute(t, "show", "QH")
	assert.Contains(t, text, "Queen of Hearts")
}

func TestDeckListCommand(t *testing.T) {
	text := execute(t, "--seed", "7", "deck", "ls")
	assert.Contains(t, text, "Seed 7")
	assert.Contains(t, text, "52. ")
	assert.Equal(t, text, execute(t, "--seed", "7", "deck", "ls"))
}

func TestDeckSetLayoutCommand(t *testing.T) {
	text := execute(t, "deck", "set-layout", "4,4,4")
	assert.Contains(t, text, "Default layout set to: 4,4,4 (3 piles, 12 cards dealt)")
}

func TestValidateCommand(t *testing.T) {
	text := execute(t, "--seed", "11", "validate", "-n", "3", "--steps", "300")
	assert.Contains(t, text, "Validation Results:")
	assert.Contains(t, text, "✅ 3 games (seed 11) kept every invariant.")
}

func TestAutoplayCommand(t *testing.T) {
	text := execute(t, "--seed", "5", "autoplay", "-n", "4")
	assert.Contains(t, text, "Game   4:")
	assert.Contains(t, text, "of 4 won")
}

func TestPlayCommandScript(t *testing.T) {
	text := execute(t, "--seed", "3", "play", "-e", "auto all", "-e", "check")
	assert.Contains(t, text, "Dealt to tableau.")
	assert.Contains(t, text, "Table is consistent.")
}
