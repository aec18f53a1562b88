package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	colorize "github.com/fatih/color"
	"github.com/rs/zerolog/log"

	"github.com/arcanaland/patience/internal/apperrors"
	"github.com/arcanaland/patience/internal/board"
	"github.com/arcanaland/patience/internal/card"
	"github.com/arcanaland/patience/internal/game"
)

var errQuit = errors.New("quit")

const consoleHelp = `Commands:
  show                              draw the table
  move <card> <pile> [before|after <card>]
                                    move a card, e.g. "move QH t3 before 7S"
  place <card>                      send a card to its foundation
  draw                              deal the next card onto a random tableau pile
  auto [one|some [n]|all]           move playable cards to the foundations
  run                               send a whole A..K suit from one pile
  check                             audit the table
  deal | reset | again              start a new game
  help                              show this help
  quit                              leave

Cards: S1, H12, AS, 10H, QD.  Piles: t1..tN, fS fH fD fC, discard, deck.`

// console adapts text commands to the session's command interface
type console struct {
	session *game.Session
	out     io.Writer
	width   int
}

func newConsole(s *game.Session, out io.Writer) *console {
	return &console{session: s, out: out, width: terminalWidth(out)}
}

// run reads commands until EOF or quit
func (c *console) run(in io.Reader, prompt bool) error {
	scanner := bufio.NewScanner(in)
	for {
		if prompt {
			fmt.Fprint(c.out, "> ")
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		if err := c.execute(scanner.Text()); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			return err
		}
	}
}

// execute runs one command line. Rejected moves are reported, not returned.
func (c *console) execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	var (
		res    game.Result
		err    error
		redraw bool
	)

	switch name {
	case "quit", "q", "exit":
		return errQuit
	case "help", "h", "?":
		fmt.Fprintln(c.out, consoleHelp)
		return nil
	case "show", "s", "ls":
		renderBoard(c.out, c.session.Snapshot(), c.width)
		return nil
	case "check":
		c.printAudit()
		return nil
	case "deal", "reset", "again":
		res, err = c.session.Deal()
		redraw = err == nil
		if err == nil {
			log.Info().Str("session", c.session.ID()).Uint64("seed", c.session.Seed()).Msg("dealt")
		}
	case "move", "m":
		res, err = c.move(args)
	case "place", "p":
		if len(args) != 1 {
			err = c.usage("place <card>")
			break
		}
		res, err = c.session.AutoPlace(args[0])
	case "draw", "d":
		res, err = c.session.Draw()
	case "auto", "a":
		res, err = c.auto(args)
	case "run":
		res, err = c.session.SendCompletedRun()
	default:
		fmt.Fprintf(c.out, "Unknown command %q. Type 'help'.\n", name)
		return nil
	}

	var gameErr *apperrors.GameError
	switch {
	case err == nil:
		fmt.Fprintln(c.out, res.Status)
	case errors.As(err, &gameErr):
		log.Debug().Str("session", c.session.ID()).Str("command", line).Int("code", int(gameErr.Code)).Msg("rejected")
		fmt.Fprintln(c.out, colorize.YellowString(gameErr.Error()))
		return nil
	default:
		return err
	}

	if res.Won {
		c.printWin()
	}
	if redraw {
		renderBoard(c.out, c.session.Snapshot(), c.width)
	}
	return nil
}

// move parses "move <card> <pile> [before|after <card>]"
func (c *console) move(args []string) (game.Result, error) {
	if len(args) != 2 && len(args) != 4 {
		return game.Result{}, c.usage("move <card> <pile> [before|after <card>]")
	}

	hint := board.AtEnd()
	if len(args) == 4 {
		ref, err := card.Parse(args[3])
		if err != nil {
			return game.Result{}, apperrors.UnknownCard(args[3])
		}
		switch strings.ToLower(args[2]) {
		case "before":
			hint = board.BeforeCard(ref)
		case "after":
			hint = board.AfterCard(ref)
		default:
			return game.Result{}, c.usage("move <card> <pile> [before|after <card>]")
		}
	}

	return c.session.AttemptMove(args[0], board.ParsePileID(args[1]), hint)
}

// auto parses "auto [one|some [n]|all]"
func (c *console) auto(args []string) (game.Result, error) {
	mode := "one"
	if len(args) > 0 {
		mode = strings.ToLower(args[0])
	}

	switch mode {
	case "one", "1":
		return c.session.AutoMoveOne()
	case "some":
		n := 0
		if len(args) > 1 {
			v, err := strconv.Atoi(args[1])
			if err != nil || v < 1 {
				return game.Result{}, c.usage("auto some [n]")
			}
			n = v
		}
		return c.session.AutoMoveSome(n)
	case "all":
		return c.session.AutoMoveAll()
	default:
		return game.Result{}, c.usage("auto [one|some [n]|all]")
	}
}

// usage reports the expected syntax as a rejection
func (c *console) usage(syntax string) error {
	return &apperrors.GameError{Message: "Usage: " + syntax}
}

func (c *console) printWin() {
	elapsed := c.session.Elapsed().Round(time.Second)
	log.Info().Str("session", c.session.ID()).Int("moves", c.session.Moves()).Dur("elapsed", elapsed).Msg("won")
	fmt.Fprintln(c.out, colorize.GreenString("You won in %d moves (%s). Type 'again' to play again.", c.session.Moves(), elapsed))
}

func (c *console) printAudit() {
	results := c.session.Audit()
	if results.Valid() {
		fmt.Fprintln(c.out, "✅ Table is consistent.")
	} else {
		fmt.Fprintf(c.out, "❌ Table has %d errors:\n", len(results.Errors))
		for i, e := range results.Errors {
			fmt.Fprintf(c.out, "%d. %s\n", i+1, e)
		}
	}
	for _, warn := range results.Warnings {
		fmt.Fprintf(c.out, "⚠ %s\n", warn)
	}
}
