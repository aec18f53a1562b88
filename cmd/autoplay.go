package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arcanaland/patience/internal/apperrors"
	"github.com/arcanaland/patience/internal/board"
	"github.com/arcanaland/patience/internal/game"
)

// autoplayCmd represents the autoplay command
var autoplayCmd = &cobra.Command{
	Use:   "autoplay",
	Short: "Play seeded deals using only draws and auto-moves",
	Long: `Autoplay deals a number of games and plays each one without any
manual arrangement: it auto-moves everything it can, draws a card, and
repeats until the deck runs out. It then reports how far each deal got.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		games, _ := cmd.Flags().GetInt("games")
		verbose, _ := cmd.Flags().GetBool("verbose")

		s, err := newSession()
		if err != nil {
			return fmt.Errorf("error creating session: %v", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Autoplay, seed %d, layout %s\n", s.Seed(), cfg.DeckLayout())
		fmt.Fprintln(out, "----------------------------------")

		won, total := 0, 0
		for g := 1; g <= games; g++ {
			if _, err := s.Deal(); err != nil {
				return fmt.Errorf("error dealing: %v", err)
			}
			up, err := autoplay(s)
			if err != nil {
				return err
			}
			total += up

			result := fmt.Sprintf("%2d/52 on foundations", up)
			if s.State() == game.Won {
				won++
				result = heading.Sprintf("won in %d moves", s.Moves())
			}
			fmt.Fprintf(out, "Game %3d: %s\n", g, result)
			if verbose {
				renderBoard(out, s.Snapshot(), terminalWidth(out))
			}
		}

		fmt.Fprintf(out, "\n%d of %d won, %.1f cards per game on average.\n",
			won, games, float64(total)/float64(max(games, 1)))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(autoplayCmd)

	autoplayCmd.Flags().IntP("games", "n", 10, "number of deals to play")
	autoplayCmd.Flags().BoolP("verbose", "v", false, "draw the final table of each game")
}

// autoplay alternates AutoMoveAll and Draw until the game is won or the deck
// is empty, and returns how many cards reached the foundations
func autoplay(s *game.Session) (int, error) {
	start := time.Now()
	for s.State() == game.InPlay {
		if _, err := s.AutoMoveAll(); err != nil && !errors.Is(err, apperrors.ErrNoAutoMoveAvailable) {
			return 0, err
		}
		if s.State() != game.InPlay {
			break
		}
		if _, err := s.Draw(); err != nil {
			if errors.Is(err, apperrors.ErrEmptyDeck) {
				break
			}
			return 0, err
		}
	}

	up := 0
	for _, p := range s.Snapshot().Piles {
		if p.Kind.Kind == board.KindFoundation {
			up += len(p.Cards)
		}
	}
	log.Debug().Str("session", s.ID()).Int("foundations", up).Dur("took", time.Since(start)).Msg("autoplay finished")
	return up, nil
}
