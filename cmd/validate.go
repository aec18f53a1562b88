package cmd

import (
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arcanaland/patience/internal/apperrors"
	"github.com/arcanaland/patience/internal/board"
	"github.com/arcanaland/patience/internal/card"
	"github.com/arcanaland/patience/internal/deck"
	"github.com/arcanaland/patience/internal/game"
	"github.com/arcanaland/patience/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Play random moves and audit the table after each one",
	Long: `Validate deals seeded games, throws random moves at them (legal and
illegal), and audits the table after every command. It checks that all 52
cards are always accounted for exactly once and that every foundation is an
unbroken run from Ace up.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		games, _ := cmd.Flags().GetInt("games")
		steps, _ := cmd.Flags().GetInt("steps")

		s, err := newSession()
		if err != nil {
			return fmt.Errorf("error creating session: %v", err)
		}
		r := deck.NewRand(s.Seed() + 1)

		var results validator.ValidationResults
		stats := map[apperrors.Code]int{}
		won := 0

		for g := 0; g < games && len(results.Errors) == 0; g++ {
			if _, err := s.Deal(); err != nil {
				return fmt.Errorf("error dealing: %v", err)
			}
			for i := 0; i < steps && s.State() == game.InPlay; i++ {
				err := randomCommand(s, r)
				code := apperrors.CodeOf(err)
				if err != nil && code == 0 {
					return fmt.Errorf("validation error: %v", err)
				}
				stats[code]++

				audit := s.Audit()
				if !audit.Valid() {
					for _, e := range audit.Errors {
						results.Errors = append(results.Errors, fmt.Sprintf("game %d step %d: %s", g+1, i+1, e))
					}
					break
				}
			}
			if s.State() == game.Won {
				won++
			}
		}
		log.Debug().Interface("outcomes", stats).Msg("validate finished")

		// Display validation results
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Validation Results:")
		fmt.Fprintln(out, "-------------------")

		if len(results.Errors) == 0 {
			fmt.Fprintf(out, "✅ %d games (seed %d) kept every invariant. %d moves accepted, %d rejected, %d won.\n",
				games, s.Seed(), stats[0], countRejected(stats), won)
		} else {
			fmt.Fprintf(out, "❌ Seed %d broke an invariant with %d errors:\n", s.Seed(), len(results.Errors))
			for i, err := range results.Errors {
				fmt.Fprintf(out, "%d. %s\n", i+1, err)
			}
			return fmt.Errorf("validation failed")
		}

		if warnings := s.Audit().Warnings; len(warnings) > 0 {
			fmt.Fprintln(out, "\nWarnings:")
			for i, warn := range warnings {
				fmt.Fprintf(out, "%d. %s\n", i+1, warn)
			}
		}

		return nil
	},
}

func init() {
	RootCmd.AddCommand(validateCmd)

	validateCmd.Flags().IntP("games", "n", 20, "number of games to play")
	validateCmd.Flags().Int("steps", 500, "random commands per game")
}

// randomCommand issues one random command, most often a move of a random
// card to a random pile at a random position
func randomCommand(s *game.Session, r *rand.Rand) error {
	all := card.All()
	snap := s.Snapshot()
	pile := snap.Piles[r.IntN(len(snap.Piles))]

	var err error
	switch r.IntN(10) {
	case 0:
		_, err = s.Draw()
	case 1:
		_, err = s.AutoMoveOne()
	case 2:
		_, err = s.AutoPlace(all[r.IntN(len(all))].ID())
	case 3:
		_, err = s.SendCompletedRun()
	default:
		hint := board.AtEnd()
		if len(pile.Cards) > 0 {
			ref := pile.Cards[r.IntN(len(pile.Cards))]
			switch r.IntN(3) {
			case 1:
				hint = board.BeforeCard(ref)
			case 2:
				hint = board.AfterCard(ref)
			}
		}
		_, err = s.Move(all[r.IntN(len(all))], pile.ID, hint)
	}

	return err
}

func countRejected(stats map[apperrors.Code]int) int {
	total := 0
	for code, n := range stats {
		if code != 0 {
			total += n
		}
	}
	return total
}
