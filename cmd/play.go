package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Deal a game and play it interactively",
	Long: `Play deals a fresh game and reads commands from standard input.
Type 'help' at the prompt for the command list.

Examples:
  patience play
  patience play --seed 42 --layout 4,4,4,4,4,4,4
  echo "auto all" | patience play --seed 7`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return fmt.Errorf("error creating session: %v", err)
		}
		log.Info().Str("session", s.ID()).Uint64("seed", s.Seed()).Str("layout", cfg.DeckLayout().String()).Msg("session started")

		out := cmd.OutOrStdout()
		c := newConsole(s, out)
		interactive := term.IsTerminal(int(os.Stdin.Fd()))

		if interactive {
			fmt.Fprintln(out, "Type 'help' for commands, 'quit' to leave.")
		}
		if err := c.execute("deal"); err != nil {
			return err
		}

		// Commands given with -e run before the loop; piped input ends the game after them
		script, _ := cmd.Flags().GetStringArray("exec")
		for _, line := range script {
			if err := c.execute(line); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}
				return err
			}
		}
		if len(script) > 0 && !interactive {
			return nil
		}

		return c.run(cmd.InOrStdin(), interactive)
	},
}

func init() {
	RootCmd.AddCommand(playCmd)

	playCmd.Flags().StringArrayP("exec", "e", nil, `run a console command after dealing, e.g. -e "auto all" (repeatable)`)
}
