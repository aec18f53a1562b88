package cmd

import (
	"fmt"
	"io"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/patience/internal/board"
	"github.com/arcanaland/patience/internal/card"
)

var showCmd = &cobra.Command{
	Use:   "show [card_id]",
	Short: "Display information about a specific card",
	Long: `Show displays a card's name, suit, colour, the foundation it belongs to
and the asset file names a graphical front end would look for.
Card ids may be suit first or rank first.

Examples:
  patience show S1
  patience show QH
  patience show 10d`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := card.Parse(args[0])
		if err != nil {
			return fmt.Errorf("error getting card: %v", err)
		}

		displayCard(cmd.OutOrStdout(), c)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)
}

// displayCard displays the card information
func displayCard(w io.Writer, c card.Card) {
	colour := "black"
	if c.Suit.Red() {
		colour = "red"
	}

	var infoLines []string
	infoLines = append(infoLines, colorize.CyanString("Card:       ")+colorize.HiWhiteString("%s", c.Name()))
	infoLines = append(infoLines, colorize.CyanString("ID:         ")+colorize.HiWhiteString("%s", c.ID()))
	infoLines = append(infoLines, colorize.CyanString("Suit:       ")+
		colorize.HiWhiteString("%s · %s", c.Suit, c.Suit.Symbol()))
	infoLines = append(infoLines, colorize.CyanString("Rank:       ")+
		colorize.HiWhiteString("%s (%d)", c.Rank, int(c.Rank)))
	infoLines = append(infoLines, colorize.CyanString("Colour:     ")+colorize.HiWhiteString("%s", colour))
	infoLines = append(infoLines, colorize.CyanString("Foundation: ")+
		colorize.HiWhiteString("%s, position %d", board.FoundationID(c.Suit), int(c.Rank)))
	infoLines = append(infoLines, colorize.CyanString("Assets:     ")+
		colorize.HiWhiteString("%s", strings.Join(c.ImageCandidates(), ", ")))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n\n", cardLabel(c))
	for _, line := range infoLines {
		fmt.Fprintf(w, "  %s\n", line)
	}
	fmt.Fprintln(w)
}
