package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/patience/internal/board"
	"github.com/arcanaland/patience/internal/config"
	"github.com/arcanaland/patience/internal/deck"
)

// deckCmd represents the deck command group
var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Inspect shuffles and manage the deal layout",
	Long:  `Commands for inspecting seeded shuffles and deals and for setting the default deal layout.`,
}

// deckListCmd represents the deck ls command
var deckListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the shuffled deck for the current seed, top card first",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		cards := deck.Fresh(deck.NewRand(s.Seed()))
		fmt.Fprintf(out, "Seed %d\n", s.Seed())
		for i, c := range cards {
			fmt.Fprintf(out, "%2d. %-4s %s\n", i+1, c.ID(), cardLabel(c))
		}
		return nil
	},
}

// deckDealCmd represents the deck deal command
var deckDealCmd = &cobra.Command{
	Use:   "deal",
	Short: "Show the opening table for the current seed and layout",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		if _, err := s.Deal(); err != nil {
			return fmt.Errorf("error dealing: %v", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Seed %d, layout %s\n", s.Seed(), cfg.DeckLayout())
		renderBoard(out, s.Snapshot(), terminalWidth(out))

		// Point out anything that could go up straight away
		snap := s.Snapshot()
		for _, id := range []board.PileID{"fS", "fH", "fD", "fC"} {
			if p, ok := snap.Pile(id); ok && p.Next != nil {
				fmt.Fprintf(out, "  %s needs %s\n", id, p.Next.Name())
			}
		}
		return nil
	},
}

// deckSetLayoutCmd represents the deck set-layout command
var deckSetLayoutCmd = &cobra.Command{
	Use:   "set-layout [layout]",
	Short: "Set the default deal layout, e.g. 1,2,3,4,5,6,7",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		layout, err := deck.ParseLayout(args[0])
		if err != nil {
			return err
		}

		if err := config.SetLayout(configFile(), layout); err != nil {
			return fmt.Errorf("error setting layout: %v", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Default layout set to: %s (%d piles, %d cards dealt)\n",
			layout, len(layout), layout.Total())
		return nil
	},
}

// deckInitCmd represents the deck init command
var deckInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the config file with the current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configFile()
		if err := config.Save(path, cfg); err != nil {
			return fmt.Errorf("error initializing config: %v", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Config file initialized at:", path)
		fmt.Fprintf(out, "  layout    %s\n", cfg.DeckLayout())
		fmt.Fprintf(out, "  auto_some %d\n", cfg.AutoSome)
		fmt.Fprintf(out, "  color     %s\n", cfg.Color)
		fmt.Fprintf(out, "  seed      %d\n", cfg.Seed)
		return nil
	},
}

// configFile returns the config path in effect
func configFile() string {
	if configPath != "" {
		return configPath
	}
	return config.GetConfigFilePath()
}

func init() {
	RootCmd.AddCommand(deckCmd)
	deckCmd.AddCommand(deckListCmd)
	deckCmd.AddCommand(deckDealCmd)
	deckCmd.AddCommand(deckSetLayoutCmd)
	deckCmd.AddCommand(deckInitCmd)
}
